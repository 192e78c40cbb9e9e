package notetable

import (
	"fmt"
	"math"

	"github.com/chewxy/math32"
)

// Knob maps a raw control reading (e.g. a potentiometer on a 10-bit ADC) to a
// filter coefficient using the same exponential sweep as the note table.
//
// The arithmetic runs in single precision so the values match what the
// firmware computes at control rate. Unlike the note table, a knob reading is
// resolved at run time, so Knob is the reference the firmware path is tested
// against.
type Knob struct {
	cfg     Config
	readMax int

	// Precomputed single-precision constants.
	minFc, ratio, piOverFs, clamp float32
}

// NewKnob returns a knob curve for cfg with readings in [0, readMax].
// A readMax of 0 selects DefaultKnobMax.
func NewKnob(cfg Config, readMax int) (*Knob, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if readMax == 0 {
		readMax = DefaultKnobMax
	}
	if readMax < 1 {
		return nil, invalid("knob max", float64(readMax), "must be at least 1")
	}
	cfg = cfg.withDefaults()

	k := &Knob{
		cfg:      cfg,
		readMax:  readMax,
		minFc:    float32(cfg.MinCutoff),
		ratio:    float32(cfg.MaxCutoff / cfg.MinCutoff),
		piOverFs: float32(math.Pi / cfg.SampleRate),
		clamp:    float32(cfg.Clamp),
	}
	if k.Coefficient(0) <= 0 || math32.IsInf(k.ratio, 0) {
		return nil, invalid("min cutoff", cfg.MinCutoff, "outside single precision range")
	}
	return k, nil
}

// Max returns the full-scale reading.
func (k *Knob) Max() int {
	return k.readMax
}

// Cutoff returns the single-precision cutoff in Hz for a raw reading.
// Readings outside [0, Max] are limited to the range.
func (k *Knob) Cutoff(raw int) float32 {
	raw = max(0, min(k.readMax, raw))
	t := float32(raw) / float32(k.readMax)
	return k.minFc * math32.Pow(k.ratio, t)
}

// Coefficient returns the clamped single-precision coefficient for a raw reading.
func (k *Knob) Coefficient(raw int) float32 {
	f := 2 * math32.Sin(k.piOverFs*k.Cutoff(raw))
	return min(f, k.clamp)
}

// Table returns the coefficient for every reading 0..Max.
func (k *Knob) Table() []float32 {
	out := make([]float32, k.readMax+1)
	for raw := range out {
		out[raw] = k.Coefficient(raw)
	}
	return out
}

func (k *Knob) String() string {
	return fmt.Sprintf("knob(0..%d, %g-%g Hz @ %g Hz)",
		k.readMax, k.cfg.MinCutoff, k.cfg.MaxCutoff, k.cfg.SampleRate)
}
