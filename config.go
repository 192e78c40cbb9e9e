package notetable

import (
	"fmt"
	"math"
	"strings"

	"github.com/tphakala/go-svf-notetable/internal/mathutil"
)

// Curve selects how a note number is mapped to a target cutoff frequency.
type Curve int

const (
	// CurveExponential spreads the cutoff range evenly in the log domain
	// over the note index: fc = min · (max/min)^(n/127).
	//
	// Because log2(mtof(n)) is linear in n, normalizing played pitch between
	// notes 0 and 127 in the log domain gives the same curve, so no pitch
	// computation is needed.
	CurveExponential Curve = iota

	// CurveKeyTrack makes the cutoff follow played pitch:
	// fc = clamp(mtof(n) · KeyTrackRatio, min, max).
	CurveKeyTrack
)

func (c Curve) String() string {
	switch c {
	case CurveExponential:
		return "exponential"
	case CurveKeyTrack:
		return "keytrack"
	default:
		return "unknown"
	}
}

// ParseCurve parses a curve name as accepted on the command line.
func ParseCurve(s string) (Curve, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "exponential", "exp":
		return CurveExponential, nil
	case "keytrack", "key-track", "pitch":
		return CurveKeyTrack, nil
	default:
		return 0, fmt.Errorf("%w: unknown curve %q", ErrConfiguration, s)
	}
}

// Config holds the parameters that fully determine a coefficient table.
// Changing any field invalidates previously generated tables.
type Config struct {
	// SampleRate is the audio engine's operating rate in Hz. Must be > 0.
	SampleRate float64

	// MinCutoff is the cutoff in Hz for note 0. Must be > 0.
	MinCutoff float64

	// MaxCutoff is the cutoff in Hz for note 127.
	// Must be > MinCutoff and below SampleRate/2.
	MaxCutoff float64

	// Clamp is the largest coefficient stored in the table.
	// Zero selects DefaultStabilityClamp. Must lie in (0, 1).
	Clamp float64

	// Curve selects the note to cutoff mapping. The zero value is CurveExponential.
	Curve Curve

	// KeyTrackRatio scales pitch to cutoff for CurveKeyTrack.
	// Zero selects DefaultKeyTrackRatio. Ignored by other curves.
	KeyTrackRatio float64
}

// DefaultConfig returns the configuration of the original embedded target:
// 16384 Hz audio rate, 80 Hz to 6 kHz sweep, 0.999 clamp.
func DefaultConfig() Config {
	return Config{
		SampleRate:    DefaultSampleRate,
		MinCutoff:     DefaultMinCutoff,
		MaxCutoff:     DefaultMaxCutoff,
		Clamp:         DefaultStabilityClamp,
		Curve:         CurveExponential,
		KeyTrackRatio: DefaultKeyTrackRatio,
	}
}

// withDefaults fills zero-valued optional fields.
func (c Config) withDefaults() Config {
	if c.Clamp == 0 {
		c.Clamp = DefaultStabilityClamp
	}
	if c.KeyTrackRatio == 0 {
		c.KeyTrackRatio = DefaultKeyTrackRatio
	}
	return c
}

// Validate checks the configuration before any computation.
// It returns a *ConfigurationError naming the first offending parameter.
func (c Config) Validate() error {
	c = c.withDefaults()

	for _, p := range []struct {
		name  string
		value float64
	}{
		{"sample rate", c.SampleRate},
		{"min cutoff", c.MinCutoff},
		{"max cutoff", c.MaxCutoff},
		{"clamp", c.Clamp},
		{"key track ratio", c.KeyTrackRatio},
	} {
		if math.IsNaN(p.value) || math.IsInf(p.value, 0) {
			return invalid(p.name, p.value, "must be finite")
		}
	}

	if c.SampleRate <= 0 {
		return invalid("sample rate", c.SampleRate, "must be positive")
	}
	if c.MinCutoff <= 0 {
		return invalid("min cutoff", c.MinCutoff, "must be positive")
	}
	if c.MinCutoff >= c.MaxCutoff {
		return invalid("min cutoff", c.MinCutoff,
			fmt.Sprintf("must be below max cutoff %g", c.MaxCutoff))
	}
	if nyquist := c.SampleRate / nyquistDivisor; c.MaxCutoff >= nyquist {
		return invalid("max cutoff", c.MaxCutoff,
			fmt.Sprintf("must be below Nyquist %g", nyquist))
	}
	if mathutil.SVFCoefficient(c.MinCutoff, c.SampleRate) <= 0 {
		return invalid("min cutoff", c.MinCutoff,
			fmt.Sprintf("too small for sample rate %g", c.SampleRate))
	}
	if c.Clamp <= 0 || c.Clamp >= 1 {
		return invalid("clamp", c.Clamp, "must lie in (0, 1)")
	}
	if c.KeyTrackRatio < 0 {
		return invalid("key track ratio", c.KeyTrackRatio, "must be positive")
	}
	if c.Curve != CurveExponential && c.Curve != CurveKeyTrack {
		return invalid("curve", float64(c.Curve), "unknown curve")
	}
	return nil
}
