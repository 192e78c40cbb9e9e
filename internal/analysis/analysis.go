// Package analysis validates a coefficient table against the SVF that
// consumes it: tuning accuracy, DC gain and stability per note.
package analysis

import (
	"fmt"
	"math"
	"math/cmplx"
	"sort"

	"gonum.org/v1/gonum/dsp/fourier"
	"gonum.org/v1/gonum/floats"

	notetable "github.com/tphakala/go-svf-notetable"
	"github.com/tphakala/go-svf-notetable/internal/mathutil"
	"github.com/tphakala/go-svf-notetable/internal/simdops"
	"github.com/tphakala/go-svf-notetable/internal/svf"
)

// Options configures the analysis. Zero fields take defaults.
type Options struct {
	// Damping is the SVF damping used for stability, DC gain and decay checks.
	Damping float64

	// Measure enables FFT measurement of the tuned frequency per note.
	Measure bool

	// MeasureDamping is the light damping used for peak measurement.
	MeasureDamping float64

	// FFTSize is the impulse response and transform length for peak measurement.
	FFTSize int

	// ResponseLength is the impulse response length for DC gain and decay.
	ResponseLength int
}

func (o Options) withDefaults() Options {
	if o.Damping == 0 {
		o.Damping = defaultDamping
	}
	if o.MeasureDamping == 0 {
		o.MeasureDamping = defaultMeasureDamping
	}
	if o.FFTSize == 0 {
		o.FFTSize = defaultFFTSize
	}
	if o.ResponseLength == 0 {
		o.ResponseLength = defaultResponseLength
	}
	return o
}

// NoteReport describes one table entry.
type NoteReport struct {
	Note int

	// TargetCutoff is the cutoff the curve asked for, in Hz.
	TargetCutoff float64

	// RawCoefficient and Coefficient are the entry before and after clamping.
	RawCoefficient float64
	Coefficient    float64
	Clamped        bool

	// EffectiveCutoff is the frequency the stored coefficient actually tunes
	// the filter to: fs/π · asin(f/2).
	EffectiveCutoff float64

	// MeasuredCutoff is the band-pass peak from the impulse response spectrum.
	// Zero when measurement is disabled.
	MeasuredCutoff float64

	// DCGain is the low-pass gain at DC, ideally 1.
	DCGain float64

	// StabilityMargin is the Jury slack at the configured damping; > 0 is stable.
	StabilityMargin float64

	// Decays reports whether the low-pass response energy dies out.
	Decays bool
}

// Stable reports whether the entry is stable both analytically and by simulation.
func (r NoteReport) Stable() bool {
	return r.StabilityMargin > 0 && r.Decays
}

// Report summarizes a whole table.
type Report struct {
	SampleRate float64
	Damping    float64
	Notes      []NoteReport

	Monotonic      bool
	FirstClamped   int
	MinCoefficient float64
	MaxCoefficient float64

	// MaxTuningError is the largest relative difference between the measured
	// and effective cutoffs. Zero when measurement is disabled.
	MaxTuningError float64

	// MaxDCGainError is the largest |DCGain - 1|.
	MaxDCGainError float64

	// MinStabilityMargin is the smallest Jury slack over all notes.
	MinStabilityMargin float64
}

// Stable reports whether every note is stable.
func (r *Report) Stable() bool {
	for _, n := range r.Notes {
		if !n.Stable() {
			return false
		}
	}
	return true
}

// Analyze runs every entry of table with the Chamberlin SVF.
func Analyze(table *notetable.Table, opts Options) (*Report, error) {
	if table == nil {
		return nil, fmt.Errorf("analysis: nil table")
	}
	opts = opts.withDefaults()
	if opts.Damping < 0 || opts.MeasureDamping < 0 {
		return nil, fmt.Errorf("analysis: damping must be positive")
	}
	if opts.FFTSize < 2 || opts.ResponseLength < tailDivisor {
		return nil, fmt.Errorf("analysis: response lengths too short (fft %d, response %d)",
			opts.FFTSize, opts.ResponseLength)
	}

	fs := table.Config().SampleRate
	values := table.Values()

	report := &Report{
		SampleRate:         fs,
		Damping:            opts.Damping,
		Notes:              make([]NoteReport, table.Len()),
		Monotonic:          sort.Float64sAreSorted(values),
		FirstClamped:       table.FirstClamped(),
		MinCoefficient:     floats.Min(values),
		MaxCoefficient:     floats.Max(values),
		MinStabilityMargin: math.Inf(1),
	}

	var fft *fourier.FFT
	if opts.Measure {
		fft = fourier.NewFFT(opts.FFTSize)
	}

	for n := range table.Len() {
		f := table.At(n)
		nr := NoteReport{
			Note:            n,
			TargetCutoff:    table.Cutoff(n),
			RawCoefficient:  table.RawCoefficient(n),
			Coefficient:     f,
			Clamped:         table.Clamped(n),
			EffectiveCutoff: mathutil.SVFCutoff(f, fs),
			StabilityMargin: svf.StabilityMargin(f, opts.Damping),
		}

		lp, _ := svf.ImpulseResponse(f, opts.Damping, opts.ResponseLength)
		nr.DCGain = DCGain(lp)
		nr.Decays = Decays(lp)

		if fft != nil {
			nr.MeasuredCutoff = MeasurePeak(fft, f, opts.MeasureDamping, fs)
			tuningErr := math.Abs(nr.MeasuredCutoff-nr.EffectiveCutoff) / nr.EffectiveCutoff
			report.MaxTuningError = math.Max(report.MaxTuningError, tuningErr)
		}

		report.MaxDCGainError = math.Max(report.MaxDCGainError, math.Abs(nr.DCGain-1))
		report.MinStabilityMargin = math.Min(report.MinStabilityMargin, nr.StabilityMargin)
		report.Notes[n] = nr
	}

	return report, nil
}

// DCGain returns the DC gain of an impulse response, the sum of its taps.
func DCGain(ir []float64) float64 {
	if len(ir) == 0 {
		return 0
	}
	return simdops.For[float64]().Sum(ir)
}

// Decays reports whether the last quarter of ir holds a negligible share of
// its energy.
func Decays(ir []float64) bool {
	if len(ir) < tailDivisor {
		return false
	}
	total := simdops.Energy(ir)
	if total == 0 || math.IsNaN(total) || math.IsInf(total, 0) {
		return false
	}
	tail := simdops.Energy(ir[len(ir)-len(ir)/tailDivisor:])
	return tail <= total*decayEnergyRatio
}

// MeasurePeak returns the frequency in Hz of the band-pass resonance for
// coefficient f and damping q, from the spectrum of an impulse response as
// long as the transform.
func MeasurePeak(fft *fourier.FFT, f, q, fs float64) float64 {
	n := fft.Len()
	_, bp := svf.ImpulseResponse(f, q, n)
	coeffs := fft.Coefficients(nil, bp)

	mags := make([]float64, len(coeffs))
	for i, c := range coeffs {
		mags[i] = cmplx.Abs(c)
	}
	// Skip DC: the band-pass has a zero there.
	k := floats.MaxIdx(mags[1:]) + 1

	offset := 0.0
	if k > 0 && k < len(mags)-1 {
		a, b, c := mags[k-1], mags[k], mags[k+1]
		if den := a - parabolaTwice*b + c; den != 0 {
			offset = parabolaHalf * (a - c) / den
		}
	}
	return (float64(k) + offset) * fs / float64(n)
}
