// Package mathutil provides the scalar math behind the note coefficient table.
package mathutil

import (
	"math"
)

// MIDIToHz converts a MIDI note number to its equal-tempered frequency in Hz
// using the A4 = 440 Hz convention.
//
// Fractional notes are accepted; the result is 440 · 2^((note-69)/12).
func MIDIToHz(note float64) float64 {
	return a4Frequency * math.Pow(2.0, (note-a4Note)/semitonesPerOctave)
}

// ExpInterp interpolates between lo and hi in the log domain.
//
// For t in [0, 1] the result sweeps from lo (t=0) to hi (t=1) with equal
// ratios per step: lo · (hi/lo)^t. Both endpoints must be positive.
// The ratio is never formed, so it cannot overflow for a tiny lo.
// The endpoints are returned exactly so that the table boundaries do not
// pick up rounding.
func ExpInterp(lo, hi, t float64) float64 {
	switch t {
	case 0:
		return lo
	case 1:
		return hi
	}
	logLo := math.Log(lo)
	return math.Exp(logLo + t*(math.Log(hi)-logLo))
}

// SVFCoefficient returns the Chamberlin SVF tuning coefficient
// f = 2·sin(π·fc/fs) for cutoff fc at sample rate fs.
//
// The value is unclamped. It is monotonically increasing for fc in [0, fs/2].
func SVFCoefficient(fc, fs float64) float64 {
	return svfCoefficientScale * math.Sin(math.Pi*fc/fs)
}

// SVFCutoff inverts [SVFCoefficient]: it returns the cutoff in Hz that a
// coefficient f actually tunes the filter to at sample rate fs.
//
// Coefficients outside [0, 2] have no real inverse and yield NaN.
func SVFCutoff(f, fs float64) float64 {
	if f < 0 || f > svfCoefficientMax {
		return math.NaN()
	}
	return fs / math.Pi * math.Asin(f/svfCoefficientScale)
}

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
