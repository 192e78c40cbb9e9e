// Package svf models the Chamberlin state-variable filter that consumes the
// note coefficient table. It runs offline only, to measure stability and
// response of table entries; it is not a real-time engine.
package svf

import (
	"math"
)

// Outputs holds the three simultaneous Chamberlin outputs for one sample.
type Outputs struct {
	Lowpass  float64
	Bandpass float64
	Highpass float64
}

// Filter is a Chamberlin SVF with tuning coefficient f and damping q.
//
// The per-sample update matches the synth engine:
//
//	hp   = x - low - q·band
//	band = band + f·hp
//	low  = low + f·band
type Filter struct {
	f, q      float64
	low, band float64
}

// New returns a filter with coefficient f and damping q.
func New(f, q float64) *Filter {
	return &Filter{f: f, q: q}
}

// Reset clears the integrator state.
func (s *Filter) Reset() {
	s.low = 0
	s.band = 0
}

// SetCoefficient changes the tuning coefficient without touching state.
func (s *Filter) SetCoefficient(f float64) {
	s.f = f
}

// Process advances the filter by one sample.
func (s *Filter) Process(x float64) Outputs {
	hp := x - s.low - s.q*s.band
	s.band += s.f * hp
	s.low += s.f * s.band
	return Outputs{Lowpass: s.low, Bandpass: s.band, Highpass: hp}
}

// ImpulseResponse returns n samples of the low-pass and band-pass responses
// to a unit impulse, starting from rest.
func ImpulseResponse(f, q float64, n int) (lowpass, bandpass []float64) {
	lowpass = make([]float64, n)
	bandpass = make([]float64, n)
	s := New(f, q)
	for i := range n {
		x := 0.0
		if i == 0 {
			x = 1.0
		}
		out := s.Process(x)
		lowpass[i] = out.Lowpass
		bandpass[i] = out.Bandpass
	}
	return lowpass, bandpass
}

// Stable reports whether coefficient f with damping q yields a decaying
// filter.
func Stable(f, q float64) bool {
	return StabilityMargin(f, q) > 0
}

// StabilityMargin returns how far (f, q) is inside the stable region.
// The value is the smallest slack of the three Jury conditions; it is
// positive for a stable filter and zero or negative otherwise.
func StabilityMargin(f, q float64) float64 {
	fq := f * q
	return math.Min(fq, math.Min(juryDetBound-fq, juryTraceBound-f*f-juryTraceScale*fq))
}

// PoleRadius returns the magnitude of the dominant pole of the update matrix.
// Values below 1 decay; the closer to 1, the longer the ringing.
func PoleRadius(f, q float64) float64 {
	trace := 2 - f*f - f*q
	det := 1 - f*q
	disc := trace*trace - 4*det
	if disc < 0 {
		return math.Sqrt(math.Abs(det))
	}
	root := math.Sqrt(disc)
	return math.Max(math.Abs(trace+root), math.Abs(trace-root)) / 2
}
