package analysis

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/dsp/fourier"

	notetable "github.com/tphakala/go-svf-notetable"
	"github.com/tphakala/go-svf-notetable/internal/mathutil"
	"github.com/tphakala/go-svf-notetable/internal/svf"
	"github.com/tphakala/go-svf-notetable/internal/testutil"
)

const (
	testFirstClampedNote = 104
	testTuningTolerance  = 0.01
)

func defaultTable(t *testing.T) *notetable.Table {
	t.Helper()
	table, err := notetable.BuildTable(notetable.DefaultSampleRate, notetable.DefaultMinCutoff, notetable.DefaultMaxCutoff)
	require.NoError(t, err)
	return table
}

// TestAnalyze_DefaultTable checks the shipped table against the filter that consumes it.
func TestAnalyze_DefaultTable(t *testing.T) {
	report, err := Analyze(defaultTable(t), Options{})
	require.NoError(t, err)

	require.Len(t, report.Notes, notetable.NumNotes)
	assert.True(t, report.Monotonic)
	assert.True(t, report.Stable(), "every entry must be stable at full resonance")
	assert.Equal(t, testFirstClampedNote, report.FirstClamped)
	assert.InDelta(t, notetable.DefaultStabilityClamp, report.MaxCoefficient, testutil.DefaultTolerance)
	assert.Positive(t, report.MinCoefficient)
	assert.Positive(t, report.MinStabilityMargin)
	assert.Less(t, report.MaxDCGainError, testutil.DCGainTolerance)
	assert.Zero(t, report.MaxTuningError, "measurement disabled by default")

	for _, n := range report.Notes {
		assert.Equal(t, n.Note >= testFirstClampedNote, n.Clamped, "note %d", n.Note)
		assert.Zero(t, n.MeasuredCutoff)
	}
}

// TestAnalyze_EffectiveCutoff verifies unclamped entries tune to their target
// and clamped entries fall short of it.
func TestAnalyze_EffectiveCutoff(t *testing.T) {
	report, err := Analyze(defaultTable(t), Options{})
	require.NoError(t, err)

	for _, n := range report.Notes {
		if n.Clamped {
			assert.Less(t, n.EffectiveCutoff, n.TargetCutoff, "note %d", n.Note)
			continue
		}
		testutil.AssertRelativeError(t, n.TargetCutoff, n.EffectiveCutoff, 1e-9, "note %d", n.Note)
	}
}

// TestAnalyze_Measure verifies the band-pass peak lands on the effective cutoff.
func TestAnalyze_Measure(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping FFT measurement in short mode")
	}
	report, err := Analyze(defaultTable(t), Options{Measure: true})
	require.NoError(t, err)

	assert.Positive(t, report.MaxTuningError)
	assert.Less(t, report.MaxTuningError, testTuningTolerance)
	for _, n := range report.Notes {
		testutil.AssertRelativeError(t, n.EffectiveCutoff, n.MeasuredCutoff, testTuningTolerance, "note %d", n.Note)
	}
}

// TestAnalyze_ExcessiveDamping verifies the stability check flags a damping
// the clamped entries cannot tolerate.
func TestAnalyze_ExcessiveDamping(t *testing.T) {
	report, err := Analyze(defaultTable(t), Options{Damping: 2.5})
	require.NoError(t, err)
	assert.False(t, report.Stable())
	assert.Negative(t, report.MinStabilityMargin)
	assert.True(t, report.Notes[0].Stable(), "low notes survive heavy damping")
}

func TestAnalyze_Errors(t *testing.T) {
	tests := []struct {
		name  string
		table *notetable.Table
		opts  Options
	}{
		{"nil table", nil, Options{}},
		{"negative damping", defaultTable(t), Options{Damping: -1}},
		{"negative measure damping", defaultTable(t), Options{MeasureDamping: -0.1}},
		{"short response", defaultTable(t), Options{ResponseLength: 2}},
		{"short fft", defaultTable(t), Options{FFTSize: 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report, err := Analyze(tt.table, tt.opts)
			require.Error(t, err)
			assert.Nil(t, report)
		})
	}
}

func TestDCGain(t *testing.T) {
	lp, _ := svf.ImpulseResponse(0.3, math.Sqrt2, 1<<12)
	assert.InDelta(t, 1.0, DCGain(lp), testutil.DCGainTolerance)
	assert.Zero(t, DCGain(nil))
}

func TestDecays(t *testing.T) {
	tests := []struct {
		name string
		f, q float64
		want bool
	}{
		{"damped", 0.5, 0.95, true},
		{"clamped top", 0.999, 0.95, true},
		{"undamped", 0.5, 0, false},
		{"unstable", 1.9, 0.95, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lp, _ := svf.ImpulseResponse(tt.f, tt.q, 1<<12)
			assert.Equal(t, tt.want, Decays(lp))
		})
	}
	assert.False(t, Decays([]float64{1, 0}), "too short")
	assert.False(t, Decays(make([]float64, 16)), "silent")
}

// TestMeasurePeak verifies the measured resonance for coefficients across the table.
func TestMeasurePeak(t *testing.T) {
	const fs = notetable.DefaultSampleRate
	fft := fourier.NewFFT(1 << 16)

	for _, fc := range []float64{80, 440, 1000, 2500} {
		f := mathutil.SVFCoefficient(fc, fs)
		got := MeasurePeak(fft, f, defaultMeasureDamping, fs)
		testutil.AssertRelativeError(t, fc, got, testTuningTolerance, "fc=%g", fc)
	}
}
