package notetable

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testKnobTolerance = 1e-5
	testTenBitMax     = 1023
)

// TestKnob_Endpoints verifies the knob sweeps the same cutoff range as the note table.
func TestKnob_Endpoints(t *testing.T) {
	k, err := NewKnob(DefaultConfig(), 0)
	require.NoError(t, err)
	assert.Equal(t, testTenBitMax, k.Max())

	assert.InDelta(t, DefaultMinCutoff, float64(k.Cutoff(0)), 1e-3)
	assert.InDelta(t, DefaultMaxCutoff, float64(k.Cutoff(testTenBitMax)), 0.05)

	assert.InDelta(t, testFirstEntry, float64(k.Coefficient(0)), testKnobTolerance)
	assert.Equal(t, float32(DefaultStabilityClamp), k.Coefficient(testTenBitMax))
}

// TestKnob_MatchesNoteTable verifies a 128-step knob reproduces the note table in single precision.
func TestKnob_MatchesNoteTable(t *testing.T) {
	k, err := NewKnob(DefaultConfig(), MaxNote)
	require.NoError(t, err)
	table := buildDefault(t)

	for n := range NumNotes {
		assert.InDelta(t, table.At(n), float64(k.Coefficient(n)), testKnobTolerance, "note %d", n)
	}
}

// TestKnob_TableMonotonicAndClamped verifies every reading yields a stable coefficient.
func TestKnob_TableMonotonicAndClamped(t *testing.T) {
	k, err := NewKnob(DefaultConfig(), 0)
	require.NoError(t, err)

	values := k.Table()
	require.Len(t, values, testTenBitMax+1)
	for i, v := range values {
		assert.Greater(t, v, float32(0), "reading %d", i)
		assert.LessOrEqual(t, v, float32(DefaultStabilityClamp), "reading %d", i)
		if i > 0 {
			assert.GreaterOrEqual(t, v, values[i-1], "reading %d", i)
		}
	}
}

// TestKnob_OutOfRangeReadings verifies readings are limited to the ADC range.
func TestKnob_OutOfRangeReadings(t *testing.T) {
	k, err := NewKnob(DefaultConfig(), 0)
	require.NoError(t, err)

	assert.Equal(t, k.Coefficient(0), k.Coefficient(-20))
	assert.Equal(t, k.Coefficient(testTenBitMax), k.Coefficient(4096))
}

func TestNewKnob_Errors(t *testing.T) {
	_, err := NewKnob(DefaultConfig(), -1)
	assert.ErrorIs(t, err, ErrConfiguration)

	_, err = NewKnob(Config{SampleRate: 0, MinCutoff: 80, MaxCutoff: 6000}, 0)
	assert.ErrorIs(t, err, ErrConfiguration)

	// Valid in double precision, but the cutoff ratio overflows float32.
	k, err := NewKnob(Config{SampleRate: DefaultSampleRate, MinCutoff: 1e-40, MaxCutoff: DefaultMaxCutoff}, 0)
	assert.Nil(t, k)
	var cfgErr *ConfigurationError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "min cutoff", cfgErr.Param)
}

func TestKnob_String(t *testing.T) {
	k, err := NewKnob(DefaultConfig(), 0)
	require.NoError(t, err)
	assert.Equal(t, "knob(0..1023, 80-6000 Hz @ 16384 Hz)", k.String())
}
