package audition

import "time"

// Sweep defaults, as returned by DefaultOptions.
const (
	DefaultFirstNote    = 24
	DefaultLastNote     = 108
	DefaultStep         = 1
	DefaultNoteDuration = 150 * time.Millisecond
	DefaultDamping      = 0.5
	DefaultGain         = 0.8

	// MaxDamping matches the top of the synth's resonance knob.
	MaxDamping = 0.95
)

// fadeDuration ramps each note in and out to avoid clicks at retunes.
const fadeDuration = 5 * time.Millisecond

// Output encoding.
const (
	wavBitDepth    = 16
	wavChannels    = 1
	wavPCMFormat   = 1
	wavFullScale   = 32767.0
	wavMinSample   = -32768
	wavMaxSample   = 32767
	renderChunk    = 512
	sawPhaseCenter = 0.5
	sawAmplitude   = 2.0
)
