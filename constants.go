package notetable

// Table geometry.
const (
	// NumNotes is the number of entries in every coefficient table.
	NumNotes = 128

	// MaxNote is the highest valid MIDI note number and table index.
	MaxNote = NumNotes - 1
)

// Defaults matching the mini synth's embedded audio engine.
const (
	// DefaultSampleRate is the engine audio rate in Hz.
	DefaultSampleRate = 16384.0

	// DefaultMinCutoff is the cutoff in Hz assigned to note 0.
	DefaultMinCutoff = 80.0

	// DefaultMaxCutoff is the cutoff in Hz assigned to note 127.
	DefaultMaxCutoff = 6000.0

	// DefaultStabilityClamp is the largest coefficient the table will hold.
	//
	// Coefficients at or above 1.0 make the SVF integrator run away at high
	// resonance. 0.999 is an empirical safety margin, not a derived bound,
	// and may be tuned per target through Config.Clamp.
	DefaultStabilityClamp = 0.999

	// DefaultKeyTrackRatio scales the played pitch to a cutoff for CurveKeyTrack.
	DefaultKeyTrackRatio = 1.0

	// DefaultKnobMax is the full-scale reading of a 10-bit ADC.
	DefaultKnobMax = 1023
)

// Artifact defaults. Downstream builds reference these names, so they must
// stay stable across regenerations.
const (
	// DefaultIdentifier is the array name declared in generated sources.
	DefaultIdentifier = "kNoteFTable"

	// DefaultGoPackage is the package clause used for FormatGo output.
	DefaultGoPackage = "notetable"

	// DefaultOutputFile is the header file name the synth sketch includes.
	DefaultOutputFile = "MiniSynthNoteTable.h"
)

// nyquistDivisor converts a sample rate to its Nyquist frequency.
const nyquistDivisor = 2.0

// File modes for generated artifacts.
const artifactFileMode = 0o644
