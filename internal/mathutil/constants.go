package mathutil

// Equal-tempered pitch reference (A4 = MIDI note 69 = 440 Hz).
const (
	a4Note             = 69
	a4Frequency        = 440.0
	semitonesPerOctave = 12.0
)

// SVF coefficient constants.
//
// The Chamberlin state-variable filter tunes with f = 2·sin(π·fc/fs).
// The inverse fc = fs/π · asin(f/2) is only defined for f in [0, 2].
const (
	svfCoefficientScale = 2.0
	svfCoefficientMax   = 2.0
)
