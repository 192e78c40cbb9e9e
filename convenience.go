package notetable

// Common engine sample rates.
const (
	// RateMiniSynth is the power-of-two audio rate of the mini synth engine.
	RateMiniSynth = 16384

	// RateMozziHiFi is the doubled audio rate of Mozzi's HIFI mode.
	RateMozziHiFi = 32768

	// RateCD is the CD quality sample rate (Red Book standard).
	RateCD = 44100

	// RateDAT is the DAT/DVD sample rate.
	RateDAT = 48000
)

// DefaultTable builds the table of the original embedded target
// (16384 Hz, 80 Hz to 6 kHz, clamp 0.999).
func DefaultTable() (*Table, error) {
	return Build(DefaultConfig())
}

// NewForRate builds a table with the default cutoff sweep at sample rate fs.
func NewForRate(fs float64) (*Table, error) {
	cfg := DefaultConfig()
	cfg.SampleRate = fs
	return Build(cfg)
}

// NewKeyTracked builds a pitch-following table at sample rate fs where the
// cutoff is ratio times the played pitch, limited to the default sweep.
func NewKeyTracked(fs, ratio float64) (*Table, error) {
	cfg := DefaultConfig()
	cfg.SampleRate = fs
	cfg.Curve = CurveKeyTrack
	cfg.KeyTrackRatio = ratio
	return Build(cfg)
}
