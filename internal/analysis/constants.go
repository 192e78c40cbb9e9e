package analysis

// Default analysis parameters.
const (
	// defaultDamping is the highest damping the synth's resonance knob reaches.
	// It is the worst case for the f² + 2·f·q < 4 stability bound.
	defaultDamping = 0.95

	// defaultMeasureDamping keeps the band-pass peak sharp enough to locate
	// the tuned frequency to well under 1%.
	defaultMeasureDamping = 0.02

	// defaultFFTSize gives 0.25 Hz bins at 16384 Hz.
	defaultFFTSize = 1 << 16

	// defaultResponseLength is the impulse response length for DC gain and decay.
	defaultResponseLength = 1 << 14

	// decayEnergyRatio is the largest tail/total energy ratio counted as decayed.
	decayEnergyRatio = 1e-12

	// tailDivisor selects the last 1/tailDivisor of the response as the tail.
	tailDivisor = 4
)

// Parabolic peak interpolation.
const (
	parabolaHalf  = 0.5
	parabolaTwice = 2.0
)
