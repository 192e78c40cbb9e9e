package svf

// Jury stability bounds for the Chamberlin update matrix.
//
// With x = 0 the state (low, band) evolves by a 2x2 matrix with
// trace 2 - f² - f·q and determinant 1 - f·q. The poles sit strictly inside
// the unit circle iff 0 < f·q < 2 and f² + 2·f·q < 4.
const (
	juryDetBound   = 2.0
	juryTraceBound = 4.0
	juryTraceScale = 2.0
)
