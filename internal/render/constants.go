package render

// Value formatting. 8 fractional digits round-trip single precision well
// below audio relevance (half an ULP of 1.0f is ~6e-8).
const (
	valuePrecision = 8
	valueIndent    = "    "
)
