package main

// Default command-line flag values
const (
	defaultCurve  = "exponential"
	defaultFormat = "c"
)

// checkTolerance is the largest artifact/build difference -check accepts.
// Entries are printed with 8 decimals, so 1e-7 leaves room for rounding.
const checkTolerance = 1e-7

// Exit codes
const (
	exitMismatch = 1
)
