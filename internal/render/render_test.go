package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tphakala/go-svf-notetable/internal/testutil"
)

const (
	testIdentifierC  = "kNoteFTable"
	testIdentifierGo = "NoteFTable"
	testPackage      = "synth"
)

var testValues = []float64{0.0306784125699762, 0.031739197896558956, 0.5, 0.999}

func renderString(t *testing.T, values []float64, opts Options) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, values, opts))
	return buf.String()
}

// TestRender_CHeaderLayout verifies the exact header layout the synth sketch includes.
func TestRender_CHeaderLayout(t *testing.T) {
	got := renderString(t, testValues, Options{Format: FormatC, Identifier: testIdentifierC})

	want := `#pragma once

// Generated note->f table (MIDI 0..3)
static const float kNoteFTable[4] = {
    0.03067841f, // 0
    0.03173920f, // 1
    0.50000000f, // 2
    0.99900000f, // 3
};
`
	assert.Equal(t, want, got)
}

// TestRender_CHeaderComment verifies the optional comment line.
func TestRender_CHeaderComment(t *testing.T) {
	got := renderString(t, testValues, Options{
		Format:     FormatC,
		Identifier: testIdentifierC,
		Comment:    "fs=16384 Hz",
	})
	assert.Contains(t, got, "// Generated note->f table (MIDI 0..3)\n// fs=16384 Hz\nstatic const float")
}

// TestRender_GoSource verifies the Go artifact exposes only a copying accessor.
func TestRender_GoSource(t *testing.T) {
	got := renderString(t, testValues, Options{
		Format:     FormatGo,
		Identifier: testIdentifierGo,
		Package:    testPackage,
	})

	assert.True(t, strings.HasPrefix(got, "// Code generated by notetable; DO NOT EDIT.\n\npackage synth\n"))
	assert.Contains(t, got, "var noteFTable = [4]float32{\n\t0.03067841, // 0\n")
	assert.Contains(t, got, "func NoteFTable() [4]float32 {\n\treturn noteFTable\n}\n")
	assert.NotContains(t, got, "0.03067841f")
}

// TestRender_InvalidIdentifiers verifies identifier validation per format.
func TestRender_InvalidIdentifiers(t *testing.T) {
	tests := []struct {
		name string
		opts Options
	}{
		{"c_empty", Options{Format: FormatC}},
		{"c_leading_digit", Options{Format: FormatC, Identifier: "1table"}},
		{"c_dash", Options{Format: FormatC, Identifier: "note-table"}},
		{"go_unexported", Options{Format: FormatGo, Identifier: "noteTable", Package: testPackage}},
		{"go_bad_package", Options{Format: FormatGo, Identifier: testIdentifierGo, Package: "Synth"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			require.ErrorIs(t, tt.opts.Validate(), ErrInvalidIdentifier)
			err := Render(&buf, testValues, tt.opts)
			require.ErrorIs(t, err, ErrInvalidIdentifier)
			assert.Zero(t, buf.Len(), "nothing should be written on error")
		})
	}
}

func TestOptions_Validate(t *testing.T) {
	require.NoError(t, Options{Format: FormatC, Identifier: testIdentifierC}.Validate())
	require.NoError(t, Options{Format: FormatGo, Identifier: testIdentifierGo, Package: testPackage}.Validate())

	err := Options{Format: Format(9), Identifier: testIdentifierC}.Validate()
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalidIdentifier)
}

// TestParse_RoundTrip verifies rendered literals parse back within single-precision tolerance.
func TestParse_RoundTrip(t *testing.T) {
	for _, format := range []Format{FormatC, FormatGo} {
		t.Run(format.String(), func(t *testing.T) {
			opts := Options{Format: format, Identifier: testIdentifierC, Package: testPackage}
			if format == FormatGo {
				opts.Identifier = testIdentifierGo
			}
			text := renderString(t, testValues, opts)

			parsed, err := Parse(strings.NewReader(text), len(testValues))
			require.NoError(t, err)
			testutil.AssertSlicesInDelta(t, testValues, parsed, testutil.RoundTripTolerance)
		})
	}
}

// TestParse_Malformed verifies count and ordering checks.
func TestParse_Malformed(t *testing.T) {
	tests := []struct {
		name string
		text string
		want int
	}{
		{"too_few", "    0.1f, // 0\n    0.2f, // 1\n", 3},
		{"too_many", "    0.1f, // 0\n    0.2f, // 1\n", 1},
		{"gap", "    0.1f, // 0\n    0.2f, // 2\n", 2},
		{"reordered", "    0.2f, // 1\n    0.1f, // 0\n", 2},
		{"empty", "", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tt.text), tt.want)
			assert.ErrorIs(t, err, ErrMalformed)
		})
	}
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{"c": FormatC, "H": FormatC, "header": FormatC, "go": FormatGo} {
		got, err := ParseFormat(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseFormat("rust")
	assert.Error(t, err)
}
