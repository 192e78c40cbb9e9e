package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	notetable "github.com/tphakala/go-svf-notetable"
)

func defaultOptions(output string) cliOptions {
	return cliOptions{
		sampleRate:    notetable.DefaultSampleRate,
		minCutoff:     notetable.DefaultMinCutoff,
		maxCutoff:     notetable.DefaultMaxCutoff,
		clamp:         notetable.DefaultStabilityClamp,
		curve:         defaultCurve,
		keyTrackRatio: notetable.DefaultKeyTrackRatio,
		format:        defaultFormat,
		pkg:           notetable.DefaultGoPackage,
		output:        output,
	}
}

func TestRun_WritesHeader(t *testing.T) {
	path := filepath.Join(t.TempDir(), notetable.DefaultOutputFile)
	var out bytes.Buffer

	ok, err := run(t.Context(), defaultOptions(path), &out)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Contains(t, out.String(), "Wrote "+path)
	assert.Contains(t, out.String(), "notes 104-127 clamped to 0.999")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "static const float kNoteFTable[128] = {")
}

func TestRun_Stdout(t *testing.T) {
	opts := defaultOptions(filepath.Join(t.TempDir(), "unused.h"))
	opts.stdout = true
	opts.format = "go"
	opts.pkg = "synth"
	var out bytes.Buffer

	ok, err := run(t.Context(), opts, &out)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.True(t, strings.HasPrefix(out.String(), "// Code generated by notetable; DO NOT EDIT."))
	assert.Contains(t, out.String(), "package synth")
	assert.NoFileExists(t, opts.output)
}

func TestRun_InvalidConfigWritesNothing(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*cliOptions)
		target error
	}{
		{"zero sample rate", func(o *cliOptions) { o.sampleRate = 0 }, notetable.ErrConfiguration},
		{"reversed range", func(o *cliOptions) { o.minCutoff, o.maxCutoff = 6000, 80 }, notetable.ErrConfiguration},
		{"max above nyquist", func(o *cliOptions) { o.maxCutoff = 9000 }, notetable.ErrConfiguration},
		{"unknown curve", func(o *cliOptions) { o.curve = "linear" }, notetable.ErrConfiguration},
		{"unknown format", func(o *cliOptions) { o.format = "rust" }, notetable.ErrConfiguration},
		{"bad identifier", func(o *cliOptions) { o.identifier = "2fast" }, notetable.ErrConfiguration},
		{"missing directory", func(o *cliOptions) { o.output = filepath.Join(o.output, "..", "missing", "t.h") }, notetable.ErrIO},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			opts := defaultOptions(filepath.Join(dir, "t.h"))
			tt.mutate(&opts)
			var out bytes.Buffer

			ok, err := run(t.Context(), opts, &out)
			require.ErrorIs(t, err, tt.target)
			assert.False(t, ok)
			assert.Empty(t, out.String())
			assert.NoFileExists(t, filepath.Join(dir, "t.h"))
		})
	}
}

func TestRun_Check(t *testing.T) {
	path := filepath.Join(t.TempDir(), "table.h")
	opts := defaultOptions(path)
	_, err := run(t.Context(), opts, &bytes.Buffer{})
	require.NoError(t, err)

	t.Run("matching", func(t *testing.T) {
		check := opts
		check.check = true
		var out bytes.Buffer
		ok, err := run(t.Context(), check, &out)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Contains(t, out.String(), "OK   "+path)
	})

	t.Run("stale", func(t *testing.T) {
		check := opts
		check.check = true
		check.maxCutoff = 5000
		var out bytes.Buffer
		ok, err := run(t.Context(), check, &out)
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Contains(t, out.String(), "FAIL "+path)
	})

	t.Run("missing", func(t *testing.T) {
		check := opts
		check.check = true
		check.output = filepath.Join(t.TempDir(), "absent.h")
		var out bytes.Buffer
		ok, err := run(t.Context(), check, &out)
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Contains(t, out.String(), "FAIL")
	})
}

func TestRun_Manifest(t *testing.T) {
	dir := t.TempDir()
	manifestPath := filepath.Join(dir, "tables.yaml")
	content := `
tables:
  - name: minisynth
    output: minisynth.h
  - name: hifi
    sample_rate: 32768
    max_cutoff: 12000
    format: go
    package: hifi
    output: hifi.go
`
	require.NoError(t, os.WriteFile(manifestPath, []byte(content), 0o600))

	opts := defaultOptions("ignored.h")
	opts.manifest = manifestPath
	var out bytes.Buffer
	ok, err := run(t.Context(), opts, &out)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.FileExists(t, filepath.Join(dir, "minisynth.h"))
	assert.FileExists(t, filepath.Join(dir, "hifi.go"))
	assert.NoFileExists(t, "ignored.h")

	opts.check = true
	ok, err = run(t.Context(), opts, &bytes.Buffer{})
	require.NoError(t, err)
	assert.True(t, ok)
}

// TestRun_ManifestAllOrNothing verifies a configuration error in any entry
// is reported before the valid entries are written.
func TestRun_ManifestAllOrNothing(t *testing.T) {
	tests := []struct {
		name  string
		entry string
	}{
		{"max above nyquist", "{output: bad.h, max_cutoff: 20000}"},
		{"invalid identifier", "{output: bad.h, identifier: not valid}"},
		{"invalid go package", "{output: bad.go, format: go, package: Synth}"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			manifestPath := filepath.Join(dir, "tables.yaml")
			content := "tables:\n  - output: good.h\n  - " + tt.entry + "\n"
			require.NoError(t, os.WriteFile(manifestPath, []byte(content), 0o600))

			opts := defaultOptions("")
			opts.manifest = manifestPath
			var out bytes.Buffer
			_, err := run(t.Context(), opts, &out)
			require.ErrorIs(t, err, notetable.ErrConfiguration)
			assert.Empty(t, out.String())
			assert.NoFileExists(t, filepath.Join(dir, "good.h"))
			assert.NoFileExists(t, filepath.Join(dir, "bad.h"))
			assert.NoFileExists(t, filepath.Join(dir, "bad.go"))
		})
	}
}
