package main

import (
	"fmt"
	"os"

	notetable "github.com/tphakala/go-svf-notetable"
	"github.com/tphakala/go-svf-notetable/internal/audition"
)

// renderSweep renders the full sweep and returns it with its sample rate.
func renderSweep(table *notetable.Table, opts audition.Options) ([]float64, int, error) {
	sweep, err := audition.NewSweep(table, opts)
	if err != nil {
		return nil, 0, err
	}
	samples, err := audition.Render(sweep.Streamer(), sweep.Len())
	if err != nil {
		return nil, 0, fmt.Errorf("failed to render sweep: %w", err)
	}
	return samples, int(sweep.SampleRate()), nil
}

// writeOutput creates path and writes samples to it as a 16-bit WAV.
func writeOutput(path string, samples []float64, rate int) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	if err := audition.WriteWAV(f, samples, rate); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close output file: %w", err)
	}
	return nil
}
