// Command audition-wav renders a note table as a WAV sweep: a saw voice plays
// each note through the SVF tuned from the table.
//
// Usage:
//
//	audition-wav sweep.wav
//	audition-wav -first 36 -last 96 -step 12 -damping 0.1 octaves.wav
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/golang/glog"

	notetable "github.com/tphakala/go-svf-notetable"
	"github.com/tphakala/go-svf-notetable/internal/audition"
)

const minRequiredArgs = 1

func main() {
	if err := run(); err != nil {
		glog.Exitf("audition-wav: %v", err)
	}
	glog.Flush()
}

func run() error {
	defaults := audition.DefaultOptions()
	dampingHelp := fmt.Sprintf("SVF damping, 0 (self-oscillating) to %g", audition.MaxDamping)
	var (
		fs      = flag.Float64("fs", notetable.DefaultSampleRate, "Audio engine sample rate in Hz")
		minFc   = flag.Float64("min-fc", notetable.DefaultMinCutoff, "Cutoff for note 0 in Hz")
		maxFc   = flag.Float64("max-fc", notetable.DefaultMaxCutoff, "Cutoff for note 127 in Hz")
		clamp   = flag.Float64("clamp", notetable.DefaultStabilityClamp, "Largest coefficient stored in the table")
		first   = flag.Int("first", defaults.FirstNote, "First note of the sweep")
		last    = flag.Int("last", defaults.LastNote, "Last note of the sweep")
		step    = flag.Int("step", defaults.Step, "Note increment")
		noteLen = flag.Duration("note", defaults.NoteDuration, "Duration of each note")
		damping = flag.Float64("damping", defaults.Damping, dampingHelp)
		gain    = flag.Float64("gain", defaults.Gain, "Output level, 0..1")
	)
	flag.Parse()
	_ = flag.Set("logtostderr", "true")

	args := flag.Args()
	if len(args) < minRequiredArgs {
		fmt.Fprintf(os.Stderr, "Usage: %s [options] output.wav\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		return fmt.Errorf("missing output file")
	}

	table, err := notetable.Build(notetable.Config{
		SampleRate: *fs,
		MinCutoff:  *minFc,
		MaxCutoff:  *maxFc,
		Clamp:      *clamp,
	})
	if err != nil {
		return err
	}

	opts := audition.Options{
		FirstNote:    *first,
		LastNote:     *last,
		Step:         *step,
		NoteDuration: *noteLen,
		Damping:      *damping,
		Gain:         *gain,
	}

	start := time.Now()
	samples, rate, err := renderSweep(table, opts)
	if err != nil {
		return err
	}
	glog.V(1).Infof("rendered %d samples in %v", len(samples), time.Since(start))

	if err := writeOutput(args[0], samples, rate); err != nil {
		return err
	}

	fmt.Printf("Wrote %s: %d samples at %d Hz (%.1f s), notes %d-%d step %d\n",
		args[0], len(samples), rate, float64(len(samples))/float64(rate), *first, *last, *step)
	return nil
}
