// Command analyze-table analyzes a note table with the SVF that consumes it and
// prints per-note tuning, DC gain and stability.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/golang/glog"

	notetable "github.com/tphakala/go-svf-notetable"
	"github.com/tphakala/go-svf-notetable/internal/analysis"
)

const (
	// Display limits
	noteColumnStep = 8 // print every Nth note unless -all is given

	// Exit codes
	exitUnstable = 1
)

func main() {
	var (
		fs       = flag.Float64("fs", notetable.DefaultSampleRate, "Audio engine sample rate in Hz")
		minFc    = flag.Float64("min-fc", notetable.DefaultMinCutoff, "Cutoff for note 0 in Hz")
		maxFc    = flag.Float64("max-fc", notetable.DefaultMaxCutoff, "Cutoff for note 127 in Hz")
		clamp    = flag.Float64("clamp", notetable.DefaultStabilityClamp, "Largest coefficient stored in the table")
		curve    = flag.String("curve", "exponential", "Note to cutoff curve: exponential, keytrack")
		artifact = flag.String("artifact", "", "Compare an existing artifact with the analyzed build")
		damping  = flag.Float64("damping", 0, "SVF damping for the stability check (default 0.95)")
		measure  = flag.Bool("measure", false, "Measure each note's resonant peak with an FFT")
		all      = flag.Bool("all", false, "Print every note")
	)
	flag.Parse()
	_ = flag.Set("logtostderr", "true")
	defer glog.Flush()

	c, err := notetable.ParseCurve(*curve)
	if err != nil {
		glog.Exitf("analyze-table: %v", err)
	}
	table, err := notetable.Build(notetable.Config{
		SampleRate: *fs,
		MinCutoff:  *minFc,
		MaxCutoff:  *maxFc,
		Clamp:      *clamp,
		Curve:      c,
	})
	if err != nil {
		glog.Exitf("analyze-table: %v", err)
	}

	if *artifact != "" {
		values, err := notetable.ReadArtifact(*artifact)
		if err != nil {
			glog.Exitf("analyze-table: %v", err)
		}
		maxDiff, note, err := table.Diff(values)
		if err != nil {
			glog.Exitf("analyze-table: %v", err)
		}
		fmt.Printf("Artifact %s: max diff %.3g at note %d\n\n", *artifact, maxDiff, note)
	}

	glog.V(1).Infof("analyzing %d notes (measure=%v)", table.Len(), *measure)
	report, err := analysis.Analyze(table, analysis.Options{Damping: *damping, Measure: *measure})
	if err != nil {
		glog.Exitf("analyze-table: %v", err)
	}

	printReport(report, *all)
	if !report.Stable() {
		glog.Flush()
		os.Exit(exitUnstable)
	}
}

func printReport(r *analysis.Report, all bool) {
	fmt.Println("=== Note Table Analysis ===")
	fmt.Printf("Sample rate: %g Hz, analysis damping: %g\n\n", r.SampleRate, r.Damping)

	fmt.Printf("%4s %10s %10s %10s %10s %10s %9s %8s\n",
		"note", "target Hz", "raw f", "f", "tuned Hz", "peak Hz", "DC gain", "margin")
	for _, n := range r.Notes {
		if !all && n.Note%noteColumnStep != 0 && n.Note != notetable.MaxNote && n.Note != r.FirstClamped {
			continue
		}
		peak := "-"
		if n.MeasuredCutoff > 0 {
			peak = fmt.Sprintf("%.2f", n.MeasuredCutoff)
		}
		mark := ""
		if n.Clamped {
			mark = " clamped"
		}
		if !n.Stable() {
			mark += " UNSTABLE"
		}
		fmt.Printf("%4d %10.2f %10.6f %10.6f %10.2f %10s %9.6f %8.4f%s\n",
			n.Note, n.TargetCutoff, n.RawCoefficient, n.Coefficient,
			n.EffectiveCutoff, peak, n.DCGain, n.StabilityMargin, mark)
	}

	fmt.Println("\nSummary:")
	fmt.Printf("  Coefficients: %.8f .. %.8f\n", r.MinCoefficient, r.MaxCoefficient)
	fmt.Printf("  Monotonic: %v\n", r.Monotonic)
	if r.FirstClamped >= 0 {
		fmt.Printf("  Clamped: notes %d-%d\n", r.FirstClamped, notetable.MaxNote)
	} else {
		fmt.Println("  Clamped: none")
	}
	fmt.Printf("  Max DC gain error: %.3g\n", r.MaxDCGainError)
	if r.MaxTuningError > 0 {
		fmt.Printf("  Max tuning error: %.3f%%\n", r.MaxTuningError*100)
	}
	fmt.Printf("  Min stability margin: %.4f\n", r.MinStabilityMargin)
	if r.Stable() {
		fmt.Println("\nAll notes stable")
	} else {
		fmt.Println("\nUnstable notes present")
	}
}
