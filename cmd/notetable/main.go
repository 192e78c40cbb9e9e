// Command notetable generates the note to SVF coefficient table consumed by
// the synth firmware.
//
//	notetable -fs 16384 -min-fc 80 -max-fc 6000 -o MiniSynthNoteTable.h
//	notetable -manifest tables.yaml
//	notetable -check -o MiniSynthNoteTable.h
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"

	"github.com/golang/glog"

	notetable "github.com/tphakala/go-svf-notetable"
)

func main() {
	var opts cliOptions
	flag.Float64Var(&opts.sampleRate, "fs", notetable.DefaultSampleRate, "Audio engine sample rate in Hz")
	flag.Float64Var(&opts.minCutoff, "min-fc", notetable.DefaultMinCutoff, "Cutoff for note 0 in Hz")
	flag.Float64Var(&opts.maxCutoff, "max-fc", notetable.DefaultMaxCutoff, "Cutoff for note 127 in Hz")
	flag.Float64Var(&opts.clamp, "clamp", notetable.DefaultStabilityClamp, "Largest coefficient stored in the table")
	flag.StringVar(&opts.curve, "curve", defaultCurve, "Note to cutoff curve: exponential, keytrack")
	flag.Float64Var(&opts.keyTrackRatio, "key-track-ratio", notetable.DefaultKeyTrackRatio, "Cutoff to pitch ratio for -curve keytrack")
	flag.StringVar(&opts.format, "format", defaultFormat, "Artifact format: c, go")
	flag.StringVar(&opts.identifier, "identifier", "", "Generated array or accessor name (default kNoteFTable, NoteFTable for go)")
	flag.StringVar(&opts.pkg, "package", notetable.DefaultGoPackage, "Package clause for -format go")
	flag.StringVar(&opts.output, "o", notetable.DefaultOutputFile, "Output file")
	flag.BoolVar(&opts.stdout, "stdout", false, "Write the artifact to stdout instead of a file")
	flag.StringVar(&opts.manifest, "manifest", "", "YAML manifest describing several tables (overrides table flags)")
	flag.BoolVar(&opts.check, "check", false, "Verify existing artifacts against a fresh build instead of writing")
	flag.Parse()

	// glog writes to files by default; a build tool reports on stderr.
	_ = flag.Set("logtostderr", "true")
	defer glog.Flush()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	ok, err := run(ctx, opts, os.Stdout)
	if err != nil {
		glog.Exitf("notetable: %v", err)
	}
	if !ok {
		glog.Flush()
		os.Exit(exitMismatch)
	}
}
