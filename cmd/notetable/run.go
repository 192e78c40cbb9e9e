package main

import (
	"context"
	"fmt"
	"io"

	"github.com/golang/glog"

	notetable "github.com/tphakala/go-svf-notetable"
	"github.com/tphakala/go-svf-notetable/internal/manifest"
)

// cliOptions holds the parsed command line.
type cliOptions struct {
	sampleRate    float64
	minCutoff     float64
	maxCutoff     float64
	clamp         float64
	curve         string
	keyTrackRatio float64
	format        string
	identifier    string
	pkg           string
	output        string
	stdout        bool
	manifest      string
	check         bool
}

// resolveJobs turns the command line into table jobs, from the manifest if
// one is given and from the table flags otherwise.
func resolveJobs(opts cliOptions) ([]manifest.Job, error) {
	if opts.manifest != "" {
		m, err := manifest.Load(opts.manifest)
		if err != nil {
			return nil, err
		}
		return m.Jobs()
	}

	curve, err := notetable.ParseCurve(opts.curve)
	if err != nil {
		return nil, err
	}
	format, err := notetable.ParseFormat(opts.format)
	if err != nil {
		return nil, err
	}
	cfg := notetable.Config{
		SampleRate:    opts.sampleRate,
		MinCutoff:     opts.minCutoff,
		MaxCutoff:     opts.maxCutoff,
		Clamp:         opts.clamp,
		Curve:         curve,
		KeyTrackRatio: opts.keyTrackRatio,
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	wopts := notetable.WriteOptions{Format: format, Identifier: opts.identifier, Package: opts.pkg}
	if err := wopts.Validate(); err != nil {
		return nil, err
	}
	return []manifest.Job{{
		Name:    "table",
		Config:  cfg,
		Options: wopts,
		Output:  opts.output,
	}}, nil
}

// run builds every table before touching any output, then writes, prints or
// checks them. It reports false when -check finds a mismatch.
func run(ctx context.Context, opts cliOptions, stdout io.Writer) (bool, error) {
	jobs, err := resolveJobs(opts)
	if err != nil {
		return false, err
	}
	tables, err := notetable.BuildAll(ctx, manifest.Configs(jobs))
	if err != nil {
		return false, err
	}
	glog.V(1).Infof("built %d table(s)", len(tables))

	switch {
	case opts.check:
		return checkAll(jobs, tables, stdout), nil
	case opts.stdout:
		for i, job := range jobs {
			if err := tables[i].Render(stdout, job.Options); err != nil {
				return false, fmt.Errorf("%s: %w", job.Name, err)
			}
		}
		return true, nil
	default:
		for i, job := range jobs {
			if err := tables[i].WriteFile(job.Output, job.Options); err != nil {
				return false, fmt.Errorf("%s: %w", job.Name, err)
			}
			printSummary(stdout, job, tables[i])
		}
		return true, nil
	}
}

func printSummary(w io.Writer, job manifest.Job, t *notetable.Table) {
	cfg := t.Config()
	_, _ = fmt.Fprintf(w, "Wrote %s (%s, %d entries)\n", job.Output, job.Options.Format, t.Len())
	_, _ = fmt.Fprintf(w, "  fs=%g Hz, cutoff %g-%g Hz (%s)\n", cfg.SampleRate, cfg.MinCutoff, cfg.MaxCutoff, cfg.Curve)
	if first := t.FirstClamped(); first >= 0 {
		_, _ = fmt.Fprintf(w, "  notes %d-%d clamped to %g\n", first, notetable.MaxNote, cfg.Clamp)
	}
}

// checkAll compares each artifact on disk with its fresh build.
func checkAll(jobs []manifest.Job, tables []*notetable.Table, w io.Writer) bool {
	ok := true
	for i, job := range jobs {
		maxDiff, note, err := checkArtifact(job.Output, tables[i])
		switch {
		case err != nil:
			_, _ = fmt.Fprintf(w, "FAIL %s: %v\n", job.Output, err)
			ok = false
		case maxDiff > checkTolerance:
			_, _ = fmt.Fprintf(w, "FAIL %s: note %d differs by %.3g\n", job.Output, note, maxDiff)
			ok = false
		default:
			_, _ = fmt.Fprintf(w, "OK   %s (max diff %.3g)\n", job.Output, maxDiff)
		}
	}
	return ok
}

func checkArtifact(path string, t *notetable.Table) (float64, int, error) {
	values, err := notetable.ReadArtifact(path)
	if err != nil {
		return 0, 0, err
	}
	return t.Diff(values)
}
