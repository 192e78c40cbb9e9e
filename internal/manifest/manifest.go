// Package manifest loads YAML descriptions of several note tables so they can
// be built and written in one run.
//
// Example:
//
//	defaults:
//	  sample_rate: 16384
//	  format: c
//	tables:
//	  - name: minisynth
//	    output: MiniSynthNoteTable.h
//	  - name: hifi
//	    sample_rate: 32768
//	    max_cutoff: 12000
//	    output: gen/hifi_table.go
//	    format: go
//	    package: hifi
package manifest

import (
	"bytes"
	"cmp"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	notetable "github.com/tphakala/go-svf-notetable"
)

// ErrInvalid reports a manifest that parses but cannot be built.
var ErrInvalid = errors.New("invalid manifest")

// Entry describes one table. Zero fields inherit from the manifest defaults,
// then from the library defaults.
type Entry struct {
	Name          string  `yaml:"name,omitempty"`
	SampleRate    float64 `yaml:"sample_rate,omitempty"`
	MinCutoff     float64 `yaml:"min_cutoff,omitempty"`
	MaxCutoff     float64 `yaml:"max_cutoff,omitempty"`
	Clamp         float64 `yaml:"clamp,omitempty"`
	Curve         string  `yaml:"curve,omitempty"`
	KeyTrackRatio float64 `yaml:"key_track_ratio,omitempty"`
	Format        string  `yaml:"format,omitempty"`
	Identifier    string  `yaml:"identifier,omitempty"`
	Package       string  `yaml:"package,omitempty"`
	Output        string  `yaml:"output,omitempty"`
}

// Manifest is a parsed manifest file.
type Manifest struct {
	Defaults Entry   `yaml:"defaults,omitempty"`
	Tables   []Entry `yaml:"tables"`

	// dir resolves relative outputs.
	dir string
}

// Job is a fully resolved manifest entry.
type Job struct {
	Name    string
	Config  notetable.Config
	Options notetable.WriteOptions
	Output  string
}

// Load reads and parses the manifest at path. Relative outputs resolve
// against the manifest's directory.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &notetable.IOError{Op: "read", Path: path, Err: err}
	}
	m, err := Parse(bytes.NewReader(data), filepath.Dir(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}

// Parse decodes a manifest. Unknown keys are rejected. dir is used to
// resolve relative outputs.
func Parse(r io.Reader, dir string) (*Manifest, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var m Manifest
	if err := dec.Decode(&m); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty document", ErrInvalid)
		}
		return nil, fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	if len(m.Tables) == 0 {
		return nil, fmt.Errorf("%w: no tables", ErrInvalid)
	}
	m.dir = dir
	return &m, nil
}

// Encode writes m as YAML.
func (m *Manifest) Encode(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(yamlIndent)
	if err := enc.Encode(m); err != nil {
		return err
	}
	return enc.Close()
}

// Jobs resolves every entry against the defaults and validates it. Names
// and outputs must be unique; a missing name is derived from the index.
func (m *Manifest) Jobs() ([]Job, error) {
	jobs := make([]Job, 0, len(m.Tables))
	names := make(map[string]int, len(m.Tables))
	outputs := make(map[string]int, len(m.Tables))

	for i, e := range m.Tables {
		e = e.inherit(m.Defaults)
		if e.Name == "" {
			e.Name = fmt.Sprintf("table%d", i)
		}
		job, err := e.job(m.dir)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", e.Name, err)
		}
		if prev, ok := names[job.Name]; ok {
			return nil, fmt.Errorf("%w: duplicate name %q (tables %d and %d)", ErrInvalid, job.Name, prev, i)
		}
		if prev, ok := outputs[job.Output]; ok {
			return nil, fmt.Errorf("%w: tables %d and %d both write %s", ErrInvalid, prev, i, job.Output)
		}
		names[job.Name] = i
		outputs[job.Output] = i
		jobs = append(jobs, job)
	}
	return jobs, nil
}

// Configs returns the table configurations of jobs, index-aligned.
func Configs(jobs []Job) []notetable.Config {
	cfgs := make([]notetable.Config, len(jobs))
	for i, j := range jobs {
		cfgs[i] = j.Config
	}
	return cfgs
}

func (e Entry) inherit(d Entry) Entry {
	e.SampleRate = cmp.Or(e.SampleRate, d.SampleRate)
	e.MinCutoff = cmp.Or(e.MinCutoff, d.MinCutoff)
	e.MaxCutoff = cmp.Or(e.MaxCutoff, d.MaxCutoff)
	e.Clamp = cmp.Or(e.Clamp, d.Clamp)
	e.Curve = cmp.Or(e.Curve, d.Curve)
	e.KeyTrackRatio = cmp.Or(e.KeyTrackRatio, d.KeyTrackRatio)
	e.Format = cmp.Or(e.Format, d.Format)
	e.Identifier = cmp.Or(e.Identifier, d.Identifier)
	e.Package = cmp.Or(e.Package, d.Package)
	return e
}

func (e Entry) job(dir string) (Job, error) {
	cfg := notetable.DefaultConfig()
	cfg.SampleRate = cmp.Or(e.SampleRate, cfg.SampleRate)
	cfg.MinCutoff = cmp.Or(e.MinCutoff, cfg.MinCutoff)
	cfg.MaxCutoff = cmp.Or(e.MaxCutoff, cfg.MaxCutoff)
	cfg.Clamp = cmp.Or(e.Clamp, cfg.Clamp)
	cfg.KeyTrackRatio = cmp.Or(e.KeyTrackRatio, cfg.KeyTrackRatio)
	if e.Curve != "" {
		curve, err := notetable.ParseCurve(e.Curve)
		if err != nil {
			return Job{}, err
		}
		cfg.Curve = curve
	}
	if err := cfg.Validate(); err != nil {
		return Job{}, err
	}

	opts := notetable.WriteOptions{Identifier: e.Identifier, Package: e.Package}
	if e.Format != "" {
		format, err := notetable.ParseFormat(e.Format)
		if err != nil {
			return Job{}, err
		}
		opts.Format = format
	}
	if err := opts.Validate(); err != nil {
		return Job{}, err
	}

	if e.Output == "" {
		return Job{}, fmt.Errorf("%w: missing output", ErrInvalid)
	}
	out := e.Output
	if !filepath.IsAbs(out) && dir != "" {
		out = filepath.Join(dir, out)
	}

	return Job{Name: e.Name, Config: cfg, Options: opts, Output: filepath.Clean(out)}, nil
}
