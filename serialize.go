package notetable

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/tphakala/go-svf-notetable/internal/render"
)

// Format selects the generated artifact language.
type Format = render.Format

const (
	// FormatC writes a C/C++ header: `static const float kNoteFTable[128]`.
	FormatC = render.FormatC

	// FormatGo writes a Go source file with an unexported array and a
	// copying accessor function.
	FormatGo = render.FormatGo
)

// ParseFormat parses a format name ("c", "h", "go").
func ParseFormat(s string) (Format, error) {
	f, err := render.ParseFormat(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrConfiguration, err)
	}
	return f, nil
}

// WriteOptions controls the generated artifact. Zero fields take defaults.
type WriteOptions struct {
	// Format is the artifact language. The zero value is FormatC.
	Format Format

	// Identifier is the declared array (FormatC) or accessor (FormatGo) name.
	// Defaults to DefaultIdentifier for C and its exported form for Go.
	Identifier string

	// Package is the Go package clause. Defaults to DefaultGoPackage.
	Package string
}

// Validate checks the identifier and package names without rendering, so a
// batch can reject bad names before writing any file.
func (o WriteOptions) Validate() error {
	if err := o.names().Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrConfiguration, err)
	}
	return nil
}

func (o WriteOptions) renderOptions(t *Table) render.Options {
	opts := o.names()
	cfg := t.Config()
	opts.Comment = fmt.Sprintf("fs=%g Hz, cutoff %g-%g Hz (%s), clamp %g",
		cfg.SampleRate, cfg.MinCutoff, cfg.MaxCutoff, cfg.Curve, cfg.Clamp)
	return opts
}

// names resolves the defaulted identifier and package.
func (o WriteOptions) names() render.Options {
	id := o.Identifier
	if id == "" {
		id = DefaultIdentifier
		if o.Format == FormatGo {
			id = goIdentifier(DefaultIdentifier)
		}
	}
	pkg := o.Package
	if pkg == "" {
		pkg = DefaultGoPackage
	}
	return render.Options{
		Format:     o.Format,
		Identifier: id,
		Package:    pkg,
	}
}

// goIdentifier strips a C-style "k" constant prefix: kNoteFTable -> NoteFTable.
func goIdentifier(c string) string {
	if len(c) > 1 && c[0] == 'k' && c[1] >= 'A' && c[1] <= 'Z' {
		return c[1:]
	}
	return c
}

// Render writes the table artifact to w.
func (t *Table) Render(w io.Writer, opts WriteOptions) error {
	if err := render.Render(w, t.coeffs[:], opts.renderOptions(t)); err != nil {
		if errors.Is(err, render.ErrInvalidIdentifier) {
			return fmt.Errorf("%w: %w", ErrConfiguration, err)
		}
		return err
	}
	return nil
}

// Serialize writes table to path as the default C header.
func Serialize(table *Table, path string) error {
	return table.WriteFile(path, WriteOptions{})
}

// WriteFile renders the table and atomically replaces path with it.
//
// The artifact is rendered in memory first, then written to a temporary
// file next to path and renamed over it. If any step fails the previous
// artifact, if one exists, is left untouched and an *IOError is returned.
func (t *Table) WriteFile(path string, opts WriteOptions) error {
	var buf bytes.Buffer
	if err := t.Render(&buf, opts); err != nil {
		return err
	}

	dir := filepath.Dir(path)
	info, err := os.Stat(dir)
	if err != nil {
		return &IOError{Op: "stat", Path: dir, Err: err}
	}
	if !info.IsDir() {
		return &IOError{Op: "stat", Path: dir, Err: errors.New("not a directory")}
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return &IOError{Op: "create", Path: path, Err: err}
	}
	tmpName := tmp.Name()
	cleanup := func() { _ = os.Remove(tmpName) }

	if _, err := tmp.Write(buf.Bytes()); err != nil {
		_ = tmp.Close()
		cleanup()
		return &IOError{Op: "write", Path: path, Err: err}
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return &IOError{Op: "close", Path: path, Err: err}
	}
	if err := os.Chmod(tmpName, artifactFileMode); err != nil {
		cleanup()
		return &IOError{Op: "chmod", Path: path, Err: err}
	}
	if err := os.Rename(tmpName, path); err != nil {
		cleanup()
		return &IOError{Op: "rename", Path: path, Err: err}
	}
	return nil
}

// ParseArtifact reads the 128 coefficients back from a rendered artifact.
func ParseArtifact(r io.Reader) ([]float64, error) {
	values, err := render.Parse(r, NumNotes)
	if err != nil {
		if errors.Is(err, render.ErrMalformed) {
			return nil, fmt.Errorf("%w: %w", ErrMalformedArtifact, err)
		}
		return nil, fmt.Errorf("%w: %w", ErrIO, err)
	}
	return values, nil
}

// ReadArtifact parses the artifact at path.
func ReadArtifact(path string) ([]float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &IOError{Op: "open", Path: path, Err: err}
	}
	defer func() { _ = f.Close() }()
	return ParseArtifact(f)
}

// Diff compares artifact values with the table and returns the largest
// absolute difference and the note where it occurs.
func (t *Table) Diff(values []float64) (maxDiff float64, note int, err error) {
	if len(values) != NumNotes {
		return 0, 0, fmt.Errorf("%w: found %d entries, expected %d", ErrMalformedArtifact, len(values), NumNotes)
	}
	for i, v := range values {
		d := v - t.coeffs[i]
		if d < 0 {
			d = -d
		}
		if d > maxDiff {
			maxDiff, note = d, i
		}
	}
	return maxDiff, note, nil
}
