// Package render turns a coefficient table into a compilable source artifact
// and parses such artifacts back.
package render

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
	"text/template"
)

// Format selects the artifact language.
type Format int

const (
	// FormatC emits a C/C++ header with a static const float array.
	FormatC Format = iota

	// FormatGo emits a Go source file with an unexported array and an
	// accessor that returns a copy.
	FormatGo
)

func (f Format) String() string {
	switch f {
	case FormatC:
		return "c"
	case FormatGo:
		return "go"
	default:
		return "unknown"
	}
}

// ParseFormat parses a format name.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "c", "h", "cpp", "header":
		return FormatC, nil
	case "go":
		return FormatGo, nil
	default:
		return 0, fmt.Errorf("unknown artifact format %q", s)
	}
}

var (
	// ErrInvalidIdentifier indicates a name that is not a legal identifier
	// for the chosen format.
	ErrInvalidIdentifier = errors.New("invalid identifier")

	// ErrMalformed indicates an artifact that does not parse as a table.
	ErrMalformed = errors.New("malformed table artifact")
)

// Options controls the rendered declaration.
type Options struct {
	Format Format

	// Identifier is the declared array name (FormatC) or accessor name (FormatGo).
	Identifier string

	// Package is the package clause for FormatGo.
	Package string

	// Comment is an optional one-line description placed above the declaration.
	Comment string
}

var (
	cIdentifier  = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)
	goIdentifier = regexp.MustCompile(`^[A-Z][A-Za-z0-9_]*$`)
	goPackage    = regexp.MustCompile(`^[a-z_][a-z0-9_]*$`)

	// valueLine matches one table entry: a literal, an optional f suffix,
	// a comma and the note index comment.
	valueLine = regexp.MustCompile(`^\s*([-+]?[0-9]*\.?[0-9]+(?:[eE][-+]?[0-9]+)?)f?\s*,\s*//\s*([0-9]+)\s*$`)
)

type entry struct {
	Value string
	Index int
}

type templateData struct {
	Identifier string
	Unexported string
	Package    string
	Comment    string
	Len        int
	Entries    []entry
}

var cTemplate = template.Must(template.New("c").Parse(`#pragma once

// Generated note->f table (MIDI 0..{{.Last}})
{{- if .Comment}}
// {{.Comment}}
{{- end}}
static const float {{.Identifier}}[{{.Len}}] = {
{{- range .Entries}}
` + valueIndent + `{{.Value}}f, // {{.Index}}
{{- end}}
};
`))

var goTemplate = template.Must(template.New("go").Parse(`// Code generated by notetable; DO NOT EDIT.

package {{.Package}}

// {{.Unexported}} holds the note->f table (MIDI 0..{{.Last}}).
{{- if .Comment}}
// {{.Comment}}
{{- end}}
var {{.Unexported}} = [{{.Len}}]float32{
{{- range .Entries}}
	{{.Value}}, // {{.Index}}
{{- end}}
}

// {{.Identifier}} returns a copy of the note->f table indexed by MIDI note.
func {{.Identifier}}() [{{.Len}}]float32 {
	return {{.Unexported}}
}
`))

// Last returns the highest note index.
func (d templateData) Last() int {
	return d.Len - 1
}

// Validate checks that the names in o are legal for its format.
func (o Options) Validate() error {
	switch o.Format {
	case FormatC:
		if !cIdentifier.MatchString(o.Identifier) {
			return fmt.Errorf("%w: %q is not a C identifier", ErrInvalidIdentifier, o.Identifier)
		}
	case FormatGo:
		if !goIdentifier.MatchString(o.Identifier) {
			return fmt.Errorf("%w: %q is not an exported Go identifier", ErrInvalidIdentifier, o.Identifier)
		}
		if !goPackage.MatchString(o.Package) {
			return fmt.Errorf("%w: %q is not a Go package name", ErrInvalidIdentifier, o.Package)
		}
	default:
		return fmt.Errorf("unsupported format %v", o.Format)
	}
	return nil
}

// Render writes values as an artifact in the requested format.
// Entries are emitted in ascending index order, one per line.
func Render(w io.Writer, values []float64, opts Options) error {
	data := templateData{
		Identifier: opts.Identifier,
		Package:    opts.Package,
		Comment:    opts.Comment,
		Len:        len(values),
		Entries:    make([]entry, len(values)),
	}
	for i, v := range values {
		data.Entries[i] = entry{Value: FormatValue(v), Index: i}
	}

	if err := opts.Validate(); err != nil {
		return err
	}
	tmpl := cTemplate
	if opts.Format == FormatGo {
		data.Unexported = strings.ToLower(opts.Identifier[:1]) + opts.Identifier[1:]
		tmpl = goTemplate
	}

	if err := tmpl.Execute(w, data); err != nil {
		return fmt.Errorf("failed to render %s table: %w", opts.Format, err)
	}
	return nil
}

// FormatValue renders a single coefficient literal without a type suffix.
func FormatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', valuePrecision, 64)
}

// Parse reads the entries of a rendered artifact.
//
// It accepts both formats. Lines that are not entries are skipped. The
// index comments must run 0, 1, 2, ... without gaps, and exactly want entries
// must be present.
func Parse(r io.Reader, want int) ([]float64, error) {
	values := make([]float64, 0, want)
	sc := bufio.NewScanner(r)
	for lineNo := 1; sc.Scan(); lineNo++ {
		m := valueLine.FindStringSubmatch(sc.Text())
		if m == nil {
			continue
		}
		idx, err := strconv.Atoi(m[2])
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: bad index %q", ErrMalformed, lineNo, m[2])
		}
		if idx != len(values) {
			return nil, fmt.Errorf("%w: line %d: index %d out of order, expected %d",
				ErrMalformed, lineNo, idx, len(values))
		}
		v, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %w", ErrMalformed, lineNo, err)
		}
		values = append(values, v)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("failed to read artifact: %w", err)
	}
	if len(values) != want {
		return nil, fmt.Errorf("%w: found %d entries, expected %d", ErrMalformed, len(values), want)
	}
	return values, nil
}
