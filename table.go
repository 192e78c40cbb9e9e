package notetable

import (
	"fmt"

	"github.com/tphakala/go-svf-notetable/internal/mathutil"
)

// Table is an immutable note to SVF coefficient table.
//
// Entries are index-aligned with MIDI note numbers 0..127, lie in (0, Clamp]
// and never decrease with the note number. A Table has no mutation path;
// regenerate it wholesale with [Build] when the configuration changes.
type Table struct {
	cfg     Config
	cutoffs [NumNotes]float64
	raw     [NumNotes]float64
	coeffs  [NumNotes]float64

	// firstClamped is the lowest clamped note, or -1.
	firstClamped int
}

// BuildTable builds the coefficient table for sample rate fs and the cutoff
// range [minFc, maxFc] with the default clamp and exponential curve.
func BuildTable(fs, minFc, maxFc float64) (*Table, error) {
	return Build(Config{
		SampleRate: fs,
		MinCutoff:  minFc,
		MaxCutoff:  maxFc,
	})
}

// Build builds a coefficient table from cfg.
//
// The configuration is validated before any computation; on error no table
// is returned. For each note n:
//
//	fc = curve(n)                  // min · (max/min)^(n/127) by default
//	f  = min(2·sin(π·fc/fs), clamp)
func Build(cfg Config) (*Table, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg = cfg.withDefaults()

	t := &Table{cfg: cfg, firstClamped: -1}
	for n := range NumNotes {
		fc := cfg.cutoff(n)
		raw := mathutil.SVFCoefficient(fc, cfg.SampleRate)
		f := raw
		if f > cfg.Clamp {
			f = cfg.Clamp
			if t.firstClamped < 0 {
				t.firstClamped = n
			}
		}
		t.cutoffs[n] = fc
		t.raw[n] = raw
		t.coeffs[n] = f
	}
	return t, nil
}

// cutoff maps note n to its target cutoff frequency in Hz.
func (c Config) cutoff(n int) float64 {
	switch c.Curve {
	case CurveKeyTrack:
		return mathutil.Clamp(MIDIToFrequency(n)*c.KeyTrackRatio, c.MinCutoff, c.MaxCutoff)
	default:
		return mathutil.ExpInterp(c.MinCutoff, c.MaxCutoff, float64(n)/MaxNote)
	}
}

// MIDIToFrequency returns the equal-tempered pitch of a MIDI note in Hz (A4 = 440 Hz).
func MIDIToFrequency(note int) float64 {
	return mathutil.MIDIToHz(float64(note))
}

// ValidNote reports whether note can index a table.
func ValidNote(note int) bool {
	return note >= 0 && note <= MaxNote
}

// ClampNote limits note to the table range, the way the synth engine
// guards its lookups.
func ClampNote(note int) int {
	return max(0, min(MaxNote, note))
}

// At returns the coefficient for note. Like an array index it does no
// range check of its own and panics for notes outside [0, 127]; callers
// validate with [ValidNote] or use [Table.Lookup].
func (t *Table) At(note int) float64 {
	return t.coeffs[note]
}

// Lookup returns the coefficient for note, or ErrNoteOutOfRange.
func (t *Table) Lookup(note int) (float64, error) {
	if !ValidNote(note) {
		return 0, fmt.Errorf("%w: %d", ErrNoteOutOfRange, note)
	}
	return t.coeffs[note], nil
}

// Cutoff returns the target cutoff frequency in Hz for note.
func (t *Table) Cutoff(note int) float64 {
	return t.cutoffs[note]
}

// RawCoefficient returns the coefficient for note before clamping.
func (t *Table) RawCoefficient(note int) float64 {
	return t.raw[note]
}

// Clamped reports whether the entry for note was limited by the clamp.
func (t *Table) Clamped(note int) bool {
	return t.firstClamped >= 0 && note >= t.firstClamped
}

// FirstClamped returns the lowest clamped note, or -1 if no entry was clamped.
// Since the table is non-decreasing, every note from here up is clamped.
func (t *Table) FirstClamped() int {
	return t.firstClamped
}

// Coefficients returns a copy of the table as a fixed-size array.
func (t *Table) Coefficients() [NumNotes]float64 {
	return t.coeffs
}

// Values returns a copy of the table as a slice.
func (t *Table) Values() []float64 {
	out := make([]float64, NumNotes)
	copy(out, t.coeffs[:])
	return out
}

// Float32 returns the table rounded to single precision, as stored on the target.
func (t *Table) Float32() [NumNotes]float32 {
	var out [NumNotes]float32
	for i, v := range t.coeffs {
		out[i] = float32(v)
	}
	return out
}

// Len returns the number of entries, always NumNotes.
func (t *Table) Len() int {
	return NumNotes
}

// Config returns the configuration the table was built from, with defaults applied.
func (t *Table) Config() Config {
	return t.cfg
}
