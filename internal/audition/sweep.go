// Package audition renders a note table audibly: a saw voice steps through
// the keyboard and each note is filtered by the SVF with that note's table
// coefficient, the way a key-tracked voice filter uses the table.
package audition

import (
	"fmt"
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"

	notetable "github.com/tphakala/go-svf-notetable"
	"github.com/tphakala/go-svf-notetable/internal/svf"
)

// Options configures a sweep. Start from DefaultOptions; a zero Step,
// NoteDuration or Gain takes its default, every other field is used as given.
type Options struct {
	// FirstNote and LastNote bound the sweep, inclusive.
	FirstNote, LastNote int

	// Step is the note increment. Use 12 for one note per octave.
	Step int

	// NoteDuration is how long each note sounds.
	NoteDuration time.Duration

	// Damping is the SVF damping, 0 (self-oscillating) to MaxDamping.
	Damping float64

	// Gain is the linear output level in (0, 1].
	Gain float64
}

// DefaultOptions returns a chromatic sweep over most of the keyboard.
func DefaultOptions() Options {
	return Options{
		FirstNote:    DefaultFirstNote,
		LastNote:     DefaultLastNote,
		Step:         DefaultStep,
		NoteDuration: DefaultNoteDuration,
		Damping:      DefaultDamping,
		Gain:         DefaultGain,
	}
}

// withDefaults fills the fields whose zero value is never meaningful.
func (o Options) withDefaults() Options {
	if o.Step == 0 {
		o.Step = DefaultStep
	}
	if o.NoteDuration == 0 {
		o.NoteDuration = DefaultNoteDuration
	}
	if o.Gain == 0 {
		o.Gain = DefaultGain
	}
	return o
}

func (o Options) validate() error {
	switch {
	case !notetable.ValidNote(o.FirstNote) || !notetable.ValidNote(o.LastNote):
		return fmt.Errorf("note range %d..%d outside 0..%d", o.FirstNote, o.LastNote, notetable.MaxNote)
	case o.FirstNote > o.LastNote:
		return fmt.Errorf("first note %d above last note %d", o.FirstNote, o.LastNote)
	case o.Step < 1:
		return fmt.Errorf("step %d must be positive", o.Step)
	case o.NoteDuration < 0:
		return fmt.Errorf("negative note duration %v", o.NoteDuration)
	case o.Damping < 0 || o.Damping > MaxDamping:
		return fmt.Errorf("damping %g outside [0, %g]", o.Damping, MaxDamping)
	case o.Gain <= 0 || o.Gain > 1:
		return fmt.Errorf("gain %g outside (0, 1]", o.Gain)
	}
	return nil
}

// Sweep is a beep.Streamer playing each note of a range through the filter.
type Sweep struct {
	table *notetable.Table
	rate  beep.SampleRate
	opts  Options

	filter  *svf.Filter
	notes   []int
	perNote int
	fade    int

	idx   int // index into notes
	pos   int // sample position within the current note
	phase float64
	inc   float64
}

// NewSweep returns a sweep over table at the table's sample rate.
func NewSweep(table *notetable.Table, opts Options) (*Sweep, error) {
	if table == nil {
		return nil, fmt.Errorf("audition: nil table")
	}
	opts = opts.withDefaults()
	if err := opts.validate(); err != nil {
		return nil, fmt.Errorf("audition: %w", err)
	}

	rate := beep.SampleRate(int(math.Round(table.Config().SampleRate)))
	var notes []int
	for n := opts.FirstNote; n <= opts.LastNote; n += opts.Step {
		notes = append(notes, n)
	}
	perNote := rate.N(opts.NoteDuration)
	if perNote < 1 {
		return nil, fmt.Errorf("audition: note duration %v shorter than one sample", opts.NoteDuration)
	}

	s := &Sweep{
		table:   table,
		rate:    rate,
		opts:    opts,
		filter:  svf.New(table.At(notes[0]), opts.Damping),
		notes:   notes,
		perNote: perNote,
		fade:    min(rate.N(fadeDuration), perNote/2),
	}
	s.tune()
	return s, nil
}

// Notes returns the notes played, in order.
func (s *Sweep) Notes() []int {
	return append([]int(nil), s.notes...)
}

// SampleRate returns the rate the sweep is rendered at.
func (s *Sweep) SampleRate() beep.SampleRate {
	return s.rate
}

// Len returns the total number of samples.
func (s *Sweep) Len() int {
	return len(s.notes) * s.perNote
}

// Position returns the number of samples streamed so far.
func (s *Sweep) Position() int {
	return min(s.idx*s.perNote+s.pos, s.Len())
}

// tune points the oscillator and filter at the current note.
func (s *Sweep) tune() {
	note := s.notes[s.idx]
	s.inc = notetable.MIDIToFrequency(note) / float64(s.rate)
	s.filter.SetCoefficient(s.table.At(note))
}

// Stream implements beep.Streamer. Both channels carry the same signal.
func (s *Sweep) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if s.pos >= s.perNote {
			s.idx++
			s.pos = 0
			if s.idx < len(s.notes) {
				s.tune()
			}
		}
		if s.idx >= len(s.notes) {
			return i, i > 0
		}

		saw := sawAmplitude * (s.phase - sawPhaseCenter)
		s.phase += s.inc
		s.phase -= math.Floor(s.phase)

		y := SoftClip(s.filter.Process(saw).Lowpass) * s.envelope()
		samples[i][0] = y
		samples[i][1] = y
		s.pos++
	}
	return len(samples), true
}

// Err implements beep.Streamer.
func (s *Sweep) Err() error {
	return nil
}

// envelope is a linear fade at both ends of each note.
func (s *Sweep) envelope() float64 {
	if s.fade == 0 {
		return 1
	}
	if s.pos < s.fade {
		return float64(s.pos) / float64(s.fade)
	}
	if rem := s.perNote - s.pos; rem <= s.fade {
		return float64(rem-1) / float64(s.fade)
	}
	return 1
}

// Streamer returns the sweep with its output gain applied.
func (s *Sweep) Streamer() beep.Streamer {
	if s.opts.Gain == 1 {
		return s
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(s.opts.Gain)}
}

// SoftClip limits x to (-1, 1) with x / (1 + |x|), the synth's output
// saturator. It tames a self-oscillating filter without hard edges.
func SoftClip(x float64) float64 {
	return x / (1 + math.Abs(x))
}

// Render drains streamer and returns its left channel.
func Render(streamer beep.Streamer, sizeHint int) ([]float64, error) {
	out := make([]float64, 0, max(sizeHint, 0))
	buf := make([][2]float64, renderChunk)
	for {
		n, ok := streamer.Stream(buf)
		for _, frame := range buf[:n] {
			out = append(out, frame[0])
		}
		if !ok {
			break
		}
	}
	if err := streamer.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
