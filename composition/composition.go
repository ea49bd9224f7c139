// Package composition holds the editable model of a piece: its notes, meter,
// tempo, repeats and multi-ending, plus the pitch range and beat grid derived
// from the notes.
//
// A Composition is not safe for concurrent use. Callers pause playback before
// editing.
package composition

import (
	"errors"
	"fmt"
	"sort"

	"github.com/jsphweid/reprise/model"
	"github.com/jsphweid/reprise/util"
)

const DefaultTempo = 500000 // microseconds per beat, 120 bpm

type Composition struct {
	notes       []model.Note
	sig         model.Signature
	tempo       int
	repeats     map[int]model.Repeat
	multiEnding *model.MultiEnding

	// derived from notes, rebuilt on the next read after any mutation
	dirty      bool
	pitchRange []model.OctavePitch
	grid       Grid
}

func New() *Composition {
	return &Composition{
		sig:     model.DefaultSignature,
		tempo:   DefaultTempo,
		repeats: make(map[int]model.Repeat),
		dirty:   true,
	}
}

// FromNotes creates a composition holding copies of notes. A zero signature
// falls back to 4/4.
func FromNotes(notes []model.Note, sig model.Signature) *Composition {
	c := New()
	if sig != (model.Signature{}) {
		c.sig = sig
	}
	c.notes = append(c.notes, notes...)
	c.sortNotes()
	return c
}

func (c *Composition) invalidate() {
	c.dirty = true
}

func (c *Composition) sortNotes() {
	sort.SliceStable(c.notes, func(i, j int) bool {
		return c.notes[i].Start() < c.notes[j].Start()
	})
}

func (c *Composition) AddNote(n model.Note) error {
	if _, err := model.NewNote(n.Pitch(), n.Start(), n.Duration()); err != nil {
		return err
	}
	c.notes = append(c.notes, n)
	c.sortNotes()
	c.invalidate()
	return nil
}

func (c *Composition) indexOf(n model.Note) int {
	for i, other := range c.notes {
		if other.Equal(n) {
			return i
		}
	}
	return -1
}

// RemoveNote removes the first note with the same identity as n.
func (c *Composition) RemoveNote(n model.Note) error {
	defer c.invalidate()
	i := c.indexOf(n)
	if i < 0 {
		return fmt.Errorf("%w: %v", model.ErrNoteNotFound, n)
	}
	c.notes = append(c.notes[:i], c.notes[i+1:]...)
	return nil
}

// Length is the last beat any note sounds on, or 0 when there are no notes.
func (c *Composition) Length() int {
	longest := 0
	for _, n := range c.notes {
		if last := n.End() - 1; last > longest {
			longest = last
		}
	}
	return longest
}

// AddRepeat stores r keyed by its mark, replacing any repeat already there.
func (c *Composition) AddRepeat(r model.Repeat) error {
	if !r.Valid() {
		return fmt.Errorf("%w: %v", model.ErrInvalidRepeat, r)
	}
	if r.Mark > c.Length() {
		return fmt.Errorf("%w: mark %d, length %d", model.ErrRepeatBeyondEnd, r.Mark, c.Length())
	}
	c.repeats[r.Mark] = r
	return nil
}

// SetRepeats replaces all repeats. Repeats that fail AddRepeat are dropped and
// reported together.
func (c *Composition) SetRepeats(reps map[int]model.Repeat) error {
	c.repeats = make(map[int]model.Repeat)
	var errs []error
	for _, mark := range util.SortedKeys(reps) {
		if err := c.AddRepeat(reps[mark]); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// SetMultiEnding accepts m only when its last ending finishes right after the
// final beat of the piece.
func (c *Composition) SetMultiEnding(m model.MultiEnding) error {
	if !m.Valid() {
		return model.ErrInvalidMultiEnding
	}
	if m.End() != c.Length()+1 {
		return fmt.Errorf("%w: ends at %d, piece length %d", model.ErrEndingMismatch, m.End(), c.Length())
	}
	c.multiEnding = &m
	return nil
}

func (c *Composition) ClearMultiEnding() {
	c.multiEnding = nil
}

// SetTempo sets the tempo in microseconds per beat.
func (c *Composition) SetTempo(micros int) error {
	if micros <= 0 {
		return fmt.Errorf("%w: tempo %d must be positive", model.ErrValidation, micros)
	}
	c.tempo = micros
	return nil
}

func (c *Composition) SetSignature(sig model.Signature) error {
	if sig.BeatsPerMeasure <= 0 || sig.BeatUnit <= 0 {
		return fmt.Errorf("%w: signature %d/%d", model.ErrValidation, sig.BeatsPerMeasure, sig.BeatUnit)
	}
	c.sig = sig
	return nil
}

// Notes returns a copy of the notes sorted by start.
func (c *Composition) Notes() []model.Note {
	return append([]model.Note(nil), c.notes...)
}

// NotesAt returns the notes sounding at beat.
func (c *Composition) NotesAt(beat int) []model.Note {
	var res []model.Note
	for _, n := range c.notes {
		if n.Sounding(beat) {
			res = append(res, n)
		}
	}
	return res
}

func (c *Composition) Tempo() int                 { return c.tempo }
func (c *Composition) Signature() model.Signature { return c.sig }

// BPM converts the tempo to beats per minute.
func (c *Composition) BPM() float64 {
	return 60000000 / float64(c.tempo)
}

// Repeats returns a copy of the repeats keyed by mark.
func (c *Composition) Repeats() map[int]model.Repeat {
	res := make(map[int]model.Repeat, len(c.repeats))
	for k, v := range c.repeats {
		res[k] = v
	}
	return res
}

// RepeatMarks returns the marks of all repeats in ascending order.
func (c *Composition) RepeatMarks() []int {
	return util.SortedKeys(c.repeats)
}

func (c *Composition) MultiEnding() (model.MultiEnding, bool) {
	if c.multiEnding == nil {
		return model.MultiEnding{}, false
	}
	return *c.multiEnding, true
}

// Equal compares notes (as a multiset of identities), signature and tempo.
func (c *Composition) Equal(other *Composition) bool {
	if c.sig != other.sig || c.tempo != other.tempo || len(c.notes) != len(other.notes) {
		return false
	}
	counts := make(map[model.NoteKey]int)
	for _, n := range c.notes {
		counts[n.Key()]++
	}
	for _, n := range other.notes {
		counts[n.Key()]--
		if counts[n.Key()] < 0 {
			return false
		}
	}
	return true
}
