package composition

import (
	"errors"
	"fmt"

	"github.com/jsphweid/reprise/model"
)

// Builder assembles a Composition from the calls a score parser makes. Each
// call that fails is recorded and skipped; Build reports all of them.
type Builder struct {
	c              *Composition
	errs           []error
	pendingRepeats []model.Repeat
	multiEnding    []model.Repeat
}

func NewBuilder() *Builder {
	return &Builder{c: New()}
}

// SetTempo sets the tempo in microseconds per beat.
func (b *Builder) SetTempo(micros int) *Builder {
	b.record(b.c.SetTempo(micros))
	return b
}

func (b *Builder) SetSignature(beatsPerMeasure, beatUnit int) *Builder {
	b.record(b.c.SetSignature(model.Signature{BeatsPerMeasure: beatsPerMeasure, BeatUnit: beatUnit}))
	return b
}

// AddNote adds a note sounding from start up to, not including, end. pitch is
// a MIDI key number where 60 is C4.
func (b *Builder) AddNote(start, end, instrument, pitch, volume int) *Builder {
	b.record(b.addNote(start, end, instrument, pitch, volume))
	return b
}

func (b *Builder) addNote(start, end, instrument, pitch, volume int) error {
	op, err := model.FromMIDI(pitch)
	if err != nil {
		return fmt.Errorf("note at %d: %w", start, err)
	}
	return b.addPitchedNote(start, end, instrument, op, volume)
}

// AddPitchedNote is AddNote for pitches given directly, including those above
// the MIDI key range.
func (b *Builder) AddPitchedNote(start, end, instrument int, pitch model.OctavePitch, volume int) *Builder {
	b.record(b.addPitchedNote(start, end, instrument, pitch, volume))
	return b
}

func (b *Builder) addPitchedNote(start, end, instrument int, pitch model.OctavePitch, volume int) error {
	n, err := model.NewNote(pitch, start, end-start)
	if err != nil {
		return fmt.Errorf("note at %d: %w", start, err)
	}
	if err := n.SetInstrument(instrument); err != nil {
		return fmt.Errorf("note at %d: %w", start, err)
	}
	if err := n.SetVolume(volume); err != nil {
		return fmt.Errorf("note at %d: %w", start, err)
	}
	return b.c.AddNote(n)
}

// AddRepeat records a repeat. Repeats are applied in Build, once every note is
// known, so their marks are checked against the final length.
func (b *Builder) AddRepeat(goBack, mark int) *Builder {
	r, err := model.NewRepeat(goBack, mark)
	if err != nil {
		b.record(err)
		return b
	}
	b.pendingRepeats = append(b.pendingRepeats, r)
	return b
}

func (b *Builder) AddMultiEnding(repeats []model.Repeat) *Builder {
	b.multiEnding = append([]model.Repeat(nil), repeats...)
	return b
}

// Build returns the composition with everything that could be applied, and
// the joined errors of everything that could not.
func (b *Builder) Build() (*Composition, error) {
	for _, r := range b.pendingRepeats {
		b.record(b.c.AddRepeat(r))
	}
	b.pendingRepeats = nil
	if b.multiEnding != nil {
		b.record(b.c.SetMultiEnding(model.NewMultiEnding(b.multiEnding)))
		b.multiEnding = nil
	}
	return b.c, errors.Join(b.errs...)
}

func (b *Builder) record(err error) {
	if err != nil {
		b.errs = append(b.errs, err)
	}
}
