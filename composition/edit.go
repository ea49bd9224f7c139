package composition

import (
	"fmt"
	"strconv"

	"github.com/jsphweid/reprise/model"
)

// EditNote finds the note with the same identity as n and sets one field from
// its textual form. On any failure the note is left unchanged.
func (c *Composition) EditNote(n model.Note, field model.NoteField, value string) error {
	i := c.indexOf(n)
	if i < 0 {
		return fmt.Errorf("%w: %v", model.ErrNoteNotFound, n)
	}
	target := &c.notes[i]

	if field == model.FieldPitch {
		p, err := model.ParseOctavePitch(value)
		if err != nil {
			return fmt.Errorf("could not edit note pitch: %w", err)
		}
		if err := target.SetPitch(p); err != nil {
			return err
		}
		c.invalidate()
		return nil
	}

	v, err := strconv.Atoi(value)
	if err != nil {
		return fmt.Errorf("%w: invalid note %v %q", model.ErrValidation, field, value)
	}
	switch field {
	case model.FieldStart:
		err = target.SetStart(v)
		if err == nil {
			c.sortNotes()
		}
	case model.FieldDuration:
		err = target.SetDuration(v)
	case model.FieldVolume:
		err = target.SetVolume(v)
	case model.FieldInstrument:
		err = target.SetInstrument(v)
	default:
		return fmt.Errorf("%w: %v is not a part of a note", model.ErrValidation, field)
	}
	if err != nil {
		return err
	}
	c.invalidate()
	return nil
}
