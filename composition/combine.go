package composition

import (
	"errors"
	"fmt"

	"github.com/jsphweid/reprise/model"
	"github.com/jsphweid/reprise/util"
)

// Combine copies other's notes into c, shifted by offset beats, and copies
// other's repeats. Repeats keep their original beats; they are not shifted.
// Either everything is copied or, on error, nothing is.
func (c *Composition) Combine(other *Composition, offset int) error {
	if len(other.notes) == 0 {
		return nil
	}
	if first := other.notes[0].Start() + offset; first < 0 {
		return fmt.Errorf("%w: first note would start at %d", model.ErrNegativeStart, first)
	}
	shifted := make([]model.Note, 0, len(other.notes))
	length := c.Length()
	for _, n := range other.notes {
		moved := n
		if err := moved.SetStart(n.Start() + offset); err != nil {
			return err
		}
		shifted = append(shifted, moved)
		length = util.Max(length, moved.End()-1)
	}

	var errs []error
	for _, mark := range other.RepeatMarks() {
		if mark > length {
			errs = append(errs, fmt.Errorf("%w: mark %d, combined length %d", model.ErrRepeatBeyondEnd, mark, length))
		}
	}
	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	c.notes = append(c.notes, shifted...)
	c.sortNotes()
	c.invalidate()
	for mark, r := range other.repeats {
		c.repeats[mark] = r
	}
	return nil
}
