package model

import (
	"fmt"
	"strings"
)

// NoteField names the part of a note an edit targets.
type NoteField int

const (
	FieldPitch NoteField = iota
	FieldStart
	FieldDuration
	FieldInstrument
	FieldVolume
)

var noteFieldNames = map[NoteField]string{
	FieldPitch:      "pitch",
	FieldStart:      "start",
	FieldDuration:   "duration",
	FieldInstrument: "instrument",
	FieldVolume:     "volume",
}

func (f NoteField) String() string {
	if name, ok := noteFieldNames[f]; ok {
		return name
	}
	return fmt.Sprintf("NoteField(%d)", int(f))
}

func ParseNoteField(s string) (NoteField, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for f, name := range noteFieldNames {
		if name == s {
			return f, nil
		}
	}
	return 0, fmt.Errorf("%w: unknown note field %q", ErrValidation, s)
}
