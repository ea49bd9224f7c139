package model

import "errors"

var (
	ErrValidation         = errors.New("invalid value")
	ErrOctaveRange        = errors.New("octave out of range")
	ErrInvalidPitch       = errors.New("invalid pitch")
	ErrNoteNotFound       = errors.New("note not found")
	ErrInvalidRepeat      = errors.New("invalid repeat")
	ErrRepeatBeyondEnd    = errors.New("repeat mark is past the end of the piece")
	ErrInvalidMultiEnding = errors.New("invalid multi-ending")
	ErrEndingMismatch     = errors.New("multi-ending does not finish at the end of the piece")
	ErrNegativeStart      = errors.New("cannot start the piece at a negative beat")
)
