package model

import (
	"fmt"
	"strconv"
)

const (
	MinOctave = 0
	MaxOctave = 10

	// MaxMIDIKey is G9. Pitches above it cannot be sent as MIDI.
	MaxMIDIKey = 127

	whiteKeysPerOctave = 7
	blackKeysPerOctave = 5
)

// OctavePitch is a pitch class bound to an octave. The zero value is C0.
type OctavePitch struct {
	Pitch  Pitch
	Octave int
}

func NewOctavePitch(p Pitch, octave int) (OctavePitch, error) {
	if octave < MinOctave || octave > MaxOctave {
		return OctavePitch{}, fmt.Errorf("%w: octave %d not in [%d, %d]", ErrOctaveRange, octave, MinOctave, MaxOctave)
	}
	if int(p) >= NumPitches {
		return OctavePitch{}, fmt.Errorf("%w: %v", ErrInvalidPitch, p)
	}
	return OctavePitch{Pitch: p, Octave: octave}, nil
}

// FromMIDI maps a MIDI key number onto a pitch, with 60 being C4.
func FromMIDI(key int) (OctavePitch, error) {
	if key < 0 || key > MaxMIDIKey {
		return OctavePitch{}, fmt.Errorf("%w: midi key %d not in [0, %d]", ErrValidation, key, MaxMIDIKey)
	}
	return NewOctavePitch(PitchOrder[key%NumPitches], key/NumPitches-1)
}

func (op OctavePitch) MIDI() int {
	return (op.Octave+1)*NumPitches + int(op.Pitch)
}

// Compare orders by octave first and pitch class second.
func (op OctavePitch) Compare(other OctavePitch) int {
	if op.Octave != other.Octave {
		return op.Octave - other.Octave
	}
	return int(op.Pitch) - int(other.Pitch)
}

func (op OctavePitch) Less(other OctavePitch) bool {
	return op.Compare(other) < 0
}

// Increment returns the next chromatic pitch, moving up an octave after B.
func (op OctavePitch) Increment() (OctavePitch, error) {
	octave := op.Octave
	if op.Pitch == B {
		octave++
	}
	return NewOctavePitch(op.Pitch.Next(), octave)
}

// KeyboardPosition is the index of this pitch among the keys of the same
// colour on a 120 key keyboard starting at C0.
func (op OctavePitch) KeyboardPosition() int {
	sharp := op.Pitch.Sharp()
	idx := 0
	for _, p := range PitchOrder[:op.Pitch] {
		if p.Sharp() == sharp {
			idx++
		}
	}
	if sharp {
		return op.Octave*blackKeysPerOctave + idx
	}
	return op.Octave*whiteKeysPerOctave + idx
}

// FromKeyboard inverts KeyboardPosition.
func FromKeyboard(pos int, black bool) (OctavePitch, error) {
	if pos < 0 {
		return OctavePitch{}, fmt.Errorf("%w: keyboard position %d", ErrValidation, pos)
	}
	perOctave := whiteKeysPerOctave
	if black {
		perOctave = blackKeysPerOctave
	}
	want := pos % perOctave
	for _, p := range PitchOrder {
		if p.Sharp() != black {
			continue
		}
		if want == 0 {
			return NewOctavePitch(p, pos/perOctave)
		}
		want--
	}
	return OctavePitch{}, fmt.Errorf("%w: keyboard position %d", ErrValidation, pos)
}

func (op OctavePitch) String() string {
	return op.Pitch.String() + strconv.Itoa(op.Octave)
}

// ParseOctavePitch reads the compact form: a letter, an optional '#' and the
// octave digits, e.g. "C4" or "F#10".
func ParseOctavePitch(text string) (OctavePitch, error) {
	if len(text) < 2 {
		return OctavePitch{}, fmt.Errorf("%w: %q", ErrInvalidPitch, text)
	}
	nameLen := 1
	if text[1] == '#' {
		nameLen = 2
	}
	p, err := ParsePitchName(text[:nameLen])
	if err != nil {
		return OctavePitch{}, err
	}
	digits := text[nameLen:]
	if digits == "" {
		return OctavePitch{}, fmt.Errorf("%w: %q has no octave", ErrInvalidPitch, text)
	}
	for _, r := range digits {
		if r < '0' || r > '9' {
			return OctavePitch{}, fmt.Errorf("%w: %q has a bad octave", ErrInvalidPitch, text)
		}
	}
	octave, err := strconv.Atoi(digits)
	if err != nil {
		return OctavePitch{}, fmt.Errorf("%w: %q: %v", ErrInvalidPitch, text, err)
	}
	return NewOctavePitch(p, octave)
}
