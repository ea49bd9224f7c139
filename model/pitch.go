package model

import "fmt"

// Pitch is one of the twelve chromatic pitch classes.
type Pitch uint8

const (
	C Pitch = iota
	CSharp
	D
	DSharp
	E
	F
	FSharp
	G
	GSharp
	A
	ASharp
	B
)

const NumPitches = 12

var pitchNames = [NumPitches]string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

// PitchOrder lists every pitch class from C to B.
var PitchOrder = [NumPitches]Pitch{C, CSharp, D, DSharp, E, F, FSharp, G, GSharp, A, ASharp, B}

func (p Pitch) String() string {
	if int(p) >= NumPitches {
		return fmt.Sprintf("Pitch(%d)", uint8(p))
	}
	return pitchNames[p]
}

// Next returns the following pitch class, wrapping B back to C.
func (p Pitch) Next() Pitch {
	return (p + 1) % NumPitches
}

func (p Pitch) Sharp() bool {
	switch p {
	case CSharp, DSharp, FSharp, GSharp, ASharp:
		return true
	}
	return false
}

func ParsePitchName(name string) (Pitch, error) {
	for i, n := range pitchNames {
		if n == name {
			return Pitch(i), nil
		}
	}
	return 0, fmt.Errorf("%w: unknown pitch name %q", ErrInvalidPitch, name)
}
