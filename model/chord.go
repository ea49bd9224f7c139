package model

type Notes = []uint8

// Chord is the set of MIDI keys sounding at one beat.
type Chord struct {
	Beat  int
	Notes Notes

	// FormedByOnset is true when at least one key starts on Beat.
	FormedByOnset bool
}
