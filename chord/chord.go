package chord

import (
	"fmt"
	"sort"

	"github.com/jsphweid/reprise/composition"
	"github.com/jsphweid/reprise/model"
)

type OnNotes = map[uint8]bool

func CreateChordKey(notes []uint8) string {
	sort.Slice(notes, func(i, j int) bool {
		return notes[i] < notes[j]
	})
	var res string
	for i, note := range notes {
		res += fmt.Sprintf("%v", note)
		if i < len(notes)-1 {
			res += "-"
		}
	}
	return res
}

// PitchesAt returns the distinct pitches sounding at beat, lowest first.
func PitchesAt(c *composition.Composition, beat int) []model.OctavePitch {
	seen := make(map[model.OctavePitch]bool)
	var res []model.OctavePitch
	for _, n := range c.NotesAt(beat) {
		if !seen[n.Pitch()] {
			seen[n.Pitch()] = true
			res = append(res, n.Pitch())
		}
	}
	sort.Slice(res, func(i, j int) bool {
		return res[i].Less(res[j])
	})
	return res
}

func getChord(c *composition.Composition, beat int) model.Chord {
	ch := model.Chord{Beat: beat}
	pressed := make(OnNotes)
	for _, n := range c.NotesAt(beat) {
		pressed[uint8(n.Pitch().MIDI())] = true
		if n.Start() == beat {
			ch.FormedByOnset = true
		}
	}
	for key := range pressed {
		ch.Notes = append(ch.Notes, key)
	}
	sort.Slice(ch.Notes, func(i, j int) bool {
		return ch.Notes[i] < ch.Notes[j]
	})
	return ch
}

// GetChords returns one chord per beat that has anything sounding, in beat
// order.
func GetChords(c *composition.Composition) []model.Chord {
	var chords []model.Chord
	if len(c.Notes()) == 0 {
		return chords
	}
	for beat := 0; beat <= c.Length(); beat++ {
		ch := getChord(c, beat)
		if len(ch.Notes) > 0 {
			chords = append(chords, ch)
		}
	}
	return chords
}
