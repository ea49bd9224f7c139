package clock

import (
	"sort"

	"github.com/jsphweid/reprise/composition"
	"github.com/jsphweid/reprise/model"
	"gitlab.com/gomidi/midi/v2"
)

// Schedule is what a sequencer sends: program changes once before playing,
// then the messages due at each tick.
type Schedule struct {
	Setup  []midi.Message
	Events map[int][]midi.Message
}

// NewSchedule turns every note into a note-on at its start and a note-off at
// its end. At any tick note-offs come before note-ons.
func NewSchedule(c *composition.Composition) Schedule {
	notes := c.Notes()
	channels := model.InstrumentChannels(notes)

	s := Schedule{Events: make(map[int][]midi.Message)}
	for inst, ch := range channels {
		s.Setup = append(s.Setup, midi.ProgramChange(ch, uint8(inst)))
	}
	sort.Slice(s.Setup, func(i, j int) bool { return string(s.Setup[i]) < string(s.Setup[j]) })

	ons := make(map[int][]midi.Message)
	offs := make(map[int][]midi.Message)
	for _, n := range notes {
		if n.Pitch().MIDI() > model.MaxMIDIKey {
			continue
		}
		ch := channels[n.Instrument()]
		key := uint8(n.Pitch().MIDI())
		ons[n.Start()] = append(ons[n.Start()], midi.NoteOn(ch, key, uint8(n.Volume())))
		offs[n.End()] = append(offs[n.End()], midi.NoteOff(ch, key))
	}
	for tick, msgs := range offs {
		s.Events[tick] = append(s.Events[tick], msgs...)
	}
	for tick, msgs := range ons {
		s.Events[tick] = append(s.Events[tick], msgs...)
	}
	return s
}
