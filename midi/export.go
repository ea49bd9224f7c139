package midi

import (
	"fmt"
	"sort"

	"github.com/jsphweid/reprise/composition"
	"github.com/jsphweid/reprise/model"
	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

type timedMessage struct {
	beat  int
	order int
	msg   gomidi.Message
}

// ToSMF writes c as a format 1 file: a meta track carrying meter, tempo and
// the repeat markers, then one track with every note.
func ToSMF(c *composition.Composition) (*smf.SMF, error) {
	s := smf.New()
	s.TimeFormat = smf.MetricTicks(TicksPerBeat)

	var meta smf.Track
	sig := c.Signature()
	meta.Add(0, smf.MetaMeter(uint8(sig.BeatsPerMeasure), uint8(sig.BeatUnit)))
	meta.Add(0, smf.MetaTempo(c.BPM()))
	repeats := c.Repeats()
	for _, mark := range c.RepeatMarks() {
		meta.Add(0, smf.MetaMarker(repeatText(repeats[mark])))
	}
	if m, ok := c.MultiEnding(); ok {
		meta.Add(0, smf.MetaMarker(endingText(m)))
	}
	meta.Close(0)
	if err := s.Add(meta); err != nil {
		return nil, fmt.Errorf("error adding meta track: %w", err)
	}

	if err := s.Add(noteTrack(c.Notes())); err != nil {
		return nil, fmt.Errorf("error adding note track: %w", err)
	}
	return s, nil
}

func noteTrack(notes []model.Note) smf.Track {
	channels := model.InstrumentChannels(notes)

	var events []timedMessage
	for inst, ch := range channels {
		events = append(events, timedMessage{order: int(ch), msg: gomidi.ProgramChange(ch, uint8(inst))})
	}
	for _, n := range notes {
		// too high for MIDI
		if n.Pitch().MIDI() > model.MaxMIDIKey {
			continue
		}
		ch := channels[n.Instrument()]
		key := uint8(n.Pitch().MIDI())
		events = append(events,
			timedMessage{beat: n.Start(), order: 2 * model.NumChannels, msg: gomidi.NoteOn(ch, key, uint8(n.Volume()))},
			timedMessage{beat: n.End(), order: model.NumChannels, msg: gomidi.NoteOff(ch, key)},
		)
	}
	// program changes, then releases, then onsets
	sort.SliceStable(events, func(i, j int) bool {
		if events[i].beat != events[j].beat {
			return events[i].beat < events[j].beat
		}
		return events[i].order < events[j].order
	})

	var track smf.Track
	last := 0
	for _, ev := range events {
		track.Add(uint32((ev.beat-last)*TicksPerBeat), ev.msg)
		last = ev.beat
	}
	track.Close(0)
	return track
}
