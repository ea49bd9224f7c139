// Package sample cuts short previews out of a piece.
package sample

import (
	"github.com/jsphweid/reprise/composition"
	"github.com/jsphweid/reprise/midi"
	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

// MaxNoteEvents bounds the note-on/note-off events in one preview track.
const MaxNoteEvents = 32

// Create returns the part of mf starting at fromBeat. Events before that beat
// that are not notes (tempo, meter, program changes) are kept at the start so
// the excerpt sounds the same. Each track holds at most maxNoteEvents note
// events; notes still sounding when a track is cut are released.
func Create(mf *smf.SMF, fromBeat int, maxNoteEvents int) *smf.SMF {
	var res smf.SMF
	res.TimeFormat = mf.TimeFormat

	offset := uint64(fromBeat) * uint64(ticksPerBeat(mf))
	for _, track := range mf.Tracks {
		res.Tracks = append(res.Tracks, cut(track, offset, maxNoteEvents))
	}
	return &res
}

func cut(track smf.Track, offset uint64, maxNoteEvents int) smf.Track {
	var newTrack smf.Track
	var absTicks, lastKept uint64
	var numNoteOnOff int
	sounding := make(map[[2]uint8]bool)

TrackEventLoop:
	for _, evt := range track {
		absTicks += uint64(evt.Delta)
		var ch, key, vel uint8
		switch {
		case evt.Message.GetNoteOn(&ch, &key, &vel), evt.Message.GetNoteOff(&ch, &key, &vel):
			if absTicks < offset {
				continue
			}
			if numNoteOnOff >= maxNoteEvents {
				break TrackEventLoop
			}
			newTrack.Add(delta(absTicks, offset, &lastKept), evt.Message)
			numNoteOnOff++
			k := [2]uint8{ch, key}
			if evt.Message.Is(gomidi.NoteOnMsg) && vel > 0 {
				sounding[k] = true
			} else {
				delete(sounding, k)
			}
		case evt.Message.Is(smf.MetaEndOfTrackMsg):
			break TrackEventLoop
		default:
			newTrack.Add(delta(absTicks, offset, &lastKept), evt.Message)
		}
	}

	for k := range sounding {
		newTrack.Add(0, gomidi.NoteOff(k[0], k[1]))
	}
	newTrack.Close(0)
	return newTrack
}

// delta places an event relative to the previous kept one, squeezing
// everything before offset onto the first tick.
func delta(abs, offset uint64, lastKept *uint64) uint32 {
	if abs < offset {
		return 0
	}
	pos := abs - offset
	d := pos - *lastKept
	*lastKept = pos
	return uint32(d)
}

func ticksPerBeat(mf *smf.SMF) uint16 {
	if ticks, ok := mf.TimeFormat.(smf.MetricTicks); ok {
		return uint16(ticks.Ticks4th())
	}
	return midi.TicksPerBeat
}

// FromComposition exports c and cuts a preview from fromBeat.
func FromComposition(c *composition.Composition, fromBeat int) (*smf.SMF, error) {
	s, err := midi.ToSMF(c)
	if err != nil {
		return nil, err
	}
	return Create(s, fromBeat, MaxNoteEvents), nil
}
