package midi

import (
	"errors"
	"fmt"
	"math"

	"github.com/jsphweid/reprise/composition"
	"github.com/jsphweid/reprise/model"
	"github.com/jsphweid/reprise/util"
	"gitlab.com/gomidi/midi/v2/smf"
)

const defaultInstrument = model.DefaultInstrument

type openNote struct {
	start    int
	velocity uint8
}

// FromSMF builds a composition from every track of s. Positions are rounded to
// the nearest quarter note; notes shorter than a beat last one beat.
func FromSMF(s *smf.SMF) (*composition.Composition, error) {
	ticks, ok := s.TimeFormat.(smf.MetricTicks)
	if !ok {
		return nil, errNoMetricTicks
	}
	resolution := int64(ticks.Ticks4th())

	b := composition.NewBuilder()
	var errs []error
	for i, track := range s.Tracks {
		if err := readTrack(b, track, resolution); err != nil {
			errs = append(errs, fmt.Errorf("track %d: %w", i, err))
		}
	}

	c, err := b.Build()
	return c, errors.Join(append(errs, err)...)
}

func readTrack(b *composition.Builder, track smf.Track, resolution int64) error {
	var errs []error
	var abs int64
	programs := make(map[uint8]int)
	sounding := make(map[[2]uint8][]openNote)

	finish := func(ch, key uint8, end int) {
		k := [2]uint8{ch, key}
		queue := sounding[k]
		if len(queue) == 0 {
			return
		}
		n := queue[0]
		sounding[k] = queue[1:]
		end = util.Max(end, n.start+1)
		instrument, ok := programs[ch]
		if !ok {
			instrument = defaultInstrument
		}
		b.AddNote(n.start, end, instrument, int(key), int(n.velocity))
	}

	for _, ev := range track {
		abs += int64(ev.Delta)
		beat := toBeat(abs, resolution)

		var ch, key, vel, program, num, denom uint8
		var bpm float64
		var text string
		switch {
		case ev.Message.GetMetaTempo(&bpm):
			if bpm > 0 {
				b.SetTempo(int(math.Round(60000000 / bpm)))
			}
		case ev.Message.GetMetaMeter(&num, &denom):
			b.SetSignature(int(num), int(denom))
		case ev.Message.GetMetaMarker(&text):
			kind, repeats, ok, err := parseMarker(text)
			switch {
			case err != nil:
				errs = append(errs, err)
			case !ok:
			case kind == repeatMarker:
				b.AddRepeat(repeats[0].GoBack, repeats[0].Mark)
			default:
				b.AddMultiEnding(repeats)
			}
		case ev.Message.GetProgramChange(&ch, &program):
			programs[ch] = int(program)
		case ev.Message.GetNoteOn(&ch, &key, &vel) && vel > 0:
			k := [2]uint8{ch, key}
			sounding[k] = append(sounding[k], openNote{start: beat, velocity: vel})
		case ev.Message.GetNoteOff(&ch, &key, &vel), ev.Message.GetNoteOn(&ch, &key, &vel):
			finish(ch, key, beat)
		}
	}

	// notes never released end with the track
	end := toBeat(abs, resolution)
	for k, queue := range sounding {
		for range queue {
			finish(k[0], k[1], end)
		}
	}
	return errors.Join(errs...)
}

func toBeat(ticks, resolution int64) int {
	return int((ticks + resolution/2) / resolution)
}
