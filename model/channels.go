package model

import "sort"

const (
	NumChannels  = 16
	DrumsChannel = 9
)

// InstrumentChannels assigns a MIDI channel to every instrument used by notes,
// lowest instrument first, skipping the drums channel. With more than fifteen
// instruments channels are shared.
func InstrumentChannels(notes []Note) map[int]uint8 {
	seen := make(map[int]bool)
	var instruments []int
	for _, n := range notes {
		if !seen[n.Instrument()] {
			seen[n.Instrument()] = true
			instruments = append(instruments, n.Instrument())
		}
	}
	sort.Ints(instruments)

	res := make(map[int]uint8, len(instruments))
	ch := uint8(0)
	for _, inst := range instruments {
		if ch == DrumsChannel {
			ch++
		}
		res[inst] = ch
		ch = (ch + 1) % NumChannels
	}
	return res
}
