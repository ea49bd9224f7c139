package composition

import (
	"sort"

	"github.com/jsphweid/reprise/model"
)

// Cell is the state of one beat of one pitch in the grid.
type Cell int8

const (
	Empty Cell = iota
	Sustain
	Onset
)

// Grid has one row per beat from 0 to Length() and one column per pitch in the
// pitch range.
type Grid [][]Cell

func (c *Composition) refresh() {
	if !c.dirty {
		return
	}
	c.pitchRange = computePitchRange(c.notes)
	c.grid = computeGrid(c.notes, c.pitchRange, c.Length())
	c.dirty = false
}

// PitchRange returns every semitone from the lowest to the highest pitch used,
// lowest first.
func (c *Composition) PitchRange() []model.OctavePitch {
	c.refresh()
	return append([]model.OctavePitch(nil), c.pitchRange...)
}

func (c *Composition) Grid() Grid {
	c.refresh()
	res := make(Grid, len(c.grid))
	for i, row := range c.grid {
		res[i] = append([]Cell(nil), row...)
	}
	return res
}

func computePitchRange(notes []model.Note) []model.OctavePitch {
	if len(notes) == 0 {
		return nil
	}
	used := make([]model.OctavePitch, 0, len(notes))
	for _, n := range notes {
		used = append(used, n.Pitch())
	}
	sort.Slice(used, func(i, j int) bool {
		return used[i].Less(used[j])
	})
	lo, hi := used[0], used[len(used)-1]
	res := []model.OctavePitch{lo}
	for p := lo; p.Less(hi); {
		next, err := p.Increment()
		if err != nil {
			// hi is a valid pitch above p, so this cannot happen
			break
		}
		res = append(res, next)
		p = next
	}
	return res
}

func computeGrid(notes []model.Note, pitchRange []model.OctavePitch, length int) Grid {
	column := make(map[model.OctavePitch]int, len(pitchRange))
	for i, p := range pitchRange {
		column[p] = i
	}
	grid := make(Grid, length+1)
	for b := range grid {
		grid[b] = make([]Cell, len(pitchRange))
	}
	for _, n := range notes {
		col := column[n.Pitch()]
		grid[n.Start()][col] = Onset
		for b := n.Start() + 1; b < n.End(); b++ {
			if grid[b][col] != Onset {
				grid[b][col] = Sustain
			}
		}
	}
	return grid
}
