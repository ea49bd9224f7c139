package composition

import (
	"testing"

	"github.com/jsphweid/reprise/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func op(t *testing.T, s string) model.OctavePitch {
	p, err := model.ParseOctavePitch(s)
	require.NoError(t, err)
	return p
}

func note(t *testing.T, pitch string, start, duration int) model.Note {
	n, err := model.NewNote(op(t, pitch), start, duration)
	require.NoError(t, err)
	return n
}

func TestEmpty(t *testing.T) {
	c := New()

	assert := assert.New(t)
	assert.Equal(0, c.Length())
	assert.Empty(c.PitchRange())
	assert.Len(c.Grid(), 1)
	assert.Equal(DefaultTempo, c.Tempo())
	assert.Equal(120.0, c.BPM())
	assert.Equal(model.DefaultSignature, c.Signature())
	_, ok := c.MultiEnding()
	assert.False(ok)
}

func TestLength(t *testing.T) {
	c := New()
	require.NoError(t, c.AddNote(note(t, "C4", 0, 4)))
	assert.Equal(t, 3, c.Length())
	require.NoError(t, c.AddNote(note(t, "E4", 6, 1)))
	assert.Equal(t, 6, c.Length())
	require.NoError(t, c.RemoveNote(note(t, "E4", 6, 1)))
	assert.Equal(t, 3, c.Length())
}

func TestNotesStaySorted(t *testing.T) {
	c := New()
	require.NoError(t, c.AddNote(note(t, "E4", 4, 1)))
	require.NoError(t, c.AddNote(note(t, "C4", 0, 1)))
	require.NoError(t, c.AddNote(note(t, "G4", 4, 2)))

	var got []string
	for _, n := range c.Notes() {
		got = append(got, n.String())
	}
	// equal starts keep insertion order
	assert.Equal(t, []string{"C4@0+1", "E4@4+1", "G4@4+2"}, got)
}

func TestRemoveMissingNote(t *testing.T) {
	c := New()
	require.NoError(t, c.AddNote(note(t, "C4", 0, 4)))
	assert.ErrorIs(t, c.RemoveNote(note(t, "C4", 0, 3)), model.ErrNoteNotFound)
	assert.Len(t, c.Notes(), 1)
}

func TestRemoveOnlyFirstDuplicate(t *testing.T) {
	c := New()
	require.NoError(t, c.AddNote(note(t, "C4", 0, 4)))
	require.NoError(t, c.AddNote(note(t, "C4", 0, 4)))
	require.NoError(t, c.RemoveNote(note(t, "C4", 0, 4)))
	assert.Len(t, c.Notes(), 1)
}

func TestPitchRangeHasNoGaps(t *testing.T) {
	c := New()
	require.NoError(t, c.AddNote(note(t, "A3", 0, 1)))
	require.NoError(t, c.AddNote(note(t, "D4", 1, 1)))

	var names []string
	for _, p := range c.PitchRange() {
		names = append(names, p.String())
	}
	assert.Equal(t, []string{"A3", "A#3", "B3", "C4", "C#4", "D4"}, names)

	// derived state follows every mutation
	require.NoError(t, c.RemoveNote(note(t, "A3", 0, 1)))
	assert.Equal(t, []model.OctavePitch{op(t, "D4")}, c.PitchRange())
}

func TestGrid(t *testing.T) {
	c := New()
	require.NoError(t, c.AddNote(note(t, "C4", 0, 3)))
	require.NoError(t, c.AddNote(note(t, "D4", 1, 1)))
	// an onset wins over a sustain of the same pitch
	require.NoError(t, c.AddNote(note(t, "C4", 2, 2)))

	assert.Equal(t, Grid{
		{Onset, Empty, Empty},
		{Sustain, Empty, Onset},
		{Onset, Empty, Empty},
		{Sustain, Empty, Empty},
	}, c.Grid())
}

func TestRepeats(t *testing.T) {
	c := New()
	require.NoError(t, c.AddNote(note(t, "C4", 0, 9)))

	assert := assert.New(t)
	assert.NoError(c.AddRepeat(model.Repeat{GoBack: 2, Mark: 8}))
	assert.ErrorIs(c.AddRepeat(model.Repeat{GoBack: 2, Mark: 9}), model.ErrRepeatBeyondEnd)
	assert.ErrorIs(c.AddRepeat(model.Repeat{}), model.ErrInvalidRepeat)

	// same mark overwrites
	assert.NoError(c.AddRepeat(model.Repeat{GoBack: 4, Mark: 8}))
	assert.NoError(c.AddRepeat(model.Repeat{GoBack: 0, Mark: 3}))
	assert.Equal(map[int]model.Repeat{3: {GoBack: 0, Mark: 3}, 8: {GoBack: 4, Mark: 8}}, c.Repeats())
	assert.Equal([]int{3, 8}, c.RepeatMarks())

	err := c.SetRepeats(map[int]model.Repeat{5: {GoBack: 1, Mark: 5}, 20: {GoBack: 1, Mark: 20}})
	assert.ErrorIs(err, model.ErrRepeatBeyondEnd)
	assert.Equal([]int{5}, c.RepeatMarks())
}

func TestMultiEndingMustFinishAtTheEnd(t *testing.T) {
	c := New()
	require.NoError(t, c.AddNote(note(t, "C4", 0, 12)))
	require.Equal(t, 11, c.Length())

	assert := assert.New(t)
	short := model.NewMultiEnding([]model.Repeat{{GoBack: 4, Mark: 8}, {GoBack: 8, Mark: 10}})
	assert.ErrorIs(c.SetMultiEnding(short), model.ErrInvalidMultiEnding)

	early := model.NewMultiEnding([]model.Repeat{{GoBack: 4, Mark: 8}, {GoBack: 8, Mark: 10}, {GoBack: 10, Mark: 11}})
	assert.ErrorIs(c.SetMultiEnding(early), model.ErrEndingMismatch)
	_, ok := c.MultiEnding()
	assert.False(ok)

	good := model.NewMultiEnding([]model.Repeat{{GoBack: 4, Mark: 8}, {GoBack: 8, Mark: 10}, {GoBack: 10, Mark: 12}})
	assert.NoError(c.SetMultiEnding(good))
	m, ok := c.MultiEnding()
	assert.True(ok)
	assert.Equal(good, m)

	c.ClearMultiEnding()
	_, ok = c.MultiEnding()
	assert.False(ok)
}

func TestTempoAndSignature(t *testing.T) {
	c := New()

	assert := assert.New(t)
	assert.ErrorIs(c.SetTempo(0), model.ErrValidation)
	assert.NoError(c.SetTempo(1000000))
	assert.Equal(60.0, c.BPM())

	assert.ErrorIs(c.SetSignature(model.Signature{BeatsPerMeasure: 3}), model.ErrValidation)
	assert.NoError(c.SetSignature(model.Signature{BeatsPerMeasure: 6, BeatUnit: 8}))
	assert.Equal(model.Signature{BeatsPerMeasure: 6, BeatUnit: 8}, c.Signature())
}

func TestNotesAt(t *testing.T) {
	c := FromNotes([]model.Note{note(t, "C4", 0, 2), note(t, "E4", 1, 2)}, model.Signature{})

	assert := assert.New(t)
	assert.Len(c.NotesAt(0), 1)
	assert.Len(c.NotesAt(1), 2)
	assert.Len(c.NotesAt(2), 1)
	assert.Empty(c.NotesAt(3))
	assert.Equal(model.DefaultSignature, c.Signature())
}

func TestEqual(t *testing.T) {
	a := FromNotes([]model.Note{note(t, "C4", 0, 2), note(t, "E4", 1, 2)}, model.Signature{})
	b := FromNotes([]model.Note{note(t, "E4", 1, 2), note(t, "C4", 0, 2)}, model.Signature{})

	assert := assert.New(t)
	assert.True(a.Equal(b))
	require.NoError(t, b.SetTempo(400000))
	assert.False(a.Equal(b))

	c := FromNotes([]model.Note{note(t, "C4", 0, 2), note(t, "C4", 0, 2)}, model.Signature{})
	d := FromNotes([]model.Note{note(t, "C4", 0, 2), note(t, "E4", 1, 2)}, model.Signature{})
	assert.False(c.Equal(d))
}
