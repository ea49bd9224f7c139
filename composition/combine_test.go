package composition

import (
	"testing"

	"github.com/jsphweid/reprise/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCombineRejectsNegativeStart(t *testing.T) {
	c := New()
	require.NoError(t, c.AddNote(note(t, "C4", 0, 2)))
	other := New()
	require.NoError(t, other.AddNote(note(t, "E4", 0, 1)))

	assert := assert.New(t)
	assert.ErrorIs(c.Combine(other, -1), model.ErrNegativeStart)
	assert.Len(c.Notes(), 1)

	assert.NoError(c.Combine(other, 0))
	assert.Len(c.Notes(), 2)
}

func TestCombineShiftsNotesButNotRepeats(t *testing.T) {
	c := New()
	require.NoError(t, c.AddNote(note(t, "C4", 0, 4)))

	other := New()
	loud := note(t, "E4", 1, 2)
	require.NoError(t, loud.SetVolume(120))
	require.NoError(t, loud.SetInstrument(30))
	require.NoError(t, other.AddNote(loud))
	require.NoError(t, other.AddRepeat(model.Repeat{GoBack: 0, Mark: 2}))

	require.NoError(t, c.Combine(other, 4))

	notes := c.Notes()
	assert := assert.New(t)
	require.Len(t, notes, 2)
	assert.Equal("E4@5+2", notes[1].String())
	assert.Equal(120, notes[1].Volume())
	assert.Equal(30, notes[1].Instrument())
	assert.Equal(6, c.Length())
	assert.Equal(map[int]model.Repeat{2: {GoBack: 0, Mark: 2}}, c.Repeats())
}

func TestCombineEmpty(t *testing.T) {
	c := New()
	require.NoError(t, c.AddNote(note(t, "C4", 0, 4)))
	assert.NoError(t, c.Combine(New(), -10))
	assert.Len(t, c.Notes(), 1)
}

func TestCombineRejectsRepeatsPastTheNewEnd(t *testing.T) {
	c := New()
	other := New()
	require.NoError(t, other.AddNote(note(t, "E4", 5, 6)))
	require.NoError(t, other.AddRepeat(model.Repeat{GoBack: 5, Mark: 10}))

	assert := assert.New(t)
	assert.ErrorIs(c.Combine(other, -5), model.ErrRepeatBeyondEnd)
	assert.Empty(c.Notes())
	assert.Empty(c.Repeats())
	assert.Equal(0, c.Length())

	assert.NoError(c.Combine(other, 0))
	assert.Len(c.Notes(), 1)
	assert.Equal([]int{10}, c.RepeatMarks())
}

func TestCombineRejectsNotesPastMaxBeat(t *testing.T) {
	c := New()
	other := New()
	require.NoError(t, other.AddNote(note(t, "E4", 0, 1)))
	require.NoError(t, other.AddNote(note(t, "G4", 10, 1)))

	assert.ErrorIs(t, c.Combine(other, model.MaxBeat-5), model.ErrValidation)
	assert.Empty(t, c.Notes())
}
