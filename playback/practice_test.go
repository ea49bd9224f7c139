package playback

import (
	"testing"

	"github.com/jsphweid/reprise/clock"
	"github.com/jsphweid/reprise/composition"
	"github.com/jsphweid/reprise/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pitch(t *testing.T, s string) model.OctavePitch {
	p, err := model.ParseOctavePitch(s)
	require.NoError(t, err)
	return p
}

// C4 on beats 0-1, E4 and G4 on beat 2, nothing on beat 3, C4 on beat 4.
func practicePiece(t *testing.T, b *composition.Builder) *Engine {
	c, err := b.
		AddNote(0, 2, 1, 60, 100).
		AddNote(2, 3, 1, 64, 100).
		AddNote(2, 3, 1, 67, 100).
		AddNote(4, 5, 1, 60, 100).
		Build()
	require.NoError(t, err)

	e := NewEngine(c, clock.NewManual())
	require.NoError(t, e.Start())
	require.NoError(t, e.Pause())
	require.NoError(t, e.EnterPractice())
	return e
}

func TestPracticeGate(t *testing.T) {
	e := practicePiece(t, composition.NewBuilder())
	c4, e4, g4, d4 := pitch(t, "C4"), pitch(t, "E4"), pitch(t, "G4"), pitch(t, "D4")

	assert := assert.New(t)
	assert.Equal(Practice, e.Mode())
	assert.Equal([]model.OctavePitch{c4}, e.Required())

	advanced, err := e.Report(d4)
	assert.NoError(err)
	assert.False(advanced)
	assert.Empty(e.Reported())

	advanced, err = e.Report(c4)
	assert.NoError(err)
	assert.True(advanced)
	assert.Equal(1, e.Tick())

	_, _ = e.Report(c4)
	assert.Equal([]model.OctavePitch{e4, g4}, e.Required())

	advanced, _ = e.Report(g4)
	assert.False(advanced)
	advanced, _ = e.Report(g4)
	assert.False(advanced)
	assert.Equal([]model.OctavePitch{g4}, e.Reported())

	advanced, _ = e.Report(e4)
	assert.True(advanced)
	assert.Equal(3, e.Tick())
	assert.Empty(e.Reported())

	// nothing sounds on beat 3, any report moves on
	assert.Empty(e.Required())
	advanced, _ = e.Report(d4)
	assert.True(advanced)
	assert.Equal(4, e.Tick())

	advanced, _ = e.Report(c4)
	assert.True(advanced)
	_, err = e.Report(c4)
	assert.ErrorIs(err, ErrEndOfPiece)
	assert.Equal(Paused, e.State())
}

func TestPracticeHonoursRepeats(t *testing.T) {
	e := practicePiece(t, composition.NewBuilder().AddRepeat(0, 2))
	c4 := pitch(t, "C4")

	_, _ = e.Report(c4)
	advanced, err := e.Report(c4)
	assert := assert.New(t)
	assert.NoError(err)
	assert.True(advanced)
	assert.Equal(0, e.Tick())
	assert.Equal([]Seek{{From: 2, To: 0}}, e.Seeks())

	_, _ = e.Report(c4)
	_, _ = e.Report(c4)
	assert.Equal(2, e.Tick())
	assert.Len(e.Seeks(), 1)
}

func TestPracticeRequiresPause(t *testing.T) {
	c, err := composition.NewBuilder().AddNote(0, 2, 1, 60, 100).Build()
	require.NoError(t, err)
	e := NewEngine(c, clock.NewManual())

	assert := assert.New(t)
	assert.ErrorIs(e.EnterPractice(), ErrNotPaused)
	_, err = e.Report(pitch(t, "C4"))
	assert.ErrorIs(err, ErrNotPracticing)

	require.NoError(t, e.Start())
	require.NoError(t, e.Pause())
	require.NoError(t, e.EnterPractice())
	require.NoError(t, e.ExitPractice())
	assert.Equal(Normal, e.Mode())

	require.NoError(t, e.EnterPractice())
	e.Stop()
	assert.Equal(Normal, e.Mode())
}

func TestPracticeForgetsPitchesEditedAway(t *testing.T) {
	c, err := composition.NewBuilder().
		AddNote(0, 1, 1, 60, 100).
		AddNote(0, 1, 1, 64, 100).
		AddNote(1, 2, 1, 60, 100).
		Build()
	require.NoError(t, err)
	e := NewEngine(c, clock.NewManual())
	require.NoError(t, e.Start())
	require.NoError(t, e.Pause())
	require.NoError(t, e.EnterPractice())
	c4, e4, g4 := pitch(t, "C4"), pitch(t, "E4"), pitch(t, "G4")

	advanced, err := e.Report(c4)
	require.NoError(t, err)
	require.False(t, advanced)

	// swap C4 for G4 while paused
	old, err := model.NewNote(c4, 0, 1)
	require.NoError(t, err)
	require.NoError(t, c.EditNote(old, model.FieldPitch, "G4"))

	assert := assert.New(t)
	assert.Equal([]model.OctavePitch{e4, g4}, e.Required())

	advanced, err = e.Report(e4)
	assert.NoError(err)
	assert.False(advanced)
	assert.Equal([]model.OctavePitch{e4}, e.Reported())
	assert.Equal(0, e.Tick())

	advanced, err = e.Report(g4)
	assert.NoError(err)
	assert.True(advanced)
	assert.Equal(1, e.Tick())
}
