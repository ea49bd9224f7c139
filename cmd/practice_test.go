package cmd

import (
	"bytes"
	"testing"

	"github.com/jsphweid/reprise/composition"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/gomidi/midi/v2"
)

func TestPracticeSession(t *testing.T) {
	c, err := composition.NewBuilder().
		AddNote(0, 1, 1, 60, 100).
		AddNote(1, 2, 1, 64, 100).
		AddNote(1, 2, 1, 67, 100).
		Build()
	require.NoError(t, err)

	engine, err := startPractice(c)
	require.NoError(t, err)

	var out bytes.Buffer
	finished := 0
	p := newPracticeSession(engine, c, &out, func() { finished++ })
	p.prompt()

	p.handle(midi.NoteOn(0, 60, 90), 0)
	// releases and wrong notes are ignored
	p.handle(midi.NoteOff(0, 60), 0)
	p.handle(midi.NoteOn(0, 61, 90), 0)
	p.handle(midi.NoteOn(0, 64, 90), 0)
	assert.Equal(t, 0, finished)
	p.handle(midi.NoteOn(0, 67, 90), 0)
	p.handle(midi.NoteOn(0, 60, 90), 0)

	assert.Equal(t, 1, finished)
	assert.Equal(t, "beat 0: C4\nbeat 1: E4 G4\ndone!\n", out.String())
}
