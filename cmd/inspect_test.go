package cmd

import (
	"bytes"
	"testing"

	"github.com/jsphweid/reprise/composition"
	"github.com/jsphweid/reprise/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInspect(t *testing.T) {
	c, err := composition.NewBuilder().
		AddNote(0, 2, 1, 60, 100).
		AddNote(1, 3, 1, 64, 80).
		AddRepeat(0, 2).
		AddMultiEnding([]model.Repeat{{GoBack: 0, Mark: 1}, {GoBack: 1, Mark: 2}, {GoBack: 2, Mark: 3}}).
		Build()
	require.NoError(t, err)

	var out bytes.Buffer
	inspect(&out, c, true)

	assert.Equal(t, `tempo: 500000 (120.0 bpm)
signature: 4/4
length: 2
notes: 2
  C4@0+2 instrument 1 volume 100
  E4@1+2 instrument 1 volume 80
repeats: 1
  0<-2
multi-ending: build-up 0<-1, endings [1<-2 2<-3]
  beat 0: 60 *
  beat 1: 60-64 *
  beat 2: 64
`, out.String())
}

func TestPrintSeeks(t *testing.T) {
	var out bytes.Buffer
	printSeeks(&out, nil)
	assert.Empty(t, out.String())
}
