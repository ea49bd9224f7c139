package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewRepeat(t *testing.T) {
	assert := assert.New(t)

	r, err := NewRepeat(2, 8)
	assert.NoError(err)
	assert.True(r.Valid())
	assert.Equal("2<-8", r.String())

	for _, bad := range [][2]int{{8, 2}, {3, 3}, {-1, 4}} {
		r, err := NewRepeat(bad[0], bad[1])
		assert.ErrorIs(err, ErrInvalidRepeat)
		assert.False(r.Valid())
		assert.Equal(Repeat{}, r)
	}
}

func TestMultiEnding(t *testing.T) {
	m := NewMultiEnding([]Repeat{{4, 8}, {8, 10}, {10, 12}})

	assert := assert.New(t)
	assert.True(m.Valid())
	buildUp, ok := m.BuildUp()
	assert.True(ok)
	assert.Equal(Repeat{4, 8}, buildUp)
	assert.Equal([]Repeat{{8, 10}, {10, 12}}, m.Endings())
	assert.Equal(4, m.Start())
	assert.Equal(12, m.End())
	assert.Equal([]Repeat{{4, 8}, {8, 10}, {10, 12}}, m.Repeats())
}

func TestMultiEndingDropsUnchainedEndings(t *testing.T) {
	m := NewMultiEnding([]Repeat{{0, 4}, {4, 6}, {7, 9}})
	assert.Equal(t, []Repeat{{4, 6}}, m.Endings())
	assert.True(t, m.Valid())
}

func TestMultiEndingNeedsBuildUp(t *testing.T) {
	assert := assert.New(t)

	two := NewMultiEnding([]Repeat{{0, 4}, {4, 6}})
	_, ok := two.BuildUp()
	assert.False(ok)
	assert.False(two.Valid())

	none := NewMultiEnding(nil)
	assert.False(none.Valid())
	assert.Equal(-1, none.End())

	invalidBuildUp := NewMultiEnding([]Repeat{{}, {0, 2}, {2, 4}})
	assert.False(invalidBuildUp.Valid())
}

func TestInstrumentChannels(t *testing.T) {
	var notes []Note
	for inst := 0; inst < 12; inst++ {
		n, _ := NewNote(OctavePitch{Pitch: C, Octave: 4}, 0, 1)
		_ = n.SetInstrument(inst * 2)
		notes = append(notes, n)
	}

	channels := InstrumentChannels(notes)
	assert := assert.New(t)
	assert.Len(channels, 12)
	assert.Equal(uint8(0), channels[0])
	assert.Equal(uint8(8), channels[16])
	// the drums channel is skipped
	assert.Equal(uint8(10), channels[18])
	for _, ch := range channels {
		assert.NotEqual(uint8(DrumsChannel), ch)
	}
}
