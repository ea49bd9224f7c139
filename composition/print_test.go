package composition

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrintSingleNote(t *testing.T) {
	c, err := NewBuilder().SetTempo(500000).AddNote(0, 4, 1, 60, 100).Build()
	require.NoError(t, err)

	assert.Equal(t, "   C4 \n"+
		"0  X  \n"+
		"1  |  \n"+
		"2  |  \n"+
		"3  |  ", c.Print())
	assert.Equal(t, c.Print(), c.String())
}

func TestPrintIsReproducible(t *testing.T) {
	build := func() *Composition {
		c, err := NewBuilder().
			AddNote(0, 2, 1, 60, 100).
			AddNote(9, 11, 1, 62, 100).
			AddNote(1, 3, 1, 73, 100).
			Build()
		require.NoError(t, err)
		return c
	}
	a, b := build().Print(), build().Print()
	assert.Equal(t, a, b)

	lines := strings.Split(a, "\n")
	// header plus beats 0 through 10, two wide gutter
	assert.Len(t, lines, 12)
	assert.Equal(t, "  ", lines[0][:2])
	assert.Equal(t, "  C4 ", lines[0][2:7])
	assert.Equal(t, " C#5 ", lines[0][len(lines[0])-5:])
	assert.Equal(t, "0   X  ", lines[1][:7])
	assert.Equal(t, "10", lines[11][:2])
}

func TestPrintEmpty(t *testing.T) {
	assert.Equal(t, " \n0", New().Print())
}

