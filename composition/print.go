package composition

import (
	"strconv"
	"strings"
)

const columnWidth = 5

var cellText = map[Cell]string{
	Empty:   "     ",
	Sustain: "  |  ",
	Onset:   "  X  ",
}

// Print renders the beat grid as text: a header of pitch labels, lowest pitch
// first, then one line per beat. The output has no trailing newline.
func (c *Composition) Print() string {
	c.refresh()
	gutter := len(strconv.Itoa(c.Length()))

	var sb strings.Builder
	sb.WriteString(strings.Repeat(" ", gutter))
	for _, p := range c.pitchRange {
		sb.WriteString(centerLabel(p.String()))
	}
	for b, row := range c.grid {
		sb.WriteByte('\n')
		num := strconv.Itoa(b)
		sb.WriteString(num)
		sb.WriteString(strings.Repeat(" ", gutter-len(num)))
		for _, cell := range row {
			sb.WriteString(cellText[cell])
		}
	}
	return sb.String()
}

func (c *Composition) String() string {
	return c.Print()
}

func centerLabel(label string) string {
	lead := (columnWidth - len(label) + 1) / 2
	if lead < 0 {
		lead = 0
	}
	s := strings.Repeat(" ", lead) + label
	if len(s) < columnWidth {
		s += strings.Repeat(" ", columnWidth-len(s))
	}
	return s
}
