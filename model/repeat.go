package model

import "fmt"

// Repeat tells playback to jump back to GoBack on reaching Mark. The zero value
// is an invalid repeat that never fires.
type Repeat struct {
	GoBack int
	Mark   int
}

// NewRepeat validates Mark > GoBack >= 0. On failure it returns the invalid
// zero Repeat together with the error.
func NewRepeat(goBack, mark int) (Repeat, error) {
	r := Repeat{GoBack: goBack, Mark: mark}
	if !r.Valid() {
		return Repeat{}, fmt.Errorf("%w: goBack %d, mark %d", ErrInvalidRepeat, goBack, mark)
	}
	return r, nil
}

func (r Repeat) Valid() bool {
	return r.Mark > r.GoBack && r.GoBack >= 0
}

func (r Repeat) String() string {
	return fmt.Sprintf("%d<-%d", r.GoBack, r.Mark)
}

// MultiEnding is a group of first-time/second-time brackets: a shared build-up
// followed by a chain of endings.
type MultiEnding struct {
	buildUp    Repeat
	hasBuildUp bool
	endings    []Repeat
}

// NewMultiEnding takes the build-up (only when more than two repeats are given)
// and chains every following repeat whose GoBack meets the previous Mark.
func NewMultiEnding(repeats []Repeat) MultiEnding {
	var m MultiEnding
	if len(repeats) > 2 {
		m.buildUp = repeats[0]
		m.hasBuildUp = true
	}
	for i := 1; i < len(repeats); i++ {
		if repeats[i].GoBack == repeats[i-1].Mark {
			m.endings = append(m.endings, repeats[i])
		}
	}
	return m
}

func (m MultiEnding) BuildUp() (Repeat, bool) {
	return m.buildUp, m.hasBuildUp
}

func (m MultiEnding) Endings() []Repeat {
	return append([]Repeat(nil), m.endings...)
}

func (m MultiEnding) Valid() bool {
	if !m.hasBuildUp || !m.buildUp.Valid() || len(m.endings) == 0 {
		return false
	}
	for _, e := range m.endings {
		if !e.Valid() {
			return false
		}
	}
	return true
}

// Start is the beat the build-up begins on.
func (m MultiEnding) Start() int {
	return m.buildUp.GoBack
}

// End is the mark of the last ending, or -1 when there are no endings.
func (m MultiEnding) End() int {
	if len(m.endings) == 0 {
		return -1
	}
	return m.endings[len(m.endings)-1].Mark
}

// Repeats returns the build-up followed by the endings.
func (m MultiEnding) Repeats() []Repeat {
	var res []Repeat
	if m.hasBuildUp {
		res = append(res, m.buildUp)
	}
	return append(res, m.endings...)
}
