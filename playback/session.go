package playback

import (
	"github.com/jsphweid/reprise/composition"
	"github.com/jsphweid/reprise/model"
)

type repeatStatus int

const (
	pending repeatStatus = iota
	fired
)

// sessionRepeat is the per-session copy of a repeat. A fired repeat stays
// fired until the session is discarded.
type sessionRepeat struct {
	model.Repeat
	status repeatStatus
}

type phase int

const (
	phaseIdle phase = iota
	phaseBuildUp
	phaseEnding
	phaseDone
)

// Seek records one jump the engine made.
type Seek struct {
	From int
	To   int
}

type session struct {
	repeats map[int]*sessionRepeat

	multi    model.MultiEnding
	hasMulti bool
	endings  []model.Repeat
	phase    phase
	ending   int

	seeks []Seek
}

func newSession(c *composition.Composition) *session {
	s := &session{repeats: make(map[int]*sessionRepeat)}
	for mark, r := range c.Repeats() {
		if r.Valid() {
			s.repeats[mark] = &sessionRepeat{Repeat: r}
		}
	}
	if m, ok := c.MultiEnding(); ok && m.Valid() {
		s.multi = m
		s.hasMulti = true
		s.endings = m.Endings()
	}
	return s
}

func (s *session) traversing() bool {
	return s.phase == phaseBuildUp || s.phase == phaseEnding
}

// next decides where playback goes on landing at tick. It returns the tick to
// seek to, or ok == false to keep going forward.
func (s *session) next(tick int) (to int, ok bool) {
	switch s.phase {
	case phaseBuildUp:
		buildUp, _ := s.multi.BuildUp()
		if tick != buildUp.Mark {
			return 0, false
		}
		s.phase = phaseEnding
		return s.endings[s.ending].GoBack, true
	case phaseEnding:
		if tick != s.endings[s.ending].Mark {
			return 0, false
		}
		s.ending++
		if s.ending >= len(s.endings) {
			s.phase = phaseDone
			return 0, false
		}
		s.phase = phaseBuildUp
		return s.multi.Start(), true
	}

	if s.hasMulti && s.phase == phaseIdle && tick == s.multi.Start() {
		s.phase = phaseBuildUp
		s.ending = 0
		return s.multi.Start(), true
	}

	if r, found := s.repeats[tick]; found && r.status == pending {
		r.status = fired
		return r.GoBack, true
	}
	return 0, false
}
