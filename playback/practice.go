package playback

import (
	"fmt"
	"sort"

	"github.com/jsphweid/reprise/chord"
	"github.com/jsphweid/reprise/model"
)

// EnterPractice switches to practice mode. Only allowed while paused.
func (e *Engine) EnterPractice() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.state != Paused {
		return ErrNotPaused
	}
	e.mode = Practice
	e.reported = make(map[model.OctavePitch]bool)
	return nil
}

// ExitPractice returns to normal mode. Only allowed while paused.
func (e *Engine) ExitPractice() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.state != Paused {
		return ErrNotPaused
	}
	e.mode = Normal
	e.reported = nil
	return nil
}

// Required returns the pitches that must be reported to pass the current beat,
// lowest first.
func (e *Engine) Required() []model.OctavePitch {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.required()
}

func (e *Engine) required() []model.OctavePitch {
	return chord.PitchesAt(e.comp, e.pausedAt)
}

// Reported returns the pitches reported so far for the current beat.
func (e *Engine) Reported() []model.OctavePitch {
	e.mu.Lock()
	defer e.mu.Unlock()
	res := make([]model.OctavePitch, 0, len(e.reported))
	for p := range e.reported {
		res = append(res, p)
	}
	sort.Slice(res, func(i, j int) bool { return res[i].Less(res[j]) })
	return res
}

// Report tells the engine a pitch was played. Pitches not sounding at the
// current beat, and pitches already reported, are ignored. Once every required
// pitch has been reported the engine moves on one beat, honouring repeats and
// endings, and reports advanced == true.
func (e *Engine) Report(p model.OctavePitch) (advanced bool, err error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.mode != Practice {
		return false, ErrNotPracticing
	}
	if e.pausedAt > e.comp.Length() {
		return false, ErrEndOfPiece
	}

	required := e.required()
	wanted := make(map[model.OctavePitch]bool, len(required))
	for _, r := range required {
		wanted[r] = true
	}
	// the beat may have been edited since earlier reports
	for r := range e.reported {
		if !wanted[r] {
			delete(e.reported, r)
		}
	}
	if wanted[p] {
		e.reported[p] = true
	}
	for r := range wanted {
		if !e.reported[r] {
			return false, nil
		}
	}

	e.advance()
	e.reported = make(map[model.OctavePitch]bool)
	return true, nil
}

// advance moves one beat forward while paused, applying the same jumps as
// playback would on landing.
func (e *Engine) advance() {
	tick := e.pausedAt + 1
	e.seq.SetTick(tick)
	for {
		if !e.land(tick) {
			break
		}
		landed := e.seq.CurrentTick()
		if landed == tick {
			break
		}
		tick = landed
	}
	e.pausedAt = e.seq.CurrentTick()
	e.log.Debug("practice advanced", "tick", e.pausedAt)
}

func (e *Engine) String() string {
	return fmt.Sprintf("engine(%v, tick %d)", e.State(), e.Tick())
}
