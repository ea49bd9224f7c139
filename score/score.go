// Package score reads and writes the YAML score format.
package score

import (
	"errors"
	"fmt"
	"os"

	"github.com/jsphweid/reprise/composition"
	"github.com/jsphweid/reprise/model"
	"gopkg.in/yaml.v3"
)

type Signature struct {
	Beats int `yaml:"beats"`
	Unit  int `yaml:"unit"`
}

// Note spans beats [Start, End). Pitch is written like "C4" or "F#3".
type Note struct {
	Start      int    `yaml:"start"`
	End        int    `yaml:"end"`
	Pitch      string `yaml:"pitch"`
	Instrument *int   `yaml:"instrument,omitempty"`
	Volume     *int   `yaml:"volume,omitempty"`
}

type Repeat struct {
	GoBack int `yaml:"goback"`
	Mark   int `yaml:"mark"`
}

type File struct {
	Tempo       int        `yaml:"tempo,omitempty"`
	Signature   *Signature `yaml:"signature,omitempty"`
	Notes       []Note     `yaml:"notes"`
	Repeats     []Repeat   `yaml:"repeats,omitempty"`
	MultiEnding []Repeat   `yaml:"multiending,omitempty"`
}

// Parse builds a composition from YAML. As with other score readers, the
// partially built composition comes back together with any errors.
func Parse(data []byte) (*composition.Composition, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("error parsing score: %w", err)
	}
	return f.Build()
}

func (f File) Build() (*composition.Composition, error) {
	b := composition.NewBuilder()
	if f.Tempo != 0 {
		b.SetTempo(f.Tempo)
	}
	if f.Signature != nil {
		b.SetSignature(f.Signature.Beats, f.Signature.Unit)
	}

	var errs []error
	for _, n := range f.Notes {
		p, err := model.ParseOctavePitch(n.Pitch)
		if err != nil {
			errs = append(errs, fmt.Errorf("note at %d: %w", n.Start, err))
			continue
		}
		instrument, volume := model.DefaultInstrument, model.DefaultVolume
		if n.Instrument != nil {
			instrument = *n.Instrument
		}
		if n.Volume != nil {
			volume = *n.Volume
		}
		b.AddPitchedNote(n.Start, n.End, instrument, p, volume)
	}
	for _, r := range f.Repeats {
		b.AddRepeat(r.GoBack, r.Mark)
	}
	if len(f.MultiEnding) > 0 {
		reps := make([]model.Repeat, 0, len(f.MultiEnding))
		for _, r := range f.MultiEnding {
			reps = append(reps, model.Repeat{GoBack: r.GoBack, Mark: r.Mark})
		}
		b.AddMultiEnding(reps)
	}

	c, err := b.Build()
	if err != nil {
		errs = append(errs, err)
	}
	if len(errs) > 0 {
		return c, fmt.Errorf("score has invalid entries: %w", errors.Join(errs...))
	}
	return c, nil
}

// FromComposition is the inverse of Build.
func FromComposition(c *composition.Composition) File {
	sig := c.Signature()
	f := File{
		Tempo:     c.Tempo(),
		Signature: &Signature{Beats: sig.BeatsPerMeasure, Unit: sig.BeatUnit},
		Notes:     make([]Note, 0, len(c.Notes())),
	}
	for _, n := range c.Notes() {
		instrument, volume := n.Instrument(), n.Volume()
		f.Notes = append(f.Notes, Note{
			Start:      n.Start(),
			End:        n.End(),
			Pitch:      n.Pitch().String(),
			Instrument: &instrument,
			Volume:     &volume,
		})
	}
	repeats := c.Repeats()
	for _, mark := range c.RepeatMarks() {
		f.Repeats = append(f.Repeats, Repeat{GoBack: repeats[mark].GoBack, Mark: mark})
	}
	if m, ok := c.MultiEnding(); ok {
		for _, r := range m.Repeats() {
			f.MultiEnding = append(f.MultiEnding, Repeat{GoBack: r.GoBack, Mark: r.Mark})
		}
	}
	return f
}

func Marshal(c *composition.Composition) ([]byte, error) {
	return yaml.Marshal(FromComposition(c))
}

func ReadFile(path string) (*composition.Composition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading score: %w", err)
	}
	return Parse(data)
}

func WriteFile(c *composition.Composition, path string) error {
	data, err := Marshal(c)
	if err != nil {
		return fmt.Errorf("error encoding score: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("error writing score: %w", err)
	}
	return nil
}
