package model

type ScoreSummary struct {
	Id       string        `json:"id"`
	Path     string        `json:"path"`
	Metadata *MidiMetadata `json:"metadata,omitempty"`
}

type MidiMetadata struct {
	Artist  string `json:"artist"`
	Release string `json:"release"`
	Title   string `json:"title"`
	Year    uint   `json:"year"`
}

type NoteBody struct {
	Pitch      string `json:"pitch"`
	Start      int    `json:"start"`
	Duration   int    `json:"duration"`
	Instrument int    `json:"instrument"`
	Volume     int    `json:"volume"`
}

type EditNoteBody struct {
	Note  NoteBody `json:"note"`
	Field string   `json:"field"`
	Value string   `json:"value"`
}

type RepeatBody struct {
	GoBack int `json:"goback"`
	Mark   int `json:"mark"`
}

type ScoreResponse struct {
	Id          string       `json:"id"`
	Tempo       int          `json:"tempo"`
	Length      int          `json:"length"`
	PitchRange  []string     `json:"pitch_range"`
	Notes       []NoteBody   `json:"notes"`
	Repeats     []RepeatBody `json:"repeats"`
	MultiEnding []RepeatBody `json:"multi_ending,omitempty"`
	Grid        string       `json:"grid"`
}

type ErrorResponse struct {
	Error string `json:"detail"`
}

func NoteToBody(n Note) NoteBody {
	return NoteBody{
		Pitch:      n.Pitch().String(),
		Start:      n.Start(),
		Duration:   n.Duration(),
		Instrument: n.Instrument(),
		Volume:     n.Volume(),
	}
}

// NoteFromBody validates every field of the body.
func NoteFromBody(b NoteBody) (Note, error) {
	p, err := ParseOctavePitch(b.Pitch)
	if err != nil {
		return Note{}, err
	}
	n, err := NewNote(p, b.Start, b.Duration)
	if err != nil {
		return Note{}, err
	}
	if err := n.SetInstrument(b.Instrument); err != nil {
		return Note{}, err
	}
	if err := n.SetVolume(b.Volume); err != nil {
		return Note{}, err
	}
	return n, nil
}
