package model

// Signature is the meter of a piece.
type Signature struct {
	BeatsPerMeasure int
	BeatUnit        int
}

var DefaultSignature = Signature{BeatsPerMeasure: 4, BeatUnit: 4}
