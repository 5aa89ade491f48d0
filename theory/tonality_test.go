package theory

import (
	"testing"

	"harmonium/harmony"

	"github.com/stretchr/testify/assert"
)

func TestNoteToMidi(t *testing.T) {
	assert.Equal(t, 0, NoteToMidi("C"))
	assert.Equal(t, 1, NoteToMidi("C#"))
	assert.Equal(t, 1, NoteToMidi("Db"))
	assert.Equal(t, 0, NoteToMidi(""), "empty input defaults to C")
	assert.Equal(t, 0, NoteToMidi("Q"), "unrecognized input defaults to C")
}

func TestParseKey(t *testing.T) {
	root, mode := ParseKey("C major")
	assert.Equal(t, 0, root)
	assert.Equal(t, harmony.MajorMode, mode)

	root, mode = ParseKey("Am")
	assert.Equal(t, 9, root)
	assert.Equal(t, harmony.MinorMode, mode)

	root, mode = ParseKey("F# minor")
	assert.Equal(t, 6, root)
	assert.Equal(t, harmony.MinorMode, mode)
}

func TestDegreeNoteCMajor(t *testing.T) {
	ton := New(0, harmony.MajorMode, "C major")
	assert.Equal(t, 0, ton.DegreeNote(harmony.I))
	assert.Equal(t, 7, ton.DegreeNote(harmony.V))
	assert.Equal(t, 11, ton.DegreeNote(harmony.VII))
}

func TestDegreeNoteHarmonicMinor(t *testing.T) {
	ton := New(9, harmony.MinorMode, "a minor")
	// harmonic minor raises the seventh degree: natural A minor's VII (G)
	// becomes G# at semitone 11 above A (9), landing on pitch class 8.
	assert.Equal(t, (9+11)%12, ton.DegreeNote(harmony.VII))
}

func TestDegreeNoteSecondaryDominant(t *testing.T) {
	ton := New(0, harmony.MajorMode, "C major")
	// V/V in C major tonicizes G (degree V, pitch class 7): its own root
	// sits a fifth above that, at pitch class 2 (D).
	assert.Equal(t, 2, ton.DegreeNote(harmony.VofV))
}

func TestChordQualityPicksFirstAllowedQuality(t *testing.T) {
	ton := New(0, harmony.MajorMode, "C major")
	q := ton.ChordQuality(harmony.I)
	assert.True(t, harmony.QualitiesAllowed(harmony.MajorMode, harmony.I, q))
}
