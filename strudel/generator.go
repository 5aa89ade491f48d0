// Package strudel exports a solved progression as a strudel.cc pattern,
// the teacher's "note(...).s(\"piano\")" generation style applied to the
// root-position block voicing spec.md §6 names as the core's audible
// surface.
package strudel

import (
	"fmt"
	"strings"

	"harmonium/harmony"
	"harmonium/solution"
)

var qualityIntervals = map[harmony.Quality][]int{
	harmony.Major:              {0, 4, 7},
	harmony.Minor:              {0, 3, 7},
	harmony.Diminished:         {0, 3, 6},
	harmony.Augmented:          {0, 4, 8},
	harmony.AugmentedSixth:     {0, 4, 10},
	harmony.Dominant7:          {0, 4, 7, 10},
	harmony.Major7:             {0, 4, 7, 11},
	harmony.Minor7:             {0, 3, 7, 10},
	harmony.Diminished7:        {0, 3, 6, 9},
	harmony.HalfDiminished7:    {0, 3, 6, 10},
	harmony.MinorMajor7:        {0, 3, 7, 11},
	harmony.MajorNinthDominant: {0, 4, 7, 10, 14},
	harmony.MinorNinthDominant: {0, 4, 7, 10, 13},
}

var pitchClassNames = []string{"c", "cs", "d", "ds", "e", "f", "fs", "g", "gs", "a", "as", "b"}

func midiToNote(pitchClass, octave int) string {
	return fmt.Sprintf("%s%d", pitchClassNames[((pitchClass%12)+12)%12], octave)
}

func chordToNotes(rootPitchClass int, quality harmony.Quality) []string {
	intervals := qualityIntervals[quality]
	if intervals == nil {
		intervals = qualityIntervals[harmony.Major]
	}
	const baseOctave = 3
	notes := make([]string, len(intervals))
	for i, iv := range intervals {
		midi := rootPitchClass + iv
		notes[i] = midiToNote(midi, baseOctave+midi/12)
	}
	return notes
}

// Generate renders a solved piece as a strudel.cc pattern: one chord
// event per position, stacked against a bass line doubling the root an
// octave down.
func Generate(sol *solution.Piece, tempoBPM int) string {
	var sb strings.Builder
	for _, sec := range sol.Sections {
		fmt.Fprintf(&sb, "// %s\n", sec.TonalityName)
	}

	var chordParts, bassParts []string
	for _, pos := range sol.Positions {
		notes := chordToNotes(pos.RootNote, pos.Quality)
		chordParts = append(chordParts, fmt.Sprintf("[%s]", strings.Join(notes, ",")))
		bassParts = append(bassParts, midiToNote(pos.RootNote, 2))
	}

	chordPattern := fmt.Sprintf("note(\"%s\").s(\"piano\")", strings.Join(chordParts, " "))
	bassPattern := fmt.Sprintf("note(\"%s\").s(\"sawtooth\").lpf(400)", strings.Join(bassParts, " "))

	sb.WriteString("stack(\n")
	sb.WriteString("  " + chordPattern + ",\n")
	sb.WriteString("  " + bassPattern + "\n")
	sb.WriteString(")")
	fmt.Fprintf(&sb, "\n  .cpm(%d/4)\n", tempoBPM)
	return sb.String()
}
