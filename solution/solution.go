// Package solution holds the produced output of the solver: the Piece
// Solution record of spec §6, plus its dual textual renderings, grounded
// on ChordProgression::toString()/pretty() and Modulation::toString()/
// pretty() in the original chord generator.
package solution

import (
	"fmt"
	"strings"

	"harmonium/harmony"
)

// Position is one chord-position's full resolved state.
type Position struct {
	State      harmony.State
	Quality    harmony.Quality
	RootNote   int
	HasSeventh bool
}

// Section is one key area's slice of the solution.
type Section struct {
	Start        int
	Duration     int
	TonalityName string
	Chord        []harmony.Degree
	BassDegree   []int
	IsChromatic  []bool
}

// Modulation is one boundary's resolved kind and window.
type Modulation struct {
	Kind     harmony.ModulationKind
	Start    int
	End      int
	FromName string
	ToName   string
}

// Phrase is a semantic sub-division of the piece, derived from modulation
// geometry (spec §4.E) for the downstream voice-leading realiser. Cadence
// is only tagged when the phrase end coincides with a PERFECT_CADENCE
// modulation; other phrase ends carry CadenceUnknown since classifying
// them (half/plagal/deceptive) needs voice-leading context this core
// doesn't have.
type Phrase struct {
	Start, End int
	Cadence    harmony.CadenceKind
}

// Piece is the complete produced output of a search (spec §6).
type Piece struct {
	Length      int
	Positions   []Position
	Sections    []Section
	Modulations []Modulation
	Phrases     []Phrase
}

// String renders a compact, debugging-oriented dump: one line per
// position with every resolved field.
func (p *Piece) String() string {
	var b strings.Builder
	for i, pos := range p.Positions {
		fmt.Fprintf(&b, "[%d] state=%s quality=%s root=%d seventh=%v\n",
			i, pos.State, pos.Quality, pos.RootNote, pos.HasSeventh)
	}
	return b.String()
}

// Pretty renders each section's name followed by its degree-name string,
// then each modulation as "from <keyA> to <keyB> (<kind>)".
func (p *Piece) Pretty() string {
	var b strings.Builder
	for _, sec := range p.Sections {
		fmt.Fprintf(&b, "%s: ", sec.TonalityName)
		names := make([]string, len(sec.Chord))
		for i, d := range sec.Chord {
			names[i] = d.String()
		}
		b.WriteString(strings.Join(names, " "))
		b.WriteString("\n")
	}
	for _, m := range p.Modulations {
		fmt.Fprintf(&b, "from %s to %s (%s)\n", m.FromName, m.ToName, m.Kind)
	}
	return b.String()
}
