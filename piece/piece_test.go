package piece

import (
	"testing"
	"time"

	"harmonium/fd"
	"harmonium/harmony"
	"harmonium/theory"

	"github.com/stretchr/testify/assert"
)

func TestNewRejectsNonPositiveLength(t *testing.T) {
	_, err := New(Request{Length: 0, Sections: []SectionRequest{{Tonality: theory.Parse("C major")}}})
	assert.Error(t, err)
}

func TestNewRejectsMismatchedModulationCount(t *testing.T) {
	_, err := New(Request{
		Length:      8,
		Sections:    []SectionRequest{{Tonality: theory.Parse("C major")}, {Tonality: theory.Parse("G major")}},
		Modulations: nil,
	})
	assert.Error(t, err)
}

func TestNewRejectsModulationWindowOutsideLength(t *testing.T) {
	_, err := New(Request{
		Length:      4,
		Sections:    []SectionRequest{{Tonality: theory.Parse("C major")}, {Tonality: theory.Parse("G major")}},
		Modulations: []ModulationRequest{{Kind: harmony.PerfectCadence, Start: 2, End: 5}},
	})
	assert.Error(t, err)
}

func TestSolveSingleSectionProducesFullyAssignedPositions(t *testing.T) {
	p, err := New(Request{
		Length: 6,
		Sections: []SectionRequest{{
			Tonality:            theory.Parse("C major"),
			MaxChromaticPercent: 100,
			MaxSeventhPercent:   100,
		}},
		Seed: 7,
	})
	assert.NoError(t, err)

	sol, status := p.Solve()
	if !assert.Equal(t, fd.Solved, status) {
		return
	}
	assert.Len(t, sol.Positions, 6)
	assert.Len(t, sol.Sections, 1)
	assert.Equal(t, "C major", sol.Sections[0].TonalityName)

	for i := 0; i < len(sol.Sections[0].Chord)-1; i++ {
		a, b := sol.Sections[0].Chord[i], sol.Sections[0].Chord[i+1]
		assert.True(t, harmony.Transitions[a][b], "solved chord %d (%s) must admit chord %d (%s)", i, a, i+1, b)
	}
}

func TestSolveRespectsZeroTimeoutAsNoDeadline(t *testing.T) {
	p, err := New(Request{
		Length: 4,
		Sections: []SectionRequest{{
			Tonality:            theory.Parse("C major"),
			MaxChromaticPercent: 100,
			MaxSeventhPercent:   100,
		}},
		Timeout: 0,
	})
	assert.NoError(t, err)
	_, status := p.Solve()
	assert.Equal(t, fd.Solved, status)
}

// TestSolveTwoSectionsWithPerfectCadenceModulation exercises spec.md's S3
// scenario: a perfect-cadence modulation from C major into G major should
// end the first section on V->I (fundamental, no seventh on I) and start
// the second section right after the window.
func TestSolveTwoSectionsWithPerfectCadenceModulation(t *testing.T) {
	p, err := New(Request{
		Length: 10,
		Sections: []SectionRequest{
			{Tonality: theory.Parse("C major"), MaxChromaticPercent: 100, MaxSeventhPercent: 100},
			{Tonality: theory.Parse("G major"), MaxChromaticPercent: 100, MaxSeventhPercent: 100},
		},
		Modulations: []ModulationRequest{{Kind: harmony.PerfectCadence, Start: 6, End: 7}},
		Seed:        3,
	})
	assert.NoError(t, err)

	sol, status := p.Solve()
	if !assert.Equal(t, fd.Solved, status) {
		return
	}
	assert.Equal(t, harmony.V, sol.Sections[0].Chord[6])
	assert.Equal(t, harmony.I, sol.Sections[0].Chord[7])
	assert.Equal(t, harmony.Fundamental, sol.Positions[7].State)
	assert.False(t, sol.Positions[7].HasSeventh)
	assert.Equal(t, 8, sol.Sections[1].Start)
	assert.Equal(t, 2, sol.Sections[1].Duration)

	// spec §4.E: a PERFECT_CADENCE modulation ends a phrase at its End.
	assert.Equal(t, harmony.Perfect, sol.Phrases[0].Cadence)
	assert.Equal(t, 7, sol.Phrases[0].End)
}

// TestSolveFailsWhenChromaticBoundContradictsForcedCadence covers the "no
// solution, not an error" contract of spec §7/§8: a PERFECT_CADENCE
// modulation unconditionally fixes its section's final chord to I, which
// is never chromatic (spec §4.C constraint 8), so requiring every chord of
// that section to be chromatic is unsatisfiable by construction — the
// search must report NoSolution, not a config error or a panic.
func TestSolveFailsWhenChromaticBoundContradictsForcedCadence(t *testing.T) {
	p, err := New(Request{
		Length: 6,
		Sections: []SectionRequest{
			{Tonality: theory.Parse("C major"), MinChromaticPercent: 100, MaxChromaticPercent: 100, MaxSeventhPercent: 100},
			{Tonality: theory.Parse("G major"), MaxChromaticPercent: 100, MaxSeventhPercent: 100},
		},
		Modulations: []ModulationRequest{{Kind: harmony.PerfectCadence, Start: 2, End: 3}},
	})
	assert.NoError(t, err)

	_, status := p.Solve()
	assert.Equal(t, fd.NoSolution, status)
}

// TestSolveEndsOnDiatonicNonSeventhChord exercises spec.md's S1 scenario: a
// single unmodulated section must still end on a diatonic, non-VII chord
// with no seventh, regardless of how the search fills in the rest.
func TestSolveEndsOnDiatonicNonSeventhChord(t *testing.T) {
	p, err := New(Request{
		Length: 4,
		Sections: []SectionRequest{{
			Tonality:            theory.Parse("C major"),
			MaxChromaticPercent: 100,
			MaxSeventhPercent:   100,
		}},
		Seed: 11,
	})
	assert.NoError(t, err)

	sol, status := p.Solve()
	if !assert.Equal(t, fd.Solved, status) {
		return
	}
	last := sol.Sections[0].Chord[len(sol.Sections[0].Chord)-1]
	assert.LessOrEqual(t, int(last), int(harmony.VI))
	assert.False(t, sol.Positions[len(sol.Positions)-1].HasSeventh)
}

// TestSolveFailsWhenEverySeventhForcedOnUnmodulatedSection exercises spec.md's
// F1 scenario: requiring a seventh on every chord of the only section
// contradicts the mandatory non-seventh ending, so the search must report
// NoSolution.
func TestSolveFailsWhenEverySeventhForcedOnUnmodulatedSection(t *testing.T) {
	p, err := New(Request{
		Length: 3,
		Sections: []SectionRequest{{
			Tonality:            theory.Parse("C major"),
			MaxChromaticPercent: 100,
			MinSeventhPercent:   100,
			MaxSeventhPercent:   100,
		}},
	})
	assert.NoError(t, err)

	_, status := p.Solve()
	assert.Equal(t, fd.NoSolution, status)
}

func TestSolveCanTimeOut(t *testing.T) {
	p, err := New(Request{
		Length: 4,
		Sections: []SectionRequest{{
			Tonality:            theory.Parse("C major"),
			MaxChromaticPercent: 100,
			MaxSeventhPercent:   100,
		}},
	})
	assert.NoError(t, err)

	// Exercise the same fd.Solve path Solve() drives, but with a deadline
	// already in the past, so the search engine has to report TimedOut
	// rather than racing a real clock.
	_, status := fd.Solve(p.store, p.branching, p.seed, time.Now().Add(-time.Second))
	assert.Equal(t, fd.TimedOut, status)
}
