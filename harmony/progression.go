package harmony

import (
	"fmt"

	"harmonium/fd"
)

// Tonality is the music-theory collaborator a ChordProgression consumes
// (spec §6). harmony never imports the theory package directly — theory
// implements this interface — so the constraint layer stays decoupled from
// pitch-class arithmetic and key parsing.
type Tonality interface {
	DegreeNote(d Degree) int
	ChordQuality(d Degree) Quality
	Mode() Mode
	Tonic() int
	Name() string
}

// PercentToCount converts a percentage bound over a section of the given
// duration into an inclusive chord count, the same conversion the original
// chord generator applied to its minChromaticPercent/maxSeventhPercent
// construction parameters before building its sum constraints.
func PercentToCount(pct float64, duration int) int {
	count := int(pct * float64(duration) / 100)
	if count < 0 {
		count = 0
	}
	if count > duration {
		count = duration
	}
	return count
}

// ChordProgression owns one key area's degree-level variables and posts the
// intra-section constraints of spec §4.C (all but constraint 17, which is
// piece-wide and posted by the piece once over the whole shared array).
type ChordProgression struct {
	Store    *fd.Store
	Tonality Tonality
	Start    int
	Duration int

	MinChromatic, MaxChromatic int
	MinSeventh, MaxSeventh     int

	// Shared piece-owned views, sliced to this section's window.
	State            []fd.Var
	Quality          []fd.Var
	QualityNoSeventh []fd.Var
	RootNote         []fd.Var
	HasSeventh       []fd.Var

	// Section-owned arrays.
	Chord       []fd.Var
	BassDegree  []fd.Var
	IsChromatic []fd.Var
	Roots       []fd.Var
	Thirds      []fd.Var
	Fifths      []fd.Var
	Sevenths    []fd.Var
}

// NewChordProgression allocates the section-owned variables, slices the
// piece-owned arrays to this section's window, and posts every constraint
// from spec §4.C except the piece-wide triad projection (constraint 17).
func NewChordProgression(
	s *fd.Store,
	start, duration int,
	tonality Tonality,
	sharedState, sharedQuality, sharedQualityNoSeventh, sharedRootNote, sharedHasSeventh []fd.Var,
	minChromatic, maxChromatic, minSeventh, maxSeventh int,
) *ChordProgression {
	cp := &ChordProgression{
		Store:            s,
		Tonality:         tonality,
		Start:            start,
		Duration:         duration,
		MinChromatic:     minChromatic,
		MaxChromatic:     maxChromatic,
		MinSeventh:       minSeventh,
		MaxSeventh:       maxSeventh,
		State:            sharedState[start : start+duration],
		Quality:          sharedQuality[start : start+duration],
		QualityNoSeventh: sharedQualityNoSeventh[start : start+duration],
		RootNote:         sharedRootNote[start : start+duration],
		HasSeventh:       sharedHasSeventh[start : start+duration],
	}

	cp.Chord = make([]fd.Var, duration)
	cp.BassDegree = make([]fd.Var, duration)
	cp.IsChromatic = make([]fd.Var, duration)
	cp.Roots = make([]fd.Var, duration)
	cp.Thirds = make([]fd.Var, duration)
	cp.Fifths = make([]fd.Var, duration)
	cp.Sevenths = make([]fd.Var, duration)
	for i := 0; i < duration; i++ {
		cp.Chord[i] = s.NewVar(fmt.Sprintf("chord[%d]", start+i), int(I), int(NChords)-1)
		cp.BassDegree[i] = s.NewVar(fmt.Sprintf("bassDegree[%d]", start+i), 0, 6)
		cp.IsChromatic[i] = s.NewBoolVar(fmt.Sprintf("isChromatic[%d]", start+i))
		cp.Roots[i] = s.NewVar(fmt.Sprintf("roots[%d]", start+i), 0, 6)
		cp.Thirds[i] = s.NewVar(fmt.Sprintf("thirds[%d]", start+i), 0, 6)
		cp.Fifths[i] = s.NewVar(fmt.Sprintf("fifths[%d]", start+i), 0, 6)
		cp.Sevenths[i] = s.NewVar(fmt.Sprintf("sevenths[%d]", start+i), 0, 6)

		if tonality.Mode() == MajorMode {
			if nd, changed := s.Dom(cp.Chord[i]).Remove(int(VofVII)); changed {
				s.Prune(cp.Chord[i], nd) // constraint 15: V/VII only in minor
			}
		}
	}

	cp.postConstraints()
	return cp
}

func (cp *ChordProgression) postConstraints() {
	s := cp.Store
	mode := cp.Tonality.Mode()
	D := cp.Duration

	for i := 0; i < D-1; i++ {
		// 1. transition admissibility
		s.Post(&fd.AllowedPairs{A: cp.Chord[i], B: cp.Chord[i+1], Allow: func(a, b int) bool {
			return Transitions[a][b]
		}})
	}

	for i := 0; i < D; i++ {
		// 2. note functions vs degree
		s.Post(&fd.TableFunc1{A: cp.Chord[i], R: cp.Roots[i], F: func(a int) int { return BassOf[a][Fundamental] }})
		s.Post(&fd.TableFunc1{A: cp.Chord[i], R: cp.Thirds[i], F: func(a int) int { return BassOf[a][FirstInversion] }})
		s.Post(&fd.TableFunc1{A: cp.Chord[i], R: cp.Fifths[i], F: func(a int) int { return BassOf[a][SecondInversion] }})
		s.Post(&fd.TableFunc1{A: cp.Chord[i], R: cp.Sevenths[i], F: func(a int) int { return BassOf[a][ThirdInversion] }})

		// 3. quality vs degree, mode-dependent
		s.Post(&fd.AllowedPairs{A: cp.Chord[i], B: cp.Quality[i], Allow: func(a, b int) bool {
			return QualitiesAllowed(mode, Degree(a), Quality(b))
		}})

		// 4. state vs degree
		s.Post(&fd.AllowedPairs{A: cp.Chord[i], B: cp.State[i], Allow: func(a, b int) bool {
			return StatesAllowed(mode, Degree(a), State(b))
		}})

		// 5. state vs seventh presence
		s.Post(&fd.Implies{Ante: []fd.Atom{fd.Eq(cp.HasSeventh[i], 0)}, Cons: []fd.Atom{fd.Lt(cp.State[i], int(ThirdInversion))}})
		s.Post(&fd.Implies{Ante: []fd.Atom{fd.Lt(cp.Quality[i], int(Dominant7))}, Cons: []fd.Atom{fd.Lt(cp.State[i], int(ThirdInversion))}})
		s.Post(&fd.Implies{Ante: []fd.Atom{fd.Lt(cp.Quality[i], int(MinorNinthDominant))}, Cons: []fd.Atom{fd.Lt(cp.State[i], int(FourthInversion))}})

		// 6. root note vs degree
		tonality := cp.Tonality
		s.Post(&fd.TableFunc1{A: cp.Chord[i], R: cp.RootNote[i], F: func(a int) int { return tonality.DegreeNote(Degree(a)) }})

		// 7. bass degree
		s.Post(&fd.TableFunc2{A: cp.Chord[i], B: cp.State[i], R: cp.BassDegree[i], F: func(a, b int) int { return BassOf[a][b] }})

		// 8. chromaticity booleans
		s.Post(&fd.Implies{Ante: []fd.Atom{fd.Geq(cp.Chord[i], int(VofII))}, Cons: []fd.Atom{fd.Eq(cp.IsChromatic[i], 1)}})
		s.Post(&fd.Implies{Ante: []fd.Atom{fd.Leq(cp.Chord[i], int(Vda)), fd.Neq(cp.Chord[i], int(V))}, Cons: []fd.Atom{fd.Eq(cp.IsChromatic[i], 0)}})
		s.Post(&fd.Implies{Ante: []fd.Atom{fd.Eq(cp.Chord[i], int(V)), fd.Eq(cp.Quality[i], int(Diminished7))}, Cons: []fd.Atom{fd.Eq(cp.IsChromatic[i], 1)}})
		s.Post(&fd.Implies{Ante: []fd.Atom{fd.Eq(cp.Chord[i], int(V)), fd.Neq(cp.Quality[i], int(Diminished7))}, Cons: []fd.Atom{fd.Eq(cp.IsChromatic[i], 0)}})

		// 9. seventh booleans
		s.Post(&fd.Reif{B: cp.HasSeventh[i], P: fd.Geq(cp.Quality[i], int(Dominant7))})

		// 11. flat-II inversion
		s.Post(&fd.Implies{Ante: []fd.Atom{fd.Eq(cp.Chord[i], int(BII))}, Cons: []fd.Atom{fd.Eq(cp.State[i], int(FirstInversion))}})

		// 16. diminished-seventh dominants inverted
		s.Post(&fd.Implies{Ante: []fd.Atom{fd.Eq(cp.Quality[i], int(Diminished7)), fd.Neq(cp.Chord[i], int(VII))}, Cons: []fd.Atom{fd.Eq(cp.State[i], int(FirstInversion))}})
	}

	// 8 (cont). chromatic/seventh counts
	s.Post(&fd.SumBool{Vars: cp.IsChromatic, Low: cp.MinChromatic, High: cp.MaxChromatic})
	s.Post(&fd.SumBool{Vars: cp.HasSeventh, Low: cp.MinSeventh, High: cp.MaxSeventh})

	for i := 0; i < D-1; i++ {
		// 10. Vda resolution
		s.Post(&vdaResolution{Chord: cp.Chord[i], NextState: cp.State[i+1], NextQuality: cp.Quality[i+1]})

		// 13. dominant/tritone bass motion
		s.Post(&dominantBassMotion{
			Chord: cp.Chord[i], Quality: cp.Quality[i], State: cp.State[i],
			BassDegree: cp.BassDegree[i], NextBassDegree: cp.BassDegree[i+1],
		})
	}

	for i := 0; i < D-2; i++ {
		// 12. successive-same-degree
		s.Post(&noTripleRepeat{
			ChordA: cp.Chord[i], ChordB: cp.Chord[i+1], ChordC: cp.Chord[i+2],
			StateA: cp.State[i], StateB: cp.State[i+1],
			QualityA: cp.Quality[i], QualityB: cp.Quality[i+1],
		})
	}
	if D >= 2 {
		i := D - 2
		s.Post(&noDoubleRepeat{
			ChordA: cp.Chord[i], ChordB: cp.Chord[i+1],
			StateA: cp.State[i], StateB: cp.State[i+1],
			QualityA: cp.Quality[i], QualityB: cp.Quality[i+1],
		})
	}

	for i := 1; i < D; i++ {
		// 14. seventh preparation
		s.Post(&seventhPreparation{
			HasSeventh: cp.HasSeventh[i], Quality: cp.Quality[i], Chord: cp.Chord[i], Seventh: cp.Sevenths[i],
			PrevRoot: cp.Roots[i-1], PrevThird: cp.Thirds[i-1], PrevFifth: cp.Fifths[i-1],
		})
	}
}
