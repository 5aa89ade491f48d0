package harmony

import (
	"testing"

	"harmonium/fd"

	"github.com/stretchr/testify/assert"
)

func TestVdaResolutionForcesFundamentalDominant(t *testing.T) {
	s := fd.NewStore()
	chord := s.NewVar("chord", int(I), int(NChords)-1)
	nextState := s.NewVar("nextState", int(Fundamental), int(NStates)-1)
	nextQuality := s.NewVar("nextQuality", int(Major), int(NQualities)-1)

	s.Post(&vdaResolution{Chord: chord, NextState: nextState, NextQuality: nextQuality})
	s.Prune(chord, fd.Singleton(int(Vda)))
	assert.True(t, s.Propagate())

	assert.Equal(t, int(Fundamental), s.Value(nextState))
	assert.True(t, s.Dom(nextQuality).Contains(int(Major)))
	assert.True(t, s.Dom(nextQuality).Contains(int(Dominant7)))
	assert.False(t, s.Dom(nextQuality).Contains(int(Minor)))
}

func TestDominantBassMotionAppliesStepwiseOffset(t *testing.T) {
	s := fd.NewStore()
	chord := s.NewVar("chord", int(V), int(V))
	quality := s.NewVar("quality", int(Major), int(Major))
	state := s.NewVar("state", int(FirstInversion), int(FirstInversion))
	bass := s.NewVar("bass", 0, 6)
	nextBass := s.NewVar("nextBass", 0, 6)

	s.Post(&dominantBassMotion{Chord: chord, Quality: quality, State: state, BassDegree: bass, NextBassDegree: nextBass})
	s.Prune(bass, fd.Singleton(4))
	assert.True(t, s.Propagate())

	assert.Equal(t, 5, s.Value(nextBass), "first-inversion dominant bass steps up by one scale degree")
}

func TestNoTripleRepeatFailsWhenStateAndQualityBothEqual(t *testing.T) {
	s := fd.NewStore()
	a := s.NewVar("a", int(I), int(I))
	b := s.NewVar("b", int(I), int(I))
	c := s.NewVar("c", int(I), int(NChords)-1)
	stateA := s.NewVar("sa", int(Fundamental), int(Fundamental))
	stateB := s.NewVar("sb", int(Fundamental), int(Fundamental))
	qualA := s.NewVar("qa", int(Major), int(Major))
	qualB := s.NewVar("qb", int(Major), int(Major))

	constraint := &noTripleRepeat{ChordA: a, ChordB: b, ChordC: c, StateA: stateA, StateB: stateB, QualityA: qualA, QualityB: qualB}
	_, ok := constraint.Propagate(s)
	assert.False(t, ok, "identical chord, state, and quality must be rejected outright")
}

func TestNoTripleRepeatForbidsThirdIdenticalDegree(t *testing.T) {
	s := fd.NewStore()
	a := s.NewVar("a", int(I), int(I))
	b := s.NewVar("b", int(I), int(I))
	c := s.NewVar("c", int(I), int(NChords)-1)
	stateA := s.NewVar("sa", int(Fundamental), int(FirstInversion))
	stateB := s.NewVar("sb", int(Fundamental), int(FirstInversion))
	qualA := s.NewVar("qa", int(Major), int(Major7))
	qualB := s.NewVar("qb", int(Major), int(Major7))

	constraint := &noTripleRepeat{ChordA: a, ChordB: b, ChordC: c, StateA: stateA, StateB: stateB, QualityA: qualA, QualityB: qualB}
	_, ok := constraint.Propagate(s)
	assert.True(t, ok)
	assert.False(t, s.Dom(c).Contains(int(I)))
}

func TestSeventhPreparationRequiresPriorChordTone(t *testing.T) {
	s := fd.NewStore()
	hasSeventh := s.NewVar("hasSeventh", 1, 1)
	quality := s.NewVar("quality", int(Minor7), int(Minor7))
	chord := s.NewVar("chord", int(II), int(II))
	seventh := s.NewVar("seventh", 0, 6)
	prevRoot := s.NewVar("prevRoot", 0, 0)
	prevThird := s.NewVar("prevThird", 2, 2)
	prevFifth := s.NewVar("prevFifth", 4, 4)

	constraint := &seventhPreparation{
		HasSeventh: hasSeventh, Quality: quality, Chord: chord, Seventh: seventh,
		PrevRoot: prevRoot, PrevThird: prevThird, PrevFifth: prevFifth,
	}
	s.Post(constraint)
	assert.True(t, s.Propagate())
	assert.Equal(t, []int{0, 2, 4}, s.Dom(seventh).Values())
}
