package harmony

import (
	"testing"
	"time"

	"harmonium/fd"

	"github.com/stretchr/testify/assert"
)

// fakeTonality is a minimal C-major tonality for exercising
// ChordProgression without depending on the theory package.
type fakeTonality struct{}

func (fakeTonality) DegreeNote(d Degree) int {
	plain := map[Degree]int{I: 0, II: 2, III: 4, IV: 5, V: 7, VI: 9, VII: 11}
	if n, ok := plain[d]; ok {
		return n
	}
	switch d {
	case BII:
		return 1
	case Vda:
		return 0
	default:
		return 7 // secondary dominants and augmented sixth collapse onto G for this fixture
	}
}

func (fakeTonality) ChordQuality(d Degree) Quality { return Major }
func (fakeTonality) Mode() Mode                    { return MajorMode }
func (fakeTonality) Tonic() int                    { return 0 }
func (fakeTonality) Name() string                  { return "C major" }

func newTestProgression(t *testing.T, duration int) (*fd.Store, *ChordProgression) {
	t.Helper()
	s := fd.NewStore()
	state := s.NewVars("state", duration, int(Fundamental), int(NStates)-1)
	quality := s.NewVars("quality", duration, int(Major), int(NQualities)-1)
	qualityNoSeventh := s.NewVars("qualityNoSeventh", duration, int(TriadMajor), int(NTriadQualities)-1)
	rootNote := s.NewVars("rootNote", duration, 0, 11)
	hasSeventh := make([]fd.Var, duration)
	for i := range hasSeventh {
		hasSeventh[i] = s.NewBoolVar("hasSeventh")
	}
	cp := NewChordProgression(s, 0, duration, fakeTonality{}, state, quality, qualityNoSeventh, rootNote, hasSeventh,
		0, duration, 0, duration)
	return s, cp
}

func TestNewChordProgressionPrunesVofVIIInMajor(t *testing.T) {
	_, cp := newTestProgression(t, 4)
	assert.False(t, cp.Store.Dom(cp.Chord[0]).Contains(int(VofVII)))
}

func TestChordProgressionSolvesToAdmissibleSequence(t *testing.T) {
	s, cp := newTestProgression(t, 4)
	assert.True(t, s.Propagate(), "posted constraints must not immediately fail")

	groups := []fd.BranchGroup{
		{Name: "chords", Vars: cp.Chord, Order: fd.ValueMin},
		{Name: "states", Vars: cp.State, Order: fd.ValueMin},
		{Name: "qualities", Vars: cp.Quality, Order: fd.ValueMin},
	}
	result, status := fd.Solve(s, groups, 1, time.Time{})
	if !assert.Equal(t, fd.Solved, status) {
		return
	}

	for i := 0; i < cp.Duration-1; i++ {
		a := Degree(result.Value(cp.Chord[i]))
		b := Degree(result.Value(cp.Chord[i+1]))
		assert.True(t, Transitions[a][b], "chord %d (%s) must admit chord %d (%s)", i, a, i+1, b)
	}
}
