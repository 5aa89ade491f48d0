package harmony

import (
	"fmt"

	"harmonium/fd"
)

// requiredWindowLength is the window length spec §4.D mandates for each
// modulation kind. A mismatch is a configuration error caught at
// construction, before search ever starts (spec §7, scenario F2).
func requiredWindowLength(kind ModulationKind, length int) error {
	switch kind {
	case PerfectCadence:
		if length != 2 {
			return fmt.Errorf("harmony: %s modulation requires window length 2, got %d", kind, length)
		}
	case PivotChord:
		if length < 3 {
			return fmt.Errorf("harmony: %s modulation requires window length >= 3, got %d", kind, length)
		}
	case Alteration:
		if length != 2 {
			return fmt.Errorf("harmony: %s modulation requires window length 2, got %d", kind, length)
		}
	case SecondaryDominant:
		if length != 2 {
			return fmt.Errorf("harmony: %s modulation requires window length 2, got %d", kind, length)
		}
	default:
		return fmt.Errorf("harmony: unknown modulation kind %d", int(kind))
	}
	return nil
}

// semitoneToScaleStep maps the absolute semitone interval between two
// tonics (0..11, but only the seven diatonic interval classes are
// meaningful here) to the scale-step table spec §4.D names: unison->0,
// 2nd->1, 3rd->2, 4th->3, 5th->4, 6th->5, 7th->6. Secondary-dominant
// modulations only ever arise from intervals that land on a natural scale
// step between the two tonics' diatonic collections, so this table is
// keyed by semitone distance rounded to the nearest diatonic class.
var semitoneToScaleStep = map[int]int{
	0: 0, 1: 1, 2: 1, 3: 2, 4: 2, 5: 3, 6: 3, 7: 4, 8: 5, 9: 5, 10: 6, 11: 6,
}

// Modulation posts the cross-section constraints for one boundary between
// two ChordProgressions (spec §4.D).
type Modulation struct {
	Kind     ModulationKind
	Start    int
	End      int
	From, To *ChordProgression
}

// NewModulation validates the window length for kind and, if valid, posts
// the kind-specific constraints linking From and To. It returns an error
// for a bad window length, mirroring the construction-time configuration
// error spec §7 requires.
func NewModulation(kind ModulationKind, start, end int, from, to *ChordProgression) (*Modulation, error) {
	length := end - start + 1
	if err := requiredWindowLength(kind, length); err != nil {
		return nil, err
	}
	m := &Modulation{Kind: kind, Start: start, End: end, From: from, To: to}
	switch kind {
	case PerfectCadence:
		m.postPerfectCadence()
	case PivotChord:
		m.postPivotChord()
	case Alteration:
		m.postAlteration()
	case SecondaryDominant:
		m.postSecondaryDominant()
	}
	return m, nil
}

// localIndex converts a piece-global position into an index local to cp's
// own chord/state/quality arrays.
func localIndex(cp *ChordProgression, globalPos int) int { return globalPos - cp.Start }

func (m *Modulation) postPerfectCadence() {
	s := m.From.Store
	from := m.From
	d2 := localIndex(from, m.End-1)
	d1 := localIndex(from, m.End)
	s.Post(&fd.Implies{Cons: []fd.Atom{fd.Eq(from.Chord[d2], int(V)), fd.Eq(from.State[d2], int(Fundamental))}})
	s.Post(&fd.Implies{Cons: []fd.Atom{
		fd.Eq(from.Chord[d1], int(I)), fd.Eq(from.State[d1], int(Fundamental)), fd.Eq(from.HasSeventh[d1], 0),
	}})
}

func (m *Modulation) postPivotChord() {
	s := m.From.Store
	from, to := m.From, m.To

	// first chord of the shared overlap (position m.Start, read in `from`'s
	// key) is diatonic, != VII
	firstOverlap := localIndex(from, m.Start)
	s.Post(&fd.Implies{Cons: []fd.Atom{fd.Leq(from.Chord[firstOverlap], int(VII)), fd.Neq(from.Chord[firstOverlap], int(VII))}})

	// perfect cadence at the end of `to`, in the new key
	d2 := localIndex(to, m.End-1)
	d1 := localIndex(to, m.End)
	s.Post(&fd.Implies{Cons: []fd.Atom{fd.Eq(to.Chord[d2], int(V)), fd.Eq(to.State[d2], int(Fundamental))}})
	s.Post(&fd.Implies{Cons: []fd.Atom{
		fd.Eq(to.Chord[d1], int(I)), fd.Eq(to.State[d1], int(Fundamental)), fd.Eq(to.HasSeventh[d1], 0),
	}})
}

func (m *Modulation) postAlteration() {
	s := m.From.Store
	from, to := m.From, m.To
	lastFrom := localIndex(from, m.Start-1)
	firstTo := localIndex(to, m.Start)

	// last chord of `from`: diatonic, no seventh
	s.Post(&fd.Implies{Cons: []fd.Atom{fd.Leq(from.Chord[lastFrom], int(VI)), fd.Eq(from.HasSeventh[lastFrom], 0)}})

	// first chord of `to`: diatonic, not V, no seventh
	s.Post(&fd.Implies{Cons: []fd.Atom{
		fd.Leq(to.Chord[firstTo], int(VII)), fd.Neq(to.Chord[firstTo], int(V)), fd.Eq(to.HasSeventh[firstTo], 0),
	}})

	// the altered-note check: the pitch class of to's first chord, read as
	// a degree of the old key, must carry a different quality there than
	// qualityNoSeventh assigns it in the new key (or not belong to the old
	// key's diatonic collection at all).
	s.Post(&alterationCheck{
		Tonality:         from.Tonality,
		RootNote:         to.RootNote[firstTo],
		QualityNoSeventh: to.QualityNoSeventh[firstTo],
	})

	// V of the new key within two chords of the start of `to`: the second
	// chord of `to` if the transition table permits, otherwise the third.
	s.Post(&vWithinTwo{Chord2: atOrNil(to, firstTo+1), Chord3: atOrNil(to, firstTo+2)})
}

func (m *Modulation) postSecondaryDominant() {
	s := m.From.Store
	from, to := m.From, m.To
	// from's last position (the window's lead-in chord, position m.Start)
	// is where the secondary-dominant target degree must sound; the window's
	// last position (m.End, to's second chord) is the chord reinterpreted as
	// V of the new key.
	leadIn := localIndex(from, m.Start)
	pivot := localIndex(to, m.End)

	s.Post(&fd.Implies{Cons: []fd.Atom{fd.Eq(to.Chord[pivot], int(V))}})

	tonicInterval := (to.Tonality.Tonic() - from.Tonality.Tonic() + 12) % 12
	step := semitoneToScaleStep[tonicInterval]
	targetDegree := (step + 6) % 7

	s.Post(&leadInContainsDegree{
		TargetDegree: targetDegree,
		Root:         from.Roots[leadIn], Third: from.Thirds[leadIn], Fifth: from.Fifths[leadIn],
	})
}

func atOrNil(cp *ChordProgression, idx int) fd.Var {
	if idx < 0 || idx >= len(cp.Chord) {
		return -1
	}
	return cp.Chord[idx]
}

// alterationCheck implements the ALTERATION modulation's "the new chord's
// root, read in the old key, takes a different quality there" test: a
// pair of tabled element lookups (pitch-class -> old-key-degree, then
// old-key-degree -> old-key-quality), both padded with a -1 sentinel for
// "not in this key", composed with a final inequality.
type alterationCheck struct {
	Tonality         Tonality
	RootNote         fd.Var
	QualityNoSeventh fd.Var
}

func (c *alterationCheck) oldKeyDegreeForNote(note int) int {
	for d := Degree(0); d <= VII; d++ {
		if c.Tonality.DegreeNote(d) == note {
			return int(d)
		}
	}
	return -1
}

func (c *alterationCheck) Propagate(s *fd.Store) (bool, bool) {
	rd := s.Dom(c.RootNote)
	if !rd.Assigned() {
		return false, true
	}
	oldDegree := c.oldKeyDegreeForNote(rd.Value())
	if oldDegree == -1 {
		return false, true // note doesn't belong to the old key: vacuously altered
	}
	oldQuality := QualityToTriad[c.Tonality.ChordQuality(Degree(oldDegree))]
	nd, changed := s.Dom(c.QualityNoSeventh).Remove(int(oldQuality))
	if !s.Prune(c.QualityNoSeventh, nd) {
		return changed, false
	}
	return changed, true
}

// vWithinTwo enforces that the new key's V appears at Chord2 or Chord3,
// matching the "within two chords of the start of to" wording of spec
// §4.D: the second chord of the window if legal, otherwise the third.
type vWithinTwo struct {
	Chord2, Chord3 fd.Var
}

func (c *vWithinTwo) Propagate(s *fd.Store) (bool, bool) {
	var vars []fd.Var
	if c.Chord2 != -1 {
		vars = append(vars, c.Chord2)
	}
	if c.Chord3 != -1 {
		vars = append(vars, c.Chord3)
	}
	anyCanBeV := false
	allDisentailed := true
	for _, v := range vars {
		if s.Dom(v).Contains(int(V)) {
			anyCanBeV = true
		}
		if !(s.Dom(v).Assigned() && s.Dom(v).Value() != int(V)) {
			allDisentailed = false
		}
	}
	if !anyCanBeV {
		return false, false
	}
	if len(vars) == 1 && allDisentailed {
		return false, false
	}
	if len(vars) == 1 {
		nd, changed := s.Dom(vars[0]).Fix(int(V))
		if !s.Prune(vars[0], nd) {
			return changed, false
		}
		return changed, true
	}
	return false, true
}

// leadInContainsDegree implements the SECONDARY_DOMINANT modulation's
// lead-in check: the last chord of the old key's section (the window's
// first position) must voice the target scale degree as its root, third,
// or fifth.
type leadInContainsDegree struct {
	TargetDegree         int
	Root, Third, Fifth fd.Var
}

func (c *leadInContainsDegree) Propagate(s *fd.Store) (bool, bool) {
	anyCan := s.Dom(c.Root).Contains(c.TargetDegree) || s.Dom(c.Third).Contains(c.TargetDegree) || s.Dom(c.Fifth).Contains(c.TargetDegree)
	if !anyCan {
		return false, false
	}
	rootFixed := s.Dom(c.Root).Assigned() && s.Dom(c.Root).Value() != c.TargetDegree
	thirdFixed := s.Dom(c.Third).Assigned() && s.Dom(c.Third).Value() != c.TargetDegree
	fifthFixed := s.Dom(c.Fifth).Assigned() && s.Dom(c.Fifth).Value() != c.TargetDegree
	if rootFixed && thirdFixed && fifthFixed {
		return false, false
	}
	return false, true
}
