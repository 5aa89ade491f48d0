package harmony

import "harmonium/fd"

// The constraints below don't reduce to the generic Implies/Reif/table
// primitives in fd because their consequent is a disjunction, or their
// relation ties two variables together by an arithmetic expression rather
// than comparing one variable against a constant. Each is grounded on the
// corresponding numbered rule in spec §4.C.

// varsEqual reports whether a and b are known equal or known unequal given
// their current domains.
func varsEqual(s *fd.Store, a, b fd.Var) (equal, unequal bool) {
	da, db := s.Dom(a), s.Dom(b)
	if da.Assigned() && db.Assigned() {
		return da.Value() == db.Value(), da.Value() != db.Value()
	}
	for _, v := range da.Values() {
		if db.Contains(v) {
			return false, false
		}
	}
	return false, true
}

// vdaResolution is constraint 10: chord[i] = Vda forces the following
// chord to a fundamental-position V with a dominant-flavoured quality.
type vdaResolution struct {
	Chord       fd.Var
	NextState   fd.Var
	NextQuality fd.Var
}

func (c *vdaResolution) Propagate(s *fd.Store) (bool, bool) {
	cd := s.Dom(c.Chord)
	if !(cd.Assigned() && cd.Value() == int(Vda)) {
		return false, true
	}
	changed := false
	nd, ch := s.Dom(c.NextState).Fix(int(Fundamental))
	changed = changed || ch
	if !s.Prune(c.NextState, nd) {
		return changed, false
	}
	allowed := map[int]bool{int(Major): true, int(Dominant7): true}
	nq, ch2 := s.Dom(c.NextQuality).KeepOnly(allowed)
	changed = changed || ch2
	if !s.Prune(c.NextQuality, nq) {
		return changed, false
	}
	return changed, true
}

// dominantBassMotion is constraint 13: a dominant-functioned chord in 1st
// or 3rd inversion forces the next bass scale-degree by stepwise or
// tritone-resolution motion.
type dominantBassMotion struct {
	Chord, Quality, State       fd.Var
	BassDegree, NextBassDegree  fd.Var
}

func (c *dominantBassMotion) dominantEntailed(s *fd.Store) bool {
	cd := s.Dom(c.Chord)
	if cd.Min() >= int(VofII) && cd.Max() <= int(VofVII) {
		return true
	}
	if cd.Assigned() && cd.Value() == int(V) {
		qd := s.Dom(c.Quality)
		for _, q := range qd.Values() {
			if q != int(Major) && q != int(Dominant7) && q != int(Diminished7) {
				return false
			}
		}
		return true
	}
	return false
}

func (c *dominantBassMotion) applyOffset(s *fd.Store, offset int) (bool, bool) {
	changed := false
	da := s.Dom(c.BassDegree)
	allowedR := map[int]bool{}
	for _, a := range da.Values() {
		allowedR[((a+offset)%7+7)%7] = true
	}
	ndr, ch := s.Dom(c.NextBassDegree).KeepOnly(allowedR)
	changed = changed || ch
	if !s.Prune(c.NextBassDegree, ndr) {
		return changed, false
	}
	dr := s.Dom(c.NextBassDegree)
	allowedA := map[int]bool{}
	for _, r := range dr.Values() {
		allowedA[((r-offset)%7+7)%7] = true
	}
	nda, ch2 := da.KeepOnly(allowedA)
	changed = changed || ch2
	if !s.Prune(c.BassDegree, nda) {
		return changed, false
	}
	return changed, true
}

func (c *dominantBassMotion) Propagate(s *fd.Store) (bool, bool) {
	if !c.dominantEntailed(s) {
		return false, true
	}
	sd := s.Dom(c.State)
	if sd.Assigned() && sd.Value() == int(FirstInversion) {
		return c.applyOffset(s, 1)
	}
	if sd.Assigned() && sd.Value() == int(ThirdInversion) {
		return c.applyOffset(s, -1)
	}
	return false, true
}

// noTripleRepeat is constraint 12 for a position with a third chord to
// check against: equal neighbours must differ in state or quality, and
// three consecutive identical degrees are forbidden outright.
type noTripleRepeat struct {
	ChordA, ChordB, ChordC fd.Var
	StateA, StateB         fd.Var
	QualityA, QualityB     fd.Var
}

func (c *noTripleRepeat) Propagate(s *fd.Store) (bool, bool) {
	equal, _ := varsEqual(s, c.ChordA, c.ChordB)
	if !equal {
		return false, true
	}
	changed := false
	stateEq, stateNeq := varsEqual(s, c.StateA, c.StateB)
	qualEq, qualNeq := varsEqual(s, c.QualityA, c.QualityB)
	if stateEq && qualEq {
		return changed, false
	}
	if stateEq && !qualNeq && s.Dom(c.QualityA).Assigned() {
		nd, ch := s.Dom(c.QualityB).Remove(s.Dom(c.QualityA).Value())
		changed = changed || ch
		if !s.Prune(c.QualityB, nd) {
			return changed, false
		}
	}
	if qualEq && !stateNeq {
		if s.Dom(c.StateA).Assigned() {
			nd, ch := s.Dom(c.StateB).Remove(s.Dom(c.StateA).Value())
			changed = changed || ch
			if !s.Prune(c.StateB, nd) {
				return changed, false
			}
		}
	}
	// no triple: chord[i+2] != chord[i]
	cad := s.Dom(c.ChordA)
	if cad.Assigned() {
		nd, ch := s.Dom(c.ChordC).Remove(cad.Value())
		changed = changed || ch
		if !s.Prune(c.ChordC, nd) {
			return changed, false
		}
	}
	return changed, true
}

// noDoubleRepeat is constraint 12's pairwise half with no following
// position to apply the no-triple half against (the last adjacent pair of
// a section).
type noDoubleRepeat struct {
	ChordA, ChordB     fd.Var
	StateA, StateB     fd.Var
	QualityA, QualityB fd.Var
}

func (c *noDoubleRepeat) Propagate(s *fd.Store) (bool, bool) {
	equal, _ := varsEqual(s, c.ChordA, c.ChordB)
	if !equal {
		return false, true
	}
	changed := false
	stateEq, stateNeq := varsEqual(s, c.StateA, c.StateB)
	qualEq, qualNeq := varsEqual(s, c.QualityA, c.QualityB)
	if stateEq && !qualNeq && s.Dom(c.QualityA).Assigned() {
		nd, ch := s.Dom(c.QualityB).Remove(s.Dom(c.QualityA).Value())
		changed = changed || ch
		if !s.Prune(c.QualityB, nd) {
			return changed, false
		}
	}
	if qualEq && !stateNeq && s.Dom(c.StateA).Assigned() {
		nd, ch := s.Dom(c.StateB).Remove(s.Dom(c.StateA).Value())
		changed = changed || ch
		if !s.Prune(c.StateB, nd) {
			return changed, false
		}
	}
	return changed, true
}

// seventhPreparation is constraint 14: the seventh of a non-dominant seventh
// chord on a degree from I to VII must have been present as a chord tone in the previous sonority.
type seventhPreparation struct {
	HasSeventh, Quality, Chord, Seventh fd.Var
	PrevRoot, PrevThird, PrevFifth       fd.Var
}

func (c *seventhPreparation) Propagate(s *fd.Store) (bool, bool) {
	hd := s.Dom(c.HasSeventh)
	if !(hd.Assigned() && hd.Value() == 1) {
		return false, true
	}
	if !fd.Neq(c.Quality, int(Dominant7)).Entailed(s) {
		return false, true
	}
	if !fd.Leq(c.Chord, int(VII)).Entailed(s) {
		return false, true
	}
	allowed := map[int]bool{}
	for _, v := range s.Dom(c.PrevRoot).Values() {
		allowed[v] = true
	}
	for _, v := range s.Dom(c.PrevThird).Values() {
		allowed[v] = true
	}
	for _, v := range s.Dom(c.PrevFifth).Values() {
		allowed[v] = true
	}
	nd, changed := s.Dom(c.Seventh).KeepOnly(allowed)
	if !s.Prune(c.Seventh, nd) {
		return changed, false
	}
	return changed, true
}
