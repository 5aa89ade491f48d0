package fd

// AllowedPairs is the binary "table constraint" / extensional constraint
// from spec §4.B: the pair (A, B) must be one of the rows the allow
// predicate accepts. It is how TRANSITIONS, STATES_ALLOWED and
// QUALITIES_MAJOR/MINOR are enforced: those are all "is this row/column
// combination legal" lookups, i.e. element constraints whose table is a
// boolean matrix rather than a value-producing function.
type AllowedPairs struct {
	A, B  Var
	Allow func(a, b int) bool
}

func (c *AllowedPairs) Propagate(s *Store) (bool, bool) {
	da, db := s.Dom(c.A), s.Dom(c.B)
	bVals := db.Values()
	changed := false

	keepA := map[int]bool{}
	for _, a := range da.Values() {
		for _, b := range bVals {
			if c.Allow(a, b) {
				keepA[a] = true
				break
			}
		}
	}
	nda, ch := da.KeepOnly(keepA)
	changed = changed || ch
	if !s.Prune(c.A, nda) {
		return changed, false
	}

	aVals := s.Dom(c.A).Values()
	keepB := map[int]bool{}
	for _, b := range bVals {
		for _, a := range aVals {
			if c.Allow(a, b) {
				keepB[b] = true
				break
			}
		}
	}
	ndb, ch2 := db.KeepOnly(keepB)
	changed = changed || ch2
	if !s.Prune(c.B, ndb) {
		return changed, false
	}
	return changed, true
}

// TableFunc1 is the element constraint "T[A] = R" for a single index
// variable: R must equal f(a) for some a still in A's domain, and A must
// be restricted to indices whose f(a) is still possible for R.
type TableFunc1 struct {
	A, R Var
	F    func(a int) int
}

func (c *TableFunc1) Propagate(s *Store) (bool, bool) {
	da, dr := s.Dom(c.A), s.Dom(c.R)
	changed := false

	keepA := map[int]bool{}
	possibleR := map[int]bool{}
	for _, a := range da.Values() {
		r := c.F(a)
		if dr.Contains(r) {
			keepA[a] = true
			possibleR[r] = true
		}
	}
	nda, ch := da.KeepOnly(keepA)
	changed = changed || ch
	if !s.Prune(c.A, nda) {
		return changed, false
	}
	ndr, ch2 := dr.KeepOnly(possibleR)
	changed = changed || ch2
	if !s.Prune(c.R, ndr) {
		return changed, false
	}
	return changed, true
}

// TableFunc2 is the two-index element constraint "T[A][B] = R", used for
// BASS_OF(degree, state) = bassDegree and similar functional lookups.
type TableFunc2 struct {
	A, B, R Var
	F       func(a, b int) int
}

func (c *TableFunc2) Propagate(s *Store) (bool, bool) {
	da, db, dr := s.Dom(c.A), s.Dom(c.B), s.Dom(c.R)
	changed := false

	keepA := map[int]bool{}
	keepB := map[int]bool{}
	possibleR := map[int]bool{}
	bVals := db.Values()
	for _, a := range da.Values() {
		for _, b := range bVals {
			r := c.F(a, b)
			if dr.Contains(r) {
				keepA[a] = true
				keepB[b] = true
				possibleR[r] = true
			}
		}
	}
	nda, ch := da.KeepOnly(keepA)
	changed = changed || ch
	if !s.Prune(c.A, nda) {
		return changed, false
	}
	ndb, ch2 := db.KeepOnly(keepB)
	changed = changed || ch2
	if !s.Prune(c.B, ndb) {
		return changed, false
	}
	ndr, ch3 := dr.KeepOnly(possibleR)
	changed = changed || ch3
	if !s.Prune(c.R, ndr) {
		return changed, false
	}
	return changed, true
}

// SumBool is the counting constraint "low <= sum(vars) <= high" over 0/1
// variables (spec §4.C constraints 8 and 9: chromatic- and seventh-chord
// counts per section).
type SumBool struct {
	Vars     []Var
	Low, High int
}

func (c *SumBool) Propagate(s *Store) (bool, bool) {
	fixedOnes, maybeOnes := 0, 0
	var unassigned []Var
	for _, v := range c.Vars {
		d := s.Dom(v)
		if d.Assigned() {
			if d.Value() == 1 {
				fixedOnes++
				maybeOnes++
			}
		} else {
			maybeOnes++
			unassigned = append(unassigned, v)
		}
	}
	if maybeOnes < c.Low || fixedOnes > c.High {
		return false, false
	}
	changed := false
	if maybeOnes == c.Low {
		for _, v := range unassigned {
			nd, ch := s.Dom(v).Fix(1)
			changed = changed || ch
			if !s.Prune(v, nd) {
				return changed, false
			}
		}
	} else if fixedOnes == c.High {
		for _, v := range unassigned {
			nd, ch := s.Dom(v).Fix(0)
			changed = changed || ch
			if !s.Prune(v, nd) {
				return changed, false
			}
		}
	}
	return changed, true
}
