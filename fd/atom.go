package fd

// CompOp is a comparison a reified or half-reified constraint can test or
// enforce against a variable's domain.
type CompOp int

const (
	OpEq CompOp = iota
	OpNeq
	OpGeq
	OpLeq
	OpGt
	OpLt
)

// Atom is a single relational proposition over one variable: "V op Val".
// It is the unit the Implies and Reif propagators reason about, in place
// of a general boolean-expression evaluator: spec-level conditions like
// "chord[i] >= V/II" or "state[i] = fundamental" are each one Atom.
type Atom struct {
	V   Var
	Op  CompOp
	Val int
}

func Eq(v Var, val int) Atom  { return Atom{v, OpEq, val} }
func Neq(v Var, val int) Atom { return Atom{v, OpNeq, val} }
func Geq(v Var, val int) Atom { return Atom{v, OpGeq, val} }
func Leq(v Var, val int) Atom { return Atom{v, OpLeq, val} }
func Gt(v Var, val int) Atom  { return Atom{v, OpGt, val} }
func Lt(v Var, val int) Atom  { return Atom{v, OpLt, val} }

// Entailed reports whether the atom is already guaranteed true by the
// variable's current domain.
func (a Atom) Entailed(s *Store) bool { return a.entailed(s) }

// Disentailed reports whether the atom can never hold given the variable's
// current domain.
func (a Atom) Disentailed(s *Store) bool { return a.disentailed(s) }

// entailed reports whether the atom is already guaranteed true by the
// variable's current domain.
func (a Atom) entailed(s *Store) bool {
	d := s.Dom(a.V)
	switch a.Op {
	case OpEq:
		return d.Assigned() && d.Value() == a.Val
	case OpNeq:
		return !d.Contains(a.Val)
	case OpGeq:
		return d.Min() >= a.Val
	case OpLeq:
		return d.Max() <= a.Val
	case OpGt:
		return d.Min() > a.Val
	case OpLt:
		return d.Max() < a.Val
	}
	return false
}

// disentailed reports whether the atom can never hold given the variable's
// current domain.
func (a Atom) disentailed(s *Store) bool {
	d := s.Dom(a.V)
	switch a.Op {
	case OpEq:
		return !d.Contains(a.Val)
	case OpNeq:
		return d.Assigned() && d.Value() == a.Val
	case OpGeq:
		return d.Max() < a.Val
	case OpLeq:
		return d.Min() > a.Val
	case OpGt:
		return d.Max() <= a.Val
	case OpLt:
		return d.Min() >= a.Val
	}
	return true
}

// enforce restricts the variable's domain so the atom holds, returning
// (changed, ok).
func (a Atom) enforce(s *Store) (bool, bool) {
	d := s.Dom(a.V)
	var nd Domain
	var changed bool
	switch a.Op {
	case OpEq:
		nd, changed = d.Fix(a.Val)
	case OpNeq:
		nd, changed = d.Remove(a.Val)
	case OpGeq:
		nd, changed = d.RestrictMin(a.Val)
	case OpLeq:
		nd, changed = d.RestrictMax(a.Val)
	case OpGt:
		nd, changed = d.RestrictMin(a.Val + 1)
	case OpLt:
		nd, changed = d.RestrictMax(a.Val - 1)
	default:
		return false, true
	}
	if changed {
		return true, s.Prune(a.V, nd)
	}
	return false, true
}

// Implies is the half-reification "P ⇒ Q" from spec §4.B: when every
// antecedent atom is entailed, every consequent atom is enforced. When any
// antecedent atom is disentailed the implication is vacuously satisfied.
// Otherwise nothing can be concluded yet and propagation is deferred to a
// later pass (once more of the antecedent's variables are bound).
type Implies struct {
	Ante []Atom
	Cons []Atom
}

func (c *Implies) Propagate(s *Store) (bool, bool) {
	for _, a := range c.Ante {
		if a.disentailed(s) {
			return false, true
		}
	}
	for _, a := range c.Ante {
		if !a.entailed(s) {
			return false, true
		}
	}
	changed := false
	for _, a := range c.Cons {
		ch, ok := a.enforce(s)
		changed = changed || ch
		if !ok {
			return changed, false
		}
	}
	return changed, true
}

// Reif is the full reification "B ⇔ P" from spec §4.B for a single atom
// P: if B is bound, P is enforced or negated; if P becomes entailed or
// disentailed, B is bound accordingly.
type Reif struct {
	B Var
	P Atom
}

func negate(a Atom) Atom {
	switch a.Op {
	case OpEq:
		return Neq(a.V, a.Val)
	case OpNeq:
		return Eq(a.V, a.Val)
	case OpGeq:
		return Lt(a.V, a.Val)
	case OpLeq:
		return Gt(a.V, a.Val)
	case OpGt:
		return Leq(a.V, a.Val)
	case OpLt:
		return Geq(a.V, a.Val)
	}
	return a
}

func (c *Reif) Propagate(s *Store) (bool, bool) {
	bd := s.Dom(c.B)
	changed := false
	if bd.Assigned() {
		var a Atom
		if bd.Value() == 1 {
			a = c.P
		} else {
			a = negate(c.P)
		}
		ch, ok := a.enforce(s)
		return changed || ch, ok
	}
	if c.P.entailed(s) {
		nd, ch := bd.Fix(1)
		changed = changed || ch
		return changed, s.Prune(c.B, nd)
	}
	if c.P.disentailed(s) {
		nd, ch := bd.Fix(0)
		changed = changed || ch
		return changed, s.Prune(c.B, nd)
	}
	return false, true
}
