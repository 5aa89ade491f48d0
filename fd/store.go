package fd

import "fmt"

// Var is a handle to a variable's domain inside a Store. It is a plain
// integer index, not a pointer, so that variable arrays (and slices of
// them, i.e. "views") are ordinary Go slices that share storage the same
// way the underlying domains are shared.
type Var int

// Store owns every variable's domain and the constraints posted against
// them. Posting a constraint may immediately prune domains via Propagate;
// failure to post (an empty domain) is surfaced to the caller so the
// search engine can backtrack.
type Store struct {
	names       []string
	doms        []Domain
	constraints []Constraint
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{}
}

// NewVar creates a variable with the given inclusive domain bounds.
func (s *Store) NewVar(name string, lo, hi int) Var {
	s.names = append(s.names, name)
	s.doms = append(s.doms, Full(lo, hi))
	return Var(len(s.doms) - 1)
}

// NewVars creates n fresh variables sharing the same bounds.
func (s *Store) NewVars(name string, n, lo, hi int) []Var {
	vars := make([]Var, n)
	for i := 0; i < n; i++ {
		vars[i] = s.NewVar(fmt.Sprintf("%s[%d]", name, i), lo, hi)
	}
	return vars
}

// NewBoolVar creates a 0/1 variable.
func (s *Store) NewBoolVar(name string) Var { return s.NewVar(name, 0, 1) }

// Dom returns the current domain of v.
func (s *Store) Dom(v Var) Domain { return s.doms[v] }

// Name returns the variable's debug name.
func (s *Store) Name(v Var) string { return s.names[v] }

// Prune replaces v's domain, returning false if the new domain is empty.
func (s *Store) Prune(v Var, nd Domain) bool {
	s.doms[v] = nd
	return !nd.Empty()
}

// Assigned reports whether every tracked variable has a singleton domain.
func (s *Store) Assigned(vars []Var) bool {
	for _, v := range vars {
		if !s.doms[v].Assigned() {
			return false
		}
	}
	return true
}

// Value returns the bound value of v. Panics if unassigned.
func (s *Store) Value(v Var) int { return s.doms[v].Value() }

// Post registers a constraint and immediately runs it once. It reports
// false if that first run already empties a domain.
func (s *Store) Post(c Constraint) bool {
	s.constraints = append(s.constraints, c)
	_, ok := c.Propagate(s)
	return ok
}

// Propagate runs every posted constraint to a fixpoint: repeatedly sweeping
// the constraint list until a full pass makes no further change. It returns
// false as soon as any constraint reports an empty domain.
func (s *Store) Propagate() bool {
	for {
		anyChange := false
		for _, c := range s.constraints {
			changed, ok := c.Propagate(s)
			if !ok {
				return false
			}
			anyChange = anyChange || changed
		}
		if !anyChange {
			return true
		}
	}
}

// Clone performs the "space clone" the search engine takes at every choice
// point: a fresh copy of mutable domain state, sharing the (read-only,
// Var-id-addressed) constraint list.
func (s *Store) Clone() *Store {
	doms := make([]Domain, len(s.doms))
	copy(doms, s.doms)
	return &Store{
		names:       s.names,
		doms:        doms,
		constraints: s.constraints,
	}
}

// Constraint is anything that can prune domains. Propagate must be
// idempotent: calling it again on an already-stable store should report
// changed=false.
type Constraint interface {
	Propagate(s *Store) (changed bool, ok bool)
}
