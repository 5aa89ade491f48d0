package fd

import (
	"math/rand"
	"time"
)

// ValueOrder selects which value of a chosen variable's domain to try
// first during branching.
type ValueOrder int

const (
	// ValueMin tries the smallest remaining value first.
	ValueMin ValueOrder = iota
	// ValueRandom tries values in an order shuffled by the search's seeded
	// random source, for reproducibility given a fixed seed.
	ValueRandom
)

// BranchGroup is one stage of the labelling strategy: a pool of variables
// branched together, smallest-remaining-domain first, until every variable
// in the pool is assigned, before the next group is considered. Spec §4.E's
// branching is three such groups in order: chord degrees, then states,
// then qualities.
type BranchGroup struct {
	Name  string
	Vars  []Var
	Order ValueOrder
}

// Status is the outcome of a search.
type Status int

const (
	Solved Status = iota
	NoSolution
	TimedOut
)

// Solve runs a depth-first search over root using the given branching
// groups, returning the first complete, constraint-satisfying store found.
// If deadline is the zero Time, the search runs until exhaustion.
func Solve(root *Store, groups []BranchGroup, seed int64, deadline time.Time) (*Store, Status) {
	if !root.Propagate() {
		return nil, NoSolution
	}
	rng := rand.New(rand.NewSource(seed))
	return search(root, groups, 0, rng, deadline)
}

func search(s *Store, groups []BranchGroup, groupIdx int, rng *rand.Rand, deadline time.Time) (*Store, Status) {
	if !deadline.IsZero() && time.Now().After(deadline) {
		return nil, TimedOut
	}
	if groupIdx >= len(groups) {
		return s, Solved
	}
	group := groups[groupIdx]
	v, ok := pickVar(s, group.Vars)
	if !ok {
		return search(s, groups, groupIdx+1, rng, deadline)
	}

	values := orderValues(s.Dom(v), group.Order, rng)
	for _, val := range values {
		child := s.Clone()
		nd, _ := child.Dom(v).Fix(val)
		if !child.Prune(v, nd) {
			continue
		}
		if !child.Propagate() {
			continue
		}
		result, status := search(child, groups, groupIdx, rng, deadline)
		switch status {
		case Solved:
			return result, Solved
		case TimedOut:
			return nil, TimedOut
		}
	}
	return nil, NoSolution
}

// pickVar selects the unassigned variable with the smallest remaining
// domain (ties broken by position), the "smallest remaining domain first"
// strategy spec §4.E names for every branch group.
func pickVar(s *Store, vars []Var) (Var, bool) {
	best := Var(-1)
	bestSize := maxDomainWidth + 1
	for _, v := range vars {
		d := s.Dom(v)
		if d.Assigned() {
			continue
		}
		if d.Size() < bestSize {
			best = v
			bestSize = d.Size()
		}
	}
	if best == -1 {
		return 0, false
	}
	return best, true
}

func orderValues(d Domain, order ValueOrder, rng *rand.Rand) []int {
	values := d.Values()
	if order == ValueRandom {
		rng.Shuffle(len(values), func(i, j int) {
			values[i], values[j] = values[j], values[i]
		})
	}
	return values
}
