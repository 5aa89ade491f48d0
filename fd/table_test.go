package fd

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAllowedPairsPrunesBothSides(t *testing.T) {
	s := NewStore()
	a := s.NewVar("a", 0, 3)
	b := s.NewVar("b", 0, 3)

	allow := func(a, b int) bool { return a+b == 3 }
	s.Post(&AllowedPairs{A: a, B: b, Allow: allow})

	s.Prune(a, Full(0, 1))
	assert.True(t, s.Propagate())
	assert.Equal(t, []int{2, 3}, s.Dom(b).Values())
}

func TestTableFunc1(t *testing.T) {
	s := NewStore()
	a := s.NewVar("a", 0, 3)
	r := s.NewVar("r", 0, 10)

	square := func(a int) int { return a * a }
	s.Post(&TableFunc1{A: a, R: r, F: square})

	s.Prune(r, Full(0, 4))
	assert.True(t, s.Propagate())
	assert.Equal(t, []int{0, 1, 2}, s.Dom(a).Values(), "only a in {0,1,2} square to <= 4")
}

func TestTableFunc2(t *testing.T) {
	s := NewStore()
	a := s.NewVar("a", 0, 2)
	b := s.NewVar("b", 0, 2)
	r := s.NewVar("r", 0, 10)

	sum := func(a, b int) int { return a + b }
	s.Post(&TableFunc2{A: a, B: b, R: r, F: sum})

	s.Prune(r, Singleton(4))
	assert.True(t, s.Propagate())
	assert.Equal(t, []int{2}, s.Dom(a).Values())
	assert.Equal(t, []int{2}, s.Dom(b).Values())
}

func TestSumBoolForcesRemainingWhenAtLow(t *testing.T) {
	s := NewStore()
	vars := s.NewVars("v", 3, 0, 1)
	s.Post(&SumBool{Vars: vars, Low: 2, High: 3})

	s.Prune(vars[0], Singleton(0))
	assert.True(t, s.Propagate())
	assert.Equal(t, 1, s.Value(vars[1]))
	assert.Equal(t, 1, s.Value(vars[2]))
}

func TestSumBoolForcesZeroWhenAtHigh(t *testing.T) {
	s := NewStore()
	vars := s.NewVars("v", 3, 0, 1)
	s.Post(&SumBool{Vars: vars, Low: 0, High: 1})

	s.Prune(vars[0], Singleton(1))
	assert.True(t, s.Propagate())
	assert.Equal(t, 0, s.Value(vars[1]))
	assert.Equal(t, 0, s.Value(vars[2]))
}

func TestSumBoolFailsWhenUnreachable(t *testing.T) {
	s := NewStore()
	vars := s.NewVars("v", 2, 0, 1)
	c := &SumBool{Vars: vars, Low: 2, High: 2}
	s.Prune(vars[0], Singleton(0))
	_, ok := c.Propagate(s)
	assert.False(t, ok)
}
