package fd

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAtomEntailment(t *testing.T) {
	s := NewStore()
	v := s.NewVar("v", 0, 5)

	assert.False(t, Eq(v, 3).Entailed(s))
	assert.False(t, Eq(v, 3).Disentailed(s))

	s.Prune(v, Singleton(3))
	assert.True(t, Eq(v, 3).Entailed(s))
	assert.True(t, Neq(v, 4).Entailed(s))
	assert.True(t, Eq(v, 4).Disentailed(s))
}

func TestImpliesDefersUntilAntecedentKnown(t *testing.T) {
	s := NewStore()
	a := s.NewVar("a", 0, 1)
	b := s.NewVar("b", 0, 5)

	c := &Implies{Ante: []Atom{Eq(a, 1)}, Cons: []Atom{Geq(b, 3)}}
	ok := s.Post(c)
	assert.True(t, ok)
	assert.Equal(t, 0, s.Dom(b).Min(), "consequent not yet enforced while antecedent undetermined")

	s.Prune(a, Singleton(1))
	assert.True(t, s.Propagate())
	assert.Equal(t, 3, s.Dom(b).Min())
}

func TestImpliesVacuousWhenAntecedentFalse(t *testing.T) {
	s := NewStore()
	a := s.NewVar("a", 0, 1)
	b := s.NewVar("b", 0, 5)

	c := &Implies{Ante: []Atom{Eq(a, 1)}, Cons: []Atom{Eq(b, 0)}}
	s.Post(c)

	s.Prune(a, Singleton(0))
	assert.True(t, s.Propagate())
	assert.Equal(t, 6, s.Dom(b).Size(), "vacuous implication leaves consequent untouched")
}

func TestReifBindsBoolFromAtom(t *testing.T) {
	s := NewStore()
	v := s.NewVar("v", 0, 5)
	b := s.NewBoolVar("b")

	s.Post(&Reif{B: b, P: Eq(v, 2)})

	s.Prune(v, Singleton(2))
	assert.True(t, s.Propagate())
	assert.Equal(t, 1, s.Value(b))
}

func TestReifEnforcesAtomFromBool(t *testing.T) {
	s := NewStore()
	v := s.NewVar("v", 0, 5)
	b := s.NewBoolVar("b")

	s.Post(&Reif{B: b, P: Eq(v, 2)})

	s.Prune(b, Singleton(0))
	assert.True(t, s.Propagate())
	assert.False(t, s.Dom(v).Contains(2))
}
