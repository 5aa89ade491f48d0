package fd

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFullDomain(t *testing.T) {
	d := Full(2, 5)
	assert.Equal(t, 4, d.Size())
	assert.Equal(t, 2, d.Min())
	assert.Equal(t, 5, d.Max())
	assert.True(t, d.Contains(3))
	assert.False(t, d.Contains(6))
}

func TestSingletonDomain(t *testing.T) {
	d := Singleton(7)
	assert.True(t, d.Assigned())
	assert.Equal(t, 7, d.Value())
}

func TestDomainRemove(t *testing.T) {
	d := Full(0, 3)
	nd, changed := d.Remove(1)
	assert.True(t, changed)
	assert.False(t, nd.Contains(1))
	assert.Equal(t, 3, nd.Size())

	_, changed = nd.Remove(1)
	assert.False(t, changed, "removing an already-absent value reports no change")
}

func TestDomainFix(t *testing.T) {
	d := Full(0, 5)
	nd, changed := d.Fix(3)
	assert.True(t, changed)
	assert.True(t, nd.Assigned())
	assert.Equal(t, 3, nd.Value())

	empty, changed := d.Fix(9)
	assert.True(t, changed)
	assert.True(t, empty.Empty())
}

func TestDomainRestrictMinMax(t *testing.T) {
	d := Full(0, 9)
	nd, changed := d.RestrictMin(4)
	assert.True(t, changed)
	assert.Equal(t, 4, nd.Min())

	nd, changed = nd.RestrictMax(6)
	assert.True(t, changed)
	assert.Equal(t, 6, nd.Max())
	assert.Equal(t, 3, nd.Size())
}

func TestDomainKeepOnly(t *testing.T) {
	d := Full(0, 5)
	nd, changed := d.KeepOnly(map[int]bool{1: true, 3: true})
	assert.True(t, changed)
	assert.Equal(t, []int{1, 3}, nd.Values())
}
