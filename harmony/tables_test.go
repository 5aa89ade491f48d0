package harmony

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDegreeStringNames(t *testing.T) {
	assert.Equal(t, "I", I.String())
	assert.Equal(t, "V/II", VofII.String())
	assert.Equal(t, "bII", BII.String())
	assert.Equal(t, "?", Degree(-1).String())
}

func TestTransitionsTableEncodesDegreeSuccession(t *testing.T) {
	assert.True(t, Transitions[I][V], "I can move to V")
	assert.True(t, Transitions[V][I], "V can resolve to I")
	assert.False(t, Transitions[III][I], "III does not transition directly to I")
	assert.True(t, Transitions[Vda][V], "Vda must resolve to V")
}

func TestStatesAllowedVdaOnlySecondInversion(t *testing.T) {
	assert.True(t, StatesAllowed(MajorMode, Vda, SecondInversion))
	assert.False(t, StatesAllowed(MajorMode, Vda, Fundamental))
}

func TestQualitiesAllowedDiffersByMode(t *testing.T) {
	assert.True(t, QualitiesAllowed(MajorMode, II, Minor))
	assert.False(t, QualitiesAllowed(MajorMode, II, Diminished))
	assert.True(t, QualitiesAllowed(MinorMode, II, Diminished))
	assert.False(t, QualitiesAllowed(MinorMode, II, Minor))
}

func TestQualityToTriadProjection(t *testing.T) {
	assert.Equal(t, TriadMajor, QualityToTriad[Dominant7])
	assert.Equal(t, TriadMinor, QualityToTriad[Minor7])
	assert.Equal(t, TriadDiminished, QualityToTriad[Diminished7])
}

func TestBassOfFollowsStackedThirds(t *testing.T) {
	assert.Equal(t, 0, BassOf[I][Fundamental])
	assert.Equal(t, 2, BassOf[I][FirstInversion])
	assert.Equal(t, 4, BassOf[I][SecondInversion])
}

func TestBassOfAugmentedSixthIsFlatSixth(t *testing.T) {
	assert.Equal(t, 5, BassOf[Aug6][Fundamental])
}
