package solution

import (
	"testing"

	"harmonium/harmony"

	"github.com/stretchr/testify/assert"
)

func sample() *Piece {
	return &Piece{
		Length: 2,
		Positions: []Position{
			{State: harmony.Fundamental, Quality: harmony.Major, RootNote: 0, HasSeventh: false},
			{State: harmony.Fundamental, Quality: harmony.Dominant7, RootNote: 7, HasSeventh: true},
		},
		Sections: []Section{
			{Start: 0, Duration: 2, TonalityName: "C major", Chord: []harmony.Degree{harmony.I, harmony.V}},
		},
		Modulations: []Modulation{
			{Kind: harmony.PerfectCadence, Start: 0, End: 1, FromName: "C major", ToName: "G major"},
		},
	}
}

func TestStringDumpsOnePositionPerLine(t *testing.T) {
	out := sample().String()
	assert.Contains(t, out, "[0] state=fund quality=M root=0 seventh=false")
	assert.Contains(t, out, "[1] state=fund quality=7 root=7 seventh=true")
}

func TestPrettyRendersDegreeNamesAndModulations(t *testing.T) {
	out := sample().Pretty()
	assert.Contains(t, out, "C major: I V")
	assert.Contains(t, out, "from C major to G major (Perfect Cadence)")
}
