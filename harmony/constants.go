// Package harmony encodes the rules of classical functional harmony: the
// static tables of what may follow what, and the constraint layers that
// turn those tables into a finite-domain search problem for one key area
// (ChordProgression) or one key change (Modulation).
package harmony

// Degree is the roman-numeral function of a chord inside a key.
type Degree int

const (
	I Degree = iota
	II
	III
	IV
	V
	VI
	VII
	Vda   // the "appoggiatura" degree: I in second inversion, resolving to V
	VofII // V/II, secondary dominant of ii
	VofIII
	VofIV
	VofV
	VofVI
	VofVII
	BII  // bII, Neapolitan sixth degree
	Aug6 // 6te_a, augmented sixth
	NChords
)

var degreeNames = [NChords]string{
	I: "I", II: "II", III: "III", IV: "IV", V: "V", VI: "VI", VII: "VII",
	Vda: "Vda", VofII: "V/II", VofIII: "V/III", VofIV: "V/IV", VofV: "V/V",
	VofVI: "V/VI", VofVII: "V/VII", BII: "bII", Aug6: "6te_a",
}

// String returns the conventional roman-numeral name of the degree.
func (d Degree) String() string {
	if d < 0 || int(d) >= len(degreeNames) {
		return "?"
	}
	return degreeNames[d]
}

// State is the chord inversion: which note sounds in the bass.
type State int

const (
	Fundamental State = iota
	FirstInversion
	SecondInversion
	ThirdInversion
	FourthInversion
	NStates
)

var stateNames = [NStates]string{
	Fundamental: "fund", FirstInversion: "1st", SecondInversion: "2nd",
	ThirdInversion: "3rd", FourthInversion: "4th",
}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return "?"
	}
	return stateNames[s]
}

// Quality is the triad/tetrad family of a chord.
type Quality int

const (
	Major Quality = iota
	Minor
	Diminished
	Augmented
	AugmentedSixth
	Dominant7
	Major7
	Minor7
	Diminished7
	HalfDiminished7
	MinorMajor7
	MajorNinthDominant
	MinorNinthDominant
	NQualities
)

var qualityNames = [NQualities]string{
	Major: "M", Minor: "m", Diminished: "dim", Augmented: "aug",
	AugmentedSixth: "aug6", Dominant7: "7", Major7: "M7", Minor7: "m7",
	Diminished7: "dim7", HalfDiminished7: "hdim7", MinorMajor7: "mM7",
	MajorNinthDominant: "9", MinorNinthDominant: "b9",
}

func (q Quality) String() string {
	if q < 0 || int(q) >= len(qualityNames) {
		return "?"
	}
	return qualityNames[q]
}

// TriadQuality is the quality projected down to its underlying triad family.
type TriadQuality int

const (
	TriadMajor TriadQuality = iota
	TriadMinor
	TriadDiminished
	TriadAugmented
	NTriadQualities
)

func (t TriadQuality) String() string {
	switch t {
	case TriadMajor:
		return "M"
	case TriadMinor:
		return "m"
	case TriadDiminished:
		return "dim"
	case TriadAugmented:
		return "aug"
	default:
		return "?"
	}
}

// ModulationKind names how a boundary between two key areas is handled.
type ModulationKind int

const (
	PerfectCadence ModulationKind = iota
	PivotChord
	Alteration
	SecondaryDominant
)

var modulationKindNames = [...]string{
	PerfectCadence: "Perfect Cadence", PivotChord: "Pivot Chord",
	Alteration: "Alteration", SecondaryDominant: "Secondary Dominant",
}

func (k ModulationKind) String() string {
	if k < 0 || int(k) >= len(modulationKindNames) {
		return "?"
	}
	return modulationKindNames[k]
}

// CadenceKind names a stereotyped two-chord closure.
type CadenceKind int

const (
	Perfect CadenceKind = iota
	Plagal
	Half
	Deceptive
	// CadenceUnknown marks a phrase end this core doesn't classify: only a
	// PERFECT_CADENCE modulation is directly observable from the constraint
	// model; plagal/half/deceptive closures need voice-leading context the
	// downstream realiser has and this core doesn't.
	CadenceUnknown
)

func (c CadenceKind) String() string {
	switch c {
	case Perfect:
		return "perfect"
	case Plagal:
		return "plagal"
	case Half:
		return "half"
	case Deceptive:
		return "deceptive"
	case CadenceUnknown:
		return "unknown"
	default:
		return "?"
	}
}

// Mode is the scale coloring of a tonality.
type Mode int

const (
	MajorMode Mode = iota
	MinorMode
)

func (m Mode) String() string {
	if m == MinorMode {
		return "minor"
	}
	return "major"
}
