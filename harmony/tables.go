package harmony

// These tables are the entire "theory" the constraint layer consumes. They
// are transcribed from the tonalTransitions / degreeStates / majorDegreeQualities
// / minorDegreeQualities / bassBasedOnDegreeAndState matrices of the original
// chord-generator (ChordGeneratorUtilities.hpp), in the same row order: I,
// II, III, IV, V, VI, VII, Vda, V/II, V/III, V/IV, V/V, V/VI, V/VII, bII,
// 6te_a. The ninth-chord columns (maj9-dom, min9-dom) are an extension the
// original left as a "todo add 9th etc"; here both ninth qualities are
// admitted on V only, in either mode.

// Transitions[a][b] is true iff degree a may be immediately followed by
// degree b. Encodes: ordinary degree succession, resolution of tension
// chords (V, V/x, VIId), "reachable to V" implies "reachable to Vda", and
// "reachable to X" implies "reachable to V/X".
var Transitions = [NChords][NChords]bool{
	I:      {I: true, II: true, III: true, IV: true, V: true, VI: true, VII: true, VofII: true, VofIII: true, VofIV: true, VofV: true, VofVI: true, VofVII: true, BII: true, Aug6: true},
	II:     {I: true, II: true, IV: true, V: true, Vda: true, VofIV: true, VofV: true},
	III:    {VI: true, VofVI: true},
	IV:     {I: true, II: true, IV: true, V: true, VII: true, Vda: true, VofII: true, VofV: true, VofVII: true, BII: true, Aug6: true},
	V:      {I: true, IV: true, V: true, VI: true, VofIV: true, VofVI: true},
	VI:     {II: true, IV: true, V: true, Vda: true, VofII: true, VofIV: true, VofV: true, BII: true, Aug6: true},
	VII:    {I: true, III: true, VofIII: true},
	Vda:    {V: true},
	VofII:  {II: true, VofV: true},
	VofIII: {III: true, VofVI: true},
	VofIV:  {IV: true, VofVII: true},
	VofV:   {V: true, Vda: true},
	VofVI:  {VI: true, VofII: true},
	VofVII: {VII: true, VofIII: true},
	BII:    {V: true, Vda: true},
	Aug6:   {V: true, Vda: true},
}

// StatesAllowed reports whether degree d may take inversion s. The original
// source notes minor-mode state rules were never confirmed ("probably also
// good for minor chords, to check") so StatesAllowed is exposed as a
// function of mode rather than a bare table, even though both modes
// currently share content — see DESIGN.md.
func StatesAllowed(mode Mode, d Degree, s State) bool {
	_ = mode
	return statesAllowedTable[d][s]
}

var statesAllowedTable = [NChords][NStates]bool{
	I:      {Fundamental: true, FirstInversion: true},
	II:     {Fundamental: true, FirstInversion: true},
	III:    {Fundamental: true},
	IV:     {Fundamental: true, FirstInversion: true},
	V:      {Fundamental: true, FirstInversion: true, SecondInversion: true, ThirdInversion: true},
	VI:     {Fundamental: true},
	VII:    {Fundamental: true, FirstInversion: true, SecondInversion: true},
	Vda:    {SecondInversion: true},
	VofII:  {Fundamental: true, FirstInversion: true, SecondInversion: true, ThirdInversion: true},
	VofIII: {Fundamental: true, FirstInversion: true, SecondInversion: true, ThirdInversion: true},
	VofIV:  {Fundamental: true, FirstInversion: true, SecondInversion: true, ThirdInversion: true},
	VofV:   {Fundamental: true, FirstInversion: true, SecondInversion: true, ThirdInversion: true},
	VofVI:  {Fundamental: true, FirstInversion: true, SecondInversion: true, ThirdInversion: true},
	VofVII: {Fundamental: true, FirstInversion: true, SecondInversion: true, ThirdInversion: true},
	BII:    {Fundamental: true, FirstInversion: true},
	Aug6:   {Fundamental: true},
}

// QualitiesAllowed reports whether degree d may take quality q in the given
// mode.
func QualitiesAllowed(mode Mode, d Degree, q Quality) bool {
	if mode == MinorMode {
		return minorQualitiesTable[d][q]
	}
	return majorQualitiesTable[d][q]
}

var majorQualitiesTable = [NChords][NQualities]bool{
	I:      {Major: true, Major7: true},
	II:     {Minor: true, Minor7: true},
	III:    {Minor: true, Minor7: true},
	IV:     {Major: true, Major7: true},
	V:      {Major: true, Dominant7: true, Diminished7: true, MajorNinthDominant: true, MinorNinthDominant: true},
	VI:     {Minor: true, Minor7: true},
	VII:    {Diminished: true, HalfDiminished7: true},
	Vda:    {Major: true},
	VofII:  {Major: true, Dominant7: true, Diminished7: true},
	VofIII: {Major: true, Dominant7: true, Diminished7: true},
	VofIV:  {Major: true, Dominant7: true, Diminished7: true},
	VofV:   {Major: true, Dominant7: true, Diminished7: true},
	VofVI:  {Major: true, Dominant7: true, Diminished7: true},
	VofVII: {Major: true, Dominant7: true, Diminished7: true},
	BII:    {Major: true},
	Aug6:   {AugmentedSixth: true},
}

var minorQualitiesTable = [NChords][NQualities]bool{
	I:      {Minor: true, Minor7: true},
	II:     {Diminished: true, HalfDiminished7: true},
	III:    {Major: true, Augmented: true, Major7: true},
	IV:     {Minor: true, Minor7: true},
	V:      {Major: true, Minor: true, Dominant7: true, Diminished7: true, MajorNinthDominant: true, MinorNinthDominant: true},
	VI:     {Major: true, Major7: true},
	VII:    {Major: true, Diminished: true, Diminished7: true},
	Vda:    {Minor: true},
	VofII:  {Major: true, Dominant7: true, Diminished7: true},
	VofIII: {Major: true, Dominant7: true, Diminished7: true},
	VofIV:  {Major: true, Dominant7: true, Diminished7: true},
	VofV:   {Major: true, Dominant7: true, Diminished7: true},
	VofVI:  {Major: true, Dominant7: true, Diminished7: true},
	VofVII: {Major: true, Dominant7: true, Diminished7: true},
	BII:    {Major: true},
	Aug6:   {AugmentedSixth: true},
}

// QualityToTriad is the fixed projection of a full quality onto its
// underlying triad family.
var QualityToTriad = [NQualities]TriadQuality{
	Major:              TriadMajor,
	Minor:              TriadMinor,
	Diminished:         TriadDiminished,
	Augmented:          TriadAugmented,
	AugmentedSixth:     TriadAugmented,
	Dominant7:          TriadMajor,
	Major7:             TriadMajor,
	Minor7:             TriadMinor,
	Diminished7:        TriadDiminished,
	HalfDiminished7:    TriadDiminished,
	MinorMajor7:        TriadMinor,
	MajorNinthDominant: TriadMajor,
	MinorNinthDominant: TriadMajor,
}

// BassOf is the scale degree (0..6) sounding in the bass for (degree, state).
// Every degree follows the ordinary stacked-third pattern (root, third,
// fifth, seventh, ninth above the chord's own root scale-degree) except
// 6te_a, the augmented sixth, which is not a tertian sonority: its row does
// not follow that pattern, and its fundamental-state bass (the only state
// statesAllowedTable admits for it) is the flattened sixth scale degree.
var BassOf = [NChords][NStates]int{
	I:      {0, 2, 4, 6, 1},
	II:     {1, 3, 5, 0, 2},
	III:    {2, 4, 6, 1, 3},
	IV:     {3, 5, 0, 2, 4},
	V:      {4, 6, 1, 3, 5},
	VI:     {5, 0, 2, 4, 6},
	VII:    {6, 1, 3, 5, 0},
	Vda:    {0, 2, 4, 6, 1},
	VofII:  {5, 0, 2, 4, 6},
	VofIII: {6, 1, 3, 5, 0},
	VofIV:  {0, 2, 4, 6, 1},
	VofV:   {1, 3, 5, 0, 2},
	VofVI:  {2, 4, 6, 1, 3},
	VofVII: {3, 5, 0, 2, 4},
	BII:    {1, 3, 5, 0, 2},
	Aug6:   {5, 0, 2, 3, 1},
}
