// Package theory supplies the music-theory primitives the harmonic core
// treats as an external collaborator (spec §6): pitch-class arithmetic and
// a Tonality handle exposing degree_note/chord_quality/mode/tonic/name.
// It is adapted from the teacher's key-parsing and pitch-class helpers
// (ParseKey, NoteToMidi) and from the degree-stepping arithmetic in
// jhump-chords' notes.go/scales.go.
package theory

import (
	"fmt"
	"strings"

	"harmonium/harmony"
)

// NoteNames is the sharp spelling of the twelve pitch classes, C=0.
var NoteNames = []string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

// NoteToMidi converts a note name ("C", "F#", "Bb", ...) to a pitch class
// 0..11. Unrecognized input defaults to C, matching the teacher's
// permissive parser.
func NoteToMidi(note string) int {
	note = strings.TrimSpace(note)
	if note == "" {
		return 0
	}
	noteMap := map[string]int{
		"C": 0, "C#": 1, "Db": 1,
		"D": 2, "D#": 3, "Eb": 3,
		"E": 4, "Fb": 4, "E#": 5,
		"F": 5, "F#": 6, "Gb": 6,
		"G": 7, "G#": 8, "Ab": 8,
		"A": 9, "A#": 10, "Bb": 10,
		"B": 11, "Cb": 11, "B#": 0,
	}
	if midi, ok := noteMap[note]; ok {
		return midi
	}
	base := strings.ToUpper(string(note[0]))
	if len(note) >= 2 {
		accidental := string(note[1])
		if accidental == "#" || accidental == "b" {
			if midi, ok := noteMap[base+accidental]; ok {
				return midi
			}
		}
	}
	if midi, ok := noteMap[base]; ok {
		return midi
	}
	return 0
}

// ParseKey parses a key name ("Am", "Bb", "F# minor", "c major") into a
// tonic pitch class and mode, the same relaxed grammar the teacher's BTML
// track files used for a track's key.
func ParseKey(keyStr string) (root int, mode harmony.Mode) {
	keyStr = strings.TrimSpace(keyStr)
	if keyStr == "" {
		return 0, harmony.MajorMode
	}
	lower := strings.ToLower(keyStr)
	isMinor := strings.Contains(lower, "minor") || strings.Contains(lower, "min") ||
		(strings.HasSuffix(lower, "m") && !strings.HasSuffix(lower, "maj") && !strings.Contains(lower, "major"))

	rootStr := keyStr
	for _, suffix := range []string{" major", " minor", " maj", " min", "major", "minor", "maj", "min"} {
		if idx := strings.Index(lower, strings.ToLower(suffix)); idx >= 0 {
			rootStr = keyStr[:idx]
			break
		}
	}
	if isMinor && strings.HasSuffix(rootStr, "m") && len(rootStr) > 1 {
		rootStr = rootStr[:len(rootStr)-1]
	}

	root = NoteToMidi(strings.TrimSpace(rootStr))
	if isMinor {
		return root, harmony.MinorMode
	}
	return root, harmony.MajorMode
}

// majorIntervals/harmonicMinorIntervals are semitone offsets from the tonic
// for the seven diatonic scale degrees (index 0 = I ... index 6 = VII).
// Minor uses the harmonic form so that V naturally carries a raised
// leading tone, matching the major/minor quality tables in harmony.
var majorIntervals = [7]int{0, 2, 4, 5, 7, 9, 11}
var harmonicMinorIntervals = [7]int{0, 2, 3, 5, 7, 8, 11}

// plainDegreeIndex maps the degrees that are ordinary scale steps to the
// 0..6 index into the interval tables above. V/X degrees and the purely
// chromatic degrees (bII, 6te_a) are handled separately in DegreeNote.
var plainDegreeIndex = map[harmony.Degree]int{
	harmony.I: 0, harmony.II: 1, harmony.III: 2, harmony.IV: 3,
	harmony.V: 4, harmony.VI: 5, harmony.VII: 6,
}

// secondaryDominantTarget maps each V/X degree to the plain degree X it
// tonicizes.
var secondaryDominantTarget = map[harmony.Degree]harmony.Degree{
	harmony.VofII: harmony.II, harmony.VofIII: harmony.III, harmony.VofIV: harmony.IV,
	harmony.VofV: harmony.V, harmony.VofVI: harmony.VI, harmony.VofVII: harmony.VII,
}

// Tonality is the consumed collaborator of spec §6.
type Tonality struct {
	root int
	mode harmony.Mode
	name string
}

// New builds a Tonality from a tonic pitch class and mode.
func New(root int, mode harmony.Mode, name string) *Tonality {
	return &Tonality{root: ((root % 12) + 12) % 12, mode: mode, name: name}
}

// Parse builds a Tonality from a key name such as "C major" or "a minor".
func Parse(keyStr string) *Tonality {
	root, mode := ParseKey(keyStr)
	name := fmt.Sprintf("%s %s", NoteNames[root], mode)
	return New(root, mode, name)
}

func (t *Tonality) Mode() harmony.Mode { return t.mode }
func (t *Tonality) Tonic() int         { return t.root }
func (t *Tonality) Name() string       { return t.name }

// DegreeNote returns the root pitch class (0..11) of the chord built on the
// given degree within this key.
func (t *Tonality) DegreeNote(d harmony.Degree) int {
	intervals := majorIntervals
	if t.mode == harmony.MinorMode {
		intervals = harmonicMinorIntervals
	}
	switch d {
	case harmony.Vda:
		return t.root
	case harmony.BII:
		return (t.root + 1) % 12
	case harmony.Aug6:
		return (t.root + 8) % 12
	}
	if target, ok := secondaryDominantTarget[d]; ok {
		targetNote := t.root + intervals[plainDegreeIndex[target]]
		return (targetNote + 7) % 12
	}
	if idx, ok := plainDegreeIndex[d]; ok {
		return (t.root + intervals[idx]) % 12
	}
	return t.root
}

// ChordQuality returns the "default" quality a chord on this degree would
// take absent any other constraint: the first quality the degree/mode
// table admits. The only solver constraint that reads it is the
// ALTERATION modulation's altered-note check, which compares it against
// the new key's chord; spec §6 names chord_quality as part of the
// consumed Tonality contract.
func (t *Tonality) ChordQuality(d harmony.Degree) harmony.Quality {
	for q := harmony.Quality(0); q < harmony.NQualities; q++ {
		if harmony.QualitiesAllowed(t.mode, d, q) {
			return q
		}
	}
	return harmony.Major
}
