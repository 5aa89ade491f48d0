// Package piece composes per-key-area ChordProgressions and per-boundary
// Modulations over one shared set of whole-progression variable arrays,
// derives section/phrase geometry from the modulation list, and drives
// the search for a first admissible labelling (spec components E and F).
package piece

import (
	"fmt"
	"time"

	"harmonium/fd"
	"harmonium/harmony"
	"harmonium/solution"
)

// SectionRequest describes one key area the caller wants in the piece.
type SectionRequest struct {
	Tonality                                  harmony.Tonality
	MinChromaticPercent, MaxChromaticPercent float64
	MinSeventhPercent, MaxSeventhPercent     float64
}

// ModulationRequest describes one boundary between two consecutive
// sections.
type ModulationRequest struct {
	Kind       harmony.ModulationKind
	Start, End int
}

// Request is the caller-supplied specification of a whole piece.
type Request struct {
	Length      int
	Sections    []SectionRequest
	Modulations []ModulationRequest
	Seed        int64
	Timeout     time.Duration // zero means no deadline
}

// Piece is the fully constructed constraint model: one shared variable
// arena, one ChordProgression per section, one Modulation per boundary,
// and the three-stage branching strategy of spec §4.E.
type Piece struct {
	store  *fd.Store
	length int
	seed   int64
	timeout time.Duration

	sectionStarts    []int
	sectionDurations []int
	phraseEnds       []int
	phraseCadences   []harmony.CadenceKind

	sections    []*harmony.ChordProgression
	modulations []*harmony.Modulation

	state, quality, qualityNoSeventh, rootNote, hasSeventh []fd.Var

	branching []fd.BranchGroup
}

// New validates req, derives section/phrase geometry, allocates the shared
// variable arena, builds each ChordProgression and Modulation, and posts
// branching. It returns a configuration error (spec §7) before any search
// is attempted.
func New(req Request) (*Piece, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	p := &Piece{store: fd.NewStore(), length: req.Length, seed: req.Seed, timeout: req.Timeout}
	p.deriveGeometry(req)

	p.state = p.store.NewVars("state", req.Length, int(harmony.Fundamental), int(harmony.NStates)-1)
	p.quality = p.store.NewVars("quality", req.Length, int(harmony.Major), int(harmony.NQualities)-1)
	p.qualityNoSeventh = p.store.NewVars("qualityNoSeventh", req.Length, int(harmony.TriadMajor), int(harmony.NTriadQualities)-1)
	p.rootNote = p.store.NewVars("rootNote", req.Length, 0, 11)
	p.hasSeventh = make([]fd.Var, req.Length)
	for i := range p.hasSeventh {
		p.hasSeventh[i] = p.store.NewBoolVar(fmt.Sprintf("hasSeventh[%d]", i))
	}

	for i, sec := range req.Sections {
		start, dur := p.sectionStarts[i], p.sectionDurations[i]
		minC := harmony.PercentToCount(sec.MinChromaticPercent, dur)
		maxC := harmony.PercentToCount(sec.MaxChromaticPercent, dur)
		minS := harmony.PercentToCount(sec.MinSeventhPercent, dur)
		maxS := harmony.PercentToCount(sec.MaxSeventhPercent, dur)
		cp := harmony.NewChordProgression(
			p.store, start, dur, sec.Tonality,
			p.state, p.quality, p.qualityNoSeventh, p.rootNote, p.hasSeventh,
			minC, maxC, minS, maxS,
		)
		p.sections = append(p.sections, cp)
	}

	for i, m := range req.Modulations {
		mod, err := harmony.NewModulation(m.Kind, m.Start, m.End, p.sections[i], p.sections[i+1])
		if err != nil {
			return nil, err
		}
		p.modulations = append(p.modulations, mod)
	}

	// spec §8 scenarios S1/F1: the piece's very last chord must end
	// diatonically (not VII) with no seventh, whatever precedes it. A
	// trailing PivotChord modulation whose window ends on the piece's last
	// chord already pins this via the perfect cadence postPivotChord posts
	// at the end of its window, so only post it here when nothing already did.
	if n := len(req.Modulations); n == 0 || req.Modulations[n-1].Kind != harmony.PivotChord || req.Modulations[n-1].End != req.Length-1 {
		last := p.sections[len(p.sections)-1]
		end := last.Duration - 1
		p.store.Post(&fd.Implies{Cons: []fd.Atom{
			fd.Leq(last.Chord[end], int(harmony.VI)), fd.Eq(last.HasSeventh[end], 0),
		}})
	}

	// constraint 17 (spec §4.C/§4.E): piece-wide triad projection.
	for i := 0; i < req.Length; i++ {
		qi, qni := p.quality[i], p.qualityNoSeventh[i]
		p.store.Post(&fd.TableFunc1{A: qi, R: qni, F: func(q int) int { return int(harmony.QualityToTriad[harmony.Quality(q)]) }})
	}

	p.postBranching()
	return p, nil
}

func (p *Piece) postBranching() {
	var allChords []fd.Var
	for _, sec := range p.sections {
		allChords = append(allChords, sec.Chord...)
	}
	p.branching = []fd.BranchGroup{
		{Name: "chords", Vars: allChords, Order: fd.ValueRandom},
		{Name: "states", Vars: p.state, Order: fd.ValueMin},
		{Name: "qualities", Vars: p.quality, Order: fd.ValueMin},
	}
}

// deriveGeometry computes sectionStarts/sectionDurations/phraseEnds per the
// formulas of spec §4.E.
func (p *Piece) deriveGeometry(req Request) {
	k := len(req.Sections)
	p.sectionStarts = make([]int, k)
	p.sectionDurations = make([]int, k)
	p.sectionStarts[0] = 0

	for i, m := range req.Modulations {
		var nextStart, prevDur int
		switch m.Kind {
		case harmony.PerfectCadence:
			nextStart = m.End + 1
			prevDur = m.End - p.sectionStarts[i] + 1
			p.phraseEnds = append(p.phraseEnds, m.End)
			p.phraseCadences = append(p.phraseCadences, harmony.Perfect)
		case harmony.PivotChord:
			nextStart = m.Start
			prevDur = m.End - 2 - p.sectionStarts[i] + 1
			p.phraseEnds = append(p.phraseEnds, m.Start-1)
			p.phraseCadences = append(p.phraseCadences, harmony.CadenceUnknown)
		case harmony.Alteration:
			nextStart = m.Start
			prevDur = m.Start - p.sectionStarts[i]
			p.phraseEnds = append(p.phraseEnds, m.Start-1)
			p.phraseCadences = append(p.phraseCadences, harmony.CadenceUnknown)
		case harmony.SecondaryDominant:
			nextStart = m.Start
			prevDur = m.Start - p.sectionStarts[i] + 1
			p.phraseEnds = append(p.phraseEnds, m.Start-1)
			p.phraseCadences = append(p.phraseCadences, harmony.CadenceUnknown)
		}
		p.sectionStarts[i+1] = nextStart
		p.sectionDurations[i] = prevDur
	}
	if k > 0 {
		p.sectionDurations[k-1] = req.Length - p.sectionStarts[k-1]
	}
}

func validate(req Request) error {
	if req.Length <= 0 {
		return fmt.Errorf("piece: length must be positive, got %d", req.Length)
	}
	if len(req.Sections) == 0 {
		return fmt.Errorf("piece: at least one section is required")
	}
	if len(req.Modulations) != len(req.Sections)-1 {
		return fmt.Errorf("piece: %d modulations required for %d sections, got %d",
			len(req.Sections)-1, len(req.Sections), len(req.Modulations))
	}
	for i, m := range req.Modulations {
		if m.Kind < harmony.PerfectCadence || m.Kind > harmony.SecondaryDominant {
			return fmt.Errorf("piece: modulation %d has unknown kind %d", i, int(m.Kind))
		}
		if m.Start < 0 || m.End >= req.Length || m.Start > m.End {
			return fmt.Errorf("piece: modulation %d window [%d,%d] outside [0,%d)", i, m.Start, m.End, req.Length)
		}
		if i > 0 && m.Start < req.Modulations[i-1].Start {
			return fmt.Errorf("piece: modulation %d starts before modulation %d", i, i-1)
		}
	}
	return nil
}

// Solve runs the depth-first search over the constructed model and, on
// success, renders the result into a solution.Piece (spec §4.F / §6). The
// deadline, if the request carried a nonzero timeout, is measured from the
// moment Solve is called.
func (p *Piece) Solve() (*solution.Piece, fd.Status) {
	var deadline time.Time
	if p.timeout > 0 {
		deadline = time.Now().Add(p.timeout)
	}
	final, status := fd.Solve(p.store, p.branching, p.seed, deadline)
	if status != fd.Solved {
		return nil, status
	}
	return p.render(final), fd.Solved
}

func (p *Piece) render(s *fd.Store) *solution.Piece {
	sol := &solution.Piece{
		Length: p.length,
	}
	for i := 0; i < p.length; i++ {
		sol.Positions = append(sol.Positions, solution.Position{
			State:       harmony.State(s.Value(p.state[i])),
			Quality:     harmony.Quality(s.Value(p.quality[i])),
			RootNote:    s.Value(p.rootNote[i]),
			HasSeventh:  s.Value(p.hasSeventh[i]) == 1,
		})
	}
	for _, sec := range p.sections {
		chord := make([]harmony.Degree, sec.Duration)
		bass := make([]int, sec.Duration)
		chromatic := make([]bool, sec.Duration)
		for j := 0; j < sec.Duration; j++ {
			chord[j] = harmony.Degree(s.Value(sec.Chord[j]))
			bass[j] = s.Value(sec.BassDegree[j])
			chromatic[j] = s.Value(sec.IsChromatic[j]) == 1
		}
		sol.Sections = append(sol.Sections, solution.Section{
			Start:       sec.Start,
			Duration:    sec.Duration,
			TonalityName: sec.Tonality.Name(),
			Chord:       chord,
			BassDegree:  bass,
			IsChromatic: chromatic,
		})
	}
	for i, m := range p.modulations {
		sol.Modulations = append(sol.Modulations, solution.Modulation{
			Kind:     m.Kind,
			Start:    m.Start,
			End:      m.End,
			FromName: p.sections[i].Tonality.Name(),
			ToName:   p.sections[i+1].Tonality.Name(),
		})
	}
	phraseStart := 0
	for i, end := range p.phraseEnds {
		sol.Phrases = append(sol.Phrases, solution.Phrase{Start: phraseStart, End: end, Cadence: p.phraseCadences[i]})
		phraseStart = end + 1
	}
	sol.Phrases = append(sol.Phrases, solution.Phrase{Start: phraseStart, End: p.length - 1, Cadence: harmony.CadenceUnknown})
	return sol
}
