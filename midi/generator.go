// Package midi renders a solved progression to a Standard MIDI File: one
// root-position block voicing per chord position, plus a bass note
// doubling the root two octaves down. This is explicitly not the
// downstream SATB "diatony" realiser (spec.md §1/§6) — there is no voice
// leading, spacing, or doubling rule here, only enough sound to audition
// a generated progression.
package midi

import (
	"fmt"
	"os"
	"sort"

	"harmonium/harmony"
	"harmonium/solution"

	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

type midiEvent struct {
	tick    uint32
	message midi.Message
}

// qualityIntervals gives the semitone offsets above the root for each
// quality, ordered root/third/fifth/seventh/ninth as applicable.
var qualityIntervals = map[harmony.Quality][]uint8{
	harmony.Major:              {0, 4, 7},
	harmony.Minor:              {0, 3, 7},
	harmony.Diminished:         {0, 3, 6},
	harmony.Augmented:          {0, 4, 8},
	harmony.AugmentedSixth:     {0, 4, 10},
	harmony.Dominant7:          {0, 4, 7, 10},
	harmony.Major7:             {0, 4, 7, 11},
	harmony.Minor7:             {0, 3, 7, 10},
	harmony.Diminished7:        {0, 3, 6, 9},
	harmony.HalfDiminished7:    {0, 3, 6, 10},
	harmony.MinorMajor7:        {0, 3, 7, 11},
	harmony.MajorNinthDominant: {0, 4, 7, 10, 14},
	harmony.MinorNinthDominant: {0, 4, 7, 10, 13},
}

// RenderSolution writes a solved piece to a temporary .mid file and
// returns its path, mirroring the teacher's GenerateFromTrack return
// convention (path, error).
func RenderSolution(sol *solution.Piece, tempo int) (string, error) {
	tmpFile := "/tmp/harmonium.mid"

	s := smf.New()
	s.TimeFormat = smf.MetricTicks(480)

	var track0 smf.Track
	track0.Add(0, smf.MetaTempo(float64(tempo)))
	track0.Close(0)
	s.Add(track0)

	const ticksPerChord = 960 // half a 4/4 bar at 480 ticks/quarter

	var chordTrack smf.Track
	chordTrack.Add(0, midi.ProgramChange(0, 0)) // Acoustic Grand Piano

	var bassTrack smf.Track
	bassTrack.Add(0, midi.ProgramChange(1, 33)) // Fingered Bass

	var chordEvents, bassEvents []midiEvent
	for i, pos := range sol.Positions {
		startTick := uint32(i) * ticksPerChord
		endTick := startTick + ticksPerChord - 1

		rootMidi := uint8(pos.RootNote) + 60
		intervals := qualityIntervals[pos.Quality]
		if intervals == nil {
			intervals = qualityIntervals[harmony.Major]
		}
		for _, iv := range intervals {
			note := rootMidi + iv
			chordEvents = append(chordEvents, midiEvent{startTick, midi.NoteOn(0, note, 80)})
			chordEvents = append(chordEvents, midiEvent{endTick, midi.NoteOff(0, note)})
		}

		bassNote := uint8(pos.RootNote) + 36
		bassEvents = append(bassEvents, midiEvent{startTick, midi.NoteOn(1, bassNote, 70)})
		bassEvents = append(bassEvents, midiEvent{endTick, midi.NoteOff(1, bassNote)})
	}

	writeEvents(&chordTrack, chordEvents)
	chordTrack.Close(0)
	s.Add(chordTrack)

	writeEvents(&bassTrack, bassEvents)
	bassTrack.Close(0)
	s.Add(bassTrack)

	fmt.Printf("[midi] rendered %d positions across %d sections\n", len(sol.Positions), len(sol.Sections))

	f, err := os.Create(tmpFile)
	if err != nil {
		return "", err
	}
	defer f.Close()

	if _, err := s.WriteTo(f); err != nil {
		return "", err
	}
	return tmpFile, nil
}

func writeEvents(track *smf.Track, events []midiEvent) {
	sort.Slice(events, func(i, j int) bool { return events[i].tick < events[j].tick })
	var prevTick uint32
	for _, evt := range events {
		delta := evt.tick - prevTick
		track.Add(delta, evt.message)
		prevTick = evt.tick
	}
}
