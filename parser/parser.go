// Package parser loads a piece description from a YAML file, the same
// plain os.ReadFile + yaml.Unmarshal style the teacher's BTML loader used.
package parser

import (
	"fmt"
	"os"

	"harmonium/harmony"

	"gopkg.in/yaml.v3"
)

// PieceRequest is the on-disk description of a piece to generate: its
// total length, its ordered key areas, and the modulations connecting
// them.
type PieceRequest struct {
	Length      int               `yaml:"length"`
	Seed        int64             `yaml:"seed,omitempty"`
	TimeoutSecs int               `yaml:"timeout_secs,omitempty"`
	Sections    []SectionConfig   `yaml:"sections"`
	Modulations []ModulationConfig `yaml:"modulations,omitempty"`
}

// SectionConfig describes one key area.
type SectionConfig struct {
	Key              string  `yaml:"key"` // e.g. "C major", "a minor"
	MinChromaticPct  float64 `yaml:"min_chromatic_pct,omitempty"`
	MaxChromaticPct  float64 `yaml:"max_chromatic_pct,omitempty"`
	MinSeventhPct    float64 `yaml:"min_seventh_pct,omitempty"`
	MaxSeventhPct    float64 `yaml:"max_seventh_pct,omitempty"`
}

// ModulationConfig describes one boundary between two consecutive
// sections.
type ModulationConfig struct {
	Kind  string `yaml:"kind"` // perfect_cadence, pivot_chord, alteration, secondary_dominant
	Start int    `yaml:"start"`
	End   int    `yaml:"end"`
}

// LoadPieceRequest reads and parses a piece description file, mirroring
// LoadTrack's error handling: errors are returned, never logged.
func LoadPieceRequest(filename string) (*PieceRequest, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}

	var req PieceRequest
	if err := yaml.Unmarshal(data, &req); err != nil {
		return nil, err
	}

	if req.Length <= 0 {
		return nil, fmt.Errorf("parser: %s: length must be positive", filename)
	}
	if len(req.Sections) == 0 {
		return nil, fmt.Errorf("parser: %s: at least one section is required", filename)
	}
	for i := range req.Sections {
		sec := &req.Sections[i]
		if sec.MaxChromaticPct == 0 {
			sec.MaxChromaticPct = 100
		}
		if sec.MaxSeventhPct == 0 {
			sec.MaxSeventhPct = 100
		}
	}

	return &req, nil
}

// ModulationKindByName maps the YAML kind strings to the solver's
// ModulationKind codes. It returns an error for an unrecognized name,
// surfaced as a configuration error before construction per spec §7.
func ModulationKindByName(name string) (harmony.ModulationKind, error) {
	switch name {
	case "perfect_cadence":
		return harmony.PerfectCadence, nil
	case "pivot_chord":
		return harmony.PivotChord, nil
	case "alteration":
		return harmony.Alteration, nil
	case "secondary_dominant":
		return harmony.SecondaryDominant, nil
	default:
		return 0, fmt.Errorf("parser: unknown modulation kind %q", name)
	}
}
