package display

import (
	"fmt"
	"strings"

	"harmonium/solution"
)

// Show prints a plain-text summary of a solved piece: a header box per
// section followed by its degree names, and a line per modulation.
func Show(sol *solution.Piece) {
	for _, sec := range sol.Sections {
		title := sec.TonalityName
		info := fmt.Sprintf("start: %d | duration: %d", sec.Start, sec.Duration)

		maxLen := len(title)
		if len(info) > maxLen {
			maxLen = len(info)
		}

		fmt.Printf("┌─ %s %s┐\n", title, strings.Repeat("─", maxLen-len(title)+1))
		fmt.Printf("│ %s%s │\n", info, strings.Repeat(" ", maxLen-len(info)))
		fmt.Printf("└%s┘\n", strings.Repeat("─", maxLen+2))

		names := make([]string, len(sec.Chord))
		for i, d := range sec.Chord {
			mark := ""
			if sec.IsChromatic[i] {
				mark = "*"
			}
			names[i] = d.String() + mark
		}
		const perLine = 8
		for i := 0; i < len(names); i += perLine {
			end := i + perLine
			if end > len(names) {
				end = len(names)
			}
			fmt.Printf("  %s\n", strings.Join(names[i:end], " "))
		}
		fmt.Println()
	}

	for _, m := range sol.Modulations {
		fmt.Printf("♬ from %s to %s (%s) at [%d,%d]\n", m.FromName, m.ToName, m.Kind, m.Start, m.End)
	}
}
