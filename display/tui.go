package display

import (
	"fmt"
	"strings"

	"harmonium/solution"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	primaryColor   = lipgloss.Color("#00FFFF")
	secondaryColor = lipgloss.Color("#FFFF00")
	dimColor       = lipgloss.Color("#666666")

	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FFFFFF"))

	chordStyle = lipgloss.NewStyle().Width(8).Align(lipgloss.Center)

	currentChordStyle = lipgloss.NewStyle().Bold(true).Foreground(primaryColor).Width(8).Align(lipgloss.Center)

	chromaticStyle = lipgloss.NewStyle().Foreground(secondaryColor)

	dimStyle = lipgloss.NewStyle().Foreground(dimColor)
)

// BrowseModel is the bubbletea model for stepping through a solved piece
// one chord at a time.
type BrowseModel struct {
	sol      *solution.Piece
	flat     []flatPosition
	cursor   int
	quitting bool
}

type flatPosition struct {
	sectionIdx int
	localIdx   int
	global     int
}

// NewBrowseModel builds a browsable model over sol.
func NewBrowseModel(sol *solution.Piece) *BrowseModel {
	m := &BrowseModel{sol: sol}
	for si, sec := range sol.Sections {
		for li := 0; li < sec.Duration; li++ {
			m.flat = append(m.flat, flatPosition{sectionIdx: si, localIdx: li, global: sec.Start + li})
		}
	}
	return m
}

func (m *BrowseModel) Init() tea.Cmd { return nil }

func (m *BrowseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.quitting = true
			return m, tea.Quit
		case "right", "l", " ":
			if m.cursor < len(m.flat)-1 {
				m.cursor++
			}
		case "left", "h":
			if m.cursor > 0 {
				m.cursor--
			}
		case "home":
			m.cursor = 0
		case "end":
			m.cursor = len(m.flat) - 1
		}
	}
	return m, nil
}

func (m *BrowseModel) View() string {
	if m.quitting {
		return ""
	}
	if len(m.flat) == 0 {
		return "empty piece\n"
	}

	var b strings.Builder
	cur := m.flat[m.cursor]
	sec := m.sol.Sections[cur.sectionIdx]

	b.WriteString(titleStyle.Render(fmt.Sprintf("harmonium — %s", sec.TonalityName)))
	b.WriteString("\n\n")

	var row strings.Builder
	for li := 0; li < sec.Duration; li++ {
		style := chordStyle
		if li == cur.localIdx {
			style = currentChordStyle
		}
		label := sec.Chord[li].String()
		if sec.IsChromatic[li] {
			label = chromaticStyle.Render(label)
		}
		row.WriteString(style.Render(label))
	}
	b.WriteString(row.String())
	b.WriteString("\n\n")

	pos := m.sol.Positions[cur.global]
	b.WriteString(fmt.Sprintf("state=%s quality=%s root=%d bass=%d seventh=%v\n",
		pos.State, pos.Quality, pos.RootNote, sec.BassDegree[cur.localIdx], pos.HasSeventh))

	b.WriteString("\n")
	b.WriteString(dimStyle.Render("←/→ step through chords · q to quit"))
	b.WriteString("\n")
	return b.String()
}

// Browse runs the interactive TUI over a solved piece.
func Browse(sol *solution.Piece) error {
	p := tea.NewProgram(NewBrowseModel(sol))
	_, err := p.Run()
	return err
}
