package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/colorswitch/internal/colorswitch"
)

// titleColors cycles through the switch colors for the title letters.
var titleColors = [colorswitch.NumColors]lipgloss.Color{
	colorswitch.Red:    "167",
	colorswitch.Yellow: "220",
	colorswitch.Green:  "41",
	colorswitch.Blue:   "68",
}

// ScoreReader is the part of the store the menu needs.
type ScoreReader interface {
	HighScore() (int, error)
	RecentScore() (int, error)
}

// menuScene shows the persisted score fields. It is re-read every time the
// shell goes back to the menu.
type menuScene struct {
	high   int
	recent int
	err    error
}

func (m *menuScene) refresh(store ScoreReader) {
	*m = menuScene{}
	if store == nil {
		return
	}
	var err error
	if m.high, err = store.HighScore(); err != nil {
		m.err = err
	}
	if m.recent, err = store.RecentScore(); err != nil && m.err == nil {
		m.err = err
	}
}

func (m menuScene) view(width, height int) string {
	var b strings.Builder

	top := max(0, height/2-6)
	b.WriteString(strings.Repeat("\n", top))

	b.WriteString(centerText(renderTitle("COLOR SWITCH"), width))
	b.WriteString("\n\n")

	labelStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	valueStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))

	b.WriteString(centerText(labelStyle.Render("Highscore   ")+valueStyle.Render(fmt.Sprintf("%d", m.high)), width))
	b.WriteString("\n")
	b.WriteString(centerText(labelStyle.Render("RecentScore ")+valueStyle.Render(fmt.Sprintf("%d", m.recent)), width))
	b.WriteString("\n\n")

	if m.err != nil {
		errStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("167")).Italic(true)
		b.WriteString(centerText(errStyle.Render("scores unavailable"), width))
		b.WriteString("\n\n")
	}

	controls := "Space/Enter: Play  |  Tab: Scores  |  Q: Quit"
	b.WriteString(centerText(lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Render(controls), width))
	b.WriteString("\n")

	return b.String()
}

// renderTitle colors each letter with the next switch color.
func renderTitle(title string) string {
	var b strings.Builder
	i := 0
	for _, r := range title {
		if r == ' ' {
			b.WriteString("   ")
			continue
		}
		style := lipgloss.NewStyle().Bold(true).Foreground(titleColors[i%colorswitch.NumColors])
		b.WriteString(style.Render(string(r)))
		b.WriteString(" ")
		i++
	}
	return b.String()
}
