package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/colorswitch/internal/storage"
)

// maxRuns is how many runs the scoreboard loads.
const maxRuns = 100

// RunLister is the part of the store the scoreboard needs.
type RunLister interface {
	RecentRuns(limit int) ([]storage.Run, error)
	Stats() (storage.Stats, error)
}

// ScoreboardKeyMap defines the key bindings for the scoreboard.
type ScoreboardKeyMap struct {
	Up   key.Binding
	Down key.Binding
	Back key.Binding
	Quit key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Back, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Up, k.Down}, {k.Back, k.Quit}}
}

// DefaultScoreboardKeyMap returns default key bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b", "tab"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// scoreboardScene lists recent runs in a table.
type scoreboardScene struct {
	store  RunLister
	runs   []storage.Run
	stats  storage.Stats
	err    error
	table  table.Model
	help   help.Model
	keys   ScoreboardKeyMap
	width  int
	height int
}

func newScoreboardScene(store RunLister, width, height int) scoreboardScene {
	h := help.New()
	h.Width = width
	s := scoreboardScene{
		store:  store,
		help:   h,
		keys:   DefaultScoreboardKeyMap(),
		width:  width,
		height: height,
	}
	s.table = s.createTable()
	return s
}

func (s *scoreboardScene) createTable() table.Model {
	columns := []table.Column{
		{Title: "Run", Width: 6},
		{Title: "Score", Width: 10},
		{Title: "Date", Width: 18},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(3, s.height-10)),
	)

	st := table.DefaultStyles()
	st.Header = st.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	st.Selected = st.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(st)
	return t
}

// load re-reads runs and stats from the store.
func (s *scoreboardScene) load() {
	s.runs, s.stats, s.err = nil, storage.Stats{}, nil
	if s.store != nil {
		if s.runs, s.err = s.store.RecentRuns(maxRuns); s.err == nil {
			s.stats, s.err = s.store.Stats()
		}
	}

	rows := make([]table.Row, len(s.runs))
	for i, r := range s.runs {
		rows[i] = table.Row{
			fmt.Sprintf("#%d", r.ID),
			fmt.Sprintf("%d", r.Score),
			r.CreatedAt.Local().Format("Jan 02 15:04"),
		}
	}
	s.table.SetRows(rows)
	s.table.GotoTop()
}

func (s *scoreboardScene) resize(width, height int) {
	s.width, s.height = width, height
	s.help.Width = width
	rows := s.table.Rows()
	s.table = s.createTable()
	s.table.SetRows(rows)
}

// scoreboardResult tells the shell what the scoreboard wants next.
type scoreboardResult int

const (
	scoreboardStay scoreboardResult = iota
	scoreboardBack
	scoreboardQuit
)

func (s *scoreboardScene) update(msg tea.KeyMsg) (scoreboardResult, tea.Cmd) {
	switch {
	case key.Matches(msg, s.keys.Quit):
		return scoreboardQuit, nil
	case key.Matches(msg, s.keys.Back):
		return scoreboardBack, nil
	}
	var cmd tea.Cmd
	s.table, cmd = s.table.Update(msg)
	return scoreboardStay, cmd
}

func (s scoreboardScene) view() string {
	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		MarginBottom(1)
	b.WriteString(titleStyle.Render(centerText("RECENT RUNS", s.width)))
	b.WriteString("\n\n")

	statsStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	summary := fmt.Sprintf("Runs: %d   Best: %d   Average: %.1f", s.stats.Runs, s.stats.Best, s.stats.Average)
	b.WriteString(centerText(statsStyle.Render(summary), s.width))
	b.WriteString("\n\n")

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	b.WriteString(lipgloss.PlaceHorizontal(s.width, lipgloss.Center, tableStyle.Render(s.tableContent())))

	b.WriteString("\n")
	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	b.WriteString(helpStyle.Render(s.help.View(s.keys)))

	return b.String()
}

func (s scoreboardScene) tableContent() string {
	emptyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		Italic(true).
		Padding(2, 4)
	if s.err != nil {
		return emptyStyle.Render("Scores unavailable.")
	}
	if len(s.runs) == 0 {
		return emptyStyle.Render("No runs recorded yet.\nPlay a game to set a high score!")
	}
	return s.table.View()
}
