package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/colorswitch/internal/core"
	"github.com/vovakirdan/colorswitch/internal/storage"
)

func TestMapKeyTapKeys(t *testing.T) {
	km := NewKeyMapper()

	tests := []struct {
		name   string
		msg    tea.KeyMsg
		action core.Action
		quit   bool
	}{
		{"space", tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}, core.ActionTap, false},
		{"enter", tea.KeyMsg{Type: tea.KeyEnter}, core.ActionTap, false},
		{"up", tea.KeyMsg{Type: tea.KeyUp}, core.ActionTap, false},
		{"w", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'w'}}, core.ActionTap, false},
		{"p", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'p'}}, core.ActionPause, false},
		{"esc", tea.KeyMsg{Type: tea.KeyEsc}, core.ActionBack, false},
		{"q", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}}, core.ActionQuit, true},
		{"ctrl+c", tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionQuit, true},
		{"z", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'z'}}, core.ActionNone, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			action, quit := km.MapKey(tc.msg)
			if action != tc.action || quit != tc.quit {
				t.Errorf("MapKey(%q) = (%v, %v), expected (%v, %v)", tc.msg.String(), action, quit, tc.action, tc.quit)
			}
		})
	}
}

func TestMapKeyToFrameCountsRepeats(t *testing.T) {
	km := NewKeyMapper()
	frame := core.NewInputFrame()
	space := tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}

	km.MapKeyToFrame(space, &frame)
	km.MapKeyToFrame(space, &frame)
	km.MapKeyToFrame(space, &frame)

	if got := frame.Count(core.ActionTap); got != 3 {
		t.Errorf("Count(Tap) = %d, expected 3", got)
	}
}

func TestMapMouse(t *testing.T) {
	km := NewKeyMapper()
	press := tea.MouseMsg{Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}
	release := tea.MouseMsg{Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft}

	if km.MapMouse(press) != core.ActionTap {
		t.Error("left press should tap")
	}
	if km.MapMouse(release) != core.ActionNone {
		t.Error("release should not tap")
	}
}

func TestMapKeyToMenuAction(t *testing.T) {
	km := NewKeyMapper()
	tests := []struct {
		msg  tea.KeyMsg
		want MenuAction
	}{
		{tea.KeyMsg{Type: tea.KeyEnter}, MenuActionPlay},
		{tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}, MenuActionPlay},
		{tea.KeyMsg{Type: tea.KeyTab}, MenuActionScoreboard},
		{tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}}, MenuActionQuit},
		{tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}}, MenuActionNone},
	}
	for _, tc := range tests {
		if got := km.MapKeyToMenuAction(tc.msg); got != tc.want {
			t.Errorf("MapKeyToMenuAction(%q) = %v, expected %v", tc.msg.String(), got, tc.want)
		}
	}
}

// fakeGame ends after a fixed number of ticks and records what it saw.
type fakeGame struct {
	resets  int
	steps   int
	taps    int
	endAt   int
	ended   bool
	store   *storage.MemoryStore
	resized [2]int
}

func (g *fakeGame) Reset(core.RuntimeConfig) { g.resets++ }

func (g *fakeGame) Step(in core.InputFrame) core.StepResult {
	g.steps++
	g.taps += in.Count(core.ActionTap)
	if g.steps >= g.endAt {
		g.finish()
	}
	return core.StepResult{State: g.State()}
}

func (g *fakeGame) finish() {
	if g.ended {
		return
	}
	g.ended = true
	_ = g.store.SetRecentScore(g.taps)
	_ = g.store.SetHighScore(max(g.taps, 0))
	_ = g.store.RecordRun(g.taps)
}

func (g *fakeGame) Render(dst *core.Screen) { dst.DrawText(0, 0, "FAKE") }
func (g *fakeGame) State() core.GameState   { return core.GameState{Score: g.taps, GameOver: g.ended} }
func (g *fakeGame) Resize(w, h int)         { g.resized = [2]int{w, h} }
func (g *fakeGame) End()                    { g.finish() }

func newTestModel(endAt int) (SessionModel, *storage.MemoryStore, *[]*fakeGame) {
	store := storage.NewMemoryStore()
	var games []*fakeGame
	m := NewSessionModel(Options{
		Runtime: core.DefaultConfig(),
		Store:   store,
		NewGame: func() Game {
			g := &fakeGame{endAt: endAt, store: store}
			games = append(games, g)
			return g
		},
	})
	return m, store, &games
}

func update(t *testing.T, m SessionModel, msg tea.Msg) (SessionModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	sm, ok := next.(SessionModel)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return sm, cmd
}

func TestMenuShowsPersistedScores(t *testing.T) {
	store := storage.NewMemoryStore()
	_ = store.SetHighScore(12)
	_ = store.SetRecentScore(5)

	m := NewSessionModel(Options{Runtime: core.DefaultConfig(), Store: store})
	view := m.View()

	for _, want := range []string{"Highscore", "12", "RecentScore", "5"} {
		if !strings.Contains(view, want) {
			t.Errorf("menu view missing %q", want)
		}
	}
}

func TestPlayThenGameOverReturnsToMenu(t *testing.T) {
	m, store, games := newTestModel(3)

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.scene != sceneGame || cmd == nil {
		t.Fatalf("scene = %v, expected game with a tick command", m.scene)
	}
	if len(*games) != 1 || (*games)[0].resets != 1 {
		t.Fatal("go to game should create and reset one game")
	}

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})

	for range 3 {
		m, cmd = update(t, m, TickMsg{Gen: m.gen})
	}
	if m.scene != sceneMenu {
		t.Fatalf("scene = %v, expected menu after game over", m.scene)
	}
	if cmd != nil {
		t.Error("tick loop should stop on game over")
	}
	if (*games)[0].taps != 2 {
		t.Errorf("taps = %d, expected 2", (*games)[0].taps)
	}
	if recent, _ := store.RecentScore(); m.menu.recent != recent || recent != 2 {
		t.Errorf("menu recent = %d, store recent = %d, expected 2", m.menu.recent, recent)
	}
}

func TestStaleTicksAreDropped(t *testing.T) {
	m, _, games := newTestModel(100)

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	stale := m.gen - 1
	m, cmd := update(t, m, TickMsg{Gen: stale})

	if (*games)[0].steps != 0 || cmd != nil {
		t.Error("tick from an old loop should be ignored")
	}
}

func TestEscEndsGameAndPersists(t *testing.T) {
	m, store, games := newTestModel(100)

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})

	if m.scene != sceneMenu {
		t.Fatalf("scene = %v, expected menu", m.scene)
	}
	if !(*games)[0].ended {
		t.Error("esc should end the running session")
	}
	if runs, _ := store.RecentRuns(10); len(runs) != 1 {
		t.Errorf("runs = %d, expected 1", len(runs))
	}
}

func TestEachPlayCreatesFreshGame(t *testing.T) {
	m, _, games := newTestModel(1)

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m, _ = update(t, m, TickMsg{Gen: m.gen})
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	if len(*games) != 2 {
		t.Fatalf("games = %d, expected 2", len(*games))
	}
	if (*games)[1].resets != 1 || (*games)[1].steps != 0 {
		t.Error("second game should be freshly reset")
	}
}

func TestScoreboardRoundTrip(t *testing.T) {
	m, store, _ := newTestModel(1)
	_ = store.RecordRun(7)

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.scene != sceneScores {
		t.Fatalf("scene = %v, expected scores", m.scene)
	}
	if !strings.Contains(m.View(), "RECENT RUNS") {
		t.Error("scoreboard title missing")
	}
	if len(m.scores.runs) != 1 || m.scores.runs[0].Score != 7 {
		t.Errorf("runs = %+v", m.scores.runs)
	}

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.scene != sceneMenu {
		t.Errorf("scene = %v, expected menu", m.scene)
	}
}

func TestResizeReachesGame(t *testing.T) {
	m, _, games := newTestModel(100)
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})

	if (*games)[0].resized != [2]int{100, 30} {
		t.Errorf("resized = %v", (*games)[0].resized)
	}
	if m.screen.Width() != 100 || m.screen.Height() != 30 {
		t.Errorf("screen = %dx%d", m.screen.Width(), m.screen.Height())
	}
}

func TestMouseTapInGame(t *testing.T) {
	m, _, games := newTestModel(100)
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m, _ = update(t, m, tea.MouseMsg{Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	_, _ = update(t, m, TickMsg{Gen: m.gen})

	if (*games)[0].taps != 1 {
		t.Errorf("taps = %d, expected 1", (*games)[0].taps)
	}
}

func TestRenderScreenKeepsText(t *testing.T) {
	s := core.NewScreen(6, 1)
	s.DrawTextColored(0, 0, "ab", core.ColorRed)
	s.DrawText(2, 0, "cd")

	if out := RenderScreen(s); !strings.Contains(out, "ab") || !strings.Contains(out, "cd") {
		t.Errorf("RenderScreen lost text: %q", out)
	}
}
