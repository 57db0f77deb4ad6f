package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/colorswitch/internal/core"
)

type scene int

const (
	sceneMenu scene = iota
	sceneGame
	sceneScores
)

func (s scene) String() string {
	switch s {
	case sceneMenu:
		return "menu"
	case sceneGame:
		return "game"
	case sceneScores:
		return "scores"
	default:
		return "unknown"
	}
}

// Store is what the shell reads for the menu and the scoreboard.
type Store interface {
	ScoreReader
	RunLister
}

// Options configures the terminal shell.
type Options struct {
	Runtime core.RuntimeConfig
	Store   Store // may be nil
	NewGame GameFactory
	Logger  *log.Logger
	// ScreenshotDir receives ctrl+s dumps; empty disables screenshots.
	ScreenshotDir string
}

// SessionModel is the Bubble Tea model switching between the menu, the game
// and the scoreboard. Going to the menu takes no parameters: it re-reads the
// persisted score fields. Going to the game creates and starts a new game.
type SessionModel struct {
	opts      Options
	config    core.RuntimeConfig
	screen    *core.Screen
	keyMapper *KeyMapper
	logger    *log.Logger

	scene  scene
	menu   menuScene
	scores scoreboardScene

	game       Game
	inputFrame core.InputFrame
	gen        int // tick loop generation
	games      int // games started, offsets a fixed seed

	quitting bool
}

// NewSessionModel creates the shell, starting on the menu.
func NewSessionModel(opts Options) SessionModel {
	cfg := opts.Runtime
	if cfg.TickRate <= 0 {
		cfg.TickRate = 60
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	m := SessionModel{
		opts:       opts,
		config:     cfg,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		keyMapper:  NewKeyMapper(),
		logger:     logger,
		inputFrame: core.NewInputFrame(),
		scores:     newScoreboardScene(opts.Store, cfg.ScreenW, cfg.ScreenH),
	}
	m.menu.refresh(m.scoreReader())
	return m
}

func (m SessionModel) scoreReader() ScoreReader {
	if m.opts.Store == nil {
		return nil
	}
	return m.opts.Store
}

// Init implements tea.Model.
func (m SessionModel) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model state.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		if m.scene == sceneGame {
			if action := m.keyMapper.MapMouse(msg); action != core.ActionNone {
				m.inputFrame.Set(action)
			}
		}
		return m, nil

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		if m.scene != sceneGame || msg.Gen != m.gen {
			return m, nil
		}
		return m.handleTick()
	}

	return m, nil
}

func (m SessionModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.scene {
	case sceneMenu:
		switch m.keyMapper.MapKeyToMenuAction(msg) {
		case MenuActionQuit:
			m.quitting = true
			return m, tea.Quit
		case MenuActionPlay:
			return m.goToGame()
		case MenuActionScoreboard:
			m.scores.load()
			m.setScene(sceneScores)
		}
		return m, nil

	case sceneScores:
		res, cmd := m.scores.update(msg)
		switch res {
		case scoreboardQuit:
			m.quitting = true
			return m, tea.Quit
		case scoreboardBack:
			return m.goToMenu(), nil
		}
		return m, cmd

	case sceneGame:
		if msg.String() == "ctrl+s" {
			m.saveScreenshot()
			return m, nil
		}
		action, isQuit := m.keyMapper.MapKey(msg)
		if isQuit {
			m.endGame()
			m.quitting = true
			return m, tea.Quit
		}
		if action == core.ActionBack {
			m.endGame()
			return m.goToMenu(), nil
		}
		if action != core.ActionNone {
			m.inputFrame.Set(action)
		}
	}
	return m, nil
}

func (m SessionModel) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)
	m.scores.resize(msg.Width, msg.Height)

	if r, ok := m.game.(Resizer); ok && m.scene == sceneGame {
		r.Resize(msg.Width, msg.Height)
	}
	return m, nil
}

func (m SessionModel) handleTick() (tea.Model, tea.Cmd) {
	result := m.game.Step(m.inputFrame)
	m.inputFrame.Clear()

	if result.State.GameOver {
		m.logger.Debug("game over", "score", result.State.Score)
		return m.goToMenu(), nil
	}
	return m, tickCmd(m.config.TickRate, m.gen)
}

// goToGame creates a fresh game, starts it and begins a new tick loop.
func (m SessionModel) goToGame() (SessionModel, tea.Cmd) {
	cfg := m.config
	if cfg.Seed != 0 {
		cfg.Seed += int64(m.games)
	}
	m.games++

	m.game = m.opts.NewGame()
	m.game.Reset(cfg)
	m.inputFrame.Clear()
	m.gen++
	m.setScene(sceneGame)
	return m, tickCmd(m.config.TickRate, m.gen)
}

// goToMenu re-reads the persisted scores and shows the menu.
func (m SessionModel) goToMenu() SessionModel {
	m.game = nil
	m.menu.refresh(m.scoreReader())
	if m.menu.err != nil {
		m.logger.Warn("could not read scores", "err", m.menu.err)
	}
	m.setScene(sceneMenu)
	return m
}

func (m *SessionModel) setScene(s scene) {
	m.logger.Debug("scene", "from", m.scene, "to", s)
	m.scene = s
}

// endGame ends a running session so its score is persisted.
func (m *SessionModel) endGame() {
	if m.game == nil || m.game.State().GameOver {
		return
	}
	if e, ok := m.game.(Ender); ok {
		e.End()
	}
}

// saveScreenshot saves the current screen to a file.
func (m *SessionModel) saveScreenshot() {
	if m.opts.ScreenshotDir == "" || m.game == nil {
		return
	}
	m.game.Render(m.screen)

	if err := os.MkdirAll(m.opts.ScreenshotDir, 0o755); err != nil {
		m.logger.Warn("screenshot", "err", err)
		return
	}
	name := fmt.Sprintf("colorswitch_%s.txt", time.Now().Format("20060102_150405"))
	path := filepath.Join(m.opts.ScreenshotDir, name)
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("screenshot", "err", err)
		return
	}
	m.logger.Info("screenshot saved", "path", path)
}

// View renders the current scene.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}
	switch m.scene {
	case sceneGame:
		m.game.Render(m.screen)
		return RenderScreen(m.screen)
	case sceneScores:
		return m.scores.view()
	default:
		return m.menu.view(m.config.ScreenW, m.config.ScreenH)
	}
}

// Run starts the Bubble Tea program and blocks until the player quits.
func Run(opts Options) error {
	p := tea.NewProgram(
		NewSessionModel(opts),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	_, err := p.Run()
	return err
}
