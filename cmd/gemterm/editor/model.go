// Package editor implements the image-edit front-end: a working image
// rendered as half-block cells, a prompt line, and the single-flight
// edit cycle against the image model.
package editor

import (
	"context"
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"gemterm/cmd/gemterm/ui"
	"gemterm/internal/canvas"
	"gemterm/internal/orchestrator"
)

// InitFailureText mirrors the chat front-end: adapter init failure is
// shown once and the session stays view-only.
const InitFailureText = "The image model could not be started. Check your API key and restart."

// notImageText is the inline notice for a rejected non-image file. The
// rejection never reaches the orchestrator.
const notImageText = "That file is not a supported image (png, jpeg, gif)."

// Config wires the editor model to its collaborators.
type Config struct {
	Orchestrator *orchestrator.EditOrchestrator
	Styles       ui.Styles
	Logger       *zap.Logger
	InitialPath  string
	InitError    error
}

// editOutcomeMsg carries a completed edit back into the event loop.
type editOutcomeMsg orchestrator.EditOutcome

// Model is the bubbletea model for the image-edit front-end.
type Model struct {
	textinput textinput.Model
	spinner   spinner.Model
	styles    ui.Styles
	logger    *zap.Logger

	orch   *orchestrator.EditOrchestrator
	status string

	width  int
	height int
	ready  bool
}

// NewModel builds the editor model, loading the initial image if one was
// given on the command line.
func NewModel(cfg Config) Model {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	ti := textinput.New()
	ti.Placeholder = "Describe the edit... (Enter to apply, Ctrl+C to exit)"
	ti.Prompt = "> "
	ti.PromptStyle = cfg.Styles.Prompt
	ti.CharLimit = 2048
	ti.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = cfg.Styles.Spinner

	m := Model{
		textinput: ti,
		spinner:   sp,
		styles:    cfg.Styles,
		logger:    logger,
		orch:      cfg.Orchestrator,
	}

	if cfg.InitError != nil {
		logger.Warn("edit session init failed", zap.Error(cfg.InitError))
		m.status = InitFailureText
	}
	if cfg.InitialPath != "" {
		m.loadImage(cfg.InitialPath)
	}
	return m
}

// Init starts the cursor blink.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update is the event loop.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.textinput.Width = msg.Width - 4
		m.ready = true
		return m, nil

	case spinner.TickMsg:
		if m.orch.State() != orchestrator.StatePending {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case editOutcomeMsg:
		m.status = m.orch.Resolve(orchestrator.EditOutcome(msg))
		return m, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC:
			return m, tea.Quit
		case tea.KeyEnter:
			return m.handleEnter()
		}
	}

	var cmd tea.Cmd
	m.textinput, cmd = m.textinput.Update(msg)
	return m, cmd
}

// handleEnter routes the input line: slash command or edit prompt.
func (m Model) handleEnter() (tea.Model, tea.Cmd) {
	input := strings.TrimSpace(m.textinput.Value())
	if input == "" {
		return m, nil
	}

	if strings.HasPrefix(input, "/") {
		return m.handleCommand(input)
	}

	thunk, ok := m.orch.Submit(input)
	if !ok {
		if _, loaded := m.orch.Slot().Image(); !loaded {
			m.status = "No image loaded. Use /open <path> first."
			m.textinput.Reset()
		}
		// Pending or no session: drop silently.
		return m, nil
	}
	m.textinput.Reset()
	m.status = ""
	return m, tea.Batch(m.spinner.Tick, runThunk(thunk))
}

func (m Model) handleCommand(input string) (tea.Model, tea.Cmd) {
	cmd, arg, _ := strings.Cut(input, " ")
	arg = strings.TrimSpace(arg)
	m.textinput.Reset()

	switch cmd {
	case "/quit", "/exit":
		return m, tea.Quit
	case "/open":
		if arg == "" {
			m.status = "Usage: /open <path>"
			return m, nil
		}
		m.loadImage(arg)
		return m, nil
	case "/save":
		if arg == "" {
			m.status = "Usage: /save <path>"
			return m, nil
		}
		if err := m.orch.Slot().Save(arg); err != nil {
			m.logger.Warn("save failed", zap.Error(err))
			if errors.Is(err, canvas.ErrEmpty) {
				m.status = "Nothing to save yet."
			} else {
				m.status = "Could not save the image."
			}
			return m, nil
		}
		m.status = "Saved to " + arg
		return m, nil
	case "/clear":
		m.orch.Slot().Clear()
		m.status = "Image cleared."
		return m, nil
	default:
		m.status = "Unknown command: " + cmd
		return m, nil
	}
}

// loadImage reads a file into the slot, keeping rejections inline.
func (m *Model) loadImage(path string) {
	if err := m.orch.Slot().LoadFile(path); err != nil {
		m.logger.Warn("image load failed", zap.String("path", path), zap.Error(err))
		if errors.Is(err, canvas.ErrNotImage) {
			m.status = notImageText
		} else {
			m.status = "Could not open " + path
		}
		return
	}
	m.status = "Loaded " + path
}

// runThunk executes the adapter call off the render path.
func runThunk(t orchestrator.EditThunk) tea.Cmd {
	return func() tea.Msg {
		return editOutcomeMsg(t(context.Background()))
	}
}
