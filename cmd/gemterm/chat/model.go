// Package chat implements the interactive chat front-end: a bubbletea
// loop over the conversation log and the request orchestrator. Files:
//   - model.go: types, Init, Update
//   - view.go: rendering
package chat

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"go.uber.org/zap"

	"gemterm/cmd/gemterm/ui"
	"gemterm/internal/conversation"
	"gemterm/internal/orchestrator"
	"gemterm/internal/tokens"
)

// InitFailureText is shown once, as a bot message, when the adapter
// session could not be created. The session stays unusable but the UI
// still runs.
const InitFailureText = "The assistant could not be started. Check your API key and restart."

// Config wires the chat model to its collaborators.
type Config struct {
	Orchestrator *orchestrator.Orchestrator
	Styles       ui.Styles
	Logger       *zap.Logger
	// InitError records a failed adapter session creation; shown once.
	InitError error
}

// outcomeMsg carries a completed request back into the event loop.
type outcomeMsg orchestrator.Outcome

// Model is the bubbletea model for the chat front-end.
type Model struct {
	textinput textinput.Model
	viewport  viewport.Model
	spinner   spinner.Model
	styles    ui.Styles
	renderer  *glamour.TermRenderer
	logger    *zap.Logger

	orch *orchestrator.Orchestrator

	confirmReset bool
	tokenCount   int
	width        int
	height       int
	ready        bool
}

// NewModel builds the chat model. A session init failure is surfaced as
// a seeded bot message and logged; it is not fatal.
func NewModel(cfg Config) Model {
	styles := cfg.Styles
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	ti := textinput.New()
	ti.Placeholder = "Ask me anything... (Enter to send, Ctrl+C to exit)"
	ti.Prompt = "> "
	ti.PromptStyle = styles.Prompt
	ti.CharLimit = 4096
	ti.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.Spinner

	vp := viewport.New(80, 20)

	renderer := newRenderer(styles, 80)

	m := Model{
		textinput: ti,
		viewport:  vp,
		spinner:   sp,
		styles:    styles,
		renderer:  renderer,
		logger:    logger,
		orch:      cfg.Orchestrator,
	}

	if cfg.InitError != nil {
		logger.Warn("chat session init failed", zap.Error(cfg.InitError))
		m.orch.Log().AppendNew(InitFailureText, conversation.SenderBot)
	}
	m.refresh()
	return m
}

func newRenderer(styles ui.Styles, width int) *glamour.TermRenderer {
	opts := []glamour.TermRendererOption{glamour.WithWordWrap(width)}
	if styles.Theme.IsDark {
		opts = append(opts, glamour.WithAutoStyle())
	} else {
		opts = append(opts, glamour.WithStylePath("light"))
	}
	renderer, _ := glamour.NewTermRenderer(opts...)
	return renderer
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
		chatWidth := msg.Width
		if chatWidth > 100 {
			chatWidth = 100
		}
		m.viewport.Width = chatWidth
		m.viewport.Height = msg.Height - 6
		if m.viewport.Height < 3 {
			m.viewport.Height = 3
		}
		m.textinput.Width = chatWidth - 4
		m.renderer = newRenderer(m.styles, chatWidth-4)
		m.ready = true
		m.refresh()
		return m, nil

	case spinner.TickMsg:
		if m.orch.State() != orchestrator.StatePending {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case outcomeMsg:
		m.orch.Resolve(orchestrator.Outcome(msg))
		m.refresh()
		return m, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC:
			return m, tea.Quit
		case tea.KeyEnter:
			return m.handleEnter()
		case tea.KeyPgUp, tea.KeyPgDown:
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		}
	}

	var cmd tea.Cmd
	m.textinput, cmd = m.textinput.Update(msg)
	return m, cmd
}

// handleEnter routes the current input: reset confirmation, slash
// command, or submission.
func (m Model) handleEnter() (tea.Model, tea.Cmd) {
	input := strings.TrimSpace(m.textinput.Value())

	if m.confirmReset {
		m.confirmReset = false
		m.textinput.Reset()
		if input == "y" || input == "yes" {
			m.orch.Log().Reset()
		}
		m.refresh()
		return m, nil
	}

	switch input {
	case "":
		return m, nil
	case "/quit", "/exit":
		return m, tea.Quit
	case "/clear":
		// Destructive, so gate behind a confirmation line.
		m.confirmReset = true
		m.textinput.Reset()
		return m, nil
	}

	thunk, ok := m.orch.Submit(input)
	if !ok {
		// Pending request or no session: silently drop, per the
		// single-flight contract.
		return m, nil
	}
	m.textinput.Reset()
	m.refresh()
	return m, tea.Batch(m.spinner.Tick, runThunk(thunk))
}

// runThunk executes the adapter call off the render path.
func runThunk(t orchestrator.Thunk) tea.Cmd {
	return func() tea.Msg {
		return outcomeMsg(t(context.Background()))
	}
}

// refresh re-renders the history into the viewport and recomputes the
// footer token estimate.
func (m *Model) refresh() {
	msgs := m.orch.Log().Messages()
	m.tokenCount = tokens.CountMessages(msgs)
	m.viewport.SetContent(m.renderHistory(msgs))
	m.viewport.GotoBottom()
}
