// Package chat: view rendering for the chat front-end.
package chat

import (
	"fmt"
	"strings"

	"gemterm/internal/conversation"
	"gemterm/internal/orchestrator"
	"gemterm/internal/segment"
)

// View renders the full frame: header, history viewport, input line,
// footer.
func (m Model) View() string {
	if !m.ready {
		return "Starting gemterm..."
	}

	var sb strings.Builder
	sb.WriteString(m.styles.Header.Render("gemterm chat"))
	sb.WriteString("\n")
	sb.WriteString(m.viewport.View())
	sb.WriteString("\n")

	switch {
	case m.confirmReset:
		sb.WriteString(m.styles.Error.Render("Clear the conversation? (y/N) "))
		sb.WriteString(m.textinput.View())
	case m.orch.State() == orchestrator.StatePending:
		sb.WriteString(m.spinner.View())
		sb.WriteString(m.styles.Muted.Render(" waiting for Gemini..."))
	default:
		sb.WriteString(m.textinput.View())
	}
	sb.WriteString("\n")
	sb.WriteString(m.styles.Footer.Render(m.footer()))
	return sb.String()
}

func (m Model) footer() string {
	return fmt.Sprintf("%s · ~%d tokens · /clear /quit", m.orch.State(), m.tokenCount)
}

// renderHistory draws every message, bot text split into prose and code
// regions for differentiated rendering.
func (m Model) renderHistory(msgs []conversation.Message) string {
	var sb strings.Builder
	for _, msg := range msgs {
		switch msg.Sender {
		case conversation.SenderUser:
			sb.WriteString(m.styles.UserLabel.Render("You") + "\n")
			sb.WriteString(m.styles.UserText.Render(msg.Text))
			sb.WriteString("\n")
		default: // bot
			sb.WriteString(m.styles.BotLabel.Render("Gemini") + "\n")
			sb.WriteString(m.renderSpans(segment.Segment(msg.Text)))
		}
	}
	return sb.String()
}

func (m Model) renderSpans(spans []segment.Span) string {
	var sb strings.Builder
	for _, span := range spans {
		switch span.Kind {
		case segment.Code:
			sb.WriteString(m.styles.CodeBlock.Render(span.Content))
			sb.WriteString("\n")
		default:
			sb.WriteString(m.renderProse(span.Content))
		}
	}
	return sb.String()
}

// renderProse runs prose through glamour, falling back to the raw text
// when the renderer is unavailable or panics on odd input.
func (m Model) renderProse(text string) (out string) {
	if strings.TrimSpace(text) == "" {
		return text
	}
	defer func() {
		if r := recover(); r != nil {
			m.logger.Warn("markdown render panic")
			out = text + "\n"
		}
	}()
	if m.renderer == nil {
		return text + "\n"
	}
	rendered, err := m.renderer.Render(text)
	if err != nil {
		return text + "\n"
	}
	return rendered
}
