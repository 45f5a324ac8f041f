// Package editor: view rendering for the image-edit front-end.
package editor

import (
	"fmt"
	"strings"

	"gemterm/internal/orchestrator"
)

// View renders the frame: header, preview, status, input, footer.
func (m Model) View() string {
	if !m.ready {
		return "Starting gemterm..."
	}

	var sb strings.Builder
	sb.WriteString(m.styles.Header.Render("gemterm edit"))
	sb.WriteString("\n")

	previewW := m.width - 2
	previewH := m.height - 8
	if preview := m.orch.Slot().Render(previewW, previewH); preview != "" {
		sb.WriteString(preview)
	} else {
		sb.WriteString(m.styles.Muted.Render("No image loaded. Use /open <path> to begin."))
		sb.WriteString("\n")
	}

	if m.status != "" {
		sb.WriteString(m.styles.Status.Render(m.status))
		sb.WriteString("\n")
	}

	if m.orch.State() == orchestrator.StatePending {
		sb.WriteString(m.spinner.View())
		sb.WriteString(m.styles.Muted.Render(" editing..."))
	} else {
		sb.WriteString(m.textinput.View())
	}
	sb.WriteString("\n")
	sb.WriteString(m.styles.Footer.Render(m.footer()))
	return sb.String()
}

func (m Model) footer() string {
	if img, ok := m.orch.Slot().Image(); ok {
		return fmt.Sprintf("%s · %s · %s · /open /save /clear /quit", m.orch.State(), img.MIME, img.Origin)
	}
	return fmt.Sprintf("%s · /open /save /clear /quit", m.orch.State())
}
