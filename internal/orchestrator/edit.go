package orchestrator

import (
	"context"
	"errors"
	"strings"
	"sync"

	"go.uber.org/zap"

	"gemterm/internal/canvas"
)

// EditFailureText is the fixed user-facing status for a failed edit.
const EditFailureText = "The edit could not be applied. Please try again."

// EditRejectedText is shown when the model declined to produce an image.
const EditRejectedText = "The model declined this edit request."

// Editor is the image-variant adapter contract: a stateless edit of the
// supplied image bytes driven by a prompt.
type Editor interface {
	GenerateEdit(ctx context.Context, img []byte, mime, prompt string) ([]byte, string, error)
}

// ErrRejected is returned by editors when the model answers without an
// image. Distinguished from transport failure only for the status line.
var ErrRejected = errors.New("edit rejected by model")

// EditOutcome is the terminal result of an in-flight edit.
type EditOutcome struct {
	Data []byte
	MIME string
	Err  error
}

// EditThunk performs the adapter call for an accepted edit.
type EditThunk func(ctx context.Context) EditOutcome

// EditOrchestrator owns the image-edit request state machine. Same
// single-flight discipline as the chat variant, but success replaces the
// canvas slot content instead of appending to a log.
type EditOrchestrator struct {
	mu     sync.Mutex
	state  State
	slot   *canvas.Slot
	editor Editor
	logger *zap.Logger
}

// NewEdit creates an edit orchestrator over the slot and adapter.
func NewEdit(slot *canvas.Slot, editor Editor, logger *zap.Logger) *EditOrchestrator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EditOrchestrator{slot: slot, editor: editor, logger: logger}
}

// State reports the current request state.
func (e *EditOrchestrator) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// Slot exposes the canvas backing this orchestrator.
func (e *EditOrchestrator) Slot() *canvas.Slot {
	return e.slot
}

// Submit starts an edit cycle. Rejected — returning started=false — when
// the trimmed prompt is empty, a request is pending, no adapter is
// configured, or no image is loaded.
func (e *EditOrchestrator) Submit(prompt string) (EditThunk, bool) {
	trimmed := strings.TrimSpace(prompt)
	if trimmed == "" {
		return nil, false
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.state != StateIdle || e.editor == nil {
		return nil, false
	}
	img, ok := e.slot.Image()
	if !ok {
		return nil, false
	}
	e.state = StatePending

	editor := e.editor
	return func(ctx context.Context) EditOutcome {
		data, mime, err := editor.GenerateEdit(ctx, img.Data, img.MIME, trimmed)
		return EditOutcome{Data: data, MIME: mime, Err: err}
	}, true
}

// Resolve completes the pending cycle. On success the edited bytes
// replace the slot content (releasing the previous preview resource);
// failures leave the slot untouched. Returns the status line to display.
func (e *EditOrchestrator) Resolve(out EditOutcome) string {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.state = StateIdle

	switch {
	case errors.Is(out.Err, ErrRejected):
		e.logger.Info("edit rejected by model")
		return EditRejectedText
	case out.Err != nil:
		e.logger.Warn("edit request failed", zap.Error(out.Err))
		return EditFailureText
	}

	if err := e.slot.SetImage(out.Data, out.MIME, canvas.OriginGenerated); err != nil {
		e.logger.Warn("edited image unusable", zap.Error(err))
		return EditFailureText
	}
	return "Edit applied."
}
