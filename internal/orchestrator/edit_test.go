package orchestrator

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"testing"

	"gemterm/internal/canvas"
)

// fakeEditor scripts the image adapter for tests.
type fakeEditor struct {
	out   func(prompt string) ([]byte, string, error)
	calls int
}

func (f *fakeEditor) GenerateEdit(ctx context.Context, img []byte, mime, prompt string) ([]byte, string, error) {
	f.calls++
	return f.out(prompt)
}

func testPNG(t *testing.T, c color.Color) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			img.Set(x, y, c)
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode: %v", err)
	}
	return buf.Bytes()
}

func loadedSlot(t *testing.T) *canvas.Slot {
	t.Helper()
	slot, err := canvas.NewSlot(t.TempDir())
	if err != nil {
		t.Fatalf("NewSlot: %v", err)
	}
	if err := slot.SetImage(testPNG(t, color.Black), "image/png", "seed.png"); err != nil {
		t.Fatalf("SetImage: %v", err)
	}
	return slot
}

func TestEditSubmit_RequiresImage(t *testing.T) {
	slot, err := canvas.NewSlot(t.TempDir())
	if err != nil {
		t.Fatalf("NewSlot: %v", err)
	}
	e := NewEdit(slot, &fakeEditor{}, nil)
	if _, ok := e.Submit("make it blue"); ok {
		t.Fatal("Submit accepted with empty slot")
	}
}

func TestEditSubmit_SingleFlight(t *testing.T) {
	editor := &fakeEditor{out: func(string) ([]byte, string, error) {
		return testPNG(t, color.White), "image/png", nil
	}}
	e := NewEdit(loadedSlot(t), editor, nil)

	thunk, ok := e.Submit("brighten")
	if !ok {
		t.Fatal("first Submit rejected")
	}
	if _, ok := e.Submit("again"); ok {
		t.Fatal("second Submit accepted while pending")
	}
	e.Resolve(thunk(context.Background()))
	if editor.calls != 1 {
		t.Fatalf("adapter calls = %d, want 1", editor.calls)
	}
}

func TestEditResolve_ReplacesSlotContent(t *testing.T) {
	edited := testPNG(t, color.White)
	e := NewEdit(loadedSlot(t), &fakeEditor{out: func(string) ([]byte, string, error) {
		return edited, "image/png", nil
	}}, nil)

	thunk, _ := e.Submit("brighten")
	status := e.Resolve(thunk(context.Background()))
	if status != "Edit applied." {
		t.Fatalf("status = %q", status)
	}

	img, ok := e.Slot().Image()
	if !ok {
		t.Fatal("slot empty after successful edit")
	}
	if !bytes.Equal(img.Data, edited) {
		t.Fatal("slot content not replaced with edited bytes")
	}
	if img.Origin != canvas.OriginGenerated {
		t.Fatalf("Origin = %q, want generated", img.Origin)
	}
	if e.State() != StateIdle {
		t.Fatalf("State = %v, want idle", e.State())
	}
}

func TestEditResolve_FailureLeavesSlot(t *testing.T) {
	e := NewEdit(loadedSlot(t), &fakeEditor{out: func(string) ([]byte, string, error) {
		return nil, "", errors.New("transport down")
	}}, nil)
	before, _ := e.Slot().Image()

	thunk, _ := e.Submit("anything")
	status := e.Resolve(thunk(context.Background()))
	if status != EditFailureText {
		t.Fatalf("status = %q, want fixed failure text", status)
	}

	after, ok := e.Slot().Image()
	if !ok || !bytes.Equal(before.Data, after.Data) {
		t.Fatal("failed edit disturbed the slot")
	}
	if e.State() != StateIdle {
		t.Fatalf("State = %v, want idle", e.State())
	}
}

func TestEditResolve_Rejected(t *testing.T) {
	e := NewEdit(loadedSlot(t), &fakeEditor{out: func(string) ([]byte, string, error) {
		return nil, "", ErrRejected
	}}, nil)
	thunk, _ := e.Submit("do a crime")
	if status := e.Resolve(thunk(context.Background())); status != EditRejectedText {
		t.Fatalf("status = %q, want rejected text", status)
	}
}

func TestEdit_PreviewResourceAcrossSequentialEdits(t *testing.T) {
	shades := []color.Color{
		color.RGBA{R: 50, A: 255},
		color.RGBA{R: 100, A: 255},
		color.RGBA{R: 150, A: 255},
		color.RGBA{R: 200, A: 255},
		color.RGBA{R: 250, A: 255},
	}
	i := 0
	e := NewEdit(loadedSlot(t), &fakeEditor{out: func(string) ([]byte, string, error) {
		data := testPNG(t, shades[i])
		i++
		return data, "image/png", nil
	}}, nil)

	for round := 0; round < len(shades); round++ {
		thunk, ok := e.Submit("next shade")
		if !ok {
			t.Fatalf("round %d: Submit rejected", round)
		}
		e.Resolve(thunk(context.Background()))

		entries, err := os.ReadDir(e.Slot().ScratchDir())
		if err != nil {
			t.Fatalf("round %d: read scratch dir: %v", round, err)
		}
		if len(entries) != 1 {
			t.Fatalf("round %d: %d live preview resources, want 1", round, len(entries))
		}
	}
}
