// Package canvas manages the image-edit app's single working image: the
// current bytes, where they came from, and the terminal preview derived
// from them. The preview keeps a scratch file on disk as its backing
// resource; replacing or clearing the image must release the previous
// file so edits do not accumulate scratch data across a session.
package canvas

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"net/http"
	"os"
	"path/filepath"
	"sync"

	// Decoders for the formats the edit app accepts.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/google/uuid"
)

// ErrNotImage is returned when the supplied bytes do not decode as a
// supported image format.
var ErrNotImage = errors.New("canvas: data is not a supported image")

// ErrEmpty is returned by operations that need a current image when the
// slot is empty.
var ErrEmpty = errors.New("canvas: no image loaded")

// OriginGenerated marks image content produced by the model rather than
// loaded from disk.
const OriginGenerated = "generated"

// Image is the current working image content.
type Image struct {
	Data   []byte
	MIME   string
	Origin string
}

// Slot holds at most one working image plus its display backing. All
// methods are safe for concurrent use.
type Slot struct {
	mu          sync.Mutex
	scratchDir  string
	img         *Image
	decoded     image.Image
	previewPath string
}

// NewSlot creates an empty slot whose preview files live under
// scratchDir. An empty scratchDir gets a fresh temp directory.
func NewSlot(scratchDir string) (*Slot, error) {
	if scratchDir == "" {
		dir, err := os.MkdirTemp("", "gemterm-canvas-")
		if err != nil {
			return nil, fmt.Errorf("create scratch dir: %w", err)
		}
		scratchDir = dir
	} else if err := os.MkdirAll(scratchDir, 0o755); err != nil {
		return nil, fmt.Errorf("create scratch dir: %w", err)
	}
	return &Slot{scratchDir: scratchDir}, nil
}

// ScratchDir returns the directory holding live preview files.
func (s *Slot) ScratchDir() string {
	return s.scratchDir
}

// DetectMIME sniffs the content type of raw bytes.
func DetectMIME(data []byte) string {
	return http.DetectContentType(data)
}

// SetImage replaces the slot content. The bytes must decode as an image;
// on success the previous preview file is released and a new one written.
func (s *Slot) SetImage(data []byte, mime, origin string) error {
	decoded, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNotImage, err)
	}
	if mime == "" {
		mime = DetectMIME(data)
	}

	path := filepath.Join(s.scratchDir, "preview-"+uuid.NewString()+extFor(mime))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write preview: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.releaseLocked()
	cp := make([]byte, len(data))
	copy(cp, data)
	s.img = &Image{Data: cp, MIME: mime, Origin: origin}
	s.decoded = decoded
	s.previewPath = path
	return nil
}

// LoadFile reads an image file into the slot, rejecting non-image files.
func (s *Slot) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read image: %w", err)
	}
	return s.SetImage(data, DetectMIME(data), path)
}

// Image returns a copy of the current content, if any.
func (s *Slot) Image() (Image, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.img == nil {
		return Image{}, false
	}
	return *s.img, true
}

// PreviewPath returns the live preview file path, or "" when empty.
func (s *Slot) PreviewPath() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.previewPath
}

// Save writes the current image bytes to path.
func (s *Slot) Save(path string) error {
	img, ok := s.Image()
	if !ok {
		return ErrEmpty
	}
	if err := os.WriteFile(path, img.Data, 0o644); err != nil {
		return fmt.Errorf("save image: %w", err)
	}
	return nil
}

// Clear empties the slot and releases the preview resource.
func (s *Slot) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.releaseLocked()
	s.img = nil
	s.decoded = nil
}

// releaseLocked removes the current preview file. Callers hold s.mu.
func (s *Slot) releaseLocked() {
	if s.previewPath != "" {
		os.Remove(s.previewPath)
		s.previewPath = ""
	}
}

func extFor(mime string) string {
	switch mime {
	case "image/png":
		return ".png"
	case "image/jpeg":
		return ".jpg"
	case "image/gif":
		return ".gif"
	default:
		return ".img"
	}
}
