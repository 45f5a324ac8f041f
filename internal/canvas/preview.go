package canvas

import (
	"fmt"
	"image"
	"image/color"
	"strings"
)

// Render draws the current image as truecolor half-block cells sized to
// fit within maxWidth columns and maxHeight rows. Each text row carries
// two pixel rows: the upper as the foreground of U+2580, the lower as
// the background. Returns "" when the slot is empty or the bounds are
// degenerate.
func (s *Slot) Render(maxWidth, maxHeight int) string {
	s.mu.Lock()
	decoded := s.decoded
	s.mu.Unlock()
	if decoded == nil || maxWidth < 1 || maxHeight < 1 {
		return ""
	}
	return renderHalfBlocks(decoded, maxWidth, maxHeight)
}

func renderHalfBlocks(img image.Image, maxWidth, maxHeight int) string {
	bounds := img.Bounds()
	srcW, srcH := bounds.Dx(), bounds.Dy()
	if srcW == 0 || srcH == 0 {
		return ""
	}

	// Fit while preserving aspect ratio; one cell is 1x2 pixels.
	cols, rows := fit(srcW, srcH, maxWidth, maxHeight)

	var sb strings.Builder
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			top := sample(img, bounds, col, row*2, cols, rows*2)
			bottom := sample(img, bounds, col, row*2+1, cols, rows*2)
			tr, tg, tb := rgb8(top)
			br, bg, bb := rgb8(bottom)
			fmt.Fprintf(&sb, "\x1b[38;2;%d;%d;%d;48;2;%d;%d;%dm▀", tr, tg, tb, br, bg, bb)
		}
		sb.WriteString("\x1b[0m\n")
	}
	return sb.String()
}

// fit scales srcW x srcH into the cell grid, treating a cell as two
// pixels tall.
func fit(srcW, srcH, maxWidth, maxHeight int) (cols, rows int) {
	cols = maxWidth
	rows = (srcH * cols) / (srcW * 2)
	if rows > maxHeight {
		rows = maxHeight
		cols = (srcW * rows * 2) / srcH
	}
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}
	return cols, rows
}

// sample nearest-neighbor picks the source pixel for cell (x, y) on a
// gridW x gridH pixel grid.
func sample(img image.Image, bounds image.Rectangle, x, y, gridW, gridH int) color.Color {
	sx := bounds.Min.X + x*bounds.Dx()/gridW
	sy := bounds.Min.Y + y*bounds.Dy()/gridH
	if sx >= bounds.Max.X {
		sx = bounds.Max.X - 1
	}
	if sy >= bounds.Max.Y {
		sy = bounds.Max.Y - 1
	}
	return img.At(sx, sy)
}

func rgb8(c color.Color) (uint8, uint8, uint8) {
	r, g, b, _ := c.RGBA()
	return uint8(r >> 8), uint8(g >> 8), uint8(b >> 8)
}
