package render

import (
	"errors"
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"io"
	"math"

	xdraw "golang.org/x/image/draw"
)

// DefaultCellSize is the edge length of one grid cell in pixels.
const DefaultCellSize = 400

// ErrGridShape reports a cell count that does not fill the grid exactly.
var ErrGridShape = errors.New("render: cell count does not match the grid shape")

// Grid composes cells into a rows×cols PNG written to w. Cells are scaled
// to fit their slot with the aspect ratio kept; a nil cell leaves its slot
// blank. The cell count must equal rows*cols.
func Grid(w io.Writer, cells []image.Image, rows, cols, cellSize int) error {
	if rows < 1 || cols < 1 {
		return fmt.Errorf("%w: %dx%d", ErrGridShape, rows, cols)
	}
	if len(cells) != rows*cols {
		return fmt.Errorf("%w: %d cells for %dx%d", ErrGridShape, len(cells), rows, cols)
	}
	if cellSize < 1 {
		cellSize = DefaultCellSize
	}

	canvas := image.NewRGBA(image.Rect(0, 0, cols*cellSize, rows*cellSize))
	draw.Draw(canvas, canvas.Bounds(), image.White, image.Point{}, draw.Src)

	for i, cell := range cells {
		slot := image.Rect(
			(i%cols)*cellSize,
			(i/cols)*cellSize,
			(i%cols+1)*cellSize,
			(i/cols+1)*cellSize,
		)
		if cell != nil {
			if target := fitRect(slot, cell.Bounds()); !target.Empty() {
				xdraw.ApproxBiLinear.Scale(canvas, target, cell, cell.Bounds(), xdraw.Over, nil)
			}
		}
		frameRect(canvas, slot)
	}

	if err := png.Encode(w, canvas); err != nil {
		return fmt.Errorf("render: %w", err)
	}
	return nil
}

// fitRect centers src-shaped content inside outer without distortion.
func fitRect(outer, src image.Rectangle) image.Rectangle {
	sw, sh := src.Dx(), src.Dy()
	if sw < 1 || sh < 1 {
		return image.Rectangle{}
	}
	scale := math.Min(float64(outer.Dx())/float64(sw), float64(outer.Dy())/float64(sh))
	tw := int(float64(sw) * scale)
	th := int(float64(sh) * scale)
	x := outer.Min.X + (outer.Dx()-tw)/2
	y := outer.Min.Y + (outer.Dy()-th)/2
	return image.Rect(x, y, x+tw, y+th)
}

func frameRect(img *image.RGBA, r image.Rectangle) {
	for x := r.Min.X; x < r.Max.X; x++ {
		img.Set(x, r.Min.Y, frameColor)
		img.Set(x, r.Max.Y-1, frameColor)
	}
	for y := r.Min.Y; y < r.Max.Y; y++ {
		img.Set(r.Min.X, y, frameColor)
		img.Set(r.Max.X-1, y, frameColor)
	}
}
