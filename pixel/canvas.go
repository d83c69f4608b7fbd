package pixel

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"golang.org/x/image/draw"
)

// CanvasSpec describes the fixed-size canvas the source is fitted into.
type CanvasSpec struct {
	Width  int
	Height int
	// Proportional keeps the aspect ratio and centers the scaled source,
	// otherwise the source is stretched to fill the canvas.
	Proportional bool
	// Transparent selects an RGBA canvas with a fully transparent
	// background. An opaque canvas is RGB on white.
	Transparent bool
}

func (s CanvasSpec) Validate() error {
	if s.Width < 1 || s.Height < 1 {
		return fmt.Errorf("%w: canvas %dx%d", ErrInvalidDimensions, s.Width, s.Height)
	}
	return nil
}

// Format returns the format of bitmaps composited on this canvas.
func (s CanvasSpec) Format() Format {
	if s.Transparent {
		return FormatRGBA
	}
	return FormatRGB
}

// Placement returns where the source lands on the canvas.
func (s CanvasSpec) Placement(srcWidth, srcHeight int) image.Rectangle {
	canvas := image.Rect(0, 0, s.Width, s.Height)
	if !s.Proportional {
		return canvas
	}

	srcW, srcH := float64(srcWidth), float64(srcHeight)
	scale := math.Min(float64(s.Width)/srcW, float64(s.Height)/srcH)
	dw := min(s.Width, max(1, int(math.Round(srcW*scale))))
	dh := min(s.Height, max(1, int(math.Round(srcH*scale))))

	dx := (s.Width - dw) / 2
	dy := (s.Height - dh) / 2
	return image.Rect(dx, dy, dx+dw, dy+dh)
}

// Composite fits src into the canvas described by spec. The result is always
// exactly spec.Width x spec.Height in spec.Format().
func Composite(src *Bitmap, spec CanvasSpec) (*Bitmap, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	if err := src.Validate(); err != nil {
		return nil, err
	}

	format := spec.Format()
	canvas := image.Rect(0, 0, spec.Width, spec.Height)
	destBounds := spec.Placement(src.Width, src.Height)
	sameSize := destBounds.Dx() == src.Width && destBounds.Dy() == src.Height
	srcImg := src.Image()

	logger().Debug("compositing", "src_width", src.Width, "src_height", src.Height,
		"width", destBounds.Dx(), "height", destBounds.Dy(), "format", format)

	if destBounds.Eq(canvas) {
		if sameSize {
			return fromNRGBA(srcImg, format), nil
		}
		dest := image.NewNRGBA(canvas)
		draw.CatmullRom.Scale(dest, canvas, srcImg, srcImg.Rect, draw.Src, nil)
		return fromNRGBA(dest, format), nil
	}

	dest := image.NewNRGBA(canvas)
	op := draw.Src
	if !spec.Transparent {
		draw.Draw(dest, canvas, image.NewUniform(color.White), image.Point{}, draw.Src)
		op = draw.Over
	}
	if sameSize {
		draw.Draw(dest, destBounds, srcImg, image.Point{}, op)
	} else {
		draw.CatmullRom.Scale(dest, destBounds, srcImg, srcImg.Rect, op, nil)
	}
	return fromNRGBA(dest, format), nil
}
