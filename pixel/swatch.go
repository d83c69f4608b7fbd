package pixel

import "fmt"

// White is the default swatch background.
var White = Color{R: 0xff, G: 0xff, B: 0xff}

// RenderSwatches lays the palette out as rows of columns size x size
// squares on a white RGB bitmap.
func RenderSwatches(p Palette, size, columns int) (*Bitmap, error) {
	return RenderSwatchesOn(p, size, columns, White)
}

// RenderSwatchesOn is RenderSwatches with a custom background for the
// trailing cells of the last row.
func RenderSwatchesOn(p Palette, size, columns int, background Color) (*Bitmap, error) {
	if size < 1 {
		return nil, fmt.Errorf("%w: swatch size %d", ErrInvalidParameter, size)
	}
	if columns < 1 {
		return nil, fmt.Errorf("%w: swatch columns %d", ErrInvalidParameter, columns)
	}
	if len(p) == 0 {
		return nil, fmt.Errorf("%w: empty palette has no swatch rows", ErrInvalidDimensions)
	}

	rows := (len(p) + columns - 1) / columns
	out, err := NewBitmap(columns*size, rows*size, FormatRGB)
	if err != nil {
		return nil, err
	}

	fill(out, 0, 0, out.Width, out.Height, background)
	for i, c := range p {
		x := (i % columns) * size
		y := (i / columns) * size
		fill(out, x, y, size, size, c)
	}
	return out, nil
}

func fill(b *Bitmap, x0, y0, w, h int, c Color) {
	for y := y0; y < y0+h; y++ {
		for x := x0; x < x0+w; x++ {
			i := b.PixOffset(x, y)
			b.Pix[i] = c.R
			b.Pix[i+1] = c.G
			b.Pix[i+2] = c.B
		}
	}
}
