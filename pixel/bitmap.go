package pixel

import (
	"fmt"

	"github.com/lucasb-eyer/go-colorful"
)

// Format is the pixel layout of a Bitmap.
type Format int

const (
	FormatRGB Format = iota + 1
	FormatRGBA
)

// Channels returns the number of bytes per pixel, 0 for unknown formats.
func (f Format) Channels() int {
	switch f {
	case FormatRGB:
		return 3
	case FormatRGBA:
		return 4
	default:
		return 0
	}
}

func (f Format) String() string {
	switch f {
	case FormatRGB:
		return "RGB"
	case FormatRGBA:
		return "RGBA"
	default:
		return fmt.Sprintf("Format(%d)", int(f))
	}
}

// Bitmap is a decoded, row-major image with 8-bit channels. RGBA pixels are
// not premultiplied.
type Bitmap struct {
	Width  int
	Height int
	Format Format
	// Pix holds Width*Height pixels of Format.Channels() bytes each. The
	// pixel at (x, y) starts at Pix[(y*Width+x)*Format.Channels()].
	Pix []uint8
}

// NewBitmap allocates a zeroed bitmap.
func NewBitmap(width, height int, format Format) (*Bitmap, error) {
	if format.Channels() == 0 {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
	if width < 1 || height < 1 {
		return nil, fmt.Errorf("%w: bitmap %dx%d", ErrInvalidDimensions, width, height)
	}
	return &Bitmap{
		Width:  width,
		Height: height,
		Format: format,
		Pix:    make([]uint8, width*height*format.Channels()),
	}, nil
}

// Validate checks the format and that the buffer matches the dimensions.
func (b *Bitmap) Validate() error {
	if b == nil {
		return fmt.Errorf("%w: nil bitmap", ErrInvalidDimensions)
	}
	ch := b.Format.Channels()
	if ch == 0 {
		return fmt.Errorf("%w: %s", ErrUnsupportedFormat, b.Format)
	}
	if b.Width < 1 || b.Height < 1 {
		return fmt.Errorf("%w: bitmap %dx%d", ErrInvalidDimensions, b.Width, b.Height)
	}
	if len(b.Pix) != b.Width*b.Height*ch {
		return fmt.Errorf("%w: %dx%d %s bitmap has %d bytes, want %d",
			ErrInvalidDimensions, b.Width, b.Height, b.Format, len(b.Pix), b.Width*b.Height*ch)
	}
	return nil
}

// Clone returns a deep copy.
func (b *Bitmap) Clone() *Bitmap {
	c := *b
	c.Pix = append([]uint8(nil), b.Pix...)
	return &c
}

// PixOffset returns the index of the first byte of the pixel at (x, y).
func (b *Bitmap) PixOffset(x, y int) int {
	return (y*b.Width + x) * b.Format.Channels()
}

// ColorAt returns the colour channels of the pixel at (x, y) and its alpha,
// 255 for RGB bitmaps.
func (b *Bitmap) ColorAt(x, y int) (Color, uint8) {
	i := b.PixOffset(x, y)
	c := Color{R: b.Pix[i], G: b.Pix[i+1], B: b.Pix[i+2]}
	if b.Format == FormatRGBA {
		return c, b.Pix[i+3]
	}
	return c, 0xff
}

// Color is an opaque 8-bit RGB colour.
type Color struct {
	R, G, B uint8
}

// Hex returns the colour as #rrggbb.
func (c Color) Hex() string {
	return colorful.Color{
		R: float64(c.R) / 255,
		G: float64(c.G) / 255,
		B: float64(c.B) / 255,
	}.Hex()
}

// Palette is the ordered list of colours produced by Quantize.
type Palette []Color

// Hex returns the #rrggbb form of every entry, in palette order.
func (p Palette) Hex() []string {
	res := make([]string, len(p))
	for i, c := range p {
		res[i] = c.Hex()
	}
	return res
}

// Index returns the position of c in the palette, or -1.
func (p Palette) Index(c Color) int {
	for i, v := range p {
		if v == c {
			return i
		}
	}
	return -1
}
