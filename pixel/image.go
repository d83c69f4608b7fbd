package pixel

import (
	"fmt"
	"image"

	"golang.org/x/image/draw"
)

// FromImage copies img into a Bitmap. Images reporting themselves opaque
// become RGB, everything else RGBA with straight alpha.
func FromImage(img image.Image) (*Bitmap, error) {
	r := img.Bounds()
	if r.Empty() {
		return nil, fmt.Errorf("%w: image %dx%d", ErrInvalidDimensions, r.Dx(), r.Dy())
	}

	src, ok := img.(*image.NRGBA)
	if !ok {
		src = image.NewNRGBA(image.Rect(0, 0, r.Dx(), r.Dy()))
		draw.Draw(src, src.Rect, img, r.Min, draw.Src)
	}

	format := FormatRGBA
	if o, ok := img.(interface{ Opaque() bool }); ok && o.Opaque() {
		format = FormatRGB
	}
	return fromNRGBA(src, format), nil
}

// Image returns the bitmap as an *image.NRGBA. RGB pixels get alpha 255.
func (b *Bitmap) Image() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, b.Width, b.Height))
	switch b.Format {
	case FormatRGBA:
		copy(img.Pix, b.Pix)
	case FormatRGB:
		for i, j := 0, 0; i < len(b.Pix); i, j = i+3, j+4 {
			img.Pix[j] = b.Pix[i]
			img.Pix[j+1] = b.Pix[i+1]
			img.Pix[j+2] = b.Pix[i+2]
			img.Pix[j+3] = 0xff
		}
	}
	return img
}

// fromNRGBA converts src to format. Dropping alpha flattens onto white.
func fromNRGBA(src *image.NRGBA, format Format) *Bitmap {
	r := src.Rect
	w, h := r.Dx(), r.Dy()
	ch := format.Channels()
	out := &Bitmap{Width: w, Height: h, Format: format, Pix: make([]uint8, w*h*ch)}
	for y := range h {
		row := src.Pix[src.PixOffset(r.Min.X, r.Min.Y+y):]
		for x := range w {
			s := row[x*4 : x*4+4 : x*4+4]
			d := out.Pix[(y*w+x)*ch:]
			if format == FormatRGBA {
				copy(d[:4], s)
				continue
			}
			a := uint32(s[3])
			for c := range 3 {
				d[c] = uint8((uint32(s[c])*a + 0xff*(0xff-a) + 0x7f) / 0xff)
			}
		}
	}
	return out
}
