package convert

import (
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"sync"

	"golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	"golang.org/x/image/tiff"

	"pixlgen/fileop"
	"pixlgen/palette"
	"pixlgen/pixel"
)

func saveImage(out *pixel.Bitmap, pal pixel.Palette, outType, destDir, baseName string) error {
	img := out.Image()
	destName := fmt.Sprintf("%s.%s", baseName, outType)

	return fileop.WriteFile(destDir, destName, func(w io.Writer) error {
		switch outType {
		case "gif":
			if err := gif.Encode(w, paletted(img, pal, out.Format == pixel.FormatRGBA), nil); err != nil {
				return fmt.Errorf("could not encode GIF destination %q: %w", destName, err)
			}
		case "jpeg":
			if err := jpeg.Encode(w, img, &jpeg.Options{Quality: 100}); err != nil {
				return fmt.Errorf("could not encode JPEG destination %q: %w", destName, err)
			}
		case "png":
			if err := encodePNG(w, img); err != nil {
				return fmt.Errorf("could not encode PNG destination %q: %w", destName, err)
			}
		case "bmp":
			if err := bmp.Encode(w, img); err != nil {
				return fmt.Errorf("could not encode BMP destination %q: %w", destName, err)
			}
		case "tiff":
			if err := tiff.Encode(w, img, nil); err != nil {
				return fmt.Errorf("could not encode TIFF destination %q: %w", destName, err)
			}
		default:
			return fmt.Errorf("unsupported output format: %s", outType)
		}
		return nil
	})
}

// paletted maps img onto the extracted palette so the GIF encoder does not
// requantize it. Palettes too large for GIF are left to the encoder.
func paletted(img image.Image, pal pixel.Palette, transparent bool) image.Image {
	cp := palette.ToColorPalette(pal, transparent)
	if len(pal) == 0 || len(cp) > 256 {
		return img
	}

	r := img.Bounds()
	dest := image.NewPaletted(r, cp)
	draw.Draw(dest, r, img, r.Min, draw.Src)
	return dest
}

func exportPalette(pal pixel.Palette, kind string, swatchSize, columns int, background pixel.Color, destDir, baseName string) error {
	destName := fmt.Sprintf("%s.palette.%s", baseName, kind)

	return fileop.WriteFile(destDir, destName, func(w io.Writer) error {
		switch kind {
		case "png":
			sw, err := pixel.RenderSwatchesOn(pal, swatchSize, columns, background)
			if err != nil {
				return fmt.Errorf("could not render swatches: %w", err)
			}
			if err := encodePNG(w, sw.Image()); err != nil {
				return fmt.Errorf("could not encode PNG palette %q: %w", destName, err)
			}
		case "pal":
			if _, err := palette.WriteRIFF(w, pal); err != nil {
				return fmt.Errorf("could not write RIFF palette %q: %w", destName, err)
			}
		case "hex":
			if err := palette.WriteHex(w, pal); err != nil {
				return fmt.Errorf("could not write hex palette %q: %w", destName, err)
			}
		default:
			return fmt.Errorf("unsupported palette export: %s", kind)
		}
		return nil
	})
}

func encodePNG(w io.Writer, img image.Image) error {
	enc := png.Encoder{
		CompressionLevel: png.BestCompression,
		BufferPool:       pngPool,
	}
	return enc.Encode(w, img)
}

type pngEncoderBufferPool struct {
	pool sync.Pool
}

func (p *pngEncoderBufferPool) Get() *png.EncoderBuffer {
	return p.pool.Get().(*png.EncoderBuffer)
}

func (p *pngEncoderBufferPool) Put(buf *png.EncoderBuffer) {
	p.pool.Put(buf)
}

var pngPool = &pngEncoderBufferPool{
	pool: sync.Pool{
		New: func() any {
			return &png.EncoderBuffer{}
		},
	},
}
