package swatch

import (
	"fmt"
	"image"
	_ "image/gif"
	"image/png"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/lucasb-eyer/go-colorful"

	"pixlgen/fileop"
	"pixlgen/palette"
	"pixlgen/pixel"
)

type CLICmd struct {
	Palette    string      `arg:"" help:"Palette file: RIFF .pal, .hex list or a paletted image" type:"existingfile"`
	Output     string      `help:"Destination PNG, defaults to the palette name with a .png extension" short:"o"`
	Size       int         `help:"Swatch size in pixels" default:"50"`
	Columns    int         `help:"Swatches per row" default:"8"`
	Background string      `help:"Background color of unused cells" default:"#ffffff"`
	Color      pixel.Color `kong:"-"`
}

func (c *CLICmd) Validate(kctx *kong.Context) error {
	if c.Output == "" {
		c.Output = strings.TrimSuffix(c.Palette, filepath.Ext(c.Palette)) + ".png"
	}

	col, err := colorful.Hex(c.Background)
	if err != nil {
		return fmt.Errorf("invalid background color %q: %w", c.Background, err)
	}
	r, g, b := col.RGB255()
	c.Color = pixel.Color{R: r, G: g, B: b}

	if c.Size < 1 {
		return fmt.Errorf("invalid swatch size: %d", c.Size)
	}
	if c.Columns < 1 {
		return fmt.Errorf("invalid number of columns: %d", c.Columns)
	}
	return nil
}

func (c *CLICmd) Run() error {
	logger := slog.Default().With("palette", c.Palette)

	pal, err := Load(c.Palette)
	if err != nil {
		return err
	}
	logger.Info("loaded palette", "colors", len(pal))

	sw, err := pixel.RenderSwatchesOn(pal, c.Size, c.Columns, c.Color)
	if err != nil {
		return fmt.Errorf("could not render swatches: %w", err)
	}

	err = fileop.WriteFile(filepath.Dir(c.Output), filepath.Base(c.Output), func(w io.Writer) error {
		if err := png.Encode(w, sw.Image()); err != nil {
			return fmt.Errorf("could not encode PNG %q: %w", c.Output, err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	logger.Info("saved swatches", "output", c.Output, "width", sw.Width, "height", sw.Height)
	return nil
}

// Load reads a palette from a RIFF PAL document, a hex list or the colour
// table of a paletted image, chosen by extension.
func Load(name string) (pixel.Palette, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, fmt.Errorf("could not open palette %q: %w", name, err)
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(name)) {
	case ".pal":
		pal, err := palette.ReadRIFF(f)
		if err != nil {
			return nil, fmt.Errorf("could not read palette %q: %w", name, err)
		}
		return pal, nil
	case ".hex", ".txt":
		pal, err := palette.ReadHex(f)
		if err != nil {
			return nil, fmt.Errorf("could not read palette %q: %w", name, err)
		}
		return pal, nil
	}

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("could not decode %q: %w", name, err)
	}
	p, ok := img.(*image.Paletted)
	if !ok {
		return nil, fmt.Errorf("%q is not a paletted image", name)
	}
	return palette.FromColorPalette(p.Palette), nil
}
