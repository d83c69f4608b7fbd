package convert

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync/atomic"

	"github.com/alecthomas/kong"
	"github.com/lucasb-eyer/go-colorful"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"pixlgen/parallel"
	"pixlgen/pixel"
)

var paletteExports = []string{"png", "pal", "hex"}

type CLICmd struct {
	Scan         string      `help:"Source folder to scan" default:"."`
	Dest         string      `help:"Destination folder for pixel art. Relative to scan dir if not absolute." default:"pixelated"`
	Width        int         `help:"Canvas width, 0 keeps the source width" default:"0" group:"canvas"`
	Height       int         `help:"Canvas height, 0 keeps the source height" default:"0" group:"canvas"`
	Proportional bool        `help:"Keep the aspect ratio and center the image on the canvas" default:"false" group:"canvas"`
	Transparent  bool        `help:"Transparent canvas background, keeps the source alpha" default:"false" group:"canvas"`
	Brightness   float64     `help:"Brightness multiplier" default:"1.0" group:"tone"`
	Contrast     float64     `help:"Contrast multiplier around mid-gray" default:"1.0" group:"tone"`
	PixelSize    int         `help:"Size of one pixel art block in canvas pixels" default:"8" group:"pixelation"`
	Colors       int         `help:"Number of palette colors" default:"16" group:"palette"`
	Seed         uint64      `help:"Clustering seed" default:"42" group:"palette"`
	Restarts     int         `help:"Clustering restarts, the best one is kept" default:"10" group:"palette"`
	Iterations   int         `help:"Maximum iterations per clustering restart" default:"300" group:"palette"`
	Tolerance    float64     `help:"Stop a restart once its centers move less than this fraction of the color variance, negative runs to exact convergence" default:"1e-4" group:"palette"`
	Export       []string    `help:"Palette files to write next to each image (png, pal, hex)" default:"png" group:"export"`
	SwatchSize   int         `help:"Palette swatch size in pixels" default:"50" group:"export"`
	Columns      int         `help:"Palette swatches per row" default:"8" group:"export"`
	Background   string      `help:"Palette swatch background color" default:"#ffffff" group:"export"`
	Format       string      `help:"Output format of pixel art" enum:"png,gif,jpeg,bmp,tiff" default:"png" group:"export"`
	SwatchColor  pixel.Color `kong:"-"`
}

func (c *CLICmd) Validate(kctx *kong.Context) error {
	scanDir, err := filepath.Abs(c.Scan)
	var info os.FileInfo
	if err == nil {
		if info, err = os.Stat(scanDir); err == nil && !info.IsDir() {
			err = fmt.Errorf("not a directory")
		}
	}
	if err != nil {
		return fmt.Errorf("invalid scan path %q: %w", c.Scan, err)
	}
	c.Scan = scanDir

	if !filepath.IsAbs(c.Dest) {
		c.Dest = filepath.Join(scanDir, c.Dest)
	}

	switch {
	case c.Width < 0:
		return fmt.Errorf("invalid canvas width: %d", c.Width)
	case c.Height < 0:
		return fmt.Errorf("invalid canvas height: %d", c.Height)
	}

	for _, e := range c.Export {
		if !slices.Contains(paletteExports, e) {
			return fmt.Errorf("unsupported palette export %q, should be one of %s", e, strings.Join(paletteExports, ", "))
		}
	}

	if c.SwatchColor, err = parseHexColor(c.Background); err != nil {
		return err
	}

	// Width and height depend on the source, check the rest now.
	p := c.params(max(c.Width, c.PixelSize, 1), max(c.Height, c.PixelSize, 1))
	if err := p.Validate(); err != nil {
		return err
	}
	if c.SwatchSize < 1 {
		return fmt.Errorf("invalid swatch size: %d", c.SwatchSize)
	}
	if c.Columns < 1 {
		return fmt.Errorf("invalid number of columns: %d", c.Columns)
	}

	return nil
}

func (c *CLICmd) params(width, height int) pixel.Params {
	if c.Width > 0 {
		width = c.Width
	}
	if c.Height > 0 {
		height = c.Height
	}

	return pixel.Params{
		Canvas: pixel.CanvasSpec{
			Width:        width,
			Height:       height,
			Proportional: c.Proportional,
			Transparent:  c.Transparent,
		},
		Tone: pixel.ToneParams{
			Brightness: c.Brightness,
			Contrast:   c.Contrast,
		},
		Pixelation: pixel.PixelationParams{BlockSize: c.PixelSize},
		Palette: pixel.PaletteParams{
			Colors:        c.Colors,
			Seed:          c.Seed,
			Restarts:      c.Restarts,
			MaxIterations: c.Iterations,
			Tolerance:     c.Tolerance,
		},
	}
}

func (c *CLICmd) Run(worker parallel.WorkerFunc, wait parallel.WaitFunc) error {
	if err := os.MkdirAll(c.Dest, 0o755); err != nil {
		return fmt.Errorf("unable to create destination folder %q: %w", c.Dest, err)
	}

	files, err := os.ReadDir(c.Scan)
	if err != nil {
		return fmt.Errorf("unable to read folder %q: %w", c.Scan, err)
	}

	var processedCount, errCount atomic.Uint64
	for _, file := range files {
		if file.IsDir() {
			continue
		}

		worker(func(fileName string) func() {
			return func() {
				logger := slog.Default().With("file", filepath.Join(c.Scan, fileName))
				if err := c.convertFile(logger, fileName); err != nil {
					errCount.Add(1)
					logger.Error("could not convert image", "error", err)
					return
				}
				processedCount.Add(1)
			}
		}(file.Name()))
	}

	wait(true)

	processed := processedCount.Load()
	errors := errCount.Load()
	slog.Info("stats", "processed", processed, "errors", errors,
		"total", processed+errors)

	if errors > 0 {
		return fmt.Errorf("error processing %d files", errors)
	}
	return nil
}

func (c *CLICmd) convertFile(logger *slog.Logger, fileName string) error {
	imgFile, err := os.Open(filepath.Join(c.Scan, fileName))
	if err != nil {
		return fmt.Errorf("could not open image: %w", err)
	}
	defer func() {
		if closeErr := imgFile.Close(); closeErr != nil {
			logger.Error("could not close source file", "error", closeErr)
		}
	}()

	img, imgType, err := image.Decode(imgFile)
	if err != nil {
		return fmt.Errorf("could not decode image: %w", err)
	}

	src, err := pixel.FromImage(img)
	if err != nil {
		return err
	}

	params := c.params(src.Width, src.Height)
	logger.Info("converting", "type", imgType, "width", params.Canvas.Width, "height", params.Canvas.Height,
		"pixel_size", params.Pixelation.BlockSize, "colors", params.Palette.Colors)

	out, pal, err := pixel.Convert(src, params)
	if err != nil {
		return err
	}

	base := strings.TrimSuffix(fileName, filepath.Ext(fileName))
	if err := saveImage(out, pal, c.Format, c.Dest, base); err != nil {
		return err
	}

	if len(pal) == 0 {
		logger.Warn("image has no opaque pixels, skipping palette export")
		return nil
	}
	logger.Info("extracted palette", "colors", pal.Hex())

	for _, e := range c.Export {
		if err := exportPalette(pal, e, c.SwatchSize, c.Columns, c.SwatchColor, c.Dest, base); err != nil {
			return err
		}
	}
	return nil
}

func parseHexColor(s string) (pixel.Color, error) {
	col, err := colorful.Hex(s)
	if err != nil {
		return pixel.Color{}, fmt.Errorf("invalid color %q, should be #RGB or #RRGGBB: %w", s, err)
	}
	r, g, b := col.RGB255()
	return pixel.Color{R: r, G: g, B: b}, nil
}
