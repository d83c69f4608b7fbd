package pixel

import "fmt"

// Params gathers the settings of one Convert call.
type Params struct {
	Canvas     CanvasSpec
	Tone       ToneParams
	Pixelation PixelationParams
	Palette    PaletteParams
}

// Validate checks every stage's parameters up front.
func (p Params) Validate() error {
	if err := p.Canvas.Validate(); err != nil {
		return err
	}
	if err := p.Tone.Validate(); err != nil {
		return err
	}
	if err := p.Pixelation.Validate(); err != nil {
		return err
	}
	if err := p.Palette.Validate(); err != nil {
		return err
	}
	w, h := p.Pixelation.GridSize(p.Canvas.Width, p.Canvas.Height)
	if w == 0 || h == 0 {
		return fmt.Errorf("%w: block size %d reduces canvas %dx%d to %dx%d",
			ErrInvalidDimensions, p.Pixelation.BlockSize, p.Canvas.Width, p.Canvas.Height, w, h)
	}
	return nil
}

// Convert turns src into pixel art on the configured canvas and returns it
// with the extracted palette. Nothing is returned if any stage fails.
func Convert(src *Bitmap, p Params) (*Bitmap, Palette, error) {
	if err := p.Validate(); err != nil {
		return nil, nil, err
	}

	canvas, err := Composite(src, p.Canvas)
	if err != nil {
		return nil, nil, fmt.Errorf("could not composite: %w", err)
	}

	toned, err := AdjustTone(canvas, p.Tone)
	if err != nil {
		return nil, nil, fmt.Errorf("could not adjust tone: %w", err)
	}

	grid, err := Downsample(toned, p.Pixelation)
	if err != nil {
		return nil, nil, fmt.Errorf("could not downsample: %w", err)
	}
	logger().Debug("downsampled", "block_size", p.Pixelation.BlockSize,
		"width", grid.Width, "height", grid.Height)

	quantized, pal, err := Quantize(grid, p.Palette)
	if err != nil {
		return nil, nil, fmt.Errorf("could not quantize: %w", err)
	}
	logger().Debug("quantized", "requested", p.Palette.Colors, "colors", len(pal))

	out, err := Upscale(quantized, p.Canvas.Width, p.Canvas.Height)
	if err != nil {
		return nil, nil, fmt.Errorf("could not upscale: %w", err)
	}
	return out, pal, nil
}
