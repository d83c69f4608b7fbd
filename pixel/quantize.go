package pixel

import (
	"fmt"
	"math"

	"github.com/muesli/clusters"
	"github.com/muesli/kmeans"
)

// PaletteParams configures Quantize. Zero values of the tuning fields fall
// back to the defaults of DefaultPaletteParams.
type PaletteParams struct {
	// Colors is the requested palette size K.
	Colors int
	// Seed makes the clustering reproducible.
	Seed uint64
	// Restarts is the number of independently seeded runs, the one with the
	// lowest distortion is kept.
	Restarts int
	// MaxIterations caps every run.
	MaxIterations int
	// Tolerance stops a run once the summed squared center movement of an
	// iteration drops to Tolerance times the mean per-channel variance of
	// the clustered colours. Zero selects the default, ExactConvergence
	// (or any negative value) runs until no label changes.
	Tolerance float64
	// Workers runs restarts concurrently when greater than 1. The outcome
	// is the same as with a single worker.
	Workers int
	// Plotter, when set, is called after every assignment step. It must be
	// safe for concurrent use when Workers > 1.
	Plotter kmeans.Plotter
}

// ExactConvergence as PaletteParams.Tolerance disables the movement test.
const ExactConvergence = -1.0

var DefaultPaletteParams = PaletteParams{
	Colors:        16,
	Seed:          42,
	Restarts:      10,
	MaxIterations: 300,
	Tolerance:     1e-4,
}

func (p PaletteParams) Validate() error {
	switch {
	case p.Colors < 1:
		return fmt.Errorf("%w: color count %d", ErrInvalidParameter, p.Colors)
	case p.Restarts < 0:
		return fmt.Errorf("%w: restarts %d", ErrInvalidParameter, p.Restarts)
	case p.MaxIterations < 0:
		return fmt.Errorf("%w: max iterations %d", ErrInvalidParameter, p.MaxIterations)
	case math.IsNaN(p.Tolerance) || math.IsInf(p.Tolerance, 0):
		return fmt.Errorf("%w: tolerance %v", ErrInvalidParameter, p.Tolerance)
	}
	return nil
}

func (p PaletteParams) withDefaults() PaletteParams {
	if p.Restarts == 0 {
		p.Restarts = DefaultPaletteParams.Restarts
	}
	if p.MaxIterations == 0 {
		p.MaxIterations = DefaultPaletteParams.MaxIterations
	}
	if p.Tolerance == 0 {
		p.Tolerance = DefaultPaletteParams.Tolerance
	}
	return p
}

// Quantize replaces every pixel colour of src with its nearest cluster
// center and returns the centers in cluster order.
//
// Fully transparent pixels of an RGBA bitmap are neither clustered nor
// changed. If there is nothing to cluster the result is a copy of src and
// an empty palette. K is clamped to the number of clustered pixels and
// never exceeds the number of distinct colours among them.
func Quantize(src *Bitmap, p PaletteParams) (*Bitmap, Palette, error) {
	if err := p.Validate(); err != nil {
		return nil, nil, err
	}
	if err := src.Validate(); err != nil {
		return nil, nil, err
	}
	p = p.withDefaults()

	points, positions := observations(src)
	out := src.Clone()
	if len(points) == 0 {
		logger().Debug("nothing to quantize", "width", src.Width, "height", src.Height)
		return out, Palette{}, nil
	}

	part, err := bestPartition(points, lloydConfig{
		k:             min(p.Colors, len(points)),
		seed:          p.Seed,
		restarts:      p.Restarts,
		maxIterations: p.MaxIterations,
		tolerance:     p.Tolerance,
		workers:       p.Workers,
		plotter:       p.Plotter,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("could not cluster %d colors: %w", len(points), err)
	}

	pal := make(Palette, 0, len(part.clusters))
	entry := make([]int, len(part.clusters))
	for ci, c := range part.clusters {
		// the final assignment fills the observation lists
		entry[ci] = -1
		if len(c.Observations) == 0 {
			continue
		}
		entry[ci] = len(pal)
		pal = append(pal, Color{
			R: clampChannel(c.Center[0]),
			G: clampChannel(c.Center[1]),
			B: clampChannel(c.Center[2]),
		})
	}

	for i, off := range positions {
		c := pal[entry[part.labels[i]]]
		out.Pix[off] = c.R
		out.Pix[off+1] = c.G
		out.Pix[off+2] = c.B
	}
	return out, pal, nil
}

// observations returns the colour of every pixel that takes part in the
// clustering and the offset of that pixel in b.Pix.
func observations(b *Bitmap) (clusters.Observations, []int) {
	ch := b.Format.Channels()
	n := b.Width * b.Height
	points := make(clusters.Observations, 0, n)
	positions := make([]int, 0, n)
	for off := 0; off < len(b.Pix); off += ch {
		if b.Format == FormatRGBA && b.Pix[off+3] == 0 {
			continue
		}
		points = append(points, clusters.Coordinates{
			float64(b.Pix[off]),
			float64(b.Pix[off+1]),
			float64(b.Pix[off+2]),
		})
		positions = append(positions, off)
	}
	return points, positions
}
