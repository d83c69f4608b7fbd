package pixel

import "fmt"

// PixelationParams controls the block size of the pixel grid.
type PixelationParams struct {
	BlockSize int
}

func (p PixelationParams) Validate() error {
	if p.BlockSize < 1 {
		return fmt.Errorf("%w: pixel block size %d", ErrInvalidParameter, p.BlockSize)
	}
	return nil
}

// GridSize returns the size of the pixel grid for a width x height image.
func (p PixelationParams) GridSize(width, height int) (int, int) {
	return width / p.BlockSize, height / p.BlockSize
}

// Downsample reduces src to floor(W/P) x floor(H/P) by point sampling the
// center of every block.
func Downsample(src *Bitmap, p PixelationParams) (*Bitmap, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if err := src.Validate(); err != nil {
		return nil, err
	}

	w, h := p.GridSize(src.Width, src.Height)
	if w == 0 || h == 0 {
		return nil, fmt.Errorf("%w: block size %d reduces %dx%d to %dx%d",
			ErrInvalidDimensions, p.BlockSize, src.Width, src.Height, w, h)
	}
	return nearest(src, w, h), nil
}

// Upscale point-samples src up to width x height, so every grid cell turns
// into a uniform block.
func Upscale(src *Bitmap, width, height int) (*Bitmap, error) {
	if width < 1 || height < 1 {
		return nil, fmt.Errorf("%w: upscale target %dx%d", ErrInvalidDimensions, width, height)
	}
	if err := src.Validate(); err != nil {
		return nil, err
	}
	return nearest(src, width, height), nil
}

// nearest maps destination pixel d to source pixel (2d+1)*S/(2D), the
// source pixel under the destination pixel's center.
func nearest(src *Bitmap, width, height int) *Bitmap {
	ch := src.Format.Channels()
	out := &Bitmap{Width: width, Height: height, Format: src.Format, Pix: make([]uint8, width*height*ch)}

	xs := make([]int, width)
	for x := range xs {
		xs[x] = ((2*x + 1) * src.Width) / (2 * width) * ch
	}

	for y := range height {
		sy := ((2*y + 1) * src.Height) / (2 * height)
		srow := src.Pix[sy*src.Width*ch:]
		drow := out.Pix[y*width*ch:]
		for x, sx := range xs {
			copy(drow[x*ch:x*ch+ch], srow[sx:sx+ch])
		}
	}
	return out
}
