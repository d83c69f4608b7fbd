package pixel

import (
	"fmt"
	"math"
)

// ToneParams are the multipliers applied by AdjustTone. 1.0 leaves the
// channel unchanged.
type ToneParams struct {
	Brightness float64
	Contrast   float64
}

// DefaultTone is the identity transform.
var DefaultTone = ToneParams{Brightness: 1, Contrast: 1}

func (p ToneParams) Validate() error {
	if !positive(p.Brightness) {
		return fmt.Errorf("%w: brightness %v", ErrInvalidParameter, p.Brightness)
	}
	if !positive(p.Contrast) {
		return fmt.Errorf("%w: contrast %v", ErrInvalidParameter, p.Contrast)
	}
	return nil
}

func positive(v float64) bool {
	return v > 0 && !math.IsInf(v, 1)
}

// AdjustTone returns a copy of src with brightness applied first and
// contrast recentered on mid-gray afterwards. Alpha is copied as is.
func AdjustTone(src *Bitmap, p ToneParams) (*Bitmap, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if err := src.Validate(); err != nil {
		return nil, err
	}

	var lut [256]uint8
	for v := range lut {
		lut[v] = toneChannel(float64(v), p)
	}

	out := src.Clone()
	ch := src.Format.Channels()
	for i := 0; i < len(out.Pix); i += ch {
		out.Pix[i] = lut[out.Pix[i]]
		out.Pix[i+1] = lut[out.Pix[i+1]]
		out.Pix[i+2] = lut[out.Pix[i+2]]
	}
	return out, nil
}

func toneChannel(v float64, p ToneParams) uint8 {
	v *= p.Brightness
	v = (v-128)*p.Contrast + 128
	return clampChannel(v)
}

// clampChannel rounds half away from zero and clamps to [0, 255].
func clampChannel(v float64) uint8 {
	v = math.Round(v)
	switch {
	case v <= 0:
		return 0
	case v >= 255:
		return 255
	default:
		return uint8(v)
	}
}
