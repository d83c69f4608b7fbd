package pixel

import "errors"

// Errors returned by the pipeline stages. They are always wrapped with the
// offending values, test for them with errors.Is.
var (
	// ErrInvalidDimensions reports a canvas, bitmap or downsampled size below 1.
	ErrInvalidDimensions = errors.New("invalid dimensions")
	// ErrInvalidParameter reports a tone, pixelation, palette or swatch
	// parameter outside its domain.
	ErrInvalidParameter = errors.New("invalid parameter")
	// ErrUnsupportedFormat reports a bitmap that is neither RGB nor RGBA.
	ErrUnsupportedFormat = errors.New("unsupported format")
)
