package pixel

import (
	"errors"
	"math"
	"testing"
)

func TestAdjustToneIdentity(t *testing.T) {
	src, _ := NewBitmap(16, 16, FormatRGBA)
	for i := range src.Pix {
		src.Pix[i] = uint8(i)
	}

	out, err := AdjustTone(src, DefaultTone)
	if err != nil {
		t.Fatal(err)
	}
	for i, v := range src.Pix {
		if out.Pix[i] != v {
			t.Fatalf("Pix[%d] = %d, want %d", i, out.Pix[i], v)
		}
	}
}

func TestToneChannel(t *testing.T) {
	tests := []struct {
		v, brightness, contrast float64
		want                    uint8
	}{
		{100, 1.5, 2, 172},
		{200, 1.5, 2, 255},
		{10, 1, 2, 0},
		{128, 1, 0.3, 128},
		{255, 0.5, 1, 128},
		{3, 0.5, 1, 2},
		{0, 2, 0.5, 64},
	}
	for _, tt := range tests {
		p := ToneParams{Brightness: tt.brightness, Contrast: tt.contrast}
		if got := toneChannel(tt.v, p); got != tt.want {
			t.Errorf("toneChannel(%v, %+v) = %d, want %d", tt.v, p, got, tt.want)
		}
	}
}

func TestAdjustToneKeepsAlpha(t *testing.T) {
	src := solid(t, 2, 2, FormatRGBA, 100, 100, 100, 0)
	setPixel(src, 1, 1, 100, 100, 100, 37)

	out, err := AdjustTone(src, ToneParams{Brightness: 2, Contrast: 2})
	if err != nil {
		t.Fatal(err)
	}
	if c, a := out.ColorAt(0, 0); c != (Color{255, 255, 255}) || a != 0 {
		t.Errorf("ColorAt(0, 0) = %v %d, want white with alpha 0", c, a)
	}
	if _, a := out.ColorAt(1, 1); a != 37 {
		t.Errorf("alpha = %d, want 37", a)
	}
	if src.Pix[0] != 100 {
		t.Errorf("source was modified")
	}
}

func TestAdjustToneInvalid(t *testing.T) {
	src := solid(t, 1, 1, FormatRGB, 1, 2, 3)
	for _, p := range []ToneParams{
		{Brightness: 0, Contrast: 1},
		{Brightness: 1, Contrast: -0.5},
		{Brightness: math.NaN(), Contrast: 1},
		{Brightness: 1, Contrast: math.Inf(1)},
	} {
		if _, err := AdjustTone(src, p); !errors.Is(err, ErrInvalidParameter) {
			t.Errorf("AdjustTone(%+v) err = %v, want %v", p, err, ErrInvalidParameter)
		}
	}
}
