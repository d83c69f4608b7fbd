package pixel

import (
	"errors"
	"testing"
)

func TestCompositeDimensionsAndFormat(t *testing.T) {
	sources := map[string]*Bitmap{
		"rgb wide":  solid(t, 40, 10, FormatRGB, 10, 200, 30),
		"rgba tall": solid(t, 7, 30, FormatRGBA, 10, 200, 30, 255),
		"same size": solid(t, 32, 24, FormatRGB, 1, 2, 3),
	}
	for name, src := range sources {
		for _, proportional := range []bool{false, true} {
			for _, transparent := range []bool{false, true} {
				spec := CanvasSpec{Width: 32, Height: 24, Proportional: proportional, Transparent: transparent}
				out, err := Composite(src, spec)
				if err != nil {
					t.Fatalf("%s %+v: %v", name, spec, err)
				}
				if out.Width != 32 || out.Height != 24 {
					t.Errorf("%s %+v: size %dx%d, want 32x24", name, spec, out.Width, out.Height)
				}
				if out.Format != spec.Format() {
					t.Errorf("%s %+v: format %s, want %s", name, spec, out.Format, spec.Format())
				}
				if err := out.Validate(); err != nil {
					t.Errorf("%s %+v: %v", name, spec, err)
				}
			}
		}
	}
}

func TestCompositeSameSizeIsExact(t *testing.T) {
	src := solid(t, 4, 4, FormatRGBA, 0, 0, 0, 255)
	setPixel(src, 1, 1, 10, 20, 30, 0)
	setPixel(src, 2, 3, 200, 100, 50, 77)

	out, err := Composite(src, CanvasSpec{Width: 4, Height: 4, Proportional: true, Transparent: true})
	if err != nil {
		t.Fatal(err)
	}
	for i, v := range src.Pix {
		if out.Pix[i] != v {
			t.Fatalf("Pix[%d] = %d, want %d", i, out.Pix[i], v)
		}
	}
}

func TestCompositeRGBSourceGetsOpaqueAlpha(t *testing.T) {
	src := solid(t, 3, 3, FormatRGB, 5, 6, 7)
	out, err := Composite(src, CanvasSpec{Width: 3, Height: 3, Transparent: true})
	if err != nil {
		t.Fatal(err)
	}
	for y := range 3 {
		for x := range 3 {
			if c, a := out.ColorAt(x, y); c != (Color{5, 6, 7}) || a != 255 {
				t.Fatalf("ColorAt(%d, %d) = %v %d, want {5 6 7} 255", x, y, c, a)
			}
		}
	}
}

func TestCompositeFlattensOntoWhite(t *testing.T) {
	src := solid(t, 2, 1, FormatRGBA, 0, 0, 0, 0)
	setPixel(src, 1, 0, 100, 50, 0, 255)

	out, err := Composite(src, CanvasSpec{Width: 2, Height: 1})
	if err != nil {
		t.Fatal(err)
	}
	if c, _ := out.ColorAt(0, 0); c != White {
		t.Errorf("transparent pixel flattened to %v, want white", c)
	}
	if c, _ := out.ColorAt(1, 0); c != (Color{100, 50, 0}) {
		t.Errorf("opaque pixel = %v, want {100 50 0}", c)
	}
}

func TestCompositeProportionalLetterbox(t *testing.T) {
	src := solid(t, 4, 2, FormatRGB, 255, 0, 0)
	spec := CanvasSpec{Width: 8, Height: 8, Proportional: true}

	if got := spec.Placement(4, 2); got.Min.X != 0 || got.Min.Y != 2 || got.Dx() != 8 || got.Dy() != 4 {
		t.Fatalf("Placement = %v, want (0,2)-(8,6)", got)
	}

	t.Run("transparent", func(t *testing.T) {
		spec := spec
		spec.Transparent = true
		out, err := Composite(src, spec)
		if err != nil {
			t.Fatal(err)
		}
		for _, y := range []int{0, 1, 6, 7} {
			for x := range 8 {
				if _, a := out.ColorAt(x, y); a != 0 {
					t.Fatalf("letterbox pixel (%d, %d) alpha = %d, want 0", x, y, a)
				}
			}
		}
		c, a := out.ColorAt(4, 4)
		if a != 255 || c.R < 250 || c.G > 5 || c.B > 5 {
			t.Errorf("center pixel = %v alpha %d, want red and opaque", c, a)
		}
	})

	t.Run("opaque", func(t *testing.T) {
		out, err := Composite(src, spec)
		if err != nil {
			t.Fatal(err)
		}
		for _, y := range []int{0, 7} {
			for x := range 8 {
				if c, _ := out.ColorAt(x, y); c != White {
					t.Fatalf("letterbox pixel (%d, %d) = %v, want white", x, y, c)
				}
			}
		}
		if c, _ := out.ColorAt(4, 4); c.R < 250 || c.G > 5 || c.B > 5 {
			t.Errorf("center pixel = %v, want red", c)
		}
	})
}

func TestCompositeInvalid(t *testing.T) {
	src := solid(t, 2, 2, FormatRGB, 0, 0, 0)
	tests := []struct {
		name string
		src  *Bitmap
		spec CanvasSpec
		want error
	}{
		{"zero width", src, CanvasSpec{Width: 0, Height: 4}, ErrInvalidDimensions},
		{"negative height", src, CanvasSpec{Width: 4, Height: -4}, ErrInvalidDimensions},
		{"bad format", &Bitmap{Width: 1, Height: 1, Format: Format(9), Pix: []uint8{1, 2}}, CanvasSpec{Width: 4, Height: 4}, ErrUnsupportedFormat},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Composite(tt.src, tt.spec); !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
		})
	}
}
