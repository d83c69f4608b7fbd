package pixel

import "testing"

func solid(t *testing.T, w, h int, format Format, px ...uint8) *Bitmap {
	t.Helper()
	b, err := NewBitmap(w, h, format)
	if err != nil {
		t.Fatalf("NewBitmap(%d, %d, %s): %v", w, h, format, err)
	}
	ch := format.Channels()
	if len(px) != ch {
		t.Fatalf("solid: got %d channel values, want %d", len(px), ch)
	}
	for i := 0; i < len(b.Pix); i += ch {
		copy(b.Pix[i:i+ch], px)
	}
	return b
}

func setPixel(b *Bitmap, x, y int, px ...uint8) {
	copy(b.Pix[b.PixOffset(x, y):], px)
}
