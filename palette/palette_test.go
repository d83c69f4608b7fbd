package palette

import (
	"bytes"
	"encoding/binary"
	"image/color"
	"strings"
	"testing"

	"pixlgen/pixel"
)

var testPalette = pixel.Palette{{255, 0, 0}, {0, 128, 255}, {1, 2, 3}}

func equal(a, b pixel.Palette) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestRIFFLayout(t *testing.T) {
	var buf bytes.Buffer
	n, err := WriteRIFF(&buf, testPalette)
	if err != nil {
		t.Fatal(err)
	}

	b := buf.Bytes()
	if n != int64(len(b)) {
		t.Errorf("WriteRIFF returned %d, wrote %d bytes", n, len(b))
	}
	if want := 8 + 4 + 8 + 4 + 3*4; len(b) != want {
		t.Fatalf("document is %d bytes, want %d", len(b), want)
	}
	if string(b[0:4]) != "RIFF" || string(b[8:12]) != "PAL " || string(b[12:16]) != "data" {
		t.Errorf("unexpected header % x", b[:16])
	}
	if size := binary.LittleEndian.Uint32(b[4:8]); int(size) != len(b)-8 {
		t.Errorf("RIFF size = %d, want %d", size, len(b)-8)
	}
	if b[20] != 0x00 || b[21] != 0x03 {
		t.Errorf("palVersion bytes = % x, want 00 03", b[20:22])
	}
	if count := binary.LittleEndian.Uint16(b[22:24]); count != 3 {
		t.Errorf("palNumEntries = %d, want 3", count)
	}
}

func TestRIFFRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	if _, err := WriteRIFF(&buf, testPalette, pixel.Palette{{9, 9, 9}}); err != nil {
		t.Fatal(err)
	}

	got, err := ReadRIFF(&buf)
	if err != nil {
		t.Fatal(err)
	}
	want := append(append(pixel.Palette{}, testPalette...), pixel.Color{R: 9, G: 9, B: 9})
	if !equal(got, want) {
		t.Errorf("ReadRIFF = %v, want %v", got, want)
	}
}

func TestReadRIFFRejectsOtherForms(t *testing.T) {
	doc := []byte("RIFF\x04\x00\x00\x00WAVE")
	if _, err := ReadRIFF(bytes.NewReader(doc)); err == nil {
		t.Error("expected an error for a WAVE document")
	}
}

func TestReadRIFFTruncated(t *testing.T) {
	var buf bytes.Buffer
	if _, err := WriteRIFF(&buf, testPalette); err != nil {
		t.Fatal(err)
	}
	if _, err := ReadRIFF(bytes.NewReader(buf.Bytes()[:buf.Len()-3])); err == nil {
		t.Error("expected an error for a truncated document")
	}
}

func TestHexRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteHex(&buf, testPalette); err != nil {
		t.Fatal(err)
	}
	if want := "ff0000\n0080ff\n010203\n"; buf.String() != want {
		t.Errorf("WriteHex = %q, want %q", buf.String(), want)
	}

	got, err := ReadHex(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if !equal(got, testPalette) {
		t.Errorf("ReadHex = %v, want %v", got, testPalette)
	}
}

func TestReadHex(t *testing.T) {
	in := "; exported\n#ff0000\n\n  0080ff  \n#123\n"
	got, err := ReadHex(strings.NewReader(in))
	if err != nil {
		t.Fatal(err)
	}
	want := pixel.Palette{{255, 0, 0}, {0, 128, 255}, {0x11, 0x22, 0x33}}
	if !equal(got, want) {
		t.Errorf("ReadHex = %v, want %v", got, want)
	}

	if _, err := ReadHex(strings.NewReader("zzzzzz\n")); err == nil {
		t.Error("expected an error for an invalid color")
	}
}

func TestColorPalette(t *testing.T) {
	cp := ToColorPalette(testPalette, true)
	if len(cp) != 4 {
		t.Fatalf("len = %d, want 4", len(cp))
	}
	if cp[3] != (color.NRGBA{}) {
		t.Errorf("last entry = %v, want transparent", cp[3])
	}

	if got := FromColorPalette(cp); !equal(got, testPalette) {
		t.Errorf("FromColorPalette = %v, want %v", got, testPalette)
	}
}
