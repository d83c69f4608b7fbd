// Package palette reads and writes extracted palettes: RIFF PAL documents
// and plain .hex lists with one rrggbb colour per line.
package palette

import (
	"bufio"
	"fmt"
	"image/color"
	"io"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"pixlgen/pixel"
)

// ReadHex parses one colour per line, with or without a leading '#'. Blank
// lines and lines starting with ';' are skipped.
func ReadHex(r io.Reader) (pixel.Palette, error) {
	var res pixel.Palette
	sc := bufio.NewScanner(r)
	for line := 1; sc.Scan(); line++ {
		s := strings.TrimSpace(sc.Text())
		if s == "" || strings.HasPrefix(s, ";") {
			continue
		}
		if !strings.HasPrefix(s, "#") {
			s = "#" + s
		}

		col, err := colorful.Hex(s)
		if err != nil {
			return res, fmt.Errorf("could not read color on line %d: %w", line, err)
		}
		r, g, b := col.RGB255()
		res = append(res, pixel.Color{R: r, G: g, B: b})
	}
	if err := sc.Err(); err != nil {
		return res, fmt.Errorf("could not read hex palette: %w", err)
	}
	return res, nil
}

// WriteHex writes the palette as lowercase rrggbb lines.
func WriteHex(w io.Writer, p pixel.Palette) error {
	bw := bufio.NewWriter(w)
	for _, h := range p.Hex() {
		if _, err := fmt.Fprintln(bw, strings.TrimPrefix(h, "#")); err != nil {
			return fmt.Errorf("could not write hex palette: %w", err)
		}
	}
	return bw.Flush()
}

// ToColorPalette converts p for use with image.Paletted. With transparent
// set, a fully transparent entry is appended.
func ToColorPalette(p pixel.Palette, transparent bool) color.Palette {
	res := make(color.Palette, 0, len(p)+1)
	for _, c := range p {
		res = append(res, color.NRGBA{R: c.R, G: c.G, B: c.B, A: 0xff})
	}
	if transparent {
		res = append(res, color.NRGBA{})
	}
	return res
}

// FromColorPalette converts every entry to 8-bit RGB. Fully transparent
// entries are skipped.
func FromColorPalette(p color.Palette) pixel.Palette {
	res := make(pixel.Palette, 0, len(p))
	for _, c := range p {
		n := color.NRGBAModel.Convert(c).(color.NRGBA)
		if n.A == 0 {
			continue
		}
		res = append(res, pixel.Color{R: n.R, G: n.G, B: n.B})
	}
	return res
}
