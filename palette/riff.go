package palette

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"golang.org/x/image/riff"

	"pixlgen/pixel"
)

/*
typedef struct tagLOGPALETTE {
  WORD         palVersion;
  WORD         palNumEntries;
  PALETTEENTRY palPalEntry[1];
} LOGPALETTE;

typedef struct tagPALETTEENTRY {
  BYTE peRed;
  BYTE peGreen;
  BYTE peBlue;
  BYTE peFlags;
} PALETTEENTRY;
*/

const palVersion = 0x0300

var (
	riffType = riff.FourCC{'R', 'I', 'F', 'F'}
	palType  = riff.FourCC{'P', 'A', 'L', ' '}
	dataType = riff.FourCC{'d', 'a', 't', 'a'}
)

// ReadRIFF reads a RIFF PAL document. Colours of every data chunk, nested
// lists included, are concatenated in file order.
func ReadRIFF(r io.Reader) (pixel.Palette, error) {
	formType, rd, err := riff.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("could not open RIFF stream: %w", err)
	} else if formType != palType {
		return nil, fmt.Errorf("unsupported RIFF content type: %s", string(formType[:]))
	}

	return readPalettes(rd, string(formType[:]))
}

func readPalettes(r *riff.Reader, ident string) (pixel.Palette, error) {
	var res pixel.Palette

	for n := 0; ; n++ {
		id, size, data, err := r.Next()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return res, fmt.Errorf("could not read chunk %q#%d: %w", ident, n, err)
		}

		switch id {
		case riff.LIST:
			listType, list, lerr := riff.NewListReader(size, data)
			if lerr != nil {
				return res, fmt.Errorf("could not read list from chunk %q#%d: %w", ident, n, lerr)
			} else if listType != palType {
				return res, fmt.Errorf("chunk %q#%d unsupported type: %s", ident, n, string(listType[:]))
			}

			listRes, lerr := readPalettes(list, fmt.Sprintf("%s%d.%s", ident, n, listType[:]))
			res = append(res, listRes...)
			if lerr != nil {
				return res, lerr
			}
		case dataType:
			pal, err := readPalette(data, fmt.Sprintf("%s%d", ident, n))
			res = append(res, pal...)
			if err != nil {
				return res, err
			}
		default:
			return res, fmt.Errorf("unsupported chunk type in %q#%d: %s", ident, n, string(id[:]))
		}
	}

	return res, nil
}

func readPalette(r io.Reader, ident string) (pixel.Palette, error) {
	var head [4]byte
	if _, err := io.ReadFull(r, head[:]); err != nil {
		return nil, fmt.Errorf("could not read header of chunk %s: %w", ident, err)
	}

	if ver := binary.LittleEndian.Uint16(head[:2]); ver != palVersion {
		return nil, fmt.Errorf("unsupported palette version in chunk %s: %#04x", ident, ver)
	}

	count := int(binary.LittleEndian.Uint16(head[2:]))
	res := make(pixel.Palette, 0, count)
	var entry [4]byte
	for i := range count {
		if _, err := io.ReadFull(r, entry[:]); err != nil {
			return res, fmt.Errorf("could not read color %d/%d from chunk %s: %w", i, count, ident, err)
		}
		res = append(res, pixel.Color{R: entry[0], G: entry[1], B: entry[2]})
	}

	return res, nil
}

// WriteRIFF writes the palettes as one RIFF PAL document with a data chunk
// per palette and returns the number of bytes written.
func WriteRIFF(w io.Writer, pals ...pixel.Palette) (int64, error) {
	n := 4
	for _, pal := range pals {
		if len(pal) > 0xffff {
			return 0, fmt.Errorf("palette of %d colors does not fit a PAL chunk", len(pal))
		}
		n += 4 + 4 + 4 + len(pal)*4 // chunk id + chunk size + palVersion + palNumEntries + 4 bytes/color
	}

	cw := &countingWriter{w: w}
	if err := writeBytes(cw, riffType[:]); err != nil {
		return cw.n, fmt.Errorf("could not write RIFF magic: %w", err)
	}

	if err := writeBytes(cw, binary.LittleEndian.AppendUint32(nil, uint32(n))); err != nil {
		return cw.n, fmt.Errorf("could not write document size: %w", err)
	}

	if err := writeBytes(cw, palType[:]); err != nil {
		return cw.n, fmt.Errorf("could not write content type: %w", err)
	}

	for i, pal := range pals {
		if err := writePalette(cw, pal); err != nil {
			return cw.n, fmt.Errorf("could not write chunk %d: %w", i, err)
		}
	}

	return cw.n, nil
}

func writePalette(w io.Writer, pal pixel.Palette) error {
	if err := writeBytes(w, dataType[:]); err != nil {
		return fmt.Errorf("could not write type: %w", err)
	}

	n := 4 + len(pal)*4
	if err := writeBytes(w, binary.LittleEndian.AppendUint32(nil, uint32(n))); err != nil {
		return fmt.Errorf("could not write chunk size: %w", err)
	}

	head := binary.LittleEndian.AppendUint16(nil, palVersion)
	head = binary.LittleEndian.AppendUint16(head, uint16(len(pal)))
	if err := writeBytes(w, head); err != nil {
		return fmt.Errorf("could not write palette header: %w", err)
	}

	for i, c := range pal {
		if err := writeBytes(w, []byte{c.R, c.G, c.B, 0x00}); err != nil {
			return fmt.Errorf("could not write color %d/%d: %w", i, len(pal), err)
		}
	}

	return nil
}

func writeBytes(w io.Writer, b []byte) error {
	n, err := w.Write(b)
	if err != nil {
		return err
	} else if n != len(b) {
		return fmt.Errorf("wrote only %d/%d bytes", n, len(b))
	}

	return nil
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(b []byte) (int, error) {
	n, err := c.w.Write(b)
	c.n += int64(n)
	return n, err
}
