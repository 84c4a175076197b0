package filters

import (
	"bytes"
	"fmt"
	"image"
	"io"

	"golang.org/x/image/ccitt"
)

// FaxWidth is the standard width in pixels of a CCITT fax line.
const FaxWidth = 1728

// CCITTFaxDecode decodes CCITT Group 3/4 fax compressed data into packed
// 1-bit rows (MSB first, each row padded to a byte, white = 1).
//
// Parameters from the PDF decode parameters dictionary:
//   - K: Group selector (-1=Group4, 0=Group3 1D, >0=Group3 2D)
//   - Columns: Image width in pixels (default 1728)
//   - Rows: Image height in pixels (default 0, uses AutoDetectHeight)
//   - BlackIs1: Bit interpretation (default false, maps to ccitt.Options.Invert)
func CCITTFaxDecode(data []byte, params Params) ([]byte, error) {
	columns := getIntParam(params, "Columns", FaxWidth)
	rows := getIntParam(params, "Rows", 0)
	k := getIntParam(params, "K", 0)
	blackIs1 := getBoolParam(params, "BlackIs1", false)

	sf := ccitt.Group3
	if k < 0 {
		sf = ccitt.Group4
	}
	if rows == 0 {
		rows = ccitt.AutoDetectHeight
	}

	reader := ccitt.NewReader(bytes.NewReader(data), ccitt.MSB, sf, columns, rows, &ccitt.Options{Invert: blackIs1})
	return io.ReadAll(reader)
}

// FaxImage decodes a raw fax stream of the given width into an 8-bit gray
// image. group4 selects T.6 coding, otherwise T.4 one-dimensional coding is
// assumed.
func FaxImage(data []byte, columns int, group4 bool) (*image.Gray, error) {
	if columns <= 0 {
		columns = FaxWidth
	}
	k := 0
	if group4 {
		k = -1
	}
	packed, err := CCITTFaxDecode(data, Params{"K": k, "Columns": columns})
	if err != nil {
		return nil, fmt.Errorf("fax decode failed: %w", err)
	}
	return unpackBits(packed, columns), nil
}

// unpackBits expands packed 1-bit rows into a gray image where a set bit is
// white (255) and a clear bit is black (0). Trailing partial rows are
// dropped.
func unpackBits(packed []byte, columns int) *image.Gray {
	stride := (columns + 7) / 8
	rows := 0
	if stride > 0 {
		rows = len(packed) / stride
	}
	img := image.NewGray(image.Rect(0, 0, columns, rows))
	for y := 0; y < rows; y++ {
		src := packed[y*stride : (y+1)*stride]
		dst := img.Pix[y*img.Stride : y*img.Stride+columns]
		for x := range dst {
			if src[x>>3]&(0x80>>uint(x&7)) != 0 {
				dst[x] = 0xff
			}
		}
	}
	return img
}

// getBoolParam extracts a boolean parameter from Params, returning defaultValue
// if the parameter is missing or cannot be converted to a boolean.
func getBoolParam(params Params, key string, defaultValue bool) bool {
	if v, ok := params[key].(bool); ok {
		return v
	}
	return defaultValue
}
