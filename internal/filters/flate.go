package filters

import (
	"bytes"
	"compress/zlib"
	"fmt"
	"io"
)

// Params represents decode parameters from PDF stream dictionaries.
// Common parameters include Predictor, Columns, Colors, and BitsPerComponent.
type Params map[string]interface{}

// FlateEncode compresses data with zlib at the given level
// (zlib.DefaultCompression when level is 0).
func FlateEncode(data []byte, level int) ([]byte, error) {
	if level == 0 {
		level = zlib.DefaultCompression
	}
	var buf bytes.Buffer
	w, err := zlib.NewWriterLevel(&buf, level)
	if err != nil {
		return nil, fmt.Errorf("failed to create zlib writer: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return nil, fmt.Errorf("failed to compress: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("failed to compress: %w", err)
	}
	return buf.Bytes(), nil
}

// FlateDecode decompresses Flate (zlib/deflate) compressed data, applying
// a PNG predictor when params request one.
func FlateDecode(data []byte, params Params) ([]byte, error) {
	reader, err := zlib.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to create zlib reader: %w", err)
	}
	defer reader.Close()

	decompressed, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("zlib decompression failed: %w", err)
	}

	predictor := getIntParam(params, "Predictor", 1)
	switch {
	case predictor == 1:
		return decompressed, nil
	case predictor >= 10 && predictor <= 15:
		out, err := pngUnpredict(decompressed, params)
		if err != nil {
			return nil, fmt.Errorf("predictor failed: %w", err)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("unsupported predictor: %d", predictor)
	}
}

// PNGUpEncode prefixes every row of data with the PNG "Up" filter byte and
// replaces each byte with its difference from the byte above. The result
// decodes with Predictor 15 (or 12).
func PNGUpEncode(data []byte, rowBytes int) []byte {
	if rowBytes <= 0 {
		return nil
	}
	nrows := len(data) / rowBytes
	out := make([]byte, 0, nrows*(rowBytes+1))
	for r := 0; r < nrows; r++ {
		row := data[r*rowBytes : (r+1)*rowBytes]
		out = append(out, 2)
		if r == 0 {
			out = append(out, row...)
			continue
		}
		prev := data[(r-1)*rowBytes : r*rowBytes]
		for i, v := range row {
			out = append(out, v-prev[i])
		}
	}
	return out
}

// pngUnpredict undoes per-row PNG filtering. Each row starts with a filter
// type byte (0 None, 1 Sub, 2 Up, 3 Average, 4 Paeth).
func pngUnpredict(data []byte, params Params) ([]byte, error) {
	columns := getIntParam(params, "Columns", 1)
	colors := getIntParam(params, "Colors", 1)
	bpc := getIntParam(params, "BitsPerComponent", 8)

	bpp := max((colors*bpc+7)/8, 1)
	rowBytes := (columns*colors*bpc + 7) / 8
	if len(data)%(rowBytes+1) != 0 {
		return nil, fmt.Errorf("data size %d is not a multiple of row size %d", len(data), rowBytes+1)
	}

	nrows := len(data) / (rowBytes + 1)
	out := make([]byte, nrows*rowBytes)
	prev := make([]byte, rowBytes)
	for r := 0; r < nrows; r++ {
		in := data[r*(rowBytes+1):]
		ft, src := in[0], in[1:rowBytes+1]
		cur := out[r*rowBytes : (r+1)*rowBytes]
		for i := range cur {
			var left, upLeft byte
			if i >= bpp {
				left = cur[i-bpp]
				upLeft = prev[i-bpp]
			}
			up := prev[i]
			switch ft {
			case 0:
				cur[i] = src[i]
			case 1:
				cur[i] = src[i] + left
			case 2:
				cur[i] = src[i] + up
			case 3:
				cur[i] = src[i] + byte((int(left)+int(up))/2)
			case 4:
				cur[i] = src[i] + paeth(left, up, upLeft)
			default:
				return nil, fmt.Errorf("unknown PNG predictor: %d", ft)
			}
		}
		prev = cur
	}
	return out, nil
}

// paeth selects the neighbour closest to the linear prediction a+b-c.
func paeth(a, b, c byte) byte {
	p := int(a) + int(b) - int(c)
	pa, pb, pc := abs(p-int(a)), abs(p-int(b)), abs(p-int(c))
	if pa <= pb && pa <= pc {
		return a
	} else if pb <= pc {
		return b
	}
	return c
}

// getIntParam extracts an integer parameter from Params, returning defaultValue
// if the parameter is missing or cannot be converted to an integer.
func getIntParam(params Params, key string, defaultValue int) int {
	obj, ok := params[key]
	if !ok {
		return defaultValue
	}
	switch v := obj.(type) {
	case int:
		return v
	case int64:
		return int(v)
	case int32:
		return int(v)
	case float64:
		return int(v)
	default:
		return defaultValue
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
