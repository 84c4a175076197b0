package filters

import (
	"encoding/hex"
	"fmt"
)

// ASCIIHexEncode returns data as upper-case hexadecimal digits, the body of
// a PDF hex string.
func ASCIIHexEncode(data []byte) []byte {
	out := make([]byte, hex.EncodedLen(len(data)))
	hex.Encode(out, data)
	for i, c := range out {
		if c >= 'a' && c <= 'f' {
			out[i] = c - 'a' + 'A'
		}
	}
	return out
}

// ASCIIHexDecode decodes ASCII hexadecimal encoded data.
// Whitespace is ignored, > marks end of data and an odd final digit is
// padded with 0.
func ASCIIHexDecode(data []byte) ([]byte, error) {
	out := make([]byte, 0, len(data)/2)
	var hi byte
	half := false
	for _, c := range data {
		if isWhitespace(c) {
			continue
		}
		if c == '>' {
			break
		}
		v, err := hexDigit(c)
		if err != nil {
			return nil, err
		}
		if half {
			out = append(out, hi<<4|v)
		} else {
			hi = v
		}
		half = !half
	}
	if half {
		out = append(out, hi<<4)
	}
	return out, nil
}

func hexDigit(c byte) (byte, error) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', nil
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, nil
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, nil
	}
	return 0, fmt.Errorf("invalid hex digit: %c", c)
}

// isWhitespace checks if a byte is PDF whitespace.
func isWhitespace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f' || c == 0
}
