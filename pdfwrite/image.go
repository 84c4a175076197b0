package pdfwrite

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"

	"golang.org/x/image/draw"

	"github.com/tsawler/reflow/bitmap"
	"github.com/tsawler/reflow/internal/filters"
)

// thumbnailSize is the longest side of a page thumbnail in pixels.
const thumbnailSize = 106

// flateLevel matches the compression the writer has always used.
const flateLevel = 7

// imageStream is an encoded image ready to be written as a stream object.
type imageStream struct {
	width, height int
	colorSpace    string
	bpc           int
	filter        string
	decodeParms   string
	data          []byte
}

// samples returns the pixel samples of b, one byte per component, rows top
// to bottom, and the number of components.
func samples(b *bitmap.Bitmap) ([]byte, int) {
	if b.IsColor() {
		return b.RGB, 3
	}
	return b.Gray, 1
}

// packSamples keeps the top bpc bits of every sample and packs each row
// MSB first, padding rows to a whole byte.
func packSamples(data []byte, rowSamples, bpc int) []byte {
	if bpc >= 8 || rowSamples <= 0 {
		return data
	}
	rowBytes := (rowSamples*bpc + 7) / 8
	rows := len(data) / rowSamples
	out := make([]byte, rows*rowBytes)
	shift := 8 - bpc
	for r := 0; r < rows; r++ {
		src := data[r*rowSamples : (r+1)*rowSamples]
		dst := out[r*rowBytes : (r+1)*rowBytes]
		bit := 0
		for _, v := range src {
			dst[bit/8] |= (v >> shift) << (8 - bpc - bit%8)
			bit += bpc
		}
	}
	return out
}

// encodeImage encodes b as a Flate stream at bpc bits per component, or as
// JPEG when quality is positive.
func encodeImage(b *bitmap.Bitmap, quality, bpc int) (*imageStream, error) {
	data, comps := samples(b)
	is := &imageStream{
		width:      b.Width,
		height:     b.Height,
		colorSpace: "/DeviceGray",
		bpc:        8,
	}
	if comps == 3 {
		is.colorSpace = "/DeviceRGB"
	}

	if quality > 0 {
		var buf bytes.Buffer
		if err := jpeg.Encode(&buf, b.Image(), &jpeg.Options{Quality: min(quality, 100)}); err != nil {
			return nil, fmt.Errorf("failed to encode page image: %w", err)
		}
		is.filter = "/DCTDecode"
		is.data = buf.Bytes()
		return is, nil
	}

	switch bpc {
	case 1, 2, 4:
		is.bpc = bpc
	}
	rowSamples := b.Width * comps
	raw := packSamples(data, rowSamples, is.bpc)
	if is.bpc == 8 {
		raw = filters.PNGUpEncode(raw, rowSamples)
		is.decodeParms = fmt.Sprintf("<< /Predictor 12 /Colors %d /BitsPerComponent 8 /Columns %d >>", comps, b.Width)
	}
	enc, err := filters.FlateEncode(raw, flateLevel)
	if err != nil {
		return nil, fmt.Errorf("failed to compress page image: %w", err)
	}
	is.filter = "/FlateDecode"
	is.data = enc
	return is, nil
}

// thumbnail returns b scaled so that its longest side is at most
// thumbnailSize pixels.
func thumbnail(b *bitmap.Bitmap) *bitmap.Bitmap {
	w, h := b.Width, b.Height
	if w > h {
		tw := min(w, thumbnailSize)
		w, h = tw, max(int(float64(b.Height)/float64(b.Width)*float64(tw)+0.5), 1)
	} else {
		th := min(h, thumbnailSize)
		w, h = max(int(float64(b.Width)/float64(b.Height)*float64(th)+0.5), 1), th
	}
	src := b.Image()
	if b.IsColor() {
		dst := image.NewRGBA(image.Rect(0, 0, w, h))
		draw.ApproxBiLinear.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
		return bitmap.FromImage(dst, true)
	}
	dst := image.NewGray(image.Rect(0, 0, w, h))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	return bitmap.FromImage(dst, false)
}
