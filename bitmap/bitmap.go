package bitmap

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"
)

// White is the background value every new or cleared pixel receives.
const White = 255

// Bitmap is an 8-bit grayscale pixel buffer with an optional RGB plane.
// Rows are stored top to bottom with no padding between them.
type Bitmap struct {
	Width  int
	Height int

	// Gray holds one byte per pixel and is always populated. All layout
	// analysis runs on this plane.
	Gray []byte

	// RGB holds three bytes per pixel for colour bitmaps, nil otherwise.
	RGB []byte
}

// New allocates a white bitmap. When color is true an RGB plane is
// allocated alongside the gray plane.
func New(width, height int, color bool) *Bitmap {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	b := &Bitmap{
		Width:  width,
		Height: height,
		Gray:   make([]byte, width*height),
	}
	if color {
		b.RGB = make([]byte, 3*width*height)
	}
	b.Fill(White)
	return b
}

// FromImage converts any image.Image into a Bitmap. The gray plane is always
// derived; the RGB plane is kept only when keepColor is set.
func FromImage(img image.Image, keepColor bool) *Bitmap {
	bounds := img.Bounds()
	b := New(bounds.Dx(), bounds.Dy(), keepColor)

	switch src := img.(type) {
	case *image.Gray:
		for y := 0; y < b.Height; y++ {
			off := src.PixOffset(bounds.Min.X, bounds.Min.Y+y)
			copy(b.Gray[y*b.Width:(y+1)*b.Width], src.Pix[off:off+b.Width])
			if keepColor {
				row := b.RGB[3*y*b.Width:]
				for x := 0; x < b.Width; x++ {
					v := src.Pix[off+x]
					row[3*x], row[3*x+1], row[3*x+2] = v, v, v
				}
			}
		}
		return b
	case *image.RGBA:
		for y := 0; y < b.Height; y++ {
			off := src.PixOffset(bounds.Min.X, bounds.Min.Y+y)
			for x := 0; x < b.Width; x++ {
				p := src.Pix[off+4*x : off+4*x+3]
				b.Gray[y*b.Width+x] = luminance(p[0], p[1], p[2])
				if keepColor {
					i := 3 * (y*b.Width + x)
					b.RGB[i], b.RGB[i+1], b.RGB[i+2] = p[0], p[1], p[2]
				}
			}
		}
		return b
	}

	for y := 0; y < b.Height; y++ {
		for x := 0; x < b.Width; x++ {
			c := img.At(bounds.Min.X+x, bounds.Min.Y+y)
			if keepColor {
				rgb := color.RGBAModel.Convert(c).(color.RGBA)
				i := 3 * (y*b.Width + x)
				b.RGB[i], b.RGB[i+1], b.RGB[i+2] = rgb.R, rgb.G, rgb.B
				b.Gray[y*b.Width+x] = luminance(rgb.R, rgb.G, rgb.B)
				continue
			}
			b.Gray[y*b.Width+x] = color.GrayModel.Convert(c).(color.Gray).Y
		}
	}
	return b
}

// luminance matches the ITU-R 601 weights used by color.GrayModel.
func luminance(r, g, b uint8) uint8 {
	y := (19595*uint32(r) + 38470*uint32(g) + 7471*uint32(b) + 1<<15) >> 16
	return uint8(y)
}

// IsColor reports whether the bitmap carries an RGB plane.
func (b *Bitmap) IsColor() bool {
	return b.RGB != nil
}

// GrayAt returns the gray value at (x, y). Out-of-range pixels read as white.
func (b *Bitmap) GrayAt(x, y int) uint8 {
	if x < 0 || y < 0 || x >= b.Width || y >= b.Height {
		return White
	}
	return b.Gray[y*b.Width+x]
}

// SetGray sets a pixel in every plane to the gray value v.
func (b *Bitmap) SetGray(x, y int, v uint8) {
	if x < 0 || y < 0 || x >= b.Width || y >= b.Height {
		return
	}
	b.Gray[y*b.Width+x] = v
	if b.RGB != nil {
		i := 3 * (y*b.Width + x)
		b.RGB[i], b.RGB[i+1], b.RGB[i+2] = v, v, v
	}
}

// Row returns the gray plane slice of row y.
func (b *Bitmap) Row(y int) []byte {
	return b.Gray[y*b.Width : (y+1)*b.Width]
}

// Fill sets every pixel to the gray value v.
func (b *Bitmap) Fill(v uint8) {
	for i := range b.Gray {
		b.Gray[i] = v
	}
	for i := range b.RGB {
		b.RGB[i] = v
	}
}

// FillRect sets the inclusive rectangle (c1,r1)-(c2,r2) to the gray value v,
// clipped to the bitmap.
func (b *Bitmap) FillRect(c1, r1, c2, r2 int, v uint8) {
	c1, r1 = max(c1, 0), max(r1, 0)
	c2, r2 = min(c2, b.Width-1), min(r2, b.Height-1)
	if c1 > c2 || r1 > r2 {
		return
	}
	for y := r1; y <= r2; y++ {
		row := b.Gray[y*b.Width+c1 : y*b.Width+c2+1]
		for i := range row {
			row[i] = v
		}
		if b.RGB != nil {
			rgb := b.RGB[3*(y*b.Width+c1) : 3*(y*b.Width+c2+1)]
			for i := range rgb {
				rgb[i] = v
			}
		}
	}
}

// Clone returns a deep copy.
func (b *Bitmap) Clone() *Bitmap {
	c := &Bitmap{Width: b.Width, Height: b.Height}
	c.Gray = append([]byte(nil), b.Gray...)
	if b.RGB != nil {
		c.RGB = append([]byte(nil), b.RGB...)
	}
	return c
}

// Crop copies the inclusive rectangle (c1,r1)-(c2,r2) into a new bitmap.
func (b *Bitmap) Crop(c1, r1, c2, r2 int) *Bitmap {
	w, h := c2-c1+1, r2-r1+1
	if w <= 0 || h <= 0 {
		return New(0, 0, b.IsColor())
	}
	out := New(w, h, b.IsColor())
	Blit(out, 0, 0, b, c1, r1, c2, r2)
	return out
}

// Blit copies the inclusive source rectangle (c1,r1)-(c2,r2) of src into dst
// with its top-left corner at (dx, dy). Parts falling outside either bitmap
// are clipped. A gray source written into a colour destination is replicated
// across the three channels.
func Blit(dst *Bitmap, dx, dy int, src *Bitmap, c1, r1, c2, r2 int) {
	if c1 < 0 {
		dx -= c1
		c1 = 0
	}
	if r1 < 0 {
		dy -= r1
		r1 = 0
	}
	if dx < 0 {
		c1 -= dx
		dx = 0
	}
	if dy < 0 {
		r1 -= dy
		dy = 0
	}
	c2 = min(c2, src.Width-1, c1+dst.Width-dx-1)
	r2 = min(r2, src.Height-1, r1+dst.Height-dy-1)
	w := c2 - c1 + 1
	if w <= 0 || r2 < r1 {
		return
	}
	for y := r1; y <= r2; y++ {
		drow := (dy + y - r1) * dst.Width
		copy(dst.Gray[drow+dx:drow+dx+w], src.Gray[y*src.Width+c1:y*src.Width+c1+w])
		if dst.RGB == nil {
			continue
		}
		d := dst.RGB[3*(drow+dx) : 3*(drow+dx+w)]
		if src.RGB != nil {
			copy(d, src.RGB[3*(y*src.Width+c1):3*(y*src.Width+c1+w)])
			continue
		}
		s := src.Gray[y*src.Width+c1 : y*src.Width+c1+w]
		for x, v := range s {
			d[3*x], d[3*x+1], d[3*x+2] = v, v, v
		}
	}
}

// grayImage returns an image.Gray that shares the gray plane.
func (b *Bitmap) grayImage() *image.Gray {
	return &image.Gray{Pix: b.Gray, Stride: b.Width, Rect: image.Rect(0, 0, b.Width, b.Height)}
}

// Image returns the bitmap as a standard image: an *image.Gray view for
// grayscale bitmaps, a converted *image.RGBA copy for colour ones.
func (b *Bitmap) Image() image.Image {
	if b.RGB == nil {
		return b.grayImage()
	}
	return b.rgbaImage()
}

func (b *Bitmap) rgbaImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, b.Width, b.Height))
	for i, j := 0, 0; i < len(b.RGB); i, j = i+3, j+4 {
		img.Pix[j], img.Pix[j+1], img.Pix[j+2], img.Pix[j+3] = b.RGB[i], b.RGB[i+1], b.RGB[i+2], 0xff
	}
	return img
}

// Scale resamples the bitmap to width x height using Catmull-Rom filtering.
func (b *Bitmap) Scale(width, height int) *Bitmap {
	if width <= 0 || height <= 0 {
		return New(0, 0, b.IsColor())
	}
	if width == b.Width && height == b.Height {
		return b.Clone()
	}
	rect := image.Rect(0, 0, width, height)
	if b.RGB == nil {
		dst := image.NewGray(rect)
		draw.CatmullRom.Scale(dst, rect, b.grayImage(), b.grayImage().Bounds(), draw.Src, nil)
		return &Bitmap{Width: width, Height: height, Gray: dst.Pix}
	}
	src := b.rgbaImage()
	dst := image.NewRGBA(rect)
	draw.CatmullRom.Scale(dst, rect, src, src.Bounds(), draw.Src, nil)
	return FromImage(dst, true)
}

// Resize changes the row count in place, keeping existing rows and filling
// new ones with white. The pixel buffers are reallocated, never aliased.
func (b *Bitmap) Resize(height int) {
	if height < 0 {
		height = 0
	}
	gray := make([]byte, b.Width*height)
	n := copy(gray, b.Gray)
	for i := n; i < len(gray); i++ {
		gray[i] = White
	}
	b.Gray = gray
	if b.RGB != nil {
		rgb := make([]byte, 3*b.Width*height)
		n = copy(rgb, b.RGB)
		for i := n; i < len(rgb); i++ {
			rgb[i] = White
		}
		b.RGB = rgb
	}
	b.Height = height
}

// DropRows removes the first n rows, shifting the remainder to the top and
// whitening the rows freed at the bottom. The height is unchanged.
func (b *Bitmap) DropRows(n int) {
	if n <= 0 {
		return
	}
	if n >= b.Height {
		b.Fill(White)
		return
	}
	copy(b.Gray, b.Gray[n*b.Width:])
	tail := b.Gray[(b.Height-n)*b.Width:]
	for i := range tail {
		tail[i] = White
	}
	if b.RGB != nil {
		copy(b.RGB, b.RGB[3*n*b.Width:])
		tail = b.RGB[3*(b.Height-n)*b.Width:]
		for i := range tail {
			tail[i] = White
		}
	}
}
