package imaging

import (
	"image"
)

// Frame is a decoded RGB frame with 8-bit channels, row-major, 3 bytes per pixel.
type Frame struct {
	W, H int
	Pix  []uint8
}

// NewFrame allocates a zeroed frame of the given dimensions.
func NewFrame(w, h int) *Frame {
	return &Frame{W: w, H: h, Pix: make([]uint8, w*h*3)}
}

// FromImage converts a decoded image.Image into an RGB frame.
func FromImage(img image.Image) *Frame {
	bounds := img.Bounds()
	f := NewFrame(bounds.Dx(), bounds.Dy())
	i := 0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			f.Pix[i] = uint8(r >> 8)
			f.Pix[i+1] = uint8(g >> 8)
			f.Pix[i+2] = uint8(b >> 8)
			i += 3
		}
	}
	return f
}

// RGBAt returns the channel values at (x, y). No bounds check.
func (f *Frame) RGBAt(x, y int) (uint8, uint8, uint8) {
	i := (y*f.W + x) * 3
	return f.Pix[i], f.Pix[i+1], f.Pix[i+2]
}

// SetRGB writes the channel values at (x, y). No bounds check.
func (f *Frame) SetRGB(x, y int, r, g, b uint8) {
	i := (y*f.W + x) * 3
	f.Pix[i] = r
	f.Pix[i+1] = g
	f.Pix[i+2] = b
}

// Fill paints the whole frame with one color. Useful in tests.
func (f *Frame) Fill(r, g, b uint8) {
	for i := 0; i < len(f.Pix); i += 3 {
		f.Pix[i] = r
		f.Pix[i+1] = g
		f.Pix[i+2] = b
	}
}

// Pixels reports the total pixel count.
func (f *Frame) Pixels() int {
	return f.W * f.H
}

// Gray is a single-channel 8-bit image.
type Gray struct {
	W, H int
	Pix  []uint8
}

// NewGray allocates a zeroed grayscale image.
func NewGray(w, h int) *Gray {
	return &Gray{W: w, H: h, Pix: make([]uint8, w*h)}
}

// At returns the value at (x, y). No bounds check.
func (g *Gray) At(x, y int) uint8 {
	return g.Pix[y*g.W+x]
}

// Mask is a binary image; nonzero bytes mark set pixels.
type Mask struct {
	W, H int
	Pix  []uint8
}

// NewMask allocates an empty mask.
func NewMask(w, h int) *Mask {
	return &Mask{W: w, H: h, Pix: make([]uint8, w*h)}
}

// Count reports the number of set pixels.
func (m *Mask) Count() int {
	n := 0
	for _, v := range m.Pix {
		if v != 0 {
			n++
		}
	}
	return n
}

// Or merges another mask of identical dimensions into this one.
func (m *Mask) Or(other *Mask) {
	for i, v := range other.Pix {
		if v != 0 {
			m.Pix[i] = 1
		}
	}
}

// Set marks the pixel at (x, y). No bounds check.
func (m *Mask) Set(x, y int) {
	m.Pix[y*m.W+x] = 1
}

// At reports whether the pixel at (x, y) is set. No bounds check.
func (m *Mask) At(x, y int) bool {
	return m.Pix[y*m.W+x] != 0
}
