package render

import (
	"image"
	"image/color"

	"github.com/noisylang/noisy/pkg/core/value"
)

// Pixmap is a rectangular 24-bit RGB pixel buffer, 3 bytes per pixel
// in row-major order.
type Pixmap struct {
	width  int
	height int
	pix    []uint8
}

// NewPixmap creates a zeroed pixmap with the given dimensions.
func NewPixmap(width, height int) *Pixmap {
	return &Pixmap{
		width:  width,
		height: height,
		pix:    make([]uint8, width*height*3),
	}
}

// Width returns the width of the pixmap.
func (p *Pixmap) Width() int { return p.width }

// Height returns the height of the pixmap.
func (p *Pixmap) Height() int { return p.height }

// Pix returns the raw pixel data (RGB, 3 bytes per pixel).
func (p *Pixmap) Pix() []uint8 { return p.pix }

// Set writes the color of a single pixel. Out-of-bounds coordinates
// are silently discarded.
func (p *Pixmap) Set(x, y int, c value.Color) {
	if x < 0 || x >= p.width || y < 0 || y >= p.height {
		return
	}
	i := (y*p.width + x) * 3
	p.pix[i+0] = c.R
	p.pix[i+1] = c.G
	p.pix[i+2] = c.B
}

// At returns the color of a single pixel, or black outside the buffer.
func (p *Pixmap) At(x, y int) value.Color {
	if x < 0 || x >= p.width || y < 0 || y >= p.height {
		return value.Color{}
	}
	i := (y*p.width + x) * 3
	return value.Color{R: p.pix[i+0], G: p.pix[i+1], B: p.pix[i+2]}
}

// Fill sets every pixel to the given color.
func (p *Pixmap) Fill(c value.Color) {
	for i := 0; i < len(p.pix); i += 3 {
		p.pix[i+0] = c.R
		p.pix[i+1] = c.G
		p.pix[i+2] = c.B
	}
}

// Image converts the pixmap to an opaque image.NRGBA for encoding.
func (p *Pixmap) Image() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, p.width, p.height))
	for y := 0; y < p.height; y++ {
		for x := 0; x < p.width; x++ {
			c := p.At(x, y)
			img.SetNRGBA(x, y, color.NRGBA{R: c.R, G: c.G, B: c.B, A: 0xff})
		}
	}
	return img
}
