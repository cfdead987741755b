// Package render walks a finished scene and composites its layers into
// a pixel buffer using the painter's algorithm: later layers overwrite
// earlier ones, out-of-canvas pixels are silently clipped.
package render

import (
	"math"
	"math/rand/v2"

	"github.com/noisylang/noisy/pkg/core/value"
	"github.com/noisylang/noisy/pkg/render/noise"
	"github.com/noisylang/noisy/pkg/scene"
)

// Render rasterizes the scene. Two calls with the same scene and seed
// produce byte-identical buffers.
func Render(sc *scene.Scene, seed uint64) *Pixmap {
	p := NewPixmap(sc.Canvas.Width, sc.Canvas.Height)
	p.Fill(sc.Canvas.Background)

	rng := noise.NewSource(seed)
	for _, l := range sc.Layers {
		switch layer := l.(type) {
		case *scene.Shape:
			drawShape(p, layer, rng)
		case *scene.NoiseRegion:
			perturbRegion(p, layer, rng)
		}
	}
	return p
}

// drawShape computes each covered pixel's base color from the shape's
// gradient, applies the shape's noise, and overwrites the buffer.
func drawShape(p *Pixmap, s *scene.Shape, rng *rand.Rand) {
	x0, y0, x1, y1 := s.BBox()

	cx0, cy0 := max(x0, 0), max(y0, 0)
	cx1, cy1 := min(x1, p.width), min(y1, p.height)

	// Normal noise spreads by a quarter of the bounding box extent,
	// averaged over both axes.
	var sigma float64
	if s.Noise != nil && s.Noise.Kind == scene.NoiseNormal {
		sigma = float64((x1-x0)+(y1-y0)) / 8
	}

	for y := cy0; y < cy1; y++ {
		for x := cx0; x < cx1; x++ {
			if !s.Contains(x, y) {
				continue
			}
			c := gradientAt(&s.Grad, x, y)
			if s.Noise != nil {
				switch s.Noise.Kind {
				case scene.NoiseNormal:
					c = noise.Gaussian(rng, c, sigma)
				case scene.NoiseWindow:
					dx, dy := noise.Offset(rng, s.Noise.WindowW, s.Noise.WindowH)
					sx := clampInt(x+dx, x0, x1-1)
					sy := clampInt(y+dy, y0, y1-1)
					c = gradientAt(&s.Grad, sx, sy)
				}
			}
			p.Set(x, y, c)
		}
	}
}

// perturbRegion applies a standalone noise layer: it reads the pixels
// already composited in its region and rewrites them in place.
func perturbRegion(p *Pixmap, r *scene.NoiseRegion, rng *rand.Rand) {
	x0, y0 := max(r.X, 0), max(r.Y, 0)
	x1, y1 := min(r.X+r.Width, p.width), min(r.Y+r.Height, p.height)
	if x0 >= x1 || y0 >= y1 {
		return
	}

	// Snapshot the region so window sampling reads pre-noise pixels.
	rw, rh := x1-x0, y1-y0
	snap := make([]value.Color, rw*rh)
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			snap[(y-y0)*rw+(x-x0)] = p.At(x, y)
		}
	}

	sigma := float64(r.Width+r.Height) / 8

	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			c := snap[(y-y0)*rw+(x-x0)]
			switch r.Spec.Kind {
			case scene.NoiseNormal:
				c = noise.Gaussian(rng, c, sigma)
			case scene.NoiseWindow:
				dx, dy := noise.Offset(rng, r.Spec.WindowW, r.Spec.WindowH)
				sx := clampInt(x+dx, x0, x1-1)
				sy := clampInt(y+dy, y0, y1-1)
				c = snap[(sy-y0)*rw+(sx-x0)]
			}
			p.Set(x, y, c)
		}
	}
}

// gradientAt samples the two-point gradient: the pixel is projected
// onto the line between the anchors, the projection parameter clamped
// to [0,1], and the channels blended linearly. Anchors may lie outside
// the canvas; they only steer the slope.
func gradientAt(g *scene.Gradient, x, y int) value.Color {
	if !g.TwoPoint {
		return g.C1
	}
	dx := float64(g.X2 - g.X1)
	dy := float64(g.Y2 - g.Y1)
	lenSq := dx*dx + dy*dy
	if lenSq == 0 {
		return g.C1
	}
	t := (float64(x-g.X1)*dx + float64(y-g.Y1)*dy) / lenSq
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	return value.Color{
		R: lerpChannel(g.C1.R, g.C2.R, t),
		G: lerpChannel(g.C1.G, g.C2.G, t),
		B: lerpChannel(g.C1.B, g.C2.B, t),
	}
}

func lerpChannel(a, b uint8, t float64) uint8 {
	return uint8(math.Round(float64(a) + (float64(b)-float64(a))*t))
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
