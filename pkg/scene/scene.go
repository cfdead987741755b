// Package scene defines the immutable scene graph and the builder that
// produces it from a parsed program. A Scene is built once and then
// only read; the renderer never mutates it.
package scene

import "github.com/noisylang/noisy/pkg/core/value"

// Canvas is the drawing surface. Exactly one per scene.
type Canvas struct {
	Width      int
	Height     int
	Background value.Color
}

// Layer is one ordered element of the scene graph. Later layers draw
// over earlier ones (painter's algorithm).
type Layer interface {
	layer()
}

// ShapeKind discriminates shape geometry.
type ShapeKind uint8

const (
	Rectangle ShapeKind = iota
	Ellipse
)

func (k ShapeKind) String() string {
	if k == Ellipse {
		return "ellipse"
	}
	return "rectangle"
}

// Shape is a geometric layer with a two-point gradient and optional
// noise. Rectangle uses X/Y/Width/Height; Ellipse uses CenterX/CenterY/
// Radius. Coordinates may lie outside the canvas; the renderer clips.
type Shape struct {
	Kind ShapeKind

	X, Y          int
	Width, Height int

	CenterX, CenterY int
	Radius           int

	Grad  Gradient
	Noise *NoiseSpec
}

func (*Shape) layer() {}

// BBox returns the shape's half-open bounding box [x0,x1) x [y0,y1).
// The ellipse boundary is radius-inclusive, so a radius-0 ellipse
// covers exactly its center pixel.
func (s *Shape) BBox() (x0, y0, x1, y1 int) {
	if s.Kind == Ellipse {
		return s.CenterX - s.Radius, s.CenterY - s.Radius,
			s.CenterX + s.Radius + 1, s.CenterY + s.Radius + 1
	}
	return s.X, s.Y, s.X + s.Width, s.Y + s.Height
}

// Contains reports whether the pixel at (x, y) lies inside the shape.
func (s *Shape) Contains(x, y int) bool {
	if s.Kind == Ellipse {
		dx := x - s.CenterX
		dy := y - s.CenterY
		return dx*dx+dy*dy <= s.Radius*s.Radius
	}
	return x >= s.X && x < s.X+s.Width && y >= s.Y && y < s.Y+s.Height
}

// Gradient is a two-point linear color gradient. When TwoPoint is
// false the shape is a uniform fill of C1.
type Gradient struct {
	X1, Y1   int
	C1       value.Color
	X2, Y2   int
	C2       value.Color
	TwoPoint bool
}

// NoiseKind selects the statistical law for pixel perturbation.
type NoiseKind uint8

const (
	NoiseNormal NoiseKind = iota
	NoiseWindow
)

func (k NoiseKind) String() string {
	if k == NoiseWindow {
		return "window"
	}
	return "normal"
}

// NoiseSpec is the kind and parameters governing per-pixel stochastic
// perturbation. WindowW/WindowH apply to window noise only.
type NoiseSpec struct {
	Kind    NoiseKind
	WindowW int
	WindowH int
}

// NoiseRegion is a standalone noise layer: it perturbs whatever is
// already composited inside its rectangular region.
type NoiseRegion struct {
	X, Y          int
	Width, Height int
	Spec          NoiseSpec
}

func (*NoiseRegion) layer() {}

// Scene is the canvas plus the ordered layers drawn onto it.
type Scene struct {
	Canvas Canvas
	Layers []Layer
}
