package scene_test

import (
	"errors"
	"testing"

	"github.com/noisylang/noisy/pkg/compiler/diag"
	"github.com/noisylang/noisy/pkg/compiler/lexer"
	"github.com/noisylang/noisy/pkg/compiler/parser"
	"github.com/noisylang/noisy/pkg/core/value"
	"github.com/noisylang/noisy/pkg/scene"
)

func build(t *testing.T, src string) (*scene.Scene, error) {
	t.Helper()
	b := []byte(src)
	s := lexer.NewScanner(b)
	p := parser.NewParser(s, b)
	prog, consts, err := p.Parse()
	if err != nil {
		return nil, err
	}
	return scene.Build(prog, consts)
}

func TestBuildCanvasDefaults(t *testing.T) {
	sc, err := build(t, "canvas { width 10 height 12 }")
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if sc.Canvas.Width != 10 || sc.Canvas.Height != 12 {
		t.Errorf("canvas = %dx%d, want 10x12", sc.Canvas.Width, sc.Canvas.Height)
	}
	if sc.Canvas.Background != (value.Color{}) {
		t.Errorf("background = %v, want default #000000", sc.Canvas.Background.Hex())
	}
}

func TestBuildShapeDefaults(t *testing.T) {
	sc, err := build(t, `canvas { width 40 height 40 }
rectangle { width 10 height 20 grad1color #ff0000 }`)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	sh, ok := sc.Layers[0].(*scene.Shape)
	if !ok {
		t.Fatalf("layer 0 is %T, want *scene.Shape", sc.Layers[0])
	}
	if sh.X != 0 || sh.Y != 0 {
		t.Errorf("position = (%d,%d), want origin default", sh.X, sh.Y)
	}
	if sh.Grad.TwoPoint {
		t.Error("gradient is two-point without grad2color; want uniform fill")
	}
	if sh.Grad.C1 != (value.Color{R: 255}) {
		t.Errorf("grad1color = %v, want #ff0000", sh.Grad.C1.Hex())
	}
	// Anchors default to the bounding box corners.
	if sh.Grad.X1 != 0 || sh.Grad.Y1 != 0 || sh.Grad.X2 != 9 || sh.Grad.Y2 != 19 {
		t.Errorf("anchors = (%d,%d)-(%d,%d), want (0,0)-(9,19)",
			sh.Grad.X1, sh.Grad.Y1, sh.Grad.X2, sh.Grad.Y2)
	}
	if sh.Noise != nil {
		t.Error("noise spec present without a noise field")
	}
}

func TestBuildNoiseRegionDefaults(t *testing.T) {
	sc, err := build(t, `canvas { width 40 height 30 }
noise { kind normal }`)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	nr, ok := sc.Layers[0].(*scene.NoiseRegion)
	if !ok {
		t.Fatalf("layer 0 is %T, want *scene.NoiseRegion", sc.Layers[0])
	}
	if nr.X != 0 || nr.Y != 0 || nr.Width != 40 || nr.Height != 30 {
		t.Errorf("region = (%d,%d) %dx%d, want full canvas", nr.X, nr.Y, nr.Width, nr.Height)
	}
	if nr.Spec.Kind != scene.NoiseNormal {
		t.Errorf("kind = %v, want normal", nr.Spec.Kind)
	}
}

func TestBuildErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want error
	}{
		{
			name: "Missing canvas width",
			src:  "canvas { height 10 }",
			want: diag.ErrMissingField,
		},
		{
			name: "Non-positive canvas dimension",
			src:  "canvas { width 0-5 height 10 }",
			want: diag.ErrParse,
		},
		{
			name: "Missing shape gradient color",
			src:  "canvas { width 10 height 10 }\nrectangle { width 5 height 5 }",
			want: diag.ErrMissingField,
		},
		{
			name: "Unknown field",
			src:  "canvas { width 10 height 10 depth 3 }",
			want: diag.ErrParse,
		},
		{
			name: "Undefined constant in noise block",
			src:  "canvas { width 10 height 10 }\nnoise { kind normal width SPREAD }",
			want: diag.ErrUndefinedName,
		},
		{
			name: "Window noise without extents",
			src: `canvas { width 10 height 10 }
rectangle { width 5 height 5 grad1color #ffffff noise window }`,
			want: diag.ErrMissingField,
		},
		{
			name: "Window extents without window noise",
			src: `canvas { width 10 height 10 }
rectangle { width 5 height 5 grad1color #ffffff windowwidth 3 }`,
			want: diag.ErrParse,
		},
		{
			name: "Unknown noise kind",
			src:  "canvas { width 10 height 10 }\nnoise { kind speckle }",
			want: diag.ErrParse,
		},
		{
			name: "Color expression for integer field",
			src:  "canvas { width #ff0000 height 10 }",
			want: diag.ErrTypeMismatch,
		},
		{
			name: "Integer expression for color field",
			src:  "canvas { width 10 height 10 color 7 }",
			want: diag.ErrTypeMismatch,
		},
		{
			name: "Negative ellipse radius",
			src: `canvas { width 10 height 10 }
ellipse { centerx 5 centery 5 radius 0-1 grad1color #ffffff }`,
			want: diag.ErrParse,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := build(t, tt.src)
			if !errors.Is(err, tt.want) {
				t.Errorf("Build() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestShapeGeometry(t *testing.T) {
	sc, err := build(t, `canvas { width 40 height 40 }
ellipse { centerx 10 centery 10 radius 3 grad1color #ffffff }`)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	sh := sc.Layers[0].(*scene.Shape)

	x0, y0, x1, y1 := sh.BBox()
	if x0 != 7 || y0 != 7 || x1 != 14 || y1 != 14 {
		t.Errorf("BBox = (%d,%d)-(%d,%d), want (7,7)-(14,14)", x0, y0, x1, y1)
	}

	// Boundary is radius-inclusive.
	if !sh.Contains(13, 10) {
		t.Error("Contains(13,10) = false, want true at radius boundary")
	}
	if sh.Contains(13, 13) {
		t.Error("Contains(13,13) = true, want false outside the circle")
	}
}
