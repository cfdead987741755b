package scene

import (
	"github.com/noisylang/noisy/pkg/compiler/ast"
	"github.com/noisylang/noisy/pkg/compiler/diag"
	"github.com/noisylang/noisy/pkg/compiler/eval"
	"github.com/noisylang/noisy/pkg/core/value"
)

// fieldType is the type a field expression must evaluate to.
type fieldType uint8

const (
	typeInt fieldType = iota
	typeColor
	typeNoiseKind
)

// fieldSpec is one row of a block kind's field table.
type fieldSpec struct {
	typ      fieldType
	required bool
}

// Per-block-kind field schemas. Defaulting that depends on context
// (canvas extent, shape bounding box) happens in the assembly funcs.
var (
	canvasSchema = map[string]fieldSpec{
		"width":  {typeInt, true},
		"height": {typeInt, true},
		"color":  {typeColor, false},
	}

	gradientSchema = map[string]fieldSpec{
		"grad1x":     {typeInt, false},
		"grad1y":     {typeInt, false},
		"grad1color": {typeColor, true},
		"grad2x":     {typeInt, false},
		"grad2y":     {typeInt, false},
		"grad2color": {typeColor, false},
	}

	shapeNoiseSchema = map[string]fieldSpec{
		"noise":        {typeNoiseKind, false},
		"windowwidth":  {typeInt, false},
		"windowheight": {typeInt, false},
	}

	rectangleSchema = merge(map[string]fieldSpec{
		"x":      {typeInt, false},
		"y":      {typeInt, false},
		"width":  {typeInt, true},
		"height": {typeInt, true},
	}, gradientSchema, shapeNoiseSchema)

	ellipseSchema = merge(map[string]fieldSpec{
		"centerx": {typeInt, true},
		"centery": {typeInt, true},
		"radius":  {typeInt, true},
	}, gradientSchema, shapeNoiseSchema)

	noiseSchema = map[string]fieldSpec{
		"kind":         {typeNoiseKind, true},
		"topx":         {typeInt, false},
		"bottomx":      {typeInt, false},
		"width":        {typeInt, false},
		"height":       {typeInt, false},
		"windowwidth":  {typeInt, false},
		"windowheight": {typeInt, false},
	}
)

func merge(dst map[string]fieldSpec, more ...map[string]fieldSpec) map[string]fieldSpec {
	for _, m := range more {
		for k, v := range m {
			dst[k] = v
		}
	}
	return dst
}

// fields holds a block's evaluated field values keyed by lowercased
// field name.
type fields struct {
	block *ast.Block
	ints  map[string]int64
	cols  map[string]value.Color
	kinds map[string]NoiseKind
}

func (f *fields) has(key string) bool {
	if _, ok := f.ints[key]; ok {
		return true
	}
	if _, ok := f.cols[key]; ok {
		return true
	}
	_, ok := f.kinds[key]
	return ok
}

func (f *fields) intOr(key string, def int64) int64 {
	if v, ok := f.ints[key]; ok {
		return v
	}
	return def
}

func (f *fields) colorOr(key string, def value.Color) value.Color {
	if v, ok := f.cols[key]; ok {
		return v
	}
	return def
}

// evalFields runs a block through its kind's schema. Every present
// field is evaluated to its declared type; unknown and missing
// required fields fail here. Duplicates were already rejected by the
// parser.
func evalFields(blk *ast.Block, schema map[string]fieldSpec, consts *eval.Consts) (*fields, error) {
	out := &fields{
		block: blk,
		ints:  make(map[string]int64),
		cols:  make(map[string]value.Color),
		kinds: make(map[string]NoiseKind),
	}

	for _, f := range blk.Fields {
		spec, ok := schema[f.Key]
		if !ok {
			return nil, diag.New(diag.ErrParse, f.Name.Line,
				"unknown field %q in %s block", f.Key, blk.Kind)
		}
		switch spec.typ {
		case typeInt:
			v, err := eval.EvalInt(f.Value, consts)
			if err != nil {
				return nil, err
			}
			out.ints[f.Key] = v
		case typeColor:
			c, err := eval.EvalColor(f.Value, consts)
			if err != nil {
				return nil, err
			}
			out.cols[f.Key] = c
		case typeNoiseKind:
			k, err := noiseKindOf(f)
			if err != nil {
				return nil, err
			}
			out.kinds[f.Key] = k
		}
	}

	for key, spec := range schema {
		if spec.required && !out.has(key) {
			return nil, diag.New(diag.ErrMissingField, blk.Keyword.Line,
				"%s block requires field %q", blk.Kind, key)
		}
	}
	return out, nil
}

// noiseKindOf resolves a kind-typed field. The value must be the bare
// identifier normal or window; it is not subject to constant lookup.
func noiseKindOf(f ast.Field) (NoiseKind, error) {
	id, ok := f.Value.(*ast.Ident)
	if !ok {
		return 0, diag.New(diag.ErrParse, f.Name.Line,
			"field %q expects a noise kind (normal or window)", f.Key)
	}
	switch id.Name {
	case "normal":
		return NoiseNormal, nil
	case "window":
		return NoiseWindow, nil
	}
	return 0, diag.New(diag.ErrParse, id.Token.Line,
		"unknown noise kind %q (expected normal or window)", id.Name)
}

// Build applies per-kind defaults, validates required fields and
// invariants, and yields the finished immutable Scene.
func Build(prog *ast.Program, consts *eval.Consts) (*Scene, error) {
	cv, err := buildCanvas(prog.Canvas, consts)
	if err != nil {
		return nil, err
	}

	sc := &Scene{Canvas: cv}
	for _, blk := range prog.Layers {
		var l Layer
		switch blk.Kind {
		case "rectangle", "ellipse":
			l, err = buildShape(blk, consts)
		case "noise":
			l, err = buildNoiseRegion(blk, consts, cv)
		default:
			err = diag.New(diag.ErrUnknownBlock, blk.Keyword.Line,
				"unknown block keyword %q", blk.Kind)
		}
		if err != nil {
			return nil, err
		}
		sc.Layers = append(sc.Layers, l)
	}
	return sc, nil
}

func buildCanvas(blk *ast.Block, consts *eval.Consts) (Canvas, error) {
	fs, err := evalFields(blk, canvasSchema, consts)
	if err != nil {
		return Canvas{}, err
	}
	w, h := fs.ints["width"], fs.ints["height"]
	if w <= 0 || h <= 0 {
		return Canvas{}, diag.New(diag.ErrParse, blk.Keyword.Line,
			"canvas dimensions must be positive, got %dx%d", w, h)
	}
	return Canvas{
		Width:      int(w),
		Height:     int(h),
		Background: fs.colorOr("color", value.Color{}),
	}, nil
}

func buildShape(blk *ast.Block, consts *eval.Consts) (*Shape, error) {
	schema := rectangleSchema
	if blk.Kind == "ellipse" {
		schema = ellipseSchema
	}
	fs, err := evalFields(blk, schema, consts)
	if err != nil {
		return nil, err
	}

	s := &Shape{}
	if blk.Kind == "ellipse" {
		s.Kind = Ellipse
		s.CenterX = int(fs.ints["centerx"])
		s.CenterY = int(fs.ints["centery"])
		s.Radius = int(fs.ints["radius"])
		if s.Radius < 0 {
			return nil, diag.New(diag.ErrParse, blk.Keyword.Line,
				"ellipse radius must not be negative, got %d", s.Radius)
		}
	} else {
		s.Kind = Rectangle
		s.X = int(fs.intOr("x", 0))
		s.Y = int(fs.intOr("y", 0))
		s.Width = int(fs.ints["width"])
		s.Height = int(fs.ints["height"])
		if s.Width <= 0 || s.Height <= 0 {
			return nil, diag.New(diag.ErrParse, blk.Keyword.Line,
				"rectangle dimensions must be positive, got %dx%d", s.Width, s.Height)
		}
	}

	x0, y0, x1, y1 := s.BBox()
	s.Grad = Gradient{
		X1:       int(fs.intOr("grad1x", int64(x0))),
		Y1:       int(fs.intOr("grad1y", int64(y0))),
		C1:       fs.cols["grad1color"],
		X2:       int(fs.intOr("grad2x", int64(x1-1))),
		Y2:       int(fs.intOr("grad2y", int64(y1-1))),
		TwoPoint: fs.has("grad2color"),
	}
	s.Grad.C2 = fs.colorOr("grad2color", s.Grad.C1)

	spec, err := buildNoiseSpec(fs, "noise", false)
	if err != nil {
		return nil, err
	}
	s.Noise = spec
	return s, nil
}

func buildNoiseRegion(blk *ast.Block, consts *eval.Consts, cv Canvas) (*NoiseRegion, error) {
	fs, err := evalFields(blk, noiseSchema, consts)
	if err != nil {
		return nil, err
	}

	// topx/bottomx name the region's top-left corner coordinates; the
	// extent fields default to the full canvas.
	r := &NoiseRegion{
		X:      int(fs.intOr("topx", 0)),
		Y:      int(fs.intOr("bottomx", 0)),
		Width:  int(fs.intOr("width", int64(cv.Width))),
		Height: int(fs.intOr("height", int64(cv.Height))),
	}
	if r.Width <= 0 || r.Height <= 0 {
		return nil, diag.New(diag.ErrParse, blk.Keyword.Line,
			"noise region dimensions must be positive, got %dx%d", r.Width, r.Height)
	}

	spec, err := buildNoiseSpec(fs, "kind", true)
	if err != nil {
		return nil, err
	}
	r.Spec = *spec
	return r, nil
}

// buildNoiseSpec assembles a NoiseSpec from the kind field plus the
// window parameters. Window noise requires both window extents; the
// extents are rejected when no window noise asks for them.
func buildNoiseSpec(fs *fields, kindField string, required bool) (*NoiseSpec, error) {
	line := fs.block.Keyword.Line
	kind, ok := fs.kinds[kindField]
	if !ok {
		if required {
			return nil, diag.New(diag.ErrMissingField, line,
				"%s block requires field %q", fs.block.Kind, kindField)
		}
		if fs.has("windowwidth") || fs.has("windowheight") {
			return nil, diag.New(diag.ErrParse, line,
				"windowwidth/windowheight given without window noise")
		}
		return nil, nil
	}

	spec := &NoiseSpec{Kind: kind}
	if kind == NoiseWindow {
		if !fs.has("windowwidth") || !fs.has("windowheight") {
			return nil, diag.New(diag.ErrMissingField, line,
				"window noise requires windowwidth and windowheight")
		}
		spec.WindowW = int(fs.ints["windowwidth"])
		spec.WindowH = int(fs.ints["windowheight"])
		if spec.WindowW <= 0 || spec.WindowH <= 0 {
			return nil, diag.New(diag.ErrParse, line,
				"window extents must be positive, got %dx%d", spec.WindowW, spec.WindowH)
		}
	} else if fs.has("windowwidth") || fs.has("windowheight") {
		return nil, diag.New(diag.ErrParse, line,
			"windowwidth/windowheight given without window noise")
	}
	return spec, nil
}
