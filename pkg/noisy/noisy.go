// Package noisy is the front door of the pipeline: source text in,
// pixel buffer out.
package noisy

import (
	"github.com/noisylang/noisy/pkg/compiler/lexer"
	"github.com/noisylang/noisy/pkg/compiler/parser"
	"github.com/noisylang/noisy/pkg/render"
	"github.com/noisylang/noisy/pkg/scene"
)

// Compile lexes, parses, expands macros, and builds the immutable
// scene. The first error encountered halts compilation.
func Compile(source []byte) (*scene.Scene, error) {
	s := lexer.NewScanner(source)
	p := parser.NewParser(s, source)
	prog, consts, err := p.Parse()
	if err != nil {
		return nil, err
	}
	sc, err := scene.Build(prog, consts)
	if err != nil {
		return nil, err
	}
	Logger().Debug("scene compiled",
		"width", sc.Canvas.Width, "height", sc.Canvas.Height, "layers", len(sc.Layers))
	return sc, nil
}

// Render rasterizes a compiled scene with the given noise seed.
func Render(sc *scene.Scene, seed uint64) *render.Pixmap {
	p := render.Render(sc, seed)
	Logger().Debug("render finished", "seed", seed, "pixels", p.Width()*p.Height())
	return p
}

// CompileAndRender is the core entry contract: a pure function of
// (source, seed). Identical inputs produce byte-identical buffers; on
// any compile error no buffer is returned.
func CompileAndRender(source []byte, seed uint64) (*render.Pixmap, error) {
	sc, err := Compile(source)
	if err != nil {
		return nil, err
	}
	return Render(sc, seed), nil
}
