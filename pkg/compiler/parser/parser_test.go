package parser_test

import (
	"errors"
	"testing"

	"github.com/noisylang/noisy/pkg/compiler/diag"
	"github.com/noisylang/noisy/pkg/compiler/lexer"
	"github.com/noisylang/noisy/pkg/compiler/parser"
)

func parse(t *testing.T, src string) error {
	t.Helper()
	b := []byte(src)
	s := lexer.NewScanner(b)
	p := parser.NewParser(s, b)
	_, _, err := p.Parse()
	return err
}

func TestParseValidPrograms(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{
			name: "Canvas only",
			src:  "canvas { width 10 height 10 }",
		},
		{
			name: "Fields in any order",
			src:  "canvas { color #102030 height 10 width 10 }",
		},
		{
			name: "Constant substitution",
			src:  "#const W = 10\ncanvas { width W height W }",
		},
		{
			name: "Constant from earlier constant",
			src:  "#const A = 4\n#const B = A * 2 + 1\ncanvas { width B height B }",
		},
		{
			name: "Shape layers after canvas",
			src: `canvas { width 20 height 20 }
rectangle { width 5 height 5 grad1color #ff0000 }
ellipse { centerx 10 centery 10 radius 3 grad1color #00ff00 }`,
		},
		{
			name: "Macro definition and invocation",
			src: `#define sq s { rectangle { width s height s grad1color #ffffff } }
canvas { width 30 height 30 }
sq(20)`,
		},
		{
			name: "Parenthesized expressions",
			src:  "canvas { width (2+3)*2 height 10 }",
		},
		{
			name: "Comments ignored",
			src:  "// header\ncanvas { width 10 height 10 } // trailing",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := parse(t, tt.src); err != nil {
				t.Errorf("Parse() error = %v, want nil", err)
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want error
	}{
		{
			name: "Shape before canvas",
			src:  "rectangle { width 5 height 5 grad1color #ffffff }",
			want: diag.ErrMissingCanvas,
		},
		{
			name: "No canvas at all",
			src:  "#const W = 10",
			want: diag.ErrMissingCanvas,
		},
		{
			name: "Second canvas",
			src:  "canvas { width 10 height 10 }\ncanvas { width 5 height 5 }",
			want: diag.ErrBlockOrder,
		},
		{
			name: "Unknown block keyword",
			src:  "canvas { width 10 height 10 }\ntriangle { width 5 }",
			want: diag.ErrUnknownBlock,
		},
		{
			name: "Duplicate field",
			src:  "canvas { width 10 width 20 height 10 }",
			want: diag.ErrDuplicateField,
		},
		{
			name: "Duplicate constant",
			src:  "#const W = 10\n#const W = 20\ncanvas { width W height W }",
			want: diag.ErrDuplicateConst,
		},
		{
			name: "Forward constant reference",
			src:  "#const A = B\n#const B = 10\ncanvas { width A height A }",
			want: diag.ErrUndefinedName,
		},
		{
			name: "Macro arity mismatch",
			src: `#define sq s { rectangle { width s height s grad1color #ffffff } }
canvas { width 30 height 30 }
sq(20, 30)`,
			want: diag.ErrMacroArity,
		},
		{
			name: "Undefined macro invocation",
			src:  "canvas { width 10 height 10 }\nsq(20)",
			want: diag.ErrUnknownBlock,
		},
		{
			name: "Macro referencing a macro",
			src: `#define a s { rectangle { width s height s grad1color #ffffff } }
#define b s { a { width s } }
canvas { width 10 height 10 }`,
			want: diag.ErrParse,
		},
		{
			name: "Duplicate macro parameter",
			src: `#define m s s { rectangle { width s height s grad1color #ffffff } }
canvas { width 10 height 10 }`,
			want: diag.ErrParse,
		},
		{
			name: "Negative literal is not an expression",
			src:  "canvas { width -5 height 10 }",
			want: diag.ErrParse,
		},
		{
			name: "Division by zero in constant",
			src:  "#const W = 10 / 0\ncanvas { width W height W }",
			want: diag.ErrDivisionByZero,
		},
		{
			name: "Lex error surfaces",
			src:  "canvas { color #ff00 width 10 height 10 }",
			want: diag.ErrLex,
		},
		{
			name: "Unterminated block",
			src:  "canvas { width 10 height 10",
			want: diag.ErrParse,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := parse(t, tt.src)
			if !errors.Is(err, tt.want) {
				t.Errorf("Parse() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestMacroExpansionProducesClosedBlock(t *testing.T) {
	src := []byte(`#define sq s { rectangle { width s height s grad1color #ffffff } }
canvas { width 30 height 30 }
sq(20)`)
	s := lexer.NewScanner(src)
	p := parser.NewParser(s, src)
	prog, _, err := p.Parse()
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(prog.Layers) != 1 {
		t.Fatalf("layers = %d, want 1", len(prog.Layers))
	}
	blk := prog.Layers[0]
	if blk.Kind != "rectangle" {
		t.Errorf("expanded kind = %q, want rectangle", blk.Kind)
	}
	if _, ok := blk.Field("width"); !ok {
		t.Error("expanded block lost its width field")
	}
}

func TestCaseInsensitiveNames(t *testing.T) {
	src := `#CONST Wide = 12
CANVAS { Width WIDE Height wide }`
	if err := parse(t, src); err != nil {
		t.Errorf("Parse() error = %v, want case-insensitive match", err)
	}
}
