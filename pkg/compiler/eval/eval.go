// Package eval evaluates field expressions against the constant table.
// Arithmetic is defined over 64-bit signed integers only; colors pass
// through as single literals or constant references. Macro parameters
// never reach evaluation: expansion substitutes them away first.
package eval

import (
	"github.com/noisylang/noisy/pkg/compiler/ast"
	"github.com/noisylang/noisy/pkg/compiler/diag"
	"github.com/noisylang/noisy/pkg/compiler/lexer"
	"github.com/noisylang/noisy/pkg/core/value"
)

// Eval reduces an expression to a value. Division truncates toward
// zero; a zero divisor and arithmetic over colors are compile errors.
func Eval(e ast.Expr, consts *Consts) (value.Value, error) {
	switch n := e.(type) {
	case *ast.IntLit:
		return value.OfInt(n.Value), nil
	case *ast.ColorLit:
		return value.OfColor(n.Value), nil
	case *ast.Ident:
		v, ok := consts.Lookup(n.Name)
		if !ok {
			return value.Value{}, diag.New(diag.ErrUndefinedName, n.Token.Line,
				"%q is not a defined constant or parameter", n.Name)
		}
		return v, nil
	case *ast.Binary:
		return evalBinary(n, consts)
	}
	return value.Value{}, diag.New(diag.ErrParse, e.Pos().Line, "unsupported expression")
}

// EvalInt evaluates an expression for an integer-typed field.
func EvalInt(e ast.Expr, consts *Consts) (int64, error) {
	v, err := Eval(e, consts)
	if err != nil {
		return 0, err
	}
	if v.Type != value.TypeInt {
		return 0, diag.New(diag.ErrTypeMismatch, e.Pos().Line,
			"expected an integer, got %s %s", v.Type, v.Format())
	}
	return v.Int(), nil
}

// EvalColor evaluates an expression for a color-typed field. Only a
// hex-color literal or a constant bound to one is accepted; arithmetic
// combinations of colors do not exist in the language.
func EvalColor(e ast.Expr, consts *Consts) (value.Color, error) {
	switch n := e.(type) {
	case *ast.ColorLit:
		return n.Value, nil
	case *ast.Ident:
		v, ok := consts.Lookup(n.Name)
		if !ok {
			return value.Color{}, diag.New(diag.ErrUndefinedName, n.Token.Line,
				"%q is not a defined constant or parameter", n.Name)
		}
		if v.Type != value.TypeColor {
			return value.Color{}, diag.New(diag.ErrTypeMismatch, n.Token.Line,
				"constant %q holds %s %s, expected a color", n.Name, v.Type, v.Format())
		}
		return v.Color(), nil
	}
	return value.Color{}, diag.New(diag.ErrTypeMismatch, e.Pos().Line,
		"expected a color literal or a color constant")
}

func evalBinary(n *ast.Binary, consts *Consts) (value.Value, error) {
	lhs, err := Eval(n.Lhs, consts)
	if err != nil {
		return value.Value{}, err
	}
	rhs, err := Eval(n.Rhs, consts)
	if err != nil {
		return value.Value{}, err
	}
	if lhs.Type != value.TypeInt || rhs.Type != value.TypeInt {
		return value.Value{}, diag.New(diag.ErrTypeMismatch, n.Op.Line,
			"arithmetic requires integer operands")
	}

	a, b := lhs.Int(), rhs.Int()
	switch n.Op.Kind {
	case lexer.KindPlus:
		return value.OfInt(a + b), nil
	case lexer.KindMinus:
		return value.OfInt(a - b), nil
	case lexer.KindStar:
		return value.OfInt(a * b), nil
	case lexer.KindSlash:
		if b == 0 {
			return value.Value{}, diag.New(diag.ErrDivisionByZero, n.Op.Line, "division by zero")
		}
		return value.OfInt(a / b), nil
	}
	return value.Value{}, diag.New(diag.ErrParse, n.Op.Line, "unknown operator %s", n.Op.Kind)
}
