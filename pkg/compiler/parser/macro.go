package parser

import (
	"github.com/noisylang/noisy/pkg/compiler/ast"
	"github.com/noisylang/noisy/pkg/compiler/diag"
	"github.com/noisylang/noisy/pkg/compiler/lexer"
)

// macro stores a #define: the ordered parameter names and the
// unevaluated block body they appear in.
type macro struct {
	name   lexer.Token
	params []string
	body   *ast.Block
}

// parseMacroDecl handles `#define NAME p1 p2 … { <one write-block> }`.
// The body stays templated; field expressions referencing parameters
// are substituted at each invocation.
func (p *Parser) parseMacroDecl() error {
	p.nextToken() // skip #define

	name, err := p.expect(lexer.KindIdentifier, "macro name after #define")
	if err != nil {
		return err
	}
	key := p.lower(name)
	if _, exists := p.macros[key]; exists {
		return diag.New(diag.ErrParse, name.Line, "macro %q is already defined", key)
	}

	var params []string
	for p.curTok.Kind == lexer.KindIdentifier {
		param := p.lower(p.curTok)
		for _, prev := range params {
			if prev == param {
				return diag.New(diag.ErrParse, p.curTok.Line,
					"parameter %q appears twice in macro %q", param, key)
			}
		}
		params = append(params, param)
		p.nextToken()
	}

	if _, err := p.expect(lexer.KindLBrace, "'{' opening macro body"); err != nil {
		return err
	}
	if p.curTok.Kind != lexer.KindIdentifier {
		return diag.New(diag.ErrParse, p.curTok.Line,
			"macro body must be a single shape or noise block")
	}
	bodyKind := p.lower(p.curTok)
	if _, isMacro := p.macros[bodyKind]; isMacro || bodyKind == key {
		return diag.New(diag.ErrParse, p.curTok.Line,
			"macro %q may not invoke another macro; expansion is single-level", key)
	}
	if !writeBlocks[bodyKind] {
		return diag.New(diag.ErrUnknownBlock, p.curTok.Line,
			"macro body must be a rectangle, ellipse or noise block, got %q", bodyKind)
	}
	body, err := p.parseBlock()
	if err != nil {
		return err
	}
	if _, err := p.expect(lexer.KindRBrace, "'}' closing macro body"); err != nil {
		return err
	}

	p.macros[key] = macro{name: name, params: params, body: body}
	return nil
}

// parseMacroCall handles `NAME(arg1, arg2, …)` used as a top-level
// block, returning the expanded body.
func (p *Parser) parseMacroCall() (*ast.Block, error) {
	name := p.curTok
	key := p.lower(name)
	p.nextToken() // skip name
	p.nextToken() // skip '('

	var args []ast.Expr
	if p.curTok.Kind != lexer.KindRParen {
		for {
			arg, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
			if p.curTok.Kind != lexer.KindComma {
				break
			}
			p.nextToken() // skip ','
		}
	}
	if _, err := p.expect(lexer.KindRParen, "')' closing macro arguments"); err != nil {
		return nil, err
	}

	m, ok := p.macros[key]
	if !ok {
		return nil, diag.New(diag.ErrUnknownBlock, name.Line,
			"%q is not a defined macro", key)
	}
	if len(args) != len(m.params) {
		return nil, diag.New(diag.ErrMacroArity, name.Line,
			"macro %q expects %d argument(s), got %d", key, len(m.params), len(args))
	}

	binding := make(map[string]ast.Expr, len(args))
	for i, param := range m.params {
		binding[param] = args[i]
	}
	return expand(m.body, binding), nil
}

// expand clones the templated body, substituting each parameter
// occurrence with its literal argument expression. The result is a
// closed block evaluated exactly like a literal one.
func expand(body *ast.Block, binding map[string]ast.Expr) *ast.Block {
	out := &ast.Block{
		Keyword: body.Keyword,
		Kind:    body.Kind,
		Fields:  make([]ast.Field, len(body.Fields)),
	}
	for i, f := range body.Fields {
		out.Fields[i] = ast.Field{Name: f.Name, Key: f.Key, Value: substitute(f.Value, binding)}
	}
	return out
}

func substitute(e ast.Expr, binding map[string]ast.Expr) ast.Expr {
	switch n := e.(type) {
	case *ast.Ident:
		if arg, ok := binding[n.Name]; ok {
			return arg
		}
		return n
	case *ast.Binary:
		return &ast.Binary{
			Op:  n.Op,
			Lhs: substitute(n.Lhs, binding),
			Rhs: substitute(n.Rhs, binding),
		}
	default:
		return e
	}
}
