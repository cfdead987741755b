// Package parser recognizes .noisy top-level declarations and blocks,
// expands macro invocations, and produces the ordered program the
// scene builder consumes. Constants are evaluated at their declaration
// site, so forward references fail naturally.
package parser

import (
	"strconv"
	"strings"

	"github.com/noisylang/noisy/pkg/compiler/ast"
	"github.com/noisylang/noisy/pkg/compiler/diag"
	"github.com/noisylang/noisy/pkg/compiler/eval"
	"github.com/noisylang/noisy/pkg/compiler/lexer"
	"github.com/noisylang/noisy/pkg/core/value"
)

// writeBlocks are the block kinds that append a layer to the scene.
var writeBlocks = map[string]bool{
	"rectangle": true,
	"ellipse":   true,
	"noise":     true,
}

type Parser struct {
	scanner *lexer.Scanner
	src     []byte
	curTok  lexer.Token
	peekTok lexer.Token

	consts *eval.Consts
	macros map[string]macro
}

func NewParser(s *lexer.Scanner, src []byte) *Parser {
	p := &Parser{
		scanner: s,
		src:     src,
		consts:  eval.NewConsts(),
		macros:  make(map[string]macro),
	}
	// Read two tokens, so curTok and peekTok are both set
	p.nextToken()
	p.nextToken()
	return p
}

// Parse consumes the whole source and returns the program plus the
// constant table needed to evaluate its field expressions.
func (p *Parser) Parse() (*ast.Program, *eval.Consts, error) {
	prog := &ast.Program{}

	for p.curTok.Kind != lexer.KindEOF {
		switch p.curTok.Kind {
		case lexer.KindError:
			return nil, nil, p.scanner.Err()
		case lexer.KindConst:
			if err := p.parseConstDecl(); err != nil {
				return nil, nil, err
			}
		case lexer.KindDefine:
			if err := p.parseMacroDecl(); err != nil {
				return nil, nil, err
			}
		case lexer.KindIdentifier:
			var blk *ast.Block
			var err error
			if p.peekTok.Kind == lexer.KindLParen {
				blk, err = p.parseMacroCall()
			} else {
				blk, err = p.parseBlock()
			}
			if err != nil {
				return nil, nil, err
			}
			if err := p.appendBlock(prog, blk); err != nil {
				return nil, nil, err
			}
		default:
			return nil, nil, diag.New(diag.ErrParse, p.curTok.Line,
				"unexpected %s at top level", p.curTok.Kind)
		}
	}

	if prog.Canvas == nil {
		return nil, nil, diag.New(diag.ErrMissingCanvas, p.curTok.Line,
			"source defines no canvas block")
	}
	return prog, p.consts, nil
}

// appendBlock enforces the canvas-first ordering invariant and routes a
// parsed block into the program.
func (p *Parser) appendBlock(prog *ast.Program, blk *ast.Block) error {
	if blk.Kind == "canvas" {
		if prog.Canvas != nil {
			return diag.New(diag.ErrBlockOrder, blk.Keyword.Line,
				"canvas is already defined; exactly one canvas block is allowed")
		}
		if len(prog.Layers) > 0 {
			return diag.New(diag.ErrBlockOrder, blk.Keyword.Line,
				"canvas block must precede all layer blocks")
		}
		prog.Canvas = blk
		return nil
	}

	if !writeBlocks[blk.Kind] {
		return diag.New(diag.ErrUnknownBlock, blk.Keyword.Line,
			"unknown block keyword %q", blk.Kind)
	}
	if prog.Canvas == nil {
		return diag.New(diag.ErrMissingCanvas, blk.Keyword.Line,
			"%s block appears before the canvas block", blk.Kind)
	}
	prog.Layers = append(prog.Layers, blk)
	return nil
}

// parseConstDecl handles `#const NAME = expr`. The expression is
// evaluated immediately against previously-declared constants.
func (p *Parser) parseConstDecl() error {
	p.nextToken() // skip #const

	name, err := p.expect(lexer.KindIdentifier, "constant name after #const")
	if err != nil {
		return err
	}
	if _, err := p.expect(lexer.KindAssign, "'=' after constant name"); err != nil {
		return err
	}
	expr, err := p.parseExpr()
	if err != nil {
		return err
	}
	v, err := eval.Eval(expr, p.consts)
	if err != nil {
		return err
	}
	return p.consts.Define(p.lower(name), v, name.Line)
}

// parseBlock handles `KEYWORD { field* }`.
func (p *Parser) parseBlock() (*ast.Block, error) {
	kw := p.curTok
	blk := &ast.Block{Keyword: kw, Kind: p.lower(kw)}
	p.nextToken()

	if _, err := p.expect(lexer.KindLBrace, "'{' after block keyword"); err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	for p.curTok.Kind != lexer.KindRBrace {
		if p.curTok.Kind == lexer.KindError {
			return nil, p.scanner.Err()
		}
		if p.curTok.Kind == lexer.KindEOF {
			return nil, diag.New(diag.ErrParse, p.curTok.Line,
				"unexpected end of file inside %s block", blk.Kind)
		}
		name, err := p.expect(lexer.KindIdentifier, "field name")
		if err != nil {
			return nil, err
		}
		key := p.lower(name)
		if seen[key] {
			return nil, diag.New(diag.ErrDuplicateField, name.Line,
				"field %q appears twice in %s block", key, blk.Kind)
		}
		seen[key] = true

		expr, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		blk.Fields = append(blk.Fields, ast.Field{Name: name, Key: key, Value: expr})
	}
	p.nextToken() // skip '}'

	return blk, nil
}

func (p *Parser) nextToken() {
	p.curTok = p.peekTok
	p.peekTok = p.scanner.Next()
}

// expect consumes the current token if it matches, otherwise fails with
// a positioned parse error.
func (p *Parser) expect(k lexer.Kind, what string) (lexer.Token, error) {
	if p.curTok.Kind == lexer.KindError {
		return lexer.Token{}, p.scanner.Err()
	}
	if p.curTok.Kind != k {
		return lexer.Token{}, diag.New(diag.ErrParse, p.curTok.Line,
			"expected %s, got %s", what, p.curTok.Kind)
	}
	tok := p.curTok
	p.nextToken()
	return tok, nil
}

// lower returns the lowercased literal of a token. Capitalization is
// ignored for every name in the language.
func (p *Parser) lower(tok lexer.Token) string {
	return strings.ToLower(string(p.src[tok.Offset : tok.Offset+tok.Length]))
}

// parseExpr parses `term (('+'|'-') term)*`.
func (p *Parser) parseExpr() (ast.Expr, error) {
	lhs, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	for p.curTok.Kind == lexer.KindPlus || p.curTok.Kind == lexer.KindMinus {
		op := p.curTok
		p.nextToken()
		rhs, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		lhs = &ast.Binary{Op: op, Lhs: lhs, Rhs: rhs}
	}
	return lhs, nil
}

// parseTerm parses `factor (('*'|'/') factor)*`.
func (p *Parser) parseTerm() (ast.Expr, error) {
	lhs, err := p.parseFactor()
	if err != nil {
		return nil, err
	}
	for p.curTok.Kind == lexer.KindStar || p.curTok.Kind == lexer.KindSlash {
		op := p.curTok
		p.nextToken()
		rhs, err := p.parseFactor()
		if err != nil {
			return nil, err
		}
		lhs = &ast.Binary{Op: op, Lhs: lhs, Rhs: rhs}
	}
	return lhs, nil
}

func (p *Parser) parseFactor() (ast.Expr, error) {
	switch p.curTok.Kind {
	case lexer.KindError:
		return nil, p.scanner.Err()
	case lexer.KindInt:
		tok := p.curTok
		lit := string(p.src[tok.Offset : tok.Offset+tok.Length])
		n, err := strconv.ParseInt(lit, 10, 64)
		if err != nil {
			return nil, diag.New(diag.ErrParse, tok.Line, "invalid integer literal %q", lit)
		}
		p.nextToken()
		return &ast.IntLit{Token: tok, Value: n}, nil
	case lexer.KindHexColor:
		tok := p.curTok
		c, ok := value.ParseHex(string(p.src[tok.Offset : tok.Offset+tok.Length]))
		if !ok {
			return nil, diag.New(diag.ErrLex, tok.Line, "invalid color literal")
		}
		p.nextToken()
		return &ast.ColorLit{Token: tok, Value: c}, nil
	case lexer.KindIdentifier:
		tok := p.curTok
		p.nextToken()
		return &ast.Ident{Token: tok, Name: p.lower(tok)}, nil
	case lexer.KindLParen:
		p.nextToken()
		inner, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.KindRParen, "')' closing sub-expression"); err != nil {
			return nil, err
		}
		return inner, nil
	}
	return nil, diag.New(diag.ErrParse, p.curTok.Line,
		"expected an expression, got %s", p.curTok.Kind)
}
