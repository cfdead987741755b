// Package ast defines the typed scene-description tree produced by the
// parser: field expressions, blocks and the ordered program.
package ast

import (
	"github.com/noisylang/noisy/pkg/compiler/lexer"
	"github.com/noisylang/noisy/pkg/core/value"
)

// Node represents any node in the syntax tree.
type Node interface {
	Pos() lexer.Token
}

// Expr represents a field expression that yields an integer or a color.
type Expr interface {
	Node
	exprNode()
}

// IntLit is a decimal integer literal.
type IntLit struct {
	Token lexer.Token
	Value int64
}

func (n *IntLit) Pos() lexer.Token { return n.Token }
func (n *IntLit) exprNode()        {}

// ColorLit is a #rrggbb literal.
type ColorLit struct {
	Token lexer.Token
	Value value.Color
}

func (n *ColorLit) Pos() lexer.Token { return n.Token }
func (n *ColorLit) exprNode()        {}

// Ident is a reference to a constant or a macro parameter. Name is
// lowercased; capitalization is ignored throughout the language.
type Ident struct {
	Token lexer.Token
	Name  string
}

func (n *Ident) Pos() lexer.Token { return n.Token }
func (n *Ident) exprNode()        {}

// Binary is a left-associative arithmetic operation. Op.Kind is one of
// KindPlus, KindMinus, KindStar, KindSlash.
type Binary struct {
	Op  lexer.Token
	Lhs Expr
	Rhs Expr
}

func (n *Binary) Pos() lexer.Token { return n.Op }
func (n *Binary) exprNode()        {}

// Field is one `name expr` entry inside a block. Key is the lowercased
// field name.
type Field struct {
	Name  lexer.Token
	Key   string
	Value Expr
}

// Block is a brace-delimited group of fields. Kind is the lowercased
// block keyword (canvas, rectangle, ellipse, noise).
type Block struct {
	Keyword lexer.Token
	Kind    string
	Fields  []Field
}

func (b *Block) Pos() lexer.Token { return b.Keyword }

// Field returns the named field and whether it is present.
func (b *Block) Field(key string) (Field, bool) {
	for _, f := range b.Fields {
		if f.Key == key {
			return f, true
		}
	}
	return Field{}, false
}

// Program is the root node: the canvas followed by the ordered layer
// blocks, macro invocations already expanded.
type Program struct {
	Canvas *Block
	Layers []*Block
}
