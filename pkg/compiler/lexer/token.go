package lexer

// Kind represents the type of token identified by the scanner.
type Kind uint8

const (
	KindEOF Kind = iota
	KindError
	KindIdentifier
	KindInt
	KindHexColor // #rrggbb
	KindConst    // #const
	KindDefine   // #define
	KindAssign   // =
	KindPlus     // +
	KindMinus    // -
	KindStar     // *
	KindSlash    // /
	KindLBrace   // {
	KindRBrace   // }
	KindLParen   // (
	KindRParen   // )
	KindComma    // ,
)

func (k Kind) String() string {
	switch k {
	case KindEOF:
		return "end of file"
	case KindError:
		return "invalid token"
	case KindIdentifier:
		return "identifier"
	case KindInt:
		return "integer"
	case KindHexColor:
		return "color literal"
	case KindConst:
		return "#const"
	case KindDefine:
		return "#define"
	case KindAssign:
		return "'='"
	case KindPlus:
		return "'+'"
	case KindMinus:
		return "'-'"
	case KindStar:
		return "'*'"
	case KindSlash:
		return "'/'"
	case KindLBrace:
		return "'{'"
	case KindRBrace:
		return "'}'"
	case KindLParen:
		return "'('"
	case KindRParen:
		return "')'"
	case KindComma:
		return "','"
	}
	return "unknown"
}

// Token represents a lexical unit pointing back to the source.
// 12-byte struct to minimize stack overhead and avoid allocations.
type Token struct {
	Kind   Kind
	Offset uint32
	Length uint32
	Line   uint32
}
