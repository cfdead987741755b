// Package value holds the tagged value union produced by expression
// evaluation. A field expression yields either a 64-bit signed integer
// or a 24-bit RGB color; the tag decides which.
package value

import "fmt"

// Type represents the tag in the Value tagged union.
type Type uint8

const (
	TypeVoid Type = iota
	TypeInt
	TypeColor
)

func (t Type) String() string {
	switch t {
	case TypeInt:
		return "integer"
	case TypeColor:
		return "color"
	default:
		return "void"
	}
}

// Value is a tagged union. Data holds either the int64 bits or a packed
// 0x00RRGGBB color, interpreted based on Type.
type Value struct {
	Type Type
	Data uint64
}

// OfInt wraps an int64.
func OfInt(i int64) Value {
	return Value{Type: TypeInt, Data: uint64(i)}
}

// OfColor wraps a color.
func OfColor(c Color) Value {
	return Value{Type: TypeColor, Data: uint64(c.pack())}
}

// Int returns the value as int64.
func (v Value) Int() int64 {
	return int64(v.Data)
}

// Color returns the value as a color.
func (v Value) Color() Color {
	return unpackColor(uint32(v.Data))
}

// Format returns a string representation of the value for diagnostics.
func (v Value) Format() string {
	switch v.Type {
	case TypeInt:
		return fmt.Sprintf("%d", v.Int())
	case TypeColor:
		return v.Color().Hex()
	default:
		return "void"
	}
}

// Color is an opaque 24-bit RGB triple.
type Color struct {
	R, G, B uint8
}

func (c Color) pack() uint32 {
	return uint32(c.R)<<16 | uint32(c.G)<<8 | uint32(c.B)
}

func unpackColor(p uint32) Color {
	return Color{R: uint8(p >> 16), G: uint8(p >> 8), B: uint8(p)}
}

// Hex renders the color as a #rrggbb literal.
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// ParseHex parses exactly six hex digits (without the leading '#') into
// a color. Reports false on any other input.
func ParseHex(digits string) (Color, bool) {
	if len(digits) != 6 {
		return Color{}, false
	}
	var out [3]uint8
	for i := 0; i < 3; i++ {
		hi, ok1 := hexVal(digits[2*i])
		lo, ok2 := hexVal(digits[2*i+1])
		if !ok1 || !ok2 {
			return Color{}, false
		}
		out[i] = hi<<4 | lo
	}
	return Color{R: out[0], G: out[1], B: out[2]}, true
}

func hexVal(ch byte) (uint8, bool) {
	switch {
	case ch >= '0' && ch <= '9':
		return ch - '0', true
	case ch >= 'a' && ch <= 'f':
		return ch - 'a' + 10, true
	case ch >= 'A' && ch <= 'F':
		return ch - 'A' + 10, true
	}
	return 0, false
}
