package golfscript

import (
	"fmt"
	"math/big"
	"strings"
)

// Type is the rank of an item in the coercion order:
// Integer < String < Block < Array.
type Type int

const (
	TypeInteger Type = iota
	TypeString
	TypeBlock
	TypeArray
)

func (t Type) String() string {
	switch t {
	case TypeInteger:
		return "integer"
	case TypeString:
		return "string"
	case TypeBlock:
		return "block"
	case TypeArray:
		return "array"
	}
	return fmt.Sprintf("type(%d)", int(t))
}

// Item is a runtime value. The set of implementations is closed: *Integer,
// *String, *Block and *Array. Items are never mutated once built.
type Item interface {
	Type() Type
	Truthy() bool
	// Inspect is the debugging form shown in stack dumps and by `.
	Inspect() string
	// Native is the raw form written by print.
	Native() string

	item()
}

// Integers//
type Integer struct {
	v *big.Int
}

func NewInteger(v *big.Int) *Integer {
	return &Integer{v}
}

func Int(n int64) *Integer {
	return &Integer{big.NewInt(n)}
}

func boolInt(b bool) *Integer {
	if b {
		return Int(1)
	}
	return Int(0)
}

// Int returns the value; callers must not modify it.
func (i *Integer) Int() *big.Int { return i.v }
func (i *Integer) Type() Type    { return TypeInteger }
func (i *Integer) Truthy() bool  { return i.v.Sign() != 0 }
func (i *Integer) Inspect() string {
	return i.v.String()
}
func (i *Integer) Native() string { return i.v.String() }
func (*Integer) item()            {}

// Char converts the integer to a character, keeping the low 16 bits.
func (i *Integer) Char() rune {
	return charOf(i.v)
}

var charMask = big.NewInt(0xFFFF)

func charOf(v *big.Int) rune {
	return rune(new(big.Int).And(v, charMask).Uint64())
}

// Strings//
type String struct {
	s string
}

func NewString(s string) *String {
	return &String{s}
}

func runesString(rs []rune) *String {
	return &String{string(rs)}
}

func (s *String) Text() string   { return s.s }
func (s *String) Runes() []rune  { return []rune(s.s) }
func (s *String) Len() int       { return len([]rune(s.s)) }
func (s *String) Type() Type     { return TypeString }
func (s *String) Truthy() bool   { return s.s != "" }
func (s *String) Native() string { return s.s }
func (*String) item()            {}

func (s *String) Inspect() string {
	var sb strings.Builder
	sb.WriteByte('"')
	for _, r := range s.s {
		if esc, ok := displayEscapes[r]; ok {
			sb.WriteString(esc)
		} else if r > 0xFFFF {
			fmt.Fprintf(&sb, "\\U%08X", r)
		} else if r > 0xFF {
			fmt.Fprintf(&sb, "\\u%04X", r)
		} else if r < 0x20 || r > 0x7E {
			fmt.Fprintf(&sb, "\\x%02X", r)
		} else {
			sb.WriteRune(r)
		}
	}
	sb.WriteByte('"')
	return sb.String()
}

var displayEscapes = map[rune]string{
	'\\':   `\\`,
	'\'':   `'`,
	'"':    `\"`,
	'\a':   `\a`,
	'\b':   `\b`,
	'\t':   `\t`,
	'\n':   `\n`,
	'\v':   `\v`,
	'\f':   `\f`,
	'\r':   `\r`,
	'\x1b': `\e`,
}

// Blocks//
type Block struct {
	src string
}

func NewBlock(src string) *Block {
	return &Block{src}
}

func (b *Block) Source() string  { return b.src }
func (b *Block) Runes() []rune   { return []rune(b.src) }
func (b *Block) Len() int        { return len([]rune(b.src)) }
func (b *Block) Type() Type      { return TypeBlock }
func (b *Block) Truthy() bool    { return true }
func (b *Block) Inspect() string { return "{" + b.src + "}" }
func (b *Block) Native() string  { return b.src }
func (*Block) item()             {}

// Arrays//
type Array struct {
	items []Item
}

// NewArray takes ownership of items.
func NewArray(items []Item) *Array {
	if items == nil {
		items = []Item{}
	}
	return &Array{items}
}

func wrapa(as ...Item) *Array {
	return NewArray(as)
}

// Items returns the elements; callers must not modify the slice.
func (a *Array) Items() []Item { return a.items }
func (a *Array) Len() int      { return len(a.items) }
func (a *Array) Type() Type    { return TypeArray }
func (a *Array) Truthy() bool  { return len(a.items) > 0 }
func (*Array) item()           {}

func (a *Array) Inspect() string {
	parts := make([]string, len(a.items))
	for i, it := range a.items {
		parts[i] = it.Inspect()
	}
	return "[" + strings.Join(parts, " ") + "]"
}

func (a *Array) Native() string {
	var sb strings.Builder
	for _, it := range a.items {
		sb.WriteString(it.Native())
	}
	return sb.String()
}

// chars renders the array as text: integers become characters, nested
// arrays recurse and everything else contributes its native form.
func (a *Array) chars() string {
	var sb strings.Builder
	for _, it := range a.items {
		switch v := it.(type) {
		case *Integer:
			sb.WriteRune(v.Char())
		case *Array:
			sb.WriteString(v.chars())
		default:
			sb.WriteString(it.Native())
		}
	}
	return sb.String()
}

// Size is the length of strings, blocks and arrays. Integers have none.
func Size(a Item) (int, bool) {
	switch v := a.(type) {
	case *String:
		return v.Len(), true
	case *Block:
		return v.Len(), true
	case *Array:
		return v.Len(), true
	}
	return 0, false
}

// Type conversions
func Coerce(a Item, typ Type) (Item, error) {
	if a.Type() == typ {
		return a, nil
	}
	switch v := a.(type) {
	case *Integer:
		switch typ {
		case TypeString:
			return NewString(v.v.String()), nil
		case TypeBlock:
			return NewBlock(v.v.String()), nil
		case TypeArray:
			return wrapa(v), nil
		}
	case *String:
		switch typ {
		case TypeInteger:
			if n, ok := leadingInt(v.s); ok {
				return NewInteger(n), nil
			}
		case TypeBlock:
			return NewBlock(v.s), nil
		case TypeArray:
			return wrapa(v), nil
		}
	case *Array:
		if typ == TypeString {
			return NewString(v.chars()), nil
		}
	}
	return nil, &CoercionError{From: a.Type(), To: typ}
}

// leadingInt parses the decimal run at the start of s.
func leadingInt(s string) (*big.Int, bool) {
	s = strings.TrimLeft(s, " \t\r\n")
	end := 0
	if end < len(s) && s[end] == '-' {
		end++
	}
	start := end
	for end < len(s) && isDigit(rune(s[end])) {
		end++
	}
	if end == start {
		return nil, false
	}
	return new(big.Int).SetString(s[:end], 10)
}

// textOf returns the characters of a string or block.
func textOf(a Item) []rune {
	switch v := a.(type) {
	case *String:
		return v.Runes()
	case *Block:
		return v.Runes()
	}
	return nil
}

// sameText builds an item of a's type (string or block) from rs.
func sameText(a Item, rs []rune) Item {
	if a.Type() == TypeBlock {
		return NewBlock(string(rs))
	}
	return runesString(rs)
}
