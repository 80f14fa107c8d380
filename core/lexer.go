package golfscript

import (
	"math/big"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Single character operator glyphs.
const operatorGlyphs = "~`!.;\\@()+-|&^*/%<>$,=?"

var escapedChars = map[rune]rune{
	'\\': '\\',
	'\'': '\'',
	'"':  '"',
	'a':  '\a',
	'b':  '\b',
	't':  '\t',
	'n':  '\n',
	'v':  '\v',
	'f':  '\f',
	'r':  '\r',
	'e':  '\x1b',
}

// Tokenizer scans source text lazily. Bound names are looked up in the
// environment at every position, so a declaration made while the tokens are
// being consumed affects the rest of the scan.
type Tokenizer struct {
	src string
	env *Environ

	ptr    int // byte offset of the next rune
	lnNum  int
	offset int // column of the next rune

	start                 int
	startLine, startColumn int

	report       func(*LexError)
	unterminated bool
}

func NewTokenizer(src string, env *Environ, report func(*LexError)) *Tokenizer {
	return &Tokenizer{src: src, env: env, report: report}
}

func (t *Tokenizer) read() (rune, bool) {
	if t.ptr >= len(t.src) {
		return 0, false
	}
	c, size := utf8.DecodeRuneInString(t.src[t.ptr:])
	t.ptr += size
	t.offset++
	if c == '\n' {
		t.lnNum++
		t.offset = 0
	}
	return c, true
}

func (t *Tokenizer) peek() (rune, bool) {
	if t.ptr >= len(t.src) {
		return 0, false
	}
	c, _ := utf8.DecodeRuneInString(t.src[t.ptr:])
	return c, true
}

func (t *Tokenizer) skip(n int) {
	for i := 0; i < n; {
		_, size := utf8.DecodeRuneInString(t.src[t.ptr:])
		t.read()
		i += size
	}
}

func (t *Tokenizer) mark() {
	t.start, t.startLine, t.startColumn = t.ptr, t.lnNum, t.offset
}

func (t *Tokenizer) token(kind TokenKind) Token {
	return Token{
		Kind:   kind,
		Text:   t.src[t.start:t.ptr],
		Offset: t.start,
		Line:   t.startLine,
		Column: t.startColumn,
	}
}

func (t *Tokenizer) fail(msg string) {
	if t.report != nil {
		t.report(&LexError{Line: t.startLine, Column: t.startColumn, Message: msg})
	}
}

// Next returns the following token, or false at the end of input.
func (t *Tokenizer) Next() (Token, bool) {
	for t.ptr < len(t.src) {
		t.mark()
		if tok, ok := t.word(); ok {
			return tok, true
		}

		c, _ := t.read()
		switch {
		case c == '\n' || c == '\r' || unicode.IsSpace(c):
		case c == '\'':
			if tok, ok := t.rawString(); ok {
				return tok, true
			}
		case c == '"':
			if tok, ok := t.escapedString(); ok {
				return tok, true
			}
		case c == ':':
			if tok, ok := t.declaration(); ok {
				return tok, true
			}
		case c == '{':
			return t.token(TokenBlockBeginning), true
		case c == '}':
			return t.token(TokenBlockEnding), true
		case c == '[':
			return t.token(TokenArrayBeginning), true
		case c == ']':
			return t.token(TokenArrayEnding), true
		case c == '#':
			for n, ok := t.peek(); ok && n != '\n'; n, ok = t.peek() {
				t.read()
			}
		case isDigit(c):
			return t.number(), true
		case c == '-':
			if n, ok := t.peek(); ok && isDigit(n) {
				return t.number(), true
			}
			return t.token(TokenOperator), true
		case strings.ContainsRune(operatorGlyphs, c):
			return t.token(TokenOperator), true
		default:
			if isVarchar(c) {
				for n, ok := t.peek(); ok && isVarchar(n); n, ok = t.peek() {
					t.read()
				}
			}
			t.fail("unknown token " + quote(t.src[t.start:t.ptr]))
		}
	}
	return Token{}, false
}

// word matches bound names and keyword operators, longest first. A bound
// name wins a tie with a keyword of the same length.
func (t *Tokenizer) word() (Token, bool) {
	rest := t.src[t.ptr:]
	name, bound := "", false
	if t.env != nil {
		name, bound = t.env.Match(rest)
	}
	kw := matchKeyword(rest)
	if !bound && kw == "" {
		return Token{}, false
	}
	if bound && len(name) >= len(kw) {
		t.skip(len(name))
		tok := t.token(TokenIdentifier)
		tok.Value = name
		return tok, true
	}
	t.skip(len(kw))
	return t.token(TokenOperator), true
}

func (t *Tokenizer) rawString() (Token, bool) {
	var sb strings.Builder
	for {
		c, ok := t.read()
		if !ok {
			t.unterminated = true
			t.fail("unterminated string")
			return Token{}, false
		}
		switch c {
		case '\'':
			tok := t.token(TokenRawString)
			tok.Value = sb.String()
			return tok, true
		case '\\':
			if n, ok := t.peek(); ok && (n == '\\' || n == '\'') {
				t.read()
				sb.WriteRune(n)
				continue
			}
		}
		sb.WriteRune(c)
	}
}

func (t *Tokenizer) escapedString() (Token, bool) {
	var sb strings.Builder
	for {
		c, ok := t.read()
		if !ok {
			t.unterminated = true
			t.fail("unterminated string")
			return Token{}, false
		}
		if c == '"' {
			tok := t.token(TokenString)
			tok.Value = sb.String()
			return tok, true
		}
		if c != '\\' {
			sb.WriteRune(c)
			continue
		}

		e, ok := t.read()
		if !ok {
			continue
		}
		if r, ok := escapedChars[e]; ok {
			sb.WriteRune(r)
			continue
		}
		switch {
		case e == 'x':
			if v, ok := t.digits(2, 16, 0); ok {
				sb.WriteRune(v)
			} else {
				sb.WriteRune(e)
			}
		case isOctal(e):
			v, _ := t.digits(2, 8, e-'0')
			sb.WriteRune(v)
		default:
			sb.WriteRune(e)
		}
	}
}

// digits reads up to max digits in base and folds them into acc.
func (t *Tokenizer) digits(max int, base int, acc rune) (rune, bool) {
	read := false
	for i := 0; i < max; i++ {
		n, ok := t.peek()
		if !ok {
			break
		}
		d := digitValue(n)
		if d < 0 || d >= base {
			break
		}
		t.read()
		acc = acc*rune(base) + rune(d)
		read = true
	}
	return acc, read
}

func (t *Tokenizer) declaration() (Token, bool) {
	n, ok := t.peek()
	switch {
	case ok && isVarchar(n):
		for ; ok && isVarchar(n); n, ok = t.peek() {
			t.read()
		}
	case ok && strings.ContainsRune(operatorGlyphs, n):
		t.read()
	default:
		t.fail("missing name after ':'")
		return Token{}, false
	}
	tok := t.token(TokenIdentifierDeclaration)
	tok.Value = tok.Text[1:]
	return tok, true
}

func (t *Tokenizer) number() Token {
	for n, ok := t.peek(); ok && isDigit(n); n, ok = t.peek() {
		t.read()
	}
	tok := t.token(TokenNumber)
	tok.Number, _ = new(big.Int).SetString(tok.Text, 10)
	return tok
}

// Incomplete reports whether src ends inside an open block or string.
func Incomplete(src string, env *Environ) bool {
	t := NewTokenizer(src, env, nil)
	depth := 0
	for tok, ok := t.Next(); ok; tok, ok = t.Next() {
		switch tok.Kind {
		case TokenBlockBeginning:
			depth++
		case TokenBlockEnding:
			if depth > 0 {
				depth--
			}
		}
	}
	return depth > 0 || t.unterminated
}

func digitValue(c rune) int {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0')
	case c >= 'a' && c <= 'f':
		return int(c-'a') + 10
	case c >= 'A' && c <= 'F':
		return int(c-'A') + 10
	}
	return -1
}

func quote(s string) string {
	return "`" + s + "`"
}
