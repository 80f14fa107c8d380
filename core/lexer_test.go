package golfscript

import (
	"testing"
)

type lexed struct {
	kind TokenKind
	text string
}

func scan(src string, env *Environ) []lexed {
	var res []lexed
	t := NewTokenizer(src, env, nil)
	for tok, ok := t.Next(); ok; tok, ok = t.Next() {
		res = append(res, lexed{tok.Kind, tok.Text})
	}
	return res
}

func TestTokenizer(t *testing.T) {
	tests := []struct {
		src  string
		want []lexed
	}{
		{"1 -2-3", []lexed{
			{TokenNumber, "1"}, {TokenNumber, "-2"}, {TokenNumber, "-3"},
		}},
		{"1 2- 3", []lexed{
			{TokenNumber, "1"}, {TokenNumber, "2"}, {TokenOperator, "-"}, {TokenNumber, "3"},
		}},
		{"[1]{.}", []lexed{
			{TokenArrayBeginning, "["}, {TokenNumber, "1"}, {TokenArrayEnding, "]"},
			{TokenBlockBeginning, "{"}, {TokenOperator, "."}, {TokenBlockEnding, "}"},
		}},
		{`'a'"b":c`, []lexed{
			{TokenRawString, "'a'"}, {TokenString, `"b"`}, {TokenIdentifierDeclaration, ":c"},
		}},
		{"1 # comment\n2", []lexed{
			{TokenNumber, "1"}, {TokenNumber, "2"},
		}},
		{"5 abs do", []lexed{
			{TokenNumber, "5"}, {TokenOperator, "abs"}, {TokenOperator, "do"},
		}},
		{"n puts", []lexed{
			{TokenIdentifier, "n"}, {TokenIdentifier, "puts"},
		}},
		{"printn", []lexed{
			{TokenOperator, "print"}, {TokenIdentifier, "n"},
		}},
	}
	for _, tt := range tests {
		got := scan(tt.src, NewEnviron())
		if len(got) != len(tt.want) {
			t.Errorf("%q: got %v, want %v", tt.src, got, tt.want)
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("%q token %d: got %v, want %v", tt.src, i, got[i], tt.want[i])
			}
		}
	}
}

func TestTokenizerBoundNames(t *testing.T) {
	env := NewEnviron()
	env.SetVar("d", Int(1))
	env.SetVar("dox", Int(2))

	// "dox" beats the keyword "do"; a lone "d" is still the name.
	got := scan("dox do d", env)
	want := []lexed{
		{TokenIdentifier, "dox"}, {TokenOperator, "do"}, {TokenIdentifier, "d"},
	}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range got {
		if got[i] != want[i] {
			t.Errorf("token %d: got %v, want %v", i, got[i], want[i])
		}
	}

	// A bound name wins a tie with a keyword.
	env.SetVar("do", Int(3))
	if got := scan("do", env); len(got) != 1 || got[0].kind != TokenIdentifier {
		t.Errorf("do: got %v, want an identifier", got)
	}
}

func TestStringValues(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{`'a\nb'`, `a\nb`},
		{`'it\'s'`, `it's`},
		{`'a\\b'`, `a\b`},
		{`"a\nb"`, "a\nb"},
		{`"\x41\x4a"`, "AJ"},
		{`"\101"`, "A"},
		{`"\q"`, "q"},
		{`"\""`, `"`},
	}
	for _, tt := range tests {
		tok, ok := NewTokenizer(tt.src, nil, nil).Next()
		if !ok {
			t.Errorf("%s: no token", tt.src)
			continue
		}
		if tok.Value != tt.want {
			t.Errorf("%s: value %q, want %q", tt.src, tok.Value, tt.want)
		}
	}
}

func TestTokenPositions(t *testing.T) {
	tok := NewTokenizer("1\n  {", nil, nil)
	tok.Next()
	b, ok := tok.Next()
	if !ok {
		t.Fatal("missing second token")
	}
	if b.Line != 1 || b.Column != 2 || b.Offset != 4 {
		t.Errorf("position = %d:%d@%d, want 1:2@4", b.Line, b.Column, b.Offset)
	}
}

func TestUnknownToken(t *testing.T) {
	var errs []*LexError
	tok := NewTokenizer("1 foo 2", nil, func(e *LexError) { errs = append(errs, e) })
	var kinds []TokenKind
	for tk, ok := tok.Next(); ok; tk, ok = tok.Next() {
		kinds = append(kinds, tk.Kind)
	}
	if len(kinds) != 2 {
		t.Errorf("tokens = %v, want two numbers", kinds)
	}
	if len(errs) != 1 || errs[0].Error() != "1:3: unknown token `foo`" {
		t.Errorf("errors = %v", errs)
	}
}
