package golfscript

import (
	"bytes"
	"errors"
	"testing"
)

// eval runs code on a fresh interpreter and returns the stack contents.
func eval(t *testing.T, code string) string {
	t.Helper()
	in := New(Config{Output: &bytes.Buffer{}, Seed: 1})
	if err := in.Run(code); err != nil {
		t.Fatalf("Run(%q): %v", code, err)
	}
	return in.Stack().Contents()
}

func TestBuiltins(t *testing.T) {
	tests := []struct {
		code string
		want string
	}{
		// ~
		{`5~`, `-6`},
		{`"1 2+"~`, `3`},
		{`{1 2+}~`, `3`},
		{`[1 2 3]~`, `1 2 3`},

		// `
		{"1`", `"1"`},
		{"[1 [2] 'asdf']`", `"[1 [2] \"asdf\"]"`},
		{"\"1\"`", `"\"1\""`},
		{"{1}`", `"{1}"`},

		// !
		{`1!`, `0`},
		{`{asdf}!`, `0`},
		{`""!`, `1`},
		{`[]!`, `1`},

		// @ \ ; .
		{`1 2 3 4 @`, `1 3 4 2`},
		{`1 2 3 \`, `1 3 2`},
		{`1 2 3;`, `1 2`},
		{`1 2 3.`, `1 2 3 3`},
		{`1 2 [\]`, `[2 1]`},

		// $
		{`1 2 3 4 5  1$`, `1 2 3 4 5 4`},
		{`'asdf'$`, `"adfs"`},
		{`[3 1 2]$`, `[1 2 3]`},
		{`[5 4 3 1 2]{-1*}$`, `[5 4 3 2 1]`},
		{`[3 "a" [1] {b} 0]$.$=`, `1`},
		{`'hello'$.$=`, `1`},

		// +
		{`5 7+`, `12`},
		{`'asdf'{1234}+`, `{asdf 1234}`},
		{`[1 2 3][4 5]+`, `[1 2 3 4 5]`},
		{`1 [2]+`, `[1 2]`},
		{`"a" 1+`, `"a1"`},

		// -
		{`1 2-3+`, `1 -1`},
		{`1 2 -3+`, `1 -1`},
		{`1 2- 3+`, `2`},
		{`[5 2 5 4 1 1][1 2]-`, `[5 5 4]`},
		{`"hello" "l"-`, `"heo"`},

		// *
		{`2 4*`, `8`},
		{`2 {2*} 5*`, `64`},
		{`[1 2 3]2*`, `[1 2 3 1 2 3]`},
		{`3'asdf'*`, `"asdfasdfasdf"`},
		{`[] 99999999999999999999*`, `[]`},
		{`'' 99999999999999999999*`, `""`},
		{`[1 2] -3*`, `[]`},
		{`[1 2 3]','*`, `"1,2,3"`},
		{`[1 2 3][4]*`, `[1 4 2 4 3]`},
		{`'asdf'' '*`, `"a s d f"`},
		{`[1 [2] [3 [4 [5]]]]'-'*`, `"1-\x02-\x03\x04\x05"`},
		{`[1 [2] [3 [4 [5]]]][6 7]*`, `[1 6 7 2 6 7 3 [4 [5]]]`},
		{`[1 2 3 4]{+}*`, `10`},
		{`'asdf'{+}*`, `414`},

		// /
		{`7 3 /`, `2`},
		{`-7 2 /`, `-3`},
		{`[1 2 3 4 2 3 5][2 3]/`, `[[1] [4] [5]]`},
		{`'a s d f'' '/`, `["a" "s" "d" "f"]`},
		{`'assdfs' 's'/`, `["a" "df"]`},
		{`[1 2 3 4 5] 2/`, `[[1 2] [3 4] [5]]`},
		{`0 1 {100<} { .@+ } /`, `89 [1 1 2 3 5 8 13 21 34 55 89]`},
		{`[1 2 3]{1+}/`, `2 3 4`},

		// %
		{`7 3 %`, `1`},
		{`'assdfs' 's'%`, `["a" "df"]`},
		{`[1 2 3 4 5] 2%`, `[1 3 5]`},
		{`[1 2 3 4 5] -1%`, `[5 4 3 2 1]`},
		{`[1 2 3 4 5] -2%`, `[5 3 1]`},
		{`[1 2 3]{.}%`, `[1 1 2 2 3 3]`},
		{`'abc'{)}%`, `"bcd"`},

		// | & ^
		{`5 3 |`, `7`},
		{`5 3 &`, `1`},
		{`5 3 ^`, `6`},
		{`[1 1 2 2][1 3]|`, `[1 2 3]`},
		{`[1 1 2 2][1 3]&`, `[1]`},
		{`[1 1 2 2][1 3]^`, `[2 3]`},
		{`"abc" "bcd"&`, `"bc"`},

		// strings
		{`'\n'`, `"\\n"`},
		{`' \' '`, `" ' "`},
		{`"\144"`, `"d"`},
		{`"\x41\t"`, `"A\t"`},

		// assignment
		{`1:a a`, `1 1`},
		{`1:0;0`, `1`},
		{`{2*}:double; 3 double`, `6`},

		// < > =
		{`3 4 <`, `1`},
		{`"asdf" "asdg" <`, `1`},
		{`[1 2 3] 2 <`, `[1 2]`},
		{`{asdf} -1 <`, `{asd}`},
		{`[1 2 3] 0 <`, `[]`},
		{`3 4 >`, `0`},
		{`"asdf" "asdg" >`, `0`},
		{`[1 2 3] 2 >`, `[3]`},
		{`{asdf} -1 >`, `{f}`},
		{`3 4 =`, `0`},
		{`"asdf" "asdg" =`, `0`},
		{`[1 2 3] 2 =`, `3`},
		{`{asdf} -1 =`, `102`},
		{`[1 2] [1 2] =`, `1`},

		// ,
		{`10,`, `[0 1 2 3 4 5 6 7 8 9]`},
		{`10,,`, `10`},
		{`10,{3%},`, `[1 2 4 5 7 8]`},
		{`'hello',`, `5`},

		// ?
		{`2 8?`, `256`},
		{`5 [4 3 5 1] ?`, `2`},
		{`[1 2 3 4 5 6] {.* 20>} ?`, `5`},
		{`"hello" "ll"?`, `2`},
		{`[1 2 3] 7?`, `-1`},

		// ( )
		{`5(`, `4`},
		{`[1 2 3](`, `[2 3] 1`},
		{`5)`, `6`},
		{`[1 2 3])`, `[1 2] 3`},
		{`'ab'(`, `"b" 97`},

		// and or xor
		{`5 {1 0/} or`, `5`},
		{`5 {1 1+} and`, `2`},
		{`0 [3] xor`, `[3]`},
		{`2 [3] xor`, `0`},

		// loops
		{`5{1-..}do`, `4 3 2 1 0 0`},
		{`5{.}{1-.}while`, `4 3 2 1 0 0`},
		{`5{.}{1-.}until`, `5`},

		// if
		{`1 2 3 if`, `2`},
		{`0 2 {1.} if`, `1 1`},

		{`-2 abs`, `2`},

		// zip
		{`[[1 2 3][4 5 6][7 8 9]]zip`, `[[1 4 7] [2 5 8] [3 6 9]]`},
		{`['asdf''1234']zip`, `["a1" "s2" "d3" "f4"]`},

		// base
		{`[1 1 0] 2 base`, `6`},
		{`6 2 base`, `[1 1 0]`},
		{`0 10 base`, `[0]`},
	}
	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			if got := eval(t, tt.code); got != tt.want {
				t.Errorf("%s => %s, want %s", tt.code, got, tt.want)
			}
		})
	}
}

func TestNoMatchLeavesStack(t *testing.T) {
	tests := []struct {
		code string
		want string
	}{
		{`1 0/`, `1 0`},
		{`1 0%`, `1 0`},
		{`2 -1?`, `2 -1`},
		{`[])`, `[]`},
		{`''(`, `""`},
		{`"a" abs`, `"a"`},
		{`+`, ``},
		{`1 +`, `1`},
		{`{1} ,`, `{1}`},
		{`[1 2] 0%`, `[1 2] 0`},
		{`5 1 base`, `5 1`},
		{`'ab' 9223372036854775807*`, `"ab" 9223372036854775807`},
		{`[1] 99999999999999999999*`, `[1] 99999999999999999999`},
		{`99999999999999999999999,`, `99999999999999999999999`},
	}
	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			if got := eval(t, tt.code); got != tt.want {
				t.Errorf("%s => %s, want %s", tt.code, got, tt.want)
			}
		})
	}
}

func TestCoercionError(t *testing.T) {
	in := New(Config{Output: &bytes.Buffer{}})
	err := in.Run(`{1}[2]+`)
	var ce *CoercionError
	if !errors.As(err, &ce) {
		t.Fatalf("Run = %v, want a *CoercionError", err)
	}
	if ce.From != TypeBlock || ce.To != TypeArray {
		t.Errorf("coercion %s -> %s, want block -> array", ce.From, ce.To)
	}
}

func TestPrint(t *testing.T) {
	var out bytes.Buffer
	in := New(Config{Output: &out})
	if err := in.Run(`"hi" print [1 "a" [2]] puts 'x'p`); err != nil {
		t.Fatal(err)
	}
	if got, want := out.String(), "hi1a2\n\"x\"\n"; got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
	if in.Stack().Size() != 0 {
		t.Errorf("stack = %s, want empty", in.Stack())
	}
}

func TestRand(t *testing.T) {
	in := New(Config{Output: &bytes.Buffer{}, Seed: 42})
	for i := 0; i < 50; i++ {
		if err := in.Run(`10 rand`); err != nil {
			t.Fatal(err)
		}
		a, _ := in.Stack().Pop()
		n, ok := a.(*Integer)
		if !ok || n.Int().Sign() < 0 || n.Int().Int64() >= 10 {
			t.Fatalf("10 rand = %s", a.Inspect())
		}
	}
}
