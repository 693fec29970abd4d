package scan

import (
	"errors"
	"testing"

	"github.com/eaburns/gek/loc"
	"github.com/eaburns/gek/token"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func ident(name string) token.Token { return token.Token{Kind: token.Identifier, Name: name} }
func kw(k token.Kw) token.Token      { return token.Token{Kind: token.Keyword, Keyword: k} }
func sym(s token.Sym) token.Token    { return token.Token{Kind: token.Symbol, Symbol: s} }
func str(s string) token.Token       { return token.Token{Kind: token.String, Str: s} }
func char(c rune) token.Token        { return token.Token{Kind: token.Char, Char: c} }

func num(whole uint64, dec float64) token.Token {
	return token.Token{Kind: token.NumberLit, Num: token.Number{Whole: whole, Decimal: dec}}
}

// scanAll returns all tokens up to, but not including, EOF.
func scanAll(text string) ([]token.Token, error) {
	tz := New(loc.NewSource("test.gek", text))
	var toks []token.Token
	for {
		tok, err := tz.Next()
		if err != nil {
			return nil, err
		}
		if tok.Kind == token.EOF {
			return toks, nil
		}
		toks = append(toks, tok)
	}
}

var ignoreSpans = cmpopts.IgnoreTypes(loc.Span{})

func TestScan(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want []token.Token
	}{
		{name: "empty", src: "", want: nil},
		{name: "only space", src: " \t\r\n ", want: nil},
		{name: "line comment", src: "a // b c\nd", want: []token.Token{ident("a"), ident("d")}},
		{name: "line comment at EOF", src: "a // b", want: []token.Token{ident("a")}},
		{name: "block comment", src: "a /* b\n c */ d", want: []token.Token{ident("a"), ident("d")}},
		{name: "block comments do not nest", src: "/* /* */ x", want: []token.Token{ident("x")}},
		{
			name: "identifiers",
			src:  "x _x x_1 héllo",
			want: []token.Token{ident("x"), ident("_x"), ident("x_1"), ident("héllo")},
		},
		{
			name: "keywords",
			src:  "let mut func This this _ sizeof",
			want: []token.Token{
				kw(token.Let), kw(token.Mut), kw(token.Func), kw(token.ThisType),
				kw(token.This), kw(token.Discard), kw(token.Sizeof),
			},
		},
		{
			name: "keyword prefix is an identifier",
			src:  "letter funcs i322",
			want: []token.Token{ident("letter"), ident("funcs"), ident("i322")},
		},
		{name: "longest range match", src: "<..=", want: []token.Token{sym(token.RangeFromTo)}},
		{name: "rest", src: "...", want: []token.Token{sym(token.Rest)}},
		{
			name: "greedy symbols",
			src:  "a<<=b>>c?->d!.e",
			want: []token.Token{
				ident("a"), sym(token.ShlAssign), ident("b"), sym(token.Shr),
				ident("c"), sym(token.ReferenceCoalesce), ident("d"),
				sym(token.ValueCascade), ident("e"),
			},
		},
		{
			name: "adjacent symbols",
			src:  "::<>(){}[]",
			want: []token.Token{
				sym(token.DoubleColon), sym(token.Less), sym(token.Greater),
				sym(token.ParenOpen), sym(token.ParenClose),
				sym(token.BraceOpen), sym(token.BraceClose),
				sym(token.BracketOpen), sym(token.BracketClose),
			},
		},
		{name: "whole number", src: "15", want: []token.Token{num(15, 0)}},
		{name: "largest whole number", src: "18446744073709551615", want: []token.Token{num(1<<64-1, 0)}},
		{name: "decimal number", src: "3.14", want: []token.Token{num(3, 0.14)}},
		{name: "leading zero fraction", src: "3.05", want: []token.Token{num(3, 0.05)}},
		{name: "fraction", src: "3.5", want: []token.Token{num(3, 0.5)}},
		{
			name: "dot back-off",
			src:  "3..5",
			want: []token.Token{num(3, 0), sym(token.Range), num(5, 0)},
		},
		{
			name: "field of a number",
			src:  "1.x",
			want: []token.Token{num(1, 0), sym(token.Dot), ident("x")},
		},
		{name: "char", src: "'a'", want: []token.Token{char('a')}},
		{name: "char double quote", src: `'"'`, want: []token.Token{char('"')}},
		{name: "char escape", src: `'\n'`, want: []token.Token{char('\n')}},
		{name: "char escaped quote", src: `'\''`, want: []token.Token{char('\'')}},
		{name: "string", src: `"hello, world!"`, want: []token.Token{str("hello, world!")}},
		{name: "empty string", src: `""`, want: []token.Token{str("")}},
		{name: "string single quote", src: `"it's"`, want: []token.Token{str("it's")}},
		{
			name: "string escapes",
			src:  `"a\tb\\c\"d\n\r\'"`,
			want: []token.Token{str("a\tb\\c\"d\n\r'")},
		},
		{
			name: "mixed",
			src:  `let x: i32 = f(1, "s");`,
			want: []token.Token{
				kw(token.Let), ident("x"), sym(token.Colon), kw(token.I32),
				sym(token.Assign), ident("f"), sym(token.ParenOpen), num(1, 0),
				sym(token.Comma), str("s"), sym(token.ParenClose), sym(token.Semicolon),
			},
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got, err := scanAll(test.src)
			if err != nil {
				t.Fatalf("scanAll(%q) failed: %v", test.src, err)
			}
			if diff := cmp.Diff(test.want, got, ignoreSpans, cmpopts.EquateEmpty()); diff != "" {
				t.Errorf("scanAll(%q) got diff (-want,+got):\n%s", test.src, diff)
			}
		})
	}
}

func TestSpans(t *testing.T) {
	const src = `  foo /*x*/ <..= 3.25 "a\tb" 'c' // end`
	toks, err := scanAll(src)
	if err != nil {
		t.Fatalf("scanAll failed: %v", err)
	}
	want := []string{"foo", "<..=", "3.25", `"a\tb"`, "'c'"}
	var got []string
	for _, tok := range toks {
		got = append(got, tok.Text())
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("token text diff (-want,+got):\n%s", diff)
	}
}

func TestEOFForever(t *testing.T) {
	const src = "x  "
	tz := New(loc.NewSource("", src))
	if tok, err := tz.Next(); err != nil || tok.Kind != token.Identifier {
		t.Fatalf("Next()=%v, %v, want identifier", tok, err)
	}
	for i := 0; i < 3; i++ {
		tok, err := tz.Next()
		if err != nil {
			t.Fatalf("Next() failed: %v", err)
		}
		if tok.Kind != token.EOF {
			t.Fatalf("Next()=%s, want EOF", tok.Describe())
		}
		if tok.Start != len(src) || tok.End != len(src) {
			t.Errorf("EOF span [%d, %d), want [%d, %d)", tok.Start, tok.End, len(src), len(src))
		}
	}
}

func TestPeek(t *testing.T) {
	tz := New(loc.NewSource("", "a b c"))
	for i := 0; i < 3; i++ {
		tok, err := tz.Peek(0)
		if err != nil {
			t.Fatalf("Peek(0) failed: %v", err)
		}
		if tok.Name != "a" {
			t.Fatalf("Peek(0)=%s, want identifier a", tok.Describe())
		}
	}
	if tok, err := tz.Peek(2); err != nil || tok.Name != "c" {
		t.Fatalf("Peek(2)=%v, %v, want identifier c", tok, err)
	}
	if tok, err := tz.Peek(5); err != nil || tok.Kind != token.EOF {
		t.Fatalf("Peek(5)=%v, %v, want EOF", tok, err)
	}
	for _, want := range []string{"a", "b", "c"} {
		tok, err := tz.Next()
		if err != nil {
			t.Fatalf("Next() failed: %v", err)
		}
		if tok.Name != want {
			t.Errorf("Next()=%s, want identifier %s", tok.Describe(), want)
		}
	}
	if tok, err := tz.Next(); err != nil || tok.Kind != token.EOF {
		t.Errorf("Next()=%v, %v, want EOF", tok, err)
	}
}

func TestClearPeekQueue(t *testing.T) {
	tz := New(loc.NewSource("", "a b c d"))
	if tok, err := tz.Next(); err != nil || tok.Name != "a" {
		t.Fatalf("Next()=%v, %v, want identifier a", tok, err)
	}
	if _, err := tz.Peek(1); err != nil {
		t.Fatalf("Peek(1) failed: %v", err)
	}
	tz.ClearPeekQueue()
	tz.ClearPeekQueue()
	for _, want := range []string{"b", "c", "d"} {
		tok, err := tz.Next()
		if err != nil {
			t.Fatalf("Next() failed: %v", err)
		}
		if tok.Name != want {
			t.Errorf("Next()=%s, want identifier %s", tok.Describe(), want)
		}
	}
}

func TestUnread(t *testing.T) {
	src := loc.NewSource("", ">>= x")
	tz := New(src)
	tok, err := tz.Next()
	if err != nil || !tok.Is(token.ShrAssign) {
		t.Fatalf("Next()=%v, %v, want >>=", tok, err)
	}
	tz.Unread(token.Token{Span: src.Span(tok.Start+1, tok.End), Kind: token.Symbol, Symbol: token.GreaterEqual})
	if tok, err := tz.Next(); err != nil || !tok.Is(token.GreaterEqual) || tok.Text() != ">=" {
		t.Errorf("Next()=%v, %v, want >=", tok, err)
	}
	if tok, err := tz.Next(); err != nil || tok.Name != "x" {
		t.Errorf("Next()=%v, %v, want identifier x", tok, err)
	}
}

func TestRescan(t *testing.T) {
	tz := New(loc.NewSource("", ">== x"))
	tok, err := tz.Next()
	if err != nil || !tok.Is(token.GreaterEqual) {
		t.Fatalf("Next()=%v, %v, want >=", tok, err)
	}
	if tok, err := tz.Peek(1); err != nil || tok.Name != "x" {
		t.Fatalf("Peek(1)=%v, %v, want identifier x", tok, err)
	}
	tz.Rescan(tok.Start + 1)
	if tok, err := tz.Next(); err != nil || !tok.Is(token.Equal) || tok.Text() != "==" {
		t.Errorf("Next()=%v, %v, want ==", tok, err)
	}
	if tok, err := tz.Next(); err != nil || tok.Name != "x" {
		t.Errorf("Next()=%v, %v, want identifier x", tok, err)
	}
}

func TestErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		kind ErrorKind
		text string
	}{
		{name: "unterminated string", src: `"abc`, kind: UnexpectedEOF, text: `"abc`},
		{name: "newline in string", src: "\"ab\ncd\"", kind: UnclosedString, text: `"ab`},
		{name: "tab in string", src: "\"a\tb\"", kind: InvalidString, text: "\"a\t"},
		{name: "bad string escape", src: `"a\qb"`, kind: InvalidEscape, text: `"a\q`},
		{name: "unterminated char", src: `'a`, kind: UnexpectedEOF, text: `'a`},
		{name: "char too long", src: `'ab'`, kind: UnclosedChar, text: `'a`},
		{name: "bad char escape", src: `'\x'`, kind: InvalidEscape, text: `'\x`},
		{name: "empty char", src: `''`, kind: UnclosedChar, text: `''`},
		{name: "dollar in char", src: "'$'", kind: UnclosedChar, text: "'$"},
		{name: "at sign in char", src: "'@'", kind: UnclosedChar, text: "'@"},
		{name: "dollar in string", src: `"a$b"`, kind: InvalidString, text: `"a$`},
		{name: "at sign in string", src: `"a@b"`, kind: InvalidString, text: `"a@`},
		{name: "backquote in string", src: "\"a`b\"", kind: InvalidString, text: "\"a`"},
		{name: "unterminated block comment", src: "x /* abc", kind: UnexpectedEOF, text: "/* abc"},
		{name: "invalid character", src: "a $ b", kind: InvalidChar, text: "$"},
		{name: "non-ASCII in string", src: `"é"`, kind: InvalidString, text: `"é`},
		{name: "number too large", src: "[u8, 99999999999999999999]", kind: NumberOverflow, text: "99999999999999999999"},
		{name: "number too large with decimal", src: "18446744073709551616.5", kind: NumberOverflow, text: "18446744073709551616"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := scanAll(test.src)
			var scanErr *Error
			if !errors.As(err, &scanErr) {
				t.Fatalf("scanAll(%q) error=%v, want *Error", test.src, err)
			}
			if scanErr.Kind != test.kind {
				t.Errorf("scanAll(%q) error kind=%v, want %v", test.src, scanErr.Kind, test.kind)
			}
			if got := scanErr.Text(); got != test.text {
				t.Errorf("scanAll(%q) error text=%q, want %q", test.src, got, test.text)
			}
		})
	}
}

func TestErrorString(t *testing.T) {
	_, err := scanAll("x\n  \"abc")
	want := "test.gek:2.3-2.7: unexpected end of file"
	if err == nil || err.Error() != want {
		t.Errorf("error=%v, want %s", err, want)
	}
}
