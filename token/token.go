// Copyright © 2020 The Gek Authors under an MIT-style license.

// Package token defines the lexical tokens of gek source.
package token

import (
	"fmt"
	"strconv"

	"github.com/eaburns/gek/loc"
)

// A Kind is the kind of a token.
type Kind int

// The token kinds.
const (
	EOF Kind = iota
	Identifier
	Keyword
	String
	Char
	NumberLit
	Symbol
)

var kindNames = [...]string{
	EOF:        "end of file",
	Identifier: "identifier",
	Keyword:    "keyword",
	String:     "string",
	Char:       "char",
	NumberLit:  "number",
	Symbol:     "symbol",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "Kind(" + strconv.Itoa(int(k)) + ")"
	}
	return kindNames[k]
}

// A Number is a number literal.
// Decimal is the fractional part, in [0, 1).
type Number struct {
	Whole   uint64
	Decimal float64
}

func (n Number) String() string {
	if n.Decimal == 0 {
		return strconv.FormatUint(n.Whole, 10)
	}
	frac := strconv.FormatFloat(n.Decimal, 'f', -1, 64)
	return strconv.FormatUint(n.Whole, 10) + frac[1:] // trim the leading 0
}

// A Token is a lexical token.
// Only the payload field corresponding to Kind is meaningful.
type Token struct {
	loc.Span
	Kind Kind

	// Name is the name of an Identifier.
	Name string
	// Str is the unescaped value of a String.
	Str string
	// Char is the value of a Char.
	Char rune
	// Num is the value of a Number.
	Num Number
	// Keyword is the keyword of a Keyword.
	Keyword Kw
	// Symbol is the symbol of a Symbol.
	Symbol Sym
}

// Is returns whether the token is the given symbol.
func (t Token) Is(s Sym) bool { return t.Kind == Symbol && t.Symbol == s }

// IsKeyword returns whether the token is the given keyword.
func (t Token) IsKeyword(k Kw) bool { return t.Kind == Keyword && t.Keyword == k }

// Describe returns a short, human-readable description of the token
// suitable for diagnostics.
func (t Token) Describe() string {
	switch t.Kind {
	case EOF:
		return "end of file"
	case Identifier:
		return "identifier " + t.Name
	case Keyword:
		return "keyword " + t.Keyword.String()
	case String:
		return "string " + strconv.Quote(t.Str)
	case Char:
		return "char " + strconv.QuoteRune(t.Char)
	case NumberLit:
		return "number " + t.Num.String()
	case Symbol:
		return "`" + t.Symbol.String() + "`"
	default:
		return fmt.Sprintf("token(%d)", t.Kind)
	}
}
