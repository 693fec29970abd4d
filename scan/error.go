package scan

import (
	"strconv"

	"github.com/eaburns/gek/loc"
)

// An ErrorKind is the kind of a lexical error.
type ErrorKind int

// The lexical error kinds.
const (
	// InvalidString is a disallowed character in a string literal.
	InvalidString ErrorKind = iota
	// InvalidChar is a character that begins no token.
	InvalidChar
	// UnclosedChar is a char literal missing its closing quote
	// or holding a disallowed character.
	UnclosedChar
	// InvalidEscape is an unknown \ escape sequence.
	InvalidEscape
	// UnclosedString is a string literal containing a newline.
	UnclosedString
	// UnexpectedEOF is the end of input inside a literal or block comment.
	UnexpectedEOF
	// NumberOverflow is a whole number too large for 64 bits.
	NumberOverflow
)

var errorText = [...]string{
	InvalidString:  "invalid character in string",
	InvalidChar:    "invalid character",
	UnclosedChar:   "unclosed character literal",
	InvalidEscape:  "invalid escape sequence",
	UnclosedString: "unclosed string literal",
	UnexpectedEOF:  "unexpected end of file",
	NumberOverflow: "number too large",
}

func (k ErrorKind) String() string {
	if k < 0 || int(k) >= len(errorText) {
		return "ErrorKind(" + strconv.Itoa(int(k)) + ")"
	}
	return errorText[k]
}

// An Error is a lexical error.
type Error struct {
	Kind ErrorKind
	// Span is the offending text.
	// For literals, it begins at the opening quote.
	loc.Span
}

func (err *Error) Error() string {
	return err.Loc().String() + ": " + err.Kind.String()
}
