// Copyright © 2020 The Gek Authors under an MIT-style license.

// Package scan implements a tokenizer for gek source.
package scan

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/eaburns/gek/loc"
	"github.com/eaburns/gek/token"
	"github.com/eaburns/peggy/peg"
)

// A Tokenizer splits a Source into Tokens.
//
// Tokens can be looked at ahead of time with Peek.
// Peeked tokens are held in a FIFO queue
// and are returned by subsequent calls to Next.
type Tokenizer struct {
	src  *loc.Source
	pos  int
	peek []token.Token
}

// New returns a new Tokenizer reading from the beginning of src.
func New(src *loc.Source) *Tokenizer {
	return &Tokenizer{src: src}
}

// Source returns the Source being tokenized.
func (t *Tokenizer) Source() *loc.Source { return t.src }

// Peek returns the nth token ahead, without consuming it.
// Peek(0) is the token that will next be returned by Next.
func (t *Tokenizer) Peek(n int) (token.Token, error) {
	for len(t.peek) <= n {
		tok, err := t.scan()
		if err != nil {
			return token.Token{}, err
		}
		t.peek = append(t.peek, tok)
	}
	return t.peek[n], nil
}

// Next consumes and returns the next token.
// After the end of input, Next returns an EOF token forever.
func (t *Tokenizer) Next() (token.Token, error) {
	if len(t.peek) > 0 {
		tok := t.peek[0]
		t.peek = t.peek[1:]
		return tok, nil
	}
	return t.scan()
}

// ClearPeekQueue discards all peeked tokens.
// The discarded tokens are scanned again by later calls to Peek or Next.
func (t *Tokenizer) ClearPeekQueue() {
	if len(t.peek) == 0 {
		return
	}
	t.pos = t.peek[0].Start
	t.peek = t.peek[:0]
}

// Rescan discards all peeked tokens
// and resumes scanning at the byte offset pos.
func (t *Tokenizer) Rescan(pos int) {
	t.peek = t.peek[:0]
	t.pos = pos
}

// Unread pushes tok to the front of the peek queue,
// making it the next token returned by Next.
func (t *Tokenizer) Unread(tok token.Token) {
	t.peek = append([]token.Token{tok}, t.peek...)
}

func (t *Tokenizer) scan() (token.Token, error) {
	if err := t.skip(); err != nil {
		return token.Token{}, err
	}
	text := t.src.Text
	start := t.pos
	if start >= len(text) {
		return token.Token{Span: t.src.Span(len(text), len(text)), Kind: token.EOF}, nil
	}

	if name := t.ident(); name != "" {
		tok := token.Token{Span: t.src.Span(start, t.pos)}
		if kw, ok := token.LookupKeyword(name); ok {
			tok.Kind = token.Keyword
			tok.Keyword = kw
		} else {
			tok.Kind = token.Identifier
			tok.Name = name
		}
		return tok, nil
	}

	for _, sym := range token.Symbols {
		if strings.HasPrefix(text[start:], sym.Text) {
			t.pos += len(sym.Text)
			return token.Token{
				Span:   t.src.Span(start, t.pos),
				Kind:   token.Symbol,
				Symbol: sym.Sym,
			}, nil
		}
	}

	if isDigit(text[start]) {
		n, err := t.number()
		if err != nil {
			return token.Token{}, err
		}
		return token.Token{Span: t.src.Span(start, t.pos), Kind: token.NumberLit, Num: n}, nil
	}

	switch text[start] {
	case '\'':
		c, err := t.charLit()
		if err != nil {
			return token.Token{}, err
		}
		return token.Token{Span: t.src.Span(start, t.pos), Kind: token.Char, Char: c}, nil
	case '"':
		s, err := t.stringLit()
		if err != nil {
			return token.Token{}, err
		}
		return token.Token{Span: t.src.Span(start, t.pos), Kind: token.String, Str: s}, nil
	}

	_, w := peg.DecodeRuneInString(text[start:])
	return token.Token{}, t.errorf(InvalidChar, start, start+w)
}

// skip skips whitespace and comments.
func (t *Tokenizer) skip() error {
	text := t.src.Text
	for t.pos < len(text) {
		r, w := peg.DecodeRuneInString(text[t.pos:])
		switch {
		case unicode.IsSpace(r):
			t.pos += w
		case strings.HasPrefix(text[t.pos:], "//"):
			if i := strings.IndexByte(text[t.pos:], '\n'); i >= 0 {
				t.pos += i
			} else {
				t.pos = len(text)
			}
		case strings.HasPrefix(text[t.pos:], "/*"):
			i := strings.Index(text[t.pos+2:], "*/")
			if i < 0 {
				start := t.pos
				t.pos = len(text)
				return t.errorf(UnexpectedEOF, start, len(text))
			}
			t.pos += 2 + i + 2
		default:
			return nil
		}
	}
	return nil
}

func (t *Tokenizer) ident() string {
	text := t.src.Text
	start := t.pos
	for t.pos < len(text) {
		r, w := peg.DecodeRuneInString(text[t.pos:])
		if r != '_' && !unicode.IsLetter(r) && (t.pos == start || !unicode.IsDigit(r)) {
			break
		}
		t.pos += w
	}
	return text[start:t.pos]
}

func (t *Tokenizer) number() (token.Number, error) {
	text := t.src.Text
	start := t.pos
	t.pos = digits(text, t.pos)
	whole, err := strconv.ParseUint(text[start:t.pos], 10, 64)
	if err != nil {
		return token.Number{}, t.errorf(NumberOverflow, start, t.pos)
	}
	n := token.Number{Whole: whole}
	if t.pos+1 < len(text) && text[t.pos] == '.' && isDigit(text[t.pos+1]) {
		fracStart := t.pos + 1
		t.pos = digits(text, fracStart)
		n.Decimal, _ = strconv.ParseFloat("0."+text[fracStart:t.pos], 64)
	}
	return n, nil
}

func digits(text string, i int) int {
	for i < len(text) && isDigit(text[i]) {
		i++
	}
	return i
}

func isDigit(c byte) bool { return '0' <= c && c <= '9' }

func (t *Tokenizer) charLit() (rune, error) {
	text := t.src.Text
	start := t.pos
	t.pos++ // '
	if t.pos >= len(text) {
		return 0, t.errorf(UnexpectedEOF, start, t.pos)
	}
	var c rune
	switch b := text[t.pos]; {
	case b == '\\':
		e, err := t.escape(start)
		if err != nil {
			return 0, err
		}
		c = e
	case allowed(b, '\''):
		c = rune(b)
		t.pos++
	default:
		_, w := peg.DecodeRuneInString(text[t.pos:])
		return 0, t.errorf(UnclosedChar, start, t.pos+w)
	}
	if t.pos >= len(text) {
		return 0, t.errorf(UnexpectedEOF, start, t.pos)
	}
	if text[t.pos] != '\'' {
		return 0, t.errorf(UnclosedChar, start, t.pos)
	}
	t.pos++
	return c, nil
}

func (t *Tokenizer) stringLit() (string, error) {
	text := t.src.Text
	start := t.pos
	t.pos++ // "
	var s strings.Builder
	for t.pos < len(text) {
		switch b := text[t.pos]; {
		case b == '"':
			t.pos++
			return s.String(), nil
		case b == '\\':
			e, err := t.escape(start)
			if err != nil {
				return "", err
			}
			s.WriteRune(e)
		case b == '\n':
			return "", t.errorf(UnclosedString, start, t.pos)
		case allowed(b, '"'):
			s.WriteByte(b)
			t.pos++
		default:
			_, w := peg.DecodeRuneInString(text[t.pos:])
			return "", t.errorf(InvalidString, start, t.pos+w)
		}
	}
	return "", t.errorf(UnexpectedEOF, start, t.pos)
}

// escape scans a \ escape sequence of a literal beginning at start.
func (t *Tokenizer) escape(start int) (rune, error) {
	text := t.src.Text
	t.pos++ // \
	if t.pos >= len(text) {
		return 0, t.errorf(UnexpectedEOF, start, t.pos)
	}
	var c rune
	switch text[t.pos] {
	case 'n':
		c = '\n'
	case 'r':
		c = '\r'
	case '\\':
		c = '\\'
	case 't':
		c = '\t'
	case '"':
		c = '"'
	case '\'':
		c = '\''
	default:
		_, w := peg.DecodeRuneInString(text[t.pos:])
		return 0, t.errorf(InvalidEscape, start, t.pos+w)
	}
	t.pos++
	return c, nil
}

// allowed returns whether b may appear unescaped in a literal quoted by q.
// That is printable ASCII other than \, the quote, $, @, and `.
func allowed(b, q byte) bool {
	switch b {
	case '\\', q, '$', '@', '`':
		return false
	}
	return 0x20 <= b && b <= 0x7E
}

func (t *Tokenizer) errorf(kind ErrorKind, start, end int) *Error {
	return &Error{Kind: kind, Span: t.src.Span(start, end)}
}
