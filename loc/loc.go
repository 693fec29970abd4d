// Copyright © 2020 The Gek Authors under an MIT-style license.

// Package loc has routines for tracking source locations.
package loc

import (
	"fmt"
	"sync"
)

// A Source is the text of a single source file.
// Spans refer to a Source by pointer, so the text is shared, never copied.
type Source struct {
	Path string
	Text string

	once  sync.Once
	lines []int // offsets of newlines
}

// NewSource returns a new Source.
func NewSource(path, text string) *Source {
	return &Source{Path: path, Text: text}
}

// Span returns the Span of the bytes [start, end) of the source.
func (src *Source) Span(start, end int) Span {
	return Span{Src: src, Start: start, End: end}
}

// A Span is a half-open byte range [Start, End) of a Source.
//
// A Span with Start >= End, or one that is out of the bounds
// of its Source, is degenerate. Degenerate spans are legal values;
// they just cover no text.
type Span struct {
	Src        *Source
	Start, End int
}

// GetSpan returns itself.
// This is useful so that Span can be embedded in a struct
// and that struct can implement interface{GetSpan() Span}.
func (s Span) GetSpan() Span { return s }

// Merge returns the smallest span covering both s and o.
func (s Span) Merge(o Span) Span {
	m := s
	if m.Src == nil {
		m.Src = o.Src
	}
	if o.Start < m.Start {
		m.Start = o.Start
	}
	if o.End > m.End {
		m.End = o.End
	}
	return m
}

// Degenerate returns whether the span covers no text.
func (s Span) Degenerate() bool {
	return s.Src == nil || s.Start < 0 || s.Start >= s.End || s.End > len(s.Src.Text)
}

// Text returns the text covered by the span.
// It returns the empty string if the span is degenerate.
func (s Span) Text() string {
	if s.Degenerate() {
		return ""
	}
	return s.Src.Text[s.Start:s.End]
}

// Loc returns the Loc of the span.
// It returns the zero Loc if Src is nil.
func (s Span) Loc() Loc {
	if s.Src == nil {
		return Loc{}
	}
	var l Loc
	l.Path = s.Src.Path
	l.Line[0], l.Col[0] = s.Src.lineCol(s.Start)
	l.Line[1], l.Col[1] = s.Src.lineCol(s.End)
	return l
}

// A Loc describes a file location.
type Loc struct {
	Path string
	Line [2]int
	Col  [2]int
}

func (l Loc) String() string {
	switch {
	case l.Line[0] == l.Line[1] && l.Col[0] == l.Col[1]:
		return fmt.Sprintf("%s:%d.%d", l.Path, l.Line[0], l.Col[0])
	default:
		return fmt.Sprintf("%s:%d.%d-%d.%d", l.Path, l.Line[0], l.Col[0], l.Line[1], l.Col[1])
	}
}

func (src *Source) lineCol(p int) (int, int) {
	src.once.Do(func() {
		for i, r := range src.Text {
			if r == '\n' {
				src.lines = append(src.lines, i)
			}
		}
	})
	if p < 0 {
		p = 0
	}
	if p > len(src.Text) {
		p = len(src.Text)
	}
	line, col1 := 1, -1
	for _, nl := range src.lines {
		if nl >= p {
			break
		}
		col1 = nl
		line++
	}
	return line, p - col1
}
