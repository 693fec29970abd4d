package loc

import "testing"

func TestSpanText(t *testing.T) {
	src := NewSource("test.gek", "hello, world")
	tests := []struct {
		name       string
		start, end int
		want       string
	}{
		{name: "prefix", start: 0, end: 5, want: "hello"},
		{name: "whole", start: 0, end: 12, want: "hello, world"},
		{name: "empty", start: 3, end: 3, want: ""},
		{name: "inverted", start: 5, end: 2, want: ""},
		{name: "past end", start: 7, end: 40, want: ""},
		{name: "negative", start: -1, end: 2, want: ""},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := src.Span(test.start, test.end).Text(); got != test.want {
				t.Errorf("Text()=%q, want %q", got, test.want)
			}
		})
	}
	if got := (Span{Start: 0, End: 3}).Text(); got != "" {
		t.Errorf("nil source Text()=%q, want empty", got)
	}
}

func TestSpanMerge(t *testing.T) {
	src := NewSource("", "abcdefghij")
	a := src.Span(1, 3)
	b := src.Span(5, 8)
	c := src.Span(2, 9)

	if got, want := a.Merge(b), src.Span(1, 8); got != want {
		t.Errorf("a.Merge(b)=%v, want %v", got, want)
	}
	if a.Merge(b) != b.Merge(a) {
		t.Errorf("Merge is not commutative")
	}
	if a.Merge(b).Merge(c) != a.Merge(b.Merge(c)) {
		t.Errorf("Merge is not associative")
	}
	if got := (Span{Start: 4, End: 6}).Merge(a); got.Src != src {
		t.Errorf("Merge dropped the source")
	}
}

func TestLoc(t *testing.T) {
	src := NewSource("x.gek", "ab\ncd\n\nefg")
	tests := []struct {
		start, end int
		want       string
	}{
		{0, 0, "x.gek:1.1"},
		{0, 2, "x.gek:1.1-1.3"},
		{3, 5, "x.gek:2.1-2.3"},
		{1, 8, "x.gek:1.2-4.2"},
		{10, 10, "x.gek:4.4"},
	}
	for _, test := range tests {
		if got := src.Span(test.start, test.end).Loc().String(); got != test.want {
			t.Errorf("Span(%d, %d).Loc()=%s, want %s", test.start, test.end, got, test.want)
		}
	}
}
