package ast

import "github.com/eaburns/gek/loc"

// A Pattern is a match pattern.
type Pattern interface {
	Node
	isPattern()
	String() string
}

func (*Discard) isPattern()     {}
func (*Nullptr) isPattern()     {}
func (*Invalid) isPattern()     {}
func (*Default) isPattern()     {}
func (*NumberLit) isPattern()   {}
func (*StringLit) isPattern()   {}
func (*CharLit) isPattern()     {}
func (*BoolLit) isPattern()     {}
func (*BindPattern) isPattern() {}
func (*InitPattern) isPattern() {}
func (*OrPattern) isPattern()   {}

// Invalid is the invalid keyword.
type Invalid struct{ loc.Span }

// A BindPattern binds the matched value to a name.
type BindPattern struct {
	loc.Span
	Mut  bool
	Name string
}

// An InitPattern destructures a struct or enum value.
type InitPattern struct {
	loc.Span
	Path     *IdentPath
	Generics *GenericsInstance // may be nil
	List     *PatternList
}

// A PatternList is the brace-delimited list of an InitPattern.
type PatternList struct {
	loc.Span
	Kind   ListKind
	Elems  []Pattern       // PositionalList only
	Fields []*FieldPattern // NamedList only
}

// A FieldPattern is a named sub-pattern: .name = pattern.
type FieldPattern struct {
	loc.Span
	Name    string
	Pattern Pattern
}

// An OrPattern matches any of its alternatives.
// Alts has at least two elements, none of which is an *OrPattern.
type OrPattern struct {
	loc.Span
	Alts []Pattern
}
