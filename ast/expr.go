package ast

import (
	"github.com/eaburns/gek/loc"
	"github.com/eaburns/gek/token"
)

// An Expr is an expression.
type Expr interface {
	Node
	isExpr()
	String() string
}

func (*BinaryExpr) isExpr() {}
func (*UnaryExpr) isExpr()  {}
func (*CastExpr) isExpr()   {}
func (*FieldExpr) isExpr()  {}
func (*CallExpr) isExpr()   {}
func (*IndexExpr) isExpr()  {}
func (*VarExpr) isExpr()    {}
func (*InitExpr) isExpr()   {}
func (*LambdaExpr) isExpr() {}
func (*SizeofExpr) isExpr() {}
func (*NumberLit) isExpr()  {}
func (*StringLit) isExpr()  {}
func (*CharLit) isExpr()    {}
func (*BoolLit) isExpr()    {}
func (*This) isExpr()       {}
func (*Default) isExpr()    {}
func (*Nullptr) isExpr()    {}
func (*Discard) isExpr()    {}
func (*Unit) isExpr()       {}

// A BinaryOp is a binary operator.
type BinaryOp int

// The binary operators.
const (
	Range BinaryOp = iota
	RangeTo
	RangeFrom
	RangeFromTo
	Mul
	Div
	Rem
	Add
	Sub
	Eq
	Neq
	Geq
	Leq
	Gt
	Lt
	Shl
	Shr
	BitAnd
	BitXor
	BitOr
	BoolAnd
	BoolOr
	BoolXor
)

var binaryOps = []struct {
	sym         token.Sym
	left, right int
}{
	Range:       {token.Range, 21, 22},
	RangeTo:     {token.RangeTo, 21, 22},
	RangeFrom:   {token.RangeFrom, 21, 22},
	RangeFromTo: {token.RangeFromTo, 21, 22},
	Mul:         {token.Mul, 19, 20},
	Div:         {token.Div, 19, 20},
	Rem:         {token.Rem, 19, 20},
	Add:         {token.Add, 17, 18},
	Sub:         {token.Sub, 17, 18},
	Eq:          {token.Equal, 15, 16},
	Neq:         {token.NotEqual, 15, 16},
	Geq:         {token.GreaterEqual, 15, 16},
	Leq:         {token.LessEqual, 15, 16},
	Gt:          {token.Greater, 15, 16},
	Lt:          {token.Less, 15, 16},
	Shl:         {token.Shl, 13, 14},
	Shr:         {token.Shr, 13, 14},
	BitAnd:      {token.BitAnd, 11, 12},
	BitXor:      {token.BitXor, 9, 10},
	BitOr:       {token.BitOr, 7, 8},
	BoolAnd:     {token.BoolAnd, 5, 6},
	BoolOr:      {token.BoolOr, 3, 4},
	BoolXor:     {token.BoolXor, 1, 2},
}

// Binding returns the left and right binding powers of the operator.
// Higher binds tighter.
func (op BinaryOp) Binding() (left, right int) {
	return binaryOps[op].left, binaryOps[op].right
}

func (op BinaryOp) String() string { return binaryOps[op].sym.String() }

func binaryOp(tok token.Token) (BinaryOp, bool) {
	if tok.Kind != token.Symbol {
		return 0, false
	}
	for op, o := range binaryOps {
		if o.sym == tok.Symbol {
			return BinaryOp(op), true
		}
	}
	return 0, false
}

// A BinaryExpr is a binary operation.
type BinaryExpr struct {
	loc.Span
	Op BinaryOp
	X  Expr
	Y  Expr
}

// A UnaryOp is a unary operator.
type UnaryOp int

// The unary operators.
const (
	Pos        UnaryOp = iota // +x
	Neg                       // -x
	Not                       // !x
	Complement                // ~x
	Reference                 // ref x
	AddrOf                    // &x
	Deref                     // *x
	Coalesce                  // x?
	Cascade                   // x!
)

var unaryOpNames = [...]string{
	Pos:        "+",
	Neg:        "-",
	Not:        "!",
	Complement: "~",
	Reference:  "ref ",
	AddrOf:     "&",
	Deref:      "*",
	Coalesce:   "?",
	Cascade:    "!",
}

func (op UnaryOp) String() string { return unaryOpNames[op] }

// Suffix returns whether the operator follows its operand.
func (op UnaryOp) Suffix() bool { return op == Coalesce || op == Cascade }

func prefixOp(tok token.Token) (UnaryOp, bool) {
	switch {
	case tok.Is(token.Add):
		return Pos, true
	case tok.Is(token.Sub):
		return Neg, true
	case tok.Is(token.BoolNot):
		return Not, true
	case tok.Is(token.BitNot):
		return Complement, true
	case tok.Is(token.BitAnd):
		return AddrOf, true
	case tok.Is(token.Mul):
		return Deref, true
	case tok.IsKeyword(token.Ref):
		return Reference, true
	}
	return 0, false
}

func suffixOp(tok token.Token) (UnaryOp, bool) {
	switch {
	case tok.Is(token.Optional):
		return Coalesce, true
	case tok.Is(token.BoolNot):
		return Cascade, true
	}
	return 0, false
}

// A UnaryExpr is a unary operation.
type UnaryExpr struct {
	loc.Span
	Op UnaryOp
	X  Expr
}

// A CastExpr converts an expression to a type: x: T.
type CastExpr struct {
	loc.Span
	X    Expr
	Type Type
}

// An AccessKind is the kind of a field access.
type AccessKind int

// The access kinds.
const (
	AccessValue             AccessKind = iota // .
	AccessValueCoalesce                       // ?.
	AccessValueCascade                        // !.
	AccessReference                           // ->
	AccessReferenceCoalesce                   // ?->
	AccessReferenceCascade                    // !->
)

var accessSyms = [...]token.Sym{
	AccessValue:             token.Dot,
	AccessValueCoalesce:     token.ValueCoalesce,
	AccessValueCascade:      token.ValueCascade,
	AccessReference:         token.SmallArrow,
	AccessReferenceCoalesce: token.ReferenceCoalesce,
	AccessReferenceCascade:  token.ReferenceCascade,
}

func (k AccessKind) String() string { return accessSyms[k].String() }

func accessKind(tok token.Token) (AccessKind, bool) {
	if tok.Kind != token.Symbol {
		return 0, false
	}
	for k, s := range accessSyms {
		if s == tok.Symbol {
			return AccessKind(k), true
		}
	}
	return 0, false
}

// A FieldExpr is a field or method access.
type FieldExpr struct {
	loc.Span
	X        Expr
	Access   AccessKind
	Name     string
	Generics *GenericsInstance // may be nil
}

// A CallExpr is a function call.
type CallExpr struct {
	loc.Span
	Fun  Expr
	Args []Expr
}

// An IndexExpr is an index operation.
type IndexExpr struct {
	loc.Span
	X     Expr
	Index Expr
}

// A VarExpr is a reference to a named value.
type VarExpr struct {
	loc.Span
	Path     *IdentPath
	Generics *GenericsInstance // may be nil
}

// An InitExpr is a struct or enum initializer.
type InitExpr struct {
	loc.Span
	Path     *IdentPath
	Generics *GenericsInstance // may be nil
	List     *InitList
}

// A ListKind is the form of an initializer list.
type ListKind int

// The list kinds.
const (
	// EmptyList is {}.
	EmptyList ListKind = iota
	// PositionalList is {a, b}.
	PositionalList
	// NamedList is {.x = a, .y = b}.
	NamedList
)

// An InitList is a brace-delimited initializer list.
type InitList struct {
	loc.Span
	Kind   ListKind
	Elems  []Expr       // PositionalList only
	Fields []*FieldInit // NamedList only
	// Rest is the ...rest expression of a NamedList.
	// It may be nil.
	Rest Expr
}

// A FieldInit is a named initializer: .name = value.
type FieldInit struct {
	loc.Span
	Name  string
	Value Expr
}

// A LambdaExpr is an anonymous function.
type LambdaExpr struct {
	loc.Span
	Params   []*LambdaParam
	Captures []*Capture
	Body     *FuncBody
}

// A LambdaParam is a parameter of a lambda.
type LambdaParam struct {
	loc.Span
	Mut  bool
	Name string
}

// A Capture is a variable captured by a lambda.
type Capture struct {
	loc.Span
	Ref  bool
	Name string
}

// A SizeofExpr is the size of a type or of an expression's type.
// Exactly one of Type and X is non-nil.
type SizeofExpr struct {
	loc.Span
	Type Type
	X    Expr
}

// A NumberLit is a number literal.
type NumberLit struct {
	loc.Span
	Value token.Number
}

// A StringLit is a string literal.
type StringLit struct {
	loc.Span
	Value string
}

// A CharLit is a character literal.
type CharLit struct {
	loc.Span
	Value rune
}

// A BoolLit is true or false.
type BoolLit struct {
	loc.Span
	Value bool
}

// This is the this keyword.
type This struct{ loc.Span }

// Default is the default keyword.
type Default struct{ loc.Span }

// Nullptr is the nullptr keyword.
type Nullptr struct{ loc.Span }

// Discard is _.
type Discard struct{ loc.Span }

// Unit is the unit value.
type Unit struct{ loc.Span }
