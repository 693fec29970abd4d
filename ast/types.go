package ast

import (
	"strconv"

	"github.com/eaburns/gek/loc"
	"github.com/eaburns/gek/token"
)

// A Type is a type expression.
type Type interface {
	Node
	isType()
	String() string
}

func (*PrimType) isType()   {}
func (*UserType) isType()   {}
func (*RefType) isType()    {}
func (*OptionType) isType() {}
func (*RangeType) isType()  {}
func (*SliceType) isType()  {}
func (*ArrayType) isType()  {}
func (*FuncType) isType()   {}
func (*StructType) isType() {}
func (*EnumType) isType()   {}

// A Prim is a primitive type.
type Prim int

// The primitive types.
const (
	Bool Prim = iota
	Char
	U8
	I8
	U16
	I16
	U32
	I32
	U64
	I64
	Usize
	Isize
	F32
	F64
	UnitType
	Never
	ThisType
	Str
)

var prims = map[token.Kw]Prim{
	token.Bool:     Bool,
	token.CharType: Char,
	token.U8:       U8,
	token.I8:       I8,
	token.U16:      U16,
	token.I16:      I16,
	token.U32:      U32,
	token.I32:      I32,
	token.U64:      U64,
	token.I64:      I64,
	token.Usize:    Usize,
	token.Isize:    Isize,
	token.F32:      F32,
	token.F64:      F64,
	token.Unit:     UnitType,
	token.Never:    Never,
	token.ThisType: ThisType,
	token.Str:      Str,
}

var primKeywords = func() map[Prim]token.Kw {
	m := make(map[Prim]token.Kw, len(prims))
	for k, p := range prims {
		m[p] = k
	}
	return m
}()

func (p Prim) String() string {
	if k, ok := primKeywords[p]; ok {
		return k.String()
	}
	return "Prim(" + strconv.Itoa(int(p)) + ")"
}

// IsInt returns whether the primitive is a fixed-size integer type,
// suitable as the representation of an int-backed enum.
func (p Prim) IsInt() bool {
	switch p {
	case U8, I8, U16, I16, U32, I32, U64, I64:
		return true
	}
	return false
}

// A PrimType is a primitive type.
type PrimType struct {
	loc.Span
	Kind Prim
}

// A UserType is a named type.
type UserType struct {
	loc.Span
	Path     *IdentPath
	Generics *GenericsInstance // may be nil
}

// A RefKind is a kind of reference.
type RefKind int

// The reference kinds.
const (
	// NoRef is no reference at all.
	// It only appears on a ThisParam.
	NoRef RefKind = iota
	// Ref is an immutable reference: ref T.
	Ref
	// RefMut is a mutable reference: ref mut T.
	RefMut
	// Pointer is a raw pointer: *T.
	Pointer
)

var refKindNames = [...]string{NoRef: "", Ref: "ref", RefMut: "ref mut", Pointer: "*"}

func (k RefKind) String() string { return refKindNames[k] }

// A RefType is a reference or pointer type.
type RefType struct {
	loc.Span
	Kind RefKind
	Elem Type
}

// An OptionType is an optional type: ?T.
type OptionType struct {
	loc.Span
	Elem Type
}

// A RangeType is a range type: ..T.
type RangeType struct {
	loc.Span
	Elem Type
}

// A SliceType is a slice type: [T].
type SliceType struct {
	loc.Span
	Elem Type
}

// An ArrayType is a fixed-length array type: [T, N].
type ArrayType struct {
	loc.Span
	Elem Type
	Len  uint64
}

// A FuncType is a function type: func(T, U): R.
type FuncType struct {
	loc.Span
	Params []Type
	Ret    Type // may be nil
}

// A StructType is an anonymous struct type.
type StructType struct {
	loc.Span
	Body *StructBody
}

// An EnumType is an anonymous enum type.
// Like EnumDecl, either Repr and Variants or Body is non-nil.
type EnumType struct {
	loc.Span
	Repr     *PrimType
	Variants *EnumBody
	Body     *StructBody
}
