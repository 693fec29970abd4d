// Copyright © 2020 The Gek Authors under an MIT-style license.

// Package ast is the parse tree of gek source and its parser.
package ast

import (
	"strings"

	"github.com/eaburns/gek/loc"
)

// A Mod is a module: the unit of compilation.
type Mod struct {
	Path  string
	Trees []*Tree
}

// A Tree is the parse tree of a single source file.
type Tree struct {
	loc.Span
	Path       string
	Directives []Directive
	Decls      []*Decl
}

// A Node is a node of the parse tree with location information.
type Node interface {
	GetSpan() loc.Span
}

// A Directive is a file-level directive,
// appearing before the first declaration.
type Directive interface {
	Node
	isDirective()
}

// An Import is an import directive.
type Import struct {
	loc.Span
	Path string
}

// A Namespace sets the namespace of the declarations in the file.
type Namespace struct {
	loc.Span
	Name *IdentPath
}

// A Using brings the names in a namespace into scope.
type Using struct {
	loc.Span
	Name *IdentPath
}

func (*Import) isDirective()    {}
func (*Namespace) isDirective() {}
func (*Using) isDirective()     {}

// An IdentPath is a ::-separated path of identifiers.
// Names is never empty.
type IdentPath struct {
	loc.Span
	Names []string
}

func (n *IdentPath) String() string { return strings.Join(n.Names, "::") }

// A GenericsInstance is a list of type arguments: ::<T, U>.
type GenericsInstance struct {
	loc.Span
	Types []Type
}

// A GenericsDecl declares type parameters: where T: A, !B; U;
type GenericsDecl struct {
	loc.Span
	Params []*GenericParam
}

// A GenericParam is a single type parameter and its bounds.
type GenericParam struct {
	loc.Span
	Name    string
	Clauses []*Clause
}

// A Clause is a bound on a type parameter.
type Clause struct {
	loc.Span
	// Exclude is true for a negative bound: !T.
	Exclude bool
	// Default is true for the default bound.
	// If Default is true, Type is nil.
	Default bool
	Type    Type
}

// Attrs is an attribute list: #[a, b(1, 2)].
type Attrs struct {
	loc.Span
	List []*Attr
}

// An Attr is a single attribute.
type Attr struct {
	loc.Span
	Name string
	Args []Expr
}

// A Decl is a declaration with its modifiers.
type Decl struct {
	loc.Span
	Attrs    *Attrs        // may be nil
	Generics *GenericsDecl // may be nil
	Pub      bool
	Def      Def
}

// A Def is the definition part of a declaration.
type Def interface {
	Node
	isDef()
}

func (*VarDecl) isDef()    {}
func (*FuncDecl) isDef()   {}
func (*StructDecl) isDef() {}
func (*EnumDecl) isDef()   {}
func (*UnionDecl) isDef()  {}
func (*TraitDecl) isDef()  {}
func (*ImplDecl) isDef()   {}

// A VarKind is the keyword introducing a variable.
type VarKind int

// The variable kinds.
const (
	Let VarKind = iota
	Mut
	Const
	Static
)

var varKindNames = [...]string{Let: "let", Mut: "mut", Const: "const", Static: "static"}

func (k VarKind) String() string { return varKindNames[k] }

// A VarDecl is a variable declaration.
type VarDecl struct {
	loc.Span
	Kind VarKind
	// Name is the variable name.
	// It is empty if Discard is true.
	Name    string
	Discard bool
	Type    Type // may be nil
	Init    Expr // may be nil
}

// A FuncDecl is a function declaration.
type FuncDecl struct {
	loc.Span
	Const  bool
	Name   string
	This   *ThisParam // may be nil
	Params []*Param
	Ret    Type     // may be nil
	Body   *FuncBody // nil for a signature-only declaration
}

// A ThisParam is the receiver parameter of a method.
type ThisParam struct {
	loc.Span
	Mut bool
	Ref RefKind
}

// A Param is a function parameter.
type Param struct {
	loc.Span
	Mut  bool
	Name string
	Type Type
}

// A FuncBody is the body of a function or lambda.
// Exactly one of Expr and Block is non-nil.
type FuncBody struct {
	loc.Span
	Expr  Expr
	Block *Block
}

// A StructDecl is a struct declaration.
// Exactly one of Wrapper and Body is non-nil.
type StructDecl struct {
	loc.Span
	Name    string
	Wrapper Type
	Body    *StructBody
}

// A StructBody is a brace-delimited field list.
type StructBody struct {
	loc.Span
	Fields []*Field
}

// A Field is a field of a struct, union, or value enum.
type Field struct {
	loc.Span
	Pub  bool
	Name string
	Type Type
}

// An EnumDecl is an enum declaration.
//
// An int-backed enum has a non-nil Repr and Variants.
// A value enum has a non-nil Body.
type EnumDecl struct {
	loc.Span
	Name     string
	Repr     *PrimType
	Variants *EnumBody
	Body     *StructBody
}

// An EnumBody is the variant list of an int-backed enum.
type EnumBody struct {
	loc.Span
	Variants []*Variant
}

// A Variant is an int-backed enum variant.
type Variant struct {
	loc.Span
	Name  string
	Value Expr // may be nil
}

// A UnionDecl is a union declaration.
type UnionDecl struct {
	loc.Span
	Name string
	Body *StructBody
}

// A TraitDecl is a trait declaration.
type TraitDecl struct {
	loc.Span
	Name string
	Body *TraitBody
}

// An ImplDecl implements a trait for a type.
type ImplDecl struct {
	loc.Span
	Trait Type
	For   Type
	Body  *TraitBody
}

// A TraitBody is the body of a trait or impl.
// The Def of each Decl is either a *VarDecl or a *FuncDecl.
type TraitBody struct {
	loc.Span
	Decls []*Decl
}
