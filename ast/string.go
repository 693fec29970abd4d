package ast

import (
	"strconv"
	"strings"
)

func (n *Decl) String() string {
	var s strings.Builder
	if n.Generics != nil {
		buildGenericsDeclString(n.Generics, &s)
		s.WriteRune(' ')
	}
	if n.Pub {
		s.WriteString("pub ")
	}
	buildDefString(n.Def, &s)
	return s.String()
}

func (n *GenericsDecl) String() string {
	var s strings.Builder
	buildGenericsDeclString(n, &s)
	return s.String()
}

func (n *GenericsInstance) String() string {
	var s strings.Builder
	buildGenericsString(n, &s)
	return s.String()
}

func (n *BinaryExpr) String() string { return nodeString(n) }
func (n *UnaryExpr) String() string  { return nodeString(n) }
func (n *CastExpr) String() string   { return nodeString(n) }
func (n *FieldExpr) String() string  { return nodeString(n) }
func (n *CallExpr) String() string   { return nodeString(n) }
func (n *IndexExpr) String() string  { return nodeString(n) }
func (n *VarExpr) String() string    { return nodeString(n) }
func (n *InitExpr) String() string   { return nodeString(n) }
func (n *LambdaExpr) String() string { return nodeString(n) }
func (n *SizeofExpr) String() string { return nodeString(n) }
func (n *NumberLit) String() string  { return n.Value.String() }
func (n *StringLit) String() string  { return strconv.Quote(n.Value) }
func (n *CharLit) String() string    { return strconv.QuoteRune(n.Value) }
func (n *BoolLit) String() string    { return strconv.FormatBool(n.Value) }
func (n *This) String() string       { return "this" }
func (n *Default) String() string    { return "default" }
func (n *Nullptr) String() string    { return "nullptr" }
func (n *Discard) String() string    { return "_" }
func (n *Unit) String() string       { return "unit" }
func (n *Invalid) String() string    { return "invalid" }

func (n *PrimType) String() string   { return n.Kind.String() }
func (n *UserType) String() string   { return nodeString(n) }
func (n *RefType) String() string    { return nodeString(n) }
func (n *OptionType) String() string { return nodeString(n) }
func (n *RangeType) String() string  { return nodeString(n) }
func (n *SliceType) String() string  { return nodeString(n) }
func (n *ArrayType) String() string  { return nodeString(n) }
func (n *FuncType) String() string   { return nodeString(n) }
func (n *StructType) String() string { return nodeString(n) }
func (n *EnumType) String() string   { return nodeString(n) }

func (n *BindPattern) String() string { return nodeString(n) }
func (n *InitPattern) String() string { return nodeString(n) }
func (n *OrPattern) String() string   { return nodeString(n) }

type stringer interface{ String() string }

func nodeString(n Node) string {
	var s strings.Builder
	buildString(n, &s)
	return s.String()
}

// buildString writes an expression, type, or pattern.
// Binary expressions are fully parenthesized.
func buildString(n Node, s *strings.Builder) {
	switch n := n.(type) {
	case *BinaryExpr:
		s.WriteRune('(')
		buildString(n.X, s)
		s.WriteRune(' ')
		s.WriteString(n.Op.String())
		s.WriteRune(' ')
		buildString(n.Y, s)
		s.WriteRune(')')
	case *UnaryExpr:
		if n.Op.Suffix() {
			buildString(n.X, s)
			s.WriteString(n.Op.String())
		} else {
			s.WriteString(n.Op.String())
			buildString(n.X, s)
		}
	case *CastExpr:
		s.WriteRune('(')
		buildString(n.X, s)
		s.WriteString(": ")
		buildString(n.Type, s)
		s.WriteRune(')')
	case *FieldExpr:
		buildString(n.X, s)
		s.WriteString(n.Access.String())
		s.WriteString(n.Name)
		buildGenericsString(n.Generics, s)
	case *CallExpr:
		buildString(n.Fun, s)
		s.WriteRune('(')
		buildExprList(n.Args, s)
		s.WriteRune(')')
	case *IndexExpr:
		buildString(n.X, s)
		s.WriteRune('[')
		buildString(n.Index, s)
		s.WriteRune(']')
	case *VarExpr:
		s.WriteString(n.Path.String())
		buildGenericsString(n.Generics, s)
	case *InitExpr:
		s.WriteString(n.Path.String())
		buildGenericsString(n.Generics, s)
		buildInitListString(n.List, s)
	case *LambdaExpr:
		buildLambdaString(n, s)
	case *SizeofExpr:
		s.WriteString("sizeof")
		if n.Type != nil {
			s.WriteRune('<')
			buildString(n.Type, s)
			s.WriteRune('>')
		} else {
			s.WriteRune('(')
			buildString(n.X, s)
			s.WriteRune(')')
		}

	case *UserType:
		s.WriteString(n.Path.String())
		buildGenericsString(n.Generics, s)
	case *RefType:
		s.WriteString(n.Kind.String())
		if n.Kind != Pointer {
			s.WriteRune(' ')
		}
		buildString(n.Elem, s)
	case *OptionType:
		s.WriteRune('?')
		buildString(n.Elem, s)
	case *RangeType:
		s.WriteString("..")
		buildString(n.Elem, s)
	case *SliceType:
		s.WriteRune('[')
		buildString(n.Elem, s)
		s.WriteRune(']')
	case *ArrayType:
		s.WriteRune('[')
		buildString(n.Elem, s)
		s.WriteString(", ")
		s.WriteString(strconv.FormatUint(n.Len, 10))
		s.WriteRune(']')
	case *FuncType:
		s.WriteString("func(")
		for i, p := range n.Params {
			if i > 0 {
				s.WriteString(", ")
			}
			buildString(p, s)
		}
		s.WriteRune(')')
		if n.Ret != nil {
			s.WriteString(": ")
			buildString(n.Ret, s)
		}
	case *StructType:
		s.WriteString("struct ")
		buildStructBodyString(n.Body, s)
	case *EnumType:
		s.WriteString("enum")
		buildEnumString(n.Repr, n.Variants, n.Body, s)

	case *BindPattern:
		if n.Mut {
			s.WriteString("mut ")
		}
		s.WriteString(n.Name)
	case *InitPattern:
		s.WriteString(n.Path.String())
		buildGenericsString(n.Generics, s)
		buildPatternListString(n.List, s)
	case *OrPattern:
		for i, alt := range n.Alts {
			if i > 0 {
				s.WriteString(" | ")
			}
			buildString(alt, s)
		}

	case stringer:
		s.WriteString(n.String())
	}
}

func buildExprList(xs []Expr, s *strings.Builder) {
	for i, x := range xs {
		if i > 0 {
			s.WriteString(", ")
		}
		buildString(x, s)
	}
}

func buildGenericsString(n *GenericsInstance, s *strings.Builder) {
	if n == nil {
		return
	}
	s.WriteString("::<")
	for i, t := range n.Types {
		if i > 0 {
			s.WriteString(", ")
		}
		buildString(t, s)
	}
	s.WriteRune('>')
}

func buildInitListString(n *InitList, s *strings.Builder) {
	s.WriteRune('{')
	switch n.Kind {
	case PositionalList:
		buildExprList(n.Elems, s)
	case NamedList:
		for i, f := range n.Fields {
			if i > 0 {
				s.WriteString(", ")
			}
			s.WriteRune('.')
			s.WriteString(f.Name)
			s.WriteString(" = ")
			buildString(f.Value, s)
		}
		if n.Rest != nil {
			if len(n.Fields) > 0 {
				s.WriteString(", ")
			}
			s.WriteString("...")
			buildString(n.Rest, s)
		}
	}
	s.WriteRune('}')
}

func buildPatternListString(n *PatternList, s *strings.Builder) {
	s.WriteRune('{')
	switch n.Kind {
	case PositionalList:
		for i, p := range n.Elems {
			if i > 0 {
				s.WriteString(", ")
			}
			buildString(p, s)
		}
	case NamedList:
		for i, f := range n.Fields {
			if i > 0 {
				s.WriteString(", ")
			}
			s.WriteRune('.')
			s.WriteString(f.Name)
			s.WriteString(" = ")
			buildString(f.Pattern, s)
		}
	}
	s.WriteRune('}')
}

func buildLambdaString(n *LambdaExpr, s *strings.Builder) {
	s.WriteString("func")
	if len(n.Params) > 0 {
		s.WriteString(" (")
		for i, p := range n.Params {
			if i > 0 {
				s.WriteString(", ")
			}
			if p.Mut {
				s.WriteString("mut ")
			}
			s.WriteString(p.Name)
		}
		s.WriteRune(')')
	}
	if len(n.Captures) > 0 {
		s.WriteString(" [")
		for i, c := range n.Captures {
			if i > 0 {
				s.WriteString(", ")
			}
			if c.Ref {
				s.WriteString("ref ")
			}
			s.WriteString(c.Name)
		}
		s.WriteRune(']')
	}
	buildFuncBodyString(n.Body, s)
}

func buildFuncBodyString(n *FuncBody, s *strings.Builder) {
	switch {
	case n == nil:
		s.WriteRune(';')
	case n.Expr != nil:
		s.WriteString(" => ")
		buildString(n.Expr, s)
	case len(n.Block.Stmts) == 0:
		s.WriteString(" {}")
	default:
		s.WriteString(" {…}")
	}
}

func buildStructBodyString(n *StructBody, s *strings.Builder) {
	s.WriteRune('{')
	for i, f := range n.Fields {
		if i > 0 {
			s.WriteString(", ")
		}
		if f.Pub {
			s.WriteString("pub ")
		}
		s.WriteString(f.Name)
		s.WriteString(": ")
		buildString(f.Type, s)
	}
	s.WriteRune('}')
}

func buildEnumString(repr *PrimType, vars *EnumBody, body *StructBody, s *strings.Builder) {
	if body != nil {
		s.WriteRune(' ')
		buildStructBodyString(body, s)
		return
	}
	s.WriteString(": ")
	s.WriteString(repr.String())
	s.WriteString(" {")
	for i, v := range vars.Variants {
		if i > 0 {
			s.WriteString(", ")
		}
		s.WriteString(v.Name)
		if v.Value != nil {
			s.WriteString(" = ")
			buildString(v.Value, s)
		}
	}
	s.WriteRune('}')
}

func buildGenericsDeclString(n *GenericsDecl, s *strings.Builder) {
	s.WriteString("where")
	for _, p := range n.Params {
		s.WriteRune(' ')
		s.WriteString(p.Name)
		for i, c := range p.Clauses {
			if i == 0 {
				s.WriteString(": ")
			} else {
				s.WriteString(", ")
			}
			if c.Exclude {
				s.WriteRune('!')
			}
			if c.Default {
				s.WriteString("default")
			} else {
				buildString(c.Type, s)
			}
		}
		s.WriteRune(';')
	}
}

// buildDefString writes the header of a definition, without its body.
func buildDefString(n Def, s *strings.Builder) {
	switch n := n.(type) {
	case *VarDecl:
		s.WriteString(n.Kind.String())
		s.WriteRune(' ')
		if n.Discard {
			s.WriteRune('_')
		} else {
			s.WriteString(n.Name)
		}
		if n.Type != nil {
			s.WriteString(": ")
			buildString(n.Type, s)
		}
	case *FuncDecl:
		if n.Const {
			s.WriteString("const ")
		}
		s.WriteString("func ")
		s.WriteString(n.Name)
		s.WriteRune('(')
		if n.This != nil {
			if n.This.Mut {
				s.WriteString("mut ")
			}
			if n.This.Ref != NoRef {
				s.WriteString(n.This.Ref.String())
				if n.This.Ref != Pointer {
					s.WriteRune(' ')
				}
			}
			s.WriteString("this")
			if len(n.Params) > 0 {
				s.WriteString(", ")
			}
		}
		for i, p := range n.Params {
			if i > 0 {
				s.WriteString(", ")
			}
			if p.Mut {
				s.WriteString("mut ")
			}
			s.WriteString(p.Name)
			s.WriteString(": ")
			buildString(p.Type, s)
		}
		s.WriteRune(')')
		if n.Ret != nil {
			s.WriteString(": ")
			buildString(n.Ret, s)
		}
	case *StructDecl:
		s.WriteString("struct ")
		s.WriteString(n.Name)
		if n.Wrapper != nil {
			s.WriteString(": ")
			buildString(n.Wrapper, s)
		}
	case *EnumDecl:
		s.WriteString("enum ")
		s.WriteString(n.Name)
		if n.Repr != nil {
			s.WriteString(": ")
			s.WriteString(n.Repr.String())
		}
	case *UnionDecl:
		s.WriteString("union ")
		s.WriteString(n.Name)
	case *TraitDecl:
		s.WriteString("trait ")
		s.WriteString(n.Name)
	case *ImplDecl:
		s.WriteString("impl ")
		buildString(n.Trait, s)
		s.WriteString(" for ")
		buildString(n.For, s)
	}
}
