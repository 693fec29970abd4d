package ast

import (
	"github.com/eaburns/gek/loc"
	"github.com/eaburns/gek/token"
)

// A Stmt is a statement.
type Stmt interface {
	Node
	isStmt()
}

func (*ReturnStmt) isStmt()       {}
func (*LetMatchElseStmt) isStmt() {}
func (*MatchStmt) isStmt()        {}
func (*DeclStmt) isStmt()         {}
func (*ExprStmt) isStmt()         {}
func (*AssignStmt) isStmt()       {}
func (*IfStmt) isStmt()           {}

// A Block is a brace-delimited statement list.
type Block struct {
	loc.Span
	Stmts []Stmt
}

// A ReturnStmt is a possibly-conditional return.
type ReturnStmt struct {
	loc.Span
	Value Expr // may be nil
	Cond  Expr // may be nil
}

// A LetMatchClause matches a value against a pattern:
// let match (pattern => value).
type LetMatchClause struct {
	loc.Span
	Pattern Pattern
	Value   Expr
}

// A LetMatchElseStmt runs Else if the clause does not match.
type LetMatchElseStmt struct {
	loc.Span
	Clause *LetMatchClause
	Else   *Block
}

// A MatchStmt is a match statement.
type MatchStmt struct {
	loc.Span
	Value   Expr
	Clauses []*MatchClause
}

// A MatchClause is a single arm of a match.
type MatchClause struct {
	loc.Span
	Pattern Pattern
	Body    *MatchBody
}

// A MatchBody is the body of a match arm.
// Exactly one of Block and Stmt is non-nil.
type MatchBody struct {
	loc.Span
	Block *Block
	Stmt  Stmt
}

// A DeclStmt is a local variable declaration.
type DeclStmt struct {
	loc.Span
	Var *VarDecl
}

// An ExprStmt is an expression evaluated for its effect.
type ExprStmt struct {
	loc.Span
	X Expr
}

// An AssignOp is an assignment operator.
type AssignOp int

// The assignment operators.
const (
	Assign AssignOp = iota
	AddAssign
	SubAssign
	MulAssign
	DivAssign
	RemAssign
	BitAndAssign
	BitOrAssign
	BitXorAssign
	BitNotAssign
	ShlAssign
	ShrAssign
)

var assignSyms = [...]token.Sym{
	Assign:       token.Assign,
	AddAssign:    token.AddAssign,
	SubAssign:    token.SubAssign,
	MulAssign:    token.MulAssign,
	DivAssign:    token.DivAssign,
	RemAssign:    token.RemAssign,
	BitAndAssign: token.BitAndAssign,
	BitOrAssign:  token.BitOrAssign,
	BitXorAssign: token.BitXorAssign,
	BitNotAssign: token.BitNotAssign,
	ShlAssign:    token.ShlAssign,
	ShrAssign:    token.ShrAssign,
}

func (op AssignOp) String() string { return assignSyms[op].String() }

func assignOp(tok token.Token) (AssignOp, bool) {
	if tok.Kind != token.Symbol {
		return 0, false
	}
	for op, s := range assignSyms {
		if s == tok.Symbol {
			return AssignOp(op), true
		}
	}
	return 0, false
}

// An AssignStmt is an assignment.
type AssignStmt struct {
	loc.Span
	Op     AssignOp
	Target Expr
	Value  Expr
}

// An IfStmt is an if, else if, else chain.
type IfStmt struct {
	loc.Span
	Branches []*IfBranch
}

// An IfBranch is a single branch of an IfStmt.
// Cond is nil for a trailing else.
type IfBranch struct {
	loc.Span
	Cond  *IfClause
	Block *Block
}

// An IfClause is the condition of an IfBranch.
// Exactly one of Expr and LetMatch is non-nil.
type IfClause struct {
	loc.Span
	Expr     Expr
	LetMatch *LetMatchClause
}
