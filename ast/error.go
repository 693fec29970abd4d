// Copyright © 2020 The Gek Authors under an MIT-style license.

package ast

import (
	"github.com/eaburns/gek/loc"
	"github.com/eaburns/gek/token"
	"github.com/eaburns/peggy/peg"
)

// A SyntaxError is an unexpected token.
type SyntaxError struct {
	// Token is the unexpected token.
	Token token.Token
	// Want describes what was expected instead.
	Want string
	// Rules are the names of the productions being parsed
	// when the error was found, outermost first.
	Rules []string
}

func (err *SyntaxError) Error() string {
	s := err.Token.Loc().String() + ": unexpected " + err.Token.Describe()
	if err.Want != "" {
		s += ", want " + err.Want
	}
	return s
}

// GetSpan returns the span of the unexpected token.
func (err *SyntaxError) GetSpan() loc.Span { return err.Token.Span }

// Tree returns the rule stack as a failure tree,
// with the innermost rule's expectation at the leaf.
func (err *SyntaxError) Tree() *peg.Fail {
	pos := err.Token.Start
	fail := &peg.Fail{Pos: pos, Want: err.Want}
	if err.Want == "" {
		fail.Want = "not " + err.Token.Describe()
	}
	for i := len(err.Rules) - 1; i >= 0; i-- {
		fail = &peg.Fail{
			Name: err.Rules[i],
			Pos:  pos,
			Kids: []*peg.Fail{fail},
		}
	}
	return fail
}

// parseError is a file-level parse error.
// It wraps a *SyntaxError or a *scan.Error.
type parseError struct {
	err error
}

func (err parseError) Unwrap() error { return err.err }

// Tree returns the failure tree of a SyntaxError, or nil.
func (err parseError) Tree() *peg.Fail {
	if se, ok := err.err.(*SyntaxError); ok {
		return se.Tree()
	}
	return nil
}

// Error returns the message of the wrapped error.
// For a SyntaxError, the innermost rule of the failure tree is appended.
func (err parseError) Error() string {
	se, ok := err.err.(*SyntaxError)
	if !ok {
		return err.err.Error()
	}
	var rule string
	for fail := se.Tree(); fail != nil && fail.Name != ""; {
		rule = fail.Name
		if len(fail.Kids) == 0 {
			break
		}
		fail = fail.Kids[0]
	}
	if rule == "" {
		return se.Error()
	}
	return se.Error() + " (in " + rule + ")"
}
