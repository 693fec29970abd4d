package ast

import "github.com/eaburns/gek/token"

func (p *parser) parseBlock() (*Block, error) {
	defer p.rule("block")()
	open, err := p.expect(token.BraceOpen)
	if err != nil {
		return nil, err
	}
	b := &Block{}
	for {
		tok, err := p.peek(0)
		if err != nil {
			return nil, err
		}
		if tok.Is(token.BraceClose) {
			p.next()
			b.Span = open.Merge(tok.Span)
			return b, nil
		}
		s, err := p.tryStmt()
		if err != nil {
			return nil, err
		}
		if s == nil {
			return nil, p.unexpected(tok, "statement")
		}
		b.Stmts = append(b.Stmts, s)
	}
}

// tryStmt parses a statement if one is present.
func (p *parser) tryStmt() (Stmt, error) {
	defer p.rule("statement")()
	tok, err := p.peek(0)
	if err != nil {
		return nil, err
	}
	switch {
	case tok.IsKeyword(token.Return):
		return p.parseReturn()
	case tok.IsKeyword(token.Let):
		after, err := p.peek(1)
		if err != nil {
			return nil, err
		}
		if after.IsKeyword(token.Match) {
			return p.parseLetMatchElse()
		}
	case tok.IsKeyword(token.Match):
		return p.parseMatch()
	case tok.IsKeyword(token.If):
		return p.parseIf()
	}

	v, err := p.tryVarDecl()
	if err != nil {
		return nil, err
	}
	if v != nil {
		return &DeclStmt{Span: v.Span, Var: v}, nil
	}

	x, err := p.tryExpr()
	if x == nil || err != nil {
		return nil, err
	}
	next, err := p.peek(0)
	if err != nil {
		return nil, err
	}
	if op, ok := assignOp(next); ok {
		p.next()
		value, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		semi, err := p.expect(token.Semicolon)
		if err != nil {
			return nil, err
		}
		return &AssignStmt{Span: x.GetSpan().Merge(semi.Span), Op: op, Target: x, Value: value}, nil
	}
	semi, err := p.expect(token.Semicolon)
	if err != nil {
		return nil, err
	}
	return &ExprStmt{Span: x.GetSpan().Merge(semi.Span), X: x}, nil
}

// parseReturn parses return value? (if (cond))? ;
func (p *parser) parseReturn() (Stmt, error) {
	defer p.rule("return")()
	ret, err := p.expectKeyword(token.Return)
	if err != nil {
		return nil, err
	}
	s := &ReturnStmt{}
	if s.Value, err = p.tryExpr(); err != nil {
		return nil, err
	}
	if _, ok, err := p.acceptKeyword(token.If); err != nil {
		return nil, err
	} else if ok {
		if _, err := p.expect(token.ParenOpen); err != nil {
			return nil, err
		}
		if s.Cond, err = p.parseExpr(); err != nil {
			return nil, err
		}
		if _, err := p.expect(token.ParenClose); err != nil {
			return nil, err
		}
	}
	semi, err := p.expect(token.Semicolon)
	if err != nil {
		return nil, err
	}
	s.Span = ret.Merge(semi.Span)
	return s, nil
}

// parseLetMatchClause parses let match (pattern => value).
func (p *parser) parseLetMatchClause() (*LetMatchClause, error) {
	let, err := p.expectKeyword(token.Let)
	if err != nil {
		return nil, err
	}
	if _, err := p.expectKeyword(token.Match); err != nil {
		return nil, err
	}
	if _, err := p.expect(token.ParenOpen); err != nil {
		return nil, err
	}
	pat, err := p.parsePattern()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.WideArrow); err != nil {
		return nil, err
	}
	value, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	close, err := p.expect(token.ParenClose)
	if err != nil {
		return nil, err
	}
	return &LetMatchClause{Span: let.Merge(close.Span), Pattern: pat, Value: value}, nil
}

func (p *parser) parseLetMatchElse() (Stmt, error) {
	defer p.rule("let match")()
	clause, err := p.parseLetMatchClause()
	if err != nil {
		return nil, err
	}
	if _, err := p.expectKeyword(token.Else); err != nil {
		return nil, err
	}
	els, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return &LetMatchElseStmt{Span: clause.Merge(els.Span), Clause: clause, Else: els}, nil
}

// parseMatch parses match (value) { pattern => body, ... }.
func (p *parser) parseMatch() (Stmt, error) {
	defer p.rule("match")()
	kw, err := p.expectKeyword(token.Match)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.ParenOpen); err != nil {
		return nil, err
	}
	s := &MatchStmt{}
	if s.Value, err = p.parseExpr(); err != nil {
		return nil, err
	}
	if _, err := p.expect(token.ParenClose); err != nil {
		return nil, err
	}
	if _, err := p.expect(token.BraceOpen); err != nil {
		return nil, err
	}
	for {
		tok, err := p.peek(0)
		if err != nil {
			return nil, err
		}
		if tok.Is(token.BraceClose) {
			p.next()
			s.Span = kw.Merge(tok.Span)
			return s, nil
		}
		c, err := p.parseMatchClause()
		if err != nil {
			return nil, err
		}
		s.Clauses = append(s.Clauses, c)
		if _, _, err := p.accept(token.Comma); err != nil {
			return nil, err
		}
	}
}

func (p *parser) parseMatchClause() (*MatchClause, error) {
	pat, err := p.parsePattern()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.WideArrow); err != nil {
		return nil, err
	}
	tok, err := p.peek(0)
	if err != nil {
		return nil, err
	}
	body := &MatchBody{}
	if tok.Is(token.BraceOpen) {
		if body.Block, err = p.parseBlock(); err != nil {
			return nil, err
		}
		body.Span = body.Block.Span
	} else {
		if body.Stmt, err = p.tryStmt(); err != nil {
			return nil, err
		}
		if body.Stmt == nil {
			return nil, p.unexpected(tok, "statement or block")
		}
		body.Span = body.Stmt.GetSpan()
	}
	return &MatchClause{Span: pat.GetSpan().Merge(body.Span), Pattern: pat, Body: body}, nil
}

// parseIf parses an if, else if, else chain.
func (p *parser) parseIf() (Stmt, error) {
	defer p.rule("if")()
	kw, err := p.expectKeyword(token.If)
	if err != nil {
		return nil, err
	}
	s := &IfStmt{}
	start := kw
	for {
		cond, err := p.parseIfClause()
		if err != nil {
			return nil, err
		}
		b, err := p.parseBlock()
		if err != nil {
			return nil, err
		}
		s.Branches = append(s.Branches, &IfBranch{Span: start.Merge(b.Span), Cond: cond, Block: b})
		s.Span = kw.Merge(b.Span)

		els, ok, err := p.acceptKeyword(token.Else)
		if err != nil {
			return nil, err
		}
		if !ok {
			return s, nil
		}
		start = els
		if _, ok, err := p.acceptKeyword(token.If); err != nil {
			return nil, err
		} else if ok {
			continue
		}
		b, err = p.parseBlock()
		if err != nil {
			return nil, err
		}
		s.Branches = append(s.Branches, &IfBranch{Span: els.Merge(b.Span), Block: b})
		s.Span = kw.Merge(b.Span)
		return s, nil
	}
}

// parseIfClause parses (cond) or let match (pattern => value).
func (p *parser) parseIfClause() (*IfClause, error) {
	tok, err := p.peek(0)
	if err != nil {
		return nil, err
	}
	if tok.IsKeyword(token.Let) {
		lm, err := p.parseLetMatchClause()
		if err != nil {
			return nil, err
		}
		return &IfClause{Span: lm.Span, LetMatch: lm}, nil
	}
	open, err := p.expect(token.ParenOpen)
	if err != nil {
		return nil, err
	}
	x, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	close, err := p.expect(token.ParenClose)
	if err != nil {
		return nil, err
	}
	return &IfClause{Span: open.Merge(close.Span), Expr: x}, nil
}

// tryVarDecl parses a variable declaration if one is present.
// A const followed by func is a function, not a variable.
func (p *parser) tryVarDecl() (*VarDecl, error) {
	tok, err := p.peek(0)
	if err != nil || tok.Kind != token.Keyword {
		return nil, err
	}
	var kind VarKind
	switch tok.Keyword {
	case token.Let:
		kind = Let
	case token.Mut:
		kind = Mut
	case token.Static:
		kind = Static
	case token.Const:
		after, err := p.peek(1)
		if err != nil || after.IsKeyword(token.Func) {
			return nil, err
		}
		kind = Const
	default:
		return nil, nil
	}
	defer p.rule("variable")()
	p.next()
	v := &VarDecl{Kind: kind}
	name, err := p.next()
	if err != nil {
		return nil, err
	}
	switch {
	case name.Kind == token.Identifier:
		v.Name = name.Name
	case name.IsKeyword(token.Discard):
		v.Discard = true
	default:
		return nil, p.unexpected(name, "identifier or `_`")
	}
	if _, ok, err := p.accept(token.Colon); err != nil {
		return nil, err
	} else if ok {
		if v.Type, err = p.parseType(); err != nil {
			return nil, err
		}
	}
	if _, ok, err := p.accept(token.Assign); err != nil {
		return nil, err
	} else if ok {
		if v.Init, err = p.parseExpr(); err != nil {
			return nil, err
		}
	}
	semi, err := p.expect(token.Semicolon)
	if err != nil {
		return nil, err
	}
	v.Span = tok.Merge(semi.Span)
	return v, nil
}
