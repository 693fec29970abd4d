package ast

import (
	"github.com/eaburns/gek/loc"
	"github.com/eaburns/gek/token"
)

// parseExpr parses an expression, which must be present.
func (p *parser) parseExpr() (Expr, error) {
	tok, err := p.peek(0)
	if err != nil {
		return nil, err
	}
	x, err := p.tryExpr()
	if err != nil {
		return nil, err
	}
	if x == nil {
		return nil, p.unexpected(tok, "expression")
	}
	return x, nil
}

// tryExpr parses an expression if one is present.
func (p *parser) tryExpr() (Expr, error) {
	defer p.rule("expression")()
	return p.tryBinary(0)
}

// tryBinary parses a binary expression by precedence climbing.
// Operators binding less tightly than min are left unconsumed.
func (p *parser) tryBinary(min int) (Expr, error) {
	x, err := p.tryUnary()
	if x == nil || err != nil {
		return nil, err
	}
	for {
		tok, err := p.peek(0)
		if err != nil {
			return nil, err
		}
		op, ok := binaryOp(tok)
		if !ok {
			return x, nil
		}
		left, right := op.Binding()
		if left < min {
			return x, nil
		}
		p.next()
		after, err := p.peek(0)
		if err != nil {
			return nil, err
		}
		y, err := p.tryBinary(right)
		if err != nil {
			return nil, err
		}
		if y == nil {
			return nil, p.unexpected(after, "expression")
		}
		x = &BinaryExpr{Span: x.GetSpan().Merge(y.GetSpan()), Op: op, X: x, Y: y}
	}
}

// tryUnary parses prefix operators, an operand, then suffix operators.
// Prefix operators apply before suffix operators: -x? is (-x)?.
func (p *parser) tryUnary() (Expr, error) {
	var prefix []token.Token
	for {
		tok, err := p.peek(0)
		if err != nil {
			return nil, err
		}
		if _, ok := prefixOp(tok); !ok {
			break
		}
		p.next()
		prefix = append(prefix, tok)
	}
	tok, err := p.peek(0)
	if err != nil {
		return nil, err
	}
	x, err := p.tryAccess()
	if err != nil {
		return nil, err
	}
	if x == nil {
		if len(prefix) > 0 {
			return nil, p.unexpected(tok, "expression")
		}
		return nil, nil
	}
	for i := len(prefix) - 1; i >= 0; i-- {
		op, _ := prefixOp(prefix[i])
		x = &UnaryExpr{Span: prefix[i].Merge(x.GetSpan()), Op: op, X: x}
	}
	for {
		tok, err := p.peek(0)
		if err != nil {
			return nil, err
		}
		op, ok := suffixOp(tok)
		if !ok {
			return x, nil
		}
		p.next()
		x = &UnaryExpr{Span: x.GetSpan().Merge(tok.Span), Op: op, X: x}
	}
}

// tryAccess parses an operand with an optional cast
// followed by any number of field accesses, calls, and index operations.
func (p *parser) tryAccess() (Expr, error) {
	x, err := p.tryAtom()
	if x == nil || err != nil {
		return nil, err
	}
	if _, ok, err := p.accept(token.Colon); err != nil {
		return nil, err
	} else if ok {
		t, err := p.parseType()
		if err != nil {
			return nil, err
		}
		x = &CastExpr{Span: x.GetSpan().Merge(t.GetSpan()), X: x, Type: t}
	}
	for {
		tok, err := p.peek(0)
		if err != nil {
			return nil, err
		}
		if kind, ok := accessKind(tok); ok {
			p.next()
			name, err := p.expectIdent()
			if err != nil {
				return nil, err
			}
			g, err := p.tryGenericsInstance()
			if err != nil {
				return nil, err
			}
			f := &FieldExpr{
				Span:     x.GetSpan().Merge(name.Span),
				X:        x,
				Access:   kind,
				Name:     name.Name,
				Generics: g,
			}
			if g != nil {
				f.Span = f.Span.Merge(g.Span)
			}
			x = f
			continue
		}
		switch {
		case tok.Is(token.ParenOpen):
			p.next()
			call := &CallExpr{Fun: x}
			close, err := p.list(token.ParenClose, func() error {
				arg, err := p.parseExpr()
				if err != nil {
					return err
				}
				call.Args = append(call.Args, arg)
				return nil
			})
			if err != nil {
				return nil, err
			}
			call.Span = x.GetSpan().Merge(close.Span)
			x = call
		case tok.Is(token.BracketOpen):
			p.next()
			index, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			close, err := p.expect(token.BracketClose)
			if err != nil {
				return nil, err
			}
			x = &IndexExpr{Span: x.GetSpan().Merge(close.Span), X: x, Index: index}
		default:
			return x, nil
		}
	}
}

func (p *parser) tryAtom() (Expr, error) {
	tok, err := p.peek(0)
	if err != nil {
		return nil, err
	}
	switch tok.Kind {
	case token.Identifier:
		return p.parseIdentExpr()
	case token.NumberLit:
		p.next()
		return &NumberLit{Span: tok.Span, Value: tok.Num}, nil
	case token.String:
		p.next()
		return &StringLit{Span: tok.Span, Value: tok.Str}, nil
	case token.Char:
		p.next()
		return &CharLit{Span: tok.Span, Value: tok.Char}, nil
	case token.Keyword:
		switch tok.Keyword {
		case token.True, token.False:
			p.next()
			return &BoolLit{Span: tok.Span, Value: tok.Keyword == token.True}, nil
		case token.This:
			p.next()
			return &This{Span: tok.Span}, nil
		case token.Default:
			p.next()
			return &Default{Span: tok.Span}, nil
		case token.Nullptr:
			p.next()
			return &Nullptr{Span: tok.Span}, nil
		case token.Discard:
			p.next()
			return &Discard{Span: tok.Span}, nil
		case token.Unit:
			p.next()
			return &Unit{Span: tok.Span}, nil
		case token.Func:
			return p.parseLambda()
		case token.Sizeof:
			return p.parseSizeof()
		}
	case token.Symbol:
		if tok.Is(token.ParenOpen) {
			return p.parseParenExpr()
		}
	}
	return nil, nil
}

// parseIdentExpr parses a variable reference or an initializer.
func (p *parser) parseIdentExpr() (Expr, error) {
	path, err := p.parseIdentPath()
	if err != nil {
		return nil, err
	}
	g, err := p.tryGenericsInstance()
	if err != nil {
		return nil, err
	}
	span := path.Span
	if g != nil {
		span = span.Merge(g.Span)
	}
	tok, err := p.peek(0)
	if err != nil {
		return nil, err
	}
	if !tok.Is(token.BraceOpen) {
		return &VarExpr{Span: span, Path: path, Generics: g}, nil
	}
	list, err := p.parseInitList()
	if err != nil {
		return nil, err
	}
	return &InitExpr{Span: span.Merge(list.Span), Path: path, Generics: g, List: list}, nil
}

func (p *parser) parseInitList() (*InitList, error) {
	defer p.rule("initializer")()
	open, err := p.expect(token.BraceOpen)
	if err != nil {
		return nil, err
	}
	tok, err := p.peek(0)
	if err != nil {
		return nil, err
	}
	list := &InitList{}
	switch {
	case tok.Is(token.BraceClose):
		p.next()
		list.Kind = EmptyList
		list.Span = open.Merge(tok.Span)
		return list, nil

	case tok.Is(token.Dot) || tok.Is(token.Rest):
		list.Kind = NamedList
		close, err := p.parseNamedInits(list)
		if err != nil {
			return nil, err
		}
		list.Span = open.Merge(close.Span)
		return list, nil
	}
	list.Kind = PositionalList
	close, err := p.list(token.BraceClose, func() error {
		x, err := p.parseExpr()
		if err != nil {
			return err
		}
		list.Elems = append(list.Elems, x)
		return nil
	})
	if err != nil {
		return nil, err
	}
	list.Span = open.Merge(close.Span)
	return list, nil
}

// parseNamedInits parses .name = value entries,
// optionally followed by ...rest, up to the closing brace.
func (p *parser) parseNamedInits(list *InitList) (token.Token, error) {
	for {
		tok, err := p.next()
		if err != nil {
			return tok, err
		}
		switch {
		case tok.Is(token.BraceClose):
			return tok, nil

		case tok.Is(token.Rest):
			if list.Rest, err = p.parseExpr(); err != nil {
				return tok, err
			}
			if _, _, err := p.accept(token.Comma); err != nil {
				return tok, err
			}
			return p.expect(token.BraceClose)

		case tok.Is(token.Dot):
			name, err := p.expectIdent()
			if err != nil {
				return tok, err
			}
			if _, err := p.expect(token.Assign); err != nil {
				return tok, err
			}
			x, err := p.parseExpr()
			if err != nil {
				return tok, err
			}
			list.Fields = append(list.Fields, &FieldInit{
				Span:  tok.Merge(x.GetSpan()),
				Name:  name.Name,
				Value: x,
			})
			sep, err := p.peek(0)
			if err != nil {
				return tok, err
			}
			switch {
			case sep.Is(token.Comma):
				p.next()
			case !sep.Is(token.BraceClose):
				return sep, p.unexpected(sep, quote(token.Comma)+" or "+quote(token.BraceClose))
			}

		default:
			return tok, p.unexpected(tok, "`.name`, `...`, or "+quote(token.BraceClose))
		}
	}
}

// parseLambda parses func (params) [captures] => expr
// or func (params) [captures] { block }.
// The parameter and capture lists are optional.
func (p *parser) parseLambda() (Expr, error) {
	defer p.rule("lambda")()
	fun, err := p.expectKeyword(token.Func)
	if err != nil {
		return nil, err
	}
	l := &LambdaExpr{}
	if _, ok, err := p.accept(token.ParenOpen); err != nil {
		return nil, err
	} else if ok {
		_, err := p.list(token.ParenClose, func() error {
			mut, isMut, err := p.acceptKeyword(token.Mut)
			if err != nil {
				return err
			}
			name, err := p.expectIdent()
			if err != nil {
				return err
			}
			param := &LambdaParam{Span: name.Span, Mut: isMut, Name: name.Name}
			if isMut {
				param.Span = mut.Merge(name.Span)
			}
			l.Params = append(l.Params, param)
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	if _, ok, err := p.accept(token.BracketOpen); err != nil {
		return nil, err
	} else if ok {
		_, err := p.list(token.BracketClose, func() error {
			ref, isRef, err := p.acceptKeyword(token.Ref)
			if err != nil {
				return err
			}
			name, err := p.expectIdent()
			if err != nil {
				return err
			}
			c := &Capture{Span: name.Span, Ref: isRef, Name: name.Name}
			if isRef {
				c.Span = ref.Merge(name.Span)
			}
			l.Captures = append(l.Captures, c)
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	if l.Body, err = p.parseLambdaBody(); err != nil {
		return nil, err
	}
	l.Span = fun.Merge(l.Body.Span)
	return l, nil
}

func (p *parser) parseLambdaBody() (*FuncBody, error) {
	tok, err := p.peek(0)
	if err != nil {
		return nil, err
	}
	switch {
	case tok.Is(token.WideArrow):
		p.next()
		x, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		return &FuncBody{Span: tok.Merge(x.GetSpan()), Expr: x}, nil
	case tok.Is(token.BraceOpen):
		b, err := p.parseBlock()
		if err != nil {
			return nil, err
		}
		return &FuncBody{Span: b.Span, Block: b}, nil
	}
	return nil, p.unexpected(tok, quote(token.WideArrow)+" or "+quote(token.BraceOpen))
}

// parseSizeof parses sizeof<T> or sizeof(x).
func (p *parser) parseSizeof() (Expr, error) {
	defer p.rule("sizeof")()
	kw, err := p.expectKeyword(token.Sizeof)
	if err != nil {
		return nil, err
	}
	tok, err := p.peek(0)
	if err != nil {
		return nil, err
	}
	switch {
	case isOpenAngle(tok):
		p.openAngle()
		t, err := p.parseType()
		if err != nil {
			return nil, err
		}
		close, err := p.closeAngle()
		if err != nil {
			return nil, err
		}
		return &SizeofExpr{Span: kw.Merge(close.Span), Type: t}, nil
	case tok.Is(token.ParenOpen):
		p.next()
		x, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		close, err := p.expect(token.ParenClose)
		if err != nil {
			return nil, err
		}
		return &SizeofExpr{Span: kw.Merge(close.Span), X: x}, nil
	}
	return nil, p.unexpected(tok, quote(token.Less)+" or "+quote(token.ParenOpen))
}

// parseParenExpr parses a parenthesized expression.
// The result is the inner expression with its span widened to the parentheses.
func (p *parser) parseParenExpr() (Expr, error) {
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
	setSpan(x, open.Merge(close.Span))
	return x, nil
}

func setSpan(x Expr, s loc.Span) {
	switch x := x.(type) {
	case *BinaryExpr:
		x.Span = s
	case *UnaryExpr:
		x.Span = s
	case *CastExpr:
		x.Span = s
	case *FieldExpr:
		x.Span = s
	case *CallExpr:
		x.Span = s
	case *IndexExpr:
		x.Span = s
	case *VarExpr:
		x.Span = s
	case *InitExpr:
		x.Span = s
	case *LambdaExpr:
		x.Span = s
	case *SizeofExpr:
		x.Span = s
	case *NumberLit:
		x.Span = s
	case *StringLit:
		x.Span = s
	case *CharLit:
		x.Span = s
	case *BoolLit:
		x.Span = s
	case *This:
		x.Span = s
	case *Default:
		x.Span = s
	case *Nullptr:
		x.Span = s
	case *Discard:
		x.Span = s
	case *Unit:
		x.Span = s
	default:
		panic("impossible")
	}
}
