package ast

import "github.com/eaburns/gek/token"

func (p *parser) parseType() (Type, error) {
	defer p.rule("type")()
	tok, err := p.peek(0)
	if err != nil {
		return nil, err
	}
	if tok.Kind == token.Keyword {
		if prim, ok := prims[tok.Keyword]; ok {
			p.next()
			return &PrimType{Span: tok.Span, Kind: prim}, nil
		}
	}
	switch {
	case tok.Kind == token.Identifier:
		path, err := p.parseIdentPath()
		if err != nil {
			return nil, err
		}
		g, err := p.tryGenericsInstance()
		if err != nil {
			return nil, err
		}
		t := &UserType{Span: path.Span, Path: path, Generics: g}
		if g != nil {
			t.Span = t.Span.Merge(g.Span)
		}
		return t, nil

	case tok.Is(token.Mul):
		p.next()
		elem, err := p.parseType()
		if err != nil {
			return nil, err
		}
		return &RefType{Span: tok.Merge(elem.GetSpan()), Kind: Pointer, Elem: elem}, nil

	case tok.IsKeyword(token.Ref):
		p.next()
		kind := Ref
		if _, ok, err := p.acceptKeyword(token.Mut); err != nil {
			return nil, err
		} else if ok {
			kind = RefMut
		}
		elem, err := p.parseType()
		if err != nil {
			return nil, err
		}
		return &RefType{Span: tok.Merge(elem.GetSpan()), Kind: kind, Elem: elem}, nil

	case tok.Is(token.Optional):
		p.next()
		elem, err := p.parseType()
		if err != nil {
			return nil, err
		}
		return &OptionType{Span: tok.Merge(elem.GetSpan()), Elem: elem}, nil

	case tok.Is(token.ValueCoalesce):
		// ?..T scans as ?. followed by .T.
		dot, err := p.peek(1)
		if err != nil {
			return nil, err
		}
		if !dot.Is(token.Dot) || dot.Start != tok.End {
			return nil, p.unexpected(tok, "type")
		}
		p.next()
		p.next()
		elem, err := p.parseType()
		if err != nil {
			return nil, err
		}
		rng := &RangeType{Span: dot.Src.Span(tok.Start+1, dot.End).Merge(elem.GetSpan()), Elem: elem}
		return &OptionType{Span: tok.Merge(elem.GetSpan()), Elem: rng}, nil

	case tok.Is(token.Range):
		p.next()
		elem, err := p.parseType()
		if err != nil {
			return nil, err
		}
		return &RangeType{Span: tok.Merge(elem.GetSpan()), Elem: elem}, nil

	case tok.Is(token.BracketOpen):
		return p.parseSliceType()

	case tok.IsKeyword(token.Func):
		return p.parseFuncType()

	case tok.IsKeyword(token.Struct):
		p.next()
		body, err := p.parseStructBody()
		if err != nil {
			return nil, err
		}
		return &StructType{Span: tok.Merge(body.Span), Body: body}, nil

	case tok.IsKeyword(token.Enum):
		p.next()
		repr, vars, body, err := p.parseEnumForms()
		if err != nil {
			return nil, err
		}
		t := &EnumType{Span: tok.Span, Repr: repr, Variants: vars, Body: body}
		if vars != nil {
			t.Span = t.Span.Merge(vars.Span)
		} else {
			t.Span = t.Span.Merge(body.Span)
		}
		return t, nil
	}
	return nil, p.unexpected(tok, "type")
}

// parseSliceType parses [T] or [T, N].
func (p *parser) parseSliceType() (Type, error) {
	open, err := p.expect(token.BracketOpen)
	if err != nil {
		return nil, err
	}
	elem, err := p.parseType()
	if err != nil {
		return nil, err
	}
	tok, err := p.next()
	if err != nil {
		return nil, err
	}
	switch {
	case tok.Is(token.BracketClose):
		return &SliceType{Span: open.Merge(tok.Span), Elem: elem}, nil
	case tok.Is(token.Comma):
		n, err := p.next()
		if err != nil {
			return nil, err
		}
		if n.Kind != token.NumberLit || n.Num.Decimal != 0 {
			return nil, p.unexpected(n, "array length")
		}
		close, err := p.expect(token.BracketClose)
		if err != nil {
			return nil, err
		}
		return &ArrayType{Span: open.Merge(close.Span), Elem: elem, Len: n.Num.Whole}, nil
	}
	return nil, p.unexpected(tok, quote(token.Comma)+" or "+quote(token.BracketClose))
}

// parseFuncType parses func(T, U): R.
func (p *parser) parseFuncType() (Type, error) {
	fun, err := p.expectKeyword(token.Func)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.ParenOpen); err != nil {
		return nil, err
	}
	t := &FuncType{}
	close, err := p.list(token.ParenClose, func() error {
		param, err := p.parseType()
		if err != nil {
			return err
		}
		t.Params = append(t.Params, param)
		return nil
	})
	if err != nil {
		return nil, err
	}
	t.Span = fun.Merge(close.Span)
	if _, ok, err := p.accept(token.Colon); err != nil {
		return nil, err
	} else if ok {
		if t.Ret, err = p.parseType(); err != nil {
			return nil, err
		}
		t.Span = t.Span.Merge(t.Ret.GetSpan())
	}
	return t, nil
}

// parseEnumForms parses the part of an enum following the keyword and name:
// either : IntType { variants } or a struct body.
func (p *parser) parseEnumForms() (*PrimType, *EnumBody, *StructBody, error) {
	_, ok, err := p.accept(token.Colon)
	if err != nil {
		return nil, nil, nil, err
	}
	if !ok {
		body, err := p.parseStructBody()
		return nil, nil, body, err
	}
	tok, err := p.peek(0)
	if err != nil {
		return nil, nil, nil, err
	}
	t, err := p.parseType()
	if err != nil {
		return nil, nil, nil, err
	}
	repr, ok := t.(*PrimType)
	if !ok || !repr.Kind.IsInt() {
		return nil, nil, nil, p.unexpected(tok, "integer type")
	}
	vars, err := p.parseEnumBody()
	if err != nil {
		return nil, nil, nil, err
	}
	return repr, vars, nil, nil
}

func (p *parser) parseEnumBody() (*EnumBody, error) {
	defer p.rule("enum body")()
	open, err := p.expect(token.BraceOpen)
	if err != nil {
		return nil, err
	}
	body := &EnumBody{}
	close, err := p.list(token.BraceClose, func() error {
		name, err := p.expectIdent()
		if err != nil {
			return err
		}
		v := &Variant{Span: name.Span, Name: name.Name}
		if _, ok, err := p.accept(token.Assign); err != nil {
			return err
		} else if ok {
			if v.Value, err = p.parseExpr(); err != nil {
				return err
			}
			v.Span = v.Span.Merge(v.Value.GetSpan())
		}
		body.Variants = append(body.Variants, v)
		return nil
	})
	if err != nil {
		return nil, err
	}
	body.Span = open.Merge(close.Span)
	return body, nil
}

func (p *parser) parseStructBody() (*StructBody, error) {
	defer p.rule("struct body")()
	open, err := p.expect(token.BraceOpen)
	if err != nil {
		return nil, err
	}
	body := &StructBody{}
	close, err := p.list(token.BraceClose, func() error {
		f, err := p.parseField()
		if err != nil {
			return err
		}
		body.Fields = append(body.Fields, f)
		return nil
	})
	if err != nil {
		return nil, err
	}
	body.Span = open.Merge(close.Span)
	return body, nil
}

func (p *parser) parseField() (*Field, error) {
	f := &Field{}
	pub, ok, err := p.acceptKeyword(token.Pub)
	if err != nil {
		return nil, err
	}
	name, err := p.expectIdent()
	if err != nil {
		return nil, err
	}
	f.Pub = ok
	f.Name = name.Name
	f.Span = name.Span
	if ok {
		f.Span = pub.Merge(name.Span)
	}
	if _, err := p.expect(token.Colon); err != nil {
		return nil, err
	}
	if f.Type, err = p.parseType(); err != nil {
		return nil, err
	}
	f.Span = f.Span.Merge(f.Type.GetSpan())
	return f, nil
}

// tryGenericsInstance parses ::<T, U> if present.
func (p *parser) tryGenericsInstance() (*GenericsInstance, error) {
	sep, err := p.peek(0)
	if err != nil {
		return nil, err
	}
	open, err := p.peek(1)
	if err != nil {
		return nil, err
	}
	if !sep.Is(token.DoubleColon) || !isOpenAngle(open) {
		return nil, nil
	}
	defer p.rule("generics")()
	p.next()
	if _, err := p.openAngle(); err != nil {
		return nil, err
	}
	g := &GenericsInstance{Span: sep.Span}
	close, err := p.angleList(func() error {
		t, err := p.parseType()
		if err != nil {
			return err
		}
		g.Types = append(g.Types, t)
		return nil
	})
	if err != nil {
		return nil, err
	}
	g.Span = g.Span.Merge(close.Span)
	return g, nil
}

// angleList is like list, but closes with >.
func (p *parser) angleList(elem func() error) (token.Token, error) {
	for {
		tok, err := p.peek(0)
		if err != nil {
			return tok, err
		}
		if isCloseAngle(tok) {
			return p.closeAngle()
		}
		if err := elem(); err != nil {
			return token.Token{}, err
		}
		switch tok, err = p.peek(0); {
		case err != nil:
			return tok, err
		case tok.Is(token.Comma):
			p.next()
		case !isCloseAngle(tok):
			return tok, p.unexpected(tok, quote(token.Comma)+" or "+quote(token.Greater))
		}
	}
}

func isOpenAngle(tok token.Token) bool {
	return tok.Is(token.Less) || tok.Is(token.RangeFrom) || tok.Is(token.RangeFromTo)
}

func isCloseAngle(tok token.Token) bool {
	return tok.Is(token.Greater) || tok.Is(token.Shr) ||
		tok.Is(token.GreaterEqual) || tok.Is(token.ShrAssign)
}

// openAngle consumes an opening <.
// The tokens <.. and <..= are split after the <.
func (p *parser) openAngle() (token.Token, error) {
	tok, err := p.next()
	if err != nil {
		return tok, err
	}
	switch {
	case tok.Is(token.Less):
		return tok, nil
	case tok.Is(token.RangeFrom), tok.Is(token.RangeFromTo):
		return p.split(tok), nil
	default:
		return tok, p.unexpected(tok, quote(token.Less))
	}
}

// closeAngle consumes a closing >.
// The tokens >>, >=, and >>= are split after the first >.
func (p *parser) closeAngle() (token.Token, error) {
	tok, err := p.next()
	if err != nil {
		return tok, err
	}
	switch {
	case tok.Is(token.Greater):
		return tok, nil
	case tok.Is(token.Shr), tok.Is(token.GreaterEqual), tok.Is(token.ShrAssign):
		return p.split(tok), nil
	default:
		return tok, p.unexpected(tok, quote(token.Greater))
	}
}

// split splits a symbol token after its first byte,
// returning the first byte as a symbol token.
// Scanning resumes after the first byte,
// so the remainder joins with any text that follows it.
func (p *parser) split(tok token.Token) token.Token {
	p.tz.Rescan(tok.Start + 1)
	tok.Span = p.tz.Source().Span(tok.Start, tok.Start+1)
	tok.Symbol, _ = token.LookupSymbol(tok.Text())
	return tok
}
