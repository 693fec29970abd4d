package ast

import "github.com/eaburns/gek/token"

// tryDecl parses a declaration if one is present.
// If inBody is true, only variable and function definitions are allowed.
func (p *parser) tryDecl(inBody bool) (*Decl, error) {
	defer p.rule("declaration")()
	start, err := p.peek(0)
	if err != nil {
		return nil, err
	}
	d := &Decl{}
	if d.Attrs, err = p.tryAttrs(); err != nil {
		return nil, err
	}
	if d.Generics, err = p.tryGenericsDecl(); err != nil {
		return nil, err
	}
	if _, d.Pub, err = p.acceptKeyword(token.Pub); err != nil {
		return nil, err
	}
	tok, err := p.peek(0)
	if err != nil {
		return nil, err
	}
	if d.Def, err = p.tryDef(inBody); err != nil {
		return nil, err
	}
	if d.Def == nil {
		if d.Attrs != nil || d.Generics != nil || d.Pub {
			return nil, p.unexpected(tok, "definition")
		}
		return nil, nil
	}
	d.Span = start.Merge(d.Def.GetSpan())
	return d, nil
}

func (p *parser) tryDef(inBody bool) (Def, error) {
	switch v, err := p.tryVarDecl(); {
	case err != nil:
		return nil, err
	case v != nil:
		return v, nil
	}
	tok, err := p.peek(0)
	if err != nil || tok.Kind != token.Keyword {
		return nil, err
	}
	switch tok.Keyword {
	case token.Func, token.Const:
		return p.parseFuncDecl()
	}
	if inBody {
		return nil, nil
	}
	switch tok.Keyword {
	case token.Struct:
		return p.parseStructDecl()
	case token.Enum:
		return p.parseEnumDecl()
	case token.Union:
		return p.parseUnionDecl()
	case token.Trait:
		return p.parseTraitDecl()
	case token.Impl:
		return p.parseImplDecl()
	}
	return nil, nil
}

// tryAttrs parses #[name, name(args), ...] if present.
func (p *parser) tryAttrs() (*Attrs, error) {
	pound, ok, err := p.accept(token.Pound)
	if !ok || err != nil {
		return nil, err
	}
	defer p.rule("attributes")()
	if _, err := p.expect(token.BracketOpen); err != nil {
		return nil, err
	}
	attrs := &Attrs{}
	close, err := p.list(token.BracketClose, func() error {
		name, err := p.expectIdent()
		if err != nil {
			return err
		}
		attr := &Attr{Span: name.Span, Name: name.Name}
		if _, ok, err := p.accept(token.ParenOpen); err != nil {
			return err
		} else if ok {
			close, err := p.list(token.ParenClose, func() error {
				arg, err := p.parseExpr()
				if err != nil {
					return err
				}
				attr.Args = append(attr.Args, arg)
				return nil
			})
			if err != nil {
				return err
			}
			attr.Span = attr.Span.Merge(close.Span)
		}
		attrs.List = append(attrs.List, attr)
		return nil
	})
	if err != nil {
		return nil, err
	}
	attrs.Span = pound.Merge(close.Span)
	return attrs, nil
}

// tryGenericsDecl parses where T: A, !B; U; if present.
func (p *parser) tryGenericsDecl() (*GenericsDecl, error) {
	where, ok, err := p.acceptKeyword(token.Where)
	if !ok || err != nil {
		return nil, err
	}
	defer p.rule("where")()
	g := &GenericsDecl{Span: where.Span}
	for {
		tok, err := p.peek(0)
		if err != nil {
			return nil, err
		}
		if tok.Kind != token.Identifier {
			if len(g.Params) == 0 {
				return nil, p.unexpected(tok, "type parameter")
			}
			return g, nil
		}
		param, err := p.parseGenericParam()
		if err != nil {
			return nil, err
		}
		g.Params = append(g.Params, param)
		g.Span = g.Span.Merge(param.Span)
	}
}

func (p *parser) parseGenericParam() (*GenericParam, error) {
	name, err := p.expectIdent()
	if err != nil {
		return nil, err
	}
	param := &GenericParam{Name: name.Name}
	if _, ok, err := p.accept(token.Colon); err != nil {
		return nil, err
	} else if ok {
		for {
			c, err := p.parseClause()
			if err != nil {
				return nil, err
			}
			param.Clauses = append(param.Clauses, c)
			if _, ok, err := p.accept(token.Comma); err != nil {
				return nil, err
			} else if !ok {
				break
			}
		}
	}
	semi, err := p.expect(token.Semicolon)
	if err != nil {
		return nil, err
	}
	param.Span = name.Merge(semi.Span)
	return param, nil
}

// parseClause parses a bound: !? (default | Type).
func (p *parser) parseClause() (*Clause, error) {
	start, err := p.peek(0)
	if err != nil {
		return nil, err
	}
	c := &Clause{}
	if _, c.Exclude, err = p.accept(token.BoolNot); err != nil {
		return nil, err
	}
	if def, ok, err := p.acceptKeyword(token.Default); err != nil {
		return nil, err
	} else if ok {
		c.Default = true
		c.Span = start.Merge(def.Span)
		return c, nil
	}
	if c.Type, err = p.parseType(); err != nil {
		return nil, err
	}
	c.Span = start.Merge(c.Type.GetSpan())
	return c, nil
}

// parseFuncDecl parses const? func name(this?, params): Ret body.
// The body is => expr;, a block, or ; for a signature.
func (p *parser) parseFuncDecl() (*FuncDecl, error) {
	defer p.rule("function")()
	start, err := p.peek(0)
	if err != nil {
		return nil, err
	}
	f := &FuncDecl{}
	if _, f.Const, err = p.acceptKeyword(token.Const); err != nil {
		return nil, err
	}
	if _, err := p.expectKeyword(token.Func); err != nil {
		return nil, err
	}
	name, err := p.expectIdent()
	if err != nil {
		return nil, err
	}
	f.Name = name.Name
	if _, err := p.expect(token.ParenOpen); err != nil {
		return nil, err
	}
	if f.This, err = p.tryThisParam(); err != nil {
		return nil, err
	}
	if f.This != nil {
		tok, err := p.peek(0)
		if err != nil {
			return nil, err
		}
		switch {
		case tok.Is(token.Comma):
			p.next()
		case !tok.Is(token.ParenClose):
			return nil, p.unexpected(tok, quote(token.Comma)+" or "+quote(token.ParenClose))
		}
	}
	close, err := p.list(token.ParenClose, func() error {
		param, err := p.parseParam()
		if err != nil {
			return err
		}
		f.Params = append(f.Params, param)
		return nil
	})
	if err != nil {
		return nil, err
	}
	f.Span = start.Merge(close.Span)
	if _, ok, err := p.accept(token.Colon); err != nil {
		return nil, err
	} else if ok {
		if f.Ret, err = p.parseType(); err != nil {
			return nil, err
		}
		f.Span = f.Span.Merge(f.Ret.GetSpan())
	}

	tok, err := p.next()
	if err != nil {
		return nil, err
	}
	switch {
	case tok.Is(token.Semicolon):
		f.Span = f.Span.Merge(tok.Span)
	case tok.Is(token.WideArrow):
		x, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		semi, err := p.expect(token.Semicolon)
		if err != nil {
			return nil, err
		}
		f.Body = &FuncBody{Span: tok.Merge(x.GetSpan()), Expr: x}
		f.Span = f.Span.Merge(semi.Span)
	case tok.Is(token.BraceOpen):
		p.tz.Unread(tok)
		b, err := p.parseBlock()
		if err != nil {
			return nil, err
		}
		f.Body = &FuncBody{Span: b.Span, Block: b}
		f.Span = f.Span.Merge(b.Span)
	default:
		return nil, p.unexpected(tok, "`=>`, `{`, or `;`")
	}
	return f, nil
}

// tryThisParam parses mut? (ref | ref mut | *)? this if present.
// It looks ahead for the this keyword,
// so that mut x: T remains an ordinary parameter.
func (p *parser) tryThisParam() (*ThisParam, error) {
	var toks []token.Token
	for i := 0; ; i++ {
		tok, err := p.peek(i)
		if err != nil {
			return nil, err
		}
		toks = append(toks, tok)
		if !tok.IsKeyword(token.Mut) && !tok.IsKeyword(token.Ref) && !tok.Is(token.Mul) {
			break
		}
	}
	this := toks[len(toks)-1]
	if !this.IsKeyword(token.This) {
		return nil, nil
	}
	param := &ThisParam{Span: toks[0].Merge(this.Span)}
	mods := toks[:len(toks)-1]
	if len(mods) > 0 && mods[0].IsKeyword(token.Mut) {
		param.Mut = true
		mods = mods[1:]
	}
	switch {
	case len(mods) == 0:
		param.Ref = NoRef
	case len(mods) == 1 && mods[0].Is(token.Mul):
		param.Ref = Pointer
	case len(mods) == 1 && mods[0].IsKeyword(token.Ref):
		param.Ref = Ref
	case len(mods) == 2 && mods[0].IsKeyword(token.Ref) && mods[1].IsKeyword(token.Mut):
		param.Ref = RefMut
	default:
		return nil, p.unexpected(mods[0], "this parameter")
	}
	for range toks {
		p.next()
	}
	return param, nil
}

// parseParam parses mut? name: Type.
func (p *parser) parseParam() (*Param, error) {
	start, err := p.peek(0)
	if err != nil {
		return nil, err
	}
	param := &Param{}
	if _, param.Mut, err = p.acceptKeyword(token.Mut); err != nil {
		return nil, err
	}
	name, err := p.expectIdent()
	if err != nil {
		return nil, err
	}
	param.Name = name.Name
	if _, err := p.expect(token.Colon); err != nil {
		return nil, err
	}
	if param.Type, err = p.parseType(); err != nil {
		return nil, err
	}
	param.Span = start.Merge(param.Type.GetSpan())
	return param, nil
}

// parseStructDecl parses struct Name: Type; or struct Name { fields }.
func (p *parser) parseStructDecl() (*StructDecl, error) {
	defer p.rule("struct")()
	kw, name, err := p.parseDefName(token.Struct)
	if err != nil {
		return nil, err
	}
	s := &StructDecl{Name: name.Name}
	if _, ok, err := p.accept(token.Colon); err != nil {
		return nil, err
	} else if ok {
		if s.Wrapper, err = p.parseType(); err != nil {
			return nil, err
		}
		semi, err := p.expect(token.Semicolon)
		if err != nil {
			return nil, err
		}
		s.Span = kw.Merge(semi.Span)
		return s, nil
	}
	if s.Body, err = p.parseStructBody(); err != nil {
		return nil, err
	}
	s.Span = kw.Merge(s.Body.Span)
	return s, nil
}

// parseEnumDecl parses enum Name: IntType { variants } or enum Name { fields }.
func (p *parser) parseEnumDecl() (*EnumDecl, error) {
	defer p.rule("enum")()
	kw, name, err := p.parseDefName(token.Enum)
	if err != nil {
		return nil, err
	}
	e := &EnumDecl{Name: name.Name}
	if e.Repr, e.Variants, e.Body, err = p.parseEnumForms(); err != nil {
		return nil, err
	}
	if e.Variants != nil {
		e.Span = kw.Merge(e.Variants.Span)
	} else {
		e.Span = kw.Merge(e.Body.Span)
	}
	return e, nil
}

func (p *parser) parseUnionDecl() (*UnionDecl, error) {
	defer p.rule("union")()
	kw, name, err := p.parseDefName(token.Union)
	if err != nil {
		return nil, err
	}
	body, err := p.parseStructBody()
	if err != nil {
		return nil, err
	}
	return &UnionDecl{Span: kw.Merge(body.Span), Name: name.Name, Body: body}, nil
}

func (p *parser) parseTraitDecl() (*TraitDecl, error) {
	defer p.rule("trait")()
	kw, name, err := p.parseDefName(token.Trait)
	if err != nil {
		return nil, err
	}
	body, err := p.parseTraitBody()
	if err != nil {
		return nil, err
	}
	return &TraitDecl{Span: kw.Merge(body.Span), Name: name.Name, Body: body}, nil
}

// parseImplDecl parses impl Trait for Type { decls }.
func (p *parser) parseImplDecl() (*ImplDecl, error) {
	defer p.rule("impl")()
	kw, err := p.expectKeyword(token.Impl)
	if err != nil {
		return nil, err
	}
	d := &ImplDecl{}
	if d.Trait, err = p.parseType(); err != nil {
		return nil, err
	}
	if _, err := p.expectKeyword(token.For); err != nil {
		return nil, err
	}
	if d.For, err = p.parseType(); err != nil {
		return nil, err
	}
	if d.Body, err = p.parseTraitBody(); err != nil {
		return nil, err
	}
	d.Span = kw.Merge(d.Body.Span)
	return d, nil
}

func (p *parser) parseTraitBody() (*TraitBody, error) {
	open, err := p.expect(token.BraceOpen)
	if err != nil {
		return nil, err
	}
	body := &TraitBody{}
	for {
		tok, err := p.peek(0)
		if err != nil {
			return nil, err
		}
		if tok.Is(token.BraceClose) {
			p.next()
			body.Span = open.Merge(tok.Span)
			return body, nil
		}
		d, err := p.tryDecl(true)
		if err != nil {
			return nil, err
		}
		if d == nil {
			return nil, p.unexpected(tok, "variable or function declaration")
		}
		body.Decls = append(body.Decls, d)
	}
}

// parseDefName consumes a definition keyword and the defined name.
func (p *parser) parseDefName(kw token.Kw) (token.Token, token.Token, error) {
	k, err := p.expectKeyword(kw)
	if err != nil {
		return k, token.Token{}, err
	}
	name, err := p.expectIdent()
	return k, name, err
}
