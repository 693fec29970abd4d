package ast

import "github.com/eaburns/gek/token"

// parsePattern parses a pattern or a |-separated list of alternatives.
func (p *parser) parsePattern() (Pattern, error) {
	defer p.rule("pattern")()
	first, err := p.parsePatternValue()
	if err != nil {
		return nil, err
	}
	tok, err := p.peek(0)
	if err != nil || !tok.Is(token.BitOr) {
		return first, err
	}
	or := &OrPattern{Span: first.GetSpan(), Alts: []Pattern{first}}
	for tok.Is(token.BitOr) {
		p.next()
		alt, err := p.parsePatternValue()
		if err != nil {
			return nil, err
		}
		or.Alts = append(or.Alts, alt)
		or.Span = or.Span.Merge(alt.GetSpan())
		if tok, err = p.peek(0); err != nil {
			return nil, err
		}
	}
	return or, nil
}

func (p *parser) parsePatternValue() (Pattern, error) {
	tok, err := p.peek(0)
	if err != nil {
		return nil, err
	}
	switch tok.Kind {
	case token.NumberLit:
		p.next()
		return &NumberLit{Span: tok.Span, Value: tok.Num}, nil
	case token.String:
		p.next()
		return &StringLit{Span: tok.Span, Value: tok.Str}, nil
	case token.Char:
		p.next()
		return &CharLit{Span: tok.Span, Value: tok.Char}, nil
	case token.Identifier:
		after, err := p.peek(1)
		if err != nil {
			return nil, err
		}
		if after.Is(token.DoubleColon) || after.Is(token.BraceOpen) {
			return p.parseInitPattern()
		}
		p.next()
		return &BindPattern{Span: tok.Span, Name: tok.Name}, nil
	case token.Keyword:
		switch tok.Keyword {
		case token.Discard:
			p.next()
			return &Discard{Span: tok.Span}, nil
		case token.Nullptr:
			p.next()
			return &Nullptr{Span: tok.Span}, nil
		case token.Invalid:
			p.next()
			return &Invalid{Span: tok.Span}, nil
		case token.Default:
			p.next()
			return &Default{Span: tok.Span}, nil
		case token.True, token.False:
			p.next()
			return &BoolLit{Span: tok.Span, Value: tok.Keyword == token.True}, nil
		case token.Mut:
			p.next()
			name, err := p.expectIdent()
			if err != nil {
				return nil, err
			}
			return &BindPattern{Span: tok.Merge(name.Span), Mut: true, Name: name.Name}, nil
		}
	}
	return nil, p.unexpected(tok, "pattern")
}

func (p *parser) parseInitPattern() (Pattern, error) {
	path, err := p.parseIdentPath()
	if err != nil {
		return nil, err
	}
	g, err := p.tryGenericsInstance()
	if err != nil {
		return nil, err
	}
	list, err := p.parsePatternList()
	if err != nil {
		return nil, err
	}
	return &InitPattern{
		Span:     path.Merge(list.Span),
		Path:     path,
		Generics: g,
		List:     list,
	}, nil
}

func (p *parser) parsePatternList() (*PatternList, error) {
	open, err := p.expect(token.BraceOpen)
	if err != nil {
		return nil, err
	}
	tok, err := p.peek(0)
	if err != nil {
		return nil, err
	}
	list := &PatternList{}
	var elem func() error
	switch {
	case tok.Is(token.BraceClose):
		list.Kind = EmptyList
	case tok.Is(token.Dot):
		list.Kind = NamedList
		elem = func() error {
			dot, err := p.expect(token.Dot)
			if err != nil {
				return err
			}
			name, err := p.expectIdent()
			if err != nil {
				return err
			}
			if _, err := p.expect(token.Assign); err != nil {
				return err
			}
			pat, err := p.parsePattern()
			if err != nil {
				return err
			}
			list.Fields = append(list.Fields, &FieldPattern{
				Span:    dot.Merge(pat.GetSpan()),
				Name:    name.Name,
				Pattern: pat,
			})
			return nil
		}
	default:
		list.Kind = PositionalList
		elem = func() error {
			pat, err := p.parsePattern()
			if err != nil {
				return err
			}
			list.Elems = append(list.Elems, pat)
			return nil
		}
	}
	close, err := p.list(token.BraceClose, elem)
	if err != nil {
		return nil, err
	}
	list.Span = open.Merge(close.Span)
	return list, nil
}
