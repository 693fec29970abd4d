// Copyright © 2020 The Gek Authors under an MIT-style license.

package ast

import (
	"io"
	"io/ioutil"
	"os"

	"github.com/eaburns/gek/loc"
	"github.com/eaburns/gek/scan"
	"github.com/eaburns/gek/token"
)

// A Parser parses source code files.
type Parser struct {
	trees []*Tree
	mod   string
}

// NewParser returns a new parser for the named module.
func NewParser(modPath string) *Parser {
	return &Parser{mod: modPath}
}

// Mod returns the module built from the parsed files.
func (p *Parser) Mod() *Mod {
	return &Mod{Path: p.mod, Trees: p.trees}
}

// Parse parses a *Tree from an io.Reader.
// The first argument is the file path or "" if unspecified.
func (p *Parser) Parse(path string, r io.Reader) error {
	data, err := ioutil.ReadAll(r)
	if err != nil {
		return err
	}
	return p.ParseString(path, string(data))
}

// ParseFile parses the source in the file specified by a path.
func (p *Parser) ParseFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return p.Parse(path, f)
}

// ParseString parses source text.
func (p *Parser) ParseString(path, text string) error {
	tree, err := ParseSource(loc.NewSource(path, text))
	if err != nil {
		return err
	}
	p.trees = append(p.trees, tree)
	return nil
}

// ParseSource parses a single source file.
// Errors wrap either a *SyntaxError or a *scan.Error.
func ParseSource(src *loc.Source) (*Tree, error) {
	tree, err := ParseTree(scan.New(src))
	if err != nil {
		return nil, parseError{err: err}
	}
	return tree, nil
}

// ParseTree parses a file from a tokenizer.
// The returned error is either a *SyntaxError or a *scan.Error.
func ParseTree(tz *scan.Tokenizer) (*Tree, error) {
	p := &parser{tz: tz}
	return p.parseTree()
}

// ParseExpr parses a single expression spanning all of text.
func ParseExpr(path, text string) (Expr, error) {
	src := loc.NewSource(path, text)
	p := &parser{tz: scan.New(src)}
	x, err := p.parseExpr()
	if err == nil {
		err = p.expectEOF()
	}
	if err != nil {
		return nil, parseError{err: err}
	}
	return x, nil
}

// ReadImports returns the imports of the source given by an io.Reader.
// Only the directives at the start of the file are parsed.
func ReadImports(path string, r io.Reader) ([]string, error) {
	data, err := ioutil.ReadAll(r)
	if err != nil {
		return nil, err
	}
	src := loc.NewSource(path, string(data))
	p := &parser{tz: scan.New(src)}
	dirs, err := p.parseDirectives()
	if err != nil {
		return nil, parseError{err: err}
	}
	var paths []string
	for _, d := range dirs {
		if imp, ok := d.(*Import); ok {
			paths = append(paths, imp.Path)
		}
	}
	return paths, nil
}

type parser struct {
	tz    *scan.Tokenizer
	rules []string
}

// rule pushes a rule name onto the rule stack
// and returns a func that pops it.
func (p *parser) rule(name string) func() {
	p.rules = append(p.rules, name)
	return func() { p.rules = p.rules[:len(p.rules)-1] }
}

func (p *parser) peek(n int) (token.Token, error) { return p.tz.Peek(n) }

func (p *parser) next() (token.Token, error) { return p.tz.Next() }

func (p *parser) unexpected(tok token.Token, want string) error {
	return &SyntaxError{
		Token: tok,
		Want:  want,
		Rules: append([]string(nil), p.rules...),
	}
}

func quote(s token.Sym) string { return "`" + s.String() + "`" }

// expect consumes the next token, which must be the symbol s.
func (p *parser) expect(s token.Sym) (token.Token, error) {
	tok, err := p.next()
	if err != nil {
		return tok, err
	}
	if !tok.Is(s) {
		return tok, p.unexpected(tok, quote(s))
	}
	return tok, nil
}

// expectKeyword consumes the next token, which must be the keyword k.
func (p *parser) expectKeyword(k token.Kw) (token.Token, error) {
	tok, err := p.next()
	if err != nil {
		return tok, err
	}
	if !tok.IsKeyword(k) {
		return tok, p.unexpected(tok, k.String())
	}
	return tok, nil
}

// expectIdent consumes the next token, which must be an identifier.
func (p *parser) expectIdent() (token.Token, error) {
	tok, err := p.next()
	if err != nil {
		return tok, err
	}
	if tok.Kind != token.Identifier {
		return tok, p.unexpected(tok, "identifier")
	}
	return tok, nil
}

func (p *parser) expectEOF() error {
	tok, err := p.next()
	if err != nil {
		return err
	}
	if tok.Kind != token.EOF {
		return p.unexpected(tok, "end of file")
	}
	return nil
}

// accept consumes the next token if it is the symbol s.
func (p *parser) accept(s token.Sym) (token.Token, bool, error) {
	tok, err := p.peek(0)
	if err != nil || !tok.Is(s) {
		return tok, false, err
	}
	_, err = p.next()
	return tok, true, err
}

// acceptKeyword consumes the next token if it is the keyword k.
func (p *parser) acceptKeyword(k token.Kw) (token.Token, bool, error) {
	tok, err := p.peek(0)
	if err != nil || !tok.IsKeyword(k) {
		return tok, false, err
	}
	_, err = p.next()
	return tok, true, err
}

// list parses the elements of a comma-separated list
// up to and including the closing symbol, which it returns.
// The opening symbol must already be consumed.
// A trailing comma is allowed.
func (p *parser) list(close token.Sym, elem func() error) (token.Token, error) {
	for {
		tok, err := p.peek(0)
		if err != nil {
			return tok, err
		}
		if tok.Is(close) {
			return p.next()
		}
		if err := elem(); err != nil {
			return token.Token{}, err
		}
		switch tok, err = p.peek(0); {
		case err != nil:
			return tok, err
		case tok.Is(token.Comma):
			if _, err := p.next(); err != nil {
				return tok, err
			}
		case !tok.Is(close):
			return tok, p.unexpected(tok, quote(token.Comma)+" or "+quote(close))
		}
	}
}

func (p *parser) parseTree() (*Tree, error) {
	defer p.rule("file")()
	first, err := p.peek(0)
	if err != nil {
		return nil, err
	}
	tree := &Tree{Span: first.Span, Path: p.tz.Source().Path}
	if tree.Directives, err = p.parseDirectives(); err != nil {
		return nil, err
	}
	for {
		tok, err := p.peek(0)
		if err != nil {
			return nil, err
		}
		if tok.Kind == token.EOF {
			tree.Span = tree.Span.Merge(tok.Span)
			return tree, nil
		}
		d, err := p.tryDecl(false)
		if err != nil {
			return nil, err
		}
		if d == nil {
			return nil, p.unexpected(tok, "declaration")
		}
		tree.Decls = append(tree.Decls, d)
	}
}

func (p *parser) parseDirectives() ([]Directive, error) {
	var dirs []Directive
	for {
		d, err := p.tryDirective()
		if err != nil || d == nil {
			return dirs, err
		}
		dirs = append(dirs, d)
	}
}

func (p *parser) tryDirective() (Directive, error) {
	tok, err := p.peek(0)
	if err != nil || tok.Kind != token.Keyword {
		return nil, err
	}
	switch tok.Keyword {
	case token.Import:
		defer p.rule("import")()
		p.next()
		path, err := p.next()
		if err != nil {
			return nil, err
		}
		if path.Kind != token.String {
			return nil, p.unexpected(path, "import path")
		}
		semi, err := p.expect(token.Semicolon)
		if err != nil {
			return nil, err
		}
		return &Import{Span: tok.Merge(semi.Span), Path: path.Str}, nil

	case token.Namespace, token.Using:
		defer p.rule(tok.Keyword.String())()
		p.next()
		name, err := p.parseIdentPath()
		if err != nil {
			return nil, err
		}
		semi, err := p.expect(token.Semicolon)
		if err != nil {
			return nil, err
		}
		if tok.Keyword == token.Namespace {
			return &Namespace{Span: tok.Merge(semi.Span), Name: name}, nil
		}
		return &Using{Span: tok.Merge(semi.Span), Name: name}, nil
	}
	return nil, nil
}

// parseIdentPath parses a ::-separated identifier path.
// It stops before a :: that is not followed by an identifier.
func (p *parser) parseIdentPath() (*IdentPath, error) {
	tok, err := p.expectIdent()
	if err != nil {
		return nil, err
	}
	path := &IdentPath{Span: tok.Span, Names: []string{tok.Name}}
	for {
		sep, err := p.peek(0)
		if err != nil {
			return nil, err
		}
		name, err := p.peek(1)
		if err != nil {
			return nil, err
		}
		if !sep.Is(token.DoubleColon) || name.Kind != token.Identifier {
			return path, nil
		}
		p.next()
		p.next()
		path.Names = append(path.Names, name.Name)
		path.Span = path.Span.Merge(name.Span)
	}
}
