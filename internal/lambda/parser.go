// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

package lambda

import "fmt"

type kind int

const (
	kindEOF kind = iota
	kindIdent
	kindLambda
	kindColon
	kindLParen
	kindRParen
	kindInvalid
)

func (k kind) String() string {
	switch k {
	case kindEOF:
		return "EOF"
	case kindIdent:
		return "identifier"
	case kindLambda:
		return "lambda"
	case kindColon:
		return "':'"
	case kindLParen:
		return "'('"
	case kindRParen:
		return "')'"
	}
	return "invalid character"
}

type item struct {
	kind kind
	text string
	pos  int
}

// SyntaxError reports text that is not pure lambda syntax.
type SyntaxError struct {
	Offset int
	Msg    string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("syntax error at offset %d: %s", e.Offset, e.Msg)
}

type parser struct {
	src string
	pos int
	cur item
}

// Parse parses src into a term.
func Parse(src string) (Term, error) {
	p := &parser{src: src}
	p.next()
	t, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if p.cur.kind != kindEOF {
		return nil, p.unexpected()
	}
	return t, nil
}

func (p *parser) next() {
	for p.pos < len(p.src) && isSpace(p.src[p.pos]) {
		p.pos++
	}
	start := p.pos
	if p.pos >= len(p.src) {
		p.cur = item{kind: kindEOF, pos: start}
		return
	}
	c := p.src[p.pos]
	switch {
	case isIdentStart(c):
		for p.pos < len(p.src) && isIdentChar(p.src[p.pos]) {
			p.pos++
		}
		text := p.src[start:p.pos]
		if text == "lambda" {
			p.cur = item{kind: kindLambda, text: text, pos: start}
		} else {
			p.cur = item{kind: kindIdent, text: text, pos: start}
		}
		return
	case c == ':':
		p.cur = item{kind: kindColon, text: ":", pos: start}
	case c == '(':
		p.cur = item{kind: kindLParen, text: "(", pos: start}
	case c == ')':
		p.cur = item{kind: kindRParen, text: ")", pos: start}
	default:
		p.cur = item{kind: kindInvalid, text: string(c), pos: start}
	}
	p.pos++
}

func (p *parser) unexpected() error {
	if p.cur.kind == kindInvalid {
		return &SyntaxError{Offset: p.cur.pos, Msg: fmt.Sprintf("unexpected character %q", p.cur.text)}
	}
	return &SyntaxError{Offset: p.cur.pos, Msg: fmt.Sprintf("unexpected %s", p.cur.kind)}
}

func (p *parser) expect(k kind) error {
	if p.cur.kind != k {
		return &SyntaxError{Offset: p.cur.pos, Msg: fmt.Sprintf("expected %s, got %s", k, p.cur.kind)}
	}
	p.next()
	return nil
}

func (p *parser) parseExpr() (Term, error) {
	if p.cur.kind != kindLambda {
		return p.parsePostfix()
	}
	p.next()
	var param string
	if p.cur.kind == kindIdent {
		param = p.cur.text
		p.next()
	}
	if err := p.expect(kindColon); err != nil {
		return nil, err
	}
	body, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	return Abs{Param: param, Body: body}, nil
}

func (p *parser) parsePostfix() (Term, error) {
	t, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	for p.cur.kind == kindLParen {
		p.next()
		if p.cur.kind == kindRParen {
			p.next()
			t = App{Fun: t}
			continue
		}
		arg, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if err := p.expect(kindRParen); err != nil {
			return nil, err
		}
		t = App{Fun: t, Arg: arg}
	}
	return t, nil
}

func (p *parser) parsePrimary() (Term, error) {
	switch p.cur.kind {
	case kindIdent:
		v := Var{Name: p.cur.text}
		p.next()
		return v, nil
	case kindLParen:
		p.next()
		t, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if err := p.expect(kindRParen); err != nil {
			return nil, err
		}
		return t, nil
	}
	return nil, p.unexpected()
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

func isIdentStart(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c == '_'
}

func isIdentChar(c byte) bool {
	return isIdentStart(c) || c >= '0' && c <= '9'
}
