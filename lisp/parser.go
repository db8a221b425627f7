// Copyright 2020 Rob Pike. All rights reserved.
// Use of this source code is governed by a BSD
// license that can be found in the LICENSE file.

package lisp

import "io"

// Reader is the recursive-descent reader of section 4.3, built over a
// lexer in the same peek/back shape as
// _examples/robpike-lisp/lisp1_5/parse.go's Parser.
type Reader struct {
	lex     *lexer
	peekTok *token
	hasPeek bool
}

// NewReader returns a reader pulling runes from rd. Parse errors panic
// with *EvalError (wrapping ErrParse); the caller recovers at the top
// level, per section 5's "an error is the only form of non-local exit".
func NewReader(rd io.RuneReader) *Reader {
	return &Reader{lex: newLexer(rd)}
}

func (r *Reader) next() token {
	if r.hasPeek {
		r.hasPeek = false
		tok := *r.peekTok
		return tok
	}
	return r.lex.next()
}

func (r *Reader) back(tok token) {
	r.peekTok = &tok
	r.hasPeek = true
}

// ReadExpr reads one top-level expression, or returns (nil, false) at
// end of input.
func (r *Reader) ReadExpr() (Value, bool) {
	tok := r.next()
	if tok.kind == tokEnd {
		return nil, false
	}
	return r.readExpr(tok), true
}

// readExpr implements section 4.3's read_expr, dispatching on an
// already-consumed current token.
func (r *Reader) readExpr(tok token) Value {
	switch tok.kind {
	case tokLeftParen:
		return r.readList(tok.line)
	case tokSymbol:
		switch tok.text {
		case "nil":
			return Nil
		case "t":
			return T
		default:
			return SymbolRef{Name: tok.text}
		}
	case tokString:
		return LispString{Text: tok.text}
	case tokNumber:
		return NumberValue{Num: ParseNumber(tok.text)}
	case tokQuote:
		next := r.next()
		if next.kind == tokEnd {
			parseError(tok.line, "unexpected end of file after quote")
		}
		return Quote{Inner: r.readExpr(next)}
	default:
		parseError(tok.line, "unexpected token %s %q", tok.kind, tok.text)
		panic("unreachable")
	}
}

// readList implements section 4.3's read_list. openLine is the line
// the opening '(' started on, used to blame an unterminated list on
// where it began.
func (r *Reader) readList(openLine int) Value {
	tok := r.next()
	switch tok.kind {
	case tokRightParen:
		return Nil
	case tokEnd:
		parseError(openLine, "unexpected end of file")
		panic("unreachable")
	case tokDot:
		tail := r.readExprRequired(openLine)
		closeTok := r.next()
		if closeTok.kind != tokRightParen {
			parseError(openLine, "expected ) after dotted tail, got %s", closeTok.kind)
		}
		return tail
	default:
		car := r.readExpr(tok)
		cdr := r.readList(openLine)
		return Cons(car, cdr)
	}
}

func (r *Reader) readExprRequired(openLine int) Value {
	tok := r.next()
	if tok.kind == tokEnd {
		parseError(openLine, "unexpected end of file")
	}
	return r.readExpr(tok)
}
