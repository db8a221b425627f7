// Copyright 2020 Rob Pike. All rights reserved.
// Use of this source code is governed by a BSD
// license that can be found in the LICENSE file.

package lisp

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLexerTokenKinds(t *testing.T) {
	tests := []struct {
		in   string
		kind tokKind
		text string
	}{
		{"(", tokLeftParen, "("},
		{")", tokRightParen, ")"},
		{"'", tokQuote, "'"},
		{".", tokDot, "."},
		{"foo", tokSymbol, "foo"},
		{"-", tokSymbol, "-"},
		{"/", tokSymbol, "/"},
		{"42", tokNumber, "42"},
		{"-42", tokNumber, "-42"},
		{"3.14", tokNumber, "3.14"},
		{"3/4", tokNumber, "3/4"},
		{`"hi"`, tokString, "hi"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			lx := newLexer(strings.NewReader(tt.in))
			tok := lx.next()
			assert.Equal(t, tt.kind, tok.kind)
			assert.Equal(t, tt.text, tok.text)
		})
	}
}

func TestLexerStringEscapes(t *testing.T) {
	lx := newLexer(strings.NewReader(`"a\nb\tc\\d\"e"`))
	tok := lx.next()
	require.Equal(t, tokString, tok.kind)
	assert.Equal(t, "a\nb\tc\\d\"e", tok.text)
}

func TestLexerLineCounting(t *testing.T) {
	lx := newLexer(strings.NewReader("a\nb\nc"))
	first := lx.next()
	assert.Equal(t, 1, first.line)
	lx.next() // "b", on line 2
	third := lx.next()
	assert.Equal(t, 3, third.line)
}

func TestLexerEnd(t *testing.T) {
	lx := newLexer(strings.NewReader(""))
	tok := lx.next()
	assert.Equal(t, tokEnd, tok.kind)
}
