// Copyright 2020 Rob Pike. All rights reserved.
// Use of this source code is governed by a BSD
// license that can be found in the LICENSE file.

package lisp

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readAll(t *testing.T, s string) Value {
	t.Helper()
	r := NewReader(strings.NewReader(s))
	v, ok := r.ReadExpr()
	require.True(t, ok, "expected an expression, got end of input")
	return v
}

func TestReaderAtoms(t *testing.T) {
	assert.Equal(t, Nil, readAll(t, "nil"))
	assert.Equal(t, T, readAll(t, "t"))
	assert.Equal(t, SymbolRef{Name: "foo"}, readAll(t, "foo"))
	assert.Equal(t, LispString{Text: "hi"}, readAll(t, `"hi"`))
}

func TestReaderNumbers(t *testing.T) {
	v := readAll(t, "42")
	n, ok := v.(NumberValue)
	require.True(t, ok)
	assert.True(t, n.Num.IsLong())
	assert.Equal(t, "42", n.Num.String())
}

func TestReaderLists(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"()", "nil"},
		{"(a)", "(a)"},
		{"(a . b)", "(a . b)"},
		{"(a b c)", "(a b c)"},
		{"(a (b c) d)", "(a (b c) d)"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got := readAll(t, tt.in).String()
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestReaderQuote(t *testing.T) {
	got := readAll(t, "'a")
	q, ok := got.(Quote)
	require.True(t, ok)
	assert.Equal(t, SymbolRef{Name: "a"}, q.Inner)
	assert.Equal(t, "'a", got.String())
}

// consShape is a minimal projection of a ConsCell chain, used so
// cmp.Diff can compare parsed structure without tripping over the
// Value variants' unexported embedded helper fields.
type consShape struct {
	Car, Cdr string
}

func shapeOf(v Value) consShape {
	c := v.(*ConsCell)
	return consShape{Car: c.Car.String(), Cdr: c.Cdr.String()}
}

func TestReaderShape(t *testing.T) {
	got := readAll(t, "(a . (b . nil))")
	want := consShape{Car: "a", Cdr: "(b)"}
	assert.Empty(t, cmp.Diff(want, shapeOf(got)))
}

func TestReaderEndOfInput(t *testing.T) {
	r := NewReader(strings.NewReader("  "))
	_, ok := r.ReadExpr()
	assert.False(t, ok)
}

func TestReaderUnterminatedListIsParseError(t *testing.T) {
	defer func() {
		r := recover()
		require.NotNil(t, r)
		_, ok := r.(*EvalError)
		assert.True(t, ok)
	}()
	r := NewReader(strings.NewReader("(a b"))
	r.ReadExpr()
}
