// Copyright 2020 Rob Pike. All rights reserved.
// Use of this source code is governed by a BSD
// license that can be found in the LICENSE file.

package lisp

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrintWritesToDiagnosticStream(t *testing.T) {
	var buf bytes.Buffer
	SetDiagOutput(&buf)
	defer SetDiagOutput(os.Stderr)

	evalString(t, `(print 1) (print "hi")`)

	out := buf.String()
	assert.Contains(t, out, "1")
	assert.Contains(t, out, `"hi"`)
}

func TestPlusRequiresNumbers(t *testing.T) {
	defer func() {
		r := recover()
		require.NotNil(t, r)
		evalErr, ok := r.(*EvalError)
		require.True(t, ok)
		name, _ := SymbolicName(evalErr)
		assert.Equal(t, "wrong-type-argument", name)
	}()
	evalString(t, `(+ 1 "nope")`)
}

func TestDefunParameterMustBeSymbol(t *testing.T) {
	defer func() {
		r := recover()
		require.NotNil(t, r)
		evalErr, ok := r.(*EvalError)
		require.True(t, ok)
		name, _ := SymbolicName(evalErr)
		assert.Equal(t, "wrong-type-argument", name)
	}()
	evalString(t, `(defun f (1) x)`)
}

func TestSExprStringShowsRawDottedPairs(t *testing.T) {
	env := NewGlobalEnvironment()
	r := NewReader(strings.NewReader("(a b)"))
	expr, ok := r.ReadExpr()
	require.True(t, ok)
	v := env.Eval(Quote{Inner: expr})
	assert.Equal(t, "(a . (b . nil))", SExprString(v))
}

func TestFuncallReEvaluationIsShielded(t *testing.T) {
	// funcall evaluates its first argument as a value (Lisp-2 style),
	// so the callable must live in the value slot, not the function
	// slot; the evaluated y (the symbol z) must not be evaluated a
	// second time inside the call, which would signal void-variable.
	got := evalString(t, `
		(setq y 'z)
		(setq identity (lambda (x) x))
		(funcall identity y)
	`)
	assert.Equal(t, "z", got.String())
}
