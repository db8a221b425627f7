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

// evalString reads and evaluates every top-level expression in s in a
// fresh global environment, returning the last result.
func evalString(t *testing.T, s string) Value {
	t.Helper()
	env := NewGlobalEnvironment()
	r := NewReader(strings.NewReader(s))
	var result Value = Nil
	for {
		expr, ok := r.ReadExpr()
		if !ok {
			return result
		}
		result = env.Eval(expr)
	}
}

func TestEvalSelfEvaluating(t *testing.T) {
	assert.Equal(t, Nil, evalString(t, "nil"))
	assert.Equal(t, T, evalString(t, "t"))
	assert.Equal(t, "hi", evalString(t, `"hi"`).(LispString).Text)
	assert.Equal(t, "3", evalString(t, "3").String())
}

func TestEvalQuote(t *testing.T) {
	got := evalString(t, "(quote (a b c))")
	assert.Equal(t, "(a b c)", got.String())
	assert.Equal(t, "(a b c)", evalString(t, "'(a b c)").String())
}

func TestEvalIf(t *testing.T) {
	assert.Equal(t, "1", evalString(t, "(if t 1 2)").String())
	assert.Equal(t, "2", evalString(t, "(if nil 1 2)").String())
	assert.Equal(t, Nil, evalString(t, "(if nil 1)"))
	assert.Equal(t, "3", evalString(t, "(if nil 1 2 3)").String())
}

func TestEvalAndOr(t *testing.T) {
	assert.Equal(t, Nil, evalString(t, "(and t nil t)"))
	assert.Equal(t, "2", evalString(t, "(and 1 2)").String())
	assert.Equal(t, "1", evalString(t, "(or 1 2)").String())
	assert.Equal(t, Nil, evalString(t, "(or nil nil)"))
}

func TestEvalSetqAndVariableLookup(t *testing.T) {
	got := evalString(t, "(setq x 5) (+ x x)")
	assert.Equal(t, "10", got.String())
}

func TestEvalDefunAndCall(t *testing.T) {
	got := evalString(t, "(defun sq (x) (+ x x)) (sq 21)")
	assert.Equal(t, "42", got.String())
}

func TestEvalLambdaAndFuncall(t *testing.T) {
	got := evalString(t, "(funcall (lambda (x y) (+ x y)) 1 2)")
	assert.Equal(t, "3", got.String())
}

// TestEvalClosureAdder mirrors spec.md section 8's adder scenario: a
// function that returns a lambda capturing its parameter must keep
// that parameter alive (via teardown re-homing) past the call that
// created it.
func TestEvalClosureAdder(t *testing.T) {
	got := evalString(t, `
		(defun make_adder (n) (lambda (x) (+ x n)))
		(setq add5 (make_adder 5))
		(funcall add5 10)
	`)
	assert.Equal(t, "15", got.String())
}

func TestEvalEqual(t *testing.T) {
	assert.Equal(t, T, evalString(t, "(equal 1 1)"))
	assert.Equal(t, Nil, evalString(t, "(equal 1 2)"))
	assert.Equal(t, T, evalString(t, "(equal (quote (a b)) (quote (a b)))"))
	assert.Equal(t, T, evalString(t, "(equal 1/2 2/4)"))
}

func TestEvalVoidVariable(t *testing.T) {
	defer func() {
		r := recover()
		require.NotNil(t, r)
		evalErr, ok := r.(*EvalError)
		require.True(t, ok)
		name, _ := SymbolicName(evalErr)
		assert.Equal(t, "void-variable", name)
	}()
	evalString(t, "never_bound")
}

func TestEvalWrongNumberOfArgs(t *testing.T) {
	defer func() {
		r := recover()
		require.NotNil(t, r)
		evalErr, ok := r.(*EvalError)
		require.True(t, ok)
		name, _ := SymbolicName(evalErr)
		assert.Equal(t, "wrong-number-of-arguments", name)
	}()
	evalString(t, "(defun f (x y) x) (f 1)")
}

func TestEvalExcessArgumentsIgnored(t *testing.T) {
	got := evalString(t, "(defun f (x) x) (f 1 2 3)")
	assert.Equal(t, "1", got.String())
}

func TestEvalSetfAndFset(t *testing.T) {
	got := evalString(t, `
		(setq name 'x)
		(setf name 99)
		x
	`)
	assert.Equal(t, "99", got.String())

	got = evalString(t, `
		(setq name 'f)
		(fset name (lambda (x) (+ x 1)))
		(f 41)
	`)
	assert.Equal(t, "42", got.String())
}

func TestEvalRecursionLimit(t *testing.T) {
	SetMaxEvalDepth(50)
	defer SetMaxEvalDepth(0)
	defer func() {
		r := recover()
		require.NotNil(t, r)
		evalErr, ok := r.(*EvalError)
		require.True(t, ok)
		assert.ErrorIs(t, evalErr, ErrRecursionLimit)
	}()
	evalString(t, "(defun loop (n) (loop n)) (loop 1)")
}
