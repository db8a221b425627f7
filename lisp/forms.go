// Copyright 2020 Rob Pike. All rights reserved.
// Use of this source code is governed by a BSD
// license that can be found in the LICENSE file.

// This file installs the built-in forms of section 4.6, following the
// name-to-function table shape of
// _examples/robpike-lisp/lisp1_5/elementary.go and math.go, recast
// onto NativeCallable values and this design's form/function split
// (_examples/original_source/src/forms.hpp documents the per-form
// semantics these mirror).

package lisp

// builtins maps each global binding name to the Go function that
// implements it. Every entry receives the raw, unevaluated argument
// list, per section 4.5's "form" callable convention.
var builtins = map[string]func(env *Environment, args Value) Value{
	"quote":   quoteForm,
	"if":      ifForm,
	"and":     andForm,
	"or":      orForm,
	"setq":    setqForm,
	"setf":    setfForm,
	"fset":    fsetForm,
	"defun":   defunForm,
	"lambda":  lambdaForm,
	"equal":   equalForm,
	"+":       plusForm,
	"funcall": funcallForm,
	"print":   printForm,
}

// NewGlobalEnvironment returns a fresh root environment with the
// built-in forms installed in its function slots, per section 5's
// "installed exactly once" contract.
func NewGlobalEnvironment() *Environment {
	env := NewEnvironment(nil)
	for name, fn := range builtins {
		h := env.Create(name)
		h.Symbol().SetFunction(&NativeCallable{Name: name, Fn: fn})
	}
	return env
}

func quoteForm(env *Environment, args Value) Value {
	if listLen(args) != 1 {
		raise(ErrWrongNumberOfArgs, "quote requires 1 argument")
	}
	return car(args)
}

func ifForm(env *Environment, args Value) Value {
	if listLen(args) < 2 {
		raise(ErrWrongNumberOfArgs, "if requires at least 2 arguments")
	}
	if env.Eval(car(args)).Truthy() {
		return env.Eval(car(cdr(args)))
	}
	return evalBody(env, cdr(cdr(args)))
}

func orForm(env *Environment, args Value) Value {
	var result Value = Nil
	for {
		c, ok := args.(*ConsCell)
		if !ok {
			return result
		}
		result = env.Eval(c.Car)
		if result.Truthy() {
			return result
		}
		args = c.Cdr
	}
}

func andForm(env *Environment, args Value) Value {
	var result Value = Nil
	for {
		c, ok := args.(*ConsCell)
		if !ok {
			return result
		}
		result = env.Eval(c.Car)
		if !result.Truthy() {
			return Nil
		}
		args = c.Cdr
	}
}

func setqForm(env *Environment, args Value) Value {
	ref, valueExpr := twoArgsSymbolFirst(env, args, "setq", false)
	return bindSymbol(env, ref, env.Eval(valueExpr), (*Symbol).SetValue)
}

func setfForm(env *Environment, args Value) Value {
	ref, valueExpr := twoArgsSymbolFirst(env, args, "setf", true)
	return bindSymbol(env, ref, env.Eval(valueExpr), (*Symbol).SetValue)
}

func fsetForm(env *Environment, args Value) Value {
	ref, valueExpr := twoArgsSymbolFirst(env, args, "fset", true)
	return bindSymbol(env, ref, env.Eval(valueExpr), (*Symbol).SetFunction)
}

// twoArgsSymbolFirst extracts (symbol-ref, value-expr) from a 2-ary
// form's raw argument list. When evalFirst is true (setf, fset) the
// first argument is evaluated in env before the SymbolRef check (it
// must itself evaluate to a SymbolRef); when false (setq) the first
// argument is used as written.
func twoArgsSymbolFirst(env *Environment, args Value, formName string, evalFirst bool) (SymbolRef, Value) {
	if listLen(args) != 2 {
		raise(ErrWrongNumberOfArgs, "%s requires 2 arguments", formName)
	}
	target := car(args)
	if evalFirst {
		target = env.Eval(target)
	}
	ref, ok := target.(SymbolRef)
	if !ok {
		raise(ErrWrongTypeArgument, "%s target %s is not a symbol", formName, target.String())
	}
	return ref, car(cdr(args))
}

// bindSymbol resolves ref in env, applies set to its symbol with v,
// and returns the symbol, per setq/setf/fset's shared return contract.
func bindSymbol(env *Environment, ref SymbolRef, v Value, set func(*Symbol, Value)) Value {
	h := env.Get(ref.Name)
	defer h.Release()
	set(h.Symbol(), v)
	return h.Symbol()
}

func defunForm(env *Environment, args Value) Value {
	cell, ok := args.(*ConsCell)
	if !ok {
		raise(ErrWrongNumberOfArgs, "defun requires at least 2 arguments")
	}
	ref, ok := cell.Car.(SymbolRef)
	if !ok {
		raise(ErrWrongTypeArgument, "defun name %s is not a symbol", cell.Car.String())
	}
	rest, ok := cell.Cdr.(*ConsCell)
	if !ok {
		raise(ErrWrongNumberOfArgs, "defun requires at least 2 arguments")
	}
	params := paramNames(rest.Car, "defun")
	body, _ := rest.Cdr.(*ConsCell)
	fn := &Function{Params: params, Body: body}
	h := env.Get(ref.Name)
	defer h.Release()
	h.Symbol().SetFunction(fn)
	return h.Symbol()
}

func lambdaForm(env *Environment, args Value) Value {
	cell, ok := args.(*ConsCell)
	if !ok {
		raise(ErrWrongNumberOfArgs, "lambda requires at least 1 argument")
	}
	params := paramNames(cell.Car, "lambda")
	body, _ := cell.Cdr.(*ConsCell)
	return &Function{Params: params, Body: body}
}

// paramNames walks a raw parameter list, requiring every element to be
// a SymbolRef, per defun/lambda's shared argument-1/2 contract.
func paramNames(v Value, formName string) []string {
	var names []string
	for {
		c, ok := v.(*ConsCell)
		if !ok {
			if v != Nil {
				raise(ErrWrongTypeArgument, "%s parameter list must be a proper list", formName)
			}
			return names
		}
		ref, ok := c.Car.(SymbolRef)
		if !ok {
			raise(ErrWrongTypeArgument, "%s parameter %s is not a symbol", formName, c.Car.String())
		}
		names = append(names, ref.Name)
		v = c.Cdr
	}
}

func equalForm(env *Environment, args Value) Value {
	if listLen(args) != 2 {
		raise(ErrWrongNumberOfArgs, "equal requires 2 arguments")
	}
	a := env.Eval(car(args))
	b := env.Eval(car(cdr(args)))
	return BoolValue(valuesEqual(a, b))
}

// valuesEqual implements section 4.6's equal: Go == for singletons,
// symbol references (by name) and callables (by pointer), text equality
// for strings, structural equality for cons cells and cross-variant
// numeric comparison for numbers.
func valuesEqual(a, b Value) bool {
	switch av := a.(type) {
	case NumberValue:
		bv, ok := b.(NumberValue)
		return ok && av.Num.Equal(bv.Num)
	case LispString:
		bv, ok := b.(LispString)
		return ok && av.Text == bv.Text
	case *ConsCell:
		bv, ok := b.(*ConsCell)
		return ok && valuesEqual(av.Car, bv.Car) && valuesEqual(av.Cdr, bv.Cdr)
	default:
		return a == b
	}
}

func plusForm(env *Environment, args Value) Value {
	cell, ok := args.(*ConsCell)
	if !ok {
		raise(ErrWrongNumberOfArgs, "+ requires at least 1 argument")
	}
	sum := num(env.Eval(cell.Car))
	rest := cell.Cdr
	for {
		c, ok := rest.(*ConsCell)
		if !ok {
			return NumberValue{Num: sum}
		}
		sum = sum.Add(num(env.Eval(c.Car)))
		rest = c.Cdr
	}
}

// funcallForm evaluates the callable and every remaining argument,
// then re-quotes each evaluated argument before applying: a Function
// evaluates its incoming argument list itself, as do the NativeCallable
// forms that evaluate their arguments (section 4.5), so funcall's
// "already evaluated" list must be shielded from a second evaluation
// pass.
func funcallForm(env *Environment, args Value) Value {
	cell, ok := args.(*ConsCell)
	if !ok {
		raise(ErrWrongNumberOfArgs, "funcall requires at least 1 argument")
	}
	callable := env.Eval(cell.Car)
	return env.Apply(callable, quoteEvaluatedArgs(env, cell.Cdr))
}

func quoteEvaluatedArgs(env *Environment, rest Value) Value {
	var head Value = Nil
	var tail *ConsCell
	for {
		c, ok := rest.(*ConsCell)
		if !ok {
			return head
		}
		node := Cons(Quote{Inner: env.Eval(c.Car)}, Nil)
		if tail == nil {
			head = node
		} else {
			tail.Cdr = node
		}
		tail = node
		rest = c.Cdr
	}
}

func printForm(env *Environment, args Value) Value {
	for {
		c, ok := args.(*ConsCell)
		if !ok {
			return Nil
		}
		printLine(env.Eval(c.Car))
		args = c.Cdr
	}
}

// evalBody evaluates a Nil-terminated list of expressions in order,
// returning the last result or Nil if the list is empty. Shared by
// if's else-branch and Function.call's body.
func evalBody(env *Environment, body Value) Value {
	var result Value = Nil
	for {
		c, ok := body.(*ConsCell)
		if !ok {
			return result
		}
		result = env.Eval(c.Car)
		body = c.Cdr
	}
}
