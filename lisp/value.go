// Copyright 2020 Rob Pike. All rights reserved.
// Use of this source code is governed by a BSD
// license that can be found in the LICENSE file.

package lisp

import "strings"

// Value is the sum type of section 3: every Lisp datum implements it.
// evalSelf embodies the per-variant eval contract of section 4.5: it
// returns (result, true) when the variant knows how to evaluate itself
// specially, or (nil, false) to mean "self-evaluates" (the caller
// returns the receiver unchanged). call implements the apply contract
// of section 4.5/4.6: it returns (nil, false) for anything that is not
// callable, letting Apply signal invalid-function.
type Value interface {
	String() string
	Truthy() bool
	evalSelf(env *Environment) (Value, bool)
	// call invokes the receiver as a callable. args is the raw,
	// unevaluated argument list as read from the cdr of the calling
	// form: Nil for zero arguments, or a *ConsCell chain otherwise.
	call(env *Environment, args Value) (Value, bool)
}

// notCallable is embedded by every Value variant that cannot be
// applied, so only Symbol, Function and NativeCallable need to
// override call.
type notCallable struct{}

func (notCallable) call(*Environment, Value) (Value, bool) { return nil, false }

// selfEvaluating is embedded by variants that evaluate to themselves:
// Nil, T, String, Number, Function, NativeCallable.
type selfEvaluating struct{}

func (selfEvaluating) evalSelf(*Environment) (Value, bool) { return nil, false }

// --- Nil and T: process-wide singletons (section 3, section 5) ---

type nilValue struct {
	selfEvaluating
	notCallable
}

func (nilValue) String() string { return "nil" }
func (nilValue) Truthy() bool   { return false }

type tValue struct {
	selfEvaluating
	notCallable
}

func (tValue) String() string { return "t" }
func (tValue) Truthy() bool   { return true }

// Nil and T are the unique singleton instances described in section 3.
// They are package-level vars rather than lazily-initialized values
// (section 5 calls for lazy init, but an empty struct value has no
// construction cost to defer in Go; both are immutable from first use).
var (
	Nil Value = nilValue{}
	T   Value = tValue{}
)

// BoolValue converts a Go bool to the canonical T/Nil value, used by
// every built-in predicate and comparison.
func BoolValue(b bool) Value {
	if b {
		return T
	}
	return Nil
}

// --- ConsCell ---

// ConsCell is the pair of section 3. A list is a chain of ConsCells
// ending in Nil; a dotted pair ends in some other non-Nil, non-cons
// value. Car and Cdr are never a raw Go nil; they default to Nil.
type ConsCell struct {
	notCallable
	Car Value
	Cdr Value
}

// Cons builds a ConsCell, defaulting unset fields to Nil per the
// invariant that neither field is ever left uninitialized.
func Cons(car, cdr Value) *ConsCell {
	if car == nil {
		car = Nil
	}
	if cdr == nil {
		cdr = Nil
	}
	return &ConsCell{Car: car, Cdr: cdr}
}

func (c *ConsCell) Truthy() bool { return true }

func (c *ConsCell) String() string {
	var b strings.Builder
	b.WriteByte('(')
	writeConsBody(c, &b)
	b.WriteByte(')')
	return b.String()
}

func writeConsBody(c *ConsCell, b *strings.Builder) {
	b.WriteString(c.Car.String())
	switch cdr := c.Cdr.(type) {
	case nilValue:
		return
	case *ConsCell:
		b.WriteByte(' ')
		writeConsBody(cdr, b)
	default:
		b.WriteString(" . ")
		b.WriteString(cdr.String())
	}
}

// SExprString renders v as a raw S-expression: every cons cell as a
// literal dotted pair, with no trailing-Nil collapsing and no 'x quote
// shorthand. This is the --sexpr CLI mode's output, distinct from
// Value.String's simplified list notation (spec.md's printing rule
// covers the latter; --sexpr is SPEC_FULL.md's own ambient addition,
// carried from the teacher's Config(alwaysPrintSExprs) switch).
func SExprString(v Value) string {
	switch x := v.(type) {
	case *ConsCell:
		return "(" + SExprString(x.Car) + " . " + SExprString(x.Cdr) + ")"
	case Quote:
		return "(quote . (" + SExprString(x.Inner) + " . nil))"
	default:
		return v.String()
	}
}

// car and cdr are the internal list-walking helpers used by the
// evaluator and forms; spec.md deliberately does not expose car/cdr as
// user-visible primitives (section 4.6's table has no car/cdr entry),
// so these stay unexported.
func car(v Value) Value {
	if c, ok := v.(*ConsCell); ok {
		return c.Car
	}
	return Nil
}

func cdr(v Value) Value {
	if c, ok := v.(*ConsCell); ok {
		return c.Cdr
	}
	return Nil
}

// listLen counts the top-level elements of a proper list prefix.
func listLen(v Value) int {
	n := 0
	for {
		c, ok := v.(*ConsCell)
		if !ok {
			return n
		}
		n++
		v = c.Cdr
	}
}

// evalSelf implements section 4.5's ConsCell row: a form invocation.
// The head position is special-cased rather than evaluated like any
// other argument, per classic Lisp dispatch:
//
//   - a bare SymbolRef head names a function/form by its function
//     slot, so it is resolved but never evaluated as a value
//     expression;
//   - anything else in head position (most notably a nested
//     (lambda ...) expression, spec.md's "car is a cons whose car is
//     the SymbolRef lambda" case) is evaluated in the current
//     environment to produce a callable, per the general rule that
//     whatever a sub-expression evaluates to in that position must
//     itself support being called.
//
// Either way, the (still unevaluated) rest of the list is passed to
// Apply, which pushes argument evaluation down into the callable.
func (c *ConsCell) evalSelf(env *Environment) (Value, bool) {
	head := c.Car
	if ref, ok := head.(SymbolRef); ok {
		h := env.Get(ref.Name)
		defer h.Release()
		return env.Apply(h.Symbol(), c.Cdr), true
	}
	callable := env.Eval(head)
	return env.Apply(callable, c.Cdr), true
}

// --- SymbolRef: an unresolved by-name reference from the reader ---

type SymbolRef struct {
	selfEvaluating
	notCallable
	Name string
}

func (r SymbolRef) String() string { return r.Name }
func (r SymbolRef) Truthy() bool   { return true }

// evalSelf resolves the name in env and evaluates the resulting
// Symbol, per section 4.5's SymbolRef row.
func (r SymbolRef) evalSelf(env *Environment) (Value, bool) {
	h := env.Get(r.Name)
	defer h.Release()
	return h.Symbol().evalSelf(env)
}

// --- Symbol: a named location with value/function/plist slots ---

// Symbol is the named location of section 3/4.4. It is always reached
// through the Environment that owns it; Env is maintained for teardown
// re-homing and is updated when the symbol migrates to a parent.
type Symbol struct {
	notCallable
	name         string
	value        Value
	function     Value
	propertyList Value
	env          *Environment
}

func newSymbol(env *Environment, name string) *Symbol {
	return &Symbol{name: name, value: Nil, function: Nil, propertyList: Nil, env: env}
}

func (s *Symbol) String() string { return s.name }
func (s *Symbol) Truthy() bool   { return true }

func (s *Symbol) Name() string           { return s.name }
func (s *Symbol) Value() Value           { return s.value }
func (s *Symbol) Function() Value        { return s.function }
func (s *Symbol) PropertyList() Value    { return s.propertyList }
func (s *Symbol) SetValue(v Value)       { s.value = v }
func (s *Symbol) SetFunction(v Value)    { s.function = v }
func (s *Symbol) isUseless() bool {
	return s.value == Nil && s.function == Nil && s.propertyList == Nil
}

// evalSelf returns the symbol's value slot, or signals void-variable
// if it is unset (Nil slot means unset, per section 4.4's invariant).
func (s *Symbol) evalSelf(env *Environment) (Value, bool) {
	if s.value == Nil {
		raise(ErrVoidVariable, "%s", s.name)
	}
	return s.value, true
}

// call makes a Symbol directly callable by delegating to its function
// slot; this supports a bare symbol as the head of a form once
// ConsCell.evalSelf has resolved it through env.Get.
func (s *Symbol) call(env *Environment, args Value) (Value, bool) {
	if s.function == Nil {
		raise(ErrVoidFunction, "%s", s.name)
	}
	return env.Apply(s.function, args), true
}

// --- Quote ---

type Quote struct {
	notCallable
	Inner Value
}

func (q Quote) String() string { return "'" + q.Inner.String() }
func (q Quote) Truthy() bool   { return true }

// evalSelf returns the wrapped value verbatim, unevaluated.
func (q Quote) evalSelf(env *Environment) (Value, bool) { return q.Inner, true }

// --- String ---

type LispString struct {
	selfEvaluating
	notCallable
	Text string
}

func (s LispString) String() string { return "\"" + s.Text + "\"" }
func (s LispString) Truthy() bool   { return true }

// --- Number wrapper ---

type NumberValue struct {
	selfEvaluating
	notCallable
	Num Number
}

func (n NumberValue) String() string { return n.Num.String() }
func (n NumberValue) Truthy() bool   { return true }

func num(v Value) Number {
	n, ok := v.(NumberValue)
	if !ok {
		raise(ErrWrongTypeArgument, "numberp %s", v.String())
	}
	return n.Num
}

// --- Function: a user-defined procedure (section 4.1) ---

// Function deliberately carries no reference to its defining
// environment; see DESIGN.md's "lambda-as-head-of-head" note for why
// closures instead arise purely from Environment teardown re-homing.
type Function struct {
	selfEvaluating
	Params []string
	Body   *ConsCell // Nil-terminated list of body expressions
}

func (f *Function) String() string {
	var b strings.Builder
	b.WriteString("(lambda (")
	for i, p := range f.Params {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(p)
	}
	b.WriteString(") ...)")
	return b.String()
}
func (f *Function) Truthy() bool { return true }

// call implements section 4.5's application steps 1-4.
func (f *Function) call(env *Environment, args Value) (Value, bool) {
	child := NewEnvironment(env)
	rest := args
	for _, p := range f.Params {
		cell, ok := rest.(*ConsCell)
		if !ok {
			raise(ErrWrongNumberOfArgs, "%s", f.String())
		}
		v := env.Eval(cell.Car)
		child.Create(p).Symbol().SetValue(v)
		rest = cell.Cdr
	}
	// Excess arguments are ignored; see DESIGN.md's Open Questions.
	var body Value = Nil
	if f.Body != nil {
		body = f.Body
	}
	result := evalBody(child, body)
	child.Teardown()
	return result, true
}

// --- NativeCallable: a host-provided built-in form ---

// NativeCallable is the "form" layer of section 4.5: it always
// receives the raw, unevaluated argument list and is responsible for
// evaluating whatever it needs out of it.
type NativeCallable struct {
	selfEvaluating
	Name string
	Fn   func(env *Environment, args Value) Value
}

func (n *NativeCallable) String() string { return "#<native:" + n.Name + ">" }
func (n *NativeCallable) Truthy() bool   { return true }

func (n *NativeCallable) call(env *Environment, args Value) (Value, bool) {
	return n.Fn(env, args), true
}
