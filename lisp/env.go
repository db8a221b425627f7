// Copyright 2020 Rob Pike. All rights reserved.
// Use of this source code is governed by a BSD
// license that can be found in the LICENSE file.

package lisp

// entry pairs a Symbol with the number of outstanding handles to it,
// mirroring _examples/original_source/src/lisp.hpp's
// symbol_table_t = map<string, pair<symbol*, int>>.
type entry struct {
	sym      *Symbol
	refcount int
}

// Environment is the named symbol table of section 4.4: a parent
// chain with refcount-based symbol lifetime.
type Environment struct {
	parent *Environment
	table  map[string]*entry
}

// NewEnvironment creates an environment whose lookups fall back to
// parent. Pass nil to create the root (global) environment.
func NewEnvironment(parent *Environment) *Environment {
	return &Environment{parent: parent, table: make(map[string]*entry)}
}

// SymbolHandle is a shared, refcounted reference to a Symbol. Go has
// no destructors, so "runs release on drop" (section 4.4) is modeled
// as an explicit Release call; see DESIGN.md for which call sites
// release and which deliberately do not.
type SymbolHandle struct {
	owner *Environment
	sym   *Symbol
}

// Symbol returns the handle's underlying symbol.
func (h *SymbolHandle) Symbol() *Symbol { return h.sym }

// Release decrements the refcount in the owning environment, removing
// the symbol if it is useless once the count reaches zero. Safe to call
// on a nil handle. Each call decrements the count again while the entry
// is still in the owning table; once the entry is gone (removed, or
// moved out by Teardown) a call is a no-op.
func (h *SymbolHandle) Release() {
	if h == nil {
		return
	}
	h.owner.release(h.sym.name)
}

// Get resolves name: if bound locally, returns a handle with its
// refcount incremented; otherwise delegates to the parent. Only the
// environment with no parent (the global environment) fabricates a
// fresh, Nil-valued symbol when the chain is exhausted.
func (e *Environment) Get(name string) *SymbolHandle {
	if en, ok := e.table[name]; ok {
		en.refcount++
		return &SymbolHandle{owner: e, sym: en.sym}
	}
	if e.parent != nil {
		return e.parent.Get(name)
	}
	sym := newSymbol(e, name)
	e.table[name] = &entry{sym: sym, refcount: 1}
	return &SymbolHandle{owner: e, sym: sym}
}

// Create binds name strictly in this scope, without consulting the
// parent chain. Used for fresh lexical bindings (function parameters)
// and for installing the built-ins in a new global environment. Raises wrong-type-argument if name is already locally
// bound (spec.md's "logic error"; see DESIGN.md).
func (e *Environment) Create(name string) *SymbolHandle {
	if _, ok := e.table[name]; ok {
		raise(ErrWrongTypeArgument, "symbol %s already bound in this scope", name)
	}
	sym := newSymbol(e, name)
	e.table[name] = &entry{sym: sym, refcount: 1}
	return &SymbolHandle{owner: e, sym: sym}
}

// release implements the bookkeeping behind SymbolHandle.Release.
func (e *Environment) release(name string) {
	en, ok := e.table[name]
	if !ok {
		return
	}
	en.refcount--
	if en.refcount <= 0 && en.sym.isUseless() {
		delete(e.table, name)
	}
}

// maxEvalDepth and evalDepth back the --depth CLI flag (SPEC_FULL.md
// section 4.9); 0 means unlimited, matching the teacher's own
// stackDepth/maxStackDepth convention. Tracked as package state, not
// per-Environment, since a call chain threads through many child
// environments: this mirrors the single process-wide call stack the
// teacher actually measures (section 5 is single-threaded throughout).
var (
	maxEvalDepth int
	evalDepth    int
)

// SetMaxEvalDepth configures the recursion guard; 0 disables it.
func SetMaxEvalDepth(n int) { maxEvalDepth = n }

// Eval invokes v's self-evaluation contract (section 4.5); a variant
// that returns false from evalSelf evaluates to itself.
func (e *Environment) Eval(v Value) Value {
	if maxEvalDepth > 0 {
		evalDepth++
		defer func() { evalDepth-- }()
		if evalDepth > maxEvalDepth {
			raise(ErrRecursionLimit, "exceeded depth %d", maxEvalDepth)
		}
	}
	if result, ok := v.evalSelf(e); ok {
		return result
	}
	return v
}

// Apply invokes callable's call operator with args, signaling
// invalid-function if it has none.
func (e *Environment) Apply(callable Value, args Value) Value {
	result, ok := callable.call(e, args)
	if !ok {
		raise(ErrInvalidFunction, "%s", callable.String())
	}
	return result
}

// Teardown tears down e per section 4.4: symbols with a positive
// refcount migrate into the parent (closure support), whether or not
// they are useless, replacing any parent entry of the same name;
// symbols whose refcount is zero are dropped. Teardown is a no-op, not an error,
// on the root (parentless) environment's remaining bindings, which
// simply stay put since there is nowhere to migrate them.
func (e *Environment) Teardown() {
	if e.parent == nil {
		return
	}
	for name, en := range e.table {
		if en.refcount > 0 {
			en.sym.env = e.parent
			e.parent.table[name] = en
		}
	}
	e.table = nil
}
