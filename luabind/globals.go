// Copyright 2026 The luabind Authors
// SPDX-License-Identifier: MIT

package luabind

import (
	"context"
	"fmt"
	"maps"
	"reflect"
	"slices"

	"luabind.256lights.llc/pkg/lua"
	"zombiezen.com/go/log"
)

// SetGlobal sets the global variable name to v.
// v must encode to exactly one Lua value.
func SetGlobal[T any](l *lua.State, name string, v T) error {
	n, err := Push(l, v)
	if err != nil {
		return fmt.Errorf("set global %s: %w", name, err)
	}
	if n != 1 {
		l.Pop(n)
		return fmt.Errorf("set global %s: %v encodes to %d values", name, reflect.TypeFor[T](), n)
	}
	if err := l.SetGlobal(name, 0); err != nil {
		l.Pop(1)
		return fmt.Errorf("set global %s: %w", name, err)
	}
	return nil
}

// Global returns the value of the global variable name decoded as a T.
func Global[T any](l *lua.State, name string) (T, error) {
	var zero T
	if _, err := l.Global(name, 0); err != nil {
		l.Pop(1)
		return zero, fmt.Errorf("get global %s: %w", name, err)
	}
	v, err := Read[T](l, -1)
	l.Pop(1)
	if err != nil {
		return zero, fmt.Errorf("get global %s: %w", name, err)
	}
	return v, nil
}

// Register sets each function in funcs as a field of a new global table.
// Values of funcs must be wrappers such as those returned by [Func1].
func Register(l *lua.State, name string, funcs map[string]any) error {
	l.CreateTable(0, len(funcs))
	for _, k := range slices.Sorted(maps.Keys(funcs)) {
		f := funcs[k]
		c, ok := f.(callable)
		if !ok {
			l.Pop(1)
			return fmt.Errorf("register %s.%s: %T is not a function wrapper", name, k, f)
		}
		c.pushFunction(l)
		l.RawSetField(-2, k)
	}
	if err := l.SetGlobal(name, 0); err != nil {
		l.Pop(1)
		return fmt.Errorf("register %s: %w", name, err)
	}
	return nil
}

// Execute runs the Lua chunk code and decodes its results as a T.
// Use [Nil] to discard results and a tuple type to read several.
// A syntax error satisfies [lua.IsSyntax] and a runtime error [lua.IsRuntime].
// Execute leaves the stack as it found it.
func Execute[T any](ctx context.Context, l *lua.State, code string) (T, error) {
	var zero T
	if err := checkRead(reflect.TypeFor[T](), false); err != nil {
		return zero, err
	}
	if err := ctx.Err(); err != nil {
		return zero, err
	}
	base := l.Top()
	if err := l.LoadString(code, code, "t"); err != nil {
		l.SetTop(base)
		return zero, err
	}
	log.Debugf(ctx, "luabind: executing chunk (%d bytes)", len(code))
	if err := l.Call(0, lua.MultipleReturns, 0); err != nil {
		l.SetTop(base)
		return zero, err
	}
	defer l.SetTop(base)

	nresults := l.Top() - base
	want := slotCount(reflect.TypeFor[T]())
	if nresults > want {
		log.Debugf(ctx, "luabind: chunk returned %d values, using first %d", nresults, want)
	}
	if !l.CheckStack(want + 3) {
		return zero, errStackFull
	}
	var v T
	if _, err := readArg(l, base+1, reflect.ValueOf(&v).Elem(), nil); err != nil {
		return zero, err
	}
	return v, nil
}
