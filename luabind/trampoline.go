// Copyright 2026 The luabind Authors
// SPDX-License-Identifier: MIT

package luabind

import (
	"errors"
	"fmt"
	"reflect"

	"luabind.256lights.llc/pkg/lua"
)

// errWrongParameterTypes is raised in Lua
// when the arguments of a call cannot be decoded.
var errWrongParameterTypes = errors.New("wrong parameter types for callback function")

// trampoline adapts call to the [lua.Function] calling convention.
// It decodes the arguments on the stack as an A,
// runs call within a fresh [Callback],
// and pushes the result.
//
// Surplus arguments are rejected.
// Missing trailing arguments decode as absent,
// which only [Optional] and [Nil] parameters accept.
//
// A result that cannot be pushed after call has run
// aborts the process:
// the call's side effects have happened and cannot be reported to Lua.
func trampoline[A, R any](l *lua.State, argSlots int, call func(A) R) (int, error) {
	nargs := l.Top()
	if nargs > argSlots {
		return 0, errWrongParameterTypes
	}
	if !l.CheckStack(argSlots - nargs + lua.MinStack) {
		return 0, errStackFull
	}

	cb := &Callback{l: l, nargs: nargs, valid: true}
	defer cb.invalidate()

	var args A
	if _, err := readArg(l, 1, reflect.ValueOf(&args).Elem(), cb); err != nil {
		return 0, errWrongParameterTypes
	}
	r := call(args)
	// Results go above whatever the function left on the stack.
	n, err := pushValue(l, reflect.ValueOf(&r).Elem(), cb)
	if err != nil {
		panic(lua.NewAbort(fmt.Errorf("luabind: push results: %w", err)))
	}
	return n, nil
}
