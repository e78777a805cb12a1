// Copyright 2026 The luabind Authors
// SPDX-License-Identifier: MIT

package luabind

import (
	"context"
	"io"
	"reflect"
	"sync/atomic"

	"luabind.256lights.llc/pkg/lua"
	"zombiezen.com/go/log"
)

//go:generate go run ../internal/cmd/genfunc -o function_gen.go

// MaxArity is the largest number of parameters a wrapped function may have.
const MaxArity = 10

// callable is implemented by the FunctionN wrapper types.
type callable interface {
	pushFunction(l *lua.State)
}

// binding holds what every wrapper shares:
// the argument layout and the lifetime of its captured state.
type binding struct {
	argSlots int
	// bound is true if the wrapper owns captured state.
	// Such a wrapper is moved into the first Lua state it is pushed onto.
	bound bool
	// block is true if the captured state must live in a userdata block.
	block bool
	// closeState releases the captured state. nil if there is nothing to release.
	closeState func() error

	pushed atomic.Bool
}

// init verifies that the argument tuple and result types are supported.
// It panics otherwise: an unsupported signature is a programming error.
func (b *binding) init(args, result reflect.Type) {
	if err := checkRead(args, true); err != nil {
		panic(err)
	}
	if err := checkPush(result); err != nil {
		panic(err)
	}
	b.argSlots = slotCount(args)
}

// bindState records the captured state p.
// A zero-sized state without teardown needs no block.
func bindState[S any](b *binding, p *S) {
	b.bound = true
	if reflect.TypeFor[S]().Size() > 0 {
		b.block = true
	}
	if c, ok := any(p).(io.Closer); ok {
		b.closeState = c.Close
	} else if _, ok := any(*p).(io.Closer); ok {
		b.closeState = func() error { return any(*p).(io.Closer).Close() }
	}
	if b.closeState != nil {
		b.block = true
	}
}

// push places f onto the stack as a Lua function.
// A wrapper with captured state may only be pushed once.
func (b *binding) push(l *lua.State, f lua.Function) {
	if b.bound && !b.pushed.CompareAndSwap(false, true) {
		panic("luabind: function with captured state pushed more than once")
	}
	var finalize func()
	if b.closeState != nil {
		finalize = b.finalize
	}
	l.PushGoFunction(f, b.block, finalize)
}

// finalize releases the captured state
// once its Lua function has been collected.
func (b *binding) finalize() {
	if err := b.closeState(); err != nil {
		log.Warnf(context.Background(), "luabind: closing captured state: %v", err)
	}
}
