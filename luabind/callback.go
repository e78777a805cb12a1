// Copyright 2026 The luabind Authors
// SPDX-License-Identifier: MIT

package luabind

import (
	"reflect"

	"luabind.256lights.llc/pkg/lua"
)

// A Callback is the context of a single call from Lua into a Go function.
// A wrapped function receives its Callback by declaring
// a *Callback parameter, which consumes no Lua arguments.
// A Callback must not be used after the call returns:
// its methods panic if it is.
type Callback struct {
	l     *lua.State
	nargs int
	valid bool
}

func (c *Callback) check() {
	if c == nil || !c.valid {
		panic("luabind: Callback used outside of its call")
	}
}

func (c *Callback) invalidate() {
	c.valid = false
	c.l = nil
}

// State returns the Lua state the call is running on.
// Functions may use it to call back into Lua.
func (c *Callback) State() *lua.State {
	c.check()
	return c.l
}

// NumArgs returns the number of arguments Lua passed to the call.
func (c *Callback) NumArgs() int {
	c.check()
	return c.nargs
}

// Where returns the "chunkname:currentline: " position of the Lua caller,
// or the empty string if it is not known.
func (c *Callback) Where() string {
	c.check()
	return lua.Where(c.l, 1)
}

// Push encodes v onto the stack of the call
// and returns the number of values pushed.
// Unlike [Push], values that implement [CallbackPusher] are accepted.
func (c *Callback) Push(v any) (int, error) {
	c.check()
	if v == nil {
		c.l.PushNil()
		return 1, nil
	}
	rv := reflect.ValueOf(v)
	if err := checkPush(rv.Type()); err != nil {
		return 0, err
	}
	return pushValue(c.l, rv, c)
}
