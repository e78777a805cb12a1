// Copyright 2026 The luabind Authors
// SPDX-License-Identifier: MIT

/*
Package luabind exposes typed Go functions to an embedded Lua interpreter.

[Func0] through [Func10] wrap a Go function of up to ten parameters,
and [Bind0] through [Bind10] wrap a function together with state it owns.
Pushing a wrapper with [Push] or [SetGlobal] creates a Lua function
that decodes its arguments, calls the Go function,
and encodes the result.
Arguments that cannot be decoded raise the Lua error
"wrong parameter types for callback function"
without calling the Go function.

# Values

Go values map to Lua values as follows:

  - bool ↔ boolean
  - integer types ↔ integer (floats with an exact integer value are accepted)
  - float32, float64 ↔ number
  - string, []byte ↔ string
  - []T ↔ sequence table, map[string]T ↔ table with string keys
  - [Nil] ↔ nil, [Optional] ↔ value or nil
  - [Tuple2] and friends ↔ several consecutive values
  - [Result] → value, or nil followed by an error message

Strings and numbers are never converted into one another.
Types implementing [Reader] and [Pusher] provide their own conversion.

# Captured state

A function with no captured state,
or with zero-sized state that does not implement [io.Closer],
is pushed without allocating a userdata block.
Otherwise the state lives in a block as long as the Lua function:
when the garbage collector reclaims the function or the [lua.State] is closed,
the state's Close method (if any) runs exactly once.
A wrapper with captured state is moved into the Lua state it is pushed onto,
so it may be pushed only once.
*/
package luabind
