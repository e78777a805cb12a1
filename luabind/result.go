// Copyright 2026 The luabind Authors
// SPDX-License-Identifier: MIT

package luabind

import (
	"errors"
	"fmt"
	"reflect"
)

// Result is the outcome of a fallible Go function.
// When returned to Lua, a successful Result pushes its value
// and a failed Result pushes exactly two values:
// nil and the error message.
// A Result can only be pushed from a [Callback].
type Result[T any] struct {
	value T
	err   error
}

// Ok returns a successful Result holding v.
func Ok[T any](v T) Result[T] {
	return Result[T]{value: v}
}

// Fail returns a failed Result.
// A nil err is replaced with a generic error.
func Fail[T any](err error) Result[T] {
	if err == nil {
		err = errUnknown
	}
	return Result[T]{err: err}
}

// Failf returns a failed Result with a formatted error message.
func Failf[T any](format string, args ...any) Result[T] {
	return Result[T]{err: fmt.Errorf(format, args...)}
}

// Try returns Ok(v) if err is nil and Fail(err) otherwise.
func Try[T any](v T, err error) Result[T] {
	if err != nil {
		return Result[T]{err: err}
	}
	return Result[T]{value: v}
}

var errUnknown = errors.New("unknown error")

// Get returns the Result's value and error.
func (r Result[T]) Get() (T, error) {
	return r.value, r.err
}

// Err returns the Result's error, or nil if it succeeded.
func (r Result[T]) Err() error {
	return r.err
}

// PushCallback pushes the outcome onto the call's stack.
func (r Result[T]) PushCallback(c *Callback) (int, error) {
	c.check()
	if r.err != nil {
		c.l.PushNil()
		c.l.PushString(r.err.Error())
		return 2, nil
	}
	return pushValue(c.l, reflect.ValueOf(&r.value).Elem(), c)
}

func (Result[T]) valueType() reflect.Type {
	return reflect.TypeFor[T]()
}

type resultValue interface {
	valueType() reflect.Type
}
