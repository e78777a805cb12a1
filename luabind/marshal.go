// Copyright 2026 The luabind Authors
// SPDX-License-Identifier: MIT

package luabind

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"strings"

	"luabind.256lights.llc/pkg/lua"
)

// A Reader is a type that can decode itself from a single Lua value.
// ReadLua is called with a pointer receiver.
type Reader interface {
	ReadLua(l *lua.State, idx int) error
}

// A Pusher is a type that can encode itself onto a Lua stack.
// PushLua returns the number of values pushed.
type Pusher interface {
	PushLua(l *lua.State) (int, error)
}

// A CallbackPusher is a value that can only be pushed
// as the result of a Go function called from Lua.
// Pushing a CallbackPusher with [Push] returns [ErrOutsideCallback].
type CallbackPusher interface {
	PushCallback(c *Callback) (int, error)
}

// ErrOutsideCallback is returned when a value
// that requires a [Callback] is pushed outside of one.
var ErrOutsideCallback = errors.New("luabind: value can only be pushed from a callback")

// Nil is the Go representation of Lua's nil.
// Reading a Nil accepts a nil or absent value.
// Pushing a Nil pushes nil.
type Nil struct{}

// String returns "nil".
func (Nil) String() string { return "nil" }

// Optional is a value that may be absent.
// Reading an Optional from a nil or absent value
// yields an Optional with Present set to false.
// Pushing an Optional that is not present pushes nil.
type Optional[T any] struct {
	Value   T
	Present bool
}

// Some returns a present Optional holding v.
func Some[T any](v T) Optional[T] {
	return Optional[T]{Value: v, Present: true}
}

// None returns an Optional that is not present.
func None[T any]() Optional[T] {
	return Optional[T]{}
}

// Get returns the value and whether it is present.
func (o Optional[T]) Get() (T, bool) {
	return o.Value, o.Present
}

func (o Optional[T]) String() string {
	if !o.Present {
		return "None"
	}
	return fmt.Sprintf("Some(%v)", o.Value)
}

func (Optional[T]) isOptional() {}

type optional interface {
	isOptional()
}

// A DecodeError describes a Lua value
// that could not be converted to the requested Go type.
type DecodeError struct {
	// Arg is the stack position of the value.
	Arg int
	// Path locates the offending value inside a table, if any.
	// It is empty for the value at Arg itself.
	Path string
	// GoType is the type that was requested.
	GoType reflect.Type
	// LuaType is the type of the value found.
	LuaType lua.Type
	// Err is an optional underlying reason.
	Err error
}

func (e *DecodeError) Error() string {
	sb := new(strings.Builder)
	fmt.Fprintf(sb, "luabind: argument #%d", e.Arg)
	if e.Path != "" {
		sb.WriteString(e.Path)
	}
	fmt.Fprintf(sb, ": cannot decode %v as %v", e.LuaType, e.GoType)
	if e.Err != nil {
		sb.WriteString(": ")
		sb.WriteString(e.Err.Error())
	}
	return sb.String()
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

var (
	errNotNumber    = errors.New("not a number")
	errNoIntegerRep = errors.New("number has no integer representation")
	errOutOfRange   = errors.New("value out of range")
	errStackFull    = errors.New("stack overflow")
)

var (
	readerType         = reflect.TypeFor[Reader]()
	pusherType         = reflect.TypeFor[Pusher]()
	callbackPusherType = reflect.TypeFor[CallbackPusher]()
	callableType       = reflect.TypeFor[callable]()
	tupleType          = reflect.TypeFor[tuple]()
	optionalType       = reflect.TypeFor[optional]()
	resultType         = reflect.TypeFor[resultValue]()
	callbackPtrType    = reflect.TypeFor[*Callback]()
	luaFunctionType    = reflect.TypeFor[lua.Function]()
	nilType            = reflect.TypeFor[Nil]()
)

// Read decodes the Lua value at idx as a T.
// Tuple types read consecutive stack positions starting at idx.
// Read does not modify the stack.
func Read[T any](l *lua.State, idx int) (T, error) {
	var v T
	if err := checkRead(reflect.TypeFor[T](), false); err != nil {
		return v, err
	}
	idx = l.AbsIndex(idx)
	if !l.CheckStack(3) {
		return v, errStackFull
	}
	if _, err := readArg(l, idx, reflect.ValueOf(&v).Elem(), nil); err != nil {
		return v, err
	}
	return v, nil
}

// Push encodes v onto the stack and returns the number of values pushed.
// Tuples push one value per element.
// Push returns [ErrOutsideCallback] for values that implement [CallbackPusher].
func Push[T any](l *lua.State, v T) (int, error) {
	if err := checkPush(reflect.TypeFor[T]()); err != nil {
		return 0, err
	}
	return pushValue(l, reflect.ValueOf(&v).Elem(), nil)
}

// readArg reads the value starting at the absolute index idx into rv,
// filling in the argument position of any decode error.
func readArg(l *lua.State, idx int, rv reflect.Value, cb *Callback) (int, error) {
	n, err := readValue(l, idx, rv, cb)
	if err != nil {
		var de *DecodeError
		if errors.As(err, &de) && de.Arg == 0 {
			de.Arg = idx
		}
		return 0, err
	}
	return n, nil
}

// readValue decodes the value at the absolute index idx into rv
// and returns the number of stack slots consumed.
func readValue(l *lua.State, idx int, rv reflect.Value, cb *Callback) (int, error) {
	t := rv.Type()
	switch {
	case t == callbackPtrType:
		rv.Set(reflect.ValueOf(cb))
		return 0, nil
	case isTuple(t):
		n := 0
		for i := range rv.NumField() {
			ni, err := readArg(l, idx+n, rv.Field(i), cb)
			if err != nil {
				return 0, err
			}
			n += ni
		}
		return n, nil
	case reflect.PointerTo(t).Implements(readerType):
		if err := rv.Addr().Interface().(Reader).ReadLua(l, idx); err != nil {
			return 0, &DecodeError{GoType: t, LuaType: l.Type(idx), Err: err}
		}
		return 1, nil
	case t == nilType:
		if !l.IsNoneOrNil(idx) {
			return 0, &DecodeError{GoType: t, LuaType: l.Type(idx)}
		}
		return 1, nil
	case isOptional(t):
		if l.IsNoneOrNil(idx) {
			rv.SetZero()
			return 1, nil
		}
		if _, err := readValue(l, idx, rv.Field(0), cb); err != nil {
			return 0, err
		}
		rv.Field(1).SetBool(true)
		return 1, nil
	}

	tp := l.Type(idx)
	mismatch := func(err error) error {
		return &DecodeError{GoType: t, LuaType: tp, Err: err}
	}
	switch t.Kind() {
	case reflect.Bool:
		if tp != lua.TypeBoolean {
			return 0, mismatch(nil)
		}
		rv.SetBool(l.ToBoolean(idx))
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := readInteger(l, idx)
		if err == errNotNumber {
			return 0, mismatch(nil)
		}
		if err != nil {
			return 0, mismatch(err)
		}
		if rv.OverflowInt(n) {
			return 0, mismatch(errOutOfRange)
		}
		rv.SetInt(n)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		n, err := readInteger(l, idx)
		if err == errNotNumber {
			return 0, mismatch(nil)
		}
		if err != nil {
			return 0, mismatch(err)
		}
		if n < 0 || rv.OverflowUint(uint64(n)) {
			return 0, mismatch(errOutOfRange)
		}
		rv.SetUint(uint64(n))
	case reflect.Float32, reflect.Float64:
		if tp != lua.TypeNumber {
			return 0, mismatch(nil)
		}
		f, _ := l.ToNumber(idx)
		if t.Kind() == reflect.Float32 && !math.IsInf(f, 0) && !math.IsNaN(f) && rv.OverflowFloat(f) {
			return 0, mismatch(errOutOfRange)
		}
		rv.SetFloat(f)
	case reflect.String:
		if tp != lua.TypeString {
			return 0, mismatch(nil)
		}
		s, _ := l.ToString(idx)
		rv.SetString(s)
	case reflect.Slice:
		if t.Elem().Kind() == reflect.Uint8 {
			if tp != lua.TypeString {
				return 0, mismatch(nil)
			}
			s, _ := l.ToString(idx)
			rv.SetBytes([]byte(s))
			return 1, nil
		}
		if tp != lua.TypeTable {
			return 0, mismatch(nil)
		}
		if err := readSlice(l, idx, rv, cb); err != nil {
			return 0, err
		}
	case reflect.Map:
		if tp != lua.TypeTable {
			return 0, mismatch(nil)
		}
		if err := readMap(l, idx, rv, cb); err != nil {
			return 0, err
		}
	default:
		return 0, mismatch(errors.New("unsupported type"))
	}
	return 1, nil
}

// readInteger reads a Lua integer or a float with an exact integer representation.
// Strings are not converted.
func readInteger(l *lua.State, idx int) (int64, error) {
	if l.Type(idx) != lua.TypeNumber {
		return 0, errNotNumber
	}
	n, ok := l.ToInteger(idx)
	if !ok {
		return 0, errNoIntegerRep
	}
	return n, nil
}

func readSlice(l *lua.State, idx int, rv reflect.Value, cb *Callback) error {
	n := int(l.RawLen(idx))
	s := reflect.MakeSlice(rv.Type(), n, n)
	for i := range n {
		if !l.CheckStack(3) {
			return errStackFull
		}
		l.RawIndex(idx, int64(i+1))
		_, err := readValue(l, l.Top(), s.Index(i), cb)
		l.Pop(1)
		if err != nil {
			return prependPath(err, fmt.Sprintf("[%d]", i+1))
		}
	}
	rv.Set(s)
	return nil
}

func readMap(l *lua.State, idx int, rv reflect.Value, cb *Callback) error {
	t := rv.Type()
	m := reflect.MakeMap(t)
	l.PushNil()
	for l.Next(idx) {
		if l.Type(-2) != lua.TypeString {
			err := &DecodeError{
				GoType:  t.Key(),
				LuaType: l.Type(-2),
				Err:     errors.New("table key is not a string"),
			}
			l.Pop(2)
			return err
		}
		k, _ := l.ToString(-2)
		if !l.CheckStack(3) {
			l.Pop(2)
			return errStackFull
		}
		v := reflect.New(t.Elem()).Elem()
		_, err := readValue(l, l.Top(), v, cb)
		l.Pop(1)
		if err != nil {
			l.Pop(1)
			return prependPath(err, fmt.Sprintf("[%q]", k))
		}
		m.SetMapIndex(reflect.ValueOf(k).Convert(t.Key()), v)
	}
	rv.Set(m)
	return nil
}

func prependPath(err error, elem string) error {
	var de *DecodeError
	if errors.As(err, &de) {
		de.Path = elem + de.Path
	}
	return err
}

// pushValue encodes rv onto the stack.
// cb is nil outside of a callback.
func pushValue(l *lua.State, rv reflect.Value, cb *Callback) (int, error) {
	if !l.CheckStack(3) {
		return 0, errStackFull
	}
	t := rv.Type()
	switch {
	case t.Implements(callbackPusherType):
		if cb == nil {
			return 0, ErrOutsideCallback
		}
		return rv.Interface().(CallbackPusher).PushCallback(cb)
	case t.Implements(pusherType):
		return rv.Interface().(Pusher).PushLua(l)
	case reflect.PointerTo(t).Implements(pusherType):
		p := reflect.New(t)
		p.Elem().Set(rv)
		return p.Interface().(Pusher).PushLua(l)
	case t.Implements(callableType):
		if rv.IsNil() {
			l.PushNil()
			return 1, nil
		}
		rv.Interface().(callable).pushFunction(l)
		return 1, nil
	case t == luaFunctionType:
		if rv.IsNil() {
			l.PushNil()
			return 1, nil
		}
		l.PushGoFunction(rv.Interface().(lua.Function), false, nil)
		return 1, nil
	case t == nilType:
		l.PushNil()
		return 1, nil
	case isOptional(t):
		if !rv.Field(1).Bool() {
			l.PushNil()
			return 1, nil
		}
		return pushValue(l, rv.Field(0), cb)
	case isTuple(t):
		n := 0
		for i := range rv.NumField() {
			ni, err := pushValue(l, rv.Field(i), cb)
			if err != nil {
				l.Pop(n)
				return 0, err
			}
			n += ni
		}
		return n, nil
	}

	switch t.Kind() {
	case reflect.Bool:
		l.PushBoolean(rv.Bool())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		l.PushInteger(rv.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		if u := rv.Uint(); u <= math.MaxInt64 {
			l.PushInteger(int64(u))
		} else {
			l.PushNumber(float64(u))
		}
	case reflect.Float32, reflect.Float64:
		l.PushNumber(rv.Float())
	case reflect.String:
		l.PushString(rv.String())
	case reflect.Slice:
		if t.Elem().Kind() == reflect.Uint8 {
			l.PushString(string(rv.Bytes()))
			return 1, nil
		}
		n := rv.Len()
		l.CreateTable(n, 0)
		for i := range n {
			if _, err := pushValue(l, rv.Index(i), cb); err != nil {
				l.Pop(1)
				return 0, err
			}
			l.RawSetIndex(-2, int64(i+1))
		}
	case reflect.Map:
		l.CreateTable(0, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			if _, err := pushValue(l, iter.Value(), cb); err != nil {
				l.Pop(1)
				return 0, err
			}
			l.RawSetField(-2, iter.Key().String())
		}
	default:
		return 0, fmt.Errorf("luabind: cannot push %v", t)
	}
	return 1, nil
}

// slotCount returns the number of stack slots
// that a value of type t occupies as an argument.
func slotCount(t reflect.Type) int {
	switch {
	case t == callbackPtrType:
		return 0
	case isTuple(t):
		n := 0
		for i := range t.NumField() {
			n += slotCount(t.Field(i).Type)
		}
		return n
	default:
		return 1
	}
}

// checkRead reports whether values of type t can be decoded.
// inArgs permits *Callback, which is only meaningful as a parameter.
func checkRead(t reflect.Type, inArgs bool) error {
	switch {
	case t == callbackPtrType:
		if !inArgs {
			return fmt.Errorf("luabind: %v can only be a function parameter", t)
		}
		return nil
	case isTuple(t):
		for i := range t.NumField() {
			if err := checkRead(t.Field(i).Type, inArgs); err != nil {
				return err
			}
		}
		return nil
	case reflect.PointerTo(t).Implements(readerType), t == nilType:
		return nil
	case isOptional(t):
		return checkSingle(t.Field(0).Type, func(t reflect.Type) error { return checkRead(t, false) })
	}
	switch t.Kind() {
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64,
		reflect.String:
		return nil
	case reflect.Slice:
		if t.Elem().Kind() == reflect.Uint8 {
			return nil
		}
		return checkSingle(t.Elem(), func(t reflect.Type) error { return checkRead(t, false) })
	case reflect.Map:
		if t.Key().Kind() != reflect.String {
			return fmt.Errorf("luabind: cannot read %v: map keys must be strings", t)
		}
		return checkSingle(t.Elem(), func(t reflect.Type) error { return checkRead(t, false) })
	default:
		return fmt.Errorf("luabind: cannot read %v", t)
	}
}

// checkPush reports whether values of type t can be encoded.
func checkPush(t reflect.Type) error {
	switch {
	case isResult(t):
		return checkPush(reflect.Zero(t).Interface().(resultValue).valueType())
	case t.Implements(callbackPusherType),
		t.Implements(pusherType),
		reflect.PointerTo(t).Implements(pusherType),
		t.Implements(callableType),
		t == luaFunctionType,
		t == nilType:
		return nil
	case isOptional(t):
		return checkSingle(t.Field(0).Type, checkPush)
	case isTuple(t):
		for i := range t.NumField() {
			if err := checkPush(t.Field(i).Type); err != nil {
				return err
			}
		}
		return nil
	}
	switch t.Kind() {
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64,
		reflect.String:
		return nil
	case reflect.Slice:
		if t.Elem().Kind() == reflect.Uint8 {
			return nil
		}
		return checkSingle(t.Elem(), checkPush)
	case reflect.Map:
		if t.Key().Kind() != reflect.String {
			return fmt.Errorf("luabind: cannot push %v: map keys must be strings", t)
		}
		return checkSingle(t.Elem(), checkPush)
	default:
		return fmt.Errorf("luabind: cannot push %v", t)
	}
}

// checkSingle checks an element type that must occupy exactly one value.
func checkSingle(t reflect.Type, check func(reflect.Type) error) error {
	if isTuple(t) || isResult(t) {
		return fmt.Errorf("luabind: %v cannot be nested", t)
	}
	return check(t)
}

func isTuple(t reflect.Type) bool {
	return t.Kind() == reflect.Struct && t.Implements(tupleType)
}

func isOptional(t reflect.Type) bool {
	return t.Kind() == reflect.Struct && t.Implements(optionalType)
}

func isResult(t reflect.Type) bool {
	return t.Kind() == reflect.Struct && t.Implements(resultType)
}
