// Copyright 2023 Ross Light
//
// Permission is hereby granted, free of charge, to any person obtaining a copy of
// this software and associated documentation files (the “Software”), to deal in
// the Software without restriction, including without limitation the rights to
// use, copy, modify, merge, publish, distribute, sublicense, and/or sell copies of
// the Software, and to permit persons to whom the Software is furnished to do so,
// subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED “AS IS”, WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY, FITNESS
// FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE AUTHORS OR
// COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER LIABILITY, WHETHER
// IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM, OUT OF OR IN
// CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE SOFTWARE.
//
// SPDX-License-Identifier: MIT

/*
Package lua provides low-level bindings for [Lua 5.4].

# Relationship to C API

This package attempts to be a mostly one-to-one mapping with the [Lua C API].
The methods on [State] are the primitive functions
(i.e. the library functions that start with "lua_").
Functions in this package mostly correspond to the [auxiliary library]
(i.e. the library functions that start with "luaL_"),
usually with Go-specific niceties.

Typed bindings of Go functions are provided by
[luabind.256lights.llc/pkg/luabind].

[Lua 5.4]: https://www.lua.org/versions.html#5.4
[Lua C API]: https://www.lua.org/manual/5.4/manual.html#4
[auxiliary library]: https://www.lua.org/manual/5.4/manual.html#5
*/
package lua

import (
	"io"
	"unsafe"

	"luabind.256lights.llc/pkg/internal/lua54"
)

// Version number.
const (
	VersionNum        = lua54.VersionNum
	VersionReleaseNum = lua54.VersionReleaseNum
)

// Version strings.
const (
	// Version is the version string without the final "release" number.
	Version = lua54.Version
	// Release is the full version string.
	Release = lua54.Release
	// Copyright is the full version string with a copyright notice.
	Copyright = lua54.Copyright
	// Authors is a string listing the authors of Lua.
	Authors = lua54.Authors

	VersionMajor   = lua54.VersionMajor
	VersionMinor   = lua54.VersionMinor
	VersionRelease = lua54.VersionRelease
)

// RegistryIndex is a pseudo-index to the [registry],
// a predefined table that can be used by any Go or C code
// to store whatever Lua values it needs to store.
//
// [registry]: https://www.lua.org/manual/5.4/manual.html#4.3
const RegistryIndex int = lua54.RegistryIndex

// MultipleReturns is the option for multiple returns in [State.Call].
const MultipleReturns int = lua54.MultipleReturns

// MinStack is the number of stack slots
// guaranteed to be available when a [Function] starts.
const MinStack = lua54.MinStack

// UpvalueIndex returns the pseudo-index that represents the i-th upvalue
// of the running function.
// If i is outside the range [1, 255], UpvalueIndex panics.
func UpvalueIndex(i int) int {
	return lua54.UpvalueIndex(i)
}

// Predefined keys in the registry.
const (
	// RegistryIndexMainThread is the index at which the registry has the main thread of the state.
	RegistryIndexMainThread int64 = lua54.RegistryIndexMainThread
	// RegistryIndexGlobals is the index at which the registry has the global environment.
	RegistryIndexGlobals int64 = lua54.RegistryIndexGlobals

	// LoadedTable is the key in the registry for the table of loaded modules.
	LoadedTable = lua54.LoadedTable
	// PreloadTable is the key in the registry for the table of preloaded loaders.
	PreloadTable = lua54.PreloadTable
)

// Type is an enumeration of Lua data types.
type Type lua54.Type

// TypeNone is the value returned from [State.Type]
// for a non-valid but acceptable index.
const TypeNone Type = Type(lua54.TypeNone)

// Value types.
const (
	TypeNil           Type = Type(lua54.TypeNil)
	TypeBoolean       Type = Type(lua54.TypeBoolean)
	TypeLightUserdata Type = Type(lua54.TypeLightUserdata)
	TypeNumber        Type = Type(lua54.TypeNumber)
	TypeString        Type = Type(lua54.TypeString)
	TypeTable         Type = Type(lua54.TypeTable)
	TypeFunction      Type = Type(lua54.TypeFunction)
	TypeUserdata      Type = Type(lua54.TypeUserdata)
	TypeThread        Type = Type(lua54.TypeThread)
)

// String returns the name of the type encoded by the value tp.
func (tp Type) String() string {
	return lua54.Type(tp).String()
}

// State represents a Lua execution thread.
// The zero value is a state with a single main thread,
// an empty stack, and an empty environment.
//
// Methods that take in stack indices have a notion of
// [valid and acceptable indices].
// If a method receives a stack index that is not within range,
// it will panic.
// Methods may also panic if there is insufficient stack space.
// Use [State.CheckStack]
// to ensure that the State has sufficient stack space before making calls,
// but note that any new State or called function
// will support pushing at least [MinStack] values.
//
// A State is not safe to use from multiple goroutines concurrently.
//
// [valid and acceptable indices]: https://www.lua.org/manual/5.4/manual.html#4.1.2
type State struct {
	state lua54.State
}

// Close releases all resources associated with the state.
// Finalizers of Go functions pushed with [State.PushGoFunction]
// run before Close returns.
// Making further calls to the State will create a new execution environment.
func (l *State) Close() error {
	return l.state.Close()
}

// AbsIndex converts the acceptable index idx
// into an equivalent absolute index
// (that is, one that does not depend on the stack size).
// AbsIndex panics if idx is not an acceptable index.
func (l *State) AbsIndex(idx int) int {
	return l.state.AbsIndex(idx)
}

// Top returns the index of the top element in the stack.
// Because indices start at 1,
// this result is equal to the number of elements in the stack;
// in particular, 0 means an empty stack.
func (l *State) Top() int {
	return l.state.Top()
}

// SetTop accepts any index, or 0, and sets the stack top to this index.
// If the new top is greater than the old one,
// then the new elements are filled with nil.
// If idx is 0, then all stack elements are removed.
func (l *State) SetTop(idx int) {
	l.state.SetTop(idx)
}

// Pop pops n elements from the stack.
func (l *State) Pop(n int) {
	l.state.Pop(n)
}

// PushValue pushes a copy of the element at the given index onto the stack.
func (l *State) PushValue(idx int) {
	l.state.PushValue(idx)
}

// CheckStack ensures that the stack has space for at least n extra elements,
// that is, that you can safely push up to n values into it.
// It returns false if it cannot fulfill the request.
func (l *State) CheckStack(n int) bool {
	return l.state.CheckStack(n)
}

// IsNumber reports if the value at the given index is a number
// or a string convertible to a number.
func (l *State) IsNumber(idx int) bool {
	return l.state.IsNumber(idx)
}

// IsInteger reports if the value at the given index is an integer
// (that is, the value is a number and is represented as an integer).
func (l *State) IsInteger(idx int) bool {
	return l.state.IsInteger(idx)
}

// Type returns the type of the value in the given valid index,
// or [TypeNone] for a non-valid but acceptable index.
func (l *State) Type(idx int) Type {
	return Type(l.state.Type(idx))
}

// IsNil reports if the value at the given index is nil.
func (l *State) IsNil(idx int) bool {
	return l.state.IsNil(idx)
}

// IsNoneOrNil reports if the index is not valid or the value at this index is nil.
func (l *State) IsNoneOrNil(idx int) bool {
	return l.state.IsNoneOrNil(idx)
}

// ToNumber converts the Lua value at the given index to a floating point number.
// The Lua value must be a number or a string convertible to a number;
// otherwise, ToNumber returns (0, false).
// ok is true if the operation succeeded.
func (l *State) ToNumber(idx int) (n float64, ok bool) {
	return l.state.ToNumber(idx)
}

// ToInteger converts the Lua value at the given index to a signed 64-bit integer.
// The Lua value must be an integer, a number, or a string convertible to an integer;
// otherwise, ToInteger returns (0, false).
// ok is true if the operation succeeded.
func (l *State) ToInteger(idx int) (n int64, ok bool) {
	return l.state.ToInteger(idx)
}

// ToBoolean converts the Lua value at the given index to a boolean value.
// Like all tests in Lua,
// ToBoolean returns true for any Lua value different from false and nil;
// otherwise it returns false.
func (l *State) ToBoolean(idx int) bool {
	return l.state.ToBoolean(idx)
}

// ToString converts the Lua value at the given index to a Go string.
// The Lua value must be a string or a number; otherwise, the function returns ("", false).
// If the value is a number, then ToString also changes the actual value in the stack to a string.
func (l *State) ToString(idx int) (s string, ok bool) {
	return l.state.ToString(idx)
}

// RawLen returns the raw "length" of the value at the given index:
// for strings, this is the string length;
// for tables, this is the result of the length operator ('#') with no metamethods;
// for userdata, this is the size of the block of memory allocated for the userdata.
// For other values, RawLen returns 0.
func (l *State) RawLen(idx int) uint64 {
	return l.state.RawLen(idx)
}

// PushNil pushes a nil value onto the stack.
func (l *State) PushNil() {
	l.state.PushNil()
}

// PushNumber pushes a floating point number onto the stack.
func (l *State) PushNumber(n float64) {
	l.state.PushNumber(n)
}

// PushInteger pushes an integer onto the stack.
func (l *State) PushInteger(n int64) {
	l.state.PushInteger(n)
}

// PushString pushes a string onto the stack.
func (l *State) PushString(s string) {
	l.state.PushString(s)
}

// PushBoolean pushes a boolean onto the stack.
func (l *State) PushBoolean(b bool) {
	l.state.PushBoolean(b)
}

// A Function is a callback for Lua function implemented in Go.
// A Go function receives its arguments from Lua in its stack in direct order
// (the first argument is pushed first).
// So, when the function starts,
// [State.Top] returns the number of arguments received by the function.
// The first argument (if any) is at index 1 and its last argument is at index [State.Top].
// To return values to Lua, a Go function just pushes them onto the stack,
// in direct order (the first result is pushed first),
// and returns in Go the number of results.
// Any other value in the stack below the results will be properly discarded by Lua.
// To raise an error, return a Go error
// and the string result of its Error() method will be used as the error object.
//
// A panic in a Function is converted into a Lua error,
// unless the panic value is an [Abort].
type Function func(*State) (int, error)

// Abort is a panic value that a [Function] can use
// to signal an unrecoverable inconsistency.
// Unlike other panics, an Abort is not converted into a Lua error:
// it terminates the process.
type Abort = lua54.Abort

func (f Function) internal() lua54.Function {
	// This should be safe because State and lua54.State are identical in layout.
	return *(*lua54.Function)(unsafe.Pointer(&f))
}

// PushClosure pushes a Go closure onto the stack.
// n is how many upvalues this function will have,
// popped off the top of the stack.
// (When there are multiple upvalues, the first value is pushed first.)
// If n is negative or greater than 254, then PushClosure panics.
//
// Under the hood, PushClosure uses the first Lua upvalue
// to store a reference to the Go function.
// [UpvalueIndex] already compensates for this,
// so the first upvalue you push with PushClosure
// can be accessed with UpvalueIndex(1).
func (l *State) PushClosure(n int, f Function) {
	l.state.PushClosure(n, f.internal())
}

// PushGoFunction pushes a Go function with no upvalues onto the stack.
//
// When block is false and finalize is nil,
// no userdata is allocated for the function:
// the Go function stays reachable until the state is closed.
// Otherwise the function is referenced from a userdata block
// that the garbage collector reclaims once the Lua function is unreachable.
// finalize, if not nil, is called exactly once:
// when the block is collected or when the state is closed,
// whichever comes first.
// finalize is never called while the function is running.
func (l *State) PushGoFunction(f Function, block bool, finalize func()) {
	l.state.PushGoFunction(f.internal(), block, finalize)
}

// ClosureBlocks returns the number of userdata blocks
// allocated for Go functions over the lifetime of the state.
func (l *State) ClosureBlocks() int64 {
	return l.state.ClosureBlocks()
}

// Global pushes onto the stack the value of the global with the given name,
// returning the type of that value.
//
// As in Lua, this function may trigger a metamethod on the globals table
// for the "index" event.
// If there is any error, Global catches it,
// pushes a single value on the stack (the error object),
// and returns an error with [TypeNil].
//
// If msgHandler is 0,
// then the error object returned on the stack is exactly the original error object.
// Otherwise, msgHandler is the stack index of a message handler.
// (This index cannot be a pseudo-index.)
func (l *State) Global(name string, msgHandler int) (Type, error) {
	tp, err := l.state.Global(name, msgHandler)
	return Type(tp), err
}

// Field pushes onto the stack the value t[k],
// where t is the value at the given index,
// and returns the type of the pushed value.
// As in Lua, this function may trigger a metamethod for the "index" event.
// Errors are handled as in [State.Global].
func (l *State) Field(idx int, k string, msgHandler int) (Type, error) {
	tp, err := l.state.Field(idx, k, msgHandler)
	return Type(tp), err
}

// RawIndex pushes onto the stack the value t[n],
// where t is the table at the given index.
// The access is raw, that is, it does not use the __index metavalue.
// Returns the type of the pushed value.
func (l *State) RawIndex(idx int, n int64) Type {
	return Type(l.state.RawIndex(idx, n))
}

// CreateTable creates a new empty table and pushes it onto the stack.
// nArr is a hint for how many elements the table will have as a sequence;
// nRec is a hint for how many other elements the table will have.
func (l *State) CreateTable(nArr, nRec int) {
	l.state.CreateTable(nArr, nRec)
}

// SetGlobal pops a value from the stack
// and sets it as the new value of the global with the given name.
// Errors are handled as in [State.Global].
func (l *State) SetGlobal(name string, msgHandler int) error {
	return l.state.SetGlobal(name, msgHandler)
}

// SetField does the equivalent to t[k] = v,
// where t is the value at the given index,
// v is the value on the top of the stack,
// and k is the given string.
// This function pops the value from the stack.
func (l *State) SetField(idx int, k string, msgHandler int) error {
	return l.state.SetField(idx, k, msgHandler)
}

// RawSetIndex does the equivalent of t[n] = v,
// where t is the table at the given index
// and v is the value on the top of the stack.
// This function pops the value from the stack.
func (l *State) RawSetIndex(idx int, n int64) {
	l.state.RawSetIndex(idx, n)
}

// RawSetField does the equivalent of t[k] = v without metamethods,
// where t is the table at the given index
// and v is the value on the top of the stack.
// This function pops the value from the stack.
func (l *State) RawSetField(idx int, k string) {
	l.state.RawSetField(idx, k)
}

// Call calls a function (or callable object) in protected mode.
//
// To do a call you must use the following protocol:
// first, the function to be called is pushed onto the stack;
// then, the arguments to the call are pushed in direct order;
// that is, the first argument is pushed first.
// Finally you call Call;
// nArgs is the number of arguments that you pushed onto the stack.
// When the function returns,
// all arguments and the function value are popped
// and the call results are pushed onto the stack.
// The number of results is adjusted to nResults,
// unless nResults is [MultipleReturns].
//
// If there is any error, Call catches it,
// pushes a single value on the stack (the error object),
// and returns an error.
// msgHandler is handled as in [State.Global].
func (l *State) Call(nArgs, nResults, msgHandler int) error {
	return l.state.Call(nArgs, nResults, msgHandler)
}

// Load loads a Lua chunk without running it.
// If there are no errors,
// Load pushes the compiled chunk as a Lua function on top of the stack.
// Otherwise, it pushes an error message.
//
// chunkName gives a name to the chunk,
// which is used for error messages and in debug information.
// mode is one of "t", "b", or "bt".
func (l *State) Load(r io.Reader, chunkName string, mode string) error {
	return l.state.Load(r, chunkName, mode)
}

// LoadString loads a Lua chunk from a string without running it.
// It behaves the same as [State.Load].
func (l *State) LoadString(s string, chunkName string, mode string) error {
	return l.state.LoadString(s, chunkName, mode)
}

// GC performs a full garbage-collection cycle.
func (l *State) GC() {
	l.state.GC()
}

// Next pops a key from the stack,
// and pushes a key–value pair from the table at the given index,
// the "next" pair after the given key.
// If there are no more elements in the table,
// then Next returns false and pushes nothing.
func (l *State) Next(idx int) bool {
	return l.state.Next(idx)
}

// Standard library names.
const (
	GName = lua54.GName

	CoroutineLibraryName = lua54.CoroutineLibraryName
	TableLibraryName     = lua54.TableLibraryName
	IOLibraryName        = lua54.IOLibraryName
	OSLibraryName        = lua54.OSLibraryName
	StringLibraryName    = lua54.StringLibraryName
	UTF8LibraryName      = lua54.UTF8LibraryName
	MathLibraryName      = lua54.MathLibraryName
	DebugLibraryName     = lua54.DebugLibraryName
	PackageLibraryName   = lua54.PackageLibraryName
)

// IsSyntax reports whether the error indicates a Lua syntax error.
func IsSyntax(err error) bool {
	code, ok := lua54.AsError(err)
	return ok && code == lua54.ErrSyntax
}

// IsRuntime reports whether the error indicates a Lua runtime error.
func IsRuntime(err error) bool {
	code, ok := lua54.AsError(err)
	return ok && code == lua54.ErrRun
}
