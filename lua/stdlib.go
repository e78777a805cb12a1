// Copyright 2023 Ross Light
// SPDX-License-Identifier: MIT

package lua

import (
	"io"
	"os"

	"luabind.256lights.llc/pkg/internal/lua54"
)

// OpenLibraries opens all standard Lua libraries into the given state
// with their default settings.
func OpenLibraries(l *State) error {
	return OpenLibrariesTo(l, nil)
}

// OpenLibrariesTo opens all standard Lua libraries into the given state,
// redirecting the print function to out (or os.Stdout if nil).
func OpenLibrariesTo(l *State, out io.Writer) error {
	libs := []struct {
		name  string
		openf Function
	}{
		{GName, NewOpenBase(out)},
		{CoroutineLibraryName, OpenCoroutine},
		{TableLibraryName, OpenTable},
		{IOLibraryName, OpenIO},
		{OSLibraryName, OpenOS},
		{StringLibraryName, OpenString},
		{UTF8LibraryName, OpenUTF8},
		{MathLibraryName, OpenMath},
		{DebugLibraryName, OpenDebug},
		{PackageLibraryName, OpenPackage},
	}

	for _, lib := range libs {
		if err := Require(l, lib.name, true, lib.openf); err != nil {
			return err
		}
		l.Pop(1)
	}

	return nil
}

// NewOpenBase returns a [Function] that loads the basic library.
// The print function will write to the given out writer (or os.Stdout if nil).
// The resulting function is intended to be used as an argument to [Require].
func NewOpenBase(out io.Writer) Function {
	if out == nil {
		out = os.Stdout
	}
	return func(l *State) (int, error) {
		// Call stock luaopen_base.
		if _, err := callStock(l, lua54.PushOpenBase, 1); err != nil {
			return 0, err
		}

		// Override print function.
		l.PushGoFunction(func(l *State) (int, error) {
			n := l.Top()
			for i := 1; i <= n; i++ {
				s, err := ToString(l, i)
				if err != nil {
					return 0, err
				}
				if i > 1 {
					io.WriteString(out, "\t")
				}
				io.WriteString(out, s)
			}
			io.WriteString(out, "\n")
			return 0, nil
		}, false, nil)
		l.RawSetField(-2, "print")

		return 1, nil
	}
}

// OpenCoroutine loads the standard coroutine library.
// This function is intended to be used as an argument to [Require].
func OpenCoroutine(l *State) (int, error) {
	return callStock(l, lua54.PushOpenCoroutine, MultipleReturns)
}

// OpenTable loads the standard table library.
// This function is intended to be used as an argument to [Require].
func OpenTable(l *State) (int, error) {
	return callStock(l, lua54.PushOpenTable, MultipleReturns)
}

// OpenIO loads the standard io library.
// This function is intended to be used as an argument to [Require].
func OpenIO(l *State) (int, error) {
	return callStock(l, lua54.PushOpenIO, MultipleReturns)
}

// OpenOS loads the standard os library.
// This function is intended to be used as an argument to [Require].
func OpenOS(l *State) (int, error) {
	return callStock(l, lua54.PushOpenOS, MultipleReturns)
}

// OpenString loads the standard string library.
// This function is intended to be used as an argument to [Require].
func OpenString(l *State) (int, error) {
	return callStock(l, lua54.PushOpenString, MultipleReturns)
}

// OpenUTF8 loads the standard utf8 library.
// This function is intended to be used as an argument to [Require].
func OpenUTF8(l *State) (int, error) {
	return callStock(l, lua54.PushOpenUTF8, MultipleReturns)
}

// OpenMath loads the standard math library.
// This function is intended to be used as an argument to [Require].
func OpenMath(l *State) (int, error) {
	return callStock(l, lua54.PushOpenMath, MultipleReturns)
}

// OpenDebug loads the standard debug library.
// This function is intended to be used as an argument to [Require].
func OpenDebug(l *State) (int, error) {
	return callStock(l, lua54.PushOpenDebug, MultipleReturns)
}

// OpenPackage loads the standard package library.
// This function is intended to be used as an argument to [Require].
func OpenPackage(l *State) (int, error) {
	return callStock(l, lua54.PushOpenPackage, MultipleReturns)
}

// callStock calls a stock C library opener
// with the arguments currently on the stack.
func callStock(l *State, push func(*lua54.State), nResults int) (int, error) {
	nArgs := l.Top()
	push(&l.state)
	l.state.Insert(1)
	if err := l.Call(nArgs, nResults, 0); err != nil {
		return 0, err
	}
	return l.Top(), nil
}
