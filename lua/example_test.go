// Copyright 2023 Ross Light
// SPDX-License-Identifier: MIT

package lua_test

import (
	"fmt"
	"log"

	"luabind.256lights.llc/pkg/lua"
)

func Example() {
	// Create an execution environment
	// and make the standard libraries available.
	state := new(lua.State)
	defer state.Close()
	if err := lua.OpenLibraries(state); err != nil {
		log.Fatal(err)
	}

	// Load Lua code as a chunk/function.
	// Calling this function then executes it.
	const luaSource = `print("Hello, World!")`
	if err := state.LoadString(luaSource, luaSource, "t"); err != nil {
		log.Fatal(err)
	}
	if err := state.Call(0, 0, 0); err != nil {
		log.Fatal(err)
	}
	// Output:
	// Hello, World!
}

func ExampleState_Next() {
	// Create an execution environment.
	state := new(lua.State)
	defer state.Close()

	// Create a table with a single pair to print.
	state.CreateTable(0, 1)
	state.PushString("bar")
	state.RawSetField(-2, "foo")

	// Iterate over table.
	tableIndex := state.AbsIndex(-1)
	state.PushNil()
	for state.Next(tableIndex) {
		// Format key at index -2.
		// ToString does not modify the stack,
		// so it is safe to call on the key.
		k, _ := lua.ToString(state, -2)

		// Format the value at index -1.
		v, _ := lua.ToString(state, -1)

		fmt.Printf("%s - %s\n", k, v)

		// Remove value, keeping key for the next iteration.
		state.Pop(1)
	}
	// Output:
	// foo - bar
}

func ExampleState_PushGoFunction() {
	state := new(lua.State)
	defer state.Close()

	state.PushGoFunction(func(l *lua.State) (int, error) {
		n, err := lua.CheckInteger(l, 1)
		if err != nil {
			return 0, err
		}
		l.PushInteger(n * 2)
		return 1, nil
	}, false, nil)
	state.PushInteger(21)
	if err := state.Call(1, 1, 0); err != nil {
		log.Fatal(err)
	}
	n, _ := state.ToInteger(-1)
	fmt.Println(n, state.ClosureBlocks())
	// Output:
	// 42 0
}
