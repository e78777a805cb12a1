// Copyright 2026 The luabind Authors
// SPDX-License-Identifier: MIT

package luabind

// tuple is implemented by the TupleN types.
// A tuple read as an argument consumes one stack slot per element,
// and a tuple pushed as a result pushes one value per element, left to right.
type tuple interface {
	isTuple()
}
