// Copyright 2026 The luabind Authors
// SPDX-License-Identifier: MIT

package hostlib

import (
	"github.com/google/uuid"
	"luabind.256lights.llc/pkg/lua"
	"luabind.256lights.llc/pkg/luabind"
)

func openUUID(l *lua.State) error {
	return luabind.Register(l, UUIDModule, map[string]any{
		"new": luabind.Func0(func() luabind.Result[string] {
			u, err := uuid.NewRandom()
			if err != nil {
				return luabind.Fail[string](err)
			}
			return luabind.Ok(u.String())
		}),
		// parse returns the canonical form of s and its version.
		"parse": luabind.Func1(func(s string) luabind.Result[luabind.Tuple2[string, int]] {
			u, err := uuid.Parse(s)
			if err != nil {
				return luabind.Fail[luabind.Tuple2[string, int]](err)
			}
			return luabind.Ok(luabind.MakeTuple2(u.String(), int(u.Version())))
		}),
	})
}
