// Copyright 2026 The luabind Authors
// SPDX-License-Identifier: MIT

package hostlib

import (
	"io"

	"luabind.256lights.llc/pkg/lua"
	"luabind.256lights.llc/pkg/luabind"
)

// openOut registers the out module.
// w is closed when the Lua state drops out.write.
func openOut(l *lua.State, w io.WriteCloser) error {
	return luabind.Register(l, OutModule, map[string]any{
		"write": luabind.Bind1(w, func(w *io.WriteCloser, s []byte) luabind.Result[int] {
			return luabind.Try((*w).Write(s))
		}),
	})
}
