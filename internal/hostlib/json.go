// Copyright 2026 The luabind Authors
// SPDX-License-Identifier: MIT

package hostlib

import (
	"github.com/go-json-experiment/json/jsontext"
	"luabind.256lights.llc/pkg/lua"
	"luabind.256lights.llc/pkg/luabind"
)

func openJSON(l *lua.State) error {
	return luabind.Register(l, JSONModule, map[string]any{
		"valid": luabind.Func1(func(s string) bool {
			return jsontext.Value(s).IsValid()
		}),
		"format": luabind.Func2(func(s string, indent luabind.Optional[string]) luabind.Result[string] {
			var opts []jsontext.Options
			if indent.Present {
				opts = append(opts, jsontext.WithIndent(indent.Value))
			}
			return reformatJSON(s, func(v *jsontext.Value) error { return v.Indent(opts...) })
		}),
		"compact": luabind.Func1(func(s string) luabind.Result[string] {
			return reformatJSON(s, func(v *jsontext.Value) error { return v.Compact() })
		}),
		"canonical": luabind.Func1(func(s string) luabind.Result[string] {
			return reformatJSON(s, func(v *jsontext.Value) error { return v.Canonicalize() })
		}),
	})
}

func reformatJSON(s string, f func(*jsontext.Value) error) luabind.Result[string] {
	v := jsontext.Value(s)
	if err := f(&v); err != nil {
		return luabind.Fail[string](err)
	}
	return luabind.Ok(string(v))
}
