// Copyright 2026 The luabind Authors
// SPDX-License-Identifier: MIT

package hostlib

import (
	"net/url"

	"luabind.256lights.llc/pkg/lua"
	"luabind.256lights.llc/pkg/luabind"
	"zombiezen.com/go/uritemplate"
)

func openURI(l *lua.State) error {
	return luabind.Register(l, URIModule, map[string]any{
		// expand expands an RFC 6570 URI template.
		"expand": luabind.Func2(func(tmpl string, vars luabind.Optional[map[string]string]) luabind.Result[string] {
			return luabind.Try(uritemplate.Expand(tmpl, vars.Value))
		}),
		// resolve resolves ref against base.
		"resolve": luabind.Func2(func(base, ref string) luabind.Result[string] {
			b, err := url.Parse(base)
			if err != nil {
				return luabind.Fail[string](err)
			}
			r, err := url.Parse(ref)
			if err != nil {
				return luabind.Fail[string](err)
			}
			return luabind.Ok(b.ResolveReference(r).String())
		}),
	})
}
