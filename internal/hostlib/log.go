// Copyright 2026 The luabind Authors
// SPDX-License-Identifier: MIT

package hostlib

import (
	"context"

	"luabind.256lights.llc/pkg/lua"
	"luabind.256lights.llc/pkg/luabind"
	"zombiezen.com/go/log"
)

func openLog(ctx context.Context, l *lua.State) error {
	logFunc := func(logf func(context.Context, string, ...any)) any {
		return luabind.Func2(func(cb *luabind.Callback, msg string) luabind.Tuple0 {
			logf(ctx, "%s%s", cb.Where(), msg)
			return luabind.Tuple0{}
		})
	}
	return luabind.Register(l, LogModule, map[string]any{
		"debug": logFunc(log.Debugf),
		"info":  logFunc(log.Infof),
		"warn":  logFunc(log.Warnf),
		"error": logFunc(log.Errorf),
	})
}
