// Copyright 2026 The luabind Authors
// SPDX-License-Identifier: MIT

// Package hostlib provides Lua modules implemented in Go.
// Each module is a global table of functions
// wrapped with [luabind.256lights.llc/pkg/luabind].
package hostlib

import (
	"context"
	"fmt"
	"io"
	"slices"

	"luabind.256lights.llc/pkg/internal/xio"
	"luabind.256lights.llc/pkg/lua"
	"luabind.256lights.llc/pkg/luabind"
	"zombiezen.com/go/log"
)

// Module names accepted by [Options].
const (
	FSModule   = "fs"
	JSONModule = "json"
	UUIDModule = "uuid"
	KVModule   = "kv"
	URIModule  = "uri"
	LogModule  = "log"
	OutModule  = "out"
)

// Modules is the list of every module name in the order [Open] registers them.
var Modules = []string{
	FSModule,
	JSONModule,
	UUIDModule,
	KVModule,
	URIModule,
	LogModule,
	OutModule,
}

// Options is the set of parameters to [Open].
type Options struct {
	// Enabled is the allow-list of modules to register.
	// If nil, every module is registered.
	Enabled []string

	// Dir is the directory that fs functions are confined to.
	// If empty, the fs module is not registered.
	Dir string
	// KVPath is the path to the SQLite database backing the kv module.
	// If empty, the kv module is not registered.
	KVPath string
	// Output is the destination of out.write.
	// Open takes ownership of Output:
	// it is closed once the Lua state no longer references it,
	// or by Open itself if the out module is not registered.
	// If nil, the out module is not registered.
	Output io.WriteCloser
}

func (opts *Options) enabled(name string) bool {
	return opts == nil || opts.Enabled == nil || slices.Contains(opts.Enabled, name)
}

// Open registers the enabled modules as globals in l.
// ctx is used for log output from the log module and from finalizers.
func Open(ctx context.Context, l *lua.State, opts *Options) (err error) {
	if opts == nil {
		opts = new(Options)
	}
	var output io.WriteCloser
	if opts.Output != nil {
		output = onceWriteCloser{opts.Output, xio.CloseOnce(opts.Output)}
	}
	outputOwned := false
	defer func() {
		if output != nil && !outputOwned {
			if cerr := output.Close(); cerr != nil {
				log.Warnf(ctx, "Closing unused output: %v", cerr)
			}
		}
	}()
	for _, name := range opts.Enabled {
		if !slices.Contains(Modules, name) {
			return fmt.Errorf("open host libraries: unknown module %q", name)
		}
	}
	openers := []struct {
		name string
		open func() error
	}{
		{FSModule, func() error {
			if opts.Dir == "" {
				return nil
			}
			return openFS(l, opts.Dir)
		}},
		{JSONModule, func() error { return openJSON(l) }},
		{UUIDModule, func() error { return openUUID(l) }},
		{KVModule, func() error {
			if opts.KVPath == "" {
				return nil
			}
			return openKV(ctx, l, opts.KVPath)
		}},
		{URIModule, func() error { return openURI(l) }},
		{LogModule, func() error { return openLog(ctx, l) }},
		{OutModule, func() error {
			if output == nil {
				return nil
			}
			if err := openOut(l, output); err != nil {
				return err
			}
			outputOwned = true
			return nil
		}},
	}
	for _, o := range openers {
		if !opts.enabled(o.name) {
			continue
		}
		if err := o.open(); err != nil {
			return fmt.Errorf("open host libraries: %s: %w", o.name, err)
		}
		log.Debugf(ctx, "Registered Lua module %s", o.name)
	}
	return nil
}

// registerShared registers funcs as the module name.
// refs are the references captured by funcs.
// If registration fails, refs are released immediately
// instead of when the Lua state collects the functions.
func registerShared(l *lua.State, name string, funcs map[string]any, refs ...io.Closer) error {
	err := luabind.Register(l, name, funcs)
	if err != nil {
		for _, ref := range refs {
			ref.Close()
		}
	}
	return err
}

// onceWriteCloser is an [io.WriteCloser] whose Close has effect only once.
type onceWriteCloser struct {
	io.Writer
	io.Closer
}
