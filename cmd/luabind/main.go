// Copyright 2026 The luabind Authors
// SPDX-License-Identifier: MIT

// luabind runs Lua scripts with a set of host libraries implemented in Go.
package main

import (
	"context"
	"os"
	"os/signal"
	"sync"

	"github.com/spf13/cobra"
	"zombiezen.com/go/bass/sigterm"
	"zombiezen.com/go/log"
)

func main() {
	rootCommand := &cobra.Command{
		Use:           "luabind",
		Short:         "run Lua with Go host libraries",
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	g := defaultGlobalConfig()
	if err := g.mergeFiles(configPaths()); err != nil {
		initLogging(false)
		log.Errorf(context.Background(), "%v", err)
		os.Exit(1)
	}
	if err := g.mergeEnvironment(); err != nil {
		initLogging(false)
		log.Errorf(context.Background(), "%v", err)
		os.Exit(1)
	}

	rootCommand.PersistentFlags().BoolVar(&g.Debug, "debug", g.Debug, "show debugging output")
	rootCommand.PersistentFlags().StringVar(&g.KVPath, "kv", g.KVPath, "`path` to the key-value database for the kv module")
	rootCommand.PersistentFlags().StringVar(&g.Dir, "dir", g.Dir, "`dir`ectory the fs module is confined to")
	rootCommand.PersistentFlags().Var(newModuleListFlag(&g.Modules), "module", "host library `name` to enable (can be passed multiple times; default all)")

	rootCommand.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		initLogging(g.Debug)
		return g.validate()
	}

	rootCommand.AddCommand(
		newRunCommand(g),
		newREPLCommand(g),
		newVersionCommand(),
	)

	ignoreSIGPIPE()
	ctx, cancel := signal.NotifyContext(context.Background(), sigterm.Signals()...)
	err := rootCommand.ExecuteContext(ctx)
	cancel()
	if err != nil {
		initLogging(g.Debug)
		log.Errorf(context.Background(), "%v", err)
		os.Exit(1)
	}
}

var initLogOnce sync.Once

func initLogging(showDebug bool) {
	initLogOnce.Do(func() {
		minLogLevel := log.Info
		if showDebug {
			minLogLevel = log.Debug
		}
		log.SetDefault(&log.LevelFilter{
			Min:    minLogLevel,
			Output: log.New(os.Stderr, "luabind: ", log.StdFlags, nil),
		})
	})
}
