// Copyright 2026 The luabind Authors
// SPDX-License-Identifier: MIT

package main

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"runtime"

	"github.com/spf13/cobra"
	"luabind.256lights.llc/pkg/lua"
	"luabind.256lights.llc/pkg/luabind"
	"zombiezen.com/go/log"
)

// luabindVersion is the version string filled in by the linker (e.g. "1.2.3").
var luabindVersion string

func newVersionCommand() *cobra.Command {
	c := &cobra.Command{
		Use:                   "version",
		Short:                 "show version information",
		DisableFlagsInUseLine: true,
		Args:                  cobra.NoArgs,
		SilenceErrors:         true,
		SilenceUsage:          true,
	}
	c.RunE = func(cmd *cobra.Command, args []string) error {
		return runVersion(cmd.Context())
	}
	return c
}

func runVersion(ctx context.Context) error {
	firstLine := "luabind"
	if luabindVersion == "" {
		firstLine += " (version unknown)"
	} else {
		firstLine += " version " + luabindVersion
	}

	fmt.Printf("%s\nLua:          %s\nMax arity:    %d\nGo:           %s\nSystem:       %s/%s\nCPUs:         %d\n",
		firstLine, lua.Release, luabind.MaxArity, runtime.Version(), runtime.GOOS, runtime.GOARCH, runtime.NumCPU())

	if runtime.GOOS == "linux" {
		output, err := exec.CommandContext(ctx, "uname", "-srv").Output()
		if err != nil {
			log.Errorf(ctx, "uname: %v", err)
		} else {
			output = bytes.TrimSuffix(output, []byte("\n"))
			fmt.Printf("OS:           %s\n", output)
		}
	}

	return nil
}
