// Copyright 2026 The luabind Authors
// SPDX-License-Identifier: MIT

package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"
	"luabind.256lights.llc/pkg/internal/hostlib"
	"luabind.256lights.llc/pkg/lua"
	"zombiezen.com/go/log"
)

func newREPLCommand(g *globalConfig) *cobra.Command {
	c := &cobra.Command{
		Use:                   "repl",
		Short:                 "read and evaluate Lua statements interactively",
		DisableFlagsInUseLine: true,
		Args:                  cobra.NoArgs,
		SilenceErrors:         true,
		SilenceUsage:          true,
	}
	c.RunE = func(cmd *cobra.Command, args []string) error {
		return runREPL(cmd.Context(), g)
	}
	return c
}

func runREPL(ctx context.Context, g *globalConfig) error {
	l := new(lua.State)
	defer func() {
		if err := l.Close(); err != nil {
			log.Errorf(ctx, "%v", err)
		}
	}()
	if err := lua.OpenLibrariesTo(l, os.Stdout); err != nil {
		return err
	}
	if err := hostlib.Open(ctx, l, g.hostOptions()); err != nil {
		return err
	}
	interactive := term.IsTerminal(int(os.Stdin.Fd()))
	if interactive {
		fmt.Fprintln(os.Stderr, lua.Copyright)
	}
	return repl(ctx, l, os.Stdin, os.Stdout, os.Stderr, interactive)
}

// repl evaluates each line of in.
// When interactive, repl prompts on errOut and reports errors there;
// otherwise the first error stops it.
func repl(ctx context.Context, l *lua.State, in io.Reader, out, errOut io.Writer, interactive bool) error {
	scanner := bufio.NewScanner(in)
	for {
		if interactive {
			fmt.Fprint(errOut, "> ")
		}
		if !scanner.Scan() {
			break
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		if err := evalLine(l, line, out); err != nil {
			if !interactive {
				return err
			}
			fmt.Fprintln(errOut, err)
		}
	}
	if interactive {
		fmt.Fprintln(errOut)
	}
	return scanner.Err()
}

// evalLine runs line as an expression if it parses as one
// or as a statement otherwise, then prints any results.
func evalLine(l *lua.State, line string, out io.Writer) error {
	top := l.Top()
	defer l.SetTop(top)
	if err := l.LoadString("return "+line, "=stdin", "t"); err != nil {
		l.SetTop(top)
		if err := l.LoadString(line, "=stdin", "t"); err != nil {
			return err
		}
	}
	if err := l.Call(0, lua.MultipleReturns, 0); err != nil {
		return err
	}
	values, err := formatResults(l, top+1, l.Top(), false)
	if err != nil {
		return err
	}
	if len(values) > 0 {
		_, err = fmt.Fprintln(out, strings.Join(values, "\t"))
	}
	return err
}
