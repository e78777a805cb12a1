// Copyright 2026 The luabind Authors
// SPDX-License-Identifier: MIT

package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"luabind.256lights.llc/pkg/internal/hostlib"
	"luabind.256lights.llc/pkg/lua"
	"zombiezen.com/go/log"
)

type runOptions struct {
	expr   string
	files  []string
	json   bool
	output string
}

func newRunCommand(g *globalConfig) *cobra.Command {
	c := &cobra.Command{
		Use:                   "run [options] [--expr CODE | FILE [...]]",
		Short:                 "run Lua scripts",
		DisableFlagsInUseLine: true,
		Args:                  cobra.ArbitraryArgs,
		SilenceErrors:         true,
		SilenceUsage:          true,
	}
	opts := new(runOptions)
	c.Flags().StringVarP(&opts.expr, "expr", "e", "", "run the Lua chunk `code` instead of files")
	c.Flags().BoolVar(&opts.json, "json", false, "print results as JSON")
	c.Flags().StringVarP(&opts.output, "out", "o", "", "create `path` as the destination of the out module")
	c.RunE = func(cmd *cobra.Command, args []string) error {
		opts.files = args
		return runRun(cmd.Context(), g, opts)
	}
	return c
}

// script is a Lua chunk to run.
type script struct {
	chunkName string
	source    string
}

// scriptResult is the output of a single script.
type scriptResult struct {
	printed bytes.Buffer
	// values holds the text of each result.
	values []string
}

func runRun(ctx context.Context, g *globalConfig, opts *runOptions) error {
	var scripts []script
	switch {
	case opts.expr != "" && len(opts.files) > 0:
		return fmt.Errorf("cannot pass both --expr and files")
	case opts.expr != "":
		scripts = append(scripts, script{chunkName: "=(command line)", source: opts.expr})
	case len(opts.files) == 0:
		return fmt.Errorf("no scripts given")
	default:
		for _, path := range opts.files {
			source, err := os.ReadFile(path)
			if err != nil {
				return err
			}
			scripts = append(scripts, script{chunkName: "@" + path, source: string(source)})
		}
	}
	if opts.output != "" && len(scripts) > 1 {
		return fmt.Errorf("--out can only be used with a single script")
	}

	results := make([]*scriptResult, len(scripts))
	grp, grpCtx := errgroup.WithContext(ctx)
	grp.SetLimit(runtime.GOMAXPROCS(0))
	for i, s := range scripts {
		results[i] = new(scriptResult)
		grp.Go(func() error {
			hostOpts := g.hostOptions()
			if opts.output != "" {
				f, err := os.Create(opts.output)
				if err != nil {
					return err
				}
				hostOpts.Output = f
			}
			return runScript(grpCtx, s, hostOpts, opts.json, results[i])
		})
	}
	err := grp.Wait()

	for _, r := range results {
		os.Stdout.Write(r.printed.Bytes())
		if len(r.values) > 0 {
			fmt.Println(strings.Join(r.values, "\t"))
		}
	}
	return err
}

// runScript runs s in a fresh Lua state and stores its output in result.
// hostOpts.Output, if set, is owned by runScript.
func runScript(ctx context.Context, s script, hostOpts *hostlib.Options, asJSON bool, result *scriptResult) error {
	l := new(lua.State)
	defer func() {
		if err := l.Close(); err != nil {
			log.Errorf(ctx, "%s: %v", s.chunkName, err)
		}
	}()
	if err := lua.OpenLibrariesTo(l, &result.printed); err != nil {
		closeOutput(hostOpts.Output)
		return err
	}
	if err := hostlib.Open(ctx, l, hostOpts); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	log.Debugf(ctx, "Running %s", s.chunkName)
	if err := l.LoadString(s.source, s.chunkName, "t"); err != nil {
		return err
	}
	if err := l.Call(0, lua.MultipleReturns, 0); err != nil {
		return err
	}
	values, err := formatResults(l, 1, l.Top(), asJSON)
	if err != nil {
		return fmt.Errorf("%s: %v", strings.TrimLeft(s.chunkName, "@="), err)
	}
	result.values = values
	return nil
}

// formatResults converts the stack values in [first, last] to text.
func formatResults(l *lua.State, first, last int, asJSON bool) ([]string, error) {
	if last < first {
		return nil, nil
	}
	values := make([]string, 0, last-first+1)
	for idx := first; idx <= last; idx++ {
		if asJSON {
			buf := new(bytes.Buffer)
			if err := encodeJSON(buf, l, idx); err != nil {
				return nil, fmt.Errorf("result #%d: %v", idx-first+1, err)
			}
			values = append(values, strings.TrimSuffix(buf.String(), "\n"))
			continue
		}
		s, err := lua.ToString(l, idx)
		if err != nil {
			return nil, fmt.Errorf("result #%d: %v", idx-first+1, err)
		}
		values = append(values, s)
	}
	return values, nil
}

func closeOutput(w io.Closer) {
	if w != nil {
		w.Close()
	}
}
