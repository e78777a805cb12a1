// Copyright 2026 The luabind Authors
// SPDX-License-Identifier: MIT

package main

import (
	"slices"
	"strings"
)

// moduleListFlag is the implementation of [github.com/spf13/pflag.Value]
// and [github.com/spf13/pflag.SliceValue] for the --module flag.
// The first value on the command line replaces any configured list.
// Duplicate entries are dropped.
type moduleListFlag struct {
	list    *[]string
	changed bool
}

func newModuleListFlag(list *[]string) *moduleListFlag {
	return &moduleListFlag{list: list}
}

func (f *moduleListFlag) Type() string { return "stringArray" }

func (f *moduleListFlag) String() string {
	if f.list == nil {
		return "[]"
	}
	return "[" + strings.Join(*f.list, ",") + "]"
}

func (f *moduleListFlag) Get() any { return *f.list }

func (f *moduleListFlag) GetSlice() []string {
	return slices.Clone(*f.list)
}

// Set adds the comma-separated names in s.
func (f *moduleListFlag) Set(s string) error {
	if !f.changed {
		*f.list = []string{}
		f.changed = true
	}
	for _, name := range strings.Split(s, ",") {
		f.add(strings.TrimSpace(name))
	}
	return nil
}

func (f *moduleListFlag) Append(s string) error {
	f.add(s)
	return nil
}

func (f *moduleListFlag) Replace(val []string) error {
	*f.list = []string{}
	f.changed = true
	for _, s := range val {
		f.add(s)
	}
	return nil
}

func (f *moduleListFlag) add(name string) {
	if name != "" && !slices.Contains(*f.list, name) {
		*f.list = append(*f.list, name)
	}
}
