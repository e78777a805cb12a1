// Copyright 2026 The luabind Authors
// SPDX-License-Identifier: MIT

//go:build unix

package main

import (
	"iter"
	"os/signal"
	"slices"

	"go4.org/xdgdir"
	"golang.org/x/sys/unix"
)

// systemConfigDirs returns a sequence of configuration directory paths
// in increasing order of preference (i.e. later entries should override earlier entries).
func systemConfigDirs() iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, dir := range slices.Backward(xdgdir.Config.SearchPaths()) {
			if !yield(dir) {
				return
			}
		}
	}
}

// ignoreSIGPIPE makes writes to a closed pipe return an error
// instead of killing the process.
func ignoreSIGPIPE() {
	signal.Ignore(unix.SIGPIPE)
}
