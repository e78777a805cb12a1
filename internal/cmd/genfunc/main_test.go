// Copyright 2026 The luabind Authors
// SPDX-License-Identifier: MIT

package main

import (
	"bytes"
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestGenerateUpToDate(t *testing.T) {
	want, err := os.ReadFile(filepath.Join("..", "..", "..", "luabind", "function_gen.go"))
	if err != nil {
		t.Fatal(err)
	}
	got, err := generate(10)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(string(want), string(got)); diff != "" {
		t.Errorf("function_gen.go is stale; run go generate (-want +got):\n%s", diff)
	}
}

func TestGenerateDeclarations(t *testing.T) {
	for _, n := range []int{0, 1, 3} {
		src, err := generate(n)
		if err != nil {
			t.Errorf("generate(%d): %v", n, err)
			continue
		}
		f, err := parser.ParseFile(token.NewFileSet(), "function_gen.go", src, 0)
		if err != nil {
			t.Errorf("generate(%d) produced invalid Go: %v", n, err)
			continue
		}
		for i := 0; i <= n; i++ {
			for _, prefix := range []string{"Tuple", "Function", "Func", "Bind"} {
				name := prefix + strconv.Itoa(i)
				if f.Scope.Lookup(name) == nil {
					t.Errorf("generate(%d) does not declare %s", n, name)
				}
			}
		}
		if f.Scope.Lookup("Func"+strconv.Itoa(n+1)) != nil {
			t.Errorf("generate(%d) declares Func%d", n, n+1)
		}
		if !bytes.HasPrefix(src, []byte("// Code generated by genfunc. DO NOT EDIT.\n")) {
			t.Errorf("generate(%d) is missing the generated code header", n)
		}
	}

	if _, err := generate(-1); err == nil {
		t.Error("generate(-1) did not return an error")
	}
}
