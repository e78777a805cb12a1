// Copyright 2026 The luabind Authors
// SPDX-License-Identifier: MIT

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"luabind.256lights.llc/pkg/internal/hostlib"
	"luabind.256lights.llc/pkg/internal/testcontext"
	"luabind.256lights.llc/pkg/lua"
)

func TestRunScript(t *testing.T) {
	ctx, cancel := testcontext.New(t)
	defer cancel()

	tests := []struct {
		name    string
		source  string
		asJSON  bool
		printed string
		values  []string
		wantErr bool
	}{
		{
			name:   "Values",
			source: `return 1, "two", nil, true`,
			values: []string{"1", "two", "nil", "true"},
		},
		{
			name:    "Print",
			source:  `print("hello", 42)`,
			printed: "hello\t42\n",
		},
		{
			name:   "HostLibrary",
			source: `return json.compact('{ "a" : 1 }')`,
			values: []string{`{"a":1}`},
		},
		{
			name:   "JSON",
			source: `return {1, 2, {x = "y"}}, 1.5, {}`,
			asJSON: true,
			values: []string{`[1,2,{"x":"y"}]`, "1.5", "[]"},
		},
		{
			name:    "JSONCycle",
			source:  `local t = {}; t.t = t; return t`,
			asJSON:  true,
			wantErr: true,
		},
		{
			name:    "JSONFunction",
			source:  `return print`,
			asJSON:  true,
			wantErr: true,
		},
		{
			name:    "RuntimeError",
			source:  `error("oh no")`,
			wantErr: true,
		},
		{
			name:    "SyntaxError",
			source:  `return +`,
			wantErr: true,
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			result := new(scriptResult)
			s := script{chunkName: "=(test)", source: test.source}
			err := runScript(ctx, s, &hostlib.Options{}, test.asJSON, result)
			if err != nil {
				if !test.wantErr {
					t.Fatal(err)
				}
				return
			}
			if test.wantErr {
				t.Fatal("runScript did not return an error")
			}
			if got := result.printed.String(); got != test.printed {
				t.Errorf("printed %q; want %q", got, test.printed)
			}
			if diff := cmp.Diff(test.values, result.values); diff != "" {
				t.Errorf("values (-want +got):\n%s", diff)
			}
		})
	}
}

func TestRunScriptOutput(t *testing.T) {
	ctx, cancel := testcontext.New(t)
	defer cancel()
	path := filepath.Join(t.TempDir(), "out.txt")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}

	s := script{chunkName: "=(test)", source: `out.write("a"); out.write("b")`}
	if err := runScript(ctx, s, &hostlib.Options{Output: f}, false, new(scriptResult)); err != nil {
		t.Fatal(err)
	}
	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "ab" {
		t.Errorf("output = %q; want %q", got, "ab")
	}
	// Closed when the state was.
	if err := f.Close(); err == nil {
		t.Error("output file was not closed")
	}
}

func TestEncodeJSONObject(t *testing.T) {
	l := new(lua.State)
	defer l.Close()
	if err := l.LoadString(`return {name = "x", tags = {"a", "b"}, n = 3}`, "=(test)", "t"); err != nil {
		t.Fatal(err)
	}
	if err := l.Call(0, 1, 0); err != nil {
		t.Fatal(err)
	}
	buf := new(bytes.Buffer)
	if err := encodeJSON(buf, l, -1); err != nil {
		t.Fatal(err)
	}
	got := strings.TrimSpace(buf.String())
	// Key order follows the table's traversal order.
	for _, member := range []string{`"name":"x"`, `"tags":["a","b"]`, `"n":3`} {
		if !strings.Contains(got, member) {
			t.Errorf("encodeJSON = %s; missing %s", got, member)
		}
	}
	if l.Top() != 1 {
		t.Errorf("l.Top() = %d; want 1", l.Top())
	}

	l.SetTop(0)
	if err := l.LoadString(`return {[true] = 1}`, "=(test)", "t"); err != nil {
		t.Fatal(err)
	}
	if err := l.Call(0, 1, 0); err != nil {
		t.Fatal(err)
	}
	if err := encodeJSON(new(bytes.Buffer), l, -1); err == nil {
		t.Error("encodeJSON accepted a boolean key")
	}
	if l.Top() != 1 {
		t.Errorf("after error, l.Top() = %d; want 1", l.Top())
	}
}
