// Copyright 2026 The luabind Authors
// SPDX-License-Identifier: MIT

package main

import (
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/pflag"
)

func TestDefaultGlobalConfig(t *testing.T) {
	got := defaultGlobalConfig()
	if got.Dir == "" {
		t.Errorf("defaultGlobalConfig().Dir is empty")
	}
	if got.Modules != nil {
		t.Errorf("defaultGlobalConfig().Modules = %q; want nil", got.Modules)
	}
}

func TestGlobalConfigMergeFiles(t *testing.T) {
	dir := t.TempDir()
	var paths [3]string
	paths[0] = filepath.Join(dir, "config1.jwcc")
	config1 := `{
		// Comments and trailing commas are permitted.
		"debug": true,
		"kv": "/foo.db",
		"modules": ["json", "kv"],
	}` + "\n"
	if err := os.WriteFile(paths[0], []byte(config1), 0o666); err != nil {
		t.Fatal(err)
	}
	paths[1] = filepath.Join(dir, "config2.jwcc")
	if err := os.WriteFile(paths[1], []byte(`{"kv": "/bar.db", "modules": ["uuid"], "future": {"x": 1}}`+"\n"), 0o666); err != nil {
		t.Fatal(err)
	}
	paths[2] = filepath.Join(dir, "missing.jwcc")

	g := defaultGlobalConfig()
	if err := g.mergeFiles(slices.Values(paths[:])); err != nil {
		t.Error("mergeFiles:", err)
	}
	want := &globalConfig{
		Debug:   true,
		KVPath:  "/bar.db",
		Dir:     ".",
		Modules: []string{"uuid"},
	}
	if diff := cmp.Diff(want, g); diff != "" {
		t.Errorf("config (-want +got):\n%s", diff)
	}
}

func TestGlobalConfigMergeFilesError(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.jwcc")
	if err := os.WriteFile(path, []byte(`["not", "an", "object"]`), 0o666); err != nil {
		t.Fatal(err)
	}
	g := defaultGlobalConfig()
	if err := g.mergeFiles(slices.Values([]string{path})); err == nil {
		t.Error("mergeFiles did not return an error for a non-object config")
	}
}

func TestGlobalConfigMergeEnvironment(t *testing.T) {
	t.Setenv("LUABIND_KV", "/env.db")
	t.Setenv("LUABIND_DEBUG", "yes")
	g := defaultGlobalConfig()
	if err := g.mergeEnvironment(); err != nil {
		t.Fatal(err)
	}
	if g.KVPath != "/env.db" || !g.Debug {
		t.Errorf("after mergeEnvironment, config = %+v; want kv=/env.db, debug=true", g)
	}

	t.Setenv("LUABIND_DEBUG", "maybe")
	if err := g.mergeEnvironment(); err == nil {
		t.Error("mergeEnvironment did not reject LUABIND_DEBUG=maybe")
	}
}

func TestGlobalConfigValidate(t *testing.T) {
	g := defaultGlobalConfig()
	if err := g.validate(); err != nil {
		t.Errorf("default config: %v", err)
	}
	g.Modules = []string{"json", "teleport"}
	if err := g.validate(); err == nil {
		t.Error("validate accepted unknown module")
	}
}

func TestModuleListFlag(t *testing.T) {
	modules := []string{"fs"}
	fset := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fset.Var(newModuleListFlag(&modules), "module", "")
	if err := fset.Parse([]string{"--module=json,uuid", "--module", "json", "--module=kv"}); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"json", "uuid", "kv"}, modules); diff != "" {
		t.Errorf("modules (-want +got):\n%s", diff)
	}
}
