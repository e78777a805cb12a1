// Copyright 2026 The luabind Authors
// SPDX-License-Identifier: MIT

package main

import (
	"errors"
	"fmt"
	"iter"
	"os"
	"path/filepath"
	"slices"
	"strings"

	jsonv2 "github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"
	"github.com/tailscale/hujson"
	"luabind.256lights.llc/pkg/internal/hostlib"
)

type globalConfig struct {
	Debug   bool     `json:"debug"`
	KVPath  string   `json:"kv"`
	Dir     string   `json:"dir"`
	Modules []string `json:"modules"`
}

func defaultGlobalConfig() *globalConfig {
	return &globalConfig{
		Dir: ".",
	}
}

// configPaths returns the configuration files to read
// in increasing order of preference.
func configPaths() iter.Seq[string] {
	return func(yield func(string) bool) {
		for dir := range systemConfigDirs() {
			if !yield(filepath.Join(dir, "luabind", "config.jwcc")) {
				return
			}
		}
		for _, path := range filepath.SplitList(os.Getenv("LUABIND_CONFIG")) {
			if path == "" {
				continue
			}
			if !yield(path) {
				return
			}
		}
	}
}

func (g *globalConfig) mergeEnvironment() error {
	if path := os.Getenv("LUABIND_KV"); path != "" {
		g.KVPath = path
	}
	if debug := os.Getenv("LUABIND_DEBUG"); debug != "" {
		switch strings.ToLower(debug) {
		case "1", "true", "yes", "on":
			g.Debug = true
		case "0", "false", "no", "off":
			g.Debug = false
		default:
			return fmt.Errorf("LUABIND_DEBUG: invalid value %q", debug)
		}
	}
	return nil
}

func (g *globalConfig) mergeFiles(paths iter.Seq[string]) error {
	for path := range paths {
		huJSONData, err := os.ReadFile(path)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			return err
		}
		jsonData, err := hujson.Standardize(huJSONData)
		if err != nil {
			return fmt.Errorf("read %s: %v", path, err)
		}
		if err := jsonv2.Unmarshal(jsonData, g, jsonv2.RejectUnknownMembers(false)); err != nil {
			return fmt.Errorf("read %s: %v", path, err)
		}
	}

	return nil
}

// UnmarshalJSONFrom unmarshals the configuration object from the JSON decoder,
// merging any fields in the JSON object with existing values.
func (g *globalConfig) UnmarshalJSONFrom(in *jsontext.Decoder) error {
	tok, err := in.ReadToken()
	if err != nil {
		return err
	}
	if got := tok.Kind(); got != '{' {
		return fmt.Errorf("config must be an object not a %v", got)
	}

	for {
		keyToken, err := in.ReadToken()
		if err != nil {
			return err
		}
		switch kind := keyToken.Kind(); kind {
		case '}':
			return nil
		case '"':
			// Keep going.
		default:
			return fmt.Errorf("unexpected non-string key (%v) in object", kind)
		}

		switch k := keyToken.String(); k {
		case "debug":
			if err := jsonv2.UnmarshalDecode(in, &g.Debug); err != nil {
				return fmt.Errorf("unmarshal config.debug: %w", err)
			}
		case "kv":
			if err := jsonv2.UnmarshalDecode(in, &g.KVPath); err != nil {
				return fmt.Errorf("unmarshal config.kv: %w", err)
			}
		case "dir":
			if err := jsonv2.UnmarshalDecode(in, &g.Dir); err != nil {
				return fmt.Errorf("unmarshal config.dir: %w", err)
			}
		case "modules":
			// A later file replaces the list instead of extending it.
			var modules []string
			if err := jsonv2.UnmarshalDecode(in, &modules); err != nil {
				return fmt.Errorf("unmarshal config.modules: %w", err)
			}
			g.Modules = modules
		default:
			if reject, _ := jsonv2.GetOption(in.Options(), jsonv2.RejectUnknownMembers); reject {
				return fmt.Errorf("unmarshal config: unknown field %q", k)
			}
			if err := in.SkipValue(); err != nil {
				return err
			}
		}
	}
}

func (g *globalConfig) validate() error {
	for _, name := range g.Modules {
		if !slices.Contains(hostlib.Modules, name) {
			return fmt.Errorf("unknown module %q (known modules: %s)", name, strings.Join(hostlib.Modules, ", "))
		}
	}
	return nil
}

func (g *globalConfig) hostOptions() *hostlib.Options {
	return &hostlib.Options{
		Enabled: g.Modules,
		Dir:     g.Dir,
		KVPath:  g.KVPath,
	}
}
