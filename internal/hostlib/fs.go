// Copyright 2026 The luabind Authors
// SPDX-License-Identifier: MIT

package hostlib

import (
	"compress/flate"
	"compress/gzip"
	"fmt"
	"io"
	"os"

	"github.com/dsnet/compress/brotli"
	"luabind.256lights.llc/pkg/internal/xio"
	"luabind.256lights.llc/pkg/lua"
	"luabind.256lights.llc/pkg/luabind"
)

// openFS registers the fs module.
// Paths are resolved relative to dir and may not escape it.
func openFS(l *lua.State, dir string) error {
	root, err := os.OpenRoot(dir)
	if err != nil {
		return err
	}
	s := xio.NewShared(root)
	read, write := s.Ref(), s.Ref()
	return registerShared(l, FSModule, map[string]any{
		"read":  luabind.Bind2(read, readFile),
		"write": luabind.Bind2(write, writeFile),
	}, read, write)
}

func readFile(root *xio.Ref[*os.Root], path string, encoding luabind.Optional[string]) luabind.Result[[]byte] {
	f, err := root.Value().Open(path)
	if err != nil {
		return luabind.Fail[[]byte](err)
	}
	defer f.Close()
	r, err := decodeContent(f, encoding.Value)
	if err != nil {
		return luabind.Fail[[]byte](fmt.Errorf("read %s: %v", path, err))
	}
	defer r.Close()
	data, err := io.ReadAll(r)
	if err != nil {
		return luabind.Fail[[]byte](fmt.Errorf("read %s: %v", path, err))
	}
	return luabind.Ok(data)
}

func writeFile(root *xio.Ref[*os.Root], path string, data []byte) luabind.Result[bool] {
	f, err := root.Value().Create(path)
	if err != nil {
		return luabind.Fail[bool](err)
	}
	_, err = f.Write(data)
	err2 := f.Close()
	if err != nil {
		return luabind.Fail[bool](err)
	}
	if err2 != nil {
		return luabind.Fail[bool](err2)
	}
	return luabind.Ok(true)
}

func decodeContent(r io.Reader, encoding string) (io.ReadCloser, error) {
	switch encoding {
	case "":
		return io.NopCloser(r), nil
	case "br":
		return brotli.NewReader(r, nil)
	case "gzip":
		return gzip.NewReader(r)
	case "deflate":
		return flate.NewReader(r), nil
	default:
		return nil, fmt.Errorf("unsupported encoding %q", encoding)
	}
}
