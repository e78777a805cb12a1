// Copyright 2026 The luabind Authors
// SPDX-License-Identifier: MIT

package main

import (
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/go-json-experiment/json/jsontext"
	"luabind.256lights.llc/pkg/lua"
)

// maxJSONDepth bounds table nesting so that cyclic tables fail.
const maxJSONDepth = 100

// encodeJSON writes the Lua value at idx as JSON.
// Tables whose keys are exactly 1..n become arrays,
// tables with string keys become objects.
// An empty table becomes an empty array.
func encodeJSON(w io.Writer, l *lua.State, idx int) error {
	enc := jsontext.NewEncoder(w)
	return encodeLuaValue(enc, l, l.AbsIndex(idx), 0)
}

func encodeLuaValue(enc *jsontext.Encoder, l *lua.State, idx int, depth int) error {
	switch tp := l.Type(idx); tp {
	case lua.TypeNil:
		return enc.WriteToken(jsontext.Null)
	case lua.TypeBoolean:
		return enc.WriteToken(jsontext.Bool(l.ToBoolean(idx)))
	case lua.TypeNumber:
		if l.IsInteger(idx) {
			n, _ := l.ToInteger(idx)
			return enc.WriteToken(jsontext.Int(n))
		}
		f, _ := l.ToNumber(idx)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return fmt.Errorf("cannot encode %v as JSON", f)
		}
		return enc.WriteToken(jsontext.Float(f))
	case lua.TypeString:
		s, _ := l.ToString(idx)
		return enc.WriteToken(jsontext.String(s))
	case lua.TypeTable:
		if depth >= maxJSONDepth {
			return errors.New("tables nested too deeply (cycle?)")
		}
		if !l.CheckStack(3) {
			return errors.New("stack overflow")
		}
		if isSequence(l, idx) {
			return encodeArray(enc, l, idx, depth)
		}
		return encodeObject(enc, l, idx, depth)
	default:
		return fmt.Errorf("cannot encode a %v as JSON", tp)
	}
}

// isSequence reports whether the table at idx has exactly the keys 1..n.
func isSequence(l *lua.State, idx int) bool {
	n := l.RawLen(idx)
	count := uint64(0)
	l.PushNil()
	for l.Next(idx) {
		l.Pop(1)
		if !l.IsInteger(-1) {
			l.Pop(1)
			return false
		}
		count++
	}
	return count == n
}

func encodeArray(enc *jsontext.Encoder, l *lua.State, idx int, depth int) error {
	if err := enc.WriteToken(jsontext.BeginArray); err != nil {
		return err
	}
	n := int64(l.RawLen(idx))
	for i := int64(1); i <= n; i++ {
		l.RawIndex(idx, i)
		err := encodeLuaValue(enc, l, l.Top(), depth+1)
		l.Pop(1)
		if err != nil {
			return fmt.Errorf("[%d]: %w", i, err)
		}
	}
	return enc.WriteToken(jsontext.EndArray)
}

func encodeObject(enc *jsontext.Encoder, l *lua.State, idx int, depth int) error {
	if err := enc.WriteToken(jsontext.BeginObject); err != nil {
		return err
	}
	l.PushNil()
	for l.Next(idx) {
		if kt := l.Type(-2); kt != lua.TypeString {
			l.Pop(2)
			return fmt.Errorf("cannot encode table with %v key as JSON", kt)
		}
		k, _ := l.ToString(-2)
		if err := enc.WriteToken(jsontext.String(k)); err != nil {
			l.Pop(2)
			return err
		}
		if err := encodeLuaValue(enc, l, l.Top(), depth+1); err != nil {
			l.Pop(2)
			return fmt.Errorf("[%q]: %w", k, err)
		}
		l.Pop(1)
	}
	return enc.WriteToken(jsontext.EndObject)
}
