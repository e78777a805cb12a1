// Copyright 2026 The luabind Authors
// SPDX-License-Identifier: MIT

package luabind

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"luabind.256lights.llc/pkg/lua"
)

// loadValue pushes the single result of the Lua expression expr.
func loadValue(tb testing.TB, l *lua.State, expr string) {
	tb.Helper()
	if err := l.LoadString("return "+expr, "=(test)", "t"); err != nil {
		tb.Fatal(err)
	}
	if err := l.Call(0, 1, 0); err != nil {
		tb.Fatal(err)
	}
}

func TestReadStrict(t *testing.T) {
	tests := []struct {
		expr string
		read func(l *lua.State) error
		ok   bool
	}{
		{"42", func(l *lua.State) error { _, err := Read[int](l, -1); return err }, true},
		{"2.0", func(l *lua.State) error { _, err := Read[int](l, -1); return err }, true},
		{"2.5", func(l *lua.State) error { _, err := Read[int](l, -1); return err }, false},
		{`"42"`, func(l *lua.State) error { _, err := Read[int](l, -1); return err }, false},
		{"300", func(l *lua.State) error { _, err := Read[int8](l, -1); return err }, false},
		{"-1", func(l *lua.State) error { _, err := Read[uint](l, -1); return err }, false},
		{"255", func(l *lua.State) error { _, err := Read[uint8](l, -1); return err }, true},
		{"42", func(l *lua.State) error { _, err := Read[string](l, -1); return err }, false},
		{`"x"`, func(l *lua.State) error { _, err := Read[string](l, -1); return err }, true},
		{`"x"`, func(l *lua.State) error { _, err := Read[[]byte](l, -1); return err }, true},
		{"1", func(l *lua.State) error { _, err := Read[float64](l, -1); return err }, true},
		{`"1"`, func(l *lua.State) error { _, err := Read[float64](l, -1); return err }, false},
		{"1e300", func(l *lua.State) error { _, err := Read[float32](l, -1); return err }, false},
		{"nil", func(l *lua.State) error { _, err := Read[bool](l, -1); return err }, false},
		{"false", func(l *lua.State) error { _, err := Read[bool](l, -1); return err }, true},
		{"nil", func(l *lua.State) error { _, err := Read[Nil](l, -1); return err }, true},
		{"0", func(l *lua.State) error { _, err := Read[Nil](l, -1); return err }, false},
		{"nil", func(l *lua.State) error { _, err := Read[Optional[int]](l, -1); return err }, true},
		{`"x"`, func(l *lua.State) error { _, err := Read[Optional[int]](l, -1); return err }, false},
		{"{1, 2}", func(l *lua.State) error { _, err := Read[[]int](l, -1); return err }, true},
		{"{1, 'a'}", func(l *lua.State) error { _, err := Read[[]int](l, -1); return err }, false},
		{"{a = 1}", func(l *lua.State) error { _, err := Read[map[string]int](l, -1); return err }, true},
		{"{[1] = 1}", func(l *lua.State) error { _, err := Read[map[string]int](l, -1); return err }, false},
	}
	for _, test := range tests {
		l := new(lua.State)
		loadValue(t, l, test.expr)
		err := test.read(l)
		if test.ok && err != nil {
			t.Errorf("reading %s: %v", test.expr, err)
		} else if !test.ok && err == nil {
			t.Errorf("reading %s succeeded; want error", test.expr)
		}
		if got := l.Top(); got != 1 {
			t.Errorf("after reading %s, l.Top() = %d; want 1", test.expr, got)
		}
		l.Close()
	}
}

func TestReadValues(t *testing.T) {
	l := new(lua.State)
	defer l.Close()

	loadValue(t, l, `{ {1, 2}, {}, {3} }`)
	nested, err := Read[[][]int](l, -1)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([][]int{{1, 2}, {}, {3}}, nested); diff != "" {
		t.Errorf("nested slices (-want +got):\n%s", diff)
	}

	loadValue(t, l, `{ a = "x", b = "y" }`)
	m, err := Read[map[string]string](l, -1)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(map[string]string{"a": "x", "b": "y"}, m); diff != "" {
		t.Errorf("map (-want +got):\n%s", diff)
	}

	loadValue(t, l, `{ a = {1}, b = nil }`)
	opt, err := Read[map[string][]Optional[int]](l, -1)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(map[string][]Optional[int]{"a": {Some(1)}}, opt); diff != "" {
		t.Errorf("optional map (-want +got):\n%s", diff)
	}
	if got, want := l.Top(), 3; got != want {
		t.Errorf("l.Top() = %d; want %d", got, want)
	}
}

func TestDecodeError(t *testing.T) {
	l := new(lua.State)
	defer l.Close()

	l.PushInteger(1)
	loadValue(t, l, `{ x = {1, 2, "three"} }`)
	_, err := Read[map[string][]int](l, -1)
	var de *DecodeError
	if !errors.As(err, &de) {
		t.Fatalf("Read error = %v; want *DecodeError", err)
	}
	if de.Arg != 2 {
		t.Errorf("Arg = %d; want 2", de.Arg)
	}
	if want := `["x"][3]`; de.Path != want {
		t.Errorf("Path = %q; want %q", de.Path, want)
	}
	if de.LuaType != lua.TypeString {
		t.Errorf("LuaType = %v; want %v", de.LuaType, lua.TypeString)
	}
	if msg := err.Error(); !strings.Contains(msg, "argument #2") {
		t.Errorf("Error() = %q; want it to mention argument #2", msg)
	}
	if got := l.Top(); got != 2 {
		t.Errorf("l.Top() = %d; want 2", got)
	}

	loadValue(t, l, "1.5")
	_, err = Read[int64](l, -1)
	if !errors.Is(err, errNoIntegerRep) {
		t.Errorf("Read[int64](1.5) = %v; want %v", err, errNoIntegerRep)
	}
}

func TestPush(t *testing.T) {
	l := newState(t)

	tests := []struct {
		name  string
		push  func() (int, error)
		check string
		n     int
	}{
		{
			name:  "Slice",
			push:  func() (int, error) { return Push(l, []string{"a", "b"}) },
			check: `local t = ...; return #t == 2 and t[1] == "a" and t[2] == "b"`,
			n:     1,
		},
		{
			name:  "Map",
			push:  func() (int, error) { return Push(l, map[string]int{"x": 1}) },
			check: `local t = ...; return t.x == 1`,
			n:     1,
		},
		{
			name:  "Bytes",
			push:  func() (int, error) { return Push(l, []byte("hi")) },
			check: `return ... == "hi"`,
			n:     1,
		},
		{
			name:  "None",
			push:  func() (int, error) { return Push(l, None[int]()) },
			check: `return select("#", ...) == 1 and ... == nil`,
			n:     1,
		},
		{
			name:  "Some",
			push:  func() (int, error) { return Push(l, Some(3.5)) },
			check: `return ... == 3.5`,
			n:     1,
		},
		{
			name:  "BigUint",
			push:  func() (int, error) { return Push(l, uint64(math.MaxUint64)) },
			check: `return math.type(...) == "float"`,
			n:     1,
		},
		{
			name:  "Integer",
			push:  func() (int, error) { return Push(l, int16(-7)) },
			check: `return math.type(...) == "integer" and ... == -7`,
			n:     1,
		},
		{
			name:  "Tuple",
			push:  func() (int, error) { return Push(l, MakeTuple3(true, Nil{}, "z")) },
			check: `local a, b, c = ...; return select("#", ...) == 3 and a == true and b == nil and c == "z"`,
			n:     3,
		},
		{
			name:  "Function",
			push:  func() (int, error) { return Push(l, Func1(func(x int) int { return x * 2 })) },
			check: `return (...)(21) == 42`,
			n:     1,
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			l.SetTop(0)
			if err := l.LoadString(test.check, "=(check)", "t"); err != nil {
				t.Fatal(err)
			}
			n, err := test.push()
			if err != nil {
				t.Fatal(err)
			}
			if n != test.n {
				t.Errorf("Push returned %d; want %d", n, test.n)
			}
			if err := l.Call(n, 1, 0); err != nil {
				t.Fatal(err)
			}
			if !l.ToBoolean(-1) {
				t.Errorf("check failed: %s", test.check)
			}
		})
	}
}

// point is a type with its own Lua representation: a table with x and y fields.
type point struct {
	x, y int64
}

func (p *point) ReadLua(l *lua.State, idx int) error {
	t, err := Read[map[string]int64](l, idx)
	if err != nil {
		return err
	}
	p.x, p.y = t["x"], t["y"]
	return nil
}

func (p point) PushLua(l *lua.State) (int, error) {
	return Push(l, map[string]int64{"x": p.x, "y": p.y})
}

func TestReaderPusher(t *testing.T) {
	ctx := t.Context()
	l := newState(t)

	setGlobal(t, l, "swap", Func1(func(p point) point {
		return point{x: p.y, y: p.x}
	}))
	got, err := Execute[point](ctx, l, "return swap({x = 1, y = 2})")
	if err != nil {
		t.Fatal(err)
	}
	if want := (point{x: 2, y: 1}); got != want {
		t.Errorf("swap({x = 1, y = 2}) = %+v; want %+v", got, want)
	}
	if _, err := Execute[point](ctx, l, `return swap("nope")`); err == nil {
		t.Error(`swap("nope") did not raise an error`)
	}
}
