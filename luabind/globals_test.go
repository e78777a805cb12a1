// Copyright 2026 The luabind Authors
// SPDX-License-Identifier: MIT

package luabind

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"luabind.256lights.llc/pkg/internal/testcontext"
	"luabind.256lights.llc/pkg/lua"
)

func TestGlobal(t *testing.T) {
	ctx, cancel := testcontext.New(t)
	defer cancel()
	l := newState(t)

	setGlobal(t, l, "names", []string{"a", "b"})
	got, err := Global[[]string](l, "names")
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"a", "b"}, got); diff != "" {
		t.Errorf("names (-want +got):\n%s", diff)
	}
	if _, err := Global[int](l, "names"); err == nil {
		t.Error("Global[int](l, \"names\") did not return an error")
	}
	if _, err := Execute[Nil](ctx, l, "answer = 42"); err != nil {
		t.Fatal(err)
	}
	if n, err := Global[int](l, "answer"); err != nil || n != 42 {
		t.Errorf("Global[int](l, \"answer\") = %d, %v; want 42, <nil>", n, err)
	}
	if got := l.Top(); got != 0 {
		t.Errorf("l.Top() = %d; want 0", got)
	}
}

func TestSetGlobalTuple(t *testing.T) {
	l := newState(t)
	if err := SetGlobal(l, "x", MakeTuple2(1, 2)); err == nil {
		t.Error("SetGlobal with a two-value tuple did not return an error")
	}
	if got := l.Top(); got != 0 {
		t.Errorf("l.Top() = %d; want 0", got)
	}
}

func TestRegister(t *testing.T) {
	ctx, cancel := testcontext.New(t)
	defer cancel()
	l := newState(t)

	err := Register(l, "strs", map[string]any{
		"upper": Func1(func(s string) string {
			b := []byte(s)
			for i, c := range b {
				if 'a' <= c && c <= 'z' {
					b[i] = c - 'a' + 'A'
				}
			}
			return string(b)
		}),
		"len": Func1(func(s []byte) int { return len(s) }),
	})
	if err != nil {
		t.Fatal(err)
	}
	got, err := Execute[Tuple2[string, int]](ctx, l, `return strs.upper("abc"), strs.len("hello")`)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(MakeTuple2("ABC", 5), got); diff != "" {
		t.Errorf("results (-want +got):\n%s", diff)
	}

	if err := Register(l, "bad", map[string]any{"f": func() {}}); err == nil {
		t.Error("Register with a plain Go function did not return an error")
	}
	if got := l.Top(); got != 0 {
		t.Errorf("l.Top() = %d; want 0", got)
	}
}

func TestExecute(t *testing.T) {
	t.Run("SyntaxError", func(t *testing.T) {
		ctx, cancel := testcontext.New(t)
		defer cancel()
		l := newState(t)
		_, err := Execute[Nil](ctx, l, "return +")
		if !lua.IsSyntax(err) {
			t.Errorf("Execute(\"return +\") = %v; want syntax error", err)
		}
	})

	t.Run("RuntimeError", func(t *testing.T) {
		ctx, cancel := testcontext.New(t)
		defer cancel()
		l := newState(t)
		_, err := Execute[Nil](ctx, l, `error("nope")`)
		if !lua.IsRuntime(err) {
			t.Errorf("Execute(error(\"nope\")) = %v; want runtime error", err)
		}
	})

	t.Run("DiscardResults", func(t *testing.T) {
		ctx, cancel := testcontext.New(t)
		defer cancel()
		l := newState(t)
		if _, err := Execute[Nil](ctx, l, "return 1, 2, 3"); err != nil {
			t.Error(err)
		}
		if got := l.Top(); got != 0 {
			t.Errorf("l.Top() = %d; want 0", got)
		}
	})

	t.Run("MissingResults", func(t *testing.T) {
		ctx, cancel := testcontext.New(t)
		defer cancel()
		l := newState(t)
		got, err := Execute[Tuple2[int, Optional[int]]](ctx, l, "return 1")
		if err != nil {
			t.Fatal(err)
		}
		if diff := cmp.Diff(MakeTuple2(1, None[int]()), got); diff != "" {
			t.Errorf("results (-want +got):\n%s", diff)
		}
		if _, err := Execute[Tuple2[int, int]](ctx, l, "return 1"); err == nil {
			t.Error("Execute[Tuple2[int, int]](\"return 1\") did not return an error")
		}
	})

	t.Run("Canceled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		l := newState(t)
		if _, err := Execute[Nil](ctx, l, "x = 1"); !errors.Is(err, context.Canceled) {
			t.Errorf("Execute = %v; want %v", err, context.Canceled)
		}
	})

	t.Run("CallbackType", func(t *testing.T) {
		l := newState(t)
		if _, err := Execute[*Callback](context.Background(), l, "return 1"); err == nil {
			t.Error("Execute[*Callback] did not return an error")
		}
	})
}
