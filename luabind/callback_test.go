// Copyright 2026 The luabind Authors
// SPDX-License-Identifier: MIT

package luabind

import (
	"strings"
	"testing"

	"luabind.256lights.llc/pkg/internal/testcontext"
)

func TestCallback(t *testing.T) {
	ctx, cancel := testcontext.New(t)
	defer cancel()
	l := newState(t)

	var saved *Callback
	setGlobal(t, l, "nargs", Func2(func(cb *Callback, x Optional[int]) int {
		saved = cb
		return cb.NumArgs()
	}))
	for _, test := range []struct {
		code string
		want int
	}{
		{"return nargs()", 0},
		{"return nargs(1)", 1},
		{"return nargs(nil)", 1},
	} {
		got, err := Execute[int](ctx, l, test.code)
		if err != nil {
			t.Errorf("%s: %v", test.code, err)
			continue
		}
		if got != test.want {
			t.Errorf("%s = %d; want %d", test.code, got, test.want)
		}
	}

	t.Run("Stale", func(t *testing.T) {
		if saved == nil {
			t.Skip("callback never ran")
		}
		defer func() {
			if recover() == nil {
				t.Error("using a Callback after its call returned did not panic")
			}
		}()
		saved.State()
	})
}

func TestCallbackWhere(t *testing.T) {
	ctx, cancel := testcontext.New(t)
	defer cancel()
	l := newState(t)

	setGlobal(t, l, "where", Func1(func(cb *Callback) string { return cb.Where() }))
	got, err := Execute[string](ctx, l, "\nreturn where()")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasSuffix(got, ":2: ") {
		t.Errorf("where() = %q; want position ending in line 2", got)
	}
}

func TestCallbackReentrant(t *testing.T) {
	ctx, cancel := testcontext.New(t)
	defer cancel()
	l := newState(t)

	setGlobal(t, l, "double", Func1(func(x int) int { return x * 2 }))
	setGlobal(t, l, "eval", Func2(func(cb *Callback, code string) Result[int] {
		return Try(Execute[int](ctx, cb.State(), code))
	}))

	got, err := Execute[int](ctx, l, `return eval("return double(21)") + 1`)
	if err != nil {
		t.Fatal(err)
	}
	if got != 43 {
		t.Errorf("eval(...) + 1 = %d; want 43", got)
	}

	msg, err := Execute[Tuple2[Nil, string]](ctx, l, `return eval("return double('x')")`)
	if err != nil {
		t.Fatal(err)
	}
	if want := "wrong parameter types for callback function"; !strings.Contains(msg.V2, want) {
		t.Errorf("nested failure message = %q; want it to contain %q", msg.V2, want)
	}

	// Nesting twice.
	got, err = Execute[int](ctx, l, `return eval("return eval('return double(2)')")`)
	if err != nil {
		t.Fatal(err)
	}
	if got != 4 {
		t.Errorf("nested eval = %d; want 4", got)
	}
}

func TestCallbackPush(t *testing.T) {
	ctx, cancel := testcontext.New(t)
	defer cancel()
	l := newState(t)

	setGlobal(t, l, "pushed", Func1(func(cb *Callback) int {
		n, err := cb.Push(Fail[int](nil))
		if err != nil {
			panic(err)
		}
		l := cb.State()
		l.Pop(n)
		return n
	}))
	got, err := Execute[int](ctx, l, "return pushed()")
	if err != nil {
		t.Fatal(err)
	}
	if got != 2 {
		t.Errorf("pushed() = %d; want 2", got)
	}
}
