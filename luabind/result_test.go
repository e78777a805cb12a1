// Copyright 2026 The luabind Authors
// SPDX-License-Identifier: MIT

package luabind

import (
	"errors"
	"fmt"
	"strconv"
	"testing"

	"github.com/google/go-cmp/cmp"
	"luabind.256lights.llc/pkg/internal/testcontext"
)

func TestResult(t *testing.T) {
	ctx, cancel := testcontext.New(t)
	defer cancel()
	l := newState(t)

	setGlobal(t, l, "always_fails", Func0(func() Result[int] {
		return Failf[int]("oops, problem")
	}))
	setGlobal(t, l, "always_ok", Func0(func() Result[int] {
		return Ok(42)
	}))
	setGlobal(t, l, "atoi", Func1(func(s string) Result[int] {
		return Try(strconv.Atoi(s))
	}))

	t.Run("Failure", func(t *testing.T) {
		got, err := Execute[Tuple2[Nil, string]](ctx, l, "return always_fails()")
		if err != nil {
			t.Fatal(err)
		}
		if got.V2 != "oops, problem" {
			t.Errorf("message = %q; want %q", got.V2, "oops, problem")
		}
		n, err := Execute[int](ctx, l, `return select("#", always_fails())`)
		if err != nil {
			t.Fatal(err)
		}
		if n != 2 {
			t.Errorf("always_fails() returned %d values; want 2", n)
		}
	})

	t.Run("Success", func(t *testing.T) {
		got, err := Execute[Tuple2[int, Nil]](ctx, l, "return always_ok()")
		if err != nil {
			t.Fatal(err)
		}
		if got.V1 != 42 {
			t.Errorf("always_ok() = %d; want 42", got.V1)
		}
		n, err := Execute[int](ctx, l, `return select("#", always_ok())`)
		if err != nil {
			t.Fatal(err)
		}
		if n != 1 {
			t.Errorf("always_ok() returned %d values; want 1", n)
		}
	})

	t.Run("Try", func(t *testing.T) {
		got, err := Execute[Tuple2[Optional[int], Optional[string]]](ctx, l, `return atoi("12")`)
		if err != nil {
			t.Fatal(err)
		}
		if diff := cmp.Diff(MakeTuple2(Some(12), None[string]()), got); diff != "" {
			t.Errorf(`atoi("12") (-want +got):\n%s`, diff)
		}

		got, err = Execute[Tuple2[Optional[int], Optional[string]]](ctx, l, `return atoi("x")`)
		if err != nil {
			t.Fatal(err)
		}
		if got.V1.Present || !got.V2.Present {
			t.Errorf(`atoi("x") = %v; want None, error message`, got)
		}
	})

	t.Run("Assert", func(t *testing.T) {
		_, err := Execute[Nil](ctx, l, "assert(always_fails())")
		if err == nil {
			t.Fatal("assert(always_fails()) did not raise an error")
		}
		if got, want := err.Error(), "oops, problem"; got != want {
			t.Errorf("error = %q; want %q", got, want)
		}
	})
}

func TestResultOutsideCallback(t *testing.T) {
	l := newState(t)

	if _, err := Push(l, Ok(5)); !errors.Is(err, ErrOutsideCallback) {
		t.Errorf("Push(l, Ok(5)) = _, %v; want %v", err, ErrOutsideCallback)
	}
	if _, err := Push(l, MakeTuple2(1, Fail[int](errors.New("x")))); !errors.Is(err, ErrOutsideCallback) {
		t.Errorf("Push(l, tuple with Result) = _, %v; want %v", err, ErrOutsideCallback)
	}
	if err := SetGlobal(l, "x", Ok("hi")); !errors.Is(err, ErrOutsideCallback) {
		t.Errorf("SetGlobal(l, \"x\", Ok(\"hi\")) = %v; want %v", err, ErrOutsideCallback)
	}
	if got := l.Top(); got != 0 {
		t.Errorf("l.Top() = %d; want 0", got)
	}
}

func TestResultConstructors(t *testing.T) {
	tests := []struct {
		name    string
		r       Result[string]
		want    string
		wantErr string
	}{
		{name: "Ok", r: Ok("a"), want: "a"},
		{name: "Fail", r: Fail[string](errors.New("bad")), wantErr: "bad"},
		{name: "FailNil", r: Fail[string](nil), wantErr: "unknown error"},
		{name: "Failf", r: Failf[string]("bad %d", 3), wantErr: "bad 3"},
		{name: "TryOk", r: Try("b", nil), want: "b"},
		{name: "TryErr", r: Try("b", fmt.Errorf("no")), wantErr: "no"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got, err := test.r.Get()
			if test.wantErr != "" {
				if err == nil || err.Error() != test.wantErr {
					t.Errorf("Get() = _, %v; want %q", err, test.wantErr)
				}
				return
			}
			if err != nil || got != test.want {
				t.Errorf("Get() = %q, %v; want %q, <nil>", got, err, test.want)
			}
		})
	}
}
