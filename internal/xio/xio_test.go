// Copyright 2026 The luabind Authors
// SPDX-License-Identifier: MIT

package xio

import (
	"errors"
	"testing"
)

type countCloser struct {
	n   int
	err error
}

func (c *countCloser) Close() error {
	c.n++
	return c.err
}

func TestCloseOnce(t *testing.T) {
	c := &countCloser{err: errors.New("bork")}
	oc := CloseOnce(c)
	for range 3 {
		if err := oc.Close(); err == nil || err.Error() != "bork" {
			t.Errorf("Close() = %v; want bork", err)
		}
	}
	if c.n != 1 {
		t.Errorf("underlying Close called %d times; want 1", c.n)
	}
}

func TestShared(t *testing.T) {
	c := new(countCloser)
	s := NewShared(c)
	r1 := s.Ref()
	r2 := s.Ref()
	if r1.Value() != c {
		t.Error("r1.Value() is not the shared resource")
	}

	r1.Close()
	r1.Close()
	if c.n != 0 {
		t.Fatalf("resource closed %d times while r2 is open; want 0", c.n)
	}
	// A copy closes the same reference.
	r2copy := r2
	r2copy.Close()
	r2.Close()
	if c.n != 1 {
		t.Errorf("resource closed %d times; want 1", c.n)
	}
}
