// Copyright 2025 The zb Authors
// SPDX-License-Identifier: MIT

// Package xio provides I/O utilities.
package xio

import (
	"io"
	"sync"
)

type onceCloser struct {
	mu     sync.Mutex
	c      io.Closer
	err    error
	closed bool
}

// CloseOnce returns an [io.Closer] that calls c at most once.
// It is safe to call from multiple goroutines.
func CloseOnce(c io.Closer) io.Closer {
	return &onceCloser{c: c}
}

func (oc *onceCloser) Close() error {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	if !oc.closed {
		oc.err = oc.c.Close()
		oc.closed = true
	}
	return oc.err
}

// Shared is a resource with several owners.
// The resource is closed when every [Ref] to it has been closed.
type Shared[T io.Closer] struct {
	mu       sync.Mutex
	resource T
	refs     int
}

// NewShared returns a Shared with no references.
func NewShared[T io.Closer](resource T) *Shared[T] {
	return &Shared[T]{resource: resource}
}

// Ref returns a new reference to the resource.
func (s *Shared[T]) Ref() Ref[T] {
	s.mu.Lock()
	s.refs++
	s.mu.Unlock()
	return Ref[T]{
		shared: s,
		closer: CloseOnce(releaser[T]{s}),
	}
}

func (s *Shared[T]) release() error {
	s.mu.Lock()
	s.refs--
	last := s.refs == 0
	s.mu.Unlock()
	if !last {
		return nil
	}
	return s.resource.Close()
}

type releaser[T io.Closer] struct {
	s *Shared[T]
}

func (r releaser[T]) Close() error {
	return r.s.release()
}

// Ref is a reference to a [Shared] resource.
// Copies of a Ref share its state.
type Ref[T io.Closer] struct {
	shared *Shared[T]
	closer io.Closer
}

// Value returns the resource.
func (ref Ref[T]) Value() T {
	return ref.shared.resource
}

// Close releases the reference.
// Calls after the first have no effect.
// The last reference to be released closes the resource
// and returns its error.
func (ref Ref[T]) Close() error {
	return ref.closer.Close()
}
