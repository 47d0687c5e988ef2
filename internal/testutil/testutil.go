// Package testutil holds assertion helpers and instrumented sources shared
// by the orlando test suites.
package testutil

import (
	"iter"
	"testing"

	"github.com/stretchr/testify/require"
)

// AssertNoError fails the test if err is not nil
func AssertNoError(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// AssertError fails the test if err is nil
func AssertError(t *testing.T, err error) {
	t.Helper()
	if err == nil {
		t.Fatal("expected error, got nil")
	}
}

// AssertEqual fails the test if got != want
func AssertEqual[T comparable](t *testing.T, got, want T) {
	t.Helper()
	if got != want {
		t.Fatalf("got %v, want %v", got, want)
	}
}

// AssertDeepEqual fails the test with a diff if got and want differ
// structurally. A nil slice and an empty slice are not equal.
func AssertDeepEqual(t *testing.T, got, want interface{}) {
	t.Helper()
	require.Equal(t, want, got)
}

// AssertPanicsWith fails the test unless fn panics with a value for which
// match returns true.
func AssertPanicsWith(t *testing.T, fn func(), match func(recovered interface{}) bool) {
	t.Helper()
	defer func() {
		t.Helper()
		r := recover()
		if r == nil {
			t.Fatal("expected panic, got none")
		}
		if !match(r) {
			t.Fatalf("unexpected panic value: %v", r)
		}
	}()
	fn()
}

// CountingSource wraps a sequence and records how many elements were
// actually pulled from it.
type CountingSource[T any] struct {
	seq    iter.Seq[T]
	pulled int
}

// NewCountingSource instruments seq.
func NewCountingSource[T any](seq iter.Seq[T]) *CountingSource[T] {
	return &CountingSource[T]{seq: seq}
}

// Seq returns the instrumented sequence.
func (c *CountingSource[T]) Seq() iter.Seq[T] {
	return func(yield func(T) bool) {
		for v := range c.seq {
			c.pulled++
			if !yield(v) {
				return
			}
		}
	}
}

// Pulled returns the number of elements handed out so far.
func (c *CountingSource[T]) Pulled() int {
	return c.pulled
}

// Reset clears the pull counter.
func (c *CountingSource[T]) Reset() {
	c.pulled = 0
}

// Naturals yields 1, 2, 3, ... without end.
func Naturals() iter.Seq[int] {
	return func(yield func(int) bool) {
		for i := 1; ; i++ {
			if !yield(i) {
				return
			}
		}
	}
}

// Range yields start, start+1, ..., end inclusive.
func Range(start, end int) iter.Seq[int] {
	return func(yield func(int) bool) {
		for i := start; i <= end; i++ {
			if !yield(i) {
				return
			}
		}
	}
}

// RangeSlice returns start..end inclusive as a slice.
func RangeSlice(start, end int) []int {
	out := make([]int, 0, max(0, end-start+1))
	for i := start; i <= end; i++ {
		out = append(out, i)
	}
	return out
}

// Boxed converts a typed slice into a []any, the shape values take at a
// type-erased boundary.
func Boxed[T any](in []T) []any {
	out := make([]any, len(in))
	for i, v := range in {
		out[i] = v
	}
	return out
}
