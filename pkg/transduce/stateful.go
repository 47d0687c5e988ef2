package transduce

import (
	"slices"

	"github.com/justinelliottcobb/Orlando/pkg/common/validation"
)

type uniqueByT[T any, K comparable] struct {
	key func(T) K
}

func (u uniqueByT[T, K]) Bind(next Sink[T]) Sink[T] {
	return &uniqueByStage[T, K]{relay: relay[T]{next}, key: u.key, seen: make(map[K]struct{})}
}

type uniqueByStage[T any, K comparable] struct {
	relay[T]
	key  func(T) K
	seen map[K]struct{}
}

func (s *uniqueByStage[T, K]) Push(v T) bool {
	k := s.key(v)
	if _, dup := s.seen[k]; dup {
		return true
	}
	s.seen[k] = struct{}{}
	return s.next.Push(v)
}

// Unique suppresses every element equal to any element seen earlier in the
// run, keeping first occurrences in order. Memory grows with the number of
// distinct elements.
func Unique[T comparable]() Transducer[T, T] {
	return uniqueByT[T, T]{key: func(v T) T { return v }}
}

// UniqueBy is Unique comparing elements by key(v).
func UniqueBy[T any, K comparable](key func(T) K) Transducer[T, T] {
	mustFunc("key", key)
	return uniqueByT[T, K]{key: key}
}

type dedupeT[T comparable] struct{}

func (dedupeT[T]) Bind(next Sink[T]) Sink[T] {
	return &dedupeStage[T]{relay: relay[T]{next}}
}

type dedupeStage[T comparable] struct {
	relay[T]
	last T
	has  bool
}

func (s *dedupeStage[T]) Push(v T) bool {
	if s.has && s.last == v {
		return true
	}
	s.last, s.has = v, true
	return s.next.Push(v)
}

// Dedupe suppresses consecutive repeats only: [1 1 2 1] becomes [1 2 1].
// Use Unique for full-history de-duplication.
func Dedupe[T comparable]() Transducer[T, T] {
	return dedupeT[T]{}
}

type chunkT[T any] struct {
	size    int
	partial bool
}

func (c chunkT[T]) Bind(next Sink[[]T]) Sink[T] {
	return &chunkStage[T]{relay: relay[[]T]{next}, size: c.size, partial: c.partial}
}

type chunkStage[T any] struct {
	relay[[]T]
	size    int
	partial bool
	buf     []T
}

func (s *chunkStage[T]) Push(v T) bool {
	if s.buf == nil {
		s.buf = make([]T, 0, s.size)
	}
	s.buf = append(s.buf, v)
	if len(s.buf) < s.size {
		return true
	}
	out := s.buf
	s.buf = nil
	return s.next.Push(out)
}

func (s *chunkStage[T]) Flush() {
	if s.partial && len(s.buf) > 0 && !s.next.Halted() {
		out := s.buf
		s.buf = nil
		s.next.Push(out)
	}
	s.next.Flush()
}

func chunkSafe[T any](size int, partial bool) (Transducer[T, []T], error) {
	if err := validation.ValidatePositive(module, "size", size); err != nil {
		return nil, err
	}
	return chunkT[T]{size: size, partial: partial}, nil
}

// ChunkSafe is Chunk returning a *errors.ValidationError for a size below 1.
func ChunkSafe[T any](size int) (Transducer[T, []T], error) {
	return chunkSafe[T](size, false)
}

// Chunk groups elements into non-overlapping slices of exactly size
// elements. A trailing group with fewer than size elements is dropped;
// use ChunkAll to keep it.
func Chunk[T any](size int) Transducer[T, []T] {
	return must(ChunkSafe[T](size))
}

// ChunkAllSafe is ChunkAll returning a *errors.ValidationError for a size
// below 1.
func ChunkAllSafe[T any](size int) (Transducer[T, []T], error) {
	return chunkSafe[T](size, true)
}

// ChunkAll is Chunk that also emits the trailing partial group when the
// input ends, whether the source ran dry or an upstream stage stopped.
func ChunkAll[T any](size int) Transducer[T, []T] {
	return must(ChunkAllSafe[T](size))
}

type apertureT[T any] struct {
	size int
}

func (a apertureT[T]) Bind(next Sink[[]T]) Sink[T] {
	return &apertureStage[T]{relay: relay[[]T]{next}, window: make([]T, 0, a.size), size: a.size}
}

type apertureStage[T any] struct {
	relay[[]T]
	window []T
	size   int
}

func (s *apertureStage[T]) Push(v T) bool {
	if len(s.window) == s.size {
		copy(s.window, s.window[1:])
		s.window[s.size-1] = v
	} else {
		s.window = append(s.window, v)
	}
	if len(s.window) < s.size {
		return true
	}
	return s.next.Push(slices.Clone(s.window))
}

// ApertureSafe is Aperture returning a *errors.ValidationError for a size
// below 1.
func ApertureSafe[T any](size int) (Transducer[T, []T], error) {
	if err := validation.ValidatePositive(module, "size", size); err != nil {
		return nil, err
	}
	return apertureT[T]{size: size}, nil
}

// Aperture emits overlapping windows of size consecutive elements, one per
// input element once size elements have been seen. Every window is a fresh
// slice.
func Aperture[T any](size int) Transducer[T, []T] {
	return must(ApertureSafe[T](size))
}

type scanT[T, S any] struct {
	initial S
	f       func(S, T) S
}

func (t scanT[T, S]) Bind(next Sink[S]) Sink[T] {
	return &scanStage[T, S]{relay: relay[S]{next}, state: t.initial, f: t.f}
}

type scanStage[T, S any] struct {
	relay[S]
	state S
	f     func(S, T) S
}

func (s *scanStage[T, S]) Push(v T) bool {
	s.state = s.f(s.state, v)
	return s.next.Push(s.state)
}

// Scan emits the running accumulation f(f(f(initial, x0), x1), ...), one
// value per input. The running state restarts from initial on every run.
func Scan[T, S any](initial S, f func(S, T) S) Transducer[T, S] {
	mustFunc("f", f)
	return scanT[T, S]{initial: initial, f: f}
}

type interposeT[T any] struct {
	sep T
}

func (t interposeT[T]) Bind(next Sink[T]) Sink[T] {
	return &interposeStage[T]{relay: relay[T]{next}, sep: t.sep}
}

type interposeStage[T any] struct {
	relay[T]
	sep     T
	started bool
}

func (s *interposeStage[T]) Push(v T) bool {
	if s.started {
		if !s.next.Push(s.sep) {
			return false
		}
	}
	s.started = true
	return s.next.Push(v)
}

// Interpose emits sep between consecutive elements.
func Interpose[T any](sep T) Transducer[T, T] {
	return interposeT[T]{sep: sep}
}
