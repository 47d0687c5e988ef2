package stream

import (
	"slices"

	"github.com/justinelliottcobb/Orlando/pkg/common/validation"
	"github.com/justinelliottcobb/Orlando/pkg/transduce"
)

// distinct keys elements by their dynamic value, so T need not be
// comparable at compile time. Non-comparable values panic when hashed.
func distinct[T any]() transduce.Transducer[T, T] {
	return transduce.UniqueBy(func(v T) any { return v })
}

// sortStage buffers every element and emits them in order when the input
// ends.
type sortStage[T any] struct {
	next    transduce.Sink[T]
	compare func(a, b T) int
	buf     []T
}

func (s *sortStage[T]) Push(v T) bool {
	s.buf = append(s.buf, v)
	return true
}

func (s *sortStage[T]) Flush() {
	slices.SortStableFunc(s.buf, s.compare)
	for _, v := range s.buf {
		if s.next.Halted() || !s.next.Push(v) {
			break
		}
	}
	s.buf = nil
	s.next.Flush()
}

func (s *sortStage[T]) Halted() bool {
	return s.next.Halted()
}

func sorted[T any](compare func(a, b T) int) transduce.Transducer[T, T] {
	if err := validation.ValidateNotNil("stream", "compare", compare); err != nil {
		panic(err)
	}
	return transduce.BindFunc[T, T](func(next transduce.Sink[T]) transduce.Sink[T] {
		return &sortStage[T]{next: next, compare: compare}
	})
}

// gateStage sits in front of every other stage. When the source failed it
// swallows the end-of-input flush, so buffering stages such as Sorted never
// emit what they collected before the failure.
type gateStage[T any] struct {
	next   transduce.Sink[T]
	failed *error
}

func (g *gateStage[T]) Push(v T) bool { return g.next.Push(v) }

func (g *gateStage[T]) Flush() {
	if *g.failed == nil {
		g.next.Flush()
	}
}

func (g *gateStage[T]) Halted() bool { return g.next.Halted() }

func gate[T any](failed *error) transduce.Transducer[T, T] {
	return transduce.BindFunc[T, T](func(next transduce.Sink[T]) transduce.Sink[T] {
		return &gateStage[T]{next: next, failed: failed}
	})
}
