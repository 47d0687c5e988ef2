package stream

import (
	"context"
	"errors"
	"iter"
	"math"
	"sync/atomic"

	"github.com/justinelliottcobb/Orlando/pkg/transduce"
)

// ErrStreamClosed is returned when attempting to operate on a closed stream.
var ErrStreamClosed = errors.New("stream is closed")

// Stream represents a sequence of elements supporting sequential operations.
// Streams are lazy; computation on the source data is only performed when a terminal
// operation is initiated, and source elements are consumed only as needed.
//
// Intermediate operations are fused into a single transducer, so every
// element travels through all stages before the next one is read.
type Stream[T any] interface {
	// Intermediate operations (lazy, return new Stream)

	// Filter returns a stream consisting of elements that match the given predicate.
	Filter(predicate func(T) bool) Stream[T]

	// Map returns a stream consisting of the results of applying the given function to elements.
	Map(mapper func(T) T) Stream[T]

	// FlatMap returns a stream in which every element is replaced by the
	// elements mapper returns for it.
	FlatMap(mapper func(T) []T) Stream[T]

	// Distinct returns a stream consisting of distinct elements (according to equality).
	// T must be comparable at run time.
	Distinct() Stream[T]

	// Sorted returns a stream consisting of elements sorted according to natural order.
	// The compare function should return negative if a < b, 0 if a == b, positive if a > b.
	// Sorting is stable and reads every upstream element first.
	Sorted(compare func(a, b T) int) Stream[T]

	// Skip returns a stream consisting of remaining elements after skipping n elements.
	Skip(n int64) Stream[T]

	// Limit returns a stream consisting of elements truncated to be no longer than maxSize.
	Limit(maxSize int64) Stream[T]

	// Peek returns a stream consisting of elements, additionally performing the provided
	// action on each element as elements are consumed.
	Peek(action func(T)) Stream[T]

	// TakeWhile returns the leading elements that match predicate.
	TakeWhile(predicate func(T) bool) Stream[T]

	// DropWhile returns the elements after the leading run that matches predicate.
	DropWhile(predicate func(T) bool) Stream[T]

	// Terminal operations (eager, consume the stream)

	// ForEach performs an action for each element of the stream.
	ForEach(ctx context.Context, action func(T)) error

	// Reduce performs a reduction on elements using the provided identity and combining function.
	Reduce(ctx context.Context, identity T, accumulator func(T, T) T) (T, error)

	// ToSlice returns a slice containing all elements.
	ToSlice(ctx context.Context) ([]T, error)

	// Count returns the count of elements.
	Count(ctx context.Context) (int64, error)

	// AnyMatch returns whether any elements match the given predicate.
	AnyMatch(ctx context.Context, predicate func(T) bool) (bool, error)

	// AllMatch returns whether all elements match the given predicate.
	AllMatch(ctx context.Context, predicate func(T) bool) (bool, error)

	// NoneMatch returns whether no elements match the given predicate.
	NoneMatch(ctx context.Context, predicate func(T) bool) (bool, error)

	// FindFirst returns the first element, if present.
	FindFirst(ctx context.Context) (T, bool, error)

	// Min returns the minimum element according to the provided comparator.
	Min(ctx context.Context, compare func(a, b T) int) (T, bool, error)

	// Max returns the maximum element according to the provided comparator.
	Max(ctx context.Context, compare func(a, b T) int) (T, bool, error)

	// Stream control

	// Close closes the stream and releases resources.
	Close() error

	// IsClosed returns true if the stream is closed.
	IsClosed() bool
}

// Source represents a data source for streams.
type Source[T any] interface {
	// Next returns the next element and true, or zero value and false if no more elements.
	Next(ctx context.Context) (T, bool, error)
	// Close closes the source and releases resources.
	Close() error
}

// stream is the default implementation of Stream.
//
// Streams derived from one another share the source and the closed flag:
// the source can be consumed once, by whichever of them runs first.
type stream[T any] struct {
	source Source[T]
	closed *atomic.Bool
	stages []transduce.Transducer[T, T]
	err    error // first construction error, reported by the terminal operation
}

// New creates a new Stream from a Source.
func New[T any](source Source[T]) Stream[T] {
	return &stream[T]{
		source: source,
		closed: new(atomic.Bool),
	}
}

// FromSlice creates a Stream from a slice.
func FromSlice[T any](slice []T) Stream[T] {
	return New(&sliceSource[T]{slice: slice})
}

// FromSeq creates a Stream from an iterator.
func FromSeq[T any](seq iter.Seq[T]) Stream[T] {
	return New(&seqSource[T]{seq: seq})
}

// FromChannel creates a Stream from a channel.
func FromChannel[T any](ch <-chan T) Stream[T] {
	return New(&channelSource[T]{ch: ch})
}

// Generate creates an infinite Stream from a generator function.
func Generate[T any](generator func() T) Stream[T] {
	return New(&generatorSource[T]{generator: generator})
}

// Empty creates an empty Stream.
func Empty[T any]() Stream[T] {
	return New(&emptySource[T]{})
}

func (s *stream[T]) then(stage transduce.Transducer[T, T], err error) Stream[T] {
	next := &stream[T]{
		source: s.source,
		closed: s.closed,
		stages: make([]transduce.Transducer[T, T], len(s.stages), len(s.stages)+1),
		err:    s.err,
	}
	copy(next.stages, s.stages)
	if next.err == nil {
		next.err = err
	}
	if err == nil {
		next.stages = append(next.stages, stage)
	}
	return next
}

func (s *stream[T]) Filter(predicate func(T) bool) Stream[T] {
	return s.then(transduce.Filter(predicate), nil)
}

func (s *stream[T]) Map(mapper func(T) T) Stream[T] {
	return s.then(transduce.Map(mapper), nil)
}

func (s *stream[T]) FlatMap(mapper func(T) []T) Stream[T] {
	return s.then(transduce.FlatMap(mapper), nil)
}

func (s *stream[T]) Distinct() Stream[T] {
	return s.then(distinct[T](), nil)
}

func (s *stream[T]) Sorted(compare func(a, b T) int) Stream[T] {
	return s.then(sorted(compare), nil)
}

func (s *stream[T]) Skip(n int64) Stream[T] {
	return s.then(transduce.DropSafe[T](clampCount(n)))
}

func (s *stream[T]) Limit(maxSize int64) Stream[T] {
	return s.then(transduce.TakeSafe[T](clampCount(maxSize)))
}

// clampCount narrows n to int, saturating at the int range so a huge count
// cannot wrap around on 32-bit targets. Negative counts stay negative and
// fail validation.
func clampCount(n int64) int {
	return int(min(max(n, math.MinInt), math.MaxInt))
}

func (s *stream[T]) Peek(action func(T)) Stream[T] {
	return s.then(transduce.Tap(action), nil)
}

func (s *stream[T]) TakeWhile(predicate func(T) bool) Stream[T] {
	return s.then(transduce.TakeWhile(predicate), nil)
}

func (s *stream[T]) DropWhile(predicate func(T) bool) Stream[T] {
	return s.then(transduce.DropWhile(predicate), nil)
}

// execute claims the source, runs collect over it and closes the source.
// It returns the first error from the source, including context
// cancellation.
func (s *stream[T]) execute(ctx context.Context, collect func(transduce.Transducer[T, T], iter.Seq[T])) error {
	if s.err != nil {
		return s.err
	}
	if !s.closed.CompareAndSwap(false, true) {
		return ErrStreamClosed
	}
	defer func() { _ = s.source.Close() }()

	var srcErr error
	elements := func(yield func(T) bool) {
		for {
			v, ok, err := s.source.Next(ctx)
			if err != nil {
				srcErr = err
				return
			}
			if !ok || !yield(v) {
				return
			}
		}
	}

	stages := make([]transduce.Transducer[T, T], 0, len(s.stages)+1)
	stages = append(stages, gate[T](&srcErr))
	stages = append(stages, s.stages...)

	collect(transduce.Chain(stages...), elements)
	return srcErr
}

func (s *stream[T]) ForEach(ctx context.Context, action func(T)) error {
	return s.execute(ctx, func(t transduce.Transducer[T, T], src iter.Seq[T]) {
		transduce.Transduce(t, src, struct{}{}, func(acc struct{}, v T) transduce.Step[struct{}] {
			action(v)
			return transduce.Continue(acc)
		})
	})
}

func (s *stream[T]) Reduce(ctx context.Context, identity T, accumulator func(T, T) T) (T, error) {
	result := identity
	err := s.execute(ctx, func(t transduce.Transducer[T, T], src iter.Seq[T]) {
		result = transduce.Reduce(t, src, identity, accumulator)
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return result, nil
}

func (s *stream[T]) ToSlice(ctx context.Context) ([]T, error) {
	var result []T
	err := s.execute(ctx, func(t transduce.Transducer[T, T], src iter.Seq[T]) {
		result = transduce.ToSlice(t, src)
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *stream[T]) Count(ctx context.Context) (int64, error) {
	var count int
	err := s.execute(ctx, func(t transduce.Transducer[T, T], src iter.Seq[T]) {
		count = transduce.Count(t, src)
	})
	if err != nil {
		return 0, err
	}
	return int64(count), nil
}

func (s *stream[T]) AnyMatch(ctx context.Context, predicate func(T) bool) (bool, error) {
	var result bool
	err := s.execute(ctx, func(t transduce.Transducer[T, T], src iter.Seq[T]) {
		result = transduce.Some(t, src, predicate)
	})
	return result && err == nil, err
}

func (s *stream[T]) AllMatch(ctx context.Context, predicate func(T) bool) (bool, error) {
	var result bool
	err := s.execute(ctx, func(t transduce.Transducer[T, T], src iter.Seq[T]) {
		result = transduce.Every(t, src, predicate)
	})
	return result && err == nil, err
}

func (s *stream[T]) NoneMatch(ctx context.Context, predicate func(T) bool) (bool, error) {
	var result bool
	err := s.execute(ctx, func(t transduce.Transducer[T, T], src iter.Seq[T]) {
		result = transduce.None(t, src, predicate)
	})
	return result && err == nil, err
}

func (s *stream[T]) FindFirst(ctx context.Context) (T, bool, error) {
	var (
		result T
		found  bool
	)
	err := s.execute(ctx, func(t transduce.Transducer[T, T], src iter.Seq[T]) {
		result, found = transduce.First(t, src)
	})
	if err != nil {
		var zero T
		return zero, false, err
	}
	return result, found, nil
}

func (s *stream[T]) Min(ctx context.Context, compare func(a, b T) int) (T, bool, error) {
	return s.extreme(ctx, func(a, b T) T {
		if compare(b, a) < 0 {
			return b
		}
		return a
	})
}

func (s *stream[T]) Max(ctx context.Context, compare func(a, b T) int) (T, bool, error) {
	return s.extreme(ctx, func(a, b T) T {
		if compare(b, a) > 0 {
			return b
		}
		return a
	})
}

func (s *stream[T]) extreme(ctx context.Context, pick func(a, b T) T) (T, bool, error) {
	var (
		result T
		empty  error
	)
	err := s.execute(ctx, func(t transduce.Transducer[T, T], src iter.Seq[T]) {
		result, empty = transduce.ReduceFromFirst(t, src, pick)
	})
	if err != nil || empty != nil {
		var zero T
		return zero, false, err
	}
	return result, true, nil
}

func (s *stream[T]) Close() error {
	if s.closed.Swap(true) {
		return nil
	}
	return s.source.Close()
}

func (s *stream[T]) IsClosed() bool {
	return s.closed.Load()
}
