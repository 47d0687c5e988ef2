package stream

import (
	"context"
	"iter"
)

// sliceSource implements Source for slices.
type sliceSource[T any] struct {
	slice []T
	index int
}

func (s *sliceSource[T]) Next(ctx context.Context) (T, bool, error) {
	var zero T

	if s.index >= len(s.slice) {
		return zero, false, nil
	}

	select {
	case <-ctx.Done():
		return zero, false, ctx.Err()
	default:
		s.index++
		return s.slice[s.index-1], true, nil
	}
}

func (s *sliceSource[T]) Close() error {
	return nil
}

// seqSource implements Source for iterators.
type seqSource[T any] struct {
	seq  iter.Seq[T]
	next func() (T, bool)
	stop func()
}

func (s *seqSource[T]) Next(ctx context.Context) (T, bool, error) {
	if err := ctx.Err(); err != nil {
		var zero T
		return zero, false, err
	}
	if s.next == nil {
		s.next, s.stop = iter.Pull(s.seq)
	}
	v, ok := s.next()
	return v, ok, nil
}

func (s *seqSource[T]) Close() error {
	if s.stop != nil {
		s.stop()
	}
	return nil
}

// channelSource implements Source for channels.
type channelSource[T any] struct {
	ch <-chan T
}

func (s *channelSource[T]) Next(ctx context.Context) (T, bool, error) {
	var zero T

	select {
	case value, ok := <-s.ch:
		if !ok {
			return zero, false, nil
		}
		return value, true, nil
	case <-ctx.Done():
		return zero, false, ctx.Err()
	}
}

func (s *channelSource[T]) Close() error {
	return nil
}

// generatorSource implements Source for generator functions.
type generatorSource[T any] struct {
	generator func() T
}

func (s *generatorSource[T]) Next(ctx context.Context) (T, bool, error) {
	select {
	case <-ctx.Done():
		var zero T
		return zero, false, ctx.Err()
	default:
		return s.generator(), true, nil
	}
}

func (s *generatorSource[T]) Close() error {
	return nil
}

// emptySource implements Source for empty streams.
type emptySource[T any] struct{}

func (s *emptySource[T]) Next(_ context.Context) (T, bool, error) {
	var zero T
	return zero, false, nil
}

func (s *emptySource[T]) Close() error {
	return nil
}
