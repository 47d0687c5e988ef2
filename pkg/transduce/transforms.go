package transduce

import (
	"iter"

	"github.com/justinelliottcobb/Orlando/pkg/common/validation"
)

type mapT[In, Out any] struct {
	f func(In) Out
}

func (m mapT[In, Out]) Bind(next Sink[Out]) Sink[In] {
	return &mapStage[In, Out]{relay: relay[Out]{next}, f: m.f}
}

type mapStage[In, Out any] struct {
	relay[Out]
	f func(In) Out
}

func (s *mapStage[In, Out]) Push(v In) bool { return s.next.Push(s.f(v)) }

// Map applies f to every element. It never stops on its own and emits
// exactly one value per input.
//
// Map panics with a *errors.ValidationError if f is nil.
func Map[In, Out any](f func(In) Out) Transducer[In, Out] {
	mustFunc("f", f)
	return mapT[In, Out]{f: f}
}

type filterT[T any] struct {
	pred func(T) bool
	keep bool
}

func (f filterT[T]) Bind(next Sink[T]) Sink[T] {
	return &filterStage[T]{relay: relay[T]{next}, pred: f.pred, keep: f.keep}
}

type filterStage[T any] struct {
	relay[T]
	pred func(T) bool
	keep bool
}

func (s *filterStage[T]) Push(v T) bool {
	if s.pred(v) != s.keep {
		return true
	}
	return s.next.Push(v)
}

// Filter keeps the elements for which pred holds, in their original order.
func Filter[T any](pred func(T) bool) Transducer[T, T] {
	mustFunc("pred", pred)
	return filterT[T]{pred: pred, keep: true}
}

// Reject drops the elements for which pred holds. It is Filter of the
// complement.
func Reject[T any](pred func(T) bool) Transducer[T, T] {
	mustFunc("pred", pred)
	return filterT[T]{pred: pred, keep: false}
}

type tapT[T any] struct {
	f func(T)
}

func (t tapT[T]) Bind(next Sink[T]) Sink[T] {
	return &tapStage[T]{relay: relay[T]{next}, f: t.f}
}

type tapStage[T any] struct {
	relay[T]
	f func(T)
}

func (s *tapStage[T]) Push(v T) bool {
	s.f(v)
	return s.next.Push(v)
}

// Tap calls f for its side effect and passes each element through unchanged.
func Tap[T any](f func(T)) Transducer[T, T] {
	mustFunc("f", f)
	return tapT[T]{f: f}
}

type flatMapT[In, Out any] struct {
	f func(In) iter.Seq[Out]
}

func (m flatMapT[In, Out]) Bind(next Sink[Out]) Sink[In] {
	return &flatMapStage[In, Out]{relay: relay[Out]{next}, f: m.f}
}

type flatMapStage[In, Out any] struct {
	relay[Out]
	f func(In) iter.Seq[Out]
}

func (s *flatMapStage[In, Out]) Push(v In) bool {
	for out := range s.f(v) {
		if !s.next.Push(out) {
			return false
		}
	}
	return true
}

// FlatMap maps each element to zero or more outputs. Each output travels
// through the rest of the pipeline on its own, so a downstream Take can
// stop in the middle of an expansion.
func FlatMap[In, Out any](f func(In) []Out) Transducer[In, Out] {
	mustFunc("f", f)
	return flatMapT[In, Out]{f: func(v In) iter.Seq[Out] {
		outs := f(v)
		return func(yield func(Out) bool) {
			for _, o := range outs {
				if !yield(o) {
					return
				}
			}
		}
	}}
}

// FlatMapSeq is FlatMap for functions that produce a lazy sequence. The
// sequence is abandoned as soon as the pipeline stops.
func FlatMapSeq[In, Out any](f func(In) iter.Seq[Out]) Transducer[In, Out] {
	mustFunc("f", f)
	return flatMapT[In, Out]{f: f}
}

type takeT[T any] struct {
	n int
}

func (t takeT[T]) Bind(next Sink[T]) Sink[T] {
	return &takeStage[T]{relay: relay[T]{next}, remaining: t.n}
}

type takeStage[T any] struct {
	relay[T]
	remaining int
}

func (s *takeStage[T]) Push(v T) bool {
	if s.remaining <= 0 {
		return false
	}
	s.remaining--
	more := s.next.Push(v)
	return more && s.remaining > 0
}

func (s *takeStage[T]) Halted() bool {
	return s.remaining <= 0 || s.next.Halted()
}

// TakeSafe is Take returning a *errors.ValidationError for a negative n.
func TakeSafe[T any](n int) (Transducer[T, T], error) {
	if err := validation.ValidateNonNegative(module, "n", n); err != nil {
		return nil, err
	}
	return takeT[T]{n: n}, nil
}

// Take passes the first n elements and then stops. The n-th element is
// delivered together with the Stop, so no further source element is
// pulled. Take(0) is stopped before the first pull.
//
// Take panics with a *errors.ValidationError if n is negative.
func Take[T any](n int) Transducer[T, T] {
	return must(TakeSafe[T](n))
}

type takeWhileT[T any] struct {
	pred func(T) bool
}

func (t takeWhileT[T]) Bind(next Sink[T]) Sink[T] {
	return &takeWhileStage[T]{relay: relay[T]{next}, pred: t.pred}
}

type takeWhileStage[T any] struct {
	relay[T]
	pred func(T) bool
	done bool
}

func (s *takeWhileStage[T]) Push(v T) bool {
	if s.done {
		return false
	}
	if !s.pred(v) {
		s.done = true
		return false
	}
	return s.next.Push(v)
}

func (s *takeWhileStage[T]) Halted() bool {
	return s.done || s.next.Halted()
}

// TakeWhile passes elements while pred holds and stops at the first element
// for which it fails. That element is not emitted.
func TakeWhile[T any](pred func(T) bool) Transducer[T, T] {
	mustFunc("pred", pred)
	return takeWhileT[T]{pred: pred}
}

type dropT[T any] struct {
	n int
}

func (d dropT[T]) Bind(next Sink[T]) Sink[T] {
	return &dropStage[T]{relay: relay[T]{next}, remaining: d.n}
}

type dropStage[T any] struct {
	relay[T]
	remaining int
}

func (s *dropStage[T]) Push(v T) bool {
	if s.remaining > 0 {
		s.remaining--
		return true
	}
	return s.next.Push(v)
}

// DropSafe is Drop returning a *errors.ValidationError for a negative n.
func DropSafe[T any](n int) (Transducer[T, T], error) {
	if err := validation.ValidateNonNegative(module, "n", n); err != nil {
		return nil, err
	}
	return dropT[T]{n: n}, nil
}

// Drop skips the first n elements and passes every element after them.
//
// Drop panics with a *errors.ValidationError if n is negative.
func Drop[T any](n int) Transducer[T, T] {
	return must(DropSafe[T](n))
}

type dropWhileT[T any] struct {
	pred func(T) bool
}

func (d dropWhileT[T]) Bind(next Sink[T]) Sink[T] {
	return &dropWhileStage[T]{relay: relay[T]{next}, pred: d.pred, dropping: true}
}

type dropWhileStage[T any] struct {
	relay[T]
	pred     func(T) bool
	dropping bool
}

func (s *dropWhileStage[T]) Push(v T) bool {
	if s.dropping {
		if s.pred(v) {
			return true
		}
		s.dropping = false
	}
	return s.next.Push(v)
}

// DropWhile skips the leading run of elements satisfying pred. Once one
// element fails pred, everything after it passes, including elements that
// would satisfy pred again.
func DropWhile[T any](pred func(T) bool) Transducer[T, T] {
	mustFunc("pred", pred)
	return dropWhileT[T]{pred: pred}
}

type repeatEachT[T any] struct {
	n int
}

func (r repeatEachT[T]) Bind(next Sink[T]) Sink[T] {
	return &repeatEachStage[T]{relay: relay[T]{next}, n: r.n}
}

type repeatEachStage[T any] struct {
	relay[T]
	n int
}

func (s *repeatEachStage[T]) Push(v T) bool {
	for i := 0; i < s.n; i++ {
		if !s.next.Push(v) {
			return false
		}
	}
	return true
}

// RepeatEachSafe is RepeatEach returning a *errors.ValidationError for a
// negative n.
func RepeatEachSafe[T any](n int) (Transducer[T, T], error) {
	if err := validation.ValidateNonNegative(module, "n", n); err != nil {
		return nil, err
	}
	return repeatEachT[T]{n: n}, nil
}

// RepeatEach emits every element n times in a row. RepeatEach(0) emits
// nothing.
func RepeatEach[T any](n int) Transducer[T, T] {
	return must(RepeatEachSafe[T](n))
}
