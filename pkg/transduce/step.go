package transduce

import "fmt"

// Step is the result of applying a reducing function once: the new
// accumulator plus a flag telling the driving collector whether to keep
// pulling source elements.
//
// The zero Step is Continue with the zero accumulator.
type Step[A any] struct {
	acc  A
	stop bool
}

// Continue returns a Step that asks the collector to keep going.
func Continue[A any](acc A) Step[A] {
	return Step[A]{acc: acc}
}

// Stop returns a Step that ends the run. The collector keeps acc as the
// final accumulator and pulls nothing further from the source.
func Stop[A any](acc A) Step[A] {
	return Step[A]{acc: acc, stop: true}
}

// IsContinue reports whether the step is a Continue.
func (s Step[A]) IsContinue() bool { return !s.stop }

// IsStop reports whether the step is a Stop.
func (s Step[A]) IsStop() bool { return s.stop }

// Unwrap returns the accumulator regardless of variant.
func (s Step[A]) Unwrap() A { return s.acc }

// ContinueValue returns the accumulator and true for a Continue, and the
// zero value and false for a Stop.
func (s Step[A]) ContinueValue() (A, bool) {
	if s.stop {
		var zero A
		return zero, false
	}
	return s.acc, true
}

func (s Step[A]) String() string {
	if s.stop {
		return fmt.Sprintf("Stop(%v)", s.acc)
	}
	return fmt.Sprintf("Continue(%v)", s.acc)
}

// MapStep applies f to the accumulator, preserving the variant.
func MapStep[A, B any](s Step[A], f func(A) B) Step[B] {
	return Step[B]{acc: f(s.acc), stop: s.stop}
}
