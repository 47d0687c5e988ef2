package transduce

import (
	"iter"

	"golang.org/x/exp/constraints"

	oerrors "github.com/justinelliottcobb/Orlando/pkg/common/errors"
)

// Number is the set of types Sum can add.
type Number interface {
	constraints.Integer | constraints.Float
}

// Transduce is the driver every collector is built on. It binds t to r,
// pulls elements from src one at a time and stops pulling as soon as the
// bound pipeline halts. Buffering stages are flushed once the loop ends.
//
// Panics raised by caller-supplied functions propagate unchanged.
func Transduce[A, In, Out any](t Transducer[In, Out], src iter.Seq[In], init A, r Reducer[A, Out]) A {
	rs := &reducerSink[A, Out]{acc: init, reduce: r}
	sink := t.Bind(rs)
	if !sink.Halted() {
		for v := range src {
			if !sink.Push(v) {
				break
			}
		}
	}
	sink.Flush()
	return rs.acc
}

// ToSlice collects every emitted value. The result is never nil.
func ToSlice[In, Out any](t Transducer[In, Out], src iter.Seq[In]) []Out {
	return Transduce(t, src, []Out{}, func(acc []Out, v Out) Step[[]Out] {
		return Continue(append(acc, v))
	})
}

// Reduce folds every emitted value into init with f.
func Reduce[A, In, Out any](t Transducer[In, Out], src iter.Seq[In], init A, f func(A, Out) A) A {
	return Transduce(t, src, init, func(acc A, v Out) Step[A] {
		return Continue(f(acc, v))
	})
}

// ReduceFromFirst folds the emitted values using the first one as the
// seed. It returns errors.ErrEmptySource when nothing is emitted.
func ReduceFromFirst[In, Out any](t Transducer[In, Out], src iter.Seq[In], f func(Out, Out) Out) (Out, error) {
	type seeded struct {
		v  Out
		ok bool
	}
	res := Transduce(t, src, seeded{}, func(acc seeded, v Out) Step[seeded] {
		if !acc.ok {
			return Continue(seeded{v: v, ok: true})
		}
		return Continue(seeded{v: f(acc.v, v), ok: true})
	})
	if !res.ok {
		var zero Out
		return zero, oerrors.ErrEmptySource
	}
	return res.v, nil
}

// Sum adds the emitted values. It is zero for an empty run.
func Sum[In any, N Number](t Transducer[In, N], src iter.Seq[In]) N {
	return Reduce(t, src, N(0), func(acc, v N) N { return acc + v })
}

// Count returns the number of emitted values.
func Count[In, Out any](t Transducer[In, Out], src iter.Seq[In]) int {
	return Reduce(t, src, 0, func(acc int, _ Out) int { return acc + 1 })
}

type found[T any] struct {
	v  T
	ok bool
}

// First returns the first emitted value. It stops pulling right after it.
func First[In, Out any](t Transducer[In, Out], src iter.Seq[In]) (Out, bool) {
	res := Transduce(t, src, found[Out]{}, func(_ found[Out], v Out) Step[found[Out]] {
		return Stop(found[Out]{v: v, ok: true})
	})
	return res.v, res.ok
}

// Last returns the last emitted value.
func Last[In, Out any](t Transducer[In, Out], src iter.Seq[In]) (Out, bool) {
	res := Transduce(t, src, found[Out]{}, func(_ found[Out], v Out) Step[found[Out]] {
		return Continue(found[Out]{v: v, ok: true})
	})
	return res.v, res.ok
}

// Find returns the first emitted value satisfying pred.
func Find[In, Out any](t Transducer[In, Out], src iter.Seq[In], pred func(Out) bool) (Out, bool) {
	res := Transduce(t, src, found[Out]{}, func(acc found[Out], v Out) Step[found[Out]] {
		if pred(v) {
			return Stop(found[Out]{v: v, ok: true})
		}
		return Continue(acc)
	})
	return res.v, res.ok
}

// Every reports whether pred holds for every emitted value, stopping at
// the first counterexample. It is true for an empty run.
func Every[In, Out any](t Transducer[In, Out], src iter.Seq[In], pred func(Out) bool) bool {
	return Transduce(t, src, true, func(_ bool, v Out) Step[bool] {
		if pred(v) {
			return Continue(true)
		}
		return Stop(false)
	})
}

// Some reports whether pred holds for any emitted value, stopping at the
// first witness. It is false for an empty run.
func Some[In, Out any](t Transducer[In, Out], src iter.Seq[In], pred func(Out) bool) bool {
	return Transduce(t, src, false, func(_ bool, v Out) Step[bool] {
		if pred(v) {
			return Stop(true)
		}
		return Continue(false)
	})
}

// None is the negation of Some.
func None[In, Out any](t Transducer[In, Out], src iter.Seq[In], pred func(Out) bool) bool {
	return !Some(t, src, pred)
}

// Contains reports whether target is emitted.
func Contains[In any, Out comparable](t Transducer[In, Out], src iter.Seq[In], target Out) bool {
	return Some(t, src, func(v Out) bool { return v == target })
}

// Partition splits the emitted values by pred. It always consumes the
// whole source. Both results are non-nil.
func Partition[In, Out any](t Transducer[In, Out], src iter.Seq[In], pred func(Out) bool) (pass, fail []Out) {
	pass, fail = []Out{}, []Out{}
	Transduce(t, src, struct{}{}, func(acc struct{}, v Out) Step[struct{}] {
		if pred(v) {
			pass = append(pass, v)
		} else {
			fail = append(fail, v)
		}
		return Continue(acc)
	})
	return pass, fail
}

// GroupBy buckets the emitted values by key, keeping the emission order
// within each bucket.
func GroupBy[In, Out any, K comparable](t Transducer[In, Out], src iter.Seq[In], key func(Out) K) map[K][]Out {
	return Reduce(t, src, make(map[K][]Out), func(acc map[K][]Out, v Out) map[K][]Out {
		k := key(v)
		acc[k] = append(acc[k], v)
		return acc
	})
}

// PartitionBy splits the emitted values into runs of consecutive values
// sharing the same key.
func PartitionBy[In, Out any, K comparable](t Transducer[In, Out], src iter.Seq[In], key func(Out) K) [][]Out {
	type runs struct {
		groups [][]Out
		cur    []Out
		k      K
	}
	res := Reduce(t, src, runs{groups: [][]Out{}}, func(acc runs, v Out) runs {
		k := key(v)
		if len(acc.cur) > 0 && k != acc.k {
			acc.groups = append(acc.groups, acc.cur)
			acc.cur = nil
		}
		acc.k = k
		acc.cur = append(acc.cur, v)
		return acc
	})
	if len(res.cur) > 0 {
		res.groups = append(res.groups, res.cur)
	}
	return res.groups
}

// Frequencies counts how often each value is emitted.
func Frequencies[In any, Out comparable](t Transducer[In, Out], src iter.Seq[In]) map[Out]int {
	return Reduce(t, src, make(map[Out]int), func(acc map[Out]int, v Out) map[Out]int {
		acc[v]++
		return acc
	})
}
