package transduce

// Reducer is a reducing function: it folds one value into the accumulator
// and reports whether the fold should continue.
type Reducer[A, T any] func(acc A, v T) Step[A]

// Sink is a bound reducing function seen from the push side. Every stage
// of a bound pipeline is a Sink feeding the next one; the last Sink holds
// the accumulator.
//
// Sinks are not safe for concurrent use. A Sink belongs to exactly one run.
type Sink[T any] interface {
	// Push feeds one value. It returns false once this stage, or any stage
	// downstream of it, has stopped; the caller must not push again.
	Push(v T) bool

	// Flush signals the end of input. Buffering stages emit what they hold,
	// unless the downstream has already stopped, then flush downstream.
	Flush()

	// Halted reports whether this stage or anything downstream has stopped.
	Halted() bool
}

// Transducer adapts a Sink of Out values into a Sink of In values.
//
// Bind allocates whatever per-run state the transformation needs (counters,
// buffers, seen-sets). A Transducer value itself holds only configuration,
// so it may be bound any number of times, from any number of goroutines.
type Transducer[In, Out any] interface {
	Bind(next Sink[Out]) Sink[In]
}

// BindFunc adapts an ordinary function to the Transducer interface.
type BindFunc[In, Out any] func(next Sink[Out]) Sink[In]

// Bind implements Transducer.
func (f BindFunc[In, Out]) Bind(next Sink[Out]) Sink[In] { return f(next) }

// relay is embedded by stages that pass Flush and Halted straight through.
type relay[T any] struct {
	next Sink[T]
}

func (r relay[T]) Flush() { r.next.Flush() }

func (r relay[T]) Halted() bool { return r.next.Halted() }

// reducerSink terminates a bound pipeline and owns the accumulator.
type reducerSink[A, T any] struct {
	acc     A
	reduce  Reducer[A, T]
	stopped bool
}

func (s *reducerSink[A, T]) Push(v T) bool {
	if s.stopped {
		return false
	}
	step := s.reduce(s.acc, v)
	s.acc = step.Unwrap()
	s.stopped = step.IsStop()
	return !s.stopped
}

func (s *reducerSink[A, T]) Flush() {}

func (s *reducerSink[A, T]) Halted() bool { return s.stopped }

// Apply turns a reducing function over Out into a reducing function over In.
//
// The returned Reducer carries the per-run state of t, so it must be used
// for a single fold. Once it has returned a Stop it keeps returning Stop.
// Buffered values (ChunkAll) are never flushed through Apply; use Transduce
// or one of the collectors when a completion step matters.
func Apply[A, In, Out any](t Transducer[In, Out], r Reducer[A, Out]) Reducer[A, In] {
	rs := &reducerSink[A, Out]{reduce: r}
	sink := t.Bind(rs)
	return func(acc A, v In) Step[A] {
		rs.acc = acc
		if sink.Halted() {
			return Stop(acc)
		}
		if !sink.Push(v) {
			return Stop(rs.acc)
		}
		return Continue(rs.acc)
	}
}

type identity[T any] struct{}

func (identity[T]) Bind(next Sink[T]) Sink[T] { return next }

// Identity returns the pass-through transducer. It is a unit for Compose
// on both sides.
func Identity[T any]() Transducer[T, T] {
	return identity[T]{}
}

type composed[A, B, C any] struct {
	first  Transducer[A, B]
	second Transducer[B, C]
}

func (c composed[A, B, C]) Bind(next Sink[C]) Sink[A] {
	return c.first.Bind(c.second.Bind(next))
}

// Compose chains two transducers: values flow through first, then second.
// Composition is associative, so the grouping of a longer chain never
// changes its outputs or the point at which it stops.
func Compose[A, B, C any](first Transducer[A, B], second Transducer[B, C]) Transducer[A, C] {
	return composed[A, B, C]{first: first, second: second}
}

// Compose3 is Compose(Compose(t1, t2), t3).
func Compose3[A, B, C, D any](t1 Transducer[A, B], t2 Transducer[B, C], t3 Transducer[C, D]) Transducer[A, D] {
	return Compose(Compose(t1, t2), t3)
}

// Compose4 is Compose(Compose3(t1, t2, t3), t4).
func Compose4[A, B, C, D, E any](t1 Transducer[A, B], t2 Transducer[B, C], t3 Transducer[C, D], t4 Transducer[D, E]) Transducer[A, E] {
	return Compose(Compose3(t1, t2, t3), t4)
}

// Chain composes any number of same-typed transducers left to right.
// An empty chain is Identity.
func Chain[T any](ts ...Transducer[T, T]) Transducer[T, T] {
	if len(ts) == 0 {
		return Identity[T]()
	}
	out := ts[0]
	for _, t := range ts[1:] {
		out = Compose(out, t)
	}
	return out
}
