/*
Package transduce provides composable, single-pass transformations over
sequences of values.

A Transducer describes a transformation (map, filter, take, chunk, ...)
independently of where values come from and where they end up. Transducers
compose with Compose and friends into one fused transformation; running it
through a collector pulls each source element once and pushes it through
every stage before the next element is pulled. No intermediate collections
are built.

# Early termination

Stages such as Take and TakeWhile, and collectors such as First and Some,
stop the run. Once stopped, a collector pulls nothing further from the
source, which makes it safe to run pipelines over infinite sequences:

	evens := transduce.Compose(
		transduce.Filter(func(x int) bool { return x%2 == 0 }),
		transduce.Take[int](3),
	)
	transduce.ToSlice(evens, naturals) // [2 4 6], pulls 6 elements

Take(n) delivers its n-th element and the stop signal together, so exactly
as many elements are pulled as are needed.

# State

Stateful stages (Take, Drop, Unique, Chunk, Scan, ...) allocate their state
when a run starts. A Transducer value is configuration only: it can be run
any number of times, and from several goroutines at once, without one run
observing another.

# Constructors

Constructors that take a count or size come in two forms. TakeSafe,
ChunkSafe and the other Safe variants return a *errors.ValidationError for
an out-of-range argument; Take, Chunk and the rest panic with that error.
Passing a nil function to any constructor panics with a ValidationError.

# Reducers

A Reducer folds one value into an accumulator and returns a Step, which is
either Continue or Stop. Apply lifts a Reducer through a Transducer for
callers that drive the fold themselves; Transduce and the collectors built
on it (ToSlice, Sum, Count, First, GroupBy, ...) drive it from an
iter.Seq.
*/
package transduce
