/*
Package stream provides a fluent, Java-style Stream API over the transduce
engine.

A Stream is built from a source and a chain of intermediate operations.
Nothing runs until a terminal operation is called; at that point every
intermediate operation is fused into one transducer and elements are read
from the source one at a time, as far as the terminal operation needs.

Basic Usage:

	result, err := stream.FromSlice([]int{1, 2, 3, 4, 5}).
		Filter(func(x int) bool { return x%2 == 0 }).
		Map(func(x int) int { return x * 2 }).
		ToSlice(ctx)
	// [4 8]

Stream Creation:

	stream.FromSlice([]string{"a", "b", "c"})
	stream.FromSeq(maps.Keys(m))
	stream.FromChannel(ch)
	stream.Generate(func() int { counter++; return counter }) // infinite
	stream.Empty[int]()

Intermediate Operations:

Filter, Map, FlatMap, Distinct, Sorted, Skip, Limit, Peek, TakeWhile and
DropWhile each return a new Stream. Sorted is the only one that reads its
whole input before emitting anything, so it must not be used on an infinite
stream without an earlier Limit or TakeWhile.

Skip and Limit with a negative count do not panic: the stream remembers the
*errors.ValidationError and its terminal operation returns it.

Terminal Operations:

ForEach, Reduce, ToSlice, Count, AnyMatch, AllMatch, NoneMatch, FindFirst,
Min and Max. Short-circuiting operations (Limit, TakeWhile, AnyMatch,
FindFirst, ...) stop reading the source as soon as the answer is known:

	a, b := 0, 1
	fibonacci := stream.Generate(func() int {
		a, b = b, a+b
		return a
	})
	first10, _ := fibonacci.Limit(10).ToSlice(ctx)

Lifecycle:

A stream's source is consumed once. The first terminal operation on a
stream, or on any stream derived from the same source, claims it and
closes it afterwards; later terminal operations return ErrStreamClosed.

Context and Cancellation:

Sources check the context before every read. A cancelled context ends the
run and the terminal operation returns ctx.Err(), discarding any partial
result.
*/
package stream
