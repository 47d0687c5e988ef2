/*
Package pipeline is a fusing pipeline over type-erased values, for callers
that assemble transformations at run time: from configuration, a query, or
a foreign-language binding.

A Pipeline is a list of Operation values built with chained calls:

	p := pipeline.New().
		Map(pipeline.Pure(func(v any) any { return v.(int) * 2 })).
		Filter(pipeline.Test(func(v any) bool { return v.(int)%3 == 0 })).
		Take(5)

	out, err := p.ToArray(pipeline.FromSlice(numbers))

Every builder call returns a new Pipeline; the receiver is never changed.

# Fusion

When Filter is appended directly after a plain Map, the two are rewritten
into a single MapFilter node, saving one dispatch per value. The rewrite is
local and happens at append time; Operations shows the result. Fusion never
changes results, and the Unfused option turns it off.

# Execution

Each source value is walked through the operation list on its own before
the next one is pulled. FlatMap expansions continue individually through
the operations after it, so a later Take can end the run in the middle of
an expansion. Take(n) delivers its n-th value and ends the run without
pulling another.

Counters and flags used by Take, Drop, TakeWhile and DropWhile live in the
terminal call, never in the Pipeline, so every call starts fresh and one
Pipeline may be run from several goroutines at once.

# Errors

Callables return errors. The first error aborts the terminal call, which
returns it unchanged and discards any partial result. Panics propagate.
Construction mistakes (nil callables, negative counts) panic with a
*errors.ValidationError; TakeSafe and DropSafe return it instead.

# Observability

WithLogger emits a debug event for every fusion rewrite and one summary
event per terminal call. WithMetrics records the same summary in a
metrics.Registry.
*/
package pipeline
