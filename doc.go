/*
Package orlando provides composable transducers for Go: transformations that
are written once, applied to any source, and stop pulling from that source the
moment the result is decided.

Transducers (pkg/transduce):
  - Map, Filter, FlatMap, Take, Drop and their While variants
  - stateful stages: Unique, Dedupe, Chunk, Aperture, Scan, Interpose
  - predicate combinators: Both, Either, Complement, AllPass, AnyPass
  - collectors: ToSlice, Reduce, Sum, First, Find, Partition, GroupBy

Runtime pipelines (pkg/pipeline):
  - a type-erased operation list built at run time
  - map/filter fusion, per-run state, error-returning callables

Streams (pkg/stream):
  - a fluent Stream API over slices, iterators, channels and generators
  - context-aware terminal operations with single-use sources

Support:
  - metrics: Prometheus counters and histograms for pipeline runs
  - config: viper-backed configuration with env and .env overrides
  - common/logging: zerolog construction from configuration

Example usage:

	import (
		"slices"

		"github.com/justinelliottcobb/Orlando/pkg/transduce"
	)

	xf := transduce.Compose3(
		transduce.Map(func(x int) int { return x * 2 }),
		transduce.Filter(func(x int) bool { return x%3 == 0 }),
		transduce.Take[int](5),
	)
	out := transduce.ToSlice(xf, slices.Values(data))
*/
package orlando
