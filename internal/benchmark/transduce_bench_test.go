package benchmark

import (
	"slices"
	"testing"

	"github.com/justinelliottcobb/Orlando/internal/testutil"
	"github.com/justinelliottcobb/Orlando/pkg/transduce"
)

// BenchmarkTransduceVsLoop compares a composed transducer with the
// equivalent hand-written loop.
func BenchmarkTransduceVsLoop(b *testing.B) {
	xf := transduce.Compose3(
		transduce.Map(func(x int) int { return x * 2 }),
		transduce.Filter(func(x int) bool { return x%3 == 0 }),
		transduce.Take[int](1000),
	)

	for _, size := range benchSizes {
		data := testutil.RangeSlice(1, size)

		b.Run("transduce/"+sizeLabel(size), func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				_ = transduce.ToSlice(xf, slices.Values(data))
			}
		})

		b.Run("loop/"+sizeLabel(size), func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				out := []int{}
				for _, x := range data {
					y := x * 2
					if y%3 != 0 {
						continue
					}
					out = append(out, y)
					if len(out) == 1000 {
						break
					}
				}
				_ = out
			}
		})
	}
}

// BenchmarkEarlyTermination shows that the cost of a Take-bounded run does
// not depend on the source length.
func BenchmarkEarlyTermination(b *testing.B) {
	xf := transduce.Compose(
		transduce.Filter(func(x int) bool { return x%2 == 0 }),
		transduce.Take[int](10),
	)

	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_ = transduce.ToSlice(xf, testutil.Naturals())
	}
}

// BenchmarkStatefulStages measures the buffering and history-keeping stages.
func BenchmarkStatefulStages(b *testing.B) {
	data := testutil.RangeSlice(1, 10000)

	b.Run("chunk", func(b *testing.B) {
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			_ = transduce.Count(transduce.ChunkAll[int](16), slices.Values(data))
		}
	})
	b.Run("aperture", func(b *testing.B) {
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			_ = transduce.Count(transduce.Aperture[int](4), slices.Values(data))
		}
	})
	b.Run("unique", func(b *testing.B) {
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			_ = transduce.Count(transduce.Unique[int](), slices.Values(data))
		}
	})
}
