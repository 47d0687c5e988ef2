// Package integration contains integration tests that verify cross-package functionality.
// These tests check that the typed transducers, the type-erased pipeline and the
// stream API agree with one another on the same inputs.
package integration

import (
	"context"
	"fmt"
	"slices"
	"testing"

	"pgregory.net/rapid"

	"github.com/justinelliottcobb/Orlando/internal/testutil"
	"github.com/justinelliottcobb/Orlando/pkg/pipeline"
	"github.com/justinelliottcobb/Orlando/pkg/stream"
	"github.com/justinelliottcobb/Orlando/pkg/transduce"
)

// step is one operation expressed in all three APIs.
type step struct {
	name   string
	xf     transduce.Transducer[int, int]
	extend func(*pipeline.Pipeline) *pipeline.Pipeline
	onto   func(stream.Stream[int]) stream.Stream[int]
}

func drawStep(t *rapid.T, i int) step {
	kind := rapid.IntRange(0, 6).Draw(t, fmt.Sprintf("kind%d", i))
	n := rapid.IntRange(0, 5).Draw(t, fmt.Sprintf("n%d", i))
	m := rapid.IntRange(1, 4).Draw(t, fmt.Sprintf("m%d", i))

	switch kind {
	case 0:
		f := func(x int) int { return x*m - n }
		return step{
			name:   fmt.Sprintf("map(x*%d-%d)", m, n),
			xf:     transduce.Map(f),
			extend: func(p *pipeline.Pipeline) *pipeline.Pipeline { return p.Map(pipeline.Pure(func(v any) any { return f(v.(int)) })) },
			onto:   func(s stream.Stream[int]) stream.Stream[int] { return s.Map(f) },
		}
	case 1:
		pred := func(x int) bool { return x%m == 0 }
		return step{
			name:   fmt.Sprintf("filter(%%%d)", m),
			xf:     transduce.Filter(pred),
			extend: func(p *pipeline.Pipeline) *pipeline.Pipeline { return p.Filter(pipeline.Test(func(v any) bool { return pred(v.(int)) })) },
			onto:   func(s stream.Stream[int]) stream.Stream[int] { return s.Filter(pred) },
		}
	case 2:
		return step{
			name:   fmt.Sprintf("take(%d)", n),
			xf:     transduce.Take[int](n),
			extend: func(p *pipeline.Pipeline) *pipeline.Pipeline { return p.Take(n) },
			onto:   func(s stream.Stream[int]) stream.Stream[int] { return s.Limit(int64(n)) },
		}
	case 3:
		return step{
			name:   fmt.Sprintf("drop(%d)", n),
			xf:     transduce.Drop[int](n),
			extend: func(p *pipeline.Pipeline) *pipeline.Pipeline { return p.Drop(n) },
			onto:   func(s stream.Stream[int]) stream.Stream[int] { return s.Skip(int64(n)) },
		}
	case 4:
		pred := func(x int) bool { return x < n*5 }
		return step{
			name:   fmt.Sprintf("takeWhile(<%d)", n*5),
			xf:     transduce.TakeWhile(pred),
			extend: func(p *pipeline.Pipeline) *pipeline.Pipeline { return p.TakeWhile(pipeline.Test(func(v any) bool { return pred(v.(int)) })) },
			onto:   func(s stream.Stream[int]) stream.Stream[int] { return s.TakeWhile(pred) },
		}
	case 5:
		pred := func(x int) bool { return x < n*5 }
		return step{
			name:   fmt.Sprintf("dropWhile(<%d)", n*5),
			xf:     transduce.DropWhile(pred),
			extend: func(p *pipeline.Pipeline) *pipeline.Pipeline { return p.DropWhile(pipeline.Test(func(v any) bool { return pred(v.(int)) })) },
			onto:   func(s stream.Stream[int]) stream.Stream[int] { return s.DropWhile(pred) },
		}
	default:
		f := func(x int) []int {
			out := make([]int, m)
			for i := range out {
				out[i] = x + i
			}
			return out
		}
		return step{
			name: fmt.Sprintf("flatMap(x%d)", m),
			xf:   transduce.FlatMap(f),
			extend: func(p *pipeline.Pipeline) *pipeline.Pipeline {
				return p.FlatMap(pipeline.Expand(func(v any) []any { return testutil.Boxed(f(v.(int))) }))
			},
			onto: func(s stream.Stream[int]) stream.Stream[int] { return s.FlatMap(f) },
		}
	}
}

// TestThreeEnginesAgree builds the same random chain in every API and checks
// that outputs and the number of source elements read are identical.
func TestThreeEnginesAgree(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		count := rapid.IntRange(0, 6).Draw(t, "steps")
		xs := rapid.SliceOf(rapid.IntRange(-20, 40)).Draw(t, "xs")

		xf := transduce.Identity[int]()
		p := pipeline.New()
		var names []string
		steps := make([]step, 0, count)
		for i := 0; i < count; i++ {
			s := drawStep(t, i)
			steps = append(steps, s)
			names = append(names, s.name)
			xf = transduce.Compose(xf, s.xf)
			p = s.extend(p)
		}

		typedSrc := testutil.NewCountingSource(slices.Values(xs))
		typed := transduce.ToSlice(xf, typedSrc.Seq())

		erasedSrc := testutil.NewCountingSource(pipeline.FromSlice(xs))
		erased, err := p.ToArray(erasedSrc.Seq())
		if err != nil {
			t.Fatal(err)
		}

		streamSrc := testutil.NewCountingSource(slices.Values(xs))
		st := stream.FromSeq(streamSrc.Seq())
		for _, s := range steps {
			st = s.onto(st)
		}
		streamed, err := st.ToSlice(context.Background())
		if err != nil {
			t.Fatal(err)
		}

		if fmt.Sprint(testutil.Boxed(typed)) != fmt.Sprint(erased) {
			t.Fatalf("%v: transduce %v, pipeline %v", names, typed, erased)
		}
		if fmt.Sprint(typed) != fmt.Sprint(streamed) {
			t.Fatalf("%v: transduce %v, stream %v", names, typed, streamed)
		}
		if typedSrc.Pulled() != erasedSrc.Pulled() || typedSrc.Pulled() != streamSrc.Pulled() {
			t.Fatalf("%v: pulled transduce=%d pipeline=%d stream=%d",
				names, typedSrc.Pulled(), erasedSrc.Pulled(), streamSrc.Pulled())
		}
	})
}

// TestScenarioAcrossEngines runs the canonical map, filter, take example in
// every API over an instrumented infinite source.
func TestScenarioAcrossEngines(t *testing.T) {
	want := []int{6, 12, 18, 24, 30}

	typedSrc := testutil.NewCountingSource(testutil.Naturals())
	typed := transduce.ToSlice(transduce.Compose3(
		transduce.Map(func(x int) int { return x * 2 }),
		transduce.Filter(func(x int) bool { return x%3 == 0 }),
		transduce.Take[int](5),
	), typedSrc.Seq())
	testutil.AssertDeepEqual(t, typed, want)
	testutil.AssertEqual(t, typedSrc.Pulled(), 15)

	erasedSrc := testutil.NewCountingSource(testutil.Naturals())
	boxed := func(yield func(any) bool) {
		for v := range erasedSrc.Seq() {
			if !yield(v) {
				return
			}
		}
	}
	erased, err := pipeline.New().
		Map(pipeline.Pure(func(v any) any { return v.(int) * 2 })).
		Filter(pipeline.Test(func(v any) bool { return v.(int)%3 == 0 })).
		Take(5).
		ToArray(boxed)
	testutil.AssertNoError(t, err)
	testutil.AssertDeepEqual(t, erased, testutil.Boxed(want))
	testutil.AssertEqual(t, erasedSrc.Pulled(), 15)

	streamSrc := testutil.NewCountingSource(testutil.Naturals())
	streamed, err := stream.FromSeq(streamSrc.Seq()).
		Map(func(x int) int { return x * 2 }).
		Filter(func(x int) bool { return x%3 == 0 }).
		Limit(5).
		ToSlice(context.Background())
	testutil.AssertNoError(t, err)
	testutil.AssertDeepEqual(t, streamed, want)
	testutil.AssertEqual(t, streamSrc.Pulled(), 15)
}
