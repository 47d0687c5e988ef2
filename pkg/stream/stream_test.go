package stream

import (
	"context"
	"errors"
	"math"
	"slices"
	"strings"
	"testing"

	"github.com/justinelliottcobb/Orlando/internal/testutil"
	oerrors "github.com/justinelliottcobb/Orlando/pkg/common/errors"
)

func intCompare(a, b int) int { return a - b }

func TestFromSlice(t *testing.T) {
	result, err := FromSlice([]int{1, 2, 3, 4, 5}).ToSlice(context.Background())
	testutil.AssertNoError(t, err)
	testutil.AssertDeepEqual(t, result, []int{1, 2, 3, 4, 5})
}

func TestEmpty(t *testing.T) {
	result, err := Empty[int]().ToSlice(context.Background())
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, len(result), 0)

	count, err := Empty[string]().Count(context.Background())
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, count, int64(0))
}

func TestFromChannel(t *testing.T) {
	ch := make(chan string, 3)
	ch <- "hello"
	ch <- "world"
	ch <- "test"
	close(ch)

	result, err := FromChannel(ch).ToSlice(context.Background())
	testutil.AssertNoError(t, err)
	testutil.AssertDeepEqual(t, result, []string{"hello", "world", "test"})
}

func TestFromSeq(t *testing.T) {
	src := testutil.NewCountingSource(testutil.Naturals())

	result, err := FromSeq(src.Seq()).Limit(3).ToSlice(context.Background())
	testutil.AssertNoError(t, err)
	testutil.AssertDeepEqual(t, result, []int{1, 2, 3})
	testutil.AssertEqual(t, src.Pulled(), 3)
}

func TestFilterAndMap(t *testing.T) {
	result, err := FromSlice(testutil.RangeSlice(1, 10)).
		Filter(func(x int) bool { return x%2 == 0 }).
		Map(func(x int) int { return x * 10 }).
		ToSlice(context.Background())

	testutil.AssertNoError(t, err)
	testutil.AssertDeepEqual(t, result, []int{20, 40, 60, 80, 100})
}

func TestFlatMap(t *testing.T) {
	result, err := FromSlice([]int{1, 2, 3}).
		FlatMap(func(x int) []int { return []int{x, x * 10} }).
		ToSlice(context.Background())

	testutil.AssertNoError(t, err)
	testutil.AssertDeepEqual(t, result, []int{1, 10, 2, 20, 3, 30})
}

func TestDistinct(t *testing.T) {
	result, err := FromSlice([]int{1, 2, 2, 3, 1, 4, 3}).Distinct().ToSlice(context.Background())
	testutil.AssertNoError(t, err)
	testutil.AssertDeepEqual(t, result, []int{1, 2, 3, 4})
}

func TestSorted(t *testing.T) {
	result, err := FromSlice([]int{5, 2, 8, 1, 9, 3}).Sorted(intCompare).ToSlice(context.Background())
	testutil.AssertNoError(t, err)
	testutil.AssertDeepEqual(t, result, []int{1, 2, 3, 5, 8, 9})

	words, err := FromSlice([]string{"banana", "apple", "cherry"}).
		Sorted(strings.Compare).
		Limit(2).
		ToSlice(context.Background())
	testutil.AssertNoError(t, err)
	testutil.AssertDeepEqual(t, words, []string{"apple", "banana"})
}

func TestSortedIsStable(t *testing.T) {
	type pair struct{ key, order int }
	in := []pair{{2, 0}, {1, 1}, {2, 2}, {1, 3}}

	result, err := FromSlice(in).
		Sorted(func(a, b pair) int { return a.key - b.key }).
		ToSlice(context.Background())
	testutil.AssertNoError(t, err)
	testutil.AssertDeepEqual(t, result, []pair{{1, 1}, {1, 3}, {2, 0}, {2, 2}})
}

func TestSkipAndLimit(t *testing.T) {
	result, err := FromSlice(testutil.RangeSlice(1, 10)).
		Skip(3).
		Limit(4).
		ToSlice(context.Background())

	testutil.AssertNoError(t, err)
	testutil.AssertDeepEqual(t, result, []int{4, 5, 6, 7})
}

func TestNegativeSkipOrLimit(t *testing.T) {
	_, err := FromSlice([]int{1}).Skip(-1).ToSlice(context.Background())
	testutil.AssertEqual(t, oerrors.IsValidationError(err), true)

	s := FromSlice([]int{1}).Limit(-2).Map(func(x int) int { return x })
	_, err = s.Count(context.Background())
	testutil.AssertEqual(t, oerrors.IsValidationError(err), true)
	testutil.AssertEqual(t, s.IsClosed(), false)
}

func TestHugeSkipAndLimit(t *testing.T) {
	result, err := FromSlice([]int{1, 2, 3}).Limit(math.MaxInt64).ToSlice(context.Background())
	testutil.AssertNoError(t, err)
	testutil.AssertDeepEqual(t, result, []int{1, 2, 3})

	result, err = FromSlice([]int{1, 2, 3}).Skip(math.MaxInt64).ToSlice(context.Background())
	testutil.AssertNoError(t, err)
	testutil.AssertDeepEqual(t, result, []int{})
}

func TestClampCount(t *testing.T) {
	tests := []struct {
		name string
		in   int64
		want int
	}{
		{"zero", 0, 0},
		{"small", 42, 42},
		{"negative", -2, -2},
		{"max int64", math.MaxInt64, math.MaxInt},
		{"min int64", math.MinInt64, math.MinInt},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			testutil.AssertEqual(t, clampCount(tt.in), tt.want)
		})
	}
}

func TestTakeWhileDropWhile(t *testing.T) {
	result, err := FromSlice([]int{1, 5, 12, 20, 3}).
		DropWhile(func(x int) bool { return x < 10 }).
		TakeWhile(func(x int) bool { return x > 10 }).
		ToSlice(context.Background())

	testutil.AssertNoError(t, err)
	testutil.AssertDeepEqual(t, result, []int{12, 20})
}

func TestPeek(t *testing.T) {
	var peeked []int

	result, err := FromSlice([]int{1, 2, 3, 4}).
		Peek(func(x int) { peeked = append(peeked, x) }).
		Limit(2).
		ToSlice(context.Background())

	testutil.AssertNoError(t, err)
	testutil.AssertDeepEqual(t, result, []int{1, 2})
	testutil.AssertDeepEqual(t, peeked, []int{1, 2})
}

func TestForEach(t *testing.T) {
	var sum int
	err := FromSlice([]int{1, 2, 3}).ForEach(context.Background(), func(x int) { sum += x })
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, sum, 6)
}

func TestReduce(t *testing.T) {
	sum, err := FromSlice([]int{1, 2, 3, 4}).Reduce(context.Background(), 10, func(a, b int) int { return a + b })
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, sum, 20)
}

func TestCount(t *testing.T) {
	count, err := FromSlice(testutil.RangeSlice(1, 9)).
		Filter(func(x int) bool { return x%3 == 0 }).
		Count(context.Background())
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, count, int64(3))
}

func TestFindFirst(t *testing.T) {
	v, found, err := FromSlice([]int{1, 3, 4, 6}).
		Filter(func(x int) bool { return x%2 == 0 }).
		FindFirst(context.Background())
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, found, true)
	testutil.AssertEqual(t, v, 4)

	_, found, err = Empty[int]().FindFirst(context.Background())
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, found, false)
}

func TestMatchers(t *testing.T) {
	even := func(x int) bool { return x%2 == 0 }
	ctx := context.Background()

	tests := []struct {
		name string
		run  func() (bool, error)
		want bool
	}{
		{"any match", func() (bool, error) { return FromSlice([]int{1, 2}).AnyMatch(ctx, even) }, true},
		{"any match none", func() (bool, error) { return FromSlice([]int{1, 3}).AnyMatch(ctx, even) }, false},
		{"all match", func() (bool, error) { return FromSlice([]int{2, 4}).AllMatch(ctx, even) }, true},
		{"all match fails", func() (bool, error) { return FromSlice([]int{2, 3}).AllMatch(ctx, even) }, false},
		{"all match empty", func() (bool, error) { return Empty[int]().AllMatch(ctx, even) }, true},
		{"none match", func() (bool, error) { return FromSlice([]int{1, 3}).NoneMatch(ctx, even) }, true},
		{"none match fails", func() (bool, error) { return FromSlice([]int{1, 2}).NoneMatch(ctx, even) }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.run()
			testutil.AssertNoError(t, err)
			testutil.AssertEqual(t, got, tt.want)
		})
	}
}

func TestMinMax(t *testing.T) {
	ctx := context.Background()

	minV, found, err := FromSlice([]int{5, 2, 8, 1, 9}).Min(ctx, intCompare)
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, found, true)
	testutil.AssertEqual(t, minV, 1)

	maxV, found, err := FromSlice([]int{5, 2, 8, 1, 9}).Max(ctx, intCompare)
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, found, true)
	testutil.AssertEqual(t, maxV, 9)

	_, found, err = Empty[int]().Min(ctx, intCompare)
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, found, false)
}

func TestContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Generate(func() int { return 1 }).ToSlice(ctx)
	testutil.AssertEqual(t, errors.Is(err, context.Canceled), true)
}

func TestCancellationMidRun(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	n := 0
	result, err := Generate(func() int { n++; return n }).
		Peek(func(x int) {
			if x == 5 {
				cancel()
			}
		}).
		ToSlice(ctx)

	testutil.AssertEqual(t, errors.Is(err, context.Canceled), true)
	testutil.AssertEqual(t, result == nil, true)
}

func TestCancellationDiscardsBufferedElements(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	n := 0
	var seen []int
	err := Generate(func() int {
		n++
		if n == 3 {
			cancel()
		}
		return 10 - n
	}).
		Sorted(intCompare).
		ForEach(ctx, func(x int) { seen = append(seen, x) })

	testutil.AssertEqual(t, errors.Is(err, context.Canceled), true)
	testutil.AssertEqual(t, len(seen), 0)
}

func TestSortedFlushesAfterNormalEnd(t *testing.T) {
	var seen []int
	err := FromSlice([]int{3, 1, 2}).
		Sorted(intCompare).
		ForEach(context.Background(), func(x int) { seen = append(seen, x) })

	testutil.AssertNoError(t, err)
	testutil.AssertDeepEqual(t, seen, []int{1, 2, 3})
}

func TestStreamClosing(t *testing.T) {
	s := FromSlice([]int{1, 2, 3})
	testutil.AssertEqual(t, s.IsClosed(), false)

	_, err := s.ToSlice(context.Background())
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, s.IsClosed(), true)

	_, err = s.Count(context.Background())
	testutil.AssertEqual(t, errors.Is(err, ErrStreamClosed), true)

	closed := FromSlice([]int{1})
	testutil.AssertNoError(t, closed.Close())
	testutil.AssertNoError(t, closed.Close())
	_, err = closed.ToSlice(context.Background())
	testutil.AssertEqual(t, errors.Is(err, ErrStreamClosed), true)
}

func TestDerivedStreamsShareSource(t *testing.T) {
	base := FromSlice([]int{1, 2, 3})
	evens := base.Filter(func(x int) bool { return x%2 == 0 })

	got, err := evens.ToSlice(context.Background())
	testutil.AssertNoError(t, err)
	testutil.AssertDeepEqual(t, got, []int{2})

	testutil.AssertEqual(t, base.IsClosed(), true)
	_, err = base.ToSlice(context.Background())
	testutil.AssertEqual(t, errors.Is(err, ErrStreamClosed), true)
}

func TestGenerateInfinite(t *testing.T) {
	counter := 0
	result, err := Generate(func() int {
		counter++
		return counter
	}).
		Filter(func(x int) bool { return x%2 == 0 }).
		Limit(5).
		ToSlice(context.Background())

	testutil.AssertNoError(t, err)
	testutil.AssertDeepEqual(t, result, []int{2, 4, 6, 8, 10})
	testutil.AssertEqual(t, counter, 10)
}

func TestFromSeqCloseWithoutRun(t *testing.T) {
	s := FromSeq(slices.Values([]int{1, 2}))
	testutil.AssertNoError(t, s.Close())
}
