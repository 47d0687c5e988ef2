package pipeline

// Func transforms one value. A non-nil error aborts the run.
type Func func(v any) (any, error)

// Predicate tests one value. A non-nil error aborts the run.
type Predicate func(v any) (bool, error)

// Expander maps one value to zero or more values.
type Expander func(v any) ([]any, error)

// Effect observes one value.
type Effect func(v any) error

// Reducer folds one value into the accumulator.
type Reducer func(acc, v any) (any, error)

// Pure lifts a function that cannot fail.
func Pure(f func(any) any) Func {
	return func(v any) (any, error) { return f(v), nil }
}

// Test lifts a predicate that cannot fail.
func Test(pred func(any) bool) Predicate {
	return func(v any) (bool, error) { return pred(v), nil }
}

// Expand lifts an expansion that cannot fail.
func Expand(f func(any) []any) Expander {
	return func(v any) ([]any, error) { return f(v), nil }
}

// Each lifts a side effect that cannot fail.
func Each(f func(any)) Effect {
	return func(v any) error { f(v); return nil }
}

// Fold lifts a reducing function that cannot fail.
func Fold(f func(acc, v any) any) Reducer {
	return func(acc, v any) (any, error) { return f(acc, v), nil }
}

// Kind identifies the variant of an Operation.
type Kind int

const (
	KindMap Kind = iota + 1
	KindFilter
	KindReject
	KindMapFilter
	KindFlatMap
	KindTake
	KindTakeWhile
	KindDrop
	KindDropWhile
	KindTap
)

var kindNames = map[Kind]string{
	KindMap:       "map",
	KindFilter:    "filter",
	KindReject:    "reject",
	KindMapFilter: "map_filter",
	KindFlatMap:   "flat_map",
	KindTake:      "take",
	KindTakeWhile: "take_while",
	KindDrop:      "drop",
	KindDropWhile: "drop_while",
	KindTap:       "tap",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// Operation is one node of a pipeline. Only the fields used by its Kind
// are set:
//
//	KindMap        Map
//	KindFilter     Pred
//	KindReject     Pred
//	KindMapFilter  Map, then Pred on the mapped value
//	KindFlatMap    Expand
//	KindTake       N
//	KindTakeWhile  Pred
//	KindDrop       N
//	KindDropWhile  Pred
//	KindTap        Effect
//
// Operations are values; the functions they hold are shared, never copied.
type Operation struct {
	Kind   Kind
	Map    Func
	Pred   Predicate
	Expand Expander
	Effect Effect
	N      int
}

func (op Operation) String() string {
	return op.Kind.String()
}
