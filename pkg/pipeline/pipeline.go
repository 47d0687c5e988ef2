package pipeline

import (
	"iter"
	"slices"

	"github.com/rs/zerolog"

	"github.com/justinelliottcobb/Orlando/pkg/common/logging"
	"github.com/justinelliottcobb/Orlando/pkg/common/validation"
	"github.com/justinelliottcobb/Orlando/pkg/metrics"
)

const module = "pipeline"

// DefaultName labels the logs and metrics of pipelines built without
// WithName or WithMetrics.
const DefaultName = "default"

type options struct {
	name    string
	logger  zerolog.Logger
	metrics *metrics.Registry
	unfused bool
}

// Option configures a Pipeline.
type Option func(*options)

// WithName sets the name used in logs and metric labels.
func WithName(name string) Option {
	return func(o *options) { o.name = name }
}

// WithLogger enables debug events for fusion rewrites and a summary event
// for every terminal call.
func WithLogger(l zerolog.Logger) Option {
	return func(o *options) { o.logger = logging.Component(l, module) }
}

// WithMetrics records every terminal call in reg under the given pipeline
// name.
func WithMetrics(reg *metrics.Registry, name string) Option {
	return func(o *options) {
		o.metrics = reg
		if name != "" {
			o.name = name
		}
	}
}

// Unfused disables the map/filter fusion rewrite. Results are identical
// either way; the option exists for comparison and benchmarking.
func Unfused() Option {
	return func(o *options) { o.unfused = true }
}

// Pipeline is an immutable list of operations applied to type-erased
// values.
//
// Every builder method returns a new Pipeline and leaves its receiver
// untouched, so a partially built pipeline can be extended in several
// directions. Terminal calls allocate their own counters and flags, which
// makes one Pipeline safe to run repeatedly and from several goroutines.
type Pipeline struct {
	ops  []Operation
	opts *options
}

// New creates an empty pipeline, which passes every value through.
func New(opts ...Option) *Pipeline {
	o := &options{name: DefaultName, logger: zerolog.Nop()}
	for _, opt := range opts {
		opt(o)
	}
	return &Pipeline{opts: o}
}

// Operations returns a copy of the operation list after fusion.
func (p *Pipeline) Operations() []Operation {
	return slices.Clone(p.ops)
}

// Len returns the number of operations.
func (p *Pipeline) Len() int {
	return len(p.ops)
}

// Name returns the name used in logs and metric labels.
func (p *Pipeline) Name() string {
	return p.opts.name
}

func (p *Pipeline) with(op Operation) *Pipeline {
	ops := make([]Operation, len(p.ops), len(p.ops)+1)
	copy(ops, p.ops)
	return &Pipeline{ops: append(ops, op), opts: p.opts}
}

func mustFunc(field string, fn any) {
	if err := validation.ValidateNotNil(module, field, fn); err != nil {
		panic(err)
	}
}

// Map appends a transformation.
func (p *Pipeline) Map(f Func) *Pipeline {
	mustFunc("f", f)
	return p.with(Operation{Kind: KindMap, Map: f})
}

// Filter appends a filter. When the last operation is a plain Map, the
// two are fused into a single MapFilter node.
func (p *Pipeline) Filter(pred Predicate) *Pipeline {
	mustFunc("pred", pred)
	n := len(p.ops)
	if !p.opts.unfused && n > 0 && p.ops[n-1].Kind == KindMap {
		ops := slices.Clone(p.ops)
		ops[n-1] = Operation{Kind: KindMapFilter, Map: ops[n-1].Map, Pred: pred}

		p.opts.logger.Debug().
			Str(logging.FieldPipeline, p.opts.name).
			Int("index", n-1).
			Msg("fused map and filter")
		p.opts.metrics.ObserveFusion(p.opts.name)

		return &Pipeline{ops: ops, opts: p.opts}
	}
	return p.with(Operation{Kind: KindFilter, Pred: pred})
}

// Reject appends a filter that drops the values for which pred holds.
func (p *Pipeline) Reject(pred Predicate) *Pipeline {
	mustFunc("pred", pred)
	return p.with(Operation{Kind: KindReject, Pred: pred})
}

// FlatMap appends an expansion. Each expanded value runs through the
// remaining operations on its own.
func (p *Pipeline) FlatMap(f Expander) *Pipeline {
	mustFunc("f", f)
	return p.with(Operation{Kind: KindFlatMap, Expand: f})
}

// TakeSafe is Take returning a *errors.ValidationError for a negative n.
func (p *Pipeline) TakeSafe(n int) (*Pipeline, error) {
	if err := validation.ValidateNonNegative(module, "n", n); err != nil {
		return nil, err
	}
	return p.with(Operation{Kind: KindTake, N: n}), nil
}

// Take appends a limit: the n-th value reaching it is passed on and the
// run stops. Take(0) stops the run before anything is pulled.
//
// Take panics with a *errors.ValidationError if n is negative.
func (p *Pipeline) Take(n int) *Pipeline {
	q, err := p.TakeSafe(n)
	if err != nil {
		panic(err)
	}
	return q
}

// TakeWhile passes values while pred holds and stops the run at the first
// value for which it fails.
func (p *Pipeline) TakeWhile(pred Predicate) *Pipeline {
	mustFunc("pred", pred)
	return p.with(Operation{Kind: KindTakeWhile, Pred: pred})
}

// DropSafe is Drop returning a *errors.ValidationError for a negative n.
func (p *Pipeline) DropSafe(n int) (*Pipeline, error) {
	if err := validation.ValidateNonNegative(module, "n", n); err != nil {
		return nil, err
	}
	return p.with(Operation{Kind: KindDrop, N: n}), nil
}

// Drop skips the first n values reaching it.
//
// Drop panics with a *errors.ValidationError if n is negative.
func (p *Pipeline) Drop(n int) *Pipeline {
	q, err := p.DropSafe(n)
	if err != nil {
		panic(err)
	}
	return q
}

// DropWhile skips the leading values for which pred holds.
func (p *Pipeline) DropWhile(pred Predicate) *Pipeline {
	mustFunc("pred", pred)
	return p.with(Operation{Kind: KindDropWhile, Pred: pred})
}

// Tap calls f on every value reaching it and passes the value on.
func (p *Pipeline) Tap(f Effect) *Pipeline {
	mustFunc("f", f)
	return p.with(Operation{Kind: KindTap, Effect: f})
}

// Pluck appends a Map reading field key of map[string]any records. Values
// that are not such records, or lack the field, become nil.
func (p *Pipeline) Pluck(key string) *Pipeline {
	return p.Map(func(v any) (any, error) {
		rec, ok := v.(map[string]any)
		if !ok {
			return nil, nil
		}
		return rec[key], nil
	})
}

// Values lifts a slice of values into a source.
func Values(vs []any) iter.Seq[any] {
	return slices.Values(vs)
}

// FromSlice lifts a typed slice into a source of boxed values.
func FromSlice[T any](xs []T) iter.Seq[any] {
	return func(yield func(any) bool) {
		for _, x := range xs {
			if !yield(x) {
				return
			}
		}
	}
}
