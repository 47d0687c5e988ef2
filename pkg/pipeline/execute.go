package pipeline

import (
	"fmt"
	"iter"
	"time"

	"github.com/rs/zerolog"

	"github.com/justinelliottcobb/Orlando/pkg/common/logging"
	"github.com/justinelliottcobb/Orlando/pkg/metrics"
)

// Outcome is what happened to one value on its way through the operations.
type Outcome int

const (
	// Keep means the value reached the end of the list.
	Keep Outcome = iota
	// Skip means a filter or drop consumed the value.
	Skip
	// Stop means the run ended at this value. Value is set when the value
	// that triggered the stop is still delivered, as with Take.
	Stop
)

func (o Outcome) String() string {
	switch o {
	case Keep:
		return "keep"
	case Skip:
		return "skip"
	case Stop:
		return "stop"
	default:
		return "unknown"
	}
}

// ProcessResult reports the outcome of pushing one value through a
// pipeline with Process.
type ProcessResult struct {
	Outcome Outcome
	Value   any
	Ok      bool // Value is meaningful
}

// opState is the per-run state of the operation at the same index.
type opState struct {
	seen     int  // Take, Drop
	dropping bool // DropWhile
}

// run is one terminal call. Nothing in it outlives the call.
type run struct {
	ops   []Operation
	state []opState
	emit  func(v any) (bool, error)

	// halt is the largest index of an operation that ended the run, or
	// len(ops) when the collector did. -1 while the run is live.
	halt int

	pulled  int
	emitted int
	failed  Kind
}

func newRun(ops []Operation, emit func(any) (bool, error)) *run {
	r := &run{ops: ops, state: make([]opState, len(ops)), emit: emit, halt: -1}
	for i, op := range ops {
		switch op.Kind {
		case KindDropWhile:
			r.state[i].dropping = true
		case KindTake:
			if op.N == 0 {
				r.stopAt(i)
			}
		}
	}
	return r
}

func (r *run) stopAt(i int) {
	r.halt = max(r.halt, i)
}

func (r *run) halted() bool { return r.halt >= 0 }

// haltedBelow reports whether an operation after index i, or the
// collector, ended the run.
func (r *run) haltedBelow(i int) bool { return r.halt > i }

func (r *run) fail(k Kind, err error) error {
	r.failed = k
	return err
}

// process walks v through ops[from:] and hands it to the collector if it
// survives. Expansions recurse for each expanded value.
func (r *run) process(v any, from int) error {
	for i := from; i < len(r.ops); i++ {
		op := &r.ops[i]
		st := &r.state[i]

		switch op.Kind {
		case KindMap:
			out, err := op.Map(v)
			if err != nil {
				return r.fail(op.Kind, err)
			}
			v = out

		case KindFilter, KindReject:
			ok, err := op.Pred(v)
			if err != nil {
				return r.fail(op.Kind, err)
			}
			if ok != (op.Kind == KindFilter) {
				return nil
			}

		case KindMapFilter:
			out, err := op.Map(v)
			if err != nil {
				return r.fail(op.Kind, err)
			}
			ok, err := op.Pred(out)
			if err != nil {
				return r.fail(op.Kind, err)
			}
			if !ok {
				return nil
			}
			v = out

		case KindFlatMap:
			outs, err := op.Expand(v)
			if err != nil {
				return r.fail(op.Kind, err)
			}
			for _, out := range outs {
				if err := r.process(out, i+1); err != nil {
					return err
				}
				if r.haltedBelow(i) {
					break
				}
			}
			return nil

		case KindTake:
			if st.seen >= op.N {
				r.stopAt(i)
				return nil
			}
			st.seen++
			if st.seen == op.N {
				r.stopAt(i)
			}

		case KindTakeWhile:
			ok, err := op.Pred(v)
			if err != nil {
				return r.fail(op.Kind, err)
			}
			if !ok {
				r.stopAt(i)
				return nil
			}

		case KindDrop:
			if st.seen < op.N {
				st.seen++
				return nil
			}

		case KindDropWhile:
			if st.dropping {
				ok, err := op.Pred(v)
				if err != nil {
					return r.fail(op.Kind, err)
				}
				if ok {
					return nil
				}
				st.dropping = false
			}

		case KindTap:
			if err := op.Effect(v); err != nil {
				return r.fail(op.Kind, err)
			}
		}
	}

	r.emitted++
	more, err := r.emit(v)
	if err != nil {
		return err
	}
	if !more {
		r.stopAt(len(r.ops))
	}
	return nil
}

// execute drives src through the pipeline into emit. It stops pulling as
// soon as an operation or the collector ends the run, and returns the
// first error raised by a caller-supplied function.
func (p *Pipeline) execute(collector string, src iter.Seq[any], emit func(any) (bool, error)) (err error) {
	r := newRun(p.ops, emit)
	start := time.Now()
	defer func() {
		if rec := recover(); rec != nil {
			p.observe(collector, r, fmt.Errorf("panic: %v", rec), failedPanic, time.Since(start))
			panic(rec)
		}
		p.observe(collector, r, err, "", time.Since(start))
	}()

	if r.halted() {
		return nil
	}
	for v := range src {
		r.pulled++
		if err := r.process(v, 0); err != nil {
			return err
		}
		if r.halted() {
			break
		}
	}
	return nil
}

// failedPanic labels runs aborted by a panicking callable.
const failedPanic = "panic"

func (p *Pipeline) observe(collector string, r *run, err error, failed string, elapsed time.Duration) {
	if err != nil && failed == "" {
		// errors raised by the collector's own callable carry its name
		failed = collector
		if r.failed != 0 {
			failed = r.failed.String()
		}
	}

	p.opts.metrics.ObserveRun(metrics.RunStats{
		Pipeline:  p.opts.name,
		Collector: collector,
		Pulled:    r.pulled,
		Emitted:   r.emitted,
		Stopped:   r.halted(),
		Failed:    failed,
		Duration:  elapsed,
	})

	var ev *zerolog.Event
	if err != nil {
		ev = p.opts.logger.Debug().Err(err)
	} else {
		ev = p.opts.logger.Debug()
	}
	ev.Str(logging.FieldPipeline, p.opts.name).
		Str(logging.FieldCollector, collector).
		Int(logging.FieldPulled, r.pulled).
		Int(logging.FieldEmitted, r.emitted).
		Bool(logging.FieldStopped, r.halted()).
		Dur("elapsed", elapsed).
		Msg("run finished")
}

// Process pushes a single value through a fresh run of the pipeline and
// reports what happened to it. It is mainly useful for inspecting how a
// pipeline treats one value; FlatMap expansions report their first
// surviving value.
func (p *Pipeline) Process(v any) (ProcessResult, error) {
	var res ProcessResult
	r := newRun(p.ops, func(out any) (bool, error) {
		if !res.Ok {
			res.Value, res.Ok = out, true
		}
		return true, nil
	})
	if r.halted() {
		return ProcessResult{Outcome: Stop}, nil
	}
	if err := r.process(v, 0); err != nil {
		return ProcessResult{}, err
	}
	switch {
	case r.halted():
		res.Outcome = Stop
	case res.Ok:
		res.Outcome = Keep
	default:
		res.Outcome = Skip
	}
	return res, nil
}

// ToArray runs the pipeline and collects every surviving value. The result
// is never nil on success.
func (p *Pipeline) ToArray(src iter.Seq[any]) ([]any, error) {
	out := []any{}
	err := p.execute("to_array", src, func(v any) (bool, error) {
		out = append(out, v)
		return true, nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Reduce folds the surviving values into init with fn.
func (p *Pipeline) Reduce(src iter.Seq[any], fn Reducer, init any) (any, error) {
	mustFunc("fn", fn)
	acc := init
	err := p.execute("reduce", src, func(v any) (bool, error) {
		next, err := fn(acc, v)
		if err != nil {
			return false, err
		}
		acc = next
		return true, nil
	})
	if err != nil {
		return nil, err
	}
	return acc, nil
}

// Count returns the number of surviving values.
func (p *Pipeline) Count(src iter.Seq[any]) (int, error) {
	n := 0
	err := p.execute("count", src, func(any) (bool, error) {
		n++
		return true, nil
	})
	if err != nil {
		return 0, err
	}
	return n, nil
}

// First returns the first surviving value and stops pulling right after it.
func (p *Pipeline) First(src iter.Seq[any]) (any, bool, error) {
	var (
		first any
		found bool
	)
	err := p.execute("first", src, func(v any) (bool, error) {
		first, found = v, true
		return false, nil
	})
	if err != nil {
		return nil, false, err
	}
	return first, found, nil
}

// ForEach calls fn on every surviving value.
func (p *Pipeline) ForEach(src iter.Seq[any], fn Effect) error {
	mustFunc("fn", fn)
	return p.execute("for_each", src, func(v any) (bool, error) {
		if err := fn(v); err != nil {
			return false, err
		}
		return true, nil
	})
}
