package eval

import (
	"time"

	ctxpkg "github.com/akaoio/akao-sub001/internal/context"
	"github.com/akaoio/akao-sub001/internal/registry"
	"github.com/akaoio/akao-sub001/internal/value"
)

// QuantifierObserver is invoked once per forall/exists node after it
// finishes evaluating, with the node's overall result and the single
// element that decided it early: the first false element of a forall
// that returned false, or the first true element of an exists that
// returned true. Any other outcome (including an exists that returned
// false) arrives with hasWitness false. The
// executor (internal/engine) installs one to recover per-node violation
// provenance without a second tree-walk pass.
type QuantifierObserver func(n *Node, result bool, witnessVar string, witness value.Value, hasWitness bool)

// Options configures one Evaluator instance. The zero Options value is a
// usable, tracing-off, caching-off, uncapped-deadline configuration
// except for FixpointCap, which defaults to 1024 when left at zero.
type Options struct {
	Deadline    time.Time // zero value means no deadline
	FixpointCap int       // 0 means use the default of 1024
	EnableCache bool
	Tracer      Tracer
	OnQuantifier QuantifierObserver
}

func (o Options) cap() int {
	if o.FixpointCap <= 0 {
		return 1024
	}
	return o.FixpointCap
}

// Evaluator is the closed-grammar expression evaluator. One Evaluator
// owns one cache; it must not be shared across concurrent evaluations
// that mutate different Contexts unless those evaluations are read-only
// with respect to the cache's own bookkeeping, which the internal mutex
// in cache guarantees.
type Evaluator struct {
	reg   *registry.Registry
	cache *cache
	opts  Options
}

// New constructs an Evaluator bound to reg. reg must not be mutated for
// the lifetime of the Evaluator.
func New(reg *registry.Registry, opts Options) *Evaluator {
	return &Evaluator{reg: reg, cache: newCache(), opts: opts}
}

// EnableCaching toggles the expression cache. Disabling it does not
// forget previously memoized answers; ClearCache does.
func (e *Evaluator) EnableCaching(enabled bool) { e.opts.EnableCache = enabled }

// ClearCache discards every memoized result. Call it when the function
// registry changes, or whenever a caller wants a clean slate.
func (e *Evaluator) ClearCache() { e.cache.clear() }

// EnableTracing installs sink as the trace destination, or disables
// tracing when sink is nil.
func (e *Evaluator) EnableTracing(sink Tracer) {
	if sink == nil {
		sink = NopTracer
	}
	e.opts.Tracer = sink
}

// WithObserver returns a copy of the Evaluator configured to invoke obs
// for every forall/exists node evaluated, leaving the receiver
// unmodified. The executor uses this to run an observed second pass
// over `logic` without perturbing the Evaluator used for the first,
// unobserved pass.
func (e *Evaluator) WithObserver(obs QuantifierObserver) *Evaluator {
	cp := *e
	cp.opts.OnQuantifier = obs
	return &cp
}

// Eval interprets node against ctx, returning the resulting Value or a
// typed error (NameError, TypeMismatch, FunctionError, NonTermination,
// Cancelled, or InternalInvariant, each possibly wrapped in an
// *EvalError carrying node provenance). ctx's scope depth is always
// restored to its value on entry, on every return path.
func (e *Evaluator) Eval(node *Node, ctx *ctxpkg.Context) (value.Value, error) {
	return e.evalDepth(node, ctx, 0)
}

func (e *Evaluator) evalDepth(n *Node, ctx *ctxpkg.Context, depth int) (value.Value, error) {
	if err := e.checkDeadline(); err != nil {
		return value.Value{}, wrap(n, err)
	}

	if e.opts.EnableCache && isPure(n, e.reg) {
		if v, ok := e.cache.get(n); ok {
			return v, nil
		}
	}

	start := time.Now()
	v, err := e.dispatch(n, ctx, depth)
	if e.opts.Tracer != nil {
		e.opts.Tracer.Emit(Record{
			NodeKind: n.Kind,
			Pos:      n.Pos,
			Depth:    depth,
			Outcome:  v,
			Err:      err,
			Elapsed:  time.Since(start),
		})
	}
	if err != nil {
		return value.Value{}, err
	}

	if e.opts.EnableCache && isPure(n, e.reg) {
		e.cache.put(n, v)
	}
	return v, nil
}

func (e *Evaluator) checkDeadline() error {
	if e.opts.Deadline.IsZero() {
		return nil
	}
	if time.Now().After(e.opts.Deadline) {
		return &Cancelled{}
	}
	return nil
}

func (e *Evaluator) dispatch(n *Node, ctx *ctxpkg.Context, depth int) (value.Value, error) {
	switch n.Kind {
	case KindLiteral:
		return n.Literal, nil
	case KindVar:
		v, err := ctx.Get(n.VarName)
		if err != nil {
			return value.Value{}, wrap(n, err)
		}
		return v, nil
	case KindCall:
		return e.evalCall(n, ctx, depth)
	case KindOp:
		return e.evalOp(n, ctx, depth)
	case KindForall:
		return e.evalQuantifier(n, ctx, depth, true)
	case KindExists:
		return e.evalQuantifier(n, ctx, depth, false)
	case KindIf:
		return e.evalIf(n, ctx, depth)
	case KindFixpoint:
		return e.evalFixpoint(n, ctx, depth)
	default:
		return value.Value{}, wrap(n, &InternalInvariant{Reason: "unknown node kind"})
	}
}

func (e *Evaluator) evalCall(n *Node, ctx *ctxpkg.Context, depth int) (value.Value, error) {
	args := make([]value.Value, len(n.Args))
	for i, a := range n.Args {
		v, err := e.evalDepth(a, ctx, depth+1)
		if err != nil {
			return value.Value{}, err
		}
		args[i] = v
	}
	v, err := e.reg.Call(n.FuncName, args)
	if err != nil {
		return value.Value{}, wrap(n, err)
	}
	return v, nil
}

func (e *Evaluator) evalIf(n *Node, ctx *ctxpkg.Context, depth int) (value.Value, error) {
	cond, err := e.evalDepth(n.If, ctx, depth+1)
	if err != nil {
		return value.Value{}, err
	}
	b, err := cond.Bool()
	if err != nil {
		return value.Value{}, wrap(n, &TypeMismatch{Op: "if", Err: err})
	}
	if b {
		return e.evalDepth(n.Then, ctx, depth+1)
	}
	return e.evalDepth(n.Else, ctx, depth+1)
}

// evalQuantifier implements forall (isForall=true) and exists
// (isForall=false): push a scope, bind BoundVar, evaluate Condition,
// pop the scope on every path. Empty domain is true for
// forall, false for exists; both early-terminate.
func (e *Evaluator) evalQuantifier(n *Node, ctx *ctxpkg.Context, depth int, isForall bool) (value.Value, error) {
	domain, err := e.evalDepth(n.Domain, ctx, depth+1)
	if err != nil {
		return value.Value{}, err
	}
	elems, err := domain.Elements()
	if err != nil {
		return value.Value{}, wrap(n, err)
	}

	result := isForall // empty domain: true for forall, false for exists

	var witnessVar string
	var witness value.Value
	hasWitness := false

	for _, elem := range elems {
		if err := e.checkDeadline(); err != nil {
			return value.Value{}, wrap(n, err)
		}
		ctx.PushScope()
		ctx.Bind(n.BoundVar, elem)
		condVal, err := e.evalDepth(n.Condition, ctx, depth+1)
		popErr := ctx.PopScope()
		if err != nil {
			return value.Value{}, err
		}
		if popErr != nil {
			return value.Value{}, wrap(n, popErr)
		}
		b, err := condVal.Bool()
		if err != nil {
			return value.Value{}, wrap(n, &TypeMismatch{Op: n.Kind.String(), Err: err})
		}
		if isForall && !b {
			result = false
			witnessVar, witness, hasWitness = n.BoundVar, elem, true
			break
		}
		if !isForall && b {
			result = true
			witnessVar, witness, hasWitness = n.BoundVar, elem, true
			break
		}
	}

	if e.opts.OnQuantifier != nil {
		e.opts.OnQuantifier(n, result, witnessVar, witness, hasWitness)
	}

	return value.NewBoolean(result), nil
}
