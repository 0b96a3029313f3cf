// Package engine implements the rule/philosophy executor: run_document,
// self-check evaluation, unit test execution, and violation extraction,
// layered on top of internal/eval, internal/registry, and
// internal/document.
package engine

import (
	ctxpkg "github.com/akaoio/akao-sub001/internal/context"
	"github.com/akaoio/akao-sub001/internal/document"
	"github.com/akaoio/akao-sub001/internal/eval"
	"github.com/akaoio/akao-sub001/internal/registry"
	"github.com/akaoio/akao-sub001/internal/value"
)

// Engine is the core's outward face: "new(registry) -> Engine;
// load_document(path) -> Document; run(doc, ctx) -> Outcome;
// register_function(name, impure, handler); enable_caching(bool);
// enable_tracing(sink)".
type Engine struct {
	reg *registry.Registry
	ev  *eval.Evaluator
}

// New constructs an Engine around reg whose evaluator uses opts (the zero
// Options means no deadline, the default fixpoint cap, and caching and
// tracing both off until explicitly enabled). It installs logic.is_well_formed and
// logic.all_functions_exist into reg (eval.RegisterIntrospection) so
// every Engine gets them regardless of how reg was built.
func New(reg *registry.Registry, opts eval.Options) *Engine {
	eval.RegisterIntrospection(reg)
	return &Engine{reg: reg, ev: eval.New(reg, opts)}
}

// LoadDocument reads and parses a rule or philosophy file.
func (e *Engine) LoadDocument(path string) (*document.Document, error) {
	return document.LoadDocument(path)
}

// RegisterFunction installs or replaces a handler in the engine's
// registry, for test harnesses.
func (e *Engine) RegisterFunction(name string, impure bool, arity int, h registry.Handler) {
	e.reg.Register(name, impure, arity, h)
}

// EnableCaching toggles the evaluator's expression cache.
func (e *Engine) EnableCaching(enabled bool) { e.ev.EnableCaching(enabled) }

// EnableTracing installs sink as the evaluator's trace destination, or
// disables tracing when sink is nil.
func (e *Engine) EnableTracing(sink eval.Tracer) { e.ev.EnableTracing(sink) }

// thisBindingName reports the well-known name a document is bound under
//: `this_rule` for rules, `this_philosophy` for
// philosophies.
func thisBindingName(k document.Kind) string {
	if k == document.KindPhilosophy {
		return "this_philosophy"
	}
	return "this_rule"
}

// Run executes doc.Logic/SelfValidation/UnitTests against callerCtx
// and returns the aggregated Outcome. It never panics or
// returns a bare error for a malformed evaluation — every fault is
// reified inside Outcome with its provenance.
func (e *Engine) Run(doc *document.Document, callerCtx *ctxpkg.Context) Outcome {
	ctx := callerCtx.Child()
	ctx.PushScope()
	ctx.Bind(thisBindingName(doc.Kind), doc.ToValue())

	var out Outcome

	primary, err := e.ev.Eval(doc.Logic, ctx)
	out.Primary = primary
	out.PrimaryErr = err

	selfCheck, selfErr := e.ev.Eval(doc.SelfValidation, ctx)
	switch {
	case selfErr != nil:
		out.SelfCheck = value.NewBoolean(false)
		out.SelfCheckErr = selfErr
	case !selfCheck.IsBool():
		out.SelfCheck = value.NewBoolean(false)
		out.SelfCheckErr = &eval.TypeMismatch{Op: "self_validation", Err: &value.TypeError{Want: value.KindBoolean, Got: selfCheck.Kind()}}
	default:
		out.SelfCheck = selfCheck
	}

	out.UnitResults = e.runUnitTests(doc, callerCtx)

	if err == nil && primary.IsBool() {
		if b, _ := primary.Bool(); !b {
			violations, verr := collectViolations(e.ev, doc.Logic, callerCtx.Child())
			if verr == nil {
				out.Violations = violations
			}
		}
	}

	return out
}

func (e *Engine) runUnitTests(doc *document.Document, callerCtx *ctxpkg.Context) []UnitResult {
	results := make([]UnitResult, len(doc.UnitTests))
	for i, ut := range doc.UnitTests {
		ctx := callerCtx.Child()
		ctx.PushScope()
		ctx.Bind(thisBindingName(doc.Kind), doc.ToValue())
		ctx.PushScope()
		for name, v := range ut.Setup {
			ctx.Bind(name, v)
		}

		observed, err := e.ev.Eval(doc.Logic, ctx)
		pass := err == nil && value.Equal(observed, ut.Expected)
		results[i] = UnitResult{Name: ut.Name, Pass: pass, Observed: observed, Expected: ut.Expected}
	}
	return results
}
