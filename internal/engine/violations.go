package engine

import (
	"github.com/google/uuid"

	ctxpkg "github.com/akaoio/akao-sub001/internal/context"
	"github.com/akaoio/akao-sub001/internal/eval"
	"github.com/akaoio/akao-sub001/internal/value"
)

// collectViolations re-runs node under ctx with a QuantifierObserver
// installed, collecting one Violation per forall/exists that evaluated
// false with a concrete witness binding. Because and/or/if/quantifier
// short-circuiting never invokes untraveled branches, this single
// observed pass naturally covers every quantifier along the path that
// made the top-level result false, including ones nested inside other
// quantifiers or boolean connectives.
func collectViolations(ev *eval.Evaluator, node *eval.Node, ctx *ctxpkg.Context) ([]Violation, error) {
	var violations []Violation
	observed := ev.WithObserver(func(n *eval.Node, result bool, witnessVar string, witness value.Value, hasWitness bool) {
		if result || !hasWitness {
			return
		}
		violations = append(violations, Violation{
			ID:       uuid.NewString(),
			Kind:     n.Kind.String(),
			Variable: witnessVar,
			Value:    witness,
			Pos:      n.Pos,
		})
	})
	if _, err := observed.Eval(node, ctx); err != nil {
		return nil, err
	}
	return violations, nil
}
