package eval

import (
	ctxpkg "github.com/akaoio/akao-sub001/internal/context"
	"github.com/akaoio/akao-sub001/internal/value"
)

// evalFixpoint iterates x_{n+1} = expression[variable := x_n] from a seed
// (FPArg, or Null when absent) until x_{n+1} == x_n by structural
// equality, or the cap is reached. The per-evaluation deadline is checked
// before the cap on every iteration, so Cancelled wins a race against
// NonTermination on the same iteration.
func (e *Evaluator) evalFixpoint(n *Node, ctx *ctxpkg.Context, depth int) (value.Value, error) {
	seed := value.Null
	if n.FPArg != nil {
		v, err := e.evalDepth(n.FPArg, ctx, depth+1)
		if err != nil {
			return value.Value{}, err
		}
		seed = v
	}

	current := seed
	cap := e.opts.cap()
	for i := 0; i < cap; i++ {
		if err := e.checkDeadline(); err != nil {
			return value.Value{}, wrap(n, err)
		}

		ctx.PushScope()
		ctx.Bind(n.FPVar, current)
		next, err := e.evalDepth(n.FPExpr, ctx, depth+1)
		popErr := ctx.PopScope()
		if err != nil {
			return value.Value{}, err
		}
		if popErr != nil {
			return value.Value{}, wrap(n, popErr)
		}

		if value.Equal(next, current) {
			return next, nil
		}
		current = next
	}
	return value.Value{}, wrap(n, &NonTermination{Cap: cap})
}
