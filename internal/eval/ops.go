package eval

import (
	ctxpkg "github.com/akaoio/akao-sub001/internal/context"
	"github.com/akaoio/akao-sub001/internal/value"
)

// evalOp implements the logical/comparison operator forms: and, or, not,
// implies, equals, less_than, less_equal, greater_than, greater_equal.
// and/or short-circuit left to right.
func (e *Evaluator) evalOp(n *Node, ctx *ctxpkg.Context, depth int) (value.Value, error) {
	switch n.Op {
	case "not":
		v, err := e.evalDepth(n.Left, ctx, depth+1)
		if err != nil {
			return value.Value{}, err
		}
		b, err := v.Bool()
		if err != nil {
			return value.Value{}, wrap(n, &TypeMismatch{Op: "not", Err: err})
		}
		return value.NewBoolean(!b), nil

	case "and":
		l, err := e.evalBool(n.Left, ctx, depth, "and")
		if err != nil {
			return value.Value{}, err
		}
		if !l {
			return value.NewBoolean(false), nil
		}
		r, err := e.evalBool(n.Right, ctx, depth, "and")
		if err != nil {
			return value.Value{}, err
		}
		return value.NewBoolean(r), nil

	case "or":
		l, err := e.evalBool(n.Left, ctx, depth, "or")
		if err != nil {
			return value.Value{}, err
		}
		if l {
			return value.NewBoolean(true), nil
		}
		r, err := e.evalBool(n.Right, ctx, depth, "or")
		if err != nil {
			return value.Value{}, err
		}
		return value.NewBoolean(r), nil

	case "implies":
		l, err := e.evalBool(n.Left, ctx, depth, "implies")
		if err != nil {
			return value.Value{}, err
		}
		if !l {
			return value.NewBoolean(true), nil
		}
		r, err := e.evalBool(n.Right, ctx, depth, "implies")
		if err != nil {
			return value.Value{}, err
		}
		return value.NewBoolean(r), nil

	case "equals":
		l, r, err := e.evalPair(n, ctx, depth)
		if err != nil {
			return value.Value{}, err
		}
		return value.NewBoolean(value.Equal(l, r)), nil

	case "less_than", "less_equal", "greater_than", "greater_equal":
		l, r, err := e.evalPair(n, ctx, depth)
		if err != nil {
			return value.Value{}, err
		}
		cmp, err := value.Compare(l, r)
		if err != nil {
			return value.Value{}, wrap(n, &TypeMismatch{Op: n.Op, Err: err})
		}
		switch n.Op {
		case "less_than":
			return value.NewBoolean(cmp < 0), nil
		case "less_equal":
			return value.NewBoolean(cmp <= 0), nil
		case "greater_than":
			return value.NewBoolean(cmp > 0), nil
		default:
			return value.NewBoolean(cmp >= 0), nil
		}

	default:
		return value.Value{}, wrap(n, &InternalInvariant{Reason: "unknown operator " + n.Op})
	}
}

func (e *Evaluator) evalBool(n *Node, ctx *ctxpkg.Context, depth int, op string) (bool, error) {
	v, err := e.evalDepth(n, ctx, depth+1)
	if err != nil {
		return false, err
	}
	b, err := v.Bool()
	if err != nil {
		return false, wrap(n, &TypeMismatch{Op: op, Err: err})
	}
	return b, nil
}

func (e *Evaluator) evalPair(n *Node, ctx *ctxpkg.Context, depth int) (value.Value, value.Value, error) {
	l, err := e.evalDepth(n.Left, ctx, depth+1)
	if err != nil {
		return value.Value{}, value.Value{}, err
	}
	r, err := e.evalDepth(n.Right, ctx, depth+1)
	if err != nil {
		return value.Value{}, value.Value{}, err
	}
	return l, r, nil
}
