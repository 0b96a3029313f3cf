package eval

import (
	"github.com/akaoio/akao-sub001/internal/registry"
	"github.com/akaoio/akao-sub001/internal/value"
)

// NodeToValue renders an expression node as a generic, structurally
// faithful Value (an Object mirroring the node's own shape, e.g.
// {operator: "and", left: {...}, right: {...}}). It is how the executor
// gives a document's `logic`/`self_validation`/etc. expression slots a
// Value representation when it binds the whole document into context as
// an Object — expression slots are parsed Nodes, not
// Values, so self-validation logic like
// has_field(this_rule, "logic") needs *something* Value-shaped to find.
// A literal node renders as its literal Value itself, not as a
// {literal: ...} Object. A nil node becomes Null.
func NodeToValue(n *Node) value.Value {
	if n == nil {
		return value.Null
	}
	obj := value.NewObject()
	switch n.Kind {
	case KindLiteral:
		return n.Literal
	case KindVar:
		return obj.WithField("var", value.NewString(n.VarName))
	case KindCall:
		obj = obj.WithField("function", value.NewString(n.FuncName))
		args := make([]value.Value, len(n.Args))
		for i, a := range n.Args {
			args[i] = NodeToValue(a)
		}
		return obj.WithField("arguments", value.NewCollection(args...))
	case KindOp:
		obj = obj.WithField("operator", value.NewString(n.Op))
		obj = obj.WithField("left", NodeToValue(n.Left))
		if n.Right != nil {
			obj = obj.WithField("right", NodeToValue(n.Right))
		}
		return obj
	case KindForall, KindExists:
		key := "forall"
		if n.Kind == KindExists {
			key = "exists"
		}
		inner := value.NewObject().
			WithField("variable", value.NewString(n.BoundVar)).
			WithField("domain", NodeToValue(n.Domain)).
			WithField("condition", NodeToValue(n.Condition))
		return obj.WithField(key, inner)
	case KindIf:
		obj = obj.WithField("if", NodeToValue(n.If))
		obj = obj.WithField("then", NodeToValue(n.Then))
		obj = obj.WithField("else", NodeToValue(n.Else))
		return obj
	case KindFixpoint:
		inner := value.NewObject().
			WithField("variable", value.NewString(n.FPVar)).
			WithField("expression", NodeToValue(n.FPExpr))
		if n.FPArg != nil {
			inner = inner.WithField("argument", NodeToValue(n.FPArg))
		}
		return obj.WithField("fixpoint", inner)
	default:
		return value.Null
	}
}

// RegisterIntrospection installs logic.is_well_formed and
// logic.all_functions_exist into reg. It lives here, not in
// internal/registry, because checking well-formedness means walking the
// generic NodeToValue shape the grammar produces, and internal/registry
// must not depend on internal/eval (eval already depends on registry).
func RegisterIntrospection(reg *registry.Registry) {
	reg.Register("logic.is_well_formed", false, 1, func(args []value.Value) (value.Value, error) {
		if len(args) != 1 {
			return value.Value{}, nil
		}
		return value.NewBoolean(isWellFormed(args[0])), nil
	})

	reg.Register("logic.all_functions_exist", false, 1, func(args []value.Value) (value.Value, error) {
		if len(args) != 1 {
			return value.Value{}, nil
		}
		ok := true
		for _, name := range collectFunctionNames(args[0]) {
			if !reg.Has(name) {
				ok = false
				break
			}
		}
		return value.NewBoolean(ok), nil
	})
}

var expressionKeys = map[string]bool{
	"literal": true, "var": true, "function": true, "arguments": true,
	"operator": true, "left": true, "right": true,
	"forall": true, "exists": true, "variable": true, "domain": true, "condition": true,
	"if": true, "then": true, "else": true,
	"fixpoint": true, "expression": true, "argument": true,
}

// isWellFormed reports whether v's Object shape uses only keys from the
// closed expression grammar, recursively. Non-Object, non-Collection
// leaves (scalars from a literal) are always well-formed.
func isWellFormed(v value.Value) bool {
	switch v.Kind() {
	case value.KindObject:
		for _, k := range v.Keys() {
			if !expressionKeys[k] {
				return false
			}
			field, _ := v.Field(k)
			if !isWellFormed(field) {
				return false
			}
		}
		return true
	case value.KindCollection:
		elems, _ := v.Elements()
		for _, e := range elems {
			if !isWellFormed(e) {
				return false
			}
		}
		return true
	default:
		return true
	}
}

// collectFunctionNames walks v (a NodeToValue-shaped Object tree) and
// returns every name found under a "function" key.
func collectFunctionNames(v value.Value) []string {
	var names []string
	var walk func(value.Value)
	walk = func(v value.Value) {
		switch v.Kind() {
		case value.KindObject:
			if fn, ok := v.Field("function"); ok {
				if s, err := fn.Str(); err == nil {
					names = append(names, s)
				}
			}
			for _, k := range v.Keys() {
				field, _ := v.Field(k)
				walk(field)
			}
		case value.KindCollection:
			elems, _ := v.Elements()
			for _, e := range elems {
				walk(e)
			}
		}
	}
	walk(v)
	return names
}
