// Package eval is the expression evaluator: the heart of the
// interpreter. It recursively interprets parsed expression nodes against
// a Context and a function Registry, owns the expression-result cache,
// and drives the optional trace sink.
package eval

import (
	"fmt"

	"github.com/akaoio/akao-sub001/internal/value"
)

// Kind identifies which of the closed set of expression forms a Node is.
type Kind uint8

const (
	KindLiteral Kind = iota
	KindVar
	KindCall
	KindOp
	KindForall
	KindExists
	KindIf
	KindFixpoint
)

func (k Kind) String() string {
	switch k {
	case KindLiteral:
		return "literal"
	case KindVar:
		return "var"
	case KindCall:
		return "function"
	case KindOp:
		return "operator"
	case KindForall:
		return "forall"
	case KindExists:
		return "exists"
	case KindIf:
		return "if"
	case KindFixpoint:
		return "fixpoint"
	default:
		return "unknown"
	}
}

// Position is the provenance the loader attaches to every parsed node,
// so errors and trace records can point back at the document.
type Position struct {
	Path   string
	Line   int
	Column int
}

func (p Position) String() string {
	if p.Path == "" {
		return fmt.Sprintf("%d:%d", p.Line, p.Column)
	}
	return fmt.Sprintf("%s:%d:%d", p.Path, p.Line, p.Column)
}

// Node is a parsed expression-language construct. It is a flat tagged
// union rather than one Go type per form; Kind says which fields are
// meaningful.
type Node struct {
	Kind Kind
	Pos  Position

	// KindLiteral
	Literal value.Value

	// KindVar
	VarName string

	// KindCall
	FuncName string
	Args     []*Node // evaluated left to right

	// KindOp: and, or, not, implies, equals, less_than, less_equal,
	// greater_than, greater_equal. Right is nil for the unary "not".
	Op    string
	Left  *Node
	Right *Node

	// KindForall / KindExists
	BoundVar  string
	Domain    *Node
	Condition *Node

	// KindIf
	If   *Node
	Then *Node
	Else *Node

	// KindFixpoint
	FPVar  string
	FPExpr *Node
	FPArg  *Node // nil means the seed is Null
}

// Literal is a convenience constructor for a leaf literal node, used by
// tests and by the document loader for embedded scalar/sequence values.
func Literal(v value.Value) *Node {
	return &Node{Kind: KindLiteral, Literal: v}
}

// Var is a convenience constructor for a variable-reference node.
func Var(name string) *Node {
	return &Node{Kind: KindVar, VarName: name}
}
