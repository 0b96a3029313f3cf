package document

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/akaoio/akao-sub001/internal/eval"
	"github.com/akaoio/akao-sub001/internal/value"
)

// exprKeys is the closed set of keys recognised inside an expression
// node. Any mapping key outside this set, found where an expression is
// expected, raises DocumentMalformed via eval.UnknownKey.
var exprKeys = map[string]bool{
	"literal": true, "var": true,
	"function": true, "argument": true, "arguments": true,
	"operator": true, "left": true, "right": true,
	"forall": true, "exists": true, "variable": true, "domain": true, "condition": true,
	"if": true, "then": true, "else": true,
	"fixpoint": true, "expression": true,
}

// LoadDocument reads and parses a rule or philosophy file at path. It
// returns *DocumentMalformed for any missing/ill-typed field, malformed
// metadata.id, or unrecognised expression key.
func LoadDocument(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &DocumentMalformed{Path: path, Reason: "cannot read file", Err: err}
	}
	return Parse(path, data)
}

// Parse parses document bytes already read from path (path is used only
// for error provenance and node Position stamping).
func Parse(path string, data []byte) (*Document, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, &DocumentMalformed{Path: path, Reason: "invalid YAML", Err: err}
	}
	if len(root.Content) == 0 {
		return nil, &DocumentMalformed{Path: path, Reason: "empty document"}
	}
	top := root.Content[0]
	if top.Kind != yaml.MappingNode {
		return nil, &DocumentMalformed{Path: path, Reason: "document root must be a mapping"}
	}

	l := &loader{path: path}
	return l.loadTop(top)
}

type loader struct {
	path string
}

func (l *loader) malformed(reason string, err error) error {
	return &DocumentMalformed{Path: l.path, Reason: reason, Err: err}
}

func (l *loader) loadTop(top *yaml.Node) (*Document, error) {
	metaNode := lookup(top, "metadata")
	if metaNode == nil {
		return nil, l.malformed("missing metadata", nil)
	}
	meta, err := l.loadMetadata(metaNode)
	if err != nil {
		return nil, err
	}

	logicNode := lookup(top, "logic")
	selfValNode := lookup(top, "self_validation")
	formalNode := lookup(top, "formal_logic")
	selfProofNode := lookup(top, "self_proof")

	doc := &Document{Path: l.path, Metadata: meta}

	switch {
	case logicNode != nil && selfValNode != nil:
		doc.Kind = KindRule
		logic, err := l.convertExpr(logicNode)
		if err != nil {
			return nil, err
		}
		doc.Logic = logic
		sv, err := l.convertExpr(selfValNode)
		if err != nil {
			return nil, err
		}
		doc.SelfValidation = sv

	case formalNode != nil && selfProofNode != nil:
		doc.Kind = KindPhilosophy
		stmtNode := lookup(formalNode, "statement")
		if stmtNode == nil {
			return nil, l.malformed("formal_logic missing statement", nil)
		}
		logic, err := l.convertExpr(stmtNode)
		if err != nil {
			return nil, err
		}
		doc.Logic = logic
		sv, err := l.convertExpr(selfProofNode)
		if err != nil {
			return nil, err
		}
		doc.SelfValidation = sv

	default:
		return nil, l.malformed("document must have (logic, self_validation) or (formal_logic, self_proof)", nil)
	}

	if utNode := lookup(top, "unit_tests"); utNode != nil {
		tests, err := l.loadUnitTests(utNode)
		if err != nil {
			return nil, err
		}
		doc.UnitTests = tests
	}

	return doc, nil
}

func (l *loader) loadMetadata(n *yaml.Node) (Metadata, error) {
	idNode := lookup(n, "id")
	nameNode := lookup(n, "name")
	descNode := lookup(n, "description")
	if idNode == nil || nameNode == nil || descNode == nil {
		return Metadata{}, l.malformed("metadata requires id, name, description", nil)
	}
	if idNode.Kind != yaml.ScalarNode || nameNode.Kind != yaml.ScalarNode || descNode.Kind != yaml.ScalarNode {
		return Metadata{}, l.malformed("metadata.id/name/description must be scalar strings", nil)
	}
	id := idNode.Value
	if !idPattern.MatchString(id) {
		return Metadata{}, l.malformed(fmt.Sprintf("metadata.id %q does not match akao:(rule|philosophy):<category>(:<sub>)*:v<int>", id), nil)
	}
	return Metadata{ID: id, Name: nameNode.Value, Description: descNode.Value}, nil
}

func (l *loader) loadUnitTests(n *yaml.Node) ([]UnitTest, error) {
	if n.Kind != yaml.SequenceNode {
		return nil, l.malformed("unit_tests must be a sequence", nil)
	}
	tests := make([]UnitTest, len(n.Content))
	for i, entry := range n.Content {
		if entry.Kind != yaml.MappingNode {
			return nil, l.malformed("unit_tests entry must be a mapping", nil)
		}
		nameNode := lookup(entry, "name")
		setupNode := lookup(entry, "setup")
		expectedNode := lookup(entry, "expected")
		if nameNode == nil || expectedNode == nil {
			return nil, l.malformed("unit_tests entry requires name and expected", nil)
		}
		setup := make(map[string]value.Value)
		if setupNode != nil {
			if setupNode.Kind != yaml.MappingNode {
				return nil, l.malformed("unit_tests setup must be a mapping", nil)
			}
			for j := 0; j+1 < len(setupNode.Content); j += 2 {
				key := setupNode.Content[j].Value
				v, err := l.convertValue(setupNode.Content[j+1])
				if err != nil {
					return nil, err
				}
				setup[key] = v
			}
		}
		expected, err := l.convertValue(expectedNode)
		if err != nil {
			return nil, err
		}
		tests[i] = UnitTest{Name: nameNode.Value, Setup: setup, Expected: expected}
	}
	return tests, nil
}

// convertValue converts a scalar/sequence/mapping YAML node into a Value,
// for positions that are never expression slots (unit_tests' setup and
// expected fields, and any `literal` payload).
func (l *loader) convertValue(n *yaml.Node) (value.Value, error) {
	switch n.Kind {
	case yaml.ScalarNode:
		return scalarValue(n), nil
	case yaml.SequenceNode:
		elems := make([]value.Value, len(n.Content))
		for i, c := range n.Content {
			v, err := l.convertValue(c)
			if err != nil {
				return value.Value{}, err
			}
			elems[i] = v
		}
		return value.NewCollection(elems...), nil
	case yaml.MappingNode:
		obj := value.NewObject()
		for i := 0; i+1 < len(n.Content); i += 2 {
			key := n.Content[i].Value
			v, err := l.convertValue(n.Content[i+1])
			if err != nil {
				return value.Value{}, err
			}
			obj = obj.WithField(key, v)
		}
		return obj, nil
	default:
		return value.Null, nil
	}
}

func scalarValue(n *yaml.Node) value.Value {
	switch n.Tag {
	case "!!bool":
		var b bool
		if err := n.Decode(&b); err == nil {
			return value.NewBoolean(b)
		}
	case "!!int":
		var i int64
		if err := n.Decode(&i); err == nil {
			return value.NewInteger(i)
		}
	case "!!null":
		return value.Null
	}
	return value.NewString(n.Value)
}

// convertExpr parses the closed expression grammar: n must be a mapping
// whose sole discriminating key names one of the recognised forms.
// Position is stamped from n's own line/column so errors and trace
// records can point back at the document (eval.Position).
func (l *loader) convertExpr(n *yaml.Node) (*eval.Node, error) {
	if n.Kind != yaml.MappingNode {
		return nil, l.malformed("expected an expression mapping", nil)
	}
	if err := l.checkKeys(n); err != nil {
		return nil, err
	}
	pos := eval.Position{Path: l.path, Line: n.Line, Column: n.Column}

	if v := lookup(n, "literal"); v != nil {
		lit, err := l.convertValue(v)
		if err != nil {
			return nil, err
		}
		return &eval.Node{Kind: eval.KindLiteral, Pos: pos, Literal: lit}, nil
	}
	if v := lookup(n, "var"); v != nil {
		return &eval.Node{Kind: eval.KindVar, Pos: pos, VarName: v.Value}, nil
	}
	if fn := lookup(n, "function"); fn != nil {
		node := &eval.Node{Kind: eval.KindCall, Pos: pos, FuncName: fn.Value}
		if single := lookup(n, "argument"); single != nil {
			arg, err := l.convertExpr(single)
			if err != nil {
				return nil, err
			}
			node.Args = []*eval.Node{arg}
		} else if many := lookup(n, "arguments"); many != nil {
			if many.Kind != yaml.SequenceNode {
				return nil, l.malformed("function arguments must be a sequence", nil)
			}
			args := make([]*eval.Node, len(many.Content))
			for i, c := range many.Content {
				a, err := l.convertExpr(c)
				if err != nil {
					return nil, err
				}
				args[i] = a
			}
			node.Args = args
		}
		return node, nil
	}
	if op := lookup(n, "operator"); op != nil {
		node := &eval.Node{Kind: eval.KindOp, Pos: pos, Op: op.Value}
		if op.Value == "not" {
			arg := lookup(n, "argument")
			if arg == nil {
				return nil, l.malformed("unary operator requires argument", nil)
			}
			left, err := l.convertExpr(arg)
			if err != nil {
				return nil, err
			}
			node.Left = left
			return node, nil
		}
		leftNode, rightNode := lookup(n, "left"), lookup(n, "right")
		if leftNode == nil || rightNode == nil {
			return nil, l.malformed("binary operator requires left and right", nil)
		}
		left, err := l.convertExpr(leftNode)
		if err != nil {
			return nil, err
		}
		right, err := l.convertExpr(rightNode)
		if err != nil {
			return nil, err
		}
		node.Left, node.Right = left, right
		return node, nil
	}
	if q := lookup(n, "forall"); q != nil {
		return l.convertQuantifier(q, pos, true)
	}
	if q := lookup(n, "exists"); q != nil {
		return l.convertQuantifier(q, pos, false)
	}
	if lookup(n, "if") != nil {
		node := &eval.Node{Kind: eval.KindIf, Pos: pos}
		ifN, thenN, elseN := lookup(n, "if"), lookup(n, "then"), lookup(n, "else")
		if thenN == nil || elseN == nil {
			return nil, l.malformed("if requires then and else", nil)
		}
		var err error
		if node.If, err = l.convertExpr(ifN); err != nil {
			return nil, err
		}
		if node.Then, err = l.convertExpr(thenN); err != nil {
			return nil, err
		}
		if node.Else, err = l.convertExpr(elseN); err != nil {
			return nil, err
		}
		return node, nil
	}
	if fp := lookup(n, "fixpoint"); fp != nil {
		if fp.Kind != yaml.MappingNode {
			return nil, l.malformed("fixpoint must be a mapping", nil)
		}
		varNode := lookup(fp, "variable")
		exprNode := lookup(fp, "expression")
		if varNode == nil || exprNode == nil {
			return nil, l.malformed("fixpoint requires variable and expression", nil)
		}
		node := &eval.Node{Kind: eval.KindFixpoint, Pos: pos, FPVar: varNode.Value}
		expr, err := l.convertExpr(exprNode)
		if err != nil {
			return nil, err
		}
		node.FPExpr = expr
		if argNode := lookup(fp, "argument"); argNode != nil {
			arg, err := l.convertExpr(argNode)
			if err != nil {
				return nil, err
			}
			node.FPArg = arg
		}
		return node, nil
	}

	return nil, l.malformed("expression mapping matches no recognised form", nil)
}

func (l *loader) convertQuantifier(q *yaml.Node, pos eval.Position, isForall bool) (*eval.Node, error) {
	if q.Kind != yaml.MappingNode {
		label := "forall"
		if !isForall {
			label = "exists"
		}
		return nil, l.malformed(label+" must be a mapping", nil)
	}
	varNode := lookup(q, "variable")
	domainNode := lookup(q, "domain")
	condNode := lookup(q, "condition")
	if varNode == nil || domainNode == nil || condNode == nil {
		return nil, l.malformed("forall/exists requires variable, domain, condition", nil)
	}
	domain, err := l.convertExpr(domainNode)
	if err != nil {
		return nil, err
	}
	cond, err := l.convertExpr(condNode)
	if err != nil {
		return nil, err
	}
	kind := eval.KindForall
	if !isForall {
		kind = eval.KindExists
	}
	return &eval.Node{Kind: kind, Pos: pos, BoundVar: varNode.Value, Domain: domain, Condition: cond}, nil
}

// checkKeys rejects any expression mapping key outside the closed
// grammar, folding eval.UnknownKey into DocumentMalformed.
func (l *loader) checkKeys(n *yaml.Node) error {
	for i := 0; i+1 < len(n.Content); i += 2 {
		key := n.Content[i].Value
		if !exprKeys[key] {
			return l.malformed("unrecognised expression key", &eval.UnknownKey{Key: key})
		}
	}
	return nil
}

// lookup returns the value node paired with key in mapping n, or nil if
// absent or n is not a mapping.
func lookup(n *yaml.Node, key string) *yaml.Node {
	if n == nil || n.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(n.Content); i += 2 {
		if n.Content[i].Value == key {
			return n.Content[i+1]
		}
	}
	return nil
}
