// Package document implements the YAML document loader: it turns a rule
// or philosophy file into a typed Document, converting everything
// outside an expression slot to a Value and everything inside one to a
// parsed eval.Node.
package document

import (
	"fmt"
	"regexp"

	"github.com/akaoio/akao-sub001/internal/eval"
	"github.com/akaoio/akao-sub001/internal/value"
)

// Kind distinguishes a rule from a philosophy, the two document shapes.
type Kind int

const (
	KindRule Kind = iota
	KindPhilosophy
)

func (k Kind) String() string {
	if k == KindPhilosophy {
		return "philosophy"
	}
	return "rule"
}

// DocumentMalformed reports a missing or ill-typed document field, a
// malformed metadata.id, or an unknown expression key.
type DocumentMalformed struct {
	Path   string
	Reason string
	Err    error
}

func (e *DocumentMalformed) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("document %q malformed: %s: %v", e.Path, e.Reason, e.Err)
	}
	return fmt.Sprintf("document %q malformed: %s", e.Path, e.Reason)
}

func (e *DocumentMalformed) Unwrap() error { return e.Err }

// idPattern matches metadata.id's grammar:
// akao:(rule|philosophy):<category>(:<sub>)*:v<int>
var idPattern = regexp.MustCompile(`^akao:(rule|philosophy):[A-Za-z0-9_-]+(:[A-Za-z0-9_-]+)*:v[0-9]+$`)

// Metadata is a document's required identifying fields.
type Metadata struct {
	ID          string
	Name        string
	Description string
}

// UnitTest is one entry of a document's unit_tests sequence: setup seeds a fresh context before re-evaluating `logic`;
// expected is compared to the result by structural equality.
type UnitTest struct {
	Name     string
	Setup    map[string]value.Value
	Expected value.Value
}

// Document is the loader's output: a rule or philosophy with its
// expression slots left as parsed eval.Node trees and everything else as
// Values.
type Document struct {
	Path     string
	Kind     Kind
	Metadata Metadata

	// Logic is `logic` for a rule, `formal_logic.statement` for a
	// philosophy — the primary claim.
	Logic *eval.Node

	// SelfValidation is `self_validation` for a rule, `self_proof` for a
	// philosophy.
	SelfValidation *eval.Node

	UnitTests []UnitTest
}

// ToValue renders the whole document as a generic Object Value, the
// shape the executor binds under `this_rule`/`this_philosophy` so self-validation expressions like
// has_field(this_rule, "logic") can see it.
func (d *Document) ToValue() value.Value {
	meta := value.NewObject().
		WithField("id", value.NewString(d.Metadata.ID)).
		WithField("name", value.NewString(d.Metadata.Name)).
		WithField("description", value.NewString(d.Metadata.Description))

	tests := make([]value.Value, len(d.UnitTests))
	for i, ut := range d.UnitTests {
		setup := value.NewObject()
		for k, v := range ut.Setup {
			setup = setup.WithField(k, v)
		}
		tests[i] = value.NewObject().
			WithField("name", value.NewString(ut.Name)).
			WithField("setup", setup).
			WithField("expected", ut.Expected)
	}

	obj := value.NewObject().
		WithField("metadata", meta).
		WithField("logic", eval.NodeToValue(d.Logic)).
		WithField("self_validation", eval.NodeToValue(d.SelfValidation)).
		WithField("unit_tests", value.NewCollection(tests...))
	return obj
}
