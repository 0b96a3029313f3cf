package engine

import (
	"github.com/akaoio/akao-sub001/internal/eval"
	"github.com/akaoio/akao-sub001/internal/value"
)

// UnitResult records one unit_tests entry's outcome.
type UnitResult struct {
	Name     string
	Pass     bool
	Observed value.Value
	Expected value.Value
}

// Violation is a failing forall witness recovered during the observed
// re-run. An exists that evaluates false has no single witness, so it
// produces no Violation.
type Violation struct {
	ID       string
	Kind     string // the quantifier node's kind; always "forall" in practice
	Variable string
	Value    value.Value
	Pos      eval.Position
}

// Outcome is the executor's contract return: "run_document(doc,
// caller_ctx) -> Outcome = { primary, self_check, unit_results }". PrimaryErr
// and SelfCheckErr carry the fault reason when primary or self_check could
// not be evaluated to a Value at all.
type Outcome struct {
	Primary   value.Value
	PrimaryErr error

	SelfCheck    value.Value
	SelfCheckErr error

	UnitResults []UnitResult
	Violations  []Violation
}

// Decision renders Outcome.Primary as a user-visible pass/fail verdict.
// A Primary that is not a Boolean (including one left Null by a
// PrimaryErr) decides fail.
func (o Outcome) Decision() string {
	if b, err := o.Primary.Bool(); err == nil && b {
		return "pass"
	}
	return "fail"
}
