// Package context implements the interpreter's lexically scoped
// environment: an ordered stack of scopes mapping identifiers to values.
// It is unrelated to, and does not use, the standard library's
// context.Context — the name here refers to an evaluation scope stack,
// not request-scoped cancellation.
package context

import (
	"fmt"

	"github.com/akaoio/akao-sub001/internal/value"
)

// NameError reports a lookup against an identifier bound in no active
// scope.
type NameError struct {
	Name string
}

func (e *NameError) Error() string {
	return fmt.Sprintf("context: unbound identifier %q", e.Name)
}

// InvariantError reports a scope-stack misuse that indicates a bug in the
// evaluator rather than a user error.
type InvariantError struct {
	Reason string
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("context: invariant violated: %s", e.Reason)
}

// scope is one frame of the stack: a flat map of identifier to value.
type scope map[string]value.Value

// Context is a mutable, non-thread-safe stack of scopes. A single Context
// must never be shared across goroutines during one evaluation.
type Context struct {
	scopes []scope
}

// New returns a Context with a single, empty root scope.
func New() *Context {
	return &Context{scopes: []scope{make(scope)}}
}

// Depth reports the number of active scopes, including the root scope.
// Callers use it to assert scope balance around an evaluation.
func (c *Context) Depth() int { return len(c.scopes) }

// PushScope installs a new, empty scope on top of the stack.
func (c *Context) PushScope() {
	c.scopes = append(c.scopes, make(scope))
}

// PopScope removes the top scope. Popping the last remaining scope is an
// InvariantError: every Context always keeps its root scope.
func (c *Context) PopScope() error {
	if len(c.scopes) <= 1 {
		return &InvariantError{Reason: "pop with no scope above the root"}
	}
	c.scopes = c.scopes[:len(c.scopes)-1]
	return nil
}

// Bind installs name into the top (innermost) scope, shadowing any outer
// binding of the same name for the remainder of that scope's lifetime.
func (c *Context) Bind(name string, v value.Value) {
	c.scopes[len(c.scopes)-1][name] = v
}

// Get resolves name from the innermost scope outward. A NameError is
// returned, never a null Value, when name is bound nowhere on the stack —
// the evaluator must never silently coerce an unresolved name.
func (c *Context) Get(name string) (value.Value, error) {
	for i := len(c.scopes) - 1; i >= 0; i-- {
		if v, ok := c.scopes[i][name]; ok {
			return v, nil
		}
	}
	return value.Value{}, &NameError{Name: name}
}

// Has reports whether name is bound in any active scope.
func (c *Context) Has(name string) bool {
	for i := len(c.scopes) - 1; i >= 0; i-- {
		if _, ok := c.scopes[i][name]; ok {
			return true
		}
	}
	return false
}

// Child returns a fresh Context seeded with one root scope containing a
// copy of every binding currently visible in c, flattened innermost-wins.
// Used by the executor to build an isolated context per unit test without letting the test's setup leak into the caller's
// context or vice versa.
func (c *Context) Child() *Context {
	flat := make(scope)
	for _, s := range c.scopes {
		for k, v := range s {
			flat[k] = v
		}
	}
	return &Context{scopes: []scope{flat}}
}
