// Package registry implements the function registry: a
// read-only-after-construction mapping from qualified function names
// (collection.count, filesystem.get_cpp_files, cpp.extract_classes, ...)
// to opaque handlers. The evaluator never hardcodes any handler's
// meaning; it only knows how to call into this table.
package registry

import (
	"fmt"
	"strings"

	"github.com/akaoio/akao-sub001/internal/value"
)

// Handler is a pure (with respect to interpreter state) callable. It may
// read the filesystem but must not mutate the Registry, the Context, or
// any Value it did not itself construct.
type Handler func(args []value.Value) (value.Value, error)

// entry pairs a handler with the metadata needed for arity checking and
// the evaluator's purity-based caching decision.
type entry struct {
	handler Handler
	arity   int // -1 means variadic; arity is advisory, not enforced beyond count mismatches reported as FunctionError
	impure  bool
}

// FunctionError wraps a handler failure, an unknown name, or an arity
// mismatch with the function's name and the arity actually supplied.
type FunctionError struct {
	Name     string
	Supplied int
	Err      error
}

func (e *FunctionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("registry: %s/%d: %v", e.Name, e.Supplied, e.Err)
	}
	return fmt.Sprintf("registry: %s/%d: unknown function", e.Name, e.Supplied)
}

func (e *FunctionError) Unwrap() error { return e.Err }

// Registry is the engine's function table. It is built once at
// construction (NewWithDefaults or a sequence of Register calls) and is
// safe to share, by immutable reference, across concurrently running
// evaluations once construction has finished.
type Registry struct {
	entries map[string]entry
}

// New returns an empty Registry. Callers populate it via Register before
// handing it to an evaluator; nothing in this package depends on any
// particular set of names existing.
func New() *Registry {
	return &Registry{entries: make(map[string]entry)}
}

// Register installs or replaces the handler for name. arity is advisory
// documentation of the expected argument count (-1 for variadic); it is
// not currently enforced by Call, which defers all argument-count
// validation to the handler itself so that variadic handlers need no
// special casing.
func (r *Registry) Register(name string, impure bool, arity int, h Handler) {
	r.entries[name] = entry{handler: h, arity: arity, impure: impure}
}

// Call invokes the handler registered under name with args, wrapping any
// handler error (or an unknown-name condition) in a FunctionError that
// carries the name and the number of arguments supplied.
func (r *Registry) Call(name string, args []value.Value) (value.Value, error) {
	e, ok := r.entries[name]
	if !ok {
		return value.Value{}, &FunctionError{Name: name, Supplied: len(args)}
	}
	v, err := e.handler(args)
	if err != nil {
		return value.Value{}, &FunctionError{Name: name, Supplied: len(args), Err: err}
	}
	return v, nil
}

// IsImpure reports whether name was registered as impure. Unknown names
// are treated as impure — an unrecognized function is never assumed safe
// to cache around.
func (r *Registry) IsImpure(name string) bool {
	e, ok := r.entries[name]
	if !ok {
		return true
	}
	return e.impure
}

// Has reports whether name is registered.
func (r *Registry) Has(name string) bool {
	_, ok := r.entries[name]
	return ok
}

// Names returns every registered function name, for LoadTable
// cross-checking and diagnostics.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.entries))
	for n := range r.entries {
		names = append(names, n)
	}
	return names
}

// ImpureCategory reports whether a dotted function name's leading
// category (e.g. "filesystem" in "filesystem.read_file") is one the
// registry treats as categorically impure, independent of whether that
// exact name has been registered yet. It does not change any handler's
// impure flag: NewWithDefaults passes impure=true explicitly when it
// registers each filesystem.* and cpp.* handler.
func ImpureCategory(name string) bool {
	category := name
	if i := strings.IndexByte(name, '.'); i >= 0 {
		category = name[:i]
	}
	switch category {
	case "filesystem", "cpp":
		return true
	default:
		return false
	}
}
