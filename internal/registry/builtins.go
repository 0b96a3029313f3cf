package registry

import (
	"fmt"

	"github.com/akaoio/akao-sub001/internal/value"
)

// NewWithDefaults returns a Registry populated with the pure, domain-free
// standard handler set, plus the filesystem.* and cpp.* handlers wired to
// go-tree-sitter's cpp grammar (builtins_fs.go, builtins_cpp.go). Test
// harnesses that only need test.mock_collection and the pure handlers can
// call New() and register a minimal subset instead.
func NewWithDefaults() *Registry {
	r := New()
	registerCollectionBuiltins(r)
	registerStringBuiltins(r)
	registerMathBuiltins(r)
	registerMiscBuiltins(r)
	registerFilesystemBuiltins(r)
	registerCppBuiltins(r)
	return r
}

func registerCollectionBuiltins(r *Registry) {
	r.Register("collection.count", false, 1, func(args []value.Value) (value.Value, error) {
		if len(args) != 1 {
			return value.Value{}, fmt.Errorf("collection.count wants 1 argument, got %d", len(args))
		}
		n, err := args[0].Size()
		if err != nil {
			return value.Value{}, err
		}
		return value.NewInteger(int64(n)), nil
	})

	r.Register("collection.contains", false, 2, func(args []value.Value) (value.Value, error) {
		if len(args) != 2 {
			return value.Value{}, fmt.Errorf("collection.contains wants 2 arguments, got %d", len(args))
		}
		ok, err := args[0].Contains(args[1])
		if err != nil {
			return value.Value{}, err
		}
		return value.NewBoolean(ok), nil
	})

	// collection.filter and collection.map take the name of another
	// registered unary predicate/transform function as their second
	// argument (a String), rather than a closure — Value has no function
	// variant, so a function
	// reference can only cross the Handler boundary as the name the
	// registry already knows it by. Both close over r to resolve it.
	r.Register("collection.filter", false, 2, func(args []value.Value) (value.Value, error) {
		if len(args) != 2 {
			return value.Value{}, fmt.Errorf("collection.filter wants 2 arguments, got %d", len(args))
		}
		elems, err := args[0].Elements()
		if err != nil {
			return value.Value{}, err
		}
		fname, err := args[1].Str()
		if err != nil {
			return value.Value{}, fmt.Errorf("collection.filter: second argument must name a function: %w", err)
		}
		kept := make([]value.Value, 0, len(elems))
		for _, e := range elems {
			res, err := r.Call(fname, []value.Value{e})
			if err != nil {
				return value.Value{}, err
			}
			keep, err := res.Bool()
			if err != nil {
				return value.Value{}, fmt.Errorf("collection.filter: %s did not return a Boolean: %w", fname, err)
			}
			if keep {
				kept = append(kept, e)
			}
		}
		return value.NewCollection(kept...), nil
	})

	r.Register("collection.map", false, 2, func(args []value.Value) (value.Value, error) {
		if len(args) != 2 {
			return value.Value{}, fmt.Errorf("collection.map wants 2 arguments, got %d", len(args))
		}
		elems, err := args[0].Elements()
		if err != nil {
			return value.Value{}, err
		}
		fname, err := args[1].Str()
		if err != nil {
			return value.Value{}, fmt.Errorf("collection.map: second argument must name a function: %w", err)
		}
		mapped := make([]value.Value, 0, len(elems))
		for _, e := range elems {
			res, err := r.Call(fname, []value.Value{e})
			if err != nil {
				return value.Value{}, err
			}
			mapped = append(mapped, res)
		}
		return value.NewCollection(mapped...), nil
	})
}

func registerStringBuiltins(r *Registry) {
	r.Register("string.length", false, 1, func(args []value.Value) (value.Value, error) {
		if len(args) != 1 {
			return value.Value{}, fmt.Errorf("string.length wants 1 argument, got %d", len(args))
		}
		n, err := args[0].Size()
		if err != nil {
			return value.Value{}, err
		}
		return value.NewInteger(int64(n)), nil
	})

	r.Register("string.concat", false, 2, func(args []value.Value) (value.Value, error) {
		if len(args) != 2 {
			return value.Value{}, fmt.Errorf("string.concat wants 2 arguments, got %d", len(args))
		}
		a, err := args[0].Str()
		if err != nil {
			return value.Value{}, err
		}
		b, err := args[1].Str()
		if err != nil {
			return value.Value{}, err
		}
		return value.NewString(a + b), nil
	})
}

func registerMathBuiltins(r *Registry) {
	binaryInt := func(name string, op func(a, b int64) int64) {
		r.Register(name, false, 2, func(args []value.Value) (value.Value, error) {
			if len(args) != 2 {
				return value.Value{}, fmt.Errorf("%s wants 2 arguments, got %d", name, len(args))
			}
			a, err := args[0].Int()
			if err != nil {
				return value.Value{}, err
			}
			b, err := args[1].Int()
			if err != nil {
				return value.Value{}, err
			}
			return value.NewInteger(op(a, b)), nil
		})
	}
	binaryInt("math.add", func(a, b int64) int64 { return a + b })
	binaryInt("math.subtract", func(a, b int64) int64 { return a - b })
	binaryInt("math.multiply", func(a, b int64) int64 { return a * b })
}

// registerMiscBuiltins installs has_field and test.mock_collection.
// logic.is_well_formed and logic.all_functions_exist are deliberately not
// registered here: they need to inspect expression nodes, a type this
// package has no access to without an import cycle (eval depends on
// registry, not the reverse). internal/eval.RegisterIntrospection
// installs the real handlers into a Registry built by this package; the
// engine package calls it at construction time.
func registerMiscBuiltins(r *Registry) {
	r.Register("has_field", false, 2, func(args []value.Value) (value.Value, error) {
		if len(args) != 2 {
			return value.Value{}, fmt.Errorf("has_field wants 2 arguments, got %d", len(args))
		}
		name, err := args[1].Str()
		if err != nil {
			return value.Value{}, fmt.Errorf("has_field: second argument must be a String: %w", err)
		}
		_, ok := args[0].Field(name)
		return value.NewBoolean(ok), nil
	})

	r.Register("test.mock_collection", false, 2, func(args []value.Value) (value.Value, error) {
		if len(args) != 2 {
			return value.Value{}, fmt.Errorf("test.mock_collection wants 2 arguments, got %d", len(args))
		}
		kind, err := args[0].Str()
		if err != nil {
			return value.Value{}, fmt.Errorf("test.mock_collection: first argument must be a String: %w", err)
		}
		n, err := args[1].Int()
		if err != nil {
			return value.Value{}, fmt.Errorf("test.mock_collection: second argument must be an Integer: %w", err)
		}
		elems := make([]value.Value, 0, n)
		for i := int64(0); i < n; i++ {
			switch kind {
			case "integer":
				elems = append(elems, value.NewInteger(i))
			case "string":
				elems = append(elems, value.NewString(fmt.Sprintf("mock_%d", i)))
			case "boolean":
				elems = append(elems, value.NewBoolean(i%2 == 0))
			default:
				return value.Value{}, fmt.Errorf("test.mock_collection: unknown kind %q", kind)
			}
		}
		return value.NewCollection(elems...), nil
	})
}
