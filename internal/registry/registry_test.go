package registry

import (
	"testing"

	"github.com/akaoio/akao-sub001/internal/value"
)

func TestCallUnknownFunctionIsFunctionError(t *testing.T) {
	r := New()
	_, err := r.Call("nope.nope", nil)
	if err == nil {
		t.Fatal("expected FunctionError for unknown name")
	}
	fe, ok := err.(*FunctionError)
	if !ok {
		t.Fatalf("expected *FunctionError, got %T", err)
	}
	if fe.Name != "nope.nope" {
		t.Errorf("FunctionError.Name = %q, want nope.nope", fe.Name)
	}
}

func TestUnknownFunctionIsImpureByDefault(t *testing.T) {
	r := New()
	if !r.IsImpure("whatever.unknown") {
		t.Error("unregistered functions must be treated as impure")
	}
}

func TestCollectionBuiltins(t *testing.T) {
	r := NewWithDefaults()

	c := value.NewCollection(value.NewInteger(1), value.NewInteger(2), value.NewInteger(3))
	got, err := r.Call("collection.count", []value.Value{c})
	if err != nil {
		t.Fatal(err)
	}
	if n, _ := got.Int(); n != 3 {
		t.Errorf("collection.count = %d, want 3", n)
	}

	got, err = r.Call("collection.contains", []value.Value{c, value.NewInteger(2)})
	if err != nil {
		t.Fatal(err)
	}
	if ok, _ := got.Bool(); !ok {
		t.Error("collection.contains(c, 2) should be true")
	}
}

func TestCollectionFilterAndMap(t *testing.T) {
	r := NewWithDefaults()
	r.Register("is_even", false, 1, func(args []value.Value) (value.Value, error) {
		n, err := args[0].Int()
		if err != nil {
			return value.Value{}, err
		}
		return value.NewBoolean(n%2 == 0), nil
	})
	r.Register("double", false, 1, func(args []value.Value) (value.Value, error) {
		n, err := args[0].Int()
		if err != nil {
			return value.Value{}, err
		}
		return value.NewInteger(n * 2), nil
	})

	c := value.NewCollection(value.NewInteger(1), value.NewInteger(2), value.NewInteger(3), value.NewInteger(4))
	filtered, err := r.Call("collection.filter", []value.Value{c, value.NewString("is_even")})
	if err != nil {
		t.Fatal(err)
	}
	elems, _ := filtered.Elements()
	if len(elems) != 2 {
		t.Fatalf("collection.filter(is_even) kept %d elements, want 2", len(elems))
	}

	mapped, err := r.Call("collection.map", []value.Value{c, value.NewString("double")})
	if err != nil {
		t.Fatal(err)
	}
	elems, _ = mapped.Elements()
	first, _ := elems[0].Int()
	if first != 2 {
		t.Errorf("collection.map(double) first elem = %d, want 2", first)
	}
}

func TestStringAndMathBuiltins(t *testing.T) {
	r := NewWithDefaults()

	got, err := r.Call("string.length", []value.Value{value.NewString("hello")})
	if err != nil || mustInt(t, got) != 5 {
		t.Fatalf("string.length = %v, %v, want 5, nil", got, err)
	}

	got, err = r.Call("string.concat", []value.Value{value.NewString("foo"), value.NewString("bar")})
	if err != nil {
		t.Fatal(err)
	}
	if s, _ := got.Str(); s != "foobar" {
		t.Errorf("string.concat = %q, want foobar", s)
	}

	got, err = r.Call("math.add", []value.Value{value.NewInteger(2), value.NewInteger(3)})
	if err != nil || mustInt(t, got) != 5 {
		t.Fatalf("math.add = %v, %v, want 5, nil", got, err)
	}

	got, err = r.Call("math.subtract", []value.Value{value.NewInteger(5), value.NewInteger(3)})
	if err != nil || mustInt(t, got) != 2 {
		t.Fatalf("math.subtract = %v, %v, want 2, nil", got, err)
	}
}

func TestHasField(t *testing.T) {
	r := NewWithDefaults()
	obj := value.NewObject().WithField("logic", value.NewBoolean(true))
	got, err := r.Call("has_field", []value.Value{obj, value.NewString("logic")})
	if err != nil {
		t.Fatal(err)
	}
	if ok, _ := got.Bool(); !ok {
		t.Error("has_field(obj, logic) should be true")
	}
	got, err = r.Call("has_field", []value.Value{obj, value.NewString("missing")})
	if err != nil {
		t.Fatal(err)
	}
	if ok, _ := got.Bool(); ok {
		t.Error("has_field(obj, missing) should be false")
	}
}

func TestMockCollection(t *testing.T) {
	r := NewWithDefaults()
	got, err := r.Call("test.mock_collection", []value.Value{value.NewString("integer"), value.NewInteger(3)})
	if err != nil {
		t.Fatal(err)
	}
	elems, err := got.Elements()
	if err != nil || len(elems) != 3 {
		t.Fatalf("test.mock_collection(integer, 3) = %v elements, %v", len(elems), err)
	}
}

func TestFilesystemAndCppAreImpure(t *testing.T) {
	r := NewWithDefaults()
	for _, name := range []string{
		"filesystem.get_cpp_files",
		"filesystem.read_file",
		"filesystem.has_extension",
		"cpp.extract_classes",
		"cpp.count_classes",
		"cpp.get_includes",
	} {
		if !r.IsImpure(name) {
			t.Errorf("%s must be registered impure", name)
		}
	}
	for _, name := range []string{"collection.count", "string.length", "math.add", "has_field"} {
		if r.IsImpure(name) {
			t.Errorf("%s must be registered pure", name)
		}
	}
}

func mustInt(t *testing.T, v value.Value) int64 {
	t.Helper()
	i, err := v.Int()
	if err != nil {
		t.Fatalf("not an Integer: %v", err)
	}
	return i
}
