package registry

import (
	"testing"

	"github.com/akaoio/akao-sub001/internal/value"
)

const oneClassSource = `
#include <string>
#include "local/thing.hpp"

class Widget {
public:
    void spin();
};
`

const twoClassSource = `
class Alpha {};
class Beta {};
`

func TestCppExtractClasses(t *testing.T) {
	r := NewWithDefaults()

	got, err := r.Call("cpp.extract_classes", []value.Value{value.NewString(oneClassSource)})
	if err != nil {
		t.Fatal(err)
	}
	elems, _ := got.Elements()
	if len(elems) != 1 {
		t.Fatalf("extract_classes(oneClassSource) = %d classes, want 1", len(elems))
	}
	if name, _ := elems[0].Str(); name != "Widget" {
		t.Errorf("extracted class name = %q, want Widget", name)
	}

	got, err = r.Call("cpp.extract_classes", []value.Value{value.NewString(twoClassSource)})
	if err != nil {
		t.Fatal(err)
	}
	elems, _ = got.Elements()
	if len(elems) != 2 {
		t.Fatalf("extract_classes(twoClassSource) = %d classes, want 2", len(elems))
	}
}

func TestCppCountClasses(t *testing.T) {
	r := NewWithDefaults()

	got, err := r.Call("cpp.count_classes", []value.Value{value.NewString(twoClassSource)})
	if err != nil {
		t.Fatal(err)
	}
	if n, _ := got.Int(); n != 2 {
		t.Errorf("count_classes(twoClassSource) = %d, want 2", n)
	}
}

func TestCppGetIncludes(t *testing.T) {
	r := NewWithDefaults()

	got, err := r.Call("cpp.get_includes", []value.Value{value.NewString(oneClassSource)})
	if err != nil {
		t.Fatal(err)
	}
	elems, _ := got.Elements()
	if len(elems) != 2 {
		t.Fatalf("get_includes = %d entries, want 2", len(elems))
	}
	first, _ := elems[0].Str()
	if first != "string" {
		t.Errorf("first include = %q, want string", first)
	}
	second, _ := elems[1].Str()
	if second != "local/thing.hpp" {
		t.Errorf("second include = %q, want local/thing.hpp", second)
	}
}
