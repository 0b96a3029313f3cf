package context

import (
	"testing"

	"github.com/akaoio/akao-sub001/internal/value"
)

func TestBindAndGetInnermostWins(t *testing.T) {
	c := New()
	c.Bind("x", value.NewInteger(1))
	c.PushScope()
	c.Bind("x", value.NewInteger(2))

	got, err := c.Get("x")
	if err != nil {
		t.Fatalf("Get(x): %v", err)
	}
	if i, _ := got.Int(); i != 2 {
		t.Errorf("Get(x) = %d, want 2 (inner shadow)", i)
	}

	if err := c.PopScope(); err != nil {
		t.Fatalf("PopScope: %v", err)
	}
	got, err = c.Get("x")
	if err != nil {
		t.Fatalf("Get(x) after pop: %v", err)
	}
	if i, _ := got.Int(); i != 1 {
		t.Errorf("Get(x) after pop = %d, want 1 (outer restored)", i)
	}
}

func TestGetUnboundIsNameError(t *testing.T) {
	c := New()
	_, err := c.Get("missing")
	if err == nil {
		t.Fatal("expected NameError for unbound identifier")
	}
	if _, ok := err.(*NameError); !ok {
		t.Errorf("expected *NameError, got %T", err)
	}
}

func TestPopBeyondRootIsInvariantError(t *testing.T) {
	c := New()
	err := c.PopScope()
	if err == nil {
		t.Fatal("expected InvariantError popping the root scope")
	}
	if _, ok := err.(*InvariantError); !ok {
		t.Errorf("expected *InvariantError, got %T", err)
	}
}

func TestDepthTracksPushPop(t *testing.T) {
	c := New()
	if c.Depth() != 1 {
		t.Fatalf("Depth() = %d, want 1", c.Depth())
	}
	c.PushScope()
	c.PushScope()
	if c.Depth() != 3 {
		t.Fatalf("Depth() = %d, want 3", c.Depth())
	}
	if err := c.PopScope(); err != nil {
		t.Fatal(err)
	}
	if c.Depth() != 2 {
		t.Fatalf("Depth() = %d, want 2", c.Depth())
	}
}

func TestHas(t *testing.T) {
	c := New()
	if c.Has("x") {
		t.Fatal("Has(x) should be false before bind")
	}
	c.Bind("x", value.NewBoolean(true))
	if !c.Has("x") {
		t.Fatal("Has(x) should be true after bind")
	}
}

func TestChildFlattensAndIsolates(t *testing.T) {
	c := New()
	c.Bind("n", value.NewInteger(3))
	c.PushScope()
	c.Bind("m", value.NewInteger(4))

	child := c.Child()
	if child.Depth() != 1 {
		t.Fatalf("Child().Depth() = %d, want 1", child.Depth())
	}
	n, err := child.Get("n")
	if err != nil || mustInt(t, n) != 3 {
		t.Fatalf("child Get(n) = %v, %v", n, err)
	}
	m, err := child.Get("m")
	if err != nil || mustInt(t, m) != 4 {
		t.Fatalf("child Get(m) = %v, %v", m, err)
	}

	child.Bind("n", value.NewInteger(99))
	orig, err := c.Get("n")
	if err != nil || mustInt(t, orig) != 3 {
		t.Fatal("mutating child must not affect parent context")
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
