package value

import "testing"

func TestEqualAcrossVariants(t *testing.T) {
	if Equal(NewInteger(0), NewBoolean(false)) {
		t.Error("Integer(0) must not equal Boolean(false)")
	}
	if Equal(NewString(""), Null) {
		t.Error("empty String must not equal Null")
	}
	if !Equal(NewInteger(5), NewInteger(5)) {
		t.Error("Integer(5) must equal Integer(5)")
	}
}

func TestEqualCollectionOrderMatters(t *testing.T) {
	a := NewCollection(NewInteger(1), NewInteger(2))
	b := NewCollection(NewInteger(2), NewInteger(1))
	if Equal(a, b) {
		t.Error("collections with different order must not be equal")
	}
}

func TestEqualObjectOrderIndependent(t *testing.T) {
	a := NewObject().WithField("x", NewInteger(1)).WithField("y", NewInteger(2))
	b := NewObject().WithField("y", NewInteger(2)).WithField("x", NewInteger(1))
	if !Equal(a, b) {
		t.Error("objects must compare equal regardless of insertion order")
	}
}

func TestCompareCrossVariantIsError(t *testing.T) {
	if _, err := Compare(NewInteger(1), NewString("1")); err == nil {
		t.Error("expected TypeError comparing Integer to String")
	}
}

func TestCompareOrdering(t *testing.T) {
	cases := []struct {
		a, b Value
		want int
	}{
		{NewInteger(1), NewInteger(2), -1},
		{NewInteger(2), NewInteger(2), 0},
		{NewInteger(3), NewInteger(2), 1},
		{NewBoolean(false), NewBoolean(true), -1},
		{NewString("a"), NewString("b"), -1},
	}
	for _, c := range cases {
		got, err := Compare(c.a, c.b)
		if err != nil {
			t.Fatalf("Compare(%v, %v): %v", c.a, c.b, err)
		}
		if got != c.want {
			t.Errorf("Compare(%v, %v) = %d, want %d", c.a, c.b, got, c.want)
		}
	}
}

func TestContainsUsesStructuralEquality(t *testing.T) {
	c := NewCollection(NewInteger(1), NewInteger(2), NewInteger(15))
	ok, err := c.Contains(NewInteger(15))
	if err != nil || !ok {
		t.Fatalf("expected Contains(15) = true, nil, got %v, %v", ok, err)
	}
	ok, err = c.Contains(NewInteger(99))
	if err != nil || ok {
		t.Fatalf("expected Contains(99) = false, nil, got %v, %v", ok, err)
	}
}

func TestSize(t *testing.T) {
	col := NewCollection(NewInteger(1), NewInteger(2))
	n, err := col.Size()
	if err != nil || n != 2 {
		t.Fatalf("Size() = %d, %v, want 2, nil", n, err)
	}
	s := NewString("hello")
	n, err = s.Size()
	if err != nil || n != 5 {
		t.Fatalf("Size() = %d, %v, want 5, nil", n, err)
	}
	obj := NewObject().WithField("a", NewInteger(1))
	n, err = obj.Size()
	if err != nil || n != 1 {
		t.Fatalf("Size() = %d, %v, want 1, nil", n, err)
	}
	if _, err := NewInteger(1).Size(); err == nil {
		t.Error("expected TypeError for Size() on Integer")
	}
}

func TestWithFieldRebindKeepsPosition(t *testing.T) {
	obj := NewObject().WithField("a", NewInteger(1)).WithField("b", NewInteger(2))
	obj = obj.WithField("a", NewInteger(99))
	keys := obj.Keys()
	if len(keys) != 2 || keys[0] != "a" || keys[1] != "b" {
		t.Fatalf("Keys() = %v, want [a b]", keys)
	}
	v, ok := obj.Field("a")
	if !ok {
		t.Fatal("expected field a")
	}
	i, _ := v.Int()
	if i != 99 {
		t.Errorf("Field(a) = %d, want 99", i)
	}
}

func TestAccessorTypeMismatch(t *testing.T) {
	if _, err := NewString("x").Int(); err == nil {
		t.Error("expected TypeError for Int() on String")
	}
	if _, err := NewInteger(1).Bool(); err == nil {
		t.Error("expected TypeError for Bool() on Integer")
	}
	if _, err := NewBoolean(true).Elements(); err == nil {
		t.Error("expected TypeError for Elements() on Boolean")
	}
}
