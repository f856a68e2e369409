package rtvalue

import "testing"

func TestIsTruthy(t *testing.T) {
	tests := []struct {
		name string
		v    Value
		want bool
	}{
		{"null", Null{}, false},
		{"hoisted", HoistedPlaceholder{}, false},
		{"false", Bool(false), false},
		{"true", Bool(true), true},
		{"zero int", IntNumber(0), false},
		{"nonzero int", IntNumber(1), true},
		{"zero float", FloatNumber(0), false},
		{"empty string", Str(""), false},
		{"nonempty string", Str("x"), true},
		{"object", Allocate(nil, "Foo"), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsTruthy(tt.v); got != tt.want {
				t.Errorf("IsTruthy(%v) = %v, want %v", tt.v, got, tt.want)
			}
		})
	}
}

func TestNumberCompareCrossesIntFloat(t *testing.T) {
	if IntNumber(2).Compare(FloatNumber(2.0)) != 0 {
		t.Errorf("expected 2 == 2.0")
	}
	if IntNumber(1).Compare(FloatNumber(1.5)) >= 0 {
		t.Errorf("expected 1 < 1.5")
	}
}

func TestEqualsByValueAndByIdentity(t *testing.T) {
	if !Equals(IntNumber(3), FloatNumber(3.0)) {
		t.Errorf("expected 3 == 3.0 by Equals")
	}
	a := Allocate(nil, "A")
	b := Allocate(nil, "A")
	if Equals(a, a) != true {
		t.Errorf("same object identity should be equal")
	}
	if Equals(a, b) {
		t.Errorf("distinct objects with same name should not be equal")
	}
}

func TestScopeGetWalksParents(t *testing.T) {
	root := NewScope()
	root.AssignLocally("x", IntNumber(1))
	child := NewChildScope(root)

	cell, ok := child.Get("x")
	if !ok {
		t.Fatalf("expected to find x via parent chain")
	}
	if cell.Value != Value(IntNumber(1)) {
		t.Errorf("cell.Value = %v, want 1", cell.Value)
	}

	if _, ok := child.GetLocal("x"); ok {
		t.Errorf("GetLocal should not see parent bindings")
	}
}

func TestScopeAssignWritesThroughToOwningAncestor(t *testing.T) {
	root := NewScope()
	root.AssignLocally("x", IntNumber(1))
	child := NewChildScope(root)

	child.Assign("x", IntNumber(2))

	cell, _ := root.GetLocal("x")
	if cell.Value != Value(IntNumber(2)) {
		t.Errorf("root's x = %v, want 2 (assignment should write through)", cell.Value)
	}
	if _, ok := child.GetLocal("x"); ok {
		t.Errorf("child should not have gained a local binding for x")
	}
}

func TestScopeAssignCreatesLocallyWhenAbsent(t *testing.T) {
	s := NewScope()
	s.Assign("y", Bool(true))
	if _, ok := s.GetLocal("y"); !ok {
		t.Errorf("expected Assign to create a local binding when none exists")
	}
}

func TestScopeDeclareRejectsRedeclaration(t *testing.T) {
	s := NewScope()
	if err := s.Declare("x", IntNumber(1)); err != nil {
		t.Fatalf("first declare: %v", err)
	}
	if err := s.Declare("x", IntNumber(2)); err != ErrCantRedeclareVariable {
		t.Errorf("Declare over existing binding = %v, want ErrCantRedeclareVariable", err)
	}
}

func TestScopeDeclareOverHoistedPlaceholderSucceeds(t *testing.T) {
	s := NewScope()
	if err := s.Hoist("x"); err != nil {
		t.Fatalf("Hoist: %v", err)
	}
	if err := s.Declare("x", IntNumber(5)); err != nil {
		t.Errorf("Declare over hoisted placeholder failed: %v", err)
	}
	cell, _ := s.GetLocal("x")
	if cell.Value != Value(IntNumber(5)) {
		t.Errorf("x = %v, want 5", cell.Value)
	}
}

func TestScopeDeclareRejectsHoistedValue(t *testing.T) {
	s := NewScope()
	if err := s.Declare("x", HoistedPlaceholder{}); err != ErrCantSetToHoistedValue {
		t.Errorf("Declare(HoistedPlaceholder) = %v, want ErrCantSetToHoistedValue", err)
	}
}

func TestScopeHoistRejectsDoubleHoist(t *testing.T) {
	s := NewScope()
	if err := s.Hoist("x"); err != nil {
		t.Fatalf("first hoist: %v", err)
	}
	if err := s.Hoist("x"); err != ErrCantRedeclareVariable {
		t.Errorf("second hoist = %v, want ErrCantRedeclareVariable", err)
	}
}

func TestScopeGetOrCreateIdentifierAutoVivifies(t *testing.T) {
	s := NewScope()
	cell := s.GetOrCreateIdentifier("undeclared")
	if cell.Value != Value(Null{}) {
		t.Errorf("auto-created cell = %v, want Null", cell.Value)
	}
	if _, ok := s.GetLocal("undeclared"); !ok {
		t.Errorf("expected the auto-created cell to be bound locally")
	}
}

func TestObjectResolveWalksParentChain(t *testing.T) {
	base := Allocate(nil, "Base")
	base.SetLocal("greet", Str("hi"))
	derived := Allocate(base, "Derived")

	cell, ok := derived.Resolve("greet")
	if !ok {
		t.Fatalf("expected to resolve greet via parent")
	}
	if cell.Value != Value(Str("hi")) {
		t.Errorf("greet = %v, want hi", cell.Value)
	}
}

func TestObjectSetLocalNeverWritesParent(t *testing.T) {
	base := Allocate(nil, "Base")
	base.SetLocal("greet", Str("hi"))
	derived := Allocate(base, "Derived")

	derived.SetLocal("greet", Str("yo"))

	baseCell, _ := base.GetOwn("greet")
	if baseCell.Value != Value(Str("hi")) {
		t.Errorf("base.greet was mutated by a derived write: %v", baseCell.Value)
	}
	derivedCell, _ := derived.GetOwn("greet")
	if derivedCell.Value != Value(Str("yo")) {
		t.Errorf("derived.greet = %v, want yo", derivedCell.Value)
	}
}

func TestObjectIsInstanceOf(t *testing.T) {
	base := Allocate(nil, "Base")
	derived := Allocate(base, "Derived")
	instance := Allocate(derived, "")

	if !instance.IsInstanceOf(base) {
		t.Errorf("expected instance to be an instance of Base")
	}
	if !instance.IsInstanceOf(derived) {
		t.Errorf("expected instance to be an instance of Derived")
	}
	other := Allocate(nil, "Other")
	if instance.IsInstanceOf(other) {
		t.Errorf("did not expect instance to be an instance of Other")
	}
}
