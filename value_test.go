package template

import "testing"

func TestValueIsTrue(t *testing.T) {
	cases := []struct {
		name string
		v    *Value
		want bool
	}{
		{"none", None, false},
		{"false", Bool(false), false},
		{"true", Bool(true), true},
		{"zero int", Int(0), false},
		{"nonzero int", Int(-3), true},
		{"zero float", Float(0), false},
		{"nonzero float", Float(0.1), true},
		{"empty string", Str(""), false},
		{"nonempty string", Str("x"), true},
		{"empty list", List(nil), false},
		{"nonempty list", List([]*Value{Int(1)}), true},
		{"empty dict", Dict(nil), false},
		{"nonempty dict", Dict(map[string]*Value{"a": Int(1)}), true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := c.v.IsTrue(); got != c.want {
				t.Errorf("IsTrue() = %v, want %v", got, c.want)
			}
		})
	}
}

func TestValueEqualValueTo(t *testing.T) {
	if !Int(1).EqualValueTo(Float(1.0)) {
		t.Error("int 1 should equal float 1.0 (numeric widening)")
	}
	if Str("1").EqualValueTo(Int(1)) {
		t.Error("string and int must not be equal")
	}
	if !None.EqualValueTo(None) {
		t.Error("none should equal none")
	}
	if None.EqualValueTo(Int(0)) {
		t.Error("none must not equal int 0")
	}
	a := List([]*Value{Int(1), Str("x")})
	b := List([]*Value{Int(1), Str("x")})
	if !a.EqualValueTo(b) {
		t.Error("structurally equal lists should be equal")
	}
	c := List([]*Value{Int(1), Str("y")})
	if a.EqualValueTo(c) {
		t.Error("structurally different lists should not be equal")
	}
	d1 := Dict(map[string]*Value{"a": Int(1)})
	d2 := Dict(map[string]*Value{"a": Int(1)})
	if !d1.EqualValueTo(d2) {
		t.Error("structurally equal dicts should be equal")
	}
}

func TestValueString(t *testing.T) {
	cases := []struct {
		v    *Value
		want string
	}{
		{None, ""},
		{Bool(true), "true"},
		{Bool(false), "false"},
		{Int(42), "42"},
		{Float(1.5), "1.5"},
		{Str("hi"), "hi"},
	}
	for _, c := range cases {
		if got := c.v.String(); got != c.want {
			t.Errorf("String() = %q, want %q", got, c.want)
		}
	}
}

func TestValueIntegerFloatCoercion(t *testing.T) {
	if Str("42").Integer() != 42 {
		t.Error("numeric string should parse as integer")
	}
	if Str("nope").Integer() != 0 {
		t.Error("non-numeric string should coerce to 0")
	}
	if Float(3.9).Integer() != 3 {
		t.Error("float to integer should truncate")
	}
	if Bool(true).Integer() != 1 || Bool(false).Integer() != 0 {
		t.Error("bool to integer should be 1/0")
	}
}

func TestValueContains(t *testing.T) {
	if !Str("hello world").Contains(Str("wor")) {
		t.Error("string contains substring")
	}
	if !List([]*Value{Int(1), Int(2)}).Contains(Int(2)) {
		t.Error("list contains element")
	}
	if !Dict(map[string]*Value{"k": Int(1)}).Contains(Str("k")) {
		t.Error("dict contains key")
	}
	if List([]*Value{Int(1)}).Contains(Int(9)) {
		t.Error("list should not contain missing element")
	}
}

func TestValueLen(t *testing.T) {
	if Str("héllo").Len() != 5 {
		t.Error("Len should count runes, not bytes")
	}
	if List([]*Value{Int(1), Int(2), Int(3)}).Len() != 3 {
		t.Error("list Len mismatch")
	}
	if Dict(map[string]*Value{"a": Int(1)}).Len() != 1 {
		t.Error("dict Len mismatch")
	}
}
