package common

import "testing"

func TestValueEqual(t *testing.T) {
	cases := []struct {
		a, b Value
		want bool
	}{
		{IntVal(1), IntVal(1), true},
		{IntVal(1), IntVal(2), false},
		{StrVal("hi"), StrVal("hi"), true},
		{BoolVal(true), BoolVal(false), false},
		{NoneVal(), NoneVal(), true},
		{IntVal(0), BoolVal(false), false}, // different kinds never equal
	}
	for _, c := range cases {
		if got := c.a.Equal(c.b); got != c.want {
			t.Errorf("%v.Equal(%v) = %v, want %v", c.a, c.b, got, c.want)
		}
	}
}

func TestValueTruthy(t *testing.T) {
	cases := []struct {
		v    Value
		want bool
	}{
		{IntVal(0), false},
		{IntVal(-1), true},
		{StrVal(""), false},
		{StrVal("x"), true},
		{BoolVal(false), false},
		{BoolVal(true), true},
		{NoneVal(), false},
	}
	for _, c := range cases {
		if got := c.v.Truthy(); got != c.want {
			t.Errorf("%v.Truthy() = %v, want %v", c.v, got, c.want)
		}
	}
}

func TestValueString(t *testing.T) {
	cases := []struct {
		v    Value
		want string
	}{
		{IntVal(42), "42"},
		{BoolVal(true), "True"},
		{BoolVal(false), "False"},
		{StrVal("hi"), "hi"},
		{NoneVal(), "None"},
	}
	for _, c := range cases {
		if got := c.v.String(); got != c.want {
			t.Errorf("%v.String() = %q, want %q", c.v, got, c.want)
		}
	}
}

func TestValueRepr(t *testing.T) {
	if got := StrVal("a\"b").Repr(); got != `"a\"b"` {
		t.Errorf("Repr() = %q, want %q", got, `"a\"b"`)
	}
	if got := IntVal(7).Repr(); got != "7" {
		t.Errorf("Repr() = %q, want %q", got, "7")
	}
}

func TestTypeName(t *testing.T) {
	cases := map[Type]string{
		IntTy:  "int",
		StrTy:  "str",
		BoolTy: "bool",
		NoneTy: "None",
	}
	for ty, want := range cases {
		if got := ty.TypeName(); got != want {
			t.Errorf("%v.TypeName() = %q, want %q", ty, got, want)
		}
	}
}
