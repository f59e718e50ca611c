// Package assert holds the few assertions used across the module tests.
// Every helper stops the test on failure.
package assert

import (
	"reflect"
)

// Tester is the part of testing.TB the helpers need.
type Tester interface {
	Helper()
	Fatal(...interface{})
	Fatalf(string, ...interface{})
}

// Nil accepts nil as well as a typed nil pointer, slice, map, chan or
// func. Errors are printed with %+v to show their stack trace.
func Nil(t Tester, value interface{}) {
	t.Helper()
	if !isNil(value) {
		t.Fatalf("want a nil value, got %+v", value)
	}
}

func isNil(value interface{}) bool {
	if value == nil {
		return true
	}
	switch v := reflect.ValueOf(value); v.Kind() {
	case reflect.Ptr, reflect.Slice, reflect.Map, reflect.Chan, reflect.Func, reflect.Interface:
		return v.IsNil()
	default:
		return false
	}
}

// Equal compares with reflect.DeepEqual, so the types must match as well.
func Equal(t Tester, want, got interface{}) {
	t.Helper()
	if !reflect.DeepEqual(want, got) {
		t.Fatalf("values not equal \nwant %T %v\n got %T %v", want, want, got, got)
	}
}

func Panics(t Tester, fn func()) {
	t.Helper()
	defer func() {
		if recover() == nil {
			t.Fatal("panic expected")
		}
	}()
	fn()
}

// IsErr passes when got is want or, if want knows how to compare itself,
// when want.Is(got) holds.
func IsErr(t Tester, want, got error) {
	t.Helper()
	if want == got {
		return
	}
	if kind, ok := want.(interface{ Is(error) bool }); ok && kind.Is(got) {
		return
	}
	t.Fatalf("want %q, got %+v", want, got)
}
