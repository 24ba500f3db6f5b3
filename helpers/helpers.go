// Package helpers holds small generic utilities shared by constructors and handlers.
package helpers

import "reflect"

// StrPanic panics with panicMessage if s is empty; otherwise returns s.
// Used by constructors for required configuration strings (adb binary, appium command).
func StrPanic(s string, panicMessage string) string {
	if s == "" {
		panic(panicMessage)
	}
	return s
}

// NilPanic panics with panicMessage if v is nil, including typed nil pointers, slices,
// maps, channels, funcs and interfaces; otherwise returns v.
// Used by constructors for required dependencies (executor, connector, logger).
func NilPanic[T any](v T, panicMessage string) T {
	if isNil(v) {
		panic(panicMessage)
	}
	return v
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Slice, reflect.Map, reflect.Chan, reflect.Func, reflect.Interface:
		return rv.IsNil()
	default:
		return false
	}
}

// ValueOr returns *p, or fallback when p is nil or points to the zero value.
func ValueOr[T comparable](p *T, fallback T) T {
	var zero T
	if p == nil || *p == zero {
		return fallback
	}
	return *p
}
