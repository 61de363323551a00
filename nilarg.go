package tempuscache

import "reflect"

// isNilArg reports whether v is a nil value of one of the kinds that
// can actually be nil in Go. Non-nilable kinds (int, string, struct,
// ...) can never trip the null-argument check and always return
// false, which is what lets Cache[int, string] accept 0 and ""
// without complaint while Cache[string, *User] still rejects a nil
// *User.
func isNilArg[T any](v T) bool {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Invalid:
		// an untyped nil assigned to an `any` type parameter
		return true
	case reflect.Chan, reflect.Func, reflect.Interface, reflect.Map, reflect.Ptr, reflect.Slice, reflect.UnsafePointer:
		return rv.IsNil()
	default:
		return false
	}
}
