package errors

import (
	"errors"
	"reflect"
)

// InstanceOf reports whether err is an error of the given kind.
//
// The structural check finds an *Error of kind (or a subkind) in err's
// chain. It misses errors built by a second copy of this package, for
// example one vendored by a dependency, because their *Error is a different
// type. Those still match when an error in the chain names the kind: through
// an ErrorName method, or failing that, through its Go type name.
func InstanceOf(err error, kind Kind) bool {
	for ; err != nil; err = errors.Unwrap(err) {
		if fe, ok := err.(*Error); ok && fe.Kind.Is(kind) {
			return true
		}
		if name := errorName(err); name != "" && name == string(kind) {
			return true
		}
	}
	return false
}

func errorName(err error) string {
	if n, ok := err.(interface{ ErrorName() string }); ok {
		if name := n.ErrorName(); name != "" {
			return name
		}
	}
	t := reflect.TypeOf(err)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t.Name()
}
