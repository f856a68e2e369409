// Package rtvalue defines the runtime value model, scope chain, and
// object model the evaluator operates on (spec's Value/Scope/Object
// components): a tagged union of primitives plus heap-allocated
// functions, objects, and opaque native payloads, shared-mutable
// variable cells, and lexically-nested scopes.
package rtvalue

import "strconv"

// Value is satisfied by every runtime datum. Concrete types are Null,
// HoistedPlaceholder, Bool, Number, Str, *Closure, *Native, *Object,
// and *NativeStruct (the last three by reference; everything else by
// value, matching the by-value/by-identity equality split).
type Value interface {
	Type() string
	String() string
}

// IsTruthy implements the language's truthiness rule: Null,
// HoistedPlaceholder, false, numeric zero, and the empty string are
// false; everything else is true.
func IsTruthy(v Value) bool {
	switch val := v.(type) {
	case Null:
		return false
	case HoistedPlaceholder:
		return false
	case Bool:
		return bool(val)
	case Number:
		if val.IsFloat {
			return val.Float != 0
		}
		return val.Int != 0
	case Str:
		return val != ""
	default:
		return true
	}
}

// Equals implements the language's equality rule: by-value for
// primitives (including cross integer/float numeric comparison), by
// heap identity for Function, Object, and NativeStruct.
func Equals(a, b Value) bool {
	switch av := a.(type) {
	case Null:
		_, ok := b.(Null)
		return ok
	case HoistedPlaceholder:
		_, ok := b.(HoistedPlaceholder)
		return ok
	case Bool:
		bv, ok := b.(Bool)
		return ok && av == bv
	case Number:
		bv, ok := b.(Number)
		return ok && av.Compare(bv) == 0
	case Str:
		bv, ok := b.(Str)
		return ok && av == bv
	case *Object:
		bv, ok := b.(*Object)
		return ok && av == bv
	case *NativeStruct:
		bv, ok := b.(*NativeStruct)
		return ok && av == bv
	case Function:
		bv, ok := b.(Function)
		return ok && sameFunctionIdentity(av, bv)
	default:
		return false
	}
}

func sameFunctionIdentity(a, b Function) bool {
	switch af := a.(type) {
	case *Closure:
		bf, ok := b.(*Closure)
		return ok && af == bf
	case *Native:
		bf, ok := b.(*Native)
		return ok && af == bf
	default:
		return false
	}
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}
