// Package builtin is the native bridge of spec §4.J: the root Object
// class and the set of native functions/classes registered into the
// global scope at interpreter startup. Every exported native method
// shares the uniform (evaluator, args) -> (Value, error) shape of
// rtvalue.NativeFunc; argument unmarshalling (receiver extraction,
// type checks, native-payload lookup) happens inside each wrapper.
package builtin

import (
	"fmt"
	"io"

	"github.com/kr/pretty"

	"github.com/evil-lang/evil/internal/interp/rtvalue"
)

// ResultStack is the push_res_stack test harness of spec §4.J/§6/§8:
// a global, append-only sink tests read back to assert on evaluation
// order and values.
type ResultStack struct {
	Values []rtvalue.Value
}

func (r *ResultStack) push(vs ...rtvalue.Value) {
	r.Values = append(r.Values, vs...)
}

// Register installs the native bridge into global and returns the root
// Object class, which the evaluator needs directly (as the default
// parent for classes with no `extends` clause and for namespace
// auto-creation).
func Register(global *rtvalue.Scope, out io.Writer, stack *ResultStack) *rtvalue.Object {
	rootObject := rtvalue.Allocate(nil, "Object")
	rootObject.SetLocal("constructor", &rtvalue.Native{
		Name: "constructor",
		Fn: func(ev rtvalue.Evaluator, args []rtvalue.Value) (rtvalue.Value, error) {
			return rtvalue.Null{}, nil
		},
	})
	global.AssignLocally("Object", rootObject)

	global.AssignLocally("print", &rtvalue.Native{
		Name: "print",
		Fn: func(ev rtvalue.Evaluator, args []rtvalue.Value) (rtvalue.Value, error) {
			for _, a := range args {
				fmt.Fprint(out, a.String())
			}
			return rtvalue.Null{}, nil
		},
	})

	global.AssignLocally("to_string", &rtvalue.Native{
		Name: "to_string",
		Fn: func(ev rtvalue.Evaluator, args []rtvalue.Value) (rtvalue.Value, error) {
			if len(args) == 0 {
				return rtvalue.Str(""), nil
			}
			return rtvalue.Str(args[0].String()), nil
		},
	})

	global.AssignLocally("debug", &rtvalue.Native{
		Name: "debug",
		Fn: func(ev rtvalue.Evaluator, args []rtvalue.Value) (rtvalue.Value, error) {
			fmt.Fprintln(out, pretty.Sprint(valuesAsAny(args)...))
			return rtvalue.Null{}, nil
		},
	})

	global.AssignLocally("push_res_stack", &rtvalue.Native{
		Name: "push_res_stack",
		Fn: func(ev rtvalue.Evaluator, args []rtvalue.Value) (rtvalue.Value, error) {
			stack.push(args...)
			return rtvalue.Null{}, nil
		},
	})

	global.AssignLocally("allocate_object", &rtvalue.Native{
		Name: "allocate_object",
		Fn: func(ev rtvalue.Evaluator, args []rtvalue.Value) (rtvalue.Value, error) {
			parent := rootObject
			name := ""
			if len(args) > 0 {
				if obj, ok := args[0].(*rtvalue.Object); ok {
					parent = obj
				}
			}
			if len(args) > 1 {
				if s, ok := args[1].(rtvalue.Str); ok {
					name = string(s)
				}
			}
			return rtvalue.Allocate(parent, name), nil
		},
	})

	registerVector(global, rootObject)

	return rootObject
}

func valuesAsAny(args []rtvalue.Value) []any {
	out := make([]any, len(args))
	for i, a := range args {
		out[i] = a.String()
	}
	return out
}
