package builtin

import (
	"github.com/evil-lang/evil/internal/errors"
	"github.com/evil-lang/evil/internal/interp/rtvalue"
	"github.com/evil-lang/evil/internal/token"
)

// vectorData is the native payload of a Vector instance (spec §4.J):
// stashed on the instance under rtvalue.HiddenNativePayloadKey inside
// a *rtvalue.NativeStruct, the way the native bridge contract
// describes "a reserved hidden slot on the receiver".
type vectorData struct {
	items []rtvalue.Value
}

func installVectorPayload(obj *rtvalue.Object, data *vectorData) {
	obj.SetLocal(rtvalue.HiddenNativePayloadKey, &rtvalue.NativeStruct{ClassName: "Vector", Payload: data})
}

func vectorPayload(recv rtvalue.Value) (*vectorData, error) {
	obj, ok := recv.(*rtvalue.Object)
	if !ok {
		return nil, errors.NewRuntimeError(errors.ExpectedObject, token.Position{}, errors.Descriptor{Value: recv.String()})
	}
	cell, ok := obj.GetOwn(rtvalue.HiddenNativePayloadKey)
	if !ok {
		return nil, errors.NewRuntimeError(errors.ExpectedNativeObject, token.Position{}, errors.Descriptor{Name: "Vector"})
	}
	ns, ok := cell.Value.(*rtvalue.NativeStruct)
	if !ok {
		return nil, errors.NewRuntimeError(errors.ExpectedNativeObject, token.Position{}, errors.Descriptor{Name: "Vector"})
	}
	data, ok := ns.Payload.(*vectorData)
	if !ok {
		return nil, errors.NewRuntimeError(errors.ExpectedNativeObject, token.Position{}, errors.Descriptor{Name: "Vector"})
	}
	return data, nil
}

func indexArg(v rtvalue.Value, name string) (int, error) {
	n, ok := v.(rtvalue.Number)
	if !ok {
		return 0, errors.NewRuntimeError(errors.ExpectedNumber, token.Position{}, errors.Descriptor{Name: name, Value: v.String()})
	}
	return int(n.AsFloat()), nil
}

// registerVector installs the Vector native class (spec §4.J): an
// instance-method table plus the Vector::from/repeat/from_exec_n
// static factories, all parented to rootObject.
func registerVector(global *rtvalue.Scope, rootObject *rtvalue.Object) {
	vectorClass := rtvalue.Allocate(rootObject, "Vector")
	global.AssignLocally("Vector", vectorClass)

	method := func(name string, fn func(d *vectorData, recv *rtvalue.Object, args []rtvalue.Value, ev rtvalue.Evaluator) (rtvalue.Value, error)) {
		vectorClass.SetLocal(name, &rtvalue.Native{
			Name: name,
			Fn: func(ev rtvalue.Evaluator, args []rtvalue.Value) (rtvalue.Value, error) {
				if len(args) == 0 {
					return nil, errors.NewRuntimeError(errors.InvalidArguments, token.Position{}, errors.Descriptor{Name: name})
				}
				recv, ok := args[0].(*rtvalue.Object)
				if !ok {
					return nil, errors.NewRuntimeError(errors.ExpectedObject, token.Position{}, errors.Descriptor{Name: name, Value: args[0].String()})
				}
				data, err := vectorPayload(recv)
				if err != nil {
					return nil, err
				}
				return fn(data, recv, args[1:], ev)
			},
		})
	}

	vectorClass.SetLocal("constructor", &rtvalue.Native{
		Name: "constructor",
		Fn: func(ev rtvalue.Evaluator, args []rtvalue.Value) (rtvalue.Value, error) {
			if len(args) == 0 {
				return nil, errors.NewRuntimeError(errors.InvalidArguments, token.Position{}, errors.Descriptor{Name: "constructor"})
			}
			recv, ok := args[0].(*rtvalue.Object)
			if !ok {
				return nil, errors.NewRuntimeError(errors.ExpectedObject, token.Position{}, errors.Descriptor{Name: "constructor"})
			}
			installVectorPayload(recv, &vectorData{})
			return rtvalue.Null{}, nil
		},
	})

	method("capacity", func(d *vectorData, recv *rtvalue.Object, args []rtvalue.Value, ev rtvalue.Evaluator) (rtvalue.Value, error) {
		return rtvalue.IntNumber(int64(cap(d.items))), nil
	})

	method("len", func(d *vectorData, recv *rtvalue.Object, args []rtvalue.Value, ev rtvalue.Evaluator) (rtvalue.Value, error) {
		return rtvalue.IntNumber(int64(len(d.items))), nil
	})

	method("clear", func(d *vectorData, recv *rtvalue.Object, args []rtvalue.Value, ev rtvalue.Evaluator) (rtvalue.Value, error) {
		d.items = d.items[:0]
		return rtvalue.Null{}, nil
	})

	method("insert", func(d *vectorData, recv *rtvalue.Object, args []rtvalue.Value, ev rtvalue.Evaluator) (rtvalue.Value, error) {
		if len(args) != 2 {
			return nil, errors.NewRuntimeError(errors.InvalidNumberArguments, token.Position{}, errors.Descriptor{Name: "insert"})
		}
		idx, err := indexArg(args[0], "insert")
		if err != nil {
			return nil, err
		}
		if idx < 0 || idx > len(d.items) {
			return nil, errors.NewRuntimeError(errors.InvalidArguments, token.Position{}, errors.Descriptor{Name: "insert"})
		}
		d.items = append(d.items, rtvalue.Null{})
		copy(d.items[idx+1:], d.items[idx:])
		d.items[idx] = args[1]
		return rtvalue.Null{}, nil
	})

	method("push", func(d *vectorData, recv *rtvalue.Object, args []rtvalue.Value, ev rtvalue.Evaluator) (rtvalue.Value, error) {
		d.items = append(d.items, args...)
		return rtvalue.Null{}, nil
	})

	method("remove", func(d *vectorData, recv *rtvalue.Object, args []rtvalue.Value, ev rtvalue.Evaluator) (rtvalue.Value, error) {
		if len(args) != 1 {
			return nil, errors.NewRuntimeError(errors.InvalidNumberArguments, token.Position{}, errors.Descriptor{Name: "remove"})
		}
		idx, err := indexArg(args[0], "remove")
		if err != nil {
			return nil, err
		}
		if idx < 0 || idx >= len(d.items) {
			return nil, errors.NewRuntimeError(errors.InvalidArguments, token.Position{}, errors.Descriptor{Name: "remove"})
		}
		v := d.items[idx]
		d.items = append(d.items[:idx], d.items[idx+1:]...)
		return v, nil
	})

	method("pop", func(d *vectorData, recv *rtvalue.Object, args []rtvalue.Value, ev rtvalue.Evaluator) (rtvalue.Value, error) {
		if len(d.items) == 0 {
			return rtvalue.Null{}, nil
		}
		v := d.items[len(d.items)-1]
		d.items = d.items[:len(d.items)-1]
		return v, nil
	})

	method("reserve", func(d *vectorData, recv *rtvalue.Object, args []rtvalue.Value, ev rtvalue.Evaluator) (rtvalue.Value, error) {
		if len(args) != 1 {
			return nil, errors.NewRuntimeError(errors.InvalidNumberArguments, token.Position{}, errors.Descriptor{Name: "reserve"})
		}
		n, err := indexArg(args[0], "reserve")
		if err != nil {
			return nil, err
		}
		if n > cap(d.items) {
			grown := make([]rtvalue.Value, len(d.items), n)
			copy(grown, d.items)
			d.items = grown
		}
		return rtvalue.Null{}, nil
	})

	method("resize", func(d *vectorData, recv *rtvalue.Object, args []rtvalue.Value, ev rtvalue.Evaluator) (rtvalue.Value, error) {
		if len(args) < 1 {
			return nil, errors.NewRuntimeError(errors.InvalidNumberArguments, token.Position{}, errors.Descriptor{Name: "resize"})
		}
		n, err := indexArg(args[0], "resize")
		if err != nil {
			return nil, err
		}
		var fill rtvalue.Value = rtvalue.Null{}
		if len(args) > 1 {
			fill = args[1]
		}
		if n <= len(d.items) {
			d.items = d.items[:n]
		} else {
			for len(d.items) < n {
				d.items = append(d.items, fill)
			}
		}
		return rtvalue.Null{}, nil
	})

	method("get", func(d *vectorData, recv *rtvalue.Object, args []rtvalue.Value, ev rtvalue.Evaluator) (rtvalue.Value, error) {
		if len(args) != 1 {
			return nil, errors.NewRuntimeError(errors.InvalidNumberArguments, token.Position{}, errors.Descriptor{Name: "get"})
		}
		idx, err := indexArg(args[0], "get")
		if err != nil {
			return nil, err
		}
		if idx < 0 || idx >= len(d.items) {
			return nil, errors.NewRuntimeError(errors.InvalidArguments, token.Position{}, errors.Descriptor{Name: "get"})
		}
		return d.items[idx], nil
	})

	method("set", func(d *vectorData, recv *rtvalue.Object, args []rtvalue.Value, ev rtvalue.Evaluator) (rtvalue.Value, error) {
		if len(args) != 2 {
			return nil, errors.NewRuntimeError(errors.InvalidNumberArguments, token.Position{}, errors.Descriptor{Name: "set"})
		}
		idx, err := indexArg(args[0], "set")
		if err != nil {
			return nil, err
		}
		if idx < 0 || idx >= len(d.items) {
			return nil, errors.NewRuntimeError(errors.InvalidArguments, token.Position{}, errors.Descriptor{Name: "set"})
		}
		d.items[idx] = args[1]
		return rtvalue.Null{}, nil
	})

	method("for_each", func(d *vectorData, recv *rtvalue.Object, args []rtvalue.Value, ev rtvalue.Evaluator) (rtvalue.Value, error) {
		if len(args) != 1 {
			return nil, errors.NewRuntimeError(errors.InvalidNumberArguments, token.Position{}, errors.Descriptor{Name: "for_each"})
		}
		fn, ok := args[0].(rtvalue.Function)
		if !ok {
			return nil, errors.NewRuntimeError(errors.ExpectedFunction, token.Position{}, errors.Descriptor{Name: "for_each"})
		}
		for i, item := range d.items {
			if _, err := ev.Call(fn, []rtvalue.Value{item, rtvalue.IntNumber(int64(i))}); err != nil {
				return nil, err
			}
		}
		return rtvalue.Null{}, nil
	})

	method("reduce", func(d *vectorData, recv *rtvalue.Object, args []rtvalue.Value, ev rtvalue.Evaluator) (rtvalue.Value, error) {
		if len(args) != 2 {
			return nil, errors.NewRuntimeError(errors.InvalidNumberArguments, token.Position{}, errors.Descriptor{Name: "reduce"})
		}
		fn, ok := args[0].(rtvalue.Function)
		if !ok {
			return nil, errors.NewRuntimeError(errors.ExpectedFunction, token.Position{}, errors.Descriptor{Name: "reduce"})
		}
		acc := args[1]
		for _, item := range d.items {
			v, err := ev.Call(fn, []rtvalue.Value{acc, item})
			if err != nil {
				return nil, err
			}
			acc = v
		}
		return acc, nil
	})

	method("map", func(d *vectorData, recv *rtvalue.Object, args []rtvalue.Value, ev rtvalue.Evaluator) (rtvalue.Value, error) {
		if len(args) != 1 {
			return nil, errors.NewRuntimeError(errors.InvalidNumberArguments, token.Position{}, errors.Descriptor{Name: "map"})
		}
		fn, ok := args[0].(rtvalue.Function)
		if !ok {
			return nil, errors.NewRuntimeError(errors.ExpectedFunction, token.Position{}, errors.Descriptor{Name: "map"})
		}
		mapped := make([]rtvalue.Value, len(d.items))
		for i, item := range d.items {
			v, err := ev.Call(fn, []rtvalue.Value{item, rtvalue.IntNumber(int64(i))})
			if err != nil {
				return nil, err
			}
			mapped[i] = v
		}
		inst := rtvalue.Allocate(recv.Parent, "Vector")
		installVectorPayload(inst, &vectorData{items: mapped})
		return inst, nil
	})

	method("map_inline", func(d *vectorData, recv *rtvalue.Object, args []rtvalue.Value, ev rtvalue.Evaluator) (rtvalue.Value, error) {
		if len(args) != 1 {
			return nil, errors.NewRuntimeError(errors.InvalidNumberArguments, token.Position{}, errors.Descriptor{Name: "map_inline"})
		}
		fn, ok := args[0].(rtvalue.Function)
		if !ok {
			return nil, errors.NewRuntimeError(errors.ExpectedFunction, token.Position{}, errors.Descriptor{Name: "map_inline"})
		}
		for i, item := range d.items {
			v, err := ev.Call(fn, []rtvalue.Value{item, rtvalue.IntNumber(int64(i))})
			if err != nil {
				return nil, err
			}
			d.items[i] = v
		}
		return recv, nil
	})

	method("clone", func(d *vectorData, recv *rtvalue.Object, args []rtvalue.Value, ev rtvalue.Evaluator) (rtvalue.Value, error) {
		cloned := append([]rtvalue.Value{}, d.items...)
		inst := rtvalue.Allocate(recv.Parent, "Vector")
		installVectorPayload(inst, &vectorData{items: cloned})
		return inst, nil
	})

	method("equals", func(d *vectorData, recv *rtvalue.Object, args []rtvalue.Value, ev rtvalue.Evaluator) (rtvalue.Value, error) {
		if len(args) != 1 {
			return nil, errors.NewRuntimeError(errors.InvalidNumberArguments, token.Position{}, errors.Descriptor{Name: "equals"})
		}
		other, err := vectorPayload(args[0])
		if err != nil {
			return rtvalue.Bool(false), nil
		}
		if len(other.items) != len(d.items) {
			return rtvalue.Bool(false), nil
		}
		for i := range d.items {
			if !rtvalue.Equals(d.items[i], other.items[i]) {
				return rtvalue.Bool(false), nil
			}
		}
		return rtvalue.Bool(true), nil
	})

	vectorClass.SetLocal("from", &rtvalue.Native{
		Name: "Vector::from",
		Fn: func(ev rtvalue.Evaluator, args []rtvalue.Value) (rtvalue.Value, error) {
			inst := rtvalue.Allocate(vectorClass, "Vector")
			installVectorPayload(inst, &vectorData{items: append([]rtvalue.Value{}, args...)})
			return inst, nil
		},
	})

	vectorClass.SetLocal("repeat", &rtvalue.Native{
		Name: "Vector::repeat",
		Fn: func(ev rtvalue.Evaluator, args []rtvalue.Value) (rtvalue.Value, error) {
			if len(args) != 2 {
				return nil, errors.NewRuntimeError(errors.InvalidNumberArguments, token.Position{}, errors.Descriptor{Name: "Vector::repeat"})
			}
			count, err := indexArg(args[1], "Vector::repeat")
			if err != nil {
				return nil, err
			}
			items := make([]rtvalue.Value, count)
			for i := range items {
				items[i] = args[0]
			}
			inst := rtvalue.Allocate(vectorClass, "Vector")
			installVectorPayload(inst, &vectorData{items: items})
			return inst, nil
		},
	})

	vectorClass.SetLocal("from_exec_n", &rtvalue.Native{
		Name: "Vector::from_exec_n",
		Fn: func(ev rtvalue.Evaluator, args []rtvalue.Value) (rtvalue.Value, error) {
			if len(args) != 2 {
				return nil, errors.NewRuntimeError(errors.InvalidNumberArguments, token.Position{}, errors.Descriptor{Name: "Vector::from_exec_n"})
			}
			count, err := indexArg(args[0], "Vector::from_exec_n")
			if err != nil {
				return nil, err
			}
			fn, ok := args[1].(rtvalue.Function)
			if !ok {
				return nil, errors.NewRuntimeError(errors.ExpectedFunction, token.Position{}, errors.Descriptor{Name: "Vector::from_exec_n"})
			}
			items := make([]rtvalue.Value, count)
			for i := 0; i < count; i++ {
				v, err := ev.Call(fn, []rtvalue.Value{rtvalue.IntNumber(int64(i))})
				if err != nil {
					return nil, err
				}
				items[i] = v
			}
			inst := rtvalue.Allocate(vectorClass, "Vector")
			installVectorPayload(inst, &vectorData{items: items})
			return inst, nil
		},
	})
}
