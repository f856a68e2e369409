package interp

import (
	"github.com/evil-lang/evil/internal/ast"
	"github.com/evil-lang/evil/internal/errors"
	"github.com/evil-lang/evil/internal/interp/rtvalue"
)

// evalClassDecl builds the class object for decl (spec §4.F/§9):
// classes and instances share the same Object node type, so "declaring
// a class" just means allocating an Object whose Parent is the
// evaluated extends-expression (or the root Object class by default)
// and installing each method as a Closure captured over a scope with
// `super` bound to that parent.
func (it *Interpreter) evalClassDecl(scope *rtvalue.Scope, decl *ast.ClassDecl) (*rtvalue.Object, error) {
	parent := it.RootObjectClass
	if decl.Extends != nil {
		v, err := it.evalExpr(scope, decl.Extends)
		if err != nil {
			return nil, err
		}
		obj, ok := v.(*rtvalue.Object)
		if !ok {
			return nil, errors.NewRuntimeError(errors.ExpectedClassObject, decl.Pos(), errors.Descriptor{Name: decl.Name, Value: v.String()})
		}
		parent = obj
	}

	classObj := rtvalue.Allocate(parent, decl.Name)

	methodScope := rtvalue.NewChildScope(scope)
	if parent != nil {
		// Ignored error: methodScope is freshly created, so "super" can
		// never already be bound here.
		_ = methodScope.Declare("super", parent)
	}
	for _, m := range decl.Methods {
		classObj.SetLocal(m.Name, &rtvalue.Closure{Decl: m, Scope: methodScope})
	}
	return classObj, nil
}

// evalNewObject implements `new Callee(args)` (spec §4.F): allocate an
// instance parented to the evaluated class, resolve `constructor`
// through the instance's parent chain, and call it with the instance
// prepended to the evaluated arguments. The constructor's return value
// is discarded in favour of the instance unless it returned something
// other than Null/HoistedPlaceholder.
func (it *Interpreter) evalNewObject(scope *rtvalue.Scope, n *ast.NewObjectExpr) (rtvalue.Value, error) {
	calleeVal, err := it.evalExpr(scope, n.Callee)
	if err != nil {
		return nil, err
	}
	classObj, ok := calleeVal.(*rtvalue.Object)
	if !ok {
		return nil, errors.NewRuntimeError(errors.ExpectedClassObject, n.Pos(), errors.Descriptor{Expr: n.Callee.String(), Value: calleeVal.String()})
	}

	instance := rtvalue.Allocate(classObj, classObj.Name)

	args, err := it.evalArgs(scope, n.Args)
	if err != nil {
		return nil, err
	}

	ctorCell, found := instance.Resolve("constructor")
	if !found {
		return instance, nil
	}
	ctorVal, err := readCell(ctorCell, n.Pos(), "constructor")
	if err != nil {
		return nil, err
	}
	ctorFn, ok := ctorVal.(rtvalue.Function)
	if !ok {
		return nil, errors.NewRuntimeError(errors.ExpectedFunction, n.Pos(), errors.Descriptor{Name: "constructor", Value: ctorVal.String()})
	}

	fullArgs := append([]rtvalue.Value{instance}, args...)
	result, err := it.callFunction(ctorFn, fullArgs, n.Pos())
	if err != nil {
		return nil, err
	}
	switch result.(type) {
	case rtvalue.Null, rtvalue.HoistedPlaceholder:
		return instance, nil
	default:
		return result, nil
	}
}
