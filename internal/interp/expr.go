package interp

import (
	"github.com/evil-lang/evil/internal/ast"
	"github.com/evil-lang/evil/internal/errors"
	"github.com/evil-lang/evil/internal/interp/rtvalue"
)

// evalExpr evaluates expr to its r-value. Identifier, DottedIdentifiers
// and MemberAccess share the same property-chain resolution as their
// lvalue counterparts in lvalue.go, but don't build an assign closure
// since no write is intended here.
func (it *Interpreter) evalExpr(scope *rtvalue.Scope, expr ast.Expression) (rtvalue.Value, error) {
	switch e := expr.(type) {
	case *ast.NullLiteral:
		return rtvalue.Null{}, nil
	case *ast.BoolLiteral:
		return rtvalue.Bool(e.Value), nil
	case *ast.NumberLiteral:
		if e.IsFloat {
			return rtvalue.FloatNumber(e.FloatValue), nil
		}
		return rtvalue.IntNumber(e.IntValue), nil
	case *ast.StringLiteral:
		return rtvalue.Str(e.Value), nil
	case *ast.ParenExpr:
		return it.evalExpr(scope, e.Inner)
	case *ast.Identifier:
		cell := scope.GetOrCreateIdentifier(e.Name)
		return readCell(cell, e.Pos(), e.Name)
	case *ast.DottedIdentifiers:
		obj, name, pos, err := it.resolveDottedTarget(scope, e)
		if err != nil {
			return nil, err
		}
		if cell, ok := obj.Resolve(name); ok {
			return readCell(cell, pos, name)
		}
		return rtvalue.Null{}, nil
	case *ast.MemberAccess:
		return it.evalMemberAccessRead(scope, e)
	case *ast.UnaryExpr:
		return it.evalUnary(scope, e)
	case *ast.BinaryExpr:
		return it.evalBinary(scope, e)
	case *ast.AssignmentExpr:
		return it.evalAssignment(scope, e)
	case *ast.FunctionCallExpr:
		return it.evalFunctionCall(scope, e)
	case *ast.NewObjectExpr:
		return it.evalNewObject(scope, e)
	case *ast.FunctionExpression:
		return &rtvalue.Closure{Decl: e.Decl, Scope: scope}, nil
	case *ast.ClassDeclarationExpression:
		return it.evalClassDecl(scope, e.Decl)
	default:
		return nil, errors.NewStructuralError(errors.UnimplementedExpression, expr.Pos(), errors.Descriptor{Expr: expr.String()})
	}
}

func (it *Interpreter) evalMemberAccessRead(scope *rtvalue.Scope, ma *ast.MemberAccess) (rtvalue.Value, error) {
	if _, ok := ma.Indexer.(ast.MethodNameArrow); ok {
		return nil, errors.NewStructuralError(errors.InvalidMethodArrowAccess, ma.Pos(), errors.Descriptor{Expr: ma.String()})
	}
	obj, name, pos, err := it.resolveMemberTarget(scope, ma)
	if err != nil {
		return nil, err
	}
	if cell, ok := obj.Resolve(name); ok {
		return readCell(cell, pos, name)
	}
	return rtvalue.Null{}, nil
}

func (it *Interpreter) evalAssignment(scope *rtvalue.Scope, a *ast.AssignmentExpr) (rtvalue.Value, error) {
	lv, err := it.evalLValue(scope, a.Left)
	if err != nil {
		return nil, err
	}

	var result rtvalue.Value
	if a.Op == "=" {
		rhs, err := it.evalExpr(scope, a.Right)
		if err != nil {
			return nil, err
		}
		if _, hoisted := rhs.(rtvalue.HoistedPlaceholder); hoisted {
			return nil, errors.NewStructuralError(errors.CantSetToHoistedValue, a.Pos(), errors.Descriptor{Expr: a.Left.String()})
		}
		result = rhs
	} else {
		cur, err := lv.read()
		if err != nil {
			return nil, err
		}
		rhs, err := it.evalExpr(scope, a.Right)
		if err != nil {
			return nil, err
		}
		computed, err := applyBinaryOp(compoundOp(a.Op), cur, rhs, a.Pos())
		if err != nil {
			return nil, err
		}
		if _, hoisted := computed.(rtvalue.HoistedPlaceholder); hoisted {
			return nil, errors.NewStructuralError(errors.CantSetToHoistedValue, a.Pos(), errors.Descriptor{Expr: a.Left.String()})
		}
		result = computed
	}

	if err := lv.write(result); err != nil {
		return nil, err
	}
	return result, nil
}

func (it *Interpreter) evalArgs(scope *rtvalue.Scope, exprs []ast.Expression) ([]rtvalue.Value, error) {
	args := make([]rtvalue.Value, len(exprs))
	for i, e := range exprs {
		v, err := it.evalExpr(scope, e)
		if err != nil {
			return nil, err
		}
		args[i] = v
	}
	return args, nil
}

func (it *Interpreter) evalFunctionCall(scope *rtvalue.Scope, call *ast.FunctionCallExpr) (rtvalue.Value, error) {
	if ma, ok := call.Callee.(*ast.MemberAccess); ok {
		if name, ok := ma.Indexer.(ast.MethodNameArrow); ok {
			return it.evalMethodArrowCall(scope, call, ma, string(name))
		}
	}

	calleeVal, err := it.evalExpr(scope, call.Callee)
	if err != nil {
		return nil, err
	}
	fn, ok := calleeVal.(rtvalue.Function)
	if !ok {
		return nil, errors.NewRuntimeError(errors.ExpectedFunction, call.Pos(), errors.Descriptor{Expr: call.Callee.String(), Value: calleeVal.String()})
	}
	args, err := it.evalArgs(scope, call.Args)
	if err != nil {
		return nil, err
	}
	return it.callFunction(fn, args, call.Pos())
}

// evalMethodArrowCall implements `receiver -> name(args)` (spec §4.H):
// resolve name on receiver's parent chain and prepend receiver to the
// evaluated arguments.
func (it *Interpreter) evalMethodArrowCall(scope *rtvalue.Scope, call *ast.FunctionCallExpr, ma *ast.MemberAccess, name string) (rtvalue.Value, error) {
	recvVal, err := it.evalExpr(scope, ma.Object)
	if err != nil {
		return nil, err
	}
	recv, ok := recvVal.(*rtvalue.Object)
	if !ok {
		return nil, errors.NewRuntimeError(errors.ExpectedObject, ma.Pos(), errors.Descriptor{Value: recvVal.String()})
	}
	cell, found := recv.Resolve(name)
	if !found {
		return nil, errors.NewRuntimeError(errors.ExpectedFunction, ma.Pos(), errors.Descriptor{Name: name})
	}
	fnVal, err := readCell(cell, ma.Pos(), name)
	if err != nil {
		return nil, err
	}
	fn, ok := fnVal.(rtvalue.Function)
	if !ok {
		return nil, errors.NewRuntimeError(errors.ExpectedFunction, ma.Pos(), errors.Descriptor{Name: name, Value: fnVal.String()})
	}
	args, err := it.evalArgs(scope, call.Args)
	if err != nil {
		return nil, err
	}
	fullArgs := append([]rtvalue.Value{recv}, args...)
	return it.callFunction(fn, fullArgs, call.Pos())
}
