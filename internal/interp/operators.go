package interp

import (
	"math"
	"strings"

	"github.com/evil-lang/evil/internal/ast"
	"github.com/evil-lang/evil/internal/errors"
	"github.com/evil-lang/evil/internal/interp/rtvalue"
	"github.com/evil-lang/evil/internal/token"
)

func (it *Interpreter) evalUnary(scope *rtvalue.Scope, u *ast.UnaryExpr) (rtvalue.Value, error) {
	v, err := it.evalExpr(scope, u.Arg)
	if err != nil {
		return nil, err
	}
	switch u.Op {
	case "!":
		b, ok := v.(rtvalue.Bool)
		if !ok {
			return nil, errors.NewStructuralError(errors.UnimplementedUnaryOp, u.Pos(), errors.Descriptor{Name: u.Op, Value: v.String()})
		}
		return !b, nil
	case "+":
		n, ok := v.(rtvalue.Number)
		if !ok {
			return nil, errors.NewStructuralError(errors.UnimplementedUnaryOp, u.Pos(), errors.Descriptor{Name: u.Op, Value: v.String()})
		}
		return n, nil
	case "-":
		n, ok := v.(rtvalue.Number)
		if !ok {
			return nil, errors.NewStructuralError(errors.UnimplementedUnaryOp, u.Pos(), errors.Descriptor{Name: u.Op, Value: v.String()})
		}
		if n.IsFloat {
			return rtvalue.FloatNumber(-n.Float), nil
		}
		return rtvalue.IntNumber(-n.Int), nil
	default:
		return nil, errors.NewStructuralError(errors.UnknownOperator, u.Pos(), errors.Descriptor{Name: u.Op})
	}
}

func (it *Interpreter) evalBinary(scope *rtvalue.Scope, b *ast.BinaryExpr) (rtvalue.Value, error) {
	switch b.Op {
	case "&&":
		left, err := it.evalExpr(scope, b.Left)
		if err != nil {
			return nil, err
		}
		if !rtvalue.IsTruthy(left) {
			return left, nil
		}
		return it.evalExpr(scope, b.Right)
	case "||":
		left, err := it.evalExpr(scope, b.Left)
		if err != nil {
			return nil, err
		}
		if rtvalue.IsTruthy(left) {
			return left, nil
		}
		return it.evalExpr(scope, b.Right)
	}

	left, err := it.evalExpr(scope, b.Left)
	if err != nil {
		return nil, err
	}
	right, err := it.evalExpr(scope, b.Right)
	if err != nil {
		return nil, err
	}
	return applyBinaryOp(b.Op, left, right, b.Pos())
}

// applyBinaryOp implements spec §4.H's non-assignment binary operator
// table; the compound-assignment path in evalAssignment strips the
// trailing `=` from a compound operator and calls this directly so
// the two paths can't drift.
func applyBinaryOp(op string, left, right rtvalue.Value, pos token.Position) (rtvalue.Value, error) {
	switch op {
	case "==":
		return rtvalue.Bool(rtvalue.Equals(left, right)), nil
	case "!=":
		return rtvalue.Bool(!rtvalue.Equals(left, right)), nil
	}

	if op == "+" {
		if ls, ok := left.(rtvalue.Str); ok {
			if rs, ok := right.(rtvalue.Str); ok {
				return rtvalue.Str(string(ls) + string(rs)), nil
			}
		}
	}

	ln, lok := left.(rtvalue.Number)
	rn, rok := right.(rtvalue.Number)
	if !lok || !rok {
		return nil, errors.NewStructuralError(errors.UnimplementedBinaryOp, pos, errors.Descriptor{Name: op, Value: left.String() + ", " + right.String()})
	}

	switch op {
	case "<", ">", "<=", ">=":
		c := ln.Compare(rn)
		var ok bool
		switch op {
		case "<":
			ok = c < 0
		case ">":
			ok = c > 0
		case "<=":
			ok = c <= 0
		case ">=":
			ok = c >= 0
		}
		return rtvalue.Bool(ok), nil
	case "+", "-", "*", "/", "%":
		return arithmetic(op, ln, rn, pos)
	default:
		return nil, errors.NewStructuralError(errors.UnknownOperator, pos, errors.Descriptor{Name: op})
	}
}

// arithmetic implements the integer-closure rule of spec §3/§4.H/§8.6:
// `+ - *` on two Integers stay Integer; `/` stays Integer only when
// the remainder is zero; `%` on two Integers is Integer. Any float
// operand forces a float result.
func arithmetic(op string, l, r rtvalue.Number, pos token.Position) (rtvalue.Value, error) {
	if !l.IsFloat && !r.IsFloat {
		switch op {
		case "+":
			return rtvalue.IntNumber(l.Int + r.Int), nil
		case "-":
			return rtvalue.IntNumber(l.Int - r.Int), nil
		case "*":
			return rtvalue.IntNumber(l.Int * r.Int), nil
		case "/":
			if r.Int == 0 {
				return nil, errors.NewRuntimeError(errors.Generic, pos, errors.Descriptor{Name: "division by zero"})
			}
			if l.Int%r.Int == 0 {
				return rtvalue.IntNumber(l.Int / r.Int), nil
			}
			return rtvalue.FloatNumber(float64(l.Int) / float64(r.Int)), nil
		case "%":
			if r.Int == 0 {
				return nil, errors.NewRuntimeError(errors.Generic, pos, errors.Descriptor{Name: "division by zero"})
			}
			return rtvalue.IntNumber(l.Int % r.Int), nil
		}
	}
	lf, rf := l.AsFloat(), r.AsFloat()
	switch op {
	case "+":
		return rtvalue.FloatNumber(lf + rf), nil
	case "-":
		return rtvalue.FloatNumber(lf - rf), nil
	case "*":
		return rtvalue.FloatNumber(lf * rf), nil
	case "/":
		return rtvalue.FloatNumber(lf / rf), nil
	case "%":
		return rtvalue.FloatNumber(math.Mod(lf, rf)), nil
	}
	return nil, errors.NewStructuralError(errors.UnknownOperator, pos, errors.Descriptor{Name: op})
}

// compoundOp strips the trailing `=` from a compound assignment
// operator (`+=` -> `+`); `=` itself never reaches this helper.
func compoundOp(op string) string {
	return strings.TrimSuffix(op, "=")
}
