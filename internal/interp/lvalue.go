package interp

import (
	"github.com/evil-lang/evil/internal/ast"
	"github.com/evil-lang/evil/internal/errors"
	"github.com/evil-lang/evil/internal/interp/rtvalue"
	"github.com/evil-lang/evil/internal/token"
)

// lvalue is the mutation handle of spec §4.H/§9: a read closure and a
// write closure over either a shared variable cell or an
// (object, property-name) pair. Built once per assignment target so a
// side-effecting receiver expression (`a().x = 1`) is evaluated
// exactly once, mirroring the host interpreter's own
// evaluateLValue(expr) -> (value, assign, error) pattern.
type lvalue struct {
	read  func() (rtvalue.Value, error)
	write func(rtvalue.Value) error
}

func readCell(cell *rtvalue.VariableCell, pos token.Position, name string) (rtvalue.Value, error) {
	if _, hoisted := cell.Value.(rtvalue.HoistedPlaceholder); hoisted {
		return nil, errors.NewStructuralError(errors.CantAccessHoistedVariable, pos, errors.Descriptor{Name: name})
	}
	return cell.Value, nil
}

func cellLValue(cell *rtvalue.VariableCell, pos token.Position, name string) lvalue {
	return lvalue{
		read: func() (rtvalue.Value, error) { return readCell(cell, pos, name) },
		write: func(v rtvalue.Value) error {
			cell.Value = v
			return nil
		},
	}
}

func objLValue(obj *rtvalue.Object, name string, pos token.Position) lvalue {
	return lvalue{
		read: func() (rtvalue.Value, error) {
			if cell, ok := obj.Resolve(name); ok {
				return readCell(cell, pos, name)
			}
			return rtvalue.Null{}, nil
		},
		write: func(v rtvalue.Value) error {
			obj.SetLocal(name, v)
			return nil
		},
	}
}

// evalLValue resolves expr to a mutation handle. expr must satisfy
// ast.IsLValue; the parser already enforces that on assignment
// targets, so the default case here reports the structural violation
// rather than the runtime one.
func (it *Interpreter) evalLValue(scope *rtvalue.Scope, expr ast.Expression) (lvalue, error) {
	switch e := expr.(type) {
	case *ast.Identifier:
		cell := scope.GetOrCreateIdentifier(e.Name)
		return cellLValue(cell, e.Pos(), e.Name), nil
	case *ast.DottedIdentifiers:
		obj, name, pos, err := it.resolveDottedTarget(scope, e)
		if err != nil {
			return lvalue{}, err
		}
		return objLValue(obj, name, pos), nil
	case *ast.MemberAccess:
		obj, name, pos, err := it.resolveMemberTarget(scope, e)
		if err != nil {
			return lvalue{}, err
		}
		return objLValue(obj, name, pos), nil
	default:
		return lvalue{}, errors.NewStructuralError(errors.CantStripAssignment, expr.Pos(), errors.Descriptor{Expr: expr.String()})
	}
}

// resolveDottedTarget walks all but the last segment of d.Path as
// property reads (each must yield an *rtvalue.Object), and returns the
// final segment's (object, name) pair for the caller to read or write.
func (it *Interpreter) resolveDottedTarget(scope *rtvalue.Scope, d *ast.DottedIdentifiers) (*rtvalue.Object, string, token.Position, error) {
	cell := scope.GetOrCreateIdentifier(d.Path[0])
	cur, err := readCell(cell, d.Pos(), d.Path[0])
	if err != nil {
		return nil, "", d.Pos(), err
	}
	for _, seg := range d.Path[1 : len(d.Path)-1] {
		obj, ok := cur.(*rtvalue.Object)
		if !ok {
			return nil, "", d.Pos(), errors.NewRuntimeError(errors.ExpectedObject, d.Pos(), errors.Descriptor{Name: seg, Value: cur.String()})
		}
		if c, found := obj.Resolve(seg); found {
			v, err := readCell(c, d.Pos(), seg)
			if err != nil {
				return nil, "", d.Pos(), err
			}
			cur = v
		} else {
			cur = rtvalue.Null{}
		}
	}
	obj, ok := cur.(*rtvalue.Object)
	if !ok {
		return nil, "", d.Pos(), errors.NewRuntimeError(errors.ExpectedObject, d.Pos(), errors.Descriptor{Name: d.Path[len(d.Path)-2], Value: cur.String()})
	}
	return obj, d.Path[len(d.Path)-1], d.Pos(), nil
}

// resolveMemberTarget evaluates ma.Object and the indexer (for a
// Subscript) and returns the (object, property-name) pair the
// MemberAccess denotes.
func (it *Interpreter) resolveMemberTarget(scope *rtvalue.Scope, ma *ast.MemberAccess) (*rtvalue.Object, string, token.Position, error) {
	objVal, err := it.evalExpr(scope, ma.Object)
	if err != nil {
		return nil, "", ma.Pos(), err
	}
	obj, ok := objVal.(*rtvalue.Object)
	if !ok {
		return nil, "", ma.Pos(), errors.NewRuntimeError(errors.ExpectedObject, ma.Pos(), errors.Descriptor{Value: objVal.String()})
	}
	switch idx := ma.Indexer.(type) {
	case ast.PropertyName:
		return obj, string(idx), ma.Pos(), nil
	case ast.Subscript:
		idxVal, err := it.evalExpr(scope, idx.Index)
		if err != nil {
			return nil, "", ma.Pos(), err
		}
		s, ok := idxVal.(rtvalue.Str)
		if !ok {
			return nil, "", ma.Pos(), errors.NewRuntimeError(errors.ExpectedValidSubscript, ma.Pos(), errors.Descriptor{Value: idxVal.String()})
		}
		return obj, string(s), ma.Pos(), nil
	default:
		return nil, "", ma.Pos(), errors.NewStructuralError(errors.InvalidMethodArrowAccess, ma.Pos(), errors.Descriptor{})
	}
}
