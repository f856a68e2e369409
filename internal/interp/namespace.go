package interp

import (
	"github.com/evil-lang/evil/internal/ast"
	"github.com/evil-lang/evil/internal/errors"
	"github.com/evil-lang/evil/internal/interp/rtvalue"
	"github.com/evil-lang/evil/internal/token"
)

const hiddenCurrentFileVar = "__HIDDEN__CURRENT_FILE__"

func currentFileOf(scope *rtvalue.Scope) string {
	if cell, ok := scope.Get(hiddenCurrentFileVar); ok {
		if s, ok := cell.Value.(rtvalue.Str); ok {
			return string(s)
		}
	}
	return ""
}

// namespaceLink resolves one binding in a namespace path (spec §4.H/§9):
// if it currently holds Null, an empty object parented to the root
// Object class is auto-created and installed; if it holds an *Object
// already, that object is reused; anything else is a type error.
func (it *Interpreter) namespaceLink(get func() (rtvalue.Value, error), set func(rtvalue.Value), pos token.Position) (*rtvalue.Object, error) {
	v, err := get()
	if err != nil {
		return nil, err
	}
	switch val := v.(type) {
	case *rtvalue.Object:
		return val, nil
	case rtvalue.Null:
		obj := rtvalue.Allocate(it.RootObjectClass, "")
		set(obj)
		return obj, nil
	default:
		return nil, errors.NewRuntimeError(errors.ExpectedNamespaceObject, pos, errors.Descriptor{Value: val.String()})
	}
}

// resolveNamespacePath walks path as a chain of object-valued bindings
// rooted at scope, auto-creating any link that is currently Null.
func (it *Interpreter) resolveNamespacePath(scope *rtvalue.Scope, path []string, pos token.Position) (*rtvalue.Object, error) {
	cell := scope.GetOrCreateIdentifier(path[0])
	obj, err := it.namespaceLink(
		func() (rtvalue.Value, error) { return readCell(cell, pos, path[0]) },
		func(v rtvalue.Value) { cell.Value = v },
		pos,
	)
	if err != nil {
		return nil, err
	}
	for _, seg := range path[1:] {
		cur := obj
		obj, err = it.namespaceLink(
			func() (rtvalue.Value, error) {
				if c, ok := cur.GetOwn(seg); ok {
					return readCell(c, pos, seg)
				}
				return rtvalue.Null{}, nil
			},
			func(v rtvalue.Value) { cur.SetLocal(seg, v) },
			pos,
		)
		if err != nil {
			return nil, err
		}
	}
	return obj, nil
}

// execNamespace implements `namespace a.b.c { body }` (spec §4.H): the
// target namespace object's property map doubles as the body's
// innermost scope, so declarations made inside it become object
// properties with no separate publish step.
func (it *Interpreter) execNamespace(scope *rtvalue.Scope, n *ast.NamespaceStatement) (flow, error) {
	nsObj, err := it.resolveNamespacePath(scope, n.Path, n.Pos())
	if err != nil {
		return flow{}, err
	}
	bodyScope := rtvalue.NewScopeOverProps(scope, nsObj.Props)
	return it.execStatementsWithHoist(bodyScope, n.Body)
}

// execImport implements `import file_expr as a.b.c;` (spec §4.H/§4.I):
// resolve the file through it.Resolver, then execute its statements
// inside the target namespace object's scope with the current-file
// marker updated so nested imports in the imported file resolve
// relative to it.
func (it *Interpreter) execImport(scope *rtvalue.Scope, im *ast.ImportStatement) (flow, error) {
	fileVal, err := it.evalExpr(scope, im.FileExpr)
	if err != nil {
		return flow{}, err
	}
	fileStr, ok := fileVal.(rtvalue.Str)
	if !ok {
		return flow{}, errors.NewRuntimeError(errors.ExpectedValidFileName, im.Pos(), errors.Descriptor{Value: fileVal.String()})
	}

	res, err := it.Resolver.Resolve(currentFileOf(scope), string(fileStr))
	if err != nil {
		return flow{}, errors.NewRuntimeError(errors.IOError, im.Pos(), errors.Descriptor{Name: string(fileStr), Value: err.Error()})
	}

	nsObj, err := it.resolveNamespacePath(scope, im.As, im.Pos())
	if err != nil {
		return flow{}, err
	}

	bodyScope := rtvalue.NewScopeOverProps(it.Global, nsObj.Props)
	bodyScope.AssignLocally(hiddenCurrentFileVar, rtvalue.Str(res.AbsolutePath))
	return it.execStatementsWithHoist(bodyScope, res.Statements)
}
