package interp

import (
	"github.com/evil-lang/evil/internal/ast"
	"github.com/evil-lang/evil/internal/errors"
	"github.com/evil-lang/evil/internal/interp/rtvalue"
)

// hoist performs the single pre-pass of spec §4.E/§9 over a statement
// list: hoist every `let`-declared name to a placeholder, and eagerly
// declare every function/class name, bound to its value immediately
// (not another placeholder). It does not recurse into nested blocks,
// loops, or branches — those hoist at their own entry.
func (it *Interpreter) hoist(scope *rtvalue.Scope, stmts []ast.Statement) error {
	for _, s := range stmts {
		switch st := s.(type) {
		case *ast.VariableDeclarations:
			for _, d := range st.Decls {
				if err := scope.Hoist(d.Name); err != nil {
					return errors.NewStructuralError(errors.CantRedeclareVariable, d.Pos(), errors.Descriptor{Name: d.Name})
				}
			}
		case *ast.FunctionDeclaration:
			cl := &rtvalue.Closure{Decl: st.Decl, Scope: scope}
			if err := scope.Declare(st.Decl.Name, cl); err != nil {
				return errors.NewStructuralError(errors.CantRedeclareVariable, st.Pos(), errors.Descriptor{Name: st.Decl.Name})
			}
		case *ast.ClassDeclaration:
			classObj, err := it.evalClassDecl(scope, st.Decl)
			if err != nil {
				return err
			}
			if err := scope.Declare(st.Decl.Name, classObj); err != nil {
				return errors.NewStructuralError(errors.CantRedeclareVariable, st.Pos(), errors.Descriptor{Name: st.Decl.Name})
			}
		}
	}
	return nil
}

// execStatementsWithHoist hoists stmts into scope, then executes them
// in order, stopping at the first non-normal flow.
func (it *Interpreter) execStatementsWithHoist(scope *rtvalue.Scope, stmts []ast.Statement) (flow, error) {
	if err := it.hoist(scope, stmts); err != nil {
		return flow{}, err
	}
	for _, s := range stmts {
		fl, err := it.execStatement(scope, s)
		if err != nil {
			return flow{}, err
		}
		if fl.kind != flowNormal {
			return fl, nil
		}
	}
	return normalFlow, nil
}

func (it *Interpreter) execStatement(scope *rtvalue.Scope, s ast.Statement) (flow, error) {
	if it.Trace != nil {
		it.Trace(s.Pos(), s.String())
	}
	switch st := s.(type) {
	case *ast.BlockStatement:
		child := rtvalue.NewChildScope(scope)
		return it.execStatementsWithHoist(child, st.Statements)

	case *ast.EmptyStatement:
		return normalFlow, nil

	case *ast.ExpressionStatement:
		if _, err := it.evalExpr(scope, st.Expr); err != nil {
			return flow{}, err
		}
		return normalFlow, nil

	case *ast.ReturnStatement:
		var v rtvalue.Value = rtvalue.Null{}
		if st.Value != nil {
			val, err := it.evalExpr(scope, st.Value)
			if err != nil {
				return flow{}, err
			}
			v = val
		}
		return flow{kind: flowReturn, value: v}, nil

	case *ast.VariableDeclarations:
		return it.execVariableDeclarations(scope, st)

	case *ast.FunctionDeclaration, *ast.ClassDeclaration:
		return normalFlow, nil

	case *ast.IfStatement:
		return it.execIf(scope, st)

	case *ast.WhileStatement:
		return it.execWhile(scope, st)

	case *ast.DoWhileStatement:
		return it.execDoWhile(scope, st)

	case *ast.ForStatement:
		return it.execFor(scope, st)

	case *ast.BreakStatement:
		depth := st.Depth
		if depth <= 0 {
			depth = 1
		}
		return flow{kind: flowBreak, depth: depth}, nil

	case *ast.ContinueStatement:
		depth := st.Depth
		if depth <= 0 {
			depth = 1
		}
		return flow{kind: flowContinue, depth: depth}, nil

	case *ast.NamespaceStatement:
		return it.execNamespace(scope, st)

	case *ast.ImportStatement:
		return it.execImport(scope, st)

	default:
		return flow{}, errors.NewStructuralError(errors.UnimplementedStatement, s.Pos(), errors.Descriptor{Expr: s.String()})
	}
}

func (it *Interpreter) execVariableDeclarations(scope *rtvalue.Scope, st *ast.VariableDeclarations) (flow, error) {
	for _, d := range st.Decls {
		var v rtvalue.Value = rtvalue.Null{}
		if d.Init != nil {
			val, err := it.evalExpr(scope, d.Init)
			if err != nil {
				return flow{}, err
			}
			v = val
		}
		if err := scope.Declare(d.Name, v); err != nil {
			kind := errors.CantRedeclareVariable
			if err == rtvalue.ErrCantSetToHoistedValue {
				kind = errors.CantSetToHoistedValue
			}
			return flow{}, errors.NewStructuralError(kind, d.Pos(), errors.Descriptor{Name: d.Name})
		}
	}
	return normalFlow, nil
}

// execBranch executes an If branch. A Block or Empty branch already
// creates (or needs) its own scope; anything else gets a fresh child
// scope first (spec §4.H).
func (it *Interpreter) execBranch(scope *rtvalue.Scope, s ast.Statement) (flow, error) {
	switch s.(type) {
	case *ast.BlockStatement, *ast.EmptyStatement:
		return it.execStatement(scope, s)
	default:
		return it.execStatement(rtvalue.NewChildScope(scope), s)
	}
}

func (it *Interpreter) execIf(scope *rtvalue.Scope, st *ast.IfStatement) (flow, error) {
	cond, err := it.evalExpr(scope, st.Cond)
	if err != nil {
		return flow{}, err
	}
	if rtvalue.IsTruthy(cond) {
		return it.execBranch(scope, st.Then)
	}
	if st.Else != nil {
		return it.execBranch(scope, st.Else)
	}
	return normalFlow, nil
}

// loopUnroll interprets an Unrolling raised by a loop's body against
// that loop's own nesting level (spec §4.H/§8.8): Break/Continue at
// depth 1 are consumed here; depth>1 decrements and re-raises to the
// enclosing loop. Return always propagates untouched. consumed reports
// whether the unrolling was handled at this level; keepLooping reports
// whether the caller should keep iterating.
func loopUnroll(fl flow) (result flow, consumed bool, keepLooping bool) {
	switch fl.kind {
	case flowBreak:
		if fl.depth > 1 {
			return flow{kind: flowBreak, depth: fl.depth - 1}, false, false
		}
		return normalFlow, true, false
	case flowContinue:
		if fl.depth > 1 {
			return flow{kind: flowContinue, depth: fl.depth - 1}, false, false
		}
		return flow{}, true, true
	case flowReturn:
		return fl, false, false
	default:
		return normalFlow, true, true
	}
}

func (it *Interpreter) execWhile(scope *rtvalue.Scope, st *ast.WhileStatement) (flow, error) {
	for {
		cond, err := it.evalExpr(scope, st.Cond)
		if err != nil {
			return flow{}, err
		}
		if !rtvalue.IsTruthy(cond) {
			return normalFlow, nil
		}
		bodyScope := rtvalue.NewChildScope(scope)
		fl, err := it.execStatement(bodyScope, st.Body)
		if err != nil {
			return flow{}, err
		}
		result, consumed, keepLooping := loopUnroll(fl)
		if !consumed {
			return result, nil
		}
		if !keepLooping {
			return normalFlow, nil
		}
	}
}

func (it *Interpreter) execDoWhile(scope *rtvalue.Scope, st *ast.DoWhileStatement) (flow, error) {
	for {
		bodyScope := rtvalue.NewChildScope(scope)
		fl, err := it.execStatement(bodyScope, st.Body)
		if err != nil {
			return flow{}, err
		}
		result, consumed, keepLooping := loopUnroll(fl)
		if !consumed {
			return result, nil
		}
		if !keepLooping {
			return normalFlow, nil
		}
		cond, err := it.evalExpr(scope, st.Cond)
		if err != nil {
			return flow{}, err
		}
		if !rtvalue.IsTruthy(cond) {
			return normalFlow, nil
		}
	}
}

func (it *Interpreter) execFor(scope *rtvalue.Scope, st *ast.ForStatement) (flow, error) {
	enclosing := rtvalue.NewChildScope(scope)
	if st.Init != nil {
		if _, err := it.execStatement(enclosing, st.Init); err != nil {
			return flow{}, err
		}
	}
	for {
		cond, err := it.evalExpr(enclosing, st.Cond)
		if err != nil {
			return flow{}, err
		}
		if !rtvalue.IsTruthy(cond) {
			return normalFlow, nil
		}
		bodyScope := rtvalue.NewChildScope(enclosing)
		fl, err := it.execStatement(bodyScope, st.Body)
		if err != nil {
			return flow{}, err
		}
		result, consumed, keepLooping := loopUnroll(fl)
		if !consumed {
			return result, nil
		}
		if !keepLooping {
			return normalFlow, nil
		}
		if st.Incr != nil {
			incrScope := rtvalue.NewChildScope(enclosing)
			if _, err := it.evalExpr(incrScope, st.Incr); err != nil {
				return flow{}, err
			}
		}
	}
}
