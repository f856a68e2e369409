// Package interp is the tree-walking evaluator: statement and
// expression evaluation, hoisting, control-flow unrolling, object/class
// dispatch, and namespace/import handling over the internal/ast tree,
// against the internal/interp/rtvalue value and scope model.
package interp

import (
	"io"

	"github.com/evil-lang/evil/internal/ast"
	"github.com/evil-lang/evil/internal/errors"
	"github.com/evil-lang/evil/internal/interp/builtin"
	"github.com/evil-lang/evil/internal/interp/rtvalue"
	"github.com/evil-lang/evil/internal/resolver"
	"github.com/evil-lang/evil/internal/token"
)

// Interpreter holds the global scope and the services the evaluator
// reaches out to: the native bridge's result stack, the import
// resolver, and an optional statement trace hook for the CLI's
// --trace flag.
type Interpreter struct {
	Global          *rtvalue.Scope
	Out             io.Writer
	Resolver        resolver.Resolver
	RootObjectClass *rtvalue.Object
	ResultStack     *builtin.ResultStack
	CallStack       errors.StackTrace

	// Trace, if non-nil, is invoked before executing every statement
	// (spec §6's CLI diagnostics surface; see cmd/evil/cmd/run.go).
	Trace func(pos token.Position, source string)
}

// New builds an Interpreter with the native bridge registered into a
// fresh global scope and the default filesystem-backed resolver.
func New(out io.Writer) *Interpreter {
	it := &Interpreter{
		Global:      rtvalue.NewScope(),
		Out:         out,
		Resolver:    resolver.NewFileResolver(),
		ResultStack: &builtin.ResultStack{},
	}
	it.RootObjectClass = builtin.Register(it.Global, out, it.ResultStack)
	return it
}

// Run executes prog's top-level statements in the global scope. A
// leftover Break/Continue escaping every enclosing loop (spec §9, an
// open question left to the implementer) is surfaced as a Generic
// runtime error rather than silently discarded.
func (it *Interpreter) Run(prog *ast.Program) error {
	if prog.File != "" {
		it.Global.AssignLocally(hiddenCurrentFileVar, rtvalue.Str(prog.File))
	}
	fl, err := it.execStatementsWithHoist(it.Global, prog.Statements)
	if err != nil {
		return err
	}
	if fl.kind != flowNormal {
		return errors.NewRuntimeError(errors.Generic, token.Position{}, errors.Descriptor{Name: "break/continue escaped the outermost loop"})
	}
	return nil
}

// Call implements rtvalue.Evaluator so native functions (and the
// evaluator's own call sites) can invoke a Function value uniformly.
func (it *Interpreter) Call(fn rtvalue.Value, args []rtvalue.Value) (rtvalue.Value, error) {
	f, ok := fn.(rtvalue.Function)
	if !ok {
		return nil, errors.NewRuntimeError(errors.ExpectedFunction, token.Position{}, errors.Descriptor{Value: fn.String()})
	}
	return it.callFunction(f, args, token.Position{})
}

func (it *Interpreter) callFunction(fn rtvalue.Function, args []rtvalue.Value, pos token.Position) (rtvalue.Value, error) {
	switch f := fn.(type) {
	case *rtvalue.Closure:
		return it.callClosure(f, args, pos)
	case *rtvalue.Native:
		return f.Fn(it, args)
	default:
		return nil, errors.NewRuntimeError(errors.ExpectedFunction, pos, errors.Descriptor{})
	}
}

// callClosure implements the function-call semantics of spec §4.G/§9:
// construct a scope enclosed by the closure's captured scope, bind as
// many formals as there are actuals (extra actuals are dropped, extra
// formals are left undeclared rather than null-initialised — an
// intentional, spec-documented deviation from the more common
// "bind every formal" convention), then hoist and execute the body.
// Return converts to the call's result; any other unrolling left over
// is a structural violation of the function-call contract.
func (it *Interpreter) callClosure(cl *rtvalue.Closure, args []rtvalue.Value, pos token.Position) (rtvalue.Value, error) {
	callScope := rtvalue.NewChildScope(cl.Scope)
	for i, name := range cl.Decl.Params {
		if i >= len(args) {
			break
		}
		_ = callScope.Declare(name, args[i])
	}

	frame := errors.NewStackFrameForClosure(cl, currentFileOf(callScope), pos)
	it.CallStack = append(it.CallStack, frame)
	defer func() { it.CallStack = it.CallStack[:len(it.CallStack)-1] }()

	fl, err := it.execStatementsWithHoist(callScope, cl.Decl.Body.Statements)
	if err != nil {
		if rt, ok := err.(*errors.RuntimeError); ok && len(rt.Trace) == 0 {
			return nil, rt.WithTrace(append(errors.StackTrace(nil), it.CallStack...))
		}
		return nil, err
	}
	switch fl.kind {
	case flowNormal:
		return rtvalue.Null{}, nil
	case flowReturn:
		return fl.value, nil
	default:
		return nil, errors.NewStructuralError(errors.InvalidUnrollingOfFunction, pos, errors.Descriptor{Name: frame.FunctionName})
	}
}
