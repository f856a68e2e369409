package errors

import (
	"fmt"

	"github.com/evil-lang/evil/internal/token"
)

// RuntimeErrorKind enumerates the runtime-error layer of the two-layer
// taxonomy: failures the evaluator surfaces while a program is
// executing (a user wrote `null.foo`, a native function got the wrong
// argument shape, a Vector index was out of range).
type RuntimeErrorKind string

const (
	UnexpectedNull          RuntimeErrorKind = "UnexpectedNull"
	ExpectedBoolean         RuntimeErrorKind = "ExpectedBoolean"
	ExpectedNumber          RuntimeErrorKind = "ExpectedNumber"
	ExpectedString          RuntimeErrorKind = "ExpectedString"
	ExpectedFunction        RuntimeErrorKind = "ExpectedFunction"
	ExpectedClassObject     RuntimeErrorKind = "ExpectedClassObject"
	ExpectedNamespaceObject RuntimeErrorKind = "ExpectedNamespaceObject"
	ExpectedObject          RuntimeErrorKind = "ExpectedObject"
	ExpectedNativeObject    RuntimeErrorKind = "ExpectedNativeObject"
	InvalidArguments        RuntimeErrorKind = "InvalidArguments"
	InvalidNumberArguments  RuntimeErrorKind = "InvalidNumberArguments"
	ExpectedValidSubscript  RuntimeErrorKind = "ExpectedValidSubscript"
	ExpectedValidFileName   RuntimeErrorKind = "ExpectedValidFileName"
	IOError                 RuntimeErrorKind = "IOError"
	CantCloneSafely         RuntimeErrorKind = "CantCloneSafely"
	Generic                 RuntimeErrorKind = "Generic"
)

// StructuralErrorKind enumerates the structural-error layer: failures
// that indicate the source couldn't be turned into a runnable program,
// or an internal invariant the evaluator relies on was violated.
type StructuralErrorKind string

const (
	Never                           StructuralErrorKind = "Never"
	EndOfTokenStream                StructuralErrorKind = "EndOfTokenStream"
	InvalidTokenType                StructuralErrorKind = "InvalidTokenType"
	TokenCannotBeParsed             StructuralErrorKind = "TokenCannotBeParsed"
	InvalidNumericLiteral           StructuralErrorKind = "InvalidNumericLiteral"
	UnknownOperator                 StructuralErrorKind = "UnknownOperator"
	ExpectedLhsExpression            StructuralErrorKind = "ExpectedLhsExpression"
	ExpectedSimpleAssignmentOperator StructuralErrorKind = "ExpectedSimpleAssignmentOperator"
	ExpectedVariableDeclaration      StructuralErrorKind = "ExpectedVariableDeclaration"
	UnimplementedStatement           StructuralErrorKind = "UnimplementedStatement"
	UnimplementedExpression          StructuralErrorKind = "UnimplementedExpression"
	UnimplementedBinaryOp            StructuralErrorKind = "UnimplementedBinaryOp"
	UnimplementedUnaryOp             StructuralErrorKind = "UnimplementedUnaryOp"
	InvalidBorrow                    StructuralErrorKind = "InvalidBorrow"
	CantStripAssignment              StructuralErrorKind = "CantStripAssignment"
	CantAccessHoistedVariable        StructuralErrorKind = "CantAccessHoistedVariable"
	CantRedeclareVariable            StructuralErrorKind = "CantRedeclareVariable"
	CantSetToHoistedValue            StructuralErrorKind = "CantSetToHoistedValue"
	InvalidUnrollingOfFunction       StructuralErrorKind = "InvalidUnrollingOfFunction"
	InvalidMethodArrowAccess         StructuralErrorKind = "InvalidMethodArrowAccess"
	UnexpectedRuntimeError           StructuralErrorKind = "UnexpectedRuntimeError"
)

// Descriptor carries whatever context an error construction site has
// on hand: a name (variable, property, or native function being
// accessed), the offending value's rendered form, and/or the source
// expression's printed text. Any field may be empty.
type Descriptor struct {
	Name  string
	Value string
	Expr  string
}

func (d Descriptor) String() string {
	switch {
	case d.Name != "" && d.Value != "":
		return fmt.Sprintf("%s (got %s)", d.Name, d.Value)
	case d.Name != "":
		return d.Name
	case d.Value != "":
		return d.Value
	case d.Expr != "":
		return d.Expr
	default:
		return ""
	}
}

// RuntimeError is a runtime-layer failure (spec's "Runtime errors").
// It may carry a StackTrace captured at the point of construction,
// populated by the evaluator as it unwinds call frames.
type RuntimeError struct {
	Kind       RuntimeErrorKind
	Descriptor Descriptor
	Pos        token.Position
	Trace      StackTrace
}

func NewRuntimeError(kind RuntimeErrorKind, pos token.Position, desc Descriptor) *RuntimeError {
	return &RuntimeError{Kind: kind, Descriptor: desc, Pos: pos}
}

func (e *RuntimeError) Error() string {
	if d := e.Descriptor.String(); d != "" {
		return fmt.Sprintf("%s: %s at %s", e.Kind, d, e.Pos)
	}
	return fmt.Sprintf("%s at %s", e.Kind, e.Pos)
}

// WithTrace returns a copy of e carrying the given stack trace; used
// by the evaluator to attach the call chain once an error is about to
// cross a function boundary.
func (e *RuntimeError) WithTrace(trace StackTrace) *RuntimeError {
	cp := *e
	cp.Trace = trace
	return &cp
}

// StructuralError is a structural-layer failure (spec's "Structural
// errors"): a parse-time or internal-invariant problem. UnexpectedRuntimeError
// lifts a RuntimeError that escaped a context expecting only structural
// failures (e.g. a native-function contract violation surfacing during
// hoisting) into this layer without losing it.
type StructuralError struct {
	Kind       StructuralErrorKind
	Descriptor Descriptor
	Pos        token.Position
	Lifted     *RuntimeError
}

func NewStructuralError(kind StructuralErrorKind, pos token.Position, desc Descriptor) *StructuralError {
	return &StructuralError{Kind: kind, Descriptor: desc, Pos: pos}
}

// LiftRuntimeError wraps a RuntimeError as UnexpectedRuntimeError.
func LiftRuntimeError(err *RuntimeError) *StructuralError {
	return &StructuralError{Kind: UnexpectedRuntimeError, Pos: err.Pos, Lifted: err}
}

func (e *StructuralError) Error() string {
	if e.Kind == UnexpectedRuntimeError && e.Lifted != nil {
		return fmt.Sprintf("UnexpectedRuntimeError: %s", e.Lifted.Error())
	}
	if d := e.Descriptor.String(); d != "" {
		return fmt.Sprintf("%s: %s at %s", e.Kind, d, e.Pos)
	}
	return fmt.Sprintf("%s at %s", e.Kind, e.Pos)
}

// Unwrap lets errors.As/errors.Is reach the lifted RuntimeError.
func (e *StructuralError) Unwrap() error {
	if e.Lifted == nil {
		return nil
	}
	return e.Lifted
}
