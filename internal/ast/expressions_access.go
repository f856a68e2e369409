package ast

import "fmt"

// ParenExpr is a parenthesized expression; transparent at evaluation
// time (spec §4.H) but kept as its own node so the `::` form (wrapped
// in Parenthesized per §4.C) stays distinguishable from a plain `.`
// access in the tree. The printed form of a `::` access reads as a
// parenthesized `.` access, so it does not re-parse to the same node.
type ParenExpr struct {
	Base
	Inner Expression
}

func (p *ParenExpr) expressionNode() {}
func (p *ParenExpr) String() string  { return "(" + p.Inner.String() + ")" }

// UnaryExpr is `!x`, `+x`, or `-x`.
type UnaryExpr struct {
	Base
	Op  string
	Arg Expression
}

func (u *UnaryExpr) expressionNode() {}
func (u *UnaryExpr) String() string  { return "(" + u.Op + u.Arg.String() + ")" }

// BinaryExpr is any non-assignment binary operator application.
type BinaryExpr struct {
	Base
	Op          string
	Left, Right Expression
}

func (b *BinaryExpr) expressionNode() {}
func (b *BinaryExpr) String() string {
	return fmt.Sprintf("(%s %s %s)", b.Left.String(), b.Op, b.Right.String())
}

// AssignmentExpr is `=`  or a compound `op=` assignment; Left must
// satisfy IsLValue (checked by the parser, spec §4.C).
type AssignmentExpr struct {
	Base
	Op          string
	Left, Right Expression
}

func (a *AssignmentExpr) expressionNode() {}
func (a *AssignmentExpr) String() string {
	return fmt.Sprintf("(%s %s %s)", a.Left.String(), a.Op, a.Right.String())
}

// MemberIndexer distinguishes the three ways MemberAccess can address
// into an object (spec §4.B).
type MemberIndexer interface {
	memberIndexer()
	String() string
}

// PropertyName is a plain `.name` access.
type PropertyName string

func (PropertyName) memberIndexer()    {}
func (p PropertyName) String() string  { return "." + string(p) }

// Subscript is a `[expr]` access; evaluation requires the subscript to
// be a string (spec §4.H, ExpectedValidSubscript).
type Subscript struct{ Index Expression }

func (Subscript) memberIndexer()   {}
func (s Subscript) String() string { return "[" + s.Index.String() + "]" }

// MethodNameArrow is the `name` half of a `receiver -> name(args)` call;
// valid only as the callee of a FunctionCallExpr (spec §4.C/§4.H,
// InvalidMethodArrowAccess otherwise).
type MethodNameArrow string

func (MethodNameArrow) memberIndexer()   {}
func (m MethodNameArrow) String() string { return "->" + string(m) }

// MemberAccess is `object.name`, `object[expr]`, or the callee half of
// `object -> name(...)`.
type MemberAccess struct {
	Base
	Object  Expression
	Indexer MemberIndexer
}

func (m *MemberAccess) expressionNode() {}
func (m *MemberAccess) String() string {
	return m.Object.String() + m.Indexer.String()
}

// FunctionCallExpr is `callee(args...)`.
type FunctionCallExpr struct {
	Base
	Callee Expression
	Args   []Expression
}

func (f *FunctionCallExpr) expressionNode() {}
func (f *FunctionCallExpr) String() string {
	s := f.Callee.String() + "("
	for i, a := range f.Args {
		if i > 0 {
			s += ", "
		}
		s += a.String()
	}
	return s + ")"
}

// NewObjectExpr is `new Callee(args...)`.
type NewObjectExpr struct {
	Base
	Callee Expression
	Args   []Expression
}

func (n *NewObjectExpr) expressionNode() {}
func (n *NewObjectExpr) String() string {
	s := "new " + n.Callee.String() + "("
	for i, a := range n.Args {
		if i > 0 {
			s += ", "
		}
		s += a.String()
	}
	return s + ")"
}

// FunctionExpression is an anonymous/inline function literal.
type FunctionExpression struct {
	Base
	Decl *FunctionDecl
}

func (f *FunctionExpression) expressionNode() {}
func (f *FunctionExpression) String() string  { return f.Decl.String() }

// ClassDeclarationExpression lets a class declaration appear in
// expression position (e.g. as the right-hand side of an assignment).
type ClassDeclarationExpression struct {
	Base
	Decl *ClassDecl
}

func (c *ClassDeclarationExpression) expressionNode() {}
func (c *ClassDeclarationExpression) String() string   { return c.Decl.String() }
