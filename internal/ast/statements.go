package ast

import "strings"

func stmtListString(stmts []Statement) string {
	var sb strings.Builder
	for _, s := range stmts {
		sb.WriteString(s.String())
		sb.WriteString("\n")
	}
	return sb.String()
}

// BlockStatement is `{ statements... }`.
type BlockStatement struct {
	Base
	Statements []Statement
}

func (b *BlockStatement) statementNode() {}
func (b *BlockStatement) String() string { return "{\n" + stmtListString(b.Statements) + "}" }

// EmptyStatement is a bare `;`.
type EmptyStatement struct{ Base }

func (e *EmptyStatement) statementNode() {}
func (e *EmptyStatement) String() string { return ";" }

// ExpressionStatement wraps an expression used for its side effects.
type ExpressionStatement struct {
	Base
	Expr Expression
}

func (e *ExpressionStatement) statementNode() {}
func (e *ExpressionStatement) String() string { return e.Expr.String() + ";" }

// ReturnStatement is `return expr?;`.
type ReturnStatement struct {
	Base
	Value Expression // nil for bare `return;`
}

func (r *ReturnStatement) statementNode() {}
func (r *ReturnStatement) String() string {
	if r.Value == nil {
		return "return;"
	}
	return "return " + r.Value.String() + ";"
}

// VariableDecl is a single `name = init?` binding within a `let`
// statement.
type VariableDecl struct {
	Base
	Name string
	Init Expression // nil if uninitialized
}

func (v *VariableDecl) String() string {
	if v.Init == nil {
		return v.Name
	}
	return v.Name + " = " + v.Init.String()
}

// VariableDeclarations is `let a = 1, b, c = 2;`.
type VariableDeclarations struct {
	Base
	Decls []*VariableDecl
}

func (v *VariableDeclarations) statementNode() {}
func (v *VariableDeclarations) String() string {
	s := "let "
	for i, d := range v.Decls {
		if i > 0 {
			s += ", "
		}
		s += d.String()
	}
	return s + ";"
}

// IfStatement is `if (cond) then else?`.
type IfStatement struct {
	Base
	Cond Expression
	Then Statement
	Else Statement // nil if no else branch
}

func (i *IfStatement) statementNode() {}
func (i *IfStatement) String() string {
	s := "if (" + i.Cond.String() + ") " + i.Then.String()
	if i.Else != nil {
		s += " else " + i.Else.String()
	}
	return s
}

// WhileStatement is `while (cond) body`.
type WhileStatement struct {
	Base
	Cond Expression
	Body Statement
}

func (w *WhileStatement) statementNode() {}
func (w *WhileStatement) String() string { return "while (" + w.Cond.String() + ") " + w.Body.String() }

// DoWhileStatement is `do body while (cond);`.
type DoWhileStatement struct {
	Base
	Cond Expression
	Body Statement
}

func (d *DoWhileStatement) statementNode() {}
func (d *DoWhileStatement) String() string {
	return "do " + d.Body.String() + " while (" + d.Cond.String() + ");"
}

// ForStatement is `for (init; cond; incr) body`. Init may be a
// VariableDeclarations or an ExpressionStatement; Incr is nil when the
// clause is empty.
type ForStatement struct {
	Base
	Init Statement
	Cond Expression
	Incr Expression
	Body Statement
}

func (f *ForStatement) statementNode() {}
func (f *ForStatement) String() string {
	incr := ""
	if f.Incr != nil {
		incr = f.Incr.String()
	}
	return "for (" + f.Init.String() + " " + f.Cond.String() + "; " + incr + ") " + f.Body.String()
}

// BreakStatement is `break depth?;`; Depth defaults to 1.
type BreakStatement struct {
	Base
	Depth int
}

func (b *BreakStatement) statementNode() {}
func (b *BreakStatement) String() string { return "break;" }

// ContinueStatement is `continue depth?;`; Depth defaults to 1.
type ContinueStatement struct {
	Base
	Depth int
}

func (c *ContinueStatement) statementNode() {}
func (c *ContinueStatement) String() string { return "continue;" }

// FunctionDeclaration is a statement-position `fn name(params) { body }`.
type FunctionDeclaration struct {
	Base
	Decl *FunctionDecl
}

func (f *FunctionDeclaration) statementNode() {}
func (f *FunctionDeclaration) String() string { return f.Decl.String() }

// ClassDeclaration is a statement-position `class Name extends? { ... }`.
type ClassDeclaration struct {
	Base
	Decl *ClassDecl
}

func (c *ClassDeclaration) statementNode() {}
func (c *ClassDeclaration) String() string { return c.Decl.String() }

// NamespaceStatement is `namespace a.b.c { body }` (spec §4.C/§4.H).
type NamespaceStatement struct {
	Base
	Path []string
	Body []Statement
}

func (n *NamespaceStatement) statementNode() {}
func (n *NamespaceStatement) String() string {
	return "namespace " + strings.Join(n.Path, ".") + " {\n" + stmtListString(n.Body) + "}"
}

// ImportStatement is `import fileExpr as a.b.c;` (spec §4.C/§4.I).
type ImportStatement struct {
	Base
	FileExpr Expression
	As       []string
}

func (i *ImportStatement) statementNode() {}
func (i *ImportStatement) String() string {
	return "import " + i.FileExpr.String() + " as " + strings.Join(i.As, ".") + ";"
}
