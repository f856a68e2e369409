package ast

import (
	"strings"

	"github.com/evil-lang/evil/internal/token"
)

// FunctionDecl is the shared declaration record for `fn` statements,
// function expressions, and class methods (spec §4.C). Parameters are
// identifier-only; there are no default values.
type FunctionDecl struct {
	StartPos token.Position
	Name     string // empty for anonymous function expressions
	Params   []string
	Body     *BlockStatement
}

func (f *FunctionDecl) Pos() token.Position { return f.StartPos }
func (f *FunctionDecl) String() string {
	return "fn " + f.Name + "(" + strings.Join(f.Params, ", ") + ") " + f.Body.String()
}

// ClassDecl is the declaration record for a `class` statement or
// expression; Extends is nil when the class has no explicit parent
// (spec §4.F: it then parents to the root Object class).
type ClassDecl struct {
	StartPos token.Position
	Name     string
	Extends  Expression
	Methods  []*FunctionDecl
}

func (c *ClassDecl) Pos() token.Position { return c.StartPos }
func (c *ClassDecl) String() string {
	s := "class " + c.Name
	if c.Extends != nil {
		s += " extends " + c.Extends.String()
	}
	s += " {\n"
	for _, m := range c.Methods {
		s += m.String() + "\n"
	}
	return s + "}"
}
