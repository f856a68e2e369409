// Package ast defines the statement and expression node types produced
// by the parser and walked by the evaluator (spec §4.B).
package ast

import "github.com/evil-lang/evil/internal/token"

// Node is the common interface satisfied by every statement and
// expression node; it carries the position of the node's leading token
// for diagnostics.
type Node interface {
	Pos() token.Position
	String() string
}

// Statement is satisfied by every statement node.
type Statement interface {
	Node
	statementNode()
}

// Expression is satisfied by every expression node.
type Expression interface {
	Node
	expressionNode()
}

// Program is the root of a parsed source file: a flat statement list.
type Program struct {
	Statements []Statement
	File       string
}

func (p *Program) Pos() token.Position {
	if len(p.Statements) > 0 {
		return p.Statements[0].Pos()
	}
	return token.Position{Line: 1, Column: 1}
}

func (p *Program) String() string { return stmtListString(p.Statements) }

// Base embeds the leading token position of a node so every node type
// gets Pos() for free, the way the teacher's AST nodes carry a
// lexer.Position. Exported (rather than the more common lower-case
// `base`) so the parser package can populate it in struct literals.
type Base struct {
	StartPos token.Position
}

func (b Base) Pos() token.Position { return b.StartPos }

// IsLValue implements the l-value predicate of spec §4.B: Identifier,
// DottedIdentifiers, and MemberAccess are l-values; nothing else is.
func IsLValue(e Expression) bool {
	switch e.(type) {
	case *Identifier, *DottedIdentifiers, *MemberAccess:
		return true
	default:
		return false
	}
}
