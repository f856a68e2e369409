package ast

import (
	"fmt"
	"strconv"

	"github.com/evil-lang/evil/internal/token"
)

// NullLiteral is the `null` literal expression.
type NullLiteral struct{ Base }

func (n *NullLiteral) expressionNode() {}
func (n *NullLiteral) String() string  { return "null" }

// BoolLiteral is `true` or `false`.
type BoolLiteral struct {
	Base
	Value bool
}

func (b *BoolLiteral) expressionNode() {}
func (b *BoolLiteral) String() string  { return strconv.FormatBool(b.Value) }

// NumberLiteral is either an Integer or Float literal (spec §3); the
// parser decides which by retrying a failed integer parse as a float.
type NumberLiteral struct {
	Base
	IsFloat    bool
	IntValue   int64
	FloatValue float64
}

func (n *NumberLiteral) expressionNode() {}
func (n *NumberLiteral) String() string {
	if n.IsFloat {
		return strconv.FormatFloat(n.FloatValue, 'g', -1, 64)
	}
	return strconv.FormatInt(n.IntValue, 10)
}

// StringLiteral is a double-quoted string with `\"` already unescaped.
type StringLiteral struct {
	Base
	Value string
}

func (s *StringLiteral) expressionNode() {}
func (s *StringLiteral) String() string  { return fmt.Sprintf("%q", s.Value) }

// Identifier is a bare name reference.
type Identifier struct {
	Base
	Name string
}

func (i *Identifier) expressionNode() {}
func (i *Identifier) String() string  { return i.Name }

// DottedIdentifiers is a chain of plain property-name accesses rooted
// at an identifier, e.g. `a.b.c`, produced when the parser's access
// loop sees nothing but `.Identifier` segments (spec §4.B/§4.C).
type DottedIdentifiers struct {
	Base
	Path []string
}

func (d *DottedIdentifiers) expressionNode() {}
func (d *DottedIdentifiers) String() string {
	s := d.Path[0]
	for _, p := range d.Path[1:] {
		s += "." + p
	}
	return s
}

func NewNullLiteral(pos token.Position) *NullLiteral { return &NullLiteral{Base{pos}} }
