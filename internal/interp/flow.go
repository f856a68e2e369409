package interp

import "github.com/evil-lang/evil/internal/interp/rtvalue"

// flowKind distinguishes the statement-evaluation outcomes of spec
// §4.H/§9: NormalFlow, or an Unrolling carrying its own reason. This is
// the explicit sum type spec.md's design notes recommend in place of
// the boolean exit/continue/break flags a host interpreter might carry
// on its evaluator struct.
type flowKind int

const (
	flowNormal flowKind = iota
	flowBreak
	flowContinue
	flowReturn
)

// flow is the value a statement evaluation produces: NormalFlow, or an
// Unrolling(Break(depth) | Continue(depth) | Return(value)).
type flow struct {
	kind  flowKind
	depth int
	value rtvalue.Value
}

var normalFlow = flow{kind: flowNormal}
