package rtvalue

import "errors"

// VariableCell is a shared, interior-mutable holder of exactly one
// Value (spec §3); scopes, closures, and objects hold references to
// the same cell rather than copies, so assignment through any
// reference is observed by all.
type VariableCell struct {
	Value Value
}

// Sentinel errors returned by Scope's declaration operations; the
// evaluator attaches position/descriptor context and re-raises these
// as a StructuralError of the matching kind.
var (
	ErrCantRedeclareVariable = errors.New("cant redeclare variable")
	ErrCantSetToHoistedValue = errors.New("cant set to hoisted value")
)

// Scope is a property map plus an optional parent scope (spec §4.E).
// Scopes form a tree rooted at the global scope; lookup walks
// parents, declarations are always local.
type Scope struct {
	props  map[string]*VariableCell
	parent *Scope
}

// NewScope creates a root scope with no parent (the global scope).
func NewScope() *Scope {
	return &Scope{props: make(map[string]*VariableCell)}
}

// NewChildScope creates a scope enclosed by parent.
func NewChildScope(parent *Scope) *Scope {
	return &Scope{props: make(map[string]*VariableCell), parent: parent}
}

// NewScopeOverProps creates a scope whose local property map IS props
// rather than a fresh copy, enclosed by parent. Namespace and import
// evaluation use this so that declarations made inside a namespace
// body land directly in the namespace object's own property map, with
// no separate publish step (spec §4.H/§9).
func NewScopeOverProps(parent *Scope, props map[string]*VariableCell) *Scope {
	return &Scope{props: props, parent: parent}
}

// Parent returns the enclosing scope, or nil at the root.
func (s *Scope) Parent() *Scope { return s.parent }

// Props exposes the scope's own property map; used by namespace/import
// evaluation, which makes a namespace object's property map double as
// a scope's local bindings (spec §4.H).
func (s *Scope) Props() map[string]*VariableCell { return s.props }

// Get resolves name by walking from s outward, returning the first
// cell found.
func (s *Scope) Get(name string) (*VariableCell, bool) {
	for cur := s; cur != nil; cur = cur.parent {
		if cell, ok := cur.props[name]; ok {
			return cell, true
		}
	}
	return nil, false
}

// GetLocal resolves name only in s's own property map.
func (s *Scope) GetLocal(name string) (*VariableCell, bool) {
	cell, ok := s.props[name]
	return cell, ok
}

// Assign resolves name along the chain and overwrites that cell's
// value in place if found; otherwise it creates a new local cell.
// Assignment never walks past an enclosing binding once found.
func (s *Scope) Assign(name string, v Value) {
	if cell, ok := s.Get(name); ok {
		cell.Value = v
		return
	}
	s.props[name] = &VariableCell{Value: v}
}

// AssignLocally always writes to s's own map, replacing or creating.
func (s *Scope) AssignLocally(name string, v Value) {
	if cell, ok := s.props[name]; ok {
		cell.Value = v
		return
	}
	s.props[name] = &VariableCell{Value: v}
}

// Declare implements spec §4.E's declare rule: a local binding that
// isn't a HoistedPlaceholder can't be redeclared; a HoistedPlaceholder
// value itself can never be declare'd in (that would just recreate the
// placeholder state it's meant to resolve).
func (s *Scope) Declare(name string, v Value) error {
	if cell, ok := s.props[name]; ok {
		if _, hoisted := cell.Value.(HoistedPlaceholder); !hoisted {
			return ErrCantRedeclareVariable
		}
	}
	if _, hoisted := v.(HoistedPlaceholder); hoisted {
		return ErrCantSetToHoistedValue
	}
	s.props[name] = &VariableCell{Value: v}
	return nil
}

// Hoist creates a local cell holding HoistedPlaceholder; it fails if
// name is already locally bound (even to another placeholder).
func (s *Scope) Hoist(name string) error {
	if _, ok := s.props[name]; ok {
		return ErrCantRedeclareVariable
	}
	s.props[name] = &VariableCell{Value: HoistedPlaceholder{}}
	return nil
}

// GetOrCreateIdentifier implements the evaluator's get_identifier rule
// (spec §4.E): resolving an absent name creates a local Null cell and
// returns it rather than failing, so that e.g. namespace
// auto-creation and bare-assignment-without-declaration both work.
func (s *Scope) GetOrCreateIdentifier(name string) *VariableCell {
	if cell, ok := s.Get(name); ok {
		return cell
	}
	cell := &VariableCell{Value: Null{}}
	s.props[name] = cell
	return cell
}
