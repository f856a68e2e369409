package rtvalue

// HiddenNativePayloadKey is the reserved property name a native
// class's constructor stashes its payload under on the receiver
// instance (spec §4.J: "a reserved hidden slot on the receiver").
const HiddenNativePayloadKey = "__HIDDEN__NATIVE_PAYLOAD__"

// Object is the heap object of spec §4.F/§3: a property map plus an
// optional parent pointer plus a display name. The parent link is
// fixed at construction and encodes single inheritance; property
// writes always land locally, which is what makes monkey-patching a
// parent visible to every non-shadowing descendant.
type Object struct {
	Props  map[string]*VariableCell
	Parent *Object
	Name   string
}

// Allocate builds a new, empty object with the given parent (nil for
// the root of a hierarchy) and display name.
func Allocate(parent *Object, name string) *Object {
	return &Object{Props: make(map[string]*VariableCell), Parent: parent, Name: name}
}

func (*Object) Type() string     { return "Object" }
func (o *Object) String() string {
	if o.Name != "" {
		return "<object " + o.Name + ">"
	}
	return "<object>"
}

// GetOwn returns the cell for name if bound directly on o (no parent
// walk).
func (o *Object) GetOwn(name string) (*VariableCell, bool) {
	cell, ok := o.Props[name]
	return cell, ok
}

// Resolve walks o's parent chain (not the lexical scope) looking for
// name, per spec §4.F's method-resolution rule.
func (o *Object) Resolve(name string) (*VariableCell, bool) {
	for cur := o; cur != nil; cur = cur.Parent {
		if cell, ok := cur.Props[name]; ok {
			return cell, true
		}
	}
	return nil, false
}

// SetLocal always writes to o's own property map, creating the cell if
// absent, never touching a parent — the basis for monkey-patching.
func (o *Object) SetLocal(name string, v Value) {
	if cell, ok := o.Props[name]; ok {
		cell.Value = v
		return
	}
	o.Props[name] = &VariableCell{Value: v}
}

// IsInstanceOf reports whether o's parent chain (starting at o itself)
// contains class.
func (o *Object) IsInstanceOf(class *Object) bool {
	for cur := o; cur != nil; cur = cur.Parent {
		if cur == class {
			return true
		}
	}
	return false
}
