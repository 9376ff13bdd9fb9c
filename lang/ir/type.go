// Package ir defines malin's typed intermediate representation: a Module
// holding global variables and functions, each function a sequence of
// pointer-stable basic blocks, each block a sequence of instruction Values.
// It generalizes the original implementation's variant-based IRType/IRValue
// sum types into closed Go interfaces, and its std::list-based arena (whose
// sole purpose was keeping element pointers stable across insertion) into
// plain Go heap pointers: every BasicBlock and Value lives in a *T allocated
// once and referenced thereafter only by that pointer, so appending to the
// owning slice never invalidates a cross-reference.
package ir

import "github.com/mna/malinc/lang/types"

// Type is the type of an IR value: Invalid, Void, Builtin or Pointer.
type Type interface {
	String() string
	isIRType()
}

// InvalidType marks a value whose type could not be determined.
type InvalidType struct{}

func (InvalidType) String() string { return "<invalid>" }
func (InvalidType) isIRType()      {}

// VoidType is the type of values with no result, e.g. calls to a
// void-returning function.
type VoidType struct{}

func (VoidType) String() string { return "void" }
func (VoidType) isIRType()      {}

// BuiltinType wraps one of malin's scalar types as an IR type.
type BuiltinType struct {
	Builtin types.Builtin
}

func (t BuiltinType) String() string { return t.Builtin.String() }
func (BuiltinType) isIRType()        {}

// PointerType is the type of a storage location allocated by AllocBuiltin,
// pointing to values of the given element type.
type PointerType struct {
	Elem Type
}

func (t *PointerType) String() string { return "*" + t.Elem.String() }
func (*PointerType) isIRType()        {}

// FromLangType lowers a front-end types.Type into its IR representation.
// Classes and references have no IR lowering: malin's IR generator only
// handles built-in scalar values, per the original implementation.
func FromLangType(t types.Type) Type {
	switch t := t.(type) {
	case types.Builtin:
		if t == types.Void {
			return VoidType{}
		}
		return BuiltinType{Builtin: t}
	default:
		return InvalidType{}
	}
}
