// Package types models malin's small closed type system: the invalid
// sentinel type, built-in scalar types, class types and reference types,
// following the LangType hierarchy of the original implementation but
// expressed as a closed Go interface with a type switch instead of RTTI.
package types

import "fmt"

// Type is implemented by every malin type. The set of implementations is
// closed: Invalid, Builtin, *Class and *Reference.
type Type interface {
	fmt.Stringer
	// Equal reports whether other denotes the same type.
	Equal(other Type) bool
	// IsVoid reports whether this type is the builtin void type.
	IsVoid() bool
	// IsNumeric reports whether arithmetic operators apply to this type.
	IsNumeric() bool
	// IsBoolean reports whether logical operators apply to this type.
	IsBoolean() bool

	isType()
}

// Invalid is the type assigned to an expression or declaration once an
// earlier error makes its real type unknowable, so that later checks do not
// cascade additional, spurious diagnostics.
type Invalid struct{}

func (Invalid) String() string       { return "<invalid>" }
func (Invalid) Equal(Type) bool      { return false }
func (Invalid) IsVoid() bool         { return false }
func (Invalid) IsNumeric() bool      { return false }
func (Invalid) IsBoolean() bool      { return false }
func (Invalid) isType()              {}

// Builtin identifies one of malin's built-in scalar types.
type Builtin int8

// The complete set of built-in types.
const (
	I32 Builtin = iota
	F32
	Void
	Bool
	Str
)

func (b Builtin) String() string {
	switch b {
	case I32:
		return "i32"
	case F32:
		return "f32"
	case Void:
		return "void"
	case Bool:
		return "bool"
	case Str:
		return "str"
	default:
		return "<unknown builtin>"
	}
}

func (b Builtin) Equal(other Type) bool {
	o, ok := other.(Builtin)
	return ok && o == b
}
func (b Builtin) IsVoid() bool    { return b == Void }
func (b Builtin) IsNumeric() bool { return b == I32 || b == F32 }
func (b Builtin) IsBoolean() bool { return b == Bool }
func (Builtin) isType()           {}

// ClassDecl is the minimal surface of an ast class declaration that Class
// needs, satisfied by *ast.ClassDecl. Declared here, instead of importing
// lang/ast, to avoid a types<->ast import cycle: ast depends on types for
// its Type fields.
type ClassDecl interface {
	ClassName() string
}

// Class is a user-defined class type, identified by the declaration that
// introduced it (so two classes with the same name in different scopes are
// distinct types).
type Class struct {
	Decl ClassDecl
}

func (c *Class) String() string  { return c.Decl.ClassName() }
func (c *Class) Equal(other Type) bool {
	o, ok := other.(*Class)
	return ok && o.Decl == c.Decl
}
func (*Class) IsVoid() bool    { return false }
func (*Class) IsNumeric() bool { return false }
func (*Class) IsBoolean() bool { return false }
func (*Class) isType()         {}

// Reference is a type wrapping another type to mark it as addressable
// (assignable through a pointer), matching the original's ReferenceType.
type Reference struct {
	Inner Type
}

func (r *Reference) String() string { return "&" + r.Inner.String() }
func (r *Reference) Equal(other Type) bool {
	o, ok := other.(*Reference)
	return ok && o.Inner.Equal(r.Inner)
}
func (r *Reference) IsVoid() bool    { return false }
func (r *Reference) IsNumeric() bool { return false }
func (r *Reference) IsBoolean() bool { return false }
func (*Reference) isType()           {}
