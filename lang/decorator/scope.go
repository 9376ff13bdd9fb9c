package decorator

import (
	"github.com/dolthub/swiss"
	"github.com/mna/malinc/lang/ast"
)

// scope is a single level of the name-resolution stack: a flat table of
// names visible at that level, plus a link to the enclosing scope. Unlike
// the original implementation's NamesStack (a list of NamesScope walked end
// to end for every lookup), malin has no closures or labels, so a simple
// linked chain of tables is enough: global, optionally a class scope, a
// function scope, then one nested scope per if/else/while body. names is a
// swiss.Map rather than a plain
// Go map -- the same open-addressing hash table the teacher's runtime Map
// value type (lang/machine/map.go) uses, repurposed here for a compile-time
// symbol table instead of a malin-program-visible one.
type scope struct {
	parent *scope
	names  *swiss.Map[string, ast.Node]
}

func newScope(parent *scope) *scope {
	return &scope{parent: parent, names: swiss.NewMap[string, ast.Node](8)}
}

// define inserts name into s, reporting false if it is already present at
// this exact level (shadowing an outer scope is allowed, redeclaring inside
// the same one is not).
func (s *scope) define(name string, decl ast.Node) bool {
	if _, ok := s.names.Get(name); ok {
		return false
	}
	s.names.Put(name, decl)
	return true
}

// lookup searches s and its ancestors, innermost first.
func (s *scope) lookup(name string) ast.Node {
	for cur := s; cur != nil; cur = cur.parent {
		if decl, ok := cur.names.Get(name); ok {
			return decl
		}
	}
	return nil
}
