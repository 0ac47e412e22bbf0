// Package symbols implements the symbol table for CPL programs. The table is
// built from the declarations section of a parse tree before IR synthesis
// begins, and is consulted during synthesis to resolve identifier references.
package symbols

import (
	"sort"

	"github.com/dekarrin/ictiobus/parse"

	"github.com/dekarrin/cpq/internal/diag"
)

// Type is the data type of a CPL value. CPL has exactly two: integer and
// floating point. The zero value is TypeUnknown, used for expressions whose
// type could not be determined due to an earlier diagnostic.
type Type int

const (
	TypeUnknown Type = iota
	TypeInt
	TypeFloat
)

func (t Type) String() string {
	switch t {
	case TypeInt:
		return "int"
	case TypeFloat:
		return "float"
	default:
		return "unknown"
	}
}

// Symbol is a single declared variable.
type Symbol struct {
	Name string
	Type Type

	// Line is the line of the declaration that introduced the symbol.
	Line int
}

// Table maps declared names to their symbols. Names are unique; the first
// declaration of a name wins and later ones are reported as diagnostics by
// Build.
type Table struct {
	syms map[string]Symbol
}

// NewTable returns an empty symbol table.
func NewTable() *Table {
	return &Table{syms: map[string]Symbol{}}
}

// Define adds a symbol to the table. If the name is already present, the
// table is left unchanged and the existing symbol is returned along with
// ok=false.
func (t *Table) Define(name string, typ Type, line int) (existing Symbol, ok bool) {
	if prev, there := t.syms[name]; there {
		return prev, false
	}
	t.syms[name] = Symbol{Name: name, Type: typ, Line: line}
	return Symbol{}, true
}

// Lookup retrieves the symbol for name, if it has been declared.
func (t *Table) Lookup(name string) (Symbol, bool) {
	s, ok := t.syms[name]
	return s, ok
}

// All returns every symbol in the table, sorted by name.
func (t *Table) All() []Symbol {
	out := make([]Symbol, 0, len(t.syms))
	for k := range t.syms {
		out = append(out, t.syms[k])
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Name < out[j].Name
	})
	return out
}

// Build walks the parse tree and constructs the symbol table from its
// DECLARATION subtrees. Each declaration associates every identifier of its
// IDLIST with the declaration's TYPE; state does not leak between
// declarations. Redeclarations are recorded on log and do not replace the
// original symbol.
func Build(root parse.Tree, log *diag.Log) *Table {
	t := NewTable()
	walkDeclarations(&root, t, log)
	return t
}

func walkDeclarations(n *parse.Tree, t *Table, log *diag.Log) {
	if n.Terminal {
		return
	}

	if n.Value == "DECLARATION" {
		// DECLARATION -> TYPE IDLIST ;
		typ := declaredType(n.Children[0])
		for _, id := range identifiers(n.Children[1]) {
			prev, ok := t.Define(id.Lexeme(), typ, id.Line())
			if !ok {
				log.Addf(diag.SymbolRedefinition, id.Line(),
					"Symbol %s already defined in line %d", id.Lexeme(), prev.Line)
			}
		}
		return
	}

	for i := range n.Children {
		walkDeclarations(n.Children[i], t, log)
	}
}

// declaredType reads the keyword under a TYPE node.
func declaredType(n *parse.Tree) Type {
	if len(n.Children) < 1 || !n.Children[0].Terminal {
		return TypeUnknown
	}
	if n.Children[0].Value == "int" {
		return TypeInt
	}
	return TypeFloat
}

// identifiers collects the id tokens of an IDLIST subtree in source order.
// IDLIST is left-recursive, so the leftmost identifiers are in the deepest
// child.
func identifiers(n *parse.Tree) []idToken {
	var ids []idToken
	if n.Terminal {
		return ids
	}
	for i := range n.Children {
		ch := n.Children[i]
		if ch.Terminal {
			if ch.Value == "id" {
				ids = append(ids, ch.Source)
			}
			continue
		}
		ids = append(ids, identifiers(ch)...)
	}
	return ids
}

// idToken is the subset of a lexed token the symbol builder needs.
type idToken interface {
	Lexeme() string
	Line() int
}
