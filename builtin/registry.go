// Package builtin implements the reserved-function registry: a sorted,
// immutable table of built-in calculator functions with their allowed
// arities and a constructor callback.
//
// Grounded on poincare/src/parsing/parser.cpp's s_reservedFunctions /
// isReservedFunction / parseReservedFunction: the table is kept sorted
// by name and searched (binary search) for the first entry whose name is
// not less than the identifier, and overloads of the same
// name at different arities are adjacent entries walked in increasing
// arity order. Preserve that layout — it is a contract of the registry,
// not an implementation detail, per spec.md §9.
package builtin

import (
	"sort"

	"Axion/expr"
)

// Helper is one entry in the registry: a name, the arity it accepts,
// and a pure constructor. Build returns a nil Expression to signal a
// parameter-type mismatch (spec.md §4.6: "Builders are pure; they
// perform no simplification").
type Helper struct {
	Name  string
	Arity int
	Build func(args []expr.Expression) expr.Expression
}

// Registry is process-wide immutable after construction; multiple
// parsers may share one without synchronization (spec.md §5).
type Registry struct {
	helpers []Helper // sorted by Name, then by Arity within a Name
}

func call(name string, arity int) Helper {
	return Helper{
		Name:  name,
		Arity: arity,
		Build: func(args []expr.Expression) expr.Expression {
			return expr.BuiltinCall{Name: name, Args: append([]expr.Expression(nil), args...)}
		},
	}
}

// New builds the standard registry: trigonometric, logarithmic,
// exponential and statistical builtins, matching the function set the
// teacher's tokenizer.isMathFunction / evaluator.Eval recognize, plus
// the multi-arity builtins spec.md names explicitly (Root, Derivative).
//
// overload resolution walks adjacent same-name entries in ascending
// arity order (max → min triggers "too many", so keep the lowest arity
// entries first within a name group).
func New() *Registry {
	helpers := []Helper{
		call("abs", 1),
		call("acos", 1),
		call("asin", 1),
		call("atan", 1),
		call("ceil", 1),
		call("cos", 1),
		call("derivative", 3),
		call("exp", 1),
		call("floor", 1),
		call("log", 1),
		call("log10", 1),
		call("max", 2),
		call("mean", 1),
		call("median", 1),
		call("min", 2),
		call("mode", 1),
		call("pow", 2),
		call("product", 1),
		call("root", 2),
		call("sin", 1),
		call("sqrt", 1),
		call("sum", 1),
		call("tan", 1),
	}
	sort.Slice(helpers, func(i, j int) bool {
		if helpers[i].Name != helpers[j].Name {
			return helpers[i].Name < helpers[j].Name
		}
		return helpers[i].Arity < helpers[j].Arity
	})
	return &Registry{helpers: helpers}
}

// Lookup reports whether name matches a reserved function, returning
// the index of its first (lowest-arity) entry.
func (r *Registry) Lookup(name string) (start int, ok bool) {
	i := sort.Search(len(r.helpers), func(i int) bool { return r.helpers[i].Name >= name })
	if i < len(r.helpers) && r.helpers[i].Name == name {
		return i, true
	}
	return 0, false
}

// At returns the entry at index i, and whether i is in range (used to
// walk overloads; callers compare names themselves).
func (r *Registry) At(i int) (Helper, bool) {
	if i < 0 || i >= len(r.helpers) {
		return Helper{}, false
	}
	return r.helpers[i], true
}

// SameName reports whether entries at i and j share a name (used while
// advancing through overloads of increasing arity).
func (r *Registry) SameName(i, j int) bool {
	hi, ok1 := r.At(i)
	hj, ok2 := r.At(j)
	return ok1 && ok2 && hi.Name == hj.Name
}

// Len exposes the table size for bounds checks while overload-walking.
func (r *Registry) Len() int { return len(r.helpers) }
