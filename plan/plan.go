// Package plan defines the query-fragment surface the federation adapter
// borrows from the enclosing engine: the delegated fragment's canonical
// text, its identity term, and its declared variable sets. The adapter
// never mutates or retains a fragment beyond one evaluation.
package plan

import (
	"hash/fnv"
	"sort"
	"strings"
)

// VarSet is an immutable set of variable names. Construction sorts and
// deduplicates, so two sets built from the same names in any order are
// identical values.
type VarSet struct {
	names []string
}

// NewVarSet builds a variable set from the given names.
func NewVarSet(names ...string) VarSet {
	if len(names) == 0 {
		return VarSet{}
	}
	sorted := make([]string, len(names))
	copy(sorted, names)
	sort.Strings(sorted)

	deduped := sorted[:1]
	for _, n := range sorted[1:] {
		if n != deduped[len(deduped)-1] {
			deduped = append(deduped, n)
		}
	}
	return VarSet{names: deduped}
}

// Names returns the variable names in sorted order. The returned slice is
// a copy; mutating it does not affect the set.
func (vs VarSet) Names() []string {
	out := make([]string, len(vs.names))
	copy(out, vs.names)
	return out
}

// Len returns the number of variables in the set.
func (vs VarSet) Len() int {
	return len(vs.names)
}

// Contains reports whether the set holds the given variable name.
func (vs VarSet) Contains(name string) bool {
	i := sort.SearchStrings(vs.names, name)
	return i < len(vs.names) && vs.names[i] == name
}

// Equal reports whether two sets hold exactly the same names.
func (vs VarSet) Equal(other VarSet) bool {
	if len(vs.names) != len(other.names) {
		return false
	}
	for i, n := range vs.names {
		if n != other.names[i] {
			return false
		}
	}
	return true
}

// Hash returns a FNV-1a hash over the sorted names. Equal sets hash equal.
func (vs VarSet) Hash() uint64 {
	h := fnv.New64a()
	for _, n := range vs.names {
		_, _ = h.Write([]byte(n))
		_, _ = h.Write([]byte{0})
	}
	return h.Sum64()
}

// String renders the set as "?a ?b ?c".
func (vs VarSet) String() string {
	if len(vs.names) == 0 {
		return ""
	}
	var b strings.Builder
	for i, n := range vs.names {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteByte('?')
		b.WriteString(n)
	}
	return b.String()
}

// Fragment is the engine-owned representation of the query portion
// delegated to a remote endpoint. The adapter reads it during one
// evaluation and passes its variable sets through unchanged.
type Fragment interface {
	// Render returns the canonical SPARQL text of the fragment, exactly
	// what is sent to the remote endpoint.
	Render() string

	// IdentityTerm returns the fragment's canonical identity term, used
	// for plan comparison and caching.
	IdentityTerm() string

	// AssuredVars returns the variables guaranteed bound in every
	// produced solution.
	AssuredVars() VarSet

	// AllVars returns every variable the fragment may bind.
	AllVars() VarSet

	// RequiredInputBindings returns the variables that must already be
	// bound before the fragment can be evaluated.
	RequiredInputBindings() VarSet

	// RequiredUnboundOutputs returns the variables the fragment must
	// produce and that cannot be bound on input.
	RequiredUnboundOutputs() VarSet
}

// fragment is the value implementation of Fragment used by tests and the
// CLI when no engine supplies one.
type fragment struct {
	text     string
	identity string
	assured  VarSet
	all      VarSet
	inputs   VarSet
	outputs  VarSet
}

// FragmentSpec carries the pieces of a standalone fragment.
type FragmentSpec struct {
	// Text is the rendered SPARQL of the fragment.
	Text string
	// IdentityTerm is the canonical identity term; fragments with equal
	// identity terms are the same fragment for plan comparison.
	IdentityTerm string
	// Assured lists variables bound in every solution.
	Assured []string
	// All lists every variable the fragment may bind. Assured variables
	// are added automatically.
	All []string
	// RequiredInputs lists variables that must be bound on input.
	RequiredInputs []string
	// RequiredOutputs lists variables that must be produced unbound.
	RequiredOutputs []string
}

// NewFragment constructs a standalone Fragment value from a spec.
func NewFragment(spec FragmentSpec) Fragment {
	all := append(append([]string{}, spec.All...), spec.Assured...)
	return &fragment{
		text:     spec.Text,
		identity: spec.IdentityTerm,
		assured:  NewVarSet(spec.Assured...),
		all:      NewVarSet(all...),
		inputs:   NewVarSet(spec.RequiredInputs...),
		outputs:  NewVarSet(spec.RequiredOutputs...),
	}
}

func (f *fragment) Render() string                 { return f.text }
func (f *fragment) IdentityTerm() string           { return f.identity }
func (f *fragment) AssuredVars() VarSet            { return f.assured }
func (f *fragment) AllVars() VarSet                { return f.all }
func (f *fragment) RequiredInputBindings() VarSet  { return f.inputs }
func (f *fragment) RequiredUnboundOutputs() VarSet { return f.outputs }
