package plan

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVarSetConstruction(t *testing.T) {
	tests := []struct {
		name     string
		input    []string
		expected []string
	}{
		{"sorted and deduped", []string{"b", "a", "b", "c", "a"}, []string{"a", "b", "c"}},
		{"single", []string{"x"}, []string{"x"}},
		{"empty", nil, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vs := NewVarSet(tt.input...)
			assert.Equal(t, tt.expected, vs.Names())
			assert.Equal(t, len(tt.expected), vs.Len())
		})
	}
}

func TestVarSetContains(t *testing.T) {
	vs := NewVarSet("name", "age")

	assert.True(t, vs.Contains("name"))
	assert.True(t, vs.Contains("age"))
	assert.False(t, vs.Contains("email"))
	assert.False(t, VarSet{}.Contains("name"))
}

func TestVarSetEqualityOrderIndependent(t *testing.T) {
	a := NewVarSet("x", "y", "z")
	b := NewVarSet("z", "x", "y")
	c := NewVarSet("x", "y")

	assert.True(t, a.Equal(b))
	assert.Equal(t, a.Hash(), b.Hash())
	assert.False(t, a.Equal(c))
}

func TestVarSetHashDistinguishesBoundaries(t *testing.T) {
	// "ab"+"c" and "a"+"bc" must not collide through concatenation.
	assert.NotEqual(t, NewVarSet("ab", "c").Hash(), NewVarSet("a", "bc").Hash())
}

func TestVarSetString(t *testing.T) {
	assert.Equal(t, "?a ?b", NewVarSet("b", "a").String())
	assert.Equal(t, "", NewVarSet().String())
}

func TestNewFragment(t *testing.T) {
	f := NewFragment(FragmentSpec{
		Text:            "SELECT ?name WHERE { ?s <p> ?name }",
		IdentityTerm:    "wf://example.org/sparql",
		Assured:         []string{"name"},
		All:             []string{"name", "s"},
		RequiredOutputs: []string{"name"},
	})

	assert.Equal(t, "SELECT ?name WHERE { ?s <p> ?name }", f.Render())
	assert.Equal(t, "wf://example.org/sparql", f.IdentityTerm())
	assert.Equal(t, []string{"name"}, f.AssuredVars().Names())
	assert.Equal(t, []string{"name", "s"}, f.AllVars().Names())
	assert.Equal(t, 0, f.RequiredInputBindings().Len())
	assert.Equal(t, []string{"name"}, f.RequiredUnboundOutputs().Names())
}

func TestNewFragmentAssuredImpliesAll(t *testing.T) {
	f := NewFragment(FragmentSpec{
		Text:         "SELECT ?a WHERE { }",
		IdentityTerm: "wf://x",
		Assured:      []string{"a"},
	})

	require.True(t, f.AllVars().Contains("a"))
}
