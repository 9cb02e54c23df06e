package sparql

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStreamRequestedVariableProjection(t *testing.T) {
	rs := &ResultSet{
		vars: []string{"x", "y"},
		rows: []Binding{
			{"x": {Kind: KindLiteral, Text: "1"}, "y": {Kind: KindLiteral, Text: "2"}},
		},
	}

	// Requesting {x, z} against a row binding {x, y} yields x bound and z
	// absent - never an error, never a default value.
	stream := rs.Stream([]string{"x", "z"})
	require.True(t, stream.Next())

	b := stream.Binding()
	assert.Equal(t, "1", b["x"].Text)
	_, hasZ := b["z"]
	assert.False(t, hasZ)
	_, hasY := b["y"]
	assert.False(t, hasY, "unrequested variable must not leak through")

	assert.False(t, stream.Next())
}

func TestStreamPreservesOrderAndEmptyRows(t *testing.T) {
	rs := &ResultSet{
		vars: []string{"v"},
		rows: []Binding{
			{"v": {Kind: KindLiteral, Text: "first"}},
			{}, // binds nothing, must still be produced
			{"v": {Kind: KindLiteral, Text: "third"}},
		},
	}

	stream := rs.Stream([]string{"v"})

	var texts []string
	var count int
	for stream.Next() {
		count++
		if v, ok := stream.Binding()["v"]; ok {
			texts = append(texts, v.Text)
		}
	}

	assert.Equal(t, 3, count, "rows must not be dropped")
	assert.Equal(t, []string{"first", "third"}, texts)
	assert.NoError(t, stream.Err())
}

func TestStreamIsOnePass(t *testing.T) {
	rs := &ResultSet{rows: []Binding{{}, {}}}

	stream := rs.Stream(nil)
	for stream.Next() {
	}
	assert.False(t, stream.Next(), "an exhausted stream stays exhausted")
}

func TestStreamCloseIsIdempotent(t *testing.T) {
	rs := &ResultSet{rows: []Binding{{}, {}}}

	stream := rs.Stream(nil)
	require.True(t, stream.Next())
	assert.NoError(t, stream.Close())
	assert.NoError(t, stream.Close())
	assert.False(t, stream.Next())
}

func TestValueString(t *testing.T) {
	tests := []struct {
		name     string
		value    Value
		expected string
	}{
		{"iri", Value{Kind: KindIRI, Text: "http://example.org/a"}, "<http://example.org/a>"},
		{"bnode", Value{Kind: KindBlank, Text: "b0"}, "_:b0"},
		{"plain literal", Value{Kind: KindLiteral, Text: "hi"}, `"hi"`},
		{"lang literal", Value{Kind: KindLiteral, Text: "hi", Lang: "en"}, `"hi"@en`},
		{
			"typed literal",
			Value{Kind: KindLiteral, Text: "1", Datatype: "http://www.w3.org/2001/XMLSchema#int"},
			`"1"^^<http://www.w3.org/2001/XMLSchema#int>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.value.String())
		})
	}
}
