package testutil

import (
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEndpointCapturesRequests(t *testing.T) {
	e := NewEndpoint()
	defer e.Close()
	e.SetResponse(http.StatusOK, "application/sparql-results+xml",
		SelectXML([]string{"x"}, []map[string]string{{"x": "1"}}))

	resp, err := http.Get(e.URL() + "/svc/sparql?query=SELECT%20%3Fx")
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), `<binding name="x">`)

	last := e.LastRequest()
	assert.Equal(t, "/svc/sparql", last.Path)
	assert.Equal(t, "SELECT ?x", last.Query)
	assert.Equal(t, 1, e.Requests())
}

func TestSelectXMLEscapesAndSkipsUnbound(t *testing.T) {
	doc := SelectXML([]string{"a", "b"}, []map[string]string{
		{"a": "<&>"},
	})

	assert.Contains(t, doc, "&lt;&amp;&gt;")
	assert.NotContains(t, doc, `<binding name="b">`)
}

func TestSelectJSONShape(t *testing.T) {
	doc := SelectJSON([]string{"a"}, []map[string]string{{"a": "v"}, {}})

	assert.True(t, strings.HasPrefix(doc, `{"head":{"vars":["a"]}`))
	assert.Contains(t, doc, `"a":{"type":"literal","value":"v"}`)
	assert.Contains(t, doc, `,{}`)
}
