package sparql

import (
	"encoding/json"
	"encoding/xml"
	"fmt"
	"io"

	"github.com/c360/semfed/errors"
)

// ResultSet is a parsed SELECT result document: the declared variables
// and the solution rows in document order. It lives only long enough to
// be adapted into a BindingStream.
type ResultSet struct {
	vars []string
	rows []Binding
}

// Variables returns the variable names declared in the document head, in
// declaration order.
func (rs *ResultSet) Variables() []string {
	out := make([]string, len(rs.vars))
	copy(out, rs.vars)
	return out
}

// Len returns the number of solution rows.
func (rs *ResultSet) Len() int {
	return len(rs.rows)
}

// Stream adapts the result set into a lazy binding stream. Each row
// yields one binding mapping the requested variables to their bound
// values; unbound or unrequested variables are absent. A nil requested
// slice passes every bound variable through. Rows are never reordered or
// dropped.
func (rs *ResultSet) Stream(requested []string) BindingStream {
	return &rowStream{rows: rs.rows, requested: requested}
}

// ParseSelect parses a SELECT result document in the given wire format.
// Any conformance failure yields a parse-kind error wrapping the cause;
// no other format is attempted.
func ParseSelect(r io.Reader, f Format) (*ResultSet, error) {
	switch f.Name {
	case FormatXML.Name:
		return parseXML(r)
	case FormatJSON.Name:
		return parseJSON(r)
	default:
		return nil, errors.WrapInvalid(errors.ErrInvalidConfig,
			"Results", "ParseSelect", "unknown result format "+f.Name)
	}
}

// SPARQL Query Results XML document shape.
// https://www.w3.org/TR/rdf-sparql-XMLres/
type xmlDocument struct {
	XMLName xml.Name `xml:"sparql"`
	Head    struct {
		Variables []struct {
			Name string `xml:"name,attr"`
		} `xml:"variable"`
	} `xml:"head"`
	Results struct {
		Rows []struct {
			Bindings []xmlBinding `xml:"binding"`
		} `xml:"result"`
	} `xml:"results"`
}

type xmlBinding struct {
	Name    string      `xml:"name,attr"`
	URI     *string     `xml:"uri"`
	BNode   *string     `xml:"bnode"`
	Literal *xmlLiteral `xml:"literal"`
}

type xmlLiteral struct {
	// An empty namespace in the tag matches the xml:lang attribute
	// whatever namespace the decoder resolves the xml prefix to.
	Lang     string `xml:"lang,attr"`
	Datatype string `xml:"datatype,attr"`
	Text     string `xml:",chardata"`
}

func parseXML(r io.Reader) (*ResultSet, error) {
	var doc xmlDocument
	if err := xml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, errors.WrapParse(err, "Results", "ParseSelect", "XML result document decode")
	}

	rs := &ResultSet{}
	for _, v := range doc.Head.Variables {
		rs.vars = append(rs.vars, v.Name)
	}

	for i, row := range doc.Results.Rows {
		b := make(Binding, len(row.Bindings))
		for _, binding := range row.Bindings {
			if binding.Name == "" {
				return nil, errors.WrapParse(
					fmt.Errorf("row %d: binding without a variable name", i),
					"Results", "ParseSelect", "XML result document decode")
			}
			val, err := binding.value()
			if err != nil {
				return nil, errors.WrapParse(fmt.Errorf("row %d: %w", i, err),
					"Results", "ParseSelect", "XML result document decode")
			}
			b[binding.Name] = val
		}
		rs.rows = append(rs.rows, b)
	}
	return rs, nil
}

func (b xmlBinding) value() (Value, error) {
	switch {
	case b.URI != nil:
		return Value{Kind: KindIRI, Text: *b.URI}, nil
	case b.BNode != nil:
		return Value{Kind: KindBlank, Text: *b.BNode}, nil
	case b.Literal != nil:
		return Value{
			Kind:     KindLiteral,
			Text:     b.Literal.Text,
			Lang:     b.Literal.Lang,
			Datatype: b.Literal.Datatype,
		}, nil
	default:
		return Value{}, fmt.Errorf("binding %q has no term element", b.Name)
	}
}

// SPARQL Query Results JSON document shape.
// https://www.w3.org/TR/sparql11-results-json/
type jsonDocument struct {
	Head struct {
		Vars []string `json:"vars"`
	} `json:"head"`
	Results *struct {
		Bindings []map[string]jsonTerm `json:"bindings"`
	} `json:"results"`
}

type jsonTerm struct {
	Type     string `json:"type"`
	Value    string `json:"value"`
	Lang     string `json:"xml:lang"`
	Datatype string `json:"datatype"`
}

func parseJSON(r io.Reader) (*ResultSet, error) {
	dec := json.NewDecoder(r)
	var doc jsonDocument
	if err := dec.Decode(&doc); err != nil {
		return nil, errors.WrapParse(err, "Results", "ParseSelect", "JSON result document decode")
	}
	if doc.Results == nil {
		return nil, errors.WrapParse(fmt.Errorf("document has no results member"),
			"Results", "ParseSelect", "JSON result document decode")
	}

	rs := &ResultSet{vars: doc.Head.Vars}
	for i, row := range doc.Results.Bindings {
		b := make(Binding, len(row))
		for name, term := range row {
			val, err := term.value()
			if err != nil {
				return nil, errors.WrapParse(fmt.Errorf("row %d, variable %q: %w", i, name, err),
					"Results", "ParseSelect", "JSON result document decode")
			}
			b[name] = val
		}
		rs.rows = append(rs.rows, b)
	}
	return rs, nil
}

func (t jsonTerm) value() (Value, error) {
	switch t.Type {
	case "uri":
		return Value{Kind: KindIRI, Text: t.Value}, nil
	case "bnode":
		return Value{Kind: KindBlank, Text: t.Value}, nil
	case "literal", "typed-literal":
		return Value{Kind: KindLiteral, Text: t.Value, Lang: t.Lang, Datatype: t.Datatype}, nil
	default:
		return Value{}, fmt.Errorf("unknown term type %q", t.Type)
	}
}
