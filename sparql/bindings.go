package sparql

import "fmt"

// ValueKind discriminates the three RDF term kinds a SELECT result can
// bind.
type ValueKind int

const (
	// KindIRI is an IRI reference.
	KindIRI ValueKind = iota
	// KindLiteral is a literal, optionally tagged with a language or a
	// datatype IRI.
	KindLiteral
	// KindBlank is a blank node label.
	KindBlank
)

// String returns the string representation of ValueKind.
func (k ValueKind) String() string {
	switch k {
	case KindIRI:
		return "iri"
	case KindLiteral:
		return "literal"
	case KindBlank:
		return "bnode"
	default:
		return "unknown"
	}
}

// Value is a bound RDF term in one solution row.
type Value struct {
	Kind     ValueKind
	Text     string
	Lang     string // literals only
	Datatype string // literals only
}

// String renders the value in an N-Triples-like form for explain output
// and logs.
func (v Value) String() string {
	switch v.Kind {
	case KindIRI:
		return "<" + v.Text + ">"
	case KindBlank:
		return "_:" + v.Text
	default:
		switch {
		case v.Lang != "":
			return fmt.Sprintf("%q@%s", v.Text, v.Lang)
		case v.Datatype != "":
			return fmt.Sprintf("%q^^<%s>", v.Text, v.Datatype)
		default:
			return fmt.Sprintf("%q", v.Text)
		}
	}
}

// Binding maps variable names to bound values for one solution row.
// A variable absent from the map is unbound in that row.
type Binding map[string]Value

// BindingStream is a lazy, finite, one-pass sequence of solutions. Rows
// are produced in remote document order. A stream is consumed once;
// restarting means re-evaluating the whole service call.
//
// Usage follows the scanner idiom:
//
//	for stream.Next() {
//		b := stream.Binding()
//		...
//	}
//	if err := stream.Err(); err != nil { ... }
//	_ = stream.Close()
type BindingStream interface {
	// Next advances to the next solution, returning false when the
	// stream is exhausted or closed.
	Next() bool

	// Binding returns the current solution. Valid only after a true
	// Next.
	Binding() Binding

	// Err returns the first error encountered while streaming, if any.
	Err() error

	// Close releases the stream. Idempotent; Next returns false after.
	Close() error
}

// rowStream lazily adapts materialized result rows into bindings
// restricted to the requested variables.
type rowStream struct {
	rows      []Binding
	requested []string
	pos       int
	current   Binding
	closed    bool
}

func (s *rowStream) Next() bool {
	if s.closed || s.pos >= len(s.rows) {
		return false
	}
	row := s.rows[s.pos]
	s.pos++

	if s.requested == nil {
		s.current = row
		return true
	}

	// Requested variables map to their bound value when the row has one
	// and stay absent otherwise. Rows binding none of the requested
	// variables still yield a solution.
	b := make(Binding, len(s.requested))
	for _, name := range s.requested {
		if v, ok := row[name]; ok {
			b[name] = v
		}
	}
	s.current = b
	return true
}

func (s *rowStream) Binding() Binding { return s.current }

func (s *rowStream) Err() error { return nil }

func (s *rowStream) Close() error {
	s.closed = true
	s.current = nil
	return nil
}
