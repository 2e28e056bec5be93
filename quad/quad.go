/*
 * Copyright 2025 The RuleGo Authors.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package quad defines the RDF value types rspql treats as opaque: terms
// (IRIs, blank nodes, literals) and the 4-tuple Quad built from them. These
// types carry value equality by construction - every field is a comparable
// Go value, so Term and Quad are themselves comparable and usable as map
// keys without a custom Equal method.
package quad

import "fmt"

// TermKind discriminates the concrete kind of a Term.
type TermKind uint8

const (
	// DefaultGraphKind is the zero value, used as Quad.Graph when a quad
	// was asserted without an explicit named graph.
	DefaultGraphKind TermKind = iota
	IRIKind
	BlankNodeKind
	LiteralKind
)

// Term is an RDF subject/predicate/object/graph component. Two Terms are
// equal iff every field matches; this is plain Go struct equality.
type Term struct {
	Kind     TermKind
	Value    string // IRI string, blank node label, or literal lexical form
	Lang     string // language tag, literals only
	Datatype string // datatype IRI, literals only
}

// NewIRI builds an IRI term.
func NewIRI(iri string) Term { return Term{Kind: IRIKind, Value: iri} }

// NewBlankNode builds a blank node term identified by a scoped label.
func NewBlankNode(label string) Term { return Term{Kind: BlankNodeKind, Value: label} }

// NewLiteral builds a plain (no language, xsd:string) literal.
func NewLiteral(lexical string) Term { return Term{Kind: LiteralKind, Value: lexical} }

// NewLangLiteral builds a language-tagged literal.
func NewLangLiteral(lexical, lang string) Term {
	return Term{Kind: LiteralKind, Value: lexical, Lang: lang}
}

// NewTypedLiteral builds a datatyped literal.
func NewTypedLiteral(lexical, datatype string) Term {
	return Term{Kind: LiteralKind, Value: lexical, Datatype: datatype}
}

// DefaultGraph is the distinguished sentinel graph name used when a quad
// carries no explicit named graph (spec.md §3).
var DefaultGraph = Term{Kind: DefaultGraphKind}

// IsIRI reports whether t is an IRI term.
func (t Term) IsIRI() bool { return t.Kind == IRIKind }

func (t Term) String() string {
	switch t.Kind {
	case DefaultGraphKind:
		return "<default-graph>"
	case IRIKind:
		return fmt.Sprintf("<%s>", t.Value)
	case BlankNodeKind:
		return fmt.Sprintf("_:%s", t.Value)
	case LiteralKind:
		switch {
		case t.Lang != "":
			return fmt.Sprintf("%q@%s", t.Value, t.Lang)
		case t.Datatype != "":
			return fmt.Sprintf("%q^^<%s>", t.Value, t.Datatype)
		default:
			return fmt.Sprintf("%q", t.Value)
		}
	default:
		return "<invalid-term>"
	}
}

// Quad is an immutable RDF 4-tuple. Subject, Predicate and Graph must be
// IRIs or blank nodes; Object may additionally be a Literal. Quad is
// comparable: two quads are equal iff all four components are equal.
type Quad struct {
	Subject   Term
	Predicate Term
	Object    Term
	Graph     Term
}

// New builds a Quad in the default graph.
func New(s, p, o Term) Quad {
	return Quad{Subject: s, Predicate: p, Object: o, Graph: DefaultGraph}
}

// NewInGraph builds a Quad explicitly scoped to graph g.
func NewInGraph(s, p, o, g Term) Quad {
	return Quad{Subject: s, Predicate: p, Object: o, Graph: g}
}

// WithGraph returns a copy of q with its Graph component replaced. Used by
// the windowing operator to rewrite a quad's graph to the window's own name
// before storing it in a QuadContainer (spec.md §3 invariant 3, §4.2 step 4).
func (q Quad) WithGraph(g Term) Quad {
	q.Graph = g
	return q
}

func (q Quad) String() string {
	return fmt.Sprintf("%s %s %s %s .", q.Subject, q.Predicate, q.Object, q.Graph)
}

// Timestamped pairs a Quad with the event timestamp it was ingested at.
// Timestamps are opaque except for their total order (spec.md §3).
type Timestamped struct {
	Quad      Quad
	Timestamp int64
}
