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

// Package rdfio is a supplemented, non-core convenience layer (spec.md
// treats the RDF data model itself as an opaque external collaborator):
// it lets a caller hand the engine a batch of quads as N-Quads text
// instead of constructing quad.Quad values by hand, and lets a caller
// serialize a batch back out the same way - useful for fixtures, replay
// logs, and debugging a running engine.
//
// Decoding is grounded on github.com/geoknoesis/rdf-go's documented
// pull-style QuadDecoder; only its Next/Close surface is exercised here
// (see DESIGN.md for why the encode direction is hand-rolled instead of
// using the library's encoder).
package rdfio

import (
	"fmt"
	"io"
	"strings"

	rdf "github.com/geoknoesis/rdf-go"
	"github.com/rulego/rspql/quad"
)

// DecodeNQuads reads every quad from r, encoded as N-Quads text, and
// returns them as quad.Quad values.
func DecodeNQuads(r io.Reader) ([]quad.Quad, error) {
	dec, err := rdf.NewQuadDecoder(r, rdf.QuadFormatNQuads)
	if err != nil {
		return nil, fmt.Errorf("rdfio: open N-Quads decoder: %w", err)
	}
	defer dec.Close()

	var out []quad.Quad
	for {
		q, err := dec.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("rdfio: decode N-Quads statement: %w", err)
		}
		out = append(out, quad.Quad{
			Subject:   termFromLexical(stringer(q.S)),
			Predicate: termFromLexical(stringer(q.P)),
			Object:    termFromLexical(stringer(q.O)),
			Graph:     graphTermFromLexical(q.G),
		})
	}
	return out, nil
}

// EncodeNQuads writes quads to w in N-Quads text form, one statement per
// line. The default graph is omitted, matching N-Quads/N-Triples
// convention.
func EncodeNQuads(w io.Writer, quads []quad.Quad) error {
	for _, q := range quads {
		line := fmt.Sprintf("%s %s %s", termToNQuads(q.Subject), termToNQuads(q.Predicate), termToNQuads(q.Object))
		if q.Graph.Kind != quad.DefaultGraphKind {
			line += " " + termToNQuads(q.Graph)
		}
		line += " .\n"
		if _, err := io.WriteString(w, line); err != nil {
			return fmt.Errorf("rdfio: write N-Quads statement: %w", err)
		}
	}
	return nil
}

func termToNQuads(t quad.Term) string {
	switch t.Kind {
	case quad.IRIKind:
		return "<" + t.Value + ">"
	case quad.BlankNodeKind:
		return "_:" + t.Value
	case quad.LiteralKind:
		switch {
		case t.Lang != "":
			return fmt.Sprintf("%q@%s", t.Value, t.Lang)
		case t.Datatype != "":
			return fmt.Sprintf("%q^^<%s>", t.Value, t.Datatype)
		default:
			return fmt.Sprintf("%q", t.Value)
		}
	default:
		return "<>"
	}
}

// stringer narrows an arbitrary rdf-go term value down to its lexical
// N-Quads representation, which every term type in the library implements.
func stringer(v interface{ String() string }) string {
	if v == nil {
		return ""
	}
	return v.String()
}

// graphTermFromLexical handles the graph position, which is nil for a
// triple asserted in the default graph.
func graphTermFromLexical(g interface{ String() string }) quad.Term {
	if g == nil {
		return quad.DefaultGraph
	}
	s := g.String()
	if s == "" {
		return quad.DefaultGraph
	}
	return termFromLexical(s)
}

// termFromLexical parses one rdf-go term's N-Quads lexical form (e.g.
// "<http://ex/a>", "_:b1", `"v"@en`, `"42"^^<http://...#integer>`) into a
// quad.Term.
func termFromLexical(s string) quad.Term {
	switch {
	case strings.HasPrefix(s, "_:"):
		return quad.NewBlankNode(strings.TrimPrefix(s, "_:"))
	case strings.HasPrefix(s, "<") && strings.HasSuffix(s, ">"):
		return quad.NewIRI(s[1 : len(s)-1])
	case strings.HasPrefix(s, `"`):
		return parseLiteralLexical(s)
	default:
		return quad.NewIRI(s)
	}
}

func parseLiteralLexical(s string) quad.Term {
	end := strings.LastIndex(s, `"`)
	if end <= 0 {
		return quad.NewLiteral(strings.Trim(s, `"`))
	}
	value := s[1:end]
	rest := s[end+1:]
	switch {
	case strings.HasPrefix(rest, "^^"):
		return quad.NewTypedLiteral(value, strings.Trim(rest[2:], "<>"))
	case strings.HasPrefix(rest, "@"):
		return quad.NewLangLiteral(value, rest[1:])
	default:
		return quad.NewLiteral(value)
	}
}
