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

package r2r

import (
	"strings"

	"github.com/rulego/rspql/quad"
)

// PatternTerm is one position (subject, predicate, or object) of a triple
// pattern: either a variable to bind, or a fixed RDF term to match exactly.
type PatternTerm struct {
	Var  string
	Term quad.Term
}

func (p PatternTerm) isVar() bool { return p.Var != "" }

// TriplePattern is one `s p o` line inside a WHERE block. Inside a
// `GRAPH <iri> { ... }` clause (the rewritten form of `WINDOW <iri> { ... }`,
// spec.md §4.1) it matches only quads in that graph; outside one it is
// unscoped and matches quads in any graph, the default graph included.
type TriplePattern struct {
	Subject   PatternTerm
	Predicate PatternTerm
	Object    PatternTerm
	Graph     string // "" means unscoped: any graph matches
}

// parseTermToken turns one whitespace-delimited token of a triple pattern
// into a PatternTerm, expanding prefix:local forms via prefixes.
func parseTermToken(tok string, prefixes map[string]string) PatternTerm {
	switch {
	case strings.HasPrefix(tok, "?") || strings.HasPrefix(tok, "$"):
		return PatternTerm{Var: tok[1:]}
	case strings.HasPrefix(tok, "<") && strings.HasSuffix(tok, ">"):
		return PatternTerm{Term: quad.NewIRI(tok[1 : len(tok)-1])}
	case strings.HasPrefix(tok, `"`):
		return PatternTerm{Term: parseLiteralToken(tok)}
	default:
		return PatternTerm{Term: quad.NewIRI(expandPrefixed(tok, prefixes))}
	}
}

func parseLiteralToken(tok string) quad.Term {
	end := strings.LastIndex(tok, `"`)
	if end <= 0 {
		return quad.NewLiteral(strings.Trim(tok, `"`))
	}
	value := tok[1:end]
	rest := tok[end+1:]
	switch {
	case strings.HasPrefix(rest, "^^"):
		dt := strings.Trim(rest[2:], "<>")
		return quad.NewTypedLiteral(value, expandPrefixed(dt, nil))
	case strings.HasPrefix(rest, "@"):
		return quad.NewLangLiteral(value, rest[1:])
	default:
		return quad.NewLiteral(value)
	}
}

func expandPrefixed(name string, prefixes map[string]string) string {
	if strings.HasPrefix(name, "http://") || strings.HasPrefix(name, "https://") || strings.HasPrefix(name, "urn:") {
		return name
	}
	idx := strings.Index(name, ":")
	if idx < 0 || prefixes == nil {
		return name
	}
	prefix, local := name[:idx], name[idx+1:]
	if base, ok := prefixes[prefix]; ok {
		return base + local
	}
	return name
}
