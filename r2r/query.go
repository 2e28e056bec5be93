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

// Package r2r implements the relation-to-relation operator (spec.md §4.3,
// component C4): it parses the SELECT projection or aggregate, the
// GRAPH-scoped basic graph pattern, and any FILTER expressions out of the
// inner query text rspsql.Parse produces, then evaluates that pattern
// against one window's contents plus a shared static dataset.
//
// No off-the-shelf SPARQL execution library is exercised by the example
// pack this engine was grown from, so the BGP join and aggregate
// computation below are a small, self-contained evaluator rather than a
// wrapped external engine - see DESIGN.md for the grounding rationale.
// Filter expressions reuse the condition-evaluation idiom from the
// ambient stack: github.com/expr-lang/expr compiles and runs them exactly
// the way the streaming engine this codebase grew out of evaluates WHERE
// clause conditions.
package r2r

import (
	"errors"
	"regexp"
	"strings"

	"github.com/rulego/rspql/rerror"
)

// AggregateFunc is an aggregate function name recognized in a SELECT
// projection of the form `(FUNC(expr) AS ?var)`.
type AggregateFunc string

const (
	AggCount AggregateFunc = "COUNT"
	AggSum   AggregateFunc = "SUM"
	AggAvg   AggregateFunc = "AVG"
	AggMin   AggregateFunc = "MIN"
	AggMax   AggregateFunc = "MAX"
)

// Aggregate is a single `(FUNC(arg) AS ?var)` projection term.
type Aggregate struct {
	Func AggregateFunc
	Arg  string // "*" for COUNT(*), otherwise a bound variable name
	As   string
}

// ParsedQuery is the fully parsed, ready-to-evaluate form of an inner
// SPARQL-subset query: either a plain variable projection or a single
// aggregate projection, a basic graph pattern, and zero or more filters.
type ParsedQuery struct {
	Vars       []string
	Aggregate  *Aggregate
	Patterns   []TriplePattern
	Filters    []string
	Prefixes   map[string]string
}

var (
	prefixPat    = regexp.MustCompile(`(?i)PREFIX\s+(\w*):\s*<([^>]*)>`)
	selectPat    = regexp.MustCompile(`(?is)SELECT\s+(.*?)\s+WHERE\s*\{`)
	aggProjPat   = regexp.MustCompile(`(?i)\(\s*(\w+)\s*\(\s*([^)]*?)\s*\)\s+AS\s+\?(\w+)\s*\)`)
	graphOpenPat = regexp.MustCompile(`(?i)^GRAPH\s+(\S+)\s*\{`)
	filterPat    = regexp.MustCompile(`(?i)^FILTER\s*\(`)
)

// Parse parses the rewritten inner query text produced by rspsql.Parse.
func Parse(raw string) (*ParsedQuery, error) {
	prefixes := map[string]string{}
	for _, m := range prefixPat.FindAllStringSubmatch(raw, -1) {
		prefixes[m[1]] = m[2]
	}

	selMatch := selectPat.FindStringSubmatch(raw)
	if selMatch == nil {
		return nil, rerror.NewMalformedQuery(raw, "no SELECT ... WHERE { clause found")
	}
	projection := strings.TrimSpace(selMatch[1])

	// Locate the opening brace matched by selectPat and extract the
	// balanced WHERE block that follows it.
	braceIdx := strings.Index(raw, selMatch[0]) + len(selMatch[0]) - 1
	body, err := extractBalanced(raw, braceIdx)
	if err != nil {
		return nil, rerror.NewMalformedQuery(raw, err.Error())
	}

	pq := &ParsedQuery{Prefixes: prefixes}

	if aggMatch := aggProjPat.FindStringSubmatch(projection); aggMatch != nil {
		pq.Aggregate = &Aggregate{
			Func: AggregateFunc(strings.ToUpper(aggMatch[1])),
			Arg:  strings.TrimPrefix(strings.TrimSpace(aggMatch[2]), "?"),
			As:   aggMatch[3],
		}
	} else {
		for _, tok := range strings.Fields(projection) {
			pq.Vars = append(pq.Vars, strings.TrimPrefix(tok, "?"))
		}
	}

	patterns, filters, err := parseBlock(body, "", prefixes)
	if err != nil {
		return nil, rerror.NewMalformedQuery(raw, err.Error())
	}
	pq.Patterns = patterns
	pq.Filters = filters

	return pq, nil
}

// extractBalanced returns the contents between the brace at openIdx and its
// matching closing brace.
func extractBalanced(s string, openIdx int) (string, error) {
	depth := 0
	for i := openIdx; i < len(s); i++ {
		switch s[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return s[openIdx+1 : i], nil
			}
		}
	}
	return "", errUnbalancedBraces
}

var errUnbalancedBraces = errors.New("unbalanced braces in WHERE clause")

// parseBlock walks one `{ ... }` body, recognizing nested `GRAPH <iri> {
// ... }` blocks, `FILTER(...)` clauses, and bare `s p o .` triple patterns.
func parseBlock(body, graph string, prefixes map[string]string) ([]TriplePattern, []string, error) {
	var patterns []TriplePattern
	var filters []string

	toks := tokenizeBlock(body)
	i := 0
	for i < len(toks) {
		tok := toks[i]

		if strings.EqualFold(tok, "GRAPH") && i+2 < len(toks) && toks[i+2] == "{" {
			graphName := expandPrefixed(strings.Trim(toks[i+1], "<>"), prefixes)
			depth := 1
			j := i + 3
			start := j
			for j < len(toks) && depth > 0 {
				switch toks[j] {
				case "{":
					depth++
				case "}":
					depth--
				}
				if depth == 0 {
					break
				}
				j++
			}
			inner := strings.Join(toks[start:j], " ")
			sub, subFilters, err := parseBlock(inner, graphName, prefixes)
			if err != nil {
				return nil, nil, err
			}
			patterns = append(patterns, sub...)
			filters = append(filters, subFilters...)
			i = j + 1
			continue
		}

		if strings.EqualFold(tok, "FILTER") && i+1 < len(toks) && toks[i+1] == "(" {
			depth := 1
			j := i + 2
			start := j
			for j < len(toks) && depth > 0 {
				switch toks[j] {
				case "(":
					depth++
				case ")":
					depth--
				}
				if depth == 0 {
					break
				}
				j++
			}
			filters = append(filters, strings.Join(toks[start:j], " "))
			i = j + 1
			continue
		}

		if tok == "." {
			i++
			continue
		}

		// Bare triple pattern: three terms followed by "." or end/brace.
		if i+2 < len(toks) {
			s := parseTermToken(toks[i], prefixes)
			p := parseTermToken(toks[i+1], prefixes)
			o := parseTermToken(toks[i+2], prefixes)
			patterns = append(patterns, TriplePattern{Subject: s, Predicate: p, Object: o, Graph: graph})
			i += 3
			continue
		}
		i++
	}

	return patterns, filters, nil
}

// tokenizeBlock splits a WHERE-block body into tokens, keeping IRIs
// (<...>), literals ("..." with optional ^^<...> or @lang suffix),
// variables (?x/$x), braces, parens, and the "." separator intact.
func tokenizeBlock(s string) []string {
	var toks []string
	runes := []rune(s)
	n := len(runes)
	i := 0
	for i < n {
		c := runes[i]
		switch {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			i++
		case c == '{' || c == '}' || c == '(' || c == ')' || c == '.':
			toks = append(toks, string(c))
			i++
		case c == '<':
			j := i + 1
			for j < n && runes[j] != '>' {
				j++
			}
			toks = append(toks, string(runes[i:j+1]))
			i = j + 1
		case c == '"':
			j := i + 1
			for j < n && runes[j] != '"' {
				j++
			}
			j++ // include closing quote
			// optional ^^<iri> or @lang suffix
			if j < n && runes[j] == '^' && j+1 < n && runes[j+1] == '^' {
				j += 2
				if j < n && runes[j] == '<' {
					for j < n && runes[j] != '>' {
						j++
					}
					j++
				}
			} else if j < n && runes[j] == '@' {
				j++
				for j < n && (isWordRune(runes[j])) {
					j++
				}
			}
			toks = append(toks, string(runes[i:j]))
			i = j
		default:
			j := i
			for j < n && !isBreakRune(runes[j]) {
				j++
			}
			if j == i {
				j++
			}
			toks = append(toks, string(runes[i:j]))
			i = j
		}
	}
	return toks
}

func isBreakRune(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\r', '{', '}', '(', ')', '.', '<', '"':
		return true
	}
	return false
}

func isWordRune(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '-'
}
