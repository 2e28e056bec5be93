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
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/google/uuid"
	"github.com/rulego/rspql/quad"
	"github.com/spf13/cast"
)

// binding is one partial or complete mapping from pattern variable name to
// bound RDF term, built up incrementally as the join processes each
// triple pattern in turn.
type binding map[string]quad.Term

func (b binding) clone() binding {
	out := make(binding, len(b))
	for k, v := range b {
		out[k] = v
	}
	return out
}

// SolutionBinding is one emitted result row: an ordered set of
// variable->RDF-term mappings (spec.md §3).
type SolutionBinding struct {
	Vars   []string
	Values map[string]quad.Term
}

// evalBGP runs a naive nested-loop join of pq.Patterns against dataset,
// then applies every FILTER expression to the surviving bindings. scratchID
// is a scratch-dataset diagnostic tag, used only in error messages
// (spec.md §4.3 "construct a fresh in-memory quad-store"). A pattern with
// an empty Graph matches quads in every graph.
func evalBGP(pq *ParsedQuery, dataset []quad.Quad, scratchID uuid.UUID) ([]binding, error) {
	bindings := []binding{{}}

	for _, pat := range pq.Patterns {
		var next []binding
		for _, b := range bindings {
			for _, q := range dataset {
				if pat.Graph != "" {
					if !(q.Graph.IsIRI() && q.Graph.Value == pat.Graph) {
						continue
					}
				}
				nb, ok := unify(b, pat, q)
				if ok {
					next = append(next, nb)
				}
			}
		}
		bindings = next
		if len(bindings) == 0 {
			return nil, nil
		}
	}

	if len(pq.Filters) == 0 {
		return bindings, nil
	}

	filtered := bindings[:0]
	for _, b := range bindings {
		ok, err := applyFilters(pq.Filters, b)
		if err != nil {
			return nil, fmt.Errorf("scratch dataset %s: filter evaluation: %w", scratchID, err)
		}
		if ok {
			filtered = append(filtered, b)
		}
	}
	return filtered, nil
}

// unify attempts to extend binding b so that pattern pat matches quad q,
// returning the extended binding and true on success.
func unify(b binding, pat TriplePattern, q quad.Quad) (binding, bool) {
	nb := b.clone()
	if !unifyTerm(nb, pat.Subject, q.Subject) {
		return nil, false
	}
	if !unifyTerm(nb, pat.Predicate, q.Predicate) {
		return nil, false
	}
	if !unifyTerm(nb, pat.Object, q.Object) {
		return nil, false
	}
	return nb, true
}

func unifyTerm(b binding, pt PatternTerm, t quad.Term) bool {
	if pt.isVar() {
		if bound, ok := b[pt.Var]; ok {
			return bound == t
		}
		b[pt.Var] = t
		return true
	}
	return pt.Term == t
}

// applyFilters evaluates every FILTER expression against one binding,
// using github.com/expr-lang/expr exactly as the condition-evaluation code
// this engine grew out of does (see package doc).
func applyFilters(filters []string, b binding) (bool, error) {
	env := bindingEnv(b)
	for _, f := range filters {
		program, err := expr.Compile(f, expr.AllowUndefinedVariables(), expr.AsBool())
		if err != nil {
			return false, err
		}
		result, err := expr.Run(program, env)
		if err != nil {
			return false, err
		}
		ok, _ := result.(bool)
		if !ok {
			return false, nil
		}
	}
	return true, nil
}

// bindingEnv projects a binding into the plain-value environment expr
// expressions run against: IRIs and blank nodes become their string form,
// literals become the best-fitting Go scalar via spf13/cast.
func bindingEnv(b binding) map[string]any {
	env := make(map[string]any, len(b))
	for v, term := range b {
		env[v] = termToScalar(term)
	}
	return env
}

func termToScalar(t quad.Term) any {
	if t.Kind != quad.LiteralKind {
		return t.Value
	}
	if f, err := cast.ToFloat64E(t.Value); err == nil {
		return f
	}
	return t.Value
}

func bindingToSolution(vars []string, b binding) SolutionBinding {
	values := make(map[string]quad.Term, len(vars))
	for _, v := range vars {
		if t, ok := b[v]; ok {
			values[v] = t
		}
	}
	return SolutionBinding{Vars: vars, Values: values}
}
