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
	"sync"

	"github.com/google/uuid"
	"github.com/rulego/rspql/quad"
	"github.com/rulego/rspql/rerror"
)

// R2ROperator holds the parsed inner query and the static dataset joined
// against every window emission (spec.md §4.3, component C4).
//
// Evaluations run on the single emission-dispatcher goroutine (spec.md
// §5), so the static store only needs to guard against concurrent
// AddStaticData calls made during initialization; a plain mutex is the
// simplest correct design the specification calls for, not a
// copy-on-write snapshot.
type R2ROperator struct {
	query *ParsedQuery

	mu     sync.Mutex
	static []quad.Quad
}

// New builds an R2ROperator from a raw inner query (the rewritten text
// rspsql.Parse produces).
func New(innerQuery string) (*R2ROperator, error) {
	pq, err := Parse(innerQuery)
	if err != nil {
		return nil, err
	}
	return &R2ROperator{query: pq}, nil
}

// AddStaticData appends one quad to the shared static store. Safe to call
// at any time; concurrent with Execute it is only guaranteed to be visible
// to evaluations that start after it returns.
func (op *R2ROperator) AddStaticData(q quad.Quad) {
	op.mu.Lock()
	op.static = append(op.static, q)
	op.mu.Unlock()
}

// Execute builds a scratch dataset from windowQuads plus the static store,
// evaluates the parsed query against it, and returns the resulting
// solution bindings (spec.md §4.3). SPARQL-level evaluation failures are
// wrapped as rerror.EvaluationError; they are never fatal to the caller.
func (op *R2ROperator) Execute(windowName string, windowQuads []quad.Quad) ([]SolutionBinding, error) {
	op.mu.Lock()
	dataset := make([]quad.Quad, 0, len(windowQuads)+len(op.static))
	dataset = append(dataset, windowQuads...)
	dataset = append(dataset, op.static...)
	op.mu.Unlock()

	scratchID := uuid.New()
	bindings, err := evalBGP(op.query, dataset, scratchID)
	if err != nil {
		return nil, rerror.NewEvaluation(windowName, err)
	}
	if len(bindings) == 0 && op.query.Aggregate == nil {
		return nil, nil
	}

	if op.query.Aggregate != nil {
		sol, err := computeAggregate(op.query.Aggregate, bindings)
		if err != nil {
			return nil, rerror.NewEvaluation(windowName, err)
		}
		return []SolutionBinding{sol}, nil
	}

	out := make([]SolutionBinding, 0, len(bindings))
	for _, b := range bindings {
		out = append(out, bindingToSolution(op.query.Vars, b))
	}
	return out, nil
}
