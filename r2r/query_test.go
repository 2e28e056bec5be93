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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const joinQuery = `
PREFIX ex: <http://example.org/>
SELECT ?s ?v
WHERE {
  ?s ex:type ex:Sensor .
  GRAPH <http://example.org/w> { ?s ex:reads ?v }
}`

func TestParseBasicGraphPattern(t *testing.T) {
	pq, err := Parse(joinQuery)
	require.NoError(t, err)

	assert.Equal(t, []string{"s", "v"}, pq.Vars)
	require.Len(t, pq.Patterns, 2)
	assert.Equal(t, "", pq.Patterns[0].Graph)
	assert.Equal(t, "http://example.org/w", pq.Patterns[1].Graph)
	assert.Equal(t, "s", pq.Patterns[1].Subject.Var)
	assert.Equal(t, "http://example.org/reads", pq.Patterns[1].Predicate.Term.Value)
}

const countQuery = `
PREFIX ex: <http://example.org/>
SELECT (COUNT(*) AS ?n)
WHERE {
  GRAPH <http://example.org/w> { ?s ?p ?o }
}`

func TestParseAggregateProjection(t *testing.T) {
	pq, err := Parse(countQuery)
	require.NoError(t, err)

	require.NotNil(t, pq.Aggregate)
	assert.Equal(t, AggCount, pq.Aggregate.Func)
	assert.Equal(t, "*", pq.Aggregate.Arg)
	assert.Equal(t, "n", pq.Aggregate.As)
}

const filterQuery = `
PREFIX ex: <http://example.org/>
SELECT ?s ?v
WHERE {
  GRAPH <http://example.org/w> { ?s ex:reads ?v }
  FILTER(v > 10)
}`

func TestParseFilterClause(t *testing.T) {
	pq, err := Parse(filterQuery)
	require.NoError(t, err)

	require.Len(t, pq.Filters, 1)
	assert.Contains(t, pq.Filters[0], "v > 10")
}
