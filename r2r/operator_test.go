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

	"github.com/rulego/rspql/quad"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestExecuteStreamStaticJoin mirrors spec.md Scenario S2: a static fact
// `<a> <type> <Sensor>` joined against window contents `<a> <reads> "v1">,
// `<a> <reads> "v2">, `<b> <reads> "v3">. Only the two bindings for `a`
// survive; `b` is filtered out by the join itself (no type fact for b).
func TestExecuteStreamStaticJoin(t *testing.T) {
	op, err := New(joinQuery)
	require.NoError(t, err)

	op.AddStaticData(quad.New(
		quad.NewIRI("http://example.org/a"),
		quad.NewIRI("http://example.org/type"),
		quad.NewIRI("http://example.org/Sensor"),
	))

	w := quad.NewIRI("http://example.org/w")
	windowQuads := []quad.Quad{
		quad.New(quad.NewIRI("http://example.org/a"), quad.NewIRI("http://example.org/reads"), quad.NewLiteral("v1")).WithGraph(w),
		quad.New(quad.NewIRI("http://example.org/a"), quad.NewIRI("http://example.org/reads"), quad.NewLiteral("v2")).WithGraph(w),
		quad.New(quad.NewIRI("http://example.org/b"), quad.NewIRI("http://example.org/reads"), quad.NewLiteral("v3")).WithGraph(w),
	}

	results, err := op.Execute("w", windowQuads)
	require.NoError(t, err)
	require.Len(t, results, 2)

	var values []string
	for _, r := range results {
		assert.Equal(t, "http://example.org/a", r.Values["s"].Value)
		values = append(values, r.Values["v"].Value)
	}
	assert.ElementsMatch(t, []string{"v1", "v2"}, values)
}

// TestExecuteCountAggregate mirrors spec.md Scenario S3's per-window
// COUNT(*) evaluation: a window with 10 quads yields a single binding
// n=10.
func TestExecuteCountAggregate(t *testing.T) {
	op, err := New(countQuery)
	require.NoError(t, err)

	w := quad.NewIRI("http://example.org/w")
	var windowQuads []quad.Quad
	for i := 0; i < 10; i++ {
		windowQuads = append(windowQuads, quad.New(
			quad.NewIRI("http://example.org/s"),
			quad.NewIRI("http://example.org/p"),
			quad.NewLiteral("v"),
		).WithGraph(w))
	}

	results, err := op.Execute("w", windowQuads)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "10", results[0].Values["n"].Value)
}

func TestExecuteEmptyWindowYieldsNoRows(t *testing.T) {
	op, err := New(joinQuery)
	require.NoError(t, err)

	results, err := op.Execute("w", nil)
	require.NoError(t, err)
	assert.Empty(t, results)
}
