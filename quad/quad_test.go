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

package quad

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTermEquality(t *testing.T) {
	a := NewIRI("http://example.org/a")
	b := NewIRI("http://example.org/a")
	c := NewIRI("http://example.org/b")

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.Equal(t, DefaultGraph, Term{})
}

func TestLiteralVariants(t *testing.T) {
	plain := NewLiteral("42")
	lang := NewLangLiteral("hello", "en")
	typed := NewTypedLiteral("42", "http://www.w3.org/2001/XMLSchema#integer")

	assert.NotEqual(t, plain, lang)
	assert.NotEqual(t, plain, typed)
	assert.Equal(t, "en", lang.Lang)
	assert.Equal(t, "http://www.w3.org/2001/XMLSchema#integer", typed.Datatype)
}

func TestQuadEqualityIsByValueNotIdentity(t *testing.T) {
	s := NewIRI("http://example.org/a")
	p := NewIRI("http://example.org/reads")
	o := NewLiteral("v1")

	q1 := New(s, p, o)
	q2 := New(s, p, o)
	assert.Equal(t, q1, q2)
	assert.Equal(t, DefaultGraph, q1.Graph)
}

func TestWithGraphRewrite(t *testing.T) {
	q := New(NewIRI("s"), NewIRI("p"), NewIRI("o"))
	w := NewIRI("http://example.org/window/w1")
	rewritten := q.WithGraph(w)

	assert.Equal(t, w, rewritten.Graph)
	assert.Equal(t, DefaultGraph, q.Graph, "WithGraph must not mutate the receiver")
}

func TestQuadUsableAsMapKey(t *testing.T) {
	q1 := New(NewIRI("s"), NewIRI("p"), NewIRI("o"))
	q2 := New(NewIRI("s"), NewIRI("p"), NewIRI("o"))

	seen := map[Quad]int{}
	seen[q1]++
	seen[q2]++
	assert.Equal(t, 2, seen[q1])
}
