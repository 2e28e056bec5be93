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

package rdfio

import (
	"strings"
	"testing"

	"github.com/rulego/rspql/quad"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeNQuadsOmitsDefaultGraph(t *testing.T) {
	var buf strings.Builder
	q := quad.New(quad.NewIRI("http://ex/a"), quad.NewIRI("http://ex/p"), quad.NewLiteral("v"))

	require.NoError(t, EncodeNQuads(&buf, []quad.Quad{q}))
	assert.Equal(t, "<http://ex/a> <http://ex/p> \"v\" .\n", buf.String())
}

func TestEncodeNQuadsIncludesNamedGraph(t *testing.T) {
	var buf strings.Builder
	q := quad.New(quad.NewIRI("http://ex/a"), quad.NewIRI("http://ex/p"), quad.NewIRI("http://ex/o")).
		WithGraph(quad.NewIRI("http://ex/g"))

	require.NoError(t, EncodeNQuads(&buf, []quad.Quad{q}))
	assert.Equal(t, "<http://ex/a> <http://ex/p> <http://ex/o> <http://ex/g> .\n", buf.String())
}

func TestTermFromLexicalVariants(t *testing.T) {
	assert.Equal(t, quad.NewIRI("http://ex/a"), termFromLexical("<http://ex/a>"))
	assert.Equal(t, quad.NewBlankNode("b1"), termFromLexical("_:b1"))
	assert.Equal(t, quad.NewLiteral("v"), termFromLexical(`"v"`))
	assert.Equal(t, quad.NewLangLiteral("v", "en"), termFromLexical(`"v"@en`))
	assert.Equal(t, quad.NewTypedLiteral("42", "http://www.w3.org/2001/XMLSchema#integer"),
		termFromLexical(`"42"^^<http://www.w3.org/2001/XMLSchema#integer>`))
}
