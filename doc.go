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

/*
Package rspql is an RDF Stream Processing engine that evaluates continuous
RSP-QL queries over timestamped streams of RDF quads. A caller registers a
query naming one or more time-based sliding windows over named streams;
the engine partitions incoming quads into window instances, closes windows
as event time advances, and emits the result of the embedded SPARQL graph
pattern computed over each closed window's contents.

# Getting started

	package main

	import (
		"fmt"

		"github.com/rulego/rspql/engine"
		"github.com/rulego/rspql/quad"
	)

	func main() {
		query := `
	PREFIX ex: <http://example.org/>
	REGISTER RStream <http://example.org/out> AS
	SELECT ?s ?v
	FROM NAMED WINDOW ex:w ON STREAM ex:s RANGE 10000 STEP 5000
	WHERE { WINDOW ex:w { ?s ex:reads ?v } }`

		e := engine.New(query)
		if err := e.Initialize(); err != nil {
			panic(err)
		}
		results, err := e.StartProcessing()
		if err != nil {
			panic(err)
		}

		stream, _ := e.GetStream("http://example.org/s")
		stream.AddQuads([]quad.Quad{
			quad.New(quad.NewIRI("http://example.org/a"), quad.NewIRI("http://example.org/reads"), quad.NewLiteral("21.5")),
		}, 0)
		e.CloseStream("http://example.org/s", 10000)

		// Close drains the windows and then closes results, ending the loop.
		e.Close()
		for r := range results {
			fmt.Println(r.Window, r.Binding.Values)
		}
	}

# Package layout

  - quad: the RDF quad and timestamped-quad value types.
  - rdfio: N-Quads decode/encode convenience built on rdf-go.
  - container: QuadContainer, the per-window-instance quad multiset.
  - window: WindowInstance and CSPARQLWindow, the S2R operator.
  - r2r: R2ROperator, the embedded SPARQL-subset evaluator and static store.
  - rspsql: the RSP-QL query parser and WINDOW-to-GRAPH rewrite.
  - ingest: RDFStream, the public per-stream ingress handle.
  - engine: RSPEngine, the top-level composition callers construct.
  - logger: the ambient leveled-logging interface.
  - rerror: the typed error taxonomy (MalformedQuery, Evaluation, StreamClosed).

See DESIGN.md for how each package's design was grounded, and spec.md /
SPEC_FULL.md for the full specification this module implements.
*/
package rspql
