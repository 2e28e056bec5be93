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

package window

import (
	"fmt"
	"regexp"
)

// DefaultWindowIRI is the sentinel graph name substituted for a window
// whose declared name is not a syntactically valid IRI (spec.md §4.2,
// Failure semantics): ingestion must never fail because of a bad name.
const DefaultWindowIRI = "http://default-window"

// DefaultIngressBufferSize is the default capacity of a window's ingress
// channel, mirroring the teacher's windowed-output buffer sizing in
// types.PerformanceConfig.BufferConfig.WindowOutputSize.
const DefaultIngressBufferSize = 256

var iriSchemePattern = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9+.-]*:\S`)

// looksLikeIRI applies a conservative syntactic check: a scheme followed by
// ":" and at least one non-space character, matching both "http://..." and
// scheme-only IRIs like "urn:example:w1". It is intentionally permissive -
// the goal is only to catch empty strings or obviously malformed names, not
// to validate RFC 3987 in full.
func looksLikeIRI(s string) bool {
	return iriSchemePattern.MatchString(s)
}

// Config declares one CSPARQLWindow: the window name (also used as the
// graph name assigned to every quad it ingests, spec.md §3), the stream it
// is registered on, and its RANGE/STEP in the caller's timestamp units.
type Config struct {
	Name              string
	StreamURI         string
	Range             int64
	Step              int64
	IngressBufferSize int
}

// Validate checks the numeric invariants from spec.md §3: Range and Step
// must be positive. An invalid Name does not fail validation - it is
// recovered at construction time via DefaultWindowIRI.
func (c Config) Validate() error {
	if c.Range <= 0 {
		return fmt.Errorf("window %q: range must be positive, got %d", c.Name, c.Range)
	}
	if c.Step <= 0 {
		return fmt.Errorf("window %q: step must be positive, got %d", c.Name, c.Step)
	}
	return nil
}

// ActiveInstanceCount returns ceil(range/step), the largest number of
// window instances that can contain one timestamp. When step does not
// divide range, some timestamps fall in one instance fewer.
func (c Config) ActiveInstanceCount() int64 {
	return ceilDiv(c.Range, c.Step)
}
