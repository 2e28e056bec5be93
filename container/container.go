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

// Package container implements QuadContainer, the unordered multiset of
// (quad, timestamp) pairs that backs one window instance's content
// (spec.md §3, component C1).
package container

import "github.com/rulego/rspql/quad"

// QuadContainer holds every timestamped quad routed to one window instance.
// Membership is scoped by container identity: the same (Quad, t) pair may
// be present in several containers at once, each owning an independent
// copy. A container supports insertion and full enumeration only; elements
// are never individually removed, only discarded with the whole container
// on eviction.
//
// QuadContainer is owned exclusively by a single CSPARQLWindow worker
// goroutine (spec.md §5): callers outside that goroutine must not touch it
// concurrently, so no internal locking is provided.
type QuadContainer struct {
	items []quad.Timestamped
}

// New creates an empty QuadContainer.
func New() *QuadContainer {
	return &QuadContainer{}
}

// Add appends one timestamped quad to the container.
func (c *QuadContainer) Add(tq quad.Timestamped) {
	c.items = append(c.items, tq)
}

// Len returns the number of timestamped quads currently held.
func (c *QuadContainer) Len() int {
	return len(c.items)
}

// All returns every timestamped quad in insertion order. The returned slice
// is a copy; mutating it does not affect the container.
func (c *QuadContainer) All() []quad.Timestamped {
	out := make([]quad.Timestamped, len(c.items))
	copy(out, c.items)
	return out
}

// Quads returns just the RDF quads, discarding timestamps - the shape the
// R2R operator bulk-loads into its scratch dataset (spec.md §4.3).
func (c *QuadContainer) Quads() []quad.Quad {
	out := make([]quad.Quad, len(c.items))
	for i, tq := range c.items {
		out[i] = tq.Quad
	}
	return out
}
