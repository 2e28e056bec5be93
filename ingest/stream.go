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

// Package ingest implements RDFStream (spec.md §4.4, component C6): the
// public ingress handle for one stream URI, fanning batches of quads out
// to every window registered on that stream.
package ingest

import (
	"sync"

	"github.com/rulego/rspql/quad"
	"github.com/rulego/rspql/rerror"
)

// Window is the subset of window.CSPARQLWindow's surface RDFStream needs;
// declared as an interface here so ingest does not import window directly,
// keeping the dependency graph leaf-to-root the way the engine composes it
// (spec.md §2).
type Window interface {
	Add(q quad.Quad, t int64)
}

// sharedState is the reference-counted fanout list every clone of a Stream
// points at, so subscribing a window on one handle is visible to every
// other handle for the same stream URI (spec.md §4.4).
type sharedState struct {
	uri string

	mu      sync.Mutex
	windows []Window
	closed  bool
}

// Stream is a cheap, cloneable handle onto one stream's fanout list.
type Stream struct {
	state *sharedState
}

// New creates a Stream for the given URI with no subscribed windows yet.
func New(uri string) *Stream {
	return &Stream{state: &sharedState{uri: uri}}
}

// URI returns the stream's identifying IRI.
func (s *Stream) URI() string { return s.state.uri }

// Subscribe registers a window to receive every batch posted to this
// stream from now on.
func (s *Stream) Subscribe(w Window) {
	s.state.mu.Lock()
	defer s.state.mu.Unlock()
	s.state.windows = append(s.state.windows, w)
}

// Clone returns a new handle sharing this stream's fanout list: subscribing
// or posting through either handle affects both (spec.md §8 property 5).
func (s *Stream) Clone() *Stream {
	return &Stream{state: s.state}
}

// AddQuads fans out the entire batch, at timestamp t, to every window
// subscribed to this stream, in a fixed (subscription) order. It returns a
// StreamClosedError if the stream has been torn down.
func (s *Stream) AddQuads(quads []quad.Quad, t int64) error {
	s.state.mu.Lock()
	if s.state.closed {
		s.state.mu.Unlock()
		return rerror.NewStreamClosed(s.state.uri)
	}
	windows := make([]Window, len(s.state.windows))
	copy(windows, s.state.windows)
	s.state.mu.Unlock()

	for _, w := range windows {
		for _, q := range quads {
			w.Add(q, t)
		}
	}
	return nil
}

// Close marks the stream torn down: further AddQuads calls fail with
// StreamClosedError.
func (s *Stream) Close() {
	s.state.mu.Lock()
	s.state.closed = true
	s.state.mu.Unlock()
}
