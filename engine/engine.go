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

// Package engine wires the RSP-QL parser, the windowing operator and the
// R2R operator into RSPEngine (spec.md §4.5, component C7): the top-level
// handle a caller constructs, initializes from a query string, and drives
// with streams of timestamped quads.
package engine

import (
	"fmt"
	"os"
	"sync"

	"github.com/rulego/rspql/ingest"
	"github.com/rulego/rspql/logger"
	"github.com/rulego/rspql/quad"
	"github.com/rulego/rspql/r2r"
	"github.com/rulego/rspql/rerror"
	"github.com/rulego/rspql/rspsql"
	"github.com/rulego/rspql/window"
)

// DefaultResultBufferSize is the default capacity of the aggregated
// emission channel and the result channel returned by StartProcessing,
// mirroring the teacher's resultChan buffering in stream.Stream.
const DefaultResultBufferSize = 256

// Result is one SolutionBinding row emitted for a closed window, tagged
// with the window it came from so a caller driving several windows from
// one engine can tell emissions apart (spec.md §6).
type Result struct {
	Window  string
	Binding r2r.SolutionBinding
}

// WindowHandle is the read-only introspection surface spec.md §6's
// engine.get_window exposes: live instance count, the live instance
// ranges, and the ability to toggle debug logging. CSPARQLWindow
// satisfies this directly.
type WindowHandle interface {
	ActiveWindowCount() int
	ActiveWindowRanges() []window.Instance
	SetDebugMode(bool)
}

// RSPEngine is the top-level composition described in spec.md §2 (C7): it
// parses the RSP-QL query, builds one CSPARQLWindow per window
// declaration and one RDFStream per unique stream URI, wires window
// emissions into a shared R2ROperator, and exposes a Result channel to
// the caller.
type RSPEngine struct {
	query string

	log               logger.Logger
	ingressBufferSize int
	resultBufferSize  int
	debug             bool

	mu          sync.Mutex
	initialized bool
	started     bool

	parsed  *rspsql.Query
	windows map[string]*window.CSPARQLWindow
	streams map[string]*ingest.Stream
	op      *r2r.R2ROperator

	emitCh   chan window.Emission
	resultCh chan Result
	stopOnce sync.Once
}

// New stores the raw query string. No threads are started and no parsing
// happens until Initialize is called (spec.md §4.5 step 1).
func New(query string, opts ...Option) *RSPEngine {
	e := &RSPEngine{
		query:             query,
		resultBufferSize:  DefaultResultBufferSize,
		ingressBufferSize: window.DefaultIngressBufferSize,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.log == nil {
		e.log = logger.NewLogger(logger.INFO, os.Stdout)
	}
	return e
}

// Initialize parses the query, builds one CSPARQLWindow per window
// declaration, one RDFStream per unique stream URI wired to the windows
// declared on it, and an R2ROperator from the rewritten inner query
// (spec.md §4.5 step 2). It fails with a MalformedQueryError if parsing
// fails, or if the query declares a report mode other than RStream — the
// only mode this engine evaluates (spec.md §9 Open Questions, resolved
// explicitly here rather than left ambiguous).
func (e *RSPEngine) Initialize() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.initialized {
		return fmt.Errorf("engine: already initialized")
	}

	parsed, err := rspsql.Parse(e.query)
	if err != nil {
		return err
	}
	if parsed.Report != rspsql.RStream {
		return rerror.NewMalformedQuery(e.query, fmt.Sprintf("report mode %q is not supported, only RStream is evaluated", parsed.Report))
	}

	op, err := r2r.New(parsed.InnerQuery)
	if err != nil {
		return err
	}

	windows := make(map[string]*window.CSPARQLWindow, len(parsed.Windows))
	streams := make(map[string]*ingest.Stream, len(parsed.StreamURIs))
	for _, uri := range parsed.StreamURIs {
		streams[uri] = ingest.New(uri)
	}

	emitCh := make(chan window.Emission, e.resultBufferSize)
	for _, decl := range parsed.Windows {
		cfg := window.Config{
			Name:              decl.Name,
			StreamURI:         decl.StreamURI,
			Range:             decl.Range,
			Step:              decl.Step,
			IngressBufferSize: e.ingressBufferSize,
		}
		w, err := window.New(cfg, e.log)
		if err != nil {
			return rerror.NewMalformedQuery(e.query, err.Error())
		}
		if e.debug {
			w.SetDebugMode(true)
		}
		w.Subscribe(emitCh)
		windows[decl.Name] = w

		s, ok := streams[decl.StreamURI]
		if !ok {
			return rerror.NewMalformedQuery(e.query, "window references unknown stream: "+decl.StreamURI)
		}
		s.Subscribe(w)
	}

	e.parsed = parsed
	e.op = op
	e.windows = windows
	e.streams = streams
	e.emitCh = emitCh
	e.initialized = true
	return nil
}

// StartProcessing launches the worker goroutine for every window plus the
// emission dispatcher, and returns the receive side of the result channel
// (spec.md §4.5 step 3, §5). It must be called exactly once, after
// Initialize.
func (e *RSPEngine) StartProcessing() (<-chan Result, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.initialized {
		return nil, fmt.Errorf("engine: Initialize must be called before StartProcessing")
	}
	if e.started {
		return nil, fmt.Errorf("engine: already started")
	}
	e.started = true

	for _, w := range e.windows {
		w.Start()
	}

	e.resultCh = make(chan Result, e.resultBufferSize)
	go e.dispatch()

	return e.resultCh, nil
}

// dispatch is the emission-dispatcher goroutine (spec.md §2, §5): it
// receives every window's closed-instance emissions off the shared
// channel, evaluates the R2R operator against each one, and forwards the
// resulting bindings onto the result channel. It runs on a single
// goroutine, so R2ROperator.Execute needs no synchronization beyond the
// static store's own mutex.
func (e *RSPEngine) dispatch() {
	defer close(e.resultCh)
	for emission := range e.emitCh {
		bindings, err := e.op.Execute(emission.Window, emission.Quads)
		if err != nil {
			e.log.Error("r2r evaluation failed for window=%s close=%d: %v", emission.Window, emission.Instance.Close, err)
			continue
		}
		for _, b := range bindings {
			e.resultCh <- Result{Window: emission.Window, Binding: b}
		}
	}
}

// GetStream returns the cloneable RDFStream handle for uri, or false if no
// window declared that stream (spec.md §6).
func (e *RSPEngine) GetStream(uri string) (*ingest.Stream, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	s, ok := e.streams[uri]
	return s, ok
}

// GetWindow returns the read-only introspection handle for the named
// window, or false if no such window was declared (spec.md §6).
func (e *RSPEngine) GetWindow(name string) (WindowHandle, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	w, ok := e.windows[name]
	return w, ok
}

// CloseStream injects the well-known sentinel quad at finalTimestamp into
// the named stream, advancing every subscribed window's event-time
// frontier so that every instance with close <= finalTimestamp evicts and
// emits (spec.md §4.5 step 4, §9). The sentinel travels through the
// ordinary ingestion path, not a side channel.
func (e *RSPEngine) CloseStream(uri string, finalTimestamp int64) error {
	s, ok := e.GetStream(uri)
	if !ok {
		return rerror.NewStreamClosed(uri)
	}
	return s.AddQuads([]quad.Quad{window.SentinelQuad()}, finalTimestamp)
}

// AddStaticData forwards q to the R2ROperator's static store (spec.md
// §4.5 step 5). Safe to call before or during StartProcessing.
func (e *RSPEngine) AddStaticData(q quad.Quad) {
	e.mu.Lock()
	op := e.op
	e.mu.Unlock()
	if op != nil {
		op.AddStaticData(q)
	}
}

// Close tears the engine down (spec.md §5 Cancellation and shutdown): it
// closes every stream so further AddQuads calls fail with
// StreamClosedError, stops every window worker (draining whatever is
// already buffered in its ingress channel), then closes the shared
// emission channel so the dispatcher goroutine observes completion and
// closes the result channel, unblocking the caller. Close is idempotent.
func (e *RSPEngine) Close() {
	e.stopOnce.Do(func() {
		e.mu.Lock()
		streams := make([]*ingest.Stream, 0, len(e.streams))
		for _, s := range e.streams {
			streams = append(streams, s)
		}
		windows := make([]*window.CSPARQLWindow, 0, len(e.windows))
		for _, w := range e.windows {
			windows = append(windows, w)
		}
		started := e.started
		emitCh := e.emitCh
		e.mu.Unlock()

		for _, s := range streams {
			s.Close()
		}
		if !started {
			return
		}
		for _, w := range windows {
			w.Stop()
		}
		close(emitCh)
	})
}
