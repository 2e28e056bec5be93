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

// Package window implements the S2R (stream-to-relation) operator:
// CSPARQLWindow, a sliding-window state machine that buffers timestamped RDF
// quads into overlapping window instances and emits each instance's content
// once it closes (spec.md §3, components C2 and C3).
package window

import (
	"sort"
	"sync"

	"github.com/rulego/rspql/container"
	"github.com/rulego/rspql/logger"
	"github.com/rulego/rspql/quad"
)

// Emission is one closed window instance handed to a subscriber: the
// instance's (Open, Close) bounds and the quads that accumulated in it,
// already rewritten into this window's graph (spec.md §4.2 step 4).
type Emission struct {
	Window   string
	Instance Instance
	Quads    []quad.Quad
}

// sentinelTerm identifies the well-known triple used to model stream
// closure (spec.md §4.5, §9): a single self-referential IRI reused for all
// three positions, distinctive enough that downstream SPARQL patterns can
// filter it out deliberately if they need to.
var sentinelTerm = quad.NewIRI("urn:rspql:sentinel")

// SentinelQuad builds the well-known triple used to model stream closure.
// Exported so RDFStream (ingest.Stream) can fan the same sentinel out to
// every window subscribed to a closing stream, exactly as it fans out any
// other quad (spec.md §4.5).
func SentinelQuad() quad.Quad {
	return quad.New(sentinelTerm, sentinelTerm, sentinelTerm)
}

// ingressItem is a quad paired with the timestamp it arrived at, queued on
// the window's single ingress channel so the worker goroutine is the only
// reader of window state (spec.md §5).
type ingressItem struct {
	quad quad.Quad
	t    int64
}

// CSPARQLWindow runs one REGISTERed window as a single-goroutine state
// machine: all mutable state (t0, maxSeen, and the live instance->container
// map) is touched only from the run() loop, so it needs no internal lock
// except for the read-only snapshot fields exposed to ActiveWindowRanges and
// ActiveWindowCount, which are published under mu for external introspection
// (diagnostics, tests) without disturbing the hot ingestion path.
type CSPARQLWindow struct {
	cfg       Config
	graph     quad.Term
	log       logger.Logger
	debug     bool

	ingress chan ingressItem
	done    chan struct{}
	stopped chan struct{}

	subsMu sync.Mutex
	subs   []chan<- Emission

	mu          sync.Mutex
	snapshot    []Instance
	instanceCnt int
}

// New constructs a CSPARQLWindow from a validated Config. log may be nil, in
// which case a discard logger is used (ambient logging never panics on a
// missing collaborator).
func New(cfg Config, log logger.Logger) (*CSPARQLWindow, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if log == nil {
		log = logger.NewDiscardLogger()
	}
	bufSize := cfg.IngressBufferSize
	if bufSize <= 0 {
		bufSize = DefaultIngressBufferSize
	}

	graphName := cfg.Name
	if !looksLikeIRI(graphName) {
		graphName = DefaultWindowIRI
	}

	w := &CSPARQLWindow{
		cfg:     cfg,
		graph:   quad.NewIRI(graphName),
		log:     log,
		ingress: make(chan ingressItem, bufSize),
		done:    make(chan struct{}),
		stopped: make(chan struct{}),
	}
	return w, nil
}

// Name returns the window's declared name.
func (w *CSPARQLWindow) Name() string { return w.cfg.Name }

// Start launches the worker goroutine that owns all window state. Start
// must be called exactly once before Add or CloseStream is used.
func (w *CSPARQLWindow) Start() {
	go w.run()
}

// Stop shuts the window down: the worker goroutine drains any buffered
// ingress items, then exits without emitting further windows. Stop blocks
// until the worker has exited.
func (w *CSPARQLWindow) Stop() {
	close(w.done)
	<-w.stopped
}

// Subscribe registers sink to receive every Emission from this window, in
// increasing Close order. Subscribe must be called before Start.
func (w *CSPARQLWindow) Subscribe(sink chan<- Emission) {
	w.subsMu.Lock()
	defer w.subsMu.Unlock()
	w.subs = append(w.subs, sink)
}

// Add enqueues one quad observed at timestamp t for processing by the
// worker goroutine. Add never blocks the caller on window-internal state;
// it only blocks if the ingress buffer itself is full, exerting backpressure
// on the stream that feeds this window.
func (w *CSPARQLWindow) Add(q quad.Quad, t int64) {
	select {
	case w.ingress <- ingressItem{quad: q, t: t}:
	case <-w.done:
	}
}

// CloseStream injects the well-known sentinel quad at timestamp t through
// the ordinary ingestion path, advancing max_seen_timestamp so every
// window instance with close <= t evicts and emits (spec.md §4.5, §9):
// the sentinel is a normal quad, not a side channel, and is itself subject
// to scope assignment like any other event.
func (w *CSPARQLWindow) CloseStream(t int64) {
	w.Add(SentinelQuad(), t)
}

// SetDebugMode toggles verbose per-quad logging, useful when diagnosing
// scope() boundary behavior interactively (spec.md §4.2 Open Questions).
func (w *CSPARQLWindow) SetDebugMode(on bool) {
	w.mu.Lock()
	w.debug = on
	w.mu.Unlock()
}

// ActiveWindowCount reports how many window instances are currently live,
// for introspection (spec.md §4.6, engine.GetWindow).
func (w *CSPARQLWindow) ActiveWindowCount() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.instanceCnt
}

// ActiveWindowRanges returns a snapshot of every currently live instance,
// sorted by increasing Open.
func (w *CSPARQLWindow) ActiveWindowRanges() []Instance {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make([]Instance, len(w.snapshot))
	copy(out, w.snapshot)
	return out
}

// run is the single goroutine that owns t0, maxSeen and the live
// instance->container map for the lifetime of the window.
func (w *CSPARQLWindow) run() {
	defer close(w.stopped)

	var (
		t0      int64
		haveT0  bool
		maxSeen int64
		live    = map[Instance]*container.QuadContainer{}
	)

	publishSnapshot := func() {
		instances := make([]Instance, 0, len(live))
		for inst := range live {
			instances = append(instances, inst)
		}
		sort.Slice(instances, func(i, j int) bool { return instances[i].Open < instances[j].Open })
		w.mu.Lock()
		w.snapshot = instances
		w.instanceCnt = len(instances)
		w.mu.Unlock()
	}

	// evict emits and discards every live instance whose Close has already
	// passed the highest timestamp the window can still observe, in
	// increasing Close order (spec.md §4.2 step 6, §8 property 3).
	evict := func(horizon int64) {
		var closing []Instance
		for inst := range live {
			if inst.Close <= horizon {
				closing = append(closing, inst)
			}
		}
		sort.Slice(closing, func(i, j int) bool { return closing[i].Close < closing[j].Close })
		for _, inst := range closing {
			c := live[inst]
			delete(live, inst)
			w.emit(Emission{Window: w.cfg.Name, Instance: inst, Quads: c.Quads()})
		}
		if len(closing) > 0 {
			publishSnapshot()
		}
	}

	process := func(item ingressItem) {
		t := item.t
		if haveT0 && t < maxSeen {
			w.log.Debug("out-of-order quad dropped, window=%s t=%d max=%d", w.cfg.Name, t, maxSeen)
			return
		}
		if !haveT0 {
			t0 = t
			maxSeen = t
			haveT0 = true
		}
		if t > maxSeen {
			maxSeen = t
		}

		rewritten := item.quad.WithGraph(w.graph)
		instances := scope(t, t0, w.cfg.Range, w.cfg.Step)
		for _, inst := range instances {
			c, ok := live[inst]
			if !ok {
				c = container.New()
				live[inst] = c
			}
			c.Add(quad.Timestamped{Quad: rewritten, Timestamp: t})
		}
		if len(instances) > 0 {
			publishSnapshot()
		}
		if w.debugEnabled() {
			w.log.Debug("window=%s t=%d assigned to %d instance(s)", w.cfg.Name, t, len(instances))
		}

		evict(maxSeen)
	}

	for {
		select {
		case item := <-w.ingress:
			process(item)
		case <-w.done:
			for {
				select {
				case item := <-w.ingress:
					process(item)
					continue
				default:
				}
				return
			}
		}
	}
}

func (w *CSPARQLWindow) debugEnabled() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.debug
}

// emit delivers one closed window instance to every subscriber. A send is
// skipped, not retried, if a subscriber's channel is full or closed: a slow
// or gone consumer must never stall the window's own goroutine.
func (w *CSPARQLWindow) emit(e Emission) {
	w.subsMu.Lock()
	subs := make([]chan<- Emission, len(w.subs))
	copy(subs, w.subs)
	w.subsMu.Unlock()

	for _, sink := range subs {
		w.safeSend(sink, e)
	}
}

func (w *CSPARQLWindow) safeSend(sink chan<- Emission, e Emission) {
	defer func() {
		if r := recover(); r != nil {
			w.log.Warn("window=%s: dropped emission, subscriber channel closed", w.cfg.Name)
		}
	}()
	select {
	case sink <- e:
	default:
		w.log.Warn("window=%s: subscriber channel full, dropping emission close=%d", w.cfg.Name, e.Instance.Close)
	}
}
