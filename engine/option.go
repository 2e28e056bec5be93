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

package engine

import (
	"os"

	"github.com/rulego/rspql/logger"
)

// Option modifies an RSPEngine's default configuration before Initialize
// runs, following the functional-options pattern.
type Option func(*RSPEngine)

// WithLogger installs a custom logger used for every window and for the
// engine itself.
func WithLogger(log logger.Logger) Option {
	return func(e *RSPEngine) { e.log = log }
}

// WithLogLevel sets the level of the engine's logger. If no logger has
// been installed yet, a default one is created at this level.
func WithLogLevel(level logger.Level) Option {
	return func(e *RSPEngine) {
		if e.log == nil {
			e.log = logger.NewLogger(level, os.Stdout)
			return
		}
		e.log.SetLevel(level)
	}
}

// WithIngressBufferSize overrides the ingress channel capacity every
// window is constructed with.
func WithIngressBufferSize(n int) Option {
	return func(e *RSPEngine) { e.ingressBufferSize = n }
}

// WithResultBufferSize overrides the capacity of the aggregated emission
// channel and the result channel returned by StartProcessing.
func WithResultBufferSize(n int) Option {
	return func(e *RSPEngine) { e.resultBufferSize = n }
}

// WithDebug toggles debug mode on every window as it is constructed.
func WithDebug(on bool) Option {
	return func(e *RSPEngine) { e.debug = on }
}
