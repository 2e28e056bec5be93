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

// Package rerror defines the typed error taxonomy surfaced by the rspql
// engine: malformed queries at initialize time, evaluation errors per
// window emission, and stream-closed errors on ingress.
package rerror

import "fmt"

// MalformedQueryError is returned by the RSP-QL parser, or by RSPEngine
// initialization, when a query cannot be parsed into a valid window set.
type MalformedQueryError struct {
	Query  string
	Reason string
}

func (e *MalformedQueryError) Error() string {
	return fmt.Sprintf("malformed RSP-QL query: %s", e.Reason)
}

// NewMalformedQuery builds a MalformedQueryError with the offending query
// text attached for diagnostics.
func NewMalformedQuery(query, reason string) error {
	return &MalformedQueryError{Query: query, Reason: reason}
}

// EvaluationError wraps a failure from the embedded SPARQL evaluation of
// one window's contents. It is non-fatal: the engine logs it and continues
// processing subsequent windows.
type EvaluationError struct {
	WindowName string
	Err        error
}

func (e *EvaluationError) Error() string {
	return fmt.Sprintf("evaluation failed for window %q: %v", e.WindowName, e.Err)
}

func (e *EvaluationError) Unwrap() error { return e.Err }

// NewEvaluation wraps err as an EvaluationError for the named window.
func NewEvaluation(windowName string, err error) error {
	return &EvaluationError{WindowName: windowName, Err: err}
}

// StreamClosedError is returned by RDFStream.AddQuads when posted to after
// the owning engine has torn down its ingress channels.
type StreamClosedError struct {
	StreamURI string
}

func (e *StreamClosedError) Error() string {
	return fmt.Sprintf("stream %q is closed", e.StreamURI)
}

// NewStreamClosed builds a StreamClosedError for the named stream.
func NewStreamClosed(streamURI string) error {
	return &StreamClosedError{StreamURI: streamURI}
}
