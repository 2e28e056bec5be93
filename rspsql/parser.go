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

// Package rspsql implements the RSP-QL query parser (spec.md §4.1,
// component C5): it extracts the REGISTER preamble, every FROM NAMED
// WINDOW declaration, and rewrites the inner query's WINDOW graph patterns
// into plain GRAPH patterns an ordinary SPARQL-subset evaluator accepts.
package rspsql

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/rulego/rspql/rerror"
)

// ReportType is the RStream/IStream/DStream distinction named in the
// REGISTER preamble. Only RStream is executed (spec.md §9 Open Questions);
// the others are parsed and recorded here, and RSPEngine.Initialize rejects
// them with a MalformedQueryError.
type ReportType string

const (
	RStream ReportType = "RStream"
	IStream ReportType = "IStream"
	DStream ReportType = "DStream"
)

// WindowDecl is one parsed `FROM NAMED WINDOW <win> ON STREAM <stream>
// RANGE <r> STEP <s>` clause.
type WindowDecl struct {
	Name      string
	StreamURI string
	Range     int64
	Step      int64
}

// Query is the parsed form of one RSP-QL registration: the report type,
// every window declaration, the set of referenced stream URIs, and the
// rewritten inner query text ready to be handed to r2r.Parse.
type Query struct {
	Name        string
	Report      ReportType
	Windows     []WindowDecl
	InnerQuery  string
	StreamURIs  []string
}

var (
	registerPattern = regexp.MustCompile(`(?is)REGISTER\s+(RStream|IStream|DStream)\s+(\S+)\s+AS\b`)
	windowPattern   = regexp.MustCompile(`(?is)FROM\s+NAMED\s+WINDOW\s+(\S+)\s+ON\s+STREAM\s+(\S+)\s+RANGE\s+(\d+)\s+STEP\s+(\d+)`)
	windowRewrite   = regexp.MustCompile(`(?is)WINDOW\s+(\S+)\s*\{`)
	prefixPattern   = regexp.MustCompile(`(?i)PREFIX\s+(\w*):\s*<([^>]*)>`)
	selectFormPat   = regexp.MustCompile(`(?is)\b(SELECT|CONSTRUCT|ASK)\b`)
)

// Parse extracts the REGISTER preamble and every window declaration from
// raw, expands PREFIX-qualified names, and rewrites `WINDOW x { ... }` into
// `GRAPH x { ... }` in what remains. It returns MalformedQueryError if no
// window declaration is found, if a WINDOW graph pattern references a name
// that was never declared, or if the inner query is not a SELECT form
// (CONSTRUCT and ASK are rejected: spec.md §9 leaves their result shape
// undefined, so this implementation declines them outright rather than
// guessing).
func Parse(raw string) (*Query, error) {
	prefixes := map[string]string{}
	for _, m := range prefixPattern.FindAllStringSubmatch(raw, -1) {
		prefixes[m[1]] = m[2]
	}
	expand := func(name string) string {
		name = strings.Trim(name, "<>")
		if strings.HasPrefix(name, "http://") || strings.HasPrefix(name, "https://") || strings.HasPrefix(name, "urn:") {
			return name
		}
		if idx := strings.Index(name, ":"); idx >= 0 {
			prefix, local := name[:idx], name[idx+1:]
			if base, ok := prefixes[prefix]; ok {
				return base + local
			}
		}
		return name
	}

	regMatch := registerPattern.FindStringSubmatch(raw)
	if regMatch == nil {
		return nil, rerror.NewMalformedQuery(raw, "no REGISTER ... AS preamble found")
	}

	winMatches := windowPattern.FindAllStringSubmatch(raw, -1)
	if len(winMatches) == 0 {
		return nil, rerror.NewMalformedQuery(raw, "no FROM NAMED WINDOW declaration found")
	}

	declared := map[string]bool{}
	windows := make([]WindowDecl, 0, len(winMatches))
	streamSet := map[string]bool{}
	var streamURIs []string
	for _, m := range winMatches {
		r, err := strconv.ParseInt(m[3], 10, 64)
		if err != nil || r <= 0 {
			return nil, rerror.NewMalformedQuery(raw, "RANGE must be a positive integer: "+m[3])
		}
		s, err := strconv.ParseInt(m[4], 10, 64)
		if err != nil || s <= 0 {
			return nil, rerror.NewMalformedQuery(raw, "STEP must be a positive integer: "+m[4])
		}
		name := expand(m[1])
		stream := expand(m[2])
		windows = append(windows, WindowDecl{Name: name, StreamURI: stream, Range: r, Step: s})
		declared[name] = true
		if !streamSet[stream] {
			streamSet[stream] = true
			streamURIs = append(streamURIs, stream)
		}
	}

	body := raw
	body = registerPattern.ReplaceAllString(body, "")
	body = windowPattern.ReplaceAllString(body, "")

	formMatch := selectFormPat.FindStringSubmatch(body)
	if formMatch == nil || !strings.EqualFold(formMatch[1], "SELECT") {
		form := "none"
		if formMatch != nil {
			form = formMatch[1]
		}
		return nil, rerror.NewMalformedQuery(raw, "only SELECT queries are supported, got: "+form)
	}

	var rewriteErr error
	body = windowRewrite.ReplaceAllStringFunc(body, func(m string) string {
		sub := windowRewrite.FindStringSubmatch(m)
		name := expand(sub[1])
		if !declared[name] {
			rewriteErr = rerror.NewMalformedQuery(raw, "WINDOW references undeclared name: "+sub[1])
			return m
		}
		return "GRAPH <" + name + "> {"
	})
	if rewriteErr != nil {
		return nil, rewriteErr
	}

	return &Query{
		Name:       strings.Trim(regMatch[2], "<>"),
		Report:     ReportType(regMatch[1]),
		Windows:    windows,
		InnerQuery: strings.TrimSpace(body),
		StreamURIs: streamURIs,
	}, nil
}
