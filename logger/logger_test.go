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

package logger

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLevelString(t *testing.T) {
	assert.Equal(t, "DEBUG", DEBUG.String())
	assert.Equal(t, "INFO", INFO.String())
	assert.Equal(t, "WARN", WARN.String())
	assert.Equal(t, "ERROR", ERROR.String())
	assert.Equal(t, "OFF", OFF.String())
	assert.Equal(t, "UNKNOWN", Level(99).String())
}

func TestNewLoggerRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(WARN, &buf)

	l.Debug("dropped out-of-order quad at t=%d", 5)
	l.Info("window %s created", "w1")
	assert.Empty(t, buf.String())

	l.Warn("out-of-order event dropped, t=%d max=%d", 1, 10)
	assert.Contains(t, buf.String(), "[WARN]")
	assert.Contains(t, buf.String(), "out-of-order event dropped")

	l.Error("evaluation failed: %s", "parse error")
	assert.Contains(t, buf.String(), "[ERROR]")
}

func TestNewLoggerOff(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(OFF, &buf)
	l.Error("should not appear")
	assert.Empty(t, buf.String())
}

func TestDiscardLogger(t *testing.T) {
	l := NewDiscardLogger()
	l.Debug("x")
	l.Info("x")
	l.Warn("x")
	l.Error("x")
	l.SetLevel(DEBUG) // must not panic
}

func TestDefaultLogger(t *testing.T) {
	original := GetDefault()
	defer SetDefault(original)

	var buf bytes.Buffer
	SetDefault(NewLogger(DEBUG, &buf))

	Info("window %s closed with %d quads", "w1", 3)
	out := buf.String()
	assert.True(t, strings.Contains(out, "window w1 closed with 3 quads"))
}
