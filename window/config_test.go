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
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfigValidateRejectsNonPositiveRangeOrStep(t *testing.T) {
	assert.Error(t, Config{Name: "w", Range: 0, Step: 5}.Validate())
	assert.Error(t, Config{Name: "w", Range: 10, Step: 0}.Validate())
	assert.Error(t, Config{Name: "w", Range: -5, Step: 5}.Validate())
	assert.NoError(t, Config{Name: "w", Range: 10, Step: 5}.Validate())
}

func TestConfigActiveInstanceCount(t *testing.T) {
	assert.Equal(t, int64(2), Config{Range: 10, Step: 5}.ActiveInstanceCount())
	assert.Equal(t, int64(4), Config{Range: 10, Step: 3}.ActiveInstanceCount())
}

func TestLooksLikeIRI(t *testing.T) {
	assert.True(t, looksLikeIRI("http://example.org/w1"))
	assert.True(t, looksLikeIRI("urn:example:w1"))
	assert.False(t, looksLikeIRI("w1"))
	assert.False(t, looksLikeIRI(""))
}
