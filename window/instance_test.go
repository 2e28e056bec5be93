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

func TestInstanceContains(t *testing.T) {
	i := Instance{Open: 10, Close: 20}
	assert.True(t, i.Contains(10))
	assert.True(t, i.Contains(19))
	assert.False(t, i.Contains(20))
	assert.False(t, i.Contains(9))
}

func TestFloorDivNegative(t *testing.T) {
	assert.Equal(t, int64(-1), floorDiv(-1, 2))
	assert.Equal(t, int64(-5), floorDiv(-10, 2))
	assert.Equal(t, int64(0), floorDiv(0, 2))
	assert.Equal(t, int64(3), floorDiv(7, 2))
	assert.Equal(t, int64(-4), floorDiv(-7, 2))
}

func TestCeilDiv(t *testing.T) {
	assert.Equal(t, int64(5), ceilDiv(10, 2))
	assert.Equal(t, int64(3), ceilDiv(5, 2))
	assert.Equal(t, int64(0), ceilDiv(0, 2))
}

// TestScopeScenarioS1 mirrors spec.md Scenario S1: RANGE=10, STEP=2,
// anchored at t0=0. A quad at t=5 must fall in every window instance whose
// half-open interval contains it.
func TestScopeScenarioS1(t *testing.T) {
	instances := scope(5, 0, 10, 2)

	assert.Len(t, instances, 5)
	for _, inst := range instances {
		assert.True(t, inst.Contains(5), "instance %s should contain t=5", inst)
	}
}

// TestScopeInstanceCountMatchesRangeOverStep checks the instance count
// against range/step. When step does not divide range, a timestamp lies in
// ceil(range/step) or floor(range/step) instances depending on its offset
// from the anchor: with range 10 and step 3 anchored at 0, t=99 lies in
// [90,100), [93,103), [96,106) and [99,109), while t=100 lies only in the
// last three.
func TestScopeInstanceCountMatchesRangeOverStep(t *testing.T) {
	const rng, step = int64(10), int64(3)

	assert.Len(t, scope(99, 0, rng, step), int(ceilDiv(rng, step)))
	assert.Len(t, scope(100, 0, rng, step), int(rng/step))
}

// TestScopeBoundaryAtAnchor verifies the t==t0 boundary that the spec's
// literal "c_sup stepping down" description leaves ambiguous: the instance
// [t0, t0+range) must be among those returned for t==t0.
func TestScopeBoundaryAtAnchor(t *testing.T) {
	instances := scope(0, 0, 10, 5)

	found := false
	for _, inst := range instances {
		if inst.Open == 0 && inst.Close == 10 {
			found = true
		}
		assert.True(t, inst.Contains(0))
	}
	assert.True(t, found, "expected instance [0, 10) to contain the anchor timestamp")
}

// TestScopeScaleInvariance checks spec.md §9: the same logical scenario,
// scaled up to Unix-millisecond magnitude, must produce identical relative
// results - this is what floating point division would get wrong.
func TestScopeScaleInvariance(t *testing.T) {
	small := scope(5, 0, 10, 2)

	const scale = int64(176_000_000_000)
	big := scope(5+scale, scale, 10, 2)

	require := assert.New(t)
	require.Equal(len(small), len(big))
	for i := range small {
		require.Equal(small[i].Open+scale, big[i].Open)
		require.Equal(small[i].Close+scale, big[i].Close)
	}
}

// TestScopeBeforeAnchor checks that a timestamp earlier than the anchor is
// placed in the instances that contain it, just as a later one is: opens
// are t0 + k*slide for every integer k, negative k included.
func TestScopeBeforeAnchor(t *testing.T) {
	instances := scope(-1000, 0, 10, 5)
	assert.Equal(t, []Instance{{Open: -1005, Close: -995}, {Open: -1000, Close: -990}}, instances)
}
