// Copyright 2022 Sogang University
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package splay

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestLocalitySkewedAccessLowersHotSubsetDepth verifies the core property
// that motivates using a splay tree for eviction in the first place: a
// small subset of keys accessed repeatedly ends up shallower, on average,
// than a disjoint subset that is never touched after the initial
// insertion.
func TestLocalitySkewedAccessLowersHotSubsetDepth(t *testing.T) {
	tr := New[int, int]()
	for _, k := range perm(1000) {
		tr.Insert(k, k)
	}

	hot := rang(0, 20)
	cold := rang(500, 520)

	for round := 0; round < 50; round++ {
		for _, k := range hot {
			tr.Get(k)
		}
	}

	var hotTotal, coldTotal int
	for _, k := range hot {
		d, ok := tr.HeightOf(k)
		assert.True(t, ok)
		hotTotal += d
	}
	for _, k := range cold {
		d, ok := tr.HeightOf(k)
		assert.True(t, ok)
		coldTotal += d
	}

	hotMean := float64(hotTotal) / float64(len(hot))
	coldMean := float64(coldTotal) / float64(len(cold))
	assert.Less(t, hotMean, coldMean, "repeatedly accessed keys should end up shallower than untouched keys")
}

func TestLocalitySingleKeyBecomesRootAfterAccess(t *testing.T) {
	tr := New[int, int]()
	for _, k := range perm(200) {
		tr.Insert(k, k)
	}
	tr.Get(77)
	depth, ok := tr.HeightOf(77)
	assert.True(t, ok)
	assert.Equal(t, 0, depth, "the most recently accessed key should be at the root")
}
