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

package cache

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMergeIntoLastWriteWins(t *testing.T) {
	a := New[int, string]()
	a.Put(1, "a1")
	a.Put(2, "a2")

	b := New[int, string]()
	b.Put(2, "b2")
	b.Put(3, "b3")

	a.MergeInto(b)

	v, _ := a.Get(1)
	assert.Equal(t, "a1", v)
	v, _ = a.Get(2)
	assert.Equal(t, "b2", v, "merge is last-write-wins, so the incoming side overwrites on collision")
	v, _ = a.Get(3)
	assert.Equal(t, "b3", v)
}

func TestMergeIntoFuncResolvesCollisions(t *testing.T) {
	a := New[int, int]()
	a.Put(1, 10)
	b := New[int, int]()
	b.Put(1, 5)
	b.Put(2, 20)

	a.MergeIntoFunc(b, func(k int, old, new int) int { return old + new })

	v, _ := a.Get(1)
	assert.Equal(t, 15, v)
	v, _ = a.Get(2)
	assert.Equal(t, 20, v)
}

func TestRejectAndSelect(t *testing.T) {
	c := New[int, int]()
	for i := 0; i < 10; i++ {
		c.Put(i, i)
	}
	even := c.Select(func(k, v int) bool { return k%2 == 0 })
	odd := c.Reject(func(k, v int) bool { return k%2 == 0 })

	assert.Equal(t, 5, even.Len())
	assert.Equal(t, 5, odd.Len())
	_, ok := even.Get(3)
	assert.False(t, ok)
	_, ok = odd.Get(3)
	assert.True(t, ok)

	// The source cache is untouched.
	assert.Equal(t, 10, c.Len())
}

func TestTransformKeysBuildsNewCache(t *testing.T) {
	c := New[int, string]()
	c.Put(1, "a")
	c.Put(2, "b")

	doubled := c.TransformKeys(func(k int) int { return k * 2 })
	_, ok := doubled.Get(2)
	assert.True(t, ok)
	_, ok = doubled.Get(1)
	assert.False(t, ok, "TransformKeys must not mutate the original key")

	// Source cache unaffected.
	_, ok = c.Get(1)
	assert.True(t, ok)
}

func TestTransformValuesInPlace(t *testing.T) {
	c := New[int, int]()
	for i := 0; i < 5; i++ {
		c.Put(i, i)
	}
	c.TransformValues(func(v int) int { return v * 10 })
	for i := 0; i < 5; i++ {
		v, _ := c.Get(i)
		assert.Equal(t, i*10, v)
	}
}

func TestToSliceAndToMap(t *testing.T) {
	c := New[int, int]()
	for _, k := range []int{3, 1, 2} {
		c.Put(k, k*k)
	}
	slice := c.ToSlice()
	require.Len(t, slice, 3)
	assert.Equal(t, 1, slice[0].Key)
	assert.Equal(t, 2, slice[1].Key)
	assert.Equal(t, 3, slice[2].Key)

	m := c.ToMap()
	assert.Equal(t, map[int]int{1: 1, 2: 4, 3: 9}, m)
}

func TestString(t *testing.T) {
	c := New[int, string]()
	c.Put(1, "a")
	c.Put(2, "b")
	assert.Equal(t, "{1 => a, 2 => b}", c.String())
}

func TestStringEmptyCache(t *testing.T) {
	c := New[int, string]()
	assert.Equal(t, "{}", c.String())
}

func TestValuesAtHit(t *testing.T) {
	c := New[string, int]()
	c.Put("a", 1)
	c.Put("b", 2)
	vs, err := c.ValuesAt("b", "a")
	require.NoError(t, err)
	assert.Equal(t, []int{2, 1}, vs)
}

func TestValuesAtMiss(t *testing.T) {
	c := New[string, int]()
	c.Put("a", 1)
	_, err := c.ValuesAt("a", "missing")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrKeyNotFound))
}

func TestZipSkipsUnsharedKeys(t *testing.T) {
	a := New[int, string]()
	a.Put(1, "a1")
	a.Put(2, "a2")
	a.Put(3, "a3")

	b := New[int, string]()
	b.Put(2, "b2")
	b.Put(3, "b3")
	b.Put(4, "b4")

	zipped := a.Zip(b)
	require.Len(t, zipped, 2)
	assert.Equal(t, "a2", zipped[0].Key)
	assert.Equal(t, "b2", zipped[0].Value)
	assert.Equal(t, "a3", zipped[1].Key)
	assert.Equal(t, "b3", zipped[1].Value)
}

func TestDigThroughNestedCaches(t *testing.T) {
	inner := New[string, int]()
	inner.Put("leaf", 42)

	outer := New[string, *Cache[string, int]]()
	outer.Put("branch", inner)

	v, err := outer.Dig("branch", "leaf")
	require.NoError(t, err)
	assert.Equal(t, 42, v)
}

func TestDigPathNotFound(t *testing.T) {
	c := New[string, int]()
	c.Put("a", 1)
	_, err := c.Dig("missing")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDigPathNotFound))
}

func TestDigInvalidSegment(t *testing.T) {
	c := New[string, int]()
	c.Put("a", 1)
	_, err := c.Dig("a", "further")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDigInvalidSegment))
}

func TestEqual(t *testing.T) {
	a := New[int, int]()
	b := New[int, int]()
	for i := 0; i < 5; i++ {
		a.Put(i, i*i)
		b.Put(i, i*i)
	}
	eq := func(x, y int) bool { return x == y }
	assert.True(t, a.Equal(b, eq))

	b.Put(5, 25)
	assert.False(t, a.Equal(b, eq))
}

func TestClonePreservesEntriesAndConfig(t *testing.T) {
	var evicted []int
	c := New[int, int](
		WithMaxSize[int, int](100),
		WithOnPrune[int, int](func(k, v int) { evicted = append(evicted, k) }),
	)
	for i := 0; i < 10; i++ {
		c.Put(i, i)
	}
	clone := c.Clone()
	assert.Equal(t, c.Len(), clone.Len())
	assert.Equal(t, c.MaxSize(), clone.MaxSize())

	for i := 0; i < 10; i++ {
		v, ok := clone.Get(i)
		assert.True(t, ok)
		assert.Equal(t, i, v)
	}

	// Mutating the clone must not affect the original.
	clone.Put(999, 999)
	_, ok := c.Get(999)
	assert.False(t, ok)
}
