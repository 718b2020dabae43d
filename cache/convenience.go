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
	"fmt"
	"strings"

	"github.com/kyrios-dev/splaycache/internal/splay"
)

// MergeInto copies every entry of other into c, last-write-wins: an entry
// present in both caches ends up holding other's value.
func (c *Cache[K, V]) MergeInto(other *Cache[K, V]) {
	c.MergeIntoFunc(other, func(_ K, _, newV V) V { return newV })
}

// MergeIntoFunc copies every entry of other into c, resolving key
// collisions with resolve(k, old, new). resolve is only called for keys
// present in both caches.
func (c *Cache[K, V]) MergeIntoFunc(other *Cache[K, V], resolve func(k K, old, new V) V) {
	other.mu.Lock()
	pairs := drainPairs(other)
	other.mu.Unlock()

	c.mu.Lock()
	defer c.mu.Unlock()
	for _, p := range pairs {
		if old, ok := c.tree.Obtain(p.Key); ok {
			c.tree.Insert(p.Key, resolve(p.Key, old, p.Value))
		} else {
			c.tree.Insert(p.Key, p.Value)
		}
	}
}

// drainPairs snapshots every entry of c in ascending key order. Callers
// must already hold c.mu.
func drainPairs[K splay.Ordered, V any](c *Cache[K, V]) []Pair[K, V] {
	it := c.tree.NewIterator()
	var out []Pair[K, V]
	for {
		k, v, ok := it.Next()
		if !ok {
			return out
		}
		out = append(out, Pair[K, V]{Key: k, Value: v})
	}
}

// Reject builds a new cache holding every entry for which pred returns
// false.
func (c *Cache[K, V]) Reject(pred func(K, V) bool) *Cache[K, V] {
	return c.filter(func(k K, v V) bool { return !pred(k, v) })
}

// Select builds a new cache holding every entry for which pred returns
// true.
func (c *Cache[K, V]) Select(pred func(K, V) bool) *Cache[K, V] {
	return c.filter(pred)
}

func (c *Cache[K, V]) filter(keep func(K, V) bool) *Cache[K, V] {
	c.mu.Lock()
	pairs := drainPairs(c)
	c.mu.Unlock()

	out := New[K, V]()
	for _, p := range pairs {
		if keep(p.Key, p.Value) {
			out.tree.Insert(p.Key, p.Value)
		}
	}
	return out
}

// TransformKeys builds a new cache with every key replaced by fn(key). A new
// cache is required because applying fn in place could violate the
// underlying tree's BST order.
func (c *Cache[K, V]) TransformKeys(fn func(K) K) *Cache[K, V] {
	c.mu.Lock()
	pairs := drainPairs(c)
	c.mu.Unlock()

	out := New[K, V]()
	for _, p := range pairs {
		out.tree.Insert(fn(p.Key), p.Value)
	}
	return out
}

// TransformValues applies fn to every value in place.
func (c *Cache[K, V]) TransformValues(fn func(V) V) {
	c.mu.Lock()
	defer c.mu.Unlock()
	pairs := drainPairs(c)
	for _, p := range pairs {
		c.tree.Insert(p.Key, fn(p.Value))
	}
}

// ToSlice returns every entry as a Pair slice, in ascending key order.
func (c *Cache[K, V]) ToSlice() []Pair[K, V] {
	c.mu.Lock()
	defer c.mu.Unlock()
	return drainPairs(c)
}

// ToMap returns every entry as a plain Go map. Key order is not preserved,
// since map does not preserve it.
func (c *Cache[K, V]) ToMap() map[K]V {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make(map[K]V, c.tree.Len())
	it := c.tree.NewIterator()
	for {
		k, v, ok := it.Next()
		if !ok {
			return out
		}
		out[k] = v
	}
}

// String renders the cache as "{k1 => v1, k2 => v2, ...}" in ascending key
// order.
func (c *Cache[K, V]) String() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	var b strings.Builder
	b.WriteByte('{')
	it := c.tree.NewIterator()
	first := true
	for {
		k, v, ok := it.Next()
		if !ok {
			break
		}
		if !first {
			b.WriteString(", ")
		}
		first = false
		fmt.Fprintf(&b, "%v => %v", k, v)
	}
	b.WriteByte('}')
	return b.String()
}

// ValuesAt returns the values for keys, in the order requested. It returns
// ErrKeyNotFound, wrapped with the offending key, on the first missing key.
func (c *Cache[K, V]) ValuesAt(keys ...K) ([]V, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]V, 0, len(keys))
	for _, k := range keys {
		v, ok := c.tree.Obtain(k)
		if !ok {
			return nil, wrapKeyNotFound(k)
		}
		out = append(out, v)
	}
	return out, nil
}

// Zip pairs c's values with other's values for keys present in both caches,
// in ascending key order. Keys present in only one side are skipped: there
// is no single natural default for the missing side without one being
// supplied by the caller.
func (c *Cache[K, V]) Zip(other *Cache[K, V]) []Pair[V, V] {
	c.mu.Lock()
	pairs := drainPairs(c)
	c.mu.Unlock()

	other.mu.Lock()
	defer other.mu.Unlock()

	var out []Pair[V, V]
	for _, p := range pairs {
		if ov, ok := other.tree.Obtain(p.Key); ok {
			out = append(out, Pair[V, V]{Key: p.Value, Value: ov})
		}
	}
	return out
}

// Dig descends along path through nested values that have a Dig method
// (such as *Cache) or are map[any]any, returning the value found at the
// end. Each path element is looked up against whatever diggable container
// the previous step returned. Maps with other key or value types and Pair
// values are not descended into. It returns ErrDigPathNotFound if a segment
// has no matching entry, or ErrDigInvalidSegment if a segment is not of the
// cache's key type or names a present but non-diggable value while path
// segments remain.
func (c *Cache[K, V]) Dig(path ...any) (any, error) {
	if len(path) == 0 {
		return c, nil
	}
	key, ok := path[0].(K)
	if !ok {
		return nil, ErrDigInvalidSegment
	}
	v, found := c.Get(key)
	if !found {
		return nil, ErrDigPathNotFound
	}
	if len(path) == 1 {
		return v, nil
	}
	return digInto(v, path[1:])
}

// digInto continues a Dig descent into an arbitrary value produced by a
// previous step.
func digInto(v any, path []any) (any, error) {
	switch container := v.(type) {
	case interface{ Dig(...any) (any, error) }:
		return container.Dig(path...)
	case map[any]any:
		cur, ok := container[path[0]]
		if !ok {
			return nil, ErrDigPathNotFound
		}
		if len(path) == 1 {
			return cur, nil
		}
		return digInto(cur, path[1:])
	default:
		return nil, ErrDigInvalidSegment
	}
}

// Equal reports whether c and other hold the same set of keys, each mapped
// to values considered equal under eq.
func (c *Cache[K, V]) Equal(other *Cache[K, V], eq func(a, b V) bool) bool {
	c.mu.Lock()
	pairs := drainPairs(c)
	c.mu.Unlock()

	other.mu.Lock()
	defer other.mu.Unlock()

	if other.tree.Len() != len(pairs) {
		return false
	}
	for _, p := range pairs {
		ov, ok := other.tree.Obtain(p.Key)
		if !ok || !eq(p.Value, ov) {
			return false
		}
	}
	return true
}

// Clone returns a structural copy of c, built by re-inserting every entry
// into a new cache with the same max-size bound and default-value
// configuration. The OnPrune callback is not copied, and the internal tree
// shape of the original is not preserved.
func (c *Cache[K, V]) Clone() *Cache[K, V] {
	c.mu.Lock()
	pairs := drainPairs(c)
	maxSize := c.tree.MaxSize()
	hasDefault, defaultValue, defaultFunc := c.hasDefault, c.defaultValue, c.defaultFunc
	c.mu.Unlock()

	out := New[K, V]()
	out.hasDefault, out.defaultValue, out.defaultFunc = hasDefault, defaultValue, defaultFunc
	out.tree.SetMaxSize(maxSize)
	for _, p := range pairs {
		out.tree.Insert(p.Key, p.Value)
	}
	return out
}
