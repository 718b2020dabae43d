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

// Package cache provides a concurrency-safe, self-adjusting map with a
// bounded-size eviction policy. It wraps the splay-tree engine in
// internal/splay behind a single mutex per public call, and adds the
// ergonomic surface (defaults, bulk operations, convenience compositions)
// an importer expects from a map-like container.
package cache

import (
	"sync"

	"github.com/golang/glog"

	"github.com/kyrios-dev/splaycache/internal/splay"
)

// Cache is a self-adjusting, concurrency-safe keyed map with an optional
// maximum size and eviction callback. The zero value is not usable; build
// one with New.
type Cache[K splay.Ordered, V any] struct {
	mu   sync.Mutex
	tree *splay.Tree[K, V]

	hasDefault   bool
	defaultValue V
	defaultFunc  func(K) V
}

// New creates an empty cache, applying any supplied options in order.
func New[K splay.Ordered, V any](opts ...Option[K, V]) *Cache[K, V] {
	c := &Cache[K, V]{tree: splay.New[K, V]()}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Pair is a key/value pair, used by the bulk-construction and
// slice-conversion surface.
type Pair[K, V any] struct {
	Key   K
	Value V
}

// NewFromPairs creates a cache pre-populated with pairs, applying pairs in
// order (later entries overwrite earlier ones with the same key), then
// applying any supplied options.
func NewFromPairs[K splay.Ordered, V any](pairs []Pair[K, V], opts ...Option[K, V]) *Cache[K, V] {
	c := &Cache[K, V]{tree: splay.New[K, V]()}
	for _, p := range pairs {
		c.tree.Insert(p.Key, p.Value)
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get looks up k, splaying the underlying tree so that k, or its nearest
// in-order neighbor if absent, becomes the new root. ok reports whether k
// was present.
func (c *Cache[K, V]) Get(k K) (v V, ok bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.tree.Get(k)
}

// GetWithoutSplay looks up k without reshaping the tree. It never changes
// which entry is nearest the root, so repeated misses or cold accesses
// through this method cost a full search every time.
func (c *Cache[K, V]) GetWithoutSplay(k K) (v V, ok bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.tree.Obtain(k)
}

// ContainsKey reports whether k is present, without observably changing the
// default-value policy (it does splay, via Get, the same as any other read).
func (c *Cache[K, V]) ContainsKey(k K) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.tree.Get(k)
	return ok
}

// ContainsValue reports whether any entry's value equals v under eq. This
// is a linear scan: there is no reverse index from value to key.
func (c *Cache[K, V]) ContainsValue(v V, eq func(V, V) bool) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	it := c.tree.NewIterator()
	for {
		_, cur, ok := it.Next()
		if !ok {
			return false
		}
		if eq(cur, v) {
			return true
		}
	}
}

// GetOrDefault returns k's value if present, otherwise d. It does not store
// d and does not consult the cache's configured default.
func (c *Cache[K, V]) GetOrDefault(k K, d V) V {
	c.mu.Lock()
	defer c.mu.Unlock()
	if v, ok := c.tree.Get(k); ok {
		return v
	}
	return d
}

// Fetch returns k's value if present. Otherwise it returns the cache's
// configured default, per WithDefault or WithDefaultFunc, or the zero value
// of V if no default was configured. Unlike GetOrCompute, a miss is never
// stored: Fetch is a read, not a read-through.
func (c *Cache[K, V]) Fetch(k K) V {
	c.mu.Lock()
	defer c.mu.Unlock()
	if v, ok := c.tree.Get(k); ok {
		return v
	}
	v, _ := c.getDefault(k)
	return v
}

// GetOrCompute is a read-through cache pattern: if k is present, its value
// is returned. Otherwise fn(k) is invoked, the result is stored under k,
// and then returned. fn must not call back into c: the mutex is held for
// the whole call.
func (c *Cache[K, V]) GetOrCompute(k K, fn func(K) V) V {
	c.mu.Lock()
	defer c.mu.Unlock()
	if v, ok := c.tree.Get(k); ok {
		return v
	}
	v := fn(k)
	c.tree.Insert(k, v)
	return v
}

// getDefault returns the cache's configured default for k, if one was set
// via WithDefault or WithDefaultFunc, along with whether a default exists.
// Callers must already hold c.mu.
func (c *Cache[K, V]) getDefault(k K) (v V, ok bool) {
	if !c.hasDefault {
		return v, false
	}
	if c.defaultFunc != nil {
		return c.defaultFunc(k), true
	}
	return c.defaultValue, true
}

// Put inserts or overwrites the entry for k. It returns the previous value
// and whether k was already present.
func (c *Cache[K, V]) Put(k K, v V) (prev V, replaced bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.tree.Insert(k, v)
}

// Delete removes the entry for k, if present, and returns its value.
func (c *Cache[K, V]) Delete(k K) (v V, ok bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.tree.Delete(k)
}

// Clear removes every entry.
func (c *Cache[K, V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.tree.Clear()
}

// Len returns the number of entries currently stored.
func (c *Cache[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.tree.Len()
}

// Empty reports whether the cache holds no entries.
func (c *Cache[K, V]) Empty() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.tree.Empty()
}

// Height returns the number of edges on the longest root-to-leaf path.
func (c *Cache[K, V]) Height() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.tree.Height()
}

// HeightOf returns the depth of k's node along a plain search path, without
// splaying. ok is false if k is absent.
func (c *Cache[K, V]) HeightOf(k K) (depth int, ok bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.tree.HeightOf(k)
}

// MinKey returns the smallest key and its value. ok is false on an empty
// cache.
func (c *Cache[K, V]) MinKey() (k K, v V, ok bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.tree.Empty() {
		return k, v, false
	}
	k, v = c.tree.Min()
	return k, v, true
}

// MaxKey returns the largest key and its value. ok is false on an empty
// cache.
func (c *Cache[K, V]) MaxKey() (k K, v V, ok bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.tree.Empty() {
		return k, v, false
	}
	k, v = c.tree.Max()
	return k, v, true
}

// First returns the entry with the smallest key, as a Pair. ok is false on
// an empty cache.
func (c *Cache[K, V]) First() (p Pair[K, V], ok bool) {
	k, v, ok := c.MinKey()
	return Pair[K, V]{Key: k, Value: v}, ok
}

// Last returns the entry with the largest key, as a Pair. ok is false on an
// empty cache.
func (c *Cache[K, V]) Last() (p Pair[K, V], ok bool) {
	k, v, ok := c.MaxKey()
	return Pair[K, V]{Key: k, Value: v}, ok
}

// SetMaxSize bounds the cache to at most n entries, pruning immediately if
// the current size exceeds n. Pass NoMaxSize to disable the bound.
func (c *Cache[K, V]) SetMaxSize(n int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	glog.Infof("SetMaxSize called with n: %d", n)
	c.tree.SetMaxSize(n)
}

// MaxSize returns the configured bound, or NoMaxSize if unbounded.
func (c *Cache[K, V]) MaxSize() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.tree.MaxSize()
}

// OnPrune registers a callback invoked once per evicted entry, before it is
// detached. The callback must not call back into c.
func (c *Cache[K, V]) OnPrune(fn func(K, V)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	glog.Infof("OnPrune callback registered")
	c.tree.OnPrune(fn)
}

// WasPruned reports whether a prune cycle ran during the most recent call
// that can run one: an insertion of a new key, a Prune, or a SetMaxSize
// that had to shrink the cache. It is true even if the cycle removed
// nothing. Overwriting an existing key, Get and Delete leave it unchanged;
// Clear resets it to false.
func (c *Cache[K, V]) WasPruned() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.tree.WasPruned()
}

// Prune runs one height-threshold eviction pass and returns the number of
// entries removed.
func (c *Cache[K, V]) Prune() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	glog.V(1).Infof("Prune called at size: %d height: %d", c.tree.Len(), c.tree.Height())
	removed := c.tree.Prune()
	glog.V(1).Infof("Prune removed %d entries", removed)
	return removed
}
