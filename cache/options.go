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

import "github.com/kyrios-dev/splaycache/internal/splay"

// Option configures a Cache at construction time.
type Option[K splay.Ordered, V any] func(*Cache[K, V])

// WithDefault configures the value Fetch falls back to when a key is
// absent. It is overridden by a later WithDefaultFunc in the same New
// call.
func WithDefault[K splay.Ordered, V any](v V) Option[K, V] {
	return func(c *Cache[K, V]) {
		c.hasDefault = true
		c.defaultValue = v
		c.defaultFunc = nil
	}
}

// WithDefaultFunc configures a block Fetch invokes to compute a default
// value for a missing key, given the key itself. It is overridden by a
// later WithDefault in the same New call.
func WithDefaultFunc[K splay.Ordered, V any](fn func(K) V) Option[K, V] {
	return func(c *Cache[K, V]) {
		c.hasDefault = true
		c.defaultFunc = fn
	}
}

// NoMaxSize disables the bounded-size policy when passed to SetMaxSize or
// WithMaxSize. It is re-exported from the internal splay engine.
const NoMaxSize = splay.NoMaxSize

// WithMaxSize bounds the cache to at most n entries, evicting via Prune as
// needed. Pass NoMaxSize to leave the cache unbounded (the default).
func WithMaxSize[K splay.Ordered, V any](n int) Option[K, V] {
	return func(c *Cache[K, V]) {
		c.tree.SetMaxSize(n)
	}
}

// WithOnPrune registers a callback invoked once per evicted entry, before
// it is detached from the underlying tree. The callback must not call back
// into the Cache it was registered on: Cache's mutex is held for the
// duration of the operation that triggered the eviction, and a re-entrant
// call will deadlock.
func WithOnPrune[K splay.Ordered, V any](fn func(K, V)) Option[K, V] {
	return func(c *Cache[K, V]) {
		c.tree.OnPrune(fn)
	}
}
