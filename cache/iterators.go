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

// EntryIterator walks a Cache's entries in ascending key order. Its starting
// position is taken under the cache's lock at construction time; after that
// it walks the live tree without the lock, so mutating the cache (including
// through a splaying read such as Get) while an EntryIterator built from it
// is still in use is undefined.
type EntryIterator[K splay.Ordered, V any] struct {
	it *splay.Iterator[K, V]
}

// Next returns the next entry in ascending key order. ok is false once
// every entry has been yielded.
func (e *EntryIterator[K, V]) Next() (k K, v V, ok bool) {
	return e.it.Next()
}

// Entries returns a fresh, non-restartable iterator over every key/value
// pair, in ascending key order.
func (c *Cache[K, V]) Entries() *EntryIterator[K, V] {
	c.mu.Lock()
	defer c.mu.Unlock()
	return &EntryIterator[K, V]{it: c.tree.NewIterator()}
}

// KeyIterator walks a Cache's keys in ascending order. See EntryIterator
// for the mutation caveat.
type KeyIterator[K splay.Ordered, V any] struct {
	it *splay.Iterator[K, V]
}

// Next returns the next key in ascending order. ok is false once every key
// has been yielded.
func (it *KeyIterator[K, V]) Next() (k K, ok bool) {
	k, _, ok = it.it.Next()
	return k, ok
}

// Keys returns a fresh, non-restartable iterator over every key, in
// ascending order.
func (c *Cache[K, V]) Keys() *KeyIterator[K, V] {
	c.mu.Lock()
	defer c.mu.Unlock()
	return &KeyIterator[K, V]{it: c.tree.NewIterator()}
}

// ValueIterator walks a Cache's values in ascending key order. See
// EntryIterator for the mutation caveat.
type ValueIterator[K splay.Ordered, V any] struct {
	it *splay.Iterator[K, V]
}

// Next returns the next value, in ascending key order. ok is false once
// every value has been yielded.
func (it *ValueIterator[K, V]) Next() (v V, ok bool) {
	_, v, ok = it.it.Next()
	return v, ok
}

// Values returns a fresh, non-restartable iterator over every value, in
// ascending key order.
func (c *Cache[K, V]) Values() *ValueIterator[K, V] {
	c.mu.Lock()
	defer c.mu.Unlock()
	return &ValueIterator[K, V]{it: c.tree.NewIterator()}
}
