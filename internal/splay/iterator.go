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

// Iterator walks a Tree's entries in ascending key order using an explicit
// ancestor stack, so it never recurses and never mutates or splays the
// tree it was built from. It is not restartable: construct a new Iterator
// to walk the tree again.
//
// The tree must not be mutated while an Iterator built from it is in use;
// behavior under concurrent mutation is undefined.
type Iterator[K Ordered, V any] struct {
	stack []*node[K, V]
}

// NewIterator builds an iterator over t's entries, seeded at t's leftmost
// node.
func (t *Tree[K, V]) NewIterator() *Iterator[K, V] {
	it := &Iterator[K, V]{}
	it.pushSpine(t.root)
	return it
}

// pushSpine pushes n and then its left descendants, so the top of the
// stack is always the next node to yield.
func (it *Iterator[K, V]) pushSpine(n *node[K, V]) {
	for n != nil {
		it.stack = append(it.stack, n)
		n = n.left
	}
}

// Next returns the next entry in ascending key order. ok is false once
// every entry has been yielded.
func (it *Iterator[K, V]) Next() (k K, v V, ok bool) {
	if len(it.stack) == 0 {
		return k, v, false
	}
	n := it.stack[len(it.stack)-1]
	it.stack = it.stack[:len(it.stack)-1]
	if n.right != nil {
		it.pushSpine(n.right)
	}
	return n.key, n.value, true
}
