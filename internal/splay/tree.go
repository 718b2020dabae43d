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

// NoMaxSize disables the bounded-size policy when passed to SetMaxSize.
const NoMaxSize = -1

// Tree is a splay tree keyed map. Build one with New: the zero value has a
// maxSize of 0, which bounds it to no entries at all.
//
// Tree is not safe for concurrent use.
type Tree[K Ordered, V any] struct {
	root      *node[K, V]
	size      int
	maxSize   int
	wasPruned bool
	onPrune   func(K, V)
}

// New creates a new, empty, unbounded tree.
func New[K Ordered, V any]() *Tree[K, V] {
	return &Tree[K, V]{maxSize: NoMaxSize}
}

// Len returns the number of entries currently in the tree.
func (t *Tree[K, V]) Len() int {
	return t.size
}

// Empty reports whether the tree holds no entries.
func (t *Tree[K, V]) Empty() bool {
	return t.size == 0
}

// Clear removes every entry from the tree.
func (t *Tree[K, V]) Clear() {
	t.root = nil
	t.size = 0
	t.wasPruned = false
}

// MaxSize returns the configured bound, or NoMaxSize if the tree is
// unbounded.
func (t *Tree[K, V]) MaxSize() int {
	return t.maxSize
}

// SetMaxSize configures the bounded-size policy. Passing NoMaxSize disables
// it. If the tree's current size already exceeds n, Prune is invoked
// repeatedly until size <= n.
func (t *Tree[K, V]) SetMaxSize(n int) {
	t.maxSize = n
	t.enforceBound()
}

// OnPrune registers a callback invoked exactly once per pruned entry, with
// that entry's key and value, before the entry is detached from the tree.
// The callback must not call back into the tree: Tree holds no internal
// lock, but a caller wrapping it in its own mutex (see the cache package)
// will deadlock if the callback re-enters a locking method.
func (t *Tree[K, V]) OnPrune(fn func(K, V)) {
	t.onPrune = fn
}

// WasPruned reports whether a prune cycle ran during the most recent call
// that can run one: an Insert of a new key, a Prune, or a SetMaxSize that
// had to shrink the tree. It is set unconditionally whenever a cycle runs
// on a non-empty tree, even if the cycle removed nothing. An Insert that
// overwrites an existing key, Get and Delete leave it unchanged; Clear
// resets it to false.
func (t *Tree[K, V]) WasPruned() bool {
	return t.wasPruned
}

// enforceBound runs prune cycles until the tree satisfies maxSize, or is
// unbounded.
func (t *Tree[K, V]) enforceBound() {
	if t.maxSize < 0 {
		return
	}
	for t.size > t.maxSize {
		if t.prune() == 0 && t.size > t.maxSize {
			t.deleteDeepest()
		}
	}
}

// splay restructures the tree rooted at t.root so that the node matching k
// in in-order position becomes the new root: the node itself if present,
// otherwise the in-order predecessor or successor on whichever side the
// search terminated. It is a no-op on an empty tree.
//
// The algorithm is top-down: it walks a search path for k while growing two
// spines, leftMax (keys proven less than every remaining candidate) and
// rightMin (keys proven greater), then splices the cursor's leftover
// children onto those spines and reattaches them as the cursor's new
// children.
func (t *Tree[K, V]) splay(k K) {
	if t.root == nil {
		return
	}

	var leftTreeRoot, rightTreeRoot node[K, V]
	leftMax, rightMin := &leftTreeRoot, &rightTreeRoot
	cur := t.root

	for {
		c := compare(k, cur.key)
		switch {
		case c < 0:
			if cur.left == nil {
				break
			}
			if compare(k, cur.left.key) < 0 && cur.left.left != nil {
				// zig-zig: rotate right at cur.
				tl := cur.left
				cur.left = tl.right
				tl.right = cur
				cur = tl
				if cur.left == nil {
					break
				}
			}
			// Link cur under rightMin's left spine; cur and its right
			// subtree are greater than k, and less than every node
			// already linked there.
			rightMin.left = cur
			rightMin = cur
			cur = cur.left
			continue
		case c > 0:
			if cur.right == nil {
				break
			}
			if compare(k, cur.right.key) > 0 && cur.right.right != nil {
				// zig-zig: rotate left at cur.
				tr := cur.right
				cur.right = tr.left
				tr.left = cur
				cur = tr
				if cur.right == nil {
					break
				}
			}
			leftMax.right = cur
			leftMax = cur
			cur = cur.right
			continue
		default:
			// Found it.
		}
		break
	}

	// Reassemble: cur's leftover children slot onto the spines, then the
	// spines become cur's new children.
	leftMax.right = cur.left
	rightMin.left = cur.right
	cur.left = leftTreeRoot.right
	cur.right = rightTreeRoot.left
	t.root = cur
}

// Insert adds or overwrites the entry for k. If k was already present, its
// previous value is returned and replaced is true; the size of the tree is
// unchanged. Otherwise a new node is created, replaced is false, and if a
// maxSize bound is configured and the tree now exceeds it, Prune runs
// repeatedly until the bound is satisfied.
func (t *Tree[K, V]) Insert(k K, v V) (prev V, replaced bool) {
	if t.root == nil {
		t.root = &node[K, V]{key: k, value: v}
		t.size = 1
		t.enforceBoundAfterGrowth()
		return prev, false
	}

	t.splay(k)
	switch compare(k, t.root.key) {
	case 0:
		prev = t.root.value
		t.root.value = v
		return prev, true
	case -1:
		n := &node[K, V]{key: k, value: v, left: t.root.left, right: t.root}
		t.root.left = nil
		t.root = n
	default:
		n := &node[K, V]{key: k, value: v, left: t.root, right: t.root.right}
		t.root.right = nil
		t.root = n
	}
	t.size++
	t.enforceBoundAfterGrowth()
	return prev, false
}

// enforceBoundAfterGrowth runs the bounded-size policy after an insert that
// grew the tree by one entry, leaving wasPruned set to whether a prune
// cycle ran.
func (t *Tree[K, V]) enforceBoundAfterGrowth() {
	if t.maxSize >= 0 && t.size > t.maxSize {
		t.enforceBound()
		t.wasPruned = true
	} else {
		t.wasPruned = false
	}
}

// Get looks up k, splaying the tree so that k (or its nearest in-order
// neighbor, if absent) becomes the new root.
func (t *Tree[K, V]) Get(k K) (v V, ok bool) {
	if t.root == nil {
		return v, false
	}
	t.splay(k)
	if compare(k, t.root.key) == 0 {
		return t.root.value, true
	}
	return v, false
}

// Obtain looks up k without splaying: a plain binary-search-tree descent
// that leaves the tree's shape untouched. It is faster per call than Get
// but forfeits the self-optimization that makes subsequent hot accesses to
// the same key cheap.
func (t *Tree[K, V]) Obtain(k K) (v V, ok bool) {
	n := t.root
	for n != nil {
		switch c := compare(k, n.key); {
		case c < 0:
			n = n.left
		case c > 0:
			n = n.right
		default:
			return n.value, true
		}
	}
	return v, false
}

// Delete removes the entry for k, if present, and returns its value.
func (t *Tree[K, V]) Delete(k K) (v V, ok bool) {
	if t.root == nil {
		return v, false
	}
	t.splay(k)
	if compare(k, t.root.key) != 0 {
		return v, false
	}

	d := t.root
	if d.left == nil {
		t.root = d.right
	} else {
		right := d.right
		t.root = d.left
		t.splayMax()
		t.root.right = right
	}
	t.size--
	return d.value, true
}

// splayMax splays the maximum key of the current tree to the root. The
// resulting root has no right child, by BST order.
func (t *Tree[K, V]) splayMax() {
	if t.root == nil {
		return
	}
	k, _ := t.Max()
	t.splay(k)
}

// Height returns the number of edges on the longest path from the root to
// a leaf, computed as a single bottom-up pass (no recursion-depth risk
// proportional to input size beyond the tree's own height). An empty tree
// has height 0.
func (t *Tree[K, V]) Height() int {
	if t.root == nil {
		return 0
	}
	return height(t.root)
}

func height[K Ordered, V any](n *node[K, V]) int {
	if n == nil {
		return -1
	}
	lh, rh := height(n.left), height(n.right)
	if lh > rh {
		return lh + 1
	}
	return rh + 1
}

// HeightOf returns the number of edges from the root to the node for k
// along a plain search path (no splay). ok is false if k is absent.
func (t *Tree[K, V]) HeightOf(k K) (depth int, ok bool) {
	n := t.root
	for n != nil {
		switch c := compare(k, n.key); {
		case c < 0:
			n = n.left
		case c > 0:
			n = n.right
		default:
			return depth, true
		}
		depth++
	}
	return 0, false
}

// Min returns the smallest key in the tree and its value. It does not
// splay.
func (t *Tree[K, V]) Min() (k K, v V) {
	n := t.root
	if n == nil {
		return k, v
	}
	for n.left != nil {
		n = n.left
	}
	return n.key, n.value
}

// Max returns the largest key in the tree and its value. It does not
// splay.
func (t *Tree[K, V]) Max() (k K, v V) {
	n := t.root
	if n == nil {
		return k, v
	}
	for n.right != nil {
		n = n.right
	}
	return n.key, n.value
}

// deepestPath walks down from the root, stepping into the taller subtree at
// each node (the right one on a tie), and returns the key of the leaf it
// reaches, which is a deepest leaf of the tree. ok is false on an empty
// tree. Used as the bounded-size policy's last-resort fallback when a prune
// pass removes nothing.
func (t *Tree[K, V]) deepestPath() (k K, ok bool) {
	n := t.root
	if n == nil {
		return k, false
	}
	for {
		lh, rh := height(n.left), height(n.right)
		switch {
		case lh < 0 && rh < 0:
			return n.key, true
		case rh >= lh:
			n = n.right
		default:
			n = n.left
		}
	}
}

// deleteDeepest removes the deepest leaf found by deepestPath.
// It guarantees strict progress for the bounded-size loop even when a
// Prune pass finds no leaf past its depth threshold.
func (t *Tree[K, V]) deleteDeepest() {
	k, ok := t.deepestPath()
	if !ok {
		return
	}
	if t.onPrune != nil {
		if v, found := t.Obtain(k); found {
			t.onPrune(k, v)
		}
	}
	t.Delete(k)
}
