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

import "cmp"

// Ordered constrains the key type of a Tree to types that admit a total
// order under <, ==, and >. The engine never falls back to a user-supplied
// comparator; it assumes, as the base algorithm requires, that the order is
// well-defined and consistent.
type Ordered = cmp.Ordered

// compare returns -1, 0, or +1 according to whether a is less than, equal
// to, or greater than b.
func compare[K Ordered](a, b K) int {
	return cmp.Compare(a, b)
}
