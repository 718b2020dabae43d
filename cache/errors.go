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

import "github.com/pkg/errors"

// ErrKeyNotFound is returned by the hard-fail lookup path, ValuesAt, when a
// requested key is absent. Dig reports a missing segment with
// ErrDigPathNotFound instead. Soft lookups (Get, ContainsKey, GetWithoutSplay) report absence through
// their ok bool instead.
var ErrKeyNotFound = errors.New("cache: key not found")

// ErrDigPathNotFound is returned by Dig when a path segment has no matching
// entry.
var ErrDigPathNotFound = errors.New("cache: dig path not found")

// ErrDigInvalidSegment is returned by Dig when a path segment is not of the
// key type of the cache it is looked up in, or when segments remain after a
// value that is not diggable (neither a value with a Dig method, such as a
// *Cache, nor a map[any]any).
var ErrDigInvalidSegment = errors.New("cache: dig segment is not diggable")

// wrapKeyNotFound annotates ErrKeyNotFound with the offending key so callers
// get both a stable sentinel (via errors.Is) and a readable message.
func wrapKeyNotFound(k any) error {
	return errors.Wrapf(ErrKeyNotFound, "key %v", k)
}
