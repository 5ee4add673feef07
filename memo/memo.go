// Copyright 2019 Google LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package memo implements the packrat memoization cache of spec.md §3: a
// map from (group uuid, start index) to (consumed length, cached
// children), scoped to the lifetime of one parse call. Only groups are
// memoized, never expressions.
package memo

import "github.com/FunCobal-family/fcpeg/cst"

type key struct {
	groupID string
	pos     int
}

// Entry is one cached match result: how many code points it consumed,
// and the children it produced.
type Entry struct {
	Length   int
	Children []cst.SyntaxNodeElement
}

// Map is the packrat cache for a single parse call. The zero value is an
// empty, usable cache.
type Map struct {
	entries map[key]Entry
}

// Get looks up a cached result for (groupID, pos).
func (m *Map) Get(groupID string, pos int) (Entry, bool) {
	if m.entries == nil {
		return Entry{}, false
	}
	e, ok := m.entries[key{groupID, pos}]
	return e, ok
}

// Put records a result for (groupID, pos). Per spec.md §4.3, the
// evaluator only calls this when the cursor advanced past pos — a
// zero-length match is not worth caching and the spec explicitly gates
// storage on "only if the cursor advanced".
func (m *Map) Put(groupID string, pos int, e Entry) {
	if m.entries == nil {
		m.entries = make(map[key]Entry)
	}
	m.entries[key{groupID, pos}] = e
}
