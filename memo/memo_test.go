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

package memo

import "testing"

func TestMapGetMiss(t *testing.T) {
	var m Map
	if _, ok := m.Get("g1", 0); ok {
		t.Errorf("Get on empty map = found, want not found")
	}
}

func TestMapPutGet(t *testing.T) {
	var m Map
	m.Put("g1", 3, Entry{Length: 2})
	got, ok := m.Get("g1", 3)
	if !ok || got.Length != 2 {
		t.Errorf("Get(g1, 3) = (%v, %v), want (Length:2, true)", got, ok)
	}
	if _, ok := m.Get("g1", 4); ok {
		t.Errorf("Get(g1, 4) = found, want not found (different position)")
	}
	if _, ok := m.Get("g2", 3); ok {
		t.Errorf("Get(g2, 3) = found, want not found (different group)")
	}
}
