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

package cst

import (
	"testing"

	"github.com/FunCobal-family/fcpeg/position"
)

func TestNodeGetChildAtSkipsNonReflectable(t *testing.T) {
	a := NewLeaf(position.CharacterPosition{}, "a", Reflect(""))
	ws := NewLeaf(position.CharacterPosition{Index: 1}, " ", NoReflection)
	b := NewLeaf(position.CharacterPosition{Index: 2}, "b", Reflect(""))
	n := NewNode([]SyntaxNodeElement{a, ws, b}, Reflect("S"))

	got, ok := n.GetChildAt(1)
	if !ok {
		t.Fatalf("GetChildAt(1) = not found, want b")
	}
	if leaf, ok := got.(*Leaf); !ok || leaf.Value != "b" {
		t.Errorf("GetChildAt(1) = %v, want leaf \"b\"", got)
	}
}

func TestNodeCloneSharesChildren(t *testing.T) {
	leaf := NewLeaf(position.CharacterPosition{}, "x", Reflect(""))
	n := NewNode([]SyntaxNodeElement{leaf}, Reflect("S"))
	clone := n.Clone().(*Node)
	if clone.UUID() != n.UUID() {
		t.Errorf("Clone() changed uuid: got %s, want %s", clone.UUID(), n.UUID())
	}
	if clone.Children[0] != n.Children[0] {
		t.Errorf("Clone() should share child elements, got distinct pointers")
	}
}

func TestNodeDeepCloneCopiesChildren(t *testing.T) {
	leaf := NewLeaf(position.CharacterPosition{}, "x", Reflect(""))
	n := NewNode([]SyntaxNodeElement{leaf}, Reflect("S"))
	clone := n.DeepClone().(*Node)
	if clone.Children[0] == n.Children[0] {
		t.Errorf("DeepClone() should copy child elements, got shared pointer")
	}
	if clone.Children[0].(*Leaf).Value != "x" {
		t.Errorf("DeepClone() lost leaf value")
	}
}

func TestJoinLeafValues(t *testing.T) {
	tests := []struct {
		name  string
		elems []SyntaxNodeElement
		want  string
	}{
		{
			name: "flat reflectable leaves",
			elems: []SyntaxNodeElement{
				NewLeaf(position.CharacterPosition{}, "a", Reflect("")),
				NewLeaf(position.CharacterPosition{}, "a", Reflect("")),
				NewLeaf(position.CharacterPosition{}, "b", Reflect("")),
			},
			want: "aab",
		},
		{
			name: "non-reflectable leaf contributes nothing",
			elems: []SyntaxNodeElement{
				NewLeaf(position.CharacterPosition{}, "a", Reflect("")),
				NewLeaf(position.CharacterPosition{}, " ", NoReflection),
				NewLeaf(position.CharacterPosition{}, "b", Reflect("")),
			},
			want: "ab",
		},
		{
			name: "non-reflectable node skips its whole subtree",
			elems: []SyntaxNodeElement{
				NewLeaf(position.CharacterPosition{}, "a", Reflect("")),
				NewNode([]SyntaxNodeElement{
					NewLeaf(position.CharacterPosition{}, "skip-me", Reflect("")),
				}, NoReflection),
				NewLeaf(position.CharacterPosition{}, "b", Reflect("")),
			},
			want: "ab",
		},
		{
			name: "reflectable node recurses into its own children",
			elems: []SyntaxNodeElement{
				NewNode([]SyntaxNodeElement{
					NewLeaf(position.CharacterPosition{}, "a", Reflect("")),
					NewLeaf(position.CharacterPosition{}, "b", Reflect("")),
				}, Reflect("Inner")),
			},
			want: "ab",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := JoinLeafValues(tt.elems); got != tt.want {
				t.Errorf("JoinLeafValues() = %q, want %q", got, tt.want)
			}
		})
	}
}
