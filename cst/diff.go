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

import "fmt"

// Diff compares two SyntaxNodeElement subtrees for test assertions,
// reporting every mismatch found rather than stopping at the first. Node
// uuids are never compared, since they are identity, not content.
func Diff(got, want SyntaxNodeElement) (diff []string) {
	if got == nil && want == nil {
		return nil
	}
	if got == nil {
		diff = append(diff, fmt.Sprintf("Expected %s, got nil", describe(want)))
		return
	}
	if want == nil {
		diff = append(diff, fmt.Sprintf("Expected nil, got %s", describe(got)))
		return
	}
	if want.GetReflection() != got.GetReflection() {
		diff = append(diff, fmt.Sprintf("Expected reflection %s, got %s", reflectionLabel(want.GetReflection()), reflectionLabel(got.GetReflection())))
	}

	wantLeaf, wantIsLeaf := want.(*Leaf)
	gotLeaf, gotIsLeaf := got.(*Leaf)
	wantNode, wantIsNode := want.(*Node)
	gotNode, gotIsNode := got.(*Node)

	if wantIsLeaf != gotIsLeaf {
		diff = append(diff, fmt.Sprintf("Expected %s, got %s", describe(want), describe(got)))
		return
	}
	if wantIsLeaf {
		if gotLeaf.Value != wantLeaf.Value {
			diff = append(diff, fmt.Sprintf("Expected leaf value %q, got %q", wantLeaf.Value, gotLeaf.Value))
		}
		return
	}
	if !wantIsNode || !gotIsNode {
		return
	}
	if len(gotNode.Children) != len(wantNode.Children) {
		diff = append(diff, fmt.Sprintf("Expected %d children got %d", len(wantNode.Children), len(gotNode.Children)))
	}
	n := len(gotNode.Children)
	if len(wantNode.Children) < n {
		n = len(wantNode.Children)
	}
	for i := 0; i < n; i++ {
		diff = append(diff, Diff(gotNode.Children[i], wantNode.Children[i])...)
	}
	return
}

func describe(e SyntaxNodeElement) string {
	switch v := e.(type) {
	case *Leaf:
		return fmt.Sprintf("Leaf(%q)", v.Value)
	case *Node:
		return fmt.Sprintf("Node(%d children)", len(v.Children))
	default:
		return "(nil)"
	}
}
