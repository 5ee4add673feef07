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
	"fmt"
	"strings"
)

// SyntaxTree wraps the root element produced by a successful parse. Root
// may be nil for the empty-input shortcut of spec.md §4.1.
type SyntaxTree struct {
	Root SyntaxNodeElement
}

// NewSyntaxTree wraps root.
func NewSyntaxTree(root SyntaxNodeElement) *SyntaxTree {
	return &SyntaxTree{Root: root}
}

// IsEmpty reports whether this tree has no root (the empty-input case).
func (t *SyntaxTree) IsEmpty() bool {
	return t == nil || t.Root == nil
}

// Dump renders the whole tree for debugging.
func (t *SyntaxTree) Dump() string {
	if t.IsEmpty() {
		return "(empty)\n"
	}
	return t.Root.Dump("")
}

// Reconstruct concatenates the value of every Leaf in the tree, reflectable
// and non-reflectable alike, in depth-first emission order. Per spec.md
// §8's round-trip property, this equals the input up to the consumed
// prefix for any grammar and input where parse succeeded.
func (t *SyntaxTree) Reconstruct() (string, error) {
	if t.IsEmpty() {
		return "", nil
	}
	var b strings.Builder
	if err := reconstruct(t.Root, &b); err != nil {
		return "", err
	}
	return b.String(), nil
}

func reconstruct(e SyntaxNodeElement, b *strings.Builder) error {
	switch v := e.(type) {
	case *Leaf:
		b.WriteString(v.Value)
		return nil
	case *Node:
		for _, ch := range v.Children {
			if err := reconstruct(ch, b); err != nil {
				return err
			}
		}
		return nil
	default:
		return fmt.Errorf("cst: unknown SyntaxNodeElement type %T", e)
	}
}
