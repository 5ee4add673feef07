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

// Package cst implements the concrete syntax tree model of spec.md §3: a
// tagged Node/Leaf variant (SyntaxNodeElement) carrying an ASTReflectionStyle
// that the AST-shaping rules in package evaluator consult when attaching an
// element to its parent.
package cst

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/FunCobal-family/fcpeg/position"
)

// SyntaxNodeElement is the tagged variant of spec.md §3: either a Node or
// a Leaf. Every element has a stable unique id, used only for diagnostics
// and the Dump view, never for equality or lookup.
type SyntaxNodeElement interface {
	// UUID returns this element's stable identity.
	UUID() string
	// GetReflection returns the element's current AST-reflection style.
	// A node's reflection applies only at the moment it is attached to a
	// parent; see spec.md §3's invariant.
	GetReflection() Reflection
	// SetReflection replaces the element's AST-reflection style.
	SetReflection(Reflection)
	// IsReflectable reports whether this element is visible in the AST
	// view of the tree.
	IsReflectable() bool
	// GetPosition returns the position of the first leaf reachable from
	// this element, or the empty sentinel if none exists (e.g. an empty
	// Node).
	GetPosition() position.CharacterPosition
	// Clone makes a shallow copy: a Node's Children slice is copied but
	// its elements are shared; a Leaf copy is always deep since it is
	// immutable value data.
	Clone() SyntaxNodeElement
	// DeepClone recursively copies the whole subtree.
	DeepClone() SyntaxNodeElement
	// Dump renders the element and its subtree for debugging, one line
	// per element, prefixed with indent.
	Dump(indent string) string
}

// Node is a SyntaxNodeElement holding an ordered sequence of children.
// Children preserve match order.
type Node struct {
	id          string
	Children    []SyntaxNodeElement
	Reflection_ Reflection
}

// NewNode creates a Node with a fresh uuid and the given children and
// reflection style.
func NewNode(children []SyntaxNodeElement, reflection Reflection) *Node {
	return &Node{id: uuid.NewString(), Children: children, Reflection_: reflection}
}

// UUID implements SyntaxNodeElement.
func (n *Node) UUID() string { return n.id }

// GetReflection implements SyntaxNodeElement.
func (n *Node) GetReflection() Reflection { return n.Reflection_ }

// SetReflection implements SyntaxNodeElement.
func (n *Node) SetReflection(r Reflection) { n.Reflection_ = r }

// IsReflectable implements SyntaxNodeElement.
func (n *Node) IsReflectable() bool { return n.Reflection_.IsReflectable() }

// GetPosition implements SyntaxNodeElement: the position of this node's
// first descendant leaf, searched depth-first.
func (n *Node) GetPosition() position.CharacterPosition {
	for _, ch := range n.Children {
		p := ch.GetPosition()
		if !p.IsEmpty() {
			return p
		}
	}
	return position.CharacterPosition{}
}

// Clone implements SyntaxNodeElement: a new Node sharing child elements.
func (n *Node) Clone() SyntaxNodeElement {
	children := make([]SyntaxNodeElement, len(n.Children))
	copy(children, n.Children)
	return &Node{id: n.id, Children: children, Reflection_: n.Reflection_}
}

// DeepClone implements SyntaxNodeElement.
func (n *Node) DeepClone() SyntaxNodeElement {
	children := make([]SyntaxNodeElement, len(n.Children))
	for i, ch := range n.Children {
		children[i] = ch.DeepClone()
	}
	return &Node{id: n.id, Children: children, Reflection_: n.Reflection_}
}

// FindFirstChildNode returns the first direct child that is a *Node,
// skipping Leaves.
func (n *Node) FindFirstChildNode() (*Node, bool) {
	for _, ch := range n.Children {
		if cn, ok := ch.(*Node); ok {
			return cn, true
		}
	}
	return nil, false
}

// FindChildNodes returns every direct child that is a *Node, in order.
func (n *Node) FindChildNodes() []*Node {
	var r []*Node
	for _, ch := range n.Children {
		if cn, ok := ch.(*Node); ok {
			r = append(r, cn)
		}
	}
	return r
}

// GetChildAt returns the index-th reflectable child, honoring the
// invariant that indices are counted only over visible (reflectable)
// children — matching the original tree's get_child_at.
func (n *Node) GetChildAt(index int) (SyntaxNodeElement, bool) {
	count := 0
	for _, ch := range n.Children {
		if !ch.IsReflectable() {
			continue
		}
		if count == index {
			return ch, true
		}
		count++
	}
	return nil, false
}

// Dump implements SyntaxNodeElement.
func (n *Node) Dump(indent string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%sNode %s %s\n", indent, shortUUID(n.id), reflectionLabel(n.Reflection_))
	for _, ch := range n.Children {
		b.WriteString(ch.Dump(indent + "  "))
	}
	return b.String()
}

// Leaf is a SyntaxNodeElement holding the literal text matched at a
// position. Leaves are immutable once created.
type Leaf struct {
	id          string
	Position    position.CharacterPosition
	Value       string
	Reflection_ Reflection
}

// NewLeaf creates a Leaf with a fresh uuid.
func NewLeaf(pos position.CharacterPosition, value string, reflection Reflection) *Leaf {
	return &Leaf{id: uuid.NewString(), Position: pos, Value: value, Reflection_: reflection}
}

// UUID implements SyntaxNodeElement.
func (l *Leaf) UUID() string { return l.id }

// GetReflection implements SyntaxNodeElement.
func (l *Leaf) GetReflection() Reflection { return l.Reflection_ }

// SetReflection implements SyntaxNodeElement.
func (l *Leaf) SetReflection(r Reflection) { l.Reflection_ = r }

// IsReflectable implements SyntaxNodeElement.
func (l *Leaf) IsReflectable() bool { return l.Reflection_.IsReflectable() }

// GetPosition implements SyntaxNodeElement.
func (l *Leaf) GetPosition() position.CharacterPosition { return l.Position }

// Clone implements SyntaxNodeElement.
func (l *Leaf) Clone() SyntaxNodeElement {
	cp := *l
	return &cp
}

// DeepClone implements SyntaxNodeElement. A Leaf has no substructure, so
// this is identical to Clone.
func (l *Leaf) DeepClone() SyntaxNodeElement {
	return l.Clone()
}

// Dump implements SyntaxNodeElement.
func (l *Leaf) Dump(indent string) string {
	return fmt.Sprintf("%sLeaf %s %s %q @%s\n", indent, shortUUID(l.id), reflectionLabel(l.Reflection_), l.Value, l.Position)
}

func shortUUID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func reflectionLabel(r Reflection) string {
	switch r.Kind {
	case KindReflection:
		if r.Name == "" {
			return "Reflection()"
		}
		return fmt.Sprintf("Reflection(%s)", r.Name)
	case KindExpansion:
		return "Expansion"
	default:
		return "NoReflection"
	}
}

// JoinLeafValues implements the JOIN primitive's concatenation rule
// (spec.md §4.10): concatenate the string values of every reflectable
// descendant leaf reachable from elems, recursing into reflectable child
// Nodes and contributing nothing for non-reflectable elements (their
// entire subtree is skipped).
func JoinLeafValues(elems []SyntaxNodeElement) string {
	var b strings.Builder
	for _, e := range elems {
		b.WriteString(joinElem(e))
	}
	return b.String()
}

func joinElem(e SyntaxNodeElement) string {
	if !e.IsReflectable() {
		return ""
	}
	switch v := e.(type) {
	case *Leaf:
		return v.Value
	case *Node:
		var b strings.Builder
		for _, ch := range v.Children {
			b.WriteString(joinElem(ch))
		}
		return b.String()
	default:
		return ""
	}
}
