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

// ReflectionKind tags which of the three AST-reflection styles a
// Reflection value carries. See spec.md §3.
type ReflectionKind int

const (
	// KindReflection marks an element visible in the AST, under Name (or
	// under the owning rule's id, when Name is empty).
	KindReflection ReflectionKind = iota
	// KindNoReflection marks an element present in the CST but hidden
	// from AST traversal.
	KindNoReflection
	// KindExpansion marks an element whose children are spliced in place
	// of the element itself when it is attached to a parent.
	KindExpansion
)

// Reflection is the ASTReflectionStyle tagged variant of spec.md §3. The
// zero value is KindReflection with an empty Name, i.e. "use the rule id".
type Reflection struct {
	Kind ReflectionKind
	Name string
}

// Reflect returns a Reflection(name) value. An empty name means "use the
// owning rule id", resolved by id-reflection shaping (spec.md §4.9).
func Reflect(name string) Reflection {
	return Reflection{Kind: KindReflection, Name: name}
}

// NoReflection is the singleton "hidden from the AST" style.
var NoReflection = Reflection{Kind: KindNoReflection}

// Expansion is the singleton "splice my children into my parent" style.
var Expansion = Reflection{Kind: KindExpansion}

// IsReflectable reports whether an element carrying this style is visible
// in the AST view of the tree (KindReflection or KindExpansion; only
// KindNoReflection hides an element).
func (r Reflection) IsReflectable() bool {
	return r.Kind != KindNoReflection
}

// IsExpandable reports whether an element carrying this style splices its
// children into its parent instead of attaching itself.
func (r Reflection) IsExpandable() bool {
	return r.Kind == KindExpansion
}

// IsAnonymousReflection reports whether this is Reflection("") — the
// "use the rule id" placeholder that id-reflection shaping resolves.
func (r Reflection) IsAnonymousReflection() bool {
	return r.Kind == KindReflection && r.Name == ""
}
