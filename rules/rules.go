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

// Package rules defines the immutable rule-graph data model that the
// evaluator consumes (spec.md §3). Nothing in this package parses grammar
// source text — a RuleMap is built by an external grammar compiler and
// handed to evaluator.Parse as read-only input.
package rules

import (
	"math"

	"github.com/google/uuid"

	"github.com/FunCobal-family/fcpeg/cst"
)

// Join is the one built-in primitive rule name spec.md §6 requires
// PrimitiveRuleNames to contain. It flattens a matched subtree's
// reflectable leaf text into a single Leaf (spec.md §4.10).
const Join = "JOIN"

// PrimitiveRuleNames enumerates rule ids implemented directly by the
// evaluator rather than resolved through a RuleMap entry.
var PrimitiveRuleNames = map[string]bool{
	Join: true,
}

// Infinity is the sentinel LoopRange.Max value meaning "unbounded".
// Serialized form (spec.md §3) uses -1 for the same concept; callers
// building a RuleMap externally should map -1 to Infinity at the
// boundary.
const Infinity = math.MaxInt

// LoopRange is (min, max) repetition bounds. Invariant: Min <= Max (unless
// Max is Infinity).
type LoopRange struct {
	Min int
	Max int
}

// Once is the LoopRange of an element that must match exactly once.
var Once = LoopRange{Min: 1, Max: 1}

// ZeroOrOne is the LoopRange of an optional element ("?").
var ZeroOrOne = LoopRange{Min: 0, Max: 1}

// ZeroOrMore is the LoopRange of a Kleene-star element ("*").
var ZeroOrMore = LoopRange{Min: 0, Max: Infinity}

// OneOrMore is the LoopRange of a Kleene-plus element ("+").
var OneOrMore = LoopRange{Min: 1, Max: Infinity}

// Valid reports whether this range satisfies Min <= Max.
func (r LoopRange) Valid() bool {
	return r.Max == Infinity || r.Min <= r.Max
}

// RuleGroupKind distinguishes ordered-choice groups from sequence groups.
type RuleGroupKind int

const (
	// Sequence requires every sub-element to match, in order.
	Sequence RuleGroupKind = iota
	// Choice requires exactly one alternative sub-group to match, tried
	// top to bottom.
	Choice
)

// RuleElementOrder selects between declaration-order matching and the
// unordered Random group algorithm (spec.md §4.6).
type RuleElementOrder int

const (
	// Sequential matches sub-elements in declaration order.
	Sequential RuleElementOrder = iota
	// Random matches every alternative of a single child Group exactly
	// once, trying alternatives left to right within each pass but
	// allowing them to succeed in any order across passes.
	Random
)

// LookaheadKind selects whether a group or expression is a zero-width
// assertion, and if so, in which polarity.
type LookaheadKind int

const (
	// NoLookahead means the element consumes input normally.
	NoLookahead LookaheadKind = iota
	// Positive succeeds (without consuming) iff the inner match would
	// succeed.
	Positive
	// Negative succeeds (without consuming) iff the inner match would
	// fail.
	Negative
)

// RuleGroup is a Choice or Sequence node of the rule graph (spec.md §3).
// Groups are the only rule-graph elements eligible for memoization.
type RuleGroup struct {
	ID              string
	Kind            RuleGroupKind
	ElemOrder       RuleElementOrder
	LoopRange       LoopRange
	LookaheadKind   LookaheadKind
	Reflection      cst.Reflection
	SubElems        []RuleElement
}

// NewGroup builds a RuleGroup with a fresh uuid, Sequential order, and
// Once loop range. Use the With* helpers to customize it.
func NewGroup(kind RuleGroupKind, subElems ...RuleElement) *RuleGroup {
	return &RuleGroup{
		ID:            uuid.NewString(),
		Kind:          kind,
		ElemOrder:     Sequential,
		LoopRange:     Once,
		LookaheadKind: NoLookahead,
		Reflection:    cst.NoReflection,
		SubElems:      subElems,
	}
}

// WithLoopRange sets the group's loop range and returns it for chaining.
func (g *RuleGroup) WithLoopRange(r LoopRange) *RuleGroup {
	g.LoopRange = r
	return g
}

// WithElemOrder sets the group's element order and returns it for
// chaining.
func (g *RuleGroup) WithElemOrder(o RuleElementOrder) *RuleGroup {
	g.ElemOrder = o
	return g
}

// WithLookahead sets the group's lookahead kind and returns it for
// chaining.
func (g *RuleGroup) WithLookahead(k LookaheadKind) *RuleGroup {
	g.LookaheadKind = k
	return g
}

// WithReflection sets the group's reflection style and returns it for
// chaining.
func (g *RuleGroup) WithReflection(r cst.Reflection) *RuleGroup {
	g.Reflection = r
	return g
}

// RuleElement is the Group(RuleGroup) | Expression(RuleExpression)
// variant of spec.md §3. Exactly one of Group/Expr is non-nil.
type RuleElement struct {
	Group *RuleGroup
	Expr  *RuleExpression
}

// GroupElem wraps a RuleGroup as a RuleElement.
func GroupElem(g *RuleGroup) RuleElement {
	return RuleElement{Group: g}
}

// ExprElem wraps a RuleExpression as a RuleElement.
func ExprElem(e *RuleExpression) RuleElement {
	return RuleElement{Expr: e}
}

// IsGroup reports whether this element wraps a RuleGroup.
func (e RuleElement) IsGroup() bool { return e.Group != nil }

// RuleExpressionKind selects which kind of terminal/reference expression
// a RuleExpression is.
type RuleExpressionKind int

const (
	// String matches a literal substring.
	String RuleExpressionKind = iota
	// CharClass matches one code point against a compiled regex.
	CharClass
	// Wildcard matches any single code point.
	Wildcard
	// ID references another rule by id.
	ID
	// IDWithArgs is a parameterized rule reference (generics/template
	// call, or the JOIN primitive).
	IDWithArgs
	// ArgID references a generics argument bound in the current
	// argument-scope stack frame.
	ArgID
)

// RuleExpression is a terminal or rule-reference leaf of the rule graph
// (spec.md §3).
type RuleExpression struct {
	Pos           int
	Value         string
	Kind          RuleExpressionKind
	LoopRange     LoopRange
	LookaheadKind LookaheadKind
	Reflection    cst.Reflection

	// GenericsArgs and TemplateArgs are populated only when Kind ==
	// IDWithArgs: the actual argument groups passed at this call site,
	// positional, matching GenericsArgIDs/TemplateArgIDs of the callee's
	// RuleData.
	GenericsArgs []*RuleGroup
	TemplateArgs []*RuleGroup
}

// NewExpr builds a RuleExpression with Once loop range, no lookahead, and
// Reflection("").
func NewExpr(kind RuleExpressionKind, value string) *RuleExpression {
	return &RuleExpression{
		Kind:          kind,
		Value:         value,
		LoopRange:     Once,
		LookaheadKind: NoLookahead,
		Reflection:    cst.Reflect(""),
	}
}

// WithLoopRange sets the expression's loop range and returns it for
// chaining.
func (e *RuleExpression) WithLoopRange(r LoopRange) *RuleExpression {
	e.LoopRange = r
	return e
}

// WithLookahead sets the expression's lookahead kind and returns it for
// chaining.
func (e *RuleExpression) WithLookahead(k LookaheadKind) *RuleExpression {
	e.LookaheadKind = k
	return e
}

// WithReflection sets the expression's reflection style and returns it
// for chaining.
func (e *RuleExpression) WithReflection(r cst.Reflection) *RuleExpression {
	e.Reflection = r
	return e
}

// RuleData is one RuleMap entry: the rule's top-level group plus the
// formal parameter ids it accepts when invoked via IdWithArgs.
type RuleData struct {
	Group           *RuleGroup
	GenericsArgIDs  []string
	TemplateArgIDs  []string
}

// RuleMap is the immutable, externally-supplied grammar representation
// (spec.md §3). The zero value is not usable; build one with NewRuleMap.
type RuleMap struct {
	Rules       map[string]*RuleData
	StartRuleID string
	StartRulePos int
}

// NewRuleMap builds an empty RuleMap for startRuleID.
func NewRuleMap(startRuleID string) *RuleMap {
	return &RuleMap{Rules: make(map[string]*RuleData), StartRuleID: startRuleID}
}

// Add registers a rule under id.
func (m *RuleMap) Add(id string, data *RuleData) {
	m.Rules[id] = data
}

// Lookup returns the RuleData for id, and whether it was found.
func (m *RuleMap) Lookup(id string) (*RuleData, bool) {
	d, ok := m.Rules[id]
	return d, ok
}
