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

package evaluator

import (
	log "github.com/golang/glog"

	"github.com/FunCobal-family/fcpeg/cst"
	"github.com/FunCobal-family/fcpeg/diag"
)

// matchRule implements spec.md §4.2. It resolves ruleID through the rule
// map, pushes a rule-stack frame for diagnostics, and delegates to
// matchGroup. Unlike the reference implementation, the rule stack is
// popped on every exit path, not only on success (spec.md §9, "Rule-stack
// pop on failure").
func (e *evaluator) matchRule(ruleID string, callSitePos int) (cst.SyntaxNodeElement, bool, error) {
	if e.options.RecursionLimit > 0 && e.recursionDepth >= e.options.RecursionLimit {
		return nil, false, e.fail(diag.Diagnostic{Kind: diag.TooDeepRecursion, RecursionLimit: e.options.RecursionLimit})
	}
	e.recursionDepth++
	defer func() { e.recursionDepth-- }()

	data, ok := e.rules.Lookup(ruleID)
	if !ok {
		return nil, false, e.fail(diag.Diagnostic{Kind: diag.UnknownRuleID, RuleID: ruleID, GrammarPos: callSitePos})
	}

	log.V(6).Infof("matchRule %q at rune %d", ruleID, e.pos.Cursor())
	e.ruleStack = append(e.ruleStack, diag.RuleFrame{Pos: e.pos.Position(), RuleID: ruleID})
	pop := func() { e.ruleStack = e.ruleStack[:len(e.ruleStack)-1] }

	children, ok, err := e.matchGroup(data.Group)
	if err != nil {
		pop()
		return nil, false, err
	}
	if !ok {
		pop()
		return nil, false, nil
	}

	reflection := data.Group.Reflection
	if len(data.Group.SubElems) > 0 && data.Group.SubElems[0].IsGroup() {
		reflection = data.Group.SubElems[0].Group.Reflection
	}
	if reflection.IsAnonymousReflection() {
		reflection = cst.Reflect(ruleID)
	}
	pop()
	return cst.NewNode(children, reflection), true, nil
}

// shapeIDReflection implements the id-reflection shaping of spec.md §4.9,
// applied after a successful match_rule (via an Id or IdWithArgs
// expression). elem is always a *cst.Node in this module since matchRule
// never returns a bare Leaf, but the Leaf branch is kept to match the
// general shape the spec describes.
func (e *evaluator) shapeIDReflection(elem cst.SyntaxNodeElement, exprReflection cst.Reflection, exprValue string) []cst.SyntaxNodeElement {
	if leaf, ok := elem.(*cst.Leaf); ok {
		return []cst.SyntaxNodeElement{leaf}
	}
	n := elem.(*cst.Node)
	reflection := exprReflection
	if reflection.IsAnonymousReflection() {
		reflection = cst.Reflect(exprValue)
	}
	reshaped := cst.NewNode(n.Children, reflection)
	if reflection.IsExpandable() {
		return reshaped.Children
	}
	return []cst.SyntaxNodeElement{reshaped}
}
