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
	"github.com/FunCobal-family/fcpeg/argscope"
	"github.com/FunCobal-family/fcpeg/cst"
	"github.com/FunCobal-family/fcpeg/diag"
	"github.com/FunCobal-family/fcpeg/rules"
)

// matchExpr applies the same lookahead and loop wrappers that matchGroup
// applies to groups (spec.md §4.8), around matchExprCore.
func (e *evaluator) matchExpr(expr *rules.RuleExpression) ([]cst.SyntaxNodeElement, bool, error) {
	return e.matchExprLookahead(expr)
}

func (e *evaluator) matchExprLookahead(expr *rules.RuleExpression) ([]cst.SyntaxNodeElement, bool, error) {
	if expr.LookaheadKind == rules.NoLookahead {
		return e.matchExprLoop(expr)
	}
	saved := e.pos.Snapshot()
	_, ok, err := e.matchExprLoop(expr)
	e.pos.Restore(saved)
	if err != nil {
		return nil, false, err
	}
	positive := expr.LookaheadKind == rules.Positive
	if ok == positive {
		return []cst.SyntaxNodeElement{}, true, nil
	}
	return nil, false, nil
}

func (e *evaluator) matchExprLoop(expr *rules.RuleExpression) ([]cst.SyntaxNodeElement, bool, error) {
	if !expr.LoopRange.Valid() {
		return nil, false, e.fail(diag.Diagnostic{Kind: diag.InvalidLoopRange, Message: "min must not exceed max"})
	}
	min, max := expr.LoopRange.Min, expr.LoopRange.Max
	entry := e.pos.Snapshot()

	var children []cst.SyntaxNodeElement
	count := 0
	for {
		if e.atEnd() {
			break
		}
		if count >= e.options.LoopLimit {
			return nil, false, e.fail(diag.Diagnostic{Kind: diag.TooLongRepetition, LoopLimit: e.options.LoopLimit})
		}
		elems, ok, err := e.matchExprCore(expr)
		if err != nil {
			return nil, false, err
		}
		if !ok {
			break
		}
		children = appendNonEmpty(children, elems...)
		count++
		if max != rules.Infinity && count == max {
			return children, true, nil
		}
	}
	if count >= min && (max == rules.Infinity || count <= max) {
		return children, true, nil
	}
	e.pos.Restore(entry)
	return nil, false, nil
}

// matchExprCore implements the per-kind behavior table of spec.md §4.8.
func (e *evaluator) matchExprCore(expr *rules.RuleExpression) ([]cst.SyntaxNodeElement, bool, error) {
	if e.atEnd() {
		return nil, false, nil
	}

	switch expr.Kind {
	case rules.String:
		val := []rune(expr.Value)
		if !e.hasPrefixAt(e.pos.Cursor(), val) {
			return nil, false, nil
		}
		leaf := cst.NewLeaf(e.pos.Position(), expr.Value, expr.Reflection)
		e.pos.Advance(expr.Value)
		return []cst.SyntaxNodeElement{leaf}, true, nil

	case rules.CharClass:
		re, err := e.regex.Compile(expr.Value)
		if err != nil {
			return nil, false, e.fail(diag.Diagnostic{Kind: diag.InvalidCharClassFormat, Value: expr.Value})
		}
		ch := e.runeAt(e.pos.Cursor())
		if !re.MatchString(ch) {
			return nil, false, nil
		}
		leaf := cst.NewLeaf(e.pos.Position(), ch, expr.Reflection)
		e.pos.Advance(ch)
		return []cst.SyntaxNodeElement{leaf}, true, nil

	case rules.Wildcard:
		ch := e.runeAt(e.pos.Cursor())
		leaf := cst.NewLeaf(e.pos.Position(), ch, expr.Reflection)
		e.pos.Advance(ch)
		return []cst.SyntaxNodeElement{leaf}, true, nil

	case rules.ID:
		n, ok, err := e.matchRule(expr.Value, expr.Pos)
		if err != nil || !ok {
			return nil, false, err
		}
		return e.shapeIDReflection(n, expr.Reflection, expr.Value), true, nil

	case rules.IDWithArgs:
		return e.matchIDWithArgs(expr)

	case rules.ArgID:
		return e.matchArgID(expr)

	default:
		return nil, false, e.fail(diag.Diagnostic{Kind: diag.UnknownRuleID, RuleID: expr.Value})
	}
}

// matchArgID implements spec.md §4.8's ArgId row: resolve through the
// argument-scope stack, top-down, then match the bound group.
func (e *evaluator) matchArgID(expr *rules.RuleExpression) ([]cst.SyntaxNodeElement, bool, error) {
	bound, ok := e.args.LookupGenerics(expr.Value)
	if !ok {
		return nil, false, e.fail(diag.Diagnostic{Kind: diag.UnknownGenericsArgumentID, Value: expr.Value, GrammarPos: expr.Pos})
	}
	argGroup := bound.(*rules.RuleGroup)
	v, ok, err := e.matchGroup(argGroup)
	if err != nil || !ok {
		return nil, false, err
	}
	if !expr.Reflection.IsReflectable() && len(v) > 0 {
		v[0].SetReflection(expr.Reflection)
	}
	return v, true, nil
}

// matchIDWithArgs implements spec.md §4.10: the JOIN primitive, and
// parameterized rule invocation via a fresh argument-scope frame.
func (e *evaluator) matchIDWithArgs(expr *rules.RuleExpression) ([]cst.SyntaxNodeElement, bool, error) {
	if expr.Value == rules.Join {
		return e.matchJoin(expr)
	}

	if rules.PrimitiveRuleNames[expr.Value] {
		return nil, false, e.fail(diag.Diagnostic{Kind: diag.UncoveredPrimitiveRule, RuleID: expr.Value, GrammarPos: expr.Pos})
	}
	data, ok := e.rules.Lookup(expr.Value)
	if !ok {
		return nil, false, e.fail(diag.Diagnostic{Kind: diag.UnknownRuleID, RuleID: expr.Value, GrammarPos: expr.Pos})
	}
	if len(expr.GenericsArgs) != len(data.GenericsArgIDs) {
		return nil, false, e.fail(diag.Diagnostic{Kind: diag.InvalidGenericsArgumentLength, Expected: len(data.GenericsArgIDs), GrammarPos: expr.Pos})
	}
	if len(expr.TemplateArgs) != len(data.TemplateArgIDs) {
		return nil, false, e.fail(diag.Diagnostic{Kind: diag.InvalidTemplateArgumentLength, Expected: len(data.TemplateArgIDs), GrammarPos: expr.Pos})
	}

	generics := make(map[string]interface{}, len(data.GenericsArgIDs))
	for i, id := range data.GenericsArgIDs {
		generics[id] = expr.GenericsArgs[i]
	}
	templates := make(map[string]interface{}, len(data.TemplateArgIDs))
	for i, id := range data.TemplateArgIDs {
		templates[id] = expr.TemplateArgs[i]
	}
	e.args.Push(argscope.NewArgumentMapFrom(generics, templates))
	n, ok, err := e.matchRule(expr.Value, expr.Pos)
	e.args.Pop()
	if err != nil || !ok {
		return nil, false, err
	}
	return e.shapeIDReflection(n, expr.Reflection, expr.Value), true, nil
}

// matchJoin implements the JOIN(generics_arg) primitive: match the sole
// generics argument as a group, then flatten its reflectable leaf text
// into a single Leaf.
func (e *evaluator) matchJoin(expr *rules.RuleExpression) ([]cst.SyntaxNodeElement, bool, error) {
	if len(expr.GenericsArgs) != 1 {
		return nil, false, e.fail(diag.Diagnostic{Kind: diag.InvalidGenericsArgumentLength, Expected: 1, GrammarPos: expr.Pos})
	}
	if len(expr.TemplateArgs) != 0 {
		return nil, false, e.fail(diag.Diagnostic{Kind: diag.InvalidTemplateArgumentLength, Expected: 0, GrammarPos: expr.Pos})
	}
	startPos := e.pos.Position()
	v, ok, err := e.matchGroup(expr.GenericsArgs[0])
	if err != nil || !ok {
		return nil, false, err
	}
	joined := cst.JoinLeafValues(v)
	leaf := cst.NewLeaf(startPos, joined, expr.Reflection)
	return []cst.SyntaxNodeElement{leaf}, true, nil
}
