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
	"testing"

	"github.com/FunCobal-family/fcpeg/cst"
	"github.com/FunCobal-family/fcpeg/diag"
	"github.com/FunCobal-family/fcpeg/rules"
)

// strExpr wraps a String expression matching the literal s as a
// RuleElement.
func strExpr(s string) rules.RuleElement {
	return rules.ExprElem(rules.NewExpr(rules.String, s))
}

func charClass(pattern string) rules.RuleElement {
	return rules.ExprElem(rules.NewExpr(rules.CharClass, pattern))
}

func wildcard() rules.RuleElement {
	return rules.ExprElem(rules.NewExpr(rules.Wildcard, ""))
}

func idRef(name string) rules.RuleElement {
	return rules.ExprElem(rules.NewExpr(rules.ID, name))
}

// choiceRule wraps alts (each itself a Sequence group) in a Choice group,
// then wraps that in a single-child Sequence group: a Choice group's
// alternatives are its own direct sub-elements, and it can only appear as
// a Group child of an enclosing group (spec.md §4.7), never as a rule's
// top-level group by itself.
func choiceRule(alts ...rules.RuleElement) *rules.RuleGroup {
	choice := rules.NewGroup(rules.Choice, alts...)
	return rules.NewGroup(rules.Sequence, rules.GroupElem(choice))
}

func singleRuleMap(startID string, group *rules.RuleGroup) *rules.RuleMap {
	m := rules.NewRuleMap(startID)
	m.Add(startID, &rules.RuleData{Group: group})
	return m
}

// TestParseSequence covers spec.md §8's `S <- "a" "b"` on "ab".
func TestParseSequence(t *testing.T) {
	group := rules.NewGroup(rules.Sequence, strExpr("a"), strExpr("b"))
	ruleMap := singleRuleMap("S", group)

	console := diag.NewCollector()
	tree, err := Parse(console, ruleMap, "test.txt", "ab", false)
	if err != nil {
		t.Fatalf("Parse() returned error %v, want success", err)
	}
	if tree.IsEmpty() {
		t.Fatalf("Parse() returned an empty tree, want a matched root")
	}
	got, err := tree.Reconstruct()
	if err != nil {
		t.Fatalf("Reconstruct() returned error %v", err)
	}
	if got != "ab" {
		t.Errorf("Reconstruct() = %q, want %q", got, "ab")
	}
}

// TestParseChoice covers spec.md §8's `S <- "a" / "b"` on "b".
func TestParseChoice(t *testing.T) {
	group := choiceRule(
		rules.GroupElem(rules.NewGroup(rules.Sequence, strExpr("a"))),
		rules.GroupElem(rules.NewGroup(rules.Sequence, strExpr("b"))),
	)
	ruleMap := singleRuleMap("S", group)

	console := diag.NewCollector()
	tree, err := Parse(console, ruleMap, "test.txt", "b", false)
	if err != nil {
		t.Fatalf("Parse() returned error %v, want success", err)
	}
	got, err := tree.Reconstruct()
	if err != nil {
		t.Fatalf("Reconstruct() returned error %v", err)
	}
	if got != "b" {
		t.Errorf("Reconstruct() = %q, want %q", got, "b")
	}
}

// TestParseLoop covers spec.md §8's `S <- "a"*` on "aaaa".
func TestParseLoop(t *testing.T) {
	group := rules.NewGroup(rules.Sequence, strExpr("a")).WithLoopRange(rules.ZeroOrMore)
	ruleMap := singleRuleMap("S", group)

	console := diag.NewCollector()
	tree, err := Parse(console, ruleMap, "test.txt", "aaaa", false)
	if err != nil {
		t.Fatalf("Parse() returned error %v, want success", err)
	}
	got, err := tree.Reconstruct()
	if err != nil {
		t.Fatalf("Reconstruct() returned error %v", err)
	}
	if got != "aaaa" {
		t.Errorf("Reconstruct() = %q, want %q", got, "aaaa")
	}
}

// TestParseNegativeLookahead covers spec.md §8's `S <- !"a" .`, which
// must succeed on "b" (consuming just the one rune) and fail with
// NoSucceededRule on "a".
func TestParseNegativeLookahead(t *testing.T) {
	newGroup := func() *rules.RuleGroup {
		notA := rules.ExprElem(rules.NewExpr(rules.String, "a").WithLookahead(rules.Negative))
		return rules.NewGroup(rules.Sequence, notA, wildcard())
	}

	t.Run("matches b", func(t *testing.T) {
		ruleMap := singleRuleMap("S", newGroup())
		console := diag.NewCollector()
		tree, err := Parse(console, ruleMap, "test.txt", "b", false)
		if err != nil {
			t.Fatalf("Parse() returned error %v, want success", err)
		}
		got, err := tree.Reconstruct()
		if err != nil {
			t.Fatalf("Reconstruct() returned error %v", err)
		}
		if got != "b" {
			t.Errorf("Reconstruct() = %q, want %q", got, "b")
		}
	})

	t.Run("rejects a", func(t *testing.T) {
		ruleMap := singleRuleMap("S", newGroup())
		console := diag.NewCollector()
		_, err := Parse(console, ruleMap, "test.txt", "a", false)
		if err == nil {
			t.Fatalf("Parse() returned success, want NoSucceededRule")
		}
		d, ok := err.(diag.Diagnostic)
		if !ok {
			t.Fatalf("Parse() error is %T, want diag.Diagnostic", err)
		}
		if d.Kind != diag.NoSucceededRule {
			t.Errorf("Parse() error kind = %s, want %s", d.Kind, diag.NoSucceededRule)
		}
	})
}

// TestParseJoin covers spec.md §8's `S <- JOIN(("a" / "b")+)` on "aab".
func TestParseJoin(t *testing.T) {
	alt := choiceRule(
		rules.GroupElem(rules.NewGroup(rules.Sequence, strExpr("a"))),
		rules.GroupElem(rules.NewGroup(rules.Sequence, strExpr("b"))),
	).WithLoopRange(rules.OneOrMore)

	joinExpr := rules.NewExpr(rules.IDWithArgs, rules.Join)
	joinExpr.GenericsArgs = []*rules.RuleGroup{alt}
	group := rules.NewGroup(rules.Sequence, rules.ExprElem(joinExpr))
	ruleMap := singleRuleMap("S", group)

	console := diag.NewCollector()
	tree, err := Parse(console, ruleMap, "test.txt", "aab", false)
	if err != nil {
		t.Fatalf("Parse() returned error %v, want success", err)
	}
	got, err := tree.Reconstruct()
	if err != nil {
		t.Fatalf("Reconstruct() returned error %v", err)
	}
	if got != "aab" {
		t.Errorf("Reconstruct() = %q, want %q", got, "aab")
	}
}

// TestParseRandomGroup covers spec.md §8's Random group `S <- {"a","b","c"}`
// on "bca", expecting emission order b, c, a (match order, not declaration
// order).
func TestParseRandomGroup(t *testing.T) {
	alts := rules.NewGroup(rules.Choice,
		rules.GroupElem(rules.NewGroup(rules.Sequence, strExpr("a"))),
		rules.GroupElem(rules.NewGroup(rules.Sequence, strExpr("b"))),
		rules.GroupElem(rules.NewGroup(rules.Sequence, strExpr("c"))),
	)
	group := rules.NewGroup(rules.Sequence, rules.GroupElem(alts)).WithElemOrder(rules.Random)
	ruleMap := singleRuleMap("S", group)

	console := diag.NewCollector()
	tree, err := Parse(console, ruleMap, "test.txt", "bca", false)
	if err != nil {
		t.Fatalf("Parse() returned error %v, want success", err)
	}
	got, err := tree.Reconstruct()
	if err != nil {
		t.Fatalf("Reconstruct() returned error %v", err)
	}
	if got != "bca" {
		t.Errorf("Reconstruct() = %q, want %q", got, "bca")
	}
}

// TestParseEmptyInput covers the empty-input boundary: an empty tree, no
// error, regardless of the grammar.
func TestParseEmptyInput(t *testing.T) {
	group := rules.NewGroup(rules.Sequence, strExpr("a")).WithLoopRange(rules.ZeroOrMore)
	ruleMap := singleRuleMap("S", group)

	console := diag.NewCollector()
	tree, err := Parse(console, ruleMap, "test.txt", "", false)
	if err != nil {
		t.Fatalf("Parse() returned error %v, want success", err)
	}
	if !tree.IsEmpty() {
		t.Errorf("Parse(\"\") tree is not empty, want IsEmpty() true")
	}
}

// TestParseSingleRuleMatchedNode covers the basic Node/Leaf shape of a
// successful single-rule match: two Leaf children under one Node root.
func TestParseSingleRuleMatchedNode(t *testing.T) {
	group := rules.NewGroup(rules.Sequence, strExpr("a"), strExpr("\n"))
	ruleMap := singleRuleMap("S", group)

	console := diag.NewCollector()
	tree, err := Parse(console, ruleMap, "test.txt", "a\n", false)
	if err != nil {
		t.Fatalf("Parse() returned error %v, want success", err)
	}
	root, ok := tree.Root.(*cst.Node)
	if !ok {
		t.Fatalf("tree.Root is %T, want *cst.Node", tree.Root)
	}
	if len(root.Children) != 2 {
		t.Fatalf("root has %d children, want 2", len(root.Children))
	}
	if _, ok := root.Children[1].(*cst.Leaf); !ok {
		t.Fatalf("second child is %T, want *cst.Leaf", root.Children[1])
	}
}

// TestParseInvalidCharClass covers the InvalidCharClassFormat diagnostic:
// an uncompilable CharClass pattern is a hard error, not a soft no-match.
func TestParseInvalidCharClass(t *testing.T) {
	group := rules.NewGroup(rules.Sequence, charClass("[a-"))
	ruleMap := singleRuleMap("S", group)

	console := diag.NewCollector()
	_, err := Parse(console, ruleMap, "test.txt", "a", false)
	if err == nil {
		t.Fatalf("Parse() returned success, want InvalidCharClassFormat")
	}
	d, ok := err.(diag.Diagnostic)
	if !ok {
		t.Fatalf("Parse() error is %T, want diag.Diagnostic", err)
	}
	if d.Kind != diag.InvalidCharClassFormat {
		t.Errorf("Parse() error kind = %s, want %s", d.Kind, diag.InvalidCharClassFormat)
	}
}

// TestParseChoiceBothAlternativesFail covers the cursor-restoration
// invariant: when every alternative of a Choice fails, the whole group
// fails and the cursor is restored to its entry value (verified here
// indirectly: the top-level parse reports NoSucceededRule, not a partial
// consumption).
func TestParseChoiceBothAlternativesFail(t *testing.T) {
	group := choiceRule(
		rules.GroupElem(rules.NewGroup(rules.Sequence, strExpr("a"))),
		rules.GroupElem(rules.NewGroup(rules.Sequence, strExpr("b"))),
	)
	ruleMap := singleRuleMap("S", group)

	console := diag.NewCollector()
	_, err := Parse(console, ruleMap, "test.txt", "c", false)
	if err == nil {
		t.Fatalf("Parse() returned success, want NoSucceededRule")
	}
	d, ok := err.(diag.Diagnostic)
	if !ok {
		t.Fatalf("Parse() error is %T, want diag.Diagnostic", err)
	}
	if d.Kind != diag.NoSucceededRule {
		t.Errorf("Parse() error kind = %s, want %s", d.Kind, diag.NoSucceededRule)
	}
}

// TestParseTooLongRepetition covers the loop_limit bound: a grammar that
// would otherwise match unboundedly hits TooLongRepetition once it
// exceeds the configured limit.
func TestParseTooLongRepetition(t *testing.T) {
	group := rules.NewGroup(rules.Sequence, strExpr("a")).WithLoopRange(rules.ZeroOrMore)
	ruleMap := singleRuleMap("S", group)

	content := ""
	for i := 0; i < 10; i++ {
		content += "a"
	}

	console := diag.NewCollector()
	opts := Options{LoopLimit: 3, RecursionLimit: DefaultOptions().RecursionLimit}
	_, err := ParseWithOptions(console, ruleMap, "test.txt", content, false, opts)
	if err == nil {
		t.Fatalf("Parse() returned success, want TooLongRepetition")
	}
	d, ok := err.(diag.Diagnostic)
	if !ok {
		t.Fatalf("Parse() error is %T, want diag.Diagnostic", err)
	}
	if d.Kind != diag.TooLongRepetition {
		t.Errorf("Parse() error kind = %s, want %s", d.Kind, diag.TooLongRepetition)
	}
}

// TestParseFromRuleIsolatesSubgrammar exercises the SPEC_FULL-supplemented
// ParseFromRule entry point: a grammar whose designated start rule would
// never match can still be driven from an inner rule directly.
func TestParseFromRuleIsolatesSubgrammar(t *testing.T) {
	ruleMap := rules.NewRuleMap("Unreachable")
	ruleMap.Add("Unreachable", &rules.RuleData{Group: rules.NewGroup(rules.Sequence, strExpr("never-matches-this-input"))})
	ruleMap.Add("Inner", &rules.RuleData{Group: rules.NewGroup(rules.Sequence, strExpr("ok"))})

	console := diag.NewCollector()
	tree, err := ParseFromRule(console, ruleMap, "Inner", "test.txt", "ok", false, DefaultOptions())
	if err != nil {
		t.Fatalf("ParseFromRule() returned error %v, want success", err)
	}
	got, err := tree.Reconstruct()
	if err != nil {
		t.Fatalf("Reconstruct() returned error %v", err)
	}
	if got != "ok" {
		t.Errorf("Reconstruct() = %q, want %q", got, "ok")
	}
}

// TestParseMemoizationMatchesUnmemoized checks that enabling memoization
// does not change the matched text for a grammar with no argument-scope
// dependency (the hazard memoization is gated against).
func TestParseMemoizationMatchesUnmemoized(t *testing.T) {
	newGroup := func() *rules.RuleGroup {
		digit := rules.ExprElem(rules.NewExpr(rules.CharClass, "[0-9]"))
		digits := rules.NewGroup(rules.Sequence, digit).WithLoopRange(rules.OneOrMore)
		plus := rules.GroupElem(rules.NewGroup(rules.Sequence, rules.GroupElem(digits), strExpr("+"), rules.GroupElem(digits)))
		return choiceRule(plus, rules.GroupElem(digits))
	}

	for _, enableMemo := range []bool{false, true} {
		ruleMap := singleRuleMap("S", newGroup())
		console := diag.NewCollector()
		tree, err := Parse(console, ruleMap, "test.txt", "12+34", enableMemo)
		if err != nil {
			t.Fatalf("Parse(memo=%v) returned error %v, want success", enableMemo, err)
		}
		got, err := tree.Reconstruct()
		if err != nil {
			t.Fatalf("Reconstruct() returned error %v", err)
		}
		if got != "12+34" {
			t.Errorf("Parse(memo=%v) Reconstruct() = %q, want %q", enableMemo, got, "12+34")
		}
	}
}

// TestParseIDReference exercises an Id expression referencing a second
// rule, and the leaf-order-matches-consumption invariant.
func TestParseIDReference(t *testing.T) {
	ruleMap := rules.NewRuleMap("S")
	ruleMap.Add("S", &rules.RuleData{Group: rules.NewGroup(rules.Sequence, idRef("Greeting"), strExpr("!"))})
	ruleMap.Add("Greeting", &rules.RuleData{Group: rules.NewGroup(rules.Sequence, strExpr("hi"))})

	console := diag.NewCollector()
	tree, err := Parse(console, ruleMap, "test.txt", "hi!", false)
	if err != nil {
		t.Fatalf("Parse() returned error %v, want success", err)
	}
	got, err := tree.Reconstruct()
	if err != nil {
		t.Fatalf("Reconstruct() returned error %v", err)
	}
	if got != "hi!" {
		t.Errorf("Reconstruct() = %q, want %q", got, "hi!")
	}
}
