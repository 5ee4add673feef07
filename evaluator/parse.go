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
	"strings"

	"github.com/FunCobal-family/fcpeg/cst"
	"github.com/FunCobal-family/fcpeg/diag"
	"github.com/FunCobal-family/fcpeg/rules"
)

// Parse implements the external entry point of spec.md §6, matching
// ruleMap.StartRuleID against srcContent. console receives every
// diagnostic emitted; a non-nil error return means at least one
// diagnostic was pushed and the returned tree is nil.
func Parse(console diag.Console, ruleMap *rules.RuleMap, srcPath, srcContent string, enableMemoization bool) (*cst.SyntaxTree, error) {
	return ParseWithOptions(console, ruleMap, srcPath, srcContent, enableMemoization, DefaultOptions())
}

// ParseWithOptions is Parse with explicit resource bounds.
func ParseWithOptions(console diag.Console, ruleMap *rules.RuleMap, srcPath, srcContent string, enableMemoization bool, opts Options) (*cst.SyntaxTree, error) {
	return parseFrom(console, ruleMap, ruleMap.StartRuleID, srcPath, srcContent, enableMemoization, opts)
}

// ParseFromRule starts matching from ruleID instead of ruleMap's
// designated start rule. This is a supplemented feature (SPEC_FULL §5.2)
// grounded on the teacher's parser2.Grammar.ParseRule: useful for testing
// one rule of a larger grammar in isolation.
func ParseFromRule(console diag.Console, ruleMap *rules.RuleMap, ruleID, srcPath, srcContent string, enableMemoization bool, opts Options) (*cst.SyntaxTree, error) {
	return parseFrom(console, ruleMap, ruleID, srcPath, srcContent, enableMemoization, opts)
}

func parseFrom(console diag.Console, ruleMap *rules.RuleMap, startRuleID, srcPath, srcContent string, enableMemoization bool, opts Options) (*cst.SyntaxTree, error) {
	stripped := strings.ReplaceAll(srcContent, "\r", "")
	if stripped == "" {
		return cst.NewSyntaxTree(nil), nil
	}

	content := []rune(stripped)
	content = append(content, 0) // sentinel, per spec.md §4.1/§9

	e := newEvaluator(console, ruleMap, srcPath, content, enableMemoization, opts)

	root, ok, err := e.matchRule(startRuleID, ruleMap.StartRulePos)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, e.fail(diag.Diagnostic{
			Kind:      diag.NoSucceededRule,
			RuleID:    startRuleID,
			RuleStack: copyRuleStack(e.ruleStack),
		})
	}

	root.SetReflection(cst.Reflect(startRuleID))

	if !e.atEnd() {
		return nil, e.fail(diag.Diagnostic{
			Kind:      diag.NoSucceededRule,
			RuleID:    startRuleID,
			RuleStack: copyRuleStack(e.ruleStack),
		})
	}

	return cst.NewSyntaxTree(root), nil
}
