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
	"golang.org/x/exp/slices"

	"github.com/FunCobal-family/fcpeg/argscope"
	"github.com/FunCobal-family/fcpeg/cst"
	"github.com/FunCobal-family/fcpeg/diag"
	"github.com/FunCobal-family/fcpeg/memo"
	"github.com/FunCobal-family/fcpeg/position"
	"github.com/FunCobal-family/fcpeg/regexcache"
	"github.com/FunCobal-family/fcpeg/rules"
)

// evaluator is the mutable state owned by a single parse call: the
// position cursor, argument stack, regex cache, memo table, and rule
// stack (spec.md §5, "shared resources within one parse call"). Nothing
// here is safe to share across concurrent parse calls; each call builds
// its own evaluator.
type evaluator struct {
	rules   *rules.RuleMap
	console diag.Console
	options Options

	content []rune
	pos     *position.Tracker
	memo    *memo.Map
	args    argscope.Stack
	regex   regexcache.Cache

	enableMemoization bool
	ruleStack         []diag.RuleFrame
	recursionDepth    int
}

func newEvaluator(console diag.Console, ruleMap *rules.RuleMap, srcPath string, content []rune, enableMemoization bool, opts Options) *evaluator {
	e := &evaluator{
		rules:             ruleMap,
		console:           console,
		options:           opts,
		content:           content,
		pos:               position.NewTracker(srcPath),
		enableMemoization: enableMemoization,
	}
	if enableMemoization {
		e.memo = &memo.Map{}
	}
	log.V(5).Infof("evaluator: starting parse of %d runes from %q, memoization=%v", len(content), srcPath, enableMemoization)
	return e
}

// fail records d on the console (filling in the current cursor position
// if the caller left it empty) and returns it as an error. d itself
// implements error, so callers can return e.fail(...) directly as the
// hard-error leg of a three-state (ok, err) result pair.
func (e *evaluator) fail(d diag.Diagnostic) error {
	if d.Pos.IsEmpty() {
		d.Pos = e.pos.Position()
	}
	e.console.Push(d)
	return d
}

// atEnd reports whether the cursor has reached the sentinel, i.e. there
// is no more real input left to match.
func (e *evaluator) atEnd() bool {
	return e.pos.Cursor() >= len(e.content)-1
}

func (e *evaluator) runeAt(pos int) string {
	return string(e.content[pos])
}

func (e *evaluator) hasPrefixAt(pos int, val []rune) bool {
	if pos < 0 || pos+len(val) > len(e.content)-1 {
		return false
	}
	for i, r := range val {
		if e.content[pos+i] != r {
			return false
		}
	}
	return true
}

func copyRuleStack(s []diag.RuleFrame) []diag.RuleFrame {
	return slices.Clone(s)
}

// appendNonEmpty appends each of elems to dst, dropping any element that
// is a childless Node (spec.md §4.5/§4.7/§4.6: "append each element
// unless it is an empty Node").
func appendNonEmpty(dst []cst.SyntaxNodeElement, elems ...cst.SyntaxNodeElement) []cst.SyntaxNodeElement {
	for _, el := range elems {
		if n, ok := el.(*cst.Node); ok && len(n.Children) == 0 {
			continue
		}
		dst = append(dst, el)
	}
	return dst
}

// attach applies the Group-child attachment rule of spec.md §4.7: drop a
// childless wrapped node, splice its children if its reflection is
// Expansion, else append the node itself.
func attach(dst []cst.SyntaxNodeElement, wrapped *cst.Node) []cst.SyntaxNodeElement {
	if len(wrapped.Children) == 0 {
		return dst
	}
	if wrapped.GetReflection().IsExpandable() {
		return append(dst, wrapped.Children...)
	}
	return append(dst, wrapped)
}

func allMatched(m []bool) bool {
	for _, v := range m {
		if !v {
			return false
		}
	}
	return true
}
