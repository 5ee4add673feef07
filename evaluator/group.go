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
	"github.com/google/uuid"

	"github.com/FunCobal-family/fcpeg/cst"
	"github.com/FunCobal-family/fcpeg/diag"
	"github.com/FunCobal-family/fcpeg/memo"
	"github.com/FunCobal-family/fcpeg/rules"
)

// matchGroup implements spec.md §4.3: memoization around the uncached
// lookahead → loop → element-order → raw pipeline. Memoization is
// disabled whenever the argument-scope stack is non-empty (spec.md §9
// Open Question, resolved as option (a)): a group's match can depend on
// an ArgId binding the memo key does not capture, so caching would be
// unsound precisely in generics/template call sites.
func (e *evaluator) matchGroup(group *rules.RuleGroup) ([]cst.SyntaxNodeElement, bool, error) {
	useMemo := e.enableMemoization && e.args.Len() == 0
	startPos := e.pos.Cursor()

	if useMemo {
		if entry, found := e.memo.Get(group.ID, startPos); found {
			if entry.Length > 0 {
				e.pos.Advance(string(e.content[startPos : startPos+entry.Length]))
			}
			return entry.Children, true, nil
		}
	}

	children, ok, err := e.matchGroupLookahead(group)
	if err != nil {
		return nil, false, err
	}
	if !ok {
		return nil, false, nil
	}

	if useMemo {
		newPos := e.pos.Cursor()
		if newPos > startPos {
			e.memo.Put(group.ID, startPos, memo.Entry{Length: newPos - startPos, Children: children})
		}
	}
	return children, true, nil
}

// matchGroupLookahead implements the lookahead wrapper of spec.md §4.4.
func (e *evaluator) matchGroupLookahead(group *rules.RuleGroup) ([]cst.SyntaxNodeElement, bool, error) {
	if group.LookaheadKind == rules.NoLookahead {
		return e.matchGroupLoop(group)
	}
	saved := e.pos.Snapshot()
	_, ok, err := e.matchGroupLoop(group)
	e.pos.Restore(saved)
	if err != nil {
		return nil, false, err
	}
	positive := group.LookaheadKind == rules.Positive
	if ok == positive {
		return []cst.SyntaxNodeElement{}, true, nil
	}
	return nil, false, nil
}

// matchGroupLoop implements the loop wrapper of spec.md §4.5.
func (e *evaluator) matchGroupLoop(group *rules.RuleGroup) ([]cst.SyntaxNodeElement, bool, error) {
	if !group.LoopRange.Valid() {
		return nil, false, e.fail(diag.Diagnostic{Kind: diag.InvalidLoopRange, Message: "min must not exceed max", GroupUUID: group.ID})
	}
	min, max := group.LoopRange.Min, group.LoopRange.Max
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
		elems, ok, err := e.matchElementOrder(group)
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

// matchElementOrder implements spec.md §4.6: Sequential delegates to the
// raw matcher; Random runs the unordered-group algorithm.
func (e *evaluator) matchElementOrder(group *rules.RuleGroup) ([]cst.SyntaxNodeElement, bool, error) {
	if group.ElemOrder == rules.Sequential {
		return e.matchRaw(group)
	}
	return e.matchRandom(group)
}

// matchRandom implements the Random unordered-group algorithm of
// spec.md §4.6.
func (e *evaluator) matchRandom(group *rules.RuleGroup) ([]cst.SyntaxNodeElement, bool, error) {
	if len(group.SubElems) != 1 || !group.SubElems[0].IsGroup() {
		return nil, false, e.fail(diag.Diagnostic{
			Kind:      diag.InvalidRuleElementStructure,
			GroupUUID: group.ID,
			Message:   "a Random-order group must contain exactly one child Group holding its alternatives",
		})
	}
	alts := group.SubElems[0].Group.SubElems
	n := len(alts)
	matched := make([]bool, n)
	children := make([]cst.SyntaxNodeElement, 0, n)
	p0 := e.pos.Snapshot()

	for pass := 0; pass < n; pass++ {
		for i, alt := range alts {
			if matched[i] {
				continue
			}
			pi := e.pos.Snapshot()
			ok, err := e.matchRandomAlternative(alt, group.LoopRange, &children)
			if err != nil {
				return nil, false, err
			}
			if ok {
				matched[i] = true
				break
			}
			e.pos.Restore(pi)
		}
		if allMatched(matched) {
			return children, true, nil
		}
	}
	e.pos.Restore(p0)
	return nil, false, nil
}

func (e *evaluator) matchRandomAlternative(alt rules.RuleElement, loopRange rules.LoopRange, children *[]cst.SyntaxNodeElement) (bool, error) {
	if alt.IsGroup() {
		clone := *alt.Group
		clone.ID = uuid.NewString()
		clone.LoopRange = loopRange
		clone.ElemOrder = rules.Sequential
		v, ok, err := e.matchGroup(&clone)
		if err != nil || !ok {
			return false, err
		}
		*children = spliceChildren(*children, v...)
		return true, nil
	}
	clone := *alt.Expr
	clone.LoopRange = loopRange
	v, ok, err := e.matchExpr(&clone)
	if err != nil || !ok {
		return false, err
	}
	*children = appendNonEmpty(*children, v...)
	return true, nil
}

// spliceChildren merges each of elems into dst the way spec.md §4.6
// merges a matched Random-group alternative's children into the
// surrounding group: drop a childless Node, splice an Expansion Node's
// own children in its place, otherwise append the element as-is.
func spliceChildren(dst []cst.SyntaxNodeElement, elems ...cst.SyntaxNodeElement) []cst.SyntaxNodeElement {
	for _, el := range elems {
		if n, ok := el.(*cst.Node); ok {
			if len(n.Children) == 0 {
				continue
			}
			if n.GetReflection().IsExpandable() {
				dst = append(dst, n.Children...)
				continue
			}
		}
		dst = append(dst, el)
	}
	return dst
}

// matchRaw implements the raw sequence/choice matcher of spec.md §4.7.
func (e *evaluator) matchRaw(group *rules.RuleGroup) ([]cst.SyntaxNodeElement, bool, error) {
	groupStart := e.pos.Snapshot()
	var children []cst.SyntaxNodeElement

	for _, sub := range group.SubElems {
		if sub.IsGroup() {
			childGroup := sub.Group
			switch childGroup.Kind {
			case rules.Choice:
				matchedAny := false
				for _, grandAlt := range childGroup.SubElems {
					if !grandAlt.IsGroup() {
						continue
					}
					altStart := e.pos.Snapshot()
					v, ok, err := e.matchGroup(grandAlt.Group)
					if err != nil {
						return nil, false, err
					}
					if ok {
						if len(group.SubElems) == 1 {
							children = v
						} else {
							children = attach(children, cst.NewNode(v, grandAlt.Group.Reflection))
						}
						matchedAny = true
						break
					}
					e.pos.Restore(altStart)
				}
				if !matchedAny {
					e.pos.Restore(groupStart)
					return nil, false, nil
				}
			case rules.Sequence:
				v, ok, err := e.matchGroup(childGroup)
				if err != nil {
					return nil, false, err
				}
				if !ok {
					e.pos.Restore(groupStart)
					return nil, false, nil
				}
				if len(group.SubElems) == 1 {
					children = v
				} else {
					children = attach(children, cst.NewNode(v, childGroup.Reflection))
				}
			}
			continue
		}

		v, ok, err := e.matchExpr(sub.Expr)
		if err != nil {
			return nil, false, err
		}
		if !ok {
			e.pos.Restore(groupStart)
			return nil, false, nil
		}
		children = appendNonEmpty(children, v...)
	}
	return children, true, nil
}
