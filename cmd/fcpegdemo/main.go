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

// Command fcpegdemo hand-builds a small rule_map for a sum expression
// grammar (`Sum <- Number (("+" / "-") Number)*`, `Number <- [0-9]+`) and
// parses -input against it, printing the resulting tree. It stands in for
// a grammar-text compiler, which is out of scope here: the rule graph is
// this module's external interface, built by hand instead of compiled
// from PEG source.
package main

import (
	"flag"
	"fmt"

	log "github.com/golang/glog"

	"github.com/FunCobal-family/fcpeg/diag"
	"github.com/FunCobal-family/fcpeg/evaluator"
	"github.com/FunCobal-family/fcpeg/rules"
)

var input = flag.String("input", "12+7-3", "Source text to parse against the demo sum grammar.")

func sumGrammar() *rules.RuleMap {
	digit := rules.ExprElem(rules.NewExpr(rules.CharClass, "[0-9]"))
	number := rules.NewGroup(rules.Sequence, digit).WithLoopRange(rules.OneOrMore)

	plus := rules.GroupElem(rules.NewGroup(rules.Sequence,
		rules.ExprElem(rules.NewExpr(rules.String, "+")),
		rules.ExprElem(rules.NewExpr(rules.ID, "Number")),
	))
	minus := rules.GroupElem(rules.NewGroup(rules.Sequence,
		rules.ExprElem(rules.NewExpr(rules.String, "-")),
		rules.ExprElem(rules.NewExpr(rules.ID, "Number")),
	))
	op := rules.NewGroup(rules.Choice, plus, minus)
	opLoop := rules.NewGroup(rules.Sequence, rules.GroupElem(op)).WithLoopRange(rules.ZeroOrMore)

	sum := rules.NewGroup(rules.Sequence,
		rules.ExprElem(rules.NewExpr(rules.ID, "Number")),
		rules.GroupElem(opLoop),
	)

	m := rules.NewRuleMap("Sum")
	m.Add("Number", &rules.RuleData{Group: number})
	m.Add("Sum", &rules.RuleData{Group: sum})
	return m
}

func main() {
	flag.Parse()

	console := diag.NewCollector()
	tree, err := evaluator.Parse(console, sumGrammar(), "-input", *input, true)
	if err != nil {
		log.Exitf("parse %q failed: %s", *input, err)
	}

	fmt.Print(tree.Dump())

	text, err := tree.Reconstruct()
	if err != nil {
		log.Exitf("reconstruct failed: %s", err)
	}
	fmt.Printf("reconstructed: %q\n", text)
}
