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

// Package evaluator implements the recursive-descent PEG matcher: the
// hard part of this module. Given a rules.RuleMap and an input string, it
// produces an annotated cst.SyntaxTree, consulting a packrat memo table
// on group entries and emitting structured diagnostics on hard errors.
package evaluator

// Options configures one parse call's resource bounds. It plays the same
// role the teacher's parser2.ParserOptions plays for its grammar-text
// compiler: a small value object passed alongside the input, not a
// package-level global.
type Options struct {
	// LoopLimit bounds the number of iterations any single repetition
	// (loop wrapper) may run before emitting TooLongRepetition.
	LoopLimit int
	// RecursionLimit bounds rule-reference descent depth before emitting
	// TooDeepRecursion. Zero disables the cap.
	RecursionLimit int
}

// DefaultOptions returns the bounds the original implementation used:
// 65536 for both the loop limit and the recursion-depth cap.
func DefaultOptions() Options {
	return Options{LoopLimit: 65536, RecursionLimit: 65536}
}
