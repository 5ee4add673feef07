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

// Package regexcache is a lazy write-through cache of compiled CharClass
// regexes, keyed by pattern string (spec.md §9 "Regex cache"). Safe
// without locking because the evaluator runs single-threaded per parse
// call; a parallel-by-region evaluator would need to promote this to a
// concurrent map.
package regexcache

import "regexp"

// Cache maps a CharClass pattern string to its compiled form. The zero
// value is empty and usable.
type Cache struct {
	compiled map[string]*regexp.Regexp
}

// Compile returns the compiled regex for pattern, compiling and caching
// it on first use. The returned error is the regexp compile error
// unchanged; the caller (package evaluator) wraps it into a
// diag.InvalidCharClassFormat diagnostic.
func (c *Cache) Compile(pattern string) (*regexp.Regexp, error) {
	if re, ok := c.compiled[pattern]; ok {
		return re, nil
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, err
	}
	if c.compiled == nil {
		c.compiled = make(map[string]*regexp.Regexp)
	}
	c.compiled[pattern] = re
	return re, nil
}
