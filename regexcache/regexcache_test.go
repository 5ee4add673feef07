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

package regexcache

import "testing"

func TestCompileCaches(t *testing.T) {
	var c Cache
	re1, err := c.Compile("[a-z]")
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	re2, err := c.Compile("[a-z]")
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if re1 != re2 {
		t.Errorf("Compile did not return the cached *regexp.Regexp on second call")
	}
}

func TestCompileInvalid(t *testing.T) {
	var c Cache
	if _, err := c.Compile("[a-"); err == nil {
		t.Errorf("Compile([a-) = nil error, want error")
	}
}
