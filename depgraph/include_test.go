/*
Copyright © 2025 Benny Powers <web@bennypowers.com>

This program is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

This program is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with this program. If not, see <http://www.gnu.org/licenses/>.
*/
package depgraph

import "testing"

func TestParseIncludeTargets(t *testing.T) {
	content := []byte(`#include "a.h"
  #include   "b/c.h"
#include <vector>
// #include "commented.h"
`)
	got := parseIncludeTargets(content)
	want := []string{"a.h", "b/c.h"}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("target %d: expected %q, got %q", i, want[i], got[i])
		}
	}
}

func TestParseIncludeTargets_NoIncludes(t *testing.T) {
	got := parseIncludeTargets([]byte("int main() { return 0; }\n"))
	if got != nil {
		t.Errorf("expected nil for content with no includes, got %v", got)
	}
}

func TestSkipFilter_BuiltinNames(t *testing.T) {
	f := newSkipFilter(nil, nil)
	for _, name := range []string{"node_modules", ".git", "Debug", "Binaries"} {
		if !f.skipDir(name, name) {
			t.Errorf("expected builtin name %q to be skipped", name)
		}
	}
	if f.skipDir("src", "src") {
		t.Errorf("expected src to not be skipped")
	}
}

func TestSkipFilter_Gitignore(t *testing.T) {
	f := newSkipFilter(nil, []string{"vendor/", "# comment", "", "*.generated.h"})
	if !f.skipDir("vendor", "vendor") {
		t.Errorf("expected vendor/ (from .gitignore) to be skipped")
	}
	if f.skipDir("src", "src") {
		t.Errorf("expected src to not be skipped")
	}
}

func TestSkipFilter_ExcludePaths(t *testing.T) {
	f := newSkipFilter([]string{"third_party"}, nil)
	if !f.skipDir("third_party", "third_party") {
		t.Errorf("expected third_party (from ExcludePaths) to be skipped")
	}
}
