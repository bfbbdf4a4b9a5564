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

import (
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	ignore "github.com/sabhiram/go-gitignore"

	"rebuildradar.dev/core/set"
)

// skipFilter decides whether a directory should be pruned from the scan.
// It layers three sources, any of which can exclude a directory:
//   - a built-in list of common VCS/IDE/build-output directory names
//   - user-supplied ExcludePaths (gitignore-style patterns anchored at the workspace root)
//   - patterns read from the workspace's own .gitignore, if any
type skipFilter struct {
	builtin set.Set[string]
	matcher *ignore.GitIgnore
}

func newSkipFilter(excludePaths []string, gitignoreLines []string) *skipFilter {
	var lines []string
	for name := range builtinSkipNames {
		lines = append(lines, name)
	}
	for _, raw := range excludePaths {
		raw = strings.Trim(raw, "/")
		if raw == "" {
			continue
		}
		// The leading slash anchors the entry at the workspace root, so it
		// matches that directory and everything under it, not a directory
		// of the same name deeper in the tree.
		lines = append(lines, "/"+raw)
	}
	for _, line := range gitignoreLines {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		lines = append(lines, line)
	}
	return &skipFilter{
		builtin: builtinSkipNames,
		matcher: ignore.CompileIgnoreLines(lines...),
	}
}

// skipDir reports whether relPath (workspace-relative, forward-slash,
// no leading/trailing slash) and its basename should be pruned from the
// scan.
func (f *skipFilter) skipDir(relPath, basename string) bool {
	if f.builtin.Has(basename) {
		return true
	}
	if strings.HasPrefix(basename, ".") {
		return true
	}
	return f.matcher.MatchesPath(relPath + "/")
}

// matchGlob reports whether name matches the doublestar pattern. Nothing
// in this package calls it, and the directory scanner's exclude matching
// does not use it; the project-file parser's expansion of wildcard
// <ClCompile Include="src/**/*.cpp" /> entries calls doublestar itself.
func matchGlob(pattern, name string) bool {
	ok, err := doublestar.Match(pattern, name)
	return err == nil && ok
}
