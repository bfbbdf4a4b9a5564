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
package projectfile

import (
	"path"

	"github.com/bmatcuk/doublestar/v4"

	"rebuildradar.dev/core/internal/platform"
	"rebuildradar.dev/core/pathutil"
)

// expandGlob resolves a wildcard <ClCompile Include="src/**/*.cpp" />
// entry (a real MSBuild feature seen in vcxproj files in the wild)
// against the
// files actually on disk under baseDir.
func expandGlob(fsys platform.FileSystem, baseDir, pattern string) []string {
	var matches []string
	var walk func(dir string)
	walk = func(dir string) {
		entries, err := fsys.ReadDir(dir)
		if err != nil {
			return
		}
		for _, entry := range entries {
			full := path.Join(dir, entry.Name())
			if entry.IsDir() {
				walk(full)
				continue
			}
			rel := full
			if baseDir != "." {
				rel = relativeTo(baseDir, full)
			}
			ok, err := doublestar.Match(pattern, rel)
			if err == nil && ok {
				matches = append(matches, pathutil.ToSlash(full))
			}
		}
	}
	walk(baseDir)
	return matches
}

func relativeTo(base, full string) string {
	prefix := base + "/"
	if len(full) > len(prefix) && full[:len(prefix)] == prefix {
		return full[len(prefix):]
	}
	return full
}
