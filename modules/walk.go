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
package modules

import (
	"path"
	"strings"

	"rebuildradar.dev/core/internal/platform"
	"rebuildradar.dev/core/set"
)

// skipDirNames mirrors the dependency graph's built-in skip list
// the dependency graph's own skip list: buildscript/CMake discovery
// walks the same workspace
// tree and should prune the same noise directories.
var skipDirNames = set.NewSet(
	".git", "node_modules", "build", "out", "dist",
	".vs", ".vscode", "__pycache__", "Debug", "Release",
	"x64", "x86", ".idea", "cmake-build-debug", "cmake-build-release",
	"Binaries", "Intermediate", "DerivedDataCache", "Saved",
)

// walkFiles returns every regular file under root, relative to root
// (forward-slash), skipping the built-in noise directories. It is a
// best-effort auxiliary scan for non-C/C++ build-declaration files
// (*.Build.cs, CMakeLists.txt) that the dependency graph never tracks;
// unlike depgraph's scan it doesn't canonicalize directories, since
// buildscript/CMake trees are orders of magnitude smaller than full
// source trees in practice.
func walkFiles(fsys platform.FileSystem, root string) []string {
	var files []string
	var queue []string
	queue = append(queue, "")

	for len(queue) > 0 {
		relDir := queue[0]
		queue = queue[1:]

		absDir := path.Join(root, relDir)
		if absDir == "" {
			absDir = "."
		}

		entries, err := fsys.ReadDir(absDir)
		if err != nil {
			continue
		}

		for _, entry := range entries {
			name := entry.Name()
			relPath := name
			if relDir != "" {
				relPath = relDir + "/" + name
			}

			if entry.IsDir() {
				if skipDirNames.Has(name) || strings.HasPrefix(name, ".") {
					continue
				}
				queue = append(queue, relPath)
				continue
			}

			files = append(files, relPath)
		}
	}

	return files
}
