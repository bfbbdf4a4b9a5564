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

import "rebuildradar.dev/core/set"

// Options configures a single Graph.Build invocation.
type Options struct {
	// IncludePaths, when non-empty, restricts scanning to these
	// workspace-relative roots. Empty means scan the whole workspace.
	IncludePaths []string

	// ExcludePaths augments the built-in skip list. Entries may be a
	// plain workspace-relative path or a gitignore-style glob pattern,
	// both anchored at the workspace root: an entry excludes the
	// directory it names and everything under it.
	ExcludePaths []string

	// ProjectScope, when non-nil, scopes the denominator and the
	// result set returned by Affected. It never limits what gets
	// scanned for #include edges.
	ProjectScope map[string]struct{}
}

// maxDirectories is the safety cap on distinct canonicalized
// directories visited during a scan.
const maxDirectories = 500_000

// builtinSkipNames are directory basenames always skipped, regardless
// of ExcludePaths.
var builtinSkipNames = set.NewSet(
	".git", "node_modules", "build", "out", "dist",
	".vs", ".vscode", "__pycache__", "Debug", "Release",
	"x64", "x86", ".idea", "cmake-build-debug", "cmake-build-release",
	"Binaries", "Intermediate", "DerivedDataCache", "Saved",
)

