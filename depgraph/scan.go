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
	"context"
	"path"

	"rebuildradar.dev/core/pathutil"
)

// realpather is implemented by platform.FileSystem's concrete types
// (OSFileSystem, platform.MapFileSystem) but is not part of the
// FileSystem interface itself, since symlink canonicalization is only
// meaningful for real/simulated directory trees, not every host that
// might satisfy FileSystem.
type realpather interface {
	Realpath(name string) (string, error)
}

// scanWorkspace walks the workspace (or opts.IncludePaths, if set)
// breadth-first, returning every discovered source/header file as a
// workspace-relative, forward-slash path. It never recurses: cycles
// via symlinked directories are broken by tracking each directory's
// canonical path, and the walk is bounded by maxDirectories as a
// safety valve against pathological trees.
func (g *Graph) scanWorkspace(ctx context.Context, opts Options, filter *skipFilter) ([]string, error) {
	roots := opts.IncludePaths
	if len(roots) == 0 {
		roots = []string{""}
	}

	canon, _ := g.fsys.(realpather)
	visitedDirs := make(map[string]struct{})

	type pending struct {
		relDir string
	}

	var queue []pending
	for _, r := range roots {
		queue = append(queue, pending{relDir: pathutil.ToSlash(r)})
	}

	var discovered []string
	dirCount := 0

	for len(queue) > 0 {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		cur := queue[0]
		queue = queue[1:]

		absDir := path.Join(g.root, cur.relDir)
		if absDir == "" {
			absDir = "."
		}

		if canon != nil {
			if real, err := canon.Realpath(absDir); err == nil {
				if _, seen := visitedDirs[real]; seen {
					continue
				}
				visitedDirs[real] = struct{}{}
			}
		}

		dirCount++
		if dirCount > maxDirectories {
			if g.log != nil {
				g.log.Warning("workspace scan exceeded safety limit of %d directories; reporting on the %d files discovered so far", maxDirectories, len(discovered))
			}
			return discovered, nil
		}

		entries, err := g.fsys.ReadDir(absDir)
		if err != nil {
			// Unreadable directory (permissions, race with deletion):
			// skip it rather than fail the whole scan.
			continue
		}

		for _, entry := range entries {
			name := entry.Name()
			relPath := name
			if cur.relDir != "" {
				relPath = cur.relDir + "/" + name
			}

			if entry.IsDir() {
				if filter.skipDir(relPath, name) {
					continue
				}
				queue = append(queue, pending{relDir: relPath})
				continue
			}

			if pathutil.IsSourceOrHeader(name) {
				discovered = append(discovered, relPath)
			}
		}
	}

	return discovered, nil
}
