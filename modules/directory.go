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
	"strings"

	"rebuildradar.dev/core/types"
)

// sourceRootNames are the conventional top-level source directories.
// When one is present, its second path component is the bucket key
// (e.g. src/engine/foo.cpp -> "engine"); otherwise the first path
// component is used (e.g. engine/foo.cpp -> "engine").
var sourceRootNames = map[string]struct{}{
	"Source": {}, "src": {}, "Src": {}, "source": {},
}

// directoryFallbackMinFiles is the smallest bucket the fallback
// strategy will register as a module; smaller buckets are almost
// always stray top-level files, not real subsystems.
const directoryFallbackMinFiles = 2

type directoryBucket struct {
	rootDir string
	files   []string
}

// detectDirectory is the strategy of last resort: it buckets every
// file in fileSet by its top-level (or, under a conventional source
// root, second-level) path component. Buckets with fewer than
// directoryFallbackMinFiles files are discarded as noise.
func (r *Resolver) detectDirectory(fileSet []string) error {
	buckets := make(map[string]*directoryBucket)

	for _, f := range fileSet {
		parts := strings.Split(f, "/")
		if len(parts) < 2 {
			continue // top-level file, no directory to bucket it under
		}

		key := parts[0]
		rootDir := parts[0]
		if _, isSourceRoot := sourceRootNames[parts[0]]; isSourceRoot && len(parts) >= 3 {
			key = parts[1]
			rootDir = parts[0] + "/" + parts[1]
		}

		b, ok := buckets[key]
		if !ok {
			b = &directoryBucket{rootDir: rootDir}
			buckets[key] = b
		}
		b.files = append(b.files, f)
	}

	descs := make(map[string]*types.ModuleDescriptor)
	for key, b := range buckets {
		if len(b.files) < directoryFallbackMinFiles {
			continue
		}

		desc := &types.ModuleDescriptor{
			Name:     key,
			RootPath: b.rootDir,
			Kind:     types.ModuleKindDirectory,
			Files:    make(map[string]struct{}, len(b.files)),
		}
		for _, f := range b.files {
			desc.Files[f] = struct{}{}
		}
		descs[key] = desc
	}

	r.registerSorted(descs)
	return nil
}
