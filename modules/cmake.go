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
	"context"
	"path"
	"regexp"
	"strings"

	"rebuildradar.dev/core/pathutil"
	"rebuildradar.dev/core/types"
)

// cmakeTarget matches add_library(name ...) / add_executable(name ...),
// case-insensitive.
var cmakeTarget = regexp.MustCompile(`(?i)add_(?:library|executable)\s*\(\s*([^\s)]+)`)

// detectCMake finds every CMakeLists.txt, parses its add_library/
// add_executable target declarations, and treats the containing
// directory as the module root.
func (r *Resolver) detectCMake(ctx context.Context, fileSet []string) error {
	var lists []string
	for _, f := range walkFiles(r.fsys, r.root) {
		if path.Base(f) == "CMakeLists.txt" {
			lists = append(lists, f)
		}
	}
	if len(lists) == 0 {
		return nil
	}

	descs := make(map[string]*types.ModuleDescriptor)
	for _, listPath := range lists {
		if err := ctx.Err(); err != nil {
			return err
		}

		content, err := r.fsys.ReadFile(listPath)
		if err != nil {
			continue
		}
		dir := path.Dir(listPath)

		for _, m := range cmakeTarget.FindAllStringSubmatch(string(content), -1) {
			name := m[1]
			if strings.HasPrefix(name, "$") || strings.HasPrefix(name, "#") {
				continue
			}
			if _, exists := descs[name]; exists {
				continue // first-seen target name wins on collision
			}

			desc := &types.ModuleDescriptor{
				Name:     name,
				RootPath: dir,
				Kind:     types.ModuleKindCMakeTarget,
				Files:    make(map[string]struct{}),
			}
			prefix := dir + "/"
			for _, f := range fileSet {
				if !pathutil.IsSourceOrHeader(f) {
					continue
				}
				if dir == "." || strings.HasPrefix(f, prefix) {
					desc.Files[f] = struct{}{}
				}
			}
			descs[name] = desc
		}
	}

	r.registerSorted(descs)
	return nil
}
