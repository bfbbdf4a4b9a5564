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
	"strings"

	"rebuildradar.dev/core/pathutil"
	"rebuildradar.dev/core/types"
)

const buildscriptSuffix = ".Build.cs"

// detectBuildscript finds every *.Build.cs file (the Unreal Engine
// convention); its directory is a module named by stripping the
// suffix, containing every C/C++ file under that directory.
func (r *Resolver) detectBuildscript(ctx context.Context, fileSet []string) error {
	var buildscripts []string
	for _, f := range walkFiles(r.fsys, r.root) {
		if strings.HasSuffix(f, buildscriptSuffix) {
			buildscripts = append(buildscripts, f)
		}
	}
	if len(buildscripts) == 0 {
		return nil
	}

	descs := make(map[string]*types.ModuleDescriptor, len(buildscripts))
	for _, bs := range buildscripts {
		if err := ctx.Err(); err != nil {
			return err
		}
		dir := path.Dir(bs)
		name := strings.TrimSuffix(path.Base(bs), buildscriptSuffix)

		desc := &types.ModuleDescriptor{
			Name:     name,
			RootPath: dir,
			Kind:     types.ModuleKindBuildscript,
			Files:    make(map[string]struct{}),
		}
		prefix := dir + "/"
		for _, f := range fileSet {
			if dir == "." || strings.HasPrefix(f, prefix) {
				if !pathutil.IsSourceOrHeader(f) {
					continue
				}
				desc.Files[f] = struct{}{}
			}
		}
		descs[name] = desc
	}

	r.registerSorted(descs)
	return nil
}
