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

// Package projectfile reads Visual Studio solution (.sln) and project
// (.vcxproj) files to learn a workspace's authoritative build scope.
package projectfile

import (
	"path"
	"regexp"
	"strings"

	"rebuildradar.dev/core/internal/logging"
	"rebuildradar.dev/core/internal/platform"
	"rebuildradar.dev/core/pathutil"
	"rebuildradar.dev/core/types"
)

// Result is the build scope produced by parsing a solution or project
// file: every file the build actually compiles, plus one module
// descriptor per project.
type Result struct {
	ProjectScope map[string]struct{}
	Modules      map[string]*types.ModuleDescriptor
}

func newResult() *Result {
	return &Result{
		ProjectScope: make(map[string]struct{}),
		Modules:      make(map[string]*types.ModuleDescriptor),
	}
}

// projectReference matches a solution file's
// Project("{guid}") = "name", "rel\path.vcxproj", "{guid}" line.
var projectReference = regexp.MustCompile(`Project\("\{[^}]+\}"\)\s*=\s*"([^"]+)"\s*,\s*"([^"]+)"\s*,\s*"\{[^}]+\}"`)

// clItem matches <ClCompile Include="…"> and <ClInclude Include="…">,
// case-insensitive, self-closing or open-tag.
var clItem = regexp.MustCompile(`(?i)<Cl(?:Compile|Include)\s+Include\s*=\s*"([^"]+)"`)

// Parse dispatches on path's extension: .sln to parseSolution, .vcxproj
// to parseProject. Unsupported extensions yield an empty result and a
// warning.
func Parse(fsys platform.FileSystem, log *logging.Logger, relPath string) (*Result, error) {
	switch pathutil.Ext(relPath) {
	case "sln":
		return parseSolution(fsys, log, relPath)
	case "vcxproj":
		return parseProject(fsys, log, relPath)
	default:
		if log != nil {
			log.Warning("unsupported project file extension for %q; proceeding with full-workspace scope", relPath)
		}
		return newResult(), nil
	}
}

func parseSolution(fsys platform.FileSystem, log *logging.Logger, relPath string) (*Result, error) {
	content, err := fsys.ReadFile(relPath)
	if err != nil {
		if log != nil {
			log.Warning("could not read solution file %q: %v; proceeding with full-workspace scope", relPath, err)
		}
		return newResult(), nil
	}

	result := newResult()
	solutionDir := path.Dir(pathutil.ToSlash(relPath))

	for _, m := range projectReference.FindAllStringSubmatch(string(content), -1) {
		name, rawRel := m[1], m[2]
		projRel := pathutil.ToSlash(strings.ReplaceAll(rawRel, `\`, "/"))
		if solutionDir != "." {
			projRel = path.Join(solutionDir, projRel)
		}
		projRel = path.Clean(projRel)

		if !pathutil.IsSourceOrHeader(projRel) && pathutil.Ext(projRel) != "vcxproj" {
			continue
		}
		if !fsys.Exists(projRel) {
			continue
		}

		sub, err := parseProject(fsys, log, projRel)
		if err != nil {
			continue
		}

		for f := range sub.ProjectScope {
			result.ProjectScope[f] = struct{}{}
		}

		desc := &types.ModuleDescriptor{
			Name:     name,
			RootPath: path.Dir(projRel),
			Kind:     types.ModuleKindProjectFile,
			Files:    make(map[string]struct{}, len(sub.ProjectScope)),
		}
		for f := range sub.ProjectScope {
			desc.Files[f] = struct{}{}
		}
		result.Modules[name] = desc
	}

	return result, nil
}

func parseProject(fsys platform.FileSystem, log *logging.Logger, relPath string) (*Result, error) {
	content, err := fsys.ReadFile(relPath)
	if err != nil {
		if log != nil {
			log.Warning("could not read project file %q: %v; proceeding with full-workspace scope", relPath, err)
		}
		return newResult(), nil
	}

	result := newResult()
	projectDir := path.Dir(pathutil.ToSlash(relPath))

	for _, m := range clItem.FindAllStringSubmatch(string(content), -1) {
		raw := pathutil.ToSlash(m[1])

		if strings.Contains(raw, "*") {
			for _, f := range expandGlob(fsys, projectDir, raw) {
				result.ProjectScope[f] = struct{}{}
			}
			continue
		}

		resolved := raw
		if projectDir != "." {
			resolved = path.Join(projectDir, raw)
		}
		resolved = path.Clean(resolved)

		if strings.HasPrefix(resolved, "../") || resolved == ".." {
			continue
		}

		result.ProjectScope[resolved] = struct{}{}
	}

	return result, nil
}
