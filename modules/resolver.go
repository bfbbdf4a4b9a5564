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

// Package modules groups a workspace's files into logical modules
// (projects, buildscript-declared units, CMake targets, or directory
// buckets) and attributes an affected-file set to each.
package modules

import (
	"context"
	"fmt"
	"sort"

	"rebuildradar.dev/core/internal/logging"
	"rebuildradar.dev/core/internal/platform"
	"rebuildradar.dev/core/projectfile"
	"rebuildradar.dev/core/types"
)

// Strategy selects which module-detection approach Detect uses.
type Strategy string

const (
	StrategyAuto        Strategy = "auto"
	StrategyProjectFile Strategy = "project_file"
	StrategyBuildscript Strategy = "buildscript"
	StrategyCMake       Strategy = "cmake"
	StrategyDirectory   Strategy = "directory"
	StrategyNone        Strategy = "none"
)

// Resolver groups files into modules and attributes affected files
// back to them. It is owned by a single Analyzer.Run invocation.
type Resolver struct {
	fsys platform.FileSystem
	root string
	log  *logging.Logger

	modules      map[string]*types.ModuleDescriptor
	moduleNames  []string // registration order, for "first wins" stability
	fileToModule map[string]string
}

// New creates a Resolver rooted at root, using fsys for filesystem
// access during buildscript/CMake discovery.
func New(fsys platform.FileSystem, root string, log *logging.Logger) *Resolver {
	return &Resolver{
		fsys:         fsys,
		root:         root,
		log:          log,
		modules:      make(map[string]*types.ModuleDescriptor),
		fileToModule: make(map[string]string),
	}
}

// Detect populates the resolver's module set using strategy. When
// strategy is StrategyAuto, each strategy is tried in turn
// (project_file, buildscript, cmake, directory) and the first to
// produce at least one module wins. prebuilt may be nil.
func (r *Resolver) Detect(ctx context.Context, strategy Strategy, prebuilt *projectfile.Result, fileSet []string) error {
	switch strategy {
	case StrategyNone:
		return nil
	case StrategyProjectFile:
		return r.detectPrebuilt(prebuilt)
	case StrategyBuildscript:
		return r.detectBuildscript(ctx, fileSet)
	case StrategyCMake:
		return r.detectCMake(ctx, fileSet)
	case StrategyDirectory:
		return r.detectDirectory(fileSet)
	case StrategyAuto, "":
		for _, step := range []func() error{
			func() error { return r.detectPrebuilt(prebuilt) },
			func() error { return r.detectBuildscript(ctx, fileSet) },
			func() error { return r.detectCMake(ctx, fileSet) },
			func() error { return r.detectDirectory(fileSet) },
		} {
			if err := step(); err != nil {
				return err
			}
			if len(r.modules) > 0 {
				break
			}
		}
		return nil
	default:
		return fmt.Errorf("unknown module detection strategy %q", strategy)
	}
}

// register adds desc to the module set (first call for a given name
// wins, matching "first registered wins" on file-ownership collision)
// and indexes its files. Callers must register modules in a stable,
// sorted-by-name order, so detection is deterministic regardless of
// filesystem enumeration order.
func (r *Resolver) register(desc *types.ModuleDescriptor) {
	if _, exists := r.modules[desc.Name]; exists {
		return
	}
	r.modules[desc.Name] = desc
	r.moduleNames = append(r.moduleNames, desc.Name)

	for f := range desc.Files {
		if _, claimed := r.fileToModule[f]; !claimed {
			r.fileToModule[f] = desc.Name
		}
	}
}

// registerSorted registers a batch of descriptors in deterministic,
// name-sorted order.
func (r *Resolver) registerSorted(descs map[string]*types.ModuleDescriptor) {
	names := make([]string, 0, len(descs))
	for name := range descs {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		r.register(descs[name])
	}
}

// Modules returns every detected module, keyed by name.
func (r *Resolver) Modules() map[string]*types.ModuleDescriptor {
	return r.modules
}

// ResolveFileModule returns the module owning path, if any.
func (r *Resolver) ResolveFileModule(path string) (string, bool) {
	name, ok := r.fileToModule[path]
	return name, ok
}

// Group buckets affected by owning module and sorts the result by
// AffectedFilesCount descending.
func (r *Resolver) Group(affected map[string]struct{}) []types.ModuleImpact {
	byModule := make(map[string][]string)
	for f := range affected {
		name, ok := r.fileToModule[f]
		if !ok {
			continue
		}
		byModule[name] = append(byModule[name], f)
	}

	impacts := make([]types.ModuleImpact, 0, len(byModule))
	for name, files := range byModule {
		desc := r.modules[name]
		sort.Strings(files)
		impacts = append(impacts, types.ModuleImpact{
			Name:               desc.Name,
			RootPath:           desc.RootPath,
			Kind:               desc.Kind,
			TotalFiles:         len(desc.Files),
			AffectedFilesCount: len(files),
			AffectedFileList:   files,
		})
	}

	sort.Slice(impacts, func(i, j int) bool {
		if impacts[i].AffectedFilesCount != impacts[j].AffectedFilesCount {
			return impacts[i].AffectedFilesCount > impacts[j].AffectedFilesCount
		}
		return impacts[i].Name < impacts[j].Name
	})

	return impacts
}
