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

// Package analyzer is the change analyzer (orchestrator): it sequences
// the project-file parser, the dependency graph, the module resolver,
// and the impact estimator into a single analysis run, producing one
// ImpactReport per call.
package analyzer

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"
	"sort"
	"sync"
	"time"

	"rebuildradar.dev/core/cache"
	"rebuildradar.dev/core/depgraph"
	"rebuildradar.dev/core/estimate"
	"rebuildradar.dev/core/internal/logging"
	"rebuildradar.dev/core/internal/platform"
	"rebuildradar.dev/core/modules"
	"rebuildradar.dev/core/pathutil"
	"rebuildradar.dev/core/projectfile"
	"rebuildradar.dev/core/types"
	"rebuildradar.dev/core/vcsadapter"
)

// ErrAnalysisInProgress is returned by Run when another analysis is
// already executing: the core is single-tasked, one analysis at a time.
var ErrAnalysisInProgress = errors.New("an analysis is already in progress")

// runGuard is the process-wide "analysis in progress" flag: an
// explicit single-slot resource acquired for the duration of one Run
// call.
var runGuard sync.Mutex

func acquireRunGuard() bool {
	return runGuard.TryLock()
}

func releaseRunGuard() {
	runGuard.Unlock()
}

// Analyzer holds the components one analysis run wires together. It
// is safe to reuse across calls to Run (sequentially; concurrent calls
// are rejected via runGuard).
type Analyzer struct {
	fsys  platform.FileSystem
	root  string
	cache cache.Store
	vcs   vcsadapter.Adapter
	log   *logging.Logger
}

// New constructs an Analyzer rooted at a workspace.
func New(fsys platform.FileSystem, root string, store cache.Store, vcs vcsadapter.Adapter, log *logging.Logger) *Analyzer {
	return &Analyzer{fsys: fsys, root: root, cache: store, vcs: vcs, log: log}
}

// Run executes one full analysis and assembles the final ImpactReport.
// It sequences phases in a fixed order: scope parse -> graph
// warm-load -> scan -> mtime-diff -> include-parse -> commit
// enumeration -> module detection -> per-commit BFS -> aggregation.
func (a *Analyzer) Run(ctx context.Context, cfg Config) (report *types.ImpactReport, err error) {
	if !acquireRunGuard() {
		return nil, ErrAnalysisInProgress
	}
	defer releaseRunGuard()

	defer func() {
		if r := recover(); r != nil {
			if a.log != nil {
				a.log.Error("analysis panicked: %v\n%s", r, debug.Stack())
			}
			panic(r)
		}
	}()

	// 1-2. scope parse
	var projectScope map[string]struct{}
	var prebuilt *projectfile.Result
	if cfg.ProjectFile != "" {
		result, parseErr := projectfile.Parse(a.fsys, a.log, cfg.ProjectFile)
		if parseErr != nil {
			if a.log != nil {
				a.log.Warning("project file parse failed: %v; proceeding with full-workspace scope", parseErr)
			}
		} else if len(result.ProjectScope) > 0 {
			projectScope = result.ProjectScope
			prebuilt = result
		}
	}

	// 3. graph warm-load, scan, persist
	graph := depgraph.New(a.fsys, a.root, a.log)
	if a.cache != nil {
		cached, cacheErr := a.cache.Load(a.root)
		if cacheErr != nil && a.log != nil {
			a.log.Warning("graph cache load failed: %v; proceeding with a cold build", cacheErr)
		}
		if cached != nil {
			if loadErr := graph.LoadCache(cached); loadErr != nil && a.log != nil {
				a.log.Warning("graph cache was discarded: %v", loadErr)
			}
		}
	}

	if buildErr := graph.Build(ctx, depgraph.Options{
		IncludePaths: cfg.IncludePaths,
		ExcludePaths: cfg.ExcludePaths,
		ProjectScope: projectScope,
	}); buildErr != nil {
		if a.log != nil {
			a.log.Error("dependency graph build failed: %v", buildErr)
		}
		return nil, fmt.Errorf("dependency graph build failed: %w", buildErr)
	}

	if a.cache != nil {
		if saveErr := a.cache.Save(graph.ToCache()); saveErr != nil && a.log != nil {
			a.log.Warning("graph cache persistence failed: %v", saveErr)
		}
	}

	// 4. commit enumeration
	var commits []types.CommitInfo
	if a.vcs != nil {
		commits, err = a.vcs.IncomingCommits(ctx)
		if err != nil {
			return nil, fmt.Errorf("enumerating incoming commits: %w", err)
		}
	}

	// 5. module detection
	resolver := modules.New(a.fsys, a.root, a.log)
	allFiles := collectFileSet(projectScope, graph)
	if detectErr := resolver.Detect(ctx, cfg.ModuleDetection, prebuilt, allFiles); detectErr != nil {
		return nil, fmt.Errorf("module detection failed: %w", detectErr)
	}

	// 6. denominator
	totalFiles := graph.TotalFiles()
	usingGraph := totalFiles > 0
	if !usingGraph && a.vcs != nil {
		trackedCount, trackedErr := a.vcs.TrackedFileCount(ctx)
		if trackedErr != nil && a.log != nil {
			a.log.Warning("tracked-file-count fallback failed: %v", trackedErr)
		}
		totalFiles = trackedCount
	}

	// 7. per-commit impact
	commitImpacts := make([]types.CommitImpact, 0, len(commits))
	unionRebuild := make(map[string]struct{})
	for _, commit := range commits {
		changed := make([]string, 0, len(commit.ChangedFiles))
		for _, fc := range commit.ChangedFiles {
			changed = append(changed, pathutil.ToSlash(fc.Path))
		}

		var rebuild map[string]struct{}
		if usingGraph {
			rebuild = graph.Affected(changed)
		} else {
			rebuild = make(map[string]struct{}, len(changed))
			for _, f := range changed {
				rebuild[f] = struct{}{}
			}
		}

		for f := range rebuild {
			unionRebuild[f] = struct{}{}
		}

		commitImpacts = append(commitImpacts, types.CommitImpact{
			Commit:          commit,
			ImpactPct:       estimate.Percentage(len(rebuild), totalFiles),
			ChangedFiles:    changed,
			RebuildFiles:    sortedKeys(rebuild),
			AffectedModules: resolver.Group(rebuild),
		})
	}

	// 8. aggregation
	moduleImpacts := resolver.Group(unionRebuild)
	affectedModuleCount := 0
	for _, mi := range moduleImpacts {
		if mi.AffectedFilesCount > 0 {
			affectedModuleCount++
		}
	}

	return &types.ImpactReport{
		GlobalImpactPct:     estimate.Percentage(len(unionRebuild), totalFiles),
		TotalProjectFiles:   totalFiles,
		TotalAffectedFiles:  len(unionRebuild),
		CommitImpacts:       commitImpacts,
		AllRebuildFiles:     sortedKeys(unionRebuild),
		TotalModules:        len(resolver.Modules()),
		AffectedModuleCount: affectedModuleCount,
		ModuleImpacts:       moduleImpacts,
		GeneratedAt:         time.Now().UTC(),
	}, nil
}

// collectFileSet returns the file set module detection's directory
// fallback and buildscript/CMake scans should reason over: the project
// scope when one is configured, else every file the graph discovered.
func collectFileSet(projectScope map[string]struct{}, graph *depgraph.Graph) []string {
	if len(projectScope) > 0 {
		out := make([]string, 0, len(projectScope))
		for f := range projectScope {
			out = append(out, f)
		}
		sort.Strings(out)
		return out
	}
	return graph.AllFiles()
}

func sortedKeys(m map[string]struct{}) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
