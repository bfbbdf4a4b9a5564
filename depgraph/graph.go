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

// Package depgraph builds and queries the reverse-dependency graph over
// a C/C++ workspace's #include "…" edges. It scans the workspace once
// (or incrementally, warm-started from a cache), then answers rebuild-
// closure queries by BFS over reverse-dependency edges.
package depgraph

import (
	"context"
	"fmt"
	"path"
	"runtime/debug"
	"strings"
	"time"

	"github.com/agext/levenshtein"

	"rebuildradar.dev/core/internal/logging"
	"rebuildradar.dev/core/internal/platform"
	"rebuildradar.dev/core/pathutil"
	"rebuildradar.dev/core/types"
)

// node is one discovered source or header file.
type node struct {
	path             string
	mtimeMs          int64
	resolvedIncludes []string
}

// Graph is the reverse-dependency graph over a single workspace root.
// It is owned exclusively by whichever orchestrator calls Build; nothing
// else should mutate its maps concurrently.
type Graph struct {
	fsys platform.FileSystem
	root string
	log  *logging.Logger

	files         map[string]*node
	reverseDeps   map[string]map[string]struct{}
	filenameIndex map[string][]string
	projectScope  map[string]struct{}
}

// New creates an empty graph rooted at root, using fsys for all file
// access. log may be nil, in which case diagnostics are dropped.
func New(fsys platform.FileSystem, root string, log *logging.Logger) *Graph {
	return &Graph{
		fsys:          fsys,
		root:          root,
		log:           log,
		files:         make(map[string]*node),
		reverseDeps:   make(map[string]map[string]struct{}),
		filenameIndex: make(map[string][]string),
	}
}

// Build scans the workspace (or re-scans it incrementally, if files/
// reverseDeps/filenameIndex were already populated via LoadCache), and
// (re)parses any new or modified file. It is safe to call repeatedly;
// a second call with no filesystem changes reparses nothing.
func (g *Graph) Build(ctx context.Context, opts Options) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("dependency graph build panicked: %v\n%s", r, debug.Stack())
		}
	}()

	g.projectScope = opts.ProjectScope

	filter := newSkipFilter(opts.ExcludePaths, g.readGitignoreLines())

	discovered, scanErr := g.scanWorkspace(ctx, opts, filter)
	if scanErr != nil {
		return scanErr
	}

	discoveredSet := make(map[string]struct{}, len(discovered))
	for _, p := range discovered {
		discoveredSet[p] = struct{}{}
	}

	for p := range g.files {
		if _, ok := discoveredSet[p]; !ok {
			g.purgeFile(p)
		}
	}

	var reparse []string
	for _, p := range discovered {
		info, statErr := g.fsys.Stat(path.Join(g.root, p))
		if statErr != nil {
			// Transient I/O: the file vanished between scan and stat.
			continue
		}
		mtimeMs := info.ModTime().UnixMilli()

		existing, ok := g.files[p]
		if !ok {
			g.files[p] = &node{path: p, mtimeMs: mtimeMs}
			addToIndex(g.filenameIndex, p)
			reparse = append(reparse, p)
			continue
		}
		if existing.mtimeMs != mtimeMs {
			existing.mtimeMs = mtimeMs
			reparse = append(reparse, p)
		}
	}

	for _, p := range reparse {
		g.reparseFile(p)
	}

	return nil
}

// reparseFile re-reads and re-parses one file's #include edges,
// purging its previous outgoing edges first.
func (g *Graph) reparseFile(p string) {
	n := g.files[p]
	g.purgeOutgoingEdges(p, n.resolvedIncludes)

	content, err := g.fsys.ReadFile(path.Join(g.root, p))
	if err != nil {
		n.resolvedIncludes = nil
		return
	}

	targets := parseIncludeTargets(content)
	resolved := make([]string, 0, len(targets))
	for _, target := range targets {
		if rp, ok := g.resolveInclude(p, target); ok {
			resolved = append(resolved, rp)
			addEdge(g.reverseDeps, rp, p)
		}
	}
	n.resolvedIncludes = resolved
}

func (g *Graph) purgeOutgoingEdges(dependent string, includes []string) {
	for _, inc := range includes {
		if deps, ok := g.reverseDeps[inc]; ok {
			delete(deps, dependent)
			if len(deps) == 0 {
				delete(g.reverseDeps, inc)
			}
		}
	}
}

// purgeFile removes p entirely: its node, its outgoing edges, and its
// filename-index entry.
func (g *Graph) purgeFile(p string) {
	if n, ok := g.files[p]; ok {
		g.purgeOutgoingEdges(p, n.resolvedIncludes)
		delete(g.files, p)
	}
	delete(g.reverseDeps, p)
	removeFromIndex(g.filenameIndex, p)
}

// Affected returns the rebuild closure for a set of changed paths: the
// BFS over reverse-dependency edges, filtered to
// ProjectScope (if set) at return time.
func (g *Graph) Affected(changed []string) map[string]struct{} {
	result := make(map[string]struct{}, len(changed))
	var queue []string

	for _, raw := range changed {
		p := pathutil.ToSlash(raw)
		result[p] = struct{}{}
		if pathutil.IsHeader(p) {
			queue = append(queue, p)
		}
	}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for dep := range g.reverseDeps[cur] {
			if _, ok := result[dep]; ok {
				continue
			}
			result[dep] = struct{}{}
			if pathutil.IsHeader(dep) {
				queue = append(queue, dep)
			}
		}
	}

	if len(g.projectScope) > 0 {
		for p := range result {
			if _, inScope := g.projectScope[p]; !inScope {
				delete(result, p)
			}
		}
	}

	return result
}

// DependentCount returns the number of files that directly #include p.
func (g *Graph) DependentCount(path string) int {
	return len(g.reverseDeps[pathutil.ToSlash(path)])
}

// TotalFiles is the analysis denominator: the project scope size when
// one is configured, else the number of discovered files.
func (g *Graph) TotalFiles() int {
	if len(g.projectScope) > 0 {
		return len(g.projectScope)
	}
	return len(g.files)
}

// AllFiles returns every discovered source/header path, for callers
// (the module resolver's buildscript/CMake/directory strategies) that
// need the full file set rather than a single lookup.
func (g *Graph) AllFiles() []string {
	out := make([]string, 0, len(g.files))
	for p := range g.files {
		out = append(out, p)
	}
	return out
}

// LoadCache warm-starts the graph from a persisted snapshot. A root
// mismatch discards the cache silently: the graph is left
// unchanged.
func (g *Graph) LoadCache(c *types.GraphCache) error {
	if c == nil {
		return nil
	}
	if c.RootPath != g.root {
		return nil
	}
	g.files = make(map[string]*node, len(c.Files))
	g.reverseDeps = make(map[string]map[string]struct{})
	g.filenameIndex = make(map[string][]string)

	for p, entry := range c.Files {
		n := &node{
			path:             p,
			mtimeMs:          entry.MTimeMs,
			resolvedIncludes: append([]string(nil), entry.ResolvedIncludes...),
		}
		g.files[p] = n
		addToIndex(g.filenameIndex, p)
		for _, inc := range n.resolvedIncludes {
			addEdge(g.reverseDeps, inc, p)
		}
	}
	return nil
}

// ToCache snapshots the current graph for persistence.
func (g *Graph) ToCache() *types.GraphCache {
	out := &types.GraphCache{
		RootPath: g.root,
		BuiltAt:  time.Now().UTC().Format(time.RFC3339),
		Files:    make(map[string]types.CachedFileEntry, len(g.files)),
	}
	for p, n := range g.files {
		out.Files[p] = types.CachedFileEntry{
			MTimeMs:          n.mtimeMs,
			ResolvedIncludes: append([]string(nil), n.resolvedIncludes...),
		}
	}
	return out
}

func (g *Graph) readGitignoreLines() []string {
	content, err := g.fsys.ReadFile(path.Join(g.root, ".gitignore"))
	if err != nil {
		return nil
	}
	return strings.Split(string(content), "\n")
}

func (g *Graph) fileExists(p string) bool {
	_, ok := g.files[p]
	return ok
}

// resolveInclude tries, in order: sibling-relative, workspace-root-relative,
// then fuzzy-by-basename.
func (g *Graph) resolveInclude(includingFile, rawTarget string) (string, bool) {
	target := pathutil.ToSlash(rawTarget)

	sibling := pathutil.ToSlash(path.Join(path.Dir(includingFile), target))
	if g.fileExists(sibling) {
		return sibling, true
	}

	rootRel := pathutil.ToSlash(path.Clean(target))
	if g.fileExists(rootRel) {
		return rootRel, true
	}

	base := strings.ToLower(path.Base(target))
	candidates := g.filenameIndex[base]
	for _, c := range candidates {
		if c == target || strings.HasSuffix(c, "/"+target) {
			return c, true
		}
	}
	if len(candidates) == 1 {
		return candidates[0], true
	}

	g.logUnresolvedInclude(base)
	return "", false
}

// logUnresolvedInclude emits a best-effort "did you mean" diagnostic
// using edit distance over basenames already in the index. It never
// resolves the include — only a suffix match or a unique basename
// candidate does that.
func (g *Graph) logUnresolvedInclude(base string) {
	if g.log == nil {
		return
	}
	params := levenshtein.NewParams()
	best, bestDist := "", -1
	for candidate := range g.filenameIndex {
		if candidate == base {
			continue
		}
		d := levenshtein.Distance(base, candidate, params)
		if d <= 2 && (bestDist == -1 || d < bestDist) {
			best, bestDist = candidate, d
		}
	}
	if best != "" {
		g.log.Warning("unresolved #include %q; a similarly named file %q exists elsewhere in the workspace", base, best)
	}
}

func addEdge(reverseDeps map[string]map[string]struct{}, target, dependent string) {
	set, ok := reverseDeps[target]
	if !ok {
		set = make(map[string]struct{})
		reverseDeps[target] = set
	}
	set[dependent] = struct{}{}
}

func addToIndex(index map[string][]string, p string) {
	base := pathutil.Basename(p)
	for _, existing := range index[base] {
		if existing == p {
			return
		}
	}
	index[base] = append(index[base], p)
}

func removeFromIndex(index map[string][]string, p string) {
	base := pathutil.Basename(p)
	list := index[base]
	for i, existing := range list {
		if existing == p {
			index[base] = append(list[:i], list[i+1:]...)
			break
		}
	}
	if len(index[base]) == 0 {
		delete(index, base)
	}
}
