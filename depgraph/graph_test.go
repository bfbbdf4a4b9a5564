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
package depgraph_test

import (
	"context"
	"testing"
	"time"

	"rebuildradar.dev/core/depgraph"
	"rebuildradar.dev/core/internal/platform"
)

func newTestFS(files map[string]string) *platform.MapFileSystem {
	mfs := platform.NewMapFileSystem(platform.NewMockTimeProvider(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)))
	for path, content := range files {
		mfs.AddFile(path, content, 0644)
	}
	return mfs
}

func newTestGraph(files map[string]string) (*depgraph.Graph, *platform.MapFileSystem) {
	mfs := newTestFS(files)
	g := depgraph.New(mfs, "", nil)
	return g, mfs
}

// A header included by two translation units
// affects both when it changes.
func TestGraph_HeaderFanout(t *testing.T) {
	g, _ := newTestGraph(map[string]string{
		"common/shared.h": "#pragma once\n",
		"a.cpp":           `#include "common/shared.h"` + "\n",
		"b.cpp":           `#include "common/shared.h"` + "\n",
	})

	if err := g.Build(context.Background(), depgraph.Options{}); err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	affected := g.Affected([]string{"common/shared.h"})
	for _, want := range []string{"common/shared.h", "a.cpp", "b.cpp"} {
		if _, ok := affected[want]; !ok {
			t.Errorf("expected %q in affected set, got %v", want, affected)
		}
	}
}

// A .cpp change only affects itself, never propagates.
func TestGraph_SourceChangeIsLeaf(t *testing.T) {
	g, _ := newTestGraph(map[string]string{
		"common/shared.h": "#pragma once\n",
		"a.cpp":           `#include "common/shared.h"` + "\n",
		"b.cpp":           `#include "common/shared.h"` + "\n",
	})

	if err := g.Build(context.Background(), depgraph.Options{}); err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	affected := g.Affected([]string{"a.cpp"})
	if len(affected) != 1 {
		t.Errorf("expected only a.cpp in affected set, got %v", affected)
	}
	if _, ok := affected["a.cpp"]; !ok {
		t.Errorf("expected a.cpp in affected set, got %v", affected)
	}
}

// Transitive header chains propagate multiple hops.
func TestGraph_TransitiveHeaderChain(t *testing.T) {
	g, _ := newTestGraph(map[string]string{
		"base.h":   "#pragma once\n",
		"mid.h":    `#include "base.h"` + "\n",
		"leaf.cpp": `#include "mid.h"` + "\n",
	})

	if err := g.Build(context.Background(), depgraph.Options{}); err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	affected := g.Affected([]string{"base.h"})
	for _, want := range []string{"base.h", "mid.h", "leaf.cpp"} {
		if _, ok := affected[want]; !ok {
			t.Errorf("expected %q in affected set, got %v", want, affected)
		}
	}
}

// Sibling-relative resolution takes priority over a same-named file
// living elsewhere in the workspace.
func TestGraph_SiblingRelativeResolution(t *testing.T) {
	g, _ := newTestGraph(map[string]string{
		"feature/feature.h": "#pragma once\n",
		"feature/impl.cpp":  `#include "feature.h"` + "\n",
		"other/feature.h":   "#pragma once\n",
	})

	if err := g.Build(context.Background(), depgraph.Options{}); err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	affected := g.Affected([]string{"other/feature.h"})
	if _, ok := affected["feature/impl.cpp"]; ok {
		t.Errorf("other/feature.h change should not affect feature/impl.cpp, got %v", affected)
	}

	affected = g.Affected([]string{"feature/feature.h"})
	if _, ok := affected["feature/impl.cpp"]; !ok {
		t.Errorf("feature/feature.h change should affect feature/impl.cpp, got %v", affected)
	}
}

// A second Build call with no filesystem changes must not alter the
// graph's query results (idempotent incremental rebuild).
func TestGraph_IdempotentRebuild(t *testing.T) {
	g, _ := newTestGraph(map[string]string{
		"common/shared.h": "#pragma once\n",
		"a.cpp":           `#include "common/shared.h"` + "\n",
	})

	if err := g.Build(context.Background(), depgraph.Options{}); err != nil {
		t.Fatalf("first Build failed: %v", err)
	}
	first := g.Affected([]string{"common/shared.h"})

	if err := g.Build(context.Background(), depgraph.Options{}); err != nil {
		t.Fatalf("second Build failed: %v", err)
	}
	second := g.Affected([]string{"common/shared.h"})

	if len(first) != len(second) {
		t.Fatalf("affected set changed across idempotent rebuild: %v vs %v", first, second)
	}
	for p := range first {
		if _, ok := second[p]; !ok {
			t.Errorf("%q present after first Build but missing after second", p)
		}
	}
}

// Cycle safety (property 5): a directory whose canonical path aliases
// one already visited is skipped, so the scan terminates instead of
// looping forever.
func TestGraph_CycleSafety(t *testing.T) {
	mfs := newTestFS(map[string]string{
		"a/file.h": "#pragma once\n",
		"b/file.h": "#pragma once\n",
	})
	mfs.SetRealpathAlias("a", "/canonical/shared")
	mfs.SetRealpathAlias("b", "/canonical/shared")

	g := depgraph.New(mfs, "", nil)
	if err := g.Build(context.Background(), depgraph.Options{}); err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	if got := g.TotalFiles(); got != 1 {
		t.Errorf("expected cycle to collapse a/ and b/ into one visited directory, TotalFiles()=%d", got)
	}
}

// A changed #include set, with an advanced mtime, is picked up on the
// next incremental Build.
func TestGraph_IncrementalEditPicksUpNewInclude(t *testing.T) {
	timeProvider := platform.NewMockTimeProvider(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	mfs := platform.NewMapFileSystem(timeProvider)
	mfs.AddFile("base.h", "#pragma once\n", 0644)
	mfs.AddFile("a.cpp", "int main() { return 0; }\n", 0644)

	g := depgraph.New(mfs, "", nil)
	if err := g.Build(context.Background(), depgraph.Options{}); err != nil {
		t.Fatalf("first Build failed: %v", err)
	}
	if affected := g.Affected([]string{"base.h"}); len(affected) != 1 {
		t.Fatalf("expected base.h to affect only itself before edit, got %v", affected)
	}

	timeProvider.AdvanceTime(time.Minute)
	if err := mfs.WriteFile("a.cpp", []byte(`#include "base.h"`+"\n"), 0644); err != nil {
		t.Fatalf("rewrite failed: %v", err)
	}

	if err := g.Build(context.Background(), depgraph.Options{}); err != nil {
		t.Fatalf("second Build failed: %v", err)
	}

	affected := g.Affected([]string{"base.h"})
	if _, ok := affected["a.cpp"]; !ok {
		t.Errorf("expected a.cpp to pick up new #include of base.h, got %v", affected)
	}
}

// A file removed from the filesystem is purged from the graph on the
// next Build, including its outgoing edges.
func TestGraph_RemovedFileIsPurged(t *testing.T) {
	timeProvider := platform.NewMockTimeProvider(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	mfs := platform.NewMapFileSystem(timeProvider)
	mfs.AddFile("common/shared.h", "#pragma once\n", 0644)
	mfs.AddFile("a.cpp", `#include "common/shared.h"`+"\n", 0644)

	g := depgraph.New(mfs, "", nil)
	if err := g.Build(context.Background(), depgraph.Options{}); err != nil {
		t.Fatalf("first Build failed: %v", err)
	}
	if got := g.TotalFiles(); got != 2 {
		t.Fatalf("expected 2 files before removal, got %d", got)
	}

	if err := mfs.Remove("a.cpp"); err != nil {
		t.Fatalf("remove failed: %v", err)
	}

	if err := g.Build(context.Background(), depgraph.Options{}); err != nil {
		t.Fatalf("second Build failed: %v", err)
	}
	if got := g.TotalFiles(); got != 1 {
		t.Errorf("expected 1 file after removal, got %d", got)
	}
	if got := g.DependentCount("common/shared.h"); got != 0 {
		t.Errorf("expected common/shared.h to have no dependents after a.cpp removal, got %d", got)
	}
}

// ProjectScope restricts both TotalFiles and the Affected result set,
// without limiting what gets scanned for edges.
func TestGraph_ProjectScopeFiltersResult(t *testing.T) {
	g, _ := newTestGraph(map[string]string{
		"common/shared.h": "#pragma once\n",
		"in_scope.cpp":    `#include "common/shared.h"` + "\n",
		"vendor/out.cpp":  `#include "common/shared.h"` + "\n",
	})

	opts := depgraph.Options{
		ProjectScope: map[string]struct{}{
			"in_scope.cpp":    {},
			"common/shared.h": {},
		},
	}
	if err := g.Build(context.Background(), opts); err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	if got := g.TotalFiles(); got != 2 {
		t.Errorf("expected TotalFiles()=2 with ProjectScope set, got %d", got)
	}

	affected := g.Affected([]string{"common/shared.h"})
	if _, ok := affected["vendor/out.cpp"]; ok {
		t.Errorf("vendor/out.cpp is out of ProjectScope and must not appear, got %v", affected)
	}
	if _, ok := affected["in_scope.cpp"]; !ok {
		t.Errorf("in_scope.cpp should appear in affected set, got %v", affected)
	}
}

// Round-tripping through ToCache/LoadCache must reproduce identical
// query results without a rescan.
func TestGraph_CacheRoundTrip(t *testing.T) {
	g, _ := newTestGraph(map[string]string{
		"common/shared.h": "#pragma once\n",
		"a.cpp":           `#include "common/shared.h"` + "\n",
	})
	if err := g.Build(context.Background(), depgraph.Options{}); err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	cache := g.ToCache()

	restored := depgraph.New(newTestFS(nil), "", nil)
	if err := restored.LoadCache(cache); err != nil {
		t.Fatalf("LoadCache failed: %v", err)
	}

	want := g.Affected([]string{"common/shared.h"})
	got := restored.Affected([]string{"common/shared.h"})
	if len(want) != len(got) {
		t.Fatalf("affected set mismatch after cache round trip: want %v, got %v", want, got)
	}
	for p := range want {
		if _, ok := got[p]; !ok {
			t.Errorf("%q missing from restored graph's affected set", p)
		}
	}
}

// LoadCache silently discards a cache built for a different workspace
// root rather than erroring.
func TestGraph_LoadCacheRootMismatchIsSilentNoOp(t *testing.T) {
	g, _ := newTestGraph(map[string]string{
		"a.cpp": "int main() { return 0; }\n",
	})
	if err := g.Build(context.Background(), depgraph.Options{}); err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	cache := g.ToCache()
	cache.RootPath = "/some/other/workspace"

	if err := g.LoadCache(cache); err != nil {
		t.Fatalf("LoadCache should be a no-op on root mismatch, got error: %v", err)
	}
	if got := g.TotalFiles(); got != 1 {
		t.Errorf("expected graph to be untouched by mismatched cache, TotalFiles()=%d", got)
	}
}
