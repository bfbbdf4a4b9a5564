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
package cache_test

import (
	"testing"
	"time"

	"rebuildradar.dev/core/cache"
	"rebuildradar.dev/core/internal/platform"
	"rebuildradar.dev/core/types"
)

func TestFileStore_SaveLoadRoundTrip(t *testing.T) {
	mfs := platform.NewMapFileSystem(platform.NewMockTimeProvider(time.Now()))
	store := cache.NewFileStore(mfs)

	c := &types.GraphCache{
		RootPath: "/workspace/project",
		BuiltAt:  "2026-01-01T00:00:00Z",
		Files: map[string]types.CachedFileEntry{
			"a.cpp": {MTimeMs: 100, ResolvedIncludes: []string{"a.h"}},
		},
	}

	if err := store.Save(c); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	got, err := store.Load("/workspace/project")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if got == nil {
		t.Fatal("expected a cache hit, got nil")
	}
	if got.RootPath != c.RootPath {
		t.Errorf("expected RootPath %q, got %q", c.RootPath, got.RootPath)
	}
	if got.Files["a.cpp"].MTimeMs != 100 {
		t.Errorf("expected mtime 100, got %d", got.Files["a.cpp"].MTimeMs)
	}
}

func TestFileStore_LoadMissIsNotError(t *testing.T) {
	mfs := platform.NewMapFileSystem(platform.NewMockTimeProvider(time.Now()))
	store := cache.NewFileStore(mfs)

	got, err := store.Load("/never/saved")
	if err != nil {
		t.Fatalf("expected no error on cache miss, got %v", err)
	}
	if got != nil {
		t.Errorf("expected nil on cache miss, got %v", got)
	}
}

func TestFileStore_DifferentRootIsIndependentCacheEntry(t *testing.T) {
	mfs := platform.NewMapFileSystem(platform.NewMockTimeProvider(time.Now()))
	store := cache.NewFileStore(mfs)

	if err := store.Save(&types.GraphCache{RootPath: "/workspace/a", Files: map[string]types.CachedFileEntry{}}); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	got, err := store.Load("/workspace/b")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if got != nil {
		t.Errorf("expected cache miss for a root that was never saved, got %v", got)
	}
}
