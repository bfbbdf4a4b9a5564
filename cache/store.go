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

// Package cache persists a dependency graph snapshot between analyzer
// runs, so a subsequent run can warm-start instead of rescanning a
// workspace cold.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"

	"rebuildradar.dev/core/internal/platform"
	"rebuildradar.dev/core/types"
)

// Store persists and retrieves a GraphCache. A root mismatch or a
// corrupt blob is a cache miss, not an error: Load returns (nil, nil)
// so the caller falls back to a cold Build.
type Store interface {
	Load(root string) (*types.GraphCache, error)
	Save(c *types.GraphCache) error
}

// FileStore is the default Store, backing the cache with a single JSON
// file per workspace root under the user's XDG cache directory.
type FileStore struct {
	fsys platform.FileSystem
}

// NewFileStore creates a FileStore using fsys for all file access.
func NewFileStore(fsys platform.FileSystem) *FileStore {
	return &FileStore{fsys: fsys}
}

// pathFor resolves the on-disk cache path for a workspace root,
// creating any missing parent directories along the way.
func pathFor(root string) (string, error) {
	name := hashRoot(root) + ".json"
	path, err := xdg.CacheFile(filepath.Join("rbr", "graphs", name))
	if err != nil {
		return "", fmt.Errorf("could not resolve cache directory: %w", err)
	}
	return path, nil
}

func hashRoot(root string) string {
	sum := sha256.Sum256([]byte(root))
	return hex.EncodeToString(sum[:])[:16]
}

// Load reads the persisted GraphCache for root. Any failure to locate,
// read, or decode it is treated as a cache miss: corruption or a root
// mismatch discards the cache rather than failing the run. Callers
// should fall back to Graph.Build from scratch, not treat a
// nil return as fatal.
func (s *FileStore) Load(root string) (*types.GraphCache, error) {
	path, err := pathFor(root)
	if err != nil {
		return nil, nil
	}

	data, err := s.fsys.ReadFile(path)
	if err != nil {
		return nil, nil
	}

	var c types.GraphCache
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, nil
	}

	if c.RootPath != root {
		return nil, nil
	}

	return &c, nil
}

// Clear removes the persisted snapshot for root, if one exists. A
// missing file is not an error.
func (s *FileStore) Clear(root string) error {
	path, err := pathFor(root)
	if err != nil {
		return err
	}
	if err := s.fsys.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("could not remove cache file: %w", err)
	}
	return nil
}

// Save persists c to disk, overwriting any previous snapshot for the
// same root. A write failure is reported to the caller, who treats it
// as a non-fatal warning; a cold build still produces a correct report.
func (s *FileStore) Save(c *types.GraphCache) error {
	path, err := pathFor(c.RootPath)
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("could not encode graph cache: %w", err)
	}

	if err := s.fsys.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("could not create cache directory: %w", err)
	}

	if err := s.fsys.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("could not write cache file: %w", err)
	}

	return nil
}
