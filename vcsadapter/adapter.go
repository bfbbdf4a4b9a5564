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

// Package vcsadapter retrieves the list of incoming commits and their
// changed-file lists. The core treats this as opaque: it consumes
// (commit_id, message, author, date, changed_files) tuples and does
// not care how they were produced.
package vcsadapter

import (
	"context"

	"rebuildradar.dev/core/types"
)

// Adapter is the version-control boundary the analyzer depends on.
type Adapter interface {
	// IncomingCommits returns commits present on the tracked upstream
	// but not yet on the working reference, oldest first.
	IncomingCommits(ctx context.Context) ([]types.CommitInfo, error)

	// TrackedFileCount returns the number of files the VCS tracks,
	// used as the estimator's denominator fallback when no C/C++
	// files are discovered in the dependency graph.
	TrackedFileCount(ctx context.Context) (int, error)
}
