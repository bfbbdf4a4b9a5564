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
package vcsadapter

import (
	"context"

	"rebuildradar.dev/core/types"
)

// FakeAdapter is an in-memory Adapter for tests and the analyzer's own
// fixtures; it never shells out.
type FakeAdapter struct {
	Commits     []types.CommitInfo
	FileCount   int
	CommitsErr  error
	FileCountErr error
}

func (f *FakeAdapter) IncomingCommits(ctx context.Context) ([]types.CommitInfo, error) {
	if f.CommitsErr != nil {
		return nil, f.CommitsErr
	}
	return f.Commits, nil
}

func (f *FakeAdapter) TrackedFileCount(ctx context.Context) (int, error) {
	if f.FileCountErr != nil {
		return 0, f.FileCountErr
	}
	return f.FileCount, nil
}
