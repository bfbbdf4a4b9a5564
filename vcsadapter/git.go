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
	"fmt"
	"os"
	"os/exec"
	"strings"

	"rebuildradar.dev/core/internal/logging"
	"rebuildradar.dev/core/types"
)

// statusKind maps a git --name-status letter to a ChangeKind.
var statusKind = map[byte]types.ChangeKind{
	'A': types.Added,
	'M': types.Modified,
	'D': types.Deleted,
	'R': types.Renamed,
	'C': types.Added, // copy: treated as a new file entering the rebuild set
}

// GitAdapter shells out to the git binary rather than using a full
// git object-model library: enumerating commits and diffs needs
// nothing more than rev-list/show/ls-files.
type GitAdapter struct {
	root     string
	upstream string // explicit upstream ref; "" resolves @{u} at call time
	env      []string
	log      *logging.Logger
}

// NewGitAdapter returns an Adapter rooted at a git working tree.
// upstream, if non-empty, overrides the tracked "@{u}" reference.
func NewGitAdapter(root, upstream string, log *logging.Logger) *GitAdapter {
	return &GitAdapter{
		root:     root,
		upstream: upstream,
		env:      append(os.Environ(), "GIT_CONFIG_NOGLOBAL=true", "GIT_CONFIG_GLOBAL=", "GIT_CONFIG_SYSTEM="),
		log:      log,
	}
}

func (g *GitAdapter) run(ctx context.Context, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = g.root
	cmd.Env = g.env
	out, err := cmd.CombinedOutput()
	if err != nil {
		return "", fmt.Errorf("git %s: %w: %s", strings.Join(args, " "), err, strings.TrimSpace(string(out)))
	}
	return strings.TrimSpace(string(out)), nil
}

func (g *GitAdapter) resolveUpstream(ctx context.Context) (string, bool) {
	if g.upstream != "" {
		return g.upstream, true
	}
	if _, err := g.run(ctx, "rev-parse", "--abbrev-ref", "@{u}"); err != nil {
		return "", false
	}
	return "@{u}", true
}

// IncomingCommits returns commits reachable from the upstream ref but
// not from HEAD, oldest first. It returns an empty slice, not an
// error, when no upstream is configured: a detached or unpushed
// working tree legitimately has zero incoming commits.
func (g *GitAdapter) IncomingCommits(ctx context.Context) ([]types.CommitInfo, error) {
	upstream, ok := g.resolveUpstream(ctx)
	if !ok {
		if g.log != nil {
			g.log.Warning("no upstream tracking ref configured; treating as zero incoming commits")
		}
		return []types.CommitInfo{}, nil
	}

	out, err := g.run(ctx, "rev-list", "--reverse", "HEAD.."+upstream)
	if err != nil {
		return nil, fmt.Errorf("enumerating incoming commits: %w", err)
	}
	if out == "" {
		return []types.CommitInfo{}, nil
	}

	ids := strings.Split(out, "\n")
	commits := make([]types.CommitInfo, 0, len(ids))
	for _, id := range ids {
		commit, err := g.commitInfo(ctx, id)
		if err != nil {
			return nil, err
		}
		commits = append(commits, commit)
	}
	return commits, nil
}

func (g *GitAdapter) commitInfo(ctx context.Context, id string) (types.CommitInfo, error) {
	meta, err := g.run(ctx, "show", "-s", "--format=%H%x00%an%x00%aI%x00%s", id)
	if err != nil {
		return types.CommitInfo{}, fmt.Errorf("reading commit %s: %w", id, err)
	}
	commit, err := parseCommitMeta(meta)
	if err != nil {
		return types.CommitInfo{}, fmt.Errorf("unexpected commit metadata for %s: %w", id, err)
	}

	status, err := g.run(ctx, "show", "--name-status", "--format=", id)
	if err != nil {
		return types.CommitInfo{}, fmt.Errorf("reading changed files for %s: %w", id, err)
	}
	commit.ChangedFiles = parseChangedFiles(status)

	return commit, nil
}

// parseCommitMeta parses a NUL-separated "%H\x00%an\x00%aI\x00%s" record.
func parseCommitMeta(meta string) (types.CommitInfo, error) {
	fields := strings.SplitN(meta, "\x00", 4)
	if len(fields) != 4 {
		return types.CommitInfo{}, fmt.Errorf("expected 4 NUL-separated fields, got %d", len(fields))
	}
	return types.CommitInfo{
		FullID:        fields[0],
		Author:        fields[1],
		TimestampText: fields[2],
		Message:       fields[3],
	}, nil
}

// parseChangedFiles parses the output of `git show --name-status`.
func parseChangedFiles(status string) []types.FileChange {
	var changes []types.FileChange
	for _, line := range strings.Split(status, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		parts := strings.Fields(line)
		if len(parts) < 2 {
			continue
		}
		kind, known := statusKind[parts[0][0]]
		if !known {
			kind = types.Modified
		}
		path := parts[len(parts)-1] // renames/copies: take the destination path
		changes = append(changes, types.FileChange{Path: path, Kind: kind})
	}
	return changes
}

// TrackedFileCount returns the number of files git tracks in the
// working tree, used as the estimator's fallback denominator.
func (g *GitAdapter) TrackedFileCount(ctx context.Context) (int, error) {
	out, err := g.run(ctx, "ls-files")
	if err != nil {
		return 0, fmt.Errorf("counting tracked files: %w", err)
	}
	if out == "" {
		return 0, nil
	}
	return len(strings.Split(out, "\n")), nil
}
