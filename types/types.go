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

// Package types holds the data records that flow between the dependency
// graph, the project-file parser, the module resolver, the impact
// estimator and the orchestrator.
package types

import "time"

// ChangeKind classifies how a file changed in a commit.
type ChangeKind string

const (
	Added    ChangeKind = "added"
	Modified ChangeKind = "modified"
	Deleted  ChangeKind = "deleted"
	Renamed  ChangeKind = "renamed"
)

func (k ChangeKind) String() string {
	return string(k)
}

// FileChange is a single file touched by a commit.
type FileChange struct {
	Path string
	Kind ChangeKind
}

// CommitInfo describes one incoming commit and the files it touches.
type CommitInfo struct {
	FullID        string
	Message       string
	Author        string
	TimestampText string
	ChangedFiles  []FileChange
}

// ShortID returns the first 8 characters of the full commit id.
func (c CommitInfo) ShortID() string {
	if len(c.FullID) <= 8 {
		return c.FullID
	}
	return c.FullID[:8]
}

// ModuleKind is the closed set of ways a module can be detected.
type ModuleKind string

const (
	ModuleKindProjectFile ModuleKind = "project_file"
	ModuleKindBuildscript ModuleKind = "buildscript"
	ModuleKindCMakeTarget ModuleKind = "cmake_target"
	ModuleKindDirectory   ModuleKind = "directory"
)

// ModuleDescriptor is a logical grouping of files discovered by the
// module resolver.
type ModuleDescriptor struct {
	Name     string
	RootPath string
	Kind     ModuleKind
	Files    map[string]struct{}
}

// ModuleImpact summarizes how much of one module is affected by a change.
type ModuleImpact struct {
	Name               string
	RootPath           string
	Kind               ModuleKind
	TotalFiles         int
	AffectedFilesCount int
	AffectedFileList   []string
}

// CommitImpact is the per-commit slice of an ImpactReport.
type CommitImpact struct {
	Commit          CommitInfo
	ImpactPct       float64
	ChangedFiles    []string
	RebuildFiles    []string
	AffectedModules []ModuleImpact
}

// ImpactReport is the final, aggregated result of one analysis run.
type ImpactReport struct {
	GlobalImpactPct     float64
	TotalProjectFiles   int
	TotalAffectedFiles  int
	CommitImpacts       []CommitImpact
	AllRebuildFiles     []string
	TotalModules        int
	AffectedModuleCount int
	ModuleImpacts       []ModuleImpact
	GeneratedAt         time.Time
}

// Impact severity thresholds for UI coloring, published as part of the
// external interface but not consulted by any core computation.
const (
	ThresholdLow    = 10.0
	ThresholdMedium = 30.0
	ThresholdHigh   = 50.0
)

// ThresholdLabel classifies GlobalImpactPct into the four UI buckets.
func (r ImpactReport) ThresholdLabel() string {
	switch {
	case r.GlobalImpactPct < ThresholdLow:
		return "low"
	case r.GlobalImpactPct < ThresholdMedium:
		return "medium"
	case r.GlobalImpactPct < ThresholdHigh:
		return "high"
	default:
		return "critical"
	}
}

// CachedFileEntry is one file's persisted state in a GraphCache.
type CachedFileEntry struct {
	MTimeMs          int64    `json:"mtime"`
	ResolvedIncludes []string `json:"includes"`
}

// GraphCache is the persisted snapshot of a dependency graph, keyed by
// workspace root.
type GraphCache struct {
	RootPath string                     `json:"rootPath"`
	BuiltAt  string                     `json:"builtAt"`
	Files    map[string]CachedFileEntry `json:"files"`
}
