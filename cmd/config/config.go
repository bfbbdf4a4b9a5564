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
package config

import "fmt"

// AnalyzeConfig is the configuration value set the analyze command
// binds from flags, the YAML config file, and viper defaults, then
// translates into an analyzer.Config.
type AnalyzeConfig struct {
	ProjectDir string `mapstructure:"projectDir" yaml:"projectDir"`
	ConfigFile string `mapstructure:"configFile" yaml:"configFile"`

	// ProjectFile is a workspace-relative path to a .sln or .vcxproj.
	// Empty means no build-scope filtering.
	ProjectFile string `mapstructure:"projectFile" yaml:"projectFile"`
	// AutoScan triggers an analysis on startup; consumed by an editor
	// shell, not the core itself.
	AutoScan bool `mapstructure:"autoScan" yaml:"autoScan"`
	// IncludePaths, if non-empty, limits scanning to these roots.
	IncludePaths []string `mapstructure:"includePaths" yaml:"includePaths"`
	// ExcludePaths augments the built-in skip list.
	ExcludePaths []string `mapstructure:"excludePaths" yaml:"excludePaths"`
	// ModuleDetection selects the module-resolution strategy: auto,
	// project_file, buildscript, cmake, directory, or none.
	ModuleDetection string `mapstructure:"moduleDetection" yaml:"moduleDetection"`
	// Upstream overrides the git ref incoming commits are measured
	// against; empty resolves the tracked "@{u}" branch.
	Upstream string `mapstructure:"upstream" yaml:"upstream"`
	// Watch re-runs analysis whenever an entry directly inside the
	// workspace root changes; subdirectories are not watched.
	Watch bool `mapstructure:"watch" yaml:"watch"`
	// JSON prints the report as JSON instead of a formatted table.
	JSON bool `mapstructure:"json" yaml:"json"`
	// Verbose enables debug-level logging.
	Verbose bool `mapstructure:"verbose" yaml:"verbose"`
}

// validModuleDetection is the closed set of recognized strategy names.
var validModuleDetection = map[string]struct{}{
	"":             {},
	"auto":         {},
	"project_file": {},
	"buildscript":  {},
	"cmake":        {},
	"directory":    {},
	"none":         {},
}

// Validate rejects a moduleDetection value outside the closed set.
func (c *AnalyzeConfig) Validate() error {
	if _, ok := validModuleDetection[c.ModuleDetection]; !ok {
		return fmt.Errorf("unknown module-detection strategy %q: must be one of auto, project_file, buildscript, cmake, directory, none", c.ModuleDetection)
	}
	return nil
}

// Clone returns a deep copy, so callers may mutate it without aliasing
// the original (mirrors viper.Unmarshal's shared-slice pitfalls).
func (c *AnalyzeConfig) Clone() *AnalyzeConfig {
	if c == nil {
		return nil
	}
	clone := *c
	if c.IncludePaths != nil {
		clone.IncludePaths = append([]string(nil), c.IncludePaths...)
	}
	if c.ExcludePaths != nil {
		clone.ExcludePaths = append([]string(nil), c.ExcludePaths...)
	}
	return &clone
}
