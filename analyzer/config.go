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
package analyzer

import "rebuildradar.dev/core/modules"

// Config is the configuration value set the orchestrator consumes
// the orchestrator accepts. Everything here is opaque to how it was supplied; the
// CLI layer binds it from flags, a YAML file, or viper defaults.
type Config struct {
	// ProjectFile is the workspace-relative path to a solution or
	// project file. Empty means no build-scope filtering.
	ProjectFile string

	// IncludePaths, when non-empty, limits scanning to these roots.
	IncludePaths []string

	// ExcludePaths augments the built-in skip list.
	ExcludePaths []string

	// ModuleDetection selects the module-resolution strategy.
	ModuleDetection modules.Strategy
}
