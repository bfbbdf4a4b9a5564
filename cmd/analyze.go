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
package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"rebuildradar.dev/core/analyzer"
	"rebuildradar.dev/core/cache"
	C "rebuildradar.dev/core/cmd/config"
	"rebuildradar.dev/core/internal/logging"
	"rebuildradar.dev/core/internal/platform"
	"rebuildradar.dev/core/modules"
	"rebuildradar.dev/core/types"
	"rebuildradar.dev/core/vcsadapter"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Estimate the rebuild impact of incoming commits",
	Long: `analyze scans the workspace's #include dependency graph, enumerates
incoming commits, and reports the fraction of the project that would
need to recompile if they were applied.`,
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().String("project-file", "", "workspace-relative .sln or .vcxproj defining the build scope")
	analyzeCmd.Flags().StringSlice("include", nil, "workspace-relative roots to scan (default: entire workspace)")
	analyzeCmd.Flags().StringSlice("exclude", nil, "workspace-relative paths or globs to exclude, in addition to the built-in skip list")
	analyzeCmd.Flags().String("module-detection", "auto", "module detection strategy: auto, project_file, buildscript, cmake, directory, none")
	analyzeCmd.Flags().String("upstream", "", "git ref to measure incoming commits against (default: the tracked upstream branch)")
	analyzeCmd.Flags().Bool("watch", false, "re-run analysis whenever an entry directly inside the workspace root changes (subdirectories are not watched)")
	analyzeCmd.Flags().Bool("json", false, "print the report as JSON instead of a table")

	viper.BindPFlag("projectFile", analyzeCmd.Flags().Lookup("project-file"))
	viper.BindPFlag("includePaths", analyzeCmd.Flags().Lookup("include"))
	viper.BindPFlag("excludePaths", analyzeCmd.Flags().Lookup("exclude"))
	viper.BindPFlag("moduleDetection", analyzeCmd.Flags().Lookup("module-detection"))
	viper.BindPFlag("upstream", analyzeCmd.Flags().Lookup("upstream"))
	viper.BindPFlag("watch", analyzeCmd.Flags().Lookup("watch"))
	viper.BindPFlag("json", analyzeCmd.Flags().Lookup("json"))
}

func readAnalyzeConfig() (*C.AnalyzeConfig, error) {
	cfg := &C.AnalyzeConfig{}
	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("reading configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func buildAnalyzer(cfg *C.AnalyzeConfig, log *logging.Logger) *analyzer.Analyzer {
	fsys := platform.NewOSFileSystem()
	store := cache.NewFileStore(fsys)
	vcs := vcsadapter.NewGitAdapter(cfg.ProjectDir, cfg.Upstream, log)
	return analyzer.New(fsys, cfg.ProjectDir, store, vcs, log)
}

func toAnalyzerConfig(cfg *C.AnalyzeConfig) analyzer.Config {
	return analyzer.Config{
		ProjectFile:     cfg.ProjectFile,
		IncludePaths:    cfg.IncludePaths,
		ExcludePaths:    cfg.ExcludePaths,
		ModuleDetection: modules.Strategy(cfg.ModuleDetection),
	}
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg, err := readAnalyzeConfig()
	if err != nil {
		return err
	}

	log := logging.New()
	log.SetDebugEnabled(cfg.Verbose)

	a := buildAnalyzer(cfg, log)
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	if err := runOnce(ctx, a, cfg); err != nil {
		return err
	}

	if !cfg.Watch {
		return nil
	}
	return watchAndReanalyze(ctx, cfg, a)
}

func runOnce(ctx context.Context, a *analyzer.Analyzer, cfg *C.AnalyzeConfig) error {
	report, err := a.Run(ctx, toAnalyzerConfig(cfg))
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}
	if cfg.JSON {
		return printReportJSON(report)
	}
	printReportTable(report)
	return nil
}

func printReportJSON(report *types.ImpactReport) error {
	out, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding report: %w", err)
	}
	fmt.Println(string(out))
	return nil
}

func printReportTable(report *types.ImpactReport) {
	pterm.DefaultSection.Println("Rebuild Impact")
	summary := pterm.TableData{
		{"Metric", "Value"},
		{"Global impact", fmt.Sprintf("%.1f%% (%s)", report.GlobalImpactPct, report.ThresholdLabel())},
		{"Total project files", fmt.Sprintf("%d", report.TotalProjectFiles)},
		{"Total affected files", fmt.Sprintf("%d", report.TotalAffectedFiles)},
		{"Affected modules", fmt.Sprintf("%d / %d", report.AffectedModuleCount, report.TotalModules)},
		{"Incoming commits", fmt.Sprintf("%d", len(report.CommitImpacts))},
	}
	pterm.DefaultTable.WithHasHeader().WithData(summary).Render()

	if len(report.CommitImpacts) > 0 {
		pterm.DefaultSection.Println("Per-commit impact")
		rows := pterm.TableData{{"Commit", "Message", "Impact"}}
		for _, ci := range report.CommitImpacts {
			rows = append(rows, []string{ci.Commit.ShortID(), ci.Commit.Message, fmt.Sprintf("%.1f%%", ci.ImpactPct)})
		}
		pterm.DefaultTable.WithHasHeader().WithData(rows).Render()
	}

	if len(report.ModuleImpacts) > 0 {
		pterm.DefaultSection.Println("Per-module impact")
		rows := pterm.TableData{{"Module", "Kind", "Affected / Total"}}
		for _, mi := range report.ModuleImpacts {
			rows = append(rows, []string{mi.Name, string(mi.Kind), fmt.Sprintf("%d / %d", mi.AffectedFilesCount, mi.TotalFiles)})
		}
		pterm.DefaultTable.WithHasHeader().WithData(rows).Render()
	}
}

// watchAndReanalyze re-runs the analysis whenever a write, create,
// remove or rename event arrives for an entry directly inside the
// workspace root, driven through the platform.FileWatcher abstraction
// rather than fsnotify directly. Only the root directory itself is
// watched: changes inside its subdirectories do not trigger a re-run.
func watchAndReanalyze(ctx context.Context, cfg *C.AnalyzeConfig, a *analyzer.Analyzer) error {
	watcher, err := platform.NewFSNotifyFileWatcher()
	if err != nil {
		return fmt.Errorf("starting file watcher: %w", err)
	}
	defer watcher.Close()

	root := cfg.ProjectDir
	if root == "" {
		root, err = os.Getwd()
		if err != nil {
			return fmt.Errorf("resolving workspace root: %w", err)
		}
	}
	if err := watcher.Add(root); err != nil {
		return fmt.Errorf("watching %q: %w", root, err)
	}

	pterm.Info.Println("Watching for changes; press Ctrl+C to stop.")
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-watcher.Events():
			if !ok {
				return nil
			}
			if event.Op&(platform.Write|platform.Create|platform.Remove|platform.Rename) == 0 {
				continue
			}
			if err := runOnce(ctx, a, cfg); err != nil {
				pterm.Error.Printf("re-analysis failed: %v\n", err)
			}
		case err, ok := <-watcher.Errors():
			if !ok {
				return nil
			}
			pterm.Error.Printf("watcher error: %v\n", err)
		}
	}
}
