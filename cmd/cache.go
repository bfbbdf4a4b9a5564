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
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"rebuildradar.dev/core/cache"
	"rebuildradar.dev/core/internal/platform"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Clear the persisted dependency graph snapshot",
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Discard the cached dependency graph for this workspace",
	RunE: func(cmd *cobra.Command, args []string) error {
		root := viper.GetString("projectDir")
		store := cache.NewFileStore(platform.NewOSFileSystem())
		if err := store.Clear(root); err != nil {
			return fmt.Errorf("clearing cache: %w", err)
		}
		pterm.Success.Printf("Cleared cached graph for %s\n", root)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(cacheCmd)
	cacheCmd.AddCommand(cacheClearCmd)
}
