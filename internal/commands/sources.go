// Lantern: one contract for scraping many manga sites.
// Copyright (C) 2025 The Lantern Authors
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program. If not, see <http://www.gnu.org/licenses/>.

package commands

import (
	"github.com/spf13/cobra"

	"Lantern/pkg/source"
)

func newSourcesCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "sources",
		Short: "List the available manga sources",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sources := app.Engine.AllSources()

			if app.jsonOutput {
				infos := make([]source.Info, len(sources))
				for i, src := range sources {
					infos[i] = src.Info()
				}
				_, err := app.emit(infos)
				return err
			}
			return app.Formatter.PrintSourceList(sources)
		},
	}
}
