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
	"time"

	"github.com/spf13/cobra"

	"Lantern/pkg/errors"
	"Lantern/pkg/util"
)

type updatedSet struct {
	Since   time.Time           `json:"since"`
	Updated map[string][]string `json:"updated"`
}

func newUpdatesCmd(app *App) *cobra.Command {
	var since string

	cmd := &cobra.Command{
		Use:   "updates <source:manga-id>...",
		Short: "Report which manga were updated recently",
		Long: `Report which of the given manga were updated after --since.

--since takes a date (2025-06-01, RFC 3339) or a duration back from now
such as 36h, 7d or 2w.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cutoff, err := util.ParseSince(since, app.Now())
			if err != nil {
				return errors.Track(err).WithContext("since", since).AsValidation().Error()
			}
			groups, err := groupIDs(args)
			if err != nil {
				return err
			}

			ctx, cancel := app.commandContext(cmd)
			defer cancel()

			result := updatedSet{Since: cutoff, Updated: make(map[string][]string, len(groups))}
			for _, g := range groups {
				src, err := app.lookup(g.sourceID)
				if err != nil {
					return err
				}
				ids, err := app.Engine.Wrapper.FilterUpdatedManga(ctx, src, g.ids, cutoff)
				if err != nil {
					return err
				}
				result.Updated[g.sourceID] = ids
			}

			if done, err := app.emit(result); done {
				return err
			}
			for _, g := range groups {
				app.Formatter.PrintUpdated(g.sourceID, cutoff, result.Updated[g.sourceID])
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&since, "since", "7d", "Cutoff as a date or a duration back from now")
	return cmd
}
