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
	"fmt"

	"github.com/spf13/cobra"

	"Lantern/pkg/core"
	"Lantern/pkg/errors"
	"Lantern/pkg/util"
)

// idGroup is the manga ids asked of one source, in argument order
type idGroup struct {
	sourceID string
	ids      []string
}

// groupIDs splits "source:id" arguments by source, keeping first-seen order
func groupIDs(args []string) ([]idGroup, error) {
	var groups []idGroup
	index := make(map[string]int)
	for _, arg := range args {
		sourceID, mangaID, err := core.ParseMangaID(arg)
		if err != nil {
			return nil, errors.Track(err).AsValidation().Error()
		}
		i, ok := index[sourceID]
		if !ok {
			i = len(groups)
			index[sourceID] = i
			groups = append(groups, idGroup{sourceID: sourceID})
		}
		groups[i].ids = append(groups[i].ids, mangaID)
	}
	return groups, nil
}

func newDetailsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "details <source:manga-id>...",
		Short: "Show the details of one or more manga",
		Long:  "Resolve manga on their sources. Ids for several sources may be mixed; each source is asked once.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			groups, err := groupIDs(args)
			if err != nil {
				return err
			}

			ctx, cancel := app.commandContext(cmd)
			defer cancel()

			all := make(map[string][]core.MangaDetails, len(groups))
			for _, g := range groups {
				src, err := app.lookup(g.sourceID)
				if err != nil {
					return err
				}
				details, err := app.Engine.Wrapper.GetMangaDetails(ctx, src, g.ids)
				if err != nil {
					return err
				}
				all[g.sourceID] = details
			}

			if done, err := app.emit(all); done {
				return err
			}
			for _, g := range groups {
				for _, d := range all[g.sourceID] {
					app.Formatter.PrintMangaDetails(g.sourceID, d)
				}
				if missing := len(g.ids) - len(all[g.sourceID]); missing > 0 {
					app.Formatter.PrintWarning(fmt.Sprintf("%d manga from %s could not be resolved, run with --debug for details", missing, g.sourceID))
				}
			}
			return nil
		},
	}
}

func newChaptersCmd(app *App) *cobra.Command {
	var languages string
	var showLanguages bool

	cmd := &cobra.Command{
		Use:   "chapters <source:manga-id>",
		Short: "List the chapters of a manga",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sourceID, mangaID, err := core.ParseMangaID(args[0])
			if err != nil {
				return errors.Track(err).AsValidation().Error()
			}
			src, err := app.lookup(sourceID)
			if err != nil {
				return err
			}

			ctx, cancel := app.commandContext(cmd)
			defer cancel()

			all, err := app.Engine.Wrapper.GetChapters(ctx, src, mangaID)
			if err != nil {
				return err
			}
			chapters := util.NewLanguageFilter(languages).FilterChapters(all)

			if done, err := app.emit(chapters); done {
				return err
			}
			if showLanguages {
				app.Formatter.PrintInfo("Available languages: " + util.FormatAvailableLanguages(all))
			}
			if len(chapters) == 0 && len(all) > 0 {
				app.Formatter.PrintWarning(fmt.Sprintf("No chapters found matching language filter: %s", languages))
				app.Formatter.PrintInfo("Available languages: " + util.FormatAvailableLanguages(all))
				return nil
			}
			if len(chapters) < len(all) {
				app.Formatter.PrintInfo(fmt.Sprintf("Showing %d of %d chapters (filtered by language: %s)", len(chapters), len(all), languages))
			}
			return app.Formatter.PrintChapters(sourceID, chapters)
		},
	}

	cmd.Flags().StringVar(&languages, "lang", "", "Filter chapters by language (comma-separated codes or names, e.g. 'en,ja')")
	cmd.Flags().BoolVar(&showLanguages, "show-languages", false, "Show the languages chapters are available in")
	return cmd
}

func newPagesCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "pages <source:manga-id> <chapter-id>",
		Short: "List the page images of a chapter",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			sourceID, mangaID, err := core.ParseMangaID(args[0])
			if err != nil {
				return errors.Track(err).AsValidation().Error()
			}
			src, err := app.lookup(sourceID)
			if err != nil {
				return err
			}

			ctx, cancel := app.commandContext(cmd)
			defer cancel()

			details, err := app.Engine.Wrapper.GetChapterDetails(ctx, src, mangaID, args[1])
			if err != nil {
				return err
			}

			if done, err := app.emit(details); done {
				return err
			}
			app.Formatter.PrintPages(sourceID, *details)
			return nil
		},
	}
}
