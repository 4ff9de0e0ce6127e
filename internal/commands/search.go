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
	"strings"

	"github.com/spf13/cobra"

	"Lantern/pkg/core"
	"Lantern/pkg/errors"
)

func newSearchCmd(app *App) *cobra.Command {
	var (
		includes []string
		excludes []string
		page     int
		all      bool
	)

	cmd := &cobra.Command{
		Use:   "search <source> [title]",
		Short: "Search a source by title and tags",
		Long: `Search a source by title and tags.

Tags are given as axis=tag, e.g. --include demographic=Seinen. A tag without
an axis is taken as a genre. A result is kept when it has at least one
included tag on every axis that has includes, and no excluded tag at all.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := app.lookup(args[0])
			if err != nil {
				return err
			}

			title := ""
			if len(args) > 1 {
				title = args[1]
			}
			req := core.NewSearchRequest(title)
			if req, err = applyTags(req, includes, core.SearchRequest.WithInclude); err != nil {
				return err
			}
			if req, err = applyTags(req, excludes, core.SearchRequest.WithExclude); err != nil {
				return err
			}

			ctx, cancel := app.commandContext(cmd)
			defer cancel()

			var results []core.SearchResult
			if all {
				results, err = app.Engine.Wrapper.SearchAll(ctx, src, req)
			} else {
				results, err = app.Engine.Wrapper.Search(ctx, src, req, page)
			}
			if err != nil {
				return err
			}

			if done, err := app.emit(results); done {
				return err
			}
			return app.Formatter.PrintSearchResults(src.Info().ID, req, results)
		},
	}

	cmd.Flags().StringArrayVar(&includes, "include", nil, "Require a tag, as axis=tag (repeatable)")
	cmd.Flags().StringArrayVar(&excludes, "exclude", nil, "Reject a tag, as axis=tag (repeatable)")
	cmd.Flags().IntVar(&page, "page", 1, "Result page to fetch, starting at 1")
	cmd.Flags().BoolVar(&all, "all", false, "Walk every result page up to search.max_pages")
	cmd.MarkFlagsMutuallyExclusive("page", "all")
	return cmd
}

type tagSetter func(core.SearchRequest, core.TagAxis, ...string) core.SearchRequest

// applyTags adds each axis=tag flag value to req through set
func applyTags(req core.SearchRequest, values []string, set tagSetter) (core.SearchRequest, error) {
	for _, value := range values {
		axis, tag, found := strings.Cut(value, "=")
		if !found {
			axis, tag = string(core.AxisGenre), value
		}
		tag = strings.TrimSpace(tag)
		if tag == "" || (found && strings.TrimSpace(axis) == "") {
			return req, errors.Newf("invalid tag %q, expected axis=tag", value).AsValidation().Error()
		}
		req = set(req, core.ParseAxis(axis), tag)
	}
	return req, nil
}
