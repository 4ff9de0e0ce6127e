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

package search

import (
	"context"

	"Lantern/pkg/errors"
)

// PageFunc visits one 1-based page and reports whether another page may
// follow.
type PageFunc func(ctx context.Context, page int) (more bool, err error)

// Paginate calls visit for pages 1..maxPages until it reports no more pages,
// fails, or the context ends. It returns the number of pages visited.
// maxPages <= 0 means no limit.
func Paginate(ctx context.Context, maxPages int, visit PageFunc) (int, error) {
	visited := 0
	for page := 1; maxPages <= 0 || page <= maxPages; page++ {
		if err := ctx.Err(); err != nil {
			return visited, errors.FromContext(ctx).
				WithOperation("paginate").
				WithContext("page", page).
				Error()
		}

		more, err := visit(ctx, page)
		visited++
		if err != nil {
			return visited, err
		}
		if !more {
			break
		}
	}
	return visited, nil
}
