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

// Package source defines the contract every manga site adapter implements.
package source

import (
	"context"
	"time"

	"Lantern/pkg/core"
)

// Info describes a source
type Info struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	SiteURL     string `json:"site_url"`
	Version     string `json:"version,omitempty"`
}

// Source defines the interface all manga sources must implement.
//
// Implementations hold no per-call mutable state and must be safe for
// concurrent use. Callers should go through the wrapper package, which
// validates and normalizes what sources return.
type Source interface {
	Info() Info

	// GetMangaDetails resolves every id independently. Ids that fail are
	// reported in an *errors.BatchError returned next to the ones that
	// resolved.
	GetMangaDetails(ctx context.Context, ids []string) ([]core.MangaDetails, error)

	// GetChapters lists every published chapter in site order.
	GetChapters(ctx context.Context, mangaID string) ([]core.Chapter, error)

	// GetChapterDetails returns the page URIs of one chapter. A chapter
	// that does not belong to mangaID is NotFound.
	GetChapterDetails(ctx context.Context, mangaID, chapterID string) (*core.ChapterDetails, error)

	// Search returns one 1-based page. An empty page means no more results.
	Search(ctx context.Context, req core.SearchRequest, page int) ([]core.SearchResult, error)

	// FilterUpdatedManga returns the subset of ids updated after since.
	FilterUpdatedManga(ctx context.Context, ids []string, since time.Time) ([]string, error)
}
