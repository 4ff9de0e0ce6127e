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

package core

import (
	"strings"
	"time"
)

// MangaStatus is the publication state reported by a site. The constants
// cover the common states, sites may report others verbatim.
type MangaStatus string

const (
	StatusOngoing   MangaStatus = "ONGOING"
	StatusCompleted MangaStatus = "COMPLETED"
	StatusHiatus    MangaStatus = "HIATUS"
	StatusCancelled MangaStatus = "CANCELLED"
	StatusUnknown   MangaStatus = "UNKNOWN"
)

// ParseStatus maps the spellings sites commonly use onto MangaStatus
func ParseStatus(raw string) MangaStatus {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "ongoing", "publishing", "releasing", "running":
		return StatusOngoing
	case "completed", "complete", "finished", "end", "ended":
		return StatusCompleted
	case "hiatus", "on hiatus", "paused":
		return StatusHiatus
	case "cancelled", "canceled", "discontinued", "dropped":
		return StatusCancelled
	case "", "unknown":
		return StatusUnknown
	default:
		return MangaStatus(strings.ToUpper(strings.TrimSpace(raw)))
	}
}

// MangaDetails is the full description of one manga on one site
type MangaDetails struct {
	ID          string      `json:"id"`
	Titles      []string    `json:"titles"`
	Image       string      `json:"image"`
	Rating      float64     `json:"rating"`
	Status      MangaStatus `json:"status"`
	Author      string      `json:"author"`
	Artist      string      `json:"artist,omitempty"`
	Tags        Tags        `json:"tags"`
	Desc        string      `json:"desc"`
	Hentai      bool        `json:"hentai"`
	LastUpdated *time.Time  `json:"last_updated,omitempty"`
}

// Title returns the primary display name
func (m MangaDetails) Title() string {
	if len(m.Titles) == 0 {
		return ""
	}
	return m.Titles[0]
}

// Chapter is a snapshot of one published chapter
type Chapter struct {
	ID        string     `json:"id"`
	MangaID   string     `json:"manga_id"`
	Number    float64    `json:"number"`
	Volume    float64    `json:"volume,omitempty"`
	Title     string     `json:"title,omitempty"`
	Language  string     `json:"language,omitempty"`
	Published *time.Time `json:"published,omitempty"`
}

// ChapterDetails lists the page images of a chapter in reading order
type ChapterDetails struct {
	ID      string   `json:"id"`
	MangaID string   `json:"manga_id"`
	Pages   []string `json:"pages"`
}

// SearchResult is the lightweight projection of a manga returned by search
type SearchResult struct {
	ID            string `json:"id"`
	Image         string `json:"image"`
	Title         string `json:"title"`
	SubtitleText  string `json:"subtitle_text"`
	PrimaryText   string `json:"primary_text"`
	SecondaryText string `json:"secondary_text"`
	Tags          Tags   `json:"tags,omitempty"`
}

// UpdateQuery asks which of IDs changed strictly after Since
type UpdateQuery struct {
	IDs   []string  `json:"ids"`
	Since time.Time `json:"since"`
}
