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

package util

import (
	"fmt"
	"sort"
	"strings"

	"Lantern/pkg/core"
)

// languageCodeToFullName maps common language codes to full names
var languageCodeToFullName = map[string]string{
	"en":    "English",
	"ja":    "Japanese",
	"es":    "Spanish",
	"fr":    "French",
	"de":    "German",
	"pt":    "Portuguese",
	"ru":    "Russian",
	"ko":    "Korean",
	"zh":    "Chinese",
	"it":    "Italian",
	"ar":    "Arabic",
	"tr":    "Turkish",
	"th":    "Thai",
	"vi":    "Vietnamese",
	"id":    "Indonesian",
	"pl":    "Polish",
	"nl":    "Dutch",
	"uk":    "Ukrainian",
	"zh-cn": "Chinese (Simplified)",
	"zh-tw": "Chinese (Traditional)",
	"pt-br": "Portuguese (Brazil)",
	"es-la": "Spanish (Latin America)",
}

// NormalizeLanguage turns a site's language label ("English", "EN", "pt_BR")
// into a lower-case code. Unknown labels are returned lower-cased.
func NormalizeLanguage(raw string) string {
	lang := strings.ToLower(strings.TrimSpace(raw))
	lang = strings.ReplaceAll(lang, "_", "-")
	if lang == "" {
		return ""
	}
	if _, ok := languageCodeToFullName[lang]; ok {
		return lang
	}
	for code, name := range languageCodeToFullName {
		if strings.ToLower(name) == lang {
			return code
		}
	}
	return lang
}

// LanguageName returns the display name for a code
func LanguageName(code string) string {
	if name, ok := languageCodeToFullName[strings.ToLower(code)]; ok {
		return name
	}
	return code
}

// LanguageFilter holds configuration for filtering chapters by language
type LanguageFilter struct {
	Languages []string
}

// NewLanguageFilter creates a filter from a comma-separated list. Returns nil
// when the list is empty, and a nil filter lets everything through.
func NewLanguageFilter(languageStr string) *LanguageFilter {
	var languages []string
	for _, part := range strings.Split(languageStr, ",") {
		if lang := NormalizeLanguage(part); lang != "" {
			languages = append(languages, lang)
		}
	}
	if len(languages) == 0 {
		return nil
	}
	return &LanguageFilter{Languages: languages}
}

// MatchesLanguage checks if a chapter language matches any of the filter languages
func (lf *LanguageFilter) MatchesLanguage(chapterLanguage string) bool {
	if lf == nil || len(lf.Languages) == 0 {
		return true
	}

	lang := NormalizeLanguage(chapterLanguage)
	for _, want := range lf.Languages {
		if lang == "" && (want == "unknown" || want == "none") {
			return true
		}
		if want == lang {
			return true
		}
	}
	return false
}

// FilterChapters keeps matching chapters in their original order
func (lf *LanguageFilter) FilterChapters(chapters []core.Chapter) []core.Chapter {
	if lf == nil {
		return chapters
	}

	filtered := make([]core.Chapter, 0, len(chapters))
	for _, chapter := range chapters {
		if lf.MatchesLanguage(chapter.Language) {
			filtered = append(filtered, chapter)
		}
	}
	return filtered
}

// FormatAvailableLanguages lists the distinct chapter languages for display
func FormatAvailableLanguages(chapters []core.Chapter) string {
	set := make(map[string]struct{})
	for _, chapter := range chapters {
		lang := NormalizeLanguage(chapter.Language)
		if lang == "" {
			lang = "unknown"
		}
		set[lang] = struct{}{}
	}
	if len(set) == 0 {
		return "None"
	}

	languages := make([]string, 0, len(set))
	for lang := range set {
		languages = append(languages, lang)
	}
	sort.Strings(languages)

	formatted := make([]string, 0, len(languages))
	for _, lang := range languages {
		if name, ok := languageCodeToFullName[lang]; ok {
			formatted = append(formatted, fmt.Sprintf("%s (%s)", name, lang))
		} else {
			formatted = append(formatted, lang)
		}
	}
	return strings.Join(formatted, ", ")
}
