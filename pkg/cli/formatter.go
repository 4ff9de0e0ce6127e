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

// Package cli renders Lantern data for humans: colored text, and tables
// where a listing is easier to scan that way.
package cli

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"Lantern/pkg/core"
	"Lantern/pkg/errors"
	"Lantern/pkg/source"
	"Lantern/pkg/util"
)

const (
	OutputTypeText  = "text"
	OutputTypeTable = "table"
)

// Formatter handles all CLI output formatting
type Formatter struct {
	// Writer is where the formatted output will be written
	Writer io.Writer

	// DisableColor disables colorized output
	DisableColor bool

	// OutputType selects text or table listings
	OutputType string

	// Debug prints errors with their call chain
	Debug bool

	HeaderStyle      *color.Color
	TitleStyle       *color.Color
	SuccessStyle     *color.Color
	ErrorStyle       *color.Color
	WarningStyle     *color.Color
	InfoStyle        *color.Color
	SecondaryStyle   *color.Color
	SectionStyle     *color.Color
	DetailLabelStyle *color.Color
	DetailValueStyle *color.Color
	IDStyle          *color.Color
	DateStyle        *color.Color
	NumberStyle      *color.Color
}

// NewFormatter creates a formatter writing to w, or stdout when w is nil
func NewFormatter(w io.Writer) *Formatter {
	if w == nil {
		w = os.Stdout
	}
	f := &Formatter{
		Writer:     w,
		OutputType: OutputTypeText,
	}
	f.initStyles()
	return f
}

// SetColor switches styling off for every style at once. Enabled leaves
// terminal detection to the color package.
func (f *Formatter) SetColor(enabled bool) {
	f.DisableColor = !enabled
	f.initStyles()
}

func (f *Formatter) initStyles() {
	f.HeaderStyle = color.New(color.Bold, color.FgCyan)
	f.TitleStyle = color.New(color.Bold, color.FgWhite)
	f.SuccessStyle = color.New(color.FgGreen)
	f.ErrorStyle = color.New(color.FgRed)
	f.WarningStyle = color.New(color.FgYellow)
	f.InfoStyle = color.New(color.FgBlue)
	f.SecondaryStyle = color.New(color.FgHiBlack)
	f.SectionStyle = color.New(color.Underline, color.FgHiCyan)
	f.DetailLabelStyle = color.New(color.FgHiBlue)
	f.DetailValueStyle = color.New(color.FgWhite)
	f.IDStyle = color.New(color.FgHiMagenta)
	f.DateStyle = color.New(color.FgHiBlue)
	f.NumberStyle = color.New(color.FgHiYellow)

	if f.DisableColor {
		for _, style := range f.styles() {
			style.DisableColor()
		}
	}
}

func (f *Formatter) styles() []*color.Color {
	return []*color.Color{
		f.HeaderStyle, f.TitleStyle, f.SuccessStyle, f.ErrorStyle, f.WarningStyle,
		f.InfoStyle, f.SecondaryStyle, f.SectionStyle, f.DetailLabelStyle,
		f.DetailValueStyle, f.IDStyle, f.DateStyle, f.NumberStyle,
	}
}

// PrintHeader prints a header followed by a divider
func (f *Formatter) PrintHeader(text string) {
	f.HeaderStyle.Fprintln(f.Writer, text)
	f.PrintDivider()
}

// PrintSuccess prints a success message
func (f *Formatter) PrintSuccess(text string) {
	f.SuccessStyle.Fprintln(f.Writer, text)
}

// PrintError prints an error message
func (f *Formatter) PrintError(text string) {
	f.ErrorStyle.Fprintln(f.Writer, text)
}

// PrintWarning prints a warning message
func (f *Formatter) PrintWarning(text string) {
	f.WarningStyle.Fprintln(f.Writer, text)
}

// PrintInfo prints an informational message
func (f *Formatter) PrintInfo(text string) {
	f.InfoStyle.Fprintln(f.Writer, text)
}

// PrintDetail prints a labeled detail
func (f *Formatter) PrintDetail(label, value string) {
	f.DetailLabelStyle.Fprintf(f.Writer, "%s: ", label)
	f.DetailValueStyle.Fprintln(f.Writer, value)
}

// PrintDivider prints a horizontal divider
func (f *Formatter) PrintDivider() {
	fmt.Fprintln(f.Writer, strings.Repeat("-", 80))
}

// PrintSection prints a section header surrounded by blank lines
func (f *Formatter) PrintSection(text string) {
	fmt.Fprintln(f.Writer)
	f.SectionStyle.Fprintln(f.Writer, text)
	fmt.Fprintln(f.Writer)
}

// FormatDate formats a date with styling
func (f *Formatter) FormatDate(date *time.Time) string {
	if date == nil {
		return f.SecondaryStyle.Sprint("Not specified")
	}
	return f.DateStyle.Sprint(util.FormatDate(date))
}

// FormatLanguage renders a language code with its name when known
func (f *Formatter) FormatLanguage(code string) string {
	if code == "" {
		return f.SecondaryStyle.Sprint("Unknown")
	}
	if name := util.LanguageName(code); name != code {
		return fmt.Sprintf("%s (%s)", f.DetailValueStyle.Sprint(name), f.SecondaryStyle.Sprint(code))
	}
	return f.DetailValueStyle.Sprint(code)
}

// PrintTable prints data in a table format
func (f *Formatter) PrintTable(headers []string, data [][]string) error {
	table := tablewriter.NewTable(f.Writer)
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Header.Alignment.Global = tw.AlignLeft
		cfg.Row.Alignment.Global = tw.AlignLeft
		cfg.Header.Padding.Global = tw.Padding{Left: " ", Right: " "}
		cfg.Row.Padding.Global = tw.Padding{Left: " ", Right: " "}
	})

	table.Header(headers)
	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}

// HandleError prints err and reports whether there was one
func (f *Formatter) HandleError(err error) bool {
	if err == nil {
		return false
	}

	if f.Debug {
		f.PrintError(errors.FormatChain(err))
	} else {
		f.PrintError(errors.FormatSimple(err))
	}

	var batch *errors.BatchError
	if errors.As(err, &batch) {
		for _, id := range batch.IDs() {
			f.SecondaryStyle.Fprintf(f.Writer, "  %s: %s\n", id, errors.Describe(batch.Failures[id]))
		}
	}
	return true
}

// PrintSourceList prints the registered sources
func (f *Formatter) PrintSourceList(sources []source.Source) error {
	f.PrintHeader("Available Sources")

	if len(sources) == 0 {
		f.PrintWarning("No sources available.")
		return nil
	}

	if f.OutputType == OutputTypeTable {
		data := make([][]string, len(sources))
		for i, src := range sources {
			info := src.Info()
			data[i] = []string{info.ID, info.Name, info.SiteURL, info.Description}
		}
		return f.PrintTable([]string{"ID", "NAME", "SITE", "DESCRIPTION"}, data)
	}

	for _, src := range sources {
		info := src.Info()
		f.TitleStyle.Fprintf(f.Writer, "%s ", info.ID)
		f.SecondaryStyle.Fprintf(f.Writer, "(%s) %s\n", info.Name, info.SiteURL)
		if info.Description != "" {
			fmt.Fprintf(f.Writer, "  %s\n", info.Description)
		}
		fmt.Fprintln(f.Writer)
	}
	return nil
}

// PrintMangaDetails prints one manga
func (f *Formatter) PrintMangaDetails(sourceID string, manga core.MangaDetails) {
	f.PrintHeader(manga.Title())

	f.PrintDetail("ID", f.IDStyle.Sprint(core.FormatMangaID(sourceID, manga.ID)))
	if len(manga.Titles) > 1 {
		f.PrintDetail("Alternative Titles", strings.Join(manga.Titles[1:], ", "))
	}
	f.PrintDetail("Author", manga.Author)
	if manga.Artist != "" && manga.Artist != manga.Author {
		f.PrintDetail("Artist", manga.Artist)
	}
	f.PrintDetail("Status", string(manga.Status))
	if manga.Rating > 0 {
		f.PrintDetail("Rating", f.NumberStyle.Sprintf("%.2f", manga.Rating))
	}
	if manga.LastUpdated != nil {
		f.PrintDetail("Last Updated", f.FormatDate(manga.LastUpdated))
	}
	if manga.Hentai {
		f.PrintDetail("Adult", f.WarningStyle.Sprint("yes"))
	}
	for _, axis := range manga.Tags.Axes() {
		f.PrintDetail(axisLabel(axis), strings.Join(manga.Tags[axis], ", "))
	}
	f.PrintDetail("Cover", manga.Image)

	if manga.Desc != "" {
		fmt.Fprintln(f.Writer)
		f.DetailLabelStyle.Fprintln(f.Writer, "Description:")
		fmt.Fprintln(f.Writer, manga.Desc)
	}
	fmt.Fprintln(f.Writer)
}

// PrintChapters lists chapters in the order given. Chapter ids are printed
// bare since the pages command takes them next to the manga id.
func (f *Formatter) PrintChapters(sourceID string, chapters []core.Chapter) error {
	header := fmt.Sprintf("Chapters (%d)", len(chapters))
	if len(chapters) > 0 {
		header = fmt.Sprintf("Chapters of %s (%d)", core.FormatMangaID(sourceID, chapters[0].MangaID), len(chapters))
	}
	f.PrintSection(header)

	if len(chapters) == 0 {
		f.PrintWarning("No chapters available.")
		return nil
	}

	if f.OutputType == OutputTypeTable {
		data := make([][]string, len(chapters))
		for i, ch := range chapters {
			data[i] = []string{
				ch.ID,
				formatNumber(ch.Number),
				ch.Title,
				util.NormalizeLanguage(ch.Language),
				util.FormatDate(ch.Published),
			}
		}
		return f.PrintTable([]string{"ID", "NUMBER", "TITLE", "LANGUAGE", "PUBLISHED"}, data)
	}

	for i, ch := range chapters {
		title := ch.Title
		if title == "" {
			title = "Chapter " + formatNumber(ch.Number)
		}
		f.TitleStyle.Fprintf(f.Writer, "%d. %s ", i+1, title)
		f.IDStyle.Fprintf(f.Writer, "(ID: %s)\n", ch.ID)
		f.DetailLabelStyle.Fprintf(f.Writer, "  Chapter %s", formatNumber(ch.Number))
		f.SecondaryStyle.Fprint(f.Writer, " | ")
		f.DetailLabelStyle.Fprint(f.Writer, "Released: ")
		fmt.Fprint(f.Writer, f.FormatDate(ch.Published))
		f.SecondaryStyle.Fprint(f.Writer, " | ")
		f.DetailLabelStyle.Fprint(f.Writer, "Language: ")
		fmt.Fprintln(f.Writer, f.FormatLanguage(ch.Language))
	}
	return nil
}

// PrintPages lists the page URIs of a chapter
func (f *Formatter) PrintPages(sourceID string, details core.ChapterDetails) {
	f.PrintHeader(fmt.Sprintf("Pages of %s chapter %s (%d)", core.FormatMangaID(sourceID, details.MangaID), details.ID, len(details.Pages)))
	for i, page := range details.Pages {
		f.NumberStyle.Fprintf(f.Writer, "%4d ", i+1)
		fmt.Fprintln(f.Writer, page)
	}
}

// PrintSearchResults prints one search listing
func (f *Formatter) PrintSearchResults(sourceID string, req core.SearchRequest, results []core.SearchResult) error {
	header := "Search Results"
	if req.Title != "" {
		header = fmt.Sprintf("Search Results for '%s'", req.Title)
	}
	f.PrintHeader(header)
	f.PrintDetail("Total results", f.NumberStyle.Sprint(len(results)))

	if len(results) == 0 {
		f.PrintWarning("No results found for your query.")
		return nil
	}

	if f.OutputType == OutputTypeTable {
		data := make([][]string, len(results))
		for i, r := range results {
			data[i] = []string{core.FormatMangaID(sourceID, r.ID), r.Title, r.SubtitleText, r.PrimaryText}
		}
		return f.PrintTable([]string{"ID", "TITLE", "SUBTITLE", "INFO"}, data)
	}

	fmt.Fprintln(f.Writer)
	for i, r := range results {
		f.TitleStyle.Fprintf(f.Writer, "%d. %s ", i+1, r.Title)
		f.IDStyle.Fprintf(f.Writer, "(ID: %s)\n", core.FormatMangaID(sourceID, r.ID))

		var details []string
		for _, text := range []string{r.SubtitleText, r.PrimaryText, r.SecondaryText} {
			if text != "" {
				details = append(details, text)
			}
		}
		if len(details) > 0 {
			f.DetailLabelStyle.Fprintf(f.Writer, "  %s\n", strings.Join(details, " | "))
		}
		if tags := r.Tags.All(); len(tags) > 0 {
			f.SecondaryStyle.Fprintf(f.Writer, "  Tags: %s\n", strings.Join(tags, ", "))
		}
		fmt.Fprintln(f.Writer)
	}
	return nil
}

// PrintUpdated prints the ids an update scan reported
func (f *Formatter) PrintUpdated(sourceID string, since time.Time, ids []string) {
	f.PrintHeader(fmt.Sprintf("Updated since %s", since.Format(time.RFC3339)))
	if len(ids) == 0 {
		f.PrintInfo("Nothing has been updated.")
		return
	}
	for _, id := range ids {
		f.IDStyle.Fprintln(f.Writer, core.FormatMangaID(sourceID, id))
	}
}

func formatNumber(n float64) string {
	if n <= 0 {
		return "?"
	}
	return fmt.Sprintf("%g", n)
}

func axisLabel(axis core.TagAxis) string {
	name := string(axis)
	if name == "" {
		return "Tags"
	}
	return strings.ToUpper(name[:1]) + name[1:]
}
