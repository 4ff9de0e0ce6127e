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
	"encoding/json"
	"io"
	"regexp"
	"strings"
)

var (
	embeddedURLPattern = regexp.MustCompile(`https?://[^\s]+`)
	controlPattern     = regexp.MustCompile(`[\t\n\r]+`)
)

// APIResponse represents a standardized JSON response
type APIResponse struct {
	Status string      `json:"status"`
	Data   interface{} `json:"data,omitempty"`
	Error  string      `json:"error,omitempty"`
}

// WriteJSON writes a standardized response. A non-nil err turns the
// status into "error".
func WriteJSON(w io.Writer, status string, data interface{}, err error) error {
	response := APIResponse{Status: status}
	if err != nil {
		response.Status = "error"
		response.Error = err.Error()
	} else {
		response.Data = data
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(response)
}

// CleanImageURL strips control characters and unwraps URLs that sites embed
// inside other text.
func CleanImageURL(dirtyURL string) string {
	if strings.Contains(dirtyURL, "http") {
		if matches := embeddedURLPattern.FindAllString(dirtyURL, -1); len(matches) > 0 {
			return matches[len(matches)-1]
		}
	}
	return strings.TrimSpace(controlPattern.ReplaceAllString(dirtyURL, ""))
}
