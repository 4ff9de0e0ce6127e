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

package errors

import (
	"fmt"
	"sort"
	"strings"
)

// GetCategory returns the category of a tracked error
func GetCategory(err error) ErrorCategory {
	var te *TrackedError
	if As(err, &te) {
		return te.Category
	}
	return CategoryUnknown
}

// GetContext returns the context data of a tracked error
func GetContext(err error) map[string]interface{} {
	var te *TrackedError
	if As(err, &te) {
		return te.GetContext()
	}
	return nil
}

// Describe names the error kind in words a user can act on
func Describe(err error) string {
	switch {
	case err == nil:
		return ""
	case IsNotFound(err):
		return "not found on the site"
	case IsRateLimited(err):
		return "site is rate limiting requests"
	case IsTransport(err):
		return "site unreachable"
	case IsExtraction(err):
		return "site markup changed"
	case IsConsistency(err):
		return "site returned mismatched ids"
	case IsValidation(err):
		return "invalid input or incomplete data"
	default:
		return "unexpected error"
	}
}

// FormatSimple renders a one-line error: [category] message (context)
func FormatSimple(err error) string {
	var te *TrackedError
	if !As(err, &te) {
		return err.Error()
	}

	msg := fmt.Sprintf("[%s] %s", te.Category, err.Error())
	if ctx := formatContext(te.Context); ctx != "" {
		msg += " (" + ctx + ")"
	}
	return msg
}

// FormatChain renders the error with its call chain, for debug output
func FormatChain(err error) string {
	var te *TrackedError
	if !As(err, &te) {
		return err.Error()
	}

	parts := []string{fmt.Sprintf("Error: %s", err.Error())}

	if len(te.CallChain) > 0 {
		parts = append(parts, "Function Call Chain:")
		for i, call := range te.CallChain {
			line := fmt.Sprintf("  %d. [%s] %s() at %s:%d",
				i+1, call.Timestamp.Format("15:04:05.000"), call.ShortName, call.File, call.Line)
			if call.Operation != "" {
				line += " op=" + call.Operation
			}
			parts = append(parts, line)
		}
	}

	parts = append(parts, fmt.Sprintf("Category: %s", te.Category))
	if te.RootCause != nil && te.RootCause.Error() != err.Error() {
		parts = append(parts, fmt.Sprintf("Root Cause: %v", te.RootCause))
	}
	if ctx := formatContext(te.Context); ctx != "" {
		parts = append(parts, "Context: "+ctx)
	}

	return strings.Join(parts, "\n")
}

func formatContext(ctx map[string]interface{}) string {
	if len(ctx) == 0 {
		return ""
	}

	keys := make([]string, 0, len(ctx))
	for k := range ctx {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, len(keys))
	for i, k := range keys {
		pairs[i] = fmt.Sprintf("%s=%v", k, ctx[k])
	}
	return strings.Join(pairs, ", ")
}
