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

import stderrors "errors"

var (
	As     = stderrors.As
	Is     = stderrors.Is
	Unwrap = stderrors.Unwrap
)

// Sentinels for the error kinds a Source or the Wrapper can report.
// A TrackedError matches the sentinel of its category with Is.
var (
	ErrTransport   = stderrors.New("transport error")
	ErrRateLimit   = stderrors.New("rate limit exceeded")
	ErrExtraction  = stderrors.New("extraction error")
	ErrNotFound    = stderrors.New("resource not found")
	ErrConsistency = stderrors.New("consistency error")
	ErrValidation  = stderrors.New("validation error")
)

func IsTransport(err error) bool   { return Is(err, ErrTransport) }
func IsExtraction(err error) bool  { return Is(err, ErrExtraction) }
func IsNotFound(err error) bool    { return Is(err, ErrNotFound) }
func IsConsistency(err error) bool { return Is(err, ErrConsistency) }
func IsValidation(err error) bool  { return Is(err, ErrValidation) }
func IsRateLimited(err error) bool { return Is(err, ErrRateLimit) }
