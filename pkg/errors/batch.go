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

// BatchError reports the ids of a batch lookup that failed, keyed by id.
// It is returned next to whatever the batch did resolve.
type BatchError struct {
	Operation string
	Failures  map[string]error
}

// NewBatchError creates an empty batch error for operation
func NewBatchError(operation string) *BatchError {
	return &BatchError{Operation: operation, Failures: make(map[string]error)}
}

// Add records the failure of id, nil errors are ignored
func (b *BatchError) Add(id string, err error) {
	if err == nil {
		return
	}
	b.Failures[id] = err
}

// IDs returns the failed ids in sorted order
func (b *BatchError) IDs() []string {
	ids := make([]string, 0, len(b.Failures))
	for id := range b.Failures {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// ErrOrNil returns b as an error only when something failed
func (b *BatchError) ErrOrNil() error {
	if b == nil || len(b.Failures) == 0 {
		return nil
	}
	return b
}

func (b *BatchError) Error() string {
	parts := make([]string, 0, len(b.Failures))
	for _, id := range b.IDs() {
		parts = append(parts, fmt.Sprintf("%s: %v", id, b.Failures[id]))
	}
	return fmt.Sprintf("%s failed for %d id(s): %s", b.Operation, len(b.Failures), strings.Join(parts, "; "))
}

// Unwrap exposes every per-id failure to Is and As
func (b *BatchError) Unwrap() []error {
	errs := make([]error, 0, len(b.Failures))
	for _, id := range b.IDs() {
		errs = append(errs, b.Failures[id])
	}
	return errs
}
