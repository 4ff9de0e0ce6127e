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
	"context"
	"fmt"
	"strings"
)

// ErrorBuilder provides a fluent interface for building tracked errors
type ErrorBuilder struct {
	err *TrackedError
}

// Track wraps any error with automatic tracking and returns a builder
func Track(err error) *ErrorBuilder {
	if err == nil {
		return nil
	}
	return &ErrorBuilder{err: trackError(err)}
}

// New creates a new error with tracking
func New(message string) *ErrorBuilder {
	return Track(fmt.Errorf("%s", message))
}

// Newf creates a new formatted error with tracking
func Newf(format string, args ...interface{}) *ErrorBuilder {
	return Track(fmt.Errorf(format, args...))
}

// WithContext adds context data to the error
func (b *ErrorBuilder) WithContext(key string, value interface{}) *ErrorBuilder {
	if b == nil || b.err == nil {
		return b
	}

	b.err.Context[key] = value
	return b
}

// WithMessage sets a user-friendly message
func (b *ErrorBuilder) WithMessage(message string) *ErrorBuilder {
	if b == nil || b.err == nil {
		return b
	}

	b.err.UserMessage = message
	return b
}

// WithMessagef sets a formatted user-friendly message
func (b *ErrorBuilder) WithMessagef(format string, args ...interface{}) *ErrorBuilder {
	return b.WithMessage(fmt.Sprintf(format, args...))
}

// WithOperation records the operation on the newest call in the chain and
// in the context, the first operation recorded wins in the context
func (b *ErrorBuilder) WithOperation(operation string) *ErrorBuilder {
	if b == nil || b.err == nil {
		return b
	}

	if n := len(b.err.CallChain); n > 0 {
		b.err.CallChain[n-1].Operation = operation
	}
	if _, exists := b.err.Context["operation"]; !exists {
		b.err.Context["operation"] = operation
	}
	return b
}

// WithSource tags the error with the id of the source that produced it
func (b *ErrorBuilder) WithSource(sourceID string) *ErrorBuilder {
	return b.WithContext("source", sourceID)
}

// WithIDs records the manga or chapter ids involved in the failure
func (b *ErrorBuilder) WithIDs(ids ...string) *ErrorBuilder {
	return b.WithContext("ids", strings.Join(ids, ","))
}

// WithHTTPContext adds HTTP-related context
func (b *ErrorBuilder) WithHTTPContext(method, url string, statusCode int) *ErrorBuilder {
	return b.
		WithContext("method", method).
		WithContext("url", url).
		WithContext("status_code", statusCode)
}

// AsCategory sets the error category
func (b *ErrorBuilder) AsCategory(category ErrorCategory) *ErrorBuilder {
	if b == nil || b.err == nil {
		return b
	}

	b.err.Category = category
	return b
}

// AsTransport marks the error as a fetch failure
func (b *ErrorBuilder) AsTransport() *ErrorBuilder {
	return b.AsCategory(CategoryTransport)
}

// AsExtraction marks the error as markup that no longer matches expectations
func (b *ErrorBuilder) AsExtraction() *ErrorBuilder {
	return b.AsCategory(CategoryExtraction)
}

// AsNotFound marks the error as not-found
func (b *ErrorBuilder) AsNotFound() *ErrorBuilder {
	return b.AsCategory(CategoryNotFound)
}

// AsConsistency marks the error as a cross-reference mismatch
func (b *ErrorBuilder) AsConsistency() *ErrorBuilder {
	return b.AsCategory(CategoryConsistency)
}

// AsValidation marks the error as an invariant violation or bad input
func (b *ErrorBuilder) AsValidation() *ErrorBuilder {
	return b.AsCategory(CategoryValidation)
}

// KeepCategory applies category only when nothing classified the error yet
func (b *ErrorBuilder) KeepCategory(fallback ErrorCategory) *ErrorBuilder {
	if b == nil || b.err == nil || b.err.Category != CategoryUnknown {
		return b
	}
	return b.AsCategory(fallback)
}

// Error returns the tracked error
func (b *ErrorBuilder) Error() error {
	if b == nil || b.err == nil {
		return nil
	}
	return b.err
}

// String implements fmt.Stringer
func (b *ErrorBuilder) String() string {
	if b == nil || b.err == nil {
		return ""
	}
	return b.err.Error()
}

// Wrap wraps this error with additional context, keeping its category
func (b *ErrorBuilder) Wrap(message string) *ErrorBuilder {
	if b == nil || b.err == nil {
		return b
	}

	wrapped := &TrackedError{
		Original:  fmt.Errorf("%s: %w", message, b.err),
		RootCause: b.err.RootCause,
		CallChain: append(append([]FunctionCall(nil), b.err.CallChain...), currentCall()),
		Context:   make(map[string]interface{}, len(b.err.Context)),
		Category:  b.err.Category,
	}
	for k, v := range b.err.Context {
		wrapped.Context[k] = v
	}
	return &ErrorBuilder{err: wrapped}
}

// Wrapf wraps this error with formatted context
func (b *ErrorBuilder) Wrapf(format string, args ...interface{}) *ErrorBuilder {
	return b.Wrap(fmt.Sprintf(format, args...))
}

// FromContext creates an error from a cancelled or expired context
func FromContext(ctx context.Context) *ErrorBuilder {
	err := ctx.Err()
	if err == nil {
		return nil
	}

	builder := Track(err).AsTransport()
	if Is(err, context.DeadlineExceeded) {
		return builder.WithMessage("operation timed out")
	}
	return builder.WithMessage("operation was cancelled")
}
