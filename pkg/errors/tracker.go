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
	"runtime"
	"strings"
	"time"
)

// TrackedError wraps errors with the call chain that saw them and the
// context (operation, source, ids) needed to tell failure kinds apart
type TrackedError struct {
	Original    error                  `json:"original_error"`
	RootCause   error                  `json:"root_cause"`
	CallChain   []FunctionCall         `json:"call_chain"`
	Context     map[string]interface{} `json:"context,omitempty"`
	UserMessage string                 `json:"user_message,omitempty"`
	Category    ErrorCategory          `json:"category"`
}

// FunctionCall represents a single function in the call chain
type FunctionCall struct {
	Function  string    `json:"function"`
	ShortName string    `json:"short_name"`
	Package   string    `json:"package"`
	File      string    `json:"file"`
	Line      int       `json:"line"`
	Timestamp time.Time `json:"timestamp"`
	Operation string    `json:"operation,omitempty"`
}

// ErrorCategory classifies an error into one of the reported error kinds
type ErrorCategory string

const (
	CategoryTransport   ErrorCategory = "transport"
	CategoryExtraction  ErrorCategory = "extraction"
	CategoryNotFound    ErrorCategory = "not_found"
	CategoryConsistency ErrorCategory = "consistency"
	CategoryValidation  ErrorCategory = "validation"
	CategoryUnknown     ErrorCategory = "unknown"
)

var categorySentinels = map[ErrorCategory]error{
	CategoryTransport:   ErrTransport,
	CategoryExtraction:  ErrExtraction,
	CategoryNotFound:    ErrNotFound,
	CategoryConsistency: ErrConsistency,
	CategoryValidation:  ErrValidation,
}

func (e *TrackedError) Error() string {
	if e.UserMessage != "" {
		return e.UserMessage
	}
	if e.Original != nil {
		return e.Original.Error()
	}
	return "unknown error"
}

func (e *TrackedError) Unwrap() error {
	return e.Original
}

// Is reports a match against the sentinel of the error's category, so a
// plain fmt error tracked AsExtraction still satisfies Is(err, ErrExtraction)
func (e *TrackedError) Is(target error) bool {
	sentinel, ok := categorySentinels[e.Category]
	return ok && sentinel == target
}

// GetFunctionChain returns the function call path as a string
func (e *TrackedError) GetFunctionChain() string {
	if len(e.CallChain) == 0 {
		return ""
	}

	functions := make([]string, len(e.CallChain))
	for i, call := range e.CallChain {
		functions[i] = call.ShortName
	}

	return strings.Join(functions, " -> ")
}

// GetContext returns the context data associated with the error
func (e *TrackedError) GetContext() map[string]interface{} {
	if e.Context == nil {
		return make(map[string]interface{})
	}
	return e.Context
}

// IsCategory checks if error belongs to a specific category
func (e *TrackedError) IsCategory(category ErrorCategory) bool {
	return e.Category == category
}

// trackError wraps err, or extends the chain when err is already tracked
func trackError(err error) *TrackedError {
	call := currentCall()

	var tracked *TrackedError
	if As(err, &tracked) {
		tracked.CallChain = append(tracked.CallChain, call)
		return tracked
	}

	return &TrackedError{
		Original:  err,
		RootCause: findRootCause(err),
		CallChain: []FunctionCall{call},
		Context:   make(map[string]interface{}),
		Category:  classifyError(err),
	}
}

func currentCall() FunctionCall {
	pc, file, line, ok := getCaller()
	if !ok {
		return FunctionCall{Function: "unknown", ShortName: "unknown", Package: "unknown", File: "unknown", Timestamp: time.Now()}
	}

	name := "unknown"
	if fn := runtime.FuncForPC(pc); fn != nil {
		name = fn.Name()
	}

	return FunctionCall{
		Function:  name,
		ShortName: extractShortFunctionName(name),
		Package:   extractPackageName(name),
		File:      extractFileName(file),
		Line:      line,
		Timestamp: time.Now(),
	}
}

// getCaller walks up the stack to find the first frame outside this package
func getCaller() (uintptr, string, int, bool) {
	for i := 1; i < 12; i++ {
		pc, file, line, ok := runtime.Caller(i)
		if !ok {
			break
		}
		if !strings.Contains(file, "pkg/errors/") || strings.HasSuffix(file, "_test.go") {
			return pc, file, line, true
		}
	}

	return runtime.Caller(1)
}

func extractShortFunctionName(fullName string) string {
	idx := strings.LastIndex(fullName, ".")
	if idx == -1 {
		return fullName
	}

	shortName := fullName[idx+1:]

	// Methods look like "pkg.(*Wrapper).Search"
	if start := strings.LastIndex(fullName, "(*"); start != -1 {
		if end := strings.Index(fullName[start:], ")."); end != -1 {
			return fullName[start+2:start+end] + "." + shortName
		}
	}

	return shortName
}

func extractPackageName(fullName string) string {
	if idx := strings.LastIndex(fullName, "/"); idx != -1 {
		fullName = fullName[idx+1:]
	}
	if idx := strings.Index(fullName, "."); idx != -1 {
		return fullName[:idx]
	}
	return "unknown"
}

func extractFileName(fullPath string) string {
	if idx := strings.LastIndex(fullPath, "/"); idx != -1 {
		return fullPath[idx+1:]
	}
	return fullPath
}

// classifyError guesses a category for errors nobody categorized explicitly
func classifyError(err error) ErrorCategory {
	for category, sentinel := range categorySentinels {
		if Is(err, sentinel) {
			return category
		}
	}
	if Is(err, ErrRateLimit) {
		return CategoryTransport
	}

	errStr := strings.ToLower(err.Error())
	if isNetworkError(errStr) {
		return CategoryTransport
	}
	return CategoryUnknown
}

func isNetworkError(errStr string) bool {
	networkPatterns := []string{
		"dial tcp", "connection refused", "no such host", "network is unreachable",
		"connection reset", "timeout", "tls", "certificate", "no route to host", "eof",
	}

	for _, pattern := range networkPatterns {
		if strings.Contains(errStr, pattern) {
			return true
		}
	}
	return false
}

func findRootCause(err error) error {
	root := err
	for {
		unwrapped := Unwrap(root)
		if unwrapped == nil {
			return root
		}
		root = unwrapped
	}
}
