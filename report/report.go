// Copyright 2020-2024 Buf Technologies, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package report carries the diagnostics produced while building directive
// trees.
//
// Malformed directives never abort a parse. Instead, the builders describe
// what they found to a [Handler], which records each [Diagnostic] and forwards
// it to a [Sink]. The two sinks provided here mirror the two ways a compiler
// session usually surfaces them: routed to the shared logger ([LogSink]), or
// written straight to an error stream in standalone mode ([StreamSink]).
package report

import (
	"errors"
	"fmt"
)

// ErrMalformedSource is returned by [Handler.Err] when at least one
// [Severe] diagnostic was reported.
var ErrMalformedSource = errors.New("malformed preprocessor directives")

// Severity classifies a [Diagnostic].
type Severity int8

const (
	// Warning is for recoverable oddities, such as extra tokens after a
	// directive's operands.
	Warning Severity = iota
	// Severe is for structural violations, such as a macro without a name.
	Severe
)

// String implements [fmt.Stringer].
func (s Severity) String() string {
	switch s {
	case Warning:
		return "warning"
	case Severe:
		return "severe"
	default:
		return fmt.Sprintf("report.Severity(%d)", int(s))
	}
}

// Diagnostic is a single report about a source file.
type Diagnostic struct {
	File     string
	Line     int
	Offset   int
	Message  string
	Severity Severity
}

// Error implements error, so that a Diagnostic can be returned or wrapped
// like any other error.
func (d Diagnostic) Error() string {
	if d.Line > 0 {
		return fmt.Sprintf("%s:%d: %v: %s", d.File, d.Line, d.Severity, d.Message)
	}
	return fmt.Sprintf("%s: %v: %s", d.File, d.Severity, d.Message)
}
