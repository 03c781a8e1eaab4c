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

package report

import (
	"fmt"
	"io"
	"sync"

	"github.com/tliron/commonlog"
)

// Sink is responsible for delivering a diagnostic somewhere.
type Sink interface {
	Report(Diagnostic)
}

// SinkFunc adapts a function to a [Sink].
type SinkFunc func(Diagnostic)

// Report implements [Sink].
func (f SinkFunc) Report(d Diagnostic) {
	f(d)
}

// Logger is the subset of a commonlog.Logger that [LogSink] needs.
type Logger interface {
	Warning(message string, keysAndValues ...any)
	Error(message string, keysAndValues ...any)
}

// LogSink returns a sink that routes diagnostics to a shared logger as
// structured records. Warnings are logged at warning level, severe
// diagnostics at error level.
func LogSink(log Logger) Sink {
	return SinkFunc(func(d Diagnostic) {
		kv := []any{"file", d.File, "line", d.Line, "severity", d.Severity.String()}
		if d.Severity == Warning {
			log.Warning(d.Message, kv...)
		} else {
			log.Error(d.Message, kv...)
		}
	})
}

// DefaultSink returns a [LogSink] over the "cpptree" commonlog logger.
func DefaultSink() Sink {
	return LogSink(commonlog.GetLogger("cpptree"))
}

// StreamSink returns the standalone-mode sink, which writes each diagnostic
// as one line to w.
//
// Writes are serialized, so the sink may be shared by handlers for
// different files.
func StreamSink(w io.Writer) Sink {
	var mu sync.Mutex
	return SinkFunc(func(d Diagnostic) {
		mu.Lock()
		defer mu.Unlock()
		fmt.Fprintln(w, d.Error())
	})
}
