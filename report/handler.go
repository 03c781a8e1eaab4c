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
	"slices"
	"sync"

	"github.com/bufbuild/cpptree/token"
)

// Handler records the diagnostics for one file and forwards each of them to
// a [Sink].
//
// A nil *Handler is valid and discards everything, which is convenient for
// callers that build nodes without caring about diagnostics.
type Handler struct {
	file string
	sink Sink

	mu     sync.Mutex
	diags  []Diagnostic
	severe bool
}

// NewHandler returns a handler for diagnostics about file. If sink is nil,
// diagnostics are only recorded.
func NewHandler(file string, sink Sink) *Handler {
	return &Handler{file: file, sink: sink}
}

// File returns the name of the file this handler reports about.
func (h *Handler) File() string {
	if h == nil {
		return ""
	}
	return h.file
}

// Warnf reports a [Warning] located at tok.
func (h *Handler) Warnf(tok *token.Token, format string, args ...any) {
	h.reportAt(tok, Warning, format, args...)
}

// Severef reports a [Severe] diagnostic located at tok.
func (h *Handler) Severef(tok *token.Token, format string, args ...any) {
	h.reportAt(tok, Severe, format, args...)
}

func (h *Handler) reportAt(tok *token.Token, sev Severity, format string, args ...any) {
	if h == nil {
		return
	}
	d := Diagnostic{
		File:     h.file,
		Message:  fmt.Sprintf(format, args...),
		Severity: sev,
	}
	if tok != nil && !tok.IsSynthetic() {
		d.Line = tok.Line
		d.Offset = tok.Offset
	}
	h.Report(d)
}

// Report records d and forwards it to the sink.
func (h *Handler) Report(d Diagnostic) {
	if h == nil {
		return
	}

	h.mu.Lock()
	h.diags = append(h.diags, d)
	if d.Severity == Severe {
		h.severe = true
	}
	h.mu.Unlock()

	// Call the sink outside of the lock; it may be slow.
	if h.sink != nil {
		h.sink.Report(d)
	}
}

// Diagnostics returns a copy of everything reported so far, in order.
func (h *Handler) Diagnostics() []Diagnostic {
	if h == nil {
		return nil
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	return slices.Clone(h.diags)
}

// Err returns [ErrMalformedSource] if any severe diagnostic was reported.
func (h *Handler) Err() error {
	if h == nil {
		return nil
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.severe {
		return fmt.Errorf("%s: %w", h.file, ErrMalformedSource)
	}
	return nil
}
