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

package report_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bufbuild/cpptree/report"
	"github.com/bufbuild/cpptree/token"
)

type fakeLogger struct {
	warnings, errors []string
	kvs              [][]any
}

func (l *fakeLogger) Warning(message string, kv ...any) {
	l.warnings = append(l.warnings, message)
	l.kvs = append(l.kvs, kv)
}

func (l *fakeLogger) Error(message string, kv ...any) {
	l.errors = append(l.errors, message)
	l.kvs = append(l.kvs, kv)
}

func TestHandler(t *testing.T) {
	t.Parallel()

	var forwarded []report.Diagnostic
	h := report.NewHandler("a.h", report.SinkFunc(func(d report.Diagnostic) {
		forwarded = append(forwarded, d)
	}))

	tok := &token.Token{Kind: token.Ident, Text: "X", Offset: 12, EndOffset: 13, Line: 3}
	h.Warnf(tok, "extra tokens at end of #%s directive", "undef")
	require.NoError(t, h.Err())

	h.Severef(token.VariadicMarker(), "macro names must be identifiers")
	err := h.Err()
	require.Error(t, err)
	assert.True(t, errors.Is(err, report.ErrMalformedSource))

	diags := h.Diagnostics()
	assert.Equal(t, forwarded, diags)
	require.Len(t, diags, 2)
	assert.Equal(t, report.Diagnostic{
		File:     "a.h",
		Line:     3,
		Offset:   12,
		Message:  "extra tokens at end of #undef directive",
		Severity: report.Warning,
	}, diags[0])
	// Synthetic tokens carry no position.
	assert.Zero(t, diags[1].Line)
	assert.Equal(t, "a.h:3: warning: extra tokens at end of #undef directive", diags[0].Error())
	assert.Equal(t, "a.h: severe: macro names must be identifiers", diags[1].Error())
}

func TestNilHandler(t *testing.T) {
	t.Parallel()

	var h *report.Handler
	h.Severef(nil, "ignored")
	assert.NoError(t, h.Err())
	assert.Empty(t, h.Diagnostics())
	assert.Empty(t, h.File())
}

func TestLogSink(t *testing.T) {
	t.Parallel()

	log := new(fakeLogger)
	h := report.NewHandler("b.h", report.LogSink(log))
	h.Warnf(nil, "w")
	h.Severef(nil, "s")

	assert.Equal(t, []string{"w"}, log.warnings)
	assert.Equal(t, []string{"s"}, log.errors)
	assert.Equal(t, []any{"file", "b.h", "line", 0, "severity", "warning"}, log.kvs[0])
	assert.Equal(t, []any{"file", "b.h", "line", 0, "severity", "severe"}, log.kvs[1])
}

func TestStreamSink(t *testing.T) {
	t.Parallel()

	var out strings.Builder
	h := report.NewHandler("c.h", report.StreamSink(&out))
	h.Severef(&token.Token{Line: 7, Offset: 1}, "#endif without #if")
	assert.Equal(t, "c.h:7: severe: #endif without #if\n", out.String())
}
