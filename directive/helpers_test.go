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

package directive_test

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bufbuild/cpptree/directive"
	"github.com/bufbuild/cpptree/intern"
	"github.com/bufbuild/cpptree/internal/lexer"
	"github.com/bufbuild/cpptree/report"
	"github.com/bufbuild/cpptree/token"
)

// build lexes src, which must start with a directive, and feeds it to a
// builder the way a driver would.
func build(t *testing.T, src string) (directive.Node, []report.Diagnostic) {
	t.Helper()

	toks := lexer.Lex(src, nil)
	require.True(t, toks[0].IsDirective(), "%q does not start with a directive", src)

	h := report.NewHandler("test.h", nil)
	b := directive.NewBuilder(toks[0], h)
	i := 1
	for b.Accept(toks[i]) {
		i++
	}
	require.True(t, toks[i].IsEndOfDirective() || toks[i].IsEOF(), "stopped at %#v", toks[i])
	return b.Node(), h.Diagnostics()
}

// parse parses src as the file "test.h".
func parse(t *testing.T, src string) (*directive.File, []report.Diagnostic) {
	t.Helper()

	table := new(intern.Table)
	fsys := fstest.MapFS{"test.h": {Data: []byte(src)}}
	file := directive.NewFile(fsys, "test.h", table)
	diags := new(directive.Parser).Parse(file, token.NewSliceStream(lexer.Lex(src, table)...))
	return file, diags
}

func texts(toks []*token.Token) []string {
	if toks == nil {
		return nil
	}
	out := make([]string, len(toks))
	for i, tok := range toks {
		out[i] = tok.Text
	}
	return out
}

func messages(diags []report.Diagnostic) []string {
	var out []string
	for _, d := range diags {
		out = append(out, d.Severity.String()+": "+d.Message)
	}
	return out
}

// assertRetained checks a token list kept by a node: the token that ended the
// directive, and any comments, must never be part of it.
func assertRetained(t *testing.T, toks []*token.Token) {
	t.Helper()
	for _, tok := range toks {
		assert.False(t, tok.IsEndOfDirective(), "retained %#v", tok)
		assert.False(t, tok.IsEOF(), "retained %#v", tok)
		assert.False(t, tok.IsComment(), "retained %#v", tok)
	}
}
