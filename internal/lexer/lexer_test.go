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

package lexer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bufbuild/cpptree/intern"
	"github.com/bufbuild/cpptree/internal/lexer"
	"github.com/bufbuild/cpptree/token"
)

type tok struct {
	kind token.Kind
	text string
	line int
}

func summarize(toks []*token.Token) []tok {
	out := make([]tok, len(toks))
	for i, t := range toks {
		out[i] = tok{t.Kind, t.Text, t.Line}
	}
	return out
}

func TestLexDirectives(t *testing.T) {
	t.Parallel()

	src := "#include <stdio.h>\n" +
		"  #  define MAX(a,b) ((a)>(b)) // max\n" +
		"int x = MAX(1, 2);\n" +
		"#define LONG 1 \\\n  + 2\n" +
		"#if /* c */ X\n" +
		"#endif"

	got := summarize(lexer.Lex(src, nil))
	want := []tok{
		{token.Include, "#include", 1},
		{token.SysInclude, "<stdio.h>", 1},
		{token.EndOfDirective, "", 1},
		{token.Define, "#  define", 2},
		{token.Ident, "MAX", 2},
		{token.Punct, "(", 2},
		{token.Ident, "a", 2},
		{token.Punct, ",", 2},
		{token.Ident, "b", 2},
		{token.Punct, ")", 2},
		{token.Punct, "(", 2},
		{token.Punct, "(", 2},
		{token.Ident, "a", 2},
		{token.Punct, ")", 2},
		{token.Punct, ">", 2},
		{token.Punct, "(", 2},
		{token.Ident, "b", 2},
		{token.Punct, ")", 2},
		{token.Punct, ")", 2},
		{token.Comment, "// max", 2},
		{token.EndOfDirective, "", 2},
		{token.Ident, "int", 3},
		{token.Ident, "x", 3},
		{token.Punct, "=", 3},
		{token.Ident, "MAX", 3},
		{token.Punct, "(", 3},
		{token.Number, "1", 3},
		{token.Punct, ",", 3},
		{token.Number, "2", 3},
		{token.Punct, ")", 3},
		{token.Punct, ";", 3},
		{token.Define, "#define", 4},
		{token.Ident, "LONG", 4},
		{token.Number, "1", 4},
		{token.Punct, "+", 5},
		{token.Number, "2", 5},
		{token.EndOfDirective, "", 5},
		{token.If, "#if", 6},
		{token.Comment, "/* c */", 6},
		{token.Ident, "X", 6},
		{token.EndOfDirective, "", 6},
		{token.Endif, "#endif", 7},
		{token.EndOfDirective, "", 7},
		{token.EOF, "", 7},
	}
	assert.Equal(t, want, got)
}

func TestLexOffsets(t *testing.T) {
	t.Parallel()

	toks := lexer.Lex("#define F(x) #x\n", nil)
	require.Len(t, toks, 9)

	name, lparen := toks[1], toks[2]
	assert.Equal(t, 8, name.Offset)
	assert.Equal(t, 9, name.EndOffset)
	assert.True(t, name.Adjacent(lparen))

	sharp := toks[5]
	assert.True(t, sharp.IsPunct("#"))
	assert.True(t, toks[7].IsEndOfDirective())
	assert.Equal(t, 15, toks[7].Offset)
	assert.Equal(t, 16, toks[8].Offset)
}

func TestLexMisc(t *testing.T) {
	t.Parallel()

	table := new(intern.Table)
	toks := lexer.Lex("#pragma once\n#\n#ident \"x\"\na <b> 1.5e+3 ... ## 'c' \"s\\\"t\"", table)
	got := summarize(toks)
	want := []tok{
		{token.Pragma, "#pragma", 1},
		{token.Ident, "once", 1},
		{token.EndOfDirective, "", 1},
		{token.Punct, "#", 2},
		{token.Punct, "#", 3},
		{token.Ident, "ident", 3},
		{token.String, `"x"`, 3},
		{token.Ident, "a", 4},
		{token.Punct, "<", 4},
		{token.Ident, "b", 4},
		{token.Punct, ">", 4},
		{token.Number, "1.5e+3", 4},
		{token.Punct, "...", 4},
		{token.Punct, "##", 4},
		{token.Char, "'c'", 4},
		{token.String, `"s\"t"`, 4},
		{token.EOF, "", 4},
	}
	assert.Equal(t, want, got)
	assert.Equal(t, "once", table.Value(toks[1].ID))
}
