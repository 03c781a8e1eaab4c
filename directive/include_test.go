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

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bufbuild/cpptree/directive"
	"github.com/bufbuild/cpptree/internal/lexer"
	"github.com/bufbuild/cpptree/token"
)

func buildInclude(t *testing.T, src string) (*directive.Include, []string) {
	t.Helper()
	n, diags := build(t, src)
	inc, ok := n.(*directive.Include)
	require.True(t, ok)
	assertRetained(t, inc.Tokens())
	assertRetained(t, token.Collect(inc.Include()))
	return inc, messages(diags)
}

// expandTo returns an expansion callback that replaces any target with the
// body of the given #define.
func expandTo(t *testing.T, define string) directive.ExpandFunc {
	n, _ := build(t, define)
	body := n.(*directive.Define).Body()
	return func([]*token.Token) []*token.Token { return body }
}

func TestInclude(t *testing.T) {
	t.Parallel()

	tests := []struct {
		src      string
		kind     directive.Kind
		multi    bool
		toks     []string
		file     string
		system   bool
		rendered string
	}{
		{
			src:      `#include "a.h"` + "\n",
			kind:     directive.KindInclude,
			toks:     []string{`"a.h"`},
			file:     "a.h",
			rendered: `include "a.h"`,
		},
		{
			src:      "#include <sys/types.h> // types\n",
			kind:     directive.KindInclude,
			toks:     []string{"<sys/types.h>"},
			file:     "sys/types.h",
			system:   true,
			rendered: "include <sys/types.h>",
		},
		{
			src:      "#include_next <limits.h>\n",
			kind:     directive.KindIncludeNext,
			toks:     []string{"<limits.h>"},
			file:     "limits.h",
			system:   true,
			rendered: "include_next <limits.h>",
		},
		{
			src:  "#include HEADER\n",
			kind: directive.KindInclude,
			toks: []string{"HEADER"},
			file: "HEADER",
		},
		{
			src:      "#include PLATFORM(io.h)\n",
			kind:     directive.KindInclude,
			multi:    true,
			toks:     []string{"PLATFORM", "(", "io", ".", "h", ")"},
			file:     "PLATFORM(io.h)",
			rendered: "include PLATFORM ( io . h )",
		},
		{
			src:   `#include "a.h" "b.h"` + "\n",
			kind:  directive.KindInclude,
			multi: true,
			toks:  []string{`"a.h"`, `"b.h"`},
			file:  `"a.h" "b.h"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			t.Parallel()

			inc, diags := buildInclude(t, tt.src)
			assert.Empty(t, diags)
			assert.Equal(t, tt.kind, inc.Kind())
			assert.Equal(t, tt.multi, inc.IsMultiToken())
			assert.Equal(t, tt.toks, texts(inc.Tokens()))
			assert.Equal(t, tt.toks, texts(token.Collect(inc.Include())))
			assert.Equal(t, tt.file, inc.FileName(nil))
			assert.Equal(t, tt.system, inc.IsSystem(nil))
			if tt.rendered != "" {
				assert.Equal(t, tt.rendered, inc.String())
			}
		})
	}
}

func TestIncludePromotion(t *testing.T) {
	t.Parallel()

	toks := lexer.Lex(`#include "a.h" "b.h" "c.h"`+"\n", nil)
	b := directive.NewBuilder(toks[0], nil)
	for i := 1; b.Accept(toks[i]); i++ {
	}
	inc := b.Node().(*directive.Include)

	require.True(t, inc.IsMultiToken())
	got := inc.Tokens()
	require.Len(t, got, 3)
	for i, tok := range got {
		assert.Same(t, toks[i+1], tok)
	}
	assert.Equal(t, got, inc.Tokens())
}

func TestIncludeExpansion(t *testing.T) {
	t.Parallel()

	inc, _ := buildInclude(t, "#include PLATFORM(io.h)\n")

	system := expandTo(t, "#define H <sys/io.h>\n")
	assert.Equal(t, "sys/io.h", inc.FileName(system))
	assert.True(t, inc.IsSystem(system))

	quoted := expandTo(t, `#define H "win/io.h"`+"\n")
	assert.Equal(t, "win/io.h", inc.FileName(quoted))
	assert.False(t, inc.IsSystem(quoted))

	// Expansion that does not produce a literal is returned as is.
	other := expandTo(t, "#define H io . h\n")
	assert.Equal(t, "io . h", inc.FileName(other))

	// Literal targets ignore the callback.
	lit, _ := buildInclude(t, "#include <a.h>\n")
	assert.Equal(t, "a.h", lit.FileName(quoted))
	assert.True(t, lit.IsSystem(quoted))

	// So do single-token macro targets that expand to a literal.
	single, _ := buildInclude(t, "#include HEADER\n")
	assert.Equal(t, "win/io.h", single.FileName(quoted))
}

func TestIncludeEmpty(t *testing.T) {
	t.Parallel()

	inc, diags := buildInclude(t, "#include /* nothing */\n")
	assert.Equal(t, []string{`severe: #include expects "FILENAME" or <FILENAME>`}, diags)
	assert.Nil(t, inc.Tokens())
	assert.True(t, inc.Include().Next().IsEOF())
	assert.Equal(t, "", inc.FileName(nil))
	assert.Equal(t, "include <empty>", inc.String())
}
