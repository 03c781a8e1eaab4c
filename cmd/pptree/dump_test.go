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

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/bufbuild/cpptree/directive"
	"github.com/bufbuild/cpptree/intern"
	"github.com/bufbuild/cpptree/report"
)

// writeTree creates files under a fresh temporary directory, and returns the
// directory.
func writeTree(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for name, text := range files {
		path := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(text), 0o644))
	}
	return root
}

func newLoader(t *testing.T, stderr *bytes.Buffer, includeDirs ...string) *loader {
	t.Helper()
	cache, err := lru.New[string, *loaded](16)
	require.NoError(t, err)
	return &loader{
		table:       new(intern.Table),
		parser:      &directive.Parser{Sink: report.StreamSink(stderr)},
		cache:       cache,
		includeDirs: includeDirs,
	}
}

func TestDumpFollow(t *testing.T) {
	t.Parallel()

	root := writeTree(t, map[string]string{
		"src/main.c": `#include "local.h"
#include <sys.h>
#include MACRO_H
#if 0
#include "missing.h"
#endif
int main(void) { return 0; }
`,
		"src/local.h": "#ifndef LOCAL_H\n#define LOCAL_H\n#include <sys.h>\n#endif\n",
		"inc/sys.h":   "#pragma once\n#include_next <sys.h>\n",
		"inc2/sys.h":  "#define SYS2 1\n",
	})

	var out, stderr bytes.Buffer
	l := newLoader(t, &stderr, filepath.Join(root, "inc"), filepath.Join(root, "inc2"))
	err := dump(&out, textEncoder{}, l, []string{filepath.Join(root, "src/main.c")}, true, 2)
	require.NoError(t, err)
	assert.Empty(t, stderr.String())
	assert.Equal(t, `file "main.c"
  include "local.h"
  include <sys.h>
  include MACRO_H
  if 0
    include "missing.h"
  endif
file "local.h" guard=LOCAL_H
  ifndef LOCAL_H
    define LOCAL_H
    include <sys.h>
  endif
file "sys.h"
  pragma once
  include_next <sys.h>
file "sys.h"
  define SYS2 = 1
`, out.String())

	cached, ok := l.cache.Get(filepath.Join(root, "inc2/sys.h"))
	require.True(t, ok)
	assert.True(t, cached.file.IsTokenized())
}

func TestDumpOrderAndErrors(t *testing.T) {
	t.Parallel()

	root := writeTree(t, map[string]string{
		"a.h": "#define A\n",
		"b.h": "#endif\n",
		"c.h": "#define C\n",
	})

	var out, stderr bytes.Buffer
	l := newLoader(t, &stderr)
	paths := []string{
		filepath.Join(root, "a.h"),
		filepath.Join(root, "b.h"),
		filepath.Join(root, "c.h"),
	}
	err := dump(&out, textEncoder{}, l, paths, false, 3)
	require.ErrorIs(t, err, report.ErrMalformedSource)
	assert.Contains(t, err.Error(), "b.h")
	assert.Equal(t, "b.h:1: severe: #endif without #if\n", stderr.String())
	assert.Equal(t, `file "a.h"
  define A
file "b.h"
  endif
file "c.h"
  define C
`, out.String())

	err = dump(&out, textEncoder{}, l, []string{filepath.Join(root, "nope.h")}, false, 1)
	require.Error(t, err)
	assert.NotErrorIs(t, err, report.ErrMalformedSource)
}

func TestDumpYAML(t *testing.T) {
	t.Parallel()

	root := writeTree(t, map[string]string{
		"g.h": "#ifndef G\n#define G 1\n#endif\n",
	})
	path := filepath.Join(root, "g.h")

	var out, stderr bytes.Buffer
	require.NoError(t, dump(&out, yamlEncoder{}, newLoader(t, &stderr), []string{path}, false, 1))
	assert.True(t, strings.HasPrefix(out.String(), "---\n"))

	var got yamlNode
	require.NoError(t, yaml.Unmarshal(out.Bytes(), &got))
	assert.Equal(t, yamlNode{
		Kind:  "file",
		Path:  path,
		Guard: "G",
		Children: []*yamlNode{
			{
				Kind: "ifndef", Line: 1, Text: "G",
				Children: []*yamlNode{{Kind: "define", Line: 2, Text: "G = 1"}},
			},
			{Kind: "endif", Line: 3},
		},
	}, got)
}

func TestDetectGuard(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name, src, guard string
	}{
		{name: "guarded", src: "#ifndef X_H\n#define X_H\nint x;\n#endif\n", guard: "X_H"},
		{name: "mismatch", src: "#ifndef X_H\n#define Y_H\n#endif\n"},
		{name: "ifdef", src: "#ifdef X_H\n#define X_H\n#endif\n"},
		{name: "else", src: "#ifndef X_H\n#define X_H\n#else\n#endif\n"},
		{name: "trailing", src: "#ifndef X_H\n#define X_H\n#endif\n#define Z\n"},
		{name: "function-like", src: "#ifndef X_H\n#define X_H(a) a\n#endif\n"},
		{name: "pragma", src: "#pragma once\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			root := writeTree(t, map[string]string{"x.h": tt.src})
			var stderr bytes.Buffer
			f, err := newLoader(t, &stderr).load(filepath.Join(root, "x.h"))
			require.NoError(t, err)
			assert.Equal(t, tt.guard, f.file.Guard())
		})
	}
}

func TestDumpCmd(t *testing.T) {
	t.Parallel()

	root := writeTree(t, map[string]string{
		"main.c":  "#include <v.h>\n#if\n#endif\n",
		"inc/v.h": "#define V 1\n",
	})

	var out, stderr bytes.Buffer
	cmd := newDumpCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&stderr)
	cmd.SetArgs([]string{"--standalone", "--follow", "-I", filepath.Join(root, "inc"), filepath.Join(root, "main.c")})
	err := cmd.Execute()
	require.ErrorIs(t, err, report.ErrMalformedSource)
	assert.Equal(t, `file "main.c"
  include <v.h>
  if <empty>
  endif
file "v.h"
  define V = 1
`, out.String())
	assert.Contains(t, stderr.String(), "main.c:2: severe: #if with no expression\n")

	cmd = newDumpCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&stderr)
	cmd.SetArgs([]string{"--format=json", filepath.Join(root, "main.c")})
	assert.ErrorContains(t, cmd.Execute(), "unknown format")
}
