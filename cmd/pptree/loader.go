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
	"fmt"
	"os"
	"path/filepath"
	"slices"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/tliron/commonlog"

	"github.com/bufbuild/cpptree/directive"
	"github.com/bufbuild/cpptree/intern"
	"github.com/bufbuild/cpptree/internal/lexer"
	"github.com/bufbuild/cpptree/report"
	"github.com/bufbuild/cpptree/token"
)

var log = commonlog.GetLogger("pptree")

// loaded is a parsed file.
type loaded struct {
	path      string
	file      *directive.File
	malformed bool
}

// loader parses files, sharing parsed headers between the files that include
// them.
type loader struct {
	table       *intern.Table
	parser      *directive.Parser
	cache       *lru.Cache[string, *loaded]
	includeDirs []string
}

// load parses the file at path, or returns the cached result of an earlier
// call.
func (l *loader) load(path string) (*loaded, error) {
	path = filepath.Clean(path)
	if f, ok := l.cache.Get(path); ok {
		return f, nil
	}

	file := directive.NewFile(os.DirFS(filepath.Dir(path)), filepath.Base(path), l.table)
	src, err := file.ReadFile()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	diags := l.parser.Parse(file, token.NewSliceStream(lexer.Lex(string(src), l.table)...))
	detectGuard(file)

	f := &loaded{
		path: path,
		file: file,
		malformed: slices.ContainsFunc(diags, func(d report.Diagnostic) bool {
			return d.Severity == report.Severe
		}),
	}
	// Another goroutine may have parsed the same header in the meantime.
	if prev, ok, _ := l.cache.PeekOrAdd(path, f); ok {
		return prev, nil
	}
	return f, nil
}

// follow loads every header reachable from root through #include directives
// with a literal target, in every conditional branch. Headers that cannot be
// found are skipped.
func (l *loader) follow(root *loaded) []*loaded {
	var out []*loaded
	seen := map[string]bool{root.path: true}
	queue := []*loaded{root}
	for len(queue) > 0 {
		from := queue[0]
		queue = queue[1:]

		_ = directive.Walk(from.file, func(n directive.Node) error {
			inc, ok := n.(*directive.Include)
			if !ok {
				return nil
			}
			path, ok := l.resolve(from.path, inc)
			if !ok || seen[path] {
				return nil
			}
			seen[path] = true

			f, err := l.load(path)
			if err != nil {
				log.Warning("skipping header", "file", from.path, "header", path, "error", err)
				return nil
			}
			out = append(out, f)
			queue = append(queue, f)
			return nil
		})
	}
	return out
}

// resolve finds the file an #include in from refers to. Targets that are
// macros are not expanded, and so never resolve.
func (l *loader) resolve(from string, inc *directive.Include) (string, bool) {
	toks := inc.Tokens()
	if len(toks) != 1 || (toks[0].Kind != token.String && toks[0].Kind != token.SysInclude) {
		log.Debug("not following computed include", "file", from, "include", inc.String())
		return "", false
	}
	name := inc.FileName(nil)

	var dirs []string
	switch {
	case inc.Kind() == directive.KindIncludeNext:
		// Search the directories after the one from was found in.
		dirs = l.includeDirs
		here := filepath.Dir(from)
		if i := slices.IndexFunc(dirs, func(dir string) bool {
			return filepath.Clean(dir) == here
		}); i >= 0 {
			dirs = dirs[i+1:]
		}
	case inc.IsSystem(nil):
		dirs = l.includeDirs
	default:
		dirs = append([]string{filepath.Dir(from)}, l.includeDirs...)
	}

	for _, dir := range dirs {
		path := filepath.Clean(filepath.Join(dir, name))
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path, true
		}
	}
	log.Debug("header not found", "file", from, "include", name)
	return "", false
}

// detectGuard records the include guard of a file whose directives are all
// wrapped in
//
//	#ifndef GUARD
//	#define GUARD
//	...
//	#endif
func detectGuard(file *directive.File) {
	ifndef, ok := file.FirstChild().(*directive.Ifdef)
	if !ok || ifndef.Kind() != directive.KindIfndef || ifndef.MacroName() == nil {
		return
	}
	endif := ifndef.NextSibling()
	if endif == nil || endif.Kind() != directive.KindEndif || endif.NextSibling() != nil {
		return
	}
	def, ok := ifndef.FirstChild().(*directive.Define)
	if !ok || !def.IsValid() || def.IsFunctionLike() || def.Name().Text != ifndef.MacroName().Text {
		return
	}
	file.SetGuard(def.Name().Text)
}
