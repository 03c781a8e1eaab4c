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

package directive

import (
	"fmt"
	"io/fs"
	"sync/atomic"

	"github.com/bufbuild/cpptree/intern"
)

// File is the root of a directive tree: one source or header file.
//
// A File is created once per file by the driver. Apart from its first child,
// which the driver links, the only state that changes after construction is
// the include guard, which the macro engine may record once it has worked out
// that the whole file is wrapped in "#ifndef GUARD".
type File struct {
	scope

	fsys  fs.FS
	path  intern.ID
	table *intern.Table

	end       int
	tokenized atomic.Bool
	guard     atomic.Int32 // An intern.ID.
	hash      atomic.Uint64
}

// NewFile returns a new, empty file node for the file at path within fsys.
// The path is interned in table.
func NewFile(fsys fs.FS, path string, table *intern.Table) *File {
	return &File{
		scope: scope{node: node{kind: KindFile}},
		fsys:  fsys,
		path:  table.Intern(path),
		table: table,
	}
}

// FS returns the file system the file lives in.
func (f *File) FS() fs.FS {
	return f.fsys
}

// Path returns the file's path within [File.FS].
func (f *File) Path() string {
	return f.table.Value(f.path)
}

// PathID returns the interned form of [File.Path].
func (f *File) PathID() intern.ID {
	return f.path
}

// ReadFile reads the file's contents.
func (f *File) ReadFile() ([]byte, error) {
	return fs.ReadFile(f.fsys, f.Path())
}

// Offset implements [Node]. Files always start at zero.
func (f *File) Offset() int {
	return 0
}

// EndOffset implements [Node]. It is the file's length as seen by the
// lexer, or zero if the file has not been tokenized yet.
func (f *File) EndOffset() int {
	return f.end
}

// SetNextSibling implements [Node]. Files have no siblings, so this always
// panics.
func (f *File) SetNextSibling(Node) {
	panic("cpptree/directive: files cannot have siblings")
}

// IsTokenized returns whether the file's directives have been parsed.
func (f *File) IsTokenized() bool {
	return f.tokenized.Load()
}

func (f *File) markTokenized(end int) {
	if f.tokenized.Load() {
		panic(fmt.Sprintf("cpptree/directive: %q was already parsed", f.Path()))
	}
	f.end = end
	f.tokenized.Store(true)
}

// Guard returns the name of the file's include guard macro, or "" if none
// was recorded.
func (f *File) Guard() string {
	return f.table.Value(intern.ID(f.guard.Load()))
}

// SetGuard records the name of the file's include guard macro.
//
// May be called concurrently with readers, but at most once; panics if a
// guard was already recorded or name is empty.
func (f *File) SetGuard(name string) {
	if name == "" {
		panic("cpptree/directive: empty include guard name")
	}
	id := f.table.Intern(name)
	if !f.guard.CompareAndSwap(0, int32(id)) {
		panic(fmt.Sprintf("cpptree/directive: %q already has include guard %q", f.Path(), f.Guard()))
	}
}

// Hash returns a structural hash of the file's directive tree. See [Hash].
//
// The result is computed on first use and then cached. Concurrent first
// callers may each compute it; they all arrive at the same value.
func (f *File) Hash() uint64 {
	if h := f.hash.Load(); h != 0 {
		return h
	}
	h := Hash(f)
	if h == 0 {
		h = 1 // Zero means "not computed".
	}
	f.hash.Store(h)
	return h
}

// String implements [Node].
func (f *File) String() string {
	s := fmt.Sprintf("file %q", f.Path())
	if guard := f.Guard(); guard != "" {
		s += " guard=" + guard
	}
	return s
}
