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
	"github.com/tidwall/btree"
)

// Index answers positional queries about a parsed file: which directive is
// at or before an offset, and which conditional branches enclose it.
//
// An Index is immutable once built and safe for concurrent use.
type Index struct {
	file *File
	// Keyed by the offset of each directive's introducing token.
	starts btree.Map[int, Node]
}

// NewIndex indexes every directive in file.
func NewIndex(file *File) *Index {
	x := &Index{file: file}
	_ = Walk(file, func(n Node) error {
		if n != Node(file) {
			x.starts.Set(n.Offset(), n)
		}
		return nil
	})
	return x
}

// Len returns the number of indexed directives.
func (x *Index) Len() int {
	return x.starts.Len()
}

// At returns the directive whose introducing token starts at offset, if any.
func (x *Index) At(offset int) Node {
	n, _ := x.starts.Get(offset)
	return n
}

// Before returns the last directive that starts at or before offset, if any.
func (x *Index) Before(offset int) Node {
	iter := x.starts.Iter()
	if !iter.Seek(offset) {
		// Every directive starts before offset.
		if !iter.Last() {
			return nil
		}
		return iter.Value()
	}
	if iter.Key() == offset {
		return iter.Value()
	}
	if !iter.Prev() {
		return nil
	}
	return iter.Value()
}

// Enclosing returns the conditional branches that contain offset, outermost
// first. A branch extends from its directive to the start of the next
// branch or #endif of the same conditional.
func (x *Index) Enclosing(offset int) []Node {
	var out []Node
	n := x.file.FirstChild()
	for n != nil {
		next := n.NextSibling()
		if n.Kind().IsBranch() && n.Offset() <= offset {
			end := x.file.EndOffset()
			if next != nil {
				end = next.Offset()
			}
			if offset < end {
				out = append(out, n)
				n = n.FirstChild()
				continue
			}
		}
		n = next
	}
	return out
}
