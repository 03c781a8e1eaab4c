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

import "iter"

// Children returns an iterator over the direct children of n.
func Children(n Node) iter.Seq[Node] {
	return func(yield func(Node) bool) {
		for c := n.FirstChild(); c != nil; c = c.NextSibling() {
			if !yield(c) {
				return
			}
		}
	}
}

// Walk visits n and every node beneath it in preorder, calling fn for each.
// If fn returns an error, the walk stops and returns it.
func Walk(n Node, fn func(Node) error) error {
	return WalkEnterAndExit(n, fn, nil)
}

// WalkEnterAndExit is like [Walk], but also calls exit, if non-nil, after a
// node's children have been visited.
func WalkEnterAndExit(n Node, enter, exit func(Node) error) error {
	if err := enter(n); err != nil {
		return err
	}
	for c := range Children(n) {
		if err := WalkEnterAndExit(c, enter, exit); err != nil {
			return err
		}
	}
	if exit != nil {
		return exit(n)
	}
	return nil
}
