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

// Package directive builds the structural tree of preprocessor directives in
// a C/C++ source file.
//
// The tree is deliberately light: it records only directives, not the code
// between them. Every node implements [Node]. The root is a [*File]; nodes
// that open a nested scope (the [*File] and conditional branches) have
// children, and every other node is linked to its successor as a sibling.
// For example, the file
//
//	#ifndef FOO_H
//	#define FOO_H
//	#include <stddef.h>
//	#endif
//
// produces a file whose first child is the #ifndef branch, whose children in
// turn are the #define and #include; the #endif is the branch's next sibling.
//
// # Building
//
// Trees are built one directive at a time. A driver holds the "current"
// [Builder] and feeds it tokens through [Builder.Accept] until it reports that
// a token does not belong to the directive; the driver then freezes the node
// with [Builder.Node] and links it into the tree. [Parser] is a driver that
// does all of this for a whole file.
//
// # Immutability
//
// Both link fields of a node may be assigned at most once, and builders can
// only be frozen once. Violating either is a programming error and panics.
// This is what allows a finished tree to be read by any number of goroutines
// at the same time without synchronization.
package directive
