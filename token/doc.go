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

// Package token defines the lexical elements that the directive tree is
// built from.
//
// Tokens are produced by an external C/C++ lexer and are only referenced by
// the tree, never copied: a node holds *[Token] values that point back into
// the lexer's output. The lexer is expected to classify each token with a
// [Kind], including a dedicated kind for each directive-introducing token
// (such as "#define") and an [EndOfDirective] marker at the logical end of
// every directive line.
//
// The package also provides [Stream], the pull-based interface the directive
// builders consume, along with a few adapters over it.
package token
