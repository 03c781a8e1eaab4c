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
	"slices"

	"github.com/bufbuild/cpptree/token"
)

// Stream is a directive that is kept as a plain run of tokens: #pragma,
// #error (and #warning) and #line.
type Stream struct {
	node
	toks []*token.Token
}

// PragmaName returns the first token after the introducing token, which for
// a #pragma is its name. Returns nil if the directive is empty.
func (n *Stream) PragmaName() *token.Token {
	if len(n.toks) == 0 {
		return nil
	}
	return n.toks[0]
}

// Tokens returns the directive's tokens after the introducing token.
//
// The returned slice must not be modified.
func (n *Stream) Tokens() []*token.Token {
	return n.toks
}

// TokenStream returns a stream that yields the introducing token, then the
// rest of the directive. Each call returns a fresh stream.
func (n *Stream) TokenStream() *token.SliceStream {
	return token.NewHeadedStream(n.tok, n.toks)
}

// String implements [Node].
func (n *Stream) String() string {
	if len(n.toks) == 0 {
		return n.kind.String()
	}
	return n.kind.String() + " " + token.Dump(n.toks)
}

type streamBuilder struct {
	freeze
	n     *Stream
	still func(*token.Token) bool
}

// NewStreamBuilder returns a builder for a token-run directive of the given
// kind.
//
// still decides whether a token is still part of the directive; the first
// token it rejects is left unconsumed. If nil, every token up to the end of
// the directive is kept. Comments are never kept.
func NewStreamBuilder(kind Kind, tok *token.Token, still func(*token.Token) bool) Builder {
	return &streamBuilder{
		n:     &Stream{node: node{kind: kind, tok: tok}},
		still: still,
	}
}

// Accept implements [Builder].
func (b *streamBuilder) Accept(tok *token.Token) bool {
	b.checkOpen(b.n.kind)
	switch {
	case ends(tok):
		return false
	case tok.IsComment():
		return true
	case b.still != nil && !b.still(tok):
		return false
	}
	b.n.toks = append(b.n.toks, tok)
	return true
}

// Node implements [Builder].
func (b *streamBuilder) Node() Node {
	b.finish(b.n.kind)
	b.n.toks = slices.Clip(b.n.toks)
	return b.n
}
