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
	"github.com/bufbuild/cpptree/report"
	"github.com/bufbuild/cpptree/token"
)

// Else is an #else branch. It carries no payload.
type Else struct {
	scope
}

// Endif is an #endif directive. It closes a conditional, and so can never
// have children.
type Endif struct {
	node
	end    int
	hasEnd bool
}

// EndOffset returns the offset of the end-of-directive token that terminated
// the #endif, if there was one.
func (n *Endif) EndOffset() int {
	if n.hasEnd {
		return n.end
	}
	return n.node.EndOffset()
}

// trailer consumes and discards the tokens of directives that take no
// operands, warning about the first significant one.
type trailer struct {
	freeze
	kind  Kind
	h     *report.Handler
	extra bool
}

func (t *trailer) accept(tok *token.Token) bool {
	t.checkOpen(t.kind)
	switch {
	case ends(tok):
		return false
	case tok.IsComment(), t.extra:
	default:
		t.extra = true
		t.h.Warnf(tok, "extra tokens at end of #%v directive", t.kind)
	}
	return true
}

type elseBuilder struct {
	trailer
	n *Else
}

func newElseBuilder(tok *token.Token, h *report.Handler) *elseBuilder {
	return &elseBuilder{
		trailer: trailer{kind: KindElse, h: h},
		n:       &Else{scope: scope{node: node{kind: KindElse, tok: tok}}},
	}
}

// Accept implements [Builder].
func (b *elseBuilder) Accept(tok *token.Token) bool {
	return b.accept(tok)
}

// Node implements [Builder].
func (b *elseBuilder) Node() Node {
	b.finish(KindElse)
	return b.n
}

type endifBuilder struct {
	trailer
	n *Endif
}

func newEndifBuilder(tok *token.Token, h *report.Handler) *endifBuilder {
	return &endifBuilder{
		trailer: trailer{kind: KindEndif, h: h},
		n:       &Endif{node: node{kind: KindEndif, tok: tok}},
	}
}

// Accept implements [Builder].
func (b *endifBuilder) Accept(tok *token.Token) bool {
	if b.accept(tok) {
		return true
	}
	if tok.IsEndOfDirective() {
		b.n.end = tok.Offset
		b.n.hasEnd = true
	}
	return false
}

// Node implements [Builder].
func (b *endifBuilder) Node() Node {
	b.finish(KindEndif)
	return b.n
}
