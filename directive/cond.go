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

	"github.com/bufbuild/cpptree/report"
	"github.com/bufbuild/cpptree/token"
)

// Cond is an #if or #elif branch.
type Cond struct {
	scope
	expr []*token.Token
}

// Tokens returns the condition's tokens, excluding comments. Returns nil if
// the directive has no expression.
//
// The returned slice must not be modified.
func (n *Cond) Tokens() []*token.Token {
	return n.expr
}

// Condition returns a stream over the condition's tokens, for the expression
// evaluator.
func (n *Cond) Condition() token.Stream {
	return token.NewSliceStream(n.expr...)
}

// String implements [Node].
func (n *Cond) String() string {
	if n.expr == nil {
		return n.kind.String() + " <empty>"
	}
	return n.kind.String() + " " + token.Dump(n.expr)
}

type condBuilder struct {
	freeze
	n     *Cond
	h     *report.Handler
	ended bool
}

func newCondBuilder(kind Kind, tok *token.Token, h *report.Handler) *condBuilder {
	return &condBuilder{
		n: &Cond{scope: scope{node: node{kind: kind, tok: tok}}},
		h: h,
	}
}

// Accept implements [Builder].
func (b *condBuilder) Accept(tok *token.Token) bool {
	b.checkOpen(b.n.kind)
	switch {
	case ends(tok):
		b.end(tok)
		return false
	case !tok.IsComment():
		b.n.expr = append(b.n.expr, tok)
	}
	return true
}

func (b *condBuilder) end(tok *token.Token) {
	if b.ended {
		return
	}
	b.ended = true

	if b.n.expr == nil {
		b.h.Severef(endOf(b.n.tok, tok), "#%v with no expression", b.n.kind)
	}
	b.n.expr = slices.Clip(b.n.expr)
}

// Node implements [Builder].
func (b *condBuilder) Node() Node {
	b.end(nil)
	b.finish(b.n.kind)
	return b.n
}

// Ifdef is an #ifdef or #ifndef branch.
type Ifdef struct {
	scope
	name *token.Token
}

// MacroName returns the name of the macro being tested, or nil if the
// directive did not name one.
func (n *Ifdef) MacroName() *token.Token {
	return n.name
}

// String implements [Node].
func (n *Ifdef) String() string {
	if n.name == nil {
		return n.kind.String() + " <no name>"
	}
	return n.kind.String() + " " + n.name.Text
}

type ifdefBuilder struct {
	freeze
	n *Ifdef
	h *report.Handler

	// Set once anything about the operands has been diagnosed, so that each
	// directive produces at most one diagnostic.
	diagnosed bool
	ended     bool
}

func newIfdefBuilder(kind Kind, tok *token.Token, h *report.Handler) *ifdefBuilder {
	return &ifdefBuilder{
		n: &Ifdef{scope: scope{node: node{kind: kind, tok: tok}}},
		h: h,
	}
}

// Accept implements [Builder].
func (b *ifdefBuilder) Accept(tok *token.Token) bool {
	b.checkOpen(b.n.kind)
	switch {
	case ends(tok):
		b.end(tok)
		return false
	case tok.IsComment(), b.diagnosed:
	case b.n.name != nil:
		b.diagnosed = true
		b.h.Warnf(tok, "extra tokens at end of #%v directive", b.n.kind)
	case tok.IsDefined():
		b.diagnosed = true
		b.h.Severef(tok, "\"defined\" cannot be used as a macro name")
	case tok.IsIdent():
		b.n.name = tok
	default:
		b.diagnosed = true
		b.h.Severef(tok, "macro names must be identifiers, found %q", tok.Text)
	}
	return true
}

func (b *ifdefBuilder) end(tok *token.Token) {
	if b.ended {
		return
	}
	b.ended = true

	if b.n.name == nil && !b.diagnosed {
		b.h.Severef(endOf(b.n.tok, tok), "no macro name given in #%v directive", b.n.kind)
	}
}

// Node implements [Builder].
func (b *ifdefBuilder) Node() Node {
	b.end(nil)
	b.finish(b.n.kind)
	return b.n
}
