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

// macro is the state shared by #define and #undef: a name captured exactly
// once, and whether the directive is well-formed.
type macro struct {
	name    *token.Token
	invalid bool
}

// Name returns the macro's name, or nil if the directive did not name one.
func (m *macro) Name() *token.Token {
	return m.name
}

// IsValid returns whether the directive is well-formed. Consumers must check
// this before trusting the macro's semantics.
func (m *macro) IsValid() bool {
	return !m.invalid && m.name != nil
}

// acceptName handles the first significant token of the directive, and
// returns whether it was captured as the name.
func (m *macro) acceptName(tok *token.Token, h *report.Handler) bool {
	switch {
	case tok.IsDefined():
		h.Severef(tok, "\"defined\" cannot be used as a macro name")
	case tok.IsIdent():
		m.name = tok
		return true
	default:
		h.Severef(tok, "macro names must be identifiers, found %q", tok.Text)
	}
	m.invalid = true
	return false
}

// endName handles the end of the directive, diagnosing a missing name.
func (m *macro) endName(kind Kind, at *token.Token, h *report.Handler) {
	if m.name == nil && !m.invalid {
		h.Severef(at, "no macro name given in #%v directive", kind)
		m.invalid = true
	}
}

func (m *macro) nameText() string {
	if m.name == nil {
		return "<no name>"
	}
	return m.name.Text
}

func (m *macro) validity() string {
	if m.IsValid() {
		return ""
	}
	return " (invalid)"
}

// Undef is an #undef directive.
type Undef struct {
	node
	macro
}

// String implements [Node].
func (n *Undef) String() string {
	return "undef " + n.nameText() + n.validity()
}

type undefBuilder struct {
	freeze
	n     *Undef
	h     *report.Handler
	extra bool
	ended bool
}

func newUndefBuilder(tok *token.Token, h *report.Handler) *undefBuilder {
	return &undefBuilder{
		n: &Undef{node: node{kind: KindUndef, tok: tok}},
		h: h,
	}
}

// Accept implements [Builder].
//
// Everything up to the end of the directive is consumed, whatever
// diagnostics it produces.
func (b *undefBuilder) Accept(tok *token.Token) bool {
	b.checkOpen(KindUndef)
	switch {
	case ends(tok):
		b.end(tok)
		return false
	case tok.IsComment():
	case b.n.name == nil && !b.n.invalid:
		b.n.acceptName(tok, b.h)
	case b.n.name != nil && !b.extra:
		b.extra = true
		b.h.Warnf(tok, "extra tokens at end of #undef directive")
	}
	return true
}

func (b *undefBuilder) end(tok *token.Token) {
	if b.ended {
		return
	}
	b.ended = true
	b.n.endName(KindUndef, endOf(b.n.tok, tok), b.h)
}

// Node implements [Builder].
func (b *undefBuilder) Node() Node {
	b.end(nil)
	b.finish(KindUndef)
	return b.n
}
