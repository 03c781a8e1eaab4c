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
	"strings"

	"github.com/bufbuild/cpptree/report"
	"github.com/bufbuild/cpptree/token"
)

// ExpandFunc expands the macros in a token sequence.
//
// It is supplied by the macro engine when resolving computed includes such as
// "#include HEADER(x)".
type ExpandFunc func(toks []*token.Token) []*token.Token

// Include is an #include or #include_next directive.
//
// The target is kept in one of two representations: a single literal token
// for the common "#include <a.h>" form, or a list of tokens for a target
// that is a macro expression. The former is promoted to the latter as soon as
// a second token arrives.
type Include struct {
	node

	// At most one of these is set.
	single *token.Token
	multi  []*token.Token
}

// IsMultiToken returns whether the target spans more than one token.
func (n *Include) IsMultiToken() bool {
	return n.multi != nil
}

// Tokens returns the raw target tokens.
func (n *Include) Tokens() []*token.Token {
	switch {
	case n.multi != nil:
		return n.multi
	case n.single != nil:
		return []*token.Token{n.single}
	default:
		return nil
	}
}

// Include returns a stream over the raw target tokens.
func (n *Include) Include() token.Stream {
	return token.NewSliceStream(n.Tokens()...)
}

// FileName returns a best-effort name of the included file.
//
// For a literal target, this is its text without the surrounding quotes or
// angle brackets. A computed target is concatenated back into text as is if
// expand is nil. Otherwise its tokens are expanded first, and if the result
// reads as "name" or <name>, the delimiters are stripped from it as well, so
// that a macro-computed target yields the same kind of name as a literal one.
func (n *Include) FileName(expand ExpandFunc) string {
	if isLiteral(n.single) {
		name, _ := unquote(n.single.Text)
		return name
	}
	text := n.text(expand)
	if expand == nil {
		return text
	}
	if name, ok := unquote(text); ok {
		return name
	}
	return text
}

// IsSystem returns whether the target, once expanded with expand (if
// non-nil), uses the angle-bracket form.
func (n *Include) IsSystem(expand ExpandFunc) bool {
	if isLiteral(n.single) {
		return n.single.Kind == token.SysInclude || strings.HasPrefix(n.single.Text, "<")
	}
	return strings.HasPrefix(n.text(expand), "<")
}

func (n *Include) text(expand ExpandFunc) string {
	toks := n.Tokens()
	if expand != nil {
		toks = expand(toks)
	}
	return stringize(toks)
}

// String implements [Node].
func (n *Include) String() string {
	toks := n.Tokens()
	if toks == nil {
		return n.kind.String() + " <empty>"
	}
	return n.kind.String() + " " + token.Dump(toks)
}

func isLiteral(tok *token.Token) bool {
	return tok != nil && (tok.Kind == token.String || tok.Kind == token.SysInclude)
}

// unquote strips the delimiters from "name" or <name>.
func unquote(text string) (string, bool) {
	if len(text) < 2 {
		return text, false
	}
	first, last := text[0], text[len(text)-1]
	if (first == '"' && last == '"') || (first == '<' && last == '>') {
		return text[1 : len(text)-1], true
	}
	return text, false
}

// stringize concatenates toks back into source text, separating tokens that
// were not adjacent in the source with a single space.
func stringize(toks []*token.Token) string {
	var out strings.Builder
	for i, tok := range toks {
		if i > 0 && !toks[i-1].Adjacent(tok) {
			out.WriteByte(' ')
		}
		out.WriteString(tok.Text)
	}
	return out.String()
}

type includeBuilder struct {
	freeze
	n     *Include
	h     *report.Handler
	ended bool
}

func newIncludeBuilder(kind Kind, tok *token.Token, h *report.Handler) *includeBuilder {
	return &includeBuilder{
		n: &Include{node: node{kind: kind, tok: tok}},
		h: h,
	}
}

// Accept implements [Builder].
func (b *includeBuilder) Accept(tok *token.Token) bool {
	b.checkOpen(b.n.kind)
	switch {
	case ends(tok):
		b.end(tok)
		return false
	case tok.IsComment():
	case b.n.multi != nil:
		b.n.multi = append(b.n.multi, tok)
	case b.n.single != nil:
		b.n.multi = []*token.Token{b.n.single, tok}
		b.n.single = nil
	default:
		b.n.single = tok
	}
	return true
}

func (b *includeBuilder) end(tok *token.Token) {
	if b.ended {
		return
	}
	b.ended = true

	if b.n.single == nil && b.n.multi == nil {
		b.h.Severef(endOf(b.n.tok, tok), "#%v expects \"FILENAME\" or <FILENAME>", b.n.kind)
	}
	b.n.multi = slices.Clip(b.n.multi)
}

// Node implements [Builder].
func (b *includeBuilder) Node() Node {
	b.end(nil)
	b.finish(b.n.kind)
	return b.n
}
