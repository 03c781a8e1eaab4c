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

// Define is a #define directive.
type Define struct {
	node
	macro

	params []*token.Token
	body   []*token.Token
}

// IsFunctionLike returns whether this macro takes arguments, i.e., whether
// its name was immediately followed by a parameter list.
func (n *Define) IsFunctionLike() bool {
	return n.params != nil
}

// Params returns the macro's parameters. This is nil for an object-like
// macro, and non-nil (but possibly empty) for a function-like one.
//
// If the macro is variadic, the last parameter is [token.VariadicMarker].
//
// The returned slice must not be modified.
func (n *Define) Params() []*token.Token {
	return n.params
}

// IsVariadic returns whether the macro's last parameter is variadic.
func (n *Define) IsVariadic() bool {
	return len(n.params) > 0 && n.params[len(n.params)-1].IsVariadicMarker()
}

// Body returns the macro's replacement list.
//
// If the macro is variadic, every reference to the variadic parameter has
// been replaced with [token.VariadicMarker].
//
// The returned slice must not be modified.
func (n *Define) Body() []*token.Token {
	return n.body
}

// String implements [Node].
func (n *Define) String() string {
	var out strings.Builder
	out.WriteString("define ")
	out.WriteString(n.nameText())
	if n.params != nil {
		out.WriteByte('(')
		for i, p := range n.params {
			if i > 0 {
				out.WriteString(", ")
			}
			if p.IsVariadicMarker() {
				out.WriteString("...")
			} else {
				out.WriteString(p.Text)
			}
		}
		out.WriteByte(')')
	}
	if len(n.body) > 0 {
		out.WriteString(" = ")
		out.WriteString(token.Dump(n.body))
	}
	out.WriteString(n.validity())
	return out.String()
}

type defineState int8

const (
	beforeName defineState = iota
	afterName
	inParams
	inParamsAfterID
	inParamsAfterEllipsis
	inBody
	inBodyAfterSharp
	inBodyAfterLParenSharp
	defineError
)

type defineBuilder struct {
	freeze
	n     *Define
	h     *report.Handler
	state defineState

	// The spelling of the variadic parameter before substitution: either
	// __VA_ARGS__, or the name in a GNU-style "args..." parameter. Empty if
	// the macro is not variadic.
	variadic string
	ended    bool
}

func newDefineBuilder(tok *token.Token, h *report.Handler) *defineBuilder {
	return &defineBuilder{
		n: &Define{node: node{kind: KindDefine, tok: tok}},
		h: h,
	}
}

// Accept implements [Builder].
func (b *defineBuilder) Accept(tok *token.Token) bool {
	b.checkOpen(KindDefine)
	if ends(tok) {
		b.end(tok)
		return false
	}
	if tok.IsComment() {
		return true
	}

	switch b.state {
	case beforeName:
		if b.n.acceptName(tok, b.h) {
			b.state = afterName
		} else {
			b.state = defineError
		}

	case afterName:
		glued := b.n.name.Adjacent(tok)
		if glued && tok.IsPunct("(") {
			b.n.params = []*token.Token{}
			b.state = inParams
			break
		}
		if glued {
			b.h.Warnf(tok, "missing whitespace after the macro name")
		}
		b.state = inBody
		b.appendBody(tok)

	case inParams:
		switch {
		case tok.IsIdent():
			b.n.params = append(b.n.params, tok)
			b.state = inParamsAfterID
		case tok.IsPunct(","):
		case tok.IsPunct("..."):
			b.n.params = append(b.n.params, token.VariadicMarker())
			b.variadic = token.VariadicArgs
			b.state = inParamsAfterEllipsis
		case tok.IsPunct(")"):
			b.state = inBody
		default:
			b.fail(tok, "invalid token %q in macro parameter list", tok.Text)
		}

	case inParamsAfterID:
		switch {
		case tok.IsPunct(","):
			b.state = inParams
		case tok.IsPunct("..."):
			last := len(b.n.params) - 1
			b.variadic = b.n.params[last].Text
			b.n.params[last] = token.VariadicMarker()
			b.state = inParamsAfterEllipsis
		case tok.IsPunct(")"):
			b.state = inBody
		default:
			b.fail(tok, "expected ',' or ')' in macro parameter list, found %q", tok.Text)
		}

	case inParamsAfterEllipsis:
		if tok.IsPunct(")") {
			b.state = inBody
		} else {
			b.fail(tok, "missing ')' after \"...\" in macro parameter list")
		}

	case inBody:
		b.appendBody(tok)

	case inBodyAfterSharp, inBodyAfterLParenSharp:
		switch {
		case tok.IsIdent() && b.isParam(tok),
			b.state == inBodyAfterLParenSharp && tok.IsPunct(")"):
			b.n.body = append(b.n.body, tok)
			b.state = inBody
		default:
			b.fail(tok, "'#' is not followed by a macro parameter")
		}

	case defineError:
		// Absorb everything until the end of the directive.
	}
	return true
}

func (b *defineBuilder) appendBody(tok *token.Token) {
	var prev *token.Token
	if n := len(b.n.body); n > 0 {
		prev = b.n.body[n-1]
	}
	b.n.body = append(b.n.body, tok)

	// # is only the stringizing operator in function-like macros.
	if b.n.params == nil || !tok.IsPunct("#") {
		return
	}
	if prev.IsPunct("(") {
		b.state = inBodyAfterLParenSharp
	} else {
		b.state = inBodyAfterSharp
	}
}

// isParam returns whether tok names a parameter. The variadic parameter is
// only reachable by its own spelling: __VA_ARGS__ refers to it only in a
// macro declared with a bare "...".
func (b *defineBuilder) isParam(tok *token.Token) bool {
	if b.variadic != "" && tok.Text == b.variadic {
		return true
	}
	for _, p := range b.n.params {
		if !p.IsVariadicMarker() && p.Text == tok.Text {
			return true
		}
	}
	return false
}

func (b *defineBuilder) fail(tok *token.Token, format string, args ...any) {
	b.h.Severef(tok, format, args...)
	b.n.invalid = true
	b.state = defineError
}

func (b *defineBuilder) end(tok *token.Token) {
	if b.ended {
		return
	}
	b.ended = true

	at := endOf(b.n.tok, tok)
	switch b.state {
	case beforeName:
		b.n.endName(KindDefine, at, b.h)
	case inParams, inParamsAfterID, inParamsAfterEllipsis:
		b.fail(at, "missing ')' in macro parameter list")
	case inBodyAfterSharp, inBodyAfterLParenSharp:
		b.fail(at, "'#' is not followed by a macro parameter")
	}

	b.n.params = slices.Clip(b.n.params)
	b.n.body = slices.Clip(b.n.body)

	if b.variadic != "" && len(b.n.body) > 0 {
		marker := token.VariadicMarker()
		for i, tok := range b.n.body {
			if tok.Text == b.variadic {
				b.n.body[i] = marker
			}
		}
	}
}

// Node implements [Builder].
func (b *defineBuilder) Node() Node {
	b.end(nil)
	b.finish(KindDefine)
	return b.n
}
