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
	"fmt"

	"github.com/bufbuild/cpptree/report"
	"github.com/bufbuild/cpptree/token"
)

// Parser builds the directive tree of a file from its tokens.
//
// The zero value is ready to use.
type Parser struct {
	// Sink receives diagnostics as they are reported. If nil, diagnostics
	// are only returned from Parse.
	Sink report.Sink

	// StillInDirective decides whether a token still belongs to a #pragma,
	// #error or #line directive. If nil, each of them runs to the end of
	// its line.
	StillInDirective func(*token.Token) bool
}

// Parse consumes tokens and links the directives it finds into file, which
// must not have been parsed before; Parse panics without touching file if it
// was. Tokens outside of directives are skipped.
//
// Parse never fails: malformed directives are diagnosed and built as
// completely as possible. The diagnostics are returned in the order they were
// reported.
func (p *Parser) Parse(file *File, tokens token.Stream) []report.Diagnostic {
	if file.IsTokenized() {
		panic(fmt.Sprintf("cpptree/directive: %q was already parsed", file.Path()))
	}

	h := report.NewHandler(file.Path(), p.Sink)
	src := &tracker{Stream: tokens}
	l := &linker{h: h, stack: []frame{{parent: file}}}

	tok := src.Next()
	for !tok.IsEOF() {
		if !tok.IsDirective() {
			tok = src.Next()
			continue
		}

		b := p.newBuilder(tok, h)
		next := src.Next()
		for b.Accept(next) {
			next = src.Next()
		}
		l.link(b.Node())

		// The end-of-directive token is consumed here; anything else that the
		// builder declined starts over at the top of the loop.
		if next.IsEndOfDirective() {
			next = src.Next()
		}
		tok = next
	}

	l.close()
	file.markTokenized(src.end)
	return h.Diagnostics()
}

func (p *Parser) newBuilder(tok *token.Token, h *report.Handler) Builder {
	if kind, _ := KindOf(tok.Kind); p.StillInDirective != nil {
		switch kind {
		case KindPragma, KindError, KindLine:
			return NewStreamBuilder(kind, tok, p.StillInDirective)
		}
	}
	return NewBuilder(tok, h)
}

// tracker records how far into the file the token stream has reached.
type tracker struct {
	token.Stream
	end int
}

func (t *tracker) Next() *token.Token {
	tok := t.Stream.Next()
	switch {
	case tok.IsSynthetic():
	case tok.IsEOF():
		if tok != nil && tok.Offset > t.end {
			t.end = tok.Offset
		}
	case tok.EndOffset > t.end:
		t.end = tok.EndOffset
	}
	return tok
}

// frame is one open scope while linking.
type frame struct {
	parent Node
	last   Node
	// Whether an #else has been seen in the conditional this frame's parent
	// belongs to.
	sawElse bool
}

// linker links finished nodes into the tree, tracking conditional nesting.
type linker struct {
	h     *report.Handler
	stack []frame
}

func (l *linker) top() *frame {
	return &l.stack[len(l.stack)-1]
}

func (l *linker) inConditional() bool {
	return len(l.stack) > 1
}

func (l *linker) add(n Node) {
	top := l.top()
	if top.last == nil {
		top.parent.SetFirstChild(n)
	} else {
		top.last.SetNextSibling(n)
	}
	top.last = n
}

func (l *linker) push(n Node, sawElse bool) {
	l.stack = append(l.stack, frame{parent: n, sawElse: sawElse})
}

func (l *linker) pop() frame {
	top := *l.top()
	l.stack = l.stack[:len(l.stack)-1]
	return top
}

func (l *linker) link(n Node) {
	switch kind := n.Kind(); kind {
	case KindIf, KindIfdef, KindIfndef:
		l.add(n)
		l.push(n, false)

	case KindElif, KindElse:
		if !l.inConditional() {
			l.h.Severef(n.Token(), "#%v without #if", kind)
			l.add(n)
			return
		}
		branch := l.pop()
		if branch.sawElse {
			l.h.Severef(n.Token(), "#%v after #else", kind)
		}
		l.add(n)
		l.push(n, branch.sawElse || kind == KindElse)

	case KindEndif:
		if !l.inConditional() {
			l.h.Severef(n.Token(), "#endif without #if")
		} else {
			l.pop()
		}
		l.add(n)

	default:
		l.add(n)
	}
}

// close diagnoses the conditionals left open at the end of the file.
func (l *linker) close() {
	for l.inConditional() {
		branch := l.pop()
		l.h.Severef(branch.parent.Token(), "unterminated #%v", branch.parent.Kind())
	}
}
