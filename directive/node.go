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

// Node is a node in a directive tree.
//
// The set of implementations is closed: [*File], [*Define], [*Undef],
// [*Include], [*Cond], [*Ifdef], [*Else], [*Endif] and [*Stream].
type Node interface {
	// Kind returns this node's directive kind.
	Kind() Kind
	// Token returns the token that introduced this directive, such as
	// "#define". Returns nil only for a [*File].
	Token() *token.Token

	// Offset and EndOffset return the byte range this node covers. Unless a
	// node tracks its end explicitly, this is the introducing token's span.
	Offset() int
	EndOffset() int

	// FirstChild returns the first node nested inside this one, if any.
	FirstChild() Node
	// NextSibling returns the node that follows this one in the same scope.
	NextSibling() Node

	// SetFirstChild links child as this node's first child.
	//
	// Panics if this node already has one, or if nodes of this kind cannot
	// have children.
	SetFirstChild(child Node)
	// SetNextSibling links next as this node's next sibling.
	//
	// Panics if this node already has one, or if this is a [*File].
	SetNextSibling(next Node)

	// String returns a human-readable rendering of the directive, for
	// debugging.
	String() string

	base() *node
}

// Builder is the mutable, construction-time counterpart of a [Node].
type Builder interface {
	// Accept offers the next token to the directive under construction, and
	// returns whether it was consumed as part of the directive.
	//
	// The end-of-directive token is never consumed. Panics if called after
	// Node.
	Accept(tok *token.Token) bool

	// Node freezes the builder and returns the finished node.
	//
	// Panics if called more than once.
	Node() Node
}

// NewBuilder returns a builder for the directive that tok introduces.
// Diagnostics about malformed input are reported to h, which may be nil.
//
// Panics if tok does not introduce a directive.
func NewBuilder(tok *token.Token, h *report.Handler) Builder {
	kind, ok := KindOf(tok.Kind)
	if !ok {
		panic(fmt.Sprintf("cpptree/directive: %#v does not introduce a directive", tok))
	}

	switch kind {
	case KindDefine:
		return newDefineBuilder(tok, h)
	case KindUndef:
		return newUndefBuilder(tok, h)
	case KindInclude, KindIncludeNext:
		return newIncludeBuilder(kind, tok, h)
	case KindIf, KindElif:
		return newCondBuilder(kind, tok, h)
	case KindIfdef, KindIfndef:
		return newIfdefBuilder(kind, tok, h)
	case KindElse:
		return newElseBuilder(tok, h)
	case KindEndif:
		return newEndifBuilder(tok, h)
	default:
		return NewStreamBuilder(kind, tok, nil)
	}
}

// node is the part common to every directive node.
type node struct {
	kind Kind
	tok  *token.Token
	next Node
}

func (n *node) base() *node         { return n }
func (n *node) Kind() Kind          { return n.kind }
func (n *node) Token() *token.Token { return n.tok }
func (n *node) Offset() int         { return n.tok.Offset }
func (n *node) EndOffset() int      { return n.tok.EndOffset }
func (n *node) FirstChild() Node    { return nil }
func (n *node) NextSibling() Node   { return n.next }

func (n *node) SetFirstChild(Node) {
	panic(fmt.Sprintf("cpptree/directive: #%v cannot have children", n.kind))
}

func (n *node) SetNextSibling(next Node) {
	if next == nil {
		panic("cpptree/directive: linked nil sibling")
	}
	if n.next != nil {
		panic(fmt.Sprintf("cpptree/directive: #%v already has a next sibling", n.kind))
	}
	n.next = next
}

// String renders the node with no payload. Most node types override it.
func (n *node) String() string {
	return n.kind.String()
}

// scope is a node that may have children.
type scope struct {
	node
	child Node
}

func (n *scope) FirstChild() Node { return n.child }

func (n *scope) SetFirstChild(child Node) {
	if child == nil {
		panic("cpptree/directive: linked nil child")
	}
	if n.child != nil {
		panic(fmt.Sprintf("cpptree/directive: %v already has a first child", n.kind))
	}
	n.child = child
}

// freeze tracks a builder's lifecycle, enforcing that it is frozen once and
// never used afterwards.
type freeze struct {
	done bool
}

func (f *freeze) checkOpen(kind Kind) {
	if f.done {
		panic(fmt.Sprintf("cpptree/directive: #%v builder used after Node()", kind))
	}
}

func (f *freeze) finish(kind Kind) {
	f.checkOpen(kind)
	f.done = true
}

// ends returns whether tok terminates a directive.
func ends(tok *token.Token) bool {
	return tok.IsEndOfDirective() || tok.IsEOF()
}

// endOf returns the token to attribute an end-of-directive diagnostic to.
func endOf(intro, end *token.Token) *token.Token {
	if end.IsEndOfDirective() {
		return end
	}
	return intro
}
