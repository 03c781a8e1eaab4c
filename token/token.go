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

package token

import (
	"fmt"

	"github.com/bufbuild/cpptree/intern"
)

// VariadicArgs is the spelling of the canonical variadic macro parameter.
const VariadicArgs = "__VA_ARGS__"

var (
	eos            = &Token{Kind: EOF, Offset: -1, EndOffset: -1}
	variadicMarker = &Token{Kind: Ident, Text: VariadicArgs, Offset: -1, EndOffset: -1}
)

// Token is a lexical element of a C/C++ source file.
//
// Tokens are owned by the lexer that produced them. Everything else holds
// them by pointer and must not modify them.
//
// A nil *Token behaves like [EOS] for the classification predicates.
type Token struct {
	Kind Kind

	// The text of the token exactly as it appears in the source.
	Text string
	// The interned form of Text. Zero if the lexer did not intern it.
	ID intern.ID

	// Byte offsets of the token; Offset is inclusive, EndOffset exclusive.
	// Synthetic tokens have negative offsets.
	Offset, EndOffset int
	// One-based line number the token starts on.
	Line int
}

// EOS returns the end-of-stream sentinel that every [Stream] yields once it
// is exhausted.
func EOS() *Token {
	return eos
}

// VariadicMarker returns the canonical synthetic token that stands in for a
// variadic macro parameter and for every reference to it in a macro body.
func VariadicMarker() *Token {
	return variadicMarker
}

// IsEOF returns whether this token ends the token source.
func (t *Token) IsEOF() bool {
	return t == nil || t.Kind == EOF
}

// IsEndOfDirective returns whether this token is the end-of-directive marker.
func (t *Token) IsEndOfDirective() bool {
	return t != nil && t.Kind == EndOfDirective
}

// IsComment returns whether this token is a comment.
func (t *Token) IsComment() bool {
	return t != nil && t.Kind == Comment
}

// IsIdent returns whether this token is an identifier.
func (t *Token) IsIdent() bool {
	return t != nil && t.Kind == Ident
}

// IsDefined returns whether this is the "defined" preprocessor keyword.
func (t *Token) IsDefined() bool {
	return t.IsIdent() && t.Text == "defined"
}

// IsPunct returns whether this token is the punctuation op.
func (t *Token) IsPunct(op string) bool {
	return t != nil && t.Kind == Punct && t.Text == op
}

// IsDirective returns whether this token introduces a directive.
func (t *Token) IsDirective() bool {
	return t != nil && t.Kind.IsDirective()
}

// IsSynthetic returns whether this token was not produced by lexing a file.
func (t *Token) IsSynthetic() bool {
	return t != nil && t.Offset < 0
}

// IsVariadicMarker returns whether this is the token returned by
// [VariadicMarker].
func (t *Token) IsVariadicMarker() bool {
	return t == variadicMarker
}

// Adjacent returns whether next starts exactly where t ends, i.e., there is
// no whitespace or comment between them.
func (t *Token) Adjacent(next *Token) bool {
	if t.IsSynthetic() || next.IsSynthetic() || t.IsEOF() || next.IsEOF() {
		return false
	}
	return t.EndOffset == next.Offset
}

// String implements [fmt.Stringer].
func (t *Token) String() string {
	switch {
	case t.IsEOF():
		return "<EOF>"
	case t.IsEndOfDirective():
		return "<EOD>"
	default:
		return t.Text
	}
}

// GoString implements [fmt.GoStringer].
func (t *Token) GoString() string {
	if t == nil {
		return "token.Token(nil)"
	}
	return fmt.Sprintf("token.Token{%v %q %d:%d line %d}", t.Kind, t.Text, t.Offset, t.EndOffset, t.Line)
}
