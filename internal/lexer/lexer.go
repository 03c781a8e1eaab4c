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

// Package lexer is a small C/C++ lexer that produces the tokens the directive
// builders consume.
//
// It exists to drive tests and the pptree debugging tool. It is not a
// conforming C lexer: it knows enough about comments, literals, line
// continuations and directive lines to classify tokens the way a real
// front end would, and no more.
package lexer

import (
	"strings"

	"github.com/bufbuild/cpptree/intern"
	"github.com/bufbuild/cpptree/token"
)

var directives = map[string]token.Kind{
	"define":       token.Define,
	"undef":        token.Undef,
	"include":      token.Include,
	"include_next": token.IncludeNext,
	"if":           token.If,
	"elif":         token.Elif,
	"ifdef":        token.Ifdef,
	"ifndef":       token.Ifndef,
	"else":         token.Else,
	"endif":        token.Endif,
	"pragma":       token.Pragma,
	"error":        token.Error,
	"warning":      token.Error,
	"line":         token.Line,
}

// puncts is ordered so that longer operators are tried first.
var puncts = []string{
	"...", "<<=", ">>=",
	"->", "++", "--", "<<", ">>", "<=", ">=", "==", "!=", "&&", "||",
	"*=", "/=", "%=", "+=", "-=", "&=", "^=", "|=", "##", "::",
}

const singlePuncts = "[](){}.&*+-~!/%<>^|?:;=,#"

// Lex tokenizes src. The result always ends with an EOF token, and every
// directive line ends with an EndOfDirective token.
//
// If table is non-nil, token text is interned into it.
func Lex(src string, table *intern.Table) []*token.Token {
	l := &lexer{src: src, table: table, line: 1, lineStart: true}
	l.run()
	return l.toks
}

type lexer struct {
	src   string
	table *intern.Table
	pos   int
	line  int
	toks  []*token.Token

	lineStart   bool // No token has been emitted on this line yet.
	inDirective bool
	wantHeader  bool // The next token may be a <header> name.
}

func (l *lexer) emit(kind token.Kind, start int) {
	text := l.src[start:l.pos]
	tok := &token.Token{
		Kind:      kind,
		Text:      text,
		Offset:    start,
		EndOffset: l.pos,
		Line:      l.line,
	}
	if l.table != nil {
		tok.ID = l.table.Intern(text)
	}
	l.toks = append(l.toks, tok)
	if kind != token.Comment {
		l.lineStart = false
		if !kind.IsDirective() {
			l.wantHeader = false
		}
	}
}

func (l *lexer) endDirective() {
	if !l.inDirective {
		return
	}
	l.inDirective = false
	l.wantHeader = false
	l.toks = append(l.toks, &token.Token{
		Kind:      token.EndOfDirective,
		Offset:    l.pos,
		EndOffset: min(l.pos+1, len(l.src)),
		Line:      l.line,
	})
}

func (l *lexer) run() {
	for l.pos < len(l.src) {
		start := l.pos
		rest := l.src[l.pos:]
		c := rest[0]

		switch {
		case strings.HasPrefix(rest, "\\\n"):
			l.pos += 2
			l.line++
		case strings.HasPrefix(rest, "\\\r\n"):
			l.pos += 3
			l.line++
		case c == '\n':
			l.endDirective()
			l.pos++
			l.line++
			l.lineStart = true
		case c == ' ' || c == '\t' || c == '\r' || c == '\f' || c == '\v':
			l.pos++

		case strings.HasPrefix(rest, "//"):
			end := strings.IndexByte(rest, '\n')
			if end < 0 {
				end = len(rest)
			}
			l.pos += end
			l.emit(token.Comment, start)
		case strings.HasPrefix(rest, "/*"):
			end := strings.Index(rest[2:], "*/")
			if end < 0 {
				end = len(rest)
			} else {
				end += 4
			}
			// Attribute the comment to the line it starts on.
			line := l.line
			l.line += strings.Count(rest[:end], "\n")
			l.pos += end
			l.emit(token.Comment, start)
			l.toks[len(l.toks)-1].Line = line

		case c == '#' && l.lineStart && !l.inDirective:
			l.directive()

		case c == '<' && l.wantHeader:
			end := strings.IndexAny(rest, ">\n")
			if end < 0 || rest[end] != '>' {
				l.punct()
				break
			}
			l.pos += end + 1
			l.emit(token.SysInclude, start)
		case c == '"' || c == '\'':
			l.quoted(c)
		case isIdentStart(c):
			l.pos += identLen(rest)
			l.emit(token.Ident, start)
		case isDigit(c) || (c == '.' && len(rest) > 1 && isDigit(rest[1])):
			l.number()
		default:
			l.punct()
		}
	}
	l.endDirective()
	l.toks = append(l.toks, &token.Token{
		Kind:      token.EOF,
		Offset:    len(l.src),
		EndOffset: len(l.src),
		Line:      l.line,
	})
}

// directive lexes a "#" at the start of a line, along with the directive name
// that follows it.
func (l *lexer) directive() {
	start := l.pos
	i := l.pos + 1
	for i < len(l.src) && (l.src[i] == ' ' || l.src[i] == '\t') {
		i++
	}
	name := l.src[i : i+identLen(l.src[i:])]
	kind, ok := directives[name]
	if !ok {
		// A null or unknown directive; it is ordinary text as far as the
		// directive tree is concerned.
		l.pos++
		l.emit(token.Punct, start)
		return
	}
	l.pos = i + len(name)
	l.emit(kind, start)
	l.inDirective = true
	l.wantHeader = kind == token.Include || kind == token.IncludeNext
}

func (l *lexer) quoted(quote byte) {
	start := l.pos
	l.pos++
	for l.pos < len(l.src) {
		c := l.src[l.pos]
		if c == '\n' {
			break
		}
		l.pos++
		if c == '\\' && l.pos < len(l.src) {
			l.pos++
			continue
		}
		if c == quote {
			break
		}
	}
	kind := token.String
	if quote == '\'' {
		kind = token.Char
	}
	l.emit(kind, start)
}

func (l *lexer) number() {
	start := l.pos
	for l.pos < len(l.src) {
		c := l.src[l.pos]
		switch {
		case (c == '+' || c == '-') && strings.ContainsRune("eEpP", rune(l.src[l.pos-1])):
		case isDigit(c) || isIdentStart(c) || c == '.':
		default:
			l.emit(token.Number, start)
			return
		}
		l.pos++
	}
	l.emit(token.Number, start)
}

func (l *lexer) punct() {
	start := l.pos
	rest := l.src[l.pos:]
	for _, p := range puncts {
		if strings.HasPrefix(rest, p) {
			l.pos += len(p)
			l.emit(token.Punct, start)
			return
		}
	}
	if strings.IndexByte(singlePuncts, rest[0]) >= 0 {
		l.pos++
		l.emit(token.Punct, start)
		return
	}
	l.pos++
	l.emit(token.Unrecognized, start)
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func identLen(s string) int {
	if s == "" || !isIdentStart(s[0]) {
		return 0
	}
	n := 1
	for n < len(s) && (isIdentStart(s[n]) || isDigit(s[n])) {
		n++
	}
	return n
}
