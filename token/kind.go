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

import "fmt"

const (
	EOF            Kind = iota // End of the token source. See [EOS].
	EndOfDirective             // Logical end of a directive line.
	Comment                    // A single comment.
	Ident                      // An identifier or keyword.
	Number                     // A preprocessing number.
	String                     // A double-quoted string literal.
	Char                       // A character literal.
	SysInclude                 // An angle-bracketed header name, e.g. <stdio.h>.
	Punct                      // Punctuation; the operator is in Text.
	Unrecognized               // Garbage the lexer could not classify.

	Define      // #define
	Undef       // #undef
	Include     // #include
	IncludeNext // #include_next
	If          // #if
	Elif        // #elif
	Ifdef       // #ifdef
	Ifndef      // #ifndef
	Else        // #else
	Endif       // #endif
	Pragma      // #pragma
	Error       // #error or #warning
	Line        // #line

	firstDirective = Define
	lastDirective  = Line
)

// Kind identifies what kind of token a particular [Token] is.
type Kind byte

// IsDirective returns whether this kind introduces a preprocessor directive.
func (k Kind) IsDirective() bool {
	return k >= firstDirective && k <= lastDirective
}

// String implements [fmt.Stringer].
func (k Kind) String() string {
	switch k {
	case EOF:
		return "EOF"
	case EndOfDirective:
		return "EndOfDirective"
	case Comment:
		return "Comment"
	case Ident:
		return "Ident"
	case Number:
		return "Number"
	case String:
		return "String"
	case Char:
		return "Char"
	case SysInclude:
		return "SysInclude"
	case Punct:
		return "Punct"
	case Unrecognized:
		return "Unrecognized"
	case Define:
		return "Define"
	case Undef:
		return "Undef"
	case Include:
		return "Include"
	case IncludeNext:
		return "IncludeNext"
	case If:
		return "If"
	case Elif:
		return "Elif"
	case Ifdef:
		return "Ifdef"
	case Ifndef:
		return "Ifndef"
	case Else:
		return "Else"
	case Endif:
		return "Endif"
	case Pragma:
		return "Pragma"
	case Error:
		return "Error"
	case Line:
		return "Line"
	default:
		return fmt.Sprintf("token.Kind(%d)", int(k))
	}
}
