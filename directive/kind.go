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

	"github.com/bufbuild/cpptree/token"
)

const (
	KindFile Kind = iota
	KindDefine
	KindUndef
	KindIf
	KindElif
	KindIfdef
	KindIfndef
	KindElse
	KindEndif
	KindInclude
	KindIncludeNext
	KindPragma
	KindError
	KindLine
)

// Kind is the directive kind tag of a [Node].
type Kind byte

// KindOf returns the node kind introduced by a token of kind k.
func KindOf(k token.Kind) (Kind, bool) {
	switch k {
	case token.Define:
		return KindDefine, true
	case token.Undef:
		return KindUndef, true
	case token.If:
		return KindIf, true
	case token.Elif:
		return KindElif, true
	case token.Ifdef:
		return KindIfdef, true
	case token.Ifndef:
		return KindIfndef, true
	case token.Else:
		return KindElse, true
	case token.Endif:
		return KindEndif, true
	case token.Include:
		return KindInclude, true
	case token.IncludeNext:
		return KindIncludeNext, true
	case token.Pragma:
		return KindPragma, true
	case token.Error:
		return KindError, true
	case token.Line:
		return KindLine, true
	default:
		return 0, false
	}
}

// HasChildren returns whether nodes of this kind open a nested scope.
func (k Kind) HasChildren() bool {
	switch k {
	case KindFile, KindIf, KindElif, KindIfdef, KindIfndef, KindElse:
		return true
	default:
		return false
	}
}

// IsBranch returns whether this kind starts a conditional branch.
func (k Kind) IsBranch() bool {
	return k != KindFile && k.HasChildren()
}

// String implements [fmt.Stringer]. Directive kinds are spelled the way they
// are written after the "#".
func (k Kind) String() string {
	switch k {
	case KindFile:
		return "file"
	case KindDefine:
		return "define"
	case KindUndef:
		return "undef"
	case KindIf:
		return "if"
	case KindElif:
		return "elif"
	case KindIfdef:
		return "ifdef"
	case KindIfndef:
		return "ifndef"
	case KindElse:
		return "else"
	case KindEndif:
		return "endif"
	case KindInclude:
		return "include"
	case KindIncludeNext:
		return "include_next"
	case KindPragma:
		return "pragma"
	case KindError:
		return "error"
	case KindLine:
		return "line"
	default:
		return fmt.Sprintf("directive.Kind(%d)", int(k))
	}
}
