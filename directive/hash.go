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
	"encoding/binary"

	"github.com/cespare/xxhash/v2"

	"github.com/bufbuild/cpptree/token"
)

// Hash computes a structural hash of the tree rooted at n: two trees hash
// equal if they contain the same directives with the same payloads, nested
// the same way. Offsets do not contribute, so a file whose directives moved
// around without changing keeps its hash.
//
// Payload tokens contribute their kind and full text.
func Hash(n Node) uint64 {
	h := hasher{xxhash.New()}
	_ = WalkEnterAndExit(n,
		func(n Node) error {
			h.putNode(n)
			return nil
		},
		func(Node) error {
			h.putByte(')')
			return nil
		},
	)
	return h.Sum64()
}

type hasher struct {
	*xxhash.Digest
}

func (h hasher) putNode(n Node) {
	h.putByte('(')
	h.putByte(byte(n.Kind()))
	switch n := n.(type) {
	case *File:
		// The guard is assigned after parsing, so it cannot contribute.
		h.putString(n.Path())
	case *Define:
		h.putToken(n.name)
		h.putBool(n.IsValid())
		h.putTokens(n.params)
		h.putTokens(n.body)
	case *Undef:
		h.putToken(n.name)
		h.putBool(n.IsValid())
	case *Include:
		h.putBool(n.IsMultiToken())
		h.putTokens(n.Tokens())
	case *Cond:
		h.putTokens(n.expr)
	case *Ifdef:
		h.putToken(n.name)
	case *Stream:
		h.putTokens(n.toks)
	}
}

func (h hasher) putByte(b byte) {
	_, _ = h.Write([]byte{b})
}

func (h hasher) putBool(b bool) {
	if b {
		h.putByte(1)
	} else {
		h.putByte(0)
	}
}

// putString writes s with a length prefix, so that adjacent strings cannot run
// into each other.
func (h hasher) putString(s string) {
	_, _ = h.Write(binary.AppendUvarint(nil, uint64(len(s))))
	_, _ = h.WriteString(s)
}

func (h hasher) putToken(tok *token.Token) {
	switch {
	case tok == nil:
		h.putByte(0)
	case tok.IsVariadicMarker():
		h.putByte(1)
	default:
		h.putByte(2)
		h.putByte(byte(tok.Kind))
		h.putString(tok.Text)
	}
}

// putTokens distinguishes a nil list from an empty one.
func (h hasher) putTokens(toks []*token.Token) {
	if toks == nil {
		h.putByte(0)
		return
	}
	h.putByte(1)
	_, _ = h.Write(binary.AppendUvarint(nil, uint64(len(toks))))
	for _, tok := range toks {
		h.putToken(tok)
	}
}
