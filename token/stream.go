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

import "iter"

// Stream is a pull-based source of tokens.
//
// Once exhausted, Next returns [EOS] on every subsequent call.
type Stream interface {
	Next() *Token
}

// SliceStream is a restartable [Stream] over a fixed sequence of tokens,
// optionally preceded by a head token.
type SliceStream struct {
	head *Token
	toks []*Token
	// idx is -1 while the head has not been yielded yet.
	idx int
}

// NewSliceStream returns a stream over toks.
//
// The stream does not copy toks; the caller must not modify it afterwards.
func NewSliceStream(toks ...*Token) *SliceStream {
	return &SliceStream{toks: toks}
}

// NewHeadedStream returns a stream that yields head, then each of toks.
func NewHeadedStream(head *Token, toks []*Token) *SliceStream {
	s := &SliceStream{head: head, toks: toks}
	s.Restart()
	return s
}

// Next implements [Stream].
func (s *SliceStream) Next() *Token {
	tok := s.Peek()
	if !tok.IsEOF() {
		s.idx++
	}
	return tok
}

// Peek returns the token Next would return, without advancing.
func (s *SliceStream) Peek() *Token {
	if s.idx < 0 {
		return s.head
	}
	if s.idx >= len(s.toks) {
		return eos
	}
	return s.toks[s.idx]
}

// Restart rewinds the stream to its first token.
func (s *SliceStream) Restart() {
	s.idx = 0
	if s.head != nil {
		s.idx = -1
	}
}

// Len returns the total number of tokens the stream yields, excluding the
// trailing [EOS].
func (s *SliceStream) Len() int {
	if s.head != nil {
		return len(s.toks) + 1
	}
	return len(s.toks)
}

// All returns an iterator over the remaining tokens of s, stopping before
// [EOS].
func All(s Stream) iter.Seq[*Token] {
	return func(yield func(*Token) bool) {
		for tok := s.Next(); !tok.IsEOF(); tok = s.Next() {
			if !yield(tok) {
				return
			}
		}
	}
}

// Collect drains s into a slice.
func Collect(s Stream) []*Token {
	var out []*Token
	for tok := range All(s) {
		out = append(out, tok)
	}
	return out
}

// Filter returns a stream over the tokens of s for which keep returns true.
func Filter(s Stream, keep func(*Token) bool) Stream {
	return filtered{s, keep}
}

type filtered struct {
	Stream
	keep func(*Token) bool
}

func (f filtered) Next() *Token {
	for {
		tok := f.Stream.Next()
		if tok.IsEOF() || f.keep(tok) {
			return tok
		}
	}
}
