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
	"strings"

	"github.com/rivo/uniseg"
)

// MaxDumpWidth is the widest, in terminal columns, that a single token is
// rendered by [Dump] before being elided.
const MaxDumpWidth = 24

// Dump renders toks as a condensed, human-readable string: token texts
// separated by single spaces, with overly wide tokens elided.
func Dump(toks []*Token) string {
	var out strings.Builder
	for i, tok := range toks {
		if i > 0 {
			out.WriteByte(' ')
		}
		writeCondensed(&out, tok.String())
	}
	return out.String()
}

func writeCondensed(out *strings.Builder, text string) {
	if uniseg.StringWidth(text) <= MaxDumpWidth {
		out.WriteString(text)
		return
	}

	// Leave one column for the ellipsis.
	width := 0
	for gs := uniseg.NewGraphemes(text); gs.Next(); {
		next := gs.Str()
		w := uniseg.StringWidth(next)
		if width+w > MaxDumpWidth-1 {
			break
		}
		width += w
		out.WriteString(next)
	}
	out.WriteString("…")
}
