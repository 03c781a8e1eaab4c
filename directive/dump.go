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
	"io"
	"strings"
)

// Dump writes an indented rendering of the tree rooted at n to w, one node
// per line.
func Dump(w io.Writer, n Node) error {
	depth := 0
	return WalkEnterAndExit(n,
		func(n Node) error {
			_, err := fmt.Fprintf(w, "%s%v\n", strings.Repeat("  ", depth), n)
			depth++
			return err
		},
		func(Node) error {
			depth--
			return nil
		},
	)
}
