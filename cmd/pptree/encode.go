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

package main

import (
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/bufbuild/cpptree/directive"
)

type encoder interface {
	encode(w io.Writer, f *loaded) error
}

type textEncoder struct{}

func (textEncoder) encode(w io.Writer, f *loaded) error {
	return directive.Dump(w, f.file)
}

type yamlEncoder struct{}

// yamlNode is the YAML form of a directive tree.
type yamlNode struct {
	Kind     string      `yaml:"kind"`
	Path     string      `yaml:"path,omitempty"`
	Guard    string      `yaml:"guard,omitempty"`
	Line     int         `yaml:"line,omitempty"`
	Text     string      `yaml:"text,omitempty"`
	Children []*yamlNode `yaml:"children,omitempty"`
}

func (yamlEncoder) encode(w io.Writer, f *loaded) error {
	if _, err := io.WriteString(w, "---\n"); err != nil {
		return err
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(toYAML(f)); err != nil {
		return err
	}
	return enc.Close()
}

func toYAML(f *loaded) *yamlNode {
	var root *yamlNode
	var stack []*yamlNode
	_ = directive.WalkEnterAndExit(f.file,
		func(n directive.Node) error {
			y := &yamlNode{Kind: n.Kind().String()}
			if file, ok := n.(*directive.File); ok {
				y.Path = f.path
				y.Guard = file.Guard()
			} else {
				y.Line = n.Token().Line
				y.Text = strings.TrimPrefix(strings.TrimPrefix(n.String(), y.Kind), " ")
			}

			if len(stack) == 0 {
				root = y
			} else {
				parent := stack[len(stack)-1]
				parent.Children = append(parent.Children, y)
			}
			stack = append(stack, y)
			return nil
		},
		func(directive.Node) error {
			stack = stack[:len(stack)-1]
			return nil
		},
	)
	return root
}
