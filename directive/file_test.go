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

package directive_test

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bufbuild/cpptree/directive"
	"github.com/bufbuild/cpptree/intern"
)

func TestFile(t *testing.T) {
	t.Parallel()

	table := new(intern.Table)
	fsys := fstest.MapFS{"inc/foo.h": {Data: []byte("#pragma once\n")}}
	file := directive.NewFile(fsys, "inc/foo.h", table)

	assert.Equal(t, directive.KindFile, file.Kind())
	assert.Equal(t, "inc/foo.h", file.Path())
	id, ok := table.Query("inc/foo.h")
	assert.True(t, ok)
	assert.Equal(t, id, file.PathID())
	assert.False(t, file.IsTokenized())
	assert.Zero(t, file.EndOffset())

	data, err := file.ReadFile()
	require.NoError(t, err)
	assert.Equal(t, "#pragma once\n", string(data))

	missing := directive.NewFile(fsys, "inc/bar.h", table)
	_, err = missing.ReadFile()
	assert.Error(t, err)
}

func TestFileGuard(t *testing.T) {
	t.Parallel()

	file := directive.NewFile(nil, "foo.h", new(intern.Table))
	assert.Empty(t, file.Guard())
	assert.Equal(t, `file "foo.h"`, file.String())

	assert.Panics(t, func() { file.SetGuard("") })
	file.SetGuard("FOO_H")
	assert.Equal(t, "FOO_H", file.Guard())
	assert.Equal(t, `file "foo.h" guard=FOO_H`, file.String())
	assert.Panics(t, func() { file.SetGuard("BAR_H") })
	assert.Equal(t, "FOO_H", file.Guard())
}
