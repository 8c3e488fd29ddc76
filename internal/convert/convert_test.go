// Copyright 2024-2025 FlowSpec
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package convert

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MetallData/json-logic/internal/value"
)

func TestCloneProducesIndependentTree(t *testing.T) {
	original := value.Op(value.TagAnd, value.Bool(true), value.Array(value.Int(1), value.Int(2)))
	cloned, err := Clone(original)
	require.NoError(t, err)
	require.NotSame(t, original, cloned)
	require.NotSame(t, original.Children[1], cloned.Children[1])
	assert.Equal(t, original.Children[1].Children[0].Int, cloned.Children[1].Children[0].Int)

	cloned.Children[1].Children[0].Int = 99
	assert.Equal(t, int64(1), original.Children[1].Children[0].Int)
}

func TestToJSONRoundTripsScalarsAndArrays(t *testing.T) {
	arr := value.Array(value.Int(1), value.Str("x"), value.Bool(true), value.Null())
	out, err := ToJSON(arr)
	require.NoError(t, err)
	list, ok := out.([]interface{})
	require.True(t, ok)
	assert.Equal(t, []interface{}{int64(1), "x", true, nil}, list)
}

func TestToJSONRejectsOperatorNodes(t *testing.T) {
	_, err := ToJSON(value.Op(value.TagAnd, value.Bool(true)))
	assert.Error(t, err)
}

func TestStringRendersValues(t *testing.T) {
	assert.Equal(t, "3", String(value.Int(3)))
	assert.Equal(t, `"hi"`, String(value.Str("hi")))
	assert.Equal(t, "[1,2]", String(value.Array(value.Int(1), value.Int(2))))
	assert.Equal(t, "null", String(value.Null()))
}
