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

package translate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MetallData/json-logic/internal/value"
)

func TestCreateLogicSimpleEquality(t *testing.T) {
	b, err := CreateLogicJSON([]byte(`{"==": [1, 1]}`), nil)
	require.NoError(t, err)
	require.Equal(t, value.TagEq, b.Root.Tag)
	require.Len(t, b.Root.Children, 2)
	assert.Equal(t, value.TagUint, b.Root.Children[0].Tag)
	assert.Equal(t, uint64(1), b.Root.Children[0].Uint)
}

func TestCreateLogicSignedAndUnsignedLiterals(t *testing.T) {
	b, err := CreateLogicJSON([]byte(`{"+": [-3, 3, 3.5]}`), nil)
	require.NoError(t, err)
	require.Len(t, b.Root.Children, 3)
	assert.Equal(t, value.TagInt, b.Root.Children[0].Tag)
	assert.Equal(t, int64(-3), b.Root.Children[0].Int)
	assert.Equal(t, value.TagUint, b.Root.Children[1].Tag)
	assert.Equal(t, value.TagReal, b.Root.Children[2].Tag)
}

func TestCreateLogicSingleOperandIsWrapped(t *testing.T) {
	b, err := CreateLogicJSON([]byte(`{"!": true}`), nil)
	require.NoError(t, err)
	require.Equal(t, value.TagNot, b.Root.Tag)
	require.Len(t, b.Root.Children, 1)
	assert.True(t, b.Root.Children[0].Bool)
}

func TestCreateLogicUnknownOperatorIsLogicError(t *testing.T) {
	_, err := CreateLogicJSON([]byte(`{"nope": [1, 2]}`), nil)
	assert.Error(t, err)
}

func TestCreateLogicMultiKeyObjectIsLogicError(t *testing.T) {
	_, err := CreateLogicJSON([]byte(`{"==": [1,1], "!=": [2,2]}`), nil)
	assert.Error(t, err)
}

func TestCreateLogicStaticVarIndexing(t *testing.T) {
	b, err := CreateLogicJSON([]byte(`{"==": [{"var": "a"}, {"var": "b"}]}`), nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, b.VarNames)
	assert.False(t, b.HasComputedVars)
	assert.Equal(t, 0, b.Root.Children[0].VarIdx)
	assert.Equal(t, 1, b.Root.Children[1].VarIdx)
}

func TestCreateLogicRepeatedVarReusesIndex(t *testing.T) {
	b, err := CreateLogicJSON([]byte(`{"and": [{"var": "a"}, {"var": "a"}]}`), nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, b.VarNames)
	assert.Equal(t, 0, b.Root.Children[0].VarIdx)
	assert.Equal(t, 0, b.Root.Children[1].VarIdx)
}

func TestCreateLogicDottedPathIsComputed(t *testing.T) {
	b, err := CreateLogicJSON([]byte(`{"var": "a.b"}`), nil)
	require.NoError(t, err)
	assert.True(t, b.HasComputedVars)
	assert.Equal(t, value.Computed, b.Root.VarIdx)
	assert.Empty(t, b.VarNames)
}

func TestCreateLogicBracketPathIsComputed(t *testing.T) {
	b, err := CreateLogicJSON([]byte(`{"var": "a[0]"}`), nil)
	require.NoError(t, err)
	assert.True(t, b.HasComputedVars)
}

func TestCreateLogicEmptyPathVarIsNotIndexed(t *testing.T) {
	b, err := CreateLogicJSON([]byte(`{"var": ""}`), nil)
	require.NoError(t, err)
	assert.Empty(t, b.VarNames)
	assert.False(t, b.HasComputedVars)
	assert.Equal(t, value.Computed, b.Root.VarIdx)
}

func TestCreateLogicVarWithDefaultIsComputed(t *testing.T) {
	b, err := CreateLogicJSON([]byte(`{"var": ["a", 10]}`), nil)
	require.NoError(t, err)
	assert.Equal(t, value.Computed, b.Root.VarIdx)
	assert.Empty(t, b.VarNames)
}

func TestCreateLogicAllowedOperatorsRejectsOthers(t *testing.T) {
	cfg := &Config{MaxDepth: 32, AllowedOperators: []string{"==", "var"}}
	_, err := CreateLogicJSON([]byte(`{"+": [1, {"var": "a"}]}`), cfg)
	assert.Error(t, err)
}

func TestCreateLogicAllowedOperatorsPermitsListed(t *testing.T) {
	cfg := &Config{MaxDepth: 32, AllowedOperators: []string{"==", "var"}}
	_, err := CreateLogicJSON([]byte(`{"==": [{"var": "a"}, 1]}`), cfg)
	assert.NoError(t, err)
}

func TestCreateLogicMaxDepthExceeded(t *testing.T) {
	cfg := &Config{MaxDepth: 2}
	_, err := CreateLogicJSON([]byte(`{"!": [{"!": [{"!": [true]}]}]}`), cfg)
	assert.Error(t, err)
}

func TestCreateLogicArrayLiteral(t *testing.T) {
	b, err := CreateLogicJSON([]byte(`[1, 2, 3]`), nil)
	require.NoError(t, err)
	assert.True(t, b.Root.IsArray())
	assert.Len(t, b.Root.Children, 3)
}
