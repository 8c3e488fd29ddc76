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

package ops

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MetallData/json-logic/internal/value"
)

func TestCompareNumeric(t *testing.T) {
	res, err := Compare("<", value.Int(1), value.Int(2))
	require.NoError(t, err)
	assert.True(t, res.Bool)
}

func TestCompareNullVsStringLtAlwaysFalse(t *testing.T) {
	res, err := Compare("<", value.Null(), value.Str("anything"))
	require.NoError(t, err)
	assert.False(t, res.Bool)

	res, err = Compare(">", value.Str(""), value.Null())
	require.NoError(t, err)
	assert.False(t, res.Bool)
}

func TestCompareNullVsStringLeTrueOnlyWhenStringEmpty(t *testing.T) {
	res, err := Compare("<=", value.Null(), value.Str(""))
	require.NoError(t, err)
	assert.True(t, res.Bool)

	res, err = Compare("<=", value.Null(), value.Str("x"))
	require.NoError(t, err)
	assert.False(t, res.Bool)
}

func TestCompareNullVsNull(t *testing.T) {
	res, err := Compare("<", value.Null(), value.Null())
	require.NoError(t, err)
	assert.False(t, res.Bool)

	res, err = Compare("<=", value.Null(), value.Null())
	require.NoError(t, err)
	assert.True(t, res.Bool)
}

func TestCompareArrayVsArraySequence(t *testing.T) {
	res, err := Compare("<", value.Array(value.Int(1), value.Int(2)), value.Array(value.Int(1), value.Int(3)))
	require.NoError(t, err)
	assert.True(t, res.Bool)
}

func TestCompareArrayVsArrayFallsBackToLength(t *testing.T) {
	res, err := Compare("<", value.Array(value.Int(1)), value.Array(value.Int(1), value.Int(2)))
	require.NoError(t, err)
	assert.True(t, res.Bool)
}

func TestCompareSingletonArrayVsScalar(t *testing.T) {
	res, err := Compare("<", value.Array(value.Int(1)), value.Int(2))
	require.NoError(t, err)
	assert.True(t, res.Bool)
}

func TestCompareMultiElementArrayVsScalarIsFalse(t *testing.T) {
	res, err := Compare("<", value.Array(value.Int(1), value.Int(2)), value.Int(5))
	require.NoError(t, err)
	assert.False(t, res.Bool)
}

func TestCompareStringVsBoolIsFalse(t *testing.T) {
	res, err := Compare("<", value.Str("x"), value.Bool(true))
	require.NoError(t, err)
	assert.False(t, res.Bool)
}
