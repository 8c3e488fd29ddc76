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

package jsonlogic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyJSONSimpleRule(t *testing.T) {
	result, err := ApplyJSON(
		[]byte(`{">=": [{"var": "age"}, 18]}`),
		[]byte(`{"age": 21}`),
		nil,
	)
	require.NoError(t, err)
	assert.Equal(t, true, result)
}

func TestCreateLogicAndApplyReused(t *testing.T) {
	logic, err := CreateLogicJSON([]byte(`{"+": [{"var": "a"}, {"var": "b"}]}`), nil)
	require.NoError(t, err)

	r1, err := Apply(logic, map[string]interface{}{"a": 1, "b": 2}, nil)
	require.NoError(t, err)
	assert.EqualValues(t, 3, r1)

	r2, err := Apply(logic, map[string]interface{}{"a": 10, "b": 20}, nil)
	require.NoError(t, err)
	assert.EqualValues(t, 30, r2)
}

func TestApplyWithAccessor(t *testing.T) {
	logic, err := CreateLogicJSON([]byte(`{"var": "name"}`), nil)
	require.NoError(t, err)

	da := func(path interface{}, _ int) (interface{}, error) {
		if path == "name" {
			return "ada", nil
		}
		return nil, assert.AnError
	}
	result, err := ApplyWithAccessor(logic, da, nil)
	require.NoError(t, err)
	assert.Equal(t, "ada", result)
}

func TestTruthyFalsy(t *testing.T) {
	assert.True(t, Truthy(true))
	assert.True(t, Truthy("non-empty"))
	assert.False(t, Truthy(""))
	assert.False(t, Truthy(nil))
	assert.True(t, Falsy(nil))
}

func TestApplyJSONInvalidRule(t *testing.T) {
	_, err := ApplyJSON([]byte(`{"nope": [1,2]}`), []byte(`{}`), nil)
	assert.Error(t, err)
}

func TestApplyJSONMalformedData(t *testing.T) {
	_, err := ApplyJSON([]byte(`{"var": "x"}`), []byte(`not json`), nil)
	assert.Error(t, err)
}

func TestLogicVarNamesAndComputed(t *testing.T) {
	logic, err := CreateLogicJSON([]byte(`{"and": [{"var": "a"}, {"var": "b.c"}]}`), nil)
	require.NoError(t, err)
	assert.Contains(t, logic.VarNames(), "a")
	assert.True(t, logic.HasComputedVars())
}
