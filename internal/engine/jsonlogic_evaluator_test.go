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

package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewJSONLogicEvaluatorDefaults(t *testing.T) {
	e := NewJSONLogicEvaluator()
	require.NotNil(t, e.GetConfig())
	assert.Equal(t, 256, e.GetConfig().MaxDepth)
	assert.Equal(t, 5*time.Second, e.GetConfig().Timeout)
}

func TestValidateJSONLogicConfig(t *testing.T) {
	assert.NoError(t, ValidateJSONLogicConfig(DefaultJSONLogicConfig()))

	bad := DefaultJSONLogicConfig()
	bad.MaxDepth = 0
	assert.Error(t, ValidateJSONLogicConfig(bad))

	bad2 := DefaultJSONLogicConfig()
	bad2.Timeout = -1
	assert.Error(t, ValidateJSONLogicConfig(bad2))
}

func TestEvaluateAssertionPassAndFail(t *testing.T) {
	e := NewJSONLogicEvaluator()

	rule := map[string]interface{}{">=": []interface{}{map[string]interface{}{"var": "age"}, 18}}
	data := map[string]interface{}{"age": 21}

	result, err := e.EvaluateAssertion(rule, data)
	require.NoError(t, err)
	assert.True(t, result.Passed)

	data["age"] = 10
	result, err = e.EvaluateAssertion(rule, data)
	require.NoError(t, err)
	assert.False(t, result.Passed)
}

func TestEvaluateAssertionEmptyRulePasses(t *testing.T) {
	e := NewJSONLogicEvaluator()
	result, err := e.EvaluateAssertion(nil, nil)
	require.NoError(t, err)
	assert.True(t, result.Passed)
}

func TestEvaluateAssertionNestedPath(t *testing.T) {
	e := NewJSONLogicEvaluator()
	rule := map[string]interface{}{"==": []interface{}{map[string]interface{}{"var": "user.role"}, "admin"}}
	data := map[string]interface{}{"user": map[string]interface{}{"role": "admin"}}

	result, err := e.EvaluateAssertion(rule, data)
	require.NoError(t, err)
	assert.True(t, result.Passed)
}

func TestEvaluateAssertionTranslationFailureIsFailedResult(t *testing.T) {
	e := NewJSONLogicEvaluator()
	rule := map[string]interface{}{"no_such_op": []interface{}{1, 2}}

	result, err := e.EvaluateAssertion(rule, nil)
	require.NoError(t, err)
	assert.False(t, result.Passed)
	assert.Error(t, result.Error)
}

func TestValidateAssertion(t *testing.T) {
	e := NewJSONLogicEvaluator()
	assert.NoError(t, e.ValidateAssertion(map[string]interface{}{"==": []interface{}{1, 1}}))
	assert.Error(t, e.ValidateAssertion(map[string]interface{}{"bogus": []interface{}{1, 1}}))
	assert.Error(t, e.ValidateAssertion(nil))
}

func TestEvaluateAssertionArrayIndexPath(t *testing.T) {
	e := NewJSONLogicEvaluator()
	rule := map[string]interface{}{"==": []interface{}{map[string]interface{}{"var": "items.1"}, "b"}}
	data := map[string]interface{}{"items": []interface{}{"a", "b", "c"}}

	result, err := e.EvaluateAssertion(rule, data)
	require.NoError(t, err)
	assert.True(t, result.Passed)
}
