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

package eval

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MetallData/json-logic/internal/errs"
	"github.com/MetallData/json-logic/internal/translate"
	"github.com/MetallData/json-logic/internal/value"
)

// testAccessor is a minimal stand-in for the public data accessor,
// enough to exercise plain and dotted variable lookups in isolation
// from the root package.
func testAccessor(data map[string]*value.Expr) Accessor {
	return func(path *value.Expr, _ int) (*value.Expr, error) {
		if path.Tag != value.TagStr {
			return nil, errs.NewTypeError("var", "path must be a string")
		}
		if path.Str == "" {
			obj := make(map[string]*value.Expr, len(data))
			for k, v := range data {
				obj[k] = v
			}
			return value.Object(obj), nil
		}
		cur := data
		parts := strings.Split(path.Str, ".")
		for i, p := range parts {
			v, ok := cur[p]
			if !ok {
				return nil, errs.NewLogicError("no such path %q", path.Str)
			}
			if i == len(parts)-1 {
				return v, nil
			}
			if v.Tag != value.TagObject {
				return nil, errs.NewLogicError("no such path %q", path.Str)
			}
			next := make(map[string]*value.Expr, len(v.Object))
			for k, vv := range v.Object {
				next[k] = vv
			}
			cur = next
		}
		return nil, errs.NewLogicError("no such path %q", path.Str)
	}
}

// testArrayAccessor mirrors the default accessor's integer-path contract
// (spec §6/§4.7: a bare integer path indexes an array document) without
// pulling in internal/accessor, which itself depends on this package.
func testArrayAccessor(data []*value.Expr) Accessor {
	return func(path *value.Expr, _ int) (*value.Expr, error) {
		var idx int
		switch path.Tag {
		case value.TagInt:
			idx = int(path.Int)
		case value.TagUint:
			idx = int(path.Uint)
		default:
			return nil, errs.NewTypeError("var", "path must be an integer")
		}
		if idx < 0 || idx >= len(data) {
			return nil, errs.NewLogicError("no such index %d", idx)
		}
		return data[idx], nil
	}
}

func mustApply(t *testing.T, rule string, data map[string]*value.Expr, cfg *Config) *value.Expr {
	t.Helper()
	bundle, err := translate.CreateLogicJSON([]byte(rule), nil)
	require.NoError(t, err)
	e, err := New(testAccessor(data), nil, cfg)
	require.NoError(t, err)
	res, err := e.Apply(bundle.Root)
	require.NoError(t, err)
	return res
}

func TestEvalVarResolvesFromAccessor(t *testing.T) {
	res := mustApply(t, `{"var": "age"}`, map[string]*value.Expr{"age": value.Int(30)}, nil)
	assert.Equal(t, int64(30), res.Int)
}

func TestEvalVarMissingReturnsDefault(t *testing.T) {
	res := mustApply(t, `{"var": ["age", 99]}`, map[string]*value.Expr{}, nil)
	assert.Equal(t, int64(99), res.Int)
}

func TestEvalVarMissingNoDefaultIsNull(t *testing.T) {
	res := mustApply(t, `{"var": "age"}`, map[string]*value.Expr{}, nil)
	assert.True(t, res.IsNull())
}

func TestEvalVarIntegerPathIndexesArray(t *testing.T) {
	bundle, err := translate.CreateLogicJSON([]byte(`{"var": 1}`), nil)
	require.NoError(t, err)

	data := []*value.Expr{value.Str("a"), value.Str("b"), value.Str("c")}
	e, err := New(testArrayAccessor(data), nil, nil)
	require.NoError(t, err)

	res, err := e.Apply(bundle.Root)
	require.NoError(t, err)
	assert.Equal(t, "b", res.Str)
}

func TestEvalAndReturnsOperandNotBool(t *testing.T) {
	res := mustApply(t, `{"and": [1, 2, 0, 3]}`, nil, nil)
	assert.Equal(t, int64(0), res.Int)

	res = mustApply(t, `{"and": [1, 2, 3]}`, nil, nil)
	assert.Equal(t, int64(3), res.Int)
}

func TestEvalOrReturnsOperandNotBool(t *testing.T) {
	res := mustApply(t, `{"or": [0, false, 5, 9]}`, nil, nil)
	assert.Equal(t, int64(5), res.Int)
}

func TestEvalIfChainsConditions(t *testing.T) {
	res := mustApply(t, `{"if": [false, "a", false, "b", "c"]}`, nil, nil)
	assert.Equal(t, "c", res.Str)
}

func TestEvalIfEmptyIsNull(t *testing.T) {
	res := mustApply(t, `{"if": []}`, nil, nil)
	assert.True(t, res.IsNull())
}

func TestEvalChainedComparison(t *testing.T) {
	res := mustApply(t, `{"<": [1, 2, 3]}`, nil, nil)
	assert.True(t, res.Bool)

	res = mustApply(t, `{"<": [1, 5, 3]}`, nil, nil)
	assert.False(t, res.Bool)
}

func TestEvalMapFilterReduce(t *testing.T) {
	res := mustApply(t, `{"map": [[1,2,3], {"+": [{"var": ""}, 1]}]}`, nil, nil)
	require.Len(t, res.Children, 3)
	assert.Equal(t, int64(2), res.Children[0].Int)
	assert.Equal(t, int64(4), res.Children[2].Int)

	res = mustApply(t, `{"filter": [[1,2,3,4], {">": [{"var": ""}, 2]}]}`, nil, nil)
	require.Len(t, res.Children, 2)
	assert.Equal(t, int64(3), res.Children[0].Int)

	res = mustApply(t, `{"reduce": [[1,2,3,4], {"+": [{"var": "current"}, {"var": "accumulator"}]}, 0]}`, nil, nil)
	assert.Equal(t, int64(10), res.Int)
}

func TestEvalAllNoneSome(t *testing.T) {
	assert.True(t, mustApply(t, `{"all": [[1,2,3], {">": [{"var": ""}, 0]}]}`, nil, nil).Bool)
	assert.True(t, mustApply(t, `{"none": [[1,2,3], {"<": [{"var": ""}, 0]}]}`, nil, nil).Bool)
	assert.True(t, mustApply(t, `{"some": [[1,2,3], {"==": [{"var": ""}, 2]}]}`, nil, nil).Bool)
	assert.True(t, mustApply(t, `{"all": [[], {">": [{"var": ""}, 0]}]}`, nil, nil).Bool)
	assert.False(t, mustApply(t, `{"some": [[], {">": [{"var": ""}, 0]}]}`, nil, nil).Bool)
}

func TestEvalMissingAndMissingSome(t *testing.T) {
	data := map[string]*value.Expr{"a": value.Int(1)}
	res := mustApply(t, `{"missing": ["a", "b"]}`, data, nil)
	require.Len(t, res.Children, 1)
	assert.Equal(t, "b", res.Children[0].Str)

	res = mustApply(t, `{"missing_some": [1, ["a", "b"]]}`, data, nil)
	assert.Len(t, res.Children, 0)

	res = mustApply(t, `{"missing_some": [2, ["a", "b"]]}`, data, nil)
	require.Len(t, res.Children, 1)
	assert.Equal(t, "b", res.Children[0].Str)
}

func TestEvalLogReturnsOperand(t *testing.T) {
	var logged string
	logger := loggerFunc(func(s string) { logged = s })
	bundle, err := translate.CreateLogicJSON([]byte(`{"log": "hi"}`), nil)
	require.NoError(t, err)
	e, err := New(testAccessor(nil), logger, nil)
	require.NoError(t, err)
	res, err := e.Apply(bundle.Root)
	require.NoError(t, err)
	assert.Equal(t, "hi", res.Str)
	assert.Equal(t, `"hi"`, logged)
}

type loggerFunc func(string)

func (f loggerFunc) Log(s string) { f(s) }

func TestEvalDisallowedOperator(t *testing.T) {
	bundle, err := translate.CreateLogicJSON([]byte(`{"+": [1, 2]}`), nil)
	require.NoError(t, err)
	cfg := &Config{MaxDepth: 32, AllowedOperators: []string{"=="}}
	e, err := New(testAccessor(nil), nil, cfg)
	require.NoError(t, err)
	_, err = e.Apply(bundle.Root)
	assert.Error(t, err)
}

func TestEvalRegexExtensionDisabledByDefault(t *testing.T) {
	bundle, err := translate.CreateLogicJSON([]byte(`{"regex": ["^a", "abc"]}`), nil)
	require.NoError(t, err)
	e, err := New(testAccessor(nil), nil, nil)
	require.NoError(t, err)
	_, err = e.Apply(bundle.Root)
	assert.Error(t, err)
}

func TestEvalRegexExtensionEnabled(t *testing.T) {
	bundle, err := translate.CreateLogicJSON([]byte(`{"regex": ["^a", "abc"]}`), nil)
	require.NoError(t, err)
	cfg := DefaultConfig()
	cfg.EnableRegexExtension = true
	e, err := New(testAccessor(nil), nil, cfg)
	require.NoError(t, err)
	res, err := e.Apply(bundle.Root)
	require.NoError(t, err)
	assert.True(t, res.Bool)
}

func TestEvalTimeoutFires(t *testing.T) {
	bundle, err := translate.CreateLogicJSON([]byte(`{"var": "x"}`), nil)
	require.NoError(t, err)
	cfg := DefaultConfig()
	cfg.Timeout = time.Nanosecond
	slowAccessor := func(path *value.Expr, idx int) (*value.Expr, error) {
		time.Sleep(20 * time.Millisecond)
		return value.Int(1), nil
	}
	e, err := New(slowAccessor, nil, cfg)
	require.NoError(t, err)
	_, err = e.Apply(bundle.Root)
	assert.Error(t, err)
}

func TestEvalMaxDepthExceeded(t *testing.T) {
	nested := `true`
	for i := 0; i < 10; i++ {
		nested = `{"!!": [` + nested + `]}`
	}
	bundle, err := translate.CreateLogicJSON([]byte(nested), &translate.Config{MaxDepth: 256})
	require.NoError(t, err)
	cfg := &Config{MaxDepth: 3}
	e, err := New(testAccessor(nil), nil, cfg)
	require.NoError(t, err)
	_, err = e.Apply(bundle.Root)
	assert.Error(t, err)
}
