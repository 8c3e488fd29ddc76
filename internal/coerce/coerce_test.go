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

package coerce

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MetallData/json-logic/internal/errs"
	"github.com/MetallData/json-logic/internal/value"
)

func TestCoercePairIdenticalKinds(t *testing.T) {
	l, r, err := CoercePair("==", Equality, value.Int(3), value.Int(4))
	require.NoError(t, err)
	assert.Equal(t, int64(3), l.Int)
	assert.Equal(t, int64(4), r.Int)
}

func TestCoercePairRealPromotion(t *testing.T) {
	l, r, err := CoercePair("==", Equality, value.Int(3), value.Real(3.5))
	require.NoError(t, err)
	assert.Equal(t, value.TagReal, l.Tag)
	assert.Equal(t, 3.0, l.Real)
	assert.Equal(t, 3.5, r.Real)
}

func TestCoercePairIntUintFitsAsInt(t *testing.T) {
	l, r, err := CoercePair("==", Equality, value.Int(3), value.Uint(4))
	require.NoError(t, err)
	assert.Equal(t, value.TagInt, l.Tag)
	assert.Equal(t, value.TagInt, r.Tag)
	assert.Equal(t, int64(4), r.Int)
}

func TestCoercePairIntUintOverflowsToUint(t *testing.T) {
	huge := uint64(1) << 63 // math.MaxInt64 + 1, does not fit int64
	l, r, err := CoercePair("==", Equality, value.Int(5), value.Uint(huge))
	require.NoError(t, err)
	assert.Equal(t, value.TagUint, l.Tag)
	assert.Equal(t, uint64(5), l.Uint)
	assert.Equal(t, huge, r.Uint)
}

func TestCoercePairNegativeIntVsHugeUintIsRangeError(t *testing.T) {
	huge := uint64(1) << 63
	_, _, err := CoercePair("==", Equality, value.Int(-1), value.Uint(huge))
	require.Error(t, err)
	var rangeErr *errs.RangeError
	assert.True(t, errors.As(err, &rangeErr))
}

func TestCoercePairStringVsNumericParsesIntFirst(t *testing.T) {
	l, r, err := CoercePair("==", Equality, value.Str("42"), value.Int(42))
	require.NoError(t, err)
	assert.Equal(t, int64(42), l.Int)
	assert.Equal(t, int64(42), r.Int)
}

func TestCoercePairStringVsNumericFallsBackToFloat(t *testing.T) {
	l, r, err := CoercePair("==", Equality, value.Str("3.5"), value.Int(3))
	require.NoError(t, err)
	assert.Equal(t, value.TagReal, l.Tag)
	assert.Equal(t, 3.5, l.Real)
	assert.Equal(t, 3.0, r.Real)
}

func TestCoercePairStringVsNumericUnparsableIsTypeError(t *testing.T) {
	_, _, err := CoercePair("==", Equality, value.Str("abc"), value.Int(3))
	require.Error(t, err)
	var typeErr *errs.TypeError
	assert.True(t, errors.As(err, &typeErr))
}

func TestCoercePairBoolVsNumeric(t *testing.T) {
	l, r, err := CoercePair("==", Equality, value.Bool(true), value.Int(1))
	require.NoError(t, err)
	assert.Equal(t, int64(1), l.Int)
	assert.Equal(t, int64(1), r.Int)
}

func TestCoercePairStringVsBoolIsSentinel(t *testing.T) {
	_, _, err := CoercePair("==", Equality, value.Str("true"), value.Bool(true))
	assert.ErrorIs(t, err, ErrStringVsBool)
}

func TestCoercePairNullVsNullPassesThrough(t *testing.T) {
	l, r, err := CoercePair("==", Equality, value.Null(), value.Null())
	require.NoError(t, err)
	assert.True(t, l.IsNull())
	assert.True(t, r.IsNull())
}

func TestCoercePairNullVsScalarUnderEqualityIsMismatch(t *testing.T) {
	_, _, err := CoercePair("==", Equality, value.Null(), value.Int(0))
	require.Error(t, err)
}

func TestCoercePairNullVsScalarUnderRelationalCoercesToNeutral(t *testing.T) {
	l, r, err := CoercePair("<", Relational, value.Null(), value.Int(5))
	require.NoError(t, err)
	assert.Equal(t, int64(0), l.Int)
	assert.Equal(t, int64(5), r.Int)
}

func TestReduceSingletonUnwrapsNested(t *testing.T) {
	nested := value.Array(value.Array(value.Int(5)))
	reduced, ok := ReduceSingleton(nested)
	require.True(t, ok)
	assert.Equal(t, int64(5), reduced.Int)
}

func TestReduceSingletonEmptyArrayIsFalse(t *testing.T) {
	reduced, ok := ReduceSingleton(value.Array())
	require.True(t, ok)
	assert.Equal(t, value.TagBool, reduced.Tag)
	assert.False(t, reduced.Bool)
}

func TestReduceSingletonMultiElementArrayIsNotOk(t *testing.T) {
	_, ok := ReduceSingleton(value.Array(value.Int(1), value.Int(2)))
	assert.False(t, ok)
}
