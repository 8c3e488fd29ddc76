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

// Package ops holds the pure, already-evaluated-operand semantics of
// every JsonLogic operator: equality, relational, arithmetic, string and
// array combinators. Control-flow operators that need short-circuiting
// or sub-evaluators (And, Or, If, Map, Filter, Var, ...) live in
// internal/eval instead, which calls into this package for the leaf
// comparisons and folds.
package ops

import (
	"github.com/MetallData/json-logic/internal/coerce"
	"github.com/MetallData/json-logic/internal/value"
)

// Eq implements loose equality (spec 4.2/4.4). It never returns an
// error: any operand pair that cannot be coerced is simply unequal,
// matching reference JsonLogic's total equality operator.
func Eq(l, r *value.Expr) *value.Expr {
	return value.Bool(looseEqual(l, r))
}

// Ne is the negation of Eq.
func Ne(l, r *value.Expr) *value.Expr {
	return value.Bool(!looseEqual(l, r))
}

// StrictEq requires identical kinds with no coercion. Arrays are never
// strictly equal (even to themselves) since the spec treats array
// equality as an array-vs-scalar concern only; two nulls are strictly
// equal.
func StrictEq(l, r *value.Expr) *value.Expr {
	return value.Bool(strictEqual(l, r))
}

// StrictNe is the negation of StrictEq.
func StrictNe(l, r *value.Expr) *value.Expr {
	return value.Bool(!strictEqual(l, r))
}

func strictEqual(l, r *value.Expr) bool {
	if l.Tag != r.Tag {
		return false
	}
	switch l.Tag {
	case value.TagNull:
		return true
	case value.TagBool:
		return l.Bool == r.Bool
	case value.TagInt:
		return l.Int == r.Int
	case value.TagUint:
		return l.Uint == r.Uint
	case value.TagReal:
		return l.Real == r.Real
	case value.TagStr:
		return l.Str == r.Str
	case value.TagArray:
		return false
	default:
		return false
	}
}

func looseEqual(l, r *value.Expr) bool {
	if l.IsArray() && r.IsArray() {
		return false
	}

	if l.IsArray() != r.IsArray() {
		arr, scalar := l, r
		if r.IsArray() {
			arr, scalar = r, l
		}
		unwrapped, ok := coerce.ReduceSingleton(arr)
		if !ok {
			return false
		}
		return looseEqual(unwrapped, scalar)
	}

	if l.IsNull() && r.IsNull() {
		return true
	}
	if l.IsNull() != r.IsNull() {
		return false
	}

	cl, cr, err := coerce.CoercePair("==", coerce.Equality, l, r)
	if err != nil {
		// Any coercion failure (unparsable string, string-vs-bool, ...)
		// means the two operands are simply unequal.
		return false
	}

	switch cl.Tag {
	case value.TagBool:
		return cl.Bool == cr.Bool
	case value.TagInt:
		return cl.Int == cr.Int
	case value.TagUint:
		return cl.Uint == cr.Uint
	case value.TagReal:
		return cl.Real == cr.Real
	case value.TagStr:
		return cl.Str == cr.Str
	default:
		return false
	}
}
