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
	"github.com/MetallData/json-logic/internal/coerce"
	"github.com/MetallData/json-logic/internal/errs"
	"github.com/MetallData/json-logic/internal/value"
)

// Compare evaluates one of the relational operators ("<", ">", "<=",
// ">=") against a pair of already-evaluated operands.
func Compare(op string, l, r *value.Expr) (*value.Expr, error) {
	// Null-vs-string gets a fixed answer rather than the generic
	// null-to-neutral coercion: Lt/Gt are always false, Le/Ge are true
	// only when the string side is itself empty.
	if str, ok := nullVsString(l, r); ok {
		switch op {
		case "<", ">":
			return value.Bool(false), nil
		default: // "<=", ">="
			return value.Bool(str.Str == ""), nil
		}
	}

	if l.IsArray() && r.IsArray() {
		return sequenceCompare(op, l, r)
	}

	if l.IsArray() != r.IsArray() {
		arr, scalar, arrIsLeft := l, r, true
		if r.IsArray() {
			arr, scalar, arrIsLeft = r, l, false
		}
		unwrapped, ok := coerce.ReduceSingleton(arr)
		if !ok {
			// Length >= 2: never compares true to a scalar.
			return value.Bool(false), nil
		}
		if arrIsLeft {
			return Compare(op, unwrapped, scalar)
		}
		return Compare(op, scalar, unwrapped)
	}

	// String-vs-bool never compares true under any relational operator.
	if (l.Tag == value.TagStr && r.Tag == value.TagBool) || (l.Tag == value.TagBool && r.Tag == value.TagStr) {
		return value.Bool(false), nil
	}

	cl, cr, err := coerce.CoercePair(op, coerce.Relational, l, r)
	if err != nil {
		return nil, err
	}

	switch cl.Tag {
	case value.TagNull:
		switch op {
		case "<", ">":
			return value.Bool(false), nil
		default:
			return value.Bool(true), nil
		}
	case value.TagBool:
		return value.Bool(compareOrdered(op, boolRank(cl.Bool), boolRank(cr.Bool))), nil
	case value.TagInt:
		return value.Bool(compareOrdered(op, cl.Int, cr.Int)), nil
	case value.TagUint:
		return value.Bool(compareOrdered(op, cl.Uint, cr.Uint)), nil
	case value.TagReal:
		return value.Bool(compareOrdered(op, cl.Real, cr.Real)), nil
	case value.TagStr:
		return value.Bool(compareOrdered(op, cl.Str, cr.Str)), nil
	default:
		return nil, errs.NewTypeError(op, "cannot compare %s", cl.Tag)
	}
}

func boolRank(b bool) int {
	if b {
		return 1
	}
	return 0
}

func nullVsString(l, r *value.Expr) (str *value.Expr, ok bool) {
	if l.IsNull() && r.Tag == value.TagStr {
		return r, true
	}
	if r.IsNull() && l.Tag == value.TagStr {
		return l, true
	}
	return nil, false
}

type ordered interface {
	~int | ~int64 | ~uint64 | ~float64 | ~string
}

func compareOrdered[T ordered](op string, a, b T) bool {
	switch op {
	case "<":
		return a < b
	case ">":
		return a > b
	case "<=":
		return a <= b
	case ">=":
		return a >= b
	default:
		return false
	}
}

func converse(op string) string {
	switch op {
	case "<":
		return ">"
	case ">":
		return "<"
	case "<=":
		return ">="
	case ">=":
		return "<="
	default:
		return op
	}
}

// sequenceCompare implements the array-vs-array relational rule: compare
// elements left to right; the first pair that is not a tie under op and
// its converse decides the whole comparison; if every compared pair
// ties, fall back to comparing lengths with the same operator.
func sequenceCompare(op string, l, r *value.Expr) (*value.Expr, error) {
	la, ra := l.Children, r.Children
	n := len(la)
	if len(ra) < n {
		n = len(ra)
	}

	conv := converse(op)
	for i := 0; i < n; i++ {
		forward, err := Compare(op, la[i], ra[i])
		if err != nil {
			return nil, err
		}
		backward, err := Compare(conv, la[i], ra[i])
		if err != nil {
			return nil, err
		}
		if value.Truthy(forward) != value.Truthy(backward) {
			return forward, nil
		}
	}

	return Compare(op, value.Int(int64(len(la))), value.Int(int64(len(ra))))
}
