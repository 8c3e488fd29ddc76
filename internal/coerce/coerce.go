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

// Package coerce implements the pairwise type-unification rules every
// binary operator goes through before it can compare or combine two
// values: identical-kind passthrough, numeric promotion, string/bool/null
// conversion, and the sentinel used to flag the string-vs-bool mismatch
// that equality and relational operators resolve differently.
package coerce

import (
	"errors"
	"math"
	"strconv"

	"github.com/MetallData/json-logic/internal/errs"
	"github.com/MetallData/json-logic/internal/value"
)

// Family narrows which coercions a pairwise operator accepts.
type Family uint8

const (
	// Equality covers Eq/Ne: null unifies only with null, bool-vs-string
	// is a hard mismatch rather than a coercion.
	Equality Family = iota
	// Relational covers Lt/Gt/Le/Ge: null is coerced to a neutral value
	// of the other operand's kind instead of short-circuiting.
	Relational
	// Arithmetic covers Add/Sub/Mul/Min/Max: Real is always an option.
	Arithmetic
	// IntegerArithmetic covers Mod: Real operands are rejected outright.
	IntegerArithmetic
)

// ErrStringVsBool signals rule 5: a string and a boolean are being
// compared and are unequal by definition. Eq/Ne resolve this directly to
// false/true; the relational family falls through to its own
// short-circuit handling (a string is never less/greater than a bool).
var ErrStringVsBool = errors.New("string and boolean are never equal")

// CoercePair unifies two already-scalar operands (Null, Bool, Int, Uint,
// Real or Str) onto a common representation, per spec rules 1-6. Array
// handling (rule 7) is the caller's responsibility — see ReduceSingleton.
func CoercePair(op string, family Family, l, r *value.Expr) (*value.Expr, *value.Expr, error) {
	// Rule 1: identical kinds pass through unchanged.
	if l.Tag == r.Tag {
		return l, r, nil
	}

	// Rule 6: null-vs-anything.
	if l.IsNull() || r.IsNull() {
		return coerceNull(op, family, l, r)
	}

	// Rule 5: string-vs-bool is unequal by definition, not a coercion.
	if (l.Tag == value.TagStr && r.Tag == value.TagBool) || (l.Tag == value.TagBool && r.Tag == value.TagStr) {
		return nil, nil, ErrStringVsBool
	}

	// Rule 4: bool-vs-numeric.
	if l.Tag == value.TagBool && isNumeric(r.Tag) {
		return boolAsNumeric(l.Bool, r), r, nil
	}
	if r.Tag == value.TagBool && isNumeric(l.Tag) {
		return l, boolAsNumeric(r.Bool, l), nil
	}

	// Rule 3: string-vs-numeric.
	if l.Tag == value.TagStr && isNumeric(r.Tag) {
		ln, err := parseNumeric(op, l.Str)
		if err != nil {
			return nil, nil, err
		}
		return CoercePair(op, family, ln, r)
	}
	if r.Tag == value.TagStr && isNumeric(l.Tag) {
		rn, err := parseNumeric(op, r.Str)
		if err != nil {
			return nil, nil, err
		}
		return CoercePair(op, family, l, rn)
	}

	// Rule 2: numeric promotion.
	if isNumeric(l.Tag) && isNumeric(r.Tag) {
		return promoteNumeric(op, l, r)
	}

	return nil, nil, errs.NewTypeError(op, "cannot unify %s and %s", l.Tag, r.Tag)
}

func isNumeric(t value.Tag) bool {
	return t == value.TagInt || t == value.TagUint || t == value.TagReal
}

func boolAsNumeric(b bool, other *value.Expr) *value.Expr {
	var one int64
	if b {
		one = 1
	}
	switch other.Tag {
	case value.TagUint:
		return value.Uint(uint64(one))
	case value.TagReal:
		return value.Real(float64(one))
	default:
		return value.Int(one)
	}
}

// parseNumeric implements rule 3: integer first, then double.
func parseNumeric(op, s string) (*value.Expr, error) {
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return value.Int(i), nil
	}
	if u, err := strconv.ParseUint(s, 10, 64); err == nil {
		return value.Uint(u), nil
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return value.Real(f), nil
	}
	return nil, errs.NewTypeError(op, "string %q is not numeric", s)
}

// promoteNumeric implements rule 2 for two distinct numeric kinds.
func promoteNumeric(op string, l, r *value.Expr) (*value.Expr, *value.Expr, error) {
	if l.Tag == value.TagReal || r.Tag == value.TagReal {
		return value.Real(asReal(l)), value.Real(asReal(r)), nil
	}

	// Remaining case: one Int, one Uint.
	var i *value.Expr
	var u *value.Expr
	if l.Tag == value.TagInt {
		i, u = l, r
	} else {
		i, u = r, l
	}

	unifiedI, unifiedU, err := unifyIntUint(op, i.Int, u.Uint)
	if err != nil {
		return nil, nil, err
	}
	if l.Tag == value.TagInt {
		return unifiedI, unifiedU, nil
	}
	return unifiedU, unifiedI, nil
}

func asReal(e *value.Expr) float64 {
	switch e.Tag {
	case value.TagInt:
		return float64(e.Int)
	case value.TagUint:
		return float64(e.Uint)
	case value.TagReal:
		return e.Real
	default:
		return 0
	}
}

// unifyIntUint resolves an Int/Uint pair onto a single shared kind,
// preferring Int (the more broadly usable of the two) whenever the
// unsigned value actually fits in an int64.
func unifyIntUint(op string, i int64, u uint64) (*value.Expr, *value.Expr, error) {
	if u <= math.MaxInt64 {
		return value.Int(i), value.Int(int64(u)), nil
	}
	if i >= 0 {
		return value.Uint(uint64(i)), value.Uint(u), nil
	}
	return nil, nil, errs.NewRangeError(op, "cannot unify negative %d with unsigned %d", i, u)
}

// coerceNull implements rule 6. Equality treats null as equal only to
// null; every other family coerces null to a neutral value on the other
// operand's kind (0, false, "") and retries.
func coerceNull(op string, family Family, l, r *value.Expr) (*value.Expr, *value.Expr, error) {
	if l.IsNull() && r.IsNull() {
		return l, r, nil
	}

	if family == Equality {
		// Exactly one side is null: never equal, and no further coercion
		// applies. Callers of CoercePair under Equality must special-case
		// this before anything numeric/string specific is attempted, so
		// surface it as a plain mismatch type error; ops/equality.go never
		// calls CoercePair in this situation — it checks IsNull() itself.
		return nil, nil, errs.NewTypeError(op, "null is only equal to null")
	}

	other := l
	if l.IsNull() {
		other = r
	}

	neutral := neutralFor(other.Tag)
	if neutral == nil {
		return nil, nil, errs.NewTypeError(op, "cannot coerce null against %s", other.Tag)
	}

	if l.IsNull() {
		return neutral, r, nil
	}
	return l, neutral, nil
}

func neutralFor(t value.Tag) *value.Expr {
	switch t {
	case value.TagInt:
		return value.Int(0)
	case value.TagUint:
		return value.Uint(0)
	case value.TagReal:
		return value.Real(0)
	case value.TagBool:
		return value.Bool(false)
	case value.TagStr:
		return value.Str("")
	default:
		return nil
	}
}

// ReduceSingleton implements rule 7 for one side of a binary comparison:
// an array of length 1 unwraps to its element (retried in a loop, since
// the element may itself be a singleton array); an empty array becomes
// Bool(false); an array of length >= 2 is reported
// via ok=false so the caller can apply the "never equal" / "always
// false" rule instead of attempting a pairwise coercion.
func ReduceSingleton(e *value.Expr) (reduced *value.Expr, ok bool) {
	for e.IsArray() {
		switch len(e.Children) {
		case 0:
			return value.Bool(false), true
		case 1:
			e = e.Children[0]
		default:
			return nil, false
		}
	}
	return e, true
}
