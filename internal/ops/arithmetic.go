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

// arithmeticScalar reduces a single operand to Null or a numeric kind,
// the per-operand conversion every arithmetic fold starts from: null
// propagates, bool becomes 0/1, a singleton array unwraps, and a string
// parses as a number (add rejects a bare string operand outright,
// steering callers to Cat instead).
func arithmeticScalar(op string, e *value.Expr) (*value.Expr, error) {
	for e.IsArray() {
		reduced, ok := coerce.ReduceSingleton(e)
		if !ok {
			return nil, errs.NewTypeError(op, "array operand is not a valid number")
		}
		e = reduced
	}

	switch e.Tag {
	case value.TagNull:
		return value.Null(), nil
	case value.TagBool:
		if e.Bool {
			return value.Int(1), nil
		}
		return value.Int(0), nil
	case value.TagInt, value.TagUint, value.TagReal:
		return e, nil
	case value.TagStr:
		if op == "+" {
			return nil, errs.NewTypeError(op, "string operand %q is not a number; use cat to concatenate", e.Str)
		}
		n, err := parseNumericString(e.Str)
		if err != nil {
			return nil, errs.NewTypeError(op, "string %q is not a number", e.Str)
		}
		return n, nil
	default:
		return nil, errs.NewTypeError(op, "%s is not a number", e.Tag)
	}
}

// foldArithmetic left-folds args through pairwise, rejecting an empty
// operand list with a LogicError. Once either side of a fold step is
// null the accumulator stays Null; later operands are still converted,
// so a conversion error among them still surfaces.
func foldArithmetic(op string, args []*value.Expr, pairwise func(op string, l, r *value.Expr) (*value.Expr, error)) (*value.Expr, error) {
	if len(args) == 0 {
		return nil, errs.NewLogicError("operator %q needs at least one operand", op)
	}
	acc, err := arithmeticScalar(op, args[0])
	if err != nil {
		return nil, err
	}
	for _, next := range args[1:] {
		nv, err := arithmeticScalar(op, next)
		if err != nil {
			return nil, err
		}
		if acc.IsNull() || nv.IsNull() {
			acc = value.Null()
			continue
		}
		acc, err = pairwise(op, acc, nv)
		if err != nil {
			return nil, err
		}
	}
	return acc, nil
}

func numericPair(op string, l, r *value.Expr) (*value.Expr, *value.Expr, error) {
	return coerce.CoercePair(op, coerce.Arithmetic, l, r)
}

func addPair(op string, l, r *value.Expr) (*value.Expr, error) {
	cl, cr, err := numericPair(op, l, r)
	if err != nil {
		return nil, err
	}
	switch cl.Tag {
	case value.TagInt:
		return value.Int(cl.Int + cr.Int), nil
	case value.TagUint:
		return value.Uint(cl.Uint + cr.Uint), nil
	case value.TagReal:
		return value.Real(cl.Real + cr.Real), nil
	default:
		return nil, errs.NewTypeError(op, "cannot add %s", cl.Tag)
	}
}

func mulPair(op string, l, r *value.Expr) (*value.Expr, error) {
	cl, cr, err := numericPair(op, l, r)
	if err != nil {
		return nil, err
	}
	switch cl.Tag {
	case value.TagInt:
		return value.Int(cl.Int * cr.Int), nil
	case value.TagUint:
		return value.Uint(cl.Uint * cr.Uint), nil
	case value.TagReal:
		return value.Real(cl.Real * cr.Real), nil
	default:
		return nil, errs.NewTypeError(op, "cannot multiply %s", cl.Tag)
	}
}

func minPair(op string, l, r *value.Expr) (*value.Expr, error) {
	cl, cr, err := numericPair(op, l, r)
	if err != nil {
		return nil, err
	}
	switch cl.Tag {
	case value.TagInt:
		if cl.Int < cr.Int {
			return cl, nil
		}
		return cr, nil
	case value.TagUint:
		if cl.Uint < cr.Uint {
			return cl, nil
		}
		return cr, nil
	case value.TagReal:
		if cl.Real < cr.Real {
			return cl, nil
		}
		return cr, nil
	default:
		return nil, errs.NewTypeError(op, "cannot compare %s", cl.Tag)
	}
}

func maxPair(op string, l, r *value.Expr) (*value.Expr, error) {
	cl, cr, err := numericPair(op, l, r)
	if err != nil {
		return nil, err
	}
	switch cl.Tag {
	case value.TagInt:
		if cl.Int > cr.Int {
			return cl, nil
		}
		return cr, nil
	case value.TagUint:
		if cl.Uint > cr.Uint {
			return cl, nil
		}
		return cr, nil
	case value.TagReal:
		if cl.Real > cr.Real {
			return cl, nil
		}
		return cr, nil
	default:
		return nil, errs.NewTypeError(op, "cannot compare %s", cl.Tag)
	}
}

// Add implements the "+" n-ary fold.
func Add(args []*value.Expr) (*value.Expr, error) { return foldArithmetic("+", args, addPair) }

// Mul implements the "*" n-ary fold.
func Mul(args []*value.Expr) (*value.Expr, error) { return foldArithmetic("*", args, mulPair) }

// Min implements the "min" n-ary fold.
func Min(args []*value.Expr) (*value.Expr, error) { return foldArithmetic("min", args, minPair) }

// Max implements the "max" n-ary fold.
func Max(args []*value.Expr) (*value.Expr, error) { return foldArithmetic("max", args, maxPair) }

// Sub implements binary subtraction, or unary negation when called with
// a single operand.
func Sub(args []*value.Expr) (*value.Expr, error) {
	if len(args) == 1 {
		v, err := arithmeticScalar("-", args[0])
		if err != nil {
			return nil, err
		}
		return negate(v)
	}

	l, err := arithmeticScalar("-", args[0])
	if err != nil {
		return nil, err
	}
	r, err := arithmeticScalar("-", args[1])
	if err != nil {
		return nil, err
	}
	if l.IsNull() || r.IsNull() {
		return value.Null(), nil
	}

	cl, cr, err := numericPair("-", l, r)
	if err != nil {
		return nil, err
	}
	switch cl.Tag {
	case value.TagInt:
		return value.Int(cl.Int - cr.Int), nil
	case value.TagUint:
		if cl.Uint < cr.Uint {
			return value.Real(float64(cl.Uint) - float64(cr.Uint)), nil
		}
		return value.Uint(cl.Uint - cr.Uint), nil
	case value.TagReal:
		return value.Real(cl.Real - cr.Real), nil
	default:
		return nil, errs.NewTypeError("-", "cannot subtract %s", cl.Tag)
	}
}

func negate(v *value.Expr) (*value.Expr, error) {
	switch v.Tag {
	case value.TagNull:
		return value.Null(), nil
	case value.TagInt:
		return value.Int(-v.Int), nil
	case value.TagUint:
		return value.Int(-int64(v.Uint)), nil
	case value.TagReal:
		return value.Real(-v.Real), nil
	default:
		return nil, errs.NewTypeError("-", "cannot negate %s", v.Tag)
	}
}

// Div implements "/": integer division promotes to Real whenever the
// dividend is not an exact multiple of the divisor; division by zero
// yields Null rather than an error.
func Div(l, r *value.Expr) (*value.Expr, error) {
	ls, err := arithmeticScalar("/", l)
	if err != nil {
		return nil, err
	}
	rs, err := arithmeticScalar("/", r)
	if err != nil {
		return nil, err
	}
	if ls.IsNull() || rs.IsNull() {
		return value.Null(), nil
	}

	cl, cr, err := numericPair("/", ls, rs)
	if err != nil {
		return nil, err
	}

	switch cl.Tag {
	case value.TagReal:
		if cr.Real == 0 {
			return value.Null(), nil
		}
		return value.Real(cl.Real / cr.Real), nil
	case value.TagInt:
		if cr.Int == 0 {
			return value.Null(), nil
		}
		if cl.Int%cr.Int != 0 {
			return value.Real(float64(cl.Int) / float64(cr.Int)), nil
		}
		return value.Int(cl.Int / cr.Int), nil
	case value.TagUint:
		if cr.Uint == 0 {
			return value.Null(), nil
		}
		if cl.Uint%cr.Uint != 0 {
			return value.Real(float64(cl.Uint) / float64(cr.Uint)), nil
		}
		return value.Uint(cl.Uint / cr.Uint), nil
	default:
		return nil, errs.NewTypeError("/", "cannot divide %s", cl.Tag)
	}
}

// Mod implements "%": integer-only, divide-by-zero yields Null rather
// than an error.
func Mod(l, r *value.Expr) (*value.Expr, error) {
	ls, err := arithmeticScalar("%", l)
	if err != nil {
		return nil, err
	}
	rs, err := arithmeticScalar("%", r)
	if err != nil {
		return nil, err
	}
	if ls.IsNull() || rs.IsNull() {
		return value.Null(), nil
	}
	if ls.Tag == value.TagReal || rs.Tag == value.TagReal {
		return nil, errs.NewTypeError("%", "modulo does not accept real operands")
	}

	cl, cr, err := coerce.CoercePair("%", coerce.IntegerArithmetic, ls, rs)
	if err != nil {
		return nil, err
	}
	switch cl.Tag {
	case value.TagInt:
		if cr.Int == 0 {
			return value.Null(), nil
		}
		return value.Int(cl.Int % cr.Int), nil
	case value.TagUint:
		if cr.Uint == 0 {
			return value.Null(), nil
		}
		return value.Uint(cl.Uint % cr.Uint), nil
	default:
		return nil, errs.NewTypeError("%", "cannot take modulo of %s", cl.Tag)
	}
}

func parseNumericString(s string) (*value.Expr, error) {
	return value.FromNumberLiteral(s)
}
