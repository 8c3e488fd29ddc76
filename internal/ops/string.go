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
	"strings"

	"github.com/MetallData/json-logic/internal/errs"
	"github.com/MetallData/json-logic/internal/value"
)

// Cat coerces every operand to its canonical string form and
// concatenates them.
func Cat(args []*value.Expr) (*value.Expr, error) {
	var b strings.Builder
	for _, a := range args {
		s, err := value.CanonicalString(a)
		if err != nil {
			return nil, err
		}
		b.WriteString(s)
	}
	return value.Str(b.String()), nil
}

// Substr implements JsonLogic slice semantics: a negative offset counts
// from the end of the string, a negative length drops that many
// characters from the end rather than taking a count.
func Substr(args []*value.Expr) (*value.Expr, error) {
	if args[0].Tag != value.TagStr {
		return nil, errs.NewTypeError("substr", "first operand must be a string, got %s", args[0].Tag)
	}
	runes := []rune(args[0].Str)
	n := int64(len(runes))

	ofs := int64(0)
	if len(args) > 1 {
		v, err := intOperand("substr", args[1])
		if err != nil {
			return nil, err
		}
		ofs = v
	}
	if ofs < 0 {
		ofs = n + ofs
		if ofs < 0 {
			ofs = 0
		}
	}
	if ofs > n {
		ofs = n
	}

	cnt := n - ofs
	if len(args) > 2 {
		v, err := intOperand("substr", args[2])
		if err != nil {
			return nil, err
		}
		cnt = v
	}
	if cnt < 0 {
		cnt = (n - ofs) + cnt
		if cnt < 0 {
			cnt = 0
		}
	}
	if ofs+cnt > n {
		cnt = n - ofs
	}

	return value.Str(string(runes[ofs : ofs+cnt])), nil
}

func intOperand(op string, e *value.Expr) (int64, error) {
	switch e.Tag {
	case value.TagInt:
		return e.Int, nil
	case value.TagUint:
		return int64(e.Uint), nil
	case value.TagReal:
		return int64(e.Real), nil
	default:
		return 0, errs.NewTypeError(op, "expected a numeric operand, got %s", e.Tag)
	}
}

// In implements membership: a string searches for a substring, an array
// is scanned for an element loosely equal to the target.
func In(needle, haystack *value.Expr) (*value.Expr, error) {
	if haystack.IsArray() {
		for _, elem := range haystack.Children {
			if looseEqual(needle, elem) {
				return value.Bool(true), nil
			}
		}
		return value.Bool(false), nil
	}

	if haystack.Tag != value.TagStr {
		return nil, errs.NewTypeError("in", "second operand must be a string or array, got %s", haystack.Tag)
	}
	if needle.Tag != value.TagStr {
		return nil, errs.NewTypeError("in", "searching a string requires a string operand, got %s", needle.Tag)
	}
	return value.Bool(strings.Contains(haystack.Str, needle.Str)), nil
}
