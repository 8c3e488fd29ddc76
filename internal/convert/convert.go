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

// Package convert provides the tree-to-tree Clone used when a lambda
// subtree outlives the evaluation that borrowed it, and the two
// tree-to-JSON renderings (a native Go value and a human-readable
// string) used by the public surface and by the Log operator.
package convert

import (
	"encoding/json"
	"fmt"
	"strings"

	deepcopy "github.com/barkimedes/go-deepcopy"

	"github.com/MetallData/json-logic/internal/errs"
	"github.com/MetallData/json-logic/internal/value"
)

// Clone deep-copies an expression tree, preserving variant structure and
// variable indices. The evaluator does not call it: the sequence
// combinators in internal/eval re-walk the lambda subtree in place, since
// Go's GC already makes the teacher's C++ ownership-transfer clone
// unnecessary for ordinary tree sharing.
func Clone(e *value.Expr) (*value.Expr, error) {
	if e == nil {
		return nil, nil
	}
	copied, err := deepcopy.Anything(e)
	if err != nil {
		return nil, errs.NewLogicError("clone failed: %v", err)
	}
	cloned, ok := copied.(*value.Expr)
	if !ok {
		return nil, errs.NewLogicError("clone produced unexpected type %T", copied)
	}
	return cloned, nil
}

// ToJSON renders a value-only tree (the output of evaluation, never a
// rule) as a plain Go value suitable for encoding/json: nil, bool,
// int64, uint64, float64, string, []interface{} or map[string]interface{}.
// Operator nodes cannot appear here since evaluation always resolves
// them to a value node first; ToJSON reports a LogicError if it
// encounters one anyway.
func ToJSON(e *value.Expr) (interface{}, error) {
	switch e.Tag {
	case value.TagNull:
		return nil, nil
	case value.TagBool:
		return e.Bool, nil
	case value.TagInt:
		return e.Int, nil
	case value.TagUint:
		return e.Uint, nil
	case value.TagReal:
		return e.Real, nil
	case value.TagStr:
		return e.Str, nil
	case value.TagArray:
		out := make([]interface{}, len(e.Children))
		for i, c := range e.Children {
			v, err := ToJSON(c)
			if err != nil {
				return nil, err
			}
			out[i] = v
		}
		return out, nil
	case value.TagObject:
		out := make(map[string]interface{}, len(e.Object))
		for k, c := range e.Object {
			v, err := ToJSON(c)
			if err != nil {
				return nil, err
			}
			out[k] = v
		}
		return out, nil
	default:
		return nil, errs.NewLogicError("%s is an operator node, not a value", e.Tag)
	}
}

// FromJSON builds a value-only tree from a plain Go value as produced by
// encoding/json (with json.Number for numeric literals, so the Int vs.
// Uint vs. Real classification still follows the literal's textual
// form), or from the more restricted set of types a caller constructs
// by hand (int, int64, float64). It is the inverse of ToJSON, used to
// turn a data document into something a Var accessor can index into.
func FromJSON(v interface{}) (*value.Expr, error) {
	switch t := v.(type) {
	case nil:
		return value.Null(), nil
	case bool:
		return value.Bool(t), nil
	case string:
		return value.Str(t), nil
	case json.Number:
		return value.FromNumberLiteral(t.String())
	case float64:
		return value.Real(t), nil
	case int:
		return value.Int(int64(t)), nil
	case int64:
		return value.Int(t), nil
	case uint64:
		return value.Uint(t), nil
	case []interface{}:
		children := make([]*value.Expr, len(t))
		for i, item := range t {
			c, err := FromJSON(item)
			if err != nil {
				return nil, err
			}
			children[i] = c
		}
		return value.Array(children...), nil
	case map[string]interface{}:
		obj := make(map[string]*value.Expr, len(t))
		for k, item := range t {
			c, err := FromJSON(item)
			if err != nil {
				return nil, err
			}
			obj[k] = c
		}
		return value.Object(obj), nil
	default:
		return nil, errs.NewTypeError("", "unsupported data value of type %T", v)
	}
}

// String renders e in a compact, human-readable form, used by the Log
// operator and by diagnostics. Unlike ToJSON it never errors: an
// operator node it cannot otherwise describe just prints its tag name.
func String(e *value.Expr) string {
	switch e.Tag {
	case value.TagNull:
		return "null"
	case value.TagBool, value.TagInt, value.TagUint, value.TagReal, value.TagStr:
		s, err := value.CanonicalString(e)
		if err != nil {
			return e.Tag.String()
		}
		if e.Tag == value.TagStr {
			return fmt.Sprintf("%q", s)
		}
		return s
	case value.TagArray:
		parts := make([]string, len(e.Children))
		for i, c := range e.Children {
			parts[i] = String(c)
		}
		return "[" + strings.Join(parts, ",") + "]"
	case value.TagObject:
		parts := make([]string, 0, len(e.Object))
		for k, v := range e.Object {
			parts = append(parts, fmt.Sprintf("%q:%s", k, String(v)))
		}
		return "{" + strings.Join(parts, ",") + "}"
	default:
		return e.Tag.String()
	}
}
