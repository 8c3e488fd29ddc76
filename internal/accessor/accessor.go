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

// Package accessor builds the default eval.Accessor used whenever a
// caller hands Apply a plain Go data document instead of its own
// accessor function: dotted paths walk object members, and a path
// segment that parses as a non-negative integer indexes into an array.
package accessor

import (
	"strconv"
	"strings"

	"github.com/MetallData/json-logic/internal/convert"
	"github.com/MetallData/json-logic/internal/errs"
	"github.com/MetallData/json-logic/internal/eval"
	"github.com/MetallData/json-logic/internal/value"
)

// New builds an eval.Accessor over a decoded data document (the shape
// produced by convert.FromJSON: nested map[string]*value.Expr /
// []*value.Expr / scalars). The empty path resolves to the document
// root, matching the reference accessor convention used throughout
// sequence-combinator sub-evaluation.
func New(root interface{}) (eval.Accessor, error) {
	rootExpr, err := convert.FromJSON(root)
	if err != nil {
		return nil, err
	}
	return func(path *value.Expr, _ int) (*value.Expr, error) {
		switch path.Tag {
		case value.TagStr:
			return resolve(rootExpr, path.Str)
		case value.TagInt:
			return indexArray(rootExpr, int(path.Int))
		case value.TagUint:
			return indexArray(rootExpr, int(path.Uint))
		default:
			return nil, errs.NewTypeError("var", "variable path must be a string or integer")
		}
	}, nil
}

// indexArray resolves a bare integer path (e.g. {"var": 1}) against an
// array root, per the default accessor's integer-path contract.
func indexArray(root *value.Expr, idx int) (*value.Expr, error) {
	if root.Tag != value.TagArray {
		return nil, errs.NewLogicError("no such index %d", idx)
	}
	if idx < 0 || idx >= len(root.Children) {
		return nil, errs.NewLogicError("no such index %d", idx)
	}
	return root.Children[idx], nil
}

func resolve(root *value.Expr, path string) (*value.Expr, error) {
	if path == "" {
		return root, nil
	}
	cur := root
	for _, part := range strings.Split(path, ".") {
		switch cur.Tag {
		case value.TagObject:
			v, ok := cur.Object[part]
			if !ok {
				return nil, errs.NewLogicError("no such path %q", path)
			}
			cur = v
		case value.TagArray:
			idx, err := strconv.Atoi(part)
			if err != nil || idx < 0 || idx >= len(cur.Children) {
				return nil, errs.NewLogicError("no such path %q", path)
			}
			cur = cur.Children[idx]
		default:
			return nil, errs.NewLogicError("no such path %q", path)
		}
	}
	return cur, nil
}
