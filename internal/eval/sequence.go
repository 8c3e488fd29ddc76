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
	"github.com/MetallData/json-logic/internal/errs"
	"github.com/MetallData/json-logic/internal/value"
)

// elementAccessor builds the per-element accessor used while a
// sequence combinator walks its lambda over one array element (section
// 4.5): "" resolves to the current element (or, for Reduce, delegates
// to the outer accessor), "current"/"accumulator" only resolve for
// Reduce, an object member path looks inside the element, and any other
// path resolves to Null without delegating outward.
func (e *Evaluator) elementAccessor(elem *value.Expr, isReduce bool, accumulator *value.Expr) Accessor {
	outer := e.accessor
	return func(path *value.Expr, idx int) (*value.Expr, error) {
		if path.Tag != value.TagStr {
			return value.Null(), nil
		}
		switch path.Str {
		case "":
			if isReduce {
				return outer(path, idx)
			}
			return elem, nil
		case "current":
			if isReduce {
				return elem, nil
			}
		case "accumulator":
			if isReduce {
				return accumulator, nil
			}
		}

		if elem.Tag == value.TagObject {
			if v, ok := elem.Object[path.Str]; ok {
				return v, nil
			}
			return nil, errs.NewLogicError("no member %q", path.Str)
		}
		return value.Null(), nil
	}
}

func (e *Evaluator) evalArraySource(node *value.Expr, depth int) (*value.Expr, error) {
	src, err := e.eval(node.Children[0], depth+1)
	if err != nil {
		return nil, err
	}
	if !src.IsArray() {
		return nil, errs.NewTypeError(node.Tag.String(), "source must evaluate to an array, got %s", src.Tag)
	}
	return src, nil
}

func (e *Evaluator) evalMapFilter(node *value.Expr, depth int) (*value.Expr, error) {
	src, err := e.evalArraySource(node, depth)
	if err != nil {
		return nil, err
	}
	lambda := node.Children[1]

	results := make([]*value.Expr, 0, len(src.Children))
	for _, elem := range src.Children {
		sub := e.withAccessor(e.elementAccessor(elem, false, nil))
		v, err := sub.eval(lambda, depth+1)
		if err != nil {
			return nil, err
		}
		if node.Tag == value.TagMap {
			results = append(results, v)
		} else if value.Truthy(v) {
			results = append(results, elem)
		}
	}
	return value.Array(results...), nil
}

func (e *Evaluator) evalReduce(node *value.Expr, depth int) (*value.Expr, error) {
	src, err := e.evalArraySource(node, depth)
	if err != nil {
		return nil, err
	}
	lambda := node.Children[1]

	accumulator, err := e.eval(node.Children[2], depth+1)
	if err != nil {
		return nil, err
	}

	for _, elem := range src.Children {
		sub := e.withAccessor(e.elementAccessor(elem, true, accumulator))
		accumulator, err = sub.eval(lambda, depth+1)
		if err != nil {
			return nil, err
		}
	}
	return accumulator, nil
}

func (e *Evaluator) evalQuantifier(node *value.Expr, depth int) (*value.Expr, error) {
	src, err := e.evalArraySource(node, depth)
	if err != nil {
		return nil, err
	}
	lambda := node.Children[1]

	switch node.Tag {
	case value.TagAll:
		for _, elem := range src.Children {
			sub := e.withAccessor(e.elementAccessor(elem, false, nil))
			v, err := sub.eval(lambda, depth+1)
			if err != nil {
				return nil, err
			}
			if !value.Truthy(v) {
				return value.Bool(false), nil
			}
		}
		return value.Bool(true), nil

	case value.TagNone:
		for _, elem := range src.Children {
			sub := e.withAccessor(e.elementAccessor(elem, false, nil))
			v, err := sub.eval(lambda, depth+1)
			if err != nil {
				return nil, err
			}
			if value.Truthy(v) {
				return value.Bool(false), nil
			}
		}
		return value.Bool(true), nil

	default: // TagSome
		for _, elem := range src.Children {
			sub := e.withAccessor(e.elementAccessor(elem, false, nil))
			v, err := sub.eval(lambda, depth+1)
			if err != nil {
				return nil, err
			}
			if value.Truthy(v) {
				return value.Bool(true), nil
			}
		}
		return value.Bool(false), nil
	}
}
