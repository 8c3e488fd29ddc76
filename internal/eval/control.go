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
	"github.com/MetallData/json-logic/internal/ops"
	"github.com/MetallData/json-logic/internal/value"
)

func relationalKey(tag value.Tag) string {
	switch tag {
	case value.TagLt:
		return "<"
	case value.TagGt:
		return ">"
	case value.TagLe:
		return "<="
	default:
		return ">="
	}
}

// evalRelational handles both the 2-arg and the chained 3-arg form. The
// 3-arg form evaluates the middle operand exactly once and rejects as
// soon as the first pair fails, never evaluating the third operand at
// all in that case.
func (e *Evaluator) evalRelational(node *value.Expr, depth int) (*value.Expr, error) {
	op := relationalKey(node.Tag)

	lo, err := e.eval(node.Children[0], depth+1)
	if err != nil {
		return nil, err
	}
	mid, err := e.eval(node.Children[1], depth+1)
	if err != nil {
		return nil, err
	}

	if len(node.Children) == 2 {
		return ops.Compare(op, lo, mid)
	}

	first, err := ops.Compare(op, lo, mid)
	if err != nil {
		return nil, err
	}
	if !value.Truthy(first) {
		return value.Bool(false), nil
	}

	hi, err := e.eval(node.Children[2], depth+1)
	if err != nil {
		return nil, err
	}
	second, err := ops.Compare(op, mid, hi)
	if err != nil {
		return nil, err
	}
	return value.Bool(value.Truthy(second)), nil
}

// evalShortCircuit implements And (stopAt=false) and Or (stopAt=true):
// the first operand whose truthiness matches stopAt is returned as-is;
// otherwise the last operand is returned. The result is always one of
// the operands, never a freshly built boolean.
func (e *Evaluator) evalShortCircuit(node *value.Expr, depth int, stopAt bool) (*value.Expr, error) {
	var last *value.Expr
	for _, child := range node.Children {
		v, err := e.eval(child, depth+1)
		if err != nil {
			return nil, err
		}
		last = v
		if value.Truthy(v) == stopAt {
			return v, nil
		}
	}
	return last, nil
}

// evalIf walks (cond, then) pairs left to right, with an optional
// trailing else. Zero operands evaluates to Null.
func (e *Evaluator) evalIf(node *value.Expr, depth int) (*value.Expr, error) {
	n := len(node.Children)
	if n == 0 {
		return value.Null(), nil
	}

	i := 0
	for i+1 < n {
		cond, err := e.eval(node.Children[i], depth+1)
		if err != nil {
			return nil, err
		}
		if value.Truthy(cond) {
			return e.eval(node.Children[i+1], depth+1)
		}
		i += 2
	}

	if i < n {
		return e.eval(node.Children[i], depth+1)
	}
	return value.Null(), nil
}
