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
	"regexp"

	"github.com/MetallData/json-logic/internal/convert"
	"github.com/MetallData/json-logic/internal/errs"
	"github.com/MetallData/json-logic/internal/value"
)

func (e *Evaluator) evalVar(node *value.Expr, depth int) (*value.Expr, error) {
	path, err := e.eval(node.Children[0], depth+1)
	if err != nil {
		return nil, err
	}

	v, err := e.accessor(path, node.VarIdx)
	if err != nil {
		if e.cfg.StrictMode {
			return nil, err
		}
		if len(node.Children) > 1 {
			return e.eval(node.Children[1], depth+1)
		}
		return value.Null(), nil
	}
	return v, nil
}

func (e *Evaluator) missingPaths(paths []*value.Expr) []*value.Expr {
	missing := make([]*value.Expr, 0)
	for _, p := range paths {
		if _, err := e.accessor(p, value.Computed); err != nil {
			missing = append(missing, p)
		}
	}
	return missing
}

func (e *Evaluator) evalMissing(node *value.Expr, depth int) (*value.Expr, error) {
	if len(node.Children) == 0 {
		return value.Array(), nil
	}

	var paths []*value.Expr
	if len(node.Children) == 1 {
		first, err := e.eval(node.Children[0], depth+1)
		if err != nil {
			return nil, err
		}
		if first.IsArray() {
			paths = first.Children
		} else {
			paths = []*value.Expr{first}
		}
	} else {
		evaluated, err := e.evalChildren(node, depth)
		if err != nil {
			return nil, err
		}
		paths = evaluated
	}

	return value.Array(e.missingPaths(paths)...), nil
}

func (e *Evaluator) evalMissingSome(node *value.Expr, depth int) (*value.Expr, error) {
	minE, err := e.eval(node.Children[0], depth+1)
	if err != nil {
		return nil, err
	}
	minReq, err := asInt(minE)
	if err != nil {
		return nil, err
	}

	pathsE, err := e.eval(node.Children[1], depth+1)
	if err != nil {
		return nil, err
	}
	if !pathsE.IsArray() {
		return nil, errs.NewTypeError("missing_some", "second operand must be an array, got %s", pathsE.Tag)
	}

	missing := e.missingPaths(pathsE.Children)
	resolved := len(pathsE.Children) - len(missing)
	if int64(resolved) >= minReq {
		return value.Array(), nil
	}
	return value.Array(missing...), nil
}

func asInt(e *value.Expr) (int64, error) {
	switch e.Tag {
	case value.TagInt:
		return e.Int, nil
	case value.TagUint:
		return int64(e.Uint), nil
	case value.TagReal:
		return int64(e.Real), nil
	default:
		return 0, errs.NewTypeError("missing_some", "expected a numeric minimum, got %s", e.Tag)
	}
}

func (e *Evaluator) evalLog(node *value.Expr, depth int) (*value.Expr, error) {
	v, err := e.eval(node.Children[0], depth+1)
	if err != nil {
		return nil, err
	}
	e.logger.Log(convert.String(v))
	return v, nil
}

func (e *Evaluator) evalRegex(node *value.Expr, depth int) (*value.Expr, error) {
	if !e.cfg.EnableRegexExtension {
		return nil, errs.NewLogicError("the regex extension is disabled")
	}

	pattern, subject, err := e.evalPair(node, depth)
	if err != nil {
		return nil, err
	}
	if pattern.Tag != value.TagStr || subject.Tag != value.TagStr {
		return nil, errs.NewTypeError("regex", "both operands must be strings")
	}

	re, err := regexp.Compile(pattern.Str)
	if err != nil {
		return nil, errs.NewTypeError("regex", "invalid pattern %q: %v", pattern.Str, err)
	}
	return value.Bool(re.MatchString(subject.Str)), nil
}
