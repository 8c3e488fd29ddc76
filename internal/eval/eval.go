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
	"fmt"
	"time"

	"github.com/MetallData/json-logic/internal/errs"
	"github.com/MetallData/json-logic/internal/ops"
	"github.com/MetallData/json-logic/internal/value"
)

// Evaluator walks one expression tree against one accessor. It carries
// no mutable "current result" state (section 9's design note): every
// branch of eval returns its value directly.
type Evaluator struct {
	cfg      *Config
	accessor Accessor
	logger   Logger

	allowed map[string]bool
}

// New builds an Evaluator. cfg and logger may be nil, in which case
// DefaultConfig() and NopLogger apply.
func New(accessor Accessor, logger Logger, cfg *Config) (*Evaluator, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := ValidateConfig(cfg); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = NopLogger{}
	}

	e := &Evaluator{cfg: cfg, accessor: accessor, logger: logger}
	if len(cfg.AllowedOperators) > 0 {
		e.allowed = make(map[string]bool, len(cfg.AllowedOperators))
		for _, op := range cfg.AllowedOperators {
			e.allowed[op] = true
		}
	}
	return e, nil
}

// withAccessor returns a shallow copy of e bound to a different
// accessor, used by the sequence combinators to build a per-element
// sub-evaluator without re-validating configuration.
func (e *Evaluator) withAccessor(accessor Accessor) *Evaluator {
	sub := *e
	sub.accessor = accessor
	return &sub
}

// Apply evaluates root, enforcing the configured timeout if any. With no
// timeout configured, evaluation runs directly on the caller's
// goroutine.
func (e *Evaluator) Apply(root *value.Expr) (*value.Expr, error) {
	if e.cfg.Timeout <= 0 {
		return e.eval(root, 0)
	}

	resultChan := make(chan *value.Expr, 1)
	errorChan := make(chan error, 1)

	go func() {
		defer func() {
			if r := recover(); r != nil {
				errorChan <- fmt.Errorf("jsonlogic evaluation panicked: %v", r)
			}
		}()

		result, err := e.eval(root, 0)
		if err != nil {
			errorChan <- err
			return
		}
		resultChan <- result
	}()

	select {
	case result := <-resultChan:
		return result, nil
	case err := <-errorChan:
		return nil, err
	case <-time.After(e.cfg.Timeout):
		return nil, fmt.Errorf("jsonlogic evaluation timed out after %v", e.cfg.Timeout)
	}
}

func (e *Evaluator) checkAllowed(node *value.Expr) error {
	if e.allowed == nil {
		return nil
	}
	if !e.allowed[node.Tag.String()] {
		return errs.NewLogicError("operator %q is not in the allowed set", node.Tag)
	}
	return nil
}

func (e *Evaluator) evalChildren(node *value.Expr, depth int) ([]*value.Expr, error) {
	out := make([]*value.Expr, len(node.Children))
	for i, c := range node.Children {
		v, err := e.eval(c, depth+1)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// eval is the single recursive tree walk. Scalar and Object value nodes
// return themselves; an Array literal returns a new array of its
// evaluated elements; every operator tag has exactly one case.
func (e *Evaluator) eval(node *value.Expr, depth int) (*value.Expr, error) {
	if depth > e.cfg.MaxDepth {
		return nil, errs.NewRangeError("", "evaluation nesting exceeds max depth %d", e.cfg.MaxDepth)
	}

	switch node.Tag {
	case value.TagNull, value.TagBool, value.TagInt, value.TagUint, value.TagReal, value.TagStr, value.TagObject:
		return node, nil

	case value.TagArray:
		children, err := e.evalChildren(node, depth)
		if err != nil {
			return nil, err
		}
		return value.Array(children...), nil
	}

	if err := e.checkAllowed(node); err != nil {
		return nil, err
	}

	switch node.Tag {
	case value.TagEq, value.TagNe, value.TagStrictEq, value.TagStrictNe:
		return e.evalEquality(node, depth)

	case value.TagLt, value.TagGt, value.TagLe, value.TagGe:
		return e.evalRelational(node, depth)

	case value.TagNot, value.TagNotNot:
		return e.evalUnaryLogical(node, depth)

	case value.TagAnd:
		return e.evalShortCircuit(node, depth, false)
	case value.TagOr:
		return e.evalShortCircuit(node, depth, true)

	case value.TagIf:
		return e.evalIf(node, depth)

	case value.TagAdd, value.TagMul, value.TagMin, value.TagMax:
		return e.evalArithmeticFold(node, depth)

	case value.TagSub:
		children, err := e.evalChildren(node, depth)
		if err != nil {
			return nil, err
		}
		return ops.Sub(children)

	case value.TagDiv:
		l, r, err := e.evalPair(node, depth)
		if err != nil {
			return nil, err
		}
		return ops.Div(l, r)

	case value.TagMod:
		l, r, err := e.evalPair(node, depth)
		if err != nil {
			return nil, err
		}
		return ops.Mod(l, r)

	case value.TagCat:
		children, err := e.evalChildren(node, depth)
		if err != nil {
			return nil, err
		}
		return ops.Cat(children)

	case value.TagSubstr:
		children, err := e.evalChildren(node, depth)
		if err != nil {
			return nil, err
		}
		return ops.Substr(children)

	case value.TagMerge:
		children, err := e.evalChildren(node, depth)
		if err != nil {
			return nil, err
		}
		return ops.Merge(children), nil

	case value.TagIn:
		l, r, err := e.evalPair(node, depth)
		if err != nil {
			return nil, err
		}
		return ops.In(l, r)

	case value.TagMap, value.TagFilter:
		return e.evalMapFilter(node, depth)

	case value.TagReduce:
		return e.evalReduce(node, depth)

	case value.TagAll, value.TagNone, value.TagSome:
		return e.evalQuantifier(node, depth)

	case value.TagVar:
		return e.evalVar(node, depth)

	case value.TagMissing:
		return e.evalMissing(node, depth)

	case value.TagMissingSome:
		return e.evalMissingSome(node, depth)

	case value.TagLog:
		return e.evalLog(node, depth)

	case value.TagRegex:
		return e.evalRegex(node, depth)

	default:
		return nil, errs.NewLogicError("unreachable expression tag %s", node.Tag)
	}
}

func (e *Evaluator) evalPair(node *value.Expr, depth int) (*value.Expr, *value.Expr, error) {
	l, err := e.eval(node.Children[0], depth+1)
	if err != nil {
		return nil, nil, err
	}
	r, err := e.eval(node.Children[1], depth+1)
	if err != nil {
		return nil, nil, err
	}
	return l, r, nil
}

func (e *Evaluator) evalEquality(node *value.Expr, depth int) (*value.Expr, error) {
	l, r, err := e.evalPair(node, depth)
	if err != nil {
		return nil, err
	}
	switch node.Tag {
	case value.TagEq:
		return ops.Eq(l, r), nil
	case value.TagNe:
		return ops.Ne(l, r), nil
	case value.TagStrictEq:
		return ops.StrictEq(l, r), nil
	default:
		return ops.StrictNe(l, r), nil
	}
}

func (e *Evaluator) evalUnaryLogical(node *value.Expr, depth int) (*value.Expr, error) {
	v, err := e.eval(node.Children[0], depth+1)
	if err != nil {
		return nil, err
	}
	if node.Tag == value.TagNot {
		return value.Bool(!value.Truthy(v)), nil
	}
	return value.Bool(value.Truthy(v)), nil
}

func (e *Evaluator) evalArithmeticFold(node *value.Expr, depth int) (*value.Expr, error) {
	children, err := e.evalChildren(node, depth)
	if err != nil {
		return nil, err
	}
	switch node.Tag {
	case value.TagAdd:
		return ops.Add(children)
	case value.TagMul:
		return ops.Mul(children)
	case value.TagMin:
		return ops.Min(children)
	default:
		return ops.Max(children)
	}
}
