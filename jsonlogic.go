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

// Package jsonlogic translates and evaluates JsonLogic rules: JSON-encoded
// operator trees evaluated against a data document. A rule is translated
// once into a Logic value and can then be applied against many data
// documents without re-parsing it.
package jsonlogic

import (
	"bytes"
	"encoding/json"

	"github.com/MetallData/json-logic/internal/accessor"
	"github.com/MetallData/json-logic/internal/convert"
	"github.com/MetallData/json-logic/internal/errs"
	"github.com/MetallData/json-logic/internal/eval"
	"github.com/MetallData/json-logic/internal/translate"
	"github.com/MetallData/json-logic/internal/value"
)

// Logic is a translated rule, ready to be evaluated against any number
// of data documents via Apply.
type Logic struct {
	bundle *translate.Bundle
}

// HasComputedVars reports whether any Var node in the rule has a literal
// path containing '.' or '['. A var with a default operand, or whose
// path is itself an expression, is left unindexed without setting this
// flag.
func (l *Logic) HasComputedVars() bool {
	return l.bundle.HasComputedVars
}

// VarNames returns the statically-indexed variable names referenced by
// the rule, in assignment order.
func (l *Logic) VarNames() []string {
	return l.bundle.VarNames
}

// CreateLogic translates a decoded rule value (the result of
// json.Unmarshal into interface{}, or any equivalent map/slice/scalar
// tree) into a Logic ready for repeated evaluation. cfg may be nil, in
// which case a permissive default (generous depth, every operator
// allowed) is used.
func CreateLogic(rule interface{}, cfg *TranslateConfig) (*Logic, error) {
	bundle, err := translate.CreateLogic(rule, cfg.toInternal())
	if err != nil {
		return nil, err
	}
	return &Logic{bundle: bundle}, nil
}

// CreateLogicJSON parses and translates a rule from raw JSON text,
// decoding numbers with json.Number so a literal's textual form (signed,
// unsigned, or fractional/exponent) decides its coercion behavior rather
// than its magnitude.
func CreateLogicJSON(raw []byte, cfg *TranslateConfig) (*Logic, error) {
	bundle, err := translate.CreateLogicJSON(raw, cfg.toInternal())
	if err != nil {
		return nil, err
	}
	return &Logic{bundle: bundle}, nil
}

// Apply evaluates a translated Logic against a data document (any
// map/slice/scalar tree, typically the result of json.Unmarshal into
// interface{}) and returns the result as a plain Go value. cfg may be
// nil for the permissive default.
func Apply(logic *Logic, data interface{}, cfg *EvalConfig) (interface{}, error) {
	acc, err := accessor.New(data)
	if err != nil {
		return nil, err
	}
	return applyWithAccessor(logic, acc, cfg)
}

// ApplyWithAccessor evaluates a translated Logic using a caller-supplied
// DataAccessor instead of a plain Go value, for callers that want to
// resolve variables lazily or from a non-JSON source.
func ApplyWithAccessor(logic *Logic, da DataAccessor, cfg *EvalConfig) (interface{}, error) {
	acc := func(path *value.Expr, idx int) (*value.Expr, error) {
		p, err := convert.ToJSON(path)
		if err != nil {
			return nil, err
		}
		v, err := da(p, idx)
		if err != nil {
			return nil, err
		}
		return convert.FromJSON(v)
	}
	return applyWithAccessor(logic, acc, cfg)
}

func applyWithAccessor(logic *Logic, acc eval.Accessor, cfg *EvalConfig) (interface{}, error) {
	if logic == nil {
		return nil, errs.NewLogicError("logic is nil")
	}
	evaluator, err := eval.New(acc, cfg.logger(), cfg.toInternal())
	if err != nil {
		return nil, err
	}
	result, err := evaluator.Apply(logic.bundle.Root)
	if err != nil {
		return nil, err
	}
	return convert.ToJSON(result)
}

// ApplyJSON is the single-shot convenience form: it translates ruleJSON,
// evaluates it against dataJSON, and returns the result as a plain Go
// value. Prefer CreateLogicJSON+Apply when the same rule is evaluated
// against many data documents, to avoid re-translating it each time.
func ApplyJSON(ruleJSON, dataJSON []byte, cfg *Config) (interface{}, error) {
	logic, err := CreateLogicJSON(ruleJSON, cfg.translate())
	if err != nil {
		return nil, err
	}

	dec := json.NewDecoder(bytes.NewReader(dataJSON))
	dec.UseNumber()
	var data interface{}
	if err := dec.Decode(&data); err != nil {
		return nil, errs.NewLogicError("invalid data JSON: %v", err)
	}

	return Apply(logic, data, cfg.eval())
}

// DataAccessor resolves a Var's path operand against whatever data
// source a caller chooses to back it with. It mirrors eval.Accessor
// without exposing internal/eval to callers of this package.
type DataAccessor func(path interface{}, staticIndex int) (interface{}, error)

// Truthy implements JsonLogic's boolean coercion over a plain Go value
// of the kind Apply/ApplyJSON return: nil is false, numeric is non-zero,
// string/array/object is non-empty, bool is itself.
func Truthy(v interface{}) bool {
	expr, err := convert.FromJSON(v)
	if err != nil {
		return v != nil
	}
	return value.Truthy(expr)
}

// Falsy is the negation of Truthy.
func Falsy(v interface{}) bool {
	return !Truthy(v)
}
