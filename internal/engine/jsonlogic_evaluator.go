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

// Package engine provides an assertion-style facade over the
// translate/eval packages: given a rule and a data context it reports
// a pass/fail AssertionResult instead of a raw value, which is what a
// batch rule runner wants to log and summarize.
package engine

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/MetallData/json-logic/internal/accessor"
	"github.com/MetallData/json-logic/internal/convert"
	"github.com/MetallData/json-logic/internal/eval"
	"github.com/MetallData/json-logic/internal/translate"
	"github.com/MetallData/json-logic/internal/value"
)

// JSONLogicConfig holds configuration for JSONLogic evaluation.
type JSONLogicConfig struct {
	MaxDepth         int           // Maximum recursion depth for expressions
	Timeout          time.Duration // Timeout for individual expression evaluation
	StrictMode       bool          // Strict mode: unresolved var paths are errors, not null
	AllowedOperators []string      // List of allowed JSONLogic operators (empty = all allowed)
	EnableRegex      bool          // Enable the "regex" extension operator
}

// DefaultJSONLogicConfig returns a default configuration for JSONLogic evaluation.
func DefaultJSONLogicConfig() *JSONLogicConfig {
	return &JSONLogicConfig{
		MaxDepth:         256,
		Timeout:          5 * time.Second,
		StrictMode:       false,
		AllowedOperators: nil,
		EnableRegex:      false,
	}
}

// ValidateJSONLogicConfig validates the JSONLogic configuration.
func ValidateJSONLogicConfig(config *JSONLogicConfig) error {
	if config.MaxDepth <= 0 {
		return fmt.Errorf("MaxDepth must be positive, got %d", config.MaxDepth)
	}
	if config.Timeout < 0 {
		return fmt.Errorf("Timeout cannot be negative, got %s", config.Timeout)
	}
	return nil
}

// AssertionResult represents the result of evaluating an assertion.
type AssertionResult struct {
	Passed     bool
	Expected   interface{}
	Actual     interface{}
	Expression string
	Message    string
	Error      error
}

// JSONLogicEvaluator evaluates JSON-encoded rules against a data
// context and reports whether the result was truthy.
type JSONLogicEvaluator struct {
	config *JSONLogicConfig
}

// NewJSONLogicEvaluator creates a new JSONLogic evaluator with default configuration.
func NewJSONLogicEvaluator() *JSONLogicEvaluator {
	return NewJSONLogicEvaluatorWithConfig(DefaultJSONLogicConfig())
}

// NewJSONLogicEvaluatorWithConfig creates a new JSONLogic evaluator with custom configuration.
func NewJSONLogicEvaluatorWithConfig(config *JSONLogicConfig) *JSONLogicEvaluator {
	return &JSONLogicEvaluator{config: config}
}

// GetConfig returns the current configuration.
func (evaluator *JSONLogicEvaluator) GetConfig() *JSONLogicConfig {
	return evaluator.config
}

// SetConfig updates the configuration.
func (evaluator *JSONLogicEvaluator) SetConfig(config *JSONLogicConfig) {
	evaluator.config = config
}

// EvaluateAssertion translates and evaluates a rule against the given
// data, returning a pass/fail AssertionResult rather than propagating
// a translate/eval error directly: a failure to evaluate is itself a
// failed assertion, with the error recorded on the result.
func (evaluator *JSONLogicEvaluator) EvaluateAssertion(rule interface{}, data interface{}) (*AssertionResult, error) {
	if rule == nil {
		return &AssertionResult{
			Passed:     true,
			Expected:   true,
			Actual:     true,
			Expression: "null",
			Message:    "empty rule always passes",
		}, nil
	}

	exprJSON, _ := json.Marshal(rule)

	bundle, err := translate.CreateLogic(rule, &translate.Config{
		MaxDepth:         evaluator.config.MaxDepth,
		AllowedOperators: evaluator.config.AllowedOperators,
	})
	if err != nil {
		return &AssertionResult{
			Passed:     false,
			Expected:   true,
			Actual:     nil,
			Expression: string(exprJSON),
			Message:    fmt.Sprintf("rule translation failed: %v", err),
			Error:      err,
		}, nil
	}

	acc, err := accessor.New(data)
	if err != nil {
		return nil, fmt.Errorf("failed to build evaluation data: %w", err)
	}

	evaluator2, err := eval.New(acc, eval.NopLogger{}, &eval.Config{
		MaxDepth:             evaluator.config.MaxDepth,
		Timeout:              evaluator.config.Timeout,
		StrictMode:           evaluator.config.StrictMode,
		AllowedOperators:     evaluator.config.AllowedOperators,
		EnableRegexExtension: evaluator.config.EnableRegex,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build evaluator: %w", err)
	}

	result, err := evaluator2.Apply(bundle.Root)
	if err != nil {
		return &AssertionResult{
			Passed:     false,
			Expected:   true,
			Actual:     nil,
			Expression: string(exprJSON),
			Message:    fmt.Sprintf("rule evaluation failed: %v", err),
			Error:      err,
		}, nil
	}

	actual, err := convert.ToJSON(result)
	if err != nil {
		actual = convert.String(result)
	}
	passed := value.Truthy(result)

	return &AssertionResult{
		Passed:     passed,
		Expected:   true,
		Actual:     actual,
		Expression: string(exprJSON),
		Message:    buildResultMessage(passed, string(exprJSON), actual),
	}, nil
}

// ValidateAssertion checks that a rule is well-formed and within the
// configured operator allowlist and depth limit, without evaluating it.
func (evaluator *JSONLogicEvaluator) ValidateAssertion(rule interface{}) error {
	if rule == nil {
		return fmt.Errorf("rule cannot be nil")
	}
	_, err := translate.CreateLogic(rule, &translate.Config{
		MaxDepth:         evaluator.config.MaxDepth,
		AllowedOperators: evaluator.config.AllowedOperators,
	})
	return err
}

func buildResultMessage(passed bool, expression string, actual interface{}) string {
	if passed {
		return fmt.Sprintf("rule %s evaluated to %v", expression, actual)
	}
	return fmt.Sprintf("rule %s evaluated to %v (expected truthy value)", expression, actual)
}


