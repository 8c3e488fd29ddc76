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

// Package translate turns a decoded JSON rule into an expression tree
// (value.Expr), interning static variable paths along the way. It never
// evaluates anything; a malformed rule fails translation with a
// LogicError rather than surfacing at evaluation time.
package translate

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/MetallData/json-logic/internal/errs"
	"github.com/MetallData/json-logic/internal/value"
)

// dispatch is the canonical JsonLogic operator key table (spec section 6).
// "regex" is the one non-canonical extension key; eval.Config's
// EnableRegexExtension decides at evaluation time whether it is actually
// reachable.
var dispatch = map[string]value.Tag{
	"==":           value.TagEq,
	"!=":           value.TagNe,
	"===":          value.TagStrictEq,
	"!==":          value.TagStrictNe,
	"<":            value.TagLt,
	">":            value.TagGt,
	"<=":           value.TagLe,
	">=":           value.TagGe,
	"!":            value.TagNot,
	"!!":           value.TagNotNot,
	"and":          value.TagAnd,
	"or":           value.TagOr,
	"if":           value.TagIf,
	"+":            value.TagAdd,
	"*":            value.TagMul,
	"min":          value.TagMin,
	"max":          value.TagMax,
	"-":            value.TagSub,
	"/":            value.TagDiv,
	"%":            value.TagMod,
	"map":          value.TagMap,
	"filter":       value.TagFilter,
	"all":          value.TagAll,
	"none":         value.TagNone,
	"some":         value.TagSome,
	"reduce":       value.TagReduce,
	"merge":        value.TagMerge,
	"cat":          value.TagCat,
	"substr":       value.TagSubstr,
	"in":           value.TagIn,
	"var":          value.TagVar,
	"missing":      value.TagMissing,
	"missing_some": value.TagMissingSome,
	"log":          value.TagLog,
	"regex":        value.TagRegex,
}

// Config bounds how permissive translation is, mirroring the
// allowlist/depth-limit shape used throughout this codebase's evaluation
// side.
type Config struct {
	// MaxDepth caps rule nesting; translating a rule deeper than this
	// fails with a RangeError instead of recursing unboundedly.
	MaxDepth int

	// AllowedOperators, when non-empty, restricts which operator keys
	// translation will accept. A rule using any other operator fails with
	// a LogicError. Nil/empty means every canonical operator is allowed.
	AllowedOperators []string
}

// DefaultConfig returns the permissive default: generous depth, every
// operator allowed.
func DefaultConfig() *Config {
	return &Config{
		MaxDepth:         256,
		AllowedOperators: nil,
	}
}

// ValidateConfig rejects nonsensical configuration before it is used.
func ValidateConfig(cfg *Config) error {
	if cfg == nil {
		return errs.NewLogicError("translate config is nil")
	}
	if cfg.MaxDepth <= 0 {
		return errs.NewLogicError("max depth must be positive, got %d", cfg.MaxDepth)
	}
	for _, op := range cfg.AllowedOperators {
		if _, ok := dispatch[op]; !ok {
			return errs.NewLogicError("allowed operator %q is not a recognized operator key", op)
		}
	}
	return nil
}

// Bundle is the output of translation: the expression tree plus the
// ordered list of statically-indexed variable names and whether any Var
// node could not be indexed.
type Bundle struct {
	Root            *value.Expr
	VarNames        []string
	HasComputedVars bool
}

type translator struct {
	cfg             *Config
	allowed         map[string]bool
	varIndex        map[string]int
	varNames        []string
	hasComputedVars bool
}

// CreateLogic translates a decoded JSON rule (as produced by
// json.Unmarshal, ideally via a Decoder with UseNumber so numeric
// literals keep their textual form) into a Bundle. cfg may be nil, in
// which case DefaultConfig() applies.
func CreateLogic(rule interface{}, cfg *Config) (*Bundle, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := ValidateConfig(cfg); err != nil {
		return nil, err
	}

	t := &translator{cfg: cfg, varIndex: make(map[string]int)}
	if len(cfg.AllowedOperators) > 0 {
		t.allowed = make(map[string]bool, len(cfg.AllowedOperators))
		for _, op := range cfg.AllowedOperators {
			t.allowed[op] = true
		}
	}

	root, err := t.translate(rule, 0)
	if err != nil {
		return nil, err
	}

	return &Bundle{
		Root:            root,
		VarNames:        t.varNames,
		HasComputedVars: t.hasComputedVars,
	}, nil
}

// CreateLogicJSON parses raw JSON text and translates it, preserving
// each numeric literal's textual form via json.Number.
func CreateLogicJSON(raw []byte, cfg *Config) (*Bundle, error) {
	dec := json.NewDecoder(strings.NewReader(string(raw)))
	dec.UseNumber()

	var rule interface{}
	if err := dec.Decode(&rule); err != nil {
		return nil, errs.NewLogicError("invalid JSON rule: %v", err)
	}
	return CreateLogic(rule, cfg)
}

func (t *translator) translate(raw interface{}, depth int) (*value.Expr, error) {
	if depth > t.cfg.MaxDepth {
		return nil, errs.NewRangeError("", "rule nesting exceeds max depth %d", t.cfg.MaxDepth)
	}

	switch v := raw.(type) {
	case nil:
		return value.Null(), nil
	case bool:
		return value.Bool(v), nil
	case string:
		return value.Str(v), nil
	case json.Number:
		return value.FromNumberLiteral(string(v))
	case float64:
		// Plain json.Unmarshal (no UseNumber) decodes all numbers as
		// float64; fall back to Go's own formatting of the literal so the
		// same int/uint/real classification still applies.
		return value.FromNumberLiteral(formatFloat(v))
	case []interface{}:
		children := make([]*value.Expr, len(v))
		for i, elem := range v {
			child, err := t.translate(elem, depth+1)
			if err != nil {
				return nil, err
			}
			children[i] = child
		}
		return value.Array(children...), nil
	case map[string]interface{}:
		return t.translateOperator(v, depth)
	default:
		return nil, errs.NewLogicError("unsupported JSON value of type %T", raw)
	}
}

func (t *translator) translateOperator(obj map[string]interface{}, depth int) (*value.Expr, error) {
	if len(obj) != 1 {
		return nil, errs.NewLogicError("operator object must have exactly one key, got %d", len(obj))
	}

	var key string
	var rawArgs interface{}
	for k, v := range obj {
		key, rawArgs = k, v
	}

	tag, ok := dispatch[key]
	if !ok {
		return nil, errs.NewLogicError("unknown operator %q", key)
	}
	if t.allowed != nil && !t.allowed[key] {
		return nil, errs.NewLogicError("operator %q is not in the allowed set", key)
	}

	var argList []interface{}
	if arr, isArray := rawArgs.([]interface{}); isArray {
		argList = arr
	} else {
		argList = []interface{}{rawArgs}
	}

	children := make([]*value.Expr, len(argList))
	for i, a := range argList {
		child, err := t.translate(a, depth+1)
		if err != nil {
			return nil, err
		}
		children[i] = child
	}

	node := value.Op(tag, children...)
	if tag == value.TagVar {
		t.indexVar(node)
	}
	return node, nil
}

// indexVar implements the variable-indexing rule from section 4.3: only a
// Var node whose sole operand translated to a plain string path is a
// candidate for static indexing. A two-operand var(path, default) or a
// var whose path is itself a computed expression is left COMPUTED.
func (t *translator) indexVar(node *value.Expr) {
	if len(node.Children) != 1 || node.Children[0].Tag != value.TagStr {
		return
	}

	path := node.Children[0].Str
	if path == "" {
		// "self" access: left as Computed and not interned, so it never
		// occupies a slot in the ordered variable list.
		return
	}

	if strings.ContainsAny(path, ".[") {
		t.hasComputedVars = true
		return
	}

	idx, seen := t.varIndex[path]
	if !seen {
		idx = len(t.varNames)
		t.varNames = append(t.varNames, path)
		t.varIndex[path] = idx
	}
	node.VarIdx = idx
}

func formatFloat(f float64) string {
	return fmt.Sprintf("%g", f)
}
