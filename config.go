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

package jsonlogic

import (
	"time"

	"github.com/MetallData/json-logic/internal/eval"
	"github.com/MetallData/json-logic/internal/translate"
)

// TranslateConfig bounds how permissive translation is: maximum rule
// nesting and which operator keys are accepted.
type TranslateConfig struct {
	MaxDepth         int
	AllowedOperators []string
}

func (c *TranslateConfig) toInternal() *translate.Config {
	if c == nil {
		return nil
	}
	return &translate.Config{MaxDepth: c.MaxDepth, AllowedOperators: c.AllowedOperators}
}

// EvalConfig bounds how evaluation behaves: recursion depth, a wall-clock
// timeout, strict variable resolution, an operator allowlist, and whether
// the "regex" extension operator is reachable.
type EvalConfig struct {
	MaxDepth             int
	Timeout              time.Duration
	StrictMode           bool
	AllowedOperators     []string
	EnableRegexExtension bool
	Logger               Logger
}

func (c *EvalConfig) toInternal() *eval.Config {
	if c == nil {
		return nil
	}
	return &eval.Config{
		MaxDepth:             c.MaxDepth,
		Timeout:              c.Timeout,
		StrictMode:           c.StrictMode,
		AllowedOperators:     c.AllowedOperators,
		EnableRegexExtension: c.EnableRegexExtension,
	}
}

func (c *EvalConfig) logger() eval.Logger {
	if c == nil || c.Logger == nil {
		return eval.NopLogger{}
	}
	return loggerAdapter{c.Logger}
}

// Config bundles a TranslateConfig and an EvalConfig for the single-shot
// ApplyJSON entry point.
type Config struct {
	Translate *TranslateConfig
	Eval      *EvalConfig
}

func (c *Config) translate() *TranslateConfig {
	if c == nil {
		return nil
	}
	return c.Translate
}

func (c *Config) eval() *EvalConfig {
	if c == nil {
		return nil
	}
	return c.Eval
}
