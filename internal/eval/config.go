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

// Package eval walks a translated expression tree against a variable
// accessor, implementing JsonLogic's short-circuit and chained-
// comparison semantics over the pure operators in internal/ops.
package eval

import (
	"time"

	"github.com/MetallData/json-logic/internal/errs"
)

// Config shapes how permissive and how bounded one Evaluator is.
type Config struct {
	// MaxDepth caps the recursion depth of one evaluation walk.
	MaxDepth int

	// Timeout bounds the wall-clock time of a single Apply call. Zero
	// disables the timeout and evaluates directly on the caller's
	// goroutine.
	Timeout time.Duration

	// StrictMode, when set, turns a Var accessor failure that would
	// normally be swallowed into a surfaced error. Missing and
	// MissingSome are unaffected: they always treat a failure as absence.
	// Most callers want this off, matching reference JsonLogic.
	StrictMode bool

	// AllowedOperators, when non-empty, restricts which operators this
	// evaluator will execute even if the rule was translated with a more
	// permissive translate.Config.
	AllowedOperators []string

	// EnableRegexExtension gates the non-canonical Regex operator.
	EnableRegexExtension bool
}

// DefaultConfig returns a generous, canonical-only configuration: ample
// depth, no timeout, the Regex extension disabled.
func DefaultConfig() *Config {
	return &Config{
		MaxDepth:             256,
		Timeout:              0,
		StrictMode:           false,
		AllowedOperators:     nil,
		EnableRegexExtension: false,
	}
}

// ValidateConfig rejects nonsensical configuration.
func ValidateConfig(cfg *Config) error {
	if cfg == nil {
		return errs.NewLogicError("evaluator config is nil")
	}
	if cfg.MaxDepth <= 0 {
		return errs.NewLogicError("max depth must be positive, got %d", cfg.MaxDepth)
	}
	if cfg.Timeout < 0 {
		return errs.NewLogicError("timeout must not be negative, got %v", cfg.Timeout)
	}
	return nil
}
