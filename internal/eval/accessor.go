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

import "github.com/MetallData/json-logic/internal/value"

// Accessor resolves a Var path against whatever data a caller bound the
// evaluator to. idx is the translator's pre-assigned index for a
// statically known path, or value.Computed otherwise; an accessor backed
// by an indexed lookup table can use idx to skip parsing path entirely.
// Accessor must return a non-nil error when the path is absent; Var and
// Missing both treat that as "no value" rather than propagating it.
type Accessor func(path *value.Expr, idx int) (*value.Expr, error)

// Logger is the Log operator's sink.
type Logger interface {
	Log(s string)
}

// NopLogger discards everything written to it; the zero value is ready
// to use.
type NopLogger struct{}

func (NopLogger) Log(string) {}
