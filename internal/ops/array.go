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

package ops

import "github.com/MetallData/json-logic/internal/value"

// Merge flattens one level: scalars become singleton arrays, arrays
// concatenate, in source order.
func Merge(args []*value.Expr) *value.Expr {
	var out []*value.Expr
	for _, a := range args {
		if a.IsArray() {
			out = append(out, a.Children...)
		} else {
			out = append(out, a)
		}
	}
	return value.Array(out...)
}
