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

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/MetallData/json-logic/internal/value"
)

func TestMergeFlattensOneLevel(t *testing.T) {
	res := Merge([]*value.Expr{
		value.Int(1),
		value.Array(value.Int(2), value.Int(3)),
		value.Int(4),
	})
	require := assert.New(t)
	require.Len(res.Children, 4)
	require.Equal(int64(1), res.Children[0].Int)
	require.Equal(int64(2), res.Children[1].Int)
	require.Equal(int64(3), res.Children[2].Int)
	require.Equal(int64(4), res.Children[3].Int)
}
