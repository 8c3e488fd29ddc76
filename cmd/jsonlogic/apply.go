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

package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	jsonlogic "github.com/MetallData/json-logic"
)

var (
	applyRulePath string
	applyDataPath string
	applyTimeout  time.Duration
	applyPretty   bool
)

var applyCmd = &cobra.Command{
	Use:   "apply",
	Short: "Apply a rule to a data document and print the result",
	RunE: func(cmd *cobra.Command, args []string) error {
		ruleJSON, err := os.ReadFile(applyRulePath)
		if err != nil {
			return fmt.Errorf("reading rule file: %w", err)
		}
		dataJSON, err := os.ReadFile(applyDataPath)
		if err != nil {
			return fmt.Errorf("reading data file: %w", err)
		}

		cfg := &jsonlogic.Config{
			Eval: &jsonlogic.EvalConfig{
				MaxDepth: 256,
				Timeout:  applyTimeout,
				Logger:   jsonlogic.NewLogrusLogger(log),
			},
		}
		result, err := jsonlogic.ApplyJSON(ruleJSON, dataJSON, cfg)
		if err != nil {
			return fmt.Errorf("applying rule: %w", err)
		}

		enc := json.NewEncoder(os.Stdout)
		if applyPretty {
			enc.SetIndent("", "  ")
		}
		return enc.Encode(result)
	},
}

func init() {
	applyCmd.Flags().StringVarP(&applyRulePath, "rule", "r", "", "path to a JSON file containing the rule (required)")
	applyCmd.Flags().StringVarP(&applyDataPath, "data", "d", "", "path to a JSON file containing the data document (required)")
	applyCmd.Flags().DurationVar(&applyTimeout, "timeout", 5*time.Second, "evaluation timeout")
	applyCmd.Flags().BoolVar(&applyPretty, "pretty", true, "pretty-print the result")
	_ = applyCmd.MarkFlagRequired("rule")
	_ = applyCmd.MarkFlagRequired("data")
}
