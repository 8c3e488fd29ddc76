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
	"fmt"
	"os"

	"github.com/spf13/cobra"

	jsonlogic "github.com/MetallData/json-logic"
)

var validateRulePath string

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check that a rule file is well-formed without evaluating it",
	RunE: func(cmd *cobra.Command, args []string) error {
		raw, err := os.ReadFile(validateRulePath)
		if err != nil {
			return fmt.Errorf("reading rule file: %w", err)
		}

		logic, err := jsonlogic.CreateLogicJSON(raw, nil)
		if err != nil {
			fmt.Fprintf(os.Stderr, "invalid: %v\n", err)
			os.Exit(1)
		}

		fmt.Println("valid")
		fmt.Printf("var_names: %v\n", logic.VarNames())
		fmt.Printf("has_computed_vars: %v\n", logic.HasComputedVars())
		return nil
	},
}

func init() {
	validateCmd.Flags().StringVarP(&validateRulePath, "rule", "r", "", "path to a JSON file containing the rule (required)")
	_ = validateCmd.MarkFlagRequired("rule")
}
