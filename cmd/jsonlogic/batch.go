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
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/MetallData/json-logic/internal/engine"
	"github.com/MetallData/json-logic/internal/models"
	"github.com/MetallData/json-logic/internal/monitor"
	"github.com/MetallData/json-logic/internal/renderer"
)

var (
	batchDir    string
	batchFormat string
)

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Evaluate every rule document in a directory and report pass/fail",
	RunE: func(cmd *cobra.Command, args []string) error {
		docs, err := loadRuleDocuments(batchDir)
		if err != nil {
			return err
		}
		if len(docs) == 0 {
			return fmt.Errorf("no rule documents found under %s", batchDir)
		}

		mon := monitor.NewPerformanceMonitor()
		mon.Start()

		evaluator := engine.NewJSONLogicEvaluator()
		report := models.NewEvaluationReport()
		batchStart := time.Now()

		for _, doc := range docs {
			result := evaluateDocument(evaluator, doc)
			report.AddResult(result)
			log.WithField("rule", doc.Name).Debugf("evaluated: %s", result.Status)
		}

		report.ExecutionTime = time.Since(batchStart).Nanoseconds()
		mon.RecordRulesProcessed(len(docs))

		metrics := mon.Stop()
		report.PerformanceInfo = models.PerformanceInfo{
			RulesProcessed: len(docs),
			MemoryUsageMB:  metrics.PeakMemoryMB,
		}
		if secs := metrics.ExecutionTime.Seconds(); secs > 0 {
			report.PerformanceInfo.ProcessingRate = float64(len(docs)) / secs
		}

		rnd := renderer.NewReportRenderer()
		var out string
		switch batchFormat {
		case "json":
			out, err = rnd.RenderJSON(report)
		default:
			out, err = rnd.RenderHuman(report)
		}
		if err != nil {
			return fmt.Errorf("rendering report: %w", err)
		}
		fmt.Println(out)

		os.Exit(rnd.GetExitCode(report))
		return nil
	},
}

func init() {
	batchCmd.Flags().StringVar(&batchDir, "dir", "", "directory of rule documents to evaluate (required)")
	batchCmd.Flags().StringVar(&batchFormat, "format", "human", "output format: human or json")
	_ = batchCmd.MarkFlagRequired("dir")
}

func loadRuleDocuments(dir string) ([]*models.RuleDocument, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading directory %s: %w", dir, err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(e.Name()))
		if ext == ".json" || ext == ".yaml" || ext == ".yml" {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	docs := make([]*models.RuleDocument, 0, len(names))
	for _, name := range names {
		path := filepath.Join(dir, name)
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}

		doc := &models.RuleDocument{SourceFile: path}
		if err := yaml.Unmarshal(raw, doc); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
		if doc.Name == "" {
			doc.Name = strings.TrimSuffix(name, filepath.Ext(name))
		}
		if err := doc.Validate(); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

func evaluateDocument(evaluator *engine.JSONLogicEvaluator, doc *models.RuleDocument) models.EvaluationResult {
	start := time.Now()
	assertion, err := evaluator.EvaluateAssertion(doc.Rule, doc.Data)
	elapsed := time.Since(start).Nanoseconds()

	if err != nil {
		return models.EvaluationResult{
			RuleName:      doc.Name,
			Status:        models.StatusFailed,
			ExecutionTime: elapsed,
			ErrorMessage:  err.Error(),
		}
	}
	if !assertion.Passed {
		return models.EvaluationResult{
			RuleName:      doc.Name,
			Status:        models.StatusFailed,
			Output:        assertion.Actual,
			Truthy:        assertion.Passed,
			ExecutionTime: elapsed,
			ErrorMessage:  assertion.Message,
		}
	}
	return models.EvaluationResult{
		RuleName:      doc.Name,
		Status:        models.StatusSuccess,
		Output:        assertion.Actual,
		Truthy:        assertion.Passed,
		ExecutionTime: elapsed,
	}
}
