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

package models

import (
	"encoding/json"
	"fmt"
)

// RuleDocument represents a single named rule loaded from a rule file,
// together with the data it should be evaluated against.
type RuleDocument struct {
	Name       string      `json:"name" yaml:"name"`
	Rule       interface{} `json:"rule" yaml:"rule"`
	Data       interface{} `json:"data,omitempty" yaml:"data,omitempty"`
	SourceFile string      `json:"sourceFile" yaml:"-"`
}

// Validate checks that the RuleDocument has the fields required to be
// evaluated.
func (d *RuleDocument) Validate() error {
	if d.Name == "" {
		return fmt.Errorf("name is required")
	}
	if d.Rule == nil {
		return fmt.Errorf("rule is required")
	}
	return nil
}

// ToJSON serializes the RuleDocument to JSON.
func (d *RuleDocument) ToJSON() ([]byte, error) {
	return json.Marshal(d)
}

// FromJSON deserializes JSON data into a RuleDocument.
func (d *RuleDocument) FromJSON(data []byte) error {
	return json.Unmarshal(data, d)
}

// String returns a string representation of the RuleDocument.
func (d *RuleDocument) String() string {
	return fmt.Sprintf("RuleDocument{Name: %s, SourceFile: %s}", d.Name, d.SourceFile)
}

// EvaluationStatus represents the outcome of evaluating a single RuleDocument.
type EvaluationStatus string

const (
	StatusSuccess EvaluationStatus = "SUCCESS"
	StatusFailed  EvaluationStatus = "FAILED"
	StatusSkipped EvaluationStatus = "SKIPPED"
)

// String returns a string representation of the EvaluationStatus.
func (s EvaluationStatus) String() string {
	return string(s)
}

// IsValid reports whether s is one of the known statuses.
func (s EvaluationStatus) IsValid() bool {
	switch s {
	case StatusSuccess, StatusFailed, StatusSkipped:
		return true
	default:
		return false
	}
}

// EvaluationResult is the outcome of evaluating one RuleDocument against
// its data: the rendered JSON result plus whether it was truthy, or the
// error that aborted evaluation.
type EvaluationResult struct {
	RuleName      string           `json:"ruleName"`
	Status        EvaluationStatus `json:"status"`
	Output        interface{}      `json:"output,omitempty"`
	Truthy        bool             `json:"truthy"`
	ExecutionTime int64            `json:"executionTimeNs"`
	ErrorMessage  string           `json:"errorMessage,omitempty"`
}

// NewEvaluationResult creates a skipped result for the given rule name,
// to be filled in as evaluation proceeds.
func NewEvaluationResult(ruleName string) *EvaluationResult {
	return &EvaluationResult{
		RuleName: ruleName,
		Status:   StatusSkipped,
	}
}

// EvaluationSummary provides aggregate statistics over a batch of
// EvaluationResults.
type EvaluationSummary struct {
	Total                int     `json:"total"`
	Success              int     `json:"success"`
	Failed               int     `json:"failed"`
	Skipped              int     `json:"skipped"`
	SuccessRate          float64 `json:"successRate"`
	FailureRate          float64 `json:"failureRate"`
	AverageExecutionTime int64   `json:"averageExecutionTimeNs"`
}

// EvaluationReport is the complete result of evaluating a batch of rule
// documents, along with performance data collected while doing so.
type EvaluationReport struct {
	Summary         EvaluationSummary  `json:"summary"`
	Results         []EvaluationResult `json:"results"`
	ExecutionTime   int64              `json:"executionTimeNs"`
	PerformanceInfo PerformanceInfo    `json:"performanceInfo"`
}

// PerformanceInfo carries the performance-monitoring data collected
// while a batch of rules was evaluated.
type PerformanceInfo struct {
	RulesProcessed int     `json:"rulesProcessed"`
	MemoryUsageMB  float64 `json:"memoryUsageMB"`
	ProcessingRate float64 `json:"processingRate"`
}

// NewEvaluationReport creates a new empty evaluation report.
func NewEvaluationReport() *EvaluationReport {
	return &EvaluationReport{
		Results: []EvaluationResult{},
	}
}

// AddResult adds an evaluation result to the report and refreshes its
// summary statistics.
func (r *EvaluationReport) AddResult(result EvaluationResult) {
	r.Results = append(r.Results, result)
	r.updateSummary()
}

func (r *EvaluationReport) updateSummary() {
	total := len(r.Results)
	success, failed, skipped := 0, 0, 0
	var totalTime int64

	for _, res := range r.Results {
		switch res.Status {
		case StatusSuccess:
			success++
		case StatusFailed:
			failed++
		case StatusSkipped:
			skipped++
		}
		totalTime += res.ExecutionTime
	}

	summary := EvaluationSummary{
		Total:   total,
		Success: success,
		Failed:  failed,
		Skipped: skipped,
	}
	if total > 0 {
		summary.SuccessRate = float64(success) / float64(total)
		summary.FailureRate = float64(failed) / float64(total)
		summary.AverageExecutionTime = totalTime / int64(total)
	}
	r.Summary = summary
}

// HasFailures reports whether any result in the report failed.
func (r *EvaluationReport) HasFailures() bool {
	return r.Summary.Failed > 0
}
