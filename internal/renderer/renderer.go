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

package renderer

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/MetallData/json-logic/internal/models"
)

// ReportRenderer defines the interface for rendering evaluation reports
// produced by a batch rule run.
type ReportRenderer interface {
	RenderHuman(report *models.EvaluationReport) (string, error)
	RenderJSON(report *models.EvaluationReport) (string, error)
	GetExitCode(report *models.EvaluationReport) int
}

// DefaultReportRenderer implements the ReportRenderer interface.
type DefaultReportRenderer struct {
	config *RendererConfig
}

// RendererConfig holds configuration for the report renderer.
type RendererConfig struct {
	ShowTimestamps  bool
	ShowPerformance bool
	ColorOutput     bool
}

// DefaultRendererConfig returns a default renderer configuration.
func DefaultRendererConfig() *RendererConfig {
	return &RendererConfig{
		ShowTimestamps:  true,
		ShowPerformance: true,
		ColorOutput:     true,
	}
}

// NewReportRenderer creates a new report renderer with default configuration.
func NewReportRenderer() *DefaultReportRenderer {
	return &DefaultReportRenderer{config: DefaultRendererConfig()}
}

// NewReportRendererWithConfig creates a new report renderer with custom configuration.
func NewReportRendererWithConfig(config *RendererConfig) *DefaultReportRenderer {
	return &DefaultReportRenderer{config: config}
}

// RenderHuman renders the report as colored, human-readable text.
func (r *DefaultReportRenderer) RenderHuman(report *models.EvaluationReport) (string, error) {
	if report == nil {
		return "", fmt.Errorf("report cannot be nil")
	}

	var out strings.Builder

	r.writeColoredHeader(&out, "json-logic evaluation report")
	out.WriteString(strings.Repeat("=", 50) + "\n\n")

	r.writeColoredSection(&out, "summary")
	out.WriteString(fmt.Sprintf("  total:   %s%d%s rules\n", r.color("bold"), report.Summary.Total, r.color("reset")))
	out.WriteString(fmt.Sprintf("  %ssuccess: %s%d%s%s", r.color("green"), r.color("bold"), report.Summary.Success, r.color("reset"), r.color("reset")))
	if report.Summary.Total > 0 {
		out.WriteString(fmt.Sprintf(" (%.1f%%)", report.Summary.SuccessRate*100))
	}
	out.WriteString("\n")
	out.WriteString(fmt.Sprintf("  %sfailed:  %s%d%s%s", r.color("red"), r.color("bold"), report.Summary.Failed, r.color("reset"), r.color("reset")))
	if report.Summary.Total > 0 {
		out.WriteString(fmt.Sprintf(" (%.1f%%)", report.Summary.FailureRate*100))
	}
	out.WriteString("\n")
	out.WriteString(fmt.Sprintf("  %sskipped: %s%d%s%s\n", r.color("yellow"), r.color("bold"), report.Summary.Skipped, r.color("reset"), r.color("reset")))

	if r.config.ShowPerformance && report.PerformanceInfo.RulesProcessed > 0 {
		out.WriteString("\n")
		r.writeColoredSubsection(&out, "performance")
		out.WriteString(fmt.Sprintf("  rate:   %s%.2f%s rules/sec\n", r.color("cyan"), report.PerformanceInfo.ProcessingRate, r.color("reset")))
		out.WriteString(fmt.Sprintf("  memory: %s%.2f%s MB\n", r.color("cyan"), report.PerformanceInfo.MemoryUsageMB, r.color("reset")))
	}

	if r.config.ShowTimestamps {
		out.WriteString(fmt.Sprintf("  time:   %s%v%s\n", r.color("magenta"), time.Duration(report.ExecutionTime), r.color("reset")))
		if report.Summary.Total > 0 {
			out.WriteString(fmt.Sprintf("  avg:    %s%v%s/rule\n", r.color("magenta"), time.Duration(report.Summary.AverageExecutionTime), r.color("reset")))
		}
	}

	out.WriteString("\n")
	r.writeColoredSection(&out, "results")
	out.WriteString(strings.Repeat("-", 50) + "\n\n")

	for i, result := range report.Results {
		r.renderResultHuman(&out, result, i+1, len(report.Results))
	}

	out.WriteString(strings.Repeat("=", 50) + "\n")
	if report.HasFailures() {
		out.WriteString(fmt.Sprintf("%sresult: FAILED%s (%d of %d rules failed)\n",
			r.color("red"), r.color("reset"), report.Summary.Failed, report.Summary.Total))
	} else {
		out.WriteString(fmt.Sprintf("%sresult: SUCCESS%s (%d rules evaluated)\n",
			r.color("green"), r.color("reset"), report.Summary.Total))
	}

	return out.String(), nil
}

func (r *DefaultReportRenderer) renderResultHuman(out *strings.Builder, result models.EvaluationResult, index, total int) {
	icon := r.statusIcon(result.Status)
	color := r.statusColor(result.Status)

	out.WriteString(fmt.Sprintf("%s[%d/%d]%s %s %s%s%s (%s%s%s)\n",
		r.color("dim"), index, total, r.color("reset"),
		icon, r.color("bold"), result.RuleName, r.color("reset"),
		color, result.Status, r.color("reset")))

	if r.config.ShowTimestamps {
		out.WriteString(fmt.Sprintf("   time: %s%v%s\n", r.color("dim"), time.Duration(result.ExecutionTime), r.color("reset")))
	}

	if result.Status != models.StatusFailed {
		out.WriteString(fmt.Sprintf("   output: %v (truthy=%v)\n", result.Output, result.Truthy))
	}

	if result.Status == models.StatusFailed && result.ErrorMessage != "" {
		out.WriteString(fmt.Sprintf("   %serror:%s %s\n", r.color("red"), r.color("reset"), result.ErrorMessage))
	}
	out.WriteString("\n")
}

func (r *DefaultReportRenderer) statusIcon(status models.EvaluationStatus) string {
	switch status {
	case models.StatusSuccess:
		return "+"
	case models.StatusFailed:
		return "x"
	default:
		return "-"
	}
}

func (r *DefaultReportRenderer) statusColor(status models.EvaluationStatus) string {
	switch status {
	case models.StatusSuccess:
		return r.color("green")
	case models.StatusFailed:
		return r.color("red")
	default:
		return r.color("yellow")
	}
}

func (r *DefaultReportRenderer) color(name string) string {
	if !r.config.ColorOutput {
		return ""
	}
	colors := map[string]string{
		"reset": "\033[0m", "bold": "\033[1m", "dim": "\033[2m",
		"red": "\033[31m", "green": "\033[32m", "yellow": "\033[33m",
		"magenta": "\033[35m", "cyan": "\033[36m", "blue": "\033[34m",
	}
	return colors[name]
}

func (r *DefaultReportRenderer) writeColoredHeader(out *strings.Builder, text string) {
	out.WriteString(fmt.Sprintf("%s%s%s%s\n", r.color("bold"), r.color("blue"), text, r.color("reset")))
}

func (r *DefaultReportRenderer) writeColoredSection(out *strings.Builder, text string) {
	out.WriteString(fmt.Sprintf("%s%s%s\n", r.color("bold"), text, r.color("reset")))
}

func (r *DefaultReportRenderer) writeColoredSubsection(out *strings.Builder, text string) {
	out.WriteString(fmt.Sprintf("%s%s%s\n", r.color("cyan"), text, r.color("reset")))
}

// RenderJSON renders the report as indented JSON, validating internal
// consistency first so a malformed report never reaches stdout.
func (r *DefaultReportRenderer) RenderJSON(report *models.EvaluationReport) (string, error) {
	if report == nil {
		return "", fmt.Errorf("report cannot be nil")
	}
	if err := r.validateReportCompleteness(report); err != nil {
		return "", fmt.Errorf("report validation failed: %w", err)
	}

	jsonData, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal report to JSON: %w", err)
	}
	return string(jsonData), nil
}

func (r *DefaultReportRenderer) validateReportCompleteness(report *models.EvaluationReport) error {
	if report.Summary.Total != len(report.Results) {
		return fmt.Errorf("summary total (%d) doesn't match results count (%d)",
			report.Summary.Total, len(report.Results))
	}

	success, failed, skipped := 0, 0, 0
	for i, result := range report.Results {
		if result.RuleName == "" {
			return fmt.Errorf("result[%d] missing ruleName", i)
		}
		if !result.Status.IsValid() {
			return fmt.Errorf("result[%d] has invalid status: %s", i, result.Status)
		}
		switch result.Status {
		case models.StatusSuccess:
			success++
		case models.StatusFailed:
			failed++
		case models.StatusSkipped:
			skipped++
		}
	}
	if report.Summary.Success != success {
		return fmt.Errorf("summary success count (%d) doesn't match actual (%d)", report.Summary.Success, success)
	}
	if report.Summary.Failed != failed {
		return fmt.Errorf("summary failed count (%d) doesn't match actual (%d)", report.Summary.Failed, failed)
	}
	if report.Summary.Skipped != skipped {
		return fmt.Errorf("summary skipped count (%d) doesn't match actual (%d)", report.Summary.Skipped, skipped)
	}
	if report.ExecutionTime < 0 {
		return fmt.Errorf("execution time cannot be negative: %d", report.ExecutionTime)
	}
	return nil
}

// GetExitCode returns the process exit code for a completed report: 0 on
// full success, 1 if any rule failed, 2 if the report itself is missing.
func (r *DefaultReportRenderer) GetExitCode(report *models.EvaluationReport) int {
	if report == nil {
		return 2
	}
	if report.HasFailures() {
		return 1
	}
	return 0
}
