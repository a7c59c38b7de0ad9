// Package devhelper triages GitHub issues and runs a linter over files.
package devhelper

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os/exec"

	"github.com/ObiAU/contentagents/internal/ai"
	"github.com/ObiAU/contentagents/internal/config"
	"github.com/ObiAU/contentagents/internal/models"
)

type Helper struct {
	features config.Features
	llm      ai.Completer
	linter   string
}

func New(features config.Features, llm ai.Completer, linter string) *Helper {
	if linter == "" {
		linter = "flake8"
	}
	return &Helper{features: features, llm: llm, linter: linter}
}

func (h *Helper) live() bool {
	return h.features.LLMEnabled && h.llm != nil
}

func dryRunAnalysis() models.IssueAnalysis {
	return models.IssueAnalysis{
		Labels: []string{"enhancement", "help-wanted"},
		Checklist: []string{
			"Reproduce the issue",
			"Check if it's a duplicate",
			"Add relevant labels",
			"Assign appropriate milestone",
		},
		Suggestions: "This appears to be a feature request. Consider adding more context about use cases.",
	}
}

func emptyAnalysis() models.IssueAnalysis {
	return models.IssueAnalysis{Labels: []string{}, Checklist: []string{}}
}

func emptyFix() models.FixSuggestion {
	return models.FixSuggestion{CodeChanges: []string{}}
}

// AnalyzeIssue suggests labels and a triage checklist. Any failure on the live
// path yields an empty analysis.
func (h *Helper) AnalyzeIssue(ctx context.Context, issue models.Issue) models.IssueAnalysis {
	if !h.live() {
		return dryRunAnalysis()
	}

	analysis := emptyAnalysis()
	if err := h.completeJSON(ctx, ai.IssueAnalysisPrompt(issue.Title, issue.Body), &analysis); err != nil {
		log.Printf("Failed to analyze issue: %v", err)
		return emptyAnalysis()
	}
	if analysis.Labels == nil {
		analysis.Labels = []string{}
	}
	if analysis.Checklist == nil {
		analysis.Checklist = []string{}
	}
	return analysis
}

func (h *Helper) SuggestFixes(ctx context.Context, issue models.Issue) models.FixSuggestion {
	if !h.live() {
		return models.FixSuggestion{AutoFixable: false, Suggestions: "Manual review required", CodeChanges: []string{}}
	}

	fix := emptyFix()
	if err := h.completeJSON(ctx, ai.FixSuggestionPrompt(issue.Title, issue.Body), &fix); err != nil {
		log.Printf("Failed to suggest fixes: %v", err)
		return emptyFix()
	}
	if fix.CodeChanges == nil {
		fix.CodeChanges = []string{}
	}
	return fix
}

func (h *Helper) completeJSON(ctx context.Context, prompt string, v any) error {
	answer, err := h.llm.Complete(ctx, ai.DevSystemPrompt, prompt)
	if err != nil {
		return err
	}
	body := ai.ExtractJSON(answer)
	if body == "" {
		return fmt.Errorf("no JSON object in answer")
	}
	return json.Unmarshal([]byte(body), v)
}

// RunLinter runs the configured linter on path and returns its stdout and
// stderr. Findings make most linters exit non-zero, which is not an error
// here. A missing binary is reported through stderr.
func (h *Helper) RunLinter(ctx context.Context, path string) (string, string) {
	cmd := exec.CommandContext(ctx, h.linter, path)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	var exitErr *exec.ExitError
	switch {
	case err == nil, errors.As(err, &exitErr):
		return stdout.String(), stderr.String()
	case errors.Is(err, exec.ErrNotFound):
		return "", h.linter + " not installed"
	default:
		log.Printf("Failed to run %s: %v", h.linter, err)
		return stdout.String(), err.Error()
	}
}

// Capabilities lists what the helper can do, for the bare "dev" command.
func Capabilities() []string {
	return []string{
		"analyze - Analyze GitHub issues",
		"fix - Suggest code fixes",
		"lint - Run linting",
	}
}
