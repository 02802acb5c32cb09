// Author: Kaviru Hapuarachchi
// GitHub: https://github.com/kavirubc
// Created: 2026-02-02
// Last Modified: 2026-10-18

package commands

import (
	"encoding/json"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/aws-powertools/repobot/internal/core/pipeline"
	"github.com/aws-powertools/repobot/internal/rules"
	"github.com/aws-powertools/repobot/internal/steps"
	"github.com/aws-powertools/repobot/internal/tui"
)

// Wrapper step to send status updates
type statusReportingStep struct {
	inner      pipeline.Step
	statusChan chan<- tui.PipelineStatusMsg
}

func (s *statusReportingStep) Name() string {
	return s.inner.Name()
}

func (s *statusReportingStep) Run(ctx *pipeline.Context) error {
	s.statusChan <- tui.PipelineStatusMsg{Step: s.Name(), Status: tui.StatusStarted, Message: "Starting..."}

	err := s.inner.Run(ctx)

	if err != nil {
		if errors.Is(err, pipeline.ErrSkipPipeline) {
			s.statusChan <- tui.PipelineStatusMsg{Step: s.Name(), Status: tui.StatusSkipped, Message: ctx.Result.SkipReason}
			return err
		}
		s.statusChan <- tui.PipelineStatusMsg{Step: s.Name(), Status: tui.StatusError, Message: err.Error()}
		return err
	}

	s.statusChan <- tui.PipelineStatusMsg{Step: s.Name(), Status: tui.StatusSuccess, Message: "Completed"}
	return nil
}

// pipelineJob is one pipeline run over one event.
type pipelineJob struct {
	deps      *pipeline.Dependencies
	stepNames []string
	pCtx      *pipeline.Context
	done      chan struct{}
	err       error
}

// buildPipeline compiles the rule table and resolves the step names.
func buildPipeline(pCtx *pipeline.Context, deps *pipeline.Dependencies, stepNames []string) (*pipeline.Pipeline, error) {
	table, err := rules.Compile(pCtx.Config)
	if err != nil {
		return nil, err
	}

	registry := pipeline.NewRegistry()
	steps.RegisterAll(registry, table)

	return registry.BuildFromNames(stepNames, deps)
}

// run executes the pipeline and records its error on the job before done
// is closed. With a program, steps report their status on statusChan and the
// final result is sent to the TUI.
func (j *pipelineJob) run(p *tea.Program, statusChan chan tui.PipelineStatusMsg) error {
	if j.done == nil {
		j.done = make(chan struct{})
	}
	defer close(j.done)
	if statusChan != nil {
		defer close(statusChan)
	}

	j.err = j.execute(p, statusChan)
	return j.err
}

func (j *pipelineJob) execute(p *tea.Program, statusChan chan tui.PipelineStatusMsg) error {
	built, err := buildPipeline(j.pCtx, j.deps, j.stepNames)
	if err != nil {
		if p != nil {
			p.Send(tui.ResultMsg{Success: false, Output: err.Error()})
		}
		return err
	}

	final := built
	if statusChan != nil {
		var wrapped []pipeline.Step
		for _, step := range built.Steps() {
			wrapped = append(wrapped, &statusReportingStep{inner: step, statusChan: statusChan})
		}
		final = pipeline.New(wrapped...)
	}

	runErr := final.Run(j.pCtx)

	if p != nil {
		resultBytes, _ := json.MarshalIndent(j.pCtx.Result, "", "  ")
		p.Send(tui.ResultMsg{Success: runErr == nil && !j.pCtx.Result.Failed, Output: string(resultBytes)})
	}
	return runErr
}

// wait blocks until run has returned and reports its error.
func (j *pipelineJob) wait() error {
	<-j.done
	return j.err
}

func printResult(result *pipeline.Result) {
	fmt.Printf("\n=== Run Summary ===\n")
	if result.Skipped {
		fmt.Printf("Skipped: %s\n", result.SkipReason)
	}
	for _, e := range result.Evaluations {
		fmt.Printf("%-24s %-9s %s\n", e.Rule, e.Decision, e.Reason)
	}
	fmt.Printf("Comments posted: %d\n", result.CommentsPosted)
	if len(result.LabelsApplied) > 0 {
		fmt.Printf("Labels applied:  %v\n", result.LabelsApplied)
	}
	if result.LabeledIssue != 0 {
		fmt.Printf("Labeled issue:   #%d\n", result.LabeledIssue)
	}
	if len(result.Errors) > 0 {
		fmt.Printf("Errors:          %d\n", len(result.Errors))
	}
}
