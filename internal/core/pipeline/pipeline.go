// Author: Kaviru Hapuarachchi
// GitHub: https://github.com/Kavirubc
// Created: 2026-02-02
// Last Modified: 2026-10-18

// Package pipeline provides the core pipeline engine for repobot.
// It defines the Step interface and Context structure used by all pipeline steps.
package pipeline

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws-powertools/repobot/internal/core/config"
	"github.com/aws-powertools/repobot/internal/core/event"
)

// ErrSkipPipeline indicates that the pipeline should stop gracefully.
// This is not an error condition, just an early exit (e.g., ignored author).
var ErrSkipPipeline = errors.New("skip remaining pipeline steps")

// Step defines the interface that all pipeline steps must implement.
type Step interface {
	// Name returns the unique identifier for this step.
	Name() string

	// Run executes the step's logic.
	// It should return ErrSkipPipeline to stop the pipeline gracefully,
	// or any other error to indicate failure.
	Run(ctx *Context) error
}

// Evaluation is the recorded decision of one rule.
type Evaluation struct {
	Rule     string
	Decision string
	Reason   string
}

// Result holds the accumulated results from pipeline execution.
type Result struct {
	Number         int
	Skipped        bool
	SkipReason     string
	Evaluations    []Evaluation
	LabelsApplied  []string
	CommentsPosted int
	LabeledIssue   int
	Failed         bool
	Errors         []error
}

// Context carries data through the pipeline steps.
type Context struct {
	// Ctx is the Go context for cancellation and timeouts.
	Ctx context.Context

	// Org and Repo identify the repository the event belongs to.
	Org  string
	Repo string

	// Event is the extracted event context.
	Event event.Context

	// Config is the loaded configuration.
	Config *config.Config

	// Result accumulates the processing results.
	Result *Result
}

// NewContext creates a new pipeline context for an event.
func NewContext(ctx context.Context, org, repo string, ev event.Context, cfg *config.Config) *Context {
	return &Context{
		Ctx:    ctx,
		Org:    org,
		Repo:   repo,
		Event:  ev,
		Config: cfg,
		Result: &Result{Number: ev.Number},
	}
}

// Record appends a rule decision to the result.
func (c *Context) Record(rule, decision, reason string) {
	c.Result.Evaluations = append(c.Result.Evaluations, Evaluation{Rule: rule, Decision: decision, Reason: reason})
}

// Pipeline executes a sequence of steps.
type Pipeline struct {
	steps []Step
}

// New creates a new pipeline with the given steps.
func New(steps ...Step) *Pipeline {
	return &Pipeline{steps: steps}
}

// Run executes all steps in order.
// ErrSkipPipeline stops the run gracefully. Any other error is recorded and
// the remaining steps still run; the joined errors are returned at the end.
func (p *Pipeline) Run(ctx *Context) error {
	var errs []error
	for _, step := range p.steps {
		if err := step.Run(ctx); err != nil {
			if errors.Is(err, ErrSkipPipeline) {
				// Graceful early exit
				break
			}
			wrapped := fmt.Errorf("step '%s' failed: %w", step.Name(), err)
			ctx.Result.Errors = append(ctx.Result.Errors, wrapped)
			errs = append(errs, wrapped)
		}
	}
	return errors.Join(errs...)
}

// Steps returns the list of steps (for introspection).
func (p *Pipeline) Steps() []Step {
	return p.steps
}
