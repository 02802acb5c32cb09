// Author: Kaviru Hapuarachchi
// GitHub: https://github.com/Kavirubc
// Created: 2026-02-02
// Last Modified: 2026-10-18

package steps

import (
	"errors"
	"fmt"
	"log"

	"github.com/aws-powertools/repobot/internal/actions"
	"github.com/aws-powertools/repobot/internal/core/pipeline"
	"github.com/aws-powertools/repobot/internal/integrations/github"
	"github.com/aws-powertools/repobot/internal/utils/text"
)

// ActionExecutor performs the side effects decided by rules: comments and labels.
// Steps share it instead of talking to the GitHub client directly.
type ActionExecutor struct {
	github   *github.Client
	reporter *actions.Reporter
	dryRun   bool
}

// NewActionExecutor creates a new action executor.
func NewActionExecutor(deps *pipeline.Dependencies) *ActionExecutor {
	return &ActionExecutor{
		github:   deps.GitHub,
		reporter: deps.Reporter,
		dryRun:   deps.DryRun,
	}
}

// Comment posts body on number, tagged with the rule marker.
func (e *ActionExecutor) Comment(ctx *pipeline.Context, rule string, number int, body string) error {
	body = text.BuildComment(rule, body)
	if body == "" {
		return nil
	}

	if e.dryRun {
		log.Printf("[%s] DRY RUN: Would comment on #%d:\n%s", rule, number, body)
		return nil
	}
	if e.github == nil {
		return fmt.Errorf("GitHub client is required to comment on #%d", number)
	}

	e.reporter.Info("Commenting on #%d", number)
	if err := e.github.CreateComment(ctx.Ctx, ctx.Org, ctx.Repo, number, body); err != nil {
		return fmt.Errorf("failed to comment on #%d: %w", number, err)
	}
	ctx.Result.CommentsPosted++
	return nil
}

// Label adds labels to number. Adding a label that is already present is a no-op at the API.
func (e *ActionExecutor) Label(ctx *pipeline.Context, rule string, number int, labels []string) error {
	if len(labels) == 0 {
		return nil
	}

	if e.dryRun {
		log.Printf("[%s] DRY RUN: Would add labels %v to #%d", rule, labels, number)
		return nil
	}
	if e.github == nil {
		return fmt.Errorf("GitHub client is required to label #%d", number)
	}

	e.reporter.Info("Adding labels %v to #%d", labels, number)
	if err := e.github.AddLabels(ctx.Ctx, ctx.Org, ctx.Repo, number, labels); err != nil {
		return fmt.Errorf("failed to label #%d with %v: %w", number, labels, err)
	}
	if number == ctx.Event.Number {
		ctx.Result.LabelsApplied = append(ctx.Result.LabelsApplied, labels...)
	}
	return nil
}

// Apply posts the comment, then the labels. Both are attempted even if the
// first one fails.
func (e *ActionExecutor) Apply(ctx *pipeline.Context, rule string, number int, comment string, labels []string) error {
	var errs []error
	if err := e.Comment(ctx, rule, number, comment); err != nil {
		errs = append(errs, err)
	}
	if err := e.Label(ctx, rule, number, labels); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}
