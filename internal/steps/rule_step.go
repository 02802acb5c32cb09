// Author: Kaviru Hapuarachchi
// GitHub: https://github.com/Kavirubc
// Created: 2026-10-18
// Last Modified: 2026-10-18

package steps

import (
	"errors"
	"fmt"
	"log"

	"github.com/aws-powertools/repobot/internal/actions"
	"github.com/aws-powertools/repobot/internal/core/pipeline"
	"github.com/aws-powertools/repobot/internal/integrations/github"
	"github.com/aws-powertools/repobot/internal/rules"
)

// RuleStepPrefix prefixes the step name of every table rule.
const RuleStepPrefix = "rule:"

// RuleStep runs one row of the gating table.
type RuleStep struct {
	rule     *rules.Rule
	github   *github.Client
	reporter *actions.Reporter
	executor *ActionExecutor
}

// NewRuleStep creates a step for a compiled rule.
func NewRuleStep(rule *rules.Rule, deps *pipeline.Dependencies) *RuleStep {
	return &RuleStep{
		rule:     rule,
		github:   deps.GitHub,
		reporter: deps.Reporter,
		executor: NewActionExecutor(deps),
	}
}

// Name returns the step name.
func (s *RuleStep) Name() string {
	return RuleStepPrefix + s.rule.Name
}

// Run evaluates the rule and performs its outcome.
func (s *RuleStep) Run(ctx *pipeline.Context) error {
	if reason, ok := s.rule.Guard(ctx.Event); !ok {
		log.Printf("[%s] %s", s.rule.Name, reason)
		s.reporter.Notice("%s", reason)
		ctx.Record(s.rule.Name, rules.Skipped.String(), reason)
		return nil
	}

	labels := ctx.Event.Labels
	if s.rule.NeedsLabels() {
		if s.github == nil {
			return fmt.Errorf("GitHub client is required to read labels")
		}
		fresh, err := s.github.ListLabels(ctx.Ctx, ctx.Org, ctx.Repo, ctx.Event.Number)
		if err != nil {
			return fmt.Errorf("failed to read labels on #%d: %w", ctx.Event.Number, err)
		}
		labels = fresh
	}

	eval := s.rule.Evaluate(ctx.Event, labels)
	ctx.Record(eval.Rule, eval.Decision.String(), eval.SkipReason)
	log.Printf("[%s] #%d: %s", s.rule.Name, ctx.Event.Number, eval.Decision)

	if eval.Outcome.IsZero() {
		return nil
	}

	comment, err := eval.Outcome.Render(rules.NewCommentData(ctx.Config, ctx.Event, eval.Captures))
	if err != nil {
		return err
	}

	var errs []error
	if err := s.executor.Apply(ctx, s.rule.Name, ctx.Event.Number, comment, eval.Outcome.Labels); err != nil {
		errs = append(errs, err)
	}
	if eval.Outcome.Fail {
		ctx.Result.Failed = true
		errs = append(errs, fmt.Errorf("rule '%s' %s on #%d", s.rule.Name, eval.Decision, ctx.Event.Number))
	}
	return errors.Join(errs...)
}
