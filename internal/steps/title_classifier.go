// Author: Kaviru Hapuarachchi
// GitHub: https://github.com/Kavirubc
// Created: 2026-10-18
// Last Modified: 2026-10-18

package steps

import (
	"log"
	"slices"

	"github.com/aws-powertools/repobot/internal/actions"
	"github.com/aws-powertools/repobot/internal/core/pipeline"
	"github.com/aws-powertools/repobot/internal/rules"
)

// TitleClassifier labels a PR by its conventional-commit title.
type TitleClassifier struct {
	reporter *actions.Reporter
	executor *ActionExecutor
}

// NewTitleClassifier creates a new title classifier step.
func NewTitleClassifier(deps *pipeline.Dependencies) *TitleClassifier {
	return &TitleClassifier{
		reporter: deps.Reporter,
		executor: NewActionExecutor(deps),
	}
}

// Name returns the step name.
func (s *TitleClassifier) Name() string {
	return "title_classifier"
}

// Run attaches one type label and, for a known scope, one area label.
func (s *TitleClassifier) Run(ctx *pipeline.Context) error {
	if ctx.Config.IsIgnoredAuthor(ctx.Event.Author) {
		reason := "Author in ignore list; skipping..."
		s.reporter.Notice("%s", reason)
		ctx.Record(s.Name(), rules.Skipped.String(), reason)
		return nil
	}
	if !slices.Contains(ctx.Config.Title.Actions, ctx.Event.Action) {
		reason := "Only run on PR opened, edited or reopened actions; skipping"
		s.reporter.Notice("%s", reason)
		ctx.Record(s.Name(), rules.Skipped.String(), reason)
		return nil
	}

	classifier, err := rules.NewTitleClassifier(ctx.Config.Title)
	if err != nil {
		return err
	}

	cl, ok := classifier.Classify(ctx.Event.Title)
	if !ok {
		reason := "PR title doesn't follow semantic titles; skipping..."
		s.reporter.Notice("%s", reason)
		ctx.Record(s.Name(), rules.NoMatch.String(), reason)
		return nil
	}

	if cl.Scope != "" && cl.AreaLabel == "" {
		s.reporter.Debug("Scope %q is not a known area; no area label", cl.Scope)
	}

	log.Printf("[title_classifier] #%d: %q -> %v", ctx.Event.Number, ctx.Event.Title, cl.Labels())
	ctx.Record(s.Name(), rules.Matched.String(), cl.Label)
	return s.executor.Label(ctx, s.Name(), ctx.Event.Number, cl.Labels())
}
