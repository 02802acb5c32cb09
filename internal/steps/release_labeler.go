// Author: Kaviru Hapuarachchi
// GitHub: https://github.com/Kavirubc
// Created: 2026-10-18
// Last Modified: 2026-10-18

package steps

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/aws-powertools/repobot/internal/actions"
	"github.com/aws-powertools/repobot/internal/core/pipeline"
	"github.com/aws-powertools/repobot/internal/rules"
)

// ErrNoRelatedIssue is returned when a merged PR does not reference an issue.
var ErrNoRelatedIssue = errors.New("no related issue found")

// ReleaseLabeler marks the issue referenced by a merged PR as pending release.
type ReleaseLabeler struct {
	reporter *actions.Reporter
	executor *ActionExecutor
}

// NewReleaseLabeler creates a new release labeler step.
func NewReleaseLabeler(deps *pipeline.Dependencies) *ReleaseLabeler {
	return &ReleaseLabeler{
		reporter: deps.Reporter,
		executor: NewActionExecutor(deps),
	}
}

// Name returns the step name.
func (s *ReleaseLabeler) Name() string {
	return "release_labeler"
}

// Run labels the referenced issue, or asks maintainers to do it by hand.
func (s *ReleaseLabeler) Run(ctx *pipeline.Context) error {
	if ctx.Config.IsIgnoredAuthor(ctx.Event.Author) {
		reason := "Author in ignore list; skipping..."
		s.reporter.Notice("%s", reason)
		ctx.Record(s.Name(), rules.Skipped.String(), reason)
		return nil
	}
	if !ctx.Event.IsMerged {
		reason := "Only run on merged PRs; skipping"
		s.reporter.Notice("%s", reason)
		ctx.Record(s.Name(), rules.Skipped.String(), reason)
		return nil
	}

	ref, err := rules.NewIssueReference(ctx.Config.IssueReference)
	if err != nil {
		return err
	}

	pending := ctx.Config.Labels.PendingRelease
	issue, ok := ref.Find(ctx.Event.Body)
	if !ok {
		ctx.Record(s.Name(), rules.NoMatch.String(), "no issue reference")
		ctx.Result.Failed = true

		comment := fmt.Sprintf("%s No related issues found. Please ensure '%s' label is applied before releasing.",
			mention(ctx.Config.Maintainers), pending)
		errs := []error{fmt.Errorf("%w in PR #%d", ErrNoRelatedIssue, ctx.Event.Number)}
		if err := s.executor.Comment(ctx, "release-labeler", ctx.Event.Number, comment); err != nil {
			errs = append(errs, err)
		}
		return errors.Join(errs...)
	}

	ctx.Record(s.Name(), rules.Matched.String(), fmt.Sprintf("issue #%d", issue))
	log.Printf("[release_labeler] PR #%d references issue #%d", ctx.Event.Number, issue)

	if err := s.executor.Label(ctx, s.Name(), issue, []string{pending}); err != nil {
		return fmt.Errorf("failed to label issue #%d as '%s': %w", issue, pending, err)
	}
	ctx.Result.LabeledIssue = issue
	s.reporter.Info("Issue #%d labeled as '%s'", issue, pending)
	return nil
}

func mention(handle string) string {
	if handle == "" || strings.HasPrefix(handle, "@") {
		return handle
	}
	return "@" + handle
}
