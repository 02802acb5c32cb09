// Author: Kaviru Hapuarachchi
// GitHub: https://github.com/Kavirubc
// Created: 2026-02-02
// Last Modified: 2026-10-18

// Package steps contains the pipeline steps repobot runs on pull request
// and issue events. Each step implements the pipeline.Step interface.
package steps

import (
	"log"

	"github.com/aws-powertools/repobot/internal/actions"
	"github.com/aws-powertools/repobot/internal/core/pipeline"
)

// Gatekeeper stops the pipeline for events no rule should act on.
type Gatekeeper struct {
	reporter *actions.Reporter
}

// NewGatekeeper creates a new gatekeeper step.
func NewGatekeeper(deps *pipeline.Dependencies) *Gatekeeper {
	return &Gatekeeper{
		reporter: deps.Reporter,
	}
}

// Name returns the step name.
func (s *Gatekeeper) Name() string {
	return "gatekeeper"
}

// Run skips ignored authors and events without a PR or issue number.
func (s *Gatekeeper) Run(ctx *pipeline.Context) error {
	log.Printf("[gatekeeper] #%d, action=%q, author=%q, merged=%v, repo=%s/%s",
		ctx.Event.Number, ctx.Event.Action, ctx.Event.Author, ctx.Event.IsMerged, ctx.Org, ctx.Repo)

	if ctx.Config.IsIgnoredAuthor(ctx.Event.Author) {
		return s.skip(ctx, "Author in ignore list; skipping...")
	}

	if ctx.Event.Number == 0 {
		return s.skip(ctx, "No pull request or issue number in event; skipping...")
	}

	return nil
}

func (s *Gatekeeper) skip(ctx *pipeline.Context, reason string) error {
	log.Printf("[gatekeeper] %s", reason)
	s.reporter.Notice("%s", reason)
	ctx.Result.Skipped = true
	ctx.Result.SkipReason = reason
	return pipeline.ErrSkipPipeline
}
