// Author: Kaviru Hapuarachchi
// GitHub: https://github.com/Kavirubc
// Created: 2026-10-18
// Last Modified: 2026-10-18

package rules

import (
	"fmt"
	"strings"
	"text/template"

	"github.com/aws-powertools/repobot/internal/core/config"
	"github.com/aws-powertools/repobot/internal/core/event"
)

// CommentData is what a comment template can reference, e.g.
// {{.Maintainers}}, {{.Number}}, {{.Label.PendingRelease}}, {{index .Captures "issue"}}.
type CommentData struct {
	event.Context
	Maintainers string
	Captures    map[string]string
	Label       LabelNames
}

// LabelNames exposes the configured label names to templates.
type LabelNames struct {
	PendingRelease string
	Block          string
	MissingIssue   string
	MissingAck     string
	LargePR        string
}

// NewCommentData fills the template data from the config and the event.
func NewCommentData(cfg *config.Config, ec event.Context, captures map[string]string) CommentData {
	return CommentData{
		Context:     ec,
		Maintainers: cfg.Maintainers,
		Captures:    captures,
		Label: LabelNames{
			PendingRelease: cfg.Labels.PendingRelease,
			Block:          cfg.Labels.Block,
			MissingIssue:   cfg.Labels.MissingIssue,
			MissingAck:     cfg.Labels.MissingAck,
			LargePR:        cfg.Labels.LargePR,
		},
	}
}

// Render executes the outcome comment. An outcome without a comment renders "".
func (o Outcome) Render(data CommentData) (string, error) {
	if o.Comment == nil {
		return "", nil
	}
	return Execute(o.Comment, data)
}

// Execute runs any template into a trimmed string.
func Execute(tmpl *template.Template, data any) (string, error) {
	var sb strings.Builder
	if err := tmpl.Execute(&sb, data); err != nil {
		return "", fmt.Errorf("failed to render %s template: %w", tmpl.Name(), err)
	}
	return strings.TrimSpace(sb.String()), nil
}
