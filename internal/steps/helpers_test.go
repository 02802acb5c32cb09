package steps

import (
	"bytes"
	"context"
	"strings"
	"testing"

	githubapi "github.com/google/go-github/v60/github"
	"github.com/stretchr/testify/mock"

	"github.com/aws-powertools/repobot/internal/actions"
	"github.com/aws-powertools/repobot/internal/core/config"
	"github.com/aws-powertools/repobot/internal/core/event"
	"github.com/aws-powertools/repobot/internal/core/pipeline"
	"github.com/aws-powertools/repobot/internal/integrations/github"
)

const (
	testOrg  = "aws-powertools"
	testRepo = "powertools-lambda-python"

	templateBody = "Issue number: 4801\n\n## Summary\n\nBy submitting this pull request, I confirm that you can use, modify, copy, and redistribute this contribution, under the terms of your choice."
)

type fixture struct {
	deps     *pipeline.Dependencies
	issues   *github.MockIssuesService
	output   *bytes.Buffer
	reporter *actions.Reporter
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	client, issues, _, _ := github.NewMockClient()
	out := &bytes.Buffer{}
	reporter := actions.NewWithWriter(out, func(string) string { return "" })
	return &fixture{
		deps:     &pipeline.Dependencies{GitHub: client, Reporter: reporter},
		issues:   issues,
		output:   out,
		reporter: reporter,
	}
}

func newContext(ev event.Context) *pipeline.Context {
	return pipeline.NewContext(context.Background(), testOrg, testRepo, ev, config.Default())
}

func commentContaining(parts ...string) interface{} {
	return mock.MatchedBy(func(c *githubapi.IssueComment) bool {
		for _, p := range parts {
			if !strings.Contains(c.GetBody(), p) {
				return false
			}
		}
		return true
	})
}

func labelNames(names ...string) []*githubapi.Label {
	labels := make([]*githubapi.Label, 0, len(names))
	for _, n := range names {
		labels = append(labels, &githubapi.Label{Name: githubapi.String(n)})
	}
	return labels
}
