package event

import (
	"path/filepath"
	"testing"

	"github.com/google/go-github/v60/github"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const pullRequestPayload = `{
  "action": "closed",
  "number": 4821,
  "pull_request": {
    "number": 4821,
    "title": "feat(tracer): add new capture method",
    "body": "Issue number: 4801\n\nBy submitting this pull request...",
    "merged": true,
    "user": {"login": "leandrodamascena"},
    "labels": [{"name": "feature"}, {"name": "size/M"}]
  }
}`

func envMap(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func TestExtract_PullRequest(t *testing.T) {
	payload, err := Parse("pull_request", []byte(pullRequestPayload))
	require.NoError(t, err)

	ctx := Extract(payload, Overrides{})

	assert.Equal(t, Context{
		Action:   "closed",
		Author:   "leandrodamascena",
		Title:    "feat(tracer): add new capture method",
		Body:     "Issue number: 4801\n\nBy submitting this pull request...",
		Number:   4821,
		IsMerged: true,
		Labels:   []string{"feature", "size/M"},
	}, ctx)
}

func TestExtract_Issue(t *testing.T) {
	payload, err := Parse("issues", []byte(`{"action":"labeled","issue":{"number":7,"title":"Bug: x","body":"b","user":{"login":"u"},"labels":[{"name":"bug"}]}}`))
	require.NoError(t, err)

	ctx := Extract(payload, Overrides{})

	assert.Equal(t, "labeled", ctx.Action)
	assert.Equal(t, 7, ctx.Number)
	assert.Equal(t, "u", ctx.Author)
	assert.False(t, ctx.IsMerged)
	assert.Equal(t, []string{"bug"}, ctx.Labels)
}

func TestExtract_WorkflowRun(t *testing.T) {
	payload := &github.WorkflowRunEvent{
		Action: github.String("completed"),
		WorkflowRun: &github.WorkflowRun{
			PullRequests: []*github.PullRequest{{Number: github.Int(99)}},
		},
	}

	ctx := Extract(payload, Overrides{})

	assert.Equal(t, "completed", ctx.Action)
	assert.Equal(t, 99, ctx.Number)
}

func TestExtract_NeverFails(t *testing.T) {
	tests := []struct {
		name    string
		payload any
	}{
		{"nil payload", nil},
		{"unknown type", "not an event"},
		{"empty pull request event", &github.PullRequestEvent{}},
		{"empty issues event", &github.IssuesEvent{}},
		{"empty workflow run event", &github.WorkflowRunEvent{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := Extract(tt.payload, Overrides{})
			assert.Equal(t, Context{}, ctx)
		})
	}
}

func TestOverridesFromEnv(t *testing.T) {
	ov := OverridesFromEnv(envMap(map[string]string{
		"PR_NUMBER":    "12",
		"PR_ACTION":    `"opened"`,
		"PR_AUTHOR":    `"dependabot[bot]"`,
		"PR_TITLE":     "chore: bump",
		"PR_IS_MERGED": "true",
		"PR_LABELS":    "dependencies, github-actions ,",
	}))

	assert.Equal(t, 12, ov.Number)
	assert.Equal(t, "opened", ov.Action)
	assert.Equal(t, "dependabot[bot]", ov.Author)
	require.NotNil(t, ov.IsMerged)
	assert.True(t, *ov.IsMerged)
	assert.Equal(t, []string{"dependencies", "github-actions"}, ov.Labels)

	ctx := Extract(nil, ov)
	assert.Equal(t, 12, ctx.Number)
	assert.True(t, ctx.IsMerged)
}

func TestOverridesFromEnv_IgnoresGarbage(t *testing.T) {
	ov := OverridesFromEnv(envMap(map[string]string{
		"PR_NUMBER":    "abc",
		"PR_IS_MERGED": "maybe",
	}))

	assert.Zero(t, ov.Number)
	assert.Nil(t, ov.IsMerged)
}

func TestOverridesWinOverPayload(t *testing.T) {
	payload, err := Parse("pull_request", []byte(pullRequestPayload))
	require.NoError(t, err)
	merged := false

	ctx := Extract(payload, Overrides{Action: "opened", IsMerged: &merged})

	assert.Equal(t, "opened", ctx.Action)
	assert.False(t, ctx.IsMerged)
	assert.Equal(t, "leandrodamascena", ctx.Author)
}

func TestParse_UnknownEvent(t *testing.T) {
	_, err := Parse("not_an_event", []byte(`{}`))
	assert.Error(t, err)
}

func TestSnapshotRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pr.txt")

	snap, err := NewSnapshot("pull_request", []byte(pullRequestPayload))
	require.NoError(t, err)
	assert.NotEmpty(t, snap.ID)
	assert.Equal(t, []string{"feature", "size/M"}, snap.Labels)

	require.NoError(t, SaveSnapshot(path, snap))

	loaded, err := LoadSnapshot(path)
	require.NoError(t, err)
	assert.Equal(t, snap.ID, loaded.ID)

	ctx, err := loaded.Context(Overrides{})
	require.NoError(t, err)
	assert.Equal(t, 4821, ctx.Number)
	assert.True(t, ctx.IsMerged)
}

func TestLoadSnapshot_Errors(t *testing.T) {
	_, err := LoadSnapshot(filepath.Join(t.TempDir(), "missing.txt"))
	assert.Error(t, err)
}
