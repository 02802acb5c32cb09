package steps

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/aws-powertools/repobot/internal/core/event"
	"github.com/aws-powertools/repobot/internal/core/pipeline"
)

func TestTitleClassifier_TypeAndArea(t *testing.T) {
	f := newFixture(t)
	ctx := newContext(event.Context{Number: 5, Action: "opened", Title: "feat(tracer): add new capture method"})

	f.issues.On("AddLabelsToIssue", mock.Anything, testOrg, testRepo, 5, []string{"feature", "area/tracer"}).
		Return(nil, nil, nil).Once()

	require.NoError(t, NewTitleClassifier(f.deps).Run(ctx))

	assert.Equal(t, []string{"feature", "area/tracer"}, ctx.Result.LabelsApplied)
	f.issues.AssertExpectations(t)
}

func TestTitleClassifier_UnknownScope(t *testing.T) {
	f := newFixture(t)
	ctx := newContext(event.Context{Number: 5, Action: "edited", Title: "chore(deps): bump boto3"})

	f.issues.On("AddLabelsToIssue", mock.Anything, testOrg, testRepo, 5, []string{"internal"}).
		Return(nil, nil, nil).Once()

	require.NoError(t, NewTitleClassifier(f.deps).Run(ctx))
	f.issues.AssertExpectations(t)
}

func TestTitleClassifier_NotSemantic(t *testing.T) {
	f := newFixture(t)
	ctx := newContext(event.Context{Number: 5, Action: "opened", Title: "Update README"})

	require.NoError(t, NewTitleClassifier(f.deps).Run(ctx))

	assert.Contains(t, f.output.String(), "doesn't follow semantic titles")
	assert.False(t, f.reporter.Failed())
	assert.Empty(t, f.issues.Calls)
}

func TestTitleClassifier_SkipsOtherActions(t *testing.T) {
	f := newFixture(t)
	ctx := newContext(event.Context{Number: 5, Action: "closed", Title: "feat: x"})

	require.NoError(t, NewTitleClassifier(f.deps).Run(ctx))

	assert.Empty(t, f.issues.Calls)
	assert.Equal(t, "skipped", ctx.Result.Evaluations[0].Decision)
}

func TestTitleClassifier_IgnoredAuthor(t *testing.T) {
	f := newFixture(t)
	ctx := newContext(event.Context{Number: 5, Action: "opened", Author: "dependabot[bot]", Title: "feat(tracer): bump"})

	require.NoError(t, pipeline.New(NewTitleClassifier(f.deps)).Run(ctx))

	assert.Empty(t, f.issues.Calls)
	assert.Empty(t, ctx.Result.LabelsApplied)
	assert.Equal(t, "skipped", ctx.Result.Evaluations[0].Decision)
	assert.Contains(t, f.output.String(), "Author in ignore list")
}

func TestTitleClassifier_NestedParenthesesBindFirstScope(t *testing.T) {
	f := newFixture(t)
	ctx := newContext(event.Context{Number: 5, Action: "opened", Title: "feat(tracer): fix(logger): x"})

	f.issues.On("AddLabelsToIssue", mock.Anything, testOrg, testRepo, 5, []string{"feature", "area/tracer"}).
		Return(nil, nil, nil).Once()

	require.NoError(t, NewTitleClassifier(f.deps).Run(ctx))
	f.issues.AssertExpectations(t)
}
