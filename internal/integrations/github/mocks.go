package github

import (
	"context"

	"github.com/google/go-github/v60/github"
	"github.com/stretchr/testify/mock"
)

// MockIssuesService is a testify mock of IssuesService shared by package tests.
type MockIssuesService struct {
	mock.Mock
}

func response(args mock.Arguments, i int) *github.Response {
	if r, ok := args.Get(i).(*github.Response); ok {
		return r
	}
	return nil
}

func (m *MockIssuesService) Edit(ctx context.Context, owner, repo string, number int, issue *github.IssueRequest) (*github.Issue, *github.Response, error) {
	args := m.Called(ctx, owner, repo, number, issue)
	out, _ := args.Get(0).(*github.Issue)
	return out, response(args, 1), args.Error(2)
}

func (m *MockIssuesService) ListByRepo(ctx context.Context, owner, repo string, opts *github.IssueListByRepoOptions) ([]*github.Issue, *github.Response, error) {
	args := m.Called(ctx, owner, repo, opts)
	issues, _ := args.Get(0).([]*github.Issue)
	return issues, response(args, 1), args.Error(2)
}

func (m *MockIssuesService) ListLabelsByIssue(ctx context.Context, owner, repo string, number int, opts *github.ListOptions) ([]*github.Label, *github.Response, error) {
	args := m.Called(ctx, owner, repo, number, opts)
	labels, _ := args.Get(0).([]*github.Label)
	return labels, response(args, 1), args.Error(2)
}

func (m *MockIssuesService) AddLabelsToIssue(ctx context.Context, owner, repo string, number int, labels []string) ([]*github.Label, *github.Response, error) {
	args := m.Called(ctx, owner, repo, number, labels)
	out, _ := args.Get(0).([]*github.Label)
	return out, response(args, 1), args.Error(2)
}

func (m *MockIssuesService) CreateComment(ctx context.Context, owner, repo string, number int, comment *github.IssueComment) (*github.IssueComment, *github.Response, error) {
	args := m.Called(ctx, owner, repo, number, comment)
	out, _ := args.Get(0).(*github.IssueComment)
	return out, response(args, 1), args.Error(2)
}

// MockActionsService is a testify mock of ActionsService.
type MockActionsService struct {
	mock.Mock
}

func (m *MockActionsService) ListWorkflowRunArtifacts(ctx context.Context, owner, repo string, runID int64, opts *github.ListOptions) (*github.ArtifactList, *github.Response, error) {
	args := m.Called(ctx, owner, repo, runID, opts)
	list, _ := args.Get(0).(*github.ArtifactList)
	return list, response(args, 1), args.Error(2)
}

// MockRepositoriesService is a testify mock of RepositoriesService.
type MockRepositoriesService struct {
	mock.Mock
}

func (m *MockRepositoriesService) GetContents(ctx context.Context, owner, repo, path string, opts *github.RepositoryContentGetOptions) (*github.RepositoryContent, []*github.RepositoryContent, *github.Response, error) {
	args := m.Called(ctx, owner, repo, path, opts)
	file, _ := args.Get(0).(*github.RepositoryContent)
	dir, _ := args.Get(1).([]*github.RepositoryContent)
	return file, dir, response(args, 2), args.Error(3)
}

// NewMockClient returns a Client backed by fresh mocks.
func NewMockClient() (*Client, *MockIssuesService, *MockActionsService, *MockRepositoriesService) {
	issues := &MockIssuesService{}
	actions := &MockActionsService{}
	repos := &MockRepositoriesService{}
	return NewClientWithServices(nil, issues, actions, repos), issues, actions, repos
}
