// Author: Kaviru Hapuarachchi
// GitHub: https://github.com/Kavirubc
// Created: 2026-10-18
// Last Modified: 2026-10-18

// Package actions surfaces run results to the GitHub Actions runner:
// annotations, workflow outputs and the triggering event context.
package actions

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/sethvargo/go-githubactions"
)

// Reporter writes workflow commands for the current run. It is safe for
// concurrent use. A nil *Reporter is valid and discards everything.
type Reporter struct {
	action *githubactions.Action

	mu     sync.Mutex
	failed bool
}

// New creates a reporter writing workflow commands to stdout.
func New() *Reporter {
	return &Reporter{action: githubactions.New()}
}

// NewWithWriter creates a reporter writing to w and resolving environment
// variables (GITHUB_OUTPUT, GITHUB_EVENT_PATH, ...) through getenv.
func NewWithWriter(w io.Writer, getenv func(string) string) *Reporter {
	if getenv == nil {
		getenv = os.Getenv
	}
	return &Reporter{
		action: githubactions.New(
			githubactions.WithWriter(w),
			githubactions.WithGetenv(getenv),
		),
	}
}

// Notice emits a notice annotation. Used for skip conditions.
func (r *Reporter) Notice(format string, args ...any) {
	if r == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.action.Noticef(format, args...)
}

// Info writes a plain log line.
func (r *Reporter) Info(format string, args ...any) {
	if r == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.action.Infof(format, args...)
}

// Debug writes a debug line, only shown when step debugging is enabled.
func (r *Reporter) Debug(format string, args ...any) {
	if r == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.action.Debugf(format, args...)
}

// Fail emits an error annotation and marks the run as failed.
// Unlike githubactions.Fatalf it does not exit; the caller decides.
func (r *Reporter) Fail(format string, args ...any) {
	if r == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failed = true
	r.action.Errorf(format, args...)
}

// Failed reports whether Fail was called.
func (r *Reporter) Failed() bool {
	if r == nil {
		return false
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.failed
}

// SetOutput sets a step output consumable by later workflow steps.
func (r *Reporter) SetOutput(key, value string) {
	if r == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.action.SetOutput(key, value)
}

// RunContext is the part of the runner context repobot needs.
type RunContext struct {
	EventName string
	EventPath string
	Org       string
	Repo      string
	RunID     int64
}

// Context resolves the runner context from the environment.
func (r *Reporter) Context() (*RunContext, error) {
	if r == nil {
		return nil, fmt.Errorf("no reporter configured")
	}
	ghctx, err := r.action.Context()
	if err != nil {
		return nil, fmt.Errorf("failed to read runner context: %w", err)
	}

	rc := &RunContext{
		EventName: ghctx.EventName,
		EventPath: ghctx.EventPath,
		RunID:     ghctx.RunID,
	}
	if org, repo, ok := strings.Cut(ghctx.Repository, "/"); ok {
		rc.Org, rc.Repo = org, repo
	}
	return rc, nil
}
