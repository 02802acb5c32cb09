// Author: Kaviru Hapuarachchi
// GitHub: https://github.com/Kavirubc
// Created: 2026-10-18
// Last Modified: 2026-10-18

package rules

import (
	"fmt"
	"regexp"
	"strconv"
)

// IssueReference finds the related issue number in a PR body.
// It is the only place the reference pattern is interpreted.
type IssueReference struct {
	re    *regexp.Regexp
	group int
}

// NewIssueReference compiles pattern. The number is read from the named
// group "issue", or from the first group when the pattern has no name.
func NewIssueReference(pattern string) (*IssueReference, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid issue reference pattern: %w", err)
	}

	group := re.SubexpIndex("issue")
	if group < 0 {
		if re.NumSubexp() == 0 {
			return nil, fmt.Errorf("issue reference pattern %q has no capture group", pattern)
		}
		group = 1
	}

	return &IssueReference{re: re, group: group}, nil
}

// Find returns the referenced issue number.
func (r *IssueReference) Find(body string) (int, bool) {
	match := r.re.FindStringSubmatch(body)
	if match == nil || match[r.group] == "" {
		return 0, false
	}
	n, err := strconv.Atoi(match[r.group])
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}
