// Author: Kaviru Hapuarachchi
// GitHub: https://github.com/Kavirubc
// Created: 2026-10-18
// Last Modified: 2026-10-18

package rules

import (
	"fmt"
	"regexp"

	"github.com/aws-powertools/repobot/internal/core/config"
)

type titleRule struct {
	label string
	re    *regexp.Regexp
	scope int
}

// TitleClassifier maps a conventional-commit title to a type label and,
// when the scope is a known area, an area label.
type TitleClassifier struct {
	rules      []titleRule
	areas      map[string]bool
	areaPrefix string
}

// Classification is the result of a title match.
type Classification struct {
	Label     string
	Scope     string
	AreaLabel string
}

// Labels returns the labels to attach, type label first.
func (c Classification) Labels() []string {
	if c.AreaLabel == "" {
		return []string{c.Label}
	}
	return []string{c.Label, c.AreaLabel}
}

// NewTitleClassifier compiles the ordered title rules.
func NewTitleClassifier(cfg config.TitleConfig) (*TitleClassifier, error) {
	tc := &TitleClassifier{
		rules:      make([]titleRule, 0, len(cfg.Rules)),
		areas:      make(map[string]bool, len(cfg.Areas)),
		areaPrefix: cfg.AreaPrefix,
	}

	for _, r := range cfg.Rules {
		re, err := regexp.Compile(r.Pattern)
		if err != nil {
			return nil, fmt.Errorf("title rule '%s': invalid pattern: %w", r.Label, err)
		}
		tc.rules = append(tc.rules, titleRule{label: r.Label, re: re, scope: re.SubexpIndex("scope")})
	}
	for _, a := range cfg.Areas {
		tc.areas[a] = true
	}

	return tc, nil
}

// Classify evaluates the rules in order; the first match wins.
func (c *TitleClassifier) Classify(title string) (Classification, bool) {
	for _, r := range c.rules {
		match := r.re.FindStringSubmatch(title)
		if match == nil {
			continue
		}

		cl := Classification{Label: r.label}
		if r.scope > 0 && r.scope < len(match) {
			cl.Scope = match[r.scope]
		}
		if cl.Scope != "" && c.areas[cl.Scope] {
			cl.AreaLabel = c.areaPrefix + cl.Scope
		}
		return cl, true
	}
	return Classification{}, false
}
