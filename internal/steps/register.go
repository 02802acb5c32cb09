// Author: Kaviru Hapuarachchi
// GitHub: https://github.com/Kavirubc
// Created: 2026-02-02
// Last Modified: 2026-10-18

package steps

import (
	"github.com/aws-powertools/repobot/internal/core/pipeline"
	"github.com/aws-powertools/repobot/internal/rules"
)

// RegisterAll registers all built-in steps with the registry, plus one
// "rule:<name>" step per compiled table rule.
func RegisterAll(r *pipeline.Registry, table []*rules.Rule) {
	r.Register("gatekeeper", func(deps *pipeline.Dependencies) (pipeline.Step, error) {
		return NewGatekeeper(deps), nil
	})

	r.Register("title_classifier", func(deps *pipeline.Dependencies) (pipeline.Step, error) {
		return NewTitleClassifier(deps), nil
	})

	r.Register("release_labeler", func(deps *pipeline.Dependencies) (pipeline.Step, error) {
		return NewReleaseLabeler(deps), nil
	})

	for _, rule := range table {
		rule := rule
		r.Register(RuleStepPrefix+rule.Name, func(deps *pipeline.Dependencies) (pipeline.Step, error) {
			return NewRuleStep(rule, deps), nil
		})
	}
}
