package checker

import "github.com/guikcd/sensu-plugins-aws/internal/models"

// FlagRule decides whether a flagged resource should be reported
type FlagRule interface {
	Check(resource models.FlaggedResource) (bool, string)
	Name() string
}

// UnhealthyStatusRule reports resources whose status differs from the healthy one.
// The comparison is exact and case-sensitive.
type UnhealthyStatusRule struct {
	HealthyStatus string
}

func (r *UnhealthyStatusRule) Name() string {
	return "UnhealthyStatus"
}

func (r *UnhealthyStatusRule) Check(resource models.FlaggedResource) (bool, string) {
	if resource.Status == r.HealthyStatus {
		return false, ""
	}
	return true, "status '" + resource.Status + "' is not '" + r.HealthyStatus + "'"
}

// RuleEngine manages and executes flag rules
type RuleEngine struct {
	rules []FlagRule
}

// NewRuleEngine creates a new rule engine with the default rule
func NewRuleEngine(healthyStatus string) *RuleEngine {
	return &RuleEngine{
		rules: []FlagRule{
			&UnhealthyStatusRule{HealthyStatus: healthyStatus},
		},
	}
}

// Evaluate runs all rules against the given resource. Each reason is
// prefixed with the name of the rule that produced it.
func (re *RuleEngine) Evaluate(resource models.FlaggedResource) (bool, []string) {
	var reasons []string
	flagged := false

	for _, rule := range re.rules {
		if matches, reason := rule.Check(resource); matches {
			flagged = true
			reasons = append(reasons, rule.Name()+": "+reason)
		}
	}

	return flagged, reasons
}
