// Package filter decides which diagnostics are emitted: ordered
// category-prefix rules (last match wins), a confidence threshold, and
// per-line suppression markers scanned by the cleanser.
package filter

import (
	"fmt"
	"strings"

	"stylint/internal/cleanse"
	"stylint/internal/diag"
)

// Rule is one signed category prefix. "+whitespace" enables everything
// under whitespace, "-whitespace/braces" disables that subtree.
type Rule struct {
	Include bool
	Prefix  diag.Category
}

func (r Rule) String() string {
	sign := "-"
	if r.Include {
		sign = "+"
	}
	return sign + string(r.Prefix)
}

// DefaultRules is the built-in rule set applied before any configured
// rules. readability/todo is off by default: TODO hygiene is opt-in.
var DefaultRules = []Rule{
	{Include: false, Prefix: diag.CatReadabilityTodo},
}

// ParseRules parses a comma-separated filter specification like
// "+whitespace,-whitespace/braces". Every rule needs an explicit sign and a
// prefix matching at least one known category; anything else is a
// configuration error, surfaced before any file is processed.
func ParseRules(spec string) ([]Rule, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return nil, nil
	}

	var rules []Rule
	for _, part := range strings.Split(spec, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if part[0] != '+' && part[0] != '-' {
			return nil, fmt.Errorf("filter rule %q must start with + or -", part)
		}
		prefix := diag.Category(part[1:])
		if prefix == "" {
			return nil, fmt.Errorf("filter rule %q has no category", part)
		}
		if !diag.KnownPrefix(prefix) {
			return nil, fmt.Errorf("filter rule %q names no known category", part)
		}
		rules = append(rules, Rule{Include: part[0] == '+', Prefix: prefix})
	}
	return rules, nil
}

// Filter is the resolved decision value: pure data, safe to share across
// concurrently linted files.
type Filter struct {
	rules         []Rule
	minConfidence diag.Confidence
}

// New builds a filter from DefaultRules followed by the configured rules,
// in that order, so configured rules win ties on the same prefix.
func New(configured []Rule, minConfidence diag.Confidence) *Filter {
	rules := make([]Rule, 0, len(DefaultRules)+len(configured))
	rules = append(rules, DefaultRules...)
	rules = append(rules, configured...)
	if minConfidence < diag.ConfidenceMin {
		minConfidence = diag.ConfidenceMin
	}
	return &Filter{rules: rules, minConfidence: minConfidence}
}

// CategoryEnabled applies the rule list: the last rule whose prefix matches
// decides; with no match, the category is enabled.
func (f *Filter) CategoryEnabled(cat diag.Category) bool {
	enabled := true
	for _, r := range f.rules {
		if cat.HasPrefix(r.Prefix) {
			enabled = r.Include
		}
	}
	return enabled
}

// ShouldEmit is the per-diagnostic decision, before per-line suppression.
func (f *Filter) ShouldEmit(cat diag.Category, conf diag.Confidence) bool {
	return conf >= f.minConfidence && f.CategoryEnabled(cat)
}

// MinConfidence returns the confidence threshold.
func (f *Filter) MinConfidence() diag.Confidence {
	return f.minConfidence
}

// Reporter wraps another Reporter, dropping findings the filter disables and
// findings suppressed by an in-source marker on their line. Narrowest scope
// last: markers only ever cover one line.
type Reporter struct {
	Next   diag.Reporter
	Filter *Filter
	File   *cleanse.File
}

func (r Reporter) Report(cat diag.Category, line uint32, conf diag.Confidence, msg string) {
	if r.Filter != nil && !r.Filter.ShouldEmit(cat, conf) {
		return
	}
	if r.File != nil && r.File.Suppressed(line, cat) {
		return
	}
	if r.Next != nil {
		r.Next.Report(cat, line, conf, msg)
	}
}
