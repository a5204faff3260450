package rules

import "strings"

// SkipRule is one user-authored skip criterion. The three term sets are
// comma-separated lists of case-insensitive substrings matched against a
// row's procedure text (optionally prefixed with its priority).
type SkipRule struct {
	Enabled         bool   `yaml:"enabled"          json:"enabled"`
	Name            string `yaml:"name"             json:"name"`
	Required        string `yaml:"required"         json:"required"`
	AnyOf           string `yaml:"any_of"           json:"any_of"`
	Exclude         string `yaml:"exclude"          json:"exclude"`
	IncludePriority bool   `yaml:"include_priority" json:"include_priority"`
}

// splitTerms tokenizes a comma-separated term list. Only leading whitespace
// is trimmed: trailing spaces are preserved deliberately so a term like
// "US " can match exact-width column text. Empty terms are dropped.
func splitTerms(s string) []string {
	if s == "" {
		return nil
	}
	var terms []string
	for _, raw := range strings.Split(s, ",") {
		term := strings.TrimLeft(raw, " \t")
		if term == "" {
			continue
		}
		terms = append(terms, strings.ToUpper(term))
	}
	return terms
}

// Matches reports whether the rule applies to a row with the given procedure
// and priority text.
//
// required terms are conjunctive, anyOf terms are disjunctive (and only
// consulted when non-empty), exclude terms veto. A rule with all three term
// sets empty never matches: this is the fail-safe default that keeps an
// accidentally blank rule from skipping every row on the worklist.
func (r SkipRule) Matches(procedure, priority string) bool {
	if !r.Enabled {
		return false
	}

	required := splitTerms(r.Required)
	anyOf := splitTerms(r.AnyOf)
	exclude := splitTerms(r.Exclude)

	if len(required) == 0 && len(anyOf) == 0 && len(exclude) == 0 {
		return false
	}

	text := strings.ToUpper(procedure)
	if r.IncludePriority {
		text = strings.ToUpper(priority + " | " + procedure)
	}

	for _, term := range required {
		if !strings.Contains(text, term) {
			return false
		}
	}

	if len(anyOf) > 0 {
		hit := false
		for _, term := range anyOf {
			if strings.Contains(text, term) {
				hit = true
				break
			}
		}
		if !hit {
			return false
		}
	}

	for _, term := range exclude {
		if strings.Contains(text, term) {
			return false
		}
	}

	return true
}

// FindFirst returns the first rule in list order that matches the given
// texts. At most one rule is ever attributed to a row.
func FindFirst(list []SkipRule, procedure, priority string) (SkipRule, bool) {
	for _, r := range list {
		if r.Matches(procedure, priority) {
			return r, true
		}
	}
	return SkipRule{}, false
}
