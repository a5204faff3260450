package engine

import "autoskip/internal/rules"

// MatchResult pairs a row with the first rule (in configured order) whose
// criteria it satisfies.
type MatchResult struct {
	Row  *WorklistRow
	Rule rules.SkipRule
}

// Match evaluates every row against the rule list, attributing at most one
// rule per row, first match wins.
func Match(rows []WorklistRow, list []rules.SkipRule) []MatchResult {
	var results []MatchResult
	for i := range rows {
		row := &rows[i]
		if rule, ok := rules.FindFirst(list, row.Procedure(), row.Priority()); ok {
			results = append(results, MatchResult{Row: row, Rule: rule})
		}
	}
	return results
}
