package ledger

import (
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/ryanuber/go-glob"
)

// MatchRule assigns a category to drafts whose payee matches Pattern.
// Pattern supports * as a wildcard.
type MatchRule struct {
	ID         uuid.UUID
	Pattern    string
	CategoryID uuid.UUID
	Priority   uint
}

// Match returns the rule matching name. Rules with a lower priority value
// are tried first. Matching is case insensitive.
func Match(rules []MatchRule, name string) (MatchRule, bool) {
	if name == "" {
		return MatchRule{}, false
	}

	sorted := make([]MatchRule, len(rules))
	copy(sorted, rules)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Priority < sorted[j].Priority
	})

	for _, rule := range sorted {
		if glob.Glob(strings.ToLower(rule.Pattern), strings.ToLower(name)) {
			return rule, true
		}
	}

	return MatchRule{}, false
}

// ApplyRules sets the category of every draft that has neither a category
// nor split lines from the first matching rule. It returns the ID of the
// rule applied to each draft, uuid.Nil if none was.
//
// Drafts still need to pass Normalize.
func ApplyRules(drafts []Draft, rules []MatchRule) []uuid.UUID {
	applied := make([]uuid.UUID, len(drafts))
	for i := range drafts {
		if drafts[i].CategoryID != uuid.Nil || len(drafts[i].Lines) > 0 {
			continue
		}

		rule, ok := Match(rules, drafts[i].PayeeName)
		if !ok {
			continue
		}

		drafts[i].CategoryID = rule.CategoryID
		applied[i] = rule.ID
	}

	return applied
}
