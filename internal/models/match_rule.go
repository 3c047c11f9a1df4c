package models

import (
	"strings"

	"github.com/google/uuid"
	"github.com/pocketledger/backend/internal/ledger"
	"gorm.io/gorm"
)

// MatchRule assigns a category to imported transactions by payee name.
type MatchRule struct {
	DefaultModel
	Pattern    string
	Priority   uint
	CategoryID uuid.UUID
	Category   Category `gorm:"constraint:OnDelete:CASCADE"`
}

func (r *MatchRule) BeforeSave(_ *gorm.DB) error {
	r.Pattern = strings.TrimSpace(r.Pattern)
	if r.Pattern == "" {
		return ErrMatchRulePatternEmpty
	}
	return nil
}

func (r MatchRule) Ledger() ledger.MatchRule {
	return ledger.MatchRule{
		ID:         r.ID,
		Pattern:    r.Pattern,
		CategoryID: r.CategoryID,
		Priority:   r.Priority,
	}
}

// LedgerMatchRules loads all match rules in priority order.
func LedgerMatchRules(db *gorm.DB) ([]ledger.MatchRule, error) {
	var rules []MatchRule
	err := db.Order("priority ASC, created_at ASC").Find(&rules).Error
	if err != nil {
		return nil, err
	}

	out := make([]ledger.MatchRule, 0, len(rules))
	for _, r := range rules {
		out = append(out, r.Ledger())
	}
	return out, nil
}
