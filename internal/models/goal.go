package models

import (
	"github.com/google/uuid"
	"github.com/pocketledger/backend/internal/ledger"
	"gorm.io/gorm"
)

// Goal is the funding target of a category. A category has at most one goal.
type Goal struct {
	DefaultModel
	CategoryID     uuid.UUID `gorm:"uniqueIndex"`
	Type           ledger.GoalType
	Amount         int64
	RepeatDayWeek  *int
	RepeatDayMonth *int
	RepeatDateYear *string
}

func (g Goal) Ledger() *ledger.Goal {
	return &ledger.Goal{
		Type:           g.Type,
		Amount:         g.Amount,
		RepeatDayWeek:  g.RepeatDayWeek,
		RepeatDayMonth: g.RepeatDayMonth,
		RepeatDateYear: g.RepeatDateYear,
	}
}

// BeforeSave validates the goal definition.
//
// Updates with Select write only some columns, the values of the other
// columns are not known here and validation is left to the caller.
func (g *Goal) BeforeSave(tx *gorm.DB) error {
	if len(tx.Statement.Selects) > 0 {
		return nil
	}
	return g.Ledger().Validate()
}
