package models

import (
	"github.com/google/uuid"
	"github.com/pocketledger/backend/internal/ledger"
	"github.com/pocketledger/backend/internal/types"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Allocation is the amount assigned to a category for one month.
type Allocation struct {
	DefaultModel
	CategoryID uuid.UUID   `gorm:"uniqueIndex:allocation_category_month"`
	Month      types.Month `gorm:"uniqueIndex:allocation_category_month"`
	Amount     int64
}

func (a Allocation) Ledger() *ledger.Allocation {
	return &ledger.Allocation{Month: a.Month, Amount: a.Amount}
}

// UpsertAllocation sets the allocation of a category for a month. An
// existing allocation for the month is updated, otherwise one is created.
func UpsertAllocation(db *gorm.DB, categoryID uuid.UUID, month types.Month, amount int64) (Allocation, error) {
	month = types.MonthOf(month.Time())

	allocation := Allocation{
		CategoryID: categoryID,
		Month:      month,
		Amount:     amount,
	}

	err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "category_id"}, {Name: "month"}},
		DoUpdates: clause.AssignmentColumns([]string{"amount", "updated_at"}),
	}).Create(&allocation).Error
	if err != nil {
		return Allocation{}, err
	}

	// On conflict, the generated ID is not the one of the stored row
	stored, err := AllocationFor(db, categoryID, month)
	if err != nil {
		return Allocation{}, err
	}

	if stored == nil {
		return Allocation{}, ErrGeneral
	}

	return *stored, nil
}

// AllocationFor returns the allocation of a category for a month, nil if
// there is none.
func AllocationFor(db *gorm.DB, categoryID uuid.UUID, month types.Month) (*Allocation, error) {
	var allocations []Allocation
	err := db.
		Where("category_id = ?", categoryID).
		Where("month >= date(?) AND month < date(?)", month, month.AddDate(0, 1)).
		Limit(1).
		Find(&allocations).Error
	if err != nil {
		return nil, err
	}

	if len(allocations) == 0 {
		return nil, nil
	}

	return &allocations[0], nil
}
