package models

import (
	"database/sql"

	"github.com/google/uuid"
	"github.com/pocketledger/backend/internal/ledger"
	"github.com/pocketledger/backend/internal/types"
	"gorm.io/gorm"
)

// CategoryStats calculates the figures of a category for the months from
// start to end, both included. A zero end means the window is only the
// start month.
//
// Everything before start is summed up into the carry forward.
func CategoryStats(db *gorm.DB, categoryID uuid.UUID, start, end types.Month) (ledger.Stats, error) {
	start = types.MonthOf(start.Time())
	if end.IsZero() || end.Before(start) {
		end = start
	}
	end = types.MonthOf(end.Time())
	after := end.AddDate(0, 1)

	allocatedBefore, err := allocated(db, categoryID, nil, &start)
	if err != nil {
		return ledger.Stats{}, err
	}

	activityBefore, err := activity(db, categoryID, nil, &start)
	if err != nil {
		return ledger.Stats{}, err
	}

	movedBefore, err := moved(db, categoryID, nil, &start)
	if err != nil {
		return ledger.Stats{}, err
	}

	allocatedIn, err := allocated(db, categoryID, &start, &after)
	if err != nil {
		return ledger.Stats{}, err
	}

	activityIn, err := activity(db, categoryID, &start, &after)
	if err != nil {
		return ledger.Stats{}, err
	}

	movedIn, err := moved(db, categoryID, &start, &after)
	if err != nil {
		return ledger.Stats{}, err
	}

	return ledger.NewStats(allocatedBefore+activityBefore+movedBefore, allocatedIn, activityIn, movedIn), nil
}

// window restricts a query on a month or date column to [from, until).
// nil bounds are open.
func window(q *gorm.DB, column string, from, until *types.Month) *gorm.DB {
	if from != nil {
		q = q.Where(column+" >= date(?)", *from)
	}

	if until != nil {
		q = q.Where(column+" < date(?)", *until)
	}

	return q
}

func sum(q *gorm.DB) (int64, error) {
	var total sql.NullInt64
	err := q.Row().Scan(&total)
	if err != nil {
		return 0, err
	}

	return total.Int64, nil
}

func allocated(db *gorm.DB, categoryID uuid.UUID, from, until *types.Month) (int64, error) {
	q := db.
		Model(&Allocation{}).
		Select("SUM(amount)").
		Where("category_id = ?", categoryID)

	return sum(window(q, "allocations.month", from, until))
}

func activity(db *gorm.DB, categoryID uuid.UUID, from, until *types.Month) (int64, error) {
	q := db.
		Model(&Split{}).
		Select("SUM(splits.amount)").
		Joins("JOIN transactions ON transactions.id = splits.transaction_id").
		Where("splits.category_id = ?", categoryID)

	return sum(window(q, "transactions.date", from, until))
}

func moved(db *gorm.DB, categoryID uuid.UUID, from, until *types.Month) (int64, error) {
	in := db.
		Model(&CategoryTransfer{}).
		Select("SUM(amount)").
		Where("to_category_id = ?", categoryID)

	received, err := sum(window(in, "category_transfers.month", from, until))
	if err != nil {
		return 0, err
	}

	out := db.
		Model(&CategoryTransfer{}).
		Select("SUM(amount)").
		Where("from_category_id = ?", categoryID)

	sent, err := sum(window(out, "category_transfers.month", from, until))
	if err != nil {
		return 0, err
	}

	return received - sent, nil
}
