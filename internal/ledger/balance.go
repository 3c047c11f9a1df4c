package ledger

import (
	"github.com/pocketledger/backend/internal/types"
)

// Stats are the figures of a category for a query window. Activity is the
// signed sum of the category's splits, outflows are negative. Moved is
// the net amount transferred in from other categories.
type Stats struct {
	CarryForward int64 `json:"carry_forward" example:"1500"` // Available amount at the start of the window
	Allocated    int64 `json:"allocated" example:"20000"`    // Sum of allocations in the window
	Activity     int64 `json:"activity" example:"-12050"`    // Signed sum of splits in the window
	Moved        int64 `json:"moved" example:"-2000"`        // Transfers in minus transfers out in the window
	Available    int64 `json:"available" example:"7450"`     // Available amount at the end of the window
}

// NewStats returns Stats with Available computed from the other figures.
func NewStats(carryForward, allocated, activity, moved int64) Stats {
	s := Stats{
		CarryForward: carryForward,
		Allocated:    allocated,
		Activity:     activity,
		Moved:        moved,
	}
	s.Available = s.Balance()

	return s
}

// Balance is carry forward plus allocations plus activity plus net transfers.
func (s Stats) Balance() int64 {
	return s.CarryForward + s.Allocated + s.Activity + s.Moved
}

// SpentInPeriod converts signed activity into the amount spent, which
// is what goal progress compares against the allocation.
func SpentInPeriod(activity int64) int64 {
	if activity < 0 {
		return -activity
	}
	return 0
}

type FundingState string

const (
	FundingOverspent   FundingState = "OVERSPENT"
	FundingUnderfunded FundingState = "UNDERFUNDED"
	FundingNeutral     FundingState = "NEUTRAL"
	FundingFunded      FundingState = "FUNDED"
)

// Classify returns the funding state of a category. The first matching
// rule wins: negative available is overspent, a goal without an
// allocation covering its amount is underfunded, zero available is
// neutral and everything else is funded.
func Classify(available int64, goal *Goal, allocation *Allocation) FundingState {
	if available < 0 {
		return FundingOverspent
	}

	if goal != nil && (allocation == nil || allocation.Amount < goal.Amount) {
		return FundingUnderfunded
	}

	if available == 0 {
		return FundingNeutral
	}

	return FundingFunded
}

// Summary is everything presentation needs for one category and month.
type Summary struct {
	Stats    Stats        `json:"stats"`
	Funding  FundingState `json:"funding" example:"UNDERFUNDED"`
	Progress GoalProgress `json:"progress"`
}

// Summarize combines stats, goal and allocation of the first month of a
// window into a Summary.
func Summarize(month types.Month, stats Stats, goal *Goal, allocation *Allocation) Summary {
	return Summary{
		Stats:    stats,
		Funding:  Classify(stats.Available, goal, allocation),
		Progress: CalculateProgress(month.Year(), month.Month(), SpentInPeriod(stats.Activity), goal, allocation),
	}
}
