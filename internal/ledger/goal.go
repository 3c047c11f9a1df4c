package ledger

import (
	"encoding/json"
	"fmt"
	"regexp"
	"time"

	"github.com/pocketledger/backend/internal/currency"
	"github.com/pocketledger/backend/internal/types"
	"github.com/shopspring/decimal"
	"github.com/teambition/rrule-go"
)

type GoalType int

const (
	GoalTypeBuilder  GoalType = 1
	GoalTypeSpending GoalType = 2
	GoalTypeBalance  GoalType = 3
)

// LastDayOfMonth as RepeatDayMonth means the goal is due on the last day of the month.
const LastDayOfMonth = 32

var yearlyDate = regexp.MustCompile(`^(0[1-9]|1[0-2])-(0[1-9]|[12][0-9]|3[01])$`)

// Goal is the funding target of a category.
type Goal struct {
	Type           GoalType
	Amount         int64
	RepeatDayWeek  *int    // 1 = Monday … 7 = Sunday
	RepeatDayMonth *int    // 1..32
	RepeatDateYear *string // MM-DD
}

// Validate checks the goal definition.
func (g Goal) Validate() error {
	if g.Type < GoalTypeBuilder || g.Type > GoalTypeBalance {
		return validation("Goal type must be one of BUILDER (1), SPENDING (2) or BALANCE (3)")
	}

	if g.Amount <= 0 {
		return validation("Goal amount must be greater than 0")
	}

	set := 0
	if g.RepeatDayWeek != nil {
		set++
		if *g.RepeatDayWeek < 1 || *g.RepeatDayWeek > 7 {
			return validation("Weekly goals must repeat on a day between 1 and 7")
		}
	}

	if g.RepeatDayMonth != nil {
		set++
		if *g.RepeatDayMonth < 1 || *g.RepeatDayMonth > LastDayOfMonth {
			return validation("Monthly goals must repeat on a day between 1 and 32")
		}
	}

	if g.RepeatDateYear != nil {
		set++
		if !yearlyDate.MatchString(*g.RepeatDateYear) {
			return validation("Yearly goals must repeat on a date in MM-DD format")
		}
	}

	if set > 1 {
		return validation("A goal can only repeat weekly, monthly or yearly")
	}

	return nil
}

// Allocation is the amount assigned to a category for one month.
type Allocation struct {
	Month  types.Month
	Amount int64
}

type FundingStatus string

const (
	StatusNone        FundingStatus = ""
	StatusFunded      FundingStatus = "FUNDED"
	StatusUnderfunded FundingStatus = "UNDERFUNDED"
)

// MarshalJSON encodes StatusNone as null.
func (s FundingStatus) MarshalJSON() ([]byte, error) {
	if s == StatusNone {
		return []byte("null"), nil
	}
	return json.Marshal(string(s))
}

func (s *FundingStatus) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*s = StatusNone
		return nil
	}

	var v string
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*s = FundingStatus(v)
	return nil
}

// GoalProgress describes how far a category is towards its goal in a month.
type GoalProgress struct {
	Status    FundingStatus `json:"status" swaggertype:"string" enums:"FUNDED,UNDERFUNDED" example:"UNDERFUNDED"`
	Overspent bool          `json:"overspent" example:"false"`
	Progress  float64       `json:"progress" example:"80"`            // Percentage between 0 and 100
	Segments  int           `json:"segments" example:"5"`             // Number of times the goal is due in the month
	Text      string        `json:"text" example:"$50.00 more needed"` // Human readable status
}

type cadence int

const (
	cadenceNone cadence = iota
	cadenceWeekly
	cadenceMonthly
	cadenceYearly
)

func (g Goal) cadence() cadence {
	switch {
	case g.RepeatDayWeek != nil:
		return cadenceWeekly
	case g.RepeatDayMonth != nil:
		return cadenceMonthly
	case g.RepeatDateYear != nil:
		return cadenceYearly
	}
	return cadenceNone
}

var weekdays = map[int]rrule.Weekday{
	1: rrule.MO,
	2: rrule.TU,
	3: rrule.WE,
	4: rrule.TH,
	5: rrule.FR,
	6: rrule.SA,
	7: rrule.SU,
}

// WeekdayOccurrences counts how often a weekday (1 = Monday … 7 = Sunday)
// occurs in a month.
func WeekdayOccurrences(year int, month time.Month, weekday int) int {
	wd, ok := weekdays[weekday]
	if !ok {
		return 0
	}

	start := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	rule, err := rrule.NewRRule(rrule.ROption{
		Freq:      rrule.WEEKLY,
		Dtstart:   start,
		Until:     start.AddDate(0, 1, -1),
		Byweekday: []rrule.Weekday{wd},
	})
	if err != nil {
		return 0
	}

	return len(rule.All())
}

// DueDay returns the day of the month a monthly goal is due on. Days past
// the end of the month, including LastDayOfMonth, resolve to the last day.
func DueDay(year int, month time.Month, repeatDayMonth int) int {
	start := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)

	day := repeatDayMonth
	if day >= start.AddDate(0, 1, -1).Day() {
		day = -1
	}

	rule, err := rrule.NewRRule(rrule.ROption{
		Freq:       rrule.MONTHLY,
		Dtstart:    start,
		Count:      1,
		Bymonthday: []int{day},
	})
	if err != nil {
		return start.AddDate(0, 1, -1).Day()
	}

	occurrences := rule.All()
	if len(occurrences) == 0 {
		return start.AddDate(0, 1, -1).Day()
	}

	return occurrences[0].Day()
}

// CalculateProgress computes the progress of a goal for a month.
//
// periodActivity is the amount spent from the category in the month as a
// non-negative number, see SpentInPeriod.
func CalculateProgress(year int, month time.Month, periodActivity int64, goal *Goal, allocation *Allocation) GoalProgress {
	progress := GoalProgress{Segments: 1}
	if goal == nil {
		return progress
	}

	c := goal.cadence()
	if c == cadenceWeekly {
		progress.Segments = WeekdayOccurrences(year, month, *goal.RepeatDayWeek)
	}

	total := int64(progress.Segments) * goal.Amount

	var allocated int64
	if allocation != nil {
		allocated = allocation.Amount
	}
	remaining := total - allocated

	switch {
	case allocation == nil:
		progress.Status = StatusUnderfunded
	case allocated < total:
		progress.Status = StatusUnderfunded
		progress.Progress = percentage(allocated, total)
	default:
		progress.Status = StatusFunded
		progress.Progress = 100
	}

	switch {
	// Over-funded goals read Funded, not a negative amount needed
	case remaining <= 0:
		progress.Text = "Funded"
	case c == cadenceWeekly:
		progress.Text = fmt.Sprintf("%s more needed this month", currency.Format(remaining))
	case c == cadenceMonthly:
		due := DueDay(year, month, *goal.RepeatDayMonth)
		progress.Text = fmt.Sprintf("%s more needed by the %s", currency.Format(remaining), currency.Ordinal(due))
	}

	if periodActivity > allocated {
		progress.Overspent = true

		if allocated == 0 {
			progress.Text = "Overspent " + currency.Format(periodActivity)
		} else {
			progress.Text = fmt.Sprintf("Overspent %s of %s", currency.Format(periodActivity), currency.Format(allocated))
		}
	}

	return progress
}

// percentage returns part / total * 100 clamped to [0, 100] and rounded to
// two decimal places.
func percentage(part, total int64) float64 {
	if total <= 0 {
		return 0
	}

	p := decimal.NewFromInt(part).
		Div(decimal.NewFromInt(total)).
		Mul(decimal.NewFromInt(100)).
		Round(2)

	if p.IsNegative() {
		return 0
	}

	if p.GreaterThan(decimal.NewFromInt(100)) {
		return 100
	}

	return p.InexactFloat64()
}
