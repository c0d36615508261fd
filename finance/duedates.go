package finance

import (
	"github.com/warp/rent-engine/rent"
)

// =============================================================================
// DUE-DATE CALCULATOR
// =============================================================================

// DueDates returns the ordered billing due dates for a contract.
//
// The first due date is the contract start date; each subsequent date is
// the previous one plus the billing period length in calendar months. The
// last due date never exceeds the contract end date: generation stops as
// soon as the next candidate would pass it.
//
// A contract with missing dates yields an empty schedule, not an error
// (downstream components treat an empty schedule as "no periods").
// Generation is capped at MaxPeriods; anything beyond is truncated.
func DueDates(c *rent.Contract) []rent.Date {
	if c == nil || c.StartDate.IsZero() || c.EndDate.IsZero() {
		return nil
	}

	periodMonths := c.PeriodMonths()
	var dueDates []rent.Date
	current := c.StartDate

	for count := 0; current.BeforeOrEqual(c.EndDate) && count < MaxPeriods; count++ {
		dueDates = append(dueDates, current)

		next := current.AddMonths(periodMonths)
		if next.After(c.EndDate) {
			break
		}
		current = next
	}

	return dueDates
}

// dueDateIndex returns the 0-based position of date in the schedule, or -1.
func dueDateIndex(dueDates []rent.Date, date rent.Date) int {
	for i, d := range dueDates {
		if d.Equal(date) {
			return i
		}
	}
	return -1
}
