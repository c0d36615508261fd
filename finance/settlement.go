package finance

import (
	"github.com/shopspring/decimal"

	"github.com/warp/rent-engine/rent"
)

// =============================================================================
// TERMINATION SETTLEMENT
// =============================================================================

// Settlement is the financial reconciliation computed when a contract ends
// mid-term: full periods due up to the termination date, the prorated rent
// for the partial period in progress, and the resulting balance against
// everything the tenant has paid.
type Settlement struct {
	ContractID      string          `json:"contract_id"`
	ContractNumber  int             `json:"contract_number"`
	TenantName      string          `json:"tenant_name"`
	StartDate       rent.Date       `json:"contract_start_date"`
	EndDate         rent.Date       `json:"contract_end_date"`
	TerminationDate rent.Date       `json:"termination_date"`
	LastDueDate     rent.Date       `json:"last_due_date"`
	NextDueDate     rent.Date       `json:"next_due_date"`
	AnnualRent      decimal.Decimal `json:"annual_rent"`
	PeriodMonths    int             `json:"period_months"`
	PeriodRent      decimal.Decimal `json:"period_rent"`
	FullPeriods     int             `json:"full_periods_count"`
	FullPeriodsRent decimal.Decimal `json:"full_periods_rent"`
	PartialDays     int             `json:"days_in_partial_period"`
	ProratedRent    decimal.Decimal `json:"prorated_rent"`
	TotalRentDue    decimal.Decimal `json:"total_rent_due"`
	TotalPaid       decimal.Decimal `json:"total_paid"`
	Outstanding     decimal.Decimal `json:"outstanding_balance"`
	IsOverpaid      bool            `json:"is_overpaid"`
	IsSettled       bool            `json:"is_settled"`
	HasOutstanding  bool            `json:"has_outstanding"`
}

// TerminationSettlement computes the reconciliation for ending a contract
// on terminationDate.
//
// Every due date at or before the termination date counts as a full period
// at the flat period rent (modifications are not part of a settlement).
// If the termination falls inside a period, that period's rent is prorated
// by a daily rate - period rent over the days in the full period - times
// the days elapsed, rounded half-up to 2 places. The outstanding balance
// nets the total against posted and cleared payments.
func TerminationSettlement(c *rent.Contract, receipts []rent.Receipt, terminationDate rent.Date) (*Settlement, error) {
	if c == nil {
		return nil, ErrNilContract
	}
	if terminationDate.IsZero() {
		return nil, ErrInvalidTerminationDate
	}

	dueDates := DueDates(c)
	if len(dueDates) == 0 {
		return nil, ErrNoDueDates
	}

	periodMonths := c.PeriodMonths()
	perPeriod := periodRent(c.AnnualRent, periodMonths)

	fullPeriods := 0
	var lastDueDate rent.Date
	for _, d := range dueDates {
		if d.After(terminationDate) {
			break
		}
		fullPeriods++
		lastDueDate = d
	}
	fullPeriodsRent := perPeriod.Mul(decimal.NewFromInt(int64(fullPeriods)))

	proratedRent := decimal.Zero
	partialDays := 0
	var nextDueDate rent.Date

	if !lastDueDate.IsZero() && lastDueDate.Before(terminationDate) {
		nextDueDate = lastDueDate.AddMonths(periodMonths)
		if nextDueDate.After(c.EndDate) {
			nextDueDate = c.EndDate
		}

		totalDays := lastDueDate.DaysUntil(nextDueDate)
		partialDays = lastDueDate.DaysUntil(terminationDate)

		if totalDays > 0 {
			dailyRate := perPeriod.Div(decimal.NewFromInt(int64(totalDays)))
			proratedRent = roundMoney(dailyRate.Mul(decimal.NewFromInt(int64(partialDays))))
		}
	}

	totalPaid := decimal.Zero
	for _, r := range receipts {
		if r.AppearsOnStatement() {
			totalPaid = totalPaid.Add(r.Amount)
		}
	}

	totalRentDue := fullPeriodsRent.Add(proratedRent)
	outstanding := roundMoney(totalRentDue.Sub(totalPaid))

	return &Settlement{
		ContractID:      c.ID,
		ContractNumber:  c.ContractNumber,
		TenantName:      c.TenantName,
		StartDate:       c.StartDate,
		EndDate:         c.EndDate,
		TerminationDate: terminationDate,
		LastDueDate:     lastDueDate,
		NextDueDate:     nextDueDate,
		AnnualRent:      c.AnnualRent,
		PeriodMonths:    periodMonths,
		PeriodRent:      perPeriod,
		FullPeriods:     fullPeriods,
		FullPeriodsRent: fullPeriodsRent,
		PartialDays:     partialDays,
		ProratedRent:    proratedRent,
		TotalRentDue:    totalRentDue,
		TotalPaid:       totalPaid,
		Outstanding:     outstanding,
		IsOverpaid:      outstanding.IsNegative(),
		IsSettled:       outstanding.IsZero(),
		HasOutstanding:  outstanding.IsPositive(),
	}, nil
}
