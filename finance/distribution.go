package finance

import (
	"github.com/shopspring/decimal"

	"github.com/warp/rent-engine/rent"
)

// =============================================================================
// PAYMENT DISTRIBUTOR - Oldest-first greedy allocation
// =============================================================================

// distribute applies a payment pool against periods in order. Each
// period's due amount is first adjusted by its VAT/discount record; the
// pool then fills periods oldest-first. At most one period ends up
// partial; everything after it is unpaid and classified by date against
// asOf (overdue / current / future).
//
// The input periods are not mutated; a fresh slice is returned.
func distribute(periods []Period, adjustments map[rent.Date]Adjustment, totalPaid decimal.Decimal, asOf rent.Date) PeriodsWithPayments {
	out := make([]Period, len(periods))
	copy(out, periods)

	remainingPool := totalPaid
	totalDue := decimal.Zero
	totalRemaining := decimal.Zero

	for i := range out {
		p := &out[i]

		adj := adjustmentFor(adjustments, p.StartDate)
		p.BaseRent = p.DueAmount
		p.Adjustment = adj
		p.DueAmount = p.BaseRent.Add(adj.Total)
		totalDue = totalDue.Add(p.DueAmount)

		switch {
		case remainingPool.GreaterThanOrEqual(p.DueAmount):
			p.PaidAmount = p.DueAmount
			p.RemainingAmount = decimal.Zero
			p.Status = StatusPaid
			remainingPool = remainingPool.Sub(p.DueAmount)
		case remainingPool.IsPositive():
			p.PaidAmount = remainingPool
			p.RemainingAmount = p.DueAmount.Sub(remainingPool)
			p.Status = StatusPartial
			totalRemaining = totalRemaining.Add(p.RemainingAmount)
			remainingPool = decimal.Zero
		default:
			p.PaidAmount = decimal.Zero
			p.RemainingAmount = p.DueAmount
			p.Status = classifyUnpaid(*p, asOf)
			totalRemaining = totalRemaining.Add(p.DueAmount)
		}
	}

	overpaid := decimal.Zero
	if remainingPool.IsPositive() {
		overpaid = remainingPool
	}

	return PeriodsWithPayments{
		Periods: out,
		Totals: Totals{
			TotalDue:       totalDue,
			TotalPaid:      totalPaid,
			TotalRemaining: totalRemaining,
			Overpaid:       overpaid,
		},
	}
}

// classifyUnpaid dates an unpaid period relative to the evaluation date.
func classifyUnpaid(p Period, asOf rent.Date) PeriodStatus {
	switch {
	case p.EndDate.Before(asOf):
		return StatusOverdue
	case p.StartDate.BeforeOrEqual(asOf) && asOf.BeforeOrEqual(p.EndDate):
		return StatusCurrent
	default:
		return StatusFuture
	}
}

// projectDistribution allocates a hypothetical payment across unpaid
// periods without touching any state. It reuses the oldest-first rule.
func projectDistribution(unpaid []Period, amount decimal.Decimal) []DistributionEntry {
	var entries []DistributionEntry
	remaining := amount

	for _, p := range unpaid {
		if !remaining.IsPositive() {
			break
		}
		allocated := decimal.Min(remaining, p.RemainingAmount)
		entries = append(entries, DistributionEntry{
			PeriodNumber:    p.Number,
			StartDate:       p.StartDate,
			EndDate:         p.EndDate,
			DueAmount:       p.DueAmount,
			PaidAmount:      p.PaidAmount,
			RemainingBefore: p.RemainingAmount,
			Allocated:       allocated,
			RemainingAfter:  p.RemainingAmount.Sub(allocated),
			Status:          p.Status,
		})
		remaining = remaining.Sub(allocated)
	}

	return entries
}
