package finance

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/warp/rent-engine/rent"
)

// =============================================================================
// PERIOD CALCULATOR
// =============================================================================

// periodsKey keys the per-calculator memo. Date is comparable, so the pair
// can be used directly as a map key.
type periodsKey struct {
	endDate       rent.Date
	includeFuture bool
}

// PeriodCalculator derives billing periods for one contract snapshot.
// Results are memoized per (endDate, includeFuture); a calculator is
// request-scoped, so the memo never outlives the snapshot it was built
// from.
type PeriodCalculator struct {
	contract *rent.Contract
	mods     []rent.Modification
	asOf     rent.Date
	logger   *zap.Logger

	memo     map[periodsKey][]Period
	timeline []RentSegment
}

// NewPeriodCalculator builds a calculator over a contract snapshot.
// asOf defaults to today; logger may be nil.
func NewPeriodCalculator(contract *rent.Contract, mods []rent.Modification, asOf rent.Date, logger *zap.Logger) *PeriodCalculator {
	if asOf.IsZero() {
		asOf = rent.Today()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PeriodCalculator{
		contract: contract,
		mods:     mods,
		asOf:     asOf,
		logger:   logger,
		memo:     make(map[periodsKey][]Period),
	}
}

// Invalidate drops the memoized results and timeline.
func (pc *PeriodCalculator) Invalidate() {
	pc.memo = make(map[periodsKey][]Period)
	pc.timeline = nil
}

// Periods returns the contract's billing periods up to endDate (zero =
// the calculator's as-of date). Unless includeFuture is set, periods whose
// due date falls after the effective end date are excluded entirely.
//
// A contract with no derivable due dates yields an empty slice.
func (pc *PeriodCalculator) Periods(endDate rent.Date, includeFuture bool) []Period {
	key := periodsKey{endDate: endDate, includeFuture: includeFuture}
	if cached, ok := pc.memo[key]; ok {
		return cached
	}
	if pc.contract == nil {
		return nil
	}

	effectiveEnd := pc.effectiveEndDate(endDate)
	dueDates := DueDates(pc.contract)
	if len(dueDates) == 0 {
		pc.logger.Warn("no due dates for contract",
			zap.String("contract_id", pc.contractID()))
		return nil
	}

	periodMonths := pc.contract.PeriodMonths()
	timeline := pc.rentTimeline(periodMonths)
	periods := pc.createPeriods(dueDates, effectiveEnd, includeFuture, periodMonths, timeline)

	pc.memo[key] = periods
	return periods
}

// effectiveEndDate resolves the evaluation cutoff: the requested end date
// (default as-of), pulled back to the actual end date for terminated
// contracts ended earlier.
func (pc *PeriodCalculator) effectiveEndDate(endDate rent.Date) rent.Date {
	if endDate.IsZero() {
		endDate = pc.asOf
	}
	if pc.contract.IsTerminated() &&
		!pc.contract.ActualEndDate.IsZero() &&
		endDate.After(pc.contract.ActualEndDate) {
		return pc.contract.ActualEndDate
	}
	return endDate
}

// rentTimeline memoizes the rent timeline for the snapshot.
func (pc *PeriodCalculator) rentTimeline(periodMonths int) []RentSegment {
	if pc.timeline == nil {
		pc.timeline = buildRentTimeline(pc.contract, appliedRentChanges(pc.mods), periodMonths)
	}
	return pc.timeline
}

func (pc *PeriodCalculator) createPeriods(dueDates []rent.Date, endDate rent.Date, includeFuture bool, periodMonths int, timeline []RentSegment) []Period {
	var periods []Period

	for i, dueDate := range dueDates {
		if !includeFuture && dueDate.After(endDate) {
			continue
		}

		seg := applicableSegment(timeline, dueDate)

		periods = append(periods, Period{
			Number:      i + 1,
			StartDate:   dueDate,
			EndDate:     pc.periodEnd(dueDate, periodMonths),
			DueAmount:   seg.PeriodRent,
			AnnualRent:  seg.AnnualRent,
			Source:      seg.Source,
			Description: fmt.Sprintf("Installment %d (%s)", i+1, pc.contract.PaymentFrequency.Display()),
			IsFuture:    dueDate.After(endDate),
		})
	}

	pc.logger.Debug("generated periods",
		zap.String("contract_id", pc.contractID()),
		zap.Int("count", len(periods)))
	return periods
}

// periodEnd is the day before the next due date, clamped to the contract
// end date.
func (pc *PeriodCalculator) periodEnd(start rent.Date, periodMonths int) rent.Date {
	end := start.AddMonths(periodMonths).AddDays(-1)
	return end.Min(pc.contract.EndDate)
}

func (pc *PeriodCalculator) contractID() string {
	if pc.contract == nil {
		return "unknown"
	}
	return pc.contract.ID
}
