/*
service.go - Financial service facade

PURPOSE:
  Composes the engine components behind one entry point per contract.
  Views and reports talk to a Service; nothing else in the application
  calls the calculators directly.

SNAPSHOT MODEL:
  A Service is built over an immutable snapshot of one contract, its
  modifications and its receipts, fetched by the caller at request time.
  Memoized results (periods with payments, summary) therefore can never
  go stale across requests: a write to modifications or receipts means
  building a new Service from fresh data. Invalidate() exists for callers
  that mutate and re-query within one request.

ERROR POLICY:
  Query methods degrade instead of failing: a contract whose dates cannot
  produce a billing schedule yields empty periods and zeroed totals, logged
  with the contract ID, so one bad contract cannot break a report over
  many. Validation outcomes are (bool, message) values. Only operations
  with no meaningful default (statement for a nil contract, settlement)
  return errors.

SEE ALSO:
  - periods.go, distribution.go, statement.go: the composed components
  - api/handlers.go: builds a Service per request from the store
*/
package finance

import (
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/warp/rent-engine/rent"
)

// Snapshot is the entity data a Service computes over, fetched at call
// time and treated as immutable.
type Snapshot struct {
	Contract      *rent.Contract
	Modifications []rent.Modification
	Receipts      []rent.Receipt

	// AsOf is the evaluation date; zero means today.
	AsOf rent.Date
}

// Service is the financial facade for one contract snapshot.
type Service struct {
	snap   Snapshot
	asOf   rent.Date
	logger *zap.Logger

	calc *PeriodCalculator

	// Memoized per snapshot; dropped by Invalidate().
	adjustments        map[rent.Date]Adjustment
	periodsWithPayment *PeriodsWithPayments
	summary            *Summary
}

// NewService builds a Service over a snapshot. logger may be nil.
func NewService(snap Snapshot, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	asOf := snap.AsOf
	if asOf.IsZero() {
		asOf = rent.Today()
	}
	if snap.Contract != nil {
		logger = logger.With(zap.String("contract_id", snap.Contract.ID))
	}
	return &Service{
		snap:   snap,
		asOf:   asOf,
		logger: logger,
		calc:   NewPeriodCalculator(snap.Contract, snap.Modifications, asOf, logger),
	}
}

// Invalidate drops every memoized result. Needed only when a caller
// mutates modification/receipt data and re-queries through the same
// Service instead of building a fresh one.
func (s *Service) Invalidate() {
	s.calc.Invalidate()
	s.adjustments = nil
	s.periodsWithPayment = nil
	s.summary = nil
}

// AsOf returns the service's evaluation date.
func (s *Service) AsOf() rent.Date { return s.asOf }

// =============================================================================
// CORE OPERATIONS
// =============================================================================

// ComputePeriods returns the billing periods up to endDate (zero = as-of).
// Calling it twice with the same arguments yields identical results.
func (s *Service) ComputePeriods(endDate rent.Date, includeFuture bool) []Period {
	if s.snap.Contract == nil {
		s.logger.Error("compute periods on nil contract")
		return nil
	}
	return s.calc.Periods(endDate, includeFuture)
}

// PeriodsWithPayments distributes the posted payment pool across the
// contract's periods. The result is memoized for the snapshot.
func (s *Service) PeriodsWithPayments() PeriodsWithPayments {
	if s.periodsWithPayment != nil {
		return *s.periodsWithPayment
	}
	if s.snap.Contract == nil {
		s.logger.Error("distribute payments on nil contract")
		return PeriodsWithPayments{Totals: zeroTotals()}
	}

	periods := s.calc.Periods(rent.Date{}, false)
	totalPaid := sumPostedPayments(s.snap.Receipts)
	result := distribute(periods, s.adjustmentMap(), totalPaid, s.asOf)

	s.periodsWithPayment = &result
	return result
}

// GenerateStatement builds the chronological account ledger up to endDate
// (zero = as-of).
func (s *Service) GenerateStatement(endDate rent.Date, includeFuture bool) (*Statement, error) {
	if s.snap.Contract == nil {
		return nil, ErrNilContract
	}
	if endDate.IsZero() {
		endDate = s.asOf
	}

	periods := s.calc.Periods(endDate, includeFuture)
	stmt := buildStatement(s.snap.Contract, periods, s.snap.Modifications, s.snap.Receipts, endDate)
	return stmt, nil
}

// ValidateModification checks a proposed modification against the
// contract's temporal and uniqueness constraints. The message is empty on
// success.
func (s *Service) ValidateModification(in ValidationInput) (bool, string) {
	if s.snap.Contract == nil {
		return false, "no contract"
	}
	periodCount := len(s.calc.Periods(rent.Date{}, false))
	return validateModification(s.snap.Contract, s.snap.Modifications, periodCount, in)
}

// =============================================================================
// AGGREGATE QUERIES
// =============================================================================

// UnpaidPeriods returns the periods still carrying a remaining amount.
func (s *Service) UnpaidPeriods() []Period {
	var out []Period
	for _, p := range s.PeriodsWithPayments().Periods {
		if p.RemainingAmount.IsPositive() {
			out = append(out, p)
		}
	}
	return out
}

// DuePeriods returns the periods a tenant currently owes on: overdue,
// current, or partially paid.
func (s *Service) DuePeriods() []Period {
	var out []Period
	for _, p := range s.PeriodsWithPayments().Periods {
		switch p.Status {
		case StatusOverdue, StatusCurrent, StatusPartial:
			out = append(out, p)
		}
	}
	return out
}

// OutstandingAmount sums the remaining amounts of overdue, current and
// partial periods, optionally including future ones.
func (s *Service) OutstandingAmount(includeFuture bool) decimal.Decimal {
	total := decimal.Zero
	for _, p := range s.PeriodsWithPayments().Periods {
		switch p.Status {
		case StatusOverdue, StatusCurrent, StatusPartial:
			total = total.Add(p.RemainingAmount)
		case StatusFuture:
			if includeFuture {
				total = total.Add(p.RemainingAmount)
			}
		}
	}
	return total
}

// UnpaidPeriodsRange summarizes the first-to-last span of unpaid periods,
// or nil when everything is settled.
func (s *Service) UnpaidPeriodsRange() *UnpaidRange {
	unpaid := s.UnpaidPeriods()
	if len(unpaid) == 0 {
		return nil
	}

	total := decimal.Zero
	for _, p := range unpaid {
		total = total.Add(p.RemainingAmount)
	}

	first, last := unpaid[0], unpaid[len(unpaid)-1]
	return &UnpaidRange{
		StartDate:         first.StartDate,
		EndDate:           last.EndDate,
		UnpaidPeriods:     unpaid,
		UnpaidCount:       len(unpaid),
		TotalUnpaidAmount: total,
		FirstPeriodNumber: first.Number,
		LastPeriodNumber:  last.Number,
	}
}

// ContractSummary buckets the contract's periods by status. Memoized.
func (s *Service) ContractSummary() Summary {
	if s.summary != nil {
		return *s.summary
	}

	data := s.PeriodsWithPayments()
	summary := Summary{
		TotalPeriods:       len(data.Periods),
		TotalContractValue: data.Totals.TotalDue,
		TotalPaid:          data.Totals.TotalPaid,
		TotalRemaining:     data.Totals.TotalRemaining,
		Outstanding:        s.OutstandingAmount(false),
	}

	for _, p := range data.Periods {
		p := p
		switch p.Status {
		case StatusPaid:
			summary.PaidPeriods = append(summary.PaidPeriods, p)
		case StatusPartial:
			summary.PartialPeriods = append(summary.PartialPeriods, p)
		case StatusOverdue:
			summary.OverduePeriods = append(summary.OverduePeriods, p)
		case StatusCurrent:
			summary.CurrentPeriod = &p
		case StatusFuture:
			summary.FuturePeriods = append(summary.FuturePeriods, p)
		}
	}

	s.summary = &summary
	return summary
}

// DistributionPreview projects how a hypothetical payment would allocate
// across the unpaid periods. Pure projection; no state changes.
func (s *Service) DistributionPreview(amount decimal.Decimal) []DistributionEntry {
	return projectDistribution(s.UnpaidPeriods(), amount)
}

// Settlement computes the termination reconciliation for this snapshot.
// Failures come back as a ComputationError wrapping the cause.
func (s *Service) Settlement(terminationDate rent.Date) (*Settlement, error) {
	settlement, err := TerminationSettlement(s.snap.Contract, s.snap.Receipts, terminationDate)
	if err != nil {
		s.logger.Error("settlement failed", zap.Error(err))
		return nil, &ComputationError{ContractID: s.contractID(), Op: "settlement", Err: err}
	}
	s.logger.Info("settlement calculated",
		zap.String("total_due", settlement.TotalRentDue.StringFixed(2)),
		zap.String("total_paid", settlement.TotalPaid.StringFixed(2)),
		zap.String("outstanding", settlement.Outstanding.StringFixed(2)))
	return settlement, nil
}

// TenantReportData flattens the contract's financial position into one
// report row. Degrades to zeroed figures on a misconfigured contract.
func (s *Service) TenantReportData() TenantReport {
	c := s.snap.Contract
	if c == nil {
		return TenantReport{}
	}

	report := TenantReport{
		ContractID:        c.ID,
		ContractNumber:    c.ContractNumber,
		TenantID:          c.TenantID,
		TenantName:        c.TenantName,
		TenantPhone:       c.TenantPhone,
		Location:          c.Location,
		UnitLabel:         c.UnitLabel,
		BuildingName:      c.BuildingName,
		AnnualRent:        c.AnnualRent,
		Outstanding:       s.OutstandingAmount(false),
		TotalUnpaidAmount: decimal.Zero,
		TotalOverdue:      decimal.Zero,
	}

	if due := s.DuePeriods(); len(due) > 0 {
		report.DuePeriodFrom = due[0].StartDate
		report.DuePeriodTo = due[0].EndDate
	}

	summary := s.ContractSummary()
	for _, p := range summary.OverduePeriods {
		report.TotalOverdue = report.TotalOverdue.Add(p.RemainingAmount)
	}
	report.OverdueCount = len(summary.OverduePeriods)

	if r := s.UnpaidPeriodsRange(); r != nil {
		report.UnpaidRangeStart = r.StartDate
		report.UnpaidRangeEnd = r.EndDate
		report.UnpaidCount = r.UnpaidCount
		report.TotalUnpaidAmount = r.TotalUnpaidAmount
	}

	return report
}

// AnnualRentOn returns the annual rent in force on the given date,
// accounting for applied rent changes.
func (s *Service) AnnualRentOn(d rent.Date) decimal.Decimal {
	c := s.snap.Contract
	if c == nil {
		return decimal.Zero
	}
	timeline := buildRentTimeline(c, appliedRentChanges(s.snap.Modifications), c.PeriodMonths())
	return applicableSegment(timeline, d).AnnualRent
}

// ExtendedEndDate returns the contract end date pushed out by the given
// number of months.
func (s *Service) ExtendedEndDate(months int) rent.Date {
	if s.snap.Contract == nil {
		return rent.Date{}
	}
	return s.snap.Contract.EndDate.AddMonths(months)
}

func (s *Service) contractID() string {
	if s.snap.Contract == nil {
		return "unknown"
	}
	return s.snap.Contract.ID
}

func (s *Service) adjustmentMap() map[rent.Date]Adjustment {
	if s.adjustments == nil {
		s.adjustments = buildAdjustmentMap(s.snap.Contract, s.snap.Modifications)
	}
	return s.adjustments
}

func zeroTotals() Totals {
	return Totals{
		TotalDue:       decimal.Zero,
		TotalPaid:      decimal.Zero,
		TotalRemaining: decimal.Zero,
		Overpaid:       decimal.Zero,
	}
}

// TenantsReport builds report rows for many contracts. A contract whose
// snapshot fails to compute is logged and reported with zeroed figures;
// the batch always completes.
func TenantsReport(snaps []Snapshot, logger *zap.Logger) []TenantReport {
	reports := make([]TenantReport, 0, len(snaps))
	for _, snap := range snaps {
		reports = append(reports, NewService(snap, logger).TenantReportData())
	}
	return reports
}
