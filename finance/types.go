/*
Package finance is the contract financial engine.

PURPOSE:
  Given a contract's terms (base annual rent, payment frequency), its dated
  modifications (rent changes, discounts, VAT, extensions, terminations)
  and its posted receipts, the engine computes:
    - the billing due-date schedule            (duedates.go)
    - time-bounded rent segments               (timeline.go)
    - billing periods with due amounts         (periods.go)
    - per-due-date VAT/discount adjustments    (adjustments.go)
    - oldest-first payment distribution        (distribution.go)
    - a chronological account statement        (statement.go)
    - modification validation                  (validate.go)
    - termination settlements                  (settlement.go)
  composed behind a per-contract Service       (service.go).

DESIGN PRINCIPLES:
  1. Pure computation: everything here is a function over a snapshot of
     entity data taken at call time. The engine never writes to the store.
  2. Precision: decimal.Decimal throughout; rounding only where the rules
     demand it (money.go).
  3. Degrade, don't crash: misconfigured contracts produce empty schedules
     and zeroed totals, logged with the contract ID. A bad contract must
     never take down a batch report.
  4. Bounded: the due-date generator is hard-capped at 1000 periods.

SEE ALSO:
  - rent/: the entities consumed here, all read-only to this package
  - api/: the HTTP surface that feeds snapshots into a Service
*/
package finance

import (
	"github.com/shopspring/decimal"

	"github.com/warp/rent-engine/rent"
)

// MaxPeriods caps the due-date schedule against misconfigured contracts
// (inverted or absurdly long date ranges). Generation past the cap is
// silently truncated.
const MaxPeriods = 1000

// =============================================================================
// PERIOD - One billing interval, derived per query
// =============================================================================

type PeriodStatus string

const (
	StatusPaid    PeriodStatus = "paid"
	StatusPartial PeriodStatus = "partial"
	StatusOverdue PeriodStatus = "overdue"
	StatusCurrent PeriodStatus = "current"
	StatusFuture  PeriodStatus = "future"
)

// Period is one billing interval anchored at a due date. Periods are
// recomputed on every query and never persisted.
//
// Before distribution, DueAmount is the base rent for the period. After
// distribution it includes the period's VAT/discount adjustment, and
// BaseRent holds the pre-adjustment amount.
type Period struct {
	Number      int             `json:"period_number"`
	StartDate   rent.Date       `json:"start_date"`
	EndDate     rent.Date       `json:"end_date"`
	DueAmount   decimal.Decimal `json:"due_amount"`
	AnnualRent  decimal.Decimal `json:"annual_rent"`
	Source      string          `json:"source"`
	Description string          `json:"description"`
	IsFuture    bool            `json:"is_future"`

	// Set by payment distribution.
	BaseRent        decimal.Decimal `json:"base_rent"`
	Adjustment      Adjustment      `json:"modifications"`
	PaidAmount      decimal.Decimal `json:"paid_amount"`
	RemainingAmount decimal.Decimal `json:"remaining_amount"`
	Status          PeriodStatus    `json:"status,omitempty"`
}

// =============================================================================
// RENT SEGMENT - One stretch of the rent timeline
// =============================================================================

// RentSegment is a date range over which one annual rent is in effect.
// ToDate is exclusive; a zero ToDate means open-ended (the last segment).
type RentSegment struct {
	FromDate   rent.Date
	ToDate     rent.Date
	AnnualRent decimal.Decimal
	PeriodRent decimal.Decimal
	Source     string
}

// covers reports whether the segment is in effect on the given due date.
func (s RentSegment) covers(d rent.Date) bool {
	return s.FromDate.BeforeOrEqual(d) && (s.ToDate.IsZero() || s.ToDate.After(d))
}

// =============================================================================
// ADJUSTMENT - Per-due-date VAT/discount record
// =============================================================================

type Adjustment struct {
	VATAmount        decimal.Decimal `json:"vat_amount"`
	DiscountAmount   decimal.Decimal `json:"discount_amount"`
	Total            decimal.Decimal `json:"total"`
	HasModifications bool            `json:"has_modifications"`
}

func zeroAdjustment() Adjustment {
	return Adjustment{
		VATAmount:      decimal.Zero,
		DiscountAmount: decimal.Zero,
		Total:          decimal.Zero,
	}
}

// =============================================================================
// DISTRIBUTION RESULTS
// =============================================================================

type Totals struct {
	TotalDue       decimal.Decimal `json:"total_due"`
	TotalPaid      decimal.Decimal `json:"total_paid"`
	TotalRemaining decimal.Decimal `json:"total_remaining"`
	Overpaid       decimal.Decimal `json:"overpaid"`
}

// PeriodsWithPayments is the output of payment distribution.
type PeriodsWithPayments struct {
	Periods []Period `json:"periods"`
	Totals  Totals   `json:"totals"`
}

// DistributionEntry is one row of a hypothetical payment allocation
// (a pure projection; nothing is written).
type DistributionEntry struct {
	PeriodNumber    int             `json:"period_number"`
	StartDate       rent.Date       `json:"start_date"`
	EndDate         rent.Date       `json:"end_date"`
	DueAmount       decimal.Decimal `json:"due_amount"`
	PaidAmount      decimal.Decimal `json:"paid_amount"`
	RemainingBefore decimal.Decimal `json:"remaining_before"`
	Allocated       decimal.Decimal `json:"allocated_amount"`
	RemainingAfter  decimal.Decimal `json:"remaining_after"`
	Status          PeriodStatus    `json:"status"`
}

// =============================================================================
// STATEMENT
// =============================================================================

type LineType string

const (
	LinePeriod       LineType = "period"
	LineModification LineType = "modification"
	LinePayment      LineType = "payment"
)

// StatementLine is one ledger row. Balance(i) = Balance(i-1) + Debit - Credit.
type StatementLine struct {
	Date         rent.Date       `json:"date"`
	Type         LineType        `json:"type"`
	Description  string          `json:"description"`
	Debit        decimal.Decimal `json:"debit"`
	Credit       decimal.Decimal `json:"credit"`
	Balance      decimal.Decimal `json:"balance"`
	Reference    string          `json:"reference,omitempty"`
	PeriodNumber int             `json:"period_number,omitempty"`
}

type StatementSummary struct {
	ContractNumber     int             `json:"contract_number"`
	TenantName         string          `json:"tenant_name"`
	StartDate          rent.Date       `json:"start_date"`
	EndDate            rent.Date       `json:"end_date"`
	ActualEndDate      rent.Date       `json:"actual_end_date"`
	StatementEndDate   rent.Date       `json:"statement_end_date"`
	TotalDebit         decimal.Decimal `json:"total_debit"`
	TotalCredit        decimal.Decimal `json:"total_credit"`
	FinalBalance       decimal.Decimal `json:"final_balance"`
	IsOverdue          bool            `json:"is_overdue"`
	IsOverpaid         bool            `json:"is_overpaid"`
	IsSettled          bool            `json:"is_settled"`
	TotalPeriods       int             `json:"total_periods"`
	TotalPayments      int             `json:"total_payments"`
	TotalModifications int             `json:"total_modifications"`
}

type Statement struct {
	Lines   []StatementLine  `json:"lines"`
	Summary StatementSummary `json:"summary"`
	Periods []Period         `json:"periods"`
}

// =============================================================================
// AGGREGATE QUERY SHAPES
// =============================================================================

// UnpaidRange summarizes the span of periods still carrying a balance.
type UnpaidRange struct {
	StartDate         rent.Date       `json:"start_date"`
	EndDate           rent.Date       `json:"end_date"`
	UnpaidPeriods     []Period        `json:"unpaid_periods"`
	UnpaidCount       int             `json:"unpaid_periods_count"`
	TotalUnpaidAmount decimal.Decimal `json:"total_unpaid_amount"`
	FirstPeriodNumber int             `json:"first_period_number"`
	LastPeriodNumber  int             `json:"last_period_number"`
}

// Summary buckets a contract's periods by status.
type Summary struct {
	TotalPeriods       int             `json:"total_periods"`
	PaidPeriods        []Period        `json:"paid_periods"`
	PartialPeriods     []Period        `json:"partial_periods"`
	OverduePeriods     []Period        `json:"overdue_periods"`
	CurrentPeriod      *Period         `json:"current_period"`
	FuturePeriods      []Period        `json:"future_periods"`
	TotalContractValue decimal.Decimal `json:"total_contract_value"`
	TotalPaid          decimal.Decimal `json:"total_paid"`
	TotalRemaining     decimal.Decimal `json:"total_remaining"`
	Outstanding        decimal.Decimal `json:"outstanding"`
}

// TenantReport is the per-contract row of the tenants report.
type TenantReport struct {
	ContractID        string          `json:"contract_id"`
	ContractNumber    int             `json:"contract_number"`
	TenantID          string          `json:"tenant_id"`
	TenantName        string          `json:"tenant_name"`
	TenantPhone       string          `json:"tenant_phone"`
	Location          string          `json:"location"`
	UnitLabel         string          `json:"unit_label"`
	BuildingName      string          `json:"building_name"`
	AnnualRent        decimal.Decimal `json:"annual_rent"`
	Outstanding       decimal.Decimal `json:"outstanding_amount"`
	DuePeriodFrom     rent.Date       `json:"due_period_from"`
	DuePeriodTo       rent.Date       `json:"due_period_to"`
	TotalOverdue      decimal.Decimal `json:"total_overdue"`
	OverdueCount      int             `json:"overdue_periods_count"`
	UnpaidRangeStart  rent.Date       `json:"unpaid_range_start"`
	UnpaidRangeEnd    rent.Date       `json:"unpaid_range_end"`
	UnpaidCount       int             `json:"unpaid_periods_count"`
	TotalUnpaidAmount decimal.Decimal `json:"total_unpaid_amount"`
}
