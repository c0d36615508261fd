/*
Package rent defines the domain entities of the property-rental system.

PURPOSE:
  This package contains the persistent entities - contracts, modifications,
  receipts, tenants - and the calendar Date type they share. It has no
  knowledge of how billing periods or statements are computed; that lives in
  the finance package, which treats everything here as read-only input.

KEY CONCEPTS:
  - Contract: a lease with an annual rent and a payment frequency
  - Modification: a dated, typed adjustment to a contract's terms
  - Receipt: a posted payment against a contract
  - Date: a calendar date with month-arithmetic (date.go)

DESIGN PRINCIPLES:
  1. Precision: decimal.Decimal for all monetary values, never floats
  2. Read-only core: the finance engine never mutates these entities
  3. Tagged variants: modification payloads are typed per modification kind
     instead of one wide struct of nullable fields

SEE ALSO:
  - modification.go: Modification envelope and payload variants
  - receipt.go: Receipt statuses and payment methods
  - finance/: the computation engine consuming these entities
*/
package rent

import (
	"github.com/shopspring/decimal"
)

// =============================================================================
// PAYMENT FREQUENCY
// =============================================================================

type PaymentFrequency string

const (
	FrequencyMonthly    PaymentFrequency = "monthly"
	FrequencyQuarterly  PaymentFrequency = "quarterly"
	FrequencySemiAnnual PaymentFrequency = "semi_annual"
	FrequencyAnnual     PaymentFrequency = "annual"
)

// DefaultPeriodMonths is used when a contract carries an unknown frequency.
const DefaultPeriodMonths = 6

// Months returns the billing period length in calendar months.
func (f PaymentFrequency) Months() int {
	switch f {
	case FrequencyMonthly:
		return 1
	case FrequencyQuarterly:
		return 3
	case FrequencySemiAnnual:
		return 6
	case FrequencyAnnual:
		return 12
	default:
		return DefaultPeriodMonths
	}
}

// Display returns a human-readable label for statement descriptions.
func (f PaymentFrequency) Display() string {
	switch f {
	case FrequencyMonthly:
		return "monthly"
	case FrequencyQuarterly:
		return "quarterly"
	case FrequencySemiAnnual:
		return "semi-annual"
	case FrequencyAnnual:
		return "annual"
	default:
		return string(f)
	}
}

// =============================================================================
// CONTRACT
// =============================================================================

type ContractStatus string

const (
	ContractDraft      ContractStatus = "draft"
	ContractActive     ContractStatus = "active"
	ContractExpired    ContractStatus = "expired"
	ContractTerminated ContractStatus = "terminated"
	ContractSuspended  ContractStatus = "suspended"
)

// Contract is a lease agreement. The finance engine reads it but never
// writes to it; all mutation happens through the store.
type Contract struct {
	ID             string
	ContractNumber int

	TenantID    string
	TenantName  string
	TenantPhone string

	BuildingName string
	UnitLabel    string
	Location     string

	StartDate Date
	EndDate   Date

	// ActualEndDate is set when the contract is terminated early.
	// Zero value means the contract runs to EndDate.
	ActualEndDate Date

	AnnualRent       decimal.Decimal
	PaymentFrequency PaymentFrequency
	SecurityDeposit  decimal.Decimal
	Status           ContractStatus
	Notes            string
}

// PeriodMonths returns the billing period length for this contract.
func (c *Contract) PeriodMonths() int {
	return c.PaymentFrequency.Months()
}

// IsTerminated reports whether the contract was ended before its end date.
func (c *Contract) IsTerminated() bool {
	return c.Status == ContractTerminated
}

// =============================================================================
// TENANT
// =============================================================================

type Tenant struct {
	ID    string
	Name  string
	Phone string
	Email string
}
