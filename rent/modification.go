package rent

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// =============================================================================
// MODIFICATION - Dated, typed adjustment to a contract
// =============================================================================

type ModificationType string

const (
	ModExtension    ModificationType = "extension"
	ModRentIncrease ModificationType = "rent_increase"
	ModRentDecrease ModificationType = "rent_decrease"
	ModDiscount     ModificationType = "discount"
	ModVAT          ModificationType = "vat"
	ModTermination  ModificationType = "termination"
)

// IsRentChange reports whether the type changes the annual rent.
func (t ModificationType) IsRentChange() bool {
	return t == ModRentIncrease || t == ModRentDecrease
}

// Detail is the type-specific payload of a modification. Exactly one
// concrete payload type exists per ModificationType, so fields that are
// meaningless for a given type simply do not exist.
type Detail interface {
	ModificationType() ModificationType

	// Summary returns a short human-readable description used on
	// account statements.
	Summary() string
}

// Modification is the shared envelope: which contract, when it takes
// effect, whether it has been applied, and the typed payload.
type Modification struct {
	ID            string
	ContractID    string
	EffectiveDate Date
	IsApplied     bool
	Detail        Detail
}

// Type returns the payload's modification type.
func (m *Modification) Type() ModificationType {
	if m.Detail == nil {
		return ""
	}
	return m.Detail.ModificationType()
}

// =============================================================================
// PAYLOAD VARIANTS
// =============================================================================

// RentChange raises or lowers the annual rent from the effective date.
// OldAnnualRent records the rent in force before the change; the earliest
// applied rent change is how the engine recovers a contract's original rent.
type RentChange struct {
	OldAnnualRent decimal.Decimal `json:"old_annual_rent"`
	NewAnnualRent decimal.Decimal `json:"new_annual_rent"`
	Decrease      bool            `json:"decrease"`
}

func (r RentChange) ModificationType() ModificationType {
	if r.Decrease {
		return ModRentDecrease
	}
	return ModRentIncrease
}

func (r RentChange) Summary() string {
	verb := "Rent increase"
	if r.Decrease {
		verb = "Rent decrease"
	}
	return fmt.Sprintf("%s: %s -> %s", verb, r.OldAnnualRent.StringFixed(2), r.NewAnnualRent.StringFixed(2))
}

// Discount credits a fixed amount against one billing period.
// PeriodNumber targets a specific period (1-based); zero means the first
// period on or after the effective date.
type Discount struct {
	Amount       decimal.Decimal `json:"amount"`
	PeriodNumber int             `json:"period_number,omitempty"`
}

func (d Discount) ModificationType() ModificationType { return ModDiscount }

func (d Discount) Summary() string {
	return fmt.Sprintf("Discount of %s", d.Amount.StringFixed(2))
}

// VAT debits a tax amount against one billing period. PeriodNumber works
// as for Discount.
type VAT struct {
	Amount       decimal.Decimal `json:"amount"`
	PeriodNumber int             `json:"period_number,omitempty"`
}

func (v VAT) ModificationType() ModificationType { return ModVAT }

func (v VAT) Summary() string {
	return fmt.Sprintf("VAT of %s", v.Amount.StringFixed(2))
}

// Extension lengthens the contract by a number of months.
type Extension struct {
	Months     int  `json:"months"`
	NewEndDate Date `json:"new_end_date"`
}

func (e Extension) ModificationType() ModificationType { return ModExtension }

func (e Extension) Summary() string {
	return fmt.Sprintf("Extension by %d months to %s", e.Months, e.NewEndDate)
}

// Termination ends the contract early, optionally at a specific period.
type Termination struct {
	PeriodNumber int    `json:"period_number,omitempty"`
	Reason       string `json:"reason,omitempty"`
}

func (t Termination) ModificationType() ModificationType { return ModTermination }

func (t Termination) Summary() string {
	if t.Reason != "" {
		return "Termination: " + t.Reason
	}
	return "Termination"
}

// =============================================================================
// PAYLOAD CODEC - type tag + JSON payload (used by the stores)
// =============================================================================

// EncodeDetail serializes a payload to JSON for persistence.
func EncodeDetail(d Detail) ([]byte, error) {
	if d == nil {
		return nil, fmt.Errorf("modification has no detail")
	}
	return json.Marshal(d)
}

// DecodeDetail reconstructs a payload from its type tag and JSON body.
func DecodeDetail(typ ModificationType, data []byte) (Detail, error) {
	switch typ {
	case ModRentIncrease:
		var r RentChange
		if err := json.Unmarshal(data, &r); err != nil {
			return nil, err
		}
		r.Decrease = false
		return r, nil
	case ModRentDecrease:
		var r RentChange
		if err := json.Unmarshal(data, &r); err != nil {
			return nil, err
		}
		r.Decrease = true
		return r, nil
	case ModDiscount:
		var d Discount
		if err := json.Unmarshal(data, &d); err != nil {
			return nil, err
		}
		return d, nil
	case ModVAT:
		var v VAT
		if err := json.Unmarshal(data, &v); err != nil {
			return nil, err
		}
		return v, nil
	case ModExtension:
		var e Extension
		if err := json.Unmarshal(data, &e); err != nil {
			return nil, err
		}
		return e, nil
	case ModTermination:
		var t Termination
		if err := json.Unmarshal(data, &t); err != nil {
			return nil, err
		}
		return t, nil
	default:
		return nil, fmt.Errorf("unknown modification type %q", typ)
	}
}
