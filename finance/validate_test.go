package finance_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/warp/rent-engine/finance"
	"github.com/warp/rent-engine/rent"
)

// =============================================================================
// MODIFICATION VALIDATION TESTS
// =============================================================================

func TestValidateRejectsDateOutsideContract(t *testing.T) {
	c := testContract("120000", rent.FrequencyQuarterly,
		date(2024, time.January, 1), date(2024, time.December, 31))
	svc := newService(c, nil, nil, date(2024, time.June, 1))

	tests := []struct {
		name string
		when rent.Date
	}{
		{"before start", date(2023, time.December, 31)},
		{"after end", date(2025, time.January, 1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, msg := svc.ValidateModification(finance.ValidationInput{
				Type:          rent.ModDiscount,
				EffectiveDate: tt.when,
			})
			assert.False(t, ok)
			assert.Contains(t, msg, "within the contract term")
		})
	}
}

func TestValidateRequiresRentChangeOnDueDate(t *testing.T) {
	c := testContract("120000", rent.FrequencyQuarterly,
		date(2024, time.January, 1), date(2024, time.December, 31))
	svc := newService(c, nil, nil, date(2024, time.June, 1))

	// Mid-period date: rejected, message lists the valid due dates
	ok, msg := svc.ValidateModification(finance.ValidationInput{
		Type:          rent.ModRentIncrease,
		EffectiveDate: date(2024, time.May, 15),
	})
	assert.False(t, ok)
	assert.Contains(t, msg, "2024-04-01")

	// Exact due date: accepted
	ok, msg = svc.ValidateModification(finance.ValidationInput{
		Type:          rent.ModRentIncrease,
		EffectiveDate: date(2024, time.July, 1),
	})
	assert.True(t, ok)
	assert.Empty(t, msg)
}

func TestValidateRejectsSecondRentChangeOnSameDate(t *testing.T) {
	c := testContract("150000", rent.FrequencyQuarterly,
		date(2024, time.January, 1), date(2024, time.December, 31))
	mods := []rent.Modification{{
		ID:            "m-1",
		ContractID:    c.ID,
		EffectiveDate: date(2024, time.July, 1),
		IsApplied:     true,
		Detail: rent.RentChange{
			OldAnnualRent: money("120000"),
			NewAnnualRent: money("150000"),
		},
	}}
	svc := newService(c, mods, nil, date(2024, time.June, 1))

	ok, msg := svc.ValidateModification(finance.ValidationInput{
		Type:          rent.ModRentDecrease,
		EffectiveDate: date(2024, time.July, 1),
	})
	assert.False(t, ok)
	assert.Contains(t, msg, "only one rent change per effective date")

	// A different due date is still fine
	ok, _ = svc.ValidateModification(finance.ValidationInput{
		Type:          rent.ModRentDecrease,
		EffectiveDate: date(2024, time.October, 1),
	})
	assert.True(t, ok)
}

func TestValidatePeriodNumberBounds(t *testing.T) {
	// GIVEN: As-of June, so 2 quarterly periods are in scope
	c := testContract("120000", rent.FrequencyQuarterly,
		date(2024, time.January, 1), date(2024, time.December, 31))
	svc := newService(c, nil, nil, date(2024, time.June, 1))

	ok, msg := svc.ValidateModification(finance.ValidationInput{
		Type:          rent.ModVAT,
		EffectiveDate: date(2024, time.February, 1),
		PeriodNumber:  7,
	})
	assert.False(t, ok)
	assert.Contains(t, msg, "only 2 periods")

	// Zero means "not targeted" and is always allowed
	ok, _ = svc.ValidateModification(finance.ValidationInput{
		Type:          rent.ModVAT,
		EffectiveDate: date(2024, time.February, 1),
	})
	assert.True(t, ok)

	// Period numbers only apply to discount/VAT
	ok, _ = svc.ValidateModification(finance.ValidationInput{
		Type:          rent.ModExtension,
		EffectiveDate: date(2024, time.February, 1),
		PeriodNumber:  7,
	})
	assert.True(t, ok)
}

func TestValidateShortCircuitsOnFirstFailure(t *testing.T) {
	// A rent change outside the contract fails the date check before the
	// due-date check runs; the message is about the contract term.
	c := testContract("120000", rent.FrequencyQuarterly,
		date(2024, time.January, 1), date(2024, time.December, 31))
	svc := newService(c, nil, nil, date(2024, time.June, 1))

	ok, msg := svc.ValidateModification(finance.ValidationInput{
		Type:          rent.ModRentIncrease,
		EffectiveDate: date(2026, time.January, 1),
	})
	assert.False(t, ok)
	assert.Contains(t, msg, "within the contract term")
	assert.NotContains(t, msg, "due dates")
}
