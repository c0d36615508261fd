package finance_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/rent-engine/finance"
	"github.com/warp/rent-engine/rent"
)

// =============================================================================
// ACCOUNT STATEMENT TESTS
// =============================================================================

func TestStatementRunningBalanceInvariant(t *testing.T) {
	// GIVEN: A quarterly contract with a VAT charge, a discount and payments
	c := testContract("120000", rent.FrequencyQuarterly,
		date(2024, time.January, 1), date(2024, time.December, 31))
	mods := []rent.Modification{
		vatMod("m-1", "4500", date(2024, time.April, 1), 0),
		discountMod("m-2", "1500", date(2024, time.July, 1), 0),
	}
	receipts := []rent.Receipt{
		postedReceipt("r-1", "30000", date(2024, time.January, 10)),
		postedReceipt("r-2", "20000", date(2024, time.May, 3)),
	}
	svc := newService(c, mods, receipts, date(2024, time.December, 31))

	// WHEN: Generating the statement
	stmt, err := svc.GenerateStatement(rent.Date{}, false)
	require.NoError(t, err)

	// THEN: balance(i) = balance(i-1) + debit - credit on every line
	prev := money("0")
	for i, line := range stmt.Lines {
		expected := prev.Add(line.Debit).Sub(line.Credit)
		assert.True(t, line.Balance.Equal(expected), "line %d balance mismatch", i)
		prev = line.Balance
	}

	// And the summary totals reconcile with the last line
	require.NotEmpty(t, stmt.Lines)
	last := stmt.Lines[len(stmt.Lines)-1]
	assert.True(t, stmt.Summary.FinalBalance.Equal(last.Balance))
	assert.True(t, stmt.Summary.FinalBalance.Equal(
		stmt.Summary.TotalDebit.Sub(stmt.Summary.TotalCredit)))
}

func TestStatementChronologicalWithSameDayPriorities(t *testing.T) {
	// GIVEN: A payment made exactly on a due date
	c := testContract("120000", rent.FrequencyQuarterly,
		date(2024, time.January, 1), date(2024, time.December, 31))
	receipts := []rent.Receipt{postedReceipt("r-1", "30000", date(2024, time.April, 1))}
	svc := newService(c, nil, receipts, date(2024, time.June, 1))

	stmt, err := svc.GenerateStatement(rent.Date{}, false)
	require.NoError(t, err)

	// THEN: The April charge precedes the April payment, so the payment
	// settles the charge raised that day
	var aprilTypes []finance.LineType
	for _, line := range stmt.Lines {
		if line.Date.Equal(date(2024, time.April, 1)) {
			aprilTypes = append(aprilTypes, line.Type)
		}
	}
	require.Equal(t, []finance.LineType{finance.LinePeriod, finance.LinePayment}, aprilTypes)

	// Dates never decrease
	for i := 1; i < len(stmt.Lines); i++ {
		assert.False(t, stmt.Lines[i].Date.Before(stmt.Lines[i-1].Date))
	}
}

func TestStatementDiscountCreditsAndVATDebits(t *testing.T) {
	c := testContract("120000", rent.FrequencyQuarterly,
		date(2024, time.January, 1), date(2024, time.December, 31))
	mods := []rent.Modification{
		vatMod("m-1", "4500", date(2024, time.April, 2), 0),
		discountMod("m-2", "1500", date(2024, time.April, 3), 0),
	}
	svc := newService(c, mods, nil, date(2024, time.June, 1))

	stmt, err := svc.GenerateStatement(rent.Date{}, false)
	require.NoError(t, err)

	byRef := map[string]finance.StatementLine{}
	for _, line := range stmt.Lines {
		if line.Type == finance.LineModification {
			byRef[line.Reference] = line
		}
	}

	require.Contains(t, byRef, "MOD-m-1")
	assert.Equal(t, "4500.00", byRef["MOD-m-1"].Debit.StringFixed(2))
	assert.True(t, byRef["MOD-m-1"].Credit.IsZero())

	require.Contains(t, byRef, "MOD-m-2")
	assert.Equal(t, "1500.00", byRef["MOD-m-2"].Credit.StringFixed(2))
	assert.True(t, byRef["MOD-m-2"].Debit.IsZero())
}

func TestStatementRentChangeIsZeroAmountMarker(t *testing.T) {
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
	svc := newService(c, mods, nil, date(2024, time.December, 31))

	stmt, err := svc.GenerateStatement(rent.Date{}, false)
	require.NoError(t, err)

	var marker *finance.StatementLine
	for i := range stmt.Lines {
		if stmt.Lines[i].Reference == "MOD-m-1" {
			marker = &stmt.Lines[i]
		}
	}
	require.NotNil(t, marker)
	assert.True(t, marker.Debit.IsZero())
	assert.True(t, marker.Credit.IsZero())
	// The rent change still shows through the period charges themselves.
	assert.Equal(t, "135000.00", stmt.Summary.TotalDebit.StringFixed(2))
}

func TestStatementExcludesEntriesAfterEndDate(t *testing.T) {
	c := testContract("120000", rent.FrequencyQuarterly,
		date(2024, time.January, 1), date(2024, time.December, 31))
	receipts := []rent.Receipt{
		postedReceipt("r-1", "30000", date(2024, time.January, 10)),
		postedReceipt("r-2", "30000", date(2024, time.September, 1)),
	}
	svc := newService(c, nil, receipts, date(2024, time.December, 31))

	stmt, err := svc.GenerateStatement(date(2024, time.May, 1), false)
	require.NoError(t, err)

	assert.Equal(t, 1, stmt.Summary.TotalPayments)
	assert.Equal(t, 2, stmt.Summary.TotalPeriods)
	assert.Equal(t, date(2024, time.May, 1), stmt.Summary.StatementEndDate)
}

func TestStatementIncludesClearedButNotDraftReceipts(t *testing.T) {
	c := testContract("120000", rent.FrequencyQuarterly,
		date(2024, time.January, 1), date(2024, time.December, 31))
	cleared := postedReceipt("r-1", "10000", date(2024, time.January, 10))
	cleared.Status = rent.ReceiptCleared
	draft := postedReceipt("r-2", "10000", date(2024, time.January, 11))
	draft.Status = rent.ReceiptDraft
	svc := newService(c, nil, []rent.Receipt{cleared, draft}, date(2024, time.June, 1))

	stmt, err := svc.GenerateStatement(rent.Date{}, false)
	require.NoError(t, err)

	assert.Equal(t, 1, stmt.Summary.TotalPayments)
	assert.Equal(t, "10000.00", stmt.Summary.TotalCredit.StringFixed(2))
}

func TestStatementSettledFlagWhenBalanced(t *testing.T) {
	c := testContract("120000", rent.FrequencyQuarterly,
		date(2024, time.January, 1), date(2024, time.December, 31))
	receipts := []rent.Receipt{postedReceipt("r-1", "60000", date(2024, time.April, 2))}
	svc := newService(c, nil, receipts, date(2024, time.June, 1))

	stmt, err := svc.GenerateStatement(rent.Date{}, false)
	require.NoError(t, err)

	assert.True(t, stmt.Summary.IsSettled)
	assert.False(t, stmt.Summary.IsOverdue)
	assert.False(t, stmt.Summary.IsOverpaid)
	assert.True(t, stmt.Summary.FinalBalance.IsZero())
}
