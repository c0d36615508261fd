package sqlite_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/rent-engine/rent"
	"github.com/warp/rent-engine/store/sqlite"
)

// =============================================================================
// SQLITE STORE TESTS
// =============================================================================

func newTestStore(t *testing.T) *sqlite.Store {
	t.Helper()
	store, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func seedTenantAndContract(t *testing.T, s *sqlite.Store) rent.Contract {
	t.Helper()
	ctx := context.Background()

	require.NoError(t, s.SaveTenant(ctx, rent.Tenant{
		ID: "t-1", Name: "Alia Hassan", Phone: "555-0100",
	}))

	c := rent.Contract{
		ID:               "c-1",
		ContractNumber:   1001,
		TenantID:         "t-1",
		TenantName:       "Alia Hassan",
		TenantPhone:      "555-0100",
		BuildingName:     "North Tower",
		UnitLabel:        "3B",
		StartDate:        rent.NewDate(2024, time.January, 1),
		EndDate:          rent.NewDate(2024, time.December, 31),
		AnnualRent:       decimal.RequireFromString("120000"),
		PaymentFrequency: rent.FrequencyQuarterly,
		SecurityDeposit:  decimal.RequireFromString("10000"),
		Status:           rent.ContractActive,
	}
	require.NoError(t, s.SaveContract(ctx, c))
	return c
}

func TestTenantRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	in := rent.Tenant{ID: "t-1", Name: "Alia Hassan", Phone: "555-0100", Email: "alia@example.com"}
	require.NoError(t, s.SaveTenant(ctx, in))

	got, err := s.GetTenant(ctx, "t-1")
	require.NoError(t, err)
	assert.Equal(t, in, *got)

	_, err = s.GetTenant(ctx, "missing")
	assert.ErrorIs(t, err, rent.ErrNotFound)
}

func TestContractRoundTripPreservesDecimalsAndDates(t *testing.T) {
	s := newTestStore(t)
	c := seedTenantAndContract(t, s)

	got, err := s.GetContract(context.Background(), c.ID)
	require.NoError(t, err)

	assert.Equal(t, c.ContractNumber, got.ContractNumber)
	assert.Equal(t, c.StartDate, got.StartDate)
	assert.Equal(t, c.EndDate, got.EndDate)
	assert.True(t, got.ActualEndDate.IsZero())
	assert.True(t, got.AnnualRent.Equal(c.AnnualRent))
	assert.True(t, got.SecurityDeposit.Equal(c.SecurityDeposit))
	assert.Equal(t, rent.FrequencyQuarterly, got.PaymentFrequency)
}

func TestContractSaveIsUpsert(t *testing.T) {
	s := newTestStore(t)
	c := seedTenantAndContract(t, s)
	ctx := context.Background()

	c.Status = rent.ContractTerminated
	c.ActualEndDate = rent.NewDate(2024, time.June, 30)
	require.NoError(t, s.SaveContract(ctx, c))

	got, err := s.GetContract(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, rent.ContractTerminated, got.Status)
	assert.Equal(t, rent.NewDate(2024, time.June, 30), got.ActualEndDate)

	contracts, err := s.ListContracts(ctx)
	require.NoError(t, err)
	assert.Len(t, contracts, 1)
}

func TestModificationPayloadSurvivesPersistence(t *testing.T) {
	s := newTestStore(t)
	seedTenantAndContract(t, s)
	ctx := context.Background()

	mods := []rent.Modification{
		{
			ID: "m-2", ContractID: "c-1",
			EffectiveDate: rent.NewDate(2024, time.July, 1), IsApplied: true,
			Detail: rent.RentChange{
				OldAnnualRent: decimal.RequireFromString("120000"),
				NewAnnualRent: decimal.RequireFromString("100000"),
				Decrease:      true,
			},
		},
		{
			ID: "m-1", ContractID: "c-1",
			EffectiveDate: rent.NewDate(2024, time.April, 1), IsApplied: true,
			Detail:        rent.Discount{Amount: decimal.RequireFromString("1500"), PeriodNumber: 2},
		},
	}
	for _, m := range mods {
		require.NoError(t, s.SaveModification(ctx, m))
	}

	got, err := s.ListModifications(ctx, "c-1")
	require.NoError(t, err)
	require.Len(t, got, 2)

	// Ordered by effective date regardless of insertion order
	assert.Equal(t, "m-1", got[0].ID)
	discount, ok := got[0].Detail.(rent.Discount)
	require.True(t, ok)
	assert.Equal(t, 2, discount.PeriodNumber)
	assert.True(t, discount.Amount.Equal(decimal.RequireFromString("1500")))

	// The decrease flag is reconstructed from the stored type tag
	rc, ok := got[1].Detail.(rent.RentChange)
	require.True(t, ok)
	assert.True(t, rc.Decrease)
	assert.Equal(t, rent.ModRentDecrease, got[1].Type())
}

func TestReceiptSoftDelete(t *testing.T) {
	s := newTestStore(t)
	seedTenantAndContract(t, s)
	ctx := context.Background()

	r := rent.Receipt{
		ID: "r-1", ContractID: "c-1", ReceiptNumber: "R-2024-001",
		Amount: decimal.RequireFromString("30000"),
		Date:   rent.NewDate(2024, time.January, 10),
		Method: rent.PaymentTransfer, Status: rent.ReceiptPosted,
	}
	require.NoError(t, s.SaveReceipt(ctx, r))

	require.NoError(t, s.SoftDeleteReceipt(ctx, "r-1"))
	assert.ErrorIs(t, s.SoftDeleteReceipt(ctx, "missing"), rent.ErrNotFound)

	// Soft-deleted receipts stay listed for audit
	receipts, err := s.ListReceipts(ctx, "c-1")
	require.NoError(t, err)
	require.Len(t, receipts, 1)
	assert.True(t, receipts[0].Deleted)
	assert.False(t, receipts[0].CountsAsPayment())
	assert.False(t, receipts[0].AppearsOnStatement())
}

func TestReceiptsOrderedByDateThenID(t *testing.T) {
	s := newTestStore(t)
	seedTenantAndContract(t, s)
	ctx := context.Background()

	dates := []rent.Date{
		rent.NewDate(2024, time.May, 1),
		rent.NewDate(2024, time.January, 10),
		rent.NewDate(2024, time.January, 10),
	}
	ids := []string{"r-3", "r-2", "r-1"}
	for i := range ids {
		require.NoError(t, s.SaveReceipt(ctx, rent.Receipt{
			ID: ids[i], ContractID: "c-1",
			Amount: decimal.RequireFromString("100"),
			Date:   dates[i], Method: rent.PaymentCash, Status: rent.ReceiptPosted,
		}))
	}

	receipts, err := s.ListReceipts(ctx, "c-1")
	require.NoError(t, err)
	require.Len(t, receipts, 3)
	assert.Equal(t, "r-1", receipts[0].ID)
	assert.Equal(t, "r-2", receipts[1].ID)
	assert.Equal(t, "r-3", receipts[2].ID)
}

func TestListContractsByTenant(t *testing.T) {
	s := newTestStore(t)
	seedTenantAndContract(t, s)
	ctx := context.Background()

	require.NoError(t, s.SaveTenant(ctx, rent.Tenant{ID: "t-2", Name: "Omar Said"}))
	other := rent.Contract{
		ID: "c-2", ContractNumber: 1002, TenantID: "t-2", TenantName: "Omar Said",
		StartDate:        rent.NewDate(2024, time.March, 1),
		EndDate:          rent.NewDate(2025, time.February, 28),
		AnnualRent:       decimal.RequireFromString("80000"),
		PaymentFrequency: rent.FrequencySemiAnnual,
		SecurityDeposit:  decimal.Zero,
		Status:           rent.ContractActive,
	}
	require.NoError(t, s.SaveContract(ctx, other))

	mine, err := s.ListContractsByTenant(ctx, "t-1")
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "c-1", mine[0].ID)
}
