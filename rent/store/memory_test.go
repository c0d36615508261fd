package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/rent-engine/rent"
	"github.com/warp/rent-engine/rent/store"
)

// =============================================================================
// MEMORY STORE TESTS
// =============================================================================

func TestGetTenantNotFound(t *testing.T) {
	m := store.NewMemory()

	_, err := m.GetTenant(context.Background(), "missing")
	assert.ErrorIs(t, err, rent.ErrNotFound)
}

func TestContractRoundTrip(t *testing.T) {
	m := store.NewMemory()
	ctx := context.Background()

	c := rent.Contract{
		ID:               "c-1",
		ContractNumber:   42,
		TenantID:         "t-1",
		StartDate:        rent.NewDate(2024, time.January, 1),
		EndDate:          rent.NewDate(2024, time.December, 31),
		AnnualRent:       decimal.RequireFromString("120000"),
		PaymentFrequency: rent.FrequencyQuarterly,
		Status:           rent.ContractActive,
	}
	require.NoError(t, m.SaveContract(ctx, c))

	got, err := m.GetContract(ctx, "c-1")
	require.NoError(t, err)
	assert.Equal(t, c, *got)
}

func TestModificationsOrderedByEffectiveDate(t *testing.T) {
	m := store.NewMemory()
	ctx := context.Background()

	// Saved out of order
	for _, mod := range []rent.Modification{
		{ID: "m-2", ContractID: "c-1", EffectiveDate: rent.NewDate(2024, time.July, 1),
			Detail: rent.Discount{Amount: decimal.NewFromInt(100)}},
		{ID: "m-1", ContractID: "c-1", EffectiveDate: rent.NewDate(2024, time.April, 1),
			Detail: rent.VAT{Amount: decimal.NewFromInt(200)}},
		{ID: "m-3", ContractID: "c-1", EffectiveDate: rent.NewDate(2024, time.April, 1),
			Detail: rent.Discount{Amount: decimal.NewFromInt(300)}},
	} {
		require.NoError(t, m.SaveModification(ctx, mod))
	}

	mods, err := m.ListModifications(ctx, "c-1")
	require.NoError(t, err)

	// Ordered by effective date, ties broken by ID
	require.Len(t, mods, 3)
	assert.Equal(t, []string{"m-1", "m-3", "m-2"}, []string{mods[0].ID, mods[1].ID, mods[2].ID})
}

func TestReceiptsOrderedByDate(t *testing.T) {
	m := store.NewMemory()
	ctx := context.Background()

	for _, r := range []rent.Receipt{
		{ID: "r-2", ContractID: "c-1", Date: rent.NewDate(2024, time.May, 1),
			Amount: decimal.NewFromInt(100), Status: rent.ReceiptPosted},
		{ID: "r-1", ContractID: "c-1", Date: rent.NewDate(2024, time.January, 1),
			Amount: decimal.NewFromInt(200), Status: rent.ReceiptPosted},
	} {
		require.NoError(t, m.SaveReceipt(ctx, r))
	}

	receipts, err := m.ListReceipts(ctx, "c-1")
	require.NoError(t, err)
	require.Len(t, receipts, 2)
	assert.Equal(t, "r-1", receipts[0].ID)
	assert.Equal(t, "r-2", receipts[1].ID)
}

func TestSoftDeleteKeepsReceiptInListing(t *testing.T) {
	m := store.NewMemory()
	ctx := context.Background()

	r := rent.Receipt{ID: "r-1", ContractID: "c-1",
		Date:   rent.NewDate(2024, time.January, 1),
		Amount: decimal.NewFromInt(100), Status: rent.ReceiptPosted}
	require.NoError(t, m.SaveReceipt(ctx, r))

	require.NoError(t, m.SoftDeleteReceipt(ctx, "r-1"))

	receipts, err := m.ListReceipts(ctx, "c-1")
	require.NoError(t, err)
	require.Len(t, receipts, 1)
	assert.True(t, receipts[0].Deleted)
	assert.False(t, receipts[0].CountsAsPayment())
}

func TestSoftDeleteUnknownReceipt(t *testing.T) {
	m := store.NewMemory()
	assert.ErrorIs(t, m.SoftDeleteReceipt(context.Background(), "missing"), rent.ErrNotFound)
}

func TestReceiptResaveReplacesInPlace(t *testing.T) {
	m := store.NewMemory()
	ctx := context.Background()

	r := rent.Receipt{ID: "r-1", ContractID: "c-1",
		Date:   rent.NewDate(2024, time.January, 1),
		Amount: decimal.NewFromInt(100), Status: rent.ReceiptPosted}
	require.NoError(t, m.SaveReceipt(ctx, r))

	r.Status = rent.ReceiptCleared
	require.NoError(t, m.SaveReceipt(ctx, r))

	receipts, err := m.ListReceipts(ctx, "c-1")
	require.NoError(t, err)
	require.Len(t, receipts, 1)
	assert.Equal(t, rent.ReceiptCleared, receipts[0].Status)
}

func TestListContractsByTenant(t *testing.T) {
	m := store.NewMemory()
	ctx := context.Background()

	require.NoError(t, m.SaveContract(ctx, rent.Contract{ID: "c-1", TenantID: "t-1"}))
	require.NoError(t, m.SaveContract(ctx, rent.Contract{ID: "c-2", TenantID: "t-2"}))
	require.NoError(t, m.SaveContract(ctx, rent.Contract{ID: "c-3", TenantID: "t-1"}))

	contracts, err := m.ListContractsByTenant(ctx, "t-1")
	require.NoError(t, err)
	require.Len(t, contracts, 2)
	assert.Equal(t, "c-1", contracts[0].ID)
	assert.Equal(t, "c-3", contracts[1].ID)
}
