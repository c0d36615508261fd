package rent

import (
	"context"
	"errors"
)

// =============================================================================
// STORE - Persistence interface
// =============================================================================

var (
	// ErrNotFound is returned when a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrDuplicateID is returned when saving an entity whose ID exists.
	ErrDuplicateID = errors.New("duplicate id")
)

// Store is the persistence boundary. Implementations: store/sqlite for the
// server, rent/store (memory) for tests and demos.
//
// Listing methods return entities in a deterministic order so that the
// finance engine's "ordered by effective date" inputs do not depend on the
// backing store.
type Store interface {
	SaveTenant(ctx context.Context, t Tenant) error
	GetTenant(ctx context.Context, id string) (*Tenant, error)
	ListTenants(ctx context.Context) ([]Tenant, error)

	SaveContract(ctx context.Context, c Contract) error
	GetContract(ctx context.Context, id string) (*Contract, error)
	ListContracts(ctx context.Context) ([]Contract, error)
	ListContractsByTenant(ctx context.Context, tenantID string) ([]Contract, error)

	// SaveModification persists a modification. Callers are expected to
	// have run finance.ValidateModification first; the store does not
	// re-check temporal constraints.
	SaveModification(ctx context.Context, m Modification) error

	// ListModifications returns a contract's modifications ordered by
	// effective date, then ID.
	ListModifications(ctx context.Context, contractID string) ([]Modification, error)

	SaveReceipt(ctx context.Context, r Receipt) error

	// ListReceipts returns a contract's receipts, including soft-deleted
	// ones, ordered by receipt date then ID.
	ListReceipts(ctx context.Context, contractID string) ([]Receipt, error)

	// SoftDeleteReceipt marks a receipt deleted without removing it.
	SoftDeleteReceipt(ctx context.Context, id string) error

	Close() error
}
