// Package store provides an in-memory rent.Store for tests and demos.
package store

import (
	"context"
	"sort"
	"sync"

	"github.com/warp/rent-engine/rent"
)

// =============================================================================
// MEMORY STORE - In-memory implementation (for testing/dev)
// =============================================================================

type Memory struct {
	mu            sync.RWMutex
	tenants       map[string]rent.Tenant
	contracts     map[string]rent.Contract
	modifications map[string][]rent.Modification // by contract ID
	receipts      map[string][]rent.Receipt      // by contract ID
	receiptIndex  map[string]string              // receipt ID -> contract ID
}

func NewMemory() *Memory {
	return &Memory{
		tenants:       make(map[string]rent.Tenant),
		contracts:     make(map[string]rent.Contract),
		modifications: make(map[string][]rent.Modification),
		receipts:      make(map[string][]rent.Receipt),
		receiptIndex:  make(map[string]string),
	}
}

func (m *Memory) SaveTenant(_ context.Context, t rent.Tenant) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tenants[t.ID] = t
	return nil
}

func (m *Memory) GetTenant(_ context.Context, id string) (*rent.Tenant, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	t, ok := m.tenants[id]
	if !ok {
		return nil, rent.ErrNotFound
	}
	return &t, nil
}

func (m *Memory) ListTenants(_ context.Context) ([]rent.Tenant, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]rent.Tenant, 0, len(m.tenants))
	for _, t := range m.tenants {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *Memory) SaveContract(_ context.Context, c rent.Contract) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.contracts[c.ID] = c
	return nil
}

func (m *Memory) GetContract(_ context.Context, id string) (*rent.Contract, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	c, ok := m.contracts[id]
	if !ok {
		return nil, rent.ErrNotFound
	}
	return &c, nil
}

func (m *Memory) ListContracts(_ context.Context) ([]rent.Contract, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]rent.Contract, 0, len(m.contracts))
	for _, c := range m.contracts {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *Memory) ListContractsByTenant(_ context.Context, tenantID string) ([]rent.Contract, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []rent.Contract
	for _, c := range m.contracts {
		if c.TenantID == tenantID {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *Memory) SaveModification(_ context.Context, mod rent.Modification) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	mods := m.modifications[mod.ContractID]
	// Keep the slice ordered by (effective date, ID) on insert.
	i := sort.Search(len(mods), func(i int) bool {
		if mods[i].EffectiveDate.Equal(mod.EffectiveDate) {
			return mods[i].ID > mod.ID
		}
		return mods[i].EffectiveDate.After(mod.EffectiveDate)
	})
	mods = append(mods, rent.Modification{})
	copy(mods[i+1:], mods[i:])
	mods[i] = mod
	m.modifications[mod.ContractID] = mods
	return nil
}

func (m *Memory) ListModifications(_ context.Context, contractID string) ([]rent.Modification, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]rent.Modification, len(m.modifications[contractID]))
	copy(out, m.modifications[contractID])
	return out, nil
}

func (m *Memory) SaveReceipt(_ context.Context, r rent.Receipt) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if contractID, ok := m.receiptIndex[r.ID]; ok {
		// Replace in place on re-save.
		list := m.receipts[contractID]
		for i := range list {
			if list[i].ID == r.ID {
				list[i] = r
				return nil
			}
		}
	}

	list := m.receipts[r.ContractID]
	i := sort.Search(len(list), func(i int) bool {
		if list[i].Date.Equal(r.Date) {
			return list[i].ID > r.ID
		}
		return list[i].Date.After(r.Date)
	})
	list = append(list, rent.Receipt{})
	copy(list[i+1:], list[i:])
	list[i] = r
	m.receipts[r.ContractID] = list
	m.receiptIndex[r.ID] = r.ContractID
	return nil
}

func (m *Memory) ListReceipts(_ context.Context, contractID string) ([]rent.Receipt, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]rent.Receipt, len(m.receipts[contractID]))
	copy(out, m.receipts[contractID])
	return out, nil
}

func (m *Memory) SoftDeleteReceipt(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	contractID, ok := m.receiptIndex[id]
	if !ok {
		return rent.ErrNotFound
	}
	list := m.receipts[contractID]
	for i := range list {
		if list[i].ID == id {
			list[i].Deleted = true
			return nil
		}
	}
	return rent.ErrNotFound
}

func (m *Memory) Close() error { return nil }
