/*
Package sqlite provides the SQLite-backed implementation of rent.Store.

PURPOSE:
  Persists tenants, contracts, modifications and receipts. In production
  the same patterns apply to PostgreSQL - only minor SQL dialect
  differences.

KEY TABLES:
  tenants:        Tenant records
  contracts:      Lease contracts (read-only to the finance engine)
  modifications:  Typed contract adjustments; payload stored as a type tag
                  plus a JSON column, decoded via rent.DecodeDetail
  receipts:       Payments; soft-deleted rows are kept for audit

INDEXES:
  The listing queries that feed the finance engine are ordered in SQL so
  that its "ordered by effective date" inputs never depend on insertion
  order:
  - idx_modifications_contract_date: modification timeline per contract
  - idx_receipts_contract_date:      receipt history per contract

WAL MODE:
  SQLite is opened with WAL for better concurrency: readers don't block,
  single writer at a time, better crash recovery.

USAGE:
  store, err := sqlite.New("./data/rent.db")
  if err != nil {
      log.Fatal(err)
  }
  defer store.Close()

MIGRATION:
  Schema is auto-migrated on New(). For production, use a proper
  migration tool (golang-migrate, goose) with versioned migrations.

SEE ALSO:
  - rent/store.go: the interface this package implements
  - rent/store/memory.go: in-memory implementation for tests
*/
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"

	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"

	"github.com/warp/rent-engine/rent"
)

// Store implements rent.Store using SQLite.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// New creates a SQLite store at the given path. Use ":memory:" for an
// in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS tenants (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		phone TEXT,
		email TEXT
	);

	CREATE TABLE IF NOT EXISTS contracts (
		id TEXT PRIMARY KEY,
		contract_number INTEGER NOT NULL,
		tenant_id TEXT NOT NULL REFERENCES tenants(id),
		tenant_name TEXT NOT NULL DEFAULT '',
		tenant_phone TEXT NOT NULL DEFAULT '',
		building_name TEXT NOT NULL DEFAULT '',
		unit_label TEXT NOT NULL DEFAULT '',
		location TEXT NOT NULL DEFAULT '',
		start_date TEXT NOT NULL,
		end_date TEXT NOT NULL,
		actual_end_date TEXT,
		annual_rent TEXT NOT NULL,
		payment_frequency TEXT NOT NULL,
		security_deposit TEXT NOT NULL DEFAULT '0',
		status TEXT NOT NULL,
		notes TEXT NOT NULL DEFAULT ''
	);

	CREATE INDEX IF NOT EXISTS idx_contracts_tenant
		ON contracts(tenant_id);
	CREATE INDEX IF NOT EXISTS idx_contracts_status
		ON contracts(status);

	CREATE TABLE IF NOT EXISTS modifications (
		id TEXT PRIMARY KEY,
		contract_id TEXT NOT NULL REFERENCES contracts(id),
		mod_type TEXT NOT NULL,
		effective_date TEXT NOT NULL,
		is_applied BOOLEAN NOT NULL DEFAULT FALSE,
		detail_json TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_modifications_contract_date
		ON modifications(contract_id, effective_date);

	CREATE TABLE IF NOT EXISTS receipts (
		id TEXT PRIMARY KEY,
		contract_id TEXT NOT NULL REFERENCES contracts(id),
		receipt_number TEXT NOT NULL,
		amount TEXT NOT NULL,
		receipt_date TEXT NOT NULL,
		method TEXT NOT NULL,
		status TEXT NOT NULL,
		deleted BOOLEAN NOT NULL DEFAULT FALSE
	);

	CREATE INDEX IF NOT EXISTS idx_receipts_contract_date
		ON receipts(contract_id, receipt_date);
	CREATE INDEX IF NOT EXISTS idx_receipts_status
		ON receipts(status);
	`

	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// TENANTS
// =============================================================================

func (s *Store) SaveTenant(ctx context.Context, t rent.Tenant) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO tenants (id, name, phone, email) VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET name=excluded.name, phone=excluded.phone, email=excluded.email`,
		t.ID, t.Name, t.Phone, t.Email)
	return err
}

func (s *Store) GetTenant(ctx context.Context, id string) (*rent.Tenant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var t rent.Tenant
	err := s.db.QueryRowContext(ctx,
		`SELECT id, name, phone, email FROM tenants WHERE id = ?`, id).
		Scan(&t.ID, &t.Name, &t.Phone, &t.Email)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, rent.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (s *Store) ListTenants(ctx context.Context) ([]rent.Tenant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, phone, email FROM tenants ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []rent.Tenant
	for rows.Next() {
		var t rent.Tenant
		if err := rows.Scan(&t.ID, &t.Name, &t.Phone, &t.Email); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// =============================================================================
// CONTRACTS
// =============================================================================

func (s *Store) SaveContract(ctx context.Context, c rent.Contract) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO contracts (
			id, contract_number, tenant_id, tenant_name, tenant_phone,
			building_name, unit_label, location,
			start_date, end_date, actual_end_date,
			annual_rent, payment_frequency, security_deposit, status, notes
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			contract_number=excluded.contract_number,
			tenant_id=excluded.tenant_id,
			tenant_name=excluded.tenant_name,
			tenant_phone=excluded.tenant_phone,
			building_name=excluded.building_name,
			unit_label=excluded.unit_label,
			location=excluded.location,
			start_date=excluded.start_date,
			end_date=excluded.end_date,
			actual_end_date=excluded.actual_end_date,
			annual_rent=excluded.annual_rent,
			payment_frequency=excluded.payment_frequency,
			security_deposit=excluded.security_deposit,
			status=excluded.status,
			notes=excluded.notes`,
		c.ID, c.ContractNumber, c.TenantID, c.TenantName, c.TenantPhone,
		c.BuildingName, c.UnitLabel, c.Location,
		c.StartDate.String(), c.EndDate.String(), nullableDate(c.ActualEndDate),
		c.AnnualRent.String(), string(c.PaymentFrequency), c.SecurityDeposit.String(),
		string(c.Status), c.Notes)
	return err
}

func (s *Store) GetContract(ctx context.Context, id string) (*rent.Contract, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx, contractSelect+` WHERE id = ?`, id)
	c, err := scanContract(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, rent.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (s *Store) ListContracts(ctx context.Context) ([]rent.Contract, error) {
	return s.listContracts(ctx, contractSelect+` ORDER BY id`)
}

func (s *Store) ListContractsByTenant(ctx context.Context, tenantID string) ([]rent.Contract, error) {
	return s.listContracts(ctx, contractSelect+` WHERE tenant_id = ? ORDER BY id`, tenantID)
}

const contractSelect = `
	SELECT id, contract_number, tenant_id, tenant_name, tenant_phone,
	       building_name, unit_label, location,
	       start_date, end_date, actual_end_date,
	       annual_rent, payment_frequency, security_deposit, status, notes
	FROM contracts`

func (s *Store) listContracts(ctx context.Context, query string, args ...any) ([]rent.Contract, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []rent.Contract
	for rows.Next() {
		c, err := scanContract(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *c)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanContract(row rowScanner) (*rent.Contract, error) {
	var (
		c                           rent.Contract
		startDate, endDate          string
		actualEndDate               sql.NullString
		annualRent, securityDeposit string
		frequency, status           string
	)
	err := row.Scan(
		&c.ID, &c.ContractNumber, &c.TenantID, &c.TenantName, &c.TenantPhone,
		&c.BuildingName, &c.UnitLabel, &c.Location,
		&startDate, &endDate, &actualEndDate,
		&annualRent, &frequency, &securityDeposit, &status, &c.Notes)
	if err != nil {
		return nil, err
	}

	if c.StartDate, err = rent.ParseDate(startDate); err != nil {
		return nil, fmt.Errorf("contract %s: bad start_date: %w", c.ID, err)
	}
	if c.EndDate, err = rent.ParseDate(endDate); err != nil {
		return nil, fmt.Errorf("contract %s: bad end_date: %w", c.ID, err)
	}
	if actualEndDate.Valid && actualEndDate.String != "" {
		if c.ActualEndDate, err = rent.ParseDate(actualEndDate.String); err != nil {
			return nil, fmt.Errorf("contract %s: bad actual_end_date: %w", c.ID, err)
		}
	}
	if c.AnnualRent, err = decimal.NewFromString(annualRent); err != nil {
		return nil, fmt.Errorf("contract %s: bad annual_rent: %w", c.ID, err)
	}
	if c.SecurityDeposit, err = decimal.NewFromString(securityDeposit); err != nil {
		return nil, fmt.Errorf("contract %s: bad security_deposit: %w", c.ID, err)
	}
	c.PaymentFrequency = rent.PaymentFrequency(frequency)
	c.Status = rent.ContractStatus(status)
	return &c, nil
}

// =============================================================================
// MODIFICATIONS
// =============================================================================

func (s *Store) SaveModification(ctx context.Context, m rent.Modification) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	detail, err := rent.EncodeDetail(m.Detail)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO modifications (id, contract_id, mod_type, effective_date, is_applied, detail_json)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			mod_type=excluded.mod_type,
			effective_date=excluded.effective_date,
			is_applied=excluded.is_applied,
			detail_json=excluded.detail_json`,
		m.ID, m.ContractID, string(m.Type()), m.EffectiveDate.String(), m.IsApplied, string(detail))
	return err
}

func (s *Store) ListModifications(ctx context.Context, contractID string) ([]rent.Modification, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, contract_id, mod_type, effective_date, is_applied, detail_json
		FROM modifications
		WHERE contract_id = ?
		ORDER BY effective_date, id`, contractID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []rent.Modification
	for rows.Next() {
		var (
			m             rent.Modification
			modType       string
			effectiveDate string
			detailJSON    string
		)
		if err := rows.Scan(&m.ID, &m.ContractID, &modType, &effectiveDate, &m.IsApplied, &detailJSON); err != nil {
			return nil, err
		}
		if m.EffectiveDate, err = rent.ParseDate(effectiveDate); err != nil {
			return nil, fmt.Errorf("modification %s: bad effective_date: %w", m.ID, err)
		}
		if m.Detail, err = rent.DecodeDetail(rent.ModificationType(modType), []byte(detailJSON)); err != nil {
			return nil, fmt.Errorf("modification %s: %w", m.ID, err)
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// =============================================================================
// RECEIPTS
// =============================================================================

func (s *Store) SaveReceipt(ctx context.Context, r rent.Receipt) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO receipts (id, contract_id, receipt_number, amount, receipt_date, method, status, deleted)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			receipt_number=excluded.receipt_number,
			amount=excluded.amount,
			receipt_date=excluded.receipt_date,
			method=excluded.method,
			status=excluded.status,
			deleted=excluded.deleted`,
		r.ID, r.ContractID, r.ReceiptNumber, r.Amount.String(),
		r.Date.String(), string(r.Method), string(r.Status), r.Deleted)
	return err
}

func (s *Store) ListReceipts(ctx context.Context, contractID string) ([]rent.Receipt, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, contract_id, receipt_number, amount, receipt_date, method, status, deleted
		FROM receipts
		WHERE contract_id = ?
		ORDER BY receipt_date, id`, contractID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []rent.Receipt
	for rows.Next() {
		var (
			r              rent.Receipt
			amount         string
			receiptDate    string
			method, status string
		)
		if err := rows.Scan(&r.ID, &r.ContractID, &r.ReceiptNumber, &amount, &receiptDate, &method, &status, &r.Deleted); err != nil {
			return nil, err
		}
		if r.Amount, err = decimal.NewFromString(amount); err != nil {
			return nil, fmt.Errorf("receipt %s: bad amount: %w", r.ID, err)
		}
		if r.Date, err = rent.ParseDate(receiptDate); err != nil {
			return nil, fmt.Errorf("receipt %s: bad receipt_date: %w", r.ID, err)
		}
		r.Method = rent.PaymentMethod(method)
		r.Status = rent.ReceiptStatus(status)
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *Store) SoftDeleteReceipt(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, `UPDATE receipts SET deleted = TRUE WHERE id = ?`, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return rent.ErrNotFound
	}
	return nil
}

func nullableDate(d rent.Date) any {
	if d.IsZero() {
		return nil
	}
	return d.String()
}
