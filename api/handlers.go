/*
handlers.go - HTTP API handlers for the rental management system

PURPOSE:
  Exposes the contract financial engine via REST API. Handles HTTP
  request/response, JSON serialization, and delegates to domain logic.

ENDPOINTS:
  Tenants:
    GET    /api/tenants                List all tenants
    POST   /api/tenants                Create tenant
    GET    /api/tenants/{id}           Get tenant details

  Contracts:
    GET    /api/contracts              List contracts (?tenant_id filter)
    POST   /api/contracts              Create contract
    GET    /api/contracts/{id}         Get contract details

  Financials (all computed per request, never persisted):
    GET    /api/contracts/{id}/periods               Billing periods
    GET    /api/contracts/{id}/payments              Periods with payments
    GET    /api/contracts/{id}/statement             Account statement
    GET    /api/contracts/{id}/summary               Status-bucketed summary
    GET    /api/contracts/{id}/outstanding           Outstanding amount
    GET    /api/contracts/{id}/unpaid-range          Unpaid period span
    POST   /api/contracts/{id}/distribution-preview  Hypothetical payment
    GET    /api/contracts/{id}/settlement-preview    Termination settlement

  Modifications and receipts:
    GET    /api/contracts/{id}/modifications
    POST   /api/contracts/{id}/modifications  Validated before saving
    GET    /api/contracts/{id}/receipts
    POST   /api/contracts/{id}/receipts
    DELETE /api/receipts/{id}                 Soft delete

  Reports:
    GET    /api/reports/tenants        Batch tenant report

ARCHITECTURE:
  Handler holds the store and a logger. Each request fetches a fresh
  snapshot (contract + modifications + receipts) and builds a
  finance.Service over it, so computed results can never be stale and no
  cross-request cache invalidation exists.

ERROR HANDLING:
  Errors are returned as JSON with appropriate HTTP status:
  - 400: Validation errors, invalid input
  - 404: Resource not found
  - 422: Modification rejected by the validator
  - 500: Internal errors

SEE ALSO:
  - dto.go: Request/response data structures
  - server.go: Router setup and middleware
  - finance/service.go: the engine facade built per request
*/
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/warp/rent-engine/finance"
	"github.com/warp/rent-engine/rent"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Store  rent.Store
	Logger *zap.Logger
}

// NewHandler creates a new handler. logger may be nil.
func NewHandler(store rent.Store, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{Store: store, Logger: logger}
}

// loadSnapshot fetches everything the engine needs for one contract.
func (h *Handler) loadSnapshot(ctx context.Context, contractID string, asOf rent.Date) (finance.Snapshot, error) {
	contract, err := h.Store.GetContract(ctx, contractID)
	if err != nil {
		return finance.Snapshot{}, err
	}
	mods, err := h.Store.ListModifications(ctx, contractID)
	if err != nil {
		return finance.Snapshot{}, err
	}
	receipts, err := h.Store.ListReceipts(ctx, contractID)
	if err != nil {
		return finance.Snapshot{}, err
	}
	return finance.Snapshot{
		Contract:      contract,
		Modifications: mods,
		Receipts:      receipts,
		AsOf:          asOf,
	}, nil
}

// contractService builds a request-scoped engine facade, or writes the
// error response and returns false.
func (h *Handler) contractService(w http.ResponseWriter, r *http.Request) (*finance.Service, bool) {
	id := chi.URLParam(r, "id")
	asOf, ok := dateQueryParam(w, r, "as_of")
	if !ok {
		return nil, false
	}

	snap, err := h.loadSnapshot(r.Context(), id, asOf)
	if err != nil {
		if errors.Is(err, rent.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Contract not found", nil)
		} else {
			writeError(w, http.StatusInternalServerError, "Failed to load contract", err)
		}
		return nil, false
	}
	return finance.NewService(snap, h.Logger), true
}

// =============================================================================
// TENANT HANDLERS
// =============================================================================

// ListTenants returns all tenants.
func (h *Handler) ListTenants(w http.ResponseWriter, r *http.Request) {
	tenants, err := h.Store.ListTenants(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list tenants", err)
		return
	}

	dtos := make([]TenantDTO, len(tenants))
	for i, t := range tenants {
		dtos[i] = tenantDTO(t)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// GetTenant returns a single tenant.
func (h *Handler) GetTenant(w http.ResponseWriter, r *http.Request) {
	t, err := h.Store.GetTenant(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, rent.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Tenant not found", nil)
		} else {
			writeError(w, http.StatusInternalServerError, "Failed to get tenant", err)
		}
		return
	}
	writeJSON(w, http.StatusOK, tenantDTO(*t))
}

// CreateTenant creates a new tenant.
func (h *Handler) CreateTenant(w http.ResponseWriter, r *http.Request) {
	var req CreateTenantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required", nil)
		return
	}

	t := rent.Tenant{
		ID:    req.ID,
		Name:  req.Name,
		Phone: req.Phone,
		Email: req.Email,
	}
	if t.ID == "" {
		t.ID = uuid.NewString()
	}

	if err := h.Store.SaveTenant(r.Context(), t); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to create tenant", err)
		return
	}
	writeJSON(w, http.StatusCreated, tenantDTO(t))
}

// =============================================================================
// CONTRACT HANDLERS
// =============================================================================

// ListContracts returns all contracts, optionally filtered by tenant.
func (h *Handler) ListContracts(w http.ResponseWriter, r *http.Request) {
	var (
		contracts []rent.Contract
		err       error
	)
	if tenantID := r.URL.Query().Get("tenant_id"); tenantID != "" {
		contracts, err = h.Store.ListContractsByTenant(r.Context(), tenantID)
	} else {
		contracts, err = h.Store.ListContracts(r.Context())
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list contracts", err)
		return
	}

	dtos := make([]ContractDTO, len(contracts))
	for i, c := range contracts {
		dtos[i] = contractDTO(c)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// GetContract returns a single contract.
func (h *Handler) GetContract(w http.ResponseWriter, r *http.Request) {
	c, err := h.Store.GetContract(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, rent.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Contract not found", nil)
		} else {
			writeError(w, http.StatusInternalServerError, "Failed to get contract", err)
		}
		return
	}
	writeJSON(w, http.StatusOK, contractDTO(*c))
}

// CreateContract creates a new contract. Tenant details are denormalized
// onto the contract from the tenant record.
func (h *Handler) CreateContract(w http.ResponseWriter, r *http.Request) {
	var req CreateContractRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	startDate, err := rent.ParseDate(req.StartDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid start_date format (use YYYY-MM-DD)", err)
		return
	}
	endDate, err := rent.ParseDate(req.EndDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid end_date format (use YYYY-MM-DD)", err)
		return
	}
	if !startDate.Before(endDate) {
		writeError(w, http.StatusBadRequest, "start_date must precede end_date", nil)
		return
	}
	if !req.AnnualRent.IsPositive() {
		writeError(w, http.StatusBadRequest, "annual_rent must be positive", nil)
		return
	}

	tenant, err := h.Store.GetTenant(r.Context(), req.TenantID)
	if err != nil {
		if errors.Is(err, rent.ErrNotFound) {
			writeError(w, http.StatusBadRequest, "Unknown tenant_id", nil)
		} else {
			writeError(w, http.StatusInternalServerError, "Failed to look up tenant", err)
		}
		return
	}

	c := rent.Contract{
		ID:               req.ID,
		ContractNumber:   req.ContractNumber,
		TenantID:         tenant.ID,
		TenantName:       tenant.Name,
		TenantPhone:      tenant.Phone,
		BuildingName:     req.BuildingName,
		UnitLabel:        req.UnitLabel,
		Location:         req.Location,
		StartDate:        startDate,
		EndDate:          endDate,
		AnnualRent:       req.AnnualRent,
		PaymentFrequency: rent.PaymentFrequency(req.PaymentFrequency),
		SecurityDeposit:  req.SecurityDeposit,
		Status:           rent.ContractActive,
		Notes:            req.Notes,
	}
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	if c.PaymentFrequency == "" {
		c.PaymentFrequency = rent.FrequencySemiAnnual
	}

	if err := h.Store.SaveContract(r.Context(), c); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to create contract", err)
		return
	}
	writeJSON(w, http.StatusCreated, contractDTO(c))
}

// =============================================================================
// FINANCIAL HANDLERS
// =============================================================================

// GetPeriods returns the contract's billing periods.
func (h *Handler) GetPeriods(w http.ResponseWriter, r *http.Request) {
	svc, ok := h.contractService(w, r)
	if !ok {
		return
	}
	includeFuture := boolQueryParam(r, "include_future")

	periods := svc.ComputePeriods(rent.Date{}, includeFuture)
	if periods == nil {
		periods = []finance.Period{}
	}
	writeJSON(w, http.StatusOK, periods)
}

// GetPayments returns the periods with payments distributed across them.
func (h *Handler) GetPayments(w http.ResponseWriter, r *http.Request) {
	svc, ok := h.contractService(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, svc.PeriodsWithPayments())
}

// GetStatement returns the chronological account statement.
func (h *Handler) GetStatement(w http.ResponseWriter, r *http.Request) {
	svc, ok := h.contractService(w, r)
	if !ok {
		return
	}
	endDate, ok := dateQueryParam(w, r, "end_date")
	if !ok {
		return
	}
	includeFuture := boolQueryParam(r, "include_future")

	stmt, err := svc.GenerateStatement(endDate, includeFuture)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to generate statement", err)
		return
	}
	writeJSON(w, http.StatusOK, stmt)
}

// GetSummary returns the status-bucketed contract summary.
func (h *Handler) GetSummary(w http.ResponseWriter, r *http.Request) {
	svc, ok := h.contractService(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, svc.ContractSummary())
}

// GetOutstanding returns the amount the tenant currently owes.
func (h *Handler) GetOutstanding(w http.ResponseWriter, r *http.Request) {
	svc, ok := h.contractService(w, r)
	if !ok {
		return
	}
	includeFuture := boolQueryParam(r, "include_future")

	writeJSON(w, http.StatusOK, map[string]any{
		"contract_id":        chi.URLParam(r, "id"),
		"as_of":              svc.AsOf(),
		"include_future":     includeFuture,
		"outstanding_amount": svc.OutstandingAmount(includeFuture),
	})
}

// GetUnpaidRange returns the first-to-last span of unpaid periods.
func (h *Handler) GetUnpaidRange(w http.ResponseWriter, r *http.Request) {
	svc, ok := h.contractService(w, r)
	if !ok {
		return
	}
	if unpaidRange := svc.UnpaidPeriodsRange(); unpaidRange != nil {
		writeJSON(w, http.StatusOK, unpaidRange)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"unpaid_periods_count": 0,
		"total_unpaid_amount":  decimal.Zero,
	})
}

// PreviewDistribution projects a hypothetical payment across the unpaid
// periods without recording anything.
func (h *Handler) PreviewDistribution(w http.ResponseWriter, r *http.Request) {
	var req DistributionPreviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if !req.Amount.IsPositive() {
		writeError(w, http.StatusBadRequest, "amount must be positive", nil)
		return
	}

	svc, ok := h.contractService(w, r)
	if !ok {
		return
	}
	entries := svc.DistributionPreview(req.Amount)
	if entries == nil {
		entries = []finance.DistributionEntry{}
	}
	writeJSON(w, http.StatusOK, entries)
}

// PreviewSettlement computes the termination settlement for a proposed
// termination date without terminating the contract.
func (h *Handler) PreviewSettlement(w http.ResponseWriter, r *http.Request) {
	svc, ok := h.contractService(w, r)
	if !ok {
		return
	}
	raw := r.URL.Query().Get("termination_date")
	if raw == "" {
		writeError(w, http.StatusBadRequest, "termination_date is required (YYYY-MM-DD)", nil)
		return
	}
	terminationDate, err := rent.ParseDate(raw)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid termination_date format (use YYYY-MM-DD)", err)
		return
	}

	settlement, err := svc.Settlement(terminationDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Failed to compute settlement", err)
		return
	}
	writeJSON(w, http.StatusOK, settlement)
}

// =============================================================================
// MODIFICATION HANDLERS
// =============================================================================

// ListModifications returns a contract's modifications in effective-date
// order.
func (h *Handler) ListModifications(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, err := h.Store.GetContract(r.Context(), id); err != nil {
		if errors.Is(err, rent.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Contract not found", nil)
		} else {
			writeError(w, http.StatusInternalServerError, "Failed to get contract", err)
		}
		return
	}

	mods, err := h.Store.ListModifications(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list modifications", err)
		return
	}

	dtos := make([]ModificationDTO, len(mods))
	for i, m := range mods {
		dtos[i] = modificationDTO(m)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// CreateModification validates a proposed modification against the engine
// and, if accepted, saves it and applies its effect to the contract.
func (h *Handler) CreateModification(w http.ResponseWriter, r *http.Request) {
	var req CreateModificationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	effectiveDate, err := rent.ParseDate(req.EffectiveDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid effective_date format (use YYYY-MM-DD)", err)
		return
	}
	modType := rent.ModificationType(req.Type)

	svc, ok := h.contractService(w, r)
	if !ok {
		return
	}

	if valid, msg := svc.ValidateModification(finance.ValidationInput{
		Type:          modType,
		EffectiveDate: effectiveDate,
		PeriodNumber:  req.PeriodNumber,
	}); !valid {
		writeError(w, http.StatusUnprocessableEntity, msg, nil)
		return
	}

	detail, mutate, err := buildDetail(svc, modType, effectiveDate, req)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error(), nil)
		return
	}

	mod := rent.Modification{
		ID:            uuid.NewString(),
		ContractID:    chi.URLParam(r, "id"),
		EffectiveDate: effectiveDate,
		IsApplied:     true,
		Detail:        detail,
	}

	if err := h.Store.SaveModification(r.Context(), mod); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save modification", err)
		return
	}
	if mutate != nil {
		if err := h.mutateContract(r.Context(), mod.ContractID, mutate); err != nil {
			writeError(w, http.StatusInternalServerError, "Failed to apply modification to contract", err)
			return
		}
	}

	h.Logger.Info("modification created",
		zap.String("contract_id", mod.ContractID),
		zap.String("modification_id", mod.ID),
		zap.String("type", string(modType)))
	writeJSON(w, http.StatusCreated, modificationDTO(mod))
}

// buildDetail constructs the typed payload for a modification request
// plus the contract mutation that applying it entails. A nil mutation
// means the modification only affects computed periods (discount, VAT).
func buildDetail(svc *finance.Service, modType rent.ModificationType, effectiveDate rent.Date, req CreateModificationRequest) (rent.Detail, func(*rent.Contract), error) {
	switch modType {
	case rent.ModRentIncrease, rent.ModRentDecrease:
		if !req.NewAnnualRent.IsPositive() {
			return nil, nil, errors.New("new_annual_rent must be positive")
		}
		detail := rent.RentChange{
			OldAnnualRent: svc.AnnualRentOn(effectiveDate),
			NewAnnualRent: req.NewAnnualRent,
			Decrease:      modType == rent.ModRentDecrease,
		}
		return detail, func(c *rent.Contract) {
			c.AnnualRent = req.NewAnnualRent
		}, nil

	case rent.ModDiscount:
		if !req.Amount.IsPositive() {
			return nil, nil, errors.New("amount must be positive")
		}
		return rent.Discount{Amount: req.Amount, PeriodNumber: req.PeriodNumber}, nil, nil

	case rent.ModVAT:
		if !req.Amount.IsPositive() {
			return nil, nil, errors.New("amount must be positive")
		}
		return rent.VAT{Amount: req.Amount, PeriodNumber: req.PeriodNumber}, nil, nil

	case rent.ModExtension:
		if req.Months <= 0 {
			return nil, nil, errors.New("months must be positive")
		}
		newEnd := svc.ExtendedEndDate(req.Months)
		detail := rent.Extension{Months: req.Months, NewEndDate: newEnd}
		return detail, func(c *rent.Contract) {
			c.EndDate = newEnd
		}, nil

	case rent.ModTermination:
		detail := rent.Termination{PeriodNumber: req.PeriodNumber, Reason: req.Reason}
		return detail, func(c *rent.Contract) {
			c.Status = rent.ContractTerminated
			c.ActualEndDate = effectiveDate
		}, nil

	default:
		return nil, nil, errors.New("unknown modification type")
	}
}

// mutateContract re-reads the contract, applies fn and saves it, so the
// mutation is based on the latest persisted row rather than the snapshot
// the request was computed over.
func (h *Handler) mutateContract(ctx context.Context, id string, fn func(*rent.Contract)) error {
	c, err := h.Store.GetContract(ctx, id)
	if err != nil {
		return err
	}
	fn(c)
	return h.Store.SaveContract(ctx, *c)
}

// =============================================================================
// RECEIPT HANDLERS
// =============================================================================

// ListReceipts returns a contract's receipts, soft-deleted included.
func (h *Handler) ListReceipts(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, err := h.Store.GetContract(r.Context(), id); err != nil {
		if errors.Is(err, rent.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Contract not found", nil)
		} else {
			writeError(w, http.StatusInternalServerError, "Failed to get contract", err)
		}
		return
	}

	receipts, err := h.Store.ListReceipts(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list receipts", err)
		return
	}

	dtos := make([]ReceiptDTO, len(receipts))
	for i, rc := range receipts {
		dtos[i] = receiptDTO(rc)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// CreateReceipt records a payment against a contract.
func (h *Handler) CreateReceipt(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, err := h.Store.GetContract(r.Context(), id); err != nil {
		if errors.Is(err, rent.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Contract not found", nil)
		} else {
			writeError(w, http.StatusInternalServerError, "Failed to get contract", err)
		}
		return
	}

	var req CreateReceiptRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if !req.Amount.IsPositive() {
		writeError(w, http.StatusBadRequest, "amount must be positive", nil)
		return
	}
	date, err := rent.ParseDate(req.Date)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid date format (use YYYY-MM-DD)", err)
		return
	}

	receipt := rent.Receipt{
		ID:            uuid.NewString(),
		ContractID:    id,
		ReceiptNumber: req.ReceiptNumber,
		Amount:        req.Amount,
		Date:          date,
		Method:        rent.PaymentMethod(req.Method),
		Status:        rent.ReceiptStatus(req.Status),
	}
	if receipt.Method == "" {
		receipt.Method = rent.PaymentCash
	}
	if receipt.Status == "" {
		receipt.Status = rent.ReceiptPosted
	}

	if err := h.Store.SaveReceipt(r.Context(), receipt); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save receipt", err)
		return
	}

	h.Logger.Info("receipt recorded",
		zap.String("contract_id", id),
		zap.String("receipt_id", receipt.ID),
		zap.String("amount", receipt.Amount.StringFixed(2)))
	writeJSON(w, http.StatusCreated, receiptDTO(receipt))
}

// DeleteReceipt soft-deletes a receipt. The row stays in the store for
// audit but stops counting as money.
func (h *Handler) DeleteReceipt(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.Store.SoftDeleteReceipt(r.Context(), id); err != nil {
		if errors.Is(err, rent.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Receipt not found", nil)
		} else {
			writeError(w, http.StatusInternalServerError, "Failed to delete receipt", err)
		}
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"deleted": true, "id": id})
}

// =============================================================================
// REPORT HANDLERS
// =============================================================================

// TenantsReport builds one report row per contract. A contract whose
// snapshot fails to load is logged and skipped; a contract that computes
// to nothing yields zeroed figures. The batch always completes.
func (h *Handler) TenantsReport(w http.ResponseWriter, r *http.Request) {
	contracts, err := h.Store.ListContracts(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list contracts", err)
		return
	}

	snaps := make([]finance.Snapshot, 0, len(contracts))
	for _, c := range contracts {
		snap, err := h.loadSnapshot(r.Context(), c.ID, rent.Date{})
		if err != nil {
			h.Logger.Error("skipping contract in tenants report",
				zap.String("contract_id", c.ID), zap.Error(err))
			continue
		}
		snaps = append(snaps, snap)
	}

	writeJSON(w, http.StatusOK, finance.TenantsReport(snaps, h.Logger))
}

// =============================================================================
// HELPERS
// =============================================================================

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}

// dateQueryParam parses an optional YYYY-MM-DD query parameter. On a
// malformed value it writes a 400 and returns ok=false.
func dateQueryParam(w http.ResponseWriter, r *http.Request, name string) (rent.Date, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return rent.Date{}, true
	}
	d, err := rent.ParseDate(raw)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid "+name+" format (use YYYY-MM-DD)", err)
		return rent.Date{}, false
	}
	return d, true
}

func boolQueryParam(r *http.Request, name string) bool {
	switch r.URL.Query().Get(name) {
	case "1", "true", "yes":
		return true
	}
	return false
}
