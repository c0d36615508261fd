/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. These types decouple
  the internal domain model from the external API contract, allowing:
  - Field renaming without breaking clients
  - API-specific validation
  - Version evolution

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients

TYPES:
  Tenant:
    TenantDTO, CreateTenantRequest

  Contract:
    ContractDTO, CreateContractRequest

  Modification:
    ModificationDTO, CreateModificationRequest

  Receipt:
    ReceiptDTO, CreateReceiptRequest

  Previews:
    DistributionPreviewRequest

  Engine outputs (periods, statements, summaries, settlements) are
  serialized directly from the finance package types, which carry their
  own JSON tags; wrapping them in DTOs would only duplicate fields.

VALIDATION:
  Validation is done in handlers, not in DTOs. DTOs are pure data carriers.

SEE ALSO:
  - handlers.go: Uses these types
  - finance/types.go: engine output shapes returned as-is
*/
package api

import (
	"github.com/shopspring/decimal"

	"github.com/warp/rent-engine/rent"
)

// =============================================================================
// REQUEST/RESPONSE TYPES
// =============================================================================

// ErrorResponse is the JSON body of every non-2xx response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// TenantDTO represents a tenant in API responses.
type TenantDTO struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Phone string `json:"phone,omitempty"`
	Email string `json:"email,omitempty"`
}

// CreateTenantRequest is the request to create a tenant.
type CreateTenantRequest struct {
	ID    string `json:"id,omitempty"`
	Name  string `json:"name"`
	Phone string `json:"phone,omitempty"`
	Email string `json:"email,omitempty"`
}

// ContractDTO represents a contract in API responses.
type ContractDTO struct {
	ID               string          `json:"id"`
	ContractNumber   int             `json:"contract_number"`
	TenantID         string          `json:"tenant_id"`
	TenantName       string          `json:"tenant_name"`
	TenantPhone      string          `json:"tenant_phone,omitempty"`
	BuildingName     string          `json:"building_name,omitempty"`
	UnitLabel        string          `json:"unit_label,omitempty"`
	Location         string          `json:"location,omitempty"`
	StartDate        rent.Date       `json:"start_date"`
	EndDate          rent.Date       `json:"end_date"`
	ActualEndDate    rent.Date       `json:"actual_end_date,omitempty"`
	AnnualRent       decimal.Decimal `json:"annual_rent"`
	PaymentFrequency string          `json:"payment_frequency"`
	SecurityDeposit  decimal.Decimal `json:"security_deposit"`
	Status           string          `json:"status"`
	Notes            string          `json:"notes,omitempty"`
}

// CreateContractRequest is the request to create a contract.
type CreateContractRequest struct {
	ID               string          `json:"id,omitempty"`
	ContractNumber   int             `json:"contract_number"`
	TenantID         string          `json:"tenant_id"`
	BuildingName     string          `json:"building_name,omitempty"`
	UnitLabel        string          `json:"unit_label,omitempty"`
	Location         string          `json:"location,omitempty"`
	StartDate        string          `json:"start_date"`
	EndDate          string          `json:"end_date"`
	AnnualRent       decimal.Decimal `json:"annual_rent"`
	PaymentFrequency string          `json:"payment_frequency"`
	SecurityDeposit  decimal.Decimal `json:"security_deposit"`
	Notes            string          `json:"notes,omitempty"`
}

// ModificationDTO represents a modification in API responses. Detail
// carries the type-specific payload verbatim.
type ModificationDTO struct {
	ID            string      `json:"id"`
	ContractID    string      `json:"contract_id"`
	Type          string      `json:"type"`
	EffectiveDate rent.Date   `json:"effective_date"`
	IsApplied     bool        `json:"is_applied"`
	Summary       string      `json:"summary"`
	Detail        rent.Detail `json:"detail"`
}

// CreateModificationRequest is the request to add a modification. Which
// fields matter depends on Type:
//   - rent_increase / rent_decrease: NewAnnualRent
//   - discount / vat:                Amount, optional PeriodNumber
//   - extension:                     Months
//   - termination:                   optional PeriodNumber, Reason
type CreateModificationRequest struct {
	Type          string          `json:"type"`
	EffectiveDate string          `json:"effective_date"`
	NewAnnualRent decimal.Decimal `json:"new_annual_rent,omitempty"`
	Amount        decimal.Decimal `json:"amount,omitempty"`
	PeriodNumber  int             `json:"period_number,omitempty"`
	Months        int             `json:"months,omitempty"`
	Reason        string          `json:"reason,omitempty"`
}

// ReceiptDTO represents a receipt in API responses.
type ReceiptDTO struct {
	ID            string          `json:"id"`
	ContractID    string          `json:"contract_id"`
	ReceiptNumber string          `json:"receipt_number,omitempty"`
	Amount        decimal.Decimal `json:"amount"`
	Date          rent.Date       `json:"date"`
	Method        string          `json:"method"`
	Status        string          `json:"status"`
	Deleted       bool            `json:"deleted,omitempty"`
}

// CreateReceiptRequest is the request to record a payment.
type CreateReceiptRequest struct {
	ReceiptNumber string          `json:"receipt_number,omitempty"`
	Amount        decimal.Decimal `json:"amount"`
	Date          string          `json:"date"`
	Method        string          `json:"method,omitempty"`
	Status        string          `json:"status,omitempty"`
}

// DistributionPreviewRequest asks how a hypothetical payment would
// allocate across unpaid periods.
type DistributionPreviewRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

// =============================================================================
// DOMAIN -> DTO CONVERTERS
// =============================================================================

func tenantDTO(t rent.Tenant) TenantDTO {
	return TenantDTO{ID: t.ID, Name: t.Name, Phone: t.Phone, Email: t.Email}
}

func contractDTO(c rent.Contract) ContractDTO {
	return ContractDTO{
		ID:               c.ID,
		ContractNumber:   c.ContractNumber,
		TenantID:         c.TenantID,
		TenantName:       c.TenantName,
		TenantPhone:      c.TenantPhone,
		BuildingName:     c.BuildingName,
		UnitLabel:        c.UnitLabel,
		Location:         c.Location,
		StartDate:        c.StartDate,
		EndDate:          c.EndDate,
		ActualEndDate:    c.ActualEndDate,
		AnnualRent:       c.AnnualRent,
		PaymentFrequency: string(c.PaymentFrequency),
		SecurityDeposit:  c.SecurityDeposit,
		Status:           string(c.Status),
		Notes:            c.Notes,
	}
}

func modificationDTO(m rent.Modification) ModificationDTO {
	dto := ModificationDTO{
		ID:            m.ID,
		ContractID:    m.ContractID,
		Type:          string(m.Type()),
		EffectiveDate: m.EffectiveDate,
		IsApplied:     m.IsApplied,
		Detail:        m.Detail,
	}
	if m.Detail != nil {
		dto.Summary = m.Detail.Summary()
	}
	return dto
}

func receiptDTO(r rent.Receipt) ReceiptDTO {
	return ReceiptDTO{
		ID:            r.ID,
		ContractID:    r.ContractID,
		ReceiptNumber: r.ReceiptNumber,
		Amount:        r.Amount,
		Date:          r.Date,
		Method:        string(r.Method),
		Status:        string(r.Status),
		Deleted:       r.Deleted,
	}
}
