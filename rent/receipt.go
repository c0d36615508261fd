package rent

import (
	"github.com/shopspring/decimal"
)

// =============================================================================
// RECEIPT - Posted payment against a contract
// =============================================================================

type ReceiptStatus string

const (
	ReceiptDraft     ReceiptStatus = "draft"
	ReceiptPosted    ReceiptStatus = "posted"
	ReceiptCleared   ReceiptStatus = "cleared"
	ReceiptCancelled ReceiptStatus = "cancelled"
)

type PaymentMethod string

const (
	PaymentCash     PaymentMethod = "cash"
	PaymentCheck    PaymentMethod = "check"
	PaymentTransfer PaymentMethod = "transfer"
)

func (m PaymentMethod) Display() string {
	switch m {
	case PaymentCash:
		return "cash"
	case PaymentCheck:
		return "check"
	case PaymentTransfer:
		return "bank transfer"
	default:
		return string(m)
	}
}

// Receipt records a payment. Soft-deleted receipts stay in the store for
// audit but never count as money.
type Receipt struct {
	ID            string
	ContractID    string
	ReceiptNumber string
	Amount        decimal.Decimal
	Date          Date
	Method        PaymentMethod
	Status        ReceiptStatus
	Deleted       bool
}

// CountsAsPayment reports whether the receipt funds payment distribution.
// Only posted, non-deleted receipts do.
func (r *Receipt) CountsAsPayment() bool {
	return !r.Deleted && r.Status == ReceiptPosted
}

// AppearsOnStatement reports whether the receipt shows on an account
// statement: posted or cleared, and not deleted.
func (r *Receipt) AppearsOnStatement() bool {
	return !r.Deleted && (r.Status == ReceiptPosted || r.Status == ReceiptCleared)
}
