package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentMethod is how the attendant says a sale was settled.
type PaymentMethod string

const (
	MethodCash        PaymentMethod = "cash"
	MethodMobileMoney PaymentMethod = "mobile-money"
	MethodBank        PaymentMethod = "bank"
)

// CashReference is the reference-code sentinel for cash payments, which have
// no transaction code to match against.
const CashReference = "CASH"

// RecordedPayment is a sale payment entered by the attendant. IsVerified is
// flipped true by the auto-matcher or the reconciliation engine once proof of
// payment arrives; it is never flipped back automatically.
type RecordedPayment struct {
	ID            int64           `json:"-"`
	PaymentID     string          `json:"payment_id"`
	TenantID      string          `json:"tenant_id"`
	AttendantID   string          `json:"attendant_id"`
	AttendantName string          `json:"attendant_name,omitempty"`
	Amount        decimal.Decimal `json:"amount"`
	PaymentMethod PaymentMethod   `json:"payment_method"`
	ReferenceCode string          `json:"reference_code,omitempty"`
	IsVerified    bool            `json:"is_verified"`
	VerifiedAt    *time.Time      `json:"verified_at,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
}

// Expense is a stored outgoing-money record parsed from a payment
// confirmation, unique per (tenant_id, reference_code).
type Expense struct {
	ID            int64           `json:"-"`
	ExpenseID     string          `json:"expense_id"`
	TenantID      string          `json:"tenant_id"`
	ReferenceCode string          `json:"reference_code"`
	Amount        decimal.Decimal `json:"amount"`
	Description   string          `json:"description"`
	CreatedAt     time.Time       `json:"created_at"`
}
