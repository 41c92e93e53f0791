package domain

import (
	"fmt"
	"time"

	"github.com/novacollege/nodues_backend/internal/apperrors"
	"github.com/shopspring/decimal"
)

// PaymentStatus is the lifecycle state of a due.
type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "PENDING"
	PaymentPaid     PaymentStatus = "PAID"
	PaymentApproved PaymentStatus = "APPROVED"
	PaymentRejected PaymentStatus = "REJECTED"
)

// ParsePaymentStatus converts a string into a PaymentStatus, returning a
// validation error for unknown input.
func ParsePaymentStatus(s string) (PaymentStatus, error) {
	switch PaymentStatus(s) {
	case PaymentPending, PaymentPaid, PaymentApproved, PaymentRejected:
		return PaymentStatus(s), nil
	default:
		return "", fmt.Errorf("%w: unknown payment status %q", apperrors.ErrValidation, s)
	}
}

// Due is a per-department monetary obligation owed by a student.
type Due struct {
	DueID            string          `json:"dueID"`
	StudentUserID    string          `json:"studentUserID"`
	Department       Department      `json:"department"`
	Description      string          `json:"description"`
	Amount           decimal.Decimal `json:"amount"`
	DueDate          time.Time       `json:"dueDate"`
	Status           PaymentStatus   `json:"status"`
	PaymentDate      *time.Time      `json:"paymentDate,omitempty"`
	PaymentReference string          `json:"paymentReference,omitempty"`
	ApprovedBy       *string         `json:"approvedBy,omitempty"`
	ApprovalDate     *time.Time      `json:"approvalDate,omitempty"`
	ReceiptGenerated bool            `json:"receiptGenerated"`
	ReceiptNumber    *string         `json:"receiptNumber,omitempty"`
	AuditFields
}

// IsDeletable reports whether the due may still be removed. Paid and
// approved dues are part of the financial record and must be kept.
func (d Due) IsDeletable() bool {
	return d.Status == PaymentPending
}
