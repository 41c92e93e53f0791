package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Due is the dues table row.
type Due struct {
	DueID            string          `db:"due_id"`
	StudentUserID    string          `db:"student_user_id"`
	Department       string          `db:"department"`
	Description      string          `db:"description"`
	Amount           decimal.Decimal `db:"amount"`
	DueDate          time.Time       `db:"due_date"`
	Status           string          `db:"status"`
	PaymentDate      *time.Time      `db:"payment_date"`
	PaymentReference *string         `db:"payment_reference"`
	ApprovedBy       *string         `db:"approved_by"`
	ApprovalDate     *time.Time      `db:"approval_date"`
	ReceiptGenerated bool            `db:"receipt_generated"`
	ReceiptNumber    *string         `db:"receipt_number"`
	AuditFields
}
