package dto

import (
	"time"

	"github.com/novacollege/nodues_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateDueRequest defines the data needed to raise a due against a student.
type CreateDueRequest struct {
	StudentUserID string          `json:"studentUserID" binding:"required"`
	Department    string          `json:"department" binding:"required,department"`
	Description   string          `json:"description" binding:"required"`
	Amount        decimal.Decimal `json:"amount" binding:"required"`
	DueDate       time.Time       `json:"dueDate" binding:"required"`
}

// PayDueRequest carries the student's payment reference.
type PayDueRequest struct {
	PaymentReference string `json:"paymentReference" binding:"required"`
}

// ListDuesParams defines query parameters for listing dues.
type ListDuesParams struct {
	Limit     int     `form:"limit,default=20"`
	NextToken *string `form:"nextToken"`
}

// DueResponse defines the data returned for a due.
type DueResponse struct {
	DueID            string          `json:"dueID"`
	StudentUserID    string          `json:"studentUserID"`
	Department       string          `json:"department"`
	Description      string          `json:"description"`
	Amount           decimal.Decimal `json:"amount"`
	DueDate          time.Time       `json:"dueDate"`
	Status           string          `json:"status"`
	PaymentDate      *time.Time      `json:"paymentDate,omitempty"`
	PaymentReference string          `json:"paymentReference,omitempty"`
	ApprovedBy       *string         `json:"approvedBy,omitempty"`
	ApprovalDate     *time.Time      `json:"approvalDate,omitempty"`
	ReceiptGenerated bool            `json:"receiptGenerated"`
	ReceiptNumber    *string         `json:"receiptNumber,omitempty"`
	CreatedAt        time.Time       `json:"createdAt"`
	LastUpdatedAt    time.Time       `json:"lastUpdatedAt"`
}

// ToDueResponse converts a domain.Due to DueResponse DTO
func ToDueResponse(due *domain.Due) DueResponse {
	return DueResponse{
		DueID:            due.DueID,
		StudentUserID:    due.StudentUserID,
		Department:       string(due.Department),
		Description:      due.Description,
		Amount:           due.Amount,
		DueDate:          due.DueDate,
		Status:           string(due.Status),
		PaymentDate:      due.PaymentDate,
		PaymentReference: due.PaymentReference,
		ApprovedBy:       due.ApprovedBy,
		ApprovalDate:     due.ApprovalDate,
		ReceiptGenerated: due.ReceiptGenerated,
		ReceiptNumber:    due.ReceiptNumber,
		CreatedAt:        due.CreatedAt,
		LastUpdatedAt:    due.LastUpdatedAt,
	}
}

// ListDuesResponse wraps a page of dues.
type ListDuesResponse struct {
	Dues      []DueResponse `json:"dues"`
	NextToken *string       `json:"nextToken,omitempty"`
}

// ToListDuesResponse converts a slice of domain.Due to ListDuesResponse.
func ToListDuesResponse(dues []domain.Due, nextToken *string) ListDuesResponse {
	res := make([]DueResponse, len(dues))
	for i := range dues {
		res[i] = ToDueResponse(&dues[i])
	}
	return ListDuesResponse{Dues: res, NextToken: nextToken}
}
