package mapping

import (
	"github.com/novacollege/nodues_backend/internal/core/domain"
	"github.com/novacollege/nodues_backend/internal/models"
)

// ToModelDue converts a domain Due to a model Due
func ToModelDue(d domain.Due) models.Due {
	m := models.Due{
		DueID:            d.DueID,
		StudentUserID:    d.StudentUserID,
		Department:       string(d.Department),
		Description:      d.Description,
		Amount:           d.Amount,
		DueDate:          d.DueDate,
		Status:           string(d.Status),
		PaymentDate:      d.PaymentDate,
		ApprovedBy:       d.ApprovedBy,
		ApprovalDate:     d.ApprovalDate,
		ReceiptGenerated: d.ReceiptGenerated,
		ReceiptNumber:    d.ReceiptNumber,
		AuditFields:      ToModelAuditFields(d.AuditFields),
	}
	if d.PaymentReference != "" {
		ref := d.PaymentReference
		m.PaymentReference = &ref
	}
	return m
}

// ToDomainDue converts a model Due to a domain Due
func ToDomainDue(m models.Due) domain.Due {
	d := domain.Due{
		DueID:            m.DueID,
		StudentUserID:    m.StudentUserID,
		Department:       domain.Department(m.Department),
		Description:      m.Description,
		Amount:           m.Amount,
		DueDate:          m.DueDate,
		Status:           domain.PaymentStatus(m.Status),
		PaymentDate:      m.PaymentDate,
		ApprovedBy:       m.ApprovedBy,
		ApprovalDate:     m.ApprovalDate,
		ReceiptGenerated: m.ReceiptGenerated,
		ReceiptNumber:    m.ReceiptNumber,
		AuditFields:      ToDomainAuditFields(m.AuditFields),
	}
	if m.PaymentReference != nil {
		d.PaymentReference = *m.PaymentReference
	}
	return d
}

// ToDomainDueSlice converts model Dues to domain ones.
func ToDomainDueSlice(ms []models.Due) []domain.Due {
	ds := make([]domain.Due, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainDue(m)
	}
	return ds
}
