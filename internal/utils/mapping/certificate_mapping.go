package mapping

import (
	"database/sql"

	"github.com/novacollege/nodues_backend/internal/core/domain"
	"github.com/novacollege/nodues_backend/internal/models"
)

// ToModelCertificate converts a domain NoDuesCertificate to its model.
// The signature collection is mapped separately.
func ToModelCertificate(d domain.NoDuesCertificate) models.NoDuesCertificate {
	return models.NoDuesCertificate{
		CertificateID:           d.CertificateID,
		StudentUserID:           d.StudentUserID,
		CertificateNumber:       d.CertificateNumber,
		IssueDate:               d.IssueDate,
		Status:                  string(d.Status),
		PrincipalSigned:         d.PrincipalSigned,
		PrincipalSignedBy:       d.PrincipalSignedBy,
		PrincipalSignedAt:       d.PrincipalSignedAt,
		PrincipalSignatureImage: d.PrincipalSignatureImage,
		AuditFields:             ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainCertificate converts a model NoDuesCertificate to its domain form.
func ToDomainCertificate(m models.NoDuesCertificate) domain.NoDuesCertificate {
	return domain.NoDuesCertificate{
		CertificateID:           m.CertificateID,
		StudentUserID:           m.StudentUserID,
		CertificateNumber:       m.CertificateNumber,
		IssueDate:               m.IssueDate,
		Status:                  domain.CertificateStatus(m.Status),
		PrincipalSigned:         m.PrincipalSigned,
		PrincipalSignedBy:       m.PrincipalSignedBy,
		PrincipalSignedAt:       m.PrincipalSignedAt,
		PrincipalSignatureImage: m.PrincipalSignatureImage,
		AuditFields:             ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelSignature converts a domain DepartmentSignature to its model.
func ToModelSignature(d domain.DepartmentSignature) models.DepartmentSignature {
	m := models.DepartmentSignature{
		SignatureID:    d.SignatureID,
		StudentUserID:  d.StudentUserID,
		Department:     string(d.Department),
		Status:         string(d.Status),
		SignedAt:       d.SignedAt,
		SignatureImage: d.SignatureImage,
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
	if d.CertificateID != "" {
		m.CertificateID = sql.NullString{String: d.CertificateID, Valid: true}
	}
	if d.SignedBy != "" {
		m.SignedBy = sql.NullString{String: d.SignedBy, Valid: true}
	}
	if d.Comments != "" {
		m.Comments = sql.NullString{String: d.Comments, Valid: true}
	}
	return m
}

// ToDomainSignature converts a model DepartmentSignature to its domain form.
func ToDomainSignature(m models.DepartmentSignature) domain.DepartmentSignature {
	d := domain.DepartmentSignature{
		SignatureID:    m.SignatureID,
		StudentUserID:  m.StudentUserID,
		Department:     domain.Department(m.Department),
		Status:         domain.SignatureStatus(m.Status),
		SignedAt:       m.SignedAt,
		SignatureImage: m.SignatureImage,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
	if m.CertificateID.Valid {
		d.CertificateID = m.CertificateID.String
	}
	if m.SignedBy.Valid {
		d.SignedBy = m.SignedBy.String
	}
	if m.Comments.Valid {
		d.Comments = m.Comments.String
	}
	return d
}

// ToDomainSignatureSlice converts model signatures to domain ones.
func ToDomainSignatureSlice(ms []models.DepartmentSignature) []domain.DepartmentSignature {
	ds := make([]domain.DepartmentSignature, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainSignature(m)
	}
	return ds
}
