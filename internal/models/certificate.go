package models

import "time"

// NoDuesCertificate is the no_dues_certificates table row.
type NoDuesCertificate struct {
	CertificateID     string     `db:"certificate_id"`
	StudentUserID     string     `db:"student_user_id"`
	CertificateNumber string     `db:"certificate_number"`
	IssueDate         *time.Time `db:"issue_date"`
	Status            string     `db:"status"`
	PrincipalSigned   bool       `db:"principal_signed"`
	PrincipalSignedBy *string    `db:"principal_signed_by"`
	PrincipalSignedAt *time.Time `db:"principal_signed_at"`

	PrincipalSignatureImage []byte `db:"principal_signature_image"`

	AuditFields
}
