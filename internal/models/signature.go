package models

import (
	"database/sql"
	"time"
)

// DepartmentSignature is the department_signatures table row.
// CertificateID is nullable: receipt-path signatures exist before any
// certificate does.
type DepartmentSignature struct {
	SignatureID   string         `db:"signature_id"`
	CertificateID sql.NullString `db:"certificate_id"`
	StudentUserID string         `db:"student_user_id"`
	Department    string         `db:"department"`
	Status        string         `db:"status"`
	SignedBy      sql.NullString `db:"signed_by"`
	SignedAt      *time.Time     `db:"signed_at"`
	Comments      sql.NullString `db:"comments"`

	SignatureImage []byte `db:"signature_image"`

	AuditFields
}
