package dto

import (
	"time"

	"github.com/novacollege/nodues_backend/internal/core/domain"
)

// CreateCertificateRequest opens a no-dues certificate for a student.
type CreateCertificateRequest struct {
	StudentUserID string `json:"studentUserID" binding:"required"`
}

// SignByDepartmentRequest carries one department's sign/reject action.
type SignByDepartmentRequest struct {
	CertificateID     string `json:"-"`
	Department        string `json:"department" binding:"required,department"`
	Comments          string `json:"comments"`
	UseSignatureImage bool   `json:"useSignatureImage"`
}

// SignByPrincipalRequest carries the principal sign-off options.
type SignByPrincipalRequest struct {
	UseSignatureImage bool `json:"useSignatureImage"`
}

// UpdateCertificateStatusRequest carries an administrative status change.
type UpdateCertificateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// GenerateDepartmentReceiptRequest carries the standalone receipt action.
type GenerateDepartmentReceiptRequest struct {
	StudentUserID string `json:"studentUserID" binding:"required"`
	Department    string `json:"department" binding:"required,department"`
}

// SignatureResponse defines the data returned for a department signature.
type SignatureResponse struct {
	SignatureID   string     `json:"signatureID"`
	CertificateID string     `json:"certificateID,omitempty"`
	StudentUserID string     `json:"studentUserID"`
	Department    string     `json:"department"`
	Status        string     `json:"status"`
	SignedBy      string     `json:"signedBy,omitempty"`
	SignedAt      *time.Time `json:"signedAt,omitempty"`
	Comments      string     `json:"comments,omitempty"`
	HasImage      bool       `json:"hasImage"`
}

// ToSignatureResponse converts a domain.DepartmentSignature to its DTO.
func ToSignatureResponse(s *domain.DepartmentSignature) SignatureResponse {
	return SignatureResponse{
		SignatureID:   s.SignatureID,
		CertificateID: s.CertificateID,
		StudentUserID: s.StudentUserID,
		Department:    string(s.Department),
		Status:        string(s.Status),
		SignedBy:      s.SignedBy,
		SignedAt:      s.SignedAt,
		Comments:      s.Comments,
		HasImage:      len(s.SignatureImage) > 0,
	}
}

// ToListSignatureResponse converts signatures to response DTOs.
func ToListSignatureResponse(signatures []domain.DepartmentSignature) []SignatureResponse {
	res := make([]SignatureResponse, len(signatures))
	for i := range signatures {
		res[i] = ToSignatureResponse(&signatures[i])
	}
	return res
}

// CertificateResponse defines the data returned for a certificate.
type CertificateResponse struct {
	CertificateID     string              `json:"certificateID"`
	StudentUserID     string              `json:"studentUserID"`
	CertificateNumber string              `json:"certificateNumber"`
	IssueDate         *time.Time          `json:"issueDate,omitempty"`
	Status            string              `json:"status"`
	PrincipalSigned   bool                `json:"principalSigned"`
	PrincipalSignedBy *string             `json:"principalSignedBy,omitempty"`
	PrincipalSignedAt *time.Time          `json:"principalSignedAt,omitempty"`
	Signatures        []SignatureResponse `json:"signatures"`
	CreatedAt         time.Time           `json:"createdAt"`
	LastUpdatedAt     time.Time           `json:"lastUpdatedAt"`
}

// ToCertificateResponse converts a domain.NoDuesCertificate to its DTO.
func ToCertificateResponse(c *domain.NoDuesCertificate) CertificateResponse {
	return CertificateResponse{
		CertificateID:     c.CertificateID,
		StudentUserID:     c.StudentUserID,
		CertificateNumber: c.CertificateNumber,
		IssueDate:         c.IssueDate,
		Status:            string(c.Status),
		PrincipalSigned:   c.PrincipalSigned,
		PrincipalSignedBy: c.PrincipalSignedBy,
		PrincipalSignedAt: c.PrincipalSignedAt,
		Signatures:        ToListSignatureResponse(c.Signatures),
		CreatedAt:         c.CreatedAt,
		LastUpdatedAt:     c.LastUpdatedAt,
	}
}

// ToListCertificateResponse converts certificates to response DTOs.
func ToListCertificateResponse(certificates []domain.NoDuesCertificate) []CertificateResponse {
	res := make([]CertificateResponse, len(certificates))
	for i := range certificates {
		res[i] = ToCertificateResponse(&certificates[i])
	}
	return res
}
