package domain

import (
	"fmt"
	"time"

	"github.com/novacollege/nodues_backend/internal/apperrors"
)

// SignatureStatus is the state of one department's attestation.
type SignatureStatus string

const (
	SignaturePending  SignatureStatus = "PENDING"
	SignatureSigned   SignatureStatus = "SIGNED"
	SignatureRejected SignatureStatus = "REJECTED"
)

// ParseSignatureStatus converts a string into a SignatureStatus, returning a
// validation error for unknown input.
func ParseSignatureStatus(s string) (SignatureStatus, error) {
	switch SignatureStatus(s) {
	case SignaturePending, SignatureSigned, SignatureRejected:
		return SignatureStatus(s), nil
	default:
		return "", fmt.Errorf("%w: unknown signature status %q", apperrors.ErrValidation, s)
	}
}

// DepartmentSignature is one department's attestation against a no-dues
// certificate. A signature moves from PENDING to SIGNED or REJECTED exactly
// once and is terminal thereafter.
type DepartmentSignature struct {
	SignatureID   string          `json:"signatureID"`
	CertificateID string          `json:"certificateID,omitempty"`
	StudentUserID string          `json:"studentUserID"`
	Department    Department      `json:"department"`
	Status        SignatureStatus `json:"status"`
	SignedBy      string          `json:"signedBy,omitempty"` // free-text signer identity and role
	SignedAt      *time.Time      `json:"signedAt,omitempty"`
	Comments      string          `json:"comments,omitempty"`

	// SignatureImage holds the signer's stored signature image when the
	// sign request asked for it.
	SignatureImage []byte `json:"-"`

	AuditFields
}

// IsProcessed reports whether the signature has reached a terminal state.
func (s DepartmentSignature) IsProcessed() bool {
	return s.Status != SignaturePending
}
