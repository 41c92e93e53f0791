package domain

import (
	"fmt"
	"time"

	"github.com/novacollege/nodues_backend/internal/apperrors"
)

// CertificateStatus is the aggregate state of a no-dues certificate.
type CertificateStatus string

const (
	CertificatePending   CertificateStatus = "PENDING"
	CertificatePartial   CertificateStatus = "PARTIAL"
	CertificateAllSigned CertificateStatus = "ALLSIGNED"
	CertificateComplete  CertificateStatus = "COMPLETE"
	CertificateRejected  CertificateStatus = "REJECTED"
)

// ParseCertificateStatus converts a string into a CertificateStatus,
// returning a validation error for unknown input.
func ParseCertificateStatus(s string) (CertificateStatus, error) {
	switch CertificateStatus(s) {
	case CertificatePending, CertificatePartial, CertificateAllSigned, CertificateComplete, CertificateRejected:
		return CertificateStatus(s), nil
	default:
		return "", fmt.Errorf("%w: unknown certificate status %q", apperrors.ErrValidation, s)
	}
}

// IsTerminal reports whether the status admits no further transitions.
func (s CertificateStatus) IsTerminal() bool {
	return s == CertificateComplete || s == CertificateRejected
}

// CanTransitionTo reports whether moving from s to next is a valid forward
// transition. Only user-requested transitions go through this table;
// DeriveStatus is a recomputation, not a transition.
func (s CertificateStatus) CanTransitionTo(next CertificateStatus) bool {
	switch s {
	case CertificatePending:
		return next == CertificatePartial || next == CertificateRejected
	case CertificatePartial:
		return next == CertificateAllSigned || next == CertificateRejected
	case CertificateAllSigned:
		return next == CertificateComplete || next == CertificateRejected
	default:
		return false
	}
}

// DeriveStatus computes the aggregate status from the signature tally.
// It is the single authoritative derivation applied after every signature
// mutation. The zero value of signed/total degenerates to PENDING.
func DeriveStatus(signed, total int, principalSigned bool) CertificateStatus {
	switch {
	case signed == 0:
		return CertificatePending
	case signed < total:
		return CertificatePartial
	case !principalSigned:
		return CertificateAllSigned
	default:
		return CertificateComplete
	}
}

// NoDuesCertificate is the aggregate certifying that a student owes nothing
// to any department. It owns one DepartmentSignature per required
// department.
type NoDuesCertificate struct {
	CertificateID     string                `json:"certificateID"`
	StudentUserID     string                `json:"studentUserID"`
	CertificateNumber string                `json:"certificateNumber"`
	IssueDate         *time.Time            `json:"issueDate,omitempty"`
	Status            CertificateStatus     `json:"status"`
	PrincipalSigned   bool                  `json:"principalSigned"`
	PrincipalSignedBy *string               `json:"principalSignedBy,omitempty"`
	PrincipalSignedAt *time.Time            `json:"principalSignedAt,omitempty"`
	Signatures        []DepartmentSignature `json:"signatures,omitempty"`

	// PrincipalSignatureImage holds the principal's stored signature image
	// when sign-off asked for it.
	PrincipalSignatureImage []byte `json:"-"`

	AuditFields
}

// SignedCount returns the number of signatures in SIGNED state.
func (c NoDuesCertificate) SignedCount() int {
	n := 0
	for _, s := range c.Signatures {
		if s.Status == SignatureSigned {
			n++
		}
	}
	return n
}

// AllSigned reports whether every required department has signed.
func (c NoDuesCertificate) AllSigned() bool {
	if len(c.Signatures) == 0 {
		return false
	}
	return c.SignedCount() == len(c.Signatures)
}

// SignatureFor returns a pointer into c.Signatures for the given department,
// or nil when the certificate carries no signature slot for it.
func (c *NoDuesCertificate) SignatureFor(dept Department) *DepartmentSignature {
	for i := range c.Signatures {
		if c.Signatures[i].Department == dept {
			return &c.Signatures[i]
		}
	}
	return nil
}

// IsActive reports whether the certificate blocks creation of a new one for
// the same student. Only rejected certificates free the slot.
func (c NoDuesCertificate) IsActive() bool {
	return c.Status != CertificateRejected
}
