package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransitionTo(t *testing.T) {
	cases := []struct {
		from    CertificateStatus
		to      CertificateStatus
		allowed bool
	}{
		{CertificatePending, CertificatePartial, true},
		{CertificatePending, CertificateRejected, true},
		{CertificatePending, CertificateAllSigned, false},
		{CertificatePending, CertificateComplete, false},
		{CertificatePartial, CertificateAllSigned, true},
		{CertificatePartial, CertificateRejected, true},
		{CertificatePartial, CertificateComplete, false},
		{CertificatePartial, CertificatePending, false},
		{CertificateAllSigned, CertificateComplete, true},
		{CertificateAllSigned, CertificateRejected, true},
		{CertificateAllSigned, CertificatePartial, false},
		{CertificateComplete, CertificateRejected, false},
		{CertificateComplete, CertificatePending, false},
		{CertificateRejected, CertificatePending, false},
		{CertificateRejected, CertificateComplete, false},
	}

	for _, tc := range cases {
		got := tc.from.CanTransitionTo(tc.to)
		assert.Equal(t, tc.allowed, got, "%s -> %s", tc.from, tc.to)
	}
}

func TestDeriveStatus(t *testing.T) {
	total := len(RequiredSignatureDepartments())

	assert.Equal(t, CertificatePending, DeriveStatus(0, total, false))
	assert.Equal(t, CertificatePartial, DeriveStatus(1, total, false))
	assert.Equal(t, CertificatePartial, DeriveStatus(total-1, total, false))
	assert.Equal(t, CertificateAllSigned, DeriveStatus(total, total, false))
	assert.Equal(t, CertificateComplete, DeriveStatus(total, total, true))
}

func TestParseCertificateStatus(t *testing.T) {
	for _, s := range []string{"PENDING", "PARTIAL", "ALLSIGNED", "COMPLETE", "REJECTED"} {
		parsed, err := ParseCertificateStatus(s)
		assert.NoError(t, err)
		assert.Equal(t, CertificateStatus(s), parsed)
	}

	_, err := ParseCertificateStatus("ALLSGND")
	assert.Error(t, err)
	_, err = ParseCertificateStatus("complete")
	assert.Error(t, err)
}

func TestCertificateHelpers(t *testing.T) {
	cert := NoDuesCertificate{Status: CertificatePending}
	for _, dept := range RequiredSignatureDepartments() {
		cert.Signatures = append(cert.Signatures, DepartmentSignature{
			Department: dept,
			Status:     SignaturePending,
		})
	}

	assert.False(t, cert.AllSigned())
	assert.Equal(t, 0, cert.SignedCount())

	sig := cert.SignatureFor(DeptLibrary)
	assert.NotNil(t, sig)
	sig.Status = SignatureSigned
	assert.Equal(t, 1, cert.SignedCount())

	assert.Nil(t, cert.SignatureFor(Department("NO_SUCH_DEPT")))

	for i := range cert.Signatures {
		cert.Signatures[i].Status = SignatureSigned
	}
	assert.True(t, cert.AllSigned())

	empty := NoDuesCertificate{}
	assert.False(t, empty.AllSigned())
}
