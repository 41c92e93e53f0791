package mapping

import (
	"github.com/novacollege/nodues_backend/internal/core/domain"
	"github.com/novacollege/nodues_backend/internal/models"
)

// ToModelStudent converts a domain StudentProfile to a model StudentProfile
func ToModelStudent(d domain.StudentProfile) models.StudentProfile {
	return models.StudentProfile{
		StudentID:     d.StudentID,
		UserID:        d.UserID,
		RollNumber:    d.RollNumber,
		Semester:      d.Semester,
		Batch:         d.Batch,
		Course:        d.Course,
		Section:       d.Section,
		FatherName:    d.FatherName,
		MotherName:    d.MotherName,
		ContactNumber: d.ContactNumber,
		Address:       d.Address,
		AuditFields:   ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainStudent converts a model StudentProfile to a domain StudentProfile
func ToDomainStudent(m models.StudentProfile) domain.StudentProfile {
	return domain.StudentProfile{
		StudentID:     m.StudentID,
		UserID:        m.UserID,
		RollNumber:    m.RollNumber,
		Semester:      m.Semester,
		Batch:         m.Batch,
		Course:        m.Course,
		Section:       m.Section,
		FatherName:    m.FatherName,
		MotherName:    m.MotherName,
		ContactNumber: m.ContactNumber,
		Address:       m.Address,
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainStudentSlice converts model StudentProfiles to domain ones.
func ToDomainStudentSlice(ms []models.StudentProfile) []domain.StudentProfile {
	ds := make([]domain.StudentProfile, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainStudent(m)
	}
	return ds
}
