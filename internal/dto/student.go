package dto

import (
	"time"

	"github.com/novacollege/nodues_backend/internal/core/domain"
)

// CreateStudentRequest defines the data needed to register a student profile.
type CreateStudentRequest struct {
	UserID        string `json:"userID" binding:"required"`
	RollNumber    string `json:"rollNumber" binding:"required"`
	Semester      int    `json:"semester" binding:"required,min=1,max=10"`
	Batch         string `json:"batch" binding:"required"`
	Course        string `json:"course" binding:"required"`
	Section       string `json:"section" binding:"required"`
	FatherName    string `json:"fatherName" binding:"required"`
	MotherName    string `json:"motherName" binding:"required"`
	ContactNumber string `json:"contactNumber" binding:"required"`
	Address       string `json:"address" binding:"required"`
}

// UpdateStudentRequest defines the data allowed for updating a profile.
type UpdateStudentRequest struct {
	Semester      *int    `json:"semester" binding:"omitempty,min=1,max=10"`
	Batch         *string `json:"batch"`
	Course        *string `json:"course"`
	Section       *string `json:"section"`
	ContactNumber *string `json:"contactNumber"`
	Address       *string `json:"address"`
}

// ListStudentsParams defines query parameters for listing students.
type ListStudentsParams struct {
	Limit  int `form:"limit,default=20"`
	Offset int `form:"offset,default=0"`
}

// StudentResponse defines the data returned for a student profile.
type StudentResponse struct {
	StudentID     string    `json:"studentID"`
	UserID        string    `json:"userID"`
	RollNumber    string    `json:"rollNumber"`
	Semester      int       `json:"semester"`
	Batch         string    `json:"batch"`
	Course        string    `json:"course"`
	Section       string    `json:"section"`
	FatherName    string    `json:"fatherName"`
	MotherName    string    `json:"motherName"`
	ContactNumber string    `json:"contactNumber"`
	Address       string    `json:"address"`
	CreatedAt     time.Time `json:"createdAt"`
}

// ToStudentResponse converts a domain.StudentProfile to StudentResponse DTO
func ToStudentResponse(s *domain.StudentProfile) StudentResponse {
	return StudentResponse{
		StudentID:     s.StudentID,
		UserID:        s.UserID,
		RollNumber:    s.RollNumber,
		Semester:      s.Semester,
		Batch:         s.Batch,
		Course:        s.Course,
		Section:       s.Section,
		FatherName:    s.FatherName,
		MotherName:    s.MotherName,
		ContactNumber: s.ContactNumber,
		Address:       s.Address,
		CreatedAt:     s.CreatedAt,
	}
}

// ToListStudentResponse converts a slice of profiles to response DTOs.
func ToListStudentResponse(students []domain.StudentProfile) []StudentResponse {
	res := make([]StudentResponse, len(students))
	for i := range students {
		res[i] = ToStudentResponse(&students[i])
	}
	return res
}
