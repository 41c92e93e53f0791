package domain

// StudentProfile holds the academic profile attached to a user with the
// STUDENT role.
type StudentProfile struct {
	StudentID     string `json:"studentID"`
	UserID        string `json:"userID"`
	RollNumber    string `json:"rollNumber"`
	Semester      int    `json:"semester"`
	Batch         string `json:"batch"`
	Course        string `json:"course"`
	Section       string `json:"section"`
	FatherName    string `json:"fatherName"`
	MotherName    string `json:"motherName"`
	ContactNumber string `json:"contactNumber"`
	Address       string `json:"address"`
	AuditFields
}
