package models

// StudentProfile is the students table row.
type StudentProfile struct {
	StudentID     string `db:"student_id"`
	UserID        string `db:"user_id"`
	RollNumber    string `db:"roll_number"`
	Semester      int    `db:"semester"`
	Batch         string `db:"batch"`
	Course        string `db:"course"`
	Section       string `db:"section"`
	FatherName    string `db:"father_name"`
	MotherName    string `db:"mother_name"`
	ContactNumber string `db:"contact_number"`
	Address       string `db:"address"`
	AuditFields
}
