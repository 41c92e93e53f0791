package dto

// DashboardStatsResponse aggregates the counters shown on the admin
// dashboard.
type DashboardStatsResponse struct {
	TotalStudents                 int            `json:"totalStudents"`
	DuesByStatus                  map[string]int `json:"duesByStatus"`
	DuesByDepartment              map[string]int `json:"duesByDepartment"`
	CertificatesByStatus          map[string]int `json:"certificatesByStatus"`
	PendingSignaturesByDepartment map[string]int `json:"pendingSignaturesByDepartment"`
}

// DepartmentResponse describes one department catalogue entry.
type DepartmentResponse struct {
	Code                 string `json:"code"`
	DisplayName          string `json:"displayName"`
	RequiredForClearance bool   `json:"requiredForClearance"`
}
