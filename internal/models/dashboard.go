package models

import "encoding/json"

// Dashboard is the role-specific landing view. Admins see Students; students
// see Lectures and Assignments.
type Dashboard struct {
	Role        UserRole
	Students    []UserView
	Lectures    []Lecture
	Assignments []Assignment
}

type adminDashboardJSON struct {
	Role     UserRole   `json:"role"`
	Students []UserView `json:"students"`
}

type studentDashboardJSON struct {
	Role        UserRole     `json:"role"`
	Lectures    []Lecture    `json:"lectures"`
	Assignments []Assignment `json:"assignments"`
}

// MarshalJSON emits only the lists of the dashboard's role. Empty lists are
// encoded as [] so clients never see a missing key.
func (d Dashboard) MarshalJSON() ([]byte, error) {
	if d.Role == RoleAdmin {
		return json.Marshal(adminDashboardJSON{Role: d.Role, Students: orEmpty(d.Students)})
	}
	return json.Marshal(studentDashboardJSON{
		Role:        d.Role,
		Lectures:    orEmpty(d.Lectures),
		Assignments: orEmpty(d.Assignments),
	})
}

func orEmpty[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}

// AssignmentOverview is the admin assignment page: every assignment and every
// submission annotated with the submitter's name.
type AssignmentOverview struct {
	Assignments []Assignment       `json:"assignments"`
	Submissions []SubmissionDetail `json:"submissions"`
}
