package models

// GradeNotGraded is the grade every submission starts with.
const GradeNotGraded = "Not Graded"

// UnknownStudentName labels submissions whose submitter does not resolve.
const UnknownStudentName = "Unknown"

// Submission is a student's file for an assignment. Grade is the only field
// that changes after creation.
type Submission struct {
	SubmissionID int    `json:"submission_id"`
	AssignmentID int    `json:"assignment_id"`
	SubmittedBy  int    `json:"submitted_by"`
	FilePath     string `json:"file_path"`
	SubmitDate   string `json:"submit_date"`
	Grade        string `json:"grade"`
}

// RecordID implements Record.
func (s Submission) RecordID() int { return s.SubmissionID }

// SubmissionDetail annotates a submission with its submitter's name.
type SubmissionDetail struct {
	Submission
	StudentName string `json:"student_name"`
}
