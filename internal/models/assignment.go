package models

// Assignment is an admin-authored assignment brief.
type Assignment struct {
	AssignmentID int    `json:"assignment_id"`
	Title        string `json:"title"`
	Description  string `json:"description"`
	FilePath     string `json:"file_path"`
	UploadedBy   int    `json:"uploaded_by"`
	UploadDate   string `json:"upload_date"`
}

// RecordID implements Record.
func (a Assignment) RecordID() int { return a.AssignmentID }
