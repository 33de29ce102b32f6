package models

// Lecture is an admin-authored lecture file.
type Lecture struct {
	LectureID   int    `json:"lecture_id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	FilePath    string `json:"file_path"`
	UploadedBy  int    `json:"uploaded_by"`
	UploadDate  string `json:"upload_date"`
	// AccessedBy is written as an empty list and never read.
	AccessedBy []int `json:"accessed_by"`
}

// RecordID implements Record.
func (l Lecture) RecordID() int { return l.LectureID }
