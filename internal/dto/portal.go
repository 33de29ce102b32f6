package dto

// LoginRequest is the login form.
type LoginRequest struct {
	Email    string `form:"email" json:"email" binding:"required" validate:"required"`
	Password string `form:"password" json:"password" binding:"required" validate:"required"`
}

// RegisterRequest is the signup form. Email format is not checked.
type RegisterRequest struct {
	Name     string `form:"name" json:"name" binding:"required" validate:"required"`
	Email    string `form:"email" json:"email" binding:"required" validate:"required"`
	Password string `form:"password" json:"password" binding:"required" validate:"required"`
	Role     string `form:"role" json:"role" binding:"required,oneof=Admin Student" validate:"required,oneof=Admin Student"`
}

// MaterialUploadRequest carries the text fields of a lecture or assignment upload.
type MaterialUploadRequest struct {
	Title       string `form:"title" json:"title" binding:"required" validate:"required"`
	Description string `form:"description" json:"description"`
}

// GradeRequest is the grading form. The field must be present; an empty
// value is a valid grade.
type GradeRequest struct {
	Grade *string `form:"grade" json:"grade" binding:"required"`
}

// SubmissionPath binds the assignment id route parameter.
type SubmissionPath struct {
	AssignmentID int `uri:"assignment_id" binding:"min=0"`
}

// GradePath binds the submission id route parameter.
type GradePath struct {
	SubmissionID int `uri:"submission_id" binding:"min=0"`
}

// GradebookQuery selects the gradebook export format.
type GradebookQuery struct {
	Format string `form:"format" binding:"omitempty,oneof=csv pdf"`
}
