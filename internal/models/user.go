package models

// UserRole gates which operations an identity may invoke.
type UserRole string

const (
	RoleAdmin   UserRole = "Admin"
	RoleStudent UserRole = "Student"
)

// Valid reports whether r is one of the known roles.
func (r UserRole) Valid() bool {
	return r == RoleAdmin || r == RoleStudent
}

// User is an account stored in the users collection. Password is kept in
// plaintext.
type User struct {
	UserID   int      `json:"user_id"`
	Name     string   `json:"name"`
	Email    string   `json:"email"`
	Password string   `json:"password"`
	Role     UserRole `json:"role"`
	JoinDate string   `json:"join_date"`
}

// RecordID implements Record.
func (u User) RecordID() int { return u.UserID }

// View strips the password for API responses.
func (u User) View() UserView {
	return UserView{UserID: u.UserID, Name: u.Name, Email: u.Email, Role: u.Role, JoinDate: u.JoinDate}
}

// UserView is the public projection of a User.
type UserView struct {
	UserID   int      `json:"user_id"`
	Name     string   `json:"name"`
	Email    string   `json:"email"`
	Role     UserRole `json:"role"`
	JoinDate string   `json:"join_date"`
}
