package models

// Identity is the resolved session principal passed explicitly to services.
type Identity struct {
	UserID int      `json:"user_id"`
	Email  string   `json:"email"`
	Name   string   `json:"name"`
	Role   UserRole `json:"role"`
}

// IdentityOf builds the session identity for an authenticated user.
func IdentityOf(u User) Identity {
	return Identity{UserID: u.UserID, Email: u.Email, Name: u.Name, Role: u.Role}
}

// IsAdmin reports whether the identity holds the Admin role.
func (i Identity) IsAdmin() bool { return i.Role == RoleAdmin }
