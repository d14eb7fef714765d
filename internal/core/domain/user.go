package domain

// UserRole defines the access level of a user at the terminal.
type UserRole string

const (
	RoleAdmin    UserRole = "ADMIN"
	RoleCustomer UserRole = "CUSTOMER"
)

// User represents a user of the terminal in the domain.
type User struct {
	UserID       string   `json:"userID"` // Primary Key (e.g., UUID)
	Name         string   `json:"name"`
	Username     string   `json:"username"`
	PasswordHash string   `json:"-"`
	Role         UserRole `json:"role"`
	AuditFields
}

// IsAdmin reports whether the user holds the elevated terminal role.
func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
