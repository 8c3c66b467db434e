package models

// UserRole represents the role of a studio account
type UserRole string

const (
	RoleClient UserRole = "client"
	RoleMaster UserRole = "master"
)

// IsValid reports whether the role is one of the known roles
func (r UserRole) IsValid() bool {
	return r == RoleClient || r == RoleMaster
}

// User represents a studio account. Identity is asserted by the caller,
// the row only supplies the name and role.
type User struct {
	ID    int64    `json:"id" db:"id"`
	Name  string   `json:"name" db:"name"`
	Email string   `json:"email" db:"email"`
	Role  UserRole `json:"role" db:"role"`
}

// IsMaster returns true if the user is studio staff
func (u *User) IsMaster() bool {
	return u != nil && u.Role == RoleMaster
}
