package models

// Role identifies which account table a request targets.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleFaculty Role = "faculty"
	RoleStudent Role = "student"
)

// Valid returns true when the role is a supported value.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleFaculty, RoleStudent:
		return true
	default:
		return false
	}
}
