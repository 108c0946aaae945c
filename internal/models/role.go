package models

// UserRole is the access level of a user account.
type UserRole string

const (
	RolePatient UserRole = "patient"
	RoleDoctor  UserRole = "doctor"
	RoleAdmin   UserRole = "admin"
)

// Valid reports whether r is one of the known roles.
func (r UserRole) Valid() bool {
	switch r {
	case RolePatient, RoleDoctor, RoleAdmin:
		return true
	}
	return false
}

// IsStaff reports whether r may operate queues and read statistics.
func (r UserRole) IsStaff() bool {
	return r == RoleDoctor || r == RoleAdmin
}
