package user

import "time"

type Role string

const (
	RoleAdmin    Role = "admin"    // Manages holidays, office location and attendance records
	RoleEmployee Role = "employee" // Marks own attendance
)

// User is a directory entry. Attendance reads users but never writes them.
type User struct {
	ID         string
	Name       string
	Email      string
	Department *string
	Role       Role
	IsActive   bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// IsAdmin checks if user is an administrator
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
