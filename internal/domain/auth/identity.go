package auth

import "github.com/cmlabs-hris/attendance-backend-go/internal/domain/user"

// Identity is the caller resolved from a verified access token.
type Identity struct {
	UserID string
	Name   string
	Email  string
	Role   user.Role
}

func (i Identity) IsAdmin() bool {
	return i.Role == user.RoleAdmin
}
