package user

import "context"

type UserRepository interface {
	GetByID(ctx context.Context, id string) (User, error)
	// ListActive returns active users ordered by name, optionally narrowed to one user.
	ListActive(ctx context.Context, userID *string) ([]User, error)
	CountActive(ctx context.Context) (int, error)
}
