package user

import "context"

// Repository is the persistence contract for operator accounts.
// Lookups return (nil, nil) when no row matches.
type Repository interface {
	Create(ctx context.Context, u *User) error
	GetByID(ctx context.Context, id uint) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	List(ctx context.Context, page, pageSize int) ([]*User, int64, error)
	Update(ctx context.Context, u *User) error
}
