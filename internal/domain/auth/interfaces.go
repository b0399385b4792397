package auth

import "context"

// UserRepositoryInterface lists the methods the auth service uses.
type UserRepositoryInterface interface {
	Create(ctx context.Context, u *User) error
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByID(ctx context.Context, id string) (*User, error)
	List(ctx context.Context, role UserRole) ([]User, error)
	Update(ctx context.Context, u *User) error
}

type jwtService interface {
	GenerateToken(userID, email, role string) (string, error)
}
