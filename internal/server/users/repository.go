package users

import (
	"context"
)

// Repository is the credential store contract. Create must be atomic
// with respect to concurrent creates on the same email: implementations
// rely on a uniqueness guarantee in the store itself, not on a
// check-then-insert sequence, and report common.ErrEmailAlreadyExists
// on collision.
type Repository interface {
	Create(ctx context.Context, user *User) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
}
