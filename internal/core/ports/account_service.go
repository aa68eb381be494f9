package ports

import (
	"context"

	"github.com/bloghub/blog-system/internal/core/domain"
)

// SignupInput carries the raw signup request fields.
type SignupInput struct {
	Name     string
	Email    string
	Password string
}

// AccountService implements signup and login.
type AccountService interface {
	// Signup validates the fields, salts and hashes the password, and
	// persists a new blogger account. Violated constraints come back as a
	// *domain.ValidationError enumerating every failed field.
	Signup(ctx context.Context, in SignupInput) (*domain.User, error)
	// Login verifies the credentials and mints a signed identity token.
	// An unknown email and a wrong password both return
	// domain.ErrInvalidCredentials, indistinguishable to the caller.
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
}
