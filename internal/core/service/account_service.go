package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/bloghub/blog-system/internal/core/credential"
	"github.com/bloghub/blog-system/internal/core/domain"
	"github.com/bloghub/blog-system/internal/core/ports"
	"github.com/bloghub/blog-system/internal/core/token"
)

var validate = validator.New()

// AccountService implements signup and login on top of the credential codec
// and the token service.
type AccountService struct {
	users  ports.UserRepository
	tokens *token.Service
	log    zerolog.Logger
}

func NewAccountService(users ports.UserRepository, tokens *token.Service, log zerolog.Logger) *AccountService {
	return &AccountService{users: users, tokens: tokens, log: log}
}

func (s *AccountService) Signup(ctx context.Context, in ports.SignupInput) (*domain.User, error) {
	var fields []string

	if n := len(in.Name); n < 5 || n > 50 {
		fields = append(fields, domain.MsgNameLength)
	} else if taken, err := s.nameTaken(ctx, in.Name); err != nil {
		return nil, err
	} else if taken {
		fields = append(fields, domain.MsgNameTaken)
	}

	if err := validate.Var(in.Email, "required,email"); err != nil {
		fields = append(fields, domain.MsgEmailFormat)
	} else if taken, err := s.emailTaken(ctx, in.Email); err != nil {
		return nil, err
	} else if taken {
		fields = append(fields, domain.MsgEmailTaken)
	}

	if len(fields) > 0 {
		return nil, &domain.ValidationError{Fields: fields}
	}

	stored, err := credential.Encode(in.Password)
	if err != nil {
		return nil, err
	}
	if len(stored) != credential.EncodedLen {
		return nil, &domain.ValidationError{Fields: []string{domain.MsgCredentialLength}}
	}

	now := time.Now().UTC()
	user := &domain.User{
		ID:           uuid.NewString(),
		Role:         domain.RoleBlogger,
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: stored,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		if errors.Is(err, domain.ErrUserExists) {
			// lost a race with a concurrent signup of the same name/email
			return nil, &domain.ValidationError{Fields: []string{domain.MsgEmailTaken}}
		}
		return nil, fmt.Errorf("signup: %w", err)
	}

	s.log.Info().Str("user_id", created.ID).Msg("user created")
	return created, nil
}

func (s *AccountService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, fmt.Errorf("login: %w", err)
	}

	if !credential.Verify(password, user.PasswordHash) {
		s.log.Debug().Str("user_id", user.ID).Msg("password verification failed")
		return "", nil, domain.ErrInvalidCredentials
	}

	// Tokens always carry admin=false; the delete path consults the stored
	// role instead of the token flag.
	signed, err := s.tokens.Mint(token.Claim{
		SubjectID: user.ID,
		Name:      user.Name,
		IsAdmin:   false,
	})
	if err != nil {
		return "", nil, fmt.Errorf("login: mint token: %w", err)
	}

	return signed, user, nil
}

func (s *AccountService) nameTaken(ctx context.Context, name string) (bool, error) {
	_, err := s.users.FindByName(ctx, name)
	if errors.Is(err, domain.ErrUserNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("signup: check name: %w", err)
	}
	return true, nil
}

func (s *AccountService) emailTaken(ctx context.Context, email string) (bool, error) {
	_, err := s.users.FindByEmail(ctx, email)
	if errors.Is(err, domain.ErrUserNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("signup: check email: %w", err)
	}
	return true, nil
}
