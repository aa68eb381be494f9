package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/bloghub/blog-system/internal/core/credential"
	"github.com/bloghub/blog-system/internal/core/domain"
	"github.com/bloghub/blog-system/internal/core/ports"
	"github.com/bloghub/blog-system/internal/core/token"
)

type stubUserRepo struct {
	users map[string]*domain.User // keyed by id
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	for _, u := range r.users {
		if u.Name == user.Name || u.Email == user.Email {
			return nil, domain.ErrUserExists
		}
	}
	r.users[user.ID] = cloneUser(user)
	return cloneUser(user), nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	if u, ok := r.users[id]; ok {
		return cloneUser(u), nil
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByName(_ context.Context, name string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Name == name {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func newAccountService(repo ports.UserRepository) *AccountService {
	return NewAccountService(repo, token.NewService("secret"), zerolog.Nop())
}

func TestAccountService_Signup_Success(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAccountService(repo)

	user, err := svc.Signup(context.Background(), ports.SignupInput{
		Name:     "alice_b",
		Email:    "a@x.com",
		Password: "p@ss12345",
	})
	if err != nil {
		t.Fatalf("Signup returned error: %v", err)
	}
	if user.Role != domain.RoleBlogger {
		t.Fatalf("expected role %q, got %q", domain.RoleBlogger, user.Role)
	}
	if len(user.PasswordHash) != credential.EncodedLen {
		t.Fatalf("expected %d-char credential, got %d", credential.EncodedLen, len(user.PasswordHash))
	}
	if !credential.Verify("p@ss12345", user.PasswordHash) {
		t.Fatalf("stored credential does not verify against the password")
	}
	if user.PasswordHash == "p@ss12345" || strings.Contains(user.PasswordHash, "p@ss12345") {
		t.Fatalf("plaintext leaked into stored credential")
	}
}

func TestAccountService_Signup_FieldErrors(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAccountService(repo)

	_, err := svc.Signup(context.Background(), ports.SignupInput{
		Name:     "bob", // too short
		Email:    "not-an-email",
		Password: "p@ss12345",
	})

	var ve *domain.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if len(ve.Fields) != 2 {
		t.Fatalf("expected 2 field errors, got %d: %v", len(ve.Fields), ve.Fields)
	}
	if ve.Fields[0] != domain.MsgNameLength || ve.Fields[1] != domain.MsgEmailFormat {
		t.Fatalf("unexpected messages: %v", ve.Fields)
	}
	if len(repo.users) != 0 {
		t.Fatalf("no record should be created on validation failure")
	}
}

func TestAccountService_Signup_Duplicates(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAccountService(repo)

	if _, err := svc.Signup(context.Background(), ports.SignupInput{
		Name: "alice_b", Email: "a@x.com", Password: "p@ss12345",
	}); err != nil {
		t.Fatalf("first signup failed: %v", err)
	}

	_, err := svc.Signup(context.Background(), ports.SignupInput{
		Name: "alice_b", Email: "a@x.com", Password: "other-pass",
	})
	var ve *domain.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if len(ve.Fields) != 2 {
		t.Fatalf("expected both uniqueness violations, got %v", ve.Fields)
	}
	if ve.Fields[0] != domain.MsgNameTaken || ve.Fields[1] != domain.MsgEmailTaken {
		t.Fatalf("unexpected messages: %v", ve.Fields)
	}
}

func TestAccountService_Login_Success(t *testing.T) {
	repo := newStubUserRepo()
	tokens := token.NewService("secret")
	svc := NewAccountService(repo, tokens, zerolog.Nop())

	if _, err := svc.Signup(context.Background(), ports.SignupInput{
		Name: "alice_b", Email: "a@x.com", Password: "p@ss12345",
	}); err != nil {
		t.Fatalf("signup failed: %v", err)
	}

	signed, user, err := svc.Login(context.Background(), "a@x.com", "p@ss12345")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if signed == "" {
		t.Fatalf("expected non-empty token")
	}

	claim, err := tokens.Decode(signed)
	if err != nil {
		t.Fatalf("minted token does not decode: %v", err)
	}
	if claim.SubjectID != user.ID || claim.Name != "alice_b" {
		t.Fatalf("unexpected claim: %+v", claim)
	}
}

func TestAccountService_Login_AdminFlagIsAlwaysFalse(t *testing.T) {
	repo := newStubUserRepo()
	tokens := token.NewService("secret")
	svc := NewAccountService(repo, tokens, zerolog.Nop())

	stored, err := credential.Encode("p@ss12345")
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	repo.users["admin-1"] = &domain.User{
		ID: "admin-1", Role: domain.RoleAdmin, Name: "admin_user",
		Email: "admin@x.com", PasswordHash: stored,
	}

	signed, _, err := svc.Login(context.Background(), "admin@x.com", "p@ss12345")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	claim, err := tokens.Decode(signed)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if claim.IsAdmin {
		t.Fatalf("login minted an elevated token for a stored admin")
	}
}

func TestAccountService_Login_FailuresAreIndistinguishable(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAccountService(repo)

	if _, err := svc.Signup(context.Background(), ports.SignupInput{
		Name: "alice_b", Email: "a@x.com", Password: "p@ss12345",
	}); err != nil {
		t.Fatalf("signup failed: %v", err)
	}

	_, _, wrongPass := svc.Login(context.Background(), "a@x.com", "wrong")
	_, _, unknownEmail := svc.Login(context.Background(), "ghost@x.com", "p@ss12345")

	if !errors.Is(wrongPass, domain.ErrInvalidCredentials) {
		t.Fatalf("wrong password: expected ErrInvalidCredentials, got %v", wrongPass)
	}
	if !errors.Is(unknownEmail, domain.ErrInvalidCredentials) {
		t.Fatalf("unknown email: expected ErrInvalidCredentials, got %v", unknownEmail)
	}
	if wrongPass.Error() != unknownEmail.Error() {
		t.Fatalf("failure shapes differ: %q vs %q", wrongPass, unknownEmail)
	}
}
