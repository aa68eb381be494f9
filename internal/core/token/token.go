// Package token mints and validates the signed identity tokens issued at
// login and presented on every authenticated request.
package token

import (
	"github.com/golang-jwt/jwt/v5"

	"github.com/bloghub/blog-system/internal/core/domain"
)

// Claim is the identity embedded in a signed token. It is reconstructed from
// the token on every request and never persisted.
type Claim struct {
	SubjectID string
	Name      string
	IsAdmin   bool
}

// Service signs and verifies tokens with a shared HS256 secret. The secret is
// injected at construction and read-only afterwards, so a single Service is
// safe for concurrent use.
type Service struct {
	secret []byte
}

func NewService(secret string) *Service {
	return &Service{secret: []byte(secret)}
}

// Mint returns a signed token embedding the claim. Tokens carry no expiry.
func (s *Service) Mint(claim Claim) (string, error) {
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   claim.SubjectID,
		"name":  claim.Name,
		"admin": claim.IsAdmin,
	})
	return t.SignedString(s.secret)
}

// Decode verifies the signature and reconstructs the claim. Every failure —
// malformed structure, wrong algorithm, bad signature — collapses to
// domain.ErrInvalidToken with no partial claim.
func (s *Service) Decode(tokenString string) (Claim, error) {
	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return s.secret, nil
	})
	if err != nil || !parsed.Valid {
		return Claim{}, domain.ErrInvalidToken
	}

	sub, _ := claims["sub"].(string)
	name, _ := claims["name"].(string)
	admin, _ := claims["admin"].(bool)
	if sub == "" {
		return Claim{}, domain.ErrInvalidToken
	}

	return Claim{SubjectID: sub, Name: name, IsAdmin: admin}, nil
}
