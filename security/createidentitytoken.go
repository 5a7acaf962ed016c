package security

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type Identity struct {
	ID       uint   `json:"nameid"`
	FullName string `json:"unique_name"`
	Email    string `json:"email"`
	UserType string `json:"user_type"`
	SID      string `json:"sid"`
}

type IdentityClaims struct {
	Identity
	jwt.RegisteredClaims
}

// CreateIdentityToken signs an HS256 session token for an employee.
func CreateIdentityToken(identity *Identity, secret string, expiresIn time.Duration) (string, error) {
	if identity.SID == "" {
		identity.SID = uuid.NewString()
	}
	claims := IdentityClaims{
		Identity: *identity,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "mybtp",
			Audience:  []string{"mybtp.com"},
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(expiresIn)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}
