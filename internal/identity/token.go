package identity

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/medibook/booking/pkg/config"
	"github.com/medibook/booking/pkg/types"
)

// TokenManager issues and validates signed access tokens.
type TokenManager struct {
	secretKey []byte
	ttl       time.Duration
	issuer    string
}

// Claims carried inside an access token.
type Claims struct {
	Email string     `json:"email"`
	Role  types.Role `json:"role"`
	jwt.RegisteredClaims
}

// NewTokenManager creates a token manager from JWT configuration.
func NewTokenManager(cfg *config.JWTConfig) *TokenManager {
	return &TokenManager{
		secretKey: []byte(cfg.SecretKey),
		ttl:       time.Duration(cfg.AccessTokenTTL) * time.Second,
		issuer:    cfg.Issuer,
	}
}

// Issue creates a signed token for the given identity.
func (tm *TokenManager) Issue(email string, role types.Role) (string, error) {
	now := time.Now()
	claims := &Claims{
		Email: email,
		Role:  role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    tm.issuer,
			Subject:   email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(tm.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(tm.secretKey)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Validate parses a signed token and returns its claims.
func (tm *TokenManager) Validate(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return tm.secretKey, nil
	}, jwt.WithIssuer(tm.issuer))
	if err != nil {
		return nil, types.NewAuthenticationError("invalid or expired token")
	}
	if !token.Valid {
		return nil, types.NewAuthenticationError("invalid or expired token")
	}
	return claims, nil
}
