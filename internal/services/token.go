package service

import (
	"errors"
	"time"

	appErrors "github.com/aaravmahajanofficial/shopdesk/internal/errors"
	"github.com/aaravmahajanofficial/shopdesk/internal/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Issue times are kept below the second so a token issued right after a
// user-wide revocation compares as newer than it.
func init() {
	jwt.TimePrecision = time.Microsecond
}

// Tokens issues and verifies the HS256 tokens used for sessions and password resets.
type Tokens struct {
	key []byte
}

func NewTokens(key []byte) *Tokens {
	return &Tokens{key: key}
}

func (t *Tokens) Issue(userID uuid.UUID, email, purpose string, ttl time.Duration) (string, *models.Claims, error) {
	now := time.Now()

	claims := &models.Claims{
		UserID:  userID,
		Email:   email,
		Purpose: purpose,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.key)
	if err != nil {
		return "", nil, appErrors.InternalError("Failed to sign token").WithError(err)
	}

	return signed, claims, nil
}

// Parse verifies the signature, expiry and purpose of a token.
func (t *Tokens) Parse(tokenString, purpose string) (*models.Claims, error) {
	claims := &models.Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(*jwt.Token) (any, error) {
		return t.key, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, appErrors.UnauthorizedError("Token expired").WithError(err)
		}

		return nil, appErrors.UnauthorizedError("Invalid token").WithError(err)
	}

	if !token.Valid || claims.Purpose != purpose {
		return nil, appErrors.UnauthorizedError("Invalid token")
	}

	return claims, nil
}

// Remaining is how long the token stays valid from now.
func Remaining(claims *models.Claims) time.Duration {
	if claims == nil || claims.ExpiresAt == nil {
		return 0
	}

	return time.Until(claims.ExpiresAt.Time)
}
